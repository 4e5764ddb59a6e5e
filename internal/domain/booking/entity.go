package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrAlreadySettled    = errors.New("booking is already settled")
	ErrNotPending        = errors.New("booking is not pending")
)

// Booking is the central aggregate: a customer's claim on an offering for a
// calendar day (optionally a specific slot) with priced line items and a
// coupled payment status.
type Booking struct {
	id            uuid.UUID
	customerID    uuid.UUID
	vendorID      uuid.UUID
	offeringID    uuid.UUID
	day           Day
	slot          *SlotClaim
	items         []LineItem
	subTotal      int64
	tax           int64
	grandTotal    int64
	status        Status
	paymentStatus PaymentStatus
	note          Note
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBooking(
	customerID, vendorID, offeringID uuid.UUID,
	day Day,
	slot *SlotClaim,
	quote *Quote,
	note Note,
	now time.Time,
) *Booking {
	return &Booking{
		id:            uuid.New(),
		customerID:    customerID,
		vendorID:      vendorID,
		offeringID:    offeringID,
		day:           day,
		slot:          slot,
		items:         quote.Items,
		subTotal:      quote.SubTotalMinor,
		tax:           quote.TaxMinor,
		grandTotal:    quote.GrandTotalMinor,
		status:        StatusPending,
		paymentStatus: PaymentUnpaid,
		note:          note,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructBooking(
	id, customerID, vendorID, offeringID uuid.UUID,
	day Day,
	slot *SlotClaim,
	items []LineItem,
	subTotal, tax, grandTotal int64,
	status Status,
	paymentStatus PaymentStatus,
	note Note,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		customerID:    customerID,
		vendorID:      vendorID,
		offeringID:    offeringID,
		day:           day,
		slot:          slot,
		items:         items,
		subTotal:      subTotal,
		tax:           tax,
		grandTotal:    grandTotal,
		status:        status,
		paymentStatus: paymentStatus,
		note:          note,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Transition moves the booking to the requested status, rejecting anything
// outside the lifecycle graph.
func (b *Booking) Transition(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidTransition
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// SettlePayment is the reconciler's advancement: unpaid pending booking
// becomes confirmed/paid. Settling an already-settled booking reports
// ErrAlreadySettled so the caller can treat a redelivered callback as a
// no-op; a cancelled booking rejects the advancement outright.
func (b *Booking) SettlePayment(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if b.paymentStatus != PaymentUnpaid {
		return ErrAlreadySettled
	}
	if b.status == StatusPending {
		if err := b.Transition(StatusConfirmed, now); err != nil {
			return err
		}
	}
	b.paymentStatus = PaymentPaid
	b.updatedAt = now
	return nil
}

// ExpiredUnpaid reports whether the booking qualifies for the stale sweep.
func (b *Booking) ExpiredUnpaid(now time.Time, ttl time.Duration) bool {
	return b.status == StatusPending &&
		b.paymentStatus == PaymentUnpaid &&
		now.Sub(b.createdAt) > ttl
}

func (b *Booking) IsActive() bool {
	return b.status != StatusCancelled
}

func (b *Booking) HoldsSlot() bool {
	return b.slot != nil
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) CustomerID() uuid.UUID        { return b.customerID }
func (b *Booking) VendorID() uuid.UUID          { return b.vendorID }
func (b *Booking) OfferingID() uuid.UUID        { return b.offeringID }
func (b *Booking) Day() Day                     { return b.day }
func (b *Booking) Slot() *SlotClaim             { return b.slot }
func (b *Booking) Items() []LineItem            { return b.items }
func (b *Booking) SubTotal() int64              { return b.subTotal }
func (b *Booking) Tax() int64                   { return b.tax }
func (b *Booking) GrandTotal() int64            { return b.grandTotal }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Note() Note                   { return b.note }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
