//go:build unit || e2e

package builder

import (
	"time"

	dombooking "venuehub-api/internal/domain/booking"
	reqdto "venuehub-api/internal/handler/dto/request"
	"venuehub-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	VendorID      uuid.UUID
	OfferingID    uuid.UUID
	OfferingTitle string
	Day           time.Time
	Slot          *dombooking.SlotClaim
	Items         []dombooking.LineItem
	Status        dombooking.Status
	PaymentStatus dombooking.PaymentStatus
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC()
	return &BookingBuilder{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		VendorID:      uuid.New(),
		OfferingID:    uuid.New(),
		OfferingTitle: "City Loft",
		Day:           time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7),
		Items: []dombooking.LineItem{
			{
				VariantID:      uuid.New(),
				Name:           "Full Day",
				Unit:           "day",
				Quantity:       1,
				UnitPriceMinor: 50000,
			},
		},
		Status:        dombooking.StatusPending,
		PaymentStatus: dombooking.PaymentUnpaid,
		Note:          "",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) subTotal() int64 {
	var total int64
	for _, item := range b.Items {
		total += item.TotalMinor()
	}
	return total
}

func (b *BookingBuilder) tax() int64 {
	return (b.subTotal()*1800 + 5000) / 10000
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	day, err := dombooking.NewDay(b.Day)
	if err != nil {
		return nil, err
	}
	note, err := dombooking.NewNote(b.Note)
	if err != nil {
		return nil, err
	}
	sub := b.subTotal()
	tax := b.tax()
	return dombooking.ReconstructBooking(
		b.ID, b.CustomerID, b.VendorID, b.OfferingID,
		day, b.Slot, b.Items,
		sub, tax, sub+tax,
		b.Status, b.PaymentStatus, note,
		b.CreatedAt, b.UpdatedAt,
	), nil
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	lines := make([]reqdto.BookingLineRequest, 0, len(b.Items))
	for _, item := range b.Items {
		lines = append(lines, reqdto.BookingLineRequest{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	var slotID *uuid.UUID
	if b.Slot != nil {
		id := b.Slot.SlotID
		slotID = &id
	}
	var note *string
	if b.Note != "" {
		n := b.Note
		note = &n
	}
	return reqdto.CreateBookingRequest{
		OfferingID:    b.OfferingID,
		Date:          b.Day.Format("2006-01-02"),
		SlotID:        slotID,
		Note:          note,
		Lines:         lines,
		ExpectedTotal: b.subTotal(),
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	items := make([]queries.LineItemView, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, queries.LineItemView{
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPriceMinor,
		})
	}
	var slot *queries.SlotView
	if b.Slot != nil {
		slot = &queries.SlotView{
			SlotID:    b.Slot.SlotID,
			StartTime: b.Slot.StartTime,
			EndTime:   b.Slot.EndTime,
		}
	}
	var note *string
	if b.Note != "" {
		n := b.Note
		note = &n
	}
	sub := b.subTotal()
	tax := b.tax()
	return &queries.BookingView{
		ID:            b.ID,
		OfferingID:    b.OfferingID,
		OfferingTitle: b.OfferingTitle,
		CustomerID:    b.CustomerID,
		VendorID:      b.VendorID,
		Day:           b.Day,
		Slot:          slot,
		Items:         items,
		SubTotal:      sub,
		Tax:           tax,
		GrandTotal:    sub + tax,
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
		Note:          note,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	sub := b.subTotal()
	return &queries.BookingListItem{
		ID:            b.ID,
		OfferingID:    b.OfferingID,
		OfferingTitle: b.OfferingTitle,
		Day:           b.Day,
		GrandTotal:    sub + b.tax(),
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
		CreatedAt:     b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithCustomerID(customerID uuid.UUID) *BookingBuilder {
	b.CustomerID = customerID
	return b
}

func (b *BookingBuilder) WithVendorID(vendorID uuid.UUID) *BookingBuilder {
	b.VendorID = vendorID
	return b
}

func (b *BookingBuilder) WithOfferingID(offeringID uuid.UUID) *BookingBuilder {
	b.OfferingID = offeringID
	return b
}

func (b *BookingBuilder) WithDay(day time.Time) *BookingBuilder {
	b.Day = day
	return b
}

func (b *BookingBuilder) WithSlot(slotID uuid.UUID, start, end string) *BookingBuilder {
	b.Slot = &dombooking.SlotClaim{SlotID: slotID, StartTime: start, EndTime: end}
	return b
}

func (b *BookingBuilder) WithItems(items ...dombooking.LineItem) *BookingBuilder {
	b.Items = items
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithPaymentStatus(paymentStatus dombooking.PaymentStatus) *BookingBuilder {
	b.PaymentStatus = paymentStatus
	return b
}

func (b *BookingBuilder) WithNote(note string) *BookingBuilder {
	b.Note = note
	return b
}

func (b *BookingBuilder) WithCreatedAt(createdAt time.Time) *BookingBuilder {
	b.CreatedAt = createdAt
	return b
}

func (b *BookingBuilder) AsConfirmedPaid() *BookingBuilder {
	b.Status = dombooking.StatusConfirmed
	b.PaymentStatus = dombooking.PaymentPaid
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = dombooking.StatusCancelled
	return b
}
