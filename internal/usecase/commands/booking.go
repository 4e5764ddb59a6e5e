package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"venuehub-api/internal/domain/booking"
	"venuehub-api/internal/domain/catalog"
	"venuehub-api/internal/domain/identity"
	"venuehub-api/internal/infra"
	"venuehub-api/internal/pkg/clock"
	"venuehub-api/internal/pkg/config"
	"venuehub-api/internal/pkg/errs"
	"venuehub-api/internal/usecase/queries"
	"venuehub-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOfferingNotFound        = errs.New("offering not found")
	ErrUnknownSlot             = errs.New("unknown slot for offering")
	ErrSlotUnavailable         = errs.New("slot unavailable")
	ErrCapacityExceeded        = errs.New("no capacity left for the requested day")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNotBookingVendor        = errs.New("actor is not the booking's vendor")
	ErrInvalidStatusChange     = errs.New("invalid status change")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	OfferingID    uuid.UUID
	Date          time.Time
	SlotID        *uuid.UUID
	Lines         []booking.RequestedLine
	ExpectedTotal int64
	Note          string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, input CreateBookingInput, actor identity.Principal) (*queries.BookingView, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, next string, actor identity.Principal) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	offerings shared.OfferingReader
	store     queries.BookingReadStore
	cfg       config.BookingConfig
	clock     clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	offerings shared.OfferingReader,
	store queries.BookingReadStore,
	cfg config.BookingConfig,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		offerings: offerings,
		store:     store,
		cfg:       cfg,
		clock:     clock,
	}
}

// CreateBooking prices the request against the offering's catalog and claims
// availability for the day inside a single transaction. Pricing never trusts
// client amounts; the availability claim and the booking insert commit or
// fail together.
func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	input CreateBookingInput,
	actor identity.Principal,
) (*queries.BookingView, error) {
	offering, err := c.offerings.FindByID(ctx, input.OfferingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	day, err := booking.NewDay(input.Date)
	if err != nil {
		return nil, err
	}

	note, err := booking.NewNote(input.Note)
	if err != nil {
		return nil, err
	}

	slot, err := resolveSlot(offering, input.SlotID)
	if err != nil {
		return nil, err
	}

	quote, err := booking.PriceLines(offering, input.Lines, c.cfg.TaxRateBasisPoints, input.ExpectedTotal)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	entity := booking.NewBooking(actor.ID, offering.VendorID(), offering.ID(), day, slot, quote, note, now)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if !offering.IsSlotBased() {
			claimed, err := tx.DayCounts().TryClaim(ctx, offering.ID(), day, offering.Policy().MaxPerDay)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if !claimed {
				return errs.Mark(
					errs.Newf("offering %s is fully booked on %s", offering.ID(), day),
					ErrCapacityExceeded,
				)
			}
		}

		if err := tx.Bookings().Create(ctx, entity); err != nil {
			if slot != nil && infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(
					errs.Newf("slot %s on %s is already booked", slot.Label(), day),
					ErrSlotUnavailable,
				)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		enqueueNotification(ctx, tx, "booking_created", entity.ID(), entity.VendorID(), now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readBack(ctx, entity.ID())
}

// UpdateStatus applies a lifecycle transition on behalf of the offering's
// vendor or an admin. Cancelling a capacity-based booking releases its
// day-count claim in the same transaction.
func (c *bookingCommandsImpl) UpdateStatus(
	ctx context.Context,
	bookingID uuid.UUID,
	next string,
	actor identity.Principal,
) (*queries.BookingView, error) {
	target := booking.Status(next)
	if !target.IsValid() {
		return nil, errs.Mark(errs.Newf("unknown status %q", next), ErrInvalidStatusChange)
	}

	now := c.clock.Now()
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !actor.IsAdmin() && entity.VendorID() != actor.ID {
			return ErrNotBookingVendor
		}

		wasActive := entity.IsActive()
		if err := entity.Transition(target, now); err != nil {
			return errs.Mark(err, ErrInvalidStatusChange)
		}

		if err := tx.Bookings().UpdateState(ctx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if target == booking.StatusCancelled && wasActive && !entity.HoldsSlot() {
			if err := tx.DayCounts().Release(ctx, entity.OfferingID(), entity.Day()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		enqueueNotification(ctx, tx, "booking_status_updated", entity.ID(), entity.CustomerID(), now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readBack(ctx, bookingID)
}

func (c *bookingCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := c.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func resolveSlot(offering *catalog.Offering, slotID *uuid.UUID) (*booking.SlotClaim, error) {
	if !offering.IsSlotBased() {
		if slotID != nil {
			return nil, errs.Mark(errs.New("offering does not take slot bookings"), ErrUnknownSlot)
		}
		return nil, nil
	}
	if slotID == nil {
		return nil, errs.Mark(errs.New("slot is required for this offering"), ErrUnknownSlot)
	}
	window, ok := offering.Policy().Window(*slotID)
	if !ok {
		return nil, errs.Mark(errs.Newf("slot %s does not belong to offering %s", slotID, offering.ID()), ErrUnknownSlot)
	}
	return &booking.SlotClaim{
		SlotID:    window.ID,
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
	}, nil
}

// Notification enqueue failures are logged, never fatal; the booking write
// must not depend on the side channel. One job per recipient so the delivery
// worker stays a dumb pipe.
func enqueueNotification(ctx context.Context, tx shared.Tx, topic string, bookingID, recipientID uuid.UUID, runAt time.Time) {
	payload, err := json.Marshal(map[string]any{
		"booking_id":   bookingID,
		"recipient_id": recipientID,
		"type":         topic,
	})
	if err != nil {
		slog.Warn("failed to encode notification payload", "topic", topic, "error", err.Error())
		return
	}
	if err := tx.Notifications().CreateJob(ctx, "email", topic, payload, runAt); err != nil {
		slog.Warn("failed to enqueue notification job", "topic", topic, "error", err.Error())
	}
}
