package commands

import (
	"context"
	"errors"
	"log/slog"

	"venuehub-api/internal/domain/booking"
	"venuehub-api/internal/domain/identity"
	"venuehub-api/internal/domain/payment"
	"venuehub-api/internal/infra"
	"venuehub-api/internal/pkg/clock"
	"venuehub-api/internal/pkg/config"
	"venuehub-api/internal/pkg/errs"
	"venuehub-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotBookingOwner    = errs.New("actor is not the booking's customer")
	ErrBookingCancelled   = errs.New("booking is cancelled")
	ErrAlreadySettled     = errs.New("booking is already settled")
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	ErrTooManyAttempts    = errs.New("too many payment attempts")
	ErrIntentNotFound     = errs.New("payment intent not found")
	ErrVerificationFailed = errs.New("payment verification failed")
)

const opCreateIntent = "payments.create_intent"

type CreateIntentResult struct {
	IntentID    uuid.UUID
	OrderRef    string
	AmountMinor int64
	Currency    string
	KeyID       string
}

type PaymentCommands interface {
	CreateIntent(ctx context.Context, bookingID uuid.UUID, actor identity.Principal) (*CreateIntentResult, error)
	VerifySettlement(ctx context.Context, orderRef, paymentID, signature string) error
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway shared.Gateway
	cfg     config.PaymentConfig
	clock   clock.Clock
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	gateway shared.Gateway,
	cfg config.PaymentConfig,
	clock clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:     uow,
		gateway: gateway,
		cfg:     cfg,
		clock:   clock,
	}
}

// CreateIntent registers the booking's stored grand total with the gateway and
// records a fresh intent, superseding any still-open one. The amount never
// comes from the client. Gateway failure leaves booking state untouched.
func (p *paymentCommandsImpl) CreateIntent(
	ctx context.Context,
	bookingID uuid.UUID,
	actor identity.Principal,
) (*CreateIntentResult, error) {
	if err := p.chargeAttempt(ctx, actor.ID); err != nil {
		return nil, err
	}

	entity, err := p.loadBookingForIntent(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}

	// Network call happens outside any transaction.
	order, err := p.gateway.CreateOrder(ctx, entity.GrandTotal(), p.cfg.Currency, entity.ID().String())
	if err != nil {
		slog.Error("gateway order creation failed", "booking_id", bookingID, "error", err.Error())
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}

	now := p.clock.Now()
	intent, err := payment.NewIntent(bookingID, order.AmountMinor, order.Currency, order.ExternalRef, entity.ID().String(), now)
	if err != nil {
		return nil, err
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Re-check under lock; the booking may have settled or been
		// cancelled while we talked to the gateway.
		locked, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := checkPayable(locked); err != nil {
			return err
		}

		if err := tx.Intents().SupersedeOpen(ctx, bookingID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Intents().Create(ctx, intent); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateIntentResult{
		IntentID:    intent.ID(),
		OrderRef:    intent.ExternalRef(),
		AmountMinor: intent.AmountMinor(),
		Currency:    intent.Currency(),
		KeyID:       p.cfg.GatewayKeyID,
	}, nil
}

// VerifySettlement is the gateway callback: verify the HMAC signature, then
// advance intent and booking together under a row lock. A redelivered
// callback for an already-settled booking succeeds without writing anything.
func (p *paymentCommandsImpl) VerifySettlement(ctx context.Context, orderRef, paymentID, signature string) error {
	now := p.clock.Now()
	secret := []byte(p.cfg.GatewaySecret)

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		intent, err := tx.Intents().FindByExternalRefForUpdate(ctx, orderRef)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrIntentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := intent.Verify(paymentID, signature, secret, now); err != nil {
			if errors.Is(err, payment.ErrVerificationFailed) {
				slog.Warn("payment signature rejected",
					"order_ref", orderRef,
					"payment_id", paymentID)
				return ErrVerificationFailed
			}
			return errs.Mark(err, ErrVerificationFailed)
		}

		entity, err := tx.Bookings().FindByIDForUpdate(ctx, intent.BookingID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := entity.SettlePayment(now); err != nil {
			switch {
			case errors.Is(err, booking.ErrAlreadyCancelled):
				return ErrBookingCancelled
			case errors.Is(err, booking.ErrAlreadySettled):
				// Redelivered callback; already reconciled.
				return nil
			default:
				return err
			}
		}

		if err := tx.Intents().UpdateState(ctx, intent); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Bookings().UpdateState(ctx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		enqueueNotification(ctx, tx, "payment_confirmed", entity.ID(), entity.CustomerID(), now)
		enqueueNotification(ctx, tx, "payment_confirmed", entity.ID(), entity.VendorID(), now)
		return nil
	})
}

// chargeAttempt counts the attempt in its own committed transaction so the
// budget holds even when the intent itself never materializes.
func (p *paymentCommandsImpl) chargeAttempt(ctx context.Context, actorID uuid.UUID) error {
	windowStart := p.clock.Now().Truncate(p.cfg.IntentAttemptWindow)

	var count int
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Attempts().Increment(ctx, actorID, opCreateIntent, windowStart)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		count = n
		return nil
	})
	if err != nil {
		return err
	}
	if count > p.cfg.IntentAttemptLimit {
		return ErrTooManyAttempts
	}
	return nil
}

func (p *paymentCommandsImpl) loadBookingForIntent(
	ctx context.Context,
	bookingID uuid.UUID,
	actor identity.Principal,
) (*booking.Booking, error) {
	var entity *booking.Booking
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		entity = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entity.CustomerID() != actor.ID {
		return nil, ErrNotBookingOwner
	}
	return entity, checkPayable(entity)
}

func checkPayable(b *booking.Booking) error {
	if b.Status() == booking.StatusCancelled {
		return ErrBookingCancelled
	}
	if b.PaymentStatus() != booking.PaymentUnpaid {
		return ErrAlreadySettled
	}
	return nil
}
