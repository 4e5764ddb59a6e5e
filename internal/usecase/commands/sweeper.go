package commands

import (
	"context"
	"log/slog"

	"venuehub-api/internal/domain/booking"
	"venuehub-api/internal/pkg/clock"
	"venuehub-api/internal/pkg/config"
	"venuehub-api/internal/pkg/errs"
	"venuehub-api/internal/usecase/shared"
)

const sweepBatchSize = 100

// SweeperCommands cancels bookings that stayed pending and unpaid past the
// TTL, going through the same transition path as a human cancellation so
// claims are released and history is kept.
type SweeperCommands interface {
	CancelExpired(ctx context.Context) (int, error)
}

type sweeperCommandsImpl struct {
	uow   shared.UnitOfWork
	cfg   config.BookingConfig
	clock clock.Clock
}

func NewSweeperCommands(uow shared.UnitOfWork, cfg config.BookingConfig, clock clock.Clock) SweeperCommands {
	return &sweeperCommandsImpl{
		uow:   uow,
		cfg:   cfg,
		clock: clock,
	}
}

func (s *sweeperCommandsImpl) CancelExpired(ctx context.Context) (int, error) {
	now := s.clock.Now()
	cutoff := now.Add(-s.cfg.PendingTTL)

	var swept int
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired, err := tx.Bookings().FindExpiredPendingForUpdate(ctx, cutoff, sweepBatchSize)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		for _, entity := range expired {
			if !entity.ExpiredUnpaid(now, s.cfg.PendingTTL) {
				// SKIP LOCKED already filtered contended rows; anything
				// no longer pending and unpaid here indicates a stale
				// query result.
				slog.Warn("skipping non-expired booking from sweep",
					"booking_id", entity.ID(),
					"status", string(entity.Status()))
				continue
			}
			if err := entity.Transition(booking.StatusCancelled, now); err != nil {
				return err
			}
			if err := tx.Bookings().UpdateState(ctx, entity); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if !entity.HoldsSlot() {
				if err := tx.DayCounts().Release(ctx, entity.OfferingID(), entity.Day()); err != nil {
					return errs.Mark(err, ErrDatabaseOperationFailed)
				}
			}
			enqueueNotification(ctx, tx, "booking_expired", entity.ID(), entity.CustomerID(), now)
			swept++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if swept > 0 {
		slog.Info("cancelled expired pending bookings", "count", swept)
	}
	return swept, nil
}
