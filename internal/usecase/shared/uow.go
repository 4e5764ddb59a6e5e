package shared

import (
	"context"
	"time"

	"venuehub-api/internal/domain/booking"
	"venuehub-api/internal/domain/payment"

	"github.com/google/uuid"
)

// UnitOfWork wraps every claim-and-write in a single transaction; the
// availability decision and the booking insert are never separate operations.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes write repositories bound to the running transaction.
type Tx interface {
	Bookings() BookingRepository
	DayCounts() DayCountRepository
	Intents() IntentRepository
	Notifications() NotificationRepository
	Attempts() AttemptRepository
}

type BookingRepository interface {
	// Create persists the booking together with its slot claim. The store's
	// partial unique index rejects a duplicate non-cancelled claim; the
	// repository surfaces that as a conflict.
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByIDForUpdate locks the row so a settlement and a cancellation
	// cannot interleave.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindExpiredPendingForUpdate returns sweep candidates with SKIP LOCKED
	// so concurrent sweepers never contend.
	FindExpiredPendingForUpdate(ctx context.Context, cutoff time.Time, limit int) ([]*booking.Booking, error)
	UpdateState(ctx context.Context, b *booking.Booking) error
}

type DayCountRepository interface {
	// TryClaim atomically increments the per-day counter iff below max.
	// Returns false when the day is full.
	TryClaim(ctx context.Context, offeringID uuid.UUID, day booking.Day, max int) (bool, error)
	Release(ctx context.Context, offeringID uuid.UUID, day booking.Day) error
}

type IntentRepository interface {
	Create(ctx context.Context, intent *payment.Intent) error
	FindByExternalRefForUpdate(ctx context.Context, externalRef string) (*payment.Intent, error)
	// SupersedeOpen abandons any still-open intent for the booking so a
	// retry can create a fresh one.
	SupersedeOpen(ctx context.Context, bookingID uuid.UUID) error
	UpdateState(ctx context.Context, intent *payment.Intent) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

// AttemptRepository is the store-backed counter keyed by
// (actor, operation, window); it survives restarts and multiple instances.
type AttemptRepository interface {
	Increment(ctx context.Context, actorID uuid.UUID, operation string, windowStart time.Time) (int, error)
}
