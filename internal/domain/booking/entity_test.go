//go:build unit

package booking_test

import (
	"testing"
	"time"

	"venuehub-api/internal/domain/booking"
	"venuehub-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingLifecycle(t *testing.T) {
	now := time.Now().UTC()

	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, booking.PaymentUnpaid, actual.PaymentStatus())
		assert.True(t, actual.IsActive())
		assert.False(t, actual.HoldsSlot())
		assert.Equal(t, actual.SubTotal()+actual.Tax(), actual.GrandTotal())
	})

	t.Run("status transitions", func(t *testing.T) {
		cases := []struct {
			name  string
			from  booking.Status
			to    booking.Status
			errIs error
		}{
			{name: "pending to confirmed", from: booking.StatusPending, to: booking.StatusConfirmed},
			{name: "pending to cancelled", from: booking.StatusPending, to: booking.StatusCancelled},
			{name: "pending to completed rejected", from: booking.StatusPending, to: booking.StatusCompleted, errIs: booking.ErrInvalidTransition},
			{name: "confirmed to completed", from: booking.StatusConfirmed, to: booking.StatusCompleted},
			{name: "confirmed to cancelled", from: booking.StatusConfirmed, to: booking.StatusCancelled},
			{name: "confirmed to pending rejected", from: booking.StatusConfirmed, to: booking.StatusPending, errIs: booking.ErrInvalidTransition},
			{name: "cancelled is terminal", from: booking.StatusCancelled, to: booking.StatusConfirmed, errIs: booking.ErrInvalidTransition},
			{name: "completed is terminal", from: booking.StatusCompleted, to: booking.StatusCancelled, errIs: booking.ErrInvalidTransition},
			{name: "unknown status rejected", from: booking.StatusPending, to: booking.Status("archived"), errIs: booking.ErrInvalidTransition},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				entity, err := builder.NewBookingBuilder().WithStatus(c.from).BuildDomain()
				require.NoError(t, err)

				err = entity.Transition(c.to, now)
				if c.errIs == nil {
					require.NoError(t, err)
					assert.Equal(t, c.to, entity.Status())
				} else {
					require.ErrorIs(t, err, c.errIs)
					assert.Equal(t, c.from, entity.Status())
				}
			})
		}
	})

	t.Run("settle payment confirms a pending booking", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entity.SettlePayment(now))
		assert.Equal(t, booking.StatusConfirmed, entity.Status())
		assert.Equal(t, booking.PaymentPaid, entity.PaymentStatus())
	})

	t.Run("settle payment is rejected on a cancelled booking", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().AsCancelled().BuildDomain()
		require.NoError(t, err)

		err = entity.SettlePayment(now)
		require.ErrorIs(t, err, booking.ErrAlreadyCancelled)
		assert.Equal(t, booking.PaymentUnpaid, entity.PaymentStatus())
	})

	t.Run("settling twice reports already settled", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entity.SettlePayment(now))
		err = entity.SettlePayment(now.Add(time.Minute))
		require.ErrorIs(t, err, booking.ErrAlreadySettled)
	})

	t.Run("expired unpaid sweep predicate", func(t *testing.T) {
		ttl := 30 * time.Minute
		created := now.Add(-time.Hour)

		stale, err := builder.NewBookingBuilder().WithCreatedAt(created).BuildDomain()
		require.NoError(t, err)
		assert.True(t, stale.ExpiredUnpaid(now, ttl))

		fresh, err := builder.NewBookingBuilder().WithCreatedAt(now.Add(-time.Minute)).BuildDomain()
		require.NoError(t, err)
		assert.False(t, fresh.ExpiredUnpaid(now, ttl))

		paid, err := builder.NewBookingBuilder().WithCreatedAt(created).AsConfirmedPaid().BuildDomain()
		require.NoError(t, err)
		assert.False(t, paid.ExpiredUnpaid(now, ttl))
	})
}

func TestDay(t *testing.T) {
	t.Run("normalizes to midnight UTC", func(t *testing.T) {
		loc := time.FixedZone("JST", 9*60*60)
		day, err := booking.NewDay(time.Date(2026, 9, 12, 23, 30, 0, 0, loc))
		require.NoError(t, err)

		assert.Equal(t, "2026-09-12", day.String())
		assert.Equal(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), day.Time())
	})

	t.Run("same instant in different zones is the same day", func(t *testing.T) {
		loc := time.FixedZone("JST", 9*60*60)
		instant := time.Date(2026, 9, 12, 3, 0, 0, 0, loc)

		a, err := booking.NewDay(instant)
		require.NoError(t, err)
		b, err := booking.NewDay(instant.UTC())
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})

	t.Run("zero time rejected", func(t *testing.T) {
		_, err := booking.NewDay(time.Time{})
		require.ErrorIs(t, err, booking.ErrZeroDate)
	})
}

func TestNote(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		note, err := booking.NewNote("  keep the side door open  ")
		require.NoError(t, err)
		assert.Equal(t, "keep the side door open", note.String())
	})

	t.Run("empty note is allowed", func(t *testing.T) {
		note, err := booking.NewNote("")
		require.NoError(t, err)
		assert.Empty(t, note.String())
	})

	t.Run("maximum length accepted", func(t *testing.T) {
		long := make([]byte, booking.MaxNoteLength)
		for i := range long {
			long[i] = 'a'
		}
		_, err := booking.NewNote(string(long))
		require.NoError(t, err)
	})

	t.Run("over maximum length rejected", func(t *testing.T) {
		long := make([]byte, booking.MaxNoteLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err := booking.NewNote(string(long))
		require.ErrorIs(t, err, booking.ErrNoteTooLong)
	})
}
