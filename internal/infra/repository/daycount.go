package repository

import (
	"context"

	"venuehub-api/internal/domain/booking"
	"venuehub-api/internal/infra"
	"venuehub-api/internal/infra/db"
	"venuehub-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// DayCountRepository maintains the per-day occupancy counter for
// capacity-based offerings. The conditional upsert makes claim-or-reject a
// single atomic statement, so concurrent writers can never push the count
// past the vendor's max.
type DayCountRepository struct {
	db db.DBTX
}

func NewDayCountRepository(dbtx db.DBTX) *DayCountRepository {
	return &DayCountRepository{db: dbtx}
}

const claimDaySQL = `
INSERT INTO offering_days (offering_id, day, booked)
VALUES ($1, $2, 1)
ON CONFLICT (offering_id, day)
DO UPDATE SET booked = offering_days.booked + 1
WHERE offering_days.booked < $3
RETURNING booked`

func (r *DayCountRepository) TryClaim(ctx context.Context, offeringID uuid.UUID, day booking.Day, max int) (bool, error) {
	var booked int
	err := r.db.QueryRow(ctx, claimDaySQL, offeringID, pgconv.DateToPgtype(day.Time()), max).Scan(&booked)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// Conditional update matched nothing: the day is full.
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to claim day capacity", err)
	}
	return true, nil
}

func (r *DayCountRepository) Release(ctx context.Context, offeringID uuid.UUID, day booking.Day) error {
	_, err := r.db.Exec(ctx,
		`UPDATE offering_days SET booked = booked - 1
		 WHERE offering_id = $1 AND day = $2 AND booked > 0`,
		offeringID, pgconv.DateToPgtype(day.Time()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release day capacity", err)
	}
	return nil
}
