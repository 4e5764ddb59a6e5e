package repository

import (
	"context"
	"time"

	"venuehub-api/internal/infra"
	"venuehub-api/internal/infra/db"
	"venuehub-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// AttemptRepository counts operations per (actor, operation, window) in the
// store, so limits hold across restarts and instances.
type AttemptRepository struct {
	db db.DBTX
}

func NewAttemptRepository(dbtx db.DBTX) *AttemptRepository {
	return &AttemptRepository{db: dbtx}
}

const incrementAttemptSQL = `
INSERT INTO op_attempts (actor_id, op, window_start, count)
VALUES ($1, $2, $3, 1)
ON CONFLICT (actor_id, op, window_start)
DO UPDATE SET count = op_attempts.count + 1
RETURNING count`

func (r *AttemptRepository) Increment(ctx context.Context, actorID uuid.UUID, operation string, windowStart time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, incrementAttemptSQL, actorID, operation, pgconv.TimeToPgtype(windowStart)).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to increment attempt counter", err)
	}
	return count, nil
}
