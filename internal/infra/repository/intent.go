package repository

import (
	"context"

	"venuehub-api/internal/domain/payment"
	"venuehub-api/internal/infra"
	"venuehub-api/internal/infra/db"
	"venuehub-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IntentRepository struct {
	db db.DBTX
}

func NewIntentRepository(dbtx db.DBTX) *IntentRepository {
	return &IntentRepository{db: dbtx}
}

func (r *IntentRepository) Create(ctx context.Context, intent *payment.Intent) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payment_intents (
			id, booking_id, amount, currency, external_ref, receipt,
			payment_id, signature, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		intent.ID(), intent.BookingID(), intent.AmountMinor(), intent.Currency(),
		intent.ExternalRef(), intent.Receipt(),
		intent.PaymentID(), intent.Signature(), string(intent.Status()),
		pgconv.TimeToPgtype(intent.CreatedAt()), pgconv.TimeToPgtype(intent.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment intent", err)
	}
	return nil
}

func (r *IntentRepository) FindByExternalRefForUpdate(ctx context.Context, externalRef string) (*payment.Intent, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, booking_id, amount, currency, external_ref, receipt,
			payment_id, signature, status, created_at, updated_at
		 FROM payment_intents WHERE external_ref = $1 FOR UPDATE`,
		externalRef,
	)

	var (
		id, bookingID                                        uuid.UUID
		amount                                               int64
		currency, ref, receipt, paymentID, signature, status string
		createdAt, updatedAt                                 pgtype.Timestamptz
	)
	err := row.Scan(&id, &bookingID, &amount, &currency, &ref, &receipt,
		&paymentID, &signature, &status, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment intent", err)
	}

	return payment.ReconstructIntent(
		id, bookingID, amount, currency, ref, receipt, paymentID, signature,
		payment.IntentStatus(status),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *IntentRepository) SupersedeOpen(ctx context.Context, bookingID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE payment_intents SET status = 'superseded', updated_at = now()
		 WHERE booking_id = $1 AND status = 'created'`,
		bookingID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to supersede open intents", err)
	}
	return nil
}

func (r *IntentRepository) UpdateState(ctx context.Context, intent *payment.Intent) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payment_intents SET payment_id = $2, signature = $3, status = $4, updated_at = $5
		 WHERE id = $1`,
		intent.ID(), intent.PaymentID(), intent.Signature(), string(intent.Status()),
		pgconv.TimeToPgtype(intent.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment intent", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment intent not found", nil, infra.KindNotFound)
	}
	return nil
}
