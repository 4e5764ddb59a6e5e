package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"venuehub-api/internal/domain/booking"
	"venuehub-api/internal/infra"
	"venuehub-api/internal/infra/db"
	"venuehub-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const pgErrCodeUniqueViolation = "23505"

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

type lineItemRecord struct {
	VariantID uuid.UUID `json:"variantId"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unitPrice"`
}

const insertBookingSQL = `
INSERT INTO bookings (
	id, customer_id, vendor_id, offering_id, day,
	slot_id, slot_start, slot_end,
	items, sub_total, tax, grand_total,
	status, payment_status, note, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`

// Create inserts the booking row carrying its slot claim. The partial unique
// index on (offering_id, day, slot_id) WHERE status <> 'cancelled' turns two
// concurrent claims for the same window into exactly one insert and one
// conflict; there is no separate check-then-act step to race.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	items, err := marshalItems(b.Items())
	if err != nil {
		return infra.WrapRepoErr("failed to encode line items", err)
	}

	var slotID pgtype.UUID
	var slotStart, slotEnd pgtype.Text
	if slot := b.Slot(); slot != nil {
		slotID = pgconv.UUIDToPgtype(slot.SlotID)
		slotStart = pgconv.StringToPgtype(slot.StartTime)
		slotEnd = pgconv.StringToPgtype(slot.EndTime)
	}

	_, err = r.db.Exec(ctx, insertBookingSQL,
		b.ID(), b.CustomerID(), b.VendorID(), b.OfferingID(), pgconv.DateToPgtype(b.Day().Time()),
		slotID, slotStart, slotEnd,
		items, b.SubTotal(), b.Tax(), b.GrandTotal(),
		b.Status().String(), b.PaymentStatus().String(), b.Note().String(),
		pgconv.TimeToPgtype(b.CreatedAt()), pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("slot already claimed", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

const selectBookingSQL = `
SELECT id, customer_id, vendor_id, offering_id, day,
	slot_id, slot_start, slot_end,
	items, sub_total, tax, grand_total,
	status, payment_status, note, created_at, updated_at
FROM bookings`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.scanOne(ctx, selectBookingSQL+" WHERE id = $1", id)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.scanOne(ctx, selectBookingSQL+" WHERE id = $1 FOR UPDATE", id)
}

func (r *BookingRepository) FindExpiredPendingForUpdate(ctx context.Context, cutoff time.Time, limit int) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx,
		selectBookingSQL+`
		WHERE status = 'pending' AND payment_status = 'unpaid' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED`,
		pgconv.TimeToPgtype(cutoff), limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query expired bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan expired booking", scanErr)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired bookings", err)
	}
	return result, nil
}

func (r *BookingRepository) UpdateState(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $2, payment_status = $3, updated_at = $4 WHERE id = $1`,
		b.ID(), b.Status().String(), b.PaymentStatus().String(), pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BookingRepository) scanOne(ctx context.Context, sql string, args ...any) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, customerID, vendorID, offeringID uuid.UUID
		day                                  pgtype.Date
		slotID                               pgtype.UUID
		slotStart, slotEnd                   pgtype.Text
		itemsRaw                             []byte
		subTotal, tax, grandTotal            int64
		status, paymentStatus, note          string
		createdAt, updatedAt                 pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &customerID, &vendorID, &offeringID, &day,
		&slotID, &slotStart, &slotEnd,
		&itemsRaw, &subTotal, &tax, &grandTotal,
		&status, &paymentStatus, &note, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	bookingDay, err := booking.NewDay(pgconv.DateFromPgtype(day))
	if err != nil {
		return nil, err
	}

	var slot *booking.SlotClaim
	if claimed := pgconv.UUIDPtrFromPgtype(slotID); claimed != nil {
		slot = &booking.SlotClaim{
			SlotID:    *claimed,
			StartTime: slotStart.String,
			EndTime:   slotEnd.String,
		}
	}

	items, err := unmarshalItems(itemsRaw)
	if err != nil {
		return nil, err
	}

	bookingNote, err := booking.NewNote(note)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, customerID, vendorID, offeringID,
		bookingDay, slot, items,
		subTotal, tax, grandTotal,
		booking.Status(status), booking.PaymentStatus(paymentStatus),
		bookingNote,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func marshalItems(items []booking.LineItem) ([]byte, error) {
	records := make([]lineItemRecord, len(items))
	for i, it := range items {
		records[i] = lineItemRecord{
			VariantID: it.VariantID,
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPriceMinor,
		}
	}
	return json.Marshal(records)
}

func unmarshalItems(raw []byte) ([]booking.LineItem, error) {
	var records []lineItemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	items := make([]booking.LineItem, len(records))
	for i, rec := range records {
		items[i] = booking.LineItem{
			VariantID:      rec.VariantID,
			Name:           rec.Name,
			Unit:           rec.Unit,
			Quantity:       rec.Quantity,
			UnitPriceMinor: rec.UnitPrice,
		}
	}
	return items, nil
}
