package readstore

import (
	"context"
	"encoding/json"

	"venuehub-api/internal/infra"
	"venuehub-api/internal/infra/db"
	"venuehub-api/internal/pkg/pgconv"
	"venuehub-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewSQL = `
SELECT b.id, b.offering_id, o.title, b.customer_id, b.vendor_id, b.day,
	b.slot_id, b.slot_start, b.slot_end,
	b.items, b.sub_total, b.tax, b.grand_total,
	b.status, b.payment_status, b.note, b.created_at, b.updated_at
FROM bookings b
JOIN offerings o ON o.id = b.offering_id`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSQL+" WHERE b.id = $1", id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*queries.BookingListItem, error) {
	return r.list(ctx, "b.customer_id", customerID)
}

func (r *BookingReadStore) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*queries.BookingListItem, error) {
	return r.list(ctx, "b.vendor_id", vendorID)
}

func (r *BookingReadStore) list(ctx context.Context, column string, id uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.offering_id, o.title, b.day, b.grand_total,
			b.status, b.payment_status, b.created_at
		 FROM bookings b
		 JOIN offerings o ON o.id = b.offering_id
		 WHERE `+column+` = $1
		 ORDER BY b.created_at DESC`,
		id,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var (
			item      queries.BookingListItem
			day       pgtype.Date
			createdAt pgtype.Timestamptz
		)
		err := rows.Scan(&item.ID, &item.OfferingID, &item.OfferingTitle, &day,
			&item.GrandTotal, &item.Status, &item.PaymentStatus, &createdAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.Day = pgconv.DateFromPgtype(day)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view               queries.BookingView
		day                pgtype.Date
		slotID             pgtype.UUID
		slotStart, slotEnd pgtype.Text
		itemsRaw           []byte
		note               string
		createdAt, updated pgtype.Timestamptz
	)

	err := row.Scan(
		&view.ID, &view.OfferingID, &view.OfferingTitle, &view.CustomerID, &view.VendorID, &day,
		&slotID, &slotStart, &slotEnd,
		&itemsRaw, &view.SubTotal, &view.Tax, &view.GrandTotal,
		&view.Status, &view.PaymentStatus, &note, &createdAt, &updated,
	)
	if err != nil {
		return nil, err
	}

	view.Day = pgconv.DateFromPgtype(day)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updated)

	if claimed := pgconv.UUIDPtrFromPgtype(slotID); claimed != nil {
		view.Slot = &queries.SlotView{
			SlotID:    *claimed,
			StartTime: slotStart.String,
			EndTime:   slotEnd.String,
		}
	}
	if note != "" {
		view.Note = &note
	}

	if err := json.Unmarshal(itemsRaw, &view.Items); err != nil {
		return nil, err
	}
	return &view, nil
}
