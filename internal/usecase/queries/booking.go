package queries

import (
	"context"
	"time"

	"venuehub-api/internal/domain/identity"
	"venuehub-api/internal/infra"
	"venuehub-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrNotBookingParty = errs.New("not a party to this booking")
)

// Read models (DTO for read side)
type SlotView struct {
	SlotID    uuid.UUID `json:"slotId"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

type LineItemView struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type BookingView struct {
	ID            uuid.UUID      `json:"id"`
	OfferingID    uuid.UUID      `json:"offeringId"`
	OfferingTitle string         `json:"offeringTitle"`
	CustomerID    uuid.UUID      `json:"customerId"`
	VendorID      uuid.UUID      `json:"vendorId"`
	Day           time.Time      `json:"day"`
	Slot          *SlotView      `json:"slot,omitempty"`
	Items         []LineItemView `json:"items"`
	SubTotal      int64          `json:"subTotal"`
	Tax           int64          `json:"tax"`
	GrandTotal    int64          `json:"grandTotal"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	Note          *string        `json:"note,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	OfferingID    uuid.UUID `json:"offeringId"`
	OfferingTitle string    `json:"offeringTitle"`
	Day           time.Time `json:"day"`
	GrandTotal    int64     `json:"grandTotal"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*BookingListItem, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetBooking(ctx context.Context, id uuid.UUID, actor identity.Principal) (*BookingView, error)
	ListCustomerBookings(ctx context.Context, actor identity.Principal) ([]*BookingListItem, error)
	ListVendorBookings(ctx context.Context, actor identity.Principal) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// GetBooking returns the booking only to its customer, its vendor, or an
// admin.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, id uuid.UUID, actor identity.Principal) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	if !actor.IsAdmin() && actor.ID != view.CustomerID && actor.ID != view.VendorID {
		return nil, ErrNotBookingParty
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListCustomerBookings(ctx context.Context, actor identity.Principal) ([]*BookingListItem, error) {
	return q.store.FindByCustomerID(ctx, actor.ID)
}

func (q *bookingQueriesImpl) ListVendorBookings(ctx context.Context, actor identity.Principal) ([]*BookingListItem, error) {
	return q.store.FindByVendorID(ctx, actor.ID)
}
