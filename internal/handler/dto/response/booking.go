package response

import (
	"time"

	"venuehub-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	SlotID    uuid.UUID `json:"slotId"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

type LineItemResponse struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type BookingResponse struct {
	ID            uuid.UUID          `json:"id"`
	OfferingID    uuid.UUID          `json:"offeringId"`
	OfferingTitle string             `json:"offeringTitle"`
	CustomerID    uuid.UUID          `json:"customerId"`
	VendorID      uuid.UUID          `json:"vendorId"`
	Day           time.Time          `json:"date"`
	Slot          *SlotResponse      `json:"slot,omitempty"`
	Items         []LineItemResponse `json:"items"`
	SubTotal      int64              `json:"subTotal"`
	Tax           int64              `json:"tax"`
	GrandTotal    int64              `json:"grandTotal"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"paymentStatus"`
	Note          *string            `json:"note,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type BookingListResponse struct {
	ID            uuid.UUID `json:"id"`
	OfferingID    uuid.UUID `json:"offeringId"`
	OfferingTitle string    `json:"offeringTitle"`
	Day           time.Time `json:"date"`
	GrandTotal    int64     `json:"grandTotal"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, item)
	return &resp
}
