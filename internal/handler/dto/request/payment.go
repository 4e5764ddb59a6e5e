package request

import (
	"github.com/google/uuid"
)

type CreateIntentRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

// VerifyPaymentRequest is the gateway callback body; signature covers
// "orderRef|paymentId".
type VerifyPaymentRequest struct {
	OrderRef  string `json:"orderRef" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
