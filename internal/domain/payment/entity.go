package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount      = errors.New("intent amount must be positive")
	ErrVerificationFailed = errors.New("payment signature verification failed")
	ErrIntentNotOpen      = errors.New("payment intent is not open")
)

type IntentStatus string

const (
	// IntentCreated is an open intent awaiting gateway confirmation.
	IntentCreated IntentStatus = "created"
	// IntentVerified means the gateway callback passed signature verification.
	IntentVerified IntentStatus = "verified"
	// IntentSuperseded marks an abandoned intent replaced by a newer one.
	IntentSuperseded IntentStatus = "superseded"
)

// Intent is one attempt to collect money for exactly one booking.
type Intent struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	amountMinor int64
	currency    string
	externalRef string
	receipt     string
	paymentID   string
	signature   string
	status      IntentStatus
	createdAt   time.Time
	updatedAt   time.Time
}

func NewIntent(bookingID uuid.UUID, amountMinor int64, currency, externalRef, receipt string, now time.Time) (*Intent, error) {
	if amountMinor <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Intent{
		id:          uuid.New(),
		bookingID:   bookingID,
		amountMinor: amountMinor,
		currency:    currency,
		externalRef: externalRef,
		receipt:     receipt,
		status:      IntentCreated,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructIntent(
	id, bookingID uuid.UUID,
	amountMinor int64,
	currency, externalRef, receipt, paymentID, signature string,
	status IntentStatus,
	createdAt, updatedAt time.Time,
) *Intent {
	return &Intent{
		id:          id,
		bookingID:   bookingID,
		amountMinor: amountMinor,
		currency:    currency,
		externalRef: externalRef,
		receipt:     receipt,
		paymentID:   paymentID,
		signature:   signature,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Verify checks the gateway's HMAC-SHA256 signature over
// "externalRef|paymentID" in constant time, then records the confirmation.
// A failed check leaves the intent untouched and may be retried.
func (i *Intent) Verify(paymentID, signature string, secret []byte, now time.Time) error {
	if !ValidSignature(i.externalRef, paymentID, signature, secret) {
		return ErrVerificationFailed
	}
	if i.status == IntentVerified {
		// Redelivered callback for a settled intent; nothing to record.
		return nil
	}
	if i.status != IntentCreated {
		return ErrIntentNotOpen
	}
	i.paymentID = paymentID
	i.signature = signature
	i.status = IntentVerified
	i.updatedAt = now
	return nil
}

func (i *Intent) IsVerified() bool {
	return i.status == IntentVerified
}

func (i *Intent) ID() uuid.UUID        { return i.id }
func (i *Intent) BookingID() uuid.UUID { return i.bookingID }
func (i *Intent) AmountMinor() int64   { return i.amountMinor }
func (i *Intent) Currency() string     { return i.currency }
func (i *Intent) ExternalRef() string  { return i.externalRef }
func (i *Intent) Receipt() string      { return i.receipt }
func (i *Intent) PaymentID() string    { return i.paymentID }
func (i *Intent) Signature() string    { return i.signature }
func (i *Intent) Status() IntentStatus { return i.status }
func (i *Intent) CreatedAt() time.Time { return i.createdAt }
func (i *Intent) UpdatedAt() time.Time { return i.updatedAt }

// ValidSignature recomputes the gateway's HMAC and compares in constant time.
func ValidSignature(externalRef, paymentID, signature string, secret []byte) bool {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(externalRef + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
