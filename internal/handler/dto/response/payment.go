package response

import (
	"venuehub-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type IntentResponse struct {
	IntentID uuid.UUID `json:"intentId"`
	OrderRef string    `json:"orderRef"`
	Amount   int64     `json:"amount"`
	Currency string    `json:"currency"`
	KeyID    string    `json:"keyId"`
}

type VerifyResponse struct {
	Status string `json:"status"`
}

func FromIntentResult(result *commands.CreateIntentResult) *IntentResponse {
	return &IntentResponse{
		IntentID: result.IntentID,
		OrderRef: result.OrderRef,
		Amount:   result.AmountMinor,
		Currency: result.Currency,
		KeyID:    result.KeyID,
	}
}
