package shared

import (
	"context"

	"venuehub-api/internal/domain/catalog"

	"github.com/google/uuid"
)

// OfferingReader is the catalog collaborator; the core only consumes it.
type OfferingReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Offering, error)
}

// Gateway is the opaque payment processor capability.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (GatewayOrder, error)
}

type GatewayOrder struct {
	ExternalRef string
	AmountMinor int64
	Currency    string
}
