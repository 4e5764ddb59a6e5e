package booking

import (
	"errors"
	"fmt"

	"venuehub-api/internal/domain/catalog"

	"github.com/google/uuid"
)

var (
	ErrNoLineItems     = errors.New("at least one line item is required")
	ErrVariantNotFound = errors.New("variant not found or inactive")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrPriceMismatch   = errors.New("expected total does not match catalog prices")
)

// RequestedLine is the client's (variant, quantity) pair before pricing.
type RequestedLine struct {
	VariantID uuid.UUID
	Quantity  int
}

// Quote is the server-side pricing result. Totals are always recomputed from
// line items, never trusted from the caller.
type Quote struct {
	Items           []LineItem
	SubTotalMinor   int64
	TaxMinor        int64
	GrandTotalMinor int64
}

// PriceLines resolves requested lines against the offering's active variants,
// snapshots unit prices, and computes totals. The caller's expectedTotal is
// checked against the computed subtotal and hard-rejected on mismatch; we
// never silently correct a tampered client figure.
func PriceLines(offering *catalog.Offering, requested []RequestedLine, taxRateBasisPoints int, expectedTotalMinor int64) (*Quote, error) {
	if len(requested) == 0 {
		return nil, ErrNoLineItems
	}

	items := make([]LineItem, 0, len(requested))
	var subTotal int64
	for _, line := range requested {
		variant, ok := offering.ActiveVariant(line.VariantID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, line.VariantID)
		}
		if err := validateQuantity(variant, line.Quantity); err != nil {
			return nil, err
		}

		item := LineItem{
			VariantID:      variant.ID,
			Name:           variant.Name,
			Unit:           variant.Unit,
			Quantity:       line.Quantity,
			UnitPriceMinor: variant.PriceMinor,
		}
		items = append(items, item)
		subTotal += item.TotalMinor()
	}

	if expectedTotalMinor != subTotal {
		return nil, fmt.Errorf("%w: expected %d, computed %d", ErrPriceMismatch, expectedTotalMinor, subTotal)
	}

	tax := roundHalfUpBasisPoints(subTotal, taxRateBasisPoints)
	return &Quote{
		Items:           items,
		SubTotalMinor:   subTotal,
		TaxMinor:        tax,
		GrandTotalMinor: subTotal + tax,
	}, nil
}

func validateQuantity(variant catalog.Variant, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidQuantity)
	}
	if qty < variant.MinQty {
		return fmt.Errorf("%w: %q requires at least %d", ErrInvalidQuantity, variant.Name, variant.MinQty)
	}
	if variant.MaxQty > 0 && qty > variant.MaxQty {
		return fmt.Errorf("%w: %q allows at most %d", ErrInvalidQuantity, variant.Name, variant.MaxQty)
	}
	return nil
}

// roundHalfUpBasisPoints computes amount*(bp/10000) rounded half-up to the
// smallest currency unit, in integer arithmetic so no float drift enters the
// books. This is the only rounding point in the pricing path.
func roundHalfUpBasisPoints(amountMinor int64, basisPoints int) int64 {
	return (amountMinor*int64(basisPoints) + 5000) / 10000
}
