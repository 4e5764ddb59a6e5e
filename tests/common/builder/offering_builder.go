//go:build unit || e2e

package builder

import (
	"venuehub-api/internal/domain/catalog"

	"github.com/google/uuid"
)

type OfferingBuilder struct {
	ID       uuid.UUID
	VendorID uuid.UUID
	Title    string
	Active   bool
	Variants []catalog.Variant
	Policy   catalog.AvailabilityPolicy
}

func NewOfferingBuilder() *OfferingBuilder {
	return &OfferingBuilder{
		ID:       uuid.New(),
		VendorID: uuid.New(),
		Title:    "City Loft",
		Active:   true,
		Variants: []catalog.Variant{
			{
				ID:         uuid.New(),
				Name:       "Full Day",
				Unit:       "day",
				PriceMinor: 50000,
				MinQty:     1,
				MaxQty:     0,
				Active:     true,
			},
		},
		Policy: catalog.AvailabilityPolicy{
			Kind:      catalog.PolicyCapacity,
			MaxPerDay: 3,
		},
	}
}

func (o *OfferingBuilder) With(mutate func(*OfferingBuilder)) *OfferingBuilder {
	mutate(o)
	return o
}

// Build methods
func (o *OfferingBuilder) BuildDomain() (*catalog.Offering, error) {
	return catalog.NewOffering(o.ID, o.VendorID, o.Title, o.Active, o.Variants, o.Policy)
}

// Fluent builder methods
func (o *OfferingBuilder) WithID(id uuid.UUID) *OfferingBuilder {
	o.ID = id
	return o
}

func (o *OfferingBuilder) WithVendorID(vendorID uuid.UUID) *OfferingBuilder {
	o.VendorID = vendorID
	return o
}

func (o *OfferingBuilder) WithTitle(title string) *OfferingBuilder {
	o.Title = title
	return o
}

func (o *OfferingBuilder) WithActive(active bool) *OfferingBuilder {
	o.Active = active
	return o
}

func (o *OfferingBuilder) WithVariants(variants ...catalog.Variant) *OfferingBuilder {
	o.Variants = variants
	return o
}

func (o *OfferingBuilder) WithCapacity(maxPerDay int) *OfferingBuilder {
	o.Policy = catalog.AvailabilityPolicy{
		Kind:      catalog.PolicyCapacity,
		MaxPerDay: maxPerDay,
	}
	return o
}

func (o *OfferingBuilder) WithSlots(windows ...catalog.SlotWindow) *OfferingBuilder {
	o.Policy = catalog.AvailabilityPolicy{
		Kind:    catalog.PolicySlots,
		Windows: windows,
	}
	return o
}
