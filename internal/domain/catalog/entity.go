package catalog

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	ErrOfferingInactive = errors.New("offering is not active")
	ErrInvalidWindow    = errors.New("slot window start must be before end")
	ErrWindowOverlap    = errors.New("slot windows must not overlap")
	ErrInvalidCapacity  = errors.New("max per day must be at least 1")
)

type PolicyKind string

const (
	PolicyCapacity PolicyKind = "capacity"
	PolicySlots    PolicyKind = "slots"
)

// Variant is the priced sub-option of an offering. Its price is copied into
// booking line items at booking time; later edits never touch history.
type Variant struct {
	ID         uuid.UUID
	Name       string
	Unit       string
	PriceMinor int64
	MinQty     int
	MaxQty     int // 0 means unbounded
	Active     bool
}

// SlotWindow is a vendor-declared time window within a day, e.g. 09:00-13:00.
// Times are "HH:MM" strings in the vendor's advertised local day.
type SlotWindow struct {
	ID        uuid.UUID
	StartTime string
	EndTime   string
}

func (w SlotWindow) Label() string {
	return w.StartTime + "-" + w.EndTime
}

// AvailabilityPolicy is either capacity-based (max bookings per calendar day)
// or slot-based (one booking per declared window per day).
type AvailabilityPolicy struct {
	Kind      PolicyKind
	MaxPerDay int
	Windows   []SlotWindow
}

func (p AvailabilityPolicy) Window(slotID uuid.UUID) (SlotWindow, bool) {
	for _, w := range p.Windows {
		if w.ID == slotID {
			return w, true
		}
	}
	return SlotWindow{}, false
}

func (p AvailabilityPolicy) validate() error {
	switch p.Kind {
	case PolicyCapacity:
		if p.MaxPerDay < 1 {
			return ErrInvalidCapacity
		}
	case PolicySlots:
		windows := make([]SlotWindow, len(p.Windows))
		copy(windows, p.Windows)
		sort.Slice(windows, func(i, j int) bool { return windows[i].StartTime < windows[j].StartTime })
		for i, w := range windows {
			if w.StartTime >= w.EndTime {
				return ErrInvalidWindow
			}
			if i > 0 && windows[i-1].EndTime > w.StartTime {
				return ErrWindowOverlap
			}
		}
	}
	return nil
}

// Offering is vendor-owned catalog data, read-only to the booking core.
type Offering struct {
	id       uuid.UUID
	vendorID uuid.UUID
	title    string
	active   bool
	variants []Variant
	policy   AvailabilityPolicy
}

func NewOffering(id, vendorID uuid.UUID, title string, active bool, variants []Variant, policy AvailabilityPolicy) (*Offering, error) {
	if !active {
		return nil, ErrOfferingInactive
	}
	if err := policy.validate(); err != nil {
		return nil, err
	}
	return &Offering{
		id:       id,
		vendorID: vendorID,
		title:    title,
		active:   active,
		variants: variants,
		policy:   policy,
	}, nil
}

func (o *Offering) ID() uuid.UUID              { return o.id }
func (o *Offering) VendorID() uuid.UUID        { return o.vendorID }
func (o *Offering) Title() string              { return o.title }
func (o *Offering) Policy() AvailabilityPolicy { return o.policy }
func (o *Offering) Variants() []Variant        { return o.variants }

// ActiveVariant resolves a variant reference for pricing; inactive variants
// behave exactly like missing ones.
func (o *Offering) ActiveVariant(id uuid.UUID) (Variant, bool) {
	for _, v := range o.variants {
		if v.ID == id && v.Active {
			return v, true
		}
	}
	return Variant{}, false
}

func (o *Offering) IsSlotBased() bool {
	return o.policy.Kind == PolicySlots
}
