package readstore

import (
	"context"

	"venuehub-api/internal/domain/catalog"
	"venuehub-api/internal/infra"
	"venuehub-api/internal/infra/db"
	"venuehub-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// OfferingReadStore is the catalog reader: vendors maintain offerings through
// the catalog service, the booking core only loads snapshots of them.
type OfferingReadStore struct {
	db db.DBTX
}

func NewOfferingReadStore(dbtx db.DBTX) *OfferingReadStore {
	return &OfferingReadStore{db: dbtx}
}

func (r *OfferingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Offering, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, vendor_id, title, active, policy_kind, max_per_day
		 FROM offerings WHERE id = $1 AND active`,
		id,
	)

	var (
		offeringID, vendorID uuid.UUID
		title, policyKind    string
		active               bool
		maxPerDay            int
	)
	if err := row.Scan(&offeringID, &vendorID, &title, &active, &policyKind, &maxPerDay); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offering not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offering", err)
	}

	variants, err := r.loadVariants(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	policy := catalog.AvailabilityPolicy{Kind: catalog.PolicyKind(policyKind), MaxPerDay: maxPerDay}
	if policy.Kind == catalog.PolicySlots {
		windows, werr := r.loadWindows(ctx, offeringID)
		if werr != nil {
			return nil, werr
		}
		policy.Windows = windows
	}

	offering, err := catalog.NewOffering(offeringID, vendorID, title, active, variants, policy)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid offering data", err)
	}
	return offering, nil
}

func (r *OfferingReadStore) loadVariants(ctx context.Context, offeringID uuid.UUID) ([]catalog.Variant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, unit, price_minor, min_qty, max_qty, active
		 FROM offering_variants WHERE offering_id = $1 ORDER BY name`,
		offeringID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query offering variants", err)
	}
	defer rows.Close()

	var variants []catalog.Variant
	for rows.Next() {
		var v catalog.Variant
		if err := rows.Scan(&v.ID, &v.Name, &v.Unit, &v.PriceMinor, &v.MinQty, &v.MaxQty, &v.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offering variant", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offering variants", err)
	}
	return variants, nil
}

func (r *OfferingReadStore) loadWindows(ctx context.Context, offeringID uuid.UUID) ([]catalog.SlotWindow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, start_time, end_time
		 FROM offering_slots WHERE offering_id = $1 ORDER BY start_time`,
		offeringID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query offering slots", err)
	}
	defer rows.Close()

	var windows []catalog.SlotWindow
	for rows.Next() {
		var w catalog.SlotWindow
		if err := rows.Scan(&w.ID, &w.StartTime, &w.EndTime); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offering slot", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offering slots", err)
	}
	return windows, nil
}
