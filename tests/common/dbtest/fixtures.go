//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestOffering(t *testing.T, db DBLike, vendorID uuid.UUID, title, policyKind string, maxPerDay int) uuid.UUID {
	t.Helper()

	offeringID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO offerings (id, vendor_id, title, active, policy_kind, max_per_day) VALUES ($1, $2, $3, true, $4, $5)",
		offeringID, vendorID, title, policyKind, maxPerDay)
	require.NoError(t, err)

	return offeringID
}

func CreateTestVariant(t *testing.T, db DBLike, offeringID uuid.UUID, name string, priceMinor int64, minQty, maxQty int) uuid.UUID {
	t.Helper()

	variantID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO offering_variants (id, offering_id, name, unit, price_minor, min_qty, max_qty, active) VALUES ($1, $2, $3, 'unit', $4, $5, $6, true)",
		variantID, offeringID, name, priceMinor, minQty, maxQty)
	require.NoError(t, err)

	return variantID
}

func CreateTestSlot(t *testing.T, db DBLike, offeringID uuid.UUID, start, end string) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO offering_slots (id, offering_id, start_time, end_time) VALUES ($1, $2, $3, $4)",
		slotID, offeringID, start, end)
	require.NoError(t, err)

	return slotID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
