package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliebnemara/budget-management-backend/engine"
	"github.com/aliebnemara/budget-management-backend/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func record(branch engine.BranchID, y int, m time.Month, d int, gross string) engine.DailyRecord {
	return engine.DailyRecord{
		Branch: branch,
		Date:   engine.NewDate(y, m, d),
		Gross:  decimal.RequireFromString(gross),
	}
}

func TestSeedAndLoadRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDailySales(ctx, []engine.DailyRecord{
		record(1, 2025, time.March, 3, "150.25"),
		record(1, 2025, time.March, 1, "100.50"),
		record(1, 2025, time.April, 1, "999"),
		record(2, 2025, time.March, 2, "77"),
	}))

	got, err := store.LoadRange(ctx, 1,
		engine.NewDate(2025, time.March, 1), engine.NewDate(2025, time.March, 31))
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Date ascending, decimals intact.
	assert.Equal(t, "2025-03-01", got[0].Date.String())
	assert.True(t, got[0].Gross.Equal(decimal.RequireFromString("100.50")))
	assert.Equal(t, "2025-03-03", got[1].Date.String())
	assert.True(t, got[1].Gross.Equal(decimal.RequireFromString("150.25")))
}

func TestSeedReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDailySales(ctx, []engine.DailyRecord{
		record(1, 2025, time.March, 1, "100"),
	}))
	require.NoError(t, store.SeedDailySales(ctx, []engine.DailyRecord{
		record(1, 2025, time.March, 1, "125"),
	}))

	got, err := store.LoadRange(ctx, 1,
		engine.NewDate(2025, time.March, 1), engine.NewDate(2025, time.March, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Gross.Equal(decimal.RequireFromString("125")),
		"re-seeding must replace the stored gross, got %s", got[0].Gross)
}

func TestListBranches(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDailySales(ctx, []engine.DailyRecord{
		record(9, 2025, time.March, 1, "1"),
		record(2, 2025, time.March, 1, "1"),
		record(2, 2025, time.March, 2, "1"),
	}))

	got, err := store.ListBranches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []engine.BranchID{2, 9}, got)
}

func TestBranchMetadata(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDailySales(ctx, []engine.DailyRecord{
		record(1, 2025, time.March, 1, "1"),
		record(2, 2025, time.March, 1, "1"),
	}))
	require.NoError(t, store.SaveBranch(ctx, sqlite.Branch{ID: 1, Name: "Downtown"}))

	branches, err := store.Branches(ctx)
	require.NoError(t, err)
	require.Len(t, branches, 2)

	assert.Equal(t, "Downtown", branches[0].Name)
	// Branches with sales but no registered name get a placeholder.
	assert.Equal(t, engine.BranchID(2), branches[1].ID)
	assert.Equal(t, "Branch 2", branches[1].Name)
}

func TestCalendarPersistence(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadCalendar(ctx)
	assert.ErrorIs(t, err, engine.ErrNoCalendar)

	doc := `{"compare_year":2025,"budget_year":2026,"events":{}}`
	require.NoError(t, store.SaveCalendar(ctx, 2026, doc))

	got, err := store.LoadCalendar(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, doc, got)

	// Saving again for the same budget year replaces the document; a
	// later budget year wins the load.
	doc2 := `{"compare_year":2026,"budget_year":2027,"events":{}}`
	require.NoError(t, store.SaveCalendar(ctx, 2027, doc2))

	got, err = store.LoadCalendar(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, doc2, got)
}
