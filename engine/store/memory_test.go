package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliebnemara/budget-management-backend/engine"
	"github.com/aliebnemara/budget-management-backend/engine/store"
)

func record(branch engine.BranchID, y int, m time.Month, d int, gross string) engine.DailyRecord {
	return engine.DailyRecord{
		Branch: branch,
		Date:   engine.NewDate(y, m, d),
		Gross:  decimal.RequireFromString(gross),
	}
}

func TestMemoryLoadRange(t *testing.T) {
	m := store.NewMemory()
	// Insert out of order; LoadRange must come back sorted.
	m.Add(
		record(1, 2025, time.March, 10, "300"),
		record(1, 2025, time.March, 1, "100"),
		record(1, 2025, time.March, 5, "200"),
		record(1, 2025, time.April, 1, "999"),
		record(2, 2025, time.March, 5, "555"),
	)

	got, err := m.LoadRange(context.Background(), 1,
		engine.NewDate(2025, time.March, 1), engine.NewDate(2025, time.March, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Date.Before(got[i].Date) {
			t.Errorf("records out of order: %s before %s", got[i-1].Date, got[i].Date)
		}
	}
	if !got[0].Gross.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected first gross 100, got %s", got[0].Gross)
	}
}

func TestMemoryListBranches(t *testing.T) {
	m := store.NewMemory()
	m.Add(
		record(9, 2025, time.March, 1, "1"),
		record(2, 2025, time.March, 1, "1"),
		record(5, 2025, time.March, 1, "1"),
	)

	got, err := m.ListBranches(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []engine.BranchID{2, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
