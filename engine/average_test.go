package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliebnemara/budget-management-backend/engine"
)

// longHistory returns the standard long-event fixture: event days at 100,
// the rest of compare March at 50, compare February at 40.
func longHistory() *engine.History {
	var records []engine.DailyRecord
	records = append(records, seed(1, date(2025, time.March, 1), date(2025, time.March, 10), "100")...)
	records = append(records, seed(1, date(2025, time.March, 11), date(2025, time.March, 31), "50")...)
	records = append(records, seed(1, date(2025, time.February, 1), date(2025, time.February, 28), "40")...)
	return engine.NewHistory(1, records)
}

func TestPeriodAverages(t *testing.T) {
	// GIVEN: Every compare-year event day grossed 100
	// WHEN: The period table is built
	// THEN: Every weekday bucket averages exactly 100
	cfg := longConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := engine.NewReferenceSelector(cfg, nil, longHistory())

	table := sel.PeriodAverages()
	if len(table) != 7 {
		t.Fatalf("a 10-day window covers all weekdays, got %d buckets", len(table))
	}
	want := decimal.RequireFromString("100")
	for wd, avg := range table {
		if !avg.Equal(want) {
			t.Errorf("%s: expected 100, got %s", wd, avg)
		}
	}
}

func TestMonthAveragesExcludeEventDays(t *testing.T) {
	// GIVEN: Compare March holds event days (100) and ordinary days (50)
	// WHEN: The March month table is built
	// THEN: Only the ordinary days contribute
	cfg := longConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := engine.NewReferenceSelector(cfg, nil, longHistory())

	table := sel.MonthAverages(time.March)
	want := decimal.RequireFromString("50")
	for wd, avg := range table {
		if !avg.Equal(want) {
			t.Errorf("%s: expected 50, got %s", wd, avg)
		}
	}

	// February held no event days, so the whole month contributes.
	feb := sel.MonthAverages(time.February)
	want = decimal.RequireFromString("40")
	for wd, avg := range feb {
		if !avg.Equal(want) {
			t.Errorf("February %s: expected 40, got %s", wd, avg)
		}
	}
}

func TestAveragesSkipMissingDays(t *testing.T) {
	// GIVEN: History with only Monday rows
	// WHEN: The period table is built
	// THEN: Only Monday has a bucket; other weekdays are absent rather
	//       than averaged toward zero
	cfg := longConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var records []engine.DailyRecord
	for cur := date(2025, time.March, 1); cur.BeforeOrEqual(date(2025, time.March, 10)); cur = cur.AddDays(1) {
		if cur.Weekday() == time.Monday {
			records = append(records, engine.DailyRecord{
				Branch: 1, Date: cur, Gross: decimal.RequireFromString("80"),
			})
		}
	}
	sel := engine.NewReferenceSelector(cfg, nil, engine.NewHistory(1, records))

	table := sel.PeriodAverages()
	if len(table) != 1 {
		t.Fatalf("expected only the Monday bucket, got %d buckets", len(table))
	}
	if avg, ok := table[time.Monday]; !ok || !avg.Equal(decimal.RequireFromString("80")) {
		t.Errorf("Monday: expected 80, got %s (present=%v)", avg, ok)
	}
	if _, ok := table[time.Friday]; ok {
		t.Error("Friday must have no bucket")
	}
}

func TestMonthAveragesExcludeOverlayWindow(t *testing.T) {
	// GIVEN: A coupled short event right after the main window, with
	//        feast-level grosses on its compare days
	// WHEN: The March month table is built with the overlay registered
	// THEN: The feast days stay out of the non-event population
	cfg := longConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	overlay := engine.EventConfig{
		Event:      shortEvent,
		CYStart:    date(2025, time.March, 11),
		CYDuration: 3,
		BYStart:    date(2026, time.March, 6),
		BYDuration: 3,
	}

	var records []engine.DailyRecord
	records = append(records, seed(1, date(2025, time.March, 1), date(2025, time.March, 10), "100")...)
	records = append(records, seed(1, date(2025, time.March, 11), date(2025, time.March, 13), "1000")...)
	records = append(records, seed(1, date(2025, time.March, 14), date(2025, time.March, 31), "50")...)
	sel := engine.NewReferenceSelector(cfg, &overlay, engine.NewHistory(1, records))

	table := sel.MonthAverages(time.March)
	want := decimal.RequireFromString("50")
	for wd, avg := range table {
		if !avg.Equal(want) {
			t.Errorf("%s: expected 50, got %s", wd, avg)
		}
	}
}
