package engine_test

import (
	"testing"
	"time"

	"github.com/aliebnemara/budget-management-backend/engine"
)

func TestClassifyCompareYear(t *testing.T) {
	cfg := longConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		day  engine.Date
		want engine.DayClass
	}{
		{date(2025, time.March, 1), engine.DayEvent},
		{date(2025, time.March, 10), engine.DayEvent},
		{date(2025, time.March, 11), engine.DaySameMonthNonEvent},
		{date(2025, time.March, 31), engine.DaySameMonthNonEvent},
		{date(2025, time.April, 1), engine.DayNormal},
		{date(2025, time.February, 15), engine.DayNormal},
	}
	for _, tc := range cases {
		if got := cfg.Classify(tc.day, engine.CompareYear); got != tc.want {
			t.Errorf("CY %s: expected %s, got %s", tc.day, tc.want, got)
		}
	}
}

func TestClassifyBudgetYear(t *testing.T) {
	cfg := longConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		day  engine.Date
		want engine.DayClass
	}{
		{date(2026, time.February, 24), engine.DayEvent},
		{date(2026, time.March, 5), engine.DayEvent},
		// February days before the window: the event's BY month.
		{date(2026, time.February, 1), engine.DaySameMonthNonEvent},
		// March days after the window: March is in the union because the
		// event sat there in the compare year.
		{date(2026, time.March, 20), engine.DaySameMonthNonEvent},
		{date(2026, time.April, 1), engine.DayNormal},
	}
	for _, tc := range cases {
		if got := cfg.Classify(tc.day, engine.BudgetYear); got != tc.want {
			t.Errorf("BY %s: expected %s, got %s", tc.day, tc.want, got)
		}
	}
}

func TestClassifyLostMonth(t *testing.T) {
	// GIVEN: A short event that left June entirely for May
	// WHEN: A June budget-year day is classified
	// THEN: It is same-month non-event, not normal, so the lost month
	//       still gets estimated
	cfg := shortConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.Classify(date(2026, time.June, 7), engine.BudgetYear); got != engine.DaySameMonthNonEvent {
		t.Errorf("expected same_month_non_event, got %s", got)
	}
}
