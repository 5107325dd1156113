package islamic_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aliebnemara/budget-management-backend/engine"
	"github.com/aliebnemara/budget-management-backend/islamic"
)

func date(y int, m time.Month, d int) engine.Date {
	return engine.NewDate(y, m, d)
}

// testCalendar is a complete 2025/2026 configuration with compressed
// long-event durations to keep fixtures small.
func testCalendar() *islamic.Calendar {
	return &islamic.Calendar{
		CompareYear: 2025,
		BudgetYear:  2026,
		Ramadan: engine.EventConfig{
			CYStart: date(2025, time.March, 1), CYDuration: 10,
			BYStart: date(2026, time.February, 24), BYDuration: 10,
		},
		Muharram: engine.EventConfig{
			CYStart: date(2025, time.June, 26), CYDuration: 10,
			BYStart: date(2026, time.June, 16), BYDuration: 10,
		},
		EidAlAdha: engine.EventConfig{
			CYStart: date(2025, time.June, 6),
			BYStart: date(2026, time.May, 27),
		},
	}
}

func TestEventMetadata(t *testing.T) {
	if islamic.Ramadan.Class() != engine.LongVariable {
		t.Error("ramadan must be long variable")
	}
	if islamic.EidAlAdha.Class() != engine.ShortFixed {
		t.Error("eid_al_adha must be short fixed")
	}
	if islamic.EidAlAdha.FixedDuration() != 3 {
		t.Errorf("eid_al_adha is always 3 days, got %d", islamic.EidAlAdha.FixedDuration())
	}
	if islamic.EidAlFitr.FixedDuration() != 0 {
		t.Error("eid_al_fitr duration is configurable")
	}
	if islamic.Event("christmas").Known() {
		t.Error("unsupported events must not be known")
	}
}

func TestCalendarNormalizeDefaults(t *testing.T) {
	// GIVEN: A calendar with durations and the Eid al-Fitr dates omitted
	// WHEN: Normalized
	// THEN: Defaults fill in, and the tail starts the day after Ramadan
	cal := testCalendar()
	cal.Ramadan.CYDuration = 0
	cal.Ramadan.BYDuration = 0

	cal.Normalize()

	if cal.Ramadan.CYDuration != 30 || cal.Ramadan.BYDuration != 30 {
		t.Errorf("ramadan defaults to 30 days, got %d/%d", cal.Ramadan.CYDuration, cal.Ramadan.BYDuration)
	}
	if cal.Muharram.CYDuration != 10 {
		t.Errorf("muharram keeps its configured 10 days, got %d", cal.Muharram.CYDuration)
	}
	if cal.EidAlFitr.CYDuration != 4 {
		t.Errorf("eid_al_fitr defaults to 4 days, got %d", cal.EidAlFitr.CYDuration)
	}

	wantCY := date(2025, time.March, 31) // day after the 30-day window
	if !cal.EidAlFitr.CYStart.Equal(wantCY) {
		t.Errorf("expected eid_al_fitr cy_start %s, got %s", wantCY, cal.EidAlFitr.CYStart)
	}
	wantBY := date(2026, time.March, 26)
	if !cal.EidAlFitr.BYStart.Equal(wantBY) {
		t.Errorf("expected eid_al_fitr by_start %s, got %s", wantBY, cal.EidAlFitr.BYStart)
	}
}

func TestCalendarValidate(t *testing.T) {
	cal := testCalendar()
	if err := cal.Validate(); err != nil {
		t.Fatalf("valid calendar rejected: %v", err)
	}

	// Eid al-Fitr derived from Ramadan's compressed windows.
	if !cal.EidAlFitr.CYStart.Equal(date(2025, time.March, 11)) {
		t.Errorf("expected derived cy_start 2025-03-11, got %s", cal.EidAlFitr.CYStart)
	}
	if !cal.EidAlFitr.BYStart.Equal(date(2026, time.March, 6)) {
		t.Errorf("expected derived by_start 2026-03-06, got %s", cal.EidAlFitr.BYStart)
	}
}

func TestCalendarValidateCollectsAllErrors(t *testing.T) {
	// GIVEN: Two independently broken events
	// WHEN: Validated
	// THEN: Both problems are reported in one error
	cal := testCalendar()
	cal.Muharram.CYStart = engine.Date{}
	cal.EidAlAdha.BYStart = engine.Date{}

	err := cal.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !engine.IsConfiguration(err) {
		t.Errorf("expected a configuration error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "muharram") || !strings.Contains(msg, "eid_al_adha") {
		t.Errorf("expected both events in the message, got %q", msg)
	}
}
