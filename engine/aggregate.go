/*
aggregate.go - Month-level impact aggregation

PURPOSE:
  Rolls resolved plan entries into per-month actual-vs-estimated totals and
  the percentage impact the reporting layer consumes. Division by a zero
  actual is handled structurally with sentinel states, never as a raw
  arithmetic error.

STATES:
  ImpactNormal     finite percentage, (est - actual) / actual * 100
  ImpactNewPeriod  CY actual is zero: the event newly appears in that month
  ImpactLostPeriod BY estimate is zero: the event vacated the month (-100%)
  ImpactNoShift    same-month short circuit for short fixed events

INVARIANT:
  A month's EstimatedTotal equals the sum of its plan entries' estimates;
  nothing is double counted or omitted.
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImpactState classifies a month's impact figure.
type ImpactState string

const (
	ImpactNormal     ImpactState = "normal"
	ImpactNewPeriod  ImpactState = "new_period"
	ImpactLostPeriod ImpactState = "lost_period"
	ImpactNoShift    ImpactState = "no_shift"
)

var hundred = decimal.NewFromInt(100)

// MonthlySummary is one (branch, month) row of an event's impact report.
type MonthlySummary struct {
	Branch BranchID
	Event  EventType
	Month  time.Month

	ActualTotal    decimal.Decimal
	EstimatedTotal decimal.Decimal

	// ImpactPct is meaningful only when State is ImpactNormal or
	// ImpactLostPeriod; sentinel states carry zero.
	ImpactPct decimal.Decimal
	State     ImpactState

	// InsufficientData is set when any contributing day fell back for
	// lack of history.
	InsufficientData bool
}

// Summarize rolls a plan into one summary per covered month, ascending.
func Summarize(plan *Plan) []MonthlySummary {
	var out []MonthlySummary
	for _, m := range plan.Months() {
		out = append(out, summarizeMonth(plan, m))
	}
	return out
}

func summarizeMonth(plan *Plan, m time.Month) MonthlySummary {
	s := MonthlySummary{
		Branch: plan.Branch,
		Event:  plan.Event,
		Month:  m,
	}

	for _, e := range plan.EntriesForMonth(m) {
		s.ActualTotal = s.ActualTotal.Add(e.Actual)
		s.EstimatedTotal = s.EstimatedTotal.Add(e.Estimate)
		if e.InsufficientData {
			s.InsufficientData = true
		}
	}

	switch {
	case s.ActualTotal.IsZero():
		s.State = ImpactNewPeriod
	case s.EstimatedTotal.IsZero():
		s.State = ImpactLostPeriod
		s.ImpactPct = hundred.Neg()
	default:
		s.State = ImpactNormal
		s.ImpactPct = s.EstimatedTotal.Sub(s.ActualTotal).
			Div(s.ActualTotal).
			Mul(hundred).
			Round(2)
	}

	return s
}

// NoShiftSummaries builds the report for a short fixed event whose CY and
// BY windows share the same months: the shift effect is defined to be
// zero, so every affected month reports a zero impact without any weekday
// table being built. Actual totals are still surfaced for display.
func NoShiftSummaries(cfg EventConfig, branch BranchID, history *History) []MonthlySummary {
	var out []MonthlySummary
	for _, m := range cfg.CYMonths().Sorted() {
		year := cfg.CYWindow().YearForMonth(m, cfg.CompareYear)

		var actual decimal.Decimal
		for cur := StartOfMonth(year, m); cur.Month() == m; cur = cur.AddDays(1) {
			if v, ok := history.Gross(cur); ok {
				actual = actual.Add(v)
			}
		}

		out = append(out, MonthlySummary{
			Branch:         branch,
			Event:          cfg.Event,
			Month:          m,
			ActualTotal:    actual,
			EstimatedTotal: actual,
			State:          ImpactNoShift,
		})
	}
	return out
}
