/*
plan.go - Estimation plan generation

PURPOSE:
  Walks every calendar day of every month in the CY/BY affected-month
  union for one (event configuration, branch) pair and records how that
  budget-year day is estimated: which method, from which source, to what
  value. The plan is the day-level output the reporting layer renders and
  the only input the month aggregator needs.

DETERMINISM:
  Generation is stateless and side-effect-free. Months ascend, days ascend,
  all arithmetic is decimal; two runs over identical inputs produce
  identical plans entry for entry.

KEY INSIGHT:
  The union is what kills hardcoded month numbers. A month is walked
  because a window touches it in either year - never because the code
  knows which month an event "usually" falls in. Months that lost the
  event in BY are still walked so their impact shows up as a negative
  delta, and months that newly gained it produce the new-period state.
*/
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PLAN TYPES
// =============================================================================

// PlanEntry is the estimation record for one budget-year calendar day.
type PlanEntry struct {
	Date    Date // BY calendar day
	CYDate  Date // same month/day mirrored into the compare year
	Weekday time.Weekday
	Class   DayClass

	Method     Method
	Source     string
	SourceDate Date // set for direct copy
	Ordinal    int  // set for direct copy

	Actual   decimal.Decimal // CY actual at CYDate (zero when no data)
	Estimate decimal.Decimal // resolved BY estimate

	// InsufficientData marks entries whose source had no historical
	// contribution and that fell back to the CY actual or zero.
	InsufficientData bool
}

// Plan is the full day-by-day estimation for one event and branch.
type Plan struct {
	Branch      BranchID
	Event       EventType
	CompareYear int
	BudgetYear  int
	Entries     []PlanEntry
}

// EntriesForMonth returns the plan's entries for one calendar month.
func (p *Plan) EntriesForMonth(m time.Month) []PlanEntry {
	var out []PlanEntry
	for _, e := range p.Entries {
		if e.Date.Month() == m {
			out = append(out, e)
		}
	}
	return out
}

// Months returns the distinct months the plan covers, ascending.
func (p *Plan) Months() []time.Month {
	set := MonthSet{}
	for _, e := range p.Entries {
		set[e.Date.Month()] = true
	}
	return set.Sorted()
}

// =============================================================================
// GENERATOR
// =============================================================================

// PlanInput carries everything plan generation needs.
type PlanInput struct {
	Config EventConfig
	Branch BranchID

	// Overlay is an optional short fixed event coupled to the main one
	// (the Eid al-Fitr tail riding on Ramadan). Days inside the overlay's
	// BY window take positional copy precedence over the main strategy,
	// and the overlay's months join the walked union.
	Overlay *EventConfig

	History *History
}

// GeneratePlan produces the estimation plan for one configuration and
// branch. Configuration problems surface before any day is walked.
func GeneratePlan(input PlanInput) (*Plan, error) {
	cfg := input.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var overlayResolver EventDayResolver
	months := cfg.BYMonths()
	if input.Overlay != nil {
		if err := input.Overlay.Validate(); err != nil {
			return nil, err
		}
		months = months.Union(input.Overlay.BYMonths())
		overlayResolver = &PositionalDirectCopy{
			CY:    input.Overlay.CYWindow(),
			BY:    input.Overlay.BYWindow(),
			Label: input.Overlay.Event.EventName(),
		}
	}

	sel := NewReferenceSelector(cfg, input.Overlay, input.History)
	resolver := ResolverFor(cfg)

	plan := &Plan{
		Branch:      input.Branch,
		Event:       cfg.Event,
		CompareYear: cfg.CompareYear,
		BudgetYear:  cfg.BudgetYear,
	}

	for _, m := range months.Sorted() {
		byYear := cfg.BYWindow().YearForMonth(m, cfg.BudgetYear)
		cyYear := cfg.CYWindow().YearForMonth(m, cfg.CompareYear)
		if input.Overlay != nil {
			// Months only the overlay touches still resolve to the
			// overlay window's year, not the bare fallback.
			byYear = cfg.BYWindow().YearForMonth(m, input.Overlay.BYWindow().YearForMonth(m, cfg.BudgetYear))
			cyYear = cfg.CYWindow().YearForMonth(m, input.Overlay.CYWindow().YearForMonth(m, cfg.CompareYear))
		}

		for day := 1; day <= DaysInMonth(byYear, m); day++ {
			byDate := NewDate(byYear, m, day)
			cyDate := byDate.MirrorToYear(cyYear)
			actual, hasActual := input.History.Gross(cyDate)
			if cyDate.Day() != byDate.Day() {
				// Feb 29 clamps onto Feb 28's mirror; counting that
				// actual twice would inflate the month total.
				actual, hasActual = decimal.Zero, false
			}

			entry := PlanEntry{
				Date:    byDate,
				CYDate:  cyDate,
				Weekday: byDate.Weekday(),
				Actual:  actual,
			}

			var res Resolution
			switch {
			case input.Overlay != nil && input.Overlay.BYWindow().Contains(byDate):
				entry.Class = DayEvent
				res = overlayResolver.Resolve(byDate, sel, input.History)

			case cfg.Classify(byDate, BudgetYear) == DayEvent:
				entry.Class = DayEvent
				res = resolver.Resolve(byDate, sel, input.History)

			default:
				// Every walked month carries the effect in one year or
				// the other, the overlay's months included, so a
				// non-event day is always estimated from its CY month's
				// non-event weekday table. That is what surfaces the
				// negative delta in a month that held the event (or its
				// tail) in CY and lost it in BY.
				entry.Class = DaySameMonthNonEvent
				table := sel.MonthAverages(m)
				est, ok := table[byDate.Weekday()]
				res = Resolution{
					Method:   MethodWeekdayAverage,
					Source:   fmt.Sprintf("CY %s %d non-event days", m, cyYear),
					Estimate: est,
					Missing:  !ok,
				}
			}

			entry.Method = res.Method
			entry.Source = res.Source
			entry.SourceDate = res.SourceDate
			entry.Ordinal = res.Ordinal
			entry.Estimate = res.Estimate

			if res.Missing {
				if hasActual {
					entry.Estimate = actual
				} else {
					entry.Estimate = decimal.Zero
				}
				entry.InsufficientData = true
			}

			plan.Entries = append(plan.Entries, entry)
		}
	}

	return plan, nil
}
