/*
average.go - Reference selection and weekday averaging

PURPOSE:
  Computes the weekday->mean-sales tables the resolver consults. A table is
  always built from one reference population of CY days sharing a single
  classification for a single branch; populations are never mixed across
  branches or classifications.

SELECTION-KEY POLICY (which CY source feeds which BY day):
  Long events:
    EVENT days                -> the whole CY window, as one "period" table
    SAME_MONTH_NON_EVENT days -> that calendar month's CY non-event days
  Short events:
    SAME_MONTH_NON_EVENT days -> same as above
    EVENT days                -> no table at all; positional copy instead

  Same-month sources never borrow from a neighboring month: each month has
  enough non-event days for stable per-weekday means, and cross-month
  borrowing introduces seasonal bias.

CACHING:
  Tables are memoized per selector so every BY day resolving to the same
  source computes the mean exactly once. A selector lives for one
  estimation run only; the cache must never outlive a configuration, or a
  stale table could leak into a run with different windows. Memoization is
  purely a performance detail and cannot change output.
*/
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WeekdayAverages maps a weekday to the mean gross sales of the reference
// population's days falling on that weekday. A missing weekday means the
// population had no data for it; the caller must fall back (resolver.go).
type WeekdayAverages map[time.Weekday]decimal.Decimal

// =============================================================================
// REFERENCE SELECTOR
// =============================================================================

// ReferenceSelector builds and memoizes the weekday tables for one
// (branch, event configuration) pair. Not safe for concurrent use; each
// branch computation owns its own selector.
//
// The optional overlay is a coupled event riding on the main one (the Eid
// al-Fitr tail on Ramadan). Its CY window days are event days too and must
// never feed a non-event month table, or a feast-day spike poisons the
// baseline the surrounding days are estimated from.
type ReferenceSelector struct {
	cfg     EventConfig
	overlay *EventConfig
	history *History
	cache   map[string]WeekdayAverages
}

func NewReferenceSelector(cfg EventConfig, overlay *EventConfig, history *History) *ReferenceSelector {
	return &ReferenceSelector{
		cfg:     cfg,
		overlay: overlay,
		history: history,
		cache:   make(map[string]WeekdayAverages),
	}
}

// PeriodAverages returns the weekday table built from every CY day inside
// the event window, regardless of which months the window spans. This is
// the single "period" source all long-event BY days share.
func (s *ReferenceSelector) PeriodAverages() WeekdayAverages {
	const key = "period"
	if t, ok := s.cache[key]; ok {
		return t
	}
	t := s.average(s.cfg.CYWindow().Days())
	s.cache[key] = t
	return t
}

// MonthAverages returns the weekday table built from the CY calendar
// month's days that are NOT event days. Each BY month consults its own CY
// month, never another month's.
func (s *ReferenceSelector) MonthAverages(m time.Month) WeekdayAverages {
	key := fmt.Sprintf("month:%d", int(m))
	if t, ok := s.cache[key]; ok {
		return t
	}

	year := s.cfg.CYWindow().YearForMonth(m, s.cfg.CompareYear)
	if s.overlay != nil {
		year = s.cfg.CYWindow().YearForMonth(m, s.overlay.CYWindow().YearForMonth(m, s.cfg.CompareYear))
	}
	var population []Date
	for cur := StartOfMonth(year, m); cur.Month() == m; cur = cur.AddDays(1) {
		if s.cfg.Classify(cur, CompareYear) == DayEvent {
			continue
		}
		if s.overlay != nil && s.overlay.CYWindow().Contains(cur) {
			continue
		}
		population = append(population, cur)
	}

	t := s.average(population)
	s.cache[key] = t
	return t
}

// average groups the population's days with data by weekday and computes
// the arithmetic mean per bucket. Days without history rows contribute
// nothing, so a closed day never drags a mean toward zero.
func (s *ReferenceSelector) average(population []Date) WeekdayAverages {
	sums := make(map[time.Weekday]decimal.Decimal)
	counts := make(map[time.Weekday]int64)

	for _, d := range population {
		gross, ok := s.history.Gross(d)
		if !ok {
			continue
		}
		wd := d.Weekday()
		sums[wd] = sums[wd].Add(gross)
		counts[wd]++
	}

	table := make(WeekdayAverages, len(sums))
	for wd, sum := range sums {
		table[wd] = sum.Div(decimal.NewFromInt(counts[wd]))
	}
	return table
}
