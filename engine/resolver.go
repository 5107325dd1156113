/*
resolver.go - The two event-day estimation strategies

PURPOSE:
  An event day in the budget year is estimated by exactly one of two
  mutually exclusive strategies, selected by the event's duration class.
  Keeping them as explicit strategy types (rather than per-event branching)
  is the load-bearing design decision of this engine: the two algorithms
  answer different questions and must never cross-contaminate.

  WeekdayMatchedAverage (long, variable events):
    The BY day's estimate is the period table's value at the BY day's own
    weekday. Two BY days on the same weekday draw the same estimate; the
    calendar date only picks the bucket.

  PositionalDirectCopy (short, fixed events):
    The BY day at ordinal k receives the exact, unaveraged CY value at
    ordinal k. Weekday is irrelevant; ceremonial position is what carries
    (day 1 is the principal feast day whatever weekday it lands on).

FALLBACK:
  When a strategy has no data (empty weekday bucket, missing CY source
  day), it reports Missing and the plan generator falls back to the BY
  day's own mirrored CY actual, else zero, flagging the entry.
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Method names the estimation technique recorded on a plan entry.
type Method string

const (
	MethodWeekdayAverage Method = "weekday_average"
	MethodDirectCopy     Method = "direct_copy"
)

// Resolution is a strategy's answer for one BY event day.
type Resolution struct {
	Method     Method
	Source     string // human-readable source reference
	SourceDate Date   // CY source day (direct copy only)
	Ordinal    int    // position within the window (direct copy only)
	Estimate   decimal.Decimal
	Missing    bool // no data behind the source; caller must fall back
}

// EventDayResolver estimates one BY day that lies inside the event window.
type EventDayResolver interface {
	Resolve(day Date, sel *ReferenceSelector, history *History) Resolution
}

// ResolverFor returns the strategy mandated by the event's duration class.
func ResolverFor(cfg EventConfig) EventDayResolver {
	if cfg.Event.Class() == ShortFixed {
		return &PositionalDirectCopy{CY: cfg.CYWindow(), BY: cfg.BYWindow(), Label: cfg.Event.EventName()}
	}
	return &WeekdayMatchedAverage{Label: cfg.Event.EventName()}
}

// =============================================================================
// WEEKDAY-MATCHED AVERAGE
// =============================================================================

type WeekdayMatchedAverage struct {
	Label string
}

func (r *WeekdayMatchedAverage) Resolve(day Date, sel *ReferenceSelector, _ *History) Resolution {
	table := sel.PeriodAverages()
	est, ok := table[day.Weekday()]
	return Resolution{
		Method:   MethodWeekdayAverage,
		Source:   fmt.Sprintf("CY %s period (%s)", r.Label, sel.cfg.CYWindow()),
		Estimate: est,
		Missing:  !ok,
	}
}

// =============================================================================
// POSITIONAL DIRECT COPY
// =============================================================================

type PositionalDirectCopy struct {
	CY    EventWindow
	BY    EventWindow
	Label string
}

func (r *PositionalDirectCopy) Resolve(day Date, _ *ReferenceSelector, history *History) Resolution {
	ordinal := r.BY.Ordinal(day)
	if ordinal == 0 {
		// Not an event day; nothing to copy.
		return Resolution{Method: MethodDirectCopy, Missing: true}
	}

	// BY window may be configured longer than CY's; ordinals past the CY
	// window's end have no source day.
	if ordinal > r.CY.Duration() {
		return Resolution{Method: MethodDirectCopy, Ordinal: ordinal, Missing: true}
	}

	source := r.CY.Start.AddDays(ordinal - 1)
	est, ok := history.Gross(source)
	return Resolution{
		Method:     MethodDirectCopy,
		Source:     fmt.Sprintf("CY %s day %d (%s)", r.Label, ordinal, source),
		SourceDate: source,
		Ordinal:    ordinal,
		Estimate:   est,
		Missing:    !ok,
	}
}
