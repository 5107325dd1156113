/*
Package engine provides the core calendar-effects estimation engine.

PURPOSE:
  This package contains domain-agnostic types and algorithms for estimating
  Budget Year (BY) daily sales from a Compare Year (CY) history when a
  configurable calendar event shifts across solar-month boundaries between
  the two years. The concrete events (Ramadan, Muharram, the Eids) live in
  the islamic package; the engine only knows about event windows, day
  classes, reference populations and resolution strategies.

KEY CONCEPTS IN THIS FILE (event.go):
  - EventType: metadata the engine needs about an event (duration class)
  - EventWindow: the contiguous [start, start+duration-1] range in one year
  - MonthSet: the calendar months touched by a window
  - EventConfig: one event's CY/BY start dates and durations

DESIGN PRINCIPLES:
  1. Purity: every derivation here is a function of the configuration only
  2. No hardcoded months: affected months are always derived from windows
  3. Precision: all sales arithmetic uses decimal.Decimal (see history.go)

SEE ALSO:
  - classify.go: Day classification against one configuration
  - average.go:  Reference selection and weekday averaging
  - resolver.go: The two event-day estimation strategies
  - plan.go:     Day-by-day plan generation
*/
package engine

import (
	"sort"
	"time"
)

// =============================================================================
// EVENT TYPE - What the engine needs to know about an event
// =============================================================================

// DurationClass selects the event-day estimation strategy.
type DurationClass int

const (
	// LongVariable events (tens of days, length varies by year) estimate
	// event days with weekday-matched averages over the whole CY window.
	LongVariable DurationClass = iota

	// ShortFixed events (a few days, same length every year) copy the CY
	// value at the same ordinal position, ignoring weekday.
	ShortFixed
)

// EventType identifies one calendar event. This is an interface so domain
// packages define their own concrete types; the engine has no knowledge of
// specific events.
type EventType interface {
	// EventID returns the stable identifier, e.g. "ramadan".
	EventID() string

	// EventName returns the display name, e.g. "Ramadan".
	EventName() string

	// Class returns the duration class selecting the estimation strategy.
	Class() DurationClass

	// FixedDuration returns the mandated window length for ShortFixed
	// events whose duration is not configurable, or 0 when the duration
	// comes from configuration.
	FixedDuration() int
}

// =============================================================================
// EVENT WINDOW - [start, start+duration-1] in one year
// =============================================================================

type EventWindow struct {
	Start Date
	End   Date
}

// NewWindow builds a window from a start date and an inclusive day count.
func NewWindow(start Date, duration int) EventWindow {
	return EventWindow{Start: start, End: start.AddDays(duration - 1)}
}

func (w EventWindow) Contains(d Date) bool {
	return d.AfterOrEqual(w.Start) && d.BeforeOrEqual(w.End)
}

// Days returns every day of the window in calendar order.
func (w EventWindow) Days() []Date {
	var days []Date
	for cur := w.Start; cur.BeforeOrEqual(w.End); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}

// Ordinal returns the 1-based position of a day inside the window,
// or 0 when the day is outside it. Ordinal position, not weekday, is what
// short fixed events preserve across years.
func (w EventWindow) Ordinal(d Date) int {
	if !w.Contains(d) {
		return 0
	}
	return DaysBetween(w.Start, d) + 1
}

// Duration returns the inclusive length of the window in days.
func (w EventWindow) Duration() int {
	return DaysBetween(w.Start, w.End) + 1
}

// Months returns the set of calendar months the window touches
// (1 or 2 for every realistic configuration).
func (w EventWindow) Months() MonthSet {
	set := MonthSet{}
	for cur := w.Start; cur.BeforeOrEqual(w.End); cur = cur.AddDays(1) {
		set[cur.Month()] = true
	}
	return set
}

// YearForMonth returns the year in which the window touches the given
// month, or fallback when it does not. Needed when a window crosses a
// year boundary (e.g. late December into January).
func (w EventWindow) YearForMonth(m time.Month, fallback int) int {
	for cur := w.Start; cur.BeforeOrEqual(w.End); cur = cur.AddDays(1) {
		if cur.Month() == m {
			return cur.Year()
		}
	}
	return fallback
}

func (w EventWindow) String() string {
	return "[" + w.Start.String() + ", " + w.End.String() + "]"
}

// =============================================================================
// MONTH SET
// =============================================================================

// MonthSet is a set of calendar month numbers. Months carry no year here;
// the year is resolved per window when days are walked.
type MonthSet map[time.Month]bool

func (s MonthSet) Contains(m time.Month) bool { return s[m] }

func (s MonthSet) Union(other MonthSet) MonthSet {
	out := MonthSet{}
	for m := range s {
		out[m] = true
	}
	for m := range other {
		out[m] = true
	}
	return out
}

func (s MonthSet) Equal(other MonthSet) bool {
	if len(s) != len(other) {
		return false
	}
	for m := range s {
		if !other[m] {
			return false
		}
	}
	return true
}

// Sorted returns the months in ascending calendar order.
func (s MonthSet) Sorted() []time.Month {
	out := make([]time.Month, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// =============================================================================
// EVENT CONFIG - One event across the CY/BY pair
// =============================================================================

// EventConfig holds one event's start date and duration in each year.
// CompareYear/BudgetYear default to the start dates' years; they only need
// to be set explicitly for windows that begin in the preceding December.
type EventConfig struct {
	Event EventType

	CompareYear int
	BudgetYear  int

	CYStart    Date
	CYDuration int
	BYStart    Date
	BYDuration int
}

// Validate checks the configuration and fills derived defaults.
// Returns a *ConfigurationError describing the first problem found.
func (c *EventConfig) Validate() error {
	if c.Event == nil {
		return &ConfigurationError{Event: "?", Field: "event", Reason: "missing event type"}
	}
	id := c.Event.EventID()
	if fixed := c.Event.FixedDuration(); fixed > 0 {
		// Not configurable; the mandated length always wins.
		c.CYDuration = fixed
		c.BYDuration = fixed
	}
	if c.CYStart.IsZero() {
		return &ConfigurationError{Event: id, Field: "cy_start", Reason: "missing date"}
	}
	if c.BYStart.IsZero() {
		return &ConfigurationError{Event: id, Field: "by_start", Reason: "missing date"}
	}
	if c.CYDuration < 1 {
		return &ConfigurationError{Event: id, Field: "cy_duration", Reason: "must be at least 1 day"}
	}
	if c.BYDuration < 1 {
		return &ConfigurationError{Event: id, Field: "by_duration", Reason: "must be at least 1 day"}
	}
	if !c.BYStart.After(c.CYStart) {
		return &ConfigurationError{Event: id, Field: "by_start", Reason: "budget year window must start after compare year window"}
	}
	if c.CompareYear == 0 {
		c.CompareYear = c.CYStart.Year()
	}
	if c.BudgetYear == 0 {
		c.BudgetYear = c.BYStart.Year()
	}
	if c.BudgetYear <= c.CompareYear {
		return &ConfigurationError{Event: id, Field: "budget_year", Reason: "budget year must be after compare year"}
	}
	return nil
}

func (c EventConfig) CYWindow() EventWindow { return NewWindow(c.CYStart, c.CYDuration) }
func (c EventConfig) BYWindow() EventWindow { return NewWindow(c.BYStart, c.BYDuration) }

// CYMonths is the set of months touched by the event in the compare year.
func (c EventConfig) CYMonths() MonthSet { return c.CYWindow().Months() }

// BYMonths is the set of months carrying the event's effect in the budget
// year. It is the BY window's months unioned with the CY window's months,
// so a month that held the event in CY but lost it in BY is still estimated
// and its impact measured as a negative delta.
func (c EventConfig) BYMonths() MonthSet {
	return c.BYWindow().Months().Union(c.CYWindow().Months())
}

// AffectedMonthUnion is every month the plan generator must walk.
func (c EventConfig) AffectedMonthUnion() []time.Month {
	return c.BYMonths().Sorted()
}

// SameMonth reports whether the CY and BY windows touch identical month
// sets. For short fixed events this triggers the no-shift short circuit:
// a same-month occurrence is defined to have zero measurable shift effect.
func (c EventConfig) SameMonth() bool {
	return c.CYWindow().Months().Equal(c.BYWindow().Months())
}
