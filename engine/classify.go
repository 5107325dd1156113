/*
classify.go - Day classification relative to one event configuration

PURPOSE:
  Tags every date with its role relative to one event in one year. This is
  a pure tagging pass: no state, no side effects, reused by the reference
  selector and the plan generator.

CLASSES:
  DayEvent             inside the year's event window
  DaySameMonthNonEvent same calendar month as (part of) the window, outside it
  DayNormal            unrelated month, excluded from this event's processing

PARTITION GUARANTEE:
  For any date and year, exactly one class applies. Every date inside the
  CY/BY affected-month union classifies as DayEvent or DaySameMonthNonEvent;
  everything else is DayNormal.

For long events the same-month class doubles as the "non-event period"
reference population: the whole affected span outside the window feeds the
outside-window weekday tables, while the window itself feeds the period
table (see average.go).
*/
package engine

// YearTag selects which of the two years a classification refers to.
type YearTag int

const (
	CompareYear YearTag = iota
	BudgetYear
)

// DayClass is a date's role relative to one event configuration.
type DayClass int

const (
	DayNormal DayClass = iota
	DayEvent
	DaySameMonthNonEvent
)

func (c DayClass) String() string {
	switch c {
	case DayEvent:
		return "event"
	case DaySameMonthNonEvent:
		return "same_month_non_event"
	default:
		return "normal"
	}
}

// Classify tags a date relative to the configuration in the given year.
//
// The budget-year affected-month set is the CY/BY union (see
// EventConfig.BYMonths), so a BY month that lost the event still classifies
// its days as same-month non-event rather than normal; those days are
// estimated from the CY month's non-event population, which is what makes
// the lost month's impact measurable.
func (c EventConfig) Classify(d Date, year YearTag) DayClass {
	var window EventWindow
	var months MonthSet
	switch year {
	case CompareYear:
		window = c.CYWindow()
		months = c.CYMonths()
	default:
		window = c.BYWindow()
		months = c.BYMonths()
	}

	if window.Contains(d) {
		return DayEvent
	}
	if months.Contains(d.Month()) {
		return DaySameMonthNonEvent
	}
	return DayNormal
}
