/*
Package islamic defines the four lunar calendar events the estimation
engine corrects for, and the Calendar configuration tying their compare
year and budget year occurrences together.

THE EVENTS:
  Ramadan     - long variable event (about a month of depressed daytime
                trade and shifted evening peaks), default 30 days
  Muharram    - long variable event around Ashura, default 10 days
  Eid al-Fitr - short fixed tail immediately after Ramadan, default 4
                days, configurable
  Eid al-Adha - short fixed event, always 3 days

WHY THEY MATTER:
  The Hijri year is about 11 days shorter than the solar year, so each
  event starts roughly 11 days earlier every Gregorian year. When a
  window crosses a solar month boundary between the compare year and the
  budget year, naive month-over-month comparisons misattribute the
  event's sales effect to the month itself. The engine package removes
  that distortion; this package supplies the event metadata.

SEE ALSO:
  - calendar.go:  Calendar configuration and validation
  - estimator.go: Per-branch and fleet-wide estimation runs
  - engine/:      The domain-agnostic estimation machinery
*/
package islamic

import (
	"github.com/aliebnemara/budget-management-backend/engine"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event identifies one of the supported lunar events.
type Event string

const (
	Ramadan   Event = "ramadan"
	Muharram  Event = "muharram"
	EidAlFitr Event = "eid_al_fitr"
	EidAlAdha Event = "eid_al_adha"
)

// Events lists the supported events in reporting order.
var Events = []Event{Ramadan, Muharram, EidAlFitr, EidAlAdha}

func (e Event) EventID() string { return string(e) }

func (e Event) EventName() string {
	switch e {
	case Ramadan:
		return "Ramadan"
	case Muharram:
		return "Muharram"
	case EidAlFitr:
		return "Eid al-Fitr"
	case EidAlAdha:
		return "Eid al-Adha"
	}
	return string(e)
}

func (e Event) Class() engine.DurationClass {
	switch e {
	case EidAlFitr, EidAlAdha:
		return engine.ShortFixed
	}
	return engine.LongVariable
}

// FixedDuration returns the mandated window length. Only Eid al-Adha is
// locked to a fixed length; every other event's duration is configurable.
func (e Event) FixedDuration() int {
	if e == EidAlAdha {
		return 3
	}
	return 0
}

// DefaultDuration is the duration applied when configuration leaves one out.
func (e Event) DefaultDuration() int {
	switch e {
	case Ramadan:
		return 30
	case Muharram:
		return 10
	case EidAlFitr:
		return 4
	case EidAlAdha:
		return 3
	}
	return 0
}

// Known reports whether the identifier names a supported event.
func (e Event) Known() bool {
	for _, known := range Events {
		if e == known {
			return true
		}
	}
	return false
}

var _ engine.EventType = Ramadan
