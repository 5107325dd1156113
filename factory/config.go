/*
Package factory provides JSON to Go event-calendar conversion.

PURPOSE:
  Converts JSON calendar definitions into an islamic.Calendar. This
  enables event configuration without code changes - planners enter the
  observed and projected Hijri event dates in JSON, and the factory
  produces the validated Go configuration the estimator runs on.

WHY JSON?
  - Non-developers can maintain the event dates each budget cycle
  - Easy integration with an admin UI
  - Version control for calendar definitions
  - Database storage of calendar configs (see store/sqlite)

JSON SCHEMA:
  {
    "compare_year": 2025,
    "budget_year": 2026,
    "events": {
      "ramadan": {
        "cy_start": "2025-03-01", "cy_duration": 30,
        "by_start": "2026-02-18", "by_duration": 30
      },
      "muharram": {
        "cy_start": "2025-06-26", "cy_duration": 10,
        "by_start": "2026-06-16", "by_duration": 10
      },
      "eid_al_fitr": {
        "cy_duration": 4, "by_duration": 4
      },
      "eid_al_adha": {
        "cy_start": "2025-06-06",
        "by_start": "2026-05-27"
      }
    }
  }

KEY FEATURES:
  - Omitted durations take event defaults (Eid al-Adha is always 3)
  - Omitted Eid al-Fitr starts derive from Ramadan's window end
  - Round-trips: ToJSON(FromJSON(x)) preserves the configuration

USAGE:
  factory := NewCalendarFactory()
  cal, err := factory.ParseCalendar(jsonString)

SEE ALSO:
  - islamic/calendar.go: Calendar normalization and validation
  - store/sqlite:        Persisted calendar configs use this schema
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/aliebnemara/budget-management-backend/engine"
	"github.com/aliebnemara/budget-management-backend/islamic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalendarJSON is the JSON representation of an event calendar.
type CalendarJSON struct {
	CompareYear int                  `json:"compare_year"`
	BudgetYear  int                  `json:"budget_year"`
	Events      map[string]EventJSON `json:"events"`
}

// EventJSON holds one event's dates. Start dates use YYYY-MM-DD; a zero
// duration means "use the event's default".
type EventJSON struct {
	CYStart    string `json:"cy_start,omitempty"`
	CYDuration int    `json:"cy_duration,omitempty"`
	BYStart    string `json:"by_start,omitempty"`
	BYDuration int    `json:"by_duration,omitempty"`
}

// =============================================================================
// CALENDAR FACTORY
// =============================================================================

// CalendarFactory converts JSON calendars to islamic.Calendar and back.
type CalendarFactory struct{}

func NewCalendarFactory() *CalendarFactory {
	return &CalendarFactory{}
}

// ParseCalendar parses and validates a JSON calendar definition.
func (f *CalendarFactory) ParseCalendar(jsonStr string) (*islamic.Calendar, error) {
	var cj CalendarJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse calendar JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts CalendarJSON to a validated islamic.Calendar.
func (f *CalendarFactory) FromJSON(cj CalendarJSON) (*islamic.Calendar, error) {
	cal := &islamic.Calendar{
		CompareYear: cj.CompareYear,
		BudgetYear:  cj.BudgetYear,
	}

	for id, ej := range cj.Events {
		event := islamic.Event(id)
		if !event.Known() {
			return nil, fmt.Errorf("unknown event %q: %w", id, engine.ErrInvalidConfiguration)
		}

		cfg := cal.Config(event)
		cfg.CYDuration = ej.CYDuration
		cfg.BYDuration = ej.BYDuration

		var err error
		if cfg.CYStart, err = parseDate(id, "cy_start", ej.CYStart); err != nil {
			return nil, err
		}
		if cfg.BYStart, err = parseDate(id, "by_start", ej.BYStart); err != nil {
			return nil, err
		}
	}

	if err := cal.Validate(); err != nil {
		return nil, err
	}
	return cal, nil
}

// ToJSON converts a Calendar to its JSON representation. The calendar is
// normalized first so derived defaults are written out explicitly.
func (f *CalendarFactory) ToJSON(cal *islamic.Calendar) CalendarJSON {
	cal.Normalize()

	cj := CalendarJSON{
		CompareYear: cal.CompareYear,
		BudgetYear:  cal.BudgetYear,
		Events:      make(map[string]EventJSON, len(islamic.Events)),
	}
	for _, event := range islamic.Events {
		cfg := cal.Config(event)
		cj.Events[string(event)] = EventJSON{
			CYStart:    dateString(cfg.CYStart),
			CYDuration: cfg.CYDuration,
			BYStart:    dateString(cfg.BYStart),
			BYDuration: cfg.BYDuration,
		}
	}
	return cj
}

func dateString(d engine.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func parseDate(event, field, s string) (engine.Date, error) {
	if s == "" {
		return engine.Date{}, nil
	}
	d, err := engine.ParseDate(s)
	if err != nil {
		return engine.Date{}, &engine.ConfigurationError{
			Event:  event,
			Field:  field,
			Reason: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s),
		}
	}
	return d, nil
}
