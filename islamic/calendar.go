/*
calendar.go - Event calendar configuration

PURPOSE:
  Calendar is the full configuration for one estimation run: the compare
  year / budget year pair plus each event's start date and duration in
  both years. It normalizes defaults (event durations, the Eid al-Fitr
  tail riding directly on Ramadan's end) and validates every event
  before the estimator touches sales history.

NORMALIZATION RULES:
  - A zero duration takes the event's default (Ramadan 30, Muharram 10,
    Eid al-Fitr 4; Eid al-Adha is always 3).
  - An unset Eid al-Fitr start derives as the day after the configured
    Ramadan window ends in the same year.
  - Compare/budget years propagate from the Calendar to every event.

SEE ALSO:
  - types.go:         Event identities and defaults
  - estimator.go:     Runs built from a validated Calendar
  - factory/config.go: JSON parsing into a Calendar
*/
package islamic

import (
	"errors"

	"github.com/aliebnemara/budget-management-backend/engine"
)

// =============================================================================
// CALENDAR
// =============================================================================

// Calendar configures all four events for one CY/BY pair.
type Calendar struct {
	CompareYear int
	BudgetYear  int

	Ramadan   engine.EventConfig
	Muharram  engine.EventConfig
	EidAlFitr engine.EventConfig
	EidAlAdha engine.EventConfig
}

// Config returns the configuration for one event, or nil for an
// unknown identifier.
func (c *Calendar) Config(e Event) *engine.EventConfig {
	switch e {
	case Ramadan:
		return &c.Ramadan
	case Muharram:
		return &c.Muharram
	case EidAlFitr:
		return &c.EidAlFitr
	case EidAlAdha:
		return &c.EidAlAdha
	}
	return nil
}

// Normalize fills derived defaults. It is idempotent and called by
// Validate; callers only need it directly when inspecting a Calendar
// without validating it.
func (c *Calendar) Normalize() {
	for _, e := range Events {
		cfg := c.Config(e)
		cfg.Event = e
		if cfg.CYDuration == 0 {
			cfg.CYDuration = e.DefaultDuration()
		}
		if cfg.BYDuration == 0 {
			cfg.BYDuration = e.DefaultDuration()
		}
		if cfg.CompareYear == 0 {
			cfg.CompareYear = c.CompareYear
		}
		if cfg.BudgetYear == 0 {
			cfg.BudgetYear = c.BudgetYear
		}
	}

	// The Eid al-Fitr tail starts the day after Ramadan ends.
	if c.EidAlFitr.CYStart.IsZero() && !c.Ramadan.CYStart.IsZero() {
		c.EidAlFitr.CYStart = c.Ramadan.CYWindow().End.AddDays(1)
	}
	if c.EidAlFitr.BYStart.IsZero() && !c.Ramadan.BYStart.IsZero() {
		c.EidAlFitr.BYStart = c.Ramadan.BYWindow().End.AddDays(1)
	}
}

// Validate normalizes the calendar and checks every event's
// configuration. All problems are reported, not just the first; each is
// a *engine.ConfigurationError and the joined error still matches
// engine.ErrInvalidConfiguration.
func (c *Calendar) Validate() error {
	c.Normalize()

	var errs []error
	if c.CompareYear == 0 || c.BudgetYear == 0 {
		errs = append(errs, &engine.ConfigurationError{
			Event: "calendar", Field: "years", Reason: "compare year and budget year are required",
		})
	}
	for _, e := range Events {
		if err := c.Config(e).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
