/*
errors.go - Centralized error types for the estimation engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Configuration errors - Malformed event configuration; fatal, surfaced
     before any computation starts.
  2. Data errors - Missing history; surfaced per branch so one sparse branch
     never blocks the others.

Data SPARSITY inside a computation is deliberately NOT an error: an empty
weekday bucket degrades to a per-day fallback and sets the InsufficientData
flag on the affected plan entries instead of aborting the run.

USAGE:
  Callers classify with errors.Is / the helpers below:

    if engine.IsConfiguration(err) {
        // 400 to the client, nothing was computed
    }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfiguration is the root of every configuration failure.
	ErrInvalidConfiguration = errors.New("invalid event configuration")

	// ErrBranchNotFound is returned when a requested branch has no history.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNoHistory is returned when the sales provider yields no rows at all
	// for the requested range.
	ErrNoHistory = errors.New("no historical sales in range")

	// ErrNoCalendar is returned when no event calendar has been configured.
	ErrNoCalendar = errors.New("no event calendar configured")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigurationError describes why an event configuration was rejected.
type ConfigurationError struct {
	Event  string // event identifier, e.g. "ramadan"
	Field  string // offending field, e.g. "cy_duration"
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration for %s: %s: %s", e.Event, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfiguration returns true if the error is a client-fixable
// configuration problem.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBranchNotFound) || errors.Is(err, ErrNoCalendar)
}
