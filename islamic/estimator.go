/*
estimator.go - Per-branch and fleet-wide estimation runs

PURPOSE:
  The Estimator ties a validated Calendar to a sales history provider
  and produces impact reports. A branch run yields three reports:

    ramadan     - composite: Ramadan weekday-average estimation with the
                  Eid al-Fitr positional tail overlaid on its days
    muharram    - Muharram weekday-average estimation
    eid_al_adha - positional direct copy, or a no-shift report when the
                  occurrence did not cross a month boundary

  Eid al-Fitr never produces a standalone report: its four days ride on
  the Ramadan plan, the same way the tail follows the fast in reality.

FLEET RUNS:
  EstimateAll fans branches out over a bounded worker pool. Results land
  in pre-allocated slots so output order matches branch order regardless
  of which worker finishes first.

SEE ALSO:
  - calendar.go:       Configuration and validation
  - engine/plan.go:    Day walking and resolution
  - engine/aggregate.go: Monthly rollups and impact states
*/
package islamic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aliebnemara/budget-management-backend/engine"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// EventReport is one event's estimation result for one branch.
type EventReport struct {
	Branch engine.BranchID
	Event  Event

	// Skipped is set for a short fixed event whose CY and BY windows
	// share the same months: no shift, no estimation.
	Skipped bool

	// Plan holds the day-by-day detail. Nil when Skipped.
	Plan *engine.Plan

	Summaries []engine.MonthlySummary
}

// BranchReport collects one branch's event reports in reporting order.
type BranchReport struct {
	Branch engine.BranchID
	Events []EventReport
}

// Report returns the report for one event, or nil when the branch run
// produced none for it.
func (r *BranchReport) Report(e Event) *EventReport {
	for i := range r.Events {
		if r.Events[i].Event == e {
			return &r.Events[i]
		}
	}
	return nil
}

// =============================================================================
// ESTIMATOR
// =============================================================================

const defaultWorkers = 4

type Estimator struct {
	provider engine.SalesProvider

	// Workers bounds fleet-run concurrency. Zero means defaultWorkers.
	Workers int
}

func NewEstimator(provider engine.SalesProvider) *Estimator {
	return &Estimator{provider: provider}
}

// EstimateBranch validates the calendar, loads the branch's history once
// and runs all three event reports against it.
func (e *Estimator) EstimateBranch(ctx context.Context, cal *Calendar, branch engine.BranchID) (*BranchReport, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	return e.estimateValidated(ctx, cal, branch)
}

func (e *Estimator) estimateValidated(ctx context.Context, cal *Calendar, branch engine.BranchID) (*BranchReport, error) {
	from, to := HistoryRange(cal)
	records, err := e.provider.LoadRange(ctx, branch, from, to)
	if err != nil {
		return nil, fmt.Errorf("load history for branch %d: %w", branch, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("branch %d has no sales between %s and %s: %w",
			branch, from, to, engine.ErrNoHistory)
	}
	history := engine.NewHistory(branch, records)

	report := &BranchReport{Branch: branch}

	// Each run gets its own overlay copy; validation fills derived
	// fields and must not write to the shared calendar from workers.
	fitr := cal.EidAlFitr

	ramadan, err := runEvent(Ramadan, cal.Ramadan, &fitr, branch, history)
	if err != nil {
		return nil, err
	}
	report.Events = append(report.Events, ramadan)

	muharram, err := runEvent(Muharram, cal.Muharram, nil, branch, history)
	if err != nil {
		return nil, err
	}
	report.Events = append(report.Events, muharram)

	adha, err := runEvent(EidAlAdha, cal.EidAlAdha, nil, branch, history)
	if err != nil {
		return nil, err
	}
	report.Events = append(report.Events, adha)

	return report, nil
}

func runEvent(event Event, cfg engine.EventConfig, overlay *engine.EventConfig, branch engine.BranchID, history *engine.History) (EventReport, error) {
	report := EventReport{Branch: branch, Event: event}

	if event.Class() == engine.ShortFixed && cfg.SameMonth() {
		report.Skipped = true
		report.Summaries = engine.NoShiftSummaries(cfg, branch, history)
		return report, nil
	}

	plan, err := engine.GeneratePlan(engine.PlanInput{
		Config:  cfg,
		Branch:  branch,
		Overlay: overlay,
		History: history,
	})
	if err != nil {
		return EventReport{}, err
	}
	report.Plan = plan
	report.Summaries = engine.Summarize(plan)
	return report, nil
}

// EstimateAll runs every branch the provider knows about. Branch order
// in the result matches the provider's listing. A branch failure does
// not abort the others; all failures come back joined.
func (e *Estimator) EstimateAll(ctx context.Context, cal *Calendar) ([]*BranchReport, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}

	branches, err := e.provider.ListBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	workers := e.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	reports := make([]*BranchReport, len(branches))
	errs := make([]error, len(branches))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, branch := range branches {
		wg.Add(1)
		go func(i int, branch engine.BranchID) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			reports[i], errs[i] = e.estimateValidated(ctx, cal, branch)
		}(i, branch)
	}
	wg.Wait()

	out := make([]*BranchReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}

// =============================================================================
// HISTORY RANGE
// =============================================================================

// HistoryRange returns the [from, to] span of compare-year history a run
// needs: every affected month of every event, resolved to the year the
// compare-year window touches it in (month averages and mirrored actuals
// both read whole months).
func HistoryRange(cal *Calendar) (from, to engine.Date) {
	for _, e := range Events {
		cfg := cal.Config(e)
		for _, m := range cfg.BYMonths().Sorted() {
			year := cfg.CYWindow().YearForMonth(m, cfg.CompareYear)
			start, end := engine.StartOfMonth(year, m), engine.EndOfMonth(year, m)
			if from.IsZero() || start.Before(from) {
				from = start
			}
			if to.IsZero() || end.After(to) {
				to = end
			}
		}
	}
	return from, to
}
