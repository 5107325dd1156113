/*
history.go - Historical sales snapshot and its provider interface

PURPOSE:
  Defines the read-only view of the per-branch daily sales table the engine
  consumes. The provider materializes records (SQLite in production, memory
  in tests); History indexes one branch's records by day for O(1) lookup
  during plan generation.

IMMUTABILITY:
  DailyRecord rows are historical facts. The engine never mutates them and
  History takes its own index at construction, so a snapshot is safe to
  share read-only across concurrently estimated branches.

SEE ALSO:
  - store/sqlite:       production provider
  - engine/store:       in-memory provider for tests
*/
package engine

import (
	"context"

	"github.com/shopspring/decimal"
)

// BranchID identifies one branch (restaurant/outlet).
type BranchID int64

// DailyRecord is one row of the historical sales table: the gross sales a
// branch recorded on one business day.
type DailyRecord struct {
	Branch BranchID
	Date   Date
	Gross  decimal.Decimal
}

// SalesProvider is the engine's only external dependency: a queryable
// per-day, per-branch sales history.
type SalesProvider interface {
	// LoadRange returns a branch's records with dates in [from, to],
	// ordered by date.
	LoadRange(ctx context.Context, branch BranchID, from, to Date) ([]DailyRecord, error)

	// ListBranches returns every branch id present in the history.
	ListBranches(ctx context.Context) ([]BranchID, error)
}

// =============================================================================
// HISTORY - One branch's day-indexed snapshot
// =============================================================================

// History is an immutable day->gross index over one branch's records.
// Multiple records on the same day are summed, matching how the source
// table may carry one row per order channel.
type History struct {
	branch BranchID
	gross  map[Date]decimal.Decimal
}

func NewHistory(branch BranchID, records []DailyRecord) *History {
	h := &History{branch: branch, gross: make(map[Date]decimal.Decimal, len(records))}
	for _, r := range records {
		if r.Branch != branch {
			continue
		}
		h.gross[r.Date] = h.gross[r.Date].Add(r.Gross)
	}
	return h
}

func (h *History) Branch() BranchID { return h.branch }

// Gross returns the recorded sales for a day and whether the day has data.
func (h *History) Gross(d Date) (decimal.Decimal, bool) {
	v, ok := h.gross[d]
	return v, ok
}

// Has reports whether the day has at least one record.
func (h *History) Has(d Date) bool {
	_, ok := h.gross[d]
	return ok
}

// Len returns the number of distinct days with data.
func (h *History) Len() int { return len(h.gross) }
