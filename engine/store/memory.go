// Package store provides SalesProvider implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/aliebnemara/budget-management-backend/engine"
)

// =============================================================================
// MEMORY PROVIDER - In-memory sales history (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records map[engine.BranchID][]engine.DailyRecord
}

func NewMemory() *Memory {
	return &Memory{records: make(map[engine.BranchID][]engine.DailyRecord)}
}

// Add inserts records, keeping each branch's slice date-ordered.
func (m *Memory) Add(records ...engine.DailyRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		rs := m.records[r.Branch]
		i := sort.Search(len(rs), func(i int) bool {
			return rs[i].Date.After(r.Date)
		})
		rs = append(rs, engine.DailyRecord{})
		copy(rs[i+1:], rs[i:])
		rs[i] = r
		m.records[r.Branch] = rs
	}
}

func (m *Memory) LoadRange(_ context.Context, branch engine.BranchID, from, to engine.Date) ([]engine.DailyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.DailyRecord
	for _, r := range m.records[branch] {
		if from.BeforeOrEqual(r.Date) && r.Date.BeforeOrEqual(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) ListBranches(_ context.Context) ([]engine.BranchID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]engine.BranchID, 0, len(m.records))
	for b := range m.records {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Compile-time check that Memory implements engine.SalesProvider
var _ engine.SalesProvider = (*Memory)(nil)
