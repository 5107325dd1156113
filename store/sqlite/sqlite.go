/*
Package sqlite provides SQLite-backed persistence for sales history,
branches and calendar configuration.

PURPOSE:
  Implements engine.SalesProvider on top of SQLite, plus the storage the
  HTTP layer needs: branch metadata and the JSON event-calendar document.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  daily_sales: One row per (branch, business date) with the day's gross.
               Gross amounts are stored as TEXT and parsed with
               shopspring/decimal so no precision is lost to floats.
  branches:    Branch metadata for display.
  calendars:   JSON calendar documents keyed by budget year, exactly as
               the factory package defines them.

INDEXES:
  idx_daily_sales_branch_date is the hot path: every estimation run is
  one range scan per branch.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/sales.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  estimator := islamic.NewEstimator(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/history.go: SalesProvider interface definition
  - engine/store/memory.go: In-memory implementation for testing
  - factory/config.go: Schema of the stored calendar documents
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/aliebnemara/budget-management-backend/engine"
)

// Branch is the display metadata for one branch.
type Branch struct {
	ID   engine.BranchID
	Name string
}

// Store implements engine.SalesProvider plus branch and calendar
// persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Daily gross sales, one row per branch and business date.
	-- Gross is TEXT: decimal strings round-trip without float drift.
	CREATE TABLE IF NOT EXISTS daily_sales (
		branch_id INTEGER NOT NULL,
		business_date TEXT NOT NULL,
		gross TEXT NOT NULL,
		PRIMARY KEY (branch_id, business_date)
	);

	-- Hot path: every estimation run is one range scan per branch
	CREATE INDEX IF NOT EXISTS idx_daily_sales_branch_date
		ON daily_sales(branch_id, business_date);

	-- Branch metadata
	CREATE TABLE IF NOT EXISTS branches (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	-- Event calendar documents, one per budget year, stored as the
	-- same JSON the config API accepts
	CREATE TABLE IF NOT EXISTS calendars (
		budget_year INTEGER PRIMARY KEY,
		config_json TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SALES PROVIDER
// =============================================================================

// LoadRange returns the branch's daily sales in [from, to], date ascending.
func (s *Store) LoadRange(ctx context.Context, branch engine.BranchID, from, to engine.Date) ([]engine.DailyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT business_date, gross
		FROM daily_sales
		WHERE branch_id = ? AND business_date >= ? AND business_date <= ?
		ORDER BY business_date`,
		int64(branch), from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	var out []engine.DailyRecord
	for rows.Next() {
		var dateStr, grossStr string
		if err := rows.Scan(&dateStr, &grossStr); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales row: %w", err)
		}

		date, err := engine.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt business_date %q: %w", dateStr, err)
		}
		gross, err := decimal.NewFromString(grossStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt gross %q for %s: %w", grossStr, dateStr, err)
		}

		out = append(out, engine.DailyRecord{Branch: branch, Date: date, Gross: gross})
	}
	return out, rows.Err()
}

// ListBranches returns every branch id with at least one sales row,
// ascending.
func (s *Store) ListBranches(ctx context.Context) ([]engine.BranchID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT branch_id FROM daily_sales ORDER BY branch_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var out []engine.BranchID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan branch id: %w", err)
		}
		out = append(out, engine.BranchID(id))
	}
	return out, rows.Err()
}

var _ engine.SalesProvider = (*Store)(nil)

// =============================================================================
// SALES INGESTION
// =============================================================================

// SeedDailySales upserts daily sales rows in one transaction. Re-seeding
// a (branch, date) pair replaces the stored gross, so corrected exports
// can simply be loaded again.
func (s *Store) SeedDailySales(ctx context.Context, records []engine.DailyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_sales (branch_id, business_date, gross)
		VALUES (?, ?, ?)
		ON CONFLICT(branch_id, business_date) DO UPDATE SET gross = excluded.gross`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, int64(r.Branch), r.Date.String(), r.Gross.String()); err != nil {
			return fmt.Errorf("failed to seed %s for branch %d: %w", r.Date, r.Branch, err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// BRANCH METADATA
// =============================================================================

// SaveBranch inserts or renames a branch.
func (s *Store) SaveBranch(ctx context.Context, b Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO branches (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		int64(b.ID), b.Name)
	if err != nil {
		return fmt.Errorf("failed to save branch %d: %w", b.ID, err)
	}
	return nil
}

// Branches returns branch metadata joined against the sales table, so
// branches with data but no registered name still appear.
func (s *Store) Branches(ctx context.Context) ([]Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ds.branch_id, COALESCE(b.name, '')
		FROM (SELECT DISTINCT branch_id FROM daily_sales) ds
		LEFT JOIN branches b ON b.id = ds.branch_id
		ORDER BY ds.branch_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	var out []Branch
	for rows.Next() {
		var b Branch
		var id int64
		if err := rows.Scan(&id, &b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		b.ID = engine.BranchID(id)
		if b.Name == "" {
			b.Name = fmt.Sprintf("Branch %d", id)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// =============================================================================
// CALENDAR CONFIGURATION
// =============================================================================

// SaveCalendar stores the JSON calendar document for one budget year,
// replacing any previous version.
func (s *Store) SaveCalendar(ctx context.Context, budgetYear int, configJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendars (budget_year, config_json, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(budget_year) DO UPDATE SET
			config_json = excluded.config_json,
			updated_at = excluded.updated_at`,
		budgetYear, configJSON)
	if err != nil {
		return fmt.Errorf("failed to save calendar for %d: %w", budgetYear, err)
	}
	return nil
}

// LoadCalendar returns the stored JSON document for the latest budget
// year, or engine.ErrNoCalendar when none has been saved yet.
func (s *Store) LoadCalendar(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT config_json FROM calendars
		ORDER BY budget_year DESC LIMIT 1`).Scan(&doc)
	if err == sql.ErrNoRows {
		return "", engine.ErrNoCalendar
	}
	if err != nil {
		return "", fmt.Errorf("failed to load calendar: %w", err)
	}
	return doc, nil
}
