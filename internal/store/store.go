package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the sqlite run-history log. It is a convenience record of past
// runs; the exported workbook remains the deliverable.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the run history at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Run history opened", "path", path)
	return s, nil
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			dataset_path TEXT NOT NULL,
			scenarios INTEGER NOT NULL,
			excluded INTEGER NOT NULL,
			pairs INTEGER NOT NULL,
			dropped INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_categories (
			run_id TEXT NOT NULL REFERENCES runs(id),
			category TEXT NOT NULL,
			n INTEGER NOT NULL,
			median REAL NOT NULL,
			q25 REAL NOT NULL,
			q75 REAL NOT NULL,
			PRIMARY KEY (run_id, category)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun stores a run and its per-category summary rows in one
// transaction.
func (s *Store) SaveRun(run *Run, categories []RunCategory) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, dataset_path, scenarios, excluded, pairs, dropped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.DatasetPath, run.Scenarios, run.Excluded, run.Pairs, run.Dropped, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, c := range categories {
		_, err = tx.Exec(`
			INSERT INTO run_categories (run_id, category, n, median, q25, q75)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, c.Category, c.N, c.Median, c.Q25, c.Q75)
		if err != nil {
			return fmt.Errorf("failed to insert category summary: %w", err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, dataset_path, scenarios, excluded, pairs, dropped, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.DatasetPath, &r.Scenarios, &r.Excluded, &r.Pairs, &r.Dropped, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Categories returns the per-category summary rows of a run.
func (s *Store) Categories(runID string) ([]RunCategory, error) {
	rows, err := s.db.Query(`
		SELECT run_id, category, n, median, q25, q75
		FROM run_categories
		WHERE run_id = ?
		ORDER BY category
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []RunCategory
	for rows.Next() {
		var c RunCategory
		if err := rows.Scan(&c.RunID, &c.Category, &c.N, &c.Median, &c.Q25, &c.Q75); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Close closes the history database.
func (s *Store) Close() error {
	return s.db.Close()
}
