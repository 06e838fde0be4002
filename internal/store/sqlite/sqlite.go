// Package sqlite is the default Store backend, a single-file database
// suitable for a single-user assistant.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dvloznov/budgetbuddy/internal/domain"
	"github.com/dvloznov/budgetbuddy/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT PRIMARY KEY,
	owner       INTEGER NOT NULL,
	date        TEXT NOT NULL,
	category    TEXT NOT NULL,
	income      REAL NOT NULL DEFAULT 0,
	expenditure REAL NOT NULL DEFAULT 0,
	remarks     TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_owner_date ON transactions(owner, date);
`

// Store is the sqlite-backed record store.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and applies the
// schema. Records are append-only, so the schema never migrates in place.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("New: create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("New: open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("New: ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("New: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert implements store.Store.
func (s *Store) Insert(ctx context.Context, rec *domain.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, owner, date, category, income, expenditure, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Owner,
		rec.Date.Format(domain.DateLayout),
		string(rec.Category),
		rec.Income,
		rec.Expenditure,
		rec.Remarks,
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

// List implements store.Store.
func (s *Store) List(ctx context.Context, owner int64, datePrefix string) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, date, category, income, expenditure, remarks, created_at
		FROM transactions
		WHERE owner = ? AND date LIKE ? || '%'
		ORDER BY date ASC, created_at ASC`,
		owner, datePrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("List: query: %w", err)
	}
	defer rows.Close()

	var result []domain.Record
	for rows.Next() {
		var (
			rec       domain.Record
			dateStr   string
			category  string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Owner, &dateStr, &category, &rec.Income, &rec.Expenditure, &rec.Remarks, &createdAt); err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		rec.Date, err = time.Parse(domain.DateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("List: parse date %q: %w", dateStr, err)
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		rec.Category = domain.ParseCategory(category)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}
	return result, nil
}

// Totals implements store.Store.
func (s *Store) Totals(ctx context.Context, owner int64, datePrefix string) (store.Totals, error) {
	var t store.Totals
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(income), 0), COALESCE(SUM(expenditure), 0)
		FROM transactions
		WHERE owner = ? AND date LIKE ? || '%'`,
		owner, datePrefix,
	).Scan(&t.Income, &t.Expenditure)
	if err != nil {
		return store.Totals{}, fmt.Errorf("Totals: %w", err)
	}
	return t, nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ store.Store = (*Store)(nil)
