// Package store defines the record store the conversation router is
// parameterized over. Three operations cover every read and write the
// assistant performs: insert one record, list a user's records, and
// aggregate a user's income/expenditure sums.
package store

import (
	"context"

	"github.com/dvloznov/budgetbuddy/internal/domain"
)

// Totals is the aggregate over a record set.
type Totals struct {
	Income      float64
	Expenditure float64
}

// Balance derives the balance. It is never stored.
func (t Totals) Balance() float64 {
	return t.Income - t.Expenditure
}

// Store is the record store contract. datePrefix scopes reads to a month
// ("2006-01") or an exact date ("2006-01-02"); empty means the full
// history. Records are append-only, so there is no update or delete.
type Store interface {
	// Insert persists one record.
	Insert(ctx context.Context, rec *domain.Record) error

	// List returns the owner's records matching the date prefix,
	// ordered by date ascending.
	List(ctx context.Context, owner int64, datePrefix string) ([]domain.Record, error)

	// Totals sums income and expenditure over the owner's records
	// matching the date prefix.
	Totals(ctx context.Context, owner int64, datePrefix string) (Totals, error)

	// Close releases the backend's resources.
	Close() error
}
