// Package memory is an in-memory Store used by tests and the "memory"
// backend. Data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dvloznov/budgetbuddy/internal/domain"
	"github.com/dvloznov/budgetbuddy/internal/store"
)

// Store keeps records in a map keyed by owner. It is safe for concurrent
// use; individual operations are atomic, which is all the router relies on.
type Store struct {
	mu      sync.RWMutex
	records map[int64][]domain.Record
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		records: make(map[int64][]domain.Record),
	}
}

// Insert implements store.Store. It appends a copy so callers cannot
// mutate persisted state afterwards.
func (s *Store) Insert(ctx context.Context, rec *domain.Record) error {
	if rec == nil {
		return fmt.Errorf("Insert: nil record")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Owner] = append(s.records[rec.Owner], *rec)
	return nil
}

// List implements store.Store.
func (s *Store) List(ctx context.Context, owner int64, datePrefix string) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Record
	for _, rec := range s.records[owner] {
		if datePrefix != "" && !strings.HasPrefix(rec.Date.Format(domain.DateLayout), datePrefix) {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// Totals implements store.Store.
func (s *Store) Totals(ctx context.Context, owner int64, datePrefix string) (store.Totals, error) {
	recs, err := s.List(ctx, owner, datePrefix)
	if err != nil {
		return store.Totals{}, err
	}
	var t store.Totals
	for _, rec := range recs {
		t.Income += rec.Income
		t.Expenditure += rec.Expenditure
	}
	return t, nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	return nil
}

var _ store.Store = (*Store)(nil)
