package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dvloznov/budgetbuddy/internal/turns"
)

// Store is an in-memory TurnStore. State is lost on restart, which is
// acceptable: completed turns have already replied to the user.
type Store struct {
	mu    sync.RWMutex
	turns map[string]*turns.Turn
}

// NewStore creates an empty turn store.
func NewStore() *Store {
	return &Store{
		turns: make(map[string]*turns.Turn),
	}
}

// Save implements the TurnStore interface.
func (s *Store) Save(ctx context.Context, t *turns.Turn) error {
	if t.TurnID == "" {
		return fmt.Errorf("turn ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turnCopy := *t
	s.turns[t.TurnID] = &turnCopy
	return nil
}

// Get implements the TurnStore interface.
func (s *Store) Get(ctx context.Context, turnID string) (*turns.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.turns[turnID]
	if !exists {
		return nil, fmt.Errorf("turn not found: %s", turnID)
	}

	turnCopy := *t
	return &turnCopy, nil
}

var _ turns.TurnStore = (*Store)(nil)
