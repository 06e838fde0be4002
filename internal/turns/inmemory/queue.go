// Package inmemory is a channel-backed turn queue for single-instance
// deployments, which is all a single-authorized-user assistant needs.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/budgetbuddy/internal/turns"
)

// Queue distributes turns over a pool of worker goroutines. It is safe
// for concurrent use.
type Queue struct {
	turnChan  chan *turns.Turn
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	store     turns.TurnStore
	workers   int
	closed    bool
}

// NewQueue creates a queue. bufferSize bounds how many turns can wait
// before Publish blocks; workers is the number of concurrent handlers.
func NewQueue(bufferSize, workers int, store turns.TurnStore) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		turnChan:  make(chan *turns.Turn, bufferSize),
		closeChan: make(chan struct{}),
		store:     store,
		workers:   workers,
	}
}

// Publish implements the Publisher interface.
func (q *Queue) Publish(ctx context.Context, t *turns.Turn) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	if t.TurnID == "" {
		t.TurnID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = turns.StatusPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	if q.store != nil {
		if err := q.store.Save(ctx, t); err != nil {
			return fmt.Errorf("save turn: %w", err)
		}
	}

	select {
	case q.turnChan <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeChan:
		return fmt.Errorf("queue is closed")
	}
}

// Start implements the Consumer interface.
func (q *Queue) Start(ctx context.Context, handler turns.Handler) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return fmt.Errorf("queue is closed")
	}
	q.mu.RUnlock()

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}
	return nil
}

func (q *Queue) worker(ctx context.Context, handler turns.Handler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case t := <-q.turnChan:
			if t == nil {
				return
			}
			q.processTurn(ctx, t, handler)
		}
	}
}

func (q *Queue) processTurn(ctx context.Context, t *turns.Turn, handler turns.Handler) {
	t.Status = turns.StatusRunning
	now := time.Now()
	t.StartedAt = &now
	if q.store != nil {
		_ = q.store.Save(ctx, t)
	}

	err := handler(ctx, t)

	completedAt := time.Now()
	t.CompletedAt = &completedAt
	if err != nil {
		t.Status = turns.StatusFailed
		t.Error = err.Error()
	} else {
		t.Status = turns.StatusCompleted
		t.Error = ""
	}
	if q.store != nil {
		_ = q.store.Save(ctx, t)
	}
}

// Stop implements the Consumer interface. It closes the queue and waits
// for in-flight turns, honoring the context deadline.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements the Publisher interface.
func (q *Queue) Close() error {
	return q.Stop(context.Background())
}

var _ turns.Publisher = (*Queue)(nil)
var _ turns.Consumer = (*Queue)(nil)
