package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dvloznov/budgetbuddy/internal/turns"
)

func TestQueueProcessesPublishedTurns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore()
	q := NewQueue(8, 2, store)

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{}, 2)

	handler := func(ctx context.Context, tr *turns.Turn) error {
		mu.Lock()
		seen = append(seen, tr.Text)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	if err := q.Start(ctx, handler); err != nil {
		t.Fatal(err)
	}

	turn1 := &turns.Turn{ChatID: 1, Sender: 1, Text: "spent 500 on groceries"}
	turn2 := &turns.Turn{ChatID: 1, Sender: 1, Text: "what is my balance"}
	if err := q.Publish(ctx, turn1); err != nil {
		t.Fatal(err)
	}
	if err := q.Publish(ctx, turn2); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for turns")
		}
	}

	mu.Lock()
	count := len(seen)
	mu.Unlock()
	if count != 2 {
		t.Fatalf("handled %d turns, want 2", count)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := q.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	saved, err := store.Get(context.Background(), turn1.TurnID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Status != turns.StatusCompleted {
		t.Errorf("turn status = %v, want completed", saved.Status)
	}
}

func TestQueueRecordsFailureWithoutRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore()
	q := NewQueue(1, 1, store)

	var mu sync.Mutex
	calls := 0
	done := make(chan struct{}, 1)
	handler := func(ctx context.Context, tr *turns.Turn) error {
		mu.Lock()
		calls++
		mu.Unlock()
		done <- struct{}{}
		return errors.New("oracle unreachable")
	}

	if err := q.Start(ctx, handler); err != nil {
		t.Fatal(err)
	}

	turn := &turns.Turn{ChatID: 1, Sender: 1, Text: "hi"}
	if err := q.Publish(ctx, turn); err != nil {
		t.Fatal(err)
	}
	<-done

	// Give the queue a moment to persist the final state, then confirm
	// the turn failed once and stayed failed.
	time.Sleep(50 * time.Millisecond)

	saved, err := store.Get(context.Background(), turn.TurnID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Status != turns.StatusFailed {
		t.Errorf("turn status = %v, want failed", saved.Status)
	}
	if saved.Error == "" {
		t.Error("failed turn has no error detail")
	}

	mu.Lock()
	got := calls
	mu.Unlock()
	if got != 1 {
		t.Errorf("handler called %d times, want 1 (no retries)", got)
	}
}

func TestPublishAfterCloseFails(t *testing.T) {
	q := NewQueue(1, 1, nil)
	if err := q.Close(); err != nil {
		t.Fatal(err)
	}
	if err := q.Publish(context.Background(), &turns.Turn{Text: "x"}); err == nil {
		t.Fatal("expected error publishing to a closed queue")
	}
}
