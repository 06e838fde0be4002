// Package turns models one inbound chat message as a unit of work. Turns
// for different users may run concurrently; within a turn every oracle
// and store call is sequential.
package turns

import (
	"context"
	"time"
)

// Status is the lifecycle state of a turn.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Turn is one inbound free-text message awaiting processing.
type Turn struct {
	// TurnID is the unique identifier for this turn.
	TurnID string `json:"turn_id"`

	// ChatID is where replies go.
	ChatID int64 `json:"chat_id"`

	// Sender is the message author, checked against the authorized user.
	Sender int64 `json:"sender"`

	// Text is the raw utterance.
	Text string `json:"text"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error holds failure details. A failed turn is not retried: by the
	// time a turn fails, the user has already received a reply.
	Error string `json:"error,omitempty"`
}

// Handler processes one turn.
type Handler func(ctx context.Context, t *Turn) error

// Publisher enqueues turns for asynchronous processing.
type Publisher interface {
	Publish(ctx context.Context, t *Turn) error
	Close() error
}

// Consumer drains the queue through a handler.
type Consumer interface {
	// Start begins consuming turns; the handler is called concurrently,
	// up to the consumer's worker count.
	Start(ctx context.Context, handler Handler) error

	// Stop stops consuming and waits for in-flight turns to finish.
	Stop(ctx context.Context) error
}

// TurnStore tracks turn state for observability.
type TurnStore interface {
	Save(ctx context.Context, t *Turn) error
	Get(ctx context.Context, turnID string) (*Turn, error)
}
