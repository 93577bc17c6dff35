package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Task kinds understood by the worker.
const (
	TaskKindPollBundle = "poll_bundle"
)

// Task is a unit of deferred work. Delivery is at-least-once; handlers must
// tolerate replays.
type Task struct {
	Kind          string
	TransactionID uuid.UUID
	BundleID      string
	Attempt       int
}

// TaskHandler processes a single task. Returning an error requeues the task
// until the handler gives up on its own terms.
type TaskHandler func(ctx context.Context, task Task) error

// TaskQueue schedules tasks for later execution.
type TaskQueue interface {
	Schedule(ctx context.Context, task Task, delay time.Duration) error
}
