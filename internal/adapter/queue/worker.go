// Package queue is an in-process delayed task scheduler. Poll tasks run on
// timers inside the API process; a crash loses scheduled polls, which the
// attempt budget on the orchestrator side tolerates.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stablecoin-relay-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// Worker implements ports.TaskQueue with per-task timers.
type Worker struct {
	log zerolog.Logger

	mu       sync.Mutex
	handlers map[string]ports.TaskHandler
	timers   map[*time.Timer]struct{}
	stopped  bool

	wg sync.WaitGroup
}

// NewWorker creates a worker with no registered handlers.
func NewWorker(log zerolog.Logger) *Worker {
	return &Worker{
		log:      log,
		handlers: make(map[string]ports.TaskHandler),
		timers:   make(map[*time.Timer]struct{}),
	}
}

// Register binds a handler to a task kind. Must be called before Schedule
// delivers tasks of that kind.
func (w *Worker) Register(kind string, handler ports.TaskHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[kind] = handler
}

// Schedule queues a task to run after delay. Returns an error when the task
// kind has no handler or the worker has been stopped.
func (w *Worker) Schedule(ctx context.Context, task ports.Task, delay time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return fmt.Errorf("task queue stopped")
	}
	handler, ok := w.handlers[task.Kind]
	if !ok {
		return fmt.Errorf("no handler registered for task kind %q", task.Kind)
	}

	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		defer w.wg.Done()
		w.mu.Lock()
		delete(w.timers, timer)
		stopped := w.stopped
		w.mu.Unlock()
		if stopped {
			return
		}
		w.run(handler, task)
	})
	w.timers[timer] = struct{}{}
	return nil
}

func (w *Worker) run(handler ports.TaskHandler, task ports.Task) {
	if err := handler(context.Background(), task); err != nil {
		w.log.Error().
			Err(err).
			Str("kind", task.Kind).
			Str("transaction_id", task.TransactionID.String()).
			Int("attempt", task.Attempt).
			Msg("Task handler failed")
	}
}

// Stop cancels pending timers and waits for in-flight handlers to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	w.stopped = true
	for timer := range w.timers {
		if timer.Stop() {
			w.wg.Done()
		}
		delete(w.timers, timer)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
