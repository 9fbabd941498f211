// Package task runs fire-and-forget work triggered by handlers after a
// response is committed: audit lines, notification stubs, completion
// processing. Task failures are terminal here — logged, never retried,
// never surfaced to the client.
package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner executes background functions on their own goroutines. A
// panic or error inside a task is caught and logged; nothing propagates
// back to the request flow.
type Runner struct {
	log *slog.Logger
	wg  sync.WaitGroup
}

func NewRunner(log *slog.Logger) *Runner {
	return &Runner{log: log}
}

// taskTimeout bounds a single background task.
const taskTimeout = 30 * time.Second

// Go schedules fn without blocking the caller.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.log.Error("background task panicked", "task", name, "panic", p)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			r.log.Error("background task failed", "task", name, "error", err.Error())
		}
	}()
}

// Wait blocks until all scheduled tasks finish. Used on shutdown and in
// tests.
func (r *Runner) Wait() { r.wg.Wait() }
