// Package schedule runs deferred work that can be canceled.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Task is a unit of deferred work. The zero value is not usable; create
// tasks with After or Go.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// After runs fn once delay has elapsed, unless ctx is done or the task is
// canceled first. fn receives a context that is canceled together with the
// task. A nil fn just waits out the delay. With delay <= 0 fn always runs.
func After(ctx context.Context, delay time.Duration, fn func(context.Context) error) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()

		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				t.setErr(ctx.Err())
				return
			case <-timer.C:
			}
		}

		if fn != nil {
			t.setErr(fn(ctx))
		}
	}()

	return t
}

// Go runs fn immediately in its own goroutine. Unlike After with a delay, fn
// always runs, even when ctx is already done.
func Go(ctx context.Context, fn func(context.Context) error) *Task {
	return After(ctx, 0, fn)
}

// Cancel stops the task. It is safe to call more than once and after the
// task finished.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed when the task has finished, either way.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return t.Err()
	}
}

// Err returns the task outcome. It is nil while the task is running.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Task) setErr(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
}
