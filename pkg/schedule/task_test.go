package schedule_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfter_RunsAfterDelay(t *testing.T) {
	var ran atomic.Bool
	start := time.Now()

	task := schedule.After(context.Background(), 20*time.Millisecond, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	require.NoError(t, task.Wait(context.Background()))
	assert.True(t, ran.Load())
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestAfter_CancelBeforeDelay(t *testing.T) {
	var ran atomic.Bool
	task := schedule.After(context.Background(), time.Hour, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	task.Cancel()
	err := task.Wait(context.Background())

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran.Load())
	task.Cancel() // idempotent
}

func TestAfter_ParentContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := schedule.After(ctx, time.Hour, nil)
	cancel()

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not stop when parent context was canceled")
	}
	assert.ErrorIs(t, task.Err(), context.Canceled)
}

func TestGo_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	task := schedule.Go(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, task.Wait(context.Background()), boom)
}

func TestGo_FnSeesCancellation(t *testing.T) {
	started := make(chan struct{})
	task := schedule.Go(context.Background(), func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	<-started
	task.Cancel()
	assert.ErrorIs(t, task.Wait(context.Background()), context.Canceled)
}

func TestWait_ContextExpires(t *testing.T) {
	task := schedule.After(context.Background(), time.Hour, nil)
	defer task.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, task.Wait(ctx), context.DeadlineExceeded)
}

func TestGo_RunsEvenWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	task := schedule.Go(ctx, func(ctx context.Context) error {
		ran.Store(true)
		return ctx.Err()
	})

	assert.ErrorIs(t, task.Wait(context.Background()), context.Canceled)
	assert.True(t, ran.Load())
}
