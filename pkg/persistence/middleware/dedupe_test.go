package middleware_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/persistence/middleware"
	"github.com/nkinsurance/quoteflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLocker holds claims in memory and never expires them.
type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newMemLocker() *memLocker {
	return &memLocker{held: make(map[string]bool)}
}

func (l *memLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return func(ctx context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, true, nil
}

func TestDedupeMiddleware_RefusesIdenticalLead(t *testing.T) {
	sink := &recorder{}
	s := middleware.NewDedupeMiddleware(newMemLocker(), time.Minute)(sink)
	ctx := context.Background()

	lead := sampleLead()
	_, err := s.Submit(ctx, lead)
	require.NoError(t, err)

	// The page does not count: the same person from another tab is refused.
	lead.PageID = "page-2"
	_, err = s.Submit(ctx, lead)
	assert.ErrorIs(t, err, domain.ErrDuplicateSubmission)

	lead.Email = "other@example.com"
	_, err = s.Submit(ctx, lead)
	assert.NoError(t, err)
}

func TestDedupeMiddleware_ReleasesClaimOnFailure(t *testing.T) {
	sink := &recorder{err: domain.ErrSubmissionFailed}
	s := middleware.NewDedupeMiddleware(newMemLocker(), time.Minute)(sink)
	ctx := context.Background()

	_, err := s.Submit(ctx, sampleLead())
	require.ErrorIs(t, err, domain.ErrSubmissionFailed)

	sink.err = nil
	_, err = s.Submit(ctx, sampleLead())
	assert.NoError(t, err, "a retry after a failure must go through")
}

func TestDedupeMiddleware_LockerDown(t *testing.T) {
	locker := newMemLocker()
	locker.err = errors.New("connection refused")
	sink := &recorder{}
	s := middleware.NewDedupeMiddleware(locker, time.Minute)(sink)

	_, err := s.Submit(context.Background(), sampleLead())
	assert.ErrorIs(t, err, domain.ErrSubmissionFailed)
	assert.Empty(t, sink.last.Form, "the lead must not reach the sink")
}

func TestDedupeMiddleware_ZeroWindowDisables(t *testing.T) {
	sink := &recorder{}
	s := middleware.NewDedupeMiddleware(newMemLocker(), 0)(sink)

	for range 2 {
		_, err := s.Submit(context.Background(), sampleLead())
		require.NoError(t, err)
	}
}

func TestDedupeMiddleware_OutsidePIIMasking(t *testing.T) {
	sink := &recorder{}
	s := middleware.Chain(sink,
		middleware.NewDedupeMiddleware(newMemLocker(), time.Minute),
		middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns),
	)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := s.Submit(ctx, domain.Lead{Form: "newsletter", Email: email})
		require.NoError(t, err, email)
		assert.Equal(t, middleware.Mask, sink.last.Email)
	}
}
