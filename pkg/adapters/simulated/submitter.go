// Package simulated provides a submission sink that only waits.
//
// It stands in for a real backend: every submission is accepted after a
// fixed latency, unless a failure is configured.
package simulated

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/ports"
	"github.com/nkinsurance/quoteflow/pkg/schedule"
)

// DefaultDelay is the latency of a quote submission.
const DefaultDelay = 2000 * time.Millisecond

// Submitter implements ports.Submitter with a fixed delay.
type Submitter struct {
	delay  time.Duration
	fail   error
	logger *slog.Logger
}

var _ ports.Submitter = (*Submitter)(nil)

// Option configures the Submitter.
type Option func(*Submitter)

// WithDelay sets the simulated latency.
func WithDelay(d time.Duration) Option {
	return func(s *Submitter) {
		s.delay = d
	}
}

// WithFailure makes every submission fail with err after the delay.
func WithFailure(err error) Option {
	return func(s *Submitter) {
		s.fail = err
	}
}

// WithLogger configures a logger for the Submitter.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		s.logger = logger
	}
}

// New creates a simulated Submitter.
func New(opts ...Option) *Submitter {
	s := &Submitter{
		delay:  DefaultDelay,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit waits for the configured delay and accepts the lead.
func (s *Submitter) Submit(ctx context.Context, lead domain.Lead) (domain.Receipt, error) {
	if err := schedule.After(ctx, s.delay, nil).Wait(ctx); err != nil {
		return domain.Receipt{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, err
	}
	if s.fail != nil {
		return domain.Receipt{}, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, s.fail)
	}

	receipt := domain.Receipt{
		ID:         uuid.NewString(),
		AcceptedAt: time.Now(),
	}
	s.logger.Info("lead accepted",
		"form", lead.Form,
		"page_id", lead.PageID,
		"receipt_id", receipt.ID,
	)
	return receipt, nil
}
