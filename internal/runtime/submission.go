package runtime

import (
	"context"
	"errors"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/schedule"
)

// Submission is a pending hand-off of a lead to the submission sink.
type Submission struct {
	task   *schedule.Task
	result domain.SubmissionResult
}

// startSubmission runs the sink in the background and calls finish with the
// outcome before the submission is reported as done. finish runs even when
// the submission is canceled before the sink is reached.
func startSubmission(ctx context.Context, o options, lead domain.Lead, finish func(domain.SubmissionResult)) *Submission {
	s := &Submission{}
	s.task = schedule.Go(ctx, func(ctx context.Context) error {
		if o.submitTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, o.submitTimeout)
			defer cancel()
		}

		receipt, err := o.submitter.Submit(ctx, lead)
		s.result = classify(receipt, err)
		finish(s.result)
		return s.result.Err
	})
	return s
}

func classify(receipt domain.Receipt, err error) domain.SubmissionResult {
	switch {
	case err == nil:
		return domain.SubmissionResult{Status: domain.SubmissionSucceeded, Receipt: receipt}
	case errors.Is(err, context.Canceled):
		return domain.SubmissionResult{Status: domain.SubmissionCanceled, Err: err}
	default:
		return domain.SubmissionResult{Status: domain.SubmissionFailed, Err: err}
	}
}

// Wait blocks until the submission finished or ctx is done.
func (s *Submission) Wait(ctx context.Context) (domain.SubmissionResult, error) {
	select {
	case <-ctx.Done():
		return domain.SubmissionResult{}, ctx.Err()
	case <-s.task.Done():
		return s.result, nil
	}
}

// Cancel aborts the submission. The component returns to its idle state and
// keeps the entered values.
func (s *Submission) Cancel() {
	s.task.Cancel()
}

// Done is closed once the outcome has been applied.
func (s *Submission) Done() <-chan struct{} {
	return s.task.Done()
}
