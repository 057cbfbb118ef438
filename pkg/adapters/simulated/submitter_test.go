package simulated_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/adapters/simulated"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/ports"
	"github.com/nkinsurance/quoteflow/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitter_AcceptsAfterDelay(t *testing.T) {
	s := simulated.New(simulated.WithDelay(20 * time.Millisecond))
	start := time.Now()

	receipt, err := s.Submit(context.Background(), domain.Lead{Form: "quote"})

	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSubmitter_DefaultDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, simulated.DefaultDelay)
}

func TestSubmitter_Failure(t *testing.T) {
	down := errors.New("backend down")
	s := simulated.New(simulated.WithDelay(0), simulated.WithFailure(down))

	_, err := s.Submit(context.Background(), domain.Lead{})

	assert.ErrorIs(t, err, domain.ErrSubmissionFailed)
	assert.ErrorIs(t, err, down)
}

func TestSubmitter_Canceled(t *testing.T) {
	s := simulated.New(simulated.WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Submit(ctx, domain.Lead{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmitter_Contract(t *testing.T) {
	tests.SubmitterContractTest(t, func(t *testing.T) ports.Submitter {
		return simulated.New(simulated.WithDelay(0))
	})
}
