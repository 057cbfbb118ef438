package ports

import (
	"context"

	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// Submitter hands a completed lead to whatever processes it.
//
// Implementations must honor ctx cancellation and return a non-nil error for
// every outcome that is not an acceptance.
type Submitter interface {
	Submit(ctx context.Context, lead domain.Lead) (domain.Receipt, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, lead domain.Lead) (domain.Receipt, error)

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, lead domain.Lead) (domain.Receipt, error) {
	return f(ctx, lead)
}
