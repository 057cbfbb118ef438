package tests

import (
	"context"
	"testing"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/ports"
)

// SubmitterContractTest is a reusable test suite that verifies if an adapter complies with ports.Submitter.
// newSubmitter must return a fresh sink on every call.
func SubmitterContractTest(t *testing.T, newSubmitter func(t *testing.T) ports.Submitter) {
	t.Helper()

	lead := func(email string) domain.Lead {
		return domain.Lead{
			Form:      "quote",
			PageID:    "contract-page",
			FirstName: "Ana",
			LastName:  "Silva",
			Email:     email,
		}
	}

	// 1. Accepting a lead yields a receipt.
	t.Run("Submit_Receipt", func(t *testing.T) {
		s := newSubmitter(t)
		receipt, err := s.Submit(context.Background(), lead("ana@example.com"))
		if err != nil {
			t.Fatalf("unexpected error submitting lead: %v", err)
		}
		if receipt.ID == "" {
			t.Error("expected a receipt ID")
		}
		if receipt.AcceptedAt.IsZero() {
			t.Error("expected an acceptance time")
		}
	})

	// 2. Receipts are unique.
	t.Run("Submit_DistinctReceipts", func(t *testing.T) {
		s := newSubmitter(t)
		a, err := s.Submit(context.Background(), lead("a@example.com"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := s.Submit(context.Background(), lead("b@example.com"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.ID == b.ID {
			t.Errorf("expected distinct receipts, both are %q", a.ID)
		}
	})

	// 3. A canceled context fails the submission.
	t.Run("Submit_Canceled", func(t *testing.T) {
		s := newSubmitter(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := s.Submit(ctx, lead("c@example.com")); err == nil {
			t.Error("expected error for canceled context, got nil")
		}
	})
}
