package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/ports"
)

// DefaultDedupeWindow is how long an identical lead is refused.
const DefaultDedupeWindow = 10 * time.Minute

// NewDedupeMiddleware refuses a lead identical to one accepted within window
// with domain.ErrDuplicateSubmission. The claim is released when the next
// sink fails, so a retry of a failed submission goes through.
//
// The fingerprint is taken from the lead as received: place this middleware
// outside NewPIIMiddleware, otherwise masked leads from different visitors
// collide.
func NewDedupeMiddleware(locker ports.DistributedLocker, window time.Duration) Middleware {
	return func(next ports.Submitter) ports.Submitter {
		if window <= 0 {
			return next
		}
		return ports.SubmitterFunc(func(ctx context.Context, lead domain.Lead) (domain.Receipt, error) {
			fp, err := Fingerprint(lead)
			if err != nil {
				return domain.Receipt{}, err
			}
			unlock, ok, err := locker.TryLock(ctx, "lead:"+fp, window)
			if err != nil {
				return domain.Receipt{}, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
			}
			if !ok {
				return domain.Receipt{}, domain.ErrDuplicateSubmission
			}

			receipt, err := next.Submit(ctx, lead)
			if err != nil {
				// ctx may be the reason next failed.
				if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil {
					return domain.Receipt{}, fmt.Errorf("%w (releasing claim: %v)", err, uerr)
				}
				return domain.Receipt{}, err
			}
			return receipt, nil
		})
	}
}

// Fingerprint hashes the lead content, ignoring the page it came from.
func Fingerprint(lead domain.Lead) (string, error) {
	lead.PageID = ""
	data, err := json.Marshal(lead)
	if err != nil {
		return "", fmt.Errorf("failed to marshal lead: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
