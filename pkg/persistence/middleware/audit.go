package middleware

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/ports"
)

// NewAuditMiddleware logs every submission with its outcome. Fields matching
// the patterns are masked in the log; the next sink receives the lead as is.
func NewAuditMiddleware(logger *slog.Logger, patternStrings []string) Middleware {
	patterns := compile(patternStrings)
	return func(next ports.Submitter) ports.Submitter {
		return ports.SubmitterFunc(func(ctx context.Context, lead domain.Lead) (domain.Receipt, error) {
			start := time.Now()
			receipt, err := next.Submit(ctx, lead)

			attrs := []any{
				"form", lead.Form,
				"page_id", lead.PageID,
				"duration", time.Since(start),
				slog.Group("lead", leadAttrs(MaskLead(lead, patterns))...),
			}
			if err != nil {
				logger.Warn("lead rejected", append(attrs, "err", err)...)
				return receipt, err
			}
			logger.Info("lead submitted", append(attrs, "receipt_id", receipt.ID)...)
			return receipt, nil
		})
	}
}

// leadAttrs lists the filled fields of lead in name order.
func leadAttrs(lead domain.Lead) []any {
	fields := leadFields(&lead)
	names := make([]string, 0, len(fields)+len(lead.Extra))
	values := make(map[string]string, len(fields)+len(lead.Extra))
	for name, v := range fields {
		if *v != "" {
			names = append(names, name)
			values[name] = *v
		}
	}
	for name, v := range lead.Extra {
		if _, dup := values[name]; !dup && v != "" {
			names = append(names, name)
			values[name] = v
		}
	}
	sort.Strings(names)

	attrs := make([]any, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, slog.String(name, values[name]))
	}
	return attrs
}
