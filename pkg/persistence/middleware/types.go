// Package middleware wraps submission sinks with cross-cutting behavior such
// as PII masking and audit logging.
package middleware

import "github.com/nkinsurance/quoteflow/pkg/ports"

// Middleware allows wrapping a Submitter to add behavior.
type Middleware func(ports.Submitter) ports.Submitter

// Chain wraps s with mws. The first middleware is the outermost one.
func Chain(s ports.Submitter, mws ...Middleware) ports.Submitter {
	for i := len(mws) - 1; i >= 0; i-- {
		s = mws[i](s)
	}
	return s
}
