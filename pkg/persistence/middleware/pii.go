package middleware

import (
	"context"
	"regexp"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/ports"
)

// Mask replaces a masked value.
const Mask = "***"

// DefaultPIIPatterns match the fields of the catalog that identify a person.
var DefaultPIIPatterns = []string{`(?i)name`, `(?i)email`, `(?i)phone`, `(?i)message`}

// NewPIIMiddleware creates a middleware that masks the lead fields whose
// name matches one of the patterns before the lead reaches the next sink.
// The caller's lead is left untouched.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := compile(patternStrings)
	return func(next ports.Submitter) ports.Submitter {
		return ports.SubmitterFunc(func(ctx context.Context, lead domain.Lead) (domain.Receipt, error) {
			return next.Submit(ctx, MaskLead(lead, patterns))
		})
	}
}

// MaskLead returns a copy of lead with every non-empty field whose name
// matches a pattern replaced by Mask.
func MaskLead(lead domain.Lead, patterns []*regexp.Regexp) domain.Lead {
	out := lead
	for name, field := range leadFields(&out) {
		if *field != "" && matches(name, patterns) {
			*field = Mask
		}
	}

	if lead.Extra != nil {
		out.Extra = make(map[string]string, len(lead.Extra))
		for k, v := range lead.Extra {
			if v != "" && matches(k, patterns) {
				v = Mask
			}
			out.Extra[k] = v
		}
	}
	return out
}

// leadFields maps the catalog field names to the lead fields.
func leadFields(l *domain.Lead) map[string]*string {
	return map[string]*string{
		"firstName":      &l.FirstName,
		"lastName":       &l.LastName,
		"name":           &l.Name,
		"email":          &l.Email,
		"phone":          &l.Phone,
		"zipCode":        &l.ZipCode,
		"householdSize":  &l.HouseholdSize,
		"income":         &l.Income,
		"coverageNeeded": &l.CoverageNeeded,
		"message":        &l.Message,
	}
}

func compile(patternStrings []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return patterns
}

func matches(name string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
