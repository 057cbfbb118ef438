package runtime

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/validate"
)

// normalize turns raw user input into the stored value of a field.
func normalize(desc domain.FieldDescriptor, raw string, limit int) (string, error) {
	clean, err := validate.SanitizeInput(raw, limit)
	if err != nil {
		return "", fmt.Errorf("field %q: %w", desc.Name, err)
	}
	clean = validate.StripMarkup(clean)
	if desc.Kind == domain.FieldTel {
		clean = validate.FormatPhone(clean)
	}
	return clean, nil
}

// decodeLead maps entered values onto a Lead. Names without a typed
// destination end up in Lead.Extra.
func decodeLead(form, pageID string, values domain.FieldValues) (domain.Lead, error) {
	var lead domain.Lead
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &lead,
		TagName: "mapstructure",
	})
	if err != nil {
		return domain.Lead{}, err
	}
	if err := dec.Decode(map[string]string(values)); err != nil {
		return domain.Lead{}, fmt.Errorf("failed to decode lead: %w", err)
	}
	lead.Form = form
	lead.PageID = pageID
	return lead, nil
}
