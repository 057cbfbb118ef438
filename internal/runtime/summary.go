package runtime

import "github.com/nkinsurance/quoteflow/pkg/domain"

// BuildSummary lists the entered values of the summary fields, in table
// order, skipping empty ones.
func BuildSummary(values domain.FieldValues) []domain.SummaryRow {
	var rows []domain.SummaryRow
	for _, f := range domain.SummaryFields {
		v := values.Get(f.Name)
		if v == "" {
			continue
		}
		rows = append(rows, domain.SummaryRow{
			Name:  f.Name,
			Label: f.Label,
			Value: v,
		})
	}
	return rows
}
