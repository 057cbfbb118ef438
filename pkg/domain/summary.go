package domain

// SummaryField maps a field name to the label shown in the summary view.
type SummaryField struct {
	Name  string
	Label string
}

// SummaryFields is the fixed, ordered naming contract of the summary view.
// Fields outside this table never appear in the summary.
var SummaryFields = []SummaryField{
	{Name: "firstName", Label: "Name"},
	{Name: "lastName", Label: "Last Name"},
	{Name: "email", Label: "Email"},
	{Name: "phone", Label: "Phone"},
	{Name: "zipCode", Label: "Zip Code"},
	{Name: "householdSize", Label: "Household Size"},
	{Name: "income", Label: "Annual Income"},
	{Name: "coverageNeeded", Label: "Coverage For"},
}

// SummaryRow is one line of the summary view.
type SummaryRow struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
}
