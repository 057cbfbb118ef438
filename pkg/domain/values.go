package domain

// FieldValues maps a field name to what the visitor entered.
type FieldValues map[string]string

// Clone returns an independent copy of v.
func (v FieldValues) Clone() FieldValues {
	out := make(FieldValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Get returns the value for name, or "" when unset.
func (v FieldValues) Get(name string) string {
	if v == nil {
		return ""
	}
	return v[name]
}

// Lead is the typed record handed to a submission sink.
// Field tags match the catalog field names.
type Lead struct {
	Form           string            `json:"form"`
	PageID         string            `json:"page_id"`
	FirstName      string            `json:"first_name,omitempty" mapstructure:"firstName"`
	LastName       string            `json:"last_name,omitempty" mapstructure:"lastName"`
	Name           string            `json:"name,omitempty" mapstructure:"name"`
	Email          string            `json:"email,omitempty" mapstructure:"email"`
	Phone          string            `json:"phone,omitempty" mapstructure:"phone"`
	ZipCode        string            `json:"zip_code,omitempty" mapstructure:"zipCode"`
	HouseholdSize  string            `json:"household_size,omitempty" mapstructure:"householdSize"`
	Income         string            `json:"income,omitempty" mapstructure:"income"`
	CoverageNeeded string            `json:"coverage_needed,omitempty" mapstructure:"coverageNeeded"`
	Message        string            `json:"message,omitempty" mapstructure:"message"`
	Extra          map[string]string `json:"extra,omitempty" mapstructure:",remain"`
}
