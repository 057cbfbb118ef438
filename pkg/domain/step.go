package domain

// FieldKind selects the validation rules and the input widget of a field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldTel      FieldKind = "tel"
	FieldSelect   FieldKind = "select"
	FieldTextarea FieldKind = "textarea"
)

// Valid reports whether k is a known kind.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldText, FieldEmail, FieldTel, FieldSelect, FieldTextarea:
		return true
	}
	return false
}

// FieldDescriptor describes a single input of a form.
type FieldDescriptor struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength   int       `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// StepDefinition is one panel of the quote wizard.
// Number is the 1-based ordinal position of the panel.
type StepDefinition struct {
	Number int               `json:"number" yaml:"-"`
	Title  string            `json:"title" yaml:"title"`
	Fields []FieldDescriptor `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field returns the descriptor with the given name.
func (s StepDefinition) Field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// WizardDefinition is the ordered list of steps of the quote wizard plus the
// strings of its submit lifecycle.
type WizardDefinition struct {
	Steps        []StepDefinition `json:"steps" yaml:"steps"`
	SubmitLabel  string           `json:"submit_label" yaml:"submit_label"`
	PendingLabel string           `json:"pending_label" yaml:"pending_label"`
	Success      string           `json:"success" yaml:"success"`
	Failure      string           `json:"failure" yaml:"failure"`
}

// Step returns the definition of step n (1-based).
func (w WizardDefinition) Step(n int) (StepDefinition, bool) {
	if n < 1 || n > len(w.Steps) {
		return StepDefinition{}, false
	}
	return w.Steps[n-1], true
}

// FieldNames returns the names of every field in every step, in order.
func (w WizardDefinition) FieldNames() []string {
	var names []string
	for _, s := range w.Steps {
		for _, f := range s.Fields {
			names = append(names, f.Name)
		}
	}
	return names
}

// Field looks a field up across all steps.
func (w WizardDefinition) Field(name string) (FieldDescriptor, bool) {
	for _, s := range w.Steps {
		if f, ok := s.Field(name); ok {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// FormDefinition describes a single-step form such as the contact form.
type FormDefinition struct {
	Name         string            `json:"name" yaml:"-"`
	Fields       []FieldDescriptor `json:"fields" yaml:"fields"`
	SubmitLabel  string            `json:"submit_label" yaml:"submit_label"`
	PendingLabel string            `json:"pending_label" yaml:"pending_label"`
	Success      string            `json:"success" yaml:"success"`
	Failure      string            `json:"failure" yaml:"failure"`
}

// FieldNames returns the names of the form fields, in order.
func (f FormDefinition) FieldNames() []string {
	names := make([]string, len(f.Fields))
	for i, d := range f.Fields {
		names[i] = d.Name
	}
	return names
}

// Field returns the descriptor with the given name.
func (f FormDefinition) Field(name string) (FieldDescriptor, bool) {
	for _, d := range f.Fields {
		if d.Name == name {
			return d, true
		}
	}
	return FieldDescriptor{}, false
}
