package domain

// Controls captures the visibility and state of the wizard navigation buttons.
type Controls struct {
	PreviousVisible bool   `json:"previous_visible"`
	NextVisible     bool   `json:"next_visible"`
	SubmitVisible   bool   `json:"submit_visible"`
	SubmitDisabled  bool   `json:"submit_disabled"`
	SubmitLabel     string `json:"submit_label"`
}

// StepView is the rendered form of the current wizard step.
// Renderers only ever read it; it carries no behavior.
type StepView struct {
	Enabled      bool              `json:"enabled"`
	Step         int               `json:"step"`
	TotalSteps   int               `json:"total_steps"`
	Progress     float64           `json:"progress"`
	ProgressText string            `json:"progress_text"`
	Panel        StepDefinition    `json:"panel"`
	Controls     Controls          `json:"controls"`
	Values       FieldValues       `json:"values,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
	Summary      []SummaryRow      `json:"summary,omitempty"`
	Banners      []Banner          `json:"banners,omitempty"`
}

// FormView is the rendered form of a single-step form.
type FormView struct {
	Form     FormDefinition    `json:"form"`
	Values   FieldValues       `json:"values,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	Pending  bool              `json:"pending"`
	Label    string            `json:"label"`
	Disabled bool              `json:"disabled"`
}
