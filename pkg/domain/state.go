package domain

// WizardState is the snapshot of a quote wizard.
//
// CurrentStep always stays within [1, TotalSteps]. It only moves by one step
// at a time or goes back to 1 after a successful submission.
type WizardState struct {
	CurrentStep int  `json:"current_step"`
	TotalSteps  int  `json:"total_steps"`
	Submitting  bool `json:"submitting"`
}

// NewWizardState creates a state positioned on the first step.
func NewWizardState(totalSteps int) WizardState {
	return WizardState{
		CurrentStep: 1,
		TotalSteps:  totalSteps,
	}
}

// IsFirst reports whether the wizard is on step 1.
func (s WizardState) IsFirst() bool {
	return s.CurrentStep == 1
}

// IsLast reports whether the wizard is on the final step.
func (s WizardState) IsLast() bool {
	return s.CurrentStep == s.TotalSteps
}

// CanAdvance reports whether a forward move stays in range.
func (s WizardState) CanAdvance() bool {
	return !s.Submitting && s.CurrentStep < s.TotalSteps
}

// CanRetreat reports whether a backward move stays in range.
func (s WizardState) CanRetreat() bool {
	return !s.Submitting && s.CurrentStep > 1
}

// Progress returns the completion percentage of the current step.
func (s WizardState) Progress() float64 {
	if s.TotalSteps <= 0 {
		return 0
	}
	return float64(s.CurrentStep) / float64(s.TotalSteps) * 100
}
