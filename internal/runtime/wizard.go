package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/validate"
)

const (
	defaultSubmitLabel  = "Submit"
	defaultPendingLabel = "Sending..."

	// QuoteForm names the wizard in leads and events.
	QuoteForm = "quote"
)

// Wizard is the multi-step quote form.
//
// It shows exactly one step at a time, gates forward moves on validation and
// hands the collected lead to a submitter from the final step. A Wizard built
// from a definition without steps is disabled: every operation is a no-op.
// Safe for concurrent use.
type Wizard struct {
	mu      sync.Mutex
	def     domain.WizardDefinition
	state   domain.WizardState
	values  domain.FieldValues
	summary []domain.SummaryRow
	label   string
	pending *Submission
	enabled bool

	opts options
}

// NewWizard initializes a wizard on its first step.
func NewWizard(ctx context.Context, def domain.WizardDefinition, opts ...Option) *Wizard {
	if def.SubmitLabel == "" {
		def.SubmitLabel = defaultSubmitLabel
	}
	if def.PendingLabel == "" {
		def.PendingLabel = defaultPendingLabel
	}

	w := &Wizard{
		def:     def,
		values:  make(domain.FieldValues),
		label:   def.SubmitLabel,
		enabled: len(def.Steps) > 0,
		opts:    buildOptions(opts),
	}

	if !w.enabled {
		w.opts.logger.Debug("quote wizard disabled: no steps defined", "page_id", w.opts.pageID)
		return w
	}

	w.state = domain.NewWizardState(len(def.Steps))
	w.mu.Lock()
	w.goToStep(ctx, 1)
	w.mu.Unlock()
	return w
}

// Enabled reports whether the wizard has steps to show.
func (w *Wizard) Enabled() bool {
	return w.enabled
}

// Definition returns the steps the wizard was built from.
func (w *Wizard) Definition() domain.WizardDefinition {
	return w.def
}

// State returns a snapshot of the wizard state.
func (w *Wizard) State() domain.WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Values returns a copy of the entered values.
func (w *Wizard) Values() domain.FieldValues {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values.Clone()
}

// SetValue records what the visitor typed into a field. Phone fields are
// formatted as they are typed. A field that currently shows an error is
// validated again.
func (w *Wizard) SetValue(ctx context.Context, name, raw string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.setValue(ctx, name, raw)
}

// SetValues records several fields at once. Names the wizard does not know
// are ignored.
func (w *Wizard) SetValues(ctx context.Context, values map[string]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, raw := range values {
		if _, ok := w.def.Field(name); !ok {
			continue
		}
		if err := w.setValue(ctx, name, raw); err != nil {
			return err
		}
	}
	return nil
}

func (w *Wizard) setValue(ctx context.Context, name, raw string) error {
	if !w.enabled {
		return domain.ErrDisabled
	}
	desc, ok := w.def.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
	}
	value, err := normalize(desc, raw, w.opts.maxInputSize)
	if err != nil {
		return err
	}
	w.values[name] = value

	if _, shown := w.opts.presenter.FieldError(name); shown {
		w.validateField(desc)
	}
	return nil
}

// ValidateField applies the full rule set to a single field, as when it loses
// focus. Unknown fields pass.
func (w *Wizard) ValidateField(ctx context.Context, name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled {
		return true
	}
	desc, ok := w.def.Field(name)
	if !ok {
		return true
	}
	return w.validateField(desc)
}

func (w *Wizard) validateField(desc domain.FieldDescriptor) bool {
	msg, ok := validate.Field(desc, w.values.Get(desc.Name))
	if ok {
		w.opts.presenter.ClearFieldError(desc.Name)
	} else {
		w.opts.presenter.ShowFieldError(desc.Name, msg)
	}
	return ok
}

// Validate checks the required fields of a step, marking the failing ones and
// clearing the others.
func (w *Wizard) Validate(ctx context.Context, step int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled {
		return false
	}
	return w.validate(ctx, step)
}

func (w *Wizard) validate(ctx context.Context, step int) bool {
	panel, ok := w.def.Step(step)
	if !ok {
		return false
	}

	failures := make(map[string]string)
	for _, f := range panel.Fields {
		if !f.Required {
			continue
		}
		if msg, ok := validate.Required(f, w.values.Get(f.Name)); !ok {
			failures[f.Name] = msg
			w.opts.presenter.ShowFieldError(f.Name, msg)
		} else {
			w.opts.presenter.ClearFieldError(f.Name)
		}
	}

	if len(failures) == 0 {
		return true
	}

	w.opts.logger.Debug("step validation failed", "page_id", w.opts.pageID, "step", step, "fields", len(failures))
	if h := w.opts.hooks.OnValidationFailed; h != nil {
		h(ctx, &domain.ValidationEvent{
			EventBase: w.event(domain.EventValidationFailed),
			Step:      step,
			Errors:    failures,
		})
	}
	return false
}

// Next validates the current step and moves forward when it passes.
// It returns false on the last step, while submitting, or on failure.
func (w *Wizard) Next(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled || !w.state.CanAdvance() {
		return false
	}
	if !w.validate(ctx, w.state.CurrentStep) {
		return false
	}
	w.goToStep(ctx, w.state.CurrentStep+1)
	return true
}

// Previous moves one step back. It returns false on step 1 or while
// submitting.
func (w *Wizard) Previous(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled || !w.state.CanRetreat() {
		return false
	}
	w.goToStep(ctx, w.state.CurrentStep-1)
	return true
}

// goToStep shows step n. Callers hold the lock and only pass the current
// step plus or minus one, or 1.
func (w *Wizard) goToStep(ctx context.Context, n int) {
	w.state.CurrentStep = n
	if n == w.state.TotalSteps {
		w.summary = BuildSummary(w.values)
	}

	if h := w.opts.hooks.OnStepEnter; h != nil {
		h(ctx, &domain.StepEvent{
			EventBase:  w.event(domain.EventStepEnter),
			Step:       n,
			TotalSteps: w.state.TotalSteps,
		})
	}
}

// Submit sends the entered values from the final step.
//
// It fails with ErrSubmissionInProgress while a previous submission is
// pending and with ErrValidation when the final step does not pass. On
// success the wizard shows a success banner, clears every value and returns
// to step 1. On failure it shows an error banner and keeps the values.
func (w *Wizard) Submit(ctx context.Context) (*Submission, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case !w.enabled:
		return nil, domain.ErrDisabled
	case w.state.Submitting:
		return nil, domain.ErrSubmissionInProgress
	case !w.state.IsLast():
		return nil, domain.ErrNotFinalStep
	}
	if !w.validate(ctx, w.state.CurrentStep) {
		return nil, domain.ErrValidation
	}

	lead, err := decodeLead(QuoteForm, w.opts.pageID, w.values)
	if err != nil {
		return nil, err
	}

	w.state.Submitting = true
	w.label = w.def.PendingLabel
	start := time.Now()

	w.opts.logger.Info("quote submission started", "page_id", w.opts.pageID)
	if h := w.opts.hooks.OnSubmitStart; h != nil {
		h(ctx, &domain.SubmitEvent{EventBase: w.event(domain.EventSubmitStart)})
	}

	w.pending = startSubmission(ctx, w.opts, lead, func(res domain.SubmissionResult) {
		w.finishSubmit(context.WithoutCancel(ctx), res, start)
	})
	return w.pending, nil
}

func (w *Wizard) finishSubmit(ctx context.Context, res domain.SubmissionResult, start time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch res.Status {
	case domain.SubmissionSucceeded:
		w.opts.presenter.ShowSuccess(w.def.Success)
		w.opts.presenter.ClearFieldErrors(w.def.FieldNames()...)
		w.values = make(domain.FieldValues)
		w.state.Submitting = false
		w.goToStep(ctx, 1)
		w.opts.logger.Info("quote submitted", "page_id", w.opts.pageID, "receipt_id", res.Receipt.ID)
	case domain.SubmissionFailed:
		w.opts.presenter.ShowError(w.def.Failure)
		w.opts.logger.Warn("quote submission failed", "page_id", w.opts.pageID, "err", res.Err)
	case domain.SubmissionCanceled:
		w.opts.logger.Info("quote submission canceled", "page_id", w.opts.pageID)
	}

	w.state.Submitting = false
	w.label = w.def.SubmitLabel
	w.pending = nil

	if h := w.opts.hooks.OnSubmitFinish; h != nil {
		h(ctx, &domain.SubmitEvent{
			EventBase: w.event(domain.EventSubmitFinish),
			Status:    res.Status,
			Duration:  time.Since(start),
			Err:       res.Err,
		})
	}
}

// Pending returns the submission in flight, or nil.
func (w *Wizard) Pending() *Submission {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Summary lists the entered values under their summary labels.
func (w *Wizard) Summary() []domain.SummaryRow {
	w.mu.Lock()
	defer w.mu.Unlock()
	return BuildSummary(w.values)
}

// View renders the current step.
func (w *Wizard) View() domain.StepView {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.enabled {
		return domain.StepView{}
	}

	cur, total := w.state.CurrentStep, w.state.TotalSteps
	panel, _ := w.def.Step(cur)

	names := make([]string, len(panel.Fields))
	for i, f := range panel.Fields {
		names[i] = f.Name
	}

	view := domain.StepView{
		Enabled:      true,
		Step:         cur,
		TotalSteps:   total,
		Progress:     w.state.Progress(),
		ProgressText: fmt.Sprintf("Step %d of %d", cur, total),
		Panel:        panel,
		Controls: domain.Controls{
			PreviousVisible: cur != 1,
			NextVisible:     cur != total,
			SubmitVisible:   cur == total,
			SubmitDisabled:  w.state.Submitting,
			SubmitLabel:     w.label,
		},
		Values:  w.values.Clone(),
		Errors:  w.opts.presenter.FieldErrors(names...),
		Banners: w.opts.presenter.Banners(),
	}
	if cur == total && len(w.summary) > 0 {
		view.Summary = append([]domain.SummaryRow(nil), w.summary...)
	}
	return view
}

// Close cancels a pending submission.
func (w *Wizard) Close() {
	w.mu.Lock()
	pending := w.pending
	w.mu.Unlock()
	if pending != nil {
		pending.Cancel()
	}
}

func (w *Wizard) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		PageID:    w.opts.pageID,
		Form:      QuoteForm,
	}
}
