package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/validate"
)

// Form is a single-step form such as the contact or newsletter form.
// Safe for concurrent use.
type Form struct {
	mu      sync.Mutex
	def     domain.FormDefinition
	values  domain.FieldValues
	label   string
	pending *Submission

	opts options
}

// NewForm creates an empty form.
func NewForm(def domain.FormDefinition, opts ...Option) *Form {
	if def.SubmitLabel == "" {
		def.SubmitLabel = defaultSubmitLabel
	}
	if def.PendingLabel == "" {
		def.PendingLabel = defaultPendingLabel
	}
	return &Form{
		def:    def,
		values: make(domain.FieldValues),
		label:  def.SubmitLabel,
		opts:   buildOptions(opts),
	}
}

// Name returns the catalog name of the form.
func (f *Form) Name() string {
	return f.def.Name
}

// Definition returns the fields the form was built from.
func (f *Form) Definition() domain.FormDefinition {
	return f.def
}

// Values returns a copy of the entered values.
func (f *Form) Values() domain.FieldValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Clone()
}

// SetValue records what the visitor typed into a field.
func (f *Form) SetValue(name, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setValue(name, raw)
}

// SetValues records several fields at once, ignoring unknown names.
func (f *Form) SetValues(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, raw := range values {
		if _, ok := f.def.Field(name); !ok {
			continue
		}
		if err := f.setValue(name, raw); err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) setValue(name, raw string) error {
	desc, ok := f.def.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
	}
	value, err := normalize(desc, raw, f.opts.maxInputSize)
	if err != nil {
		return err
	}
	f.values[name] = value
	if _, shown := f.opts.presenter.FieldError(f.key(name)); shown {
		f.validateField(desc)
	}
	return nil
}

// ValidateField applies the full rule set to a single field.
func (f *Form) ValidateField(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	desc, ok := f.def.Field(name)
	if !ok {
		return true
	}
	return f.validateField(desc)
}

func (f *Form) validateField(desc domain.FieldDescriptor) bool {
	msg, ok := validate.Field(desc, f.values.Get(desc.Name))
	if ok {
		f.opts.presenter.ClearFieldError(f.key(desc.Name))
	} else {
		f.opts.presenter.ShowFieldError(f.key(desc.Name), msg)
	}
	return ok
}

// Validate checks every field of the form.
func (f *Form) Validate(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validate(ctx)
}

func (f *Form) validate(ctx context.Context) bool {
	failures := make(map[string]string)
	for _, desc := range f.def.Fields {
		if !f.validateField(desc) {
			msg, _ := f.opts.presenter.FieldError(f.key(desc.Name))
			failures[desc.Name] = msg
		}
	}
	if len(failures) == 0 {
		return true
	}
	if h := f.opts.hooks.OnValidationFailed; h != nil {
		h(ctx, &domain.ValidationEvent{
			EventBase: f.event(domain.EventValidationFailed),
			Errors:    failures,
		})
	}
	return false
}

// Submit validates the form and hands its values to the submission sink.
// On success the form is cleared and a success banner shown.
func (f *Form) Submit(ctx context.Context) (*Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending != nil {
		return nil, domain.ErrSubmissionInProgress
	}
	if !f.validate(ctx) {
		return nil, domain.ErrValidation
	}

	lead, err := decodeLead(f.def.Name, f.opts.pageID, f.values)
	if err != nil {
		return nil, err
	}

	f.label = f.def.PendingLabel
	start := time.Now()

	if h := f.opts.hooks.OnSubmitStart; h != nil {
		h(ctx, &domain.SubmitEvent{EventBase: f.event(domain.EventSubmitStart)})
	}

	f.pending = startSubmission(ctx, f.opts, lead, func(res domain.SubmissionResult) {
		f.finishSubmit(context.WithoutCancel(ctx), res, start)
	})
	return f.pending, nil
}

func (f *Form) finishSubmit(ctx context.Context, res domain.SubmissionResult, start time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch res.Status {
	case domain.SubmissionSucceeded:
		f.opts.presenter.ShowSuccess(f.def.Success)
		f.opts.presenter.ClearFieldErrors(f.keys()...)
		f.values = make(domain.FieldValues)
		f.opts.logger.Info("form submitted", "form", f.def.Name, "page_id", f.opts.pageID, "receipt_id", res.Receipt.ID)
	case domain.SubmissionFailed:
		f.opts.presenter.ShowError(f.def.Failure)
		f.opts.logger.Warn("form submission failed", "form", f.def.Name, "page_id", f.opts.pageID, "err", res.Err)
	}

	f.label = f.def.SubmitLabel
	f.pending = nil

	if h := f.opts.hooks.OnSubmitFinish; h != nil {
		h(ctx, &domain.SubmitEvent{
			EventBase: f.event(domain.EventSubmitFinish),
			Status:    res.Status,
			Duration:  time.Since(start),
			Err:       res.Err,
		})
	}
}

// Pending returns the submission in flight, or nil.
func (f *Form) Pending() *Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// View renders the form.
func (f *Form) View() domain.FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string)
	for _, name := range f.def.FieldNames() {
		if msg, ok := f.opts.presenter.FieldError(f.key(name)); ok {
			errs[name] = msg
		}
	}
	return domain.FormView{
		Form:     f.def,
		Values:   f.values.Clone(),
		Errors:   errs,
		Pending:  f.pending != nil,
		Label:    f.label,
		Disabled: f.pending != nil,
	}
}

// Close cancels a pending submission.
func (f *Form) Close() {
	f.mu.Lock()
	pending := f.pending
	f.mu.Unlock()
	if pending != nil {
		pending.Cancel()
	}
}

// key scopes a field name so forms sharing a presenter with the wizard do
// not clobber each other's errors.
func (f *Form) key(name string) string {
	return f.def.Name + "." + name
}

func (f *Form) keys() []string {
	names := f.def.FieldNames()
	for i, n := range names {
		names[i] = f.key(n)
	}
	return names
}

func (f *Form) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		PageID:    f.opts.pageID,
		Form:      f.def.Name,
	}
}
