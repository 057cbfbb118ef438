package dsl

import (
	"fmt"

	"github.com/nkinsurance/quoteflow/pkg/catalog"
	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// Builder manages the wizard construction.
type Builder struct {
	steps []*StepBuilder
	def   domain.WizardDefinition
}

// New creates a new wizard builder. Labels and messages start from the
// built-in quote wizard.
func New() *Builder {
	base := catalog.Default().Quote
	return &Builder{
		def: domain.WizardDefinition{
			SubmitLabel:  base.SubmitLabel,
			PendingLabel: base.PendingLabel,
			Success:      base.Success,
			Failure:      base.Failure,
		},
	}
}

// Step adds a step at the end of the wizard.
// If a step with the same title exists, it returns the existing builder.
func (b *Builder) Step(title string) *StepBuilder {
	for _, sb := range b.steps {
		if sb.step.Title == title {
			return sb
		}
	}
	sb := &StepBuilder{
		step:    domain.StepDefinition{Title: title},
		builder: b,
	}
	b.steps = append(b.steps, sb)
	return sb
}

// SubmitLabel sets the label of the submit button and the label shown while
// the submission is pending.
func (b *Builder) SubmitLabel(label, pending string) *Builder {
	b.def.SubmitLabel = label
	b.def.PendingLabel = pending
	return b
}

// Messages sets the banners shown after a successful and a failed submission.
func (b *Builder) Messages(success, failure string) *Builder {
	b.def.Success = success
	b.def.Failure = failure
	return b
}

// Wizard compiles the steps into a wizard definition.
func (b *Builder) Wizard() (domain.WizardDefinition, error) {
	cat, err := b.Build()
	if err != nil {
		return domain.WizardDefinition{}, err
	}
	return cat.Quote, nil
}

// Build compiles the wizard into a catalog. The contact and newsletter forms
// are the built-in ones.
func (b *Builder) Build() (*catalog.Catalog, error) {
	def := b.def
	def.Steps = make([]domain.StepDefinition, len(b.steps))
	for i, sb := range b.steps {
		step := sb.step
		step.Number = i + 1
		step.Fields = append([]domain.FieldDescriptor(nil), sb.step.Fields...)
		def.Steps[i] = step
	}

	base := catalog.Default()
	cat := &catalog.Catalog{
		Quote:      def,
		Contact:    base.Contact,
		Newsletter: base.Newsletter,
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build wizard: %w", err)
	}
	return cat, nil
}
