package dsl

import (
	"github.com/nkinsurance/quoteflow/pkg/catalog"
	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// StepBuilder provides a fluent API for configuring a step.
// Field modifiers such as Required apply to the field added last.
type StepBuilder struct {
	step    domain.StepDefinition
	builder *Builder
}

// Step starts another step, so a whole wizard reads as one chain.
func (s *StepBuilder) Step(title string) *StepBuilder {
	return s.builder.Step(title)
}

// Build compiles the whole wizard. See Builder.Build.
func (s *StepBuilder) Build() (*catalog.Catalog, error) {
	return s.builder.Build()
}

// Text adds a free text field.
func (s *StepBuilder) Text(name, label string) *StepBuilder {
	return s.add(name, label, domain.FieldText)
}

// Email adds an email field.
func (s *StepBuilder) Email(name, label string) *StepBuilder {
	return s.add(name, label, domain.FieldEmail)
}

// Tel adds a phone field. Values are formatted as they are typed.
func (s *StepBuilder) Tel(name, label string) *StepBuilder {
	return s.add(name, label, domain.FieldTel)
}

// Textarea adds a multi-line text field.
func (s *StepBuilder) Textarea(name, label string) *StepBuilder {
	return s.add(name, label, domain.FieldTextarea)
}

// Select adds a field restricted to options.
func (s *StepBuilder) Select(name, label string, options ...string) *StepBuilder {
	s.add(name, label, domain.FieldSelect)
	s.last().Options = options
	return s
}

// Required marks the last field as required.
func (s *StepBuilder) Required() *StepBuilder {
	if f := s.last(); f != nil {
		f.Required = true
	}
	return s
}

// MinLength sets the minimum length of the last field.
func (s *StepBuilder) MinLength(n int) *StepBuilder {
	if f := s.last(); f != nil {
		f.MinLength = n
	}
	return s
}

// Placeholder sets the hint shown in the last field while it is empty.
func (s *StepBuilder) Placeholder(text string) *StepBuilder {
	if f := s.last(); f != nil {
		f.Placeholder = text
	}
	return s
}

func (s *StepBuilder) add(name, label string, kind domain.FieldKind) *StepBuilder {
	s.step.Fields = append(s.step.Fields, domain.FieldDescriptor{
		Name:  name,
		Label: label,
		Kind:  kind,
	})
	return s
}

func (s *StepBuilder) last() *domain.FieldDescriptor {
	if len(s.step.Fields) == 0 {
		return nil
	}
	return &s.step.Fields[len(s.step.Fields)-1]
}
