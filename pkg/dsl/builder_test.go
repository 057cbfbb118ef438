package dsl

import (
	"errors"
	"testing"

	"github.com/nkinsurance/quoteflow/pkg/catalog"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleWizard(t *testing.T) {
	cat, err := New().
		SubmitLabel("Send", "Sending now").
		Messages("Done!", "Oops").
		Step("About You").
		Text("firstName", "First Name").Required().
		Email("email", "Email").Required().Placeholder("you@example.com").
		Tel("phone", "Phone").
		Step("Coverage").
		Select("coverageNeeded", "Coverage For", "Just me", "My family").Required().
		Textarea("notes", "Notes").MinLength(10).
		Step("Review").
		Build()
	require.NoError(t, err)

	q := cat.Quote
	require.Len(t, q.Steps, 3)
	assert.Equal(t, "Send", q.SubmitLabel)
	assert.Equal(t, "Sending now", q.PendingLabel)
	assert.Equal(t, "Done!", q.Success)
	assert.Equal(t, "Oops", q.Failure)

	for i, s := range q.Steps {
		assert.Equal(t, i+1, s.Number)
	}

	first := q.Steps[0]
	assert.Equal(t, "About You", first.Title)
	require.Len(t, first.Fields, 3)
	assert.Equal(t, domain.FieldDescriptor{Name: "firstName", Label: "First Name", Kind: domain.FieldText, Required: true}, first.Fields[0])
	assert.Equal(t, "you@example.com", first.Fields[1].Placeholder)
	assert.False(t, first.Fields[2].Required)

	cov, ok := q.Field("coverageNeeded")
	require.True(t, ok)
	assert.Equal(t, []string{"Just me", "My family"}, cov.Options)
	notes, _ := q.Field("notes")
	assert.Equal(t, 10, notes.MinLength)

	assert.Empty(t, q.Steps[2].Fields)
	assert.Equal(t, catalog.Default().Contact, cat.Contact)
}

func TestBuilder_Defaults(t *testing.T) {
	b := New()
	b.Step("Only").Text("firstName", "First Name")

	def, err := b.Wizard()
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Quote.SubmitLabel, def.SubmitLabel)
	assert.Equal(t, catalog.Default().Quote.Success, def.Success)
}

func TestBuilder_SameTitleReusesStep(t *testing.T) {
	b := New()
	b.Step("About You").Text("firstName", "First Name")
	b.Step("Extra")
	b.Step("About You").Text("lastName", "Last Name")

	def, err := b.Wizard()
	require.NoError(t, err)
	require.Len(t, def.Steps, 2)
	assert.Equal(t, []string{"firstName", "lastName"}, def.FieldNames())
}

func TestBuilder_ModifiersWithoutField(t *testing.T) {
	b := New()
	b.Step("Empty").Required().MinLength(3).Placeholder("x")

	def, err := b.Wizard()
	require.NoError(t, err)
	assert.Empty(t, def.Steps[0].Fields)
}

func TestBuilder_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{
			name: "Duplicate Field",
			build: func(b *Builder) {
				b.Step("One").Text("email", "Email")
				b.Step("Two").Email("email", "Email")
			},
		},
		{
			name: "Select Without Options",
			build: func(b *Builder) {
				b.Step("One").Select("size", "Size")
			},
		},
		{
			name: "Missing Name",
			build: func(b *Builder) {
				b.Step("One").Text("", "Nameless")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tt.build(b)
			_, err := b.Build()
			assert.True(t, errors.Is(err, catalog.ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestBuilder_NoSteps(t *testing.T) {
	def, err := New().Wizard()
	require.NoError(t, err)
	assert.Empty(t, def.Steps)
}
