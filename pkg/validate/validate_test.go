package validate_test

import (
	"testing"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/validate"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"ana@x.com", true},
		{"first.last@sub.domain.org", true},
		{"a@b", false},
		{"", false},
		{"a b@c.com", false},
		{"@b.com", false},
		{"a@@b.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.IsValidEmail(tt.in))
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, validate.IsValidPhone("(555) 123-4567"))
	assert.Equal(t, "5551234567", validate.Digits("(555) 123-4567"))
	assert.True(t, validate.IsValidPhone("555.123.4567"))
	assert.False(t, validate.IsValidPhone("555-1234"))
	assert.False(t, validate.IsValidPhone("1 (555) 123-4567"))
	assert.False(t, validate.IsValidPhone(""))
}

func TestIsRequiredSatisfied(t *testing.T) {
	assert.True(t, validate.IsRequiredSatisfied("x"))
	assert.False(t, validate.IsRequiredSatisfied(""))
	assert.False(t, validate.IsRequiredSatisfied("   \t"))
}

func TestRequired(t *testing.T) {
	email := domain.FieldDescriptor{Name: "email", Kind: domain.FieldEmail, Required: true}
	phone := domain.FieldDescriptor{Name: "phone", Kind: domain.FieldTel, Required: true}
	optional := domain.FieldDescriptor{Name: "note", Kind: domain.FieldEmail}

	msg, ok := validate.Required(email, "")
	assert.False(t, ok)
	assert.Equal(t, validate.MsgRequired, msg)

	msg, ok = validate.Required(email, "a@b")
	assert.False(t, ok)
	assert.Equal(t, validate.MsgEmail, msg)

	_, ok = validate.Required(email, "a@b.com")
	assert.True(t, ok)

	msg, ok = validate.Required(phone, "555-1234")
	assert.False(t, ok)
	assert.Equal(t, validate.MsgPhone, msg)

	_, ok = validate.Required(optional, "not an email")
	assert.True(t, ok, "optional fields are not gated")
}

func TestField(t *testing.T) {
	msgField := domain.FieldDescriptor{Name: "message", Kind: domain.FieldTextarea, Required: true, MinLength: 10}
	optionalTel := domain.FieldDescriptor{Name: "phone", Kind: domain.FieldTel}

	msg, ok := validate.Field(msgField, "short")
	assert.False(t, ok)
	assert.Equal(t, "Minimum 10 characters", msg)

	_, ok = validate.Field(msgField, "long enough text")
	assert.True(t, ok)

	_, ok = validate.Field(optionalTel, "")
	assert.True(t, ok, "empty optional field passes")

	msg, ok = validate.Field(optionalTel, "123")
	assert.False(t, ok)
	assert.Equal(t, validate.MsgPhone, msg)
}

func TestFormatPhone(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"5":              "(5",
		"555":            "(555",
		"5551":           "(555) 1",
		"555123":         "(555) 123",
		"5551234":        "(555) 123-4",
		"5551234567":     "(555) 123-4567",
		"55512345678999": "(555) 123-4567",
		"(555) 123-4567": "(555) 123-4567",
	}
	for in, want := range tests {
		assert.Equal(t, want, validate.FormatPhone(in), "input %q", in)
	}
}
