package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// Messages shown next to a failing field.
const (
	MsgRequired = "This field is required"
	MsgEmail    = "Please enter a valid email"
	MsgPhone    = "Please enter a valid phone number"
	msgMinLen   = "Minimum %d characters"
)

// PhoneDigits is the number of digits a phone number must carry.
const PhoneDigits = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsRequiredSatisfied reports whether value is non-empty after trimming.
func IsRequiredSatisfied(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsValidEmail reports whether value has a local@domain.tld shape.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsValidPhone reports whether value holds exactly ten digits once every
// other character is stripped.
func IsValidPhone(value string) bool {
	return len(Digits(value)) == PhoneDigits
}

// Digits returns the ASCII digits of value, in order.
func Digits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// MinLengthMessage returns the message for a too-short value.
func MinLengthMessage(n int) string {
	return fmt.Sprintf(msgMinLen, n)
}

// Required applies the step gate rules to a required field: emptiness first,
// then the format of its kind. Optional fields always pass.
func Required(desc domain.FieldDescriptor, value string) (string, bool) {
	if !desc.Required {
		return "", true
	}
	if !IsRequiredSatisfied(value) {
		return MsgRequired, false
	}
	return format(desc, value)
}

// Field applies the full set of rules used when a single field loses focus:
// required, kind format on non-empty values and minimum length.
func Field(desc domain.FieldDescriptor, value string) (string, bool) {
	if desc.Required && !IsRequiredSatisfied(value) {
		return MsgRequired, false
	}
	if value != "" {
		if msg, ok := format(desc, value); !ok {
			return msg, false
		}
	}
	if desc.MinLength > 0 && utf8.RuneCountInString(value) < desc.MinLength {
		return MinLengthMessage(desc.MinLength), false
	}
	return "", true
}

func format(desc domain.FieldDescriptor, value string) (string, bool) {
	switch desc.Kind {
	case domain.FieldEmail:
		if !IsValidEmail(value) {
			return MsgEmail, false
		}
	case domain.FieldTel:
		if !IsValidPhone(value) {
			return MsgPhone, false
		}
	}
	return "", true
}
