package validate_test

import (
	"strings"
	"testing"

	"github.com/nkinsurance/quoteflow/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	t.Run("Clean input passes through", func(t *testing.T) {
		out, err := validate.SanitizeInput("Ana María", 0)
		require.NoError(t, err)
		assert.Equal(t, "Ana María", out)
	})

	t.Run("Control characters are stripped", func(t *testing.T) {
		out, err := validate.SanitizeInput("Ana\x1b[31m\x00", 0)
		require.NoError(t, err)
		assert.Equal(t, "Ana[31m", out)
	})

	t.Run("Newlines and tabs are kept", func(t *testing.T) {
		out, err := validate.SanitizeInput("line1\nline2\tend", 0)
		require.NoError(t, err)
		assert.Equal(t, "line1\nline2\tend", out)
	})

	t.Run("Oversized input is rejected", func(t *testing.T) {
		_, err := validate.SanitizeInput(strings.Repeat("a", 11), 10)
		assert.ErrorIs(t, err, validate.ErrInputTooLarge)
	})

	t.Run("Invalid UTF-8 is rejected", func(t *testing.T) {
		_, err := validate.SanitizeInput(string([]byte{0xff, 0xfe}), 0)
		assert.ErrorIs(t, err, validate.ErrInvalidUTF8)
	})
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "Ana", validate.StripMarkup("<b>Ana</b>"))
	assert.Equal(t, "Tom & Jerry", validate.StripMarkup("Tom & Jerry"))
	assert.Equal(t, "plain", validate.StripMarkup("plain"))
	assert.NotContains(t, validate.StripMarkup(`<img src=x onerror="alert(1)">hi`), "<img")
	assert.Equal(t, "O'Brien Jr", validate.StripMarkup("O'Brien <i>Jr</i>"))

	// Encoded markup is stripped too, however deeply it is encoded.
	for _, in := range []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"&#60;b&#62;Ana&#60;/b&#62;",
	} {
		out := validate.StripMarkup(in)
		assert.NotContains(t, out, "<", in)
		assert.NotContains(t, out, ">", in)
	}
	assert.Equal(t, "Ana", validate.StripMarkup("&lt;b&gt;Ana&lt;/b&gt;"))
}
