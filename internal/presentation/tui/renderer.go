package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// StepMarkdown describes the current wizard step as markdown: title, progress,
// the fields with their values and errors and, on the last step, the summary.
func StepMarkdown(v domain.StepView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", v.Panel.Title)
	fmt.Fprintf(&b, "%s `%s`\n\n", v.ProgressText, progressBar(v.Progress, 20))

	for _, f := range v.Panel.Fields {
		value := v.Values.Get(f.Name)
		if value == "" {
			value = "_empty_"
		}
		marker := ""
		if f.Required {
			marker = " *"
		}
		fmt.Fprintf(&b, "- **%s**%s: %s\n", f.Label, marker, value)
		if msg := v.Errors[f.Name]; msg != "" {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}

	if len(v.Summary) > 0 {
		b.WriteString("\n| Field | Value |\n|---|---|\n")
		for _, row := range v.Summary {
			fmt.Fprintf(&b, "| %s | %s |\n", row.Label, escapeCell(row.Value))
		}
	}
	return b.String()
}

func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
