package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// PrintBanner writes the startup banner of the terminal wizard.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	title := termenv.String("  NK Insurance | Free Quote").Foreground(p.Color("#818cf8")).Bold()
	ver := termenv.String("v" + strings.TrimSpace(version)).Foreground(p.Color("#c084fc")).Faint()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s  %s\n", title, ver)
	fmt.Fprintln(w, termenv.String("  Type 'back' to go back, 'quit' to leave.").Faint())
	fmt.Fprintln(w)
}

// Notice formats a notification banner for the terminal.
func Notice(b domain.Banner) string {
	p := termenv.ColorProfile()
	switch b.Kind {
	case domain.BannerSuccess:
		return termenv.String("✔ " + b.Message).Foreground(p.Color("#22c55e")).String()
	default:
		return termenv.String("✖ " + b.Message).Foreground(p.Color("#ef4444")).String()
	}
}

// FieldError formats an inline validation message.
func FieldError(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("  ! " + msg).Foreground(p.Color("#f59e0b")).String()
}
