package graph

import (
	"fmt"
	"strings"

	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// Overlay contains wizard state data to visualize on the graph.
type Overlay struct {
	VisitedSteps []int
	CurrentStep  int
}

// GenerateMermaid produces a Mermaid flowchart of the quote wizard.
// It applies semantic styling:
// - First step: ((Circle))
// - Last step: [/Parallelogram/] since it is where the quote is sent
// - Other steps: [Rectangle]
// Forward moves are gated by the step validation, backward moves are dotted.
// A successful submission returns to step 1, a failed one stays on the last
// step.
func GenerateMermaid(def domain.WizardDefinition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	total := len(def.Steps)
	for i, step := range def.Steps {
		n := i + 1
		opener, closer := "[", "]"
		switch {
		case n == 1:
			opener, closer = "((", "))"
		case n == total:
			opener, closer = "[/", "/]"
		}

		label := escapeLabel(step.Title)
		if len(step.Fields) > 0 {
			label = fmt.Sprintf("%s <br/> %d fields", label, len(step.Fields))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%d. %s\"%s\n", stepID(n), opener, n, label, closer))

		if n < total {
			sb.WriteString(fmt.Sprintf("    %s -- \"next (valid)\" --> %s\n", stepID(n), stepID(n+1)))
		}
		if n > 1 {
			sb.WriteString(fmt.Sprintf("    %s -. back .-> %s\n", stepID(n), stepID(n-1)))
		}
	}

	if total > 0 {
		last := stepID(total)
		submit := escapeLabel(def.SubmitLabel)
		if submit == "" {
			submit = "submit"
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> sending[[\"%s\"]]\n", last, submit, escapeLabel(def.PendingLabel)))
		sb.WriteString(fmt.Sprintf("    sending -- success --> %s\n", stepID(1)))
		sb.WriteString(fmt.Sprintf("    sending -. failure .-> %s\n", last))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, n := range overlay.VisitedSteps {
			if n < 1 || n > total || seen[n] {
				continue
			}
			seen[n] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", stepID(n)))
		}
		if overlay.CurrentStep >= 1 && overlay.CurrentStep <= total {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", stepID(overlay.CurrentStep)))
		}
	}

	return sb.String()
}

func stepID(n int) string {
	return fmt.Sprintf("step%d", n)
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "&", "and")
}
