package rules

import (
	"strings"

	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/ir"
)

func init() {
	Register(Check{
		ID:      catalog.NoAccessibilityLabel,
		Summary: "Interactive element must have an accessibility label.",
		Eval:    evalNoAccessibilityLabel,
	})
}

func evalNoAccessibilityLabel(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if !isInteractive(el.Type) {
			return
		}
		// Visible text doubles as the accessible name when no label is set.
		if strings.TrimSpace(el.Label) == "" && strings.TrimSpace(el.Text) == "" {
			out = append(out, ir.Issue{
				RuleID:   catalog.NoAccessibilityLabel,
				Path:     el.Path,
				Evidence: el.Type + " with no label or text content",
			})
		}
	})
	return out
}

func isInteractive(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "pressable", "switch", "text_input":
		return true
	}
	return false
}
