package rules

import (
	"strings"

	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/ir"
)

func init() {
	Register(Check{
		ID:      catalog.NoAccessibilityRole,
		Summary: "Interactive element must have an accessibility role.",
		Eval:    evalNoAccessibilityRole,
	})
}

func evalNoAccessibilityRole(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if !isInteractive(el.Type) {
			return
		}
		if strings.TrimSpace(el.Role) == "" {
			out = append(out, ir.Issue{
				RuleID:   catalog.NoAccessibilityRole,
				Path:     el.Path,
				Evidence: el.Type + " with no role",
			})
		}
	})
	return out
}
