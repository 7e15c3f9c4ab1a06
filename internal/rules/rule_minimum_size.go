package rules

import (
	"fmt"

	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/ir"
)

func init() {
	Register(Check{
		ID:      catalog.MinimumSize,
		Summary: "Touch targets must meet the platform minimum size.",
		Eval:    evalMinimumSize,
	})
}

func evalMinimumSize(screen *ir.Screen) []ir.Issue {
	min := minTargetSize()
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if !isInteractive(el.Type) {
			return
		}
		// Unmeasured elements are skipped; layout has not run yet.
		if el.Width <= 0 || el.Height <= 0 {
			return
		}
		if el.Width < min || el.Height < min {
			out = append(out, ir.Issue{
				RuleID:   catalog.MinimumSize,
				Path:     el.Path,
				Evidence: fmt.Sprintf("%.0fx%.0f below %.0fx%.0f minimum", el.Width, el.Height, min, min),
			})
		}
	})
	return out
}
