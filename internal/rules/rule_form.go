package rules

import (
	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/ir"
)

func init() {
	Register(Check{
		ID:      catalog.NoFormLabel,
		Summary: "Form fields must have an associated label.",
		Eval:    evalNoFormLabel,
	})
	Register(Check{
		ID:      catalog.NoFormError,
		Summary: "Form validation errors must reach assistive technology.",
		Eval:    evalNoFormError,
	})
}

func evalNoFormLabel(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if el.Form == nil {
			return
		}
		if !el.Form.HasLabel {
			out = append(out, ir.Issue{
				RuleID:   catalog.NoFormLabel,
				Path:     el.Path,
				Evidence: el.Type + " without form label",
			})
		}
	})
	return out
}

func evalNoFormError(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if el.Form == nil || el.Form.Error == "" {
			return
		}
		if !el.Form.ErrorExposed {
			out = append(out, ir.Issue{
				RuleID:   catalog.NoFormError,
				Path:     el.Path,
				Evidence: "error " + snippet(el.Form.Error) + " not exposed",
			})
		}
	})
	return out
}
