package rules

import (
	"strings"

	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/ir"
)

// countPlaceholder must appear in list announcement messages so the number of
// results is spoken when the data changes.
const countPlaceholder = "%count%"

func init() {
	Register(Check{
		ID:      catalog.ListNoCountInSingular,
		Summary: "List singular announcement must include the item count.",
		Eval:    evalListSingularCount,
	})
	Register(Check{
		ID:      catalog.ListNoCountInPlural,
		Summary: "List plural announcement must include the item count.",
		Eval:    evalListPluralCount,
	})
}

func evalListSingularCount(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if el.List == nil {
			return
		}
		if !strings.Contains(el.List.SingularMessage, countPlaceholder) {
			out = append(out, ir.Issue{
				RuleID:   catalog.ListNoCountInSingular,
				Path:     el.Path,
				Evidence: "singular message " + quoteOrEmpty(el.List.SingularMessage),
			})
		}
	})
	return out
}

func evalListPluralCount(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if el.List == nil {
			return
		}
		if !strings.Contains(el.List.PluralMessage, countPlaceholder) {
			out = append(out, ir.Issue{
				RuleID:   catalog.ListNoCountInPlural,
				Path:     el.Path,
				Evidence: "plural message " + quoteOrEmpty(el.List.PluralMessage),
			})
		}
	})
	return out
}

func quoteOrEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(empty)"
	}
	return "\"" + snippet(s) + "\""
}
