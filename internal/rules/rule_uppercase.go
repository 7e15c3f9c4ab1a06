package rules

import (
	"strings"
	"unicode"

	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/ir"
)

func init() {
	Register(Check{
		ID:      catalog.UppercaseTextNoLabel,
		Summary: "All-caps text needs an accessibility label with normal casing.",
		Eval:    evalUppercaseText,
	})
	Register(Check{
		ID:      catalog.UppercaseLabel,
		Summary: "Accessibility labels must not be all-caps.",
		Eval:    evalUppercaseLabel,
	})
}

func evalUppercaseText(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if !allCaps(el.Text) {
			return
		}
		if strings.TrimSpace(el.Label) != "" {
			return
		}
		out = append(out, ir.Issue{
			RuleID:   catalog.UppercaseTextNoLabel,
			Path:     el.Path,
			Evidence: snippet(el.Text),
		})
	})
	return out
}

func evalUppercaseLabel(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if !allCaps(el.Label) {
			return
		}
		out = append(out, ir.Issue{
			RuleID:   catalog.UppercaseLabel,
			Path:     el.Path,
			Evidence: snippet(el.Label),
		})
	})
	return out
}

// allCaps reports whether s contains at least two letters and no lowercase
// ones. Single-letter strings ("A", "I") are fine to announce as-is.
func allCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.IsLower(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
