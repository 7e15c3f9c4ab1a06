package rules

import (
	"fmt"
	"strings"

	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/contrast"
	"github.com/a11ykit/a11ylint/internal/ir"
)

func init() {
	Register(Check{
		ID:      catalog.ContrastFailed,
		Summary: "Text must meet the configured WCAG contrast ratio.",
		Eval:    evalContrast,
	})
}

func evalContrast(screen *ir.Screen) []ir.Issue {
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if el.Foreground == "" || el.Background == "" {
			return
		}
		if strings.TrimSpace(el.Text) == "" && el.Type != "text" && el.Type != "text_input" {
			return
		}
		ratio := el.Annotations.ContrastRatio
		if ratio == 0 {
			r, err := contrast.Ratio(el.Foreground, el.Background)
			if err != nil {
				return // undecodable colors are a snapshot defect, not a finding
			}
			ratio = r
		}
		need := contrast.Threshold(rsettings.ContrastLevel, el.FontSize, el.Bold)
		if ratio >= need {
			return
		}
		ruleID := catalog.ContrastFailed
		if strings.EqualFold(rsettings.ContrastLevel, contrast.LevelAAA) {
			ruleID = catalog.ContrastFailedAAA
		}
		out = append(out, ir.Issue{
			RuleID:   ruleID,
			Path:     el.Path,
			Evidence: fmt.Sprintf("%s on %s ratio %.2f:1 below %.1f:1", el.Foreground, el.Background, ratio, need),
			Metadata: map[string]any{"ratio": ratio, "required": need},
		})
	})
	return out
}
