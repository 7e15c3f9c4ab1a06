package rules

import (
	"strings"

	"github.com/a11ykit/a11ylint/internal/ir"
	"github.com/a11ykit/a11ylint/internal/storage"
)

// ApplyWaivers filters out issues that match any active waiver.
// Returns (kept, waivedCount)
func ApplyWaivers(in []ir.Issue, waivers []storage.Waiver) ([]ir.Issue, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []ir.Issue
	waived := 0
nextIssue:
	for _, is := range in {
		for _, w := range waivers {
			if !eqCI(is.RuleID, w.RuleID) {
				continue
			}
			if w.Screen != "" && !eqCI(is.Screen, w.Screen) {
				continue
			}
			if w.Path != "" && !eqCI(is.Path, w.Path) {
				continue
			}
			if w.PatternSub != "" {
				ps := strings.ToUpper(w.PatternSub)
				if !strings.Contains(strings.ToUpper(is.Evidence), ps) &&
					!strings.Contains(strings.ToUpper(is.Message), ps) {
					continue
				}
			}
			// matched, waive it
			waived++
			continue nextIssue
		}
		out = append(out, is)
	}
	return out, waived
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
