package rules

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"

	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/ir"
)

var (
	registry   []Check
	checkIndex = map[string]int{} // UPPER(checkID) -> index
)

func Register(c Check) {
	registry = append(registry, c)
	checkIndex[strings.ToUpper(strings.TrimSpace(c.ID))] = len(registry) - 1
}

func List() []Check {
	out := make([]Check, 0, len(registry))
	for _, c := range registry {
		if rsettings.Disabled[strings.ToUpper(c.ID)] {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Evaluate runs every enabled check against every screen of the scan. Issue
// severity, message, expectation and docs link come from the catalog unless the
// check set them; unknown rule identifiers resolve to the UNKNOWN_RULE entry.
func Evaluate(scan *ir.Scan) []ir.Issue {
	var all []ir.Issue
	cs := List()

	seen := make(map[string]struct{}) // issue IDs seen in this scan
	seq := 0

	put := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}

	for i := range scan.Screens {
		screen := &scan.Screens[i]
		for _, check := range cs {
			issues := check.Eval(screen)
			for k := range issues {
				if issues[k].Screen == "" {
					issues[k].Screen = screen.Name
				}
				// Fill rule metadata from the catalog
				meta := catalog.Resolve(issues[k].RuleID)
				if issues[k].Severity == "" {
					issues[k].Severity = meta.Severity
				}
				if issues[k].Message == "" {
					issues[k].Message = meta.Message
				}
				if issues[k].Expectation == "" {
					issues[k].Expectation = meta.Expectation
				}
				if issues[k].Docs == "" {
					issues[k].Docs = meta.Docs
				}
				if !severityOK(issues[k].Severity) {
					issues[k].RuleID = "" // mark dropped
					continue
				}
				// Guarantee unique ID within the scan
				id := issues[k].ID
				if id == "" {
					id = makeID(issues[k].RuleID, screen.Name, issues[k].Path, issues[k].Evidence, k)
				}
				if !put(id) {
					for {
						seq++
						candidate := fmt.Sprintf("%s-%06d", check.ID, seq)
						if put(candidate) {
							id = candidate
							break
						}
					}
				}
				issues[k].ID = id
			}
			for _, is := range issues {
				if is.RuleID != "" {
					all = append(all, is)
				}
			}
		}
	}

	// Stable order for reproducible outputs
	sort.Slice(all, func(i, j int) bool {
		if all[i].Severity == all[j].Severity {
			if all[i].RuleID == all[j].RuleID {
				return all[i].ID < all[j].ID
			}
			return all[i].RuleID < all[j].RuleID
		}
		return severityRank(all[i].Severity) > severityRank(all[j].Severity)
	})
	return all
}

func makeID(ruleID, screen, path, evidence string, idx int) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%d", ruleID, screen, path, evidence, idx)
	sum := crc32.ChecksumIEEE([]byte(data))
	return fmt.Sprintf("%s-%08x", ruleID, sum)
}

// Get returns a check by ID if registered (used by the API rules inventory).
func Get(id string) (Check, bool) {
	idx, ok := checkIndex[strings.ToUpper(strings.TrimSpace(id))]
	if !ok || idx < 0 || idx >= len(registry) {
		return Check{}, false
	}
	return registry[idx], true
}

// Walk visits el and all of its descendants in depth-first order.
func Walk(el *ir.Element, visit func(*ir.Element)) {
	visit(el)
	for i := range el.Children {
		Walk(&el.Children[i], visit)
	}
}

// WalkScreen visits every element of the screen in depth-first order.
func WalkScreen(s *ir.Screen, visit func(*ir.Element)) {
	for i := range s.Elements {
		Walk(&s.Elements[i], visit)
	}
}
