package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a11ykit/a11ylint/internal/ir"
)

type diffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary diffSummary   `json:"summary"`
	New     []diffIssue   `json:"new"`
	Fixed   []diffIssue   `json:"fixed"`
	Changed []diffChanged `json:"changed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	FixedCount   int `json:"fixed"`
	ChangedCount int `json:"changed"`
}

type diffIssue struct {
	RuleID   string `json:"rule_id"`
	Screen   string `json:"screen"`
	Path     string `json:"path,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
}

type diffChanged struct {
	Key     string    `json:"key"`
	Base    diffIssue `json:"base"`
	Head    diffIssue `json:"head"`
	Changed []string  `json:"fields_changed"`
}

func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Scan) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	// index issues
	bm := map[string]ir.Issue{}
	hm := map[string]ir.Issue{}
	for _, is := range base.Issues {
		bm[keyOf(is)] = is
	}
	for _, is := range head.Issues {
		hm[keyOf(is)] = is
	}

	var added []diffIssue
	var fixed []diffIssue
	var changed []diffChanged

	// additions & changes
	for k, hi := range hm {
		if bi, ok := bm[k]; !ok {
			added = append(added, asDiff(hi))
		} else {
			var fields []string
			if norm(bi.Severity) != norm(hi.Severity) {
				fields = append(fields, "severity")
			}
			if strings.TrimSpace(bi.Message) != strings.TrimSpace(hi.Message) {
				fields = append(fields, "message")
			}
			if len(fields) > 0 {
				changed = append(changed, diffChanged{
					Key:     k,
					Base:    asDiff(bi),
					Head:    asDiff(hi),
					Changed: fields,
				})
			}
		}
	}
	// fixes
	for k, bi := range bm {
		if _, ok := hm[k]; !ok {
			fixed = append(fixed, asDiff(bi))
		}
	}

	// stable sort
	sort.Slice(added, func(i, j int) bool { return added[i].RuleID < added[j].RuleID })
	sort.Slice(fixed, func(i, j int) bool { return fixed[i].RuleID < fixed[j].RuleID })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:     len(added),
			FixedCount:   len(fixed),
			ChangedCount: len(changed),
		},
		New:     added,
		Fixed:   fixed,
		Changed: changed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

func keyOf(is ir.Issue) string {
	sb := strings.Builder{}
	sb.WriteString(norm(is.RuleID))
	sb.WriteByte('|')
	sb.WriteString(norm(is.Screen))
	sb.WriteByte('|')
	sb.WriteString(norm(is.Path))
	sb.WriteByte('|')
	// evidence drives logical identity for many checks
	sb.WriteString(norm(is.Evidence))
	return sb.String()
}

func asDiff(is ir.Issue) diffIssue {
	return diffIssue{
		RuleID:   is.RuleID,
		Screen:   is.Screen,
		Path:     is.Path,
		Severity: is.Severity,
		Message:  is.Message,
	}
}

func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
