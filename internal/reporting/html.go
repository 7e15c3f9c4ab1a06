package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"

	"github.com/a11ykit/a11ylint/internal/ir"
)

func WriteHTML(scanID, outDir string, scan *ir.Scan) (string, error) {
	path := filepath.Join(outDir, scanID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Totals per severity
	critical, serious := 0, 0
	perScreen := map[string]int{}
	for _, is := range scan.Issues {
		switch is.Severity {
		case ir.SeverityCritical:
			critical++
		default:
			serious++
		}
		perScreen[is.Screen]++
	}

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(scanID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .crit{color:#b00020;font-weight:600}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>a11ylint report: <span class='mono'>%s</span></h1>", html.EscapeString(scanID))
	fmt.Fprintf(f, "<p>Screens: %d &nbsp; Issues: %d (<span class='crit'>%d critical</span>, %d serious)</p>",
		len(scan.Screens), len(scan.Issues), critical, serious)

	// Platform/threshold banner
	fmt.Fprintf(f, "<p class='dim'>Platform: %s &nbsp; Severity threshold: %s &nbsp; Contrast level: %s",
		html.EscapeString(scan.Context.Platform),
		html.EscapeString(scan.Context.SeverityThreshold),
		html.EscapeString(scan.Context.ContrastLevel),
	)
	if n := len(scan.Context.DisabledRules); n > 0 {
		fmt.Fprintf(f, " &nbsp; Disabled rules: %d", n)
	}
	fmt.Fprint(f, "</p>")

	// Worst screens (by issue count desc)
	if len(perScreen) > 0 {
		type sc struct {
			name  string
			count int
		}
		var worst []sc
		for name, c := range perScreen {
			worst = append(worst, sc{name, c})
		}
		sort.Slice(worst, func(i, j int) bool {
			if worst[i].count == worst[j].count {
				return worst[i].name < worst[j].name
			}
			return worst[i].count > worst[j].count
		})
		fmt.Fprint(f, "<h2>Worst Screens</h2><table><tr><th>Screen</th><th>Issues</th></tr>")
		limit := len(worst)
		if limit > 10 {
			limit = 10
		}
		for i := 0; i < limit; i++ {
			fmt.Fprintf(f, "<tr><td>%s</td><td>%d</td></tr>", html.EscapeString(worst[i].name), worst[i].count)
		}
		fmt.Fprint(f, "</table>")
	}

	// All issues
	if len(scan.Issues) > 0 {
		fmt.Fprint(f, "<h2>All Issues</h2><table><tr><th>Severity</th><th>Rule</th><th>Screen</th><th>Element</th><th>Message</th><th>Evidence</th></tr>")
		for _, is := range scan.Issues {
			rule := html.EscapeString(is.RuleID)
			if is.Docs != "" {
				rule = fmt.Sprintf("<a href='%s'>%s</a>", html.EscapeString(is.Docs), rule)
			}
			fmt.Fprintf(f, "<tr><td>%s</td><td>%s</td><td>%s</td><td class='mono'>%s</td><td>%s</td><td class='mono'>%s</td></tr>",
				html.EscapeString(is.Severity),
				rule,
				html.EscapeString(is.Screen),
				html.EscapeString(is.Path),
				html.EscapeString(is.Message),
				html.EscapeString(is.Evidence),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>All Issues</h2><p class='dim'>No issues at or above the configured threshold.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
