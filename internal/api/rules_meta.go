package api

import (
	"net/http"

	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/rules"
)

// GET /api/v1/rules (catalog metadata plus registered check summaries;
// read-only, no auth needed)
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	type R struct {
		ID          string `json:"id"`
		Summary     string `json:"summary,omitempty"`
		Severity    string `json:"severity"`
		Message     string `json:"message"`
		Expectation string `json:"expectation,omitempty"`
		Docs        string `json:"docs,omitempty"`
	}
	var out []R
	for _, id := range catalog.IDs() {
		meta, _ := catalog.Lookup(id)
		entry := R{
			ID: id, Severity: meta.Severity, Message: meta.Message,
			Expectation: meta.Expectation, Docs: meta.Docs,
		}
		if c, ok := rules.Get(id); ok {
			entry.Summary = c.Summary
		}
		out = append(out, entry)
	}
	// stable order guaranteed by catalog.IDs()
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "count": len(out)})
}
