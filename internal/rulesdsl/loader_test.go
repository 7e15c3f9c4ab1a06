package rulesdsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ykit/a11ylint/internal/ir"
	"github.com/a11ykit/a11ylint/internal/rules"
)

func writePack(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadAndRegister_EvaluatesWhereClause(t *testing.T) {
	p := writePack(t, `
rules:
  - id: PACK_IMAGE_NO_LABEL
    summary: images must carry a label
    severity: SERIOUS
    message: Image has no accessibility label.
    expectation: Set an accessibility label on every image.
    where:
      type: "^image$"
      missing_label: true
`)
	n, err := LoadAndRegister(p)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rules.SetSettings(rules.Settings{})
	t.Cleanup(func() { rules.SetSettings(rules.Settings{}) })

	scan := ir.Scan{Screens: []ir.Screen{{
		Name: "Gallery",
		Elements: []ir.Element{
			{Path: "Image[0]", Type: "image"},
			{Path: "Image[1]", Type: "image", Label: "Sunset"},
			{Path: "Text[0]", Type: "text", Text: "caption"},
		},
	}}}
	issues := rules.Evaluate(&scan)

	var hits []ir.Issue
	for _, is := range issues {
		if is.RuleID == "PACK_IMAGE_NO_LABEL" {
			hits = append(hits, is)
		}
	}
	require.Len(t, hits, 1)
	assert.Equal(t, "Image[0]", hits[0].Path)
	assert.Equal(t, ir.SeveritySerious, hits[0].Severity)
	assert.Contains(t, hits[0].Evidence, "no label")
}

func TestLoadAndRegister_MaxDimensions(t *testing.T) {
	p := writePack(t, `
rules:
  - id: PACK_TINY_ICON_BUTTON
    severity: CRITICAL
    message: Icon button is too small.
    where:
      role: "^button$"
      max_width: 24
      max_height: 24
`)
	n, err := LoadAndRegister(p)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c, ok := rules.Get("PACK_TINY_ICON_BUTTON")
	require.True(t, ok)

	screen := ir.Screen{Name: "Toolbar", Elements: []ir.Element{
		{Path: "Btn[0]", Type: "pressable", Role: "button", Width: 16, Height: 16},
		{Path: "Btn[1]", Type: "pressable", Role: "button", Width: 32, Height: 32},
		{Path: "Btn[2]", Type: "pressable", Role: "button"},
	}}
	issues := c.Eval(&screen)
	require.Len(t, issues, 1)
	assert.Equal(t, "Btn[0]", issues[0].Path)
	assert.Contains(t, issues[0].Evidence, "16x16")
}

func TestLoadAndRegister_RejectsBadSeverity(t *testing.T) {
	p := writePack(t, `
rules:
  - id: PACK_BAD
    severity: WARN
    message: nope
`)
	_, err := LoadAndRegister(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severity")
}

func TestLoadAndRegister_RejectsMissingFields(t *testing.T) {
	p := writePack(t, `
rules:
  - summary: no id here
    severity: SERIOUS
`)
	_, err := LoadAndRegister(p)
	require.Error(t, err)
}

func TestLoadAndRegister_RejectsBadRegex(t *testing.T) {
	p := writePack(t, `
rules:
  - id: PACK_BAD_RE
    severity: SERIOUS
    message: nope
    where:
      type: "("
`)
	_, err := LoadAndRegister(p)
	require.Error(t, err)
}

func TestLoadAndRegister_MissingFile(t *testing.T) {
	_, err := LoadAndRegister(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
