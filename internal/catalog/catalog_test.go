package catalog

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ykit/a11ylint/internal/ir"
)

func TestLookup_CaseInsensitive(t *testing.T) {
	r, ok := Lookup("no_accessibility_label")
	require.True(t, ok)
	assert.Equal(t, NoAccessibilityLabel, r.ID)
	assert.Equal(t, ir.SeverityCritical, r.Severity)

	_, ok = Lookup("NOT_A_RULE")
	assert.False(t, ok)
}

func TestResolve_UnknownFallback(t *testing.T) {
	r := Resolve("SOME_MISSING_RULE")
	assert.Equal(t, UnknownRule, r.ID)
	assert.Equal(t, ir.SeveritySerious, r.Severity)
	assert.Contains(t, r.Message, "SOME_MISSING_RULE")
	assert.NotEmpty(t, r.Expectation)
}

func TestResolve_KnownPassThrough(t *testing.T) {
	r := Resolve(MinimumSize)
	assert.Equal(t, MinimumSize, r.ID)
	assert.Equal(t, ir.SeveritySerious, r.Severity)
}

func TestEntries_WellFormed(t *testing.T) {
	ids := IDs()
	require.NotEmpty(t, ids)
	assert.True(t, sort.StringsAreSorted(ids))

	for _, id := range ids {
		r, ok := Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, id, r.ID)
		assert.Equal(t, strings.ToUpper(id), id, "identifiers are upper-case")
		assert.NotEmpty(t, r.Message, id)
		assert.NotEmpty(t, r.Expectation, id)
		switch r.Severity {
		case ir.SeveritySerious, ir.SeverityCritical:
		default:
			t.Fatalf("rule %s has invalid severity %q", id, r.Severity)
		}
	}
}
