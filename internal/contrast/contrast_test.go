package contrast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ykit/a11ylint/internal/ir"
)

func TestRatio_BlackOnWhite(t *testing.T) {
	r, err := Ratio("#000000", "#FFFFFF")
	require.NoError(t, err)
	assert.InDelta(t, 21.0, r, 0.01)
}

func TestRatio_SameColor(t *testing.T) {
	r, err := Ratio("#336699", "#336699")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 0.001)
}

func TestRatio_OrderIndependent(t *testing.T) {
	a, err := Ratio("#333333", "#EEEEEE")
	require.NoError(t, err)
	b, err := Ratio("#EEEEEE", "#333333")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRatio_ShortHexForm(t *testing.T) {
	long, err := Ratio("#777777", "#FFFFFF")
	require.NoError(t, err)
	short, err := Ratio("#777", "#FFF")
	require.NoError(t, err)
	assert.Equal(t, long, short)
}

func TestRatio_AAKnownBoundary(t *testing.T) {
	// #767676 on white is the darkest gray that still passes AA for normal text.
	pass, err := Ratio("#767676", "#FFFFFF")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pass, 4.5)

	fail, err := Ratio("#777777", "#FFFFFF")
	require.NoError(t, err)
	assert.Less(t, fail, 4.5)
}

func TestRatio_InvalidColor(t *testing.T) {
	_, err := Ratio("not-a-color", "#FFFFFF")
	assert.Error(t, err)
	_, err = Ratio("#FFFFFF", "#12")
	assert.Error(t, err)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 4.5, Threshold(LevelAA, 16, false))
	assert.Equal(t, 3.0, Threshold(LevelAA, 18, false))
	assert.Equal(t, 3.0, Threshold(LevelAA, 14, true))
	assert.Equal(t, 4.5, Threshold(LevelAA, 14, false))
	assert.Equal(t, 7.0, Threshold(LevelAAA, 16, false))
	assert.Equal(t, 4.5, Threshold(LevelAAA, 18, false))
	// unknown level falls back to AA
	assert.Equal(t, 4.5, Threshold("", 16, false))
}

func TestAnnotateScan(t *testing.T) {
	scan := ir.Scan{
		Screens: []ir.Screen{{
			Name: "Home",
			Elements: []ir.Element{{
				Path: "Text[0]", Type: "text",
				Foreground: "#000000", Background: "#FFFFFF",
				Children: []ir.Element{{
					Path: "Text[0]/Text[0]", Type: "text",
					Foreground: "#336699", Background: "#336699",
				}},
			}},
		}},
	}
	AnnotateScan(&scan)
	assert.InDelta(t, 21.0, scan.Screens[0].Elements[0].Annotations.ContrastRatio, 0.01)
	assert.InDelta(t, 1.0, scan.Screens[0].Elements[0].Children[0].Annotations.ContrastRatio, 0.001)
}
