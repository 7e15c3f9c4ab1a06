// Package contrast implements the WCAG 2.1 relative-luminance and contrast
// ratio math used to annotate text elements before rule evaluation.
package contrast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Levels for threshold selection.
const (
	LevelAA  = "AA"
	LevelAAA = "AAA"
)

// Large text per WCAG: >=18pt, or >=14pt bold.
func isLargeText(fontSize float64, bold bool) bool {
	return fontSize >= 18 || (bold && fontSize >= 14)
}

// Threshold returns the minimum acceptable ratio for the given level and text
// size. Unknown levels fall back to AA.
func Threshold(level string, fontSize float64, bold bool) float64 {
	large := isLargeText(fontSize, bold)
	if strings.EqualFold(strings.TrimSpace(level), LevelAAA) {
		if large {
			return 4.5
		}
		return 7.0
	}
	if large {
		return 3.0
	}
	return 4.5
}

// Ratio computes the contrast ratio between two hex colors, in [1, 21].
func Ratio(fg, bg string) (float64, error) {
	lf, err := luminance(fg)
	if err != nil {
		return 0, fmt.Errorf("foreground %q: %w", fg, err)
	}
	lb, err := luminance(bg)
	if err != nil {
		return 0, fmt.Errorf("background %q: %w", bg, err)
	}
	if lf < lb {
		lf, lb = lb, lf
	}
	return (lf + 0.05) / (lb + 0.05), nil
}

// luminance is the WCAG relative luminance of a #RGB or #RRGGBB color.
func luminance(hex string) (float64, error) {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return 0, err
	}
	return 0.2126*channel(r) + 0.7152*channel(g) + 0.0722*channel(b), nil
}

func channel(v uint8) float64 {
	c := float64(v) / 255.0
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func parseHex(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, fmt.Errorf("invalid hex color length %d", len(s))
	}
	n, perr := strconv.ParseUint(s, 16, 32)
	if perr != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %v", perr)
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n), nil
}
