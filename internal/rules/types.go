package rules

import "github.com/a11ykit/a11ylint/internal/ir"

// Check is a single accessibility predicate executed over a Screen.
type Check struct {
	ID      string
	Summary string
	// Eval inspects the screen's element tree and returns issues.
	Eval func(screen *ir.Screen) []ir.Issue
}
