package rules

import (
	"github.com/a11ykit/a11ylint/internal/catalog"
	"github.com/a11ykit/a11ylint/internal/ir"
)

func init() {
	Register(Check{
		ID:      catalog.NoKeyboardTrap,
		Summary: "Focus-trapping modals must offer an accessible close action.",
		Eval:    evalKeyboardTrap,
	})
}

func evalKeyboardTrap(screen *ir.Screen) []ir.Issue {
	// Only platforms with hardware-keyboard focus navigation can get stuck.
	if !keyboardPlatform() {
		return nil
	}
	var out []ir.Issue
	WalkScreen(screen, func(el *ir.Element) {
		if el.Modal == nil || !el.Modal.TrapsFocus {
			return
		}
		if !el.Modal.HasCloseAction {
			out = append(out, ir.Issue{
				RuleID:   catalog.NoKeyboardTrap,
				Path:     el.Path,
				Evidence: el.Type + " traps focus with no close action",
			})
		}
	})
	return out
}
