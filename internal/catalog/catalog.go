// Package catalog is the static accessibility rule catalog: the mapping from a
// rule identifier to its severity, human-readable message, remediation
// expectation and documentation link. Entries are defined at compile time and
// never mutated.
package catalog

import (
	"sort"
	"strings"

	"github.com/a11ykit/a11ylint/internal/ir"
)

type Rule struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"` // SERIOUS|CRITICAL
	Message     string `json:"message"`
	Expectation string `json:"expectation"`
	Docs        string `json:"docs,omitempty"`
}

const (
	NoAccessibilityLabel  = "NO_ACCESSIBILITY_LABEL"
	NoAccessibilityRole   = "NO_ACCESSIBILITY_ROLE"
	MinimumSize           = "MINIMUM_SIZE"
	ContrastFailed        = "CONTRAST_FAILED"
	ContrastFailedAAA     = "CONTRAST_FAILED_AAA"
	UppercaseTextNoLabel  = "UPPERCASE_TEXT_NO_ACCESSIBILITY_LABEL"
	UppercaseLabel        = "UPPERCASE_ACCESSIBILITY_LABEL"
	NoFormLabel           = "NO_FORM_LABEL"
	NoFormError           = "NO_FORM_ERROR"
	ListNoCountInSingular = "LIST_NO_COUNT_IN_SINGULAR_MESSAGE"
	ListNoCountInPlural   = "LIST_NO_COUNT_IN_PLURAL_MESSAGE"
	NoKeyboardTrap        = "NO_KEYBOARD_TRAP"
	UnknownRule           = "UNKNOWN_RULE"
)

var entries = map[string]Rule{
	NoAccessibilityLabel: {
		ID:          NoAccessibilityLabel,
		Severity:    ir.SeverityCritical,
		Message:     "Interactive element has no accessibility label.",
		Expectation: "Provide an accessibilityLabel so screen readers announce the element's purpose.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/name-role-value.html",
	},
	NoAccessibilityRole: {
		ID:          NoAccessibilityRole,
		Severity:    ir.SeverityCritical,
		Message:     "Interactive element has no accessibility role.",
		Expectation: "Set an accessibilityRole (button, link, ...) so assistive tech announces how to interact.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/name-role-value.html",
	},
	MinimumSize: {
		ID:          MinimumSize,
		Severity:    ir.SeveritySerious,
		Message:     "Touch target is smaller than the platform minimum.",
		Expectation: "Size interactive elements at least 44x44pt on iOS and 48x48dp on Android.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/target-size.html",
	},
	ContrastFailed: {
		ID:          ContrastFailed,
		Severity:    ir.SeveritySerious,
		Message:     "Text contrast is below the WCAG AA minimum.",
		Expectation: "Use a contrast ratio of at least 4.5:1 for normal text and 3:1 for large text.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/contrast-minimum.html",
	},
	ContrastFailedAAA: {
		ID:          ContrastFailedAAA,
		Severity:    ir.SeveritySerious,
		Message:     "Text contrast is below the WCAG AAA level.",
		Expectation: "Use a contrast ratio of at least 7:1 for normal text and 4.5:1 for large text.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/contrast-enhanced.html",
	},
	UppercaseTextNoLabel: {
		ID:          UppercaseTextNoLabel,
		Severity:    ir.SeveritySerious,
		Message:     "All-caps text without an accessibility label may be spelled out letter by letter.",
		Expectation: "Provide an accessibilityLabel with normal casing, or avoid all-caps text.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/name-role-value.html",
	},
	UppercaseLabel: {
		ID:          UppercaseLabel,
		Severity:    ir.SeverityCritical,
		Message:     "Accessibility label is all-caps; screen readers may spell it out letter by letter.",
		Expectation: "Use sentence casing in accessibility labels; apply uppercasing visually only.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/name-role-value.html",
	},
	NoFormLabel: {
		ID:          NoFormLabel,
		Severity:    ir.SeverityCritical,
		Message:     "Form field has no associated label.",
		Expectation: "Link every form field to a visible label announced by assistive tech.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/labels-or-instructions.html",
	},
	NoFormError: {
		ID:          NoFormError,
		Severity:    ir.SeveritySerious,
		Message:     "Form validation error is not exposed to assistive technology.",
		Expectation: "Announce validation errors via the field's accessibility value or a live region.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/error-identification.html",
	},
	ListNoCountInSingular: {
		ID:          ListNoCountInSingular,
		Severity:    ir.SeveritySerious,
		Message:     "List singular announcement message does not include the item count.",
		Expectation: "Include the %count% placeholder in the singular message, e.g. \"%count% result\".",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/status-messages.html",
	},
	ListNoCountInPlural: {
		ID:          ListNoCountInPlural,
		Severity:    ir.SeveritySerious,
		Message:     "List plural announcement message does not include the item count.",
		Expectation: "Include the %count% placeholder in the plural message, e.g. \"%count% results\".",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/status-messages.html",
	},
	NoKeyboardTrap: {
		ID:          NoKeyboardTrap,
		Severity:    ir.SeverityCritical,
		Message:     "Modal traps focus without an accessible way to dismiss it.",
		Expectation: "Provide a close action reachable by keyboard and assistive tech.",
		Docs:        "https://www.w3.org/WAI/WCAG21/Understanding/no-keyboard-trap.html",
	},
}

// fallback is returned by Resolve for identifiers absent from the catalog, so a
// mis-registered check degrades to a visible finding instead of a zero rule.
var fallback = Rule{
	ID:          UnknownRule,
	Severity:    ir.SeveritySerious,
	Message:     "A check reported an issue with an unknown rule identifier.",
	Expectation: "Register the rule identifier in the catalog or fix the check that emitted it.",
}

// Lookup returns the catalog entry for id. The match is case-insensitive.
func Lookup(id string) (Rule, bool) {
	r, ok := entries[strings.ToUpper(strings.TrimSpace(id))]
	return r, ok
}

// Resolve is like Lookup but never fails: unknown identifiers map to the
// UNKNOWN_RULE fallback with the offending id recorded in the message.
func Resolve(id string) Rule {
	if r, ok := Lookup(id); ok {
		return r
	}
	r := fallback
	r.Message = "Unknown rule identifier " + strings.TrimSpace(id) + "."
	return r
}

// IDs returns all catalog identifiers in sorted order.
func IDs() []string {
	out := make([]string, 0, len(entries))
	for id := range entries {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
