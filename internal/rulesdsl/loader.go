// Package rulesdsl loads YAML rule packs and registers them as checks, so
// teams can declare project-specific accessibility rules without writing Go.
package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/a11ykit/a11ylint/internal/ir"
	"github.com/a11ykit/a11ylint/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID          string `yaml:"id"`
	Summary     string `yaml:"summary"`
	Severity    string `yaml:"severity"` // SERIOUS|CRITICAL
	Message     string `yaml:"message"`
	Expectation string `yaml:"expectation"`
	Docs        string `yaml:"docs"`

	Where struct {
		Type         string  `yaml:"type"`          // regex (case-insensitive)
		Role         string  `yaml:"role"`          // regex (case-insensitive)
		MissingLabel bool    `yaml:"missing_label"` // require empty accessibility label
		MissingHint  bool    `yaml:"missing_hint"`  // require empty accessibility hint
		MaxWidth     float64 `yaml:"max_width"`     // fire when width is below this
		MaxHeight    float64 `yaml:"max_height"`    // fire when height is below this
	} `yaml:"where"`
}

type compiled struct {
	rule   dslRule
	reType *regexp.Regexp
	reRole *regexp.Regexp
}

func LoadAndRegister(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rule pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		cr, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		registerCompiled(*cr)
		n++
	}
	return n, nil
}

func compile(r dslRule) (*compiled, error) {
	if r.ID == "" || r.Severity == "" || r.Message == "" {
		return nil, fmt.Errorf("missing required fields (id/severity/message)")
	}
	switch strings.ToUpper(r.Severity) {
	case ir.SeveritySerious, ir.SeverityCritical:
	default:
		return nil, fmt.Errorf("severity must be SERIOUS or CRITICAL, got %q", r.Severity)
	}
	c := &compiled{rule: r}
	if r.Where.Type != "" {
		re, err := regexp.Compile("(?i)" + r.Where.Type)
		if err != nil {
			return nil, fmt.Errorf("type regex: %w", err)
		}
		c.reType = re
	}
	if r.Where.Role != "" {
		re, err := regexp.Compile("(?i)" + r.Where.Role)
		if err != nil {
			return nil, fmt.Errorf("role regex: %w", err)
		}
		c.reRole = re
	}
	return c, nil
}

func registerCompiled(c compiled) {
	rules.Register(rules.Check{
		ID:      c.rule.ID,
		Summary: c.rule.Summary,
		Eval: func(screen *ir.Screen) []ir.Issue {
			var out []ir.Issue
			rules.WalkScreen(screen, func(el *ir.Element) {
				if c.reType != nil && !c.reType.MatchString(el.Type) {
					return
				}
				if c.reRole != nil && !c.reRole.MatchString(el.Role) {
					return
				}
				if c.rule.Where.MissingLabel && strings.TrimSpace(el.Label) != "" {
					return
				}
				if c.rule.Where.MissingHint && strings.TrimSpace(el.Hint) != "" {
					return
				}
				if c.rule.Where.MaxWidth > 0 && (el.Width <= 0 || el.Width >= c.rule.Where.MaxWidth) {
					return
				}
				if c.rule.Where.MaxHeight > 0 && (el.Height <= 0 || el.Height >= c.rule.Where.MaxHeight) {
					return
				}
				out = append(out, ir.Issue{
					RuleID:      c.rule.ID,
					Severity:    strings.ToUpper(c.rule.Severity),
					Message:     c.rule.Message,
					Expectation: c.rule.Expectation,
					Docs:        c.rule.Docs,
					Path:        el.Path,
					Evidence:    evidenceFor(el, c),
				})
			})
			return out
		},
	})
}

func evidenceFor(el *ir.Element, c compiled) string {
	parts := []string{"type=" + el.Type}
	if el.Role != "" {
		parts = append(parts, "role="+el.Role)
	}
	if c.rule.Where.MissingLabel {
		parts = append(parts, "no label")
	}
	if c.rule.Where.MissingHint {
		parts = append(parts, "no hint")
	}
	if c.rule.Where.MaxWidth > 0 || c.rule.Where.MaxHeight > 0 {
		parts = append(parts, fmt.Sprintf("%.0fx%.0f", el.Width, el.Height))
	}
	return strings.Join(parts, " | ")
}
