package ir

import "time"

const SchemaVersion = "1.0"

// Severity tiers. CRITICAL outranks SERIOUS.
const (
	SeverityCritical = "CRITICAL"
	SeveritySerious  = "SERIOUS"
)

type Scan struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Source        string    `json:"source,omitempty"`
	SchemaVersion string    `json:"schema_version,omitempty"`

	Context Context  `json:"context"`
	Screens []Screen `json:"screens"`
	Issues  []Issue  `json:"issues,omitempty"`
}

type Context struct {
	Platform          string   `json:"platform,omitempty"` // ios|android|web
	SeverityThreshold string   `json:"severity_threshold,omitempty"`
	DisabledRules     []string `json:"disabled_rules,omitempty"`
	MinTargetSize     float64  `json:"min_target_size,omitempty"` // logical points
	ContrastLevel     string   `json:"contrast_level,omitempty"`  // AA|AAA
}

type Screen struct {
	Name     string    `json:"name"`
	Elements []Element `json:"elements"`
}

// Element is one rendered node of a screen's component tree, carrying the
// accessibility-relevant props the host framework exposes at render time.
type Element struct {
	Path  string `json:"path"` // e.g. "Stack[0]/Button"
	Type  string `json:"type"` // pressable|text|text_input|list|modal|switch|image|view
	Role  string `json:"role,omitempty"`
	Label string `json:"label,omitempty"` // accessibility label
	Hint  string `json:"hint,omitempty"`
	Text  string `json:"text,omitempty"` // visible text content

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Foreground string  `json:"foreground,omitempty"` // #RGB or #RRGGBB
	Background string  `json:"background,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	Bold       bool    `json:"bold,omitempty"`

	Focusable bool            `json:"focusable,omitempty"`
	States    map[string]bool `json:"states,omitempty"` // disabled, selected, checked, ...

	List  *ListInfo  `json:"list,omitempty"`
	Form  *FormInfo  `json:"form,omitempty"`
	Modal *ModalInfo `json:"modal,omitempty"`

	Annotations Anno      `json:"annotations,omitempty"`
	Children    []Element `json:"children,omitempty"`
}

// ListInfo carries dynamic-list announcement props.
type ListInfo struct {
	ItemCount       int    `json:"item_count"`
	SingularMessage string `json:"singular_message,omitempty"` // "%count% result"
	PluralMessage   string `json:"plural_message,omitempty"`   // "%count% results"
}

// FormInfo carries form-field labelling and validation props.
type FormInfo struct {
	HasLabel     bool   `json:"has_label"`
	LabelText    string `json:"label_text,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorExposed bool   `json:"error_exposed,omitempty"` // error announced to assistive tech
}

// ModalInfo carries focus-containment props for modal surfaces.
type ModalInfo struct {
	TrapsFocus     bool `json:"traps_focus"`
	HasCloseAction bool `json:"has_close_action"`
}

type Anno struct {
	ContrastRatio float64 `json:"contrast_ratio,omitempty"`
}

// Issue is a detected rule violation on a concrete element.
type Issue struct {
	ID          string         `json:"id"`
	Screen      string         `json:"screen"`
	Path        string         `json:"path,omitempty"`
	RuleID      string         `json:"rule_id"`
	Severity    string         `json:"severity"` // SERIOUS|CRITICAL
	Message     string         `json:"message"`
	Expectation string         `json:"expectation,omitempty"`
	Docs        string         `json:"docs,omitempty"`
	Evidence    string         `json:"evidence,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
