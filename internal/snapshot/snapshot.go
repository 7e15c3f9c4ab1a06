// Package snapshot loads rendered-tree snapshots exported by an app's
// development overlay. A snapshot file holds one or more screens with the
// accessibility-relevant props captured at render time.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/a11ykit/a11ylint/internal/ir"
)

type Diagnostics struct {
	Warnings []string
}

// document is the on-disk shape; a file may hold a single screen or a list.
type document struct {
	Screen  *ir.Screen  `json:"screen" yaml:"screen"`
	Screens []ir.Screen `json:"screens" yaml:"screens"`
}

// Load walks path for *.json and *.yaml snapshots and returns them as one Scan.
// Undecodable files are reported as warnings, never as a failed scan.
func Load(path string) (ir.Scan, Diagnostics) {
	var scan ir.Scan
	scan.SchemaVersion = ir.SchemaVersion
	scan.Source = filepath.Clean(path)
	diags := Diagnostics{}

	_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		screens, perr := loadFile(p)
		if perr != nil {
			if !errSkip(perr) {
				diags.Warnings = append(diags.Warnings, fmt.Sprintf("%s: %v", p, perr))
			}
			return nil
		}
		scan.Screens = append(scan.Screens, screens...)
		return nil
	})

	if len(scan.Screens) == 0 {
		diags.Warnings = append(diags.Warnings, "no snapshot files found or no screens decoded")
	}
	for i := range scan.Screens {
		normalizeScreen(&scan.Screens[i])
	}
	return scan, diags
}

type skipError struct{ ext string }

func (e skipError) Error() string { return "unsupported extension " + e.ext }

func errSkip(err error) bool {
	_, ok := err.(skipError)
	return ok
}

func loadFile(p string) ([]ir.Screen, error) {
	ext := strings.ToLower(filepath.Ext(p))
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var doc document
	switch ext {
	case ".json":
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, skipError{ext: ext}
	}
	screens := doc.Screens
	if doc.Screen != nil {
		screens = append(screens, *doc.Screen)
	}
	if len(screens) == 0 {
		return nil, fmt.Errorf("no screens in document")
	}
	for i := range screens {
		if screens[i].Name == "" {
			screens[i].Name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		}
	}
	return screens, nil
}

// normalizeScreen fills element paths missing from the snapshot so issues can
// always point at a concrete node.
func normalizeScreen(s *ir.Screen) {
	for i := range s.Elements {
		normalizeElement(&s.Elements[i], fmt.Sprintf("%s[%d]", typeOrNode(&s.Elements[i]), i))
	}
}

func normalizeElement(el *ir.Element, fallbackPath string) {
	if strings.TrimSpace(el.Path) == "" {
		el.Path = fallbackPath
	}
	for i := range el.Children {
		child := &el.Children[i]
		normalizeElement(child, fmt.Sprintf("%s/%s[%d]", el.Path, typeOrNode(child), i))
	}
}

func typeOrNode(el *ir.Element) string {
	if t := strings.TrimSpace(el.Type); t != "" {
		return t
	}
	return "node"
}
