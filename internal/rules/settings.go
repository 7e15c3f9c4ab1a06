package rules

import "strings"

type Settings struct {
	SeverityThreshold string
	Disabled          map[string]bool
	Platform          string  // ios|android|web
	MinTargetSize     float64 // 0 = platform default
	ContrastLevel     string  // AA|AAA
}

var rsettings = Settings{
	SeverityThreshold: "SERIOUS",
	Disabled:          map[string]bool{},
	Platform:          "ios",
	ContrastLevel:     "AA",
}

func SetSettings(s Settings) {
	// fill defaults
	if s.SeverityThreshold == "" {
		s.SeverityThreshold = "SERIOUS"
	}
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	if s.Platform == "" {
		s.Platform = "ios"
	}
	if s.ContrastLevel == "" {
		s.ContrastLevel = "AA"
	}
	rsettings = s
}

// minTargetSize is the platform touch-target minimum in logical points:
// 48dp on Android, 44pt elsewhere, unless overridden in settings.
func minTargetSize() float64 {
	if rsettings.MinTargetSize > 0 {
		return rsettings.MinTargetSize
	}
	if strings.EqualFold(rsettings.Platform, "android") {
		return 48
	}
	return 44
}

// keyboardPlatform reports whether the platform has hardware-keyboard focus
// navigation, which is what makes focus traps reachable.
func keyboardPlatform() bool {
	switch strings.ToLower(strings.TrimSpace(rsettings.Platform)) {
	case "android", "web":
		return true
	}
	return false
}

func severityRank(sev string) int {
	if strings.ToUpper(strings.TrimSpace(sev)) == "CRITICAL" {
		return 2
	}
	return 1 // SERIOUS or unknown
}

func severityOK(sev string) bool {
	return severityRank(sev) >= severityRank(rsettings.SeverityThreshold)
}
