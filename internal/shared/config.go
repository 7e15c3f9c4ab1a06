package shared

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./a11ylint.db"
	} `yaml:"database"`

	Scan struct {
		Sources  []string `yaml:"sources"`  // ["./snapshots"]
		Platform string   `yaml:"platform"` // "ios"|"android"|"web"
	} `yaml:"scan"`

	Rules struct {
		SeverityThreshold string   `yaml:"severity_threshold"` // "SERIOUS"|"CRITICAL"
		Disabled          []string `yaml:"disabled"`
		MinTargetSize     float64  `yaml:"min_target_size"` // 0 = platform default
		ContrastLevel     string   `yaml:"contrast_level"`  // "AA"|"AAA"
		Packs             []string `yaml:"packs"`           // extra YAML rule packs
	} `yaml:"rules"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./a11ylint.db"
	c.Scan.Platform = "ios"
	c.Rules.SeverityThreshold = "SERIOUS"
	c.Rules.ContrastLevel = "AA"
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("A11YLINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("A11YLINT_PLATFORM"); v != "" {
		c.Scan.Platform = v
	}
	if v := os.Getenv("A11YLINT_SEVERITY_THRESHOLD"); v != "" {
		c.Rules.SeverityThreshold = strings.ToUpper(v)
	}
	if v := os.Getenv("A11YLINT_MIN_TARGET_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Rules.MinTargetSize = f
		}
	}
	if v := os.Getenv("A11YLINT_CONTRAST_LEVEL"); v != "" {
		c.Rules.ContrastLevel = strings.ToUpper(v)
	}
	if v := os.Getenv("A11YLINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("A11YLINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("A11YLINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	return c, nil
}

// DisabledSet returns the disabled rule list as an upper-cased lookup map.
func (c Config) DisabledSet() map[string]bool {
	out := map[string]bool{}
	for _, id := range c.Rules.Disabled {
		out[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	return out
}
