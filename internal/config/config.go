package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by report.format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatProm = "prom"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultFormat     = FormatText
	DefaultDebounce   = 200 * time.Millisecond
	DefaultListenAddr = ":8844"
)

// Config is the top-level configuration. Fields map 1:1 to
// config.example.yaml.
type Config struct {
	Trace  TraceConfig  `yaml:"trace"`
	Report ReportConfig `yaml:"report"`
	Watch  WatchConfig  `yaml:"watch"`
}

// TraceConfig holds parser settings.
type TraceConfig struct {
	// Strict aborts on the first malformed trace row instead of
	// skipping it.
	Strict bool `yaml:"strict"`
}

// ReportConfig holds output settings.
type ReportConfig struct {
	// Format selects the rendering: text | json | prom.
	Format string `yaml:"format"`

	// Details adds the per-process breakdown table (text format only).
	Details bool `yaml:"details"`
}

// WatchConfig holds live-mode settings.
type WatchConfig struct {
	// Enabled re-runs the computation whenever the trace file changes.
	Enabled bool `yaml:"enabled"`

	// Debounce collapses bursts of file events into one recomputation.
	// Simulators often append the table in many small writes.
	Debounce time.Duration `yaml:"debounce"`

	// Listen is the HTTP address serving /metrics, /api/metrics and
	// /ws/stream while watching. Empty disables the server.
	Listen string `yaml:"listen"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Report: ReportConfig{Format: DefaultFormat},
		Watch:  WatchConfig{Debounce: DefaultDebounce},
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks field values. It is called by Load and again by the CLI
// after applying flag overrides.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case FormatText, FormatJSON, FormatProm:
	default:
		return fmt.Errorf("report.format: unknown format %q", c.Report.Format)
	}
	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive")
	}
	return nil
}
