package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Input   InputConfig  `yaml:"input" json:"input"`
	Viewer  ViewerConfig `yaml:"viewer" json:"viewer"`
	Output  OutputConfig `yaml:"output" json:"output"`
}

// InputConfig configures how the log file is read
type InputConfig struct {
	DefaultFile   string `yaml:"default_file" json:"default_file"`       // file opened when no path is given
	MaxLineLength int    `yaml:"max_line_length" json:"max_line_length"` // longest accepted line in bytes
}

// ViewerConfig configures the interactive viewer
type ViewerConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval" json:"poll_interval"`   // idle re-render period
	ListRatio     int           `yaml:"list_ratio" json:"list_ratio"`         // percent of height for the set list
	WrapIndent    int           `yaml:"wrap_indent" json:"wrap_indent"`       // indent of wrapped continuation lines
	Theme         string        `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	Watch         bool          `yaml:"watch" json:"watch"`                   // reload when the file changes
	WatchDebounce time.Duration `yaml:"watch_debounce" json:"watch_debounce"` // quiet period before a reload
}

// OutputConfig configures output formatting and diagnostics
type OutputConfig struct {
	ColorMode  string `yaml:"color_mode" json:"color_mode"`   // auto|always|never
	Verbose    bool   `yaml:"verbose" json:"verbose"`         // default verbosity
	LogFile    string `yaml:"log_file" json:"log_file"`       // diagnostics file while the TUI runs
	DumpFormat string `yaml:"dump_format" json:"dump_format"` // text|json
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Input: InputConfig{
			DefaultFile:   "rails.log",
			MaxLineLength: 1024 * 1024, // 1MB
		},
		Viewer: ViewerConfig{
			PollInterval:  250 * time.Millisecond,
			ListRatio:     50,
			WrapIndent:    8,
			Theme:         "default",
			Watch:         false,
			WatchDebounce: 200 * time.Millisecond,
		},
		Output: OutputConfig{
			ColorMode:  "auto",
			Verbose:    false,
			DumpFormat: "text",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateInputConfig(); err != nil {
		return err
	}
	if err := c.validateViewerConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

func (c *Config) validateInputConfig() error {
	if c.Input.MaxLineLength < 1 {
		return fmt.Errorf("max_line_length must be greater than 0")
	}
	return nil
}

func (c *Config) validateViewerConfig() error {
	if c.Viewer.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be greater than 0")
	}
	if c.Viewer.ListRatio < 10 || c.Viewer.ListRatio > 90 {
		return fmt.Errorf("list_ratio must be between 10 and 90")
	}
	if c.Viewer.WrapIndent < 0 {
		return fmt.Errorf("wrap_indent must be non-negative")
	}
	if c.Viewer.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must be non-negative")
	}
	if c.Viewer.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Viewer.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Viewer.Theme)
		}
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.DumpFormat != "" {
		validFormats := map[string]bool{
			"text": true,
			"json": true,
		}
		if !validFormats[c.Output.DumpFormat] {
			return fmt.Errorf("invalid dump format: %s (must be one of: text, json)", c.Output.DumpFormat)
		}
	}
	return nil
}

// SampleConfig returns a documented configuration file with every option
func SampleConfig() string {
	return `# reqlog configuration
version: "1.0"

input:
  # File opened when no path is given on the command line
  default_file: rails.log
  # Longest accepted line in bytes; longer lines abort loading
  max_line_length: 1048576

viewer:
  # Idle re-render period of the event loop
  poll_interval: 250ms
  # Percent of the screen height used by the request list
  list_ratio: 50
  # Indent for wrapped continuation lines in the detail pane
  wrap_indent: 8
  # default | high-contrast | minimal
  theme: default
  # Reload the whole file when it changes on disk
  watch: false
  watch_debounce: 200ms

output:
  # auto | always | never
  color_mode: auto
  verbose: false
  # Diagnostics file used while the viewer owns the terminal
  log_file: ""
  # text | json
  dump_format: text
`
}

// MinimalSampleConfig returns a compact configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
input:
  default_file: rails.log
viewer:
  watch: false
`
}
