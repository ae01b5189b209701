package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.reqlog.yaml",               // Project-specific config (highest priority)
	"~/.config/reqlog/config.yaml", // User config
	"/etc/reqlog/config.yaml",      // System config (lowest priority)
}

// WarnFunc receives non-fatal problems found while loading
type WarnFunc func(format string, args ...interface{})

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	warn        WarnFunc
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// WithWarn replaces the warning sink
func (l *Loader) WithWarn(warn WarnFunc) *Loader {
	l.warn = warn
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.reqlog.yaml
// 4. ~/.config/reqlog/config.yaml
// 5. /etc/reqlog/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.warn("failed to load config from %s: %v", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file over config. Keys absent from the file
// keep their current values; unknown keys are rejected.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// decode into a copy so a bad file leaves config untouched
	merged := *config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&merged); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*config = merged
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Input Config
		"REQLOG_INPUT_DEFAULT_FILE":    func(v string) error { config.Input.DefaultFile = v; return nil },
		"REQLOG_INPUT_MAX_LINE_LENGTH": func(v string) error { return parseInt(v, &config.Input.MaxLineLength) },

		// Viewer Config
		"REQLOG_VIEWER_POLL_INTERVAL":  func(v string) error { return parseDuration(v, &config.Viewer.PollInterval) },
		"REQLOG_VIEWER_LIST_RATIO":     func(v string) error { return parseInt(v, &config.Viewer.ListRatio) },
		"REQLOG_VIEWER_WRAP_INDENT":    func(v string) error { return parseInt(v, &config.Viewer.WrapIndent) },
		"REQLOG_VIEWER_THEME":          func(v string) error { config.Viewer.Theme = v; return nil },
		"REQLOG_VIEWER_WATCH":          func(v string) error { return parseBool(v, &config.Viewer.Watch) },
		"REQLOG_VIEWER_WATCH_DEBOUNCE": func(v string) error { return parseDuration(v, &config.Viewer.WatchDebounce) },

		// Output Config
		"REQLOG_OUTPUT_COLOR_MODE":  func(v string) error { config.Output.ColorMode = v; return nil },
		"REQLOG_OUTPUT_VERBOSE":     func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"REQLOG_OUTPUT_LOG_FILE":    func(v string) error { config.Output.LogFile = v; return nil },
		"REQLOG_OUTPUT_DUMP_FORMAT": func(v string) error { config.Output.DumpFormat = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// short alias used by the viewer's diagnostics
	if logFile := os.Getenv("REQLOG_LOG_FILE"); logFile != "" && config.Output.LogFile == "" {
		config.Output.LogFile = logFile
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
