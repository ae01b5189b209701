// Package report renders request sets for non-interactive output.
package report

import (
	"fmt"

	"github.com/yildizm/reqlog/internal/logset"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(sets []logset.Set, stats logset.Stats) ([]byte, error)
}

// Formats lists the accepted output format names
var Formats = []string{"text", "json"}

// New returns the formatter for a format name
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: text, json)", format)
	}
}
