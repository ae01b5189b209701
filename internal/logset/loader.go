package logset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyPath is returned when Load is called without a file path
var ErrEmptyPath = errors.New("empty log file path")

// DefaultMaxLineLength is the scanner buffer limit used when none is configured
const DefaultMaxLineLength = 1024 * 1024

// LoadOptions configures how a log file is read
type LoadOptions struct {
	MaxLineLength int
}

// Load reads the whole file at path and groups its lines. Any open or read
// failure aborts the load; no partial result is returned.
func Load(path string, opts LoadOptions) ([]Set, Stats, error) {
	if strings.TrimSpace(path) == "" {
		return nil, Stats{}, ErrEmptyPath
	}

	// #nosec G304 - path is supplied by the user on purpose
	file, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	lines, err := ReadLines(file, opts.MaxLineLength)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	sets, stats := GroupWithStats(lines)
	return sets, stats, nil
}

// ReadLines reads every line from reader. Empty lines are kept so that line
// counts match the file; they simply fail to parse later.
func ReadLines(reader io.Reader, maxLineLength int) ([]string, error) {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}

	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLineLength)), maxLineLength)

	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return lines, nil
}
