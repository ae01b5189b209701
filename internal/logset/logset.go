// Package logset groups parsed log lines into per-request sets and orders them.
package logset

import (
	"sort"
	"strings"

	"github.com/yildizm/reqlog/internal/parser"
)

// Set holds every line that shares one correlation id, in file order.
// A Set built by Group is never empty.
type Set struct {
	Lines    []parser.Line
	severity parser.LogLevel
}

// inferSeverity is the slow path, run at most once per set
var inferSeverity = parser.InferSeverity

// NewSet builds a set from lines that share one correlation id
func NewSet(lines []parser.Line) Set {
	s := Set{Lines: lines}
	tagged := false
	for _, line := range lines {
		lvl, ok := parser.TaggedSeverity(line.Text)
		if !ok {
			continue
		}
		tagged = true
		if lvl > s.severity {
			s.severity = lvl
		}
	}
	if !tagged && len(lines) > 0 {
		s.severity = inferSeverity(lines[0].Text)
	}
	return s
}

// ID returns the correlation id shared by the set's lines
func (s Set) ID() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return s.Lines[0].CorrelationID
}

// First returns the earliest line of the set
func (s Set) First() parser.Line {
	if len(s.Lines) == 0 {
		return parser.Line{}
	}
	return s.Lines[0]
}

// Len returns the number of lines in the set
func (s Set) Len() int {
	return len(s.Lines)
}

// Severity returns the highest severity found among the set's lines
func (s Set) Severity() parser.LogLevel {
	return s.severity
}

// Contains reports whether any line's raw text contains substr.
// The empty string matches every set.
func (s Set) Contains(substr string) bool {
	if substr == "" {
		return true
	}
	for _, line := range s.Lines {
		if strings.Contains(line.Text, substr) {
			return true
		}
	}
	return false
}

// Filter returns the sets that contain substr, keeping their relative order
func Filter(sets []Set, substr string) []Set {
	visible := make([]Set, 0, len(sets))
	for _, s := range sets {
		if s.Contains(substr) {
			visible = append(visible, s)
		}
	}
	return visible
}

// Stats describes one grouping pass
type Stats struct {
	Lines   int `json:"lines"`
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`
	Sets    int `json:"sets"`
}

// Group partitions raw lines by correlation id and orders the resulting sets
// by the timestamp of each set's first line. Lines that fail to parse are
// dropped.
func Group(lines []string) []Set {
	sets, _ := GroupWithStats(lines)
	return sets
}

// GroupWithStats is Group that also reports how many lines were kept
func GroupWithStats(lines []string) ([]Set, Stats) {
	stats := Stats{Lines: len(lines)}

	// first-seen order of ids keeps equal-timestamp ties deterministic
	var order []string
	byID := make(map[string][]parser.Line)

	for _, raw := range lines {
		line, err := parser.Parse(raw)
		if err != nil {
			stats.Skipped++
			continue
		}
		stats.Parsed++

		if _, seen := byID[line.CorrelationID]; !seen {
			order = append(order, line.CorrelationID)
		}
		byID[line.CorrelationID] = append(byID[line.CorrelationID], line)
	}

	sets := make([]Set, 0, len(order))
	for _, id := range order {
		sets = append(sets, NewSet(byID[id]))
	}

	// Timestamps compare as strings; this is only chronological when every
	// line uses the same fixed-width, zero-padded format.
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].First().Timestamp < sets[j].First().Timestamp
	})

	stats.Sets = len(sets)
	return sets, stats
}
