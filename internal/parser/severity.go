package parser

import (
	"regexp"

	"github.com/yildizm/go-logparser"
)

var (
	// [ERROR] style tags
	bracketLevelPattern = regexp.MustCompile(`(?i)\[(debug|trace|info|warn|warning|error|err|fatal|critical)\]`)
	// Rails logger: "E, [2024-01-01T09:00:00.123 #41] ERROR -- : ..."
	railsLevelPattern = regexp.MustCompile(`\]\s+(DEBUG|INFO|WARN|ERROR|FATAL|UNKNOWN)\s+--`)

	textParser = logparser.NewWithFormat(logparser.FormatText)
)

// DetectSeverity classifies a single raw line. Explicit level tags win;
// otherwise the line is handed to go-logparser.
func DetectSeverity(text string) LogLevel {
	if lvl, ok := TaggedSeverity(text); ok {
		return lvl
	}
	return InferSeverity(text)
}

// TaggedSeverity reads an explicit [LEVEL] tag or Rails "LEVEL --" marker
func TaggedSeverity(text string) (LogLevel, bool) {
	if m := bracketLevelPattern.FindStringSubmatch(text); m != nil {
		return ParseLogLevel(m[1]), true
	}
	if m := railsLevelPattern.FindStringSubmatch(text); m != nil {
		return ParseLogLevel(m[1]), true
	}
	return LevelUnknown, false
}

// InferSeverity runs go-logparser's text parser over the line. It costs far
// more than TaggedSeverity; callers should use it sparingly.
func InferSeverity(text string) LogLevel {
	entries, err := textParser.ParseString(text)
	if err != nil || len(entries) == 0 {
		return LevelUnknown
	}
	return ParseLogLevel(entries[0].Level)
}
