// Package parser turns raw request log lines into structured records.
//
// Only one line shape is recognized: a line whose first bracketed segment
// starts with a timestamp token, and which carries a request correlation id
// as a bracketed run of 32 lowercase hex characters somewhere in the text:
//
//	I, [2024-01-01T09:00:00.123 #4021]  INFO -- : [3f9a0c...e21] Started GET "/"
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedLine is returned when a line does not have the recognized shape
var ErrMalformedLine = errors.New("malformed log line")

var (
	correlationIDPattern = regexp.MustCompile(`\[([0-9a-f]{32})\]`)
	bareIDPattern        = regexp.MustCompile(`^[0-9a-f]{32}$`)
)

// Parse parses a single log line
func Parse(raw string) (Line, error) {
	timestamp, err := extractTimestamp(raw)
	if err != nil {
		return Line{}, err
	}

	id, err := extractCorrelationID(raw)
	if err != nil {
		return Line{}, err
	}

	return Line{
		CorrelationID: id,
		Timestamp:     timestamp,
		Text:          raw,
	}, nil
}

// extractTimestamp returns the first space-delimited token of the first
// bracketed segment that starts with a digit and is not the correlation id.
// Lines whose segments are all non-numeric (e.g. "[INFO] [req]") fall back to
// the first segment's token.
func extractTimestamp(raw string) (string, error) {
	_, rest, found := strings.Cut(raw, "[")
	if !found {
		return "", fmt.Errorf("%w: no bracketed segment", ErrMalformedLine)
	}

	first := segmentToken(rest)
	for segment := rest; ; {
		token := segmentToken(segment)
		if token != "" && isDigit(token[0]) && !isCorrelationID(token) {
			return token, nil
		}
		var more bool
		if _, segment, more = strings.Cut(segment, "["); !more {
			break
		}
	}

	if first == "" {
		return "", fmt.Errorf("%w: empty timestamp", ErrMalformedLine)
	}
	return first, nil
}

// segmentToken returns the leading token of the text following a '['
func segmentToken(segment string) string {
	token, _, _ := strings.Cut(segment, " ")
	return strings.TrimSuffix(token, "]")
}

func isCorrelationID(token string) bool {
	return bareIDPattern.MatchString(token)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func extractCorrelationID(raw string) (string, error) {
	matches := correlationIDPattern.FindStringSubmatch(raw)
	if matches == nil {
		return "", fmt.Errorf("%w: no correlation id", ErrMalformedLine)
	}
	return matches[1], nil
}
