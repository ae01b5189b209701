package parser

import (
	"errors"
	"strings"
	"testing"
)

const testID = "3f9a0c1be2d34f5a6b7c8d9e0f1a2e21"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantID  string
		wantTS  string
	}{
		{
			name:   "rails logger line",
			input:  `I, [2024-01-01T09:00:00.123 #4021]  INFO -- : [` + testID + `] Started GET "/" for 127.0.0.1`,
			wantID: testID,
			wantTS: "2024-01-01T09:00:00.123",
		},
		{
			name:   "level tag before timestamp",
			input:  "[INFO] [2024-01-01T09:00:00] [" + testID + "] request start",
			wantID: testID,
			wantTS: "2024-01-01T09:00:00",
		},
		{
			name:   "no numeric segment falls back to first token",
			input:  "[worker] [" + testID + "] job done",
			wantID: testID,
			wantTS: "worker",
		},
		{
			name:   "id starting with a digit is not taken as timestamp",
			input:  "[queue] [" + testID + "] [10:00:00] tick",
			wantID: testID,
			wantTS: "10:00:00",
		},
		{
			name:    "missing correlation id",
			input:   "[2024-01-01T09:00:00] no request id here",
			wantErr: true,
		},
		{
			name:    "uppercase hex is not an id",
			input:   "[2024-01-01T09:00:00] [" + strings.ToUpper(testID) + "] shouting",
			wantErr: true,
		},
		{
			name:    "31 hex chars is not an id",
			input:   "[2024-01-01T09:00:00] [" + testID[:31] + "] short",
			wantErr: true,
		},
		{
			name:    "no bracket at all",
			input:   "plain text line " + testID,
			wantErr: true,
		},
		{
			name:    "empty line",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty first segment",
			input:   "[ ] [" + testID + "]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedLine) {
					t.Errorf("want ErrMalformedLine, got %v", err)
				}
				return
			}
			if line.CorrelationID != tt.wantID {
				t.Errorf("want id %s, got %s", tt.wantID, line.CorrelationID)
			}
			if line.Timestamp != tt.wantTS {
				t.Errorf("want timestamp %s, got %s", tt.wantTS, line.Timestamp)
			}
			if line.Text != tt.input {
				t.Errorf("raw text was modified: %q", line.Text)
			}
		})
	}
}

func TestParseUsesFirstBracketedID(t *testing.T) {
	other := "ffffffffffffffffffffffffffffffff"
	line, err := Parse("[09:00:00] [" + testID + "] forwarded from [" + other + "]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if line.CorrelationID != testID {
		t.Errorf("want first id %s, got %s", testID, line.CorrelationID)
	}
}

func TestDetectSeverity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LogLevel
	}{
		{"bracket error", "[ERROR] [09:00:00] [" + testID + "] boom", LevelError},
		{"bracket warning lowercase", "[warning] [09:00:00] [" + testID + "] slow", LevelWarn},
		{"rails fatal", "F, [2024-01-01T09:00:00.123 #1] FATAL -- : [" + testID + "] crash", LevelFatal},
		{"rails debug", "D, [2024-01-01T09:00:00.123 #1] DEBUG -- : [" + testID + "] sql", LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSeverity(tt.input); got != tt.want {
				t.Errorf("DetectSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaggedSeverity(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   LogLevel
		wantOK bool
	}{
		{"bracket", "[WARN] [09:00:00] [" + testID + "] slow", LevelWarn, true},
		{"rails", "E, [2024-01-01T09:00:00.123 #1] ERROR -- : [" + testID + "] boom", LevelError, true},
		{"untagged", "D, [2024-01-01T09:00:00.123 #1] [" + testID + "] Rendered partial", LevelUnknown, false},
		{"id is not a tag", "[" + testID + "] err", LevelUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TaggedSeverity(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("TaggedSeverity() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"Warning": LevelWarn,
		"ERR":     LevelError,
		"fatal":   LevelFatal,
		"verbose": LevelUnknown,
		"":        LevelUnknown,
	}
	for input, want := range tests {
		if got := ParseLogLevel(input); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
