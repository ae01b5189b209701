// Package logger provides the component logger used across reqlog.
//
// Debug and Info lines are only written when the verbose check passes; Warn
// and Error always are. While the viewer owns the terminal, callers redirect
// output with SetOutput so log lines never corrupt the screen.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// sink is shared by a logger and every logger derived from it
type sink struct {
	mu     sync.Mutex
	writer io.Writer
	now    func() time.Time
}

// Logger provides structured logging with verbose support
type Logger struct {
	component string
	verbose   func() bool
	out       *sink
}

// New creates a logger whose Debug/Info output is gated by verbose
func New(component string, verbose func() bool) *Logger {
	return &Logger{
		component: component,
		verbose:   verbose,
		out:       &sink{writer: os.Stderr, now: time.Now},
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	l := New("", nil)
	l.SetOutput(io.Discard)
	return l
}

// WithComponent creates a logger for another component sharing this one's output
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		verbose:   l.verbose,
		out:       l.out,
	}
}

// SetOutput redirects this logger and every logger derived from it
func (l *Logger) SetOutput(w io.Writer) {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.writer = w
}

// IsVerbose reports whether Debug and Info lines are written
func (l *Logger) IsVerbose() bool {
	return l.verbose != nil && l.verbose()
}

// Debug logs debug messages (only when verbose)
func (l *Logger) Debug(msg string, fields ...Field) {
	if l.IsVerbose() {
		l.write("DEBUG", msg, fields)
	}
}

// Info logs informational messages (only when verbose)
func (l *Logger) Info(msg string, fields ...Field) {
	if l.IsVerbose() {
		l.write("INFO", msg, fields)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, fields ...Field) {
	l.write("WARN", msg, fields)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, fields ...Field) {
	l.write("ERROR", msg, fields)
}

// Warnf adapts the logger to printf-style warning callbacks
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write("WARN", fmt.Sprintf(format, args...), nil)
}

func (l *Logger) write(level, msg string, fields []Field) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	fmt.Fprintf(&b, "[%s] %s [%s] %s", l.out.now().Format("15:04:05.000"), level, component, msg)
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, " "))
	}
	b.WriteByte('\n')

	// nowhere to report a failed log write
	_, _ = io.WriteString(l.out.writer, b.String())
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
