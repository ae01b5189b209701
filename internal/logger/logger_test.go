package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestLogger(verbose bool) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New("loader", func() bool { return verbose })
	l.SetOutput(&buf)
	l.out.now = func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) }
	return l, &buf
}

func TestVerboseGating(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    []string
		notWant []string
	}{
		{
			name:    "quiet",
			verbose: false,
			want:    []string{"WARN [loader] careful", "ERROR [loader] broken"},
			notWant: []string{"DEBUG", "INFO"},
		},
		{
			name:    "verbose",
			verbose: true,
			want:    []string{"DEBUG [loader] details", "INFO [loader] loaded", "WARN", "ERROR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger(tt.verbose)
			l.Debug("details")
			l.Info("loaded")
			l.Warn("careful")
			l.Error("broken")

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("output should not contain %q:\n%s", nw, out)
				}
			}
		})
	}
}

func TestFieldsAndFormat(t *testing.T) {
	l, buf := newTestLogger(true)
	l.Info("grouped", Count(3), F("skipped", 1), Duration(2*time.Millisecond), Error(errors.New("eof")))

	want := "[09:30:00.000] INFO [loader] grouped [count=3 skipped=1 duration=2ms error=eof]\n"
	if buf.String() != want {
		t.Errorf("want %q, got %q", want, buf.String())
	}
}

func TestWithComponentSharesOutput(t *testing.T) {
	l, buf := newTestLogger(false)
	child := l.WithComponent("watch")

	var redirected bytes.Buffer
	l.SetOutput(&redirected)
	child.Warn("reloaded")

	if buf.Len() != 0 {
		t.Errorf("old writer should be unused, got %q", buf.String())
	}
	if !strings.Contains(redirected.String(), "WARN [watch] reloaded") {
		t.Errorf("child did not follow redirect: %q", redirected.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	if l.IsVerbose() {
		t.Error("Nop logger should not be verbose")
	}
	l.Error("dropped")
}
