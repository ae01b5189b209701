package ui

import (
	"reflect"
	"strings"
	"testing"
)

func TestWrapLineShortTextUnchanged(t *testing.T) {
	got := WrapLine("short line", 40, 8)
	if !reflect.DeepEqual(got, []string{"short line"}) {
		t.Errorf("got %q", got)
	}

	got = WrapLine("no width", 0, 8)
	if !reflect.DeepEqual(got, []string{"no width"}) {
		t.Errorf("zero width should not wrap, got %q", got)
	}
}

func TestWrapLineIndentsContinuation(t *testing.T) {
	text := "Started GET /users/42 for 127.0.0.1 at 09:00:00 and rendered the profile page"
	got := WrapLine(text, 30, 8)

	if len(got) < 2 {
		t.Fatalf("expected wrapping, got %q", got)
	}
	if strings.HasPrefix(got[0], " ") {
		t.Errorf("first line should not be indented: %q", got[0])
	}
	for i, line := range got {
		if len(line) > 30 {
			t.Errorf("line %d exceeds width: %q", i, line)
		}
		if i > 0 && !strings.HasPrefix(line, strings.Repeat(" ", 8)) {
			t.Errorf("continuation line %d not indented: %q", i, line)
		}
	}
	if strings.Join(strings.Fields(strings.Join(got, " ")), " ") != text {
		t.Errorf("wrapping lost words: %q", got)
	}
}

func TestWrapLineHardBreaksLongWords(t *testing.T) {
	text := strings.Repeat("x", 50)
	got := WrapLine(text, 20, 4)

	var joined strings.Builder
	for i, line := range got {
		if len(line) > 20 {
			t.Errorf("line %d exceeds width: %q", i, line)
		}
		joined.WriteString(strings.TrimSpace(line))
	}
	if joined.String() != text {
		t.Errorf("hard wrap lost characters: %q", got)
	}
}

func TestWrapLineIgnoresOversizedIndent(t *testing.T) {
	got := WrapLine("alpha beta gamma delta epsilon", 12, 10)
	for i, line := range got {
		if strings.HasPrefix(line, " ") {
			t.Errorf("line %d indented despite oversized indent: %q", i, line)
		}
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("hello", 10); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := truncateLine("hello world", 0); got != "" {
		t.Errorf("zero width should be empty, got %q", got)
	}
	if got := truncateLine("hello world", 6); got != "hello…" {
		t.Errorf("got %q", got)
	}
}
