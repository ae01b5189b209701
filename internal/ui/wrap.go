package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// WrapLine wraps one log line to width. Continuation lines are indented by
// indent spaces; an indent that would leave less than half the width is
// ignored.
func WrapLine(text string, width, indent int) []string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return []string{text}
	}
	if indent < 0 || indent > width/2 {
		indent = 0
	}

	head := wrapTo(text, width)[0]
	if !strings.HasPrefix(text, head) {
		lines := wrapTo(text, width-indent)
		return append(lines[:1], indentAll(lines[1:], indent)...)
	}

	rest := strings.TrimLeft(text[len(head):], " ")
	if rest == "" {
		return []string{head}
	}
	return append([]string{head}, indentAll(wrapTo(rest, width-indent), indent)...)
}

// wrapTo word-wraps s at width, hard-breaking words longer than width
func wrapTo(s string, width int) []string {
	return strings.Split(wrap.String(wordwrap.String(s, width), width), "\n")
}

func indentAll(lines []string, indent int) []string {
	if indent == 0 {
		return lines
	}
	pad := strings.Repeat(" ", indent)
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return lines
}

// truncateLine shortens a single display line to width
func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
