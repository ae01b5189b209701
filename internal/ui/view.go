package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/yildizm/reqlog/internal/emoji"
	"github.com/yildizm/reqlog/internal/logset"
	"github.com/yildizm/reqlog/internal/session"
)

// View renders the viewer
func (m *Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	if m.quitting {
		return ""
	}

	listHeight, _ := m.paneHeights()
	sections := []string{
		m.renderStatus(),
		m.renderList(listHeight),
		m.renderDivider(),
	}
	if m.state.Mode() == session.ModeSearch {
		sections = append(sections, m.renderPopup())
	}
	sections = append(sections, m.detail.View(), m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderStatus() string {
	visible := len(m.state.Visible())
	parts := []string{
		m.styles.Title.Render("reqlog"),
		m.opts.Source,
		fmt.Sprintf("%s/%s requests", humanize.Comma(int64(visible)), humanize.Comma(int64(m.state.Total()))),
		fmt.Sprintf("%s lines", humanize.Comma(int64(m.stats.Parsed))),
	}
	if m.stats.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%s skipped", humanize.Comma(int64(m.stats.Skipped))))
	}
	if filter := m.state.Filter(); filter != "" {
		parts = append(parts, fmt.Sprintf("%s %q", emoji.GetEmoji("search"), filter))
	}
	if m.reloads > 0 {
		parts = append(parts, fmt.Sprintf("%s %d", emoji.GetEmoji("reload"), m.reloads))
	}
	parts = append(parts, m.state.Mode().String())

	status := m.styles.Status.Render(strings.Join(parts, " · "))
	if m.reloadErr != nil {
		status += " " + m.styles.Error.Render("reload failed: "+m.reloadErr.Error())
	}
	return truncateLine(status, m.width)
}

func (m *Model) renderList(height int) string {
	visible := m.state.Visible()
	rows := make([]string, 0, height)

	if len(visible) == 0 {
		msg := "No requests found"
		if m.state.Filter() != "" {
			msg = fmt.Sprintf("No requests match %q", m.state.Filter())
		}
		rows = append(rows, m.styles.Muted.Render(msg))
	}

	selected, _ := m.state.Selected()
	end := min(len(visible), m.listOffset+height)
	for i := m.listOffset; i < end; i++ {
		rows = append(rows, m.renderRow(visible[i], i == selected))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(set logset.Set, selected bool) string {
	marker := " "
	if selected {
		marker = emoji.GetEmoji("selected")
	}
	prefix := marker + " " + emoji.ForLevel(set.Severity()) + " "
	text := truncateLine(set.First().Text, m.width-lipgloss.Width(prefix))

	if selected {
		return m.styles.ListSelected.Width(m.width).Render(prefix + text)
	}
	return prefix + m.styles.Level(set.Severity()).Render(text)
}

func (m *Model) renderDivider() string {
	label := ""
	if set, ok := m.state.Current(); ok {
		label = fmt.Sprintf(" %s · %s lines · %s ", set.ID(), humanize.Comma(int64(set.Len())), set.First().Timestamp)
	}
	fill := max(0, m.width-lipgloss.Width(label)-2)
	return m.styles.Divider.Render(truncateLine("──"+label+strings.Repeat("─", fill), m.width))
}

func (m *Model) renderPopup() string {
	body := m.styles.PopupTitle.Render("Filter") + " " + m.state.Filter() + "█"
	width := max(20, m.width/2)
	popup := m.styles.Popup.Width(width).Render(truncateLine(body, width-2))
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, popup)
}

func (m *Model) renderHelp() string {
	if m.state.Mode() == session.ModeSearch {
		return m.help.View(searchKeys)
	}
	return m.help.View(normalKeys)
}

// renderDetail renders every line of the selected set, wrapped to the pane
func (m *Model) renderDetail(set logset.Set, ok bool) string {
	if !ok {
		return m.styles.Muted.Render("Nothing selected")
	}

	filter := m.state.Filter()
	out := make([]string, 0, set.Len())
	for _, line := range set.Lines {
		wrapped := WrapLine(line.Text, m.width, m.opts.WrapIndent)
		if filter != "" {
			wrapped = highlightWrapped(line.Text, wrapped, filter, m.styles.Highlight)
		}
		out = append(out, wrapped...)
	}
	return strings.Join(out, "\n")
}

type span struct{ start, end int }

// matchSpans returns the byte ranges of every non-overlapping occurrence of term
func matchSpans(text, term string) []span {
	var spans []span
	for off := 0; ; {
		i := strings.Index(text[off:], term)
		if i < 0 {
			return spans
		}
		spans = append(spans, span{off + i, off + i + len(term)})
		off += i + len(term)
	}
}

// highlightWrapped marks the matches of term in raw on its wrapped lines.
// Matches are found before wrapping, so one split by a line break is marked
// on both lines. Each wrapped line is an indent plus a substring of raw; if
// that does not hold the lines are highlighted one by one.
func highlightWrapped(raw string, wrapped []string, term string, style lipgloss.Style) []string {
	spans := matchSpans(raw, term)
	if len(spans) == 0 {
		return wrapped
	}

	out := make([]string, len(wrapped))
	cursor := 0
	for i, line := range wrapped {
		seg := line
		if i > 0 {
			seg = strings.TrimLeft(line, " ")
		}
		if seg == "" {
			out[i] = line
			continue
		}
		idx := strings.Index(raw[cursor:], seg)
		if idx < 0 {
			for j, l := range wrapped {
				out[j] = highlight(l, term, style)
			}
			return out
		}
		start := cursor + idx
		end := start + len(seg)
		cursor = end

		var b strings.Builder
		b.WriteString(line[:len(line)-len(seg)])
		pos := start
		for _, sp := range spans {
			if sp.end <= start || sp.start >= end {
				continue
			}
			from, to := max(sp.start, start), min(sp.end, end)
			b.WriteString(raw[pos:from])
			b.WriteString(style.Render(raw[from:to]))
			pos = to
		}
		b.WriteString(raw[pos:end])
		out[i] = b.String()
	}
	return out
}

// highlight marks every occurrence of term in line
func highlight(line, term string, style lipgloss.Style) string {
	if term == "" || !strings.Contains(line, term) {
		return line
	}
	return strings.ReplaceAll(line, term, style.Render(term))
}
