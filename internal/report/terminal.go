package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/reqlog/internal/emoji"
	"github.com/yildizm/reqlog/internal/logset"
)

// terminalFormatter prints sets as go-termfmt trees
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(sets []logset.Set, stats logset.Stats) ([]byte, error) {
	var b strings.Builder

	f.writeSummary(&b, len(sets), stats)
	f.writeSets(&b, sets)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, shown int, stats logset.Stats) {
	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Summary\n")

	items := []termfmt.TreeItem{
		{Label: "Requests", Value: fmt.Sprintf("%s of %s", humanize.Comma(int64(shown)), humanize.Comma(int64(stats.Sets)))},
		{Label: "Lines", Value: humanize.Comma(int64(stats.Lines))},
		{Label: "Grouped", Value: humanize.Comma(int64(stats.Parsed))},
		{Label: "Skipped", Value: humanize.Comma(int64(stats.Skipped)), Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeSets(b *strings.Builder, sets []logset.Set) {
	if len(sets) == 0 {
		b.WriteString("No requests found\n")
		return
	}

	b.WriteString(emoji.GetEmoji("request") + " Requests\n")

	items := make([]termfmt.TreeItem, 0, len(sets))
	for i, set := range sets {
		children := make([]termfmt.TreeItem, 0, set.Len())
		for j, line := range set.Lines {
			children = append(children, termfmt.TreeItem{Label: line.Text, Last: j == set.Len()-1})
		}
		items = append(items, termfmt.TreeItem{
			Label:    emoji.ForLevel(set.Severity()) + " " + set.ID(),
			Value:    fmt.Sprintf("%s (%s lines)", set.First().Timestamp, humanize.Comma(int64(set.Len()))),
			Children: children,
			Last:     i == len(sets)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
