package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/reqlog/internal/logset"
)

// ReloadMsg carries a fresh ingestion of the log file into a running viewer
type ReloadMsg struct {
	Sets  []logset.Set
	Stats logset.Stats
	Err   error
}

// tickMsg drives periodic redraws at the poll interval
type tickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
