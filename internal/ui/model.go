// Package ui renders the request viewer on top of a session.State.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/reqlog/internal/logger"
	"github.com/yildizm/reqlog/internal/logset"
	"github.com/yildizm/reqlog/internal/session"
)

const (
	DefaultPollInterval = 250 * time.Millisecond
	DefaultListRatio    = 50
	DefaultWrapIndent   = 8

	// status, divider and help lines
	chromeHeight = 3
	popupHeight  = 3
)

// Options configures the viewer
type Options struct {
	Source       string
	PollInterval time.Duration
	ListRatio    int
	WrapIndent   int
	Stats        logset.Stats
	Logger       *logger.Logger
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.ListRatio < 10 || o.ListRatio > 90 {
		o.ListRatio = DefaultListRatio
	}
	if o.WrapIndent < 0 {
		o.WrapIndent = DefaultWrapIndent
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return o
}

// Model is the bubbletea model of the viewer
type Model struct {
	state  *session.State
	opts   Options
	styles *Styles
	help   help.Model
	detail viewport.Model
	log    *logger.Logger

	width    int
	height   int
	ready    bool
	quitting bool

	listOffset int
	detailFor  string
	stats      logset.Stats
	reloads    int
	reloadErr  error
}

// NewModel creates a viewer over the given request sets
func NewModel(sets []logset.Set, opts Options) *Model {
	opts = opts.withDefaults()
	m := &Model{
		state:  session.New(sets),
		opts:   opts,
		styles: GetStyles(),
		help:   help.New(),
		detail: viewport.New(0, 0),
		log:    opts.Logger.WithComponent("ui"),
		stats:  opts.Stats,
	}
	m.sync()
	return m
}

// State exposes the session state
func (m *Model) State() *session.State {
	return m.state
}

// Init starts the redraw ticker
func (m *Model) Init() tea.Cmd {
	return tick(m.opts.PollInterval)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m, tick(m.opts.PollInterval)
	case ReloadMsg:
		return m.handleReload(msg)
	}
	return m, nil
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.help.Width = msg.Width
	m.sync()
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.state.Mode()

	if mode == session.ModeNormal {
		switch {
		case key.Matches(msg, normalKeys.ScrollDown):
			m.detail.HalfViewDown()
			return m, nil
		case key.Matches(msg, normalKeys.ScrollUp):
			m.detail.HalfViewUp()
			return m, nil
		}
	}

	if runes := pastedRunes(msg); mode == session.ModeSearch && runes != nil {
		for _, r := range runes {
			m.state.Apply(session.SearchKey{Char: r})
		}
		m.sync()
		return m, nil
	}

	sm, ok := KeyMessage(mode, msg)
	if !ok {
		return m, nil
	}
	return m.apply(sm)
}

func (m *Model) apply(msg session.Message) (tea.Model, tea.Cmd) {
	m.state.Apply(msg)
	if !m.state.Running() {
		m.quitting = true
		return m, tea.Quit
	}
	m.sync()
	return m, nil
}

func (m *Model) handleReload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.reloadErr = msg.Err
		m.log.Warn("reload failed", logger.Error(msg.Err))
		return m, nil
	}

	m.reloadErr = nil
	m.reloads++
	m.stats = msg.Stats
	m.log.Info("reloaded log file",
		logger.F("sets", len(msg.Sets)),
		logger.F("skipped", msg.Stats.Skipped))
	return m.apply(session.Reload{Sets: msg.Sets})
}

// sync brings the list window and detail pane in line with the state
func (m *Model) sync() {
	listHeight, detailHeight := m.paneHeights()
	m.syncList(listHeight)

	m.detail.Width = m.width
	m.detail.Height = detailHeight

	set, ok := m.state.Current()
	id := ""
	if ok {
		id = set.ID()
	}
	m.detail.SetContent(m.renderDetail(set, ok))
	if id != m.detailFor {
		m.detail.GotoTop()
		m.detailFor = id
	}
}

// syncList keeps the selected row inside the visible list window
func (m *Model) syncList(height int) {
	idx, ok := m.state.Selected()
	if !ok {
		m.listOffset = 0
		return
	}
	if idx < m.listOffset {
		m.listOffset = idx
	}
	if idx >= m.listOffset+height {
		m.listOffset = idx - height + 1
	}
	if last := len(m.state.Visible()) - height; m.listOffset > last {
		m.listOffset = max(0, last)
	}
}

// paneHeights splits the space left by the chrome between list and detail
func (m *Model) paneHeights() (int, int) {
	body := m.height - chromeHeight
	if m.state.Mode() == session.ModeSearch {
		body -= popupHeight
	}
	list := max(1, body*m.opts.ListRatio/100)
	return list, max(1, body-list)
}

// NewProgram creates the bubbletea program for a model
func NewProgram(ctx context.Context, m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
}

// Run runs the viewer until the user quits
func Run(ctx context.Context, sets []logset.Set, opts Options) error {
	_, err := NewProgram(ctx, NewModel(sets, opts)).Run()
	return err
}
