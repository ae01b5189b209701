package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/reqlog/internal/session"
)

// NormalKeyMap holds the bindings accepted in Normal mode
type NormalKeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	First      key.Binding
	Last       key.Binding
	Search     key.Binding
	Quit       key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
}

// SearchKeyMap holds the bindings accepted in Search mode
type SearchKeyMap struct {
	Submit    key.Binding
	Backspace key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

var normalKeys = NormalKeyMap{
	Next:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
	Prev:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev")),
	First:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
	Last:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ScrollDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll detail")),
	ScrollUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll detail")),
}

var searchKeys = SearchKeyMap{
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// ShortHelp implements help.KeyMap
func (k NormalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Search, k.ScrollDown, k.Quit}
}

// FullHelp implements help.KeyMap
func (k NormalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.Search, k.ScrollDown, k.ScrollUp, k.Quit},
	}
}

// ShortHelp implements help.KeyMap
func (k SearchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Backspace, k.Cancel, k.Quit}
}

// FullHelp implements help.KeyMap
func (k SearchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// KeyMessage maps a key press to a session message for the given mode.
// Keys with no meaning in that mode yield false.
func KeyMessage(mode session.Mode, msg tea.KeyMsg) (session.Message, bool) {
	switch mode {
	case session.ModeSearch:
		return searchKeyMessage(msg)
	default:
		return normalKeyMessage(msg)
	}
}

func normalKeyMessage(msg tea.KeyMsg) (session.Message, bool) {
	switch {
	case key.Matches(msg, normalKeys.Next):
		return session.NextSet{}, true
	case key.Matches(msg, normalKeys.Prev):
		return session.PrevSet{}, true
	case key.Matches(msg, normalKeys.First):
		return session.FirstSet{}, true
	case key.Matches(msg, normalKeys.Last):
		return session.LastSet{}, true
	case key.Matches(msg, normalKeys.Search):
		return session.GoSearch{}, true
	case key.Matches(msg, normalKeys.Quit):
		return session.Quit{}, true
	}
	return nil, false
}

func searchKeyMessage(msg tea.KeyMsg) (session.Message, bool) {
	switch {
	case key.Matches(msg, searchKeys.Submit):
		return session.SubmitSearch{}, true
	case key.Matches(msg, searchKeys.Backspace):
		return session.SearchBackspace{}, true
	case key.Matches(msg, searchKeys.Cancel):
		return session.CancelSearch{}, true
	case key.Matches(msg, searchKeys.Quit):
		return session.Quit{}, true
	}

	switch msg.Type {
	case tea.KeySpace:
		return session.SearchKey{Char: ' '}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return session.SearchKey{Char: msg.Runes[0]}, true
		}
	}
	return nil, false
}

// pastedRunes returns the runes of a multi-rune key event, e.g. a paste
func pastedRunes(msg tea.KeyMsg) []rune {
	if msg.Type != tea.KeyRunes || len(msg.Runes) < 2 || msg.Alt {
		return nil
	}
	return msg.Runes
}
