// Package session holds the interactive viewer state and its transitions.
//
// The visible sequence of sets is derived from the filter on every call and
// never cached, so a selection index is only meaningful against the view
// computed at the same moment. Apply revalidates the selection after every
// message.
package session

import (
	"github.com/yildizm/reqlog/internal/logset"
)

// Mode is the input mode of the session
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSearch:
		return "SEARCH"
	default:
		return "UNKNOWN"
	}
}

const noSelection = -1

// State is the live viewer state. It has a single owner, the event loop.
type State struct {
	sets     []logset.Set
	selected int
	mode     Mode
	filter   []rune
	running  bool
}

// New creates a session over ordered log sets. The first set is selected if
// there is one.
func New(sets []logset.Set) *State {
	s := &State{
		sets:     sets,
		selected: noSelection,
		mode:     ModeNormal,
		running:  true,
	}
	s.revalidate()
	return s
}

// Apply applies one message in place. Messages that the current mode does
// not accept are ignored.
func (s *State) Apply(msg Message) {
	if reload, ok := msg.(Reload); ok {
		s.reload(reload.Sets)
		return
	}

	switch s.mode {
	case ModeNormal:
		s.applyNormal(msg)
	case ModeSearch:
		s.applySearch(msg)
	}
	s.revalidate()
}

func (s *State) applyNormal(msg Message) {
	switch msg.(type) {
	case NextSet:
		if s.selected != noSelection && s.selected < len(s.Visible())-1 {
			s.selected++
		}
	case PrevSet:
		if s.selected > 0 {
			s.selected--
		}
	case FirstSet:
		s.selected = 0
	case LastSet:
		s.selected = len(s.Visible()) - 1
	case GoSearch:
		s.mode = ModeSearch
	case Quit:
		s.running = false
	}
}

func (s *State) applySearch(msg Message) {
	switch m := msg.(type) {
	case SearchKey:
		s.filter = append(s.filter, m.Char)
	case SearchBackspace:
		if len(s.filter) > 0 {
			s.filter = s.filter[:len(s.filter)-1]
		}
		s.selected = 0
	case SubmitSearch:
		s.mode = ModeNormal
	case CancelSearch:
		s.filter = nil
		s.mode = ModeNormal
		s.selected = 0
	case Quit:
		s.running = false
	}
}

// reload swaps in new sets and keeps the selected request selected while it
// is still visible. Otherwise the old index is clamped.
func (s *State) reload(sets []logset.Set) {
	prev, had := s.Current()
	s.sets = sets
	if had {
		for i, set := range s.Visible() {
			if set.ID() == prev.ID() {
				s.selected = i
				return
			}
		}
	}
	s.revalidate()
}

// revalidate clamps the selection into the current visible view
func (s *State) revalidate() {
	n := len(s.Visible())
	switch {
	case n == 0:
		s.selected = noSelection
	case s.selected < 0:
		s.selected = 0
	case s.selected >= n:
		s.selected = n - 1
	}
}

// Visible returns the sets matching the current filter, in load order
func (s *State) Visible() []logset.Set {
	return logset.Filter(s.sets, string(s.filter))
}

// Selected returns the selected index into Visible
func (s *State) Selected() (int, bool) {
	if s.selected == noSelection {
		return 0, false
	}
	return s.selected, true
}

// Current returns the selected set
func (s *State) Current() (logset.Set, bool) {
	visible := s.Visible()
	if s.selected < 0 || s.selected >= len(visible) {
		return logset.Set{}, false
	}
	return visible[s.selected], true
}

// Mode returns the current input mode
func (s *State) Mode() Mode {
	return s.mode
}

// Filter returns the current filter text
func (s *State) Filter() string {
	return string(s.filter)
}

// Running reports whether the event loop should keep going
func (s *State) Running() bool {
	return s.running
}

// Total returns the number of loaded sets, ignoring the filter
func (s *State) Total() int {
	return len(s.sets)
}
