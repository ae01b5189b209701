package session

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/yildizm/reqlog/internal/logset"
)

func testSets(messages ...string) []logset.Set {
	lines := make([]string, 0, len(messages))
	for i, msg := range messages {
		id := strings.Repeat(string(rune('a'+i)), 32)
		lines = append(lines, "[INFO] [09:00:0"+string(rune('0'+i))+"] ["+id+"] "+msg)
	}
	return logset.Group(lines)
}

func selected(t *testing.T, s *State) int {
	t.Helper()
	idx, ok := s.Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	return idx
}

func typeFilter(s *State, text string) {
	for _, r := range text {
		s.Apply(SearchKey{Char: r})
	}
}

func TestNew(t *testing.T) {
	s := New(testSets("one", "two"))
	if s.Mode() != ModeNormal {
		t.Errorf("want Normal mode, got %v", s.Mode())
	}
	if !s.Running() {
		t.Error("new session should be running")
	}
	if idx := selected(t, s); idx != 0 {
		t.Errorf("want selection 0, got %d", idx)
	}

	empty := New(nil)
	if _, ok := empty.Selected(); ok {
		t.Error("empty session should have no selection")
	}
	if _, ok := empty.Current(); ok {
		t.Error("empty session should have no current set")
	}
}

func TestNavigationClamps(t *testing.T) {
	s := New(testSets("one", "two", "three"))

	s.Apply(PrevSet{})
	if idx := selected(t, s); idx != 0 {
		t.Errorf("PrevSet at 0: want 0, got %d", idx)
	}

	s.Apply(NextSet{})
	s.Apply(NextSet{})
	s.Apply(NextSet{})
	if idx := selected(t, s); idx != 2 {
		t.Errorf("NextSet at end: want 2, got %d", idx)
	}

	s.Apply(FirstSet{})
	if idx := selected(t, s); idx != 0 {
		t.Errorf("FirstSet: want 0, got %d", idx)
	}
	s.Apply(LastSet{})
	if idx := selected(t, s); idx != 2 {
		t.Errorf("LastSet: want 2, got %d", idx)
	}
}

func TestNavigationOnEmptySession(t *testing.T) {
	s := New(nil)
	for _, msg := range []Message{NextSet{}, PrevSet{}, FirstSet{}, LastSet{}} {
		s.Apply(msg)
		if _, ok := s.Selected(); ok {
			t.Errorf("%T produced a selection on an empty session", msg)
		}
	}
}

func TestModeTransitions(t *testing.T) {
	s := New(testSets("one"))

	s.Apply(GoSearch{})
	if s.Mode() != ModeSearch {
		t.Fatalf("want Search mode, got %v", s.Mode())
	}

	// navigation is ignored in Search mode
	s.Apply(NextSet{})
	typeFilter(s, "on")
	if s.Filter() != "on" {
		t.Errorf("want filter %q, got %q", "on", s.Filter())
	}

	s.Apply(SubmitSearch{})
	if s.Mode() != ModeNormal {
		t.Errorf("want Normal after submit, got %v", s.Mode())
	}
	if s.Filter() != "on" {
		t.Errorf("filter should be kept after submit, got %q", s.Filter())
	}

	// search keys are ignored in Normal mode
	s.Apply(SearchKey{Char: 'x'})
	if s.Filter() != "on" {
		t.Errorf("SearchKey in Normal mode changed filter to %q", s.Filter())
	}

	s.Apply(Quit{})
	if s.Running() {
		t.Error("Quit should stop the session")
	}
}

func TestCancelSearchClearsFilter(t *testing.T) {
	s := New(testSets("alpha", "beta"))
	s.Apply(GoSearch{})
	typeFilter(s, "beta")
	s.Apply(CancelSearch{})

	if s.Mode() != ModeNormal || s.Filter() != "" {
		t.Errorf("want Normal mode and empty filter, got %v %q", s.Mode(), s.Filter())
	}
	if len(s.Visible()) != 2 {
		t.Errorf("want all sets visible, got %d", len(s.Visible()))
	}
}

func TestFilterSelectsMatchingSets(t *testing.T) {
	s := New(testSets("an error", "a warn", "another error"))
	s.Apply(GoSearch{})
	typeFilter(s, "error")

	visible := s.Visible()
	if len(visible) != 2 {
		t.Fatalf("want 2 visible sets, got %d", len(visible))
	}
	if !strings.Contains(visible[0].First().Text, "an error") ||
		!strings.Contains(visible[1].First().Text, "another error") {
		t.Error("visible sets lost relative order")
	}
}

func TestSelectionClampedWhenFilterShrinksView(t *testing.T) {
	s := New(testSets("error one", "warn", "special"))
	s.Apply(LastSet{})
	if idx := selected(t, s); idx != 2 {
		t.Fatalf("want selection 2, got %d", idx)
	}

	s.Apply(GoSearch{})
	typeFilter(s, "warn")

	if len(s.Visible()) != 1 {
		t.Fatalf("want 1 visible set, got %d", len(s.Visible()))
	}
	if idx := selected(t, s); idx != 0 {
		t.Errorf("want clamped selection 0, got %d", idx)
	}
	cur, ok := s.Current()
	if !ok || !strings.Contains(cur.First().Text, "warn") {
		t.Error("current set should be the only visible one")
	}
}

func TestSelectionClearedWhenNothingMatches(t *testing.T) {
	s := New(testSets("one", "two"))
	s.Apply(GoSearch{})
	typeFilter(s, "zzz")

	if _, ok := s.Selected(); ok {
		t.Error("want no selection when nothing matches")
	}

	s.Apply(SearchBackspace{})
	s.Apply(SearchBackspace{})
	s.Apply(SearchBackspace{})
	if idx := selected(t, s); idx != 0 {
		t.Errorf("want selection restored to 0, got %d", idx)
	}
}

func TestSearchBackspaceResetsSelection(t *testing.T) {
	s := New(testSets("xa", "xb", "xc"))
	s.Apply(LastSet{})
	s.Apply(GoSearch{})
	typeFilter(s, "x")
	if idx := selected(t, s); idx != 2 {
		t.Fatalf("typing a matching filter should keep selection 2, got %d", idx)
	}

	s.Apply(SearchBackspace{})
	if idx := selected(t, s); idx != 0 {
		t.Errorf("backspace should reset selection to 0, got %d", idx)
	}

	// backspace on empty filter is harmless
	s.Apply(SearchBackspace{})
	if s.Filter() != "" {
		t.Errorf("want empty filter, got %q", s.Filter())
	}
}

func TestSearchBackspaceRemovesWholeRune(t *testing.T) {
	s := New(testSets("café"))
	s.Apply(GoSearch{})
	typeFilter(s, "café")
	s.Apply(SearchBackspace{})
	if s.Filter() != "caf" {
		t.Errorf("want %q, got %q", "caf", s.Filter())
	}
}

func TestReloadKeepsFilterAndRevalidates(t *testing.T) {
	s := New(testSets("error a", "error b", "error c"))
	s.Apply(GoSearch{})
	typeFilter(s, "error")
	s.Apply(SubmitSearch{})
	s.Apply(LastSet{})

	s.Apply(Reload{Sets: testSets("error only")})
	if s.Filter() != "error" {
		t.Errorf("reload dropped filter: %q", s.Filter())
	}
	if s.Total() != 1 {
		t.Errorf("want 1 set after reload, got %d", s.Total())
	}
	if idx := selected(t, s); idx != 0 {
		t.Errorf("want selection clamped to 0, got %d", idx)
	}
}

func TestReloadFollowsSelectedRequest(t *testing.T) {
	line := func(ts, c, msg string) string {
		return "[INFO] [" + ts + "] [" + strings.Repeat(c, 32) + "] " + msg
	}
	s := New(logset.Group([]string{
		line("09:00:01", "b", "first"),
		line("09:00:02", "c", "second"),
	}))
	s.Apply(NextSet{})

	// an earlier request appears ahead of the selected one
	s.Apply(Reload{Sets: logset.Group([]string{
		line("09:00:00", "a", "earlier"),
		line("09:00:01", "b", "first"),
		line("09:00:02", "c", "second"),
	})})

	set, ok := s.Current()
	if !ok || set.ID() != strings.Repeat("c", 32) {
		t.Errorf("want request c still selected, got %q", set.ID())
	}
	if idx := selected(t, s); idx != 2 {
		t.Errorf("want index 2, got %d", idx)
	}
}

func TestSelectionAlwaysInRange(t *testing.T) {
	sets := testSets("error a", "warn b", "error c", "info d", "debug e")
	messages := []Message{
		NextSet{}, PrevSet{}, FirstSet{}, LastSet{}, GoSearch{}, SubmitSearch{},
		CancelSearch{}, SearchBackspace{},
		SearchKey{Char: 'e'}, SearchKey{Char: 'r'}, SearchKey{Char: 'z'}, SearchKey{Char: ' '},
	}

	rng := rand.New(rand.NewSource(42))
	s := New(sets)
	for i := 0; i < 5000; i++ {
		s.Apply(messages[rng.Intn(len(messages))])

		n := len(s.Visible())
		idx, ok := s.Selected()
		switch {
		case n == 0 && ok:
			t.Fatalf("step %d: selection %d on empty view", i, idx)
		case n > 0 && !ok:
			t.Fatalf("step %d: no selection with %d visible sets", i, n)
		case ok && (idx < 0 || idx >= n):
			t.Fatalf("step %d: selection %d out of range [0,%d)", i, idx, n)
		}
	}
}
