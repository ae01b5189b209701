package session

import "github.com/yildizm/reqlog/internal/logset"

// Message is an input to the state machine. The concrete types below are the
// whole vocabulary.
type Message interface {
	message()
}

// Normal mode messages
type (
	NextSet  struct{}
	PrevSet  struct{}
	FirstSet struct{}
	LastSet  struct{}
	GoSearch struct{}
	Quit     struct{}
)

// Search mode messages
type (
	SearchKey       struct{ Char rune }
	SearchBackspace struct{}
	SubmitSearch    struct{}
	// CancelSearch leaves Search mode and clears the filter
	CancelSearch struct{}
)

// Reload replaces the loaded sets, e.g. after the log file changed on disk.
// It is accepted in every mode.
type Reload struct {
	Sets []logset.Set
}

func (NextSet) message()         {}
func (PrevSet) message()         {}
func (FirstSet) message()        {}
func (LastSet) message()         {}
func (GoSearch) message()        {}
func (Quit) message()            {}
func (SearchKey) message()       {}
func (SearchBackspace) message() {}
func (SubmitSearch) message()    {}
func (CancelSearch) message()    {}
func (Reload) message()          {}
