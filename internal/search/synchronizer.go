// Package search turns keystrokes in the search input into list
// navigations and keeps the input in step with the settled URL.
package search

import (
	"sync"

	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// Intent is the navigation a keystroke asks for.
type Intent struct {
	Target query.Location
	Mode   query.HistoryMode
	Term   core.SearchTerm
}

// Synchronizer owns the displayed value of one view's search input.
type Synchronizer struct {
	store *query.Store

	mu      sync.Mutex
	display string
}

// NewSynchronizer binds the input to store and shows its committed term.
func NewSynchronizer(store *query.Store) *Synchronizer {
	return &Synchronizer{
		store:   store,
		display: store.CurrentTerm().Value(),
	}
}

// Keystroke records input as the displayed value and returns the list
// navigation it triggers. The history decision reads the committed term
// before the navigation applies, so every keystroke of a first search
// pushes until one of them settles.
func (s *Synchronizer) Keystroke(input string) Intent {
	previous := s.store.CurrentTerm()
	term := core.TermOf(input)

	s.mu.Lock()
	s.display = input
	s.mu.Unlock()

	return Intent{
		Target: query.Root().WithTerm(term),
		Mode:   query.HistoryModeFor(previous),
		Term:   term,
	}
}

// Settled makes the displayed value exactly the settled term's value.
// changed reports whether the input must be rewritten.
func (s *Synchronizer) Settled(term core.SearchTerm) (value string, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value = term.Value()
	changed = s.display != value
	s.display = value
	return value, changed
}

// Value returns the displayed input value.
func (s *Synchronizer) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}
