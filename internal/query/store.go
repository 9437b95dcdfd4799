package query

import (
	"sync"

	"github.com/leapstack-labs/contacts/pkg/core"
)

// Store holds the committed location of one view, i.e. the URL the browser
// shows once the latest navigation settled. Pending navigations never
// change it.
type Store struct {
	mu  sync.RWMutex
	loc Location
}

// NewStore creates a store committed to loc.
func NewStore(loc Location) *Store {
	return &Store{loc: loc}
}

// Current returns the committed location.
func (s *Store) Current() Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loc
}

// CurrentTerm returns the committed search term.
func (s *Store) CurrentTerm() core.SearchTerm {
	return s.Current().Term()
}

// Commit replaces the committed location.
func (s *Store) Commit(loc Location) {
	s.mu.Lock()
	s.loc = loc
	s.mu.Unlock()
}
