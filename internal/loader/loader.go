// Package loader fetches the contact list for a search term and holds the
// result that is currently shown.
package loader

import (
	"context"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/contacts/pkg/core"
)

// Result is the immutable outcome of one successful list load.
type Result struct {
	Contacts []core.Contact
	Term     core.SearchTerm
}

// Loader reads contact lists from a backend.
// The committed result only changes through Commit.
type Loader struct {
	lister core.ContactLister
	logger *slog.Logger

	mu      sync.RWMutex
	current Result
	loaded  bool
}

// New creates a loader over lister. A nil logger discards output.
func New(lister core.ContactLister, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{lister: lister, logger: logger}
}

// Load fetches the list for term. It does not touch the committed result;
// callers decide whether the result is still wanted.
func (l *Loader) Load(ctx context.Context, term core.SearchTerm) (Result, error) {
	contacts, err := l.lister.ListContacts(ctx, term)
	if err != nil {
		l.logger.Debug("list load failed", "term", term, "error", err)
		return Result{}, core.Unavailable("list contacts", err)
	}
	if contacts == nil {
		contacts = []core.Contact{}
	}
	l.logger.Debug("list loaded", "term", term, "count", len(contacts))
	return Result{Contacts: contacts, Term: term}, nil
}

// Commit makes r the current result, replacing the previous one wholesale.
func (l *Loader) Commit(r Result) {
	l.mu.Lock()
	l.current = r
	l.loaded = true
	l.mu.Unlock()
}

// Current returns the committed result and whether any load committed yet.
func (l *Loader) Current() (Result, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current, l.loaded
}
