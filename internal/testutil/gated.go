package testutil

import (
	"context"
	"sync"

	"github.com/leapstack-labs/contacts/pkg/core"
)

// GatedStore wraps a ContactStore so that list loads block until the test
// opens the gate for their term. It lets tests complete loads in any order.
type GatedStore struct {
	core.ContactStore

	mu      sync.Mutex
	gates   map[string]chan struct{}
	fail    map[string]error
	started chan string
}

// NewGatedStore wraps store. Every term is gated until Release is called.
func NewGatedStore(store core.ContactStore) *GatedStore {
	return &GatedStore{
		ContactStore: store,
		gates:        make(map[string]chan struct{}),
		fail:         make(map[string]error),
		started:      make(chan string, 64),
	}
}

// Started receives the term string of every list load as it begins.
func (g *GatedStore) Started() <-chan string {
	return g.started
}

// Release lets pending and future loads of term complete.
func (g *GatedStore) Release(term core.SearchTerm) {
	close(g.gate(term.String()))
}

// Fail makes loads of term return err once released.
func (g *GatedStore) Fail(term core.SearchTerm, err error) {
	g.mu.Lock()
	g.fail[term.String()] = err
	g.mu.Unlock()
}

// ListContacts blocks until the term is released or ctx ends.
func (g *GatedStore) ListContacts(ctx context.Context, term core.SearchTerm) ([]core.Contact, error) {
	key := term.String()
	g.started <- key

	select {
	case <-g.gate(key):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	err := g.fail[key]
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return g.ContactStore.ListContacts(ctx, term)
}

func (g *GatedStore) gate(key string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[key]
	if !ok {
		ch = make(chan struct{})
		g.gates[key] = ch
	}
	return ch
}
