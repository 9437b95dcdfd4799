package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/contacts/pkg/core"
)

// MemoryStore keeps contacts in process memory.
//
// Matching ignores case and diacritics, so "jose" finds "José". Ordering
// follows the locale's collation on last name, then creation order.
type MemoryStore struct {
	mu       sync.RWMutex
	contacts map[string]ranked
	seq      uint64
	tag      language.Tag
	now      func() time.Time
}

// NewMemoryStore creates an empty store collating for tag.
func NewMemoryStore(tag language.Tag) *MemoryStore {
	return &MemoryStore{
		contacts: make(map[string]ranked),
		tag:      tag,
		now:      time.Now,
	}
}

// ListContacts returns matching contacts in display order.
func (m *MemoryStore) ListContacts(ctx context.Context, term core.SearchTerm) ([]core.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	entries := make([]ranked, 0, len(m.contacts))
	for _, e := range m.contacts {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	return arrange(m.tag, term, entries), nil
}

// CreateContact stores an empty contact with a fresh id.
func (m *MemoryStore) CreateContact(ctx context.Context) (core.Contact, error) {
	if err := ctx.Err(); err != nil {
		return core.Contact{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	c := core.Contact{ID: uuid.NewString(), CreatedAt: m.now().UTC()}
	m.contacts[c.ID] = ranked{contact: c, seq: m.seq}
	return c, nil
}

// GetContact retrieves a contact by id.
func (m *MemoryStore) GetContact(ctx context.Context, id string) (core.Contact, error) {
	if err := ctx.Err(); err != nil {
		return core.Contact{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.contacts[id]
	if !ok {
		return core.Contact{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return e.contact, nil
}

// UpdateContact applies upd to the stored contact.
func (m *MemoryStore) UpdateContact(ctx context.Context, id string, upd core.ContactUpdate) (core.Contact, error) {
	if err := ctx.Err(); err != nil {
		return core.Contact{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.contacts[id]
	if !ok {
		return core.Contact{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	e.contact = upd.Apply(e.contact)
	m.contacts[id] = e
	return e.contact, nil
}

// DeleteContact removes a contact.
func (m *MemoryStore) DeleteContact(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contacts[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	delete(m.contacts, id)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
