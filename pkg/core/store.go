package core

import "context"

// ContactLister lists contacts matching a search term, in display order.
// The absent and empty terms return the unfiltered list.
type ContactLister interface {
	ListContacts(ctx context.Context, term SearchTerm) ([]Contact, error)
}

// ContactStore is the persistence backend the shell collaborates with.
type ContactStore interface {
	ContactLister

	// CreateContact allocates a fresh id and stores a contact with empty fields.
	CreateContact(ctx context.Context) (Contact, error)
	// GetContact returns ErrNotFound when no contact has the id.
	GetContact(ctx context.Context, id string) (Contact, error)
	// UpdateContact returns ErrNotFound when no contact has the id.
	UpdateContact(ctx context.Context, id string, upd ContactUpdate) (Contact, error)
	// DeleteContact returns ErrNotFound when no contact has the id.
	DeleteContact(ctx context.Context, id string) error

	Close() error
}
