// Package state provides the contact backends: an in-memory store and a
// database/sql store for SQLite and Postgres with embedded migrations.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/leapstack-labs/contacts/pkg/core"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// DSN is a file path (or ":memory:") for SQLite and a connection
	// string for Postgres. Unused by the memory backend.
	DSN    string
	Logger *slog.Logger
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (core.ContactStore, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendMemory:
		return NewMemoryStore(language.English), nil
	default:
		d, err := ParseDialect(opts.Backend)
		if err != nil {
			return nil, fmt.Errorf("unknown backend %q", opts.Backend)
		}
		dsn := opts.DSN
		if dsn == "" && d == SQLite {
			dsn = ":memory:"
		}
		return OpenSQL(ctx, d, dsn, opts.Logger)
	}
}

// Import creates one contact per entry, copying its editable fields.
// Ids and creation times are assigned by the store. Returns the stored
// contacts in input order. A contact whose fields cannot be saved is
// removed again.
func Import(ctx context.Context, store core.ContactStore, contacts []core.Contact) ([]core.Contact, error) {
	out := make([]core.Contact, 0, len(contacts))
	for i, c := range contacts {
		created, err := store.CreateContact(ctx)
		if err != nil {
			return out, fmt.Errorf("import contact %d: %w", i, err)
		}
		saved, err := store.UpdateContact(ctx, created.ID, core.ContactUpdate{
			First:    &c.First,
			Last:     &c.Last,
			Twitter:  &c.Twitter,
			Avatar:   &c.Avatar,
			Notes:    &c.Notes,
			Favorite: &c.Favorite,
		})
		if err != nil {
			// Don't leave the blank contact behind.
			if derr := store.DeleteContact(ctx, created.ID); derr != nil {
				err = errors.Join(err, derr)
			}
			return out, fmt.Errorf("import contact %d: %w", i, err)
		}
		out = append(out, saved)
	}
	return out, nil
}
