// Package mutation performs list-mutating actions against the backend and
// decides where the app navigates once an action resolved.
//
// The dispatcher never edits the displayed list itself; the navigation that
// follows a successful action reloads it.
package mutation

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// ContactPath returns the detail route of a contact.
func ContactPath(id string) string {
	return "/contacts/" + url.PathEscape(id)
}

// EditPath returns the edit route of a contact.
func EditPath(id string) string {
	return ContactPath(id) + "/edit"
}

// Dispatcher runs mutations on a contact store.
type Dispatcher struct {
	store  core.ContactStore
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil logger discards output.
func NewDispatcher(store core.ContactStore, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{store: store, logger: logger}
}

// CreateContact creates an empty contact and returns the location of its
// edit form as the redirect target.
func (d *Dispatcher) CreateContact(ctx context.Context) (core.Contact, query.Location, error) {
	c, err := d.store.CreateContact(ctx)
	if err != nil {
		return core.Contact{}, query.Location{}, d.fail("create contact", err)
	}
	d.logger.Info("contact created", "id", c.ID)
	return c, query.Location{Path: EditPath(c.ID)}, nil
}

// UpdateContact saves the edit form and redirects to the contact.
func (d *Dispatcher) UpdateContact(ctx context.Context, id string, upd core.ContactUpdate) (core.Contact, query.Location, error) {
	c, err := d.store.UpdateContact(ctx, id, upd)
	if err != nil {
		return core.Contact{}, query.Location{}, d.fail("update contact", err)
	}
	d.logger.Info("contact updated", "id", c.ID)
	return c, query.Location{Path: ContactPath(c.ID)}, nil
}

// DeleteContact removes a contact and redirects to the list root.
func (d *Dispatcher) DeleteContact(ctx context.Context, id string) (query.Location, error) {
	if err := d.store.DeleteContact(ctx, id); err != nil {
		return query.Location{}, d.fail("delete contact", err)
	}
	d.logger.Info("contact deleted", "id", id)
	return query.Root(), nil
}

// SetFavorite toggles the favorite flag. The redirect target is current,
// the location the view already shows, so the page revalidates in place.
func (d *Dispatcher) SetFavorite(ctx context.Context, id string, favorite bool, current query.Location) (core.Contact, query.Location, error) {
	c, err := d.store.UpdateContact(ctx, id, core.ContactUpdate{Favorite: &favorite})
	if err != nil {
		return core.Contact{}, query.Location{}, d.fail("set favorite", err)
	}
	d.logger.Info("contact favorite set", "id", c.ID, "favorite", favorite)
	return c, current, nil
}

func (d *Dispatcher) fail(op string, err error) error {
	d.logger.Warn("mutation failed", "op", op, "error", err)
	if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrBackendUnavailable) {
		return err
	}
	return core.Unavailable(op, err)
}
