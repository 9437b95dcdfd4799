package mutation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/internal/state"
	"github.com/leapstack-labs/contacts/internal/testutil"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// brokenStore fails every write.
type brokenStore struct {
	core.ContactStore
	err error
}

func (b brokenStore) CreateContact(context.Context) (core.Contact, error) {
	return core.Contact{}, b.err
}

func (b brokenStore) UpdateContact(context.Context, string, core.ContactUpdate) (core.Contact, error) {
	return core.Contact{}, b.err
}

func (b brokenStore) DeleteContact(context.Context, string) error {
	return b.err
}

func TestDispatcher_CreateContactRedirectsToEdit(t *testing.T) {
	store := state.NewMemoryStore(language.English)
	d := NewDispatcher(store, testutil.NewTestLogger(t))

	c, target, err := d.CreateContact(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "/contacts/"+c.ID+"/edit", target.String())

	// the created contact exists before the redirect is followed
	got, err := store.GetContact(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestDispatcher_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore(language.English)
	d := NewDispatcher(store, testutil.NewTestLogger(t))

	c, _, err := d.CreateContact(ctx)
	require.NoError(t, err)

	first := "Barbara"
	updated, target, err := d.UpdateContact(ctx, c.ID, core.ContactUpdate{First: &first})
	require.NoError(t, err)
	assert.Equal(t, "Barbara", updated.First)
	assert.Equal(t, "/contacts/"+c.ID, target.String())

	current, err := query.ParseLocation("/contacts/" + c.ID + "?q=bar")
	require.NoError(t, err)
	fav, target, err := d.SetFavorite(ctx, c.ID, true, current)
	require.NoError(t, err)
	assert.True(t, fav.Favorite)
	assert.True(t, target.Equal(current))

	target, err = d.DeleteContact(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "/", target.String())

	_, err = store.GetContact(ctx, c.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDispatcher_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		cause     error
		wantIs    error
		wantNotIs error
	}{
		{"backend failure", errors.New("network down"), core.ErrBackendUnavailable, core.ErrNotFound},
		{"not found passes through", core.ErrNotFound, core.ErrNotFound, core.ErrBackendUnavailable},
		{"already wrapped", core.Unavailable("create", errors.New("x")), core.ErrBackendUnavailable, core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(brokenStore{err: tt.cause}, testutil.NewTestLogger(t))

			_, target, err := d.CreateContact(ctx)
			assert.ErrorIs(t, err, tt.wantIs)
			assert.NotErrorIs(t, err, tt.wantNotIs)
			assert.Empty(t, target.Path, "no redirect on failure")

			_, _, err = d.UpdateContact(ctx, "1", core.ContactUpdate{})
			assert.ErrorIs(t, err, tt.wantIs)

			_, err = d.DeleteContact(ctx, "1")
			assert.ErrorIs(t, err, tt.wantIs)

			_, _, err = d.SetFavorite(ctx, "1", true, query.Root())
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/contacts/abc", ContactPath("abc"))
	assert.Equal(t, "/contacts/abc/edit", EditPath("abc"))
	assert.Equal(t, "/contacts/a%2Fb/edit", EditPath("a/b"))
}
