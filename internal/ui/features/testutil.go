// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/contacts/internal/shell"
	"github.com/leapstack-labs/contacts/internal/state"
	"github.com/leapstack-labs/contacts/internal/testutil"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// TestContact is a helper to create test contacts with minimal boilerplate.
type TestContact struct {
	First    string
	Last     string
	Favorite bool
	Twitter  string
	Notes    string
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        core.ContactStore
	Registry     *shell.Registry
	SessionStore *sessions.CookieStore
	Contacts     []core.Contact
}

// SetupTestFixture creates an in-memory store seeded with contacts and a
// view registry over it.
func SetupTestFixture(t *testing.T, contacts ...TestContact) *TestFixture {
	t.Helper()
	return SetupTestFixtureWithStore(t, state.NewMemoryStore(language.English), contacts...)
}

// SetupTestFixtureWithStore is SetupTestFixture over a caller-provided store.
func SetupTestFixtureWithStore(t *testing.T, store core.ContactStore, contacts ...TestContact) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	seed := make([]core.Contact, len(contacts))
	for i, c := range contacts {
		seed[i] = core.Contact{First: c.First, Last: c.Last, Favorite: c.Favorite, Twitter: c.Twitter, Notes: c.Notes}
	}
	saved, err := state.Import(context.Background(), store, seed)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestFixture{
		Store: store,
		Registry: shell.NewRegistry(shell.Config{
			Store:       store,
			Logger:      logger,
			LoadTimeout: 5 * time.Second,
		}, time.Hour),
		SessionStore: NewTestSessionStore(),
		Contacts:     saved,
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
