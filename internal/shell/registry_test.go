package shell

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/internal/state"
	"github.com/leapstack-labs/contacts/internal/testutil"
)

func newRegistry(t *testing.T, ttl time.Duration) (*Registry, *time.Time) {
	t.Helper()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(Config{
		Store:  state.NewMemoryStore(language.English),
		Logger: testutil.NewTestLogger(t),
	}, ttl)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestRegistry_OpenLookup(t *testing.T) {
	r, _ := newRegistry(t, time.Minute)

	sh := r.Open("client-a", query.Root())
	require.NotEmpty(t, sh.ID())
	assert.Equal(t, 1, r.Len())

	got, ok := r.Lookup("client-a", sh.ID())
	require.True(t, ok)
	assert.Same(t, sh, got)

	_, ok = r.Lookup("client-b", sh.ID())
	assert.False(t, ok, "views are private to their client")

	_, ok = r.Lookup("client-a", "unknown")
	assert.False(t, ok)

	other := r.Open("client-a", query.Root())
	assert.NotEqual(t, sh.ID(), other.ID(), "each document gets its own view")

	r.Close("client-a", sh.ID())
	_, ok = r.Lookup("client-a", sh.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	r, now := newRegistry(t, time.Minute)

	idle := r.Open("c", query.Root())
	active := r.Open("c", query.Root())
	streaming := r.Open("c", query.Root())

	_, release, ok := r.Acquire("c", streaming.ID())
	require.True(t, ok)

	*now = now.Add(45 * time.Second)
	_, ok = r.Lookup("c", active.ID())
	require.True(t, ok)

	*now = now.Add(30 * time.Second)
	assert.Equal(t, 1, r.Sweep())

	_, ok = r.Lookup("c", idle.ID())
	assert.False(t, ok)
	_, ok = r.Lookup("c", active.ID())
	assert.True(t, ok)
	_, ok = r.Lookup("c", streaming.ID())
	assert.True(t, ok)

	release()
	release()
	*now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, r.Sweep())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r, _ := newRegistry(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
