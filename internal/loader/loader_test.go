package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/contacts/internal/testutil"
	"github.com/leapstack-labs/contacts/pkg/core"
)

type listerFunc func(ctx context.Context, term core.SearchTerm) ([]core.Contact, error)

func (f listerFunc) ListContacts(ctx context.Context, term core.SearchTerm) ([]core.Contact, error) {
	return f(ctx, term)
}

func TestLoader_Load(t *testing.T) {
	var got core.SearchTerm
	l := New(listerFunc(func(_ context.Context, term core.SearchTerm) ([]core.Contact, error) {
		got = term
		return []core.Contact{{ID: "1", First: "Ada"}}, nil
	}), testutil.NewTestLogger(t))

	res, err := l.Load(context.Background(), core.TermOf("ad"))
	require.NoError(t, err)

	assert.True(t, got.Equal(core.TermOf("ad")))
	assert.Len(t, res.Contacts, 1)
	assert.True(t, res.Term.Equal(core.TermOf("ad")))

	_, loaded := l.Current()
	assert.False(t, loaded, "load must not commit")
}

func TestLoader_LoadEmptyListIsNotNil(t *testing.T) {
	l := New(listerFunc(func(context.Context, core.SearchTerm) ([]core.Contact, error) {
		return nil, nil
	}), nil)

	res, err := l.Load(context.Background(), core.NoTerm())
	require.NoError(t, err)
	assert.NotNil(t, res.Contacts)
	assert.Empty(t, res.Contacts)
}

func TestLoader_LoadFailureIsBackendUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	l := New(listerFunc(func(context.Context, core.SearchTerm) ([]core.Contact, error) {
		return nil, cause
	}), testutil.NewTestLogger(t))

	_, err := l.Load(context.Background(), core.TermOf("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestLoader_CommitReplacesWholesale(t *testing.T) {
	l := New(nil, nil)

	l.Commit(Result{Contacts: []core.Contact{{ID: "1"}, {ID: "2"}}, Term: core.NoTerm()})
	l.Commit(Result{Contacts: []core.Contact{{ID: "3"}}, Term: core.TermOf("c")})

	cur, loaded := l.Current()
	require.True(t, loaded)
	assert.Equal(t, []core.Contact{{ID: "3"}}, cur.Contacts)
	assert.Equal(t, "c", cur.Term.Value())
}
