package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/pkg/core"
)

func newSync(t *testing.T, raw string) (*Synchronizer, *query.Store) {
	t.Helper()
	loc, err := query.ParseLocation(raw)
	require.NoError(t, err)
	store := query.NewStore(loc)
	return NewSynchronizer(store), store
}

func TestSynchronizer_InitialValue(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/", ""},
		{"/?q=", ""},
		{"/?q=ada", "ada"},
		{"/contacts/1?q=x", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			s, _ := newSync(t, tt.url)
			assert.Equal(t, tt.want, s.Value())
		})
	}
}

func TestSynchronizer_Keystroke(t *testing.T) {
	tests := []struct {
		name       string
		committed  string
		input      string
		wantTarget string
		wantMode   query.HistoryMode
	}{
		{"first search pushes", "/", "a", "/?q=a", query.HistoryPush},
		{"later keystroke replaces", "/?q=a", "ab", "/?q=ab", query.HistoryReplace},
		{"clearing sends empty q", "/?q=a", "", "/?q=", query.HistoryReplace},
		{"cleared term still replaces", "/?q=", "b", "/?q=b", query.HistoryReplace},
		{"first search from detail route", "/contacts/7", "z", "/?q=z", query.HistoryPush},
		{"deleting to empty on first search pushes", "/", "", "/?q=", query.HistoryPush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSync(t, tt.committed)
			intent := s.Keystroke(tt.input)

			assert.Equal(t, tt.wantTarget, intent.Target.String())
			assert.Equal(t, tt.wantMode, intent.Mode)
			assert.True(t, intent.Term.Equal(core.TermOf(tt.input)))
			assert.Equal(t, tt.input, s.Value())
		})
	}
}

func TestSynchronizer_PendingFirstSearchKeepsPushing(t *testing.T) {
	s, store := newSync(t, "/")

	// nothing settles between keystrokes
	assert.Equal(t, query.HistoryPush, s.Keystroke("a").Mode)
	assert.Equal(t, query.HistoryPush, s.Keystroke("ab").Mode)

	loc, err := query.ParseLocation("/?q=ab")
	require.NoError(t, err)
	store.Commit(loc)

	assert.Equal(t, query.HistoryReplace, s.Keystroke("abc").Mode)
}

func TestSynchronizer_Settled(t *testing.T) {
	s, _ := newSync(t, "/?q=abc")

	// back navigation to an older URL rewrites the input
	value, changed := s.Settled(core.TermOf("a"))
	assert.Equal(t, "a", value)
	assert.True(t, changed)

	value, changed = s.Settled(core.TermOf("a"))
	assert.Equal(t, "a", value)
	assert.False(t, changed)

	value, changed = s.Settled(core.NoTerm())
	assert.Equal(t, "", value)
	assert.True(t, changed)
	assert.Equal(t, "", s.Value())
}
