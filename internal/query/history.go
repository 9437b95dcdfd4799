package query

import "github.com/leapstack-labs/contacts/pkg/core"

// HistoryMode is the browser history operation a navigation performs.
type HistoryMode int

const (
	// HistoryNone leaves the history stack untouched (initial documents,
	// back/forward, revalidation).
	HistoryNone HistoryMode = iota
	// HistoryPush adds a new entry.
	HistoryPush
	// HistoryReplace overwrites the current entry.
	HistoryReplace
)

func (m HistoryMode) String() string {
	switch m {
	case HistoryPush:
		return "push"
	case HistoryReplace:
		return "replace"
	default:
		return "none"
	}
}

// IsFirstSearch reports whether a keystroke arriving while previous is the
// committed term starts the first search. Only the absent term qualifies;
// an empty term means a search already happened and was cleared.
func IsFirstSearch(previous core.SearchTerm) bool {
	return !previous.IsSet()
}

// HistoryModeFor decides push vs replace for a keystroke.
// The first search gets its own entry so back returns to "no filter";
// later keystrokes collapse into the current entry.
func HistoryModeFor(previous core.SearchTerm) HistoryMode {
	if IsFirstSearch(previous) {
		return HistoryPush
	}
	return HistoryReplace
}
