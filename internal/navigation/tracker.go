// Package navigation tracks the single outstanding navigation of a view.
//
// A navigation is started by a user action (link, keystroke, back/forward,
// form submission) and settles when its data has been committed. Starts are
// totally ordered; completions are not. The tracker hands out a
// monotonically increasing id per start and only the newest id is current,
// so a completion can always tell whether it was superseded.
package navigation

import (
	"sync"

	"github.com/leapstack-labs/contacts/internal/notifier"
	"github.com/leapstack-labs/contacts/internal/query"
)

// Phase is the lifecycle phase of a view's navigation.
type Phase int

const (
	// Idle means no navigation is outstanding.
	Idle Phase = iota
	// Loading means a GET-style navigation waits for its data.
	Loading
	// Submitting means a mutating navigation waits for its action.
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Kind distinguishes GET-style from POST-style navigations.
type Kind int

const (
	// KindLoad covers search, links, back/forward and redirects.
	KindLoad Kind = iota
	// KindSubmit covers form submissions that mutate data.
	KindSubmit
)

// Navigation identifies one started navigation.
type Navigation struct {
	ID     uint64
	Kind   Kind
	Target query.Location
}

// State is the derived navigation state of a view.
// The zero value is Idle.
type State struct {
	Phase  Phase
	Target query.Location
	// ID of the outstanding navigation; zero when Idle.
	ID uint64
}

// Searching reports whether a load toward a location carrying `q` is pending.
func (s State) Searching() bool {
	return s.Phase == Loading && s.Target.HasTerm()
}

// DetailPaneBusy reports whether any navigation is pending.
func (s State) DetailPaneBusy() bool {
	return s.Phase != Idle
}

// Tracker is the navigation state machine of one view.
// It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	seq     uint64
	state   State
	updates *notifier.Notifier[State]
}

// NewTracker returns an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{updates: notifier.New[State]()}
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Start begins a navigation toward target and makes it the current one.
// Any navigation started earlier is superseded.
func (t *Tracker) Start(kind Kind, target query.Location) Navigation {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	nav := Navigation{ID: t.seq, Kind: kind, Target: target}

	phase := Loading
	if kind == KindSubmit {
		phase = Submitting
	}
	t.transition(State{Phase: phase, Target: target, ID: nav.ID})
	return nav
}

// IsCurrent reports whether id belongs to the newest started navigation
// that has not settled or been aborted.
func (t *Tracker) IsCurrent(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isCurrent(id)
}

// Settle completes navigation id. If it is still current, commit runs while
// no other navigation can start, and the tracker returns to Idle.
// A superseded id leaves the state untouched and commit never runs.
func (t *Tracker) Settle(id uint64, commit func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isCurrent(id) {
		return false
	}
	if commit != nil {
		commit()
	}
	t.transition(State{})
	return true
}

// Abort ends navigation id after a failure. If it is still current, fn runs
// under the same guarantees as a Settle commit and the tracker returns to Idle.
func (t *Tracker) Abort(id uint64, fn func()) bool {
	return t.Settle(id, fn)
}

// Redirect turns the current submission id into a load of target.
// The returned navigation carries a fresh id; the submission's id stops
// being current. Reports false when id was superseded meanwhile.
func (t *Tracker) Redirect(id uint64, target query.Location) (Navigation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isCurrent(id) || t.state.Phase != Submitting {
		return Navigation{}, false
	}

	t.seq++
	nav := Navigation{ID: t.seq, Kind: KindLoad, Target: target}
	t.transition(State{Phase: Loading, Target: target, ID: nav.ID})
	return nav, true
}

// Subscribe returns a channel receiving the state after every transition.
func (t *Tracker) Subscribe() <-chan State {
	return t.updates.Subscribe()
}

// Unsubscribe releases a channel returned by Subscribe.
func (t *Tracker) Unsubscribe(ch <-chan State) {
	t.updates.Unsubscribe(ch)
}

func (t *Tracker) isCurrent(id uint64) bool {
	return id != 0 && t.state.Phase != Idle && t.state.ID == id
}

// transition must be called with mu held.
func (t *Tracker) transition(s State) {
	t.state = s
	t.updates.Broadcast(s)
}
