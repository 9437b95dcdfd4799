// Package shell composes the per-view navigation shell: query store,
// navigation tracker, list loader, search synchronizer, mutation dispatcher
// and the detail outlet.
//
// Every user action is split in two: a Begin call that starts the
// navigation synchronously, and Complete, which waits for the loads and
// commits them only if the navigation is still the newest one.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/contacts/internal/loader"
	"github.com/leapstack-labs/contacts/internal/mutation"
	"github.com/leapstack-labs/contacts/internal/navigation"
	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/internal/search"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// DefaultLoadTimeout bounds a navigation's loads when Config leaves it zero.
const DefaultLoadTimeout = 10 * time.Second

// Config holds the collaborators shared by every shell.
type Config struct {
	Store       core.ContactStore
	Logger      *slog.Logger
	LoadTimeout time.Duration
}

// Pending is a started navigation awaiting Complete.
type Pending struct {
	Navigation navigation.Navigation
	History    query.HistoryMode
}

// Outcome describes a settled navigation to the transport.
type Outcome struct {
	Location     query.Location
	History      query.HistoryMode
	InputValue   string
	InputChanged bool
}

// Snapshot is everything the view renderer needs.
type Snapshot struct {
	ViewID     string
	Location   query.Location
	List       loader.Result
	Loaded     bool
	Navigation navigation.State
	InputValue string
	Outlet     Outlet
	Failure    string
}

// Action is a mutation run by Submit. It returns the redirect target.
type Action func(ctx context.Context, d *mutation.Dispatcher, current query.Location) (query.Location, error)

// Shell is the navigation shell of one view.
type Shell struct {
	id      string
	store   core.ContactStore
	logger  *slog.Logger
	timeout time.Duration

	tracker   *navigation.Tracker
	query     *query.Store
	loader    *loader.Loader
	search    *search.Synchronizer
	mutations *mutation.Dispatcher

	// mu guards commits across components so Snapshot sees them together.
	mu      sync.RWMutex
	outlet  Outlet
	failure string
}

// New creates a shell for view id whose document was requested at initial.
func New(id string, cfg Config, initial query.Location) *Shell {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("view", id)

	timeout := cfg.LoadTimeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}

	qs := query.NewStore(initial)
	return &Shell{
		id:        id,
		store:     cfg.Store,
		logger:    logger,
		timeout:   timeout,
		tracker:   navigation.NewTracker(),
		query:     qs,
		loader:    loader.New(cfg.Store, logger),
		search:    search.NewSynchronizer(qs),
		mutations: mutation.NewDispatcher(cfg.Store, logger),
	}
}

// ID returns the view id.
func (s *Shell) ID() string { return s.id }

// BeginVisit starts a GET navigation to loc. Use HistoryNone for the
// initial document and browser back/forward, HistoryPush for links.
func (s *Shell) BeginVisit(loc query.Location, mode query.HistoryMode) Pending {
	nav := s.tracker.Start(navigation.KindLoad, loc)
	s.logger.Debug("navigation started", "id", nav.ID, "target", loc.String(), "history", mode)
	return Pending{Navigation: nav, History: mode}
}

// BeginSearch handles a keystroke in the search input.
func (s *Shell) BeginSearch(input string) Pending {
	intent := s.search.Keystroke(input)
	nav := s.tracker.Start(navigation.KindLoad, intent.Target)
	s.logger.Debug("search started", "id", nav.ID, "term", intent.Term, "history", intent.Mode)
	return Pending{Navigation: nav, History: intent.Mode}
}

// Complete loads the list and the outlet for p and commits them if p is
// still the current navigation. Loads run detached from ctx's cancellation
// and finish even when superseded; their results are then discarded with
// core.ErrStaleNavigation.
func (s *Shell) Complete(ctx context.Context, p Pending) (Outcome, error) {
	lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	target := p.Navigation.Target

	var (
		list   loader.Result
		outlet Outlet
	)
	g, gctx := errgroup.WithContext(lctx)
	g.Go(func() error {
		var err error
		list, err = s.loader.Load(gctx, target.Term())
		return err
	})
	g.Go(func() error {
		var err error
		outlet, err = loadOutlet(gctx, s.store, target)
		return err
	})

	if err := g.Wait(); err != nil {
		if !s.tracker.Abort(p.Navigation.ID, func() { s.setFailure(err) }) {
			s.logger.Debug("stale navigation failed", "id", p.Navigation.ID, "error", err)
			return Outcome{}, core.ErrStaleNavigation
		}
		s.logger.Warn("navigation failed", "id", p.Navigation.ID, "target", target.String(), "error", err)
		return Outcome{}, err
	}

	var out Outcome
	settled := s.tracker.Settle(p.Navigation.ID, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.loader.Commit(list)
		s.query.Commit(target)
		value, changed := s.search.Settled(target.Term())
		s.outlet = outlet
		s.failure = ""

		out = Outcome{
			Location:     target,
			History:      p.History,
			InputValue:   value,
			InputChanged: changed,
		}
	})
	if !settled {
		s.logger.Debug("stale navigation discarded", "id", p.Navigation.ID, "target", target.String())
		return Outcome{}, core.ErrStaleNavigation
	}

	s.logger.Debug("navigation settled", "id", p.Navigation.ID, "target", target.String(), "contacts", len(list.Contacts))
	return out, nil
}

// Visit is BeginVisit followed by Complete.
func (s *Shell) Visit(ctx context.Context, loc query.Location, mode query.HistoryMode) (Outcome, error) {
	return s.Complete(ctx, s.BeginVisit(loc, mode))
}

// Submit runs a mutating navigation toward target. On success the view
// navigates to the action's redirect, pushing a history entry unless the
// redirect is the location already shown. On failure the view returns to
// Idle without navigating and the list is left untouched.
func (s *Shell) Submit(ctx context.Context, target query.Location, action Action) (Outcome, error) {
	nav := s.tracker.Start(navigation.KindSubmit, target)
	current := s.query.Current()
	s.logger.Debug("submission started", "id", nav.ID, "target", target.String())

	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	redirect, err := action(actx, s.mutations, current)
	cancel()

	if err != nil {
		if !s.tracker.Abort(nav.ID, func() { s.setFailure(err) }) {
			return Outcome{}, core.ErrStaleNavigation
		}
		return Outcome{}, err
	}

	next, ok := s.tracker.Redirect(nav.ID, redirect)
	if !ok {
		s.logger.Debug("redirect skipped for superseded submission", "id", nav.ID, "redirect", redirect.String())
		return Outcome{}, core.ErrStaleNavigation
	}

	mode := query.HistoryPush
	if redirect.Equal(current) {
		mode = query.HistoryNone
	}
	return s.Complete(ctx, Pending{Navigation: next, History: mode})
}

// Snapshot returns the committed state together with the navigation state.
func (s *Shell) Snapshot() Snapshot {
	nav := s.tracker.State()

	s.mu.RLock()
	defer s.mu.RUnlock()

	list, loaded := s.loader.Current()
	return Snapshot{
		ViewID:     s.id,
		Location:   s.query.Current(),
		List:       list,
		Loaded:     loaded,
		Navigation: nav,
		InputValue: s.search.Value(),
		Outlet:     s.outlet,
		Failure:    s.failure,
	}
}

// State returns the navigation state.
func (s *Shell) State() navigation.State {
	return s.tracker.State()
}

// Failure returns the message of the last failed navigation, if any.
func (s *Shell) Failure() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure
}

// Subscribe returns a channel receiving every navigation state change.
func (s *Shell) Subscribe() <-chan navigation.State {
	return s.tracker.Subscribe()
}

// Unsubscribe releases a channel returned by Subscribe.
func (s *Shell) Unsubscribe(ch <-chan navigation.State) {
	s.tracker.Unsubscribe(ch)
}

func (s *Shell) setFailure(err error) {
	s.mu.Lock()
	s.failure = FailureMessage(err)
	s.mu.Unlock()
}

// FailureMessage renders err for the failure indicator.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, core.ErrNotFound):
		return "That contact no longer exists."
	case errors.Is(err, core.ErrBackendUnavailable):
		return "Could not reach the contact service. Try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "The contact service took too long to answer. Try again."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
