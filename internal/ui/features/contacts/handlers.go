package contacts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/contacts/internal/mutation"
	"github.com/leapstack-labs/contacts/internal/navigation"
	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/internal/shell"
	"github.com/leapstack-labs/contacts/internal/view"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// Handlers provides HTTP handlers for the contacts feature.
type Handlers struct {
	registry     *shell.Registry
	sessionStore sessions.Store
	logger       *slog.Logger
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(registry *shell.Registry, sessionStore sessions.Store, logger *slog.Logger, isDev bool) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		registry:     registry,
		sessionStore: sessionStore,
		logger:       logger,
		isDev:        isDev,
	}
}

// Page renders a full document for the requested location. Every document
// opens a new view whose first navigation settles before rendering.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientID(w, r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	loc := query.FromURL(r.URL)
	sh := h.registry.Open(client, loc)

	if _, err := sh.Visit(r.Context(), loc, query.HistoryNone); err != nil && !errors.Is(err, core.ErrStaleNavigation) {
		h.logger.Warn("initial load failed", "location", loc.String(), "error", err)
	}

	snap := sh.Snapshot()
	switch {
	case !snap.Loaded:
		w.WriteHeader(http.StatusServiceUnavailable)
	case snap.Outlet.Route == shell.RouteNotFound:
		w.WriteHeader(http.StatusNotFound)
	}
	if err := view.Page(view.FromSnapshot(snap, h.isDev)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Search handles a keystroke in the search input.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	sh, signals, sse, ok := h.navigationRequest(w, r)
	if !ok {
		return
	}
	h.navigate(r.Context(), sse, sh, sh.BeginSearch(signals.Q))
}

// Visit handles an in-app link.
func (h *Handlers) Visit(w http.ResponseWriter, r *http.Request) {
	sh, signals, sse, ok := h.navigationRequest(w, r)
	if !ok {
		return
	}

	loc, err := query.ParseLocation(signals.Location)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	mode := query.HistoryPush
	if loc.Equal(sh.Snapshot().Location) {
		mode = query.HistoryReplace
	}
	h.navigate(r.Context(), sse, sh, sh.BeginVisit(loc, mode))
}

// History handles browser back/forward. The browser already moved, so no
// history operation is sent back.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	sh, signals, sse, ok := h.navigationRequest(w, r)
	if !ok {
		return
	}

	loc, err := query.ParseLocation(signals.Location)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	h.navigate(r.Context(), sse, sh, sh.BeginVisit(loc, query.HistoryNone))
}

// Events is the long-lived per-view stream. It pushes the derived
// navigation signals on every transition, so the spinner and the dimmed
// detail pane stay right even when a request was abandoned.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	var signals NavSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}

	client, err := h.clientID(w, r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sh, release, found := h.registry.Acquire(client, signals.View)
	sse := datastar.NewSSE(w, r)
	if !found {
		_ = sse.ExecuteScript("window.location.reload()")
		return
	}
	defer release()

	updates := sh.Subscribe()
	defer sh.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case st := <-updates:
			if err := sse.MarshalAndPatchSignals(chromeSignals(st, sh.Failure())); err != nil {
				h.logger.Debug("event stream closed", "view", sh.ID(), "error", err)
				return
			}
		}
	}
}

// Create handles the New button.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, func(ctx context.Context, d *mutation.Dispatcher, _ query.Location) (query.Location, error) {
		_, target, err := d.CreateContact(ctx)
		return target, err
	})
}

// Update saves the edit form.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	upd := updateFromForm(r)

	h.submit(w, r, func(ctx context.Context, d *mutation.Dispatcher, _ query.Location) (query.Location, error) {
		_, target, err := d.UpdateContact(ctx, id, upd)
		return target, err
	})
}

// Destroy deletes a contact.
func (h *Handlers) Destroy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.submit(w, r, func(ctx context.Context, d *mutation.Dispatcher, _ query.Location) (query.Location, error) {
		return d.DeleteContact(ctx, id)
	})
}

// Favorite sets the favorite flag and revalidates the current location.
func (h *Handlers) Favorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	favorite := r.PostForm.Get("favorite") == "true"

	h.submit(w, r, func(ctx context.Context, d *mutation.Dispatcher, current query.Location) (query.Location, error) {
		_, target, err := d.SetFavorite(ctx, id, favorite, current)
		return target, err
	})
}

// submit runs a mutation for the view named in the request header and
// streams the redirect. Without a view, as with a plain form post, the
// mutation runs on a temporary view and the browser is redirected.
func (h *Handlers) submit(w http.ResponseWriter, r *http.Request, action shell.Action) {
	target := query.FromURL(r.URL)

	viewID := r.Header.Get(view.ViewHeader)
	if viewID == "" {
		h.submitPlain(w, r, target, action)
		return
	}

	client, err := h.clientID(w, r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sh, found := h.registry.Lookup(client, viewID)

	sse := datastar.NewSSE(w, r)
	if !found {
		_ = sse.ExecuteScript("window.location.reload()")
		return
	}

	updates := sh.Subscribe()
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.forwardChrome(sse, sh, updates, stop)
	}()

	out, err := sh.Submit(r.Context(), target, action)
	close(stop)
	<-done
	sh.Unsubscribe(updates)

	h.settle(sse, sh, out, err)
}

func (h *Handlers) submitPlain(w http.ResponseWriter, r *http.Request, target query.Location, action shell.Action) {
	client, err := h.clientID(w, r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	from := query.Root()
	if ref, err := query.ParseLocation(r.Referer()); err == nil && r.Referer() != "" {
		from = ref
	}

	sh := h.registry.Open(client, from)
	defer h.registry.Close(client, sh.ID())

	out, err := sh.Submit(r.Context(), target, action)
	switch {
	case errors.Is(err, core.ErrNotFound):
		http.Error(w, shell.FailureMessage(err), http.StatusNotFound)
	case err != nil:
		http.Error(w, shell.FailureMessage(err), http.StatusServiceUnavailable)
	default:
		http.Redirect(w, r, out.Location.String(), http.StatusSeeOther)
	}
}

// navigationRequest reads the signals and resolves the view of a GET
// navigation. On failure the response is already written.
func (h *Handlers) navigationRequest(w http.ResponseWriter, r *http.Request) (*shell.Shell, NavSignals, *datastar.ServerSentEventGenerator, bool) {
	var signals NavSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return nil, signals, nil, false
	}

	client, err := h.clientID(w, r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, signals, nil, false
	}

	sh, found := h.registry.Lookup(client, signals.View)
	sse := datastar.NewSSE(w, r)
	if !found {
		_ = sse.ExecuteScript("window.location.reload()")
		return nil, signals, nil, false
	}
	return sh, signals, sse, true
}

// navigate patches the pending state, waits for the navigation and
// streams the settled view.
func (h *Handlers) navigate(ctx context.Context, sse *datastar.ServerSentEventGenerator, sh *shell.Shell, p shell.Pending) {
	if err := sse.MarshalAndPatchSignals(chromeSignals(sh.State(), sh.Failure())); err != nil {
		h.logger.Debug("client went away", "view", sh.ID(), "error", err)
	}
	out, err := sh.Complete(ctx, p)
	h.settle(sse, sh, out, err)
}

// forwardChrome streams navigation transitions of sh until stop closes.
func (h *Handlers) forwardChrome(sse *datastar.ServerSentEventGenerator, sh *shell.Shell, updates <-chan navigation.State, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case st := <-updates:
			if err := sse.MarshalAndPatchSignals(chromeSignals(st, sh.Failure())); err != nil {
				h.logger.Debug("client went away", "view", sh.ID(), "error", err)
			}
		}
	}
}

// settle streams the outcome of a navigation. Stale navigations send
// nothing; the newer one owns the page.
func (h *Handlers) settle(sse *datastar.ServerSentEventGenerator, sh *shell.Shell, out shell.Outcome, err error) {
	if errors.Is(err, core.ErrStaleNavigation) {
		return
	}

	snap := sh.Snapshot()
	if err != nil {
		// the previous list stays; only the indicators change
		_ = sse.MarshalAndPatchSignals(chromeSignals(snap.Navigation, snap.Failure))
		return
	}

	m := view.FromSnapshot(snap, h.isDev)
	if err := sse.PatchElementTempl(view.ContactNav(m)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(view.Detail(m)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	if out.InputChanged {
		_ = sse.MarshalAndPatchSignals(InputSignals{Q: out.InputValue})
	}
	_ = sse.MarshalAndPatchSignals(SettledSignals{
		ChromeSignals: chromeSignals(snap.Navigation, snap.Failure),
		Location:      out.Location.String(),
	})

	if script := historyScript(out); script != "" {
		_ = sse.ExecuteScript(script)
	}
}

func chromeSignals(st navigation.State, failure string) ChromeSignals {
	return ChromeSignals{
		Searching: st.Searching(),
		Busy:      st.DetailPaneBusy(),
		Failure:   failure,
	}
}

// historyScript returns the history call for a settled navigation.
func historyScript(out shell.Outcome) string {
	switch out.History {
	case query.HistoryPush:
		return "window.history.pushState(null, '', " + view.JSString(out.Location.String()) + ")"
	case query.HistoryReplace:
		return "window.history.replaceState(null, '', " + view.JSString(out.Location.String()) + ")"
	default:
		return ""
	}
}

func updateFromForm(r *http.Request) core.ContactUpdate {
	field := func(name string) *string {
		if _, ok := r.PostForm[name]; !ok {
			return nil
		}
		v := r.PostForm.Get(name)
		return &v
	}
	return core.ContactUpdate{
		First:   field("first"),
		Last:    field("last"),
		Twitter: field("twitter"),
		Avatar:  field("avatar"),
		Notes:   field("notes"),
	}
}
