// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/contacts/internal/notifier"
	"github.com/leapstack-labs/contacts/internal/shell"
	contactsFeature "github.com/leapstack-labs/contacts/internal/ui/features/contacts"
	"github.com/leapstack-labs/contacts/internal/ui/resources"
)

// Deps are the collaborators shared by all routes.
type Deps struct {
	Registry     *shell.Registry
	SessionStore sessions.Store
	// Reloads fires when static assets change in dev mode.
	Reloads *notifier.Notifier[struct{}]
	Logger  *slog.Logger
	IsDev   bool
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	// Hot reload endpoint for dev mode
	if deps.IsDev {
		setupReload(router, deps.Reloads)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := contactsFeature.SetupRoutes(router, deps.Registry, deps.SessionStore, deps.Logger, deps.IsDev); err != nil {
		return err
	}

	return nil
}

// setupReload serves /reload, a stream that reloads the page once after a
// server restart and again whenever /hotreload is hit or an asset changes.
func setupReload(router chi.Router, reloads *notifier.Notifier[struct{}]) {
	if reloads == nil {
		reloads = notifier.New[struct{}]()
	}
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)

		updates := reloads.Subscribe()
		defer reloads.Unsubscribe(updates)

		select {
		case <-updates:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reloads.Broadcast(struct{}{})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
