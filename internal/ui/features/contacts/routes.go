package contacts

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/contacts/internal/shell"
)

// SetupRoutes configures routes for the contacts feature.
func SetupRoutes(
	router chi.Router,
	registry *shell.Registry,
	sessionStore sessions.Store,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(registry, sessionStore, logger, isDev)

	// Documents
	router.Get("/", handlers.Page)
	router.Get("/contacts/{id}", handlers.Page)
	router.Get("/contacts/{id}/edit", handlers.Page)

	// Navigations of an open view
	router.Get("/search", handlers.Search)
	router.Get("/visit", handlers.Visit)
	router.Get("/history", handlers.History)
	router.Get("/events", handlers.Events)

	// Mutations
	router.Post("/contacts", handlers.Create)
	router.Post("/contacts/{id}/edit", handlers.Update)
	router.Post("/contacts/{id}/destroy", handlers.Destroy)
	router.Post("/contacts/{id}/favorite", handlers.Favorite)

	return nil
}
