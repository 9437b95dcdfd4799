// Package ui serves the contacts app: documents, SSE navigation streams and
// static assets.
package ui

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/contacts/internal/notifier"
	"github.com/leapstack-labs/contacts/internal/shell"
	"github.com/leapstack-labs/contacts/internal/ui/router"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// Server is the main UI server.
type Server struct {
	store        core.ContactStore
	registry     *shell.Registry
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	dev          bool
	staticDir    string
	logger       *slog.Logger
	reloads      *notifier.Notifier[struct{}]
}

// Config holds configuration for the UI server.
type Config struct {
	Store         core.ContactStore
	Port          int
	Watch         bool
	Dev           bool
	SessionSecret string
	LoadTimeout   time.Duration
	ViewTTL       time.Duration
	Logger        *slog.Logger
	// StaticDir is watched for changes when Watch is set.
	StaticDir string
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		store: cfg.Store,
		registry: shell.NewRegistry(shell.Config{
			Store:       cfg.Store,
			Logger:      logger,
			LoadTimeout: cfg.LoadTimeout,
		}, cfg.ViewTTL),
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		dev:          cfg.Dev,
		staticDir:    cfg.StaticDir,
		logger:       logger,
		reloads:      notifier.New[struct{}](),
	}
}

// Handler builds the HTTP handler with all routes and middleware.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, router.Deps{
		Registry:     s.registry,
		SessionStore: s.sessionStore,
		Reloads:      s.reloads,
		Logger:       s.logger,
		IsDev:        s.IsDev(),
	}); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch && s.staticDir != "" {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Drop views of closed tabs
	eg.Go(func() error {
		return s.registry.Run(egctx)
	})

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev returns true if running in development mode.
func (s *Server) IsDev() bool {
	return s.dev
}

// Registry returns the server's view registry.
func (s *Server) Registry() *shell.Registry {
	return s.registry
}

// watchFiles reloads connected dev pages when a static asset changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.staticDir); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isAsset(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("static asset changed, reloading pages", "file", event.Name)
				s.reloads.Broadcast(struct{}{})
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isAsset(name string) bool {
	switch filepath.Ext(name) {
	case ".css", ".js", ".svg", ".png", ".ico":
		return true
	default:
		return false
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
