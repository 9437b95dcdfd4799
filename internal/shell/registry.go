package shell

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/contacts/internal/query"
)

// DefaultViewTTL is how long an unused view is kept.
const DefaultViewTTL = 30 * time.Minute

// Registry maps (client, view) pairs to their shells.
// A view is one rendered document in one browser tab.
type Registry struct {
	cfg    Config
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	views map[string]*entry
}

type entry struct {
	client   string
	shell    *Shell
	lastSeen time.Time
	streams  int
}

// NewRegistry creates an empty registry. A non-positive ttl uses DefaultViewTTL.
func NewRegistry(cfg Config, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		cfg:    cfg,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		views:  make(map[string]*entry),
	}
}

// Open creates a shell for a new document of client requested at loc.
func (r *Registry) Open(client string, loc query.Location) *Shell {
	sh := New(uuid.NewString(), r.cfg, loc)

	r.mu.Lock()
	r.views[sh.ID()] = &entry{client: client, shell: sh, lastSeen: r.now()}
	n := len(r.views)
	r.mu.Unlock()

	r.logger.Debug("view opened", "view", sh.ID(), "views", n)
	return sh
}

// Lookup returns the shell of view if it belongs to client.
func (r *Registry) Lookup(client, view string) (*Shell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[view]
	if !ok || e.client != client {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.shell, true
}

// Acquire is Lookup for long-lived streams. The view is not swept until
// release is called.
func (r *Registry) Acquire(client, view string) (sh *Shell, release func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, found := r.views[view]
	if !found || e.client != client {
		return nil, nil, false
	}
	e.streams++
	e.lastSeen = r.now()

	var once sync.Once
	release = func() {
		once.Do(func() {
			r.mu.Lock()
			e.streams--
			e.lastSeen = r.now()
			r.mu.Unlock()
		})
	}
	return e.shell, release, true
}

// Close drops a view.
func (r *Registry) Close(client, view string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.views[view]; ok && e.client == client {
		delete(r.views, view)
	}
}

// Len returns the number of open views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep drops views idle for longer than the ttl and without open streams.
// Returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, e := range r.views {
		if e.streams == 0 && e.lastSeen.Before(cutoff) {
			delete(r.views, id)
			n++
		}
	}
	return n
}

// Run sweeps idle views periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	interval := r.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("idle views swept", "count", n, "remaining", r.Len())
			}
		}
	}
}
