package shell

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// Route names the sub-route rendered in the detail region.
type Route int

const (
	// RouteIndex is the welcome text shown at "/".
	RouteIndex Route = iota
	// RouteContact shows one contact.
	RouteContact
	// RouteEdit shows the edit form of one contact.
	RouteEdit
	// RouteNotFound covers unknown paths and missing contacts.
	RouteNotFound
)

func (r Route) String() string {
	switch r {
	case RouteContact:
		return "contact"
	case RouteEdit:
		return "edit"
	case RouteNotFound:
		return "not-found"
	default:
		return "index"
	}
}

// Outlet is the loaded content of the detail region.
type Outlet struct {
	Route   Route
	Contact core.Contact
}

const (
	patternIndex   = "/"
	patternContact = "/contacts/{id}"
	patternEdit    = "/contacts/{id}/edit"
)

var outletRoutes = func() *chi.Mux {
	noop := func(http.ResponseWriter, *http.Request) {}
	r := chi.NewRouter()
	r.Get(patternIndex, noop)
	r.Get(patternContact, noop)
	r.Get(patternEdit, noop)
	return r
}()

// MatchRoute resolves a path to its sub-route and contact id.
func MatchRoute(path string) (Route, string) {
	rctx := chi.NewRouteContext()
	if !outletRoutes.Match(rctx, http.MethodGet, path) {
		return RouteNotFound, ""
	}
	switch rctx.RoutePattern() {
	case patternIndex:
		return RouteIndex, ""
	case patternContact:
		return RouteContact, rctx.URLParam("id")
	case patternEdit:
		return RouteEdit, rctx.URLParam("id")
	default:
		return RouteNotFound, ""
	}
}

// loadOutlet fetches what the detail region of loc needs. A missing
// contact is a not-found outlet, not an error.
func loadOutlet(ctx context.Context, store core.ContactStore, loc query.Location) (Outlet, error) {
	route, id := MatchRoute(loc.Path)
	if route == RouteIndex || route == RouteNotFound {
		return Outlet{Route: route}, nil
	}

	c, err := store.GetContact(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return Outlet{Route: RouteNotFound}, nil
	}
	if err != nil {
		if errors.Is(err, core.ErrBackendUnavailable) {
			return Outlet{}, err
		}
		return Outlet{}, core.Unavailable("get contact", err)
	}
	return Outlet{Route: route, Contact: c}, nil
}
