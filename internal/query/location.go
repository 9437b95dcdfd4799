// Package query holds the URL side of the search: the optional `q` term,
// locations, the push-vs-replace history decision and the committed
// location of a view.
package query

import (
	"fmt"
	"net/url"

	"github.com/leapstack-labs/contacts/pkg/core"
)

// Param is the query parameter that carries the search term.
const Param = "q"

// ListPath is the list route every search navigates to.
const ListPath = "/"

// TermFromValues extracts the search term from query values.
// A missing parameter yields the absent term; `q=` yields the empty term.
func TermFromValues(v url.Values) core.SearchTerm {
	vals, ok := v[Param]
	if !ok || len(vals) == 0 {
		return core.NoTerm()
	}
	return core.TermOf(vals[0])
}

// Location is a path plus its query parameters.
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation parses a path with an optional query string.
// Scheme and host are ignored; an empty path becomes "/".
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid location %q: %w", raw, err)
	}
	return FromURL(u), nil
}

// FromURL converts a request URL into a Location.
func FromURL(u *url.URL) Location {
	path := u.Path
	if path == "" {
		path = "/"
	}
	return Location{Path: path, Query: u.Query()}
}

// Root returns the list route without a search term.
func Root() Location {
	return Location{Path: ListPath}
}

// Term returns the location's search term.
func (l Location) Term() core.SearchTerm {
	return TermFromValues(l.Query)
}

// HasTerm reports whether the `q` parameter is present, even if empty.
func (l Location) HasTerm() bool {
	return l.Term().IsSet()
}

// WithTerm returns a copy of l with `q` set to t, or removed when t is absent.
func (l Location) WithTerm(t core.SearchTerm) Location {
	q := url.Values{}
	for k, v := range l.Query {
		q[k] = append([]string(nil), v...)
	}
	if t.IsSet() {
		q.Set(Param, t.Value())
	} else {
		q.Del(Param)
	}
	return Location{Path: l.Path, Query: q}
}

// String renders the location as a path with an encoded query.
// An empty-but-present term renders as `?q=`.
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "/"
	}
	if len(l.Query) == 0 {
		return path
	}
	return path + "?" + l.Query.Encode()
}

// Equal reports whether two locations render identically.
func (l Location) Equal(o Location) bool {
	return l.String() == o.String()
}
