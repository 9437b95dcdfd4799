package view

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/contacts/internal/mutation"
	"github.com/leapstack-labs/contacts/internal/ui/resources"
)

// Page renders the full document of a view.
func Page(m Model) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>Contacts</title>`)
		h.raw(`<link rel="stylesheet"`)
		h.attr("href", resources.StaticPath("app.css"))
		h.raw(`>`)
		h.raw(`<script type="module"`)
		h.attr("src", DatastarScript)
		h.raw(`></script></head><body>`)

		h.raw(`<div id="root"`)
		h.jsonAttr("data-signals", m.InitialSignals())
		h.attr("data-init", "@get('/events')")
		h.attr("data-on:popstate__window", "$location = window.location.pathname + window.location.search; @get('/history')")
		h.raw(`>`)
		if m.Dev {
			h.raw(`<div id="dev-reload"`)
			h.attr("data-init", "@get('/reload', {retryMaxCount: 1000})")
			h.raw(`></div>`)
		}
		if h.err != nil {
			return h.err
		}

		if err := Sidebar(m).Render(ctx, w); err != nil {
			return err
		}
		if err := Detail(m).Render(ctx, w); err != nil {
			return err
		}

		h.raw(`</div></body></html>`)
		return h.err
	})
}

// Sidebar renders the search form, the New button and the contact list.
func Sidebar(m Model) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="sidebar"><h1>Contacts</h1><div>`)

		h.raw(`<form id="search-form" role="search" action="/" method="get"`)
		h.attr("data-on:submit__prevent", "")
		h.raw(`><input id="q" aria-label="Search contacts" placeholder="Search" type="search" name="q"`)
		h.attr("value", m.InputValue)
		h.classAttr(loadingClass(m.Searching))
		h.attr("data-bind:q", "")
		h.attr("data-class:loading", "$searching")
		h.attr("data-on:input", "@get('/search')")
		h.raw(`><div id="search-spinner" aria-hidden="true"`)
		if !m.Searching {
			h.raw(` hidden`)
		}
		h.attr("data-show", "$searching")
		h.raw(`></div><div class="sr-only" aria-live="polite"></div></form>`)

		h.raw(`<form id="new-contact" method="post" action="/contacts"`)
		h.attr("data-on:submit__prevent", postForm("/contacts"))
		h.raw(`><button type="submit">New</button></form>`)

		h.raw(`</div>`)
		if h.err != nil {
			return h.err
		}
		if err := ContactNav(m).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ContactNav renders the ordered contact list.
func ContactNav(m Model) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<nav id="contact-nav">`)
		if len(m.Contacts) == 0 {
			// A list that never loaded is unknown, not empty.
			if m.Loaded {
				h.raw(`<p><i>No contacts</i></p>`)
			}
			h.raw(`</nav>`)
			return h.err
		}

		h.raw(`<ul>`)
		for _, c := range m.Contacts {
			path := mutation.ContactPath(c.ID)
			h.raw(`<li><a`)
			h.attr("href", path)
			h.classAttr(m.linkClass(c))
			h.attr("data-on:click__prevent", "$location = "+JSString(path)+"; @get('/visit')")
			h.raw(`>`)
			if c.HasName() {
				h.text(c.DisplayName())
			} else {
				h.raw(`<i>No Name</i>`)
			}
			if c.Favorite {
				h.raw(` <span>★</span>`)
			}
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav>`)
		return h.err
	})
}

// Detail renders the detail region with the active sub-route.
func Detail(m Model) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="detail"`)
		h.classAttr(loadingClass(m.Busy))
		h.attr("data-class:loading", "$busy")
		h.raw(`>`)
		if h.err != nil {
			return h.err
		}
		if err := Failure(m).Render(ctx, w); err != nil {
			return err
		}
		if err := Outlet(m).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</div>`)
		return h.err
	})
}

// Failure renders the non-blocking failure indicator.
func Failure(m Model) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="failure" role="alert"`)
		if m.Failure == "" {
			h.raw(` hidden`)
		}
		h.attr("data-show", "$failure != ''")
		h.attr("data-text", "$failure")
		h.raw(`>`)
		h.text(m.Failure)
		h.raw(`</div>`)
		return h.err
	})
}

// loadingClass maps a flag to the "loading" visual modifier.
func loadingClass(on bool) string {
	if on {
		return "loading"
	}
	return ""
}
