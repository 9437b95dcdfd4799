package view

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/contacts/internal/mutation"
	"github.com/leapstack-labs/contacts/internal/shell"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// Outlet renders the active sub-route of the detail region.
func Outlet(m Model) templ.Component {
	switch m.Outlet.Route {
	case shell.RouteContact:
		return contactPage(m.Outlet.Contact)
	case shell.RouteEdit:
		return editPage(m.Outlet.Contact)
	case shell.RouteNotFound:
		return notFoundPage()
	default:
		return indexPage()
	}
}

func indexPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<p id="index-page">This is a demo contacts app.<br>`)
		h.raw(`Pick a contact on the left or create a new one.</p>`)
		return h.err
	})
}

func notFoundPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="not-found"><h2>Not found</h2><p>There is no contact at this address.</p></div>`)
		return h.err
	})
}

func contactPage(c core.Contact) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="contact">`)
		if c.Avatar != "" {
			h.raw(`<div><img alt=""`)
			h.attr("src", c.Avatar)
			h.raw(`></div>`)
		}

		h.raw(`<div><h1>`)
		if c.HasName() {
			h.text(c.DisplayName())
		} else {
			h.raw(`<i>No Name</i>`)
		}
		favoriteButton(h, c)
		h.raw(`</h1>`)

		if c.Twitter != "" {
			handle := strings.TrimPrefix(c.Twitter, "@")
			h.raw(`<p><a target="_blank" rel="noreferrer"`)
			h.attr("href", "https://twitter.com/"+handle)
			h.raw(`>`)
			h.text(c.Twitter)
			h.raw(`</a></p>`)
		}
		if c.Notes != "" {
			h.raw(`<p>`)
			h.text(c.Notes)
			h.raw(`</p>`)
		}

		edit := mutation.EditPath(c.ID)
		h.raw(`<div><form method="get"`)
		h.attr("action", edit)
		h.attr("data-on:submit__prevent", "$location = "+JSString(edit)+"; @get('/visit')")
		h.raw(`><button type="submit">Edit</button></form>`)

		destroy := mutation.ContactPath(c.ID) + "/destroy"
		h.raw(`<form method="post"`)
		h.attr("action", destroy)
		h.attr("data-on:submit__prevent",
			"confirm('Please confirm you want to delete this record.') && "+postForm(destroy))
		h.raw(`><button type="submit">Delete</button></form></div>`)

		h.raw(`</div></div>`)
		return h.err
	})
}

func favoriteButton(h *htmlWriter, c core.Contact) {
	action := mutation.ContactPath(c.ID) + "/favorite"
	value, label, star := "true", "Add to favorites", "☆"
	if c.Favorite {
		value, label, star = "false", "Remove from favorites", "★"
	}

	h.raw(`<form method="post"`)
	h.attr("action", action)
	h.attr("data-on:submit__prevent", postForm(action))
	h.raw(`><input type="hidden" name="favorite"`)
	h.attr("value", value)
	h.raw(`><button type="submit"`)
	h.attr("aria-label", label)
	h.raw(`>`)
	h.raw(star)
	h.raw(`</button></form>`)
}

func editPage(c core.Contact) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		action := mutation.EditPath(c.ID)

		h.raw(`<form id="contact-form" method="post"`)
		h.attr("action", action)
		h.attr("data-on:submit__prevent", postForm(action))
		h.raw(`><p><span>Name</span>`)
		input(h, "first", "First", "First name", c.First)
		input(h, "last", "Last", "Last name", c.Last)
		h.raw(`</p><label><span>Twitter</span>`)
		input(h, "twitter", "@jack", "", c.Twitter)
		h.raw(`</label><label><span>Avatar URL</span>`)
		input(h, "avatar", "https://example.com/avatar.jpg", "Avatar URL", c.Avatar)
		h.raw(`</label><label><span>Notes</span><textarea name="notes" rows="6">`)
		h.text(c.Notes)
		h.raw(`</textarea></label><p><button type="submit">Save</button>`)

		h.raw(`<button type="button"`)
		h.attr("data-on:click", "history.back()")
		h.raw(`>Cancel</button></p></form>`)
		return h.err
	})
}

func input(h *htmlWriter, name, placeholder, label, value string) {
	h.raw(`<input type="text"`)
	h.attr("name", name)
	h.attr("placeholder", placeholder)
	if label != "" {
		h.attr("aria-label", label)
	}
	h.attr("value", value)
	h.raw(`>`)
}
