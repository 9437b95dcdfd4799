package view

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/contacts/internal/loader"
	"github.com/leapstack-labs/contacts/internal/navigation"
	"github.com/leapstack-labs/contacts/internal/query"
	"github.com/leapstack-labs/contacts/internal/shell"
	"github.com/leapstack-labs/contacts/pkg/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestContactNav(t *testing.T) {
	tests := []struct {
		name     string
		contacts []core.Contact
		unloaded bool
		want     []string
		notWant  []string
	}{
		{
			name:     "empty list",
			contacts: []core.Contact{},
			want:     []string{`<i>No contacts</i>`},
			notWant:  []string{`<ul>`},
		},
		{
			name:     "never loaded",
			contacts: nil,
			unloaded: true,
			want:     []string{`<nav id="contact-nav"></nav>`},
			notWant:  []string{`No contacts`},
		},
		{
			name:     "nameless contact",
			contacts: []core.Contact{{ID: "1"}},
			want:     []string{`<i>No Name</i>`, `href="/contacts/1"`},
			notWant:  []string{`★`, `No contacts`},
		},
		{
			name:     "favorite with full name",
			contacts: []core.Contact{{ID: "2", First: "Ada", Last: "Lovelace", Favorite: true}},
			want:     []string{`Ada Lovelace <span>★</span>`},
			notWant:  []string{`No Name`},
		},
		{
			name:     "only last name",
			contacts: []core.Contact{{ID: "3", Last: "Hopper"}},
			want:     []string{`>Hopper</a>`},
		},
		{
			name:     "names are escaped",
			contacts: []core.Contact{{ID: "4", First: "<b>Bob</b>"}},
			want:     []string{`&lt;b&gt;Bob&lt;/b&gt;`},
			notWant:  []string{`<b>Bob</b>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := render(t, ContactNav(Model{Contacts: tt.contacts, Loaded: !tt.unloaded}))
			assert.True(t, strings.HasPrefix(body, `<nav id="contact-nav">`))
			for _, want := range tt.want {
				assert.Contains(t, body, want)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, body, nw)
			}
		})
	}
}

func TestContactNav_OrderAndLinkState(t *testing.T) {
	m := Model{
		Contacts: []core.Contact{{ID: "a", First: "First"}, {ID: "b", First: "Second"}},
		Outlet:   shell.Outlet{Route: shell.RouteContact, Contact: core.Contact{ID: "b"}},
	}
	body := render(t, ContactNav(m))
	assert.Less(t, strings.Index(body, "First"), strings.Index(body, "Second"))
	assert.Contains(t, body, `href="/contacts/b" class="active"`)

	m.Busy = true
	m.PendingPath = "/contacts/a"
	body = render(t, ContactNav(m))
	assert.Contains(t, body, `href="/contacts/a" class="pending"`)
	assert.NotContains(t, body, `class="active"`)
}

func TestSidebar_SearchingState(t *testing.T) {
	idle := render(t, Sidebar(Model{InputValue: "al"}))
	assert.Contains(t, idle, `id="q"`)
	assert.Contains(t, idle, `value="al"`)
	assert.Contains(t, idle, `<div id="search-spinner" aria-hidden="true" hidden`)
	assert.NotContains(t, idle, `class="loading"`)
	assert.Contains(t, idle, `<button type="submit">New</button>`)

	searching := render(t, Sidebar(Model{InputValue: "al", Searching: true}))
	assert.Contains(t, searching, `value="al" class="loading"`)
	assert.NotContains(t, searching, `aria-hidden="true" hidden`)
}

func TestDetail_BusyAndFailure(t *testing.T) {
	idle := render(t, Detail(Model{}))
	assert.True(t, strings.HasPrefix(idle, `<div id="detail" data-class:loading`))
	assert.Contains(t, idle, `id="index-page"`)
	assert.Contains(t, idle, `<div id="failure" role="alert" hidden`)

	busy := render(t, Detail(Model{Busy: true, Failure: "Could not reach the contact service."}))
	assert.True(t, strings.HasPrefix(busy, `<div id="detail" class="loading"`))
	assert.Contains(t, busy, `Could not reach the contact service.</div>`)
	assert.NotContains(t, busy, `role="alert" hidden`)
}

func TestOutlet(t *testing.T) {
	c := core.Contact{ID: "7", First: "Alan", Last: "Turing", Twitter: "@alan", Notes: "enigma", Favorite: true}

	tests := []struct {
		name   string
		outlet shell.Outlet
		want   []string
	}{
		{"index", shell.Outlet{Route: shell.RouteIndex}, []string{`id="index-page"`}},
		{"not found", shell.Outlet{Route: shell.RouteNotFound}, []string{`Not found`}},
		{"contact", shell.Outlet{Route: shell.RouteContact, Contact: c}, []string{
			`<h1>Alan Turing`,
			`href="https://twitter.com/alan"`,
			`enigma`,
			`action="/contacts/7/favorite"`,
			`name="favorite" value="false"><button type="submit" aria-label="Remove from favorites">★`,
			`action="/contacts/7/destroy"`,
			`action="/contacts/7/edit"`,
		}},
		{"nameless contact", shell.Outlet{Route: shell.RouteContact, Contact: core.Contact{ID: "8"}}, []string{
			`<h1><i>No Name</i>`,
			`name="favorite" value="true"><button type="submit" aria-label="Add to favorites">☆`,
		}},
		{"edit", shell.Outlet{Route: shell.RouteEdit, Contact: c}, []string{
			`id="contact-form"`,
			`name="first" placeholder="First" aria-label="First name" value="Alan"`,
			`name="last" placeholder="Last" aria-label="Last name" value="Turing"`,
			`<textarea name="notes" rows="6">enigma</textarea>`,
			`@post(&#34;/contacts/7/edit&#34;`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := render(t, Outlet(Model{Outlet: tt.outlet}))
			for _, want := range tt.want {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestPage(t *testing.T) {
	loc, err := query.ParseLocation("/?q=ad")
	require.NoError(t, err)

	snap := shell.Snapshot{
		ViewID:     "view-9",
		Location:   loc,
		List:       loader.Result{Contacts: []core.Contact{{ID: "1", First: "Ada"}}, Term: core.TermOf("ad")},
		Loaded:     true,
		InputValue: "ad",
		Outlet:     shell.Outlet{Route: shell.RouteIndex},
	}

	body := render(t, Page(FromSnapshot(snap, true)))
	for _, want := range []string{
		"<!doctype html>",
		"<title>Contacts</title>",
		DatastarScript,
		`data-signals="{&#34;view&#34;:&#34;view-9&#34;,&#34;q&#34;:&#34;ad&#34;`,
		`data-init="@get(&#39;/events&#39;)"`,
		`id="dev-reload"`,
		`id="sidebar"`,
		`id="contact-nav"`,
		`id="detail"`,
		`value="ad"`,
	} {
		assert.Contains(t, body, want)
	}

	prod := render(t, Page(FromSnapshot(snap, false)))
	assert.NotContains(t, prod, `id="dev-reload"`)
}

func TestFromSnapshot(t *testing.T) {
	target, err := query.ParseLocation("/?q=x")
	require.NoError(t, err)

	m := FromSnapshot(shell.Snapshot{
		Navigation: navigation.State{Phase: navigation.Loading, Target: target, ID: 3},
		InputValue: "x",
	}, false)

	assert.True(t, m.Searching)
	assert.True(t, m.Busy)
	assert.Equal(t, "/", m.PendingPath)

	sig := m.InitialSignals()
	assert.Equal(t, "x", sig.Q)
	assert.True(t, sig.Searching)
	assert.True(t, sig.Busy)
}

func TestJSString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/contacts/1", `"/contacts/1"`},
		{`say "hi"`, `"say \"hi\""`},
		{"</script>", `"\u003c/script\u003e"`},
		{"a\u2028b", `"a\u2028b"`},
		{"tab\there", `"tab\there"`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, JSString(tt.in))
		})
	}
}
