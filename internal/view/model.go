// Package view renders the contacts shell as HTML. Components are pure
// functions of a Model; every decision they show was already made by the
// shell.
package view

import (
	"github.com/leapstack-labs/contacts/internal/mutation"
	"github.com/leapstack-labs/contacts/internal/shell"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// DatastarScript is the client runtime loaded by every page.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Model is the render input of one view.
type Model struct {
	ViewID     string
	Location   string
	Contacts   []core.Contact
	Loaded     bool
	Searching  bool
	Busy       bool
	InputValue string
	Outlet     shell.Outlet
	// PendingPath is the path of the outstanding navigation, if any.
	PendingPath string
	Failure     string
	Dev         bool
}

// FromSnapshot maps a shell snapshot to a render model.
func FromSnapshot(s shell.Snapshot, dev bool) Model {
	m := Model{
		ViewID:     s.ViewID,
		Location:   s.Location.String(),
		Contacts:   s.List.Contacts,
		Loaded:     s.Loaded,
		Searching:  s.Navigation.Searching(),
		Busy:       s.Navigation.DetailPaneBusy(),
		InputValue: s.InputValue,
		Outlet:     s.Outlet,
		Failure:    s.Failure,
		Dev:        dev,
	}
	if m.Busy {
		m.PendingPath = s.Navigation.Target.Path
	}
	return m
}

// Signals are the datastar signals a view starts with.
type Signals struct {
	View      string `json:"view"`
	Q         string `json:"q"`
	Location  string `json:"location"`
	Searching bool   `json:"searching"`
	Busy      bool   `json:"busy"`
	Failure   string `json:"failure"`
}

// InitialSignals returns the signals embedded in the page.
func (m Model) InitialSignals() Signals {
	return Signals{
		View:      m.ViewID,
		Q:         m.InputValue,
		Location:  m.Location,
		Searching: m.Searching,
		Busy:      m.Busy,
		Failure:   m.Failure,
	}
}

// linkClass returns the NavLink-style class of a list entry.
func (m Model) linkClass(c core.Contact) string {
	path := mutation.ContactPath(c.ID)
	switch {
	case m.PendingPath == path || m.PendingPath == mutation.EditPath(c.ID):
		return "pending"
	case !m.Busy && m.Outlet.Contact.ID == c.ID &&
		(m.Outlet.Route == shell.RouteContact || m.Outlet.Route == shell.RouteEdit):
		return "active"
	default:
		return ""
	}
}
