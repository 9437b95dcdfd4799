package core

import (
	"strings"
	"time"
)

// Contact is a single address book entry as owned by the backend.
// Callers only ever hold transient, read-only copies.
type Contact struct {
	ID        string    `json:"id" yaml:"id"`
	First     string    `json:"first,omitempty" yaml:"first"`
	Last      string    `json:"last,omitempty" yaml:"last"`
	Favorite  bool      `json:"favorite,omitempty" yaml:"favorite"`
	Twitter   string    `json:"twitter,omitempty" yaml:"twitter"`
	Avatar    string    `json:"avatar,omitempty" yaml:"avatar"`
	Notes     string    `json:"notes,omitempty" yaml:"notes"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}

// HasName reports whether either name part is present.
func (c Contact) HasName() bool {
	return c.First != "" || c.Last != ""
}

// DisplayName joins the present name parts with a single space.
// Returns an empty string when both parts are absent.
func (c Contact) DisplayName() string {
	return strings.TrimSpace(c.First + " " + c.Last)
}

// ContactUpdate holds the editable fields of a contact.
// Nil fields are left unchanged.
type ContactUpdate struct {
	First    *string
	Last     *string
	Twitter  *string
	Avatar   *string
	Notes    *string
	Favorite *bool
}

// Apply returns a copy of c with the non-nil fields of u written over it.
func (u ContactUpdate) Apply(c Contact) Contact {
	if u.First != nil {
		c.First = *u.First
	}
	if u.Last != nil {
		c.Last = *u.Last
	}
	if u.Twitter != nil {
		c.Twitter = *u.Twitter
	}
	if u.Avatar != nil {
		c.Avatar = *u.Avatar
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
	if u.Favorite != nil {
		c.Favorite = *u.Favorite
	}
	return c
}
