package core

// SearchTerm is the optional search string carried by the `q` URL parameter.
//
// The zero value is the absent term: no search has ever been performed.
// A present term may be empty, which means the search was cleared. The two
// states drive different history behavior and must not be conflated.
type SearchTerm struct {
	value string
	set   bool
}

// NoTerm returns the absent term.
func NoTerm() SearchTerm {
	return SearchTerm{}
}

// TermOf returns a present term holding s, including the empty string.
func TermOf(s string) SearchTerm {
	return SearchTerm{value: s, set: true}
}

// IsSet reports whether the term is present.
func (t SearchTerm) IsSet() bool { return t.set }

// Value returns the term's text. The absent term has an empty value.
func (t SearchTerm) Value() string { return t.value }

// Filters reports whether the term restricts a contact listing.
// Both the absent and the empty term list every contact.
func (t SearchTerm) Filters() bool { return t.set && t.value != "" }

// Equal reports whether two terms have the same presence and value.
func (t SearchTerm) Equal(o SearchTerm) bool {
	return t.set == o.set && t.value == o.value
}

// String renders the term for logs.
func (t SearchTerm) String() string {
	if !t.set {
		return "<none>"
	}
	return `"` + t.value + `"`
}
