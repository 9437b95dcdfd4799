package state

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/leapstack-labs/contacts/pkg/core"
)

// ranked is a contact with its insertion rank, which breaks ties between
// equal last names.
type ranked struct {
	contact core.Contact
	seq     uint64
}

// arrange keeps the entries whose first or last name contains term and
// orders them by last name, then rank. Matching and ordering both ignore
// case and diacritics, so "jose" finds "José" and "bob" sorts before "Zed".
// Every backend lists through here.
func arrange(tag language.Tag, term core.SearchTerm, entries []ranked) []core.Contact {
	if term.Filters() {
		// Matchers and collators carry scratch buffers; build one per call.
		matcher := search.New(tag, search.Loose, search.IgnoreCase)
		pattern := matcher.CompileString(term.Value())
		kept := entries[:0]
		for _, e := range entries {
			if matches(pattern, e.contact.First) || matches(pattern, e.contact.Last) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	col := collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(entries, func(i, j int) bool {
		if c := col.CompareString(entries[i].contact.Last, entries[j].contact.Last); c != 0 {
			return c < 0
		}
		return entries[i].seq < entries[j].seq
	})

	out := make([]core.Contact, len(entries))
	for i, e := range entries {
		out[i] = e.contact
	}
	return out
}

func matches(p *search.Pattern, s string) bool {
	if s == "" {
		return false
	}
	start, _ := p.IndexString(s)
	return start >= 0
}
