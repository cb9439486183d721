// Package entity holds the static table of HTML/XML named character
// references. The table is built on first use and never modified afterwards,
// so lookups are safe from any number of goroutines without locking.
package entity

import "sync"

// Reference is one named character reference.
type Reference struct {
	// Name is the mnemonic between '&' and ';', e.g. "amp". Case-sensitive.
	Name string
	// Codepoint is the Unicode scalar value the reference stands for.
	Codepoint rune
	// Terminated reports whether the reference is only recognised when it
	// ends in ';'.
	Terminated bool
}

type index struct {
	byName      map[string]Reference
	byCodepoint map[rune]string
}

var load = sync.OnceValue(func() *index {
	idx := &index{
		byName:      make(map[string]Reference, len(references)),
		byCodepoint: make(map[rune]string, len(references)),
	}
	for _, ref := range references {
		idx.byName[ref.Name] = ref
		// First declaration wins, so "amp" is preferred over "AMP".
		if _, ok := idx.byCodepoint[ref.Codepoint]; !ok {
			idx.byCodepoint[ref.Codepoint] = ref.Name
		}
	}
	return idx
})

// Get returns the reference registered under name.
func Get(name string) (Reference, bool) {
	ref, ok := load().byName[name]
	return ref, ok
}

// Lookup returns the codepoint for a reference name. Names are case-sensitive:
// "amp" and "AMP" are both present, "Amp" is not.
func Lookup(name string) (rune, bool) {
	ref, ok := load().byName[name]
	return ref.Codepoint, ok
}

// Name returns the canonical reference name for r.
func Name(r rune) (string, bool) {
	name, ok := load().byCodepoint[r]
	return name, ok
}

// All returns a copy of the table in declaration order.
func All() []Reference {
	out := make([]Reference, len(references))
	copy(out, references)
	return out
}

// Len returns the number of references in the table.
func Len() int { return len(references) }
