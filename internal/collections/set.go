package collections

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Set is a generic set data structure using a map with zero-size values
type Set[T cmp.Ordered] map[T]struct{}

// NewSet creates a new Set with the given initial values
func NewSet[T cmp.Ordered](vs ...T) Set[T] {
	s := Set[T]{}
	s.Add(vs...)
	return s
}

// Add adds one or more values to the set
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has checks if the set contains the given value
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Members returns all values in the set in ascending order
func (s Set[T]) Members() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	slices.Sort(r)
	return r
}

// String returns a string representation of the set
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}

// Keywords is a case-insensitive table of CSS keywords. Each accepted
// spelling maps to the canonical spelling stored in values, so legacy
// aliases (grey, aqua) resolve to one name at lookup time.
type Keywords struct {
	canonical map[string]string
}

// NewKeywords creates a keyword table whose canonical spellings are names
func NewKeywords(names ...string) *Keywords {
	k := &Keywords{canonical: make(map[string]string, len(names))}
	for _, name := range names {
		lower := strings.ToLower(name)
		k.canonical[lower] = lower
	}
	return k
}

// Alias registers alias as an alternative spelling of canonical.
// canonical is added to the table if it is not already present.
func (k *Keywords) Alias(alias, canonical string) *Keywords {
	c := strings.ToLower(canonical)
	k.canonical[c] = c
	k.canonical[strings.ToLower(alias)] = c
	return k
}

// Lookup returns the canonical spelling of word, ignoring ASCII case
func (k *Keywords) Lookup(word string) (string, bool) {
	c, ok := k.canonical[strings.ToLower(word)]
	return c, ok
}

// Has reports whether word is an accepted spelling
func (k *Keywords) Has(word string) bool {
	_, ok := k.Lookup(word)
	return ok
}

// Canonical returns the distinct canonical spellings in ascending order
func (k *Keywords) Canonical() []string {
	seen := NewSet[string]()
	for _, c := range k.canonical {
		seen.Add(c)
	}
	return seen.Members()
}

// Len returns the number of accepted spellings, aliases included
func (k *Keywords) Len() int {
	return len(k.canonical)
}
