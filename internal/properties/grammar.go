// Package properties maps CSS property names to the value grammar that
// validates them.
package properties

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/cssval/internal/collections"
	"bennypowers.dev/cssval/token"
	tp "bennypowers.dev/cssval/tokenparser"
	"bennypowers.dev/cssval/value"
)

// Keyword is a value that is a bare keyword outside the value grammar,
// such as auto or inherit
type Keyword string

func (k Keyword) String() string {
	return string(k)
}

// Grammar is a named root rule whose values render back to CSS
type Grammar struct {
	Name   string
	parser tp.Parser[fmt.Stringer]
}

// Parse parses the whole of input
func (g Grammar) Parse(input string) (fmt.Stringer, error) {
	return g.parser.ParseToEnd(input)
}

// ParseList parses the rest of an already tokenized list, which lets the
// caller set the list's nesting bound
func (g Grammar) ParseList(l *token.List) (fmt.Stringer, error) {
	return g.parser.ParseListToEnd(l)
}

func grammar[T fmt.Stringer](name string, p tp.Parser[T]) Grammar {
	return Grammar{
		Name:   name,
		parser: tp.Map(p, func(v T) fmt.Stringer { return v }).Named(name),
	}
}

// withKeywords extends g with bare keywords, which are tried first
func withKeywords(g Grammar, keywords ...string) Grammar {
	if len(keywords) == 0 {
		return g
	}
	table := collections.NewKeywords(keywords...)
	kw := tp.Map(tp.KeywordOf("keyword", table), func(k string) fmt.Stringer { return Keyword(k) })
	return Grammar{
		Name:   g.Name,
		parser: tp.OneOf(g.Name, kw, g.parser),
	}
}

var grammars = map[string]Grammar{}

func register(g Grammar) {
	grammars[g.Name] = g
}

func init() {
	register(grammar("length", value.ParseLength()))
	register(grammar("non-negative-length", value.ParseNonNegativeLength()))
	register(grammar("percentage", value.ParsePercentage()))
	register(grammar("length-percentage", value.ParseLengthPercentage()))
	register(grammar("non-negative-length-percentage", value.ParseNonNegativeLengthPercentage()))
	register(grammar("angle", value.ParseAngle()))
	register(grammar("alpha-value", value.ParseAlphaValue()))
	register(grammar("position", value.ParsePosition()))
	register(grammar("color", value.ParseColor()))
	register(grammar("basic-shape", value.ParseBasicShape()))
	register(grammar("border-radius", value.ParseBorderRadiusShorthand()))
	register(grammar("border-corner-radius", value.ParseBorderRadiusIndividual()))
	register(grammar("shadow", value.ParseBoxShadow()))
	register(grammar("box-shadow", value.ParseBoxShadowList()))
}

// GrammarByName returns the root grammar called name, ignoring case
func GrammarByName(name string) (Grammar, bool) {
	g, ok := grammars[strings.ToLower(name)]
	return g, ok
}

// Grammars returns the names of all root grammars in sorted order
func Grammars() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
