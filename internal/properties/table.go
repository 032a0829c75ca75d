package properties

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/cssval/internal/collections"
)

// ErrUnknownGrammar is returned for a property mapped to a grammar that does not exist
var ErrUnknownGrammar = errors.New("unknown grammar")

// cssWideKeywords are accepted by every property
var cssWideKeywords = collections.NewSet("inherit", "initial", "unset", "revert", "revert-layer")

// IsCSSWideKeyword reports whether v is one of the keywords every property accepts
func IsCSSWideKeyword(v string) bool {
	return cssWideKeywords.Has(strings.ToLower(strings.TrimSpace(v)))
}

type entry struct {
	grammar  string
	keywords []string
}

var (
	sizing    = []string{"auto", "min-content", "max-content", "fit-content"}
	maxSizing = []string{"none", "min-content", "max-content", "fit-content"}
)

// defaults is the built-in property table
var defaults = map[string]entry{
	"border-radius": {grammar: "border-radius"},
	"box-shadow":    {grammar: "box-shadow"},
	"clip-path":     {grammar: "basic-shape", keywords: []string{"none"}},
	"shape-outside": {grammar: "basic-shape", keywords: []string{"none"}},

	"opacity":        {grammar: "alpha-value"},
	"fill-opacity":   {grammar: "alpha-value"},
	"stroke-opacity": {grammar: "alpha-value"},
	"flood-opacity":  {grammar: "alpha-value"},
	"stop-opacity":   {grammar: "alpha-value"},

	"object-position":    {grammar: "position"},
	"perspective-origin": {grammar: "position"},
	"offset-position":    {grammar: "position", keywords: []string{"auto", "normal"}},

	"caret-color":  {grammar: "color", keywords: []string{"auto"}},
	"accent-color": {grammar: "color", keywords: []string{"auto"}},

	"width":      {grammar: "non-negative-length-percentage", keywords: sizing},
	"height":     {grammar: "non-negative-length-percentage", keywords: sizing},
	"min-width":  {grammar: "non-negative-length-percentage", keywords: sizing},
	"min-height": {grammar: "non-negative-length-percentage", keywords: sizing},
	"max-width":  {grammar: "non-negative-length-percentage", keywords: maxSizing},
	"max-height": {grammar: "non-negative-length-percentage", keywords: maxSizing},

	"inline-size": {grammar: "non-negative-length-percentage", keywords: sizing},
	"block-size":  {grammar: "non-negative-length-percentage", keywords: sizing},

	"row-gap":    {grammar: "non-negative-length-percentage", keywords: []string{"normal"}},
	"column-gap": {grammar: "non-negative-length-percentage", keywords: []string{"normal"}},

	"text-indent":    {grammar: "length-percentage"},
	"letter-spacing": {grammar: "length", keywords: []string{"normal"}},
	"word-spacing":   {grammar: "length", keywords: []string{"normal"}},
	"outline-offset": {grammar: "length"},
	"outline-width":  {grammar: "non-negative-length", keywords: []string{"thin", "medium", "thick"}},
}

func init() {
	for _, corner := range []string{
		"top-left", "top-right", "bottom-right", "bottom-left",
		"start-start", "start-end", "end-start", "end-end",
	} {
		defaults["border-"+corner+"-radius"] = entry{grammar: "border-corner-radius"}
	}
	for _, p := range []string{
		"color", "background-color", "outline-color", "column-rule-color",
		"text-decoration-color", "text-emphasis-color", "flood-color",
		"lighting-color", "stop-color",
	} {
		defaults[p] = entry{grammar: "color"}
	}
	for _, side := range []string{"top", "right", "bottom", "left", "block-start", "block-end", "inline-start", "inline-end"} {
		defaults["border-"+side+"-color"] = entry{grammar: "color"}
		defaults["border-"+side+"-width"] = entry{grammar: "non-negative-length", keywords: []string{"thin", "medium", "thick"}}
		defaults["margin-"+side] = entry{grammar: "length-percentage", keywords: []string{"auto"}}
		defaults["padding-"+side] = entry{grammar: "non-negative-length-percentage"}
	}
	for _, p := range []string{"top", "right", "bottom", "left", "inset-block-start", "inset-block-end", "inset-inline-start", "inset-inline-end"} {
		defaults[p] = entry{grammar: "length-percentage", keywords: []string{"auto"}}
	}
}

// Table maps property names to grammars. Every property also accepts
// the CSS-wide keywords.
type Table struct {
	properties map[string]Grammar
}

// NewTable builds the built-in table with overrides applied. overrides
// maps property names to grammar names and may add new properties.
func NewTable(overrides map[string]string) (*Table, error) {
	t := &Table{properties: make(map[string]Grammar, len(defaults)+len(overrides))}
	for property, e := range defaults {
		if err := t.set(property, e); err != nil {
			return nil, err
		}
	}
	for property, name := range overrides {
		if err := t.set(property, entry{grammar: name}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) set(property string, e entry) error {
	g, ok := GrammarByName(e.grammar)
	if !ok {
		return fmt.Errorf("property %s: %w %q", property, ErrUnknownGrammar, e.grammar)
	}
	keywords := append(cssWideKeywords.Members(), e.keywords...)
	t.properties[strings.ToLower(property)] = withKeywords(g, keywords...)
	return nil
}

// Lookup returns the grammar of property, ignoring case
func (t *Table) Lookup(property string) (Grammar, bool) {
	g, ok := t.properties[strings.ToLower(property)]
	return g, ok
}

// Properties returns the property names in the table in sorted order
func (t *Table) Properties() []string {
	names := make([]string, 0, len(t.properties))
	for name := range t.properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
