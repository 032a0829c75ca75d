package properties_test

import (
	"errors"
	"testing"

	"bennypowers.dev/cssval/csserr"
	"bennypowers.dev/cssval/internal/properties"
	"bennypowers.dev/cssval/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammars(t *testing.T) {
	names := properties.Grammars()
	assert.IsIncreasing(t, names)
	for _, name := range []string{"length", "length-percentage", "color", "basic-shape", "border-radius", "box-shadow", "position"} {
		assert.Contains(t, names, name)
	}

	g, ok := properties.GrammarByName("Box-Shadow")
	require.True(t, ok)
	assert.Equal(t, "box-shadow", g.Name)

	_, ok = properties.GrammarByName("flex")
	assert.False(t, ok)
}

func TestGrammarParse(t *testing.T) {
	tests := []struct {
		grammar  string
		input    string
		rendered string
	}{
		{"length", "0", "0px"},
		{"color", "#ABC", "#aabbcc"},
		{"border-radius", "10px 10px 10px 10px", "10px"},
		{"box-shadow", "none", "none"},
		{"basic-shape", "circle( closest-side )", "circle()"},
		{"alpha-value", "50%", "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.grammar+" "+tt.input, func(t *testing.T) {
			g, ok := properties.GrammarByName(tt.grammar)
			require.True(t, ok)
			v, err := g.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.rendered, v.String())
		})
	}
}

func TestGrammarParseListDepth(t *testing.T) {
	g, ok := properties.GrammarByName("basic-shape")
	require.True(t, ok)

	l := token.Tokenize("circle(10px at left top)")
	l.SetMaxDepth(2)
	_, err := g.ParseList(l)
	require.Error(t, err)
	assert.True(t, errors.Is(err, csserr.ErrTooDeep))
}

func TestTableLookup(t *testing.T) {
	table, err := properties.NewTable(nil)
	require.NoError(t, err)

	tests := []struct {
		property string
		grammar  string
	}{
		{"border-radius", "border-radius"},
		{"border-top-left-radius", "border-corner-radius"},
		{"BOX-SHADOW", "box-shadow"},
		{"clip-path", "basic-shape"},
		{"background-color", "color"},
		{"border-left-color", "color"},
		{"opacity", "alpha-value"},
		{"width", "non-negative-length-percentage"},
		{"margin-top", "length-percentage"},
		{"object-position", "position"},
	}
	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			g, ok := table.Lookup(tt.property)
			require.True(t, ok)
			assert.Equal(t, tt.grammar, g.Name)
		})
	}

	_, ok := table.Lookup("display")
	assert.False(t, ok, "properties without a grammar are not validated")
	assert.Contains(t, table.Properties(), "box-shadow")
}

func TestTableKeywords(t *testing.T) {
	table, err := properties.NewTable(nil)
	require.NoError(t, err)

	tests := []struct {
		property string
		input    string
		rendered string
	}{
		{"width", "AUTO", "auto"},
		{"width", "calc(100% - 2em)", "calc(100% - 2em)"},
		{"max-width", "none", "none"},
		{"clip-path", "none", "none"},
		{"color", "inherit", "inherit"},
		{"box-shadow", "revert-layer", "revert-layer"},
		{"margin-left", "-4px", "-4px"},
	}
	for _, tt := range tests {
		t.Run(tt.property+": "+tt.input, func(t *testing.T) {
			g, ok := table.Lookup(tt.property)
			require.True(t, ok)
			v, err := g.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.rendered, v.String())
		})
	}

	g, _ := table.Lookup("width")
	_, err = g.Parse("-4px")
	assert.Error(t, err, "width must not be negative")

	g, _ = table.Lookup("color")
	_, err = g.Parse("auto")
	assert.Error(t, err, "keywords are per property")
}

func TestTableOverrides(t *testing.T) {
	table, err := properties.NewTable(map[string]string{
		"--brand-color": "color",
		"width":         "length",
	})
	require.NoError(t, err)

	g, ok := table.Lookup("--brand-color")
	require.True(t, ok)
	assert.Equal(t, "color", g.Name)

	g, ok = table.Lookup("width")
	require.True(t, ok)
	assert.Equal(t, "length", g.Name)
	_, err = g.Parse("auto")
	assert.Error(t, err, "overrides replace the built-in keywords")

	_, err = properties.NewTable(map[string]string{"gap": "spacing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, properties.ErrUnknownGrammar))
}

func TestIsCSSWideKeyword(t *testing.T) {
	assert.True(t, properties.IsCSSWideKeyword(" Inherit "))
	assert.True(t, properties.IsCSSWideKeyword("revert-layer"))
	assert.False(t, properties.IsCSSWideKeyword("auto"))
}
