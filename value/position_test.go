package value_test

import (
	"testing"

	"bennypowers.dev/cssval/token"
	tp "bennypowers.dev/cssval/tokenparser"
	"bennypowers.dev/cssval/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func px(v float64) value.Length { return value.Length{Value: v, Unit: value.Px} }

func pct(v float64) value.Percentage { return value.Percentage{Value: v} }

func TestParsePosition(t *testing.T) {
	center := value.PositionAxis{Edge: value.Center}
	tests := []struct {
		input    string
		expected value.Position
		rendered string
	}{
		{
			input:    "center",
			expected: value.Position{Horizontal: center, Vertical: center},
			rendered: "center",
		},
		{
			input:    "left",
			expected: value.Position{Horizontal: value.PositionAxis{Edge: value.Left}, Vertical: center},
			rendered: "left",
		},
		{
			input:    "bottom",
			expected: value.Position{Horizontal: center, Vertical: value.PositionAxis{Edge: value.Bottom}},
			rendered: "bottom",
		},
		{
			input:    "10px",
			expected: value.Position{Horizontal: value.PositionAxis{Edge: value.Left, Offset: px(10)}, Vertical: center},
			rendered: "10px",
		},
		{
			input: "10px 20%",
			expected: value.Position{
				Horizontal: value.PositionAxis{Edge: value.Left, Offset: px(10)},
				Vertical:   value.PositionAxis{Edge: value.Top, Offset: pct(20)},
			},
			rendered: "10px 20%",
		},
		{
			input: "right top",
			expected: value.Position{
				Horizontal: value.PositionAxis{Edge: value.Right},
				Vertical:   value.PositionAxis{Edge: value.Top},
			},
			rendered: "right top",
		},
		{
			input: "top right",
			expected: value.Position{
				Horizontal: value.PositionAxis{Edge: value.Right},
				Vertical:   value.PositionAxis{Edge: value.Top},
			},
			rendered: "right top",
		},
		{
			input: "center left",
			expected: value.Position{
				Horizontal: value.PositionAxis{Edge: value.Left},
				Vertical:   center,
			},
			rendered: "left",
		},
		{
			input: "right 10px bottom 20px",
			expected: value.Position{
				Horizontal: value.PositionAxis{Edge: value.Right, Offset: px(10)},
				Vertical:   value.PositionAxis{Edge: value.Bottom, Offset: px(20)},
			},
			rendered: "right 10px bottom 20px",
		},
		{
			input: "bottom 20px right 10px",
			expected: value.Position{
				Horizontal: value.PositionAxis{Edge: value.Right, Offset: px(10)},
				Vertical:   value.PositionAxis{Edge: value.Bottom, Offset: px(20)},
			},
			rendered: "right 10px bottom 20px",
		},
		{
			input: "left 10px top 20px",
			expected: value.Position{
				Horizontal: value.PositionAxis{Edge: value.Left, Offset: px(10)},
				Vertical:   value.PositionAxis{Edge: value.Top, Offset: px(20)},
			},
			rendered: "10px 20px",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := value.ParsePosition().ParseToEnd(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.rendered, got.String())

			again, err := value.ParsePosition().ParseToEnd(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParsePositionErrors(t *testing.T) {
	for _, input := range []string{"left right", "top bottom", "middle", "left 10px top", "10px left"} {
		t.Run(input, func(t *testing.T) {
			_, err := value.ParsePosition().ParseToEnd(input)
			assert.Error(t, err)
		})
	}
}

func TestParseAtPositionBacktracks(t *testing.T) {
	// a malformed clause must leave the closing paren for the caller
	rule := tp.Sequence2(value.ParseAtPosition(), tp.CloseParen())

	got, err := rule.ParseToEnd(" )")
	require.NoError(t, err)
	assert.Nil(t, got.First)

	list := token.Tokenize(" at )")
	pos, err := value.ParseAtPosition().Attempt(list)
	require.NoError(t, err)
	assert.Nil(t, pos)
	assert.Equal(t, 0, list.Pos(), "a failed clause consumes nothing")

	got, err = rule.ParseToEnd(" at left top)")
	require.NoError(t, err)
	require.NotNil(t, got.First)
	assert.Equal(t, "left top", got.First.String())
}
