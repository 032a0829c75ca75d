package value_test

import (
	"errors"
	"testing"

	"bennypowers.dev/cssval/csserr"
	"bennypowers.dev/cssval/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(a, b, c, d value.LengthPercentage) [4]value.LengthPercentage {
	return [4]value.LengthPercentage{a, b, c, d}
}

func TestBorderRadiusShorthandExpansion(t *testing.T) {
	tests := []struct {
		input      string
		horizontal [4]value.LengthPercentage
		vertical   [4]value.LengthPercentage
	}{
		{"10px", box(px(10), px(10), px(10), px(10)), box(px(10), px(10), px(10), px(10))},
		{"10px 20px", box(px(10), px(20), px(10), px(20)), box(px(10), px(20), px(10), px(20))},
		{"10px 20px 30px", box(px(10), px(20), px(30), px(20)), box(px(10), px(20), px(30), px(20))},
		{"10px 20px 30px 40px", box(px(10), px(20), px(30), px(40)), box(px(10), px(20), px(30), px(40))},
		{"10px / 5%", box(px(10), px(10), px(10), px(10)), box(pct(5), pct(5), pct(5), pct(5))},
		{"1px 2px/3px 4px 5px", box(px(1), px(2), px(1), px(2)), box(px(3), px(4), px(5), px(4))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := value.ParseBorderRadiusShorthand().ParseToEnd(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.horizontal, got.Horizontal())
			assert.Equal(t, tt.vertical, got.Vertical())
		})
	}
}

func TestBorderRadiusShorthandShortestForm(t *testing.T) {
	tests := []struct {
		name     string
		value    value.BorderRadiusShorthand
		rendered string
	}{
		{
			name: "all equal",
			value: value.BorderRadiusShorthand{
				TopLeftHorizontal: px(10), TopRightHorizontal: px(10), BottomRightHorizontal: px(10), BottomLeftHorizontal: px(10),
				TopLeftVertical: px(10), TopRightVertical: px(10), BottomRightVertical: px(10), BottomLeftVertical: px(10),
			},
			rendered: "10px",
		},
		{
			name: "opposite corners equal",
			value: value.BorderRadiusShorthand{
				TopLeftHorizontal: px(1), TopRightHorizontal: px(2), BottomRightHorizontal: px(1), BottomLeftHorizontal: px(2),
				TopLeftVertical: px(1), TopRightVertical: px(2), BottomRightVertical: px(1), BottomLeftVertical: px(2),
			},
			rendered: "1px 2px",
		},
		{
			name: "top right equals bottom left",
			value: value.BorderRadiusShorthand{
				TopLeftHorizontal: px(1), TopRightHorizontal: px(2), BottomRightHorizontal: px(3), BottomLeftHorizontal: px(2),
				TopLeftVertical: px(1), TopRightVertical: px(2), BottomRightVertical: px(3), BottomLeftVertical: px(2),
			},
			rendered: "1px 2px 3px",
		},
		{
			name: "all different",
			value: value.BorderRadiusShorthand{
				TopLeftHorizontal: px(1), TopRightHorizontal: px(2), BottomRightHorizontal: px(3), BottomLeftHorizontal: px(4),
				TopLeftVertical: px(1), TopRightVertical: px(2), BottomRightVertical: px(3), BottomLeftVertical: px(4),
			},
			rendered: "1px 2px 3px 4px",
		},
		{
			name: "distinct vertical radii",
			value: value.BorderRadiusShorthand{
				TopLeftHorizontal: px(10), TopRightHorizontal: px(10), BottomRightHorizontal: px(10), BottomLeftHorizontal: px(10),
				TopLeftVertical: pct(5), TopRightVertical: pct(6), BottomRightVertical: pct(5), BottomLeftVertical: pct(6),
			},
			rendered: "10px / 5% 6%",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rendered, tt.value.String())

			again, err := value.ParseBorderRadiusShorthand().ParseToEnd(tt.value.String())
			require.NoError(t, err)
			assert.Equal(t, tt.value, again)
		})
	}
}

func TestBorderRadiusShorthandErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"five values", "1px 2px 3px 4px 5px", csserr.ErrTrailingInput},
		{"negative", "-1px", csserr.ErrArity},
		{"empty vertical clause", "1px /", csserr.ErrTrailingInput},
		{"keyword", "round", csserr.ErrArity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := value.ParseBorderRadiusShorthand().ParseToEnd(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestBorderRadiusCorners(t *testing.T) {
	got, err := value.ParseBorderRadiusShorthand().ParseToEnd("1px 2px / 3px")
	require.NoError(t, err)
	corners := got.Corners()
	assert.Equal(t, value.BorderRadiusIndividual{Horizontal: px(1), Vertical: px(3)}, corners[0])
	assert.Equal(t, value.BorderRadiusIndividual{Horizontal: px(2), Vertical: px(3)}, corners[1])
	assert.Equal(t, "2px 3px", corners[3].String())
}

func TestParseBorderRadiusIndividual(t *testing.T) {
	got, err := value.ParseBorderRadiusIndividual().ParseToEnd("10px")
	require.NoError(t, err)
	assert.Equal(t, value.BorderRadiusIndividual{Horizontal: px(10), Vertical: px(10)}, got)
	assert.Equal(t, "10px", got.String())

	got, err = value.ParseBorderRadiusIndividual().ParseToEnd("10px 50%")
	require.NoError(t, err)
	assert.Equal(t, value.BorderRadiusIndividual{Horizontal: px(10), Vertical: pct(50)}, got)
	assert.Equal(t, "10px 50%", got.String())

	_, err = value.ParseBorderRadiusIndividual().ParseToEnd("10px 20px 30px")
	assert.Error(t, err)
}
