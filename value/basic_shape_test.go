package value_test

import (
	"errors"
	"testing"

	"bennypowers.dev/cssval/csserr"
	"bennypowers.dev/cssval/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInset(t *testing.T) {
	tests := []struct {
		input    string
		expected value.Inset
		rendered string
	}{
		{
			input:    "inset(10px)",
			expected: value.Inset{Top: px(10), Right: px(10), Bottom: px(10), Left: px(10)},
			rendered: "inset(10px)",
		},
		{
			input:    "inset(10px 20px)",
			expected: value.Inset{Top: px(10), Right: px(20), Bottom: px(10), Left: px(20)},
			rendered: "inset(10px 20px)",
		},
		{
			input:    "inset(10px 20px 30px)",
			expected: value.Inset{Top: px(10), Right: px(20), Bottom: px(30), Left: px(20)},
			rendered: "inset(10px 20px 30px)",
		},
		{
			input:    "inset(1px 2px 3px 4px)",
			expected: value.Inset{Top: px(1), Right: px(2), Bottom: px(3), Left: px(4)},
			rendered: "inset(1px 2px 3px 4px)",
		},
		{
			input:    "inset(10px 20px 10px 20px)",
			expected: value.Inset{Top: px(10), Right: px(20), Bottom: px(10), Left: px(20)},
			rendered: "inset(10px 20px)",
		},
		{
			input:    "inset(10px round 5px)",
			expected: value.Inset{Top: px(10), Right: px(10), Bottom: px(10), Left: px(10), Round: px(5)},
			rendered: "inset(10px round 5px)",
		},
		{
			input:    "INSET( 5% 0 round 50% )",
			expected: value.Inset{Top: pct(5), Right: px(0), Bottom: pct(5), Left: px(0), Round: pct(50)},
			rendered: "inset(5% 0px round 50%)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := value.ParseInset().ParseToEnd(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.rendered, got.String())
		})
	}
}

func TestParseCircle(t *testing.T) {
	tests := []struct {
		input    string
		expected value.Circle
		rendered string
	}{
		{
			input:    "circle()",
			expected: value.Circle{},
			rendered: "circle()",
		},
		{
			input:    "circle(50%)",
			expected: value.Circle{Radius: value.CircleRadius{Value: pct(50)}},
			rendered: "circle(50%)",
		},
		{
			input:    "circle(closest-side)",
			expected: value.Circle{Radius: value.CircleRadius{Keyword: value.ClosestSide}},
			rendered: "circle()",
		},
		{
			input:    "circle(farthest-side at center)",
			expected: value.Circle{
				Radius:   value.CircleRadius{Keyword: value.FarthestSide},
				Position: &value.Position{Horizontal: value.PositionAxis{Edge: value.Center}, Vertical: value.PositionAxis{Edge: value.Center}},
			},
			rendered: "circle(farthest-side at center)",
		},
		{
			input: "circle(10px at 20px 30px )",
			expected: value.Circle{
				Radius: value.CircleRadius{Value: px(10)},
				Position: &value.Position{
					Horizontal: value.PositionAxis{Edge: value.Left, Offset: px(20)},
					Vertical:   value.PositionAxis{Edge: value.Top, Offset: px(30)},
				},
			},
			rendered: "circle(10px at 20px 30px)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := value.ParseCircle().ParseToEnd(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.rendered, got.String())
		})
	}
}

func TestCircleRadiusPrefersKeywords(t *testing.T) {
	got, err := value.ParseCircleRadius().ParseToEnd("closest-side")
	require.NoError(t, err)
	assert.Equal(t, value.CircleRadius{Keyword: value.ClosestSide}, got)
	assert.Nil(t, got.Value)

	got, err = value.ParseCircleRadius().ParseToEnd("Farthest-Side")
	require.NoError(t, err)
	assert.Equal(t, value.FarthestSide, got.Keyword)

	_, err = value.ParseCircleRadius().ParseToEnd("-5px")
	assert.Error(t, err)
}

func TestParseEllipse(t *testing.T) {
	got, err := value.ParseEllipse().ParseToEnd("ellipse(10px 20% at left)")
	require.NoError(t, err)
	assert.Equal(t, value.CircleRadius{Value: px(10)}, got.RadiusX)
	assert.Equal(t, value.CircleRadius{Value: pct(20)}, got.RadiusY)
	require.NotNil(t, got.Position)
	assert.Equal(t, "ellipse(10px 20% at left)", got.String())

	got, err = value.ParseEllipse().ParseToEnd("ellipse()")
	require.NoError(t, err)
	assert.Equal(t, value.Ellipse{}, got)

	got, err = value.ParseEllipse().ParseToEnd("ellipse(at top)")
	require.NoError(t, err)
	assert.Equal(t, "ellipse(at top)", got.String())

	_, err = value.ParseEllipse().ParseToEnd("ellipse(10px)")
	assert.Error(t, err, "an ellipse takes zero or two radii")
}

func TestParsePolygon(t *testing.T) {
	got, err := value.ParsePolygon().ParseToEnd("polygon(0% 0%, 100% 0%, 50% 100%)")
	require.NoError(t, err)
	assert.Equal(t, value.NonZero, got.FillRule)
	assert.Equal(t, []value.Point{
		{X: pct(0), Y: pct(0)},
		{X: pct(100), Y: pct(0)},
		{X: pct(50), Y: pct(100)},
	}, got.Points)
	assert.Equal(t, "polygon(0% 0%, 100% 0%, 50% 100%)", got.String())

	got, err = value.ParsePolygon().ParseToEnd("polygon(evenodd, 0 0, 10px 10px)")
	require.NoError(t, err)
	assert.Equal(t, value.EvenOdd, got.FillRule)
	assert.Equal(t, "polygon(evenodd, 0px 0px, 10px 10px)", got.String())

	got, err = value.ParsePolygon().ParseToEnd("polygon(nonzero, 1px 2px)")
	require.NoError(t, err)
	assert.Equal(t, "polygon(1px 2px)", got.String(), "the default fill rule is omitted")

	t.Run("at least one point", func(t *testing.T) {
		_, err := value.ParsePolygon().ParseToEnd("polygon()")
		require.Error(t, err)
		assert.True(t, errors.Is(err, csserr.ErrArity))

		_, err = value.ParsePolygon().ParseToEnd("polygon(evenodd,)")
		assert.Error(t, err)
	})
}

func TestParsePath(t *testing.T) {
	got, err := value.ParsePath().ParseToEnd(`path("M 0 0 L 10 10 Z")`)
	require.NoError(t, err)
	assert.Equal(t, value.Path{Data: "M 0 0 L 10 10 Z"}, got)
	assert.Equal(t, `path("M 0 0 L 10 10 Z")`, got.String())

	got, err = value.ParsePath().ParseToEnd(`path(evenodd, 'M 1 1')`)
	require.NoError(t, err)
	assert.Equal(t, value.Path{FillRule: value.EvenOdd, Data: "M 1 1"}, got)
	assert.Equal(t, `path(evenodd, "M 1 1")`, got.String())

	_, err = value.ParsePath().ParseToEnd(`path(evenodd)`)
	assert.Error(t, err, "path data is required")
}

func TestParseBasicShape(t *testing.T) {
	for _, input := range []string{
		"inset(1px 2px round 3px)",
		"circle(at right 10% bottom 5px)",
		"ellipse(closest-side farthest-side)",
		"polygon(evenodd, 1px 2px, 3px 4px)",
		`path("M0 0")`,
	} {
		t.Run(input, func(t *testing.T) {
			got, err := value.ParseBasicShape().ParseToEnd(input)
			require.NoError(t, err)
			again, err := value.ParseBasicShape().ParseToEnd(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}

	t.Run("function name mismatch", func(t *testing.T) {
		_, err := value.ParseBasicShape().ParseToEnd("rect(1px 2px 3px 4px)")
		require.Error(t, err)
		assert.True(t, errors.Is(err, csserr.ErrNoAlternative))
		assert.Contains(t, err.Error(), "expected inset() or circle() or ellipse()")
	})

	t.Run("missing close paren", func(t *testing.T) {
		_, err := value.ParseBasicShape().ParseToEnd("circle(10px")
		require.Error(t, err)
		assert.True(t, errors.Is(err, csserr.ErrUnexpectedEOF))
	})
}
