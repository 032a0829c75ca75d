package value_test

import (
	"errors"
	"testing"

	"bennypowers.dev/cssval/csserr"
	"bennypowers.dev/cssval/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoxShadow(t *testing.T) {
	red := value.NamedColor{Name: "red"}
	tests := []struct {
		input    string
		expected value.BoxShadow
		rendered string
	}{
		{
			input:    "10px 10px red",
			expected: value.BoxShadow{OffsetX: px(10), OffsetY: px(10), BlurRadius: px(0), SpreadRadius: px(0), Color: red},
			rendered: "10px 10px red",
		},
		{
			input:    "red 2px 3px",
			expected: value.BoxShadow{OffsetX: px(2), OffsetY: px(3), BlurRadius: px(0), SpreadRadius: px(0), Color: red},
			rendered: "2px 3px red",
		},
		{
			input: "inset 1px 2px 3px 4px #fff",
			expected: value.BoxShadow{
				OffsetX: px(1), OffsetY: px(2), BlurRadius: px(3), SpreadRadius: px(4),
				Color: value.HashColor{Hex: "ffffff"}, Inset: true,
			},
			rendered: "inset 1px 2px 3px 4px #ffffff",
		},
		{
			input:    "1px 2px inset",
			expected: value.BoxShadow{OffsetX: px(1), OffsetY: px(2), BlurRadius: px(0), SpreadRadius: px(0), Inset: true},
			rendered: "inset 1px 2px",
		},
		{
			input:    "1px 2px 0px",
			expected: value.BoxShadow{OffsetX: px(1), OffsetY: px(2), BlurRadius: px(0), SpreadRadius: px(0)},
			rendered: "1px 2px",
		},
		{
			input:    "0 0 0 -4px",
			expected: value.BoxShadow{OffsetX: px(0), OffsetY: px(0), BlurRadius: px(0), SpreadRadius: px(-4)},
			rendered: "0px 0px 0px -4px",
		},
		{
			input: "rgba(0, 0, 0, 0.5) inset 1em 2em",
			expected: value.BoxShadow{
				OffsetX:      value.Length{Value: 1, Unit: value.Em},
				OffsetY:      value.Length{Value: 2, Unit: value.Em},
				BlurRadius:   px(0),
				SpreadRadius: px(0),
				Color:        value.Rgba{A: value.AlphaValue{Value: 0.5}},
				Inset:        true,
			},
			rendered: "inset 1em 2em rgba(0, 0, 0, 0.5)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := value.ParseBoxShadow().ParseToEnd(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.rendered, got.String())

			again, err := value.ParseBoxShadow().ParseToEnd(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParseBoxShadowErrors(t *testing.T) {
	t.Run("lengths must be contiguous", func(t *testing.T) {
		_, err := value.ParseBoxShadow().ParseToEnd("10px inset 5px #fff")
		require.Error(t, err)
		assert.True(t, errors.Is(err, csserr.ErrArity), "got %v", err)
	})

	t.Run("negative blur", func(t *testing.T) {
		_, err := value.ParseBoxShadow().ParseToEnd("1px 2px -3px")
		require.Error(t, err)
		assert.True(t, errors.Is(err, csserr.ErrInvalidValue), "got %v", err)
		assert.Contains(t, err.Error(), "blur radius must not be negative")
	})

	for _, input := range []string{"1px", "1px 2px 3px 4px 5px", "red 1px 2px blue", "inset 1px 1px inset", "1px 2px, 3px 4px"} {
		t.Run(input, func(t *testing.T) {
			_, err := value.ParseBoxShadow().ParseToEnd(input)
			assert.Error(t, err)
		})
	}
}

func TestParseBoxShadowList(t *testing.T) {
	tests := []struct {
		input    string
		count    int
		rendered string
	}{
		{"none", 0, "none"},
		{"NONE", 0, "none"},
		{"1px 1px red", 1, "1px 1px red"},
		{"1px 1px red,inset 2px 2px 4px blue", 2, "1px 1px red, inset 2px 2px 4px blue"},
		{"0 0 1px #000 , 0 0 2px #111 , 0 0 3px #222", 3, "0px 0px 1px #000000, 0px 0px 2px #111111, 0px 0px 3px #222222"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := value.ParseBoxShadowList().ParseToEnd(tt.input)
			require.NoError(t, err)
			assert.Len(t, got.Shadows, tt.count)
			assert.Equal(t, tt.rendered, got.String())

			again, err := value.ParseBoxShadowList().ParseToEnd(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestBoxShadowListNoneIsExclusive(t *testing.T) {
	_, err := value.ParseBoxShadowList().ParseToEnd("none, 5px 5px red")
	require.Error(t, err)
	assert.True(t, errors.Is(err, csserr.ErrInvalidValue), "got %v", err)
	assert.Contains(t, err.Error(), "none cannot be combined with other shadows")

	_, err = value.ParseBoxShadowList().ParseToEnd("5px 5px red, none")
	require.Error(t, err)
	assert.True(t, errors.Is(err, csserr.ErrTrailingInput), "got %v", err)

	_, err = value.ParseBoxShadowList().ParseToEnd("")
	assert.Error(t, err)
}
