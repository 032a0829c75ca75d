// Package color converts parsed colours between CSS notations.
package color

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"bennypowers.dev/cssval/value"
	"github.com/mazznoer/csscolorparser"
)

// ErrNoName is returned when converting a colour that no named colour matches
var ErrNoName = errors.New("no named color matches")

// Format is a target notation for Convert
type Format int

const (
	// Hex renders #rrggbb, or #rrggbbaa for translucent colours
	Hex Format = iota
	// RGB renders rgb() or rgba()
	RGB
	// HSL renders hsl() or hsla()
	HSL
	// Name renders the named colour with the same channels
	Name
)

var formatNames = map[string]Format{
	"hex":  Hex,
	"rgb":  RGB,
	"hsl":  HSL,
	"name": Name,
}

// ParseFormat converts a format name such as "hex" to a Format
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return Hex, fmt.Errorf("unknown color format %q, want hex, rgb, hsl or name", s)
}

// Convert resolves c and renders it in format f
func Convert(c value.Color, f Format) (value.Color, error) {
	resolved, err := value.ResolveColor(c)
	if err != nil {
		return nil, err
	}

	switch f {
	case Hex:
		return value.HashColor{Hex: strings.TrimPrefix(resolved.HexString(), "#")}, nil
	case RGB:
		return toRGB(resolved), nil
	case HSL:
		return toHSL(resolved), nil
	case Name:
		return toName(resolved)
	}
	return nil, fmt.Errorf("unknown color format %d", f)
}

// channel converts a component in [0, 1] to 0-255
func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// round keeps digits decimal places, enough for CSS output without float noise
func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

func opaque(c csscolorparser.Color) bool {
	return c.A >= 1
}

func toRGB(c csscolorparser.Color) value.Color {
	r, g, b := channel(c.R), channel(c.G), channel(c.B)
	if opaque(c) {
		return value.Rgb{R: r, G: g, B: b}
	}
	return value.Rgba{R: r, G: g, B: b, A: value.AlphaValue{Value: round(c.A, 3)}}
}

func toHSL(c csscolorparser.Color) value.Color {
	h, s, l := rgbToHSL(c.R, c.G, c.B)
	h, s, l = round(h, 2), round(s*100, 2), round(l*100, 2)
	if opaque(c) {
		return value.Hsl{H: h, S: s, L: l}
	}
	return value.Hsla{H: h, S: s, L: l, A: value.AlphaValue{Value: round(c.A, 3)}}
}

// rgbToHSL converts components in [0, 1] to hue in degrees and
// saturation and lightness in [0, 1]
func rgbToHSL(r, g, b float64) (h, s, l float64) {
	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l = (hi + lo) / 2

	d := hi - lo
	if d == 0 {
		return 0, 0, l
	}
	s = d / (1 - math.Abs(2*l-1))

	switch hi {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, l
}

// toName finds the first named colour, in alphabetical order, whose
// channels equal c's
func toName(c csscolorparser.Color) (value.Color, error) {
	want := c.HexString()
	for _, name := range value.NamedColors() {
		named, err := csscolorparser.Parse(name)
		if err != nil {
			continue
		}
		if named.HexString() == want {
			return value.NamedColor{Name: name}, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", want, ErrNoName)
}
