package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"bennypowers.dev/cssval/charparser"
	"bennypowers.dev/cssval/token"
	tp "bennypowers.dev/cssval/tokenparser"
)

// Color is a <color>: one of NamedColor, HashColor, Rgb, Rgba, Hsl or Hsla
type Color interface {
	String() string
	isColor()
}

func (NamedColor) isColor() {}
func (HashColor) isColor()  {}
func (Rgb) isColor()        {}
func (Rgba) isColor()       {}
func (Hsl) isColor()        {}
func (Hsla) isColor()       {}

// NamedColor is a colour keyword in its canonical spelling, so `grey`
// parses as gray
type NamedColor struct {
	Name string
}

func (c NamedColor) String() string {
	return c.Name
}

// ParseNamedColor parses a colour keyword, resolving legacy aliases
func ParseNamedColor() tp.Parser[NamedColor] {
	return tp.Map(tp.KeywordOf("color name", namedColors), func(name string) NamedColor {
		return NamedColor{Name: name}
	})
}

// HashColor is a hex colour. Hex is lower case and always 6 or 8 digits;
// the 3 and 4 digit forms are expanded when parsed.
type HashColor struct {
	Hex string
}

func (c HashColor) String() string {
	return "#" + c.Hex
}

func (c HashColor) channel(i int) uint8 {
	if len(c.Hex) < i+2 {
		return 0
	}
	v, err := strconv.ParseUint(c.Hex[i:i+2], 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

// Red returns the red channel
func (c HashColor) Red() uint8 { return c.channel(0) }

// Green returns the green channel
func (c HashColor) Green() uint8 { return c.channel(2) }

// Blue returns the blue channel
func (c HashColor) Blue() uint8 { return c.channel(4) }

// Alpha returns the alpha channel in [0, 1]. It reports false for the
// 6 digit form, which has no alpha.
func (c HashColor) Alpha() (float64, bool) {
	if len(c.Hex) != 8 {
		return 1, false
	}
	return float64(c.channel(6)) / 255, true
}

var hexDigits = charparser.Regex(`[0-9a-fA-F]+`).Where(func(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
		return true
	}
	return false
}, "hex colours have 3, 4, 6 or 8 digits")

// ParseHashColor parses #rgb, #rgba, #rrggbb or #rrggbbaa
func ParseHashColor() tp.Parser[HashColor] {
	return tp.MapErr(tp.HashToken(), func(text string) (HashColor, error) {
		digits, err := hexDigits.ParseToEnd(text)
		if err != nil {
			return HashColor{}, fmt.Errorf("#%s is not a hex colour", text)
		}
		digits = strings.ToLower(digits)
		if len(digits) <= 4 {
			var b strings.Builder
			for _, d := range digits {
				b.WriteRune(d)
				b.WriteRune(d)
			}
			digits = b.String()
		}
		return HashColor{Hex: digits}, nil
	}).Named("hex color")
}

// Rgb is an opaque rgb() colour
type Rgb struct {
	R, G, B uint8
}

func (c Rgb) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Rgba is an rgba() colour with an explicit alpha
type Rgba struct {
	R, G, B uint8
	A       AlphaValue
}

func (c Rgba) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, c.A)
}

// Hsl is an opaque hsl() colour. H is in degrees within [0, 360); S and
// L are percentages within [0, 100].
type Hsl struct {
	H, S, L float64
}

func (c Hsl) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", token.FormatNumber(c.H), token.FormatNumber(c.S), token.FormatNumber(c.L))
}

// Hsla is an hsla() colour with an explicit alpha
type Hsla struct {
	H, S, L float64
	A       AlphaValue
}

func (c Hsla) String() string {
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", token.FormatNumber(c.H), token.FormatNumber(c.S), token.FormatNumber(c.L), c.A)
}

// callAny parses any of names( args ); rgb() and rgba() are aliases
func callAny[T any](args tp.Parser[T], names ...string) tp.Parser[T] {
	fns := make([]tp.Parser[string], len(names))
	for i, n := range names {
		fns[i] = tp.Function(n)
	}
	open := tp.Terminated(tp.OneOf(names[0]+"()", fns...), tp.OptionalWhitespace())
	return tp.SurroundedBy(args, open, tp.CloseParen()).Named(names[0] + "()")
}

var none = tp.Keyword("none")

func noneAsZero() tp.Parser[float64] {
	return tp.Map(none, func(string) float64 { return 0 })
}

// rgbChannel parses 0-255 or a percentage of 255, rounded and clamped
var rgbChannel = tp.Map(tp.OneOf("color channel",
	tp.Number(),
	tp.Map(tp.PercentageToken(), func(v float64) float64 { return v * 255 / 100 }),
	noneAsZero(),
), func(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 255)))
})

// channelTriple parses first, rest, rest joined by sep
func channelTriple[T any](first, rest tp.Parser[T], sep tp.Parser[struct{}]) tp.Parser[[3]T] {
	return tp.Map(tp.Sequence3(first, tp.Preceded(sep, rest), tp.Preceded(sep, rest)),
		func(r tp.Triple[T, T, T]) [3]T { return [3]T{r.First, r.Second, r.Third} })
}

// channels parses the legacy comma form or the modern space form
func channels[T any](first, rest tp.Parser[T]) tp.Parser[[3]T] {
	return tp.OneOf("color channels",
		channelTriple(first, rest, tp.Comma()),
		channelTriple(first, rest, tp.Whitespace()),
	)
}

var alphaChannel = tp.OneOf("alpha value",
	ParseAlphaValue(),
	tp.Map(none, func(string) AlphaValue { return AlphaValue{} }),
)

// channelsWithAlpha parses three channels then `, alpha` in the legacy
// form or `/ alpha` in the modern form
func channelsWithAlpha[T any](first, rest tp.Parser[T]) tp.Parser[tp.Pair[[3]T, AlphaValue]] {
	return tp.OneOf("color channels with alpha",
		tp.Sequence2(channelTriple(first, rest, tp.Comma()), tp.Preceded(tp.Comma(), alphaChannel)),
		tp.Sequence2(channelTriple(first, rest, tp.Whitespace()), tp.Preceded(tp.Slash(), alphaChannel)),
	)
}

// ParseRgb parses rgb() or rgba() with three channels and no alpha
func ParseRgb() tp.Parser[Rgb] {
	return tp.Map(callAny(channels(rgbChannel, rgbChannel), "rgb", "rgba"), func(c [3]uint8) Rgb {
		return Rgb{R: c[0], G: c[1], B: c[2]}
	})
}

// ParseRgba parses rgb() or rgba() with three channels and an alpha
func ParseRgba() tp.Parser[Rgba] {
	return tp.Map(callAny(channelsWithAlpha(rgbChannel, rgbChannel), "rgba", "rgb"), func(r tp.Pair[[3]uint8, AlphaValue]) Rgba {
		return Rgba{R: r.First[0], G: r.First[1], B: r.First[2], A: r.Second}
	})
}

var (
	// hue is a number of degrees or an angle
	hue = tp.OneOf("hue",
		tp.Number(),
		tp.Map(ParseAngle(), Angle.Degrees),
		noneAsZero(),
	)
	// saturation and lightness, where a plain number means a percentage
	hslPercentage = tp.OneOf("percentage",
		tp.PercentageToken(),
		tp.Number(),
		noneAsZero(),
	)
)

func hslFrom(c [3]float64) Hsl {
	h := math.Mod(c[0], 360)
	if h < 0 {
		h += 360
	}
	return Hsl{H: h, S: clamp(c[1], 0, 100), L: clamp(c[2], 0, 100)}
}

// ParseHsl parses hsl() or hsla() with no alpha
func ParseHsl() tp.Parser[Hsl] {
	return tp.Map(callAny(channels(hue, hslPercentage), "hsl", "hsla"), hslFrom)
}

// ParseHsla parses hsl() or hsla() with an alpha
func ParseHsla() tp.Parser[Hsla] {
	return tp.Map(callAny(channelsWithAlpha(hue, hslPercentage), "hsla", "hsl"), func(r tp.Pair[[3]float64, AlphaValue]) Hsla {
		c := hslFrom(r.First)
		return Hsla{H: c.H, S: c.S, L: c.L, A: r.Second}
	})
}

func asColor[T Color](p tp.Parser[T]) tp.Parser[Color] {
	return tp.Map(p, func(v T) Color { return v }).Named(p.Name())
}

var color = tp.OneOf("color",
	asColor(ParseNamedColor()),
	asColor(ParseHashColor()),
	asColor(ParseRgb()),
	asColor(ParseRgba()),
	asColor(ParseHsl()),
	asColor(ParseHsla()),
)

// ParseColor parses a named, hex, rgb(), rgba(), hsl() or hsla() colour
func ParseColor() tp.Parser[Color] {
	return color
}
