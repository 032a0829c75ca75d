// Package value holds the typed CSS values and the grammars that produce
// them. Every ParseX function returns a reusable rule; call Parse or
// ParseToEnd on it. Every value renders back to canonical CSS with
// String, and that text parses back to an equal value.
package value

import (
	"fmt"
	"math"

	"bennypowers.dev/cssval/token"
	tp "bennypowers.dev/cssval/tokenparser"
)

// ParseNumber parses a signed, optionally fractional number
func ParseNumber() tp.Parser[float64] {
	return tp.Number()
}

// Percentage is a <percentage>; Value is 50 for `50%`
type Percentage struct {
	Value float64
}

func (p Percentage) String() string {
	return token.FormatNumber(p.Value) + "%"
}

// ParsePercentage parses a number immediately followed by %
func ParsePercentage() tp.Parser[Percentage] {
	return tp.Map(tp.PercentageToken(), func(v float64) Percentage {
		return Percentage{Value: v}
	}).Named("percentage")
}

// AlphaValue is an <alpha-value> normalised to [0, 1]
type AlphaValue struct {
	Value float64
}

func (a AlphaValue) String() string {
	return token.FormatNumber(a.Value)
}

// ParseAlphaValue parses a number or percentage. Out of range values are
// clamped rather than rejected.
func ParseAlphaValue() tp.Parser[AlphaValue] {
	fromNumber := tp.Map(tp.Number(), func(v float64) AlphaValue {
		return AlphaValue{Value: clamp(v, 0, 1)}
	})
	fromPercentage := tp.Map(tp.PercentageToken(), func(v float64) AlphaValue {
		return AlphaValue{Value: clamp(v/100, 0, 1)}
	})
	return tp.OneOf("alpha value", fromNumber, fromPercentage)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func nonNegative[T fmt.Stringer](p tp.Parser[T], negative func(T) bool) tp.Parser[T] {
	return p.Where(func(v T) bool { return !negative(v) }, p.Name()+" must not be negative")
}
