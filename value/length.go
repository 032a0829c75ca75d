package value

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/cssval/charparser"
	"bennypowers.dev/cssval/token"
	tp "bennypowers.dev/cssval/tokenparser"
)

// LengthUnit is one of the CSS length units
type LengthUnit int

// Absolute units
const (
	Px LengthUnit = iota
	Cm
	Mm
	In
	Pt
)

// Font-relative units
const (
	Em LengthUnit = iota + Pt + 1
	Rem
	Ch
	Ex
	Ic
	Lh
	Rlh
	Cap
)

// Viewport-relative units, including the small, large and dynamic variants
const (
	Vh LengthUnit = iota + Cap + 1
	Vw
	Vmin
	Vmax
	Svh
	Svw
	Svmin
	Svmax
	Lvh
	Lvw
	Lvmin
	Lvmax
	Dvh
	Dvw
	Dvmin
	Dvmax
)

// Container-query-relative units
const (
	Cqw LengthUnit = iota + Dvmax + 1
	Cqh
	Cqi
	Cqb
	Cqmin
	Cqmax
)

var unitNames = [...]string{
	Px: "px", Cm: "cm", Mm: "mm", In: "in", Pt: "pt",
	Em: "em", Rem: "rem", Ch: "ch", Ex: "ex", Ic: "ic", Lh: "lh", Rlh: "rlh", Cap: "cap",
	Vh: "vh", Vw: "vw", Vmin: "vmin", Vmax: "vmax",
	Svh: "svh", Svw: "svw", Svmin: "svmin", Svmax: "svmax",
	Lvh: "lvh", Lvw: "lvw", Lvmin: "lvmin", Lvmax: "lvmax",
	Dvh: "dvh", Dvw: "dvw", Dvmin: "dvmin", Dvmax: "dvmax",
	Cqw: "cqw", Cqh: "cqh", Cqi: "cqi", Cqb: "cqb", Cqmin: "cqmin", Cqmax: "cqmax",
}

func (u LengthUnit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("LengthUnit(%d)", int(u))
	}
	return unitNames[u]
}

// LengthUnits returns every unit in declaration order
func LengthUnits() []LengthUnit {
	units := make([]LengthUnit, len(unitNames))
	for i := range units {
		units[i] = LengthUnit(i)
	}
	return units
}

// IsAbsolute reports whether u is px, cm, mm, in or pt
func (u LengthUnit) IsAbsolute() bool { return u >= Px && u <= Pt }

// IsFontRelative reports whether u depends on font metrics
func (u LengthUnit) IsFontRelative() bool { return u >= Em && u <= Cap }

// IsViewportRelative reports whether u depends on the viewport size
func (u LengthUnit) IsViewportRelative() bool { return u >= Vh && u <= Dvmax }

// IsContainerRelative reports whether u depends on a query container
func (u LengthUnit) IsContainerRelative() bool { return u >= Cqw && u <= Cqmax }

func unitsWhere(pred func(LengthUnit) bool) []LengthUnit {
	var units []LengthUnit
	for _, u := range LengthUnits() {
		if pred(u) {
			units = append(units, u)
		}
	}
	return units
}

// unitTable builds a longest-match lookup over the suffixes of units
func unitTable(name string, units []LengthUnit) charparser.Parser[LengthUnit] {
	sorted := slices.Clone(units)
	slices.SortStableFunc(sorted, func(a, b LengthUnit) int {
		return cmp.Compare(len(b.String()), len(a.String()))
	})
	rules := make([]charparser.Parser[LengthUnit], len(sorted))
	for i, u := range sorted {
		rules[i] = charparser.Map(charparser.String(u.String()), func(string) LengthUnit { return u })
	}
	return charparser.OneOf(name, rules...)
}

var (
	fontUnits      = unitTable("font-relative unit", unitsWhere(LengthUnit.IsFontRelative))
	viewportUnits  = unitTable("viewport unit", unitsWhere(LengthUnit.IsViewportRelative))
	containerUnits = unitTable("container unit", unitsWhere(LengthUnit.IsContainerRelative))
	absoluteUnits  = unitTable("absolute unit", unitsWhere(LengthUnit.IsAbsolute))
	allUnits       = unitTable("length unit", LengthUnits())
)

// ParseLengthUnit matches a unit suffix such as `px` or `cqmin`. Units
// are ASCII case-insensitive, so callers lower-case the suffix first.
func ParseLengthUnit() charparser.Parser[LengthUnit] {
	return allUnits
}

// Length is a <length>
type Length struct {
	Value float64
	Unit  LengthUnit
}

func (l Length) String() string {
	return token.FormatNumber(l.Value) + l.Unit.String()
}

// IsZero reports whether the length is zero in any unit
func (l Length) IsZero() bool {
	return l.Value == 0
}

func dimensionIn(name string, units charparser.Parser[LengthUnit]) tp.Parser[Length] {
	return tp.MapErr(tp.Dimension(), func(t token.Token) (Length, error) {
		u, err := units.ParseToEnd(strings.ToLower(t.Unit))
		if err != nil {
			return Length{}, fmt.Errorf("%q is not a %s", t.Unit, units.Name())
		}
		return Length{Value: t.Value, Unit: u}, nil
	}).Named(name)
}

var bareZero = tp.Map(
	tp.Number().Where(func(v float64) bool { return v == 0 }, "unitless lengths must be zero"),
	func(float64) Length { return Length{Unit: Px} },
).Named("0")

var length = tp.OneOf("length",
	dimensionIn("font-relative length", fontUnits),
	dimensionIn("viewport length", viewportUnits),
	dimensionIn("container length", containerUnits),
	dimensionIn("absolute length", absoluteUnits),
	bareZero,
)

// ParseLength parses a <length>. A bare 0 is a length in px.
func ParseLength() tp.Parser[Length] {
	return length
}

// ParseNonNegativeLength is ParseLength rejecting negative values
func ParseNonNegativeLength() tp.Parser[Length] {
	return nonNegative(length, func(l Length) bool { return l.Value < 0 })
}
