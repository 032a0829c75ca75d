package value

import (
	"fmt"
	"math"
	"strings"

	"bennypowers.dev/cssval/charparser"
	"bennypowers.dev/cssval/token"
	tp "bennypowers.dev/cssval/tokenparser"
)

// AngleUnit is one of deg, grad, rad or turn
type AngleUnit int

const (
	Deg AngleUnit = iota
	Grad
	Rad
	Turn
)

var angleUnitNames = [...]string{Deg: "deg", Grad: "grad", Rad: "rad", Turn: "turn"}

func (u AngleUnit) String() string {
	if u < 0 || int(u) >= len(angleUnitNames) {
		return fmt.Sprintf("AngleUnit(%d)", int(u))
	}
	return angleUnitNames[u]
}

var angleUnits = charparser.OneOf("angle unit",
	charparser.Map(charparser.String("deg"), func(string) AngleUnit { return Deg }),
	charparser.Map(charparser.String("grad"), func(string) AngleUnit { return Grad }),
	charparser.Map(charparser.String("rad"), func(string) AngleUnit { return Rad }),
	charparser.Map(charparser.String("turn"), func(string) AngleUnit { return Turn }),
)

// Angle is an <angle>
type Angle struct {
	Value float64
	Unit  AngleUnit
}

func (a Angle) String() string {
	return token.FormatNumber(a.Value) + a.Unit.String()
}

// Degrees converts the angle to degrees
func (a Angle) Degrees() float64 {
	switch a.Unit {
	case Grad:
		return a.Value * 360 / 400
	case Rad:
		return a.Value * 180 / math.Pi
	case Turn:
		return a.Value * 360
	}
	return a.Value
}

// ParseAngle parses a dimension with an angle unit
func ParseAngle() tp.Parser[Angle] {
	return tp.MapErr(tp.Dimension(), func(t token.Token) (Angle, error) {
		u, err := angleUnits.ParseToEnd(strings.ToLower(t.Unit))
		if err != nil {
			return Angle{}, fmt.Errorf("%q is not an angle unit", t.Unit)
		}
		return Angle{Value: t.Value, Unit: u}, nil
	}).Named("angle")
}
