package value

import (
	"fmt"
	"strings"

	"bennypowers.dev/cssval/token"
	tp "bennypowers.dev/cssval/tokenparser"
)

// BasicShape is a <basic-shape>: one of Inset, Circle, Ellipse, Polygon
// or Path
type BasicShape interface {
	String() string
	isBasicShape()
}

func (Inset) isBasicShape()   {}
func (Circle) isBasicShape()  {}
func (Ellipse) isBasicShape() {}
func (Polygon) isBasicShape() {}
func (Path) isBasicShape()    {}

// Inset is inset(). Round is nil when there is no `round` clause.
type Inset struct {
	Top, Right, Bottom, Left LengthPercentage
	Round                    LengthPercentage
}

func (s Inset) String() string {
	box := shortestBox([4]LengthPercentage{s.Top, s.Right, s.Bottom, s.Left})
	if s.Round != nil {
		box += " round " + s.Round.String()
	}
	return "inset(" + box + ")"
}

// shortestBox renders top, right, bottom, left in the fewest values
// that expand back to the same four
func shortestBox(v [4]LengthPercentage) string {
	parts := make([]string, 4)
	for i, lp := range v {
		parts[i] = lp.String()
	}
	switch {
	case v[3] != v[1]:
		// all four needed
	case v[2] != v[0]:
		parts = parts[:3]
	case v[1] != v[0]:
		parts = parts[:2]
	default:
		parts = parts[:1]
	}
	return strings.Join(parts, " ")
}

// expandBox applies the CSS box shorthand rule to 1 to 4 values
func expandBox[T any](v []T) ([4]T, error) {
	switch len(v) {
	case 1:
		return [4]T{v[0], v[0], v[0], v[0]}, nil
	case 2:
		return [4]T{v[0], v[1], v[0], v[1]}, nil
	case 3:
		return [4]T{v[0], v[1], v[2], v[1]}, nil
	case 4:
		return [4]T{v[0], v[1], v[2], v[3]}, nil
	}
	return [4]T{}, fmt.Errorf("expected 1 to 4 values, found %d", len(v))
}

func boxValues(item tp.Parser[LengthPercentage]) tp.Parser[[4]LengthPercentage] {
	return tp.MapErr(tp.CountSeparatedBy(item, tp.Whitespace(), 1, 4), expandBox[LengthPercentage])
}

// ParseInset parses inset() with 1 to 4 offsets and an optional
// `round <length-percentage>`
func ParseInset() tp.Parser[Inset] {
	round := tp.Optional(tp.Preceded(
		tp.Sequence3(tp.Whitespace(), tp.Keyword("round"), tp.Whitespace()),
		ParseNonNegativeLengthPercentage(),
	))
	args := tp.Sequence2(boxValues(lengthPercentage), round)
	return tp.Map(tp.Call("inset", args), func(r tp.Pair[[4]LengthPercentage, *LengthPercentage]) Inset {
		s := Inset{Top: r.First[0], Right: r.First[1], Bottom: r.First[2], Left: r.First[3]}
		if r.Second != nil {
			s.Round = *r.Second
		}
		return s
	})
}

// RadiusKeyword is the keyword form of a circle or ellipse radius
type RadiusKeyword int

const (
	ClosestSide RadiusKeyword = iota
	FarthestSide
)

func (k RadiusKeyword) String() string {
	if k == FarthestSide {
		return "farthest-side"
	}
	return "closest-side"
}

// CircleRadius is a <shape-radius>. When Value is nil the radius is
// Keyword; the zero CircleRadius is closest-side.
type CircleRadius struct {
	Keyword RadiusKeyword
	Value   LengthPercentage
}

func (r CircleRadius) String() string {
	if r.Value != nil {
		return r.Value.String()
	}
	return r.Keyword.String()
}

func (r CircleRadius) isDefault() bool {
	return r == CircleRadius{}
}

var circleRadius = tp.OneOf("shape radius",
	tp.Map(tp.Keyword("closest-side"), func(string) CircleRadius { return CircleRadius{Keyword: ClosestSide} }),
	tp.Map(tp.Keyword("farthest-side"), func(string) CircleRadius { return CircleRadius{Keyword: FarthestSide} }),
	tp.Map(ParseNonNegativeLengthPercentage(), func(lp LengthPercentage) CircleRadius { return CircleRadius{Value: lp} }),
)

// ParseCircleRadius parses closest-side, farthest-side or a
// non-negative <length-percentage>
func ParseCircleRadius() tp.Parser[CircleRadius] {
	return circleRadius
}

// Circle is circle(). Position is nil when there is no `at` clause.
type Circle struct {
	Radius   CircleRadius
	Position *Position
}

func (s Circle) String() string {
	var parts []string
	if !s.Radius.isDefault() {
		parts = append(parts, s.Radius.String())
	}
	if s.Position != nil {
		parts = append(parts, "at "+s.Position.String())
	}
	return "circle(" + strings.Join(parts, " ") + ")"
}

// ParseCircle parses circle() with an optional radius and an optional
// `at <position>`
func ParseCircle() tp.Parser[Circle] {
	args := tp.Sequence2(tp.Optional(circleRadius), atPosition)
	return tp.Map(tp.Call("circle", args), func(r tp.Pair[*CircleRadius, *Position]) Circle {
		var s Circle
		if r.First != nil {
			s.Radius = *r.First
		}
		s.Position = r.Second
		return s
	})
}

// Ellipse is ellipse()
type Ellipse struct {
	RadiusX, RadiusY CircleRadius
	Position         *Position
}

func (s Ellipse) String() string {
	var parts []string
	if !s.RadiusX.isDefault() || !s.RadiusY.isDefault() {
		parts = append(parts, s.RadiusX.String(), s.RadiusY.String())
	}
	if s.Position != nil {
		parts = append(parts, "at "+s.Position.String())
	}
	return "ellipse(" + strings.Join(parts, " ") + ")"
}

// ParseEllipse parses ellipse() with either no radii or two, then an
// optional `at <position>`
func ParseEllipse() tp.Parser[Ellipse] {
	radii := tp.Optional(tp.Sequence3(circleRadius, tp.Whitespace(), circleRadius))
	args := tp.Sequence2(radii, atPosition)
	return tp.Map(tp.Call("ellipse", args), func(r tp.Pair[*tp.Triple[CircleRadius, struct{}, CircleRadius], *Position]) Ellipse {
		var s Ellipse
		if r.First != nil {
			s.RadiusX, s.RadiusY = r.First.First, r.First.Third
		}
		s.Position = r.Second
		return s
	})
}

// FillRule is the <fill-rule> of polygon() and path()
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	if f == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

var fillRule = tp.OneOf("fill rule",
	tp.Map(tp.Keyword("nonzero"), func(string) FillRule { return NonZero }),
	tp.Map(tp.Keyword("evenodd"), func(string) FillRule { return EvenOdd }),
)

// fillRulePrefix parses an optional fill rule followed by a comma or, leniently,
// whitespace. It defaults to nonzero.
var fillRulePrefix = tp.Default(
	tp.Terminated(fillRule, tp.OneOf("',' or whitespace", tp.Comma(), tp.Whitespace())),
	NonZero,
)

// Point is one vertex of a polygon
type Point struct {
	X, Y LengthPercentage
}

func (p Point) String() string {
	return p.X.String() + " " + p.Y.String()
}

// Polygon is polygon()
type Polygon struct {
	FillRule FillRule
	Points   []Point
}

func (s Polygon) String() string {
	parts := make([]string, 0, len(s.Points)+1)
	if s.FillRule != NonZero {
		parts = append(parts, s.FillRule.String())
	}
	for _, p := range s.Points {
		parts = append(parts, p.String())
	}
	return "polygon(" + strings.Join(parts, ", ") + ")"
}

var point = tp.Map(tp.Sequence3(lengthPercentage, tp.Whitespace(), lengthPercentage),
	func(r tp.Triple[LengthPercentage, struct{}, LengthPercentage]) Point {
		return Point{X: r.First, Y: r.Third}
	}).Named("point")

// ParsePolygon parses polygon() with an optional fill rule and at least
// one point
func ParsePolygon() tp.Parser[Polygon] {
	args := tp.Sequence2(fillRulePrefix, tp.OneOrMoreSeparatedBy(point, tp.Comma()))
	return tp.Map(tp.Call("polygon", args), func(r tp.Pair[FillRule, []Point]) Polygon {
		return Polygon{FillRule: r.First, Points: r.Second}
	})
}

// Path is path() with its SVG path data kept as a string
type Path struct {
	FillRule FillRule
	Data     string
}

func (s Path) String() string {
	if s.FillRule != NonZero {
		return "path(" + s.FillRule.String() + ", " + token.Quote(s.Data) + ")"
	}
	return "path(" + token.Quote(s.Data) + ")"
}

// ParsePath parses path() with an optional fill rule and a path string
func ParsePath() tp.Parser[Path] {
	args := tp.Sequence2(fillRulePrefix, tp.StringToken())
	return tp.Map(tp.Call("path", args), func(r tp.Pair[FillRule, string]) Path {
		return Path{FillRule: r.First, Data: r.Second}
	})
}

func asBasicShape[T BasicShape](p tp.Parser[T]) tp.Parser[BasicShape] {
	return tp.Map(p, func(v T) BasicShape { return v }).Named(p.Name())
}

var basicShape = tp.OneOf("basic shape",
	asBasicShape(ParseInset()),
	asBasicShape(ParseCircle()),
	asBasicShape(ParseEllipse()),
	asBasicShape(ParsePolygon()),
	asBasicShape(ParsePath()),
)

// ParseBasicShape parses inset(), circle(), ellipse(), polygon() or path()
func ParseBasicShape() tp.Parser[BasicShape] {
	return basicShape
}
