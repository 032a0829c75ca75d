package value

import (
	"fmt"

	tp "bennypowers.dev/cssval/tokenparser"
)

// PositionKeyword names an edge or the centre of the reference box
type PositionKeyword int

const (
	Left PositionKeyword = iota
	Center
	Right
	Top
	Bottom
)

var positionKeywordNames = [...]string{Left: "left", Center: "center", Right: "right", Top: "top", Bottom: "bottom"}

func (k PositionKeyword) String() string {
	if k < 0 || int(k) >= len(positionKeywordNames) {
		return fmt.Sprintf("PositionKeyword(%d)", int(k))
	}
	return positionKeywordNames[k]
}

// PositionAxis is one axis of a Position: an edge keyword and, optionally,
// an offset measured from that edge. A nil Offset means the keyword alone.
type PositionAxis struct {
	Edge   PositionKeyword
	Offset LengthPercentage
}

// Position is a <position> as used by circle(), ellipse() and
// object-position
type Position struct {
	Horizontal PositionAxis
	Vertical   PositionAxis
}

// String renders the shortest of the 1, 2 and 4 value forms that
// parses back to the same Position
func (p Position) String() string {
	h, v := p.Horizontal, p.Vertical
	if (h.Offset != nil && h.Edge == Right) || (v.Offset != nil && v.Edge == Bottom) {
		return fourValueAxis(h, Left) + " " + fourValueAxis(v, Top)
	}
	hs, vs := twoValueAxis(h), twoValueAxis(v)
	switch {
	case v == (PositionAxis{Edge: Center}):
		return hs
	case h == (PositionAxis{Edge: Center}) && v.Offset == nil:
		return vs
	}
	return hs + " " + vs
}

func twoValueAxis(a PositionAxis) string {
	if a.Offset == nil {
		return a.Edge.String()
	}
	return a.Offset.String()
}

// fourValueAxis renders "edge offset". A keyword-only axis is spelled
// as the equivalent percentage from origin.
func fourValueAxis(a PositionAxis, origin PositionKeyword) string {
	if a.Offset != nil {
		return a.Edge.String() + " " + a.Offset.String()
	}
	switch a.Edge {
	case Center:
		return origin.String() + " 50%"
	case Left, Top:
		return origin.String() + " 0%"
	}
	return origin.String() + " 100%"
}

func edge(k PositionKeyword) tp.Parser[PositionKeyword] {
	return tp.Map(tp.Keyword(k.String()), func(string) PositionKeyword { return k })
}

func keywordAxis(keywords ...PositionKeyword) tp.Parser[PositionAxis] {
	rules := make([]tp.Parser[PositionKeyword], len(keywords))
	for i, k := range keywords {
		rules[i] = edge(k)
	}
	return tp.Map(tp.OneOf("position keyword", rules...), func(k PositionKeyword) PositionAxis {
		return PositionAxis{Edge: k}
	})
}

func offsetAxis(origin PositionKeyword) tp.Parser[PositionAxis] {
	return tp.Map(lengthPercentage, func(lp LengthPercentage) PositionAxis {
		return PositionAxis{Edge: origin, Offset: lp}
	})
}

// edgeOffset parses "edge <length-percentage>" for the 4 value form
func edgeOffset(edges ...PositionKeyword) tp.Parser[PositionAxis] {
	return tp.Map(tp.Sequence3(keywordAxis(edges...), tp.Whitespace(), lengthPercentage),
		func(r tp.Triple[PositionAxis, struct{}, LengthPercentage]) PositionAxis {
			return PositionAxis{Edge: r.First.Edge, Offset: r.Third}
		})
}

func axes(h, v tp.Parser[PositionAxis]) tp.Parser[Position] {
	return tp.Map(tp.Sequence3(h, tp.Whitespace(), v), func(r tp.Triple[PositionAxis, struct{}, PositionAxis]) Position {
		return Position{Horizontal: r.First, Vertical: r.Third}
	})
}

func swappedAxes(v, h tp.Parser[PositionAxis]) tp.Parser[Position] {
	return tp.Map(tp.Sequence3(v, tp.Whitespace(), h), func(r tp.Triple[PositionAxis, struct{}, PositionAxis]) Position {
		return Position{Horizontal: r.Third, Vertical: r.First}
	})
}

var (
	horizontalKeyword = keywordAxis(Left, Center, Right)
	verticalKeyword   = keywordAxis(Top, Center, Bottom)

	fourValuePosition = tp.OneOf("four value position",
		axes(edgeOffset(Left, Right), edgeOffset(Top, Bottom)),
		swappedAxes(edgeOffset(Top, Bottom), edgeOffset(Left, Right)),
	)

	twoValuePosition = tp.OneOf("two value position",
		axes(
			tp.OneOf("horizontal position", horizontalKeyword, offsetAxis(Left)),
			tp.OneOf("vertical position", verticalKeyword, offsetAxis(Top)),
		),
		swappedAxes(verticalKeyword, horizontalKeyword),
	)

	oneValuePosition = tp.OneOf("one value position",
		tp.Map(horizontalKeyword, func(h PositionAxis) Position {
			return Position{Horizontal: h, Vertical: PositionAxis{Edge: Center}}
		}),
		tp.Map(verticalKeyword, func(v PositionAxis) Position {
			return Position{Horizontal: PositionAxis{Edge: Center}, Vertical: v}
		}),
		tp.Map(offsetAxis(Left), func(h PositionAxis) Position {
			return Position{Horizontal: h, Vertical: PositionAxis{Edge: Center}}
		}),
	)

	position = tp.OneOf("position", fourValuePosition, twoValuePosition, oneValuePosition)
)

// ParsePosition parses the 1, 2 and 4 value <position> forms. Two
// keywords may come in either order, as in `top left`.
func ParsePosition() tp.Parser[Position] {
	return position
}

var atPosition = tp.Optional(tp.Preceded(
	tp.Sequence3(tp.OptionalWhitespace(), tp.Keyword("at"), tp.Whitespace()),
	position,
)).Named("at <position>")

// ParseAtPosition parses an optional `at <position>` clause. When the
// clause is absent or malformed it yields nil and consumes nothing.
func ParseAtPosition() tp.Parser[*Position] {
	return atPosition
}
