package value

import (
	tp "bennypowers.dev/cssval/tokenparser"
)

// BorderRadiusIndividual is the value of one corner longhand such as
// border-top-left-radius
type BorderRadiusIndividual struct {
	Horizontal LengthPercentage
	Vertical   LengthPercentage
}

func (r BorderRadiusIndividual) String() string {
	if r.Vertical == nil || r.Vertical == r.Horizontal {
		return r.Horizontal.String()
	}
	return r.Horizontal.String() + " " + r.Vertical.String()
}

var radius = ParseNonNegativeLengthPercentage()

// ParseBorderRadiusIndividual parses one or two radii. The vertical
// radius defaults to the horizontal one.
func ParseBorderRadiusIndividual() tp.Parser[BorderRadiusIndividual] {
	p := tp.Sequence2(radius, tp.Optional(tp.Preceded(tp.Whitespace(), radius)))
	return tp.Map(p, func(r tp.Pair[LengthPercentage, *LengthPercentage]) BorderRadiusIndividual {
		v := r.First
		if r.Second != nil {
			v = *r.Second
		}
		return BorderRadiusIndividual{Horizontal: r.First, Vertical: v}
	}).Named("border corner radius")
}

// BorderRadiusShorthand is the border-radius shorthand expanded to the
// horizontal and vertical radius of each corner
type BorderRadiusShorthand struct {
	TopLeftHorizontal     LengthPercentage
	TopRightHorizontal    LengthPercentage
	BottomRightHorizontal LengthPercentage
	BottomLeftHorizontal  LengthPercentage
	TopLeftVertical       LengthPercentage
	TopRightVertical      LengthPercentage
	BottomRightVertical   LengthPercentage
	BottomLeftVertical    LengthPercentage
}

// Horizontal returns the horizontal radii from the top left corner clockwise
func (r BorderRadiusShorthand) Horizontal() [4]LengthPercentage {
	return [4]LengthPercentage{r.TopLeftHorizontal, r.TopRightHorizontal, r.BottomRightHorizontal, r.BottomLeftHorizontal}
}

// Vertical returns the vertical radii from the top left corner clockwise
func (r BorderRadiusShorthand) Vertical() [4]LengthPercentage {
	return [4]LengthPercentage{r.TopLeftVertical, r.TopRightVertical, r.BottomRightVertical, r.BottomLeftVertical}
}

// Corners returns the longhand value of each corner from the top left clockwise
func (r BorderRadiusShorthand) Corners() [4]BorderRadiusIndividual {
	h, v := r.Horizontal(), r.Vertical()
	var corners [4]BorderRadiusIndividual
	for i := range corners {
		corners[i] = BorderRadiusIndividual{Horizontal: h[i], Vertical: v[i]}
	}
	return corners
}

// String renders each axis in its shortest form, omitting the vertical
// clause when it matches the horizontal one
func (r BorderRadiusShorthand) String() string {
	h := shortestBox(r.Horizontal())
	v := shortestBox(r.Vertical())
	if v == h {
		return h
	}
	return h + " / " + v
}

// ParseBorderRadiusShorthand parses 1 to 4 horizontal radii, optionally
// followed by `/` and 1 to 4 vertical radii. Without the `/` clause the
// vertical radii equal the horizontal ones.
func ParseBorderRadiusShorthand() tp.Parser[BorderRadiusShorthand] {
	p := tp.Sequence2(boxValues(radius), tp.Optional(tp.Preceded(tp.Slash(), boxValues(radius))))
	return tp.Map(p, func(r tp.Pair[[4]LengthPercentage, *[4]LengthPercentage]) BorderRadiusShorthand {
		h, v := r.First, r.First
		if r.Second != nil {
			v = *r.Second
		}
		return BorderRadiusShorthand{
			TopLeftHorizontal:     h[0],
			TopRightHorizontal:    h[1],
			BottomRightHorizontal: h[2],
			BottomLeftHorizontal:  h[3],
			TopLeftVertical:       v[0],
			TopRightVertical:      v[1],
			BottomRightVertical:   v[2],
			BottomLeftVertical:    v[3],
		}
	}).Named("border radius")
}
