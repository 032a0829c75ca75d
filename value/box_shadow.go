package value

import (
	"errors"
	"strings"

	tp "bennypowers.dev/cssval/tokenparser"
)

// BoxShadow is one shadow of box-shadow. A nil Color means currentcolor.
type BoxShadow struct {
	OffsetX      Length
	OffsetY      Length
	BlurRadius   Length
	SpreadRadius Length
	Color        Color
	Inset        bool
}

var zeroPx = Length{Unit: Px}

// String renders the shadow with blur and spread omitted when they are 0px
func (s BoxShadow) String() string {
	var parts []string
	if s.Inset {
		parts = append(parts, "inset")
	}
	parts = append(parts, s.OffsetX.String(), s.OffsetY.String())
	if s.BlurRadius != zeroPx || s.SpreadRadius != zeroPx {
		parts = append(parts, s.BlurRadius.String())
	}
	if s.SpreadRadius != zeroPx {
		parts = append(parts, s.SpreadRadius.String())
	}
	if s.Color != nil {
		parts = append(parts, s.Color.String())
	}
	return strings.Join(parts, " ")
}

// shadowPart is one member of the box-shadow set; exactly one field is set
type shadowPart struct {
	lengths []Length
	color   Color
	inset   bool
}

// shadowLengths parses offset-x offset-y [blur [spread]]
var shadowLengths = tp.MapErr(tp.CountSeparatedBy(length, tp.Whitespace(), 2, 4), func(ls []Length) (shadowPart, error) {
	if len(ls) > 2 && ls[2].Value < 0 {
		return shadowPart{}, errNegativeBlur
	}
	return shadowPart{lengths: ls}, nil
}).Named("shadow lengths")

var errNegativeBlur = errors.New("blur radius must not be negative")

var boxShadow = tp.Map(tp.SetOf(tp.Whitespace(),
	tp.RequiredSlot(shadowLengths),
	tp.OptionalSlot(tp.Map(color, func(c Color) shadowPart { return shadowPart{color: c} })),
	tp.OptionalSlot(tp.Map(tp.Keyword("inset"), func(string) shadowPart { return shadowPart{inset: true} })),
), func(parts []*shadowPart) BoxShadow {
	ls := parts[0].lengths
	s := BoxShadow{OffsetX: ls[0], OffsetY: ls[1], BlurRadius: zeroPx, SpreadRadius: zeroPx}
	if len(ls) > 2 {
		s.BlurRadius = ls[2]
	}
	if len(ls) > 3 {
		s.SpreadRadius = ls[3]
	}
	if parts[1] != nil {
		s.Color = parts[1].color
	}
	s.Inset = parts[2] != nil
	return s
}).Named("box shadow")

// ParseBoxShadow parses one shadow: two to four lengths, with an
// optional colour and an optional inset keyword before or after them
func ParseBoxShadow() tp.Parser[BoxShadow] {
	return boxShadow
}

// BoxShadowList is the value of box-shadow. It is empty for `none`.
type BoxShadowList struct {
	Shadows []BoxShadow
}

func (l BoxShadowList) String() string {
	if len(l.Shadows) == 0 {
		return "none"
	}
	parts := make([]string, len(l.Shadows))
	for i, s := range l.Shadows {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

var boxShadowList = tp.OneOf("box shadow list",
	tp.Map(
		tp.NotFollowedBy(tp.Keyword("none"), tp.Comma(), "none cannot be combined with other shadows"),
		func(string) BoxShadowList { return BoxShadowList{} },
	),
	tp.Map(tp.OneOrMoreSeparatedBy(boxShadow, tp.Comma()), func(shadows []BoxShadow) BoxShadowList {
		return BoxShadowList{Shadows: shadows}
	}),
)

// ParseBoxShadowList parses `none` or a comma separated list of shadows
func ParseBoxShadowList() tp.Parser[BoxShadowList] {
	return boxShadowList
}
