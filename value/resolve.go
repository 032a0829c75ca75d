package value

import (
	"errors"
	"fmt"

	"github.com/mazznoer/csscolorparser"
)

// ErrUnresolvable indicates a colour whose value depends on context,
// such as currentcolor
var ErrUnresolvable = errors.New("color cannot be resolved without context")

// ResolveColor converts a parsed colour to RGBA channels in [0, 1]
func ResolveColor(c Color) (csscolorparser.Color, error) {
	if c == nil {
		return csscolorparser.Color{}, fmt.Errorf("nil color: %w", ErrUnresolvable)
	}
	if n, ok := c.(NamedColor); ok && n.Name == "currentcolor" {
		return csscolorparser.Color{}, fmt.Errorf("%s: %w", n.Name, ErrUnresolvable)
	}
	resolved, err := csscolorparser.Parse(c.String())
	if err != nil {
		return csscolorparser.Color{}, fmt.Errorf("resolving %s: %w", c, err)
	}
	return resolved, nil
}
