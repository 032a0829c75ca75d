package value

import (
	"strings"

	"bennypowers.dev/cssval/csserr"
	"bennypowers.dev/cssval/internal/collections"
	"bennypowers.dev/cssval/token"
	tp "bennypowers.dev/cssval/tokenparser"
)

// LengthPercentage is a <length-percentage>: a Length, a Percentage or a
// CalcExpression
type LengthPercentage interface {
	String() string
	isLengthPercentage()
}

func (Length) isLengthPercentage()         {}
func (Percentage) isLengthPercentage()     {}
func (CalcExpression) isLengthPercentage() {}

// CalcExpression is a math function kept as normalised source text.
// Its arguments are not evaluated.
type CalcExpression struct {
	Text string
}

func (c CalcExpression) String() string {
	return c.Text
}

var mathFunctions = collections.NewKeywords("calc", "min", "max", "clamp")

// ParseCalcExpression parses calc(), min(), max() or clamp() up to its
// balancing paren. Whitespace is collapsed and the function name
// lower-cased; nothing else is interpreted.
func ParseCalcExpression() tp.Parser[CalcExpression] {
	return tp.New("calc()", func(l *token.List) (CalcExpression, error) {
		start := l.Pos()
		open, ok := l.Next()
		if !ok || open.Kind != token.Function || !mathFunctions.Has(open.Text) {
			var found *token.Token
			if ok {
				found = &open
			}
			return CalcExpression{}, csserr.NewUnexpectedToken("", "calc(), min(), max() or clamp()", start, found)
		}
		open.Text = strings.ToLower(open.Text)
		tokens := []token.Token{open}
		for depth := 1; depth > 0; {
			tok, ok := l.Next()
			if !ok {
				return CalcExpression{}, csserr.NewUnexpectedToken(open.Text+"()", "')'", l.Pos(), nil)
			}
			switch tok.Kind {
			case token.Function, token.LeftParen:
				depth++
			case token.RightParen:
				depth--
			}
			tokens = append(tokens, tok)
		}
		if len(tokens) == 2 {
			return CalcExpression{}, csserr.NewInvalidValue(open.Text+"()", "empty math function", start)
		}
		return CalcExpression{Text: token.Join(tokens)}, nil
	})
}

func asLengthPercentage[T LengthPercentage](p tp.Parser[T]) tp.Parser[LengthPercentage] {
	return tp.Map(p, func(v T) LengthPercentage { return v }).Named(p.Name())
}

var lengthPercentage = tp.OneOf("length-percentage",
	asLengthPercentage(length),
	asLengthPercentage(ParsePercentage()),
	asLengthPercentage(ParseCalcExpression()),
)

// ParseLengthPercentage parses a length, a percentage or a math function
func ParseLengthPercentage() tp.Parser[LengthPercentage] {
	return lengthPercentage
}

// ParseNonNegativeLengthPercentage is ParseLengthPercentage rejecting
// negative lengths and percentages. Math functions are not evaluated
// and always pass.
func ParseNonNegativeLengthPercentage() tp.Parser[LengthPercentage] {
	return nonNegative(lengthPercentage, isNegative)
}

func isNegative(v LengthPercentage) bool {
	switch v := v.(type) {
	case Length:
		return v.Value < 0
	case Percentage:
		return v.Value < 0
	}
	return false
}
