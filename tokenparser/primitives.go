package tokenparser

import (
	"fmt"
	"strings"

	"bennypowers.dev/cssval/csserr"
	"bennypowers.dev/cssval/internal/collections"
	"bennypowers.dev/cssval/token"
)

// Satisfy consumes one token accepted by pred. expected describes the
// token in the error message.
func Satisfy(expected string, pred func(token.Token) bool) Parser[token.Token] {
	return New(expected, func(l *token.List) (token.Token, error) {
		pos := l.Pos()
		tok, ok := l.Next()
		if !ok {
			return token.Token{}, csserr.NewUnexpectedToken("", expected, pos, nil)
		}
		if !pred(tok) {
			return token.Token{}, csserr.NewUnexpectedToken("", expected, pos, &tok)
		}
		return tok, nil
	})
}

// Kind consumes one token of kind k
func Kind(k token.Kind) Parser[token.Token] {
	return Satisfy(k.String(), func(t token.Token) bool { return t.Kind == k })
}

// Whitespace consumes one whitespace token
func Whitespace() Parser[struct{}] {
	return Skip(Kind(token.Whitespace))
}

// OptionalWhitespace consumes a whitespace token if there is one
func OptionalWhitespace() Parser[struct{}] {
	return New("optional whitespace", func(l *token.List) (struct{}, error) {
		if tok, ok := l.Peek(); ok && tok.Kind == token.Whitespace {
			l.Next()
		}
		return struct{}{}, nil
	})
}

// Keyword consumes the identifier name, ignoring ASCII case, and yields
// it in lower case
func Keyword(name string) Parser[string] {
	lower := strings.ToLower(name)
	ident := Satisfy(lower, func(t token.Token) bool {
		return t.Kind == token.Ident && strings.EqualFold(t.Text, lower)
	})
	return Map(ident, func(token.Token) string { return lower }).Named(lower)
}

// KeywordOf consumes any identifier in table and yields its canonical spelling
func KeywordOf(name string, table *collections.Keywords) Parser[string] {
	ident := Satisfy(name, func(t token.Token) bool {
		return t.Kind == token.Ident && table.Has(t.Text)
	})
	return Map(ident, func(t token.Token) string {
		canonical, _ := table.Lookup(t.Text)
		return canonical
	}).Named(name)
}

// AnyIdent consumes any identifier and yields its text
func AnyIdent() Parser[string] {
	return Map(Kind(token.Ident), func(t token.Token) string { return t.Text }).Named("identifier")
}

// Function consumes the function token name(, ignoring ASCII case
func Function(name string) Parser[string] {
	lower := strings.ToLower(name)
	expected := fmt.Sprintf("%s() function", lower)
	fn := Satisfy(expected, func(t token.Token) bool {
		return t.Kind == token.Function && strings.EqualFold(t.Text, lower)
	})
	return Map(fn, func(token.Token) string { return lower }).Named(expected)
}

// Call parses name( args ) with optional whitespace inside the parens
func Call[T any](name string, args Parser[T]) Parser[T] {
	open := Terminated(Function(name), OptionalWhitespace())
	return SurroundedBy(args, open, CloseParen()).Named(name + "()")
}

// Number consumes a number token and yields its value
func Number() Parser[float64] {
	return Map(Kind(token.Number), func(t token.Token) float64 { return t.Value }).Named("number")
}

// PercentageToken consumes a percentage token and yields its numeric value
func PercentageToken() Parser[float64] {
	return Map(Kind(token.Percentage), func(t token.Token) float64 { return t.Value }).Named("percentage")
}

// Dimension consumes a dimension token
func Dimension() Parser[token.Token] {
	return Kind(token.Dimension).Named("dimension")
}

// StringToken consumes a string token and yields its unquoted text
func StringToken() Parser[string] {
	return Map(Kind(token.String), func(t token.Token) string { return t.Text }).Named("string")
}

// HashToken consumes a hash token and yields the text after #
func HashToken() Parser[string] {
	return Map(Kind(token.Hash), func(t token.Token) string { return t.Text }).Named("hash")
}

// Delim consumes the delimiter r
func Delim(r rune) Parser[rune] {
	d := Satisfy(fmt.Sprintf("'%c'", r), func(t token.Token) bool {
		return t.Kind == token.Delim && t.Delim == r
	})
	return Map(d, func(token.Token) rune { return r })
}

// Comma consumes a comma with optional whitespace on either side
func Comma() Parser[struct{}] {
	return Padded(Skip(Kind(token.Comma))).Named("','")
}

// Slash consumes `/` with optional whitespace on either side
func Slash() Parser[struct{}] {
	return Padded(Skip(Delim('/'))).Named("'/'")
}

// CloseParen consumes optional whitespace then `)`
func CloseParen() Parser[struct{}] {
	return Preceded(OptionalWhitespace(), Skip(Kind(token.RightParen))).Named("')'")
}

// End succeeds only when every token has been consumed
func End() Parser[struct{}] {
	return New("end of input", func(l *token.List) (struct{}, error) {
		if tok, ok := l.Peek(); ok {
			return struct{}{}, csserr.NewUnexpectedToken("", "end of input", l.Pos(), &tok)
		}
		return struct{}{}, nil
	})
}

// Padded allows optional whitespace on both sides of p
func Padded[T any](p Parser[T]) Parser[T] {
	return Terminated(Preceded(OptionalWhitespace(), p), OptionalWhitespace()).Named(p.name)
}

// Skip discards p's result
func Skip[T any](p Parser[T]) Parser[struct{}] {
	return Map(p, func(T) struct{} { return struct{}{} })
}
