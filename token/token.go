// Package token defines the lexical units of a CSS component value and
// the cursor-addressable buffer the grammar layer parses from.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Token
type Kind int

const (
	// Whitespace is a run of one or more whitespace characters
	Whitespace Kind = iota
	// Ident is a bare identifier such as `red` or `closest-side`
	Ident
	// Function is an identifier immediately followed by `(`; the paren is part of the token
	Function
	// Number is a unitless numeric literal
	Number
	// Percentage is a numeric literal immediately followed by `%`
	Percentage
	// Dimension is a numeric literal immediately followed by a unit identifier
	Dimension
	// String is a quoted string with quotes removed and escapes resolved
	String
	// Hash is `#` followed by name characters, as in hex colours
	Hash
	// Comma is `,`
	Comma
	// LeftParen is a `(` that does not open a function
	LeftParen
	// RightParen is `)`
	RightParen
	// Delim is any other single character, such as `/`
	Delim
)

var kindNames = map[Kind]string{
	Whitespace: "whitespace",
	Ident:      "ident",
	Function:   "function",
	Number:     "number",
	Percentage: "percentage",
	Dimension:  "dimension",
	String:     "string",
	Hash:       "hash",
	Comma:      "comma",
	LeftParen:  "left paren",
	RightParen: "right paren",
	Delim:      "delim",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one immutable lexical unit. Which fields are meaningful
// depends on Kind:
//
//	Ident, Function, String, Hash: Text
//	Number, Percentage:            Value
//	Dimension:                     Value, Unit
//	Delim:                         Delim
type Token struct {
	Kind  Kind
	Text  string
	Value float64
	Unit  string
	Delim rune
}

// NewIdent returns an Ident token
func NewIdent(text string) Token { return Token{Kind: Ident, Text: text} }

// NewFunction returns a Function token for name(
func NewFunction(name string) Token { return Token{Kind: Function, Text: name} }

// NewNumber returns a Number token
func NewNumber(v float64) Token { return Token{Kind: Number, Value: v} }

// NewPercentage returns a Percentage token
func NewPercentage(v float64) Token { return Token{Kind: Percentage, Value: v} }

// NewDimension returns a Dimension token
func NewDimension(v float64, unit string) Token {
	return Token{Kind: Dimension, Value: v, Unit: unit}
}

// NewString returns a String token holding the unquoted text
func NewString(text string) Token { return Token{Kind: String, Text: text} }

// NewHash returns a Hash token; text excludes the leading #
func NewHash(text string) Token { return Token{Kind: Hash, Text: text} }

// NewDelim returns a Delim token
func NewDelim(r rune) Token { return Token{Kind: Delim, Delim: r} }

// Punctuation tokens that carry no payload
var (
	WhitespaceToken = Token{Kind: Whitespace}
	CommaToken      = Token{Kind: Comma}
	LeftParenToken  = Token{Kind: LeftParen}
	RightParenToken = Token{Kind: RightParen}
)

// String renders the token as CSS source text
func (t Token) String() string {
	switch t.Kind {
	case Whitespace:
		return " "
	case Ident:
		return t.Text
	case Function:
		return t.Text + "("
	case Number:
		return FormatNumber(t.Value)
	case Percentage:
		return FormatNumber(t.Value) + "%"
	case Dimension:
		return FormatNumber(t.Value) + t.Unit
	case String:
		return Quote(t.Text)
	case Hash:
		return "#" + t.Text
	case Comma:
		return ","
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case Delim:
		return string(t.Delim)
	}
	return ""
}

// Describe renders the token for error messages, e.g. `ident "red"`
func (t Token) Describe() string {
	switch t.Kind {
	case Whitespace, Comma, LeftParen, RightParen:
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.String())
}

// FormatNumber renders a float in the shortest form that parses back
// to the same value, without exponent notation
func FormatNumber(v float64) string {
	if v == 0 {
		// normalise negative zero
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Quote renders s as a double-quoted CSS string
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\a `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Join renders tokens back to CSS text. Whitespace runs collapse to a
// single space and whitespace directly inside parens is dropped.
func Join(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if t.Kind == Whitespace {
			if i == 0 || i == len(tokens)-1 {
				continue
			}
			prev, next := tokens[i-1], tokens[i+1]
			if prev.Kind == Function || prev.Kind == LeftParen || next.Kind == RightParen {
				continue
			}
		}
		b.WriteString(t.String())
	}
	return b.String()
}
