package token

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"bennypowers.dev/cssval/internal/log"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Tokenize lexes a CSS component value into a List. It never fails:
// characters the grammar layer has no token for become Delim tokens,
// one per rune, so a grammar can reject them with a useful message.
func Tokenize(input string) *List {
	lexer := css.NewLexer(parse.NewInputString(input))
	tokens := make([]Token, 0, 8)

	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				log.Debug("tokenizer stopped early on %q: %v", input, err)
			}
			return NewList(tokens...)

		case css.WhitespaceToken:
			tokens = append(tokens, WhitespaceToken)

		case css.CommentToken, css.EmptyToken:
			continue

		case css.IdentToken, css.CustomPropertyNameToken:
			tokens = append(tokens, NewIdent(string(data)))

		case css.FunctionToken:
			tokens = append(tokens, NewFunction(strings.TrimSuffix(string(data), "(")))

		case css.NumberToken:
			tokens = append(tokens, numeric(data, Number))

		case css.PercentageToken:
			tokens = append(tokens, numeric(data, Percentage))

		case css.DimensionToken:
			tokens = append(tokens, numeric(data, Dimension))

		case css.StringToken:
			tokens = append(tokens, NewString(unquote(string(data))))

		case css.HashToken:
			tokens = append(tokens, NewHash(strings.TrimPrefix(string(data), "#")))

		case css.URLToken:
			tokens = append(tokens, urlTokens(string(data))...)

		case css.CommaToken:
			tokens = append(tokens, CommaToken)

		case css.LeftParenthesisToken:
			tokens = append(tokens, LeftParenToken)

		case css.RightParenthesisToken:
			tokens = append(tokens, RightParenToken)

		default:
			tokens = appendDelims(tokens, data)
		}
	}
}

func appendDelims(tokens []Token, data []byte) []Token {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		tokens = append(tokens, NewDelim(r))
		data = data[size:]
	}
	return tokens
}

// numeric splits a number, percentage or dimension lexeme into value and unit
func numeric(data []byte, kind Kind) Token {
	s := string(data)
	n := numericPrefix(s)
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		// The lexer only hands us well-formed numerals; keep the text
		// reachable so the grammar layer reports it.
		log.Debug("unparseable numeral %q: %v", s, err)
		return NewIdent(s)
	}
	switch kind {
	case Percentage:
		return NewPercentage(v)
	case Dimension:
		return NewDimension(v, s[n:])
	}
	return NewNumber(v)
}

// numericPrefix returns the length of the longest numeral at the start
// of s: optional sign, digits, optional fraction, optional exponent.
// An `e` not followed by digits belongs to the unit (as in `2em`).
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// unquote strips the surrounding quotes of a string lexeme and resolves escapes.
// An unterminated string at end of input has no closing quote.
func unquote(s string) string {
	if s == "" {
		return s
	}
	q := s[0]
	s = s[1:]
	if len(s) > 0 && s[len(s)-1] == q && !escapedAt(s, len(s)-1) {
		s = s[:len(s)-1]
	}
	return unescape(s)
}

// escapedAt reports whether s[i] is preceded by an odd number of backslashes
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch {
		case s[i] == '\n':
			// escaped newline is a line continuation
		case isHex(s[i]):
			j := i
			for j < len(s) && j-i < 6 && isHex(s[j]) {
				j++
			}
			code, _ := strconv.ParseUint(s[i:j], 16, 32)
			r := rune(code)
			if r == 0 || !utf8.ValidRune(r) {
				r = utf8.RuneError
			}
			b.WriteRune(r)
			if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
				j++
			}
			i = j - 1
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// urlTokens expands an unquoted url(...) lexeme into function, string and paren
// tokens so it looks the same to grammars as url("...")
func urlTokens(s string) []Token {
	inner := s
	if i := strings.IndexByte(inner, '('); i >= 0 {
		inner = inner[i+1:]
	}
	inner = strings.TrimSpace(strings.TrimSuffix(inner, ")"))
	if len(inner) > 0 && (inner[0] == '"' || inner[0] == '\'') {
		inner = unquote(inner)
	} else {
		inner = unescape(inner)
	}
	return []Token{NewFunction("url"), NewString(inner), RightParenToken}
}
