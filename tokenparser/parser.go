// Package tokenparser is the backtracking parser-combinator library the
// CSS value grammars are built from. Rules run against a *token.List and
// backtrack by saving and restoring its cursor.
//
// A rule that fails always leaves the cursor where it found it, so any
// containing OneOf, Optional or SetOf can try something else from the
// same position.
package tokenparser

import (
	"bennypowers.dev/cssval/csserr"
	"bennypowers.dev/cssval/token"
)

// Parser is a named, reusable grammar rule producing a T. Parsers hold no
// state between invocations and may be shared between goroutines.
type Parser[T any] struct {
	name string
	run  func(l *token.List) (T, error)
}

// New creates a rule from a function
func New[T any](name string, run func(l *token.List) (T, error)) Parser[T] {
	return Parser[T]{name: name, run: run}
}

// Name returns the diagnostic name of the rule
func (p Parser[T]) Name() string {
	return p.name
}

// Named returns a copy of the rule with a different diagnostic name
func (p Parser[T]) Named(name string) Parser[T] {
	p.name = name
	return p
}

// Attempt runs the rule at the list's cursor. On failure the cursor is
// restored to where it was.
func (p Parser[T]) Attempt(l *token.List) (T, error) {
	var zero T
	start := l.Pos()
	if !l.Enter() {
		return zero, csserr.NewTooDeep(p.name, l.MaxDepth(), start)
	}
	defer l.Leave()

	v, err := p.run(l)
	if err != nil {
		l.Reset(start)
		return zero, err
	}
	return v, nil
}

// Parse tokenizes input and parses a prefix of it. Leading whitespace is
// skipped; anything after the value is left unconsumed.
func (p Parser[T]) Parse(input string) (T, error) {
	return p.ParseList(token.Tokenize(input))
}

// ParseToEnd tokenizes input and parses all of it. Trailing whitespace
// is allowed; any other trailing token is an error.
func (p Parser[T]) ParseToEnd(input string) (T, error) {
	return p.ParseListToEnd(token.Tokenize(input))
}

// ParseList parses a prefix of an already tokenized list
func (p Parser[T]) ParseList(l *token.List) (T, error) {
	skipWhitespace(l)
	return p.Attempt(l)
}

// ParseListToEnd parses the rest of an already tokenized list
func (p Parser[T]) ParseListToEnd(l *token.List) (T, error) {
	var zero T
	start := l.Pos()
	v, err := p.ParseList(l)
	if err != nil {
		l.Reset(start)
		return zero, err
	}
	skipWhitespace(l)
	if tok, ok := l.Peek(); ok {
		pos := l.Pos()
		l.Reset(start)
		return zero, csserr.NewTrailingInput(p.name, pos, tok)
	}
	return v, nil
}

// Where keeps the rule's result only if pred accepts it. A rejected
// result fails the rule with ErrInvalidValue and consumes nothing.
func (p Parser[T]) Where(pred func(T) bool, message string) Parser[T] {
	return New(p.name, func(l *token.List) (T, error) {
		start := l.Pos()
		v, err := p.Attempt(l)
		if err != nil {
			return v, err
		}
		if !pred(v) {
			var zero T
			return zero, csserr.NewInvalidValue(p.name, message, start)
		}
		return v, nil
	})
}

func skipWhitespace(l *token.List) {
	for {
		tok, ok := l.Peek()
		if !ok || tok.Kind != token.Whitespace {
			return
		}
		l.Next()
	}
}
