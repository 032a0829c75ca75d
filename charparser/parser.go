// Package charparser is a small backtracking parser-combinator library
// that works directly on strings. It suits flat grammars (keyword
// tables, unit suffixes, hex digits) where tokenizing first would be
// wasted work.
//
// Every rule obeys one invariant: when it fails, it returns the input
// exactly as it received it. Alternation and optionality rely on this.
package charparser

import (
	"bennypowers.dev/cssval/csserr"
)

// Input is a read-only view of the source with a byte offset
type Input struct {
	src string
	pos int
}

// NewInput returns an Input positioned at the start of s
func NewInput(s string) Input {
	return Input{src: s}
}

// Rest returns the unconsumed text
func (in Input) Rest() string {
	return in.src[in.pos:]
}

// Pos returns the byte offset into the source
func (in Input) Pos() int {
	return in.pos
}

// AtEnd reports whether all input is consumed
func (in Input) AtEnd() bool {
	return in.pos >= len(in.src)
}

// Advance returns the input moved forward by n bytes
func (in Input) Advance(n int) Input {
	in.pos = min(in.pos+n, len(in.src))
	return in
}

// Parser is a named, reusable rule producing a T
type Parser[T any] struct {
	name string
	run  func(in Input) (T, Input, error)
}

// New creates a rule from a function. run must return its input
// unchanged when it fails; Attempt enforces this regardless.
func New[T any](name string, run func(in Input) (T, Input, error)) Parser[T] {
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

// Attempt runs the rule at in. On failure the returned Input is in.
func (p Parser[T]) Attempt(in Input) (T, Input, error) {
	v, out, err := p.run(in)
	if err != nil {
		var zero T
		return zero, in, err
	}
	return v, out, nil
}

// Parse runs the rule against a prefix of s
func (p Parser[T]) Parse(s string) (T, error) {
	v, _, err := p.Attempt(NewInput(s))
	return v, err
}

// ParseToEnd runs the rule and fails if any input remains
func (p Parser[T]) ParseToEnd(s string) (T, error) {
	v, out, err := p.Attempt(NewInput(s))
	if err != nil {
		return v, err
	}
	if !out.AtEnd() {
		var zero T
		return zero, csserr.NewUnexpectedText(p.name, "end of input", out.Pos(), out.Rest())
	}
	return v, nil
}

// Where keeps the rule's result only if pred accepts it
func (p Parser[T]) Where(pred func(T) bool, message string) Parser[T] {
	return New(p.name, func(in Input) (T, Input, error) {
		v, out, err := p.Attempt(in)
		if err != nil {
			return v, in, err
		}
		if !pred(v) {
			var zero T
			return zero, in, csserr.NewInvalidValue(p.name, message, in.Pos())
		}
		return v, out, nil
	})
}
