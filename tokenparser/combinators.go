package tokenparser

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/cssval/csserr"
	"bennypowers.dev/cssval/token"
)

// Map transforms a rule's result
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return New(p.name, func(l *token.List) (U, error) {
		v, err := p.Attempt(l)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(v), nil
	})
}

// MapErr transforms a rule's result with a conversion that can fail.
// A conversion error fails the rule with ErrInvalidValue; errors that
// are already ParseErrors pass through unchanged.
func MapErr[T, U any](p Parser[T], f func(T) (U, error)) Parser[U] {
	return New(p.name, func(l *token.List) (U, error) {
		var zero U
		start := l.Pos()
		v, err := p.Attempt(l)
		if err != nil {
			return zero, err
		}
		u, err := f(v)
		if err != nil {
			if _, ok := csserr.Position(err); ok {
				return zero, err
			}
			return zero, csserr.NewInvalidValue(p.name, err.Error(), start)
		}
		return u, nil
	})
}

// Optional always succeeds, yielding nil without consuming input when p fails
func Optional[T any](p Parser[T]) Parser[*T] {
	return New(p.name+"?", func(l *token.List) (*T, error) {
		v, err := p.Attempt(l)
		if err != nil {
			return nil, nil
		}
		return &v, nil
	})
}

// Default is Optional with a fallback value instead of nil
func Default[T any](p Parser[T], fallback T) Parser[T] {
	return Map(Optional(p), func(v *T) T {
		if v == nil {
			return fallback
		}
		return *v
	})
}

// OneOf tries each rule from the same position and returns the first
// success, so declaration order is part of a grammar's meaning.
//
// When every rule fails, the error of the rule that got furthest into
// the input is returned, since it is the most specific. If none got past
// the first token the error lists all alternatives.
func OneOf[T any](name string, rules ...Parser[T]) Parser[T] {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return New(name, func(l *token.List) (T, error) {
		var zero T
		start := l.Pos()
		var furthest error
		furthestPos := start
		for _, r := range rules {
			v, err := r.Attempt(l)
			if err == nil {
				return v, nil
			}
			if errors.Is(err, csserr.ErrTooDeep) {
				return zero, err
			}
			if pos, ok := csserr.Position(err); ok && pos > furthestPos {
				furthest, furthestPos = err, pos
			}
		}
		if furthest != nil {
			return zero, furthest
		}
		var found *token.Token
		if tok, ok := l.Peek(); ok {
			found = &tok
		}
		return zero, csserr.NewNoAlternative(name, names, start, found)
	})
}

// Pair is the result of Sequence2
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the result of Sequence3
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad is the result of Sequence4
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Sequence2 runs a then b. Wrap a slot in Optional to make it optional.
func Sequence2[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return New(a.name+" "+b.name, func(l *token.List) (Pair[A, B], error) {
		var res Pair[A, B]
		var err error
		if res.First, err = a.Attempt(l); err != nil {
			return res, err
		}
		if res.Second, err = b.Attempt(l); err != nil {
			return res, err
		}
		return res, nil
	})
}

// Sequence3 runs a, b then c
func Sequence3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[Triple[A, B, C]] {
	return New(a.name+" "+b.name+" "+c.name, func(l *token.List) (Triple[A, B, C], error) {
		var res Triple[A, B, C]
		var err error
		if res.First, err = a.Attempt(l); err != nil {
			return res, err
		}
		if res.Second, err = b.Attempt(l); err != nil {
			return res, err
		}
		if res.Third, err = c.Attempt(l); err != nil {
			return res, err
		}
		return res, nil
	})
}

// Sequence4 runs a, b, c then d
func Sequence4[A, B, C, D any](a Parser[A], b Parser[B], c Parser[C], d Parser[D]) Parser[Quad[A, B, C, D]] {
	abc := Sequence3(a, b, c)
	return New(abc.name+" "+d.name, func(l *token.List) (Quad[A, B, C, D], error) {
		var res Quad[A, B, C, D]
		t, err := abc.Attempt(l)
		if err != nil {
			return res, err
		}
		res.First, res.Second, res.Third = t.First, t.Second, t.Third
		if res.Fourth, err = d.Attempt(l); err != nil {
			return res, err
		}
		return res, nil
	})
}

// Preceded runs prefix then p and yields p's result
func Preceded[P, T any](prefix Parser[P], p Parser[T]) Parser[T] {
	return Map(Sequence2(prefix, p), func(r Pair[P, T]) T { return r.Second }).Named(p.name)
}

// Terminated runs p then suffix and yields p's result
func Terminated[T, S any](p Parser[T], suffix Parser[S]) Parser[T] {
	return Map(Sequence2(p, suffix), func(r Pair[T, S]) T { return r.First }).Named(p.name)
}

// SurroundedBy runs open, p, close and yields p's result
func SurroundedBy[T, O, C any](p Parser[T], open Parser[O], closing Parser[C]) Parser[T] {
	return Map(Sequence3(open, p, closing), func(r Triple[O, T, C]) T { return r.Second }).Named(p.name)
}

// ZeroOrMoreSeparatedBy matches as many p separated by sep as it can.
// It always succeeds. A separator not followed by an item is not consumed.
func ZeroOrMoreSeparatedBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	next := Preceded(sep, p)
	return New(p.name+"*", func(l *token.List) ([]T, error) {
		var items []T
		first, err := p.Attempt(l)
		if err != nil {
			if errors.Is(err, csserr.ErrTooDeep) {
				return nil, err
			}
			return items, nil
		}
		items = append(items, first)
		for {
			v, err := next.Attempt(l)
			if err != nil {
				if errors.Is(err, csserr.ErrTooDeep) {
					return nil, err
				}
				return items, nil
			}
			items = append(items, v)
		}
	})
}

// OneOrMoreSeparatedBy is ZeroOrMoreSeparatedBy requiring at least one item
func OneOrMoreSeparatedBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	many := ZeroOrMoreSeparatedBy(p, sep)
	return New(p.name+"+", func(l *token.List) ([]T, error) {
		start := l.Pos()
		items, err := many.Attempt(l)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			// report why the first item failed, classified as an arity error
			err := csserr.NewArity(p.name, p.name, 1, 0, start)
			if _, cause := p.Attempt(l); cause != nil {
				err = fmt.Errorf("%w: %v", err, cause)
			}
			return nil, err
		}
		return items, nil
	})
}

// CountSeparatedBy matches between minimum and maximum p separated by
// sep. It stops after maximum items, leaving any further ones unconsumed.
func CountSeparatedBy[T, S any](p Parser[T], sep Parser[S], minimum, maximum int) Parser[[]T] {
	next := Preceded(sep, p)
	name := fmt.Sprintf("%s{%d,%d}", p.name, minimum, maximum)
	return New(name, func(l *token.List) ([]T, error) {
		start := l.Pos()
		var items []T
		var cause error
		for len(items) < maximum {
			step := p
			if len(items) > 0 {
				step = next
			}
			v, err := step.Attempt(l)
			if err != nil {
				if errors.Is(err, csserr.ErrTooDeep) {
					return nil, err
				}
				cause = err
				break
			}
			items = append(items, v)
		}
		if len(items) < minimum {
			err := csserr.NewArity(p.name, p.name, minimum, len(items), start)
			if cause != nil {
				err = fmt.Errorf("%w: %v", err, cause)
			}
			return nil, err
		}
		return items, nil
	})
}

// Slot is one position in a MixedSequence or SetOf
type Slot[T any] struct {
	parser   Parser[T]
	optional bool
}

// RequiredSlot marks a slot that must match
func RequiredSlot[T any](p Parser[T]) Slot[T] {
	return Slot[T]{parser: p}
}

// OptionalSlot marks a slot that may be absent
func OptionalSlot[T any](p Parser[T]) Slot[T] {
	return Slot[T]{parser: p, optional: true}
}

func slotNames[T any](slots []Slot[T]) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.parser.name
		if s.optional {
			names[i] += "?"
		}
	}
	return strings.Join(names, " ")
}

// MixedSequence parses slots in order. The separator is required before
// a slot only once some earlier slot has matched, and an optional slot
// is tried together with its separator: when it is absent neither is
// consumed. So [foo, bar?, baz] accepts "foo bar baz" and "foo baz".
// The result has one entry per slot, nil for absent optional slots.
func MixedSequence[T, S any](sep Parser[S], slots ...Slot[T]) Parser[[]*T] {
	withSep := make([]Parser[T], len(slots))
	for i, s := range slots {
		withSep[i] = Preceded(sep, s.parser)
	}
	return New(slotNames(slots), func(l *token.List) ([]*T, error) {
		results := make([]*T, len(slots))
		matched := false
		for i, s := range slots {
			step := s.parser
			if matched {
				step = withSep[i]
			}
			v, err := step.Attempt(l)
			if err != nil {
				if s.optional && !errors.Is(err, csserr.ErrTooDeep) {
					continue
				}
				return nil, err
			}
			results[i] = &v
			matched = true
		}
		return results, nil
	})
}

// SetOf parses the slots in any input order but yields results in slot
// declaration order. Separators follow the MixedSequence rule: one is
// consumed before every matched slot except the first. Each round the
// earliest-declared unmatched slot that matches wins.
func SetOf[T, S any](sep Parser[S], slots ...Slot[T]) Parser[[]*T] {
	withSep := make([]Parser[T], len(slots))
	for i, s := range slots {
		withSep[i] = Preceded(sep, s.parser)
	}
	return New("{"+slotNames(slots)+"}", func(l *token.List) ([]*T, error) {
		results := make([]*T, len(slots))
		lastErr := make([]error, len(slots))
		matched := 0
		for progress := true; progress; {
			progress = false
			for i, s := range slots {
				if results[i] != nil {
					continue
				}
				step := s.parser
				if matched > 0 {
					step = withSep[i]
				}
				v, err := step.Attempt(l)
				if err != nil {
					if errors.Is(err, csserr.ErrTooDeep) {
						return nil, err
					}
					lastErr[i] = err
					continue
				}
				results[i] = &v
				matched++
				progress = true
				break
			}
		}
		for i, s := range slots {
			if results[i] == nil && !s.optional {
				return nil, lastErr[i]
			}
		}
		return results, nil
	})
}

// NotFollowedBy runs p and then fails if q would match next. q is never consumed.
func NotFollowedBy[T, U any](p Parser[T], q Parser[U], message string) Parser[T] {
	return New(p.name, func(l *token.List) (T, error) {
		var zero T
		v, err := p.Attempt(l)
		if err != nil {
			return zero, err
		}
		pos := l.Pos()
		if _, err := q.Attempt(l); err == nil {
			return zero, csserr.NewInvalidValue(p.name, message, pos)
		}
		return v, nil
	})
}

// Lazy defers building a rule until first use, for grammars that refer
// to themselves
func Lazy[T any](name string, build func() Parser[T]) Parser[T] {
	var once sync.Once
	var p Parser[T]
	return New(name, func(l *token.List) (T, error) {
		once.Do(func() { p = build() })
		return p.Attempt(l)
	})
}
