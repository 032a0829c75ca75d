package charparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/cssval/csserr"
)

// String matches lit exactly
func String(lit string) Parser[string] {
	name := strconv.Quote(lit)
	return New(name, func(in Input) (string, Input, error) {
		if !strings.HasPrefix(in.Rest(), lit) {
			return "", in, csserr.NewUnexpectedText("", name, in.Pos(), in.Rest())
		}
		return lit, in.Advance(len(lit)), nil
	})
}

// Regex matches pattern anchored at the current position and yields the
// matched text. It panics if pattern does not compile, like regexp.MustCompile.
func Regex(pattern string) Parser[string] {
	re := regexp.MustCompile(`^(?:` + pattern + `)`)
	name := fmt.Sprintf("/%s/", pattern)
	return New(name, func(in Input) (string, Input, error) {
		loc := re.FindStringIndex(in.Rest())
		if loc == nil {
			return "", in, csserr.NewUnexpectedText("", name, in.Pos(), in.Rest())
		}
		return in.Rest()[:loc[1]], in.Advance(loc[1]), nil
	})
}

// Float matches a signed decimal with optional fraction and exponent
func Float() Parser[float64] {
	numeral := Regex(`[+-]?(?:\d*\.\d+|\d+)(?:[eE][+-]?\d+)?`)
	return MapErr(numeral, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}).Named("number")
}

// OneOf tries each rule at the same position and returns the first success
func OneOf[T any](name string, rules ...Parser[T]) Parser[T] {
	return New(name, func(in Input) (T, Input, error) {
		names := make([]string, 0, len(rules))
		for _, r := range rules {
			v, out, err := r.Attempt(in)
			if err == nil {
				return v, out, nil
			}
			names = append(names, r.Name())
		}
		var zero T
		return zero, in, csserr.NewUnexpectedText(name, strings.Join(names, " or "), in.Pos(), in.Rest())
	})
}

// Map transforms a rule's result
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return New(p.name, func(in Input) (U, Input, error) {
		v, out, err := p.Attempt(in)
		if err != nil {
			var zero U
			return zero, in, err
		}
		return f(v), out, nil
	})
}

// MapErr transforms a rule's result with a conversion that can fail.
// A conversion error fails the rule without consuming input.
func MapErr[T, U any](p Parser[T], f func(T) (U, error)) Parser[U] {
	return New(p.name, func(in Input) (U, Input, error) {
		v, out, err := p.Attempt(in)
		if err != nil {
			var zero U
			return zero, in, err
		}
		u, err := f(v)
		if err != nil {
			var zero U
			return zero, in, csserr.NewInvalidValue(p.name, err.Error(), in.Pos())
		}
		return u, out, nil
	})
}

// Optional always succeeds, yielding nil without consuming input when p fails
func Optional[T any](p Parser[T]) Parser[*T] {
	return New(p.name+"?", func(in Input) (*T, Input, error) {
		v, out, err := p.Attempt(in)
		if err != nil {
			return nil, in, nil
		}
		return &v, out, nil
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

// Sequence2 runs a then b. Wrap a slot in Optional to make it optional.
func Sequence2[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return New(a.name+" "+b.name, func(in Input) (Pair[A, B], Input, error) {
		var res Pair[A, B]
		va, out, err := a.Attempt(in)
		if err != nil {
			return res, in, err
		}
		vb, out, err := b.Attempt(out)
		if err != nil {
			return res, in, err
		}
		return Pair[A, B]{va, vb}, out, nil
	})
}

// Sequence3 runs a, b then c
func Sequence3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[Triple[A, B, C]] {
	ab := Sequence2(a, b)
	return New(ab.name+" "+c.name, func(in Input) (Triple[A, B, C], Input, error) {
		var res Triple[A, B, C]
		vab, out, err := ab.Attempt(in)
		if err != nil {
			return res, in, err
		}
		vc, out, err := c.Attempt(out)
		if err != nil {
			return res, in, err
		}
		return Triple[A, B, C]{vab.First, vab.Second, vc}, out, nil
	})
}

// SeparatedBy matches one or more p separated by sep
func SeparatedBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return New(p.name+"+", func(in Input) ([]T, Input, error) {
		first, out, err := p.Attempt(in)
		if err != nil {
			return nil, in, err
		}
		items := []T{first}
		for {
			_, afterSep, err := sep.Attempt(out)
			if err != nil {
				break
			}
			v, next, err := p.Attempt(afterSep)
			if err != nil {
				// the separator is not consumed when no item follows it
				break
			}
			items = append(items, v)
			out = next
		}
		return items, out, nil
	})
}

// SurroundedBy matches open, p, close and yields p's result
func SurroundedBy[T, O, C any](p Parser[T], open Parser[O], closing Parser[C]) Parser[T] {
	seq := Sequence3(open, p, closing)
	return Map(seq, func(t Triple[O, T, C]) T { return t.Second }).Named(p.name)
}
