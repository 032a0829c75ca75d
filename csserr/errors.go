// Package csserr defines the errors reported by the CSS value parsers.
package csserr

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/cssval/token"
)

// Sentinel errors for error type checking
var (
	// ErrUnexpectedToken indicates a specific token was required but another was found
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnexpectedEOF indicates a token was required but the input ended
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrNoAlternative indicates none of a rule's alternatives matched
	ErrNoAlternative = errors.New("no alternative matched")

	// ErrArity indicates a repetition matched fewer times than required
	ErrArity = errors.New("too few repetitions")

	// ErrTrailingInput indicates input remained after a complete parse
	ErrTrailingInput = errors.New("trailing input")

	// ErrInvalidValue indicates a structurally valid value failed a semantic check
	ErrInvalidValue = errors.New("invalid value")

	// ErrTooDeep indicates the grammar nesting bound was exceeded
	ErrTooDeep = errors.New("nesting too deep")
)

// ParseError is the single error type returned by parsers. Kind is one
// of the sentinels above; Pos is a token index for token-level rules and
// a byte offset for char-level rules.
type ParseError struct {
	Kind    error
	Rule    string
	Message string
	Pos     int
	Token   *token.Token
}

func (e *ParseError) Error() string {
	if e.Rule == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// describe names what was found at the failure point
func describe(found *token.Token) string {
	if found == nil {
		return "end of input"
	}
	return found.Describe()
}

// NewUnexpectedToken creates an error for a required token that was not
// found. A nil found token means the input ended.
func NewUnexpectedToken(rule, expected string, pos int, found *token.Token) error {
	kind := ErrUnexpectedToken
	if found == nil {
		kind = ErrUnexpectedEOF
	}
	return &ParseError{
		Kind:    kind,
		Rule:    rule,
		Message: fmt.Sprintf("expected %s, found %s", expected, describe(found)),
		Pos:     pos,
		Token:   found,
	}
}

// NewUnexpectedText creates an unexpected-input error for char-level
// rules, which have no tokens
func NewUnexpectedText(rule, expected string, pos int, rest string) error {
	kind := ErrUnexpectedToken
	found := "end of input"
	if rest == "" {
		kind = ErrUnexpectedEOF
	} else {
		found = fmt.Sprintf("%q", truncate(rest, 16))
	}
	return &ParseError{
		Kind:    kind,
		Rule:    rule,
		Message: fmt.Sprintf("expected %s, found %s", expected, found),
		Pos:     pos,
	}
}

// NewNoAlternative creates an error for an exhausted alternation
func NewNoAlternative(rule string, alternatives []string, pos int, found *token.Token) error {
	return &ParseError{
		Kind:    ErrNoAlternative,
		Rule:    rule,
		Message: fmt.Sprintf("expected %s, found %s", strings.Join(alternatives, " or "), describe(found)),
		Pos:     pos,
		Token:   found,
	}
}

// NewArity creates an error for a repetition that matched too few times
func NewArity(rule, item string, minimum, got, pos int) error {
	return &ParseError{
		Kind:    ErrArity,
		Rule:    rule,
		Message: fmt.Sprintf("expected at least %d %s, found %d", minimum, item, got),
		Pos:     pos,
	}
}

// NewTrailingInput creates an error for unconsumed input after a parse
func NewTrailingInput(rule string, pos int, found token.Token) error {
	return &ParseError{
		Kind:    ErrTrailingInput,
		Rule:    rule,
		Message: fmt.Sprintf("unexpected %s after value", found.Describe()),
		Pos:     pos,
		Token:   &found,
	}
}

// NewInvalidValue creates an error for a value rejected by a semantic check
func NewInvalidValue(rule, message string, pos int) error {
	return &ParseError{
		Kind:    ErrInvalidValue,
		Rule:    rule,
		Message: message,
		Pos:     pos,
	}
}

// NewTooDeep creates an error for exceeding the nesting bound
func NewTooDeep(rule string, limit, pos int) error {
	return &ParseError{
		Kind:    ErrTooDeep,
		Rule:    rule,
		Message: fmt.Sprintf("grammar nesting exceeds %d levels", limit),
		Pos:     pos,
	}
}

// Position extracts the failure position from err, if it is a ParseError
func Position(err error) (int, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Pos, true
	}
	return 0, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
