package token

import "slices"

// DefaultMaxDepth bounds rule nesting for a single parse
const DefaultMaxDepth = 256

// List is an ordered token buffer with a cursor. The cursor is the only
// mutable state; saving and restoring it is how the grammar layer
// backtracks.
type List struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
}

// NewList creates a List positioned at the first token
func NewList(tokens ...Token) *List {
	return &List{tokens: tokens, maxDepth: DefaultMaxDepth}
}

// Peek returns the token under the cursor without advancing
func (l *List) Peek() (Token, bool) {
	if l.pos >= len(l.tokens) {
		return Token{}, false
	}
	return l.tokens[l.pos], true
}

// Next returns the token under the cursor and advances by one.
// It returns false at end of input and leaves the cursor in place.
func (l *List) Next() (Token, bool) {
	t, ok := l.Peek()
	if ok {
		l.pos++
	}
	return t, ok
}

// Pos returns the cursor, usable as a checkpoint for Reset
func (l *List) Pos() int {
	return l.pos
}

// Reset moves the cursor to pos, clamped to [0, Len()]
func (l *List) Reset(pos int) {
	l.pos = max(0, min(pos, len(l.tokens)))
}

// Len returns the total number of tokens
func (l *List) Len() int {
	return len(l.tokens)
}

// AtEnd reports whether every token has been consumed
func (l *List) AtEnd() bool {
	return l.pos >= len(l.tokens)
}

// Remaining returns a copy of the unconsumed tokens
func (l *List) Remaining() []Token {
	return slices.Clone(l.tokens[l.pos:])
}

// Tokens returns a copy of the whole buffer
func (l *List) Tokens() []Token {
	return slices.Clone(l.tokens)
}

// SetMaxDepth changes the nesting bound checked by Enter.
// Values below one restore DefaultMaxDepth.
func (l *List) SetMaxDepth(n int) {
	if n < 1 {
		n = DefaultMaxDepth
	}
	l.maxDepth = n
}

// MaxDepth returns the nesting bound checked by Enter
func (l *List) MaxDepth() int {
	return l.maxDepth
}

// Depth returns how many rules are currently entered
func (l *List) Depth() int {
	return l.depth
}

// Enter records that a rule started running. It returns false, without
// changing the depth, when the bound would be exceeded.
func (l *List) Enter() bool {
	if l.depth >= l.maxDepth {
		return false
	}
	l.depth++
	return true
}

// Leave undoes one successful Enter
func (l *List) Leave() {
	if l.depth > 0 {
		l.depth--
	}
}

// String renders the unconsumed tokens as CSS text
func (l *List) String() string {
	return Join(l.tokens[l.pos:])
}
