// Package position converts between the byte columns tree-sitter reports
// and the UTF-16 columns LSP clients use.
package position

import (
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteOffset converts a UTF-16 column in s to a byte offset.
// A column inside a surrogate pair clamps to the start of that rune.
func UTF16ToByteOffset(s string, utf16Col int) int {
	if utf16Col <= 0 {
		return 0
	}

	units := 0
	offset := 0
	for offset < len(s) && units < utf16Col {
		r, size := utf8.DecodeRuneInString(s[offset:])
		if r == utf8.RuneError && size == 1 {
			offset++
			units++
			continue
		}
		n := utf16.RuneLen(r)
		if n == 2 && units+1 == utf16Col {
			break
		}
		units += n
		offset += size
	}
	return offset
}

// ByteOffsetToUTF16 converts a byte offset in s to a UTF-16 column. An
// offset inside a multi-byte rune counts up to the start of that rune.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	byteOffset = min(byteOffset, len(s))

	units := 0
	for offset := 0; offset < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[offset:])
		if offset+size > byteOffset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		offset += size
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units
func StringLengthUTF16(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}

// Lines splits content into lines without their terminators
type Lines []string

// NewLines indexes content by line
func NewLines(content string) Lines {
	return strings.Split(content, "\n")
}

// Line returns line n, or "" when n is out of range
func (l Lines) Line(n uint32) string {
	if int(n) >= len(l) {
		return ""
	}
	return strings.TrimSuffix(l[n], "\r")
}

// ToUTF16 converts a byte column on line n to a UTF-16 column
func (l Lines) ToUTF16(n, byteCol uint32) uint32 {
	return clamp(ByteOffsetToUTF16(l.Line(n), int(byteCol)))
}

// ToByte converts a UTF-16 column on line n to a byte column
func (l Lines) ToByte(n, utf16Col uint32) uint32 {
	return clamp(UTF16ToByteOffset(l.Line(n), int(utf16Col)))
}

func clamp(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n) //nolint:gosec // G115: bounded above
}
