package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BracketFrame records an opening bracket that is not closed on its line.
type BracketFrame struct {
	// Char is one of '(', '[' or '{'.
	Char byte

	// Pos is the byte offset of the bracket in the line.
	Pos int
}

// LeadingWhitespace returns the run of spaces and tabs that starts s.
func LeadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// IndentWidth returns the column reached by the leading whitespace of s,
// with tabs advancing to the next multiple of tabWidth.
func IndentWidth(s string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	for i := range len(s) {
		switch s[i] {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width
		}
	}
	return width
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsCommentOnly reports whether the first non-blank character of s is '#'.
func IsCommentOnly(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, " \t"), "#")
}

// StripComment drops everything from the first '#' that is outside a string
// literal. Strings are tracked per quote character with backslash escapes.
func StripComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return s[:i]
		}
	}
	return s
}

// Code returns s without its comment and without surrounding whitespace.
func Code(s string) string {
	return strings.TrimSpace(StripComment(s))
}

// EndsWithColon reports whether the code of s ends in ':'.
func EndsWithColon(s string) bool {
	return strings.HasSuffix(Code(s), ":")
}

// OpenQuote returns the quote character of a single-quoted string left open
// at the end of s, or 0 when every string in s is closed. A comment ends the
// scan.
func OpenQuote(s string) byte {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return 0
		}
	}
	return quote
}

// CountQuote counts unescaped occurrences of quote in s.
func CountQuote(s string, quote byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			n++
		}
	}
	return n
}

// ScanBrackets returns the opening brackets of s left unmatched, in
// left-to-right order, and the number of closing brackets with no opener on
// the line. Brackets inside string literals and comments are ignored; a
// string left open hides the rest of the line.
func ScanBrackets(s string) ([]BracketFrame, int) {
	var (
		frames []BracketFrame
		closed int
		quote  byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			i = len(s)
		case c == '(' || c == '[' || c == '{':
			frames = append(frames, BracketFrame{Char: c, Pos: i})
		case c == ')' || c == ']' || c == '}':
			if len(frames) > 0 {
				frames = frames[:len(frames)-1]
			} else {
				closed++
			}
		}
	}
	if len(frames) == 0 {
		return nil, closed
	}
	return frames, closed
}

// LastWord returns the last whitespace-delimited word of s.
func LastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// FirstWord returns the leading identifier of s after indentation.
func FirstWord(s string) string {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexFunc(s, func(r rune) bool { return !isIdentRune(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}

// ContainsWord reports whether word occurs in s as a whole identifier.
func ContainsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for offset := 0; ; {
		i := strings.Index(s[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (start == 0 || !isIdentRune(before)) && (end == len(s) || !isIdentRune(after)) {
			return true
		}
		offset = start + 1
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
