// Package syntax implements the lexical core of pylex: the pattern table,
// the per-line carried state and the line highlighter for Python source.
//
// Everything in this package is a pure function of its inputs. The
// highlighter never returns errors; malformed input (unterminated strings,
// stray quotes, unbalanced brackets) degrades to a best-effort span list.
package syntax

import "fmt"

// Category is the closed set of style categories a span can carry.
type Category uint8

// Style categories.
const (
	CategoryWord Category = iota
	CategoryKeyword
	CategoryBuiltin
	CategoryOperator
	CategoryPunctuation
	CategoryDecorator
	CategoryClass
	CategoryFunction
	CategoryString
	CategoryDocstring
	CategoryComment
	CategorySelf
	CategoryNumber
	CategoryPredefined

	categoryCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var categoryNames = [categoryCount]string{
	CategoryWord:        "word",
	CategoryKeyword:     "keyword",
	CategoryBuiltin:     "builtin",
	CategoryOperator:    "operator",
	CategoryPunctuation: "punctuation",
	CategoryDecorator:   "decorator",
	CategoryClass:       "class",
	CategoryFunction:    "function",
	CategoryString:      "string",
	CategoryDocstring:   "docstring",
	CategoryComment:     "comment",
	CategorySelf:        "self",
	CategoryNumber:      "number",
	CategoryPredefined:  "predefined",
}

// String returns the lowercase category name.
func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so categories serialize by name.
func (c Category) MarshalText() ([]byte, error) {
	if c >= categoryCount {
		return nil, fmt.Errorf("invalid category %d", c)
	}
	return []byte(categoryNames[c]), nil
}

// ParseCategory converts a category name back into a Category.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return CategoryWord, fmt.Errorf("unknown category %q", name)
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := range categoryCount {
		out = append(out, c)
	}
	return out
}

// IsStringLike reports whether the category styles string content.
func (c Category) IsStringLike() bool {
	return c == CategoryString || c == CategoryDocstring
}

// Span is a styled run of one line, in byte offsets.
type Span struct {
	Start    int      `json:"start"`
	Length   int      `json:"length"`
	Category Category `json:"category"`
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Start + s.Length
}
