// Package scheme resolves style categories to terminal styles for a named
// color scheme. Schemes come from the chroma style registry; resolved styles
// are cached per (category, scheme) and dropped when the scheme changes.
package scheme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/pylex/pkg/syntax"
)

// DefaultScheme is the scheme used when none is configured.
const DefaultScheme = "monokai"

// tokenTypes maps each category to the chroma token type whose style it borrows.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tokenTypes = map[syntax.Category]chroma.TokenType{
	syntax.CategoryWord:        chroma.Name,
	syntax.CategoryKeyword:     chroma.Keyword,
	syntax.CategoryBuiltin:     chroma.NameBuiltin,
	syntax.CategoryOperator:    chroma.Operator,
	syntax.CategoryPunctuation: chroma.Punctuation,
	syntax.CategoryDecorator:   chroma.NameDecorator,
	syntax.CategoryClass:       chroma.NameClass,
	syntax.CategoryFunction:    chroma.NameFunction,
	syntax.CategoryString:      chroma.LiteralString,
	syntax.CategoryDocstring:   chroma.LiteralStringDoc,
	syntax.CategoryComment:     chroma.Comment,
	syntax.CategorySelf:        chroma.NameBuiltinPseudo,
	syntax.CategoryNumber:      chroma.LiteralNumber,
	syntax.CategoryPredefined:  chroma.NameVariableMagic,
}

// Names returns the available scheme names in sorted order.
func Names() []string {
	return styles.Names()
}

// Exists reports whether name is a registered scheme.
func Exists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

type key struct {
	category syntax.Category
	scheme   string
}

// Cache memoizes category styles for the active scheme.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	scheme  string
	entries map[key]lipgloss.Style
}

// NewCache returns a cache for the named scheme.
func NewCache(name string) (*Cache, error) {
	c := &Cache{entries: make(map[key]lipgloss.Style)}
	if err := c.SetScheme(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Scheme returns the active scheme name.
func (c *Cache) Scheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scheme
}

// SetScheme switches the active scheme. Cached styles of the previous scheme
// are discarded.
func (c *Cache) SetScheme(name string) error {
	if name == "" {
		name = DefaultScheme
	}
	if !Exists(name) {
		return fmt.Errorf("unknown color scheme %q", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if name != c.scheme {
		c.scheme = name
		clear(c.entries)
	}
	return nil
}

// Len returns the number of cached styles.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Style returns the style for category under the active scheme.
func (c *Cache) Style(category syntax.Category) lipgloss.Style {
	c.mu.RLock()
	k := key{category: category, scheme: c.scheme}
	style, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		return style
	}

	style = build(styles.Get(k.scheme), category)

	c.mu.Lock()
	defer c.mu.Unlock()
	if k.scheme == c.scheme {
		c.entries[k] = style
	}
	return style
}

// Render styles text according to spans. Text outside any span is left plain.
func (c *Cache) Render(text string, spans []syntax.Span) string {
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End() > len(text) {
			continue
		}
		b.WriteString(text[pos:s.Start])
		b.WriteString(c.Style(s.Category).Render(text[s.Start:s.End()]))
		pos = s.End()
	}
	b.WriteString(text[pos:])
	return b.String()
}

func build(style *chroma.Style, category syntax.Category) lipgloss.Style {
	if style == nil {
		style = styles.Fallback
	}
	entry := style.Get(tokenTypes[category])

	out := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		out = out.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		out = out.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		out = out.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		out = out.Underline(true)
	}
	return out
}
