package syntax

import (
	"strings"
	"unicode/utf8"
)

// Options configures a Highlighter.
type Options struct {
	// DocstringHeuristic classifies a triple-quoted region as a plain string
	// when an '=' precedes the opening marker on its line. When disabled, a
	// region is a docstring only if the marker is the first token of the line.
	DocstringHeuristic bool
}

// DefaultOptions returns the options used by the package-level Highlight.
func DefaultOptions() Options {
	return Options{DocstringHeuristic: true}
}

// Highlighter applies a PatternTable to single lines, threading a LineState
// from one line to the next. A Highlighter holds no mutable state and is safe
// for concurrent use.
type Highlighter struct {
	opts  Options
	table *PatternTable
}

// NewHighlighter creates a highlighter over the default pattern table.
func NewHighlighter(opts Options) *Highlighter {
	return &Highlighter{opts: opts, table: DefaultPatternTable()}
}

// Options returns the options the highlighter was created with.
func (h *Highlighter) Options() Options {
	return h.opts
}

//nolint:gochecknoglobals // Stateless, shared by Highlight.
var defaultHighlighter = NewHighlighter(DefaultOptions())

// Highlight tokenizes one line with the default options.
func Highlight(text string, prev LineState) ([]Span, LineState) {
	return defaultHighlighter.Highlight(text, prev)
}

// Highlight returns the spans of text in left-to-right order and the state
// the line ends in. prev is the state the previous line ended in, or
// StateNormal for the first line.
func (h *Highlighter) Highlight(text string, prev LineState) ([]Span, LineState) {
	var spans []Span
	pos := 0
	state := StateNormal

	if prev.Open() {
		end, ok := findClose(text, 0, prev.Mode.Quote())
		if !ok {
			if text != "" {
				spans = append(spans, Span{Start: 0, Length: len(text), Category: prev.stringCategory()})
			}
			if prev.Mode.IsTriple() || continues(text) {
				return spans, prev
			}
			return spans, StateNormal
		}

		start := 0
		if prev.Mode.IsTriple() {
			start = min(firstNonSpace(text), end)
		}
		spans = append(spans, Span{Start: start, Length: end - start, Category: prev.stringCategory()})
		state = LineState{Mode: ModeNormal, IsDocstring: prev.IsDocstring && prev.Mode.IsTriple()}
		pos = end
	}

	lineStart := firstNonSpace(text)
	previousKeyword := ""

	for pos < len(text) {
		if isSpace(text[pos]) {
			pos++
			continue
		}

		if loc := triplePattern.FindStringSubmatchIndex(text[pos:]); loc != nil {
			marker := text[pos+loc[2] : pos+loc[3]]
			docstring := h.isDocstring(text[:pos])
			category := CategoryString
			if docstring {
				category = CategoryDocstring
			}

			if end, ok := findClose(text, pos+loc[1], marker); ok {
				spans = append(spans, Span{Start: pos, Length: end - pos, Category: category})
				pos = end
				previousKeyword = ""
				continue
			}

			end := len(strings.TrimRight(text, " \t\r\f\v"))
			spans = append(spans, Span{Start: pos, Length: end - pos, Category: category})
			return spans, LineState{Mode: tripleMode(marker), IsDocstring: docstring}
		}

		rule, n, ok := h.table.match(text, pos, pos == lineStart)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[pos:])
			pos += size
			previousKeyword = ""
			continue
		}

		category := rule.Category
		switch rule.Name {
		case RuleWord:
			word := text[pos : pos+n]
			category = classifyWord(word, previousKeyword)
			previousKeyword = ""
			if category == CategoryKeyword {
				previousKeyword = word
			}
		case RuleOpenDouble, RuleOpenSingle:
			spans = append(spans, Span{Start: pos, Length: n, Category: category})
			if continues(text) {
				return spans, LineState{Mode: rule.Opens}
			}
			return spans, StateNormal
		default:
			previousKeyword = ""
		}

		spans = append(spans, Span{Start: pos, Length: n, Category: category})
		pos += n
	}

	return spans, state
}

// isDocstring classifies a triple-quoted region from the text before its marker.
func (h *Highlighter) isDocstring(before string) bool {
	if h.opts.DocstringHeuristic {
		return !strings.Contains(before, "=")
	}
	return strings.TrimSpace(before) == ""
}

// findClose returns the offset just past the first unescaped occurrence of
// quote at or after from.
func findClose(text string, from int, quote string) (int, bool) {
	for i := from; i < len(text); i++ {
		if text[i] == '\\' {
			i++
			continue
		}
		if strings.HasPrefix(text[i:], quote) {
			return i + len(quote), true
		}
	}
	return 0, false
}

// continues reports whether text ends in an unescaped backslash. Only such a
// line carries an unterminated single-quoted string onto the next line.
func continues(text string) bool {
	trailing := len(text) - len(strings.TrimRight(text, `\`))
	return trailing%2 == 1
}

func firstNonSpace(text string) int {
	for i := range len(text) {
		if !isSpace(text[i]) {
			return i
		}
	}
	return len(text)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v' || c == '\n'
}
