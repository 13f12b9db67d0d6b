package reporter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/yaklabco/pylex/internal/ui/pretty"
	"github.com/yaklabco/pylex/pkg/analysis"
	"github.com/yaklabco/pylex/pkg/scheme"
	"github.com/yaklabco/pylex/pkg/syntax"
)

const clipMarker = "…"

// resolveWidth turns Options.Width into a clip width; 0 means no clipping.
func resolveWidth(width int, w io.Writer) int {
	switch {
	case width > 0:
		return width
	case width < 0:
		return 0
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return cols
}

// sourceLister prints analyzed lines behind a line-number and fold gutter.
type sourceLister struct {
	styles *pretty.Styles
	cache  *scheme.Cache // nil renders plain text
	width  int
}

func newSourceLister(styles *pretty.Styles, cache *scheme.Cache, width int) *sourceLister {
	return &sourceLister{styles: styles, cache: cache, width: width}
}

// list writes every snippet of file.
func (l *sourceLister) list(w io.Writer, file *analysis.FileResult) {
	digits := len(strconv.Itoa(max(file.LineCount, 1)))

	for _, snippet := range file.Snippets {
		if file.Kind == analysis.KindMarkdown {
			fmt.Fprintln(w, l.styles.FormatSnippetHeader(snippet.Language, snippet.StartLine+1))
		}

		starts, body := foldMarks(snippet.Regions, len(snippet.Lines))
		avail := 0
		if l.width > 0 {
			// digits, space, marker, space
			avail = max(l.width-digits-3, 1)
		}

		for i, line := range snippet.Lines {
			gutter := l.styles.FormatGutter(snippet.StartLine+i+1, digits, starts[i], body[i])
			text, spans, clipped := clipLine(line.Text, line.Spans, avail)

			rendered := text
			if l.cache != nil {
				rendered = l.cache.Render(text, spans)
			}
			if clipped {
				rendered += l.styles.Dim.Render(clipMarker)
			}
			fmt.Fprintln(w, gutter+rendered)
		}
	}
}

// foldMarks flags region header lines and region body lines.
func foldMarks(regions []analysis.Region, n int) (starts, body []bool) {
	starts = make([]bool, n)
	body = make([]bool, n)
	for _, region := range regions {
		if region.Start < n {
			starts[region.Start] = true
		}
		for i := region.Start + 1; i <= region.End && i < n; i++ {
			body[i] = true
		}
	}
	return starts, body
}

// clipLine cuts text to at most width display columns, reserving one column
// for the clip marker, and trims spans to the kept bytes. A width of 0 keeps
// the line whole.
func clipLine(text string, spans []syntax.Span, width int) (string, []syntax.Span, bool) {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text, spans, false
	}

	limit := width - runewidth.StringWidth(clipMarker)
	cut := 0
	cols := 0
	for cut < len(text) {
		r, size := utf8.DecodeRuneInString(text[cut:])
		w := runewidth.RuneWidth(r)
		if cols+w > limit {
			break
		}
		cols += w
		cut += size
	}

	clipped := make([]syntax.Span, 0, len(spans))
	for _, span := range spans {
		if span.Start >= cut {
			break
		}
		if span.End() > cut {
			span.Length = cut - span.Start
		}
		clipped = append(clipped, span)
	}

	return text[:cut], clipped, true
}
