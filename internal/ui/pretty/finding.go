package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/pylex/pkg/analysis"
)

// Fold gutter markers.
const (
	FoldOpen = "▾"
	FoldBody = "│"
)

// FormatFinding formats an open-string finding for terminal output.
func (s *Styles) FormatFinding(path string, finding analysis.Finding, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		finding.Line,
		finding.Column,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Warning.Render("warning"),
		s.Message.Render(finding.Message),
		s.Mode.Render("("+finding.Mode.String()+")"),
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, finding.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
// Column is a 1-based byte offset; the caret is placed by display width.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		prefix := line
		if column-1 < len(line) {
			prefix = line[:column-1]
		}
		padding := indent + strings.Repeat(" ", runewidth.StringWidth(prefix))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, findingCount int) string {
	header := s.FilePath.Render(path)
	switch findingCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 open string)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d open strings)", findingCount))
	}
	return header
}

// FormatSnippetHeader labels a Markdown fence by language and first line.
func (s *Styles) FormatSnippetHeader(language string, line int) string {
	if language == "" {
		language = "python"
	}
	return s.Language.Render(language) + s.Dim.Render(" fence at line "+strconv.Itoa(line))
}

// FormatGutter renders a right-aligned line number and a fold marker.
// Width is the number of digits reserved for line numbers.
func (s *Styles) FormatGutter(lineNo, width int, foldStart, inFold bool) string {
	marker := " "
	switch {
	case foldStart:
		marker = s.FoldMarker.Render(FoldOpen)
	case inFold:
		marker = s.Dim.Render(FoldBody)
	}
	number := fmt.Sprintf("%*d", width, lineNo)
	return s.LineNumber.Render(number) + " " + marker + " "
}
