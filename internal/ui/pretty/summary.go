package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/pylex/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 open strings in 1 file (12 files, 840 lines scanned)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	scanned := s.Dim.Render(fmt.Sprintf(" (%d %s, %d lines scanned)",
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles), stats.Lines))

	var msg string
	if stats.OpenStrings == 0 {
		msg = s.Success.Render("No open strings") + scanned
	} else {
		msg = s.Failure.Render(fmt.Sprintf("%d %s", stats.OpenStrings,
			plural(stats.OpenStrings, "open string", "open strings"))) +
			fmt.Sprintf(" in %d %s", stats.FilesWithOpenStrings,
				plural(stats.FilesWithOpenStrings, wordFile, wordFiles)) +
			scanned
	}

	var extra []string
	if stats.FilesSkipped > 0 {
		extra = append(extra, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		extra = append(extra, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if len(extra) > 0 {
		msg += ", " + strings.Join(extra, ", ")
	}

	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files scanned:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Dim.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Lines:             " + s.SummaryValue.Render(strconv.Itoa(stats.Lines)) + "\n")
	builder.WriteString("  Snippets:          " + s.SummaryValue.Render(strconv.Itoa(stats.Snippets)) + "\n")
	builder.WriteString("  Fold regions:      " + s.SummaryValue.Render(strconv.Itoa(stats.Regions)) + "\n")

	if stats.OpenStrings > 0 {
		builder.WriteString("  Open strings:      " +
			s.Failure.Render(strconv.Itoa(stats.OpenStrings)) + "\n")
	}

	builder.WriteString("\n")

	if stats.OpenStrings > 0 {
		builder.WriteString(s.Failure.Render("Scan found unterminated strings"))
	} else {
		builder.WriteString(s.Success.Render("Scan passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
