// Package pretty renders scan findings, source listings and summaries
// for the terminal with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette indices.
const (
	colorGray    = lipgloss.Color("8")
	colorSilver  = lipgloss.Color("7")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("14")
)

// Styles holds the lipgloss styles used by the formatters in this package.
type Styles struct {
	Warning lipgloss.Style

	FilePath   lipgloss.Style
	Mode       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	LineNumber lipgloss.Style
	FoldMarker lipgloss.Style
	Language   lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableHighlight lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the style set. With colorEnabled false every style
// renders its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	pick := func(colored lipgloss.Style) lipgloss.Style {
		if colorEnabled {
			return colored
		}
		return plain
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return pick(plain.Foreground(c))
	}
	bold := pick(plain.Bold(true))

	return &Styles{
		Warning: pick(plain.Foreground(colorYellow).Bold(true)),

		FilePath:   bold,
		Mode:       fg(colorGray),
		Message:    plain,
		SourceLine: fg(colorSilver),
		Caret:      fg(colorYellow),

		LineNumber: fg(colorGray),
		FoldMarker: fg(colorCyan),
		Language:   pick(plain.Foreground(colorMagenta).Italic(true)),

		SummaryTitle: bold,
		SummaryValue: plain,
		Success:      pick(plain.Foreground(colorGreen).Bold(true)),
		Failure:      pick(plain.Foreground(colorYellow).Bold(true)),

		TableHeader:    pick(plain.Bold(true).Foreground(colorSilver)),
		TableHighlight: fg(colorYellow),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled resolves a color mode of "always", "never" or "auto"
// against writer. Auto, the fallback for any other value, enables color
// only for a terminal and only while NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
