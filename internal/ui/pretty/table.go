package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFlexWidth     = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// Column describes one table column.
type Column struct {
	Header string

	// AlignRight right-aligns cells, for numeric columns.
	AlignRight bool

	// Flex marks the column that shrinks when the table is wider than the
	// terminal. Cells in a flex column keep their tail, so file names survive.
	Flex bool
}

// TableRow represents a single row in a table.
type TableRow struct {
	Cells []string

	// Highlight renders the row with the TableHighlight style.
	Highlight bool
}

// TableFormatter formats rows as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats rows under a header. Returns "" when there are no rows.
func (t *TableFormatter) FormatTable(title string, columns []Column, rows []TableRow) string {
	if len(rows) == 0 || len(columns) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(columns, rows)

	var builder strings.Builder

	if title != "" {
		builder.WriteString(t.styles.Bold.Render(title))
		builder.WriteString("\n")
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	builder.WriteString(t.styles.TableHeader.Render(t.formatCells(columns, widths, headers)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		line := t.formatCells(columns, widths, row.Cells)
		if row.Highlight {
			line = t.styles.TableHighlight.Render(line)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines column widths from content, shrinking the
// flex column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(columns []Column, rows []TableRow) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col.Header)
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row.Cells) {
				widths[i] = max(widths[i], runewidth.StringWidth(row.Cells[i]))
			}
		}
	}

	total := calculateTotalWidth(widths)
	if total <= t.termWidth {
		return widths
	}
	for i, col := range columns {
		if !col.Flex {
			continue
		}
		excess := total - t.termWidth
		widths[i] = max(min(minFlexWidth, widths[i]), widths[i]-excess)
		break
	}
	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func calculateTotalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w + tablePadding
	}
	return total
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, calculateTotalWidth(widths)))
}

// formatCells pads and truncates cells into one line.
func (t *TableFormatter) formatCells(columns []Column, widths []int, cells []string) string {
	var builder strings.Builder
	builder.WriteString(" ")
	for i, col := range columns {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if col.Flex {
			cell = truncateFilePath(cell, widths[i])
		} else {
			cell = truncateString(cell, widths[i])
		}

		pad := strings.Repeat(" ", max(0, widths[i]-runewidth.StringWidth(cell)))
		if col.AlignRight {
			builder.WriteString(pad + cell)
		} else {
			builder.WriteString(cell + pad)
		}
		if i < len(columns)-1 {
			builder.WriteString(strings.Repeat(" ", tablePadding))
		}
	}
	return strings.TrimRight(builder.String(), " ")
}

// truncateString truncates a string to maxWidth display columns, adding "..." if truncated.
func truncateString(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(str, maxWidth, "")
	}
	return runewidth.Truncate(str, maxWidth, ellipsis)
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	keep := maxWidth - len(ellipsis)
	prefix := ellipsis
	if keep <= 0 {
		keep = maxWidth
		prefix = ""
	}
	runes := []rune(path)
	width := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > keep {
			break
		}
		width += w
		start--
	}
	return prefix + string(runes[start:])
}
