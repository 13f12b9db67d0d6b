package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/pylex/internal/ui/pretty"
	"github.com/yaklabco/pylex/pkg/analysis"
)

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	tables *pretty.TableFormatter
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &SummaryRenderer{
		opts:   opts,
		styles: styles,
		tables: pretty.NewTableFormatter(styles, resolveWidth(opts.Width, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Files == 0 {
		_, err := fmt.Fprintln(r.out, r.styles.Success.Render("No files scanned"))
		return err
	}

	var builder strings.Builder

	builder.WriteString(r.fileTable(report.ByFile))
	if table := r.categoryTable(report.ByCategory); table != "" {
		builder.WriteString("\n")
		builder.WriteString(table)
	}
	if len(report.Findings) > 0 {
		builder.WriteString("\n")
		builder.WriteString(r.findingTable(report.Findings))
	}

	builder.WriteString("\n")
	builder.WriteString(r.totals(report.Totals))

	_, err := io.WriteString(r.out, builder.String())
	return err
}

func (r *SummaryRenderer) fileTable(files []analysis.FileSummary) string {
	columns := []pretty.Column{
		{Header: "File", Flex: true},
		{Header: "Kind"},
		{Header: "Lines", AlignRight: true},
		{Header: "Snippets", AlignRight: true},
		{Header: "Regions", AlignRight: true},
		{Header: "Depth", AlignRight: true},
		{Header: "Open", AlignRight: true},
	}

	rows := make([]pretty.TableRow, 0, len(files))
	for _, file := range files {
		rows = append(rows, pretty.TableRow{
			Cells: []string{
				file.Path,
				string(file.Kind),
				strconv.Itoa(file.Lines),
				strconv.Itoa(file.Snippets),
				strconv.Itoa(file.Regions),
				strconv.Itoa(file.MaxLevel),
				strconv.Itoa(file.OpenStrings),
			},
			Highlight: file.OpenStrings > 0,
		})
	}

	return r.tables.FormatTable("Files", columns, rows)
}

func (r *SummaryRenderer) categoryTable(counts []analysis.CategoryCount) string {
	columns := []pretty.Column{
		{Header: "Category"},
		{Header: "Spans", AlignRight: true},
		{Header: "Files", AlignRight: true},
	}

	rows := make([]pretty.TableRow, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, pretty.TableRow{
			Cells: []string{count.Category, strconv.Itoa(count.Spans), strconv.Itoa(count.Files)},
		})
	}

	return r.tables.FormatTable("Categories", columns, rows)
}

func (r *SummaryRenderer) findingTable(findings []analysis.FindingEntry) string {
	columns := []pretty.Column{
		{Header: "File", Flex: true},
		{Header: "Loc", AlignRight: true},
		{Header: "Message"},
	}

	rows := make([]pretty.TableRow, 0, len(findings))
	for _, entry := range findings {
		rows = append(rows, pretty.TableRow{
			Cells: []string{
				entry.FilePath,
				fmt.Sprintf("%d:%d", entry.Line, entry.Column),
				entry.Message,
			},
			Highlight: true,
		})
	}

	return r.tables.FormatTable("Open strings", columns, rows)
}

func (r *SummaryRenderer) totals(totals analysis.Totals) string {
	fileWord := "files"
	if totals.Files == 1 {
		fileWord = "file"
	}

	parts := []string{
		fmt.Sprintf("%d %s", totals.Files, fileWord),
		fmt.Sprintf("%d lines", totals.Lines),
		fmt.Sprintf("%d regions", totals.Regions),
		fmt.Sprintf("max depth %d", totals.MaxLevel),
	}

	status := r.styles.Success.Render("no open strings")
	if totals.HasFindings() {
		status = r.styles.Failure.Render(fmt.Sprintf("%d open in %d", totals.OpenStrings, totals.FilesWithFinding))
	}

	return r.styles.Bold.Render("Total: ") + strings.Join(parts, ", ") + "; " + status + "\n"
}
