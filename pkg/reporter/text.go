package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/pylex/internal/ui/pretty"
	"github.com/yaklabco/pylex/pkg/analysis"
	"github.com/yaklabco/pylex/pkg/runner"
	"github.com/yaklabco/pylex/pkg/scheme"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	lister *sourceLister
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
// It fails if opts.ColorScheme names an unknown scheme.
func NewTextReporter(opts Options) (*TextReporter, error) {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	var cache *scheme.Cache
	if colorEnabled {
		var err error
		cache, err = scheme.NewCache(opts.ColorScheme)
		if err != nil {
			return nil, err
		}
	}

	return &TextReporter{
		opts:   opts,
		styles: styles,
		lister: newSourceLister(styles, cache, resolveWidth(opts.Width, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}, nil
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to scan."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's listing and findings and returns the finding count.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil {
		return 0
	}

	findings := file.Result.Findings
	if len(findings) == 0 && !r.opts.ShowSource {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(findings)))

	if r.opts.ShowSource {
		r.lister.list(r.bw, file.Result)
	}

	for _, finding := range findings {
		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = lineText(file.Result, finding.Line)
		}
		fmt.Fprint(r.bw, r.styles.FormatFinding(path, finding, r.opts.ShowContext, sourceLine))
	}

	fmt.Fprintln(r.bw)

	return len(findings)
}

// lineText returns the text of 1-based file line lineNo, or "" when no
// snippet covers it.
func lineText(file *analysis.FileResult, lineNo int) string {
	idx := lineNo - 1
	for _, snippet := range file.Snippets {
		rel := idx - snippet.StartLine
		if rel >= 0 && rel < len(snippet.Lines) {
			return snippet.Lines[rel].Text
		}
	}
	return ""
}
