// Package reporter renders scan results as text, JSON or summary tables.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/pylex/pkg/analysis"
	"github.com/yaklabco/pylex/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes scan results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of open-string findings reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an aggregated analysis.Report. Unlike a Reporter it
// never sees per-file results.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// reporterFacade summarizes a runner.Result and hands the report to a Renderer.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by summarizing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Summarize(result.Analyses(), f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.OpenStrings, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeFindings:   true,
			IncludeByFile:     true,
			IncludeByCategory: true,
			SortBy:            analysis.SortByCount,
			SortDesc:          true,
			WorkingDir:        opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	if opts.ColorScheme == "" {
		opts.ColorScheme = defaults.ColorScheme
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	default:
		return NewTextReporter(opts)
	}
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}
