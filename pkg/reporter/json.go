package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/pylex/pkg/analysis"
	"github.com/yaklabco/pylex/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string             `json:"path"`
	Kind     analysis.Kind      `json:"kind,omitempty"`
	Lines    int                `json:"lines"`
	Snippets []analysis.Snippet `json:"snippets"`
	Findings []analysis.Finding `json:"findings"`
	Skipped  bool               `json:"skipped,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked      int            `json:"filesChecked"`
	FilesWithFindings int            `json:"filesWithFindings"`
	FilesSkipped      int            `json:"filesSkipped"`
	FilesErrored      int            `json:"filesErrored"`
	Lines             int            `json:"lines"`
	Snippets          int            `json:"snippets"`
	Regions           int            `json:"regions"`
	OpenStrings       int            `json:"openStrings"`
	Categories        map[string]int `json:"categories"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.OpenStrings, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: analysis.ReportVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			Categories: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     displayPath(file.Path, r.opts.WorkingDir),
			Snippets: make([]analysis.Snippet, 0),
			Findings: make([]analysis.Finding, 0),
			Skipped:  file.Skipped,
		}

		switch {
		case file.Error != nil:
			fileResult.Error = file.Error.Error()
		case file.Result != nil:
			res := file.Result
			fileResult.Kind = res.Kind
			fileResult.Lines = res.LineCount
			fileResult.Findings = append(fileResult.Findings, res.Findings...)
			for _, snippet := range res.Snippets {
				if !r.opts.ShowSource {
					snippet.Lines = nil
				}
				fileResult.Snippets = append(fileResult.Snippets, snippet)
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesChecked = stats.FilesProcessed
	output.Summary.FilesWithFindings = stats.FilesWithOpenStrings
	output.Summary.FilesSkipped = stats.FilesSkipped
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.Lines = stats.Lines
	output.Summary.Snippets = stats.Snippets
	output.Summary.Regions = stats.Regions
	output.Summary.OpenStrings = stats.OpenStrings
	for cat, n := range stats.Categories {
		output.Summary.Categories[cat.String()] = n
	}

	return output
}
