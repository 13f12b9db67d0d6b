package runner

import (
	"github.com/yaklabco/pylex/pkg/analysis"
	"github.com/yaklabco/pylex/pkg/syntax"
)

// FileOutcome wraps an analysis result with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the analysis for this file.
	// Nil if the file was skipped or encountered an error.
	Result *analysis.FileResult

	// Skipped is set for files that turned out not to be text.
	Skipped bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully analyzed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (e.g. binary content).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// Lines is the total number of lines across processed files.
	Lines int

	// Snippets is the number of analyzed documents (files and fences).
	Snippets int

	// Regions is the number of fold regions found.
	Regions int

	// OpenStrings is the number of documents that end inside a string.
	OpenStrings int

	// FilesWithOpenStrings is the number of files with at least one finding.
	FilesWithOpenStrings int

	// Categories maps span categories to counts.
	Categories map[syntax.Category]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFindings reports whether any document ended inside a string.
func (r *Result) HasFindings() bool {
	if r == nil {
		return false
	}
	return r.Stats.OpenStrings > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Analyses returns the analysis results of processed files, in order.
func (r *Result) Analyses() []*analysis.FileResult {
	if r == nil {
		return nil
	}
	out := make([]*analysis.FileResult, 0, len(r.Files))
	for _, file := range r.Files {
		if file.Result != nil {
			out = append(out, file.Result)
		}
	}
	return out
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		Categories: make(map[syntax.Category]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	case outcome.Result == nil:
		return
	}

	file := outcome.Result
	r.Stats.FilesProcessed++
	r.Stats.Lines += file.LineCount
	r.Stats.Snippets += len(file.Snippets)
	r.Stats.Regions += file.RegionCount()
	r.Stats.OpenStrings += len(file.Findings)
	if len(file.Findings) > 0 {
		r.Stats.FilesWithOpenStrings++
	}
	for cat, n := range file.Categories() {
		r.Stats.Categories[cat] += n
	}
}
