package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/pylex/pkg/syntax"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// Summarize aggregates file results into a Report in a single pass.
// Nil entries are skipped.
func Summarize(results []*FileResult, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	spans := make(map[syntax.Category]int)
	files := make(map[syntax.Category]int)

	for _, file := range results {
		if file == nil {
			continue
		}

		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		summary := FileSummary{
			Path:        displayPath,
			Kind:        file.Kind,
			Lines:       file.LineCount,
			Snippets:    len(file.Snippets),
			Regions:     file.RegionCount(),
			MaxLevel:    file.MaxLevel(),
			OpenStrings: len(file.Findings),
		}

		report.Totals.Files++
		report.Totals.Lines += summary.Lines
		report.Totals.Snippets += summary.Snippets
		report.Totals.Regions += summary.Regions
		report.Totals.OpenStrings += summary.OpenStrings
		report.Totals.MaxLevel = max(report.Totals.MaxLevel, summary.MaxLevel)
		if summary.OpenStrings > 0 {
			report.Totals.FilesWithFinding++
		}

		for cat, n := range file.Categories() {
			spans[cat] += n
			files[cat]++
			report.Totals.Spans += n
		}

		if opts.IncludeFindings {
			for _, finding := range file.Findings {
				report.Findings = append(report.Findings, FindingEntry{FilePath: displayPath, Finding: finding})
			}
		}
		if opts.IncludeByFile {
			report.ByFile = append(report.ByFile, summary)
		}
	}

	if opts.IncludeByCategory {
		for _, cat := range syntax.Categories() {
			if spans[cat] == 0 {
				continue
			}
			report.ByCategory = append(report.ByCategory, CategoryCount{
				Category: cat.String(),
				Spans:    spans[cat],
				Files:    files[cat],
			})
		}
		sortCategories(report.ByCategory, opts.SortBy, opts.SortDesc)
	}
	sortFiles(report.ByFile, opts.SortBy, opts.SortDesc)

	return report
}

func sortCategories(counts []CategoryCount, sortBy SortField, desc bool) {
	slices.SortStableFunc(counts, func(left, right CategoryCount) int {
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Category, right.Category)
		default: // SortByCount
			result := cmp.Compare(left.Spans, right.Spans)
			if desc {
				result = -result
			}
			return result
		}
	})
}

func sortFiles(files []FileSummary, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileSummary) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		default: // SortByCount
			result := cmp.Compare(left.Lines, right.Lines)
			if desc {
				result = -result
			}
			return result
		}
	})
}
