package analysis

import "time"

// Report contains pre-computed views of a run.
// Computed once by Summarize(), used by all renderers.
type Report struct {
	// Findings is the flat list of open-string findings.
	Findings []FindingEntry `json:"findings,omitempty"`

	// ByFile summarizes each analyzed file.
	ByFile []FileSummary `json:"byFile,omitempty"`

	// ByCategory counts highlight spans per category.
	ByCategory []CategoryCount `json:"byCategory,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the report was computed.
	Timestamp time.Time `json:"timestamp"`
}

// FindingEntry is a finding with its file path.
type FindingEntry struct {
	FilePath string `json:"filePath"`
	Finding
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files            int `json:"filesChecked"`
	FilesWithFinding int `json:"filesWithFindings"`
	Lines            int `json:"lines"`
	Snippets         int `json:"snippets"`
	Regions          int `json:"regions"`
	Spans            int `json:"spans"`
	OpenStrings      int `json:"openStrings"`
	MaxLevel         int `json:"maxLevel"`
}

// HasFindings returns true if any string was left open.
func (t Totals) HasFindings() bool {
	return t.OpenStrings > 0
}

// FileSummary contains aggregated data for a single file.
type FileSummary struct {
	Path        string `json:"path"`
	Kind        Kind   `json:"kind"`
	Lines       int    `json:"lines"`
	Snippets    int    `json:"snippets"`
	Regions     int    `json:"regions"`
	MaxLevel    int    `json:"maxLevel"`
	OpenStrings int    `json:"openStrings"`
}

// CategoryCount is the number of spans of one category.
type CategoryCount struct {
	Category string `json:"category"`
	Spans    int    `json:"spans"`
	Files    int    `json:"files"`
}
