package analysis

// SortField orders the per-file and per-category views of a Report.
type SortField string

const (
	// SortByCount orders categories by span count and files by line count.
	SortByCount SortField = "count"
	// SortByAlpha orders by category name or path.
	SortByAlpha SortField = "alpha"
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha
}

// Options selects which views Summarize builds and how they are ordered.
type Options struct {
	IncludeFindings   bool
	IncludeByFile     bool
	IncludeByCategory bool

	SortBy   SortField
	SortDesc bool

	// WorkingDir, when set, makes report paths relative to it.
	WorkingDir string
}

// DefaultOptions builds every view, largest first.
func DefaultOptions() Options {
	return Options{
		IncludeFindings:   true,
		IncludeByFile:     true,
		IncludeByCategory: true,
		SortBy:            SortByCount,
		SortDesc:          true,
	}
}
