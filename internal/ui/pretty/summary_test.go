package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pylex/internal/ui/pretty"
	"github.com/yaklabco/pylex/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:       10,
		FilesSkipped:         1,
		Lines:                420,
		Snippets:             12,
		Regions:              37,
		OpenStrings:          2,
		FilesWithOpenStrings: 2,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files scanned:     10")
	assert.Contains(t, result, "Files skipped:     1")
	assert.Contains(t, result, "Lines:             420")
	assert.Contains(t, result, "Fold regions:      37")
	assert.Contains(t, result, "Open strings:      2")
	assert.Contains(t, result, "Scan found unterminated strings")
	assert.NotContains(t, result, "Files failed:")
}

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 5, Lines: 50})

	assert.Contains(t, result, "Scan passed")
	assert.NotContains(t, result, "Open strings:")
	assert.NotContains(t, result, "Files skipped:")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		stats    runner.Stats
		expected string
	}{
		{
			name:     "clean",
			stats:    runner.Stats{FilesProcessed: 3, Lines: 90},
			expected: "No open strings (3 files, 90 lines scanned)\n",
		},
		{
			name:     "single file",
			stats:    runner.Stats{FilesProcessed: 1, Lines: 1},
			expected: "No open strings (1 file, 1 lines scanned)\n",
		},
		{
			name:     "one finding",
			stats:    runner.Stats{FilesProcessed: 4, Lines: 100, OpenStrings: 1, FilesWithOpenStrings: 1},
			expected: "1 open string in 1 file (4 files, 100 lines scanned)\n",
		},
		{
			name: "findings with skipped and failed",
			stats: runner.Stats{
				FilesProcessed: 4, Lines: 100, OpenStrings: 3, FilesWithOpenStrings: 2,
				FilesSkipped: 1, FilesErrored: 2,
			},
			expected: "3 open strings in 2 files (4 files, 100 lines scanned), 1 skipped, 2 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
