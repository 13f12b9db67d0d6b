package reporter

import "github.com/yaklabco/pylex/pkg/config"

// Format represents an output format.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatSummary = config.FormatSummary
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	return config.ParseOutputFormat(formatStr)
}
