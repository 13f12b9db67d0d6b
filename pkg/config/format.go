package config

import (
	"fmt"
	"strings"
)

// ParseOutputFormat converts a user-supplied name into an OutputFormat.
// Matching is case-insensitive.
func ParseOutputFormat(name string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if format == "" {
		return FormatText, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unknown output format %q", name)
	}
	return format, nil
}
