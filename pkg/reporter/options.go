package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/pylex/pkg/scheme"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for per-file errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ColorScheme names the chroma style used to highlight source listings.
	ColorScheme string

	// ShowContext includes the source line under each finding.
	ShowContext bool

	// ShowSource prints every analyzed line with a fold gutter (text format).
	// In JSON output it includes per-line spans, states and levels.
	ShowSource bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified JSON output.
	Compact bool

	// Width is the display width source lines are clipped to.
	// Zero detects the terminal width; negative disables clipping.
	Width int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ColorScheme: scheme.DefaultScheme,
		ShowContext: true,
		ShowSummary: true,
	}
}
