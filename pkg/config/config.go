// Package config defines core configuration types for pylex.
// These types are pure data structures with no dependency on how they are loaded.
package config

import (
	"github.com/yaklabco/pylex/pkg/document"
	"github.com/yaklabco/pylex/pkg/indent"
	"github.com/yaklabco/pylex/pkg/scheme"
	"github.com/yaklabco/pylex/pkg/syntax"
)

// OutputFormat specifies the output format for scan results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats returns every supported output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatSummary}
}

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// IndentConfig holds indentation settings.
type IndentConfig struct {
	// Width is the indent-stop width in columns.
	Width int `yaml:"width"`

	// UseTabs makes one indent stop a single tab.
	UseTabs bool `yaml:"use_tabs"`
}

// Config is the root configuration structure for pylex.
type Config struct {
	// Indent configures indent stops.
	Indent IndentConfig `yaml:"indent"`

	// GoverningKeywords are searched for above a colon-terminated continuation line.
	GoverningKeywords []string `yaml:"governing_keywords"`

	// DedentKeywords remove one indent stop after the line they end.
	DedentKeywords []string `yaml:"dedent_keywords"`

	// Operators trigger a backslash continuation when they end a line.
	Operators []string `yaml:"operators"`

	// DocstringHeuristic classifies triple-quoted strings after '=' as plain strings.
	DocstringHeuristic *bool `yaml:"docstring_heuristic,omitempty"`

	// ColorScheme names the chroma style used for highlighted output.
	ColorScheme string `yaml:"color_scheme"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Markdown enables scanning Python code fences in Markdown files.
	Markdown *bool `yaml:"markdown,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict turns open-string findings into a failing exit code.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Indent: IndentConfig{
			Width:   indent.DefaultWidth,
			UseTabs: false,
		},
		GoverningKeywords:  indent.DefaultGoverningKeywords(),
		DedentKeywords:     indent.DefaultDedentKeywords(),
		Operators:          indent.DefaultOperators(),
		DocstringHeuristic: boolPtr(true),
		ColorScheme:        scheme.DefaultScheme,
		Ignore:             nil,
		Markdown:           boolPtr(true),
		Format:             FormatText,
		Jobs:               0, // 0 means use GOMAXPROCS
	}
}

// DocstringHeuristicEnabled reports the effective heuristic setting.
func (c *Config) DocstringHeuristicEnabled() bool {
	return c.DocstringHeuristic == nil || *c.DocstringHeuristic
}

// MarkdownEnabled reports whether Markdown fences are scanned.
func (c *Config) MarkdownEnabled() bool {
	return c.Markdown == nil || *c.Markdown
}

// DocumentOptions converts the configuration into engine options.
func (c *Config) DocumentOptions() document.Options {
	return document.Options{
		Highlight: syntax.Options{DocstringHeuristic: c.DocstringHeuristicEnabled()},
		Indent: indent.Options{
			Width:             c.Indent.Width,
			UseTabs:           c.Indent.UseTabs,
			GoverningKeywords: c.GoverningKeywords,
			DedentKeywords:    c.DedentKeywords,
			Operators:         c.Operators,
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}
