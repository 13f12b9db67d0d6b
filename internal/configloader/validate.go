package configloader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/pylex/pkg/config"
	"github.com/yaklabco/pylex/pkg/scheme"
	"github.com/yaklabco/pylex/pkg/syntax"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the dotted path of the value, e.g. "indent.width" or "operators[2]".
	Field string

	Value any

	Message string

	// FilePath and Line locate the value when it came from a file.
	FilePath string
	Line     int
}

// Error formats the error as "file:line: field: message", omitting
// whichever location parts are unknown.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.FilePath != "" {
		b.WriteString(e.FilePath)
		if e.Line > 0 {
			b.WriteString(":" + strconv.Itoa(e.Line))
		}
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field + ": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects the problems found in one configuration.
type ValidationResult struct {
	// Errors make the configuration unusable.
	Errors []ValidationError

	// Warnings are suspicious but accepted, such as a keyword Python lacks.
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns every error followed by every warning, prefixed
// with its severity.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration. Width must be positive once resolved,
// so callers validating a single file layer should only consult Warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Indent.Width <= 0 {
		result.errorf("indent.width", cfg.Indent.Width, "indent width must be > 0")
	}
	if cfg.ColorScheme != "" && !scheme.Exists(cfg.ColorScheme) {
		result.errorf("color_scheme", cfg.ColorScheme,
			"unknown color scheme %q; run 'pylex schemes' to list available schemes", cfg.ColorScheme)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: text, json, summary", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, op := range cfg.Operators {
		if strings.TrimSpace(op) == "" {
			result.errorf(indexed("operators", i), op, "operator must not be empty")
		}
	}
	checkKeywords(result, "governing_keywords", cfg.GoverningKeywords)
	checkKeywords(result, "dedent_keywords", cfg.DedentKeywords)

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.errorf(indexed("ignore", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	return result
}

// checkKeywords rejects blank entries and warns about words that are not
// Python keywords.
func checkKeywords(result *ValidationResult, field string, words []string) {
	for i, word := range words {
		switch {
		case strings.TrimSpace(word) == "":
			result.errorf(indexed(field, i), word, "keyword must not be empty")
		case !syntax.Keywords[word]:
			result.warnf(indexed(field, i), word, "%q is not a Python keyword", word)
		}
	}
}

func indexed(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}

// ValidateWithFile is Validate with FilePath set on every problem.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, list := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return result
}
