package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/pylex/pkg/config"
)

// envVarPrefix is the prefix for all pylex environment variables.
const envVarPrefix = "PYLEX_"

// envMapping binds one PYLEX_* variable to a config field.
type envMapping struct {
	suffix string
	field  string
	help   string
	apply  func(cfg *config.Config, value string) error
}

// envMappings lists the supported variables in documentation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{"INDENT_WIDTH", "indent.width", "Indent stop width in columns",
		intSetter(func(c *config.Config, v int) { c.Indent.Width = v })},
	{"INDENT_USE_TABS", "indent.use_tabs", "Use a tab as the indent stop: true or false",
		boolSetter(func(c *config.Config, v bool) { c.Indent.UseTabs = v })},
	{"GOVERNING_KEYWORDS", "governing_keywords", "Comma-separated keywords that govern a colon line",
		sliceSetter(func(c *config.Config, v []string) { c.GoverningKeywords = v })},
	{"DEDENT_KEYWORDS", "dedent_keywords", "Comma-separated keywords that end a block",
		sliceSetter(func(c *config.Config, v []string) { c.DedentKeywords = v })},
	{"OPERATORS", "operators", "Comma-separated continuation operators",
		sliceSetter(func(c *config.Config, v []string) { c.Operators = v })},
	{"DOCSTRING_HEURISTIC", "docstring_heuristic", "Treat '= \"\"\"' strings as plain strings: true or false",
		boolSetter(func(c *config.Config, v bool) { c.DocstringHeuristic = &v })},
	{"COLOR_SCHEME", "color_scheme", "Color scheme name (see: pylex schemes)",
		stringSetter(func(c *config.Config, v string) { c.ColorScheme = v })},
	{"MARKDOWN", "markdown", "Scan Python fences in Markdown: true or false",
		boolSetter(func(c *config.Config, v bool) { c.Markdown = &v })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		sliceSetter(func(c *config.Config, v []string) { c.Ignore = v })},
	{"FORMAT", "format", "Output format: text, json, or summary",
		stringSetter(func(c *config.Config, v string) { c.Format = config.OutputFormat(strings.ToLower(v)) })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intSetter(func(c *config.Config, v int) { c.Jobs = v })},
	{"STRICT", "strict", "Fail on unterminated strings: true or false",
		boolSetter(func(c *config.Config, v bool) { c.Strict = v })},
}

// LoadFromEnv applies PYLEX_* environment variables to cfg.
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, mapping := range envMappings {
		name := envVarPrefix + mapping.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := mapping.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func stringSetter(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, strings.TrimSpace(value))
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func sliceSetter(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, splitList(value))
		return nil
	}
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetEnvVarName returns the environment variable for a config field, or "".
func GetEnvVarName(field string) string {
	for _, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + mapping.suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for _, mapping := range envMappings {
		vars[envVarPrefix+mapping.suffix] = mapping.help
	}
	return vars
}
