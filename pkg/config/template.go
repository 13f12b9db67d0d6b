package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Indent stop width and style
indent:
  width: 4
  use_tabs: false

# Color scheme for highlighted output (see: pylex schemes)
# color_scheme: monokai

# Treat triple-quoted strings after '=' as plain strings, not docstrings
# docstring_heuristic: true

# Scan Python code fences in Markdown files
# markdown: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "venv/**"
#   - "**/__pycache__/**"
`)
}

// generateFullTemplate renders every option with its default value.
func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = defaultIgnore()

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# This template lists every option with its default value.\n")
	buf.WriteString("# Keyword and operator lists replace the defaults when set.\n")
	buf.WriteString(fmt.Sprintf("# Governing keywords: %s\n", strings.Join(cfg.GoverningKeywords, ", ")))

	body, err := cfg.ToYAMLWithHeader("")
	if err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes(), nil
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()

	out := map[string]any{
		"indent": map[string]any{
			"width":    cfg.Indent.Width,
			"use_tabs": cfg.Indent.UseTabs,
		},
		"governing_keywords":  cfg.GoverningKeywords,
		"dedent_keywords":     cfg.DedentKeywords,
		"operators":           cfg.Operators,
		"docstring_heuristic": cfg.DocstringHeuristicEnabled(),
		"color_scheme":        cfg.ColorScheme,
		"markdown":            cfg.MarkdownEnabled(),
		"ignore":              defaultIgnore(),
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

func defaultIgnore() []string {
	return []string{"venv/**", ".venv/**", "**/__pycache__/**", ".git/**"}
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# pylex configuration
# See: https://github.com/yaklabco/pylex`
}
