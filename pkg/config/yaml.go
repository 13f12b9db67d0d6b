package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the nesting width of emitted YAML.
const yamlIndent = 2

// ToYAML encodes the persisted fields of the configuration.
// CLI-only fields such as Format and Jobs are never written.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	return encodeYAML(c)
}

// ToYAMLWithHeader is ToYAML preceded by a comment block and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	out := make([]byte, 0, len(header)+len(body)+2)
	out = append(out, strings.TrimRight(header, "\n")...)
	out = append(out, '\n', '\n')
	return append(out, body...), nil
}

// FromYAML decodes a configuration layer. Keys absent from data stay at
// their zero value so the loader can tell them apart from explicit settings.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	dup := *c
	for _, list := range []*[]string{&dup.GoverningKeywords, &dup.DedentKeywords, &dup.Operators, &dup.Ignore} {
		*list = slices.Clone(*list)
	}
	dup.DocstringHeuristic = cloneBool(c.DocstringHeuristic)
	dup.Markdown = cloneBool(c.Markdown)
	return &dup
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	return boolPtr(*p)
}
