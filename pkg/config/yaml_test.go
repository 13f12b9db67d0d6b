package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pylex/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"venv/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Operators[0] = "changed"
		*clone.DocstringHeuristic = false

		assert.Equal(t, "venv/**", original.Ignore[0])
		assert.Equal(t, ".", original.Operators[0])
		assert.True(t, original.DocstringHeuristicEnabled())
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := &config.Config{Format: config.FormatJSON, Jobs: 3, Strict: true}
		clone := original.Clone()
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, 3, clone.Jobs)
		assert.True(t, clone.Strict)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Indent.Width = 2
	original.ColorScheme = "github"
	original.Format = config.FormatJSON

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "width: 2")
	assert.NotContains(t, string(data), "format")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.Indent.Width)
	assert.Equal(t, "github", parsed.ColorScheme)
	assert.Equal(t, original.GoverningKeywords, parsed.GoverningKeywords)
	assert.Empty(t, parsed.Format)
}

func TestFromYAML_Partial(t *testing.T) {
	cfg, err := config.FromYAML([]byte("indent:\n  use_tabs: true\ndocstring_heuristic: false\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Indent.UseTabs)
	assert.Zero(t, cfg.Indent.Width)
	assert.False(t, cfg.DocstringHeuristicEnabled())
	assert.True(t, cfg.MarkdownEnabled())
	assert.Nil(t, cfg.Operators)

	_, err = config.FromYAML([]byte("indent: [1, 2"))
	require.Error(t, err)
}

func TestToYAMLWithHeader(t *testing.T) {
	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\nindent:`, string(data))
}

func TestDocumentOptions(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Indent.UseTabs = true
	*cfg.DocstringHeuristic = false

	opts := cfg.DocumentOptions()
	assert.False(t, opts.Highlight.DocstringHeuristic)
	assert.True(t, opts.Indent.UseTabs)
	assert.Equal(t, 4, opts.Indent.Width)
	assert.Equal(t, cfg.Operators, opts.Indent.Operators)
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal yaml parses", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Indent.Width)
	})

	t.Run("full yaml parses", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig().Operators, cfg.Operators)
		assert.Contains(t, cfg.Ignore, "venv/**")
	})

	t.Run("json", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, "monokai", out["color_scheme"])
	})
}
