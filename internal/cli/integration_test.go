package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pylex/internal/cli"
)

const (
	cleanSource = "def main():\n    return 1\n"
	openSource  = "x = '''open\n"
)

// runCLI executes the root command with args and an explicit empty config.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".pylex.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("indent:\n  width: 4\n"), 0o644))

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestIntegration_ScanClean(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, map[string]string{"a.py": cleanSource})

	stdout, _, err := runCLI(t, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No open strings (1 file, 3 lines scanned)")
}

func TestIntegration_ScanOpenString(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, map[string]string{
		"a.py": cleanSource,
		"b.py": openSource,
	})

	t.Run("reports without failing", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "scan", dir)
		require.NoError(t, err)
		assert.Contains(t, stdout, "b.py (1 open string)")
		assert.Contains(t, stdout, "b.py:1:5")
		assert.Contains(t, stdout, "unterminated triple-quoted string (''')")
		assert.Contains(t, stdout, "(in_sq3)")
		assert.Contains(t, stdout, "1 open string in 1 file")
		assert.NotContains(t, stdout, "a.py")
	})

	t.Run("strict fails", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "scan", "--strict", dir)
		require.ErrorIs(t, err, cli.ErrOpenStringsFound)
		assert.Equal(t, cli.ExitFindings, cli.ExitCode(err))
	})

	t.Run("no context hides source line", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "scan", "--no-context", "--no-summary", dir)
		require.NoError(t, err)
		assert.NotContains(t, stdout, "x = '''open")
		assert.NotContains(t, stdout, "open string in")
	})
}

func TestIntegration_ScanSource(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, map[string]string{"a.py": cleanSource})

	stdout, _, err := runCLI(t, "scan", "--source", "--width", "-1", filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 ▾ def main():\n2 │     return 1\n")
}

func TestIntegration_ScanMarkdown(t *testing.T) {
	t.Parallel()

	readme := "# Title\n\n```python\nmsg = \"\"\"never closed\n```\n"
	dir := writeSources(t, map[string]string{"README.md": readme})

	stdout, _, err := runCLI(t, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "README.md:4:7")

	stdout, _, err = runCLI(t, "scan", "--no-markdown", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No files to scan.")
}

func TestIntegration_ScanJSON(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, map[string]string{
		"a.py": cleanSource,
		"b.py": openSource,
	})

	stdout, _, err := runCLI(t, "scan", "--format", "json", dir)
	require.NoError(t, err)

	var out struct {
		Version string `json:"version"`
		Files   []struct {
			Path     string           `json:"path"`
			Findings []map[string]any `json:"findings"`
		} `json:"files"`
		Summary struct {
			FilesChecked int `json:"filesChecked"`
			OpenStrings  int `json:"openStrings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "1.0.0", out.Version)
	assert.Equal(t, 2, out.Summary.FilesChecked)
	assert.Equal(t, 1, out.Summary.OpenStrings)
	require.Len(t, out.Files, 2)
	require.Len(t, out.Files[1].Findings, 1)
	assert.Equal(t, "in_sq3", out.Files[1].Findings[0]["mode"])
}

func TestIntegration_ScanSummary(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, map[string]string{"b.py": openSource})

	stdout, _, err := runCLI(t, "scan", "--format", "summary", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Open strings")
	assert.Contains(t, stdout, "unterminated triple-quoted string")
}

func TestIntegration_ScanErrors(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, map[string]string{"a.py": cleanSource})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown format", []string{"scan", "--format", "sarif", dir}, cli.ExitInvalidUsage},
		{"unknown flag", []string{"scan", "--bogus", dir}, cli.ExitInvalidUsage},
		{"bad color", []string{"--color", "sometimes", "scan", dir}, cli.ExitInvalidUsage},
		{"unknown scheme", []string{"scan", "--scheme", "no-such-scheme", dir}, cli.ExitConfigError},
		{"negative jobs", []string{"scan", "--jobs", "-2", dir}, cli.ExitConfigError},
		{"missing path", []string{"scan", filepath.Join(dir, "missing")}, cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err), err.Error())
		})
	}
}

func TestIntegration_Indent(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, map[string]string{
		"a.py": "class Foo:\n    if x:\nx = a +\n\n  \n",
	})
	path := filepath.Join(dir, "a.py")

	type result struct {
		Line   int    `json:"line"`
		Column int    `json:"column"`
		Prefix string `json:"prefix"`
		Indent string `json:"indent"`
		Mode   string `json:"mode"`
	}

	tests := []struct {
		name string
		args []string
		want result
	}{
		{
			name: "colon indents",
			args: []string{"--line", "1"},
			want: result{Line: 1, Column: 11, Indent: "    ", Mode: "normal"},
		},
		{
			name: "operator continues",
			args: []string{"--line", "3"},
			want: result{Line: 3, Column: 8, Prefix: ` \`, Indent: "    ", Mode: "normal"},
		},
		{
			name: "disabled zone keeps indentation",
			args: []string{"--line", "2", "--zone", "7-20"},
			want: result{Line: 2, Column: 10, Indent: "    ", Mode: "normal"},
		},
		{
			name: "cursor column",
			args: []string{"--line", "2", "--col", "3"},
			want: result{Line: 2, Column: 3, Indent: "    ", Mode: "normal"},
		},
		{
			name: "default line skips trailing blank lines",
			args: nil,
			want: result{Line: 3, Column: 8, Prefix: ` \`, Indent: "    ", Mode: "normal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, append([]string{"indent", path}, tt.args...)...)
			require.NoError(t, err)

			var got result
			require.NoError(t, json.Unmarshal([]byte(stdout), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntegration_IndentErrors(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, map[string]string{"a.py": "pass\n"})
	path := filepath.Join(dir, "a.py")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no file", []string{"indent"}, cli.ExitInvalidUsage},
		{"bad zone", []string{"indent", path, "--zone", "5"}, cli.ExitInvalidUsage},
		{"reversed zone", []string{"indent", path, "--zone", "5-2"}, cli.ExitInvalidUsage},
		{"line past end", []string{"indent", path, "--line", "10"}, cli.ExitInvalidUsage},
		{"missing file", []string{"indent", filepath.Join(dir, "nope.py")}, cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err), err.Error())
		})
	}
}

func TestIntegration_Schemes(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "schemes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* monokai\n")
	assert.Contains(t, stdout, "  github\n")

	stdout, _, err = runCLI(t, "schemes", "--format", "json")
	require.NoError(t, err)

	var entries []struct {
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))

	active := 0
	for _, entry := range entries {
		if entry.Active {
			active++
			assert.Equal(t, "monokai", entry.Name)
		}
	}
	assert.Equal(t, 1, active)

	stdout, _, err = runCLI(t, "schemes", "--preview")
	require.NoError(t, err)
	assert.Contains(t, stdout, `def greet(name="world"):  # say hi`)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "custom.yml")

	_, _, err := runCLI(t, "init", "--output", yamlPath)
	require.NoError(t, err)

	content, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# pylex configuration")

	_, _, err = runCLI(t, "init", "--output", yamlPath)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = runCLI(t, "init", "--output", yamlPath, "--force", "--full")
	require.NoError(t, err)

	jsonPath := filepath.Join(dir, "custom.json")
	_, _, err = runCLI(t, "init", "--format", "json", "--output", jsonPath)
	require.NoError(t, err)

	var parsed map[string]any
	content, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(content, &parsed))
	assert.Equal(t, "monokai", parsed["color_scheme"])

	_, _, err = runCLI(t, "init", "--format", "toml", "--output", jsonPath)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}
