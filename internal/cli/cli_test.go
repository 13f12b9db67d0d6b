package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/yaklabco/pylex/internal/cli"
	"github.com/yaklabco/pylex/internal/configloader"
	"github.com/yaklabco/pylex/pkg/fsutil"
	"github.com/yaklabco/pylex/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "pylex" {
		t.Errorf("expected Use to be 'pylex', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"scan", "indent", "schemes", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestScanCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	scanCmd, _, err := cmd.Find([]string{"scan"})
	if err != nil {
		t.Fatalf("scan command not found: %v", err)
	}

	expectedFlags := []string{
		"format",
		"jobs",
		"strict",
		"scheme",
		"ignore",
		"include",
		"no-markdown",
		"no-docstring-heuristic",
		"scripts",
		"skip-vendored",
		"follow-symlinks",
		"source",
		"no-context",
		"no-summary",
		"compact",
		"width",
	}

	for _, flagName := range expectedFlags {
		if scanCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on scan command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"pylex", "1.2.3", "abc123", "2024-01-01"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected version output to contain %q, got %q", want, out.String())
		}
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"scan", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Usage:", "pylex scan [paths...]", "Examples:", "--strict", "Global Flags:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}

func TestScanCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	scanCmd, _, err := cmd.Find([]string{"scan"})
	if err != nil {
		t.Fatalf("scan command not found: %v", err)
	}

	if err := scanCmd.Args(scanCmd, []string{"a.py", "b.py", "src/"}); err != nil {
		t.Errorf("scan command should accept arbitrary args, got error: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"open strings", fmt.Errorf("wrapped: %w", cli.ErrOpenStringsFound), cli.ExitFindings},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitInvalidUsage},
		{"config sentinel", fmt.Errorf("%w: parse", cli.ErrConfig), cli.ExitConfigError},
		{"validation error", &configloader.ValidationError{Field: "indent.width", Message: "bad"}, cli.ExitConfigError},
		{"not found", fmt.Errorf("read: %w", fsutil.ErrNotFound), cli.ExitIOError},
		{"os not exist", fmt.Errorf("stat: %w", os.ErrNotExist), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	clean := &runner.Result{Stats: runner.Stats{FilesProcessed: 1}}
	open := &runner.Result{Stats: runner.Stats{FilesProcessed: 1, OpenStrings: 1, FilesWithOpenStrings: 1}}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{"nil result", nil, true, cli.ExitSuccess},
		{"clean strict", clean, true, cli.ExitSuccess},
		{"open not strict", open, false, cli.ExitSuccess},
		{"open strict", open, true, cli.ExitFindings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromResult(tt.result, tt.strict); got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}
}
