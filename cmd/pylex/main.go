// Package main is the entry point for the pylex CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/pylex/internal/cli"
	"github.com/yaklabco/pylex/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// Open strings under --strict only set the exit code.
	if !errors.Is(err, cli.ErrOpenStringsFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
