package cli

import (
	"errors"
	"os"

	"github.com/yaklabco/pylex/internal/configloader"
	"github.com/yaklabco/pylex/pkg/fsutil"
	"github.com/yaklabco/pylex/pkg/runner"
)

// Exit codes for pylex. Values above 1 follow sysexits.h.
const (
	// ExitSuccess indicates a run with nothing to report.
	ExitSuccess = 0

	// ExitFindings indicates open strings were found in strict mode.
	ExitFindings = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrOpenStringsFound is returned by scan --strict when a file ends inside a string.
	ErrOpenStringsFound = errors.New("open strings found")

	// ErrUsage marks errors caused by bad flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks errors raised while loading configuration.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil || !strict {
		return ExitSuccess
	}
	if result.HasFindings() {
		return ExitFindings
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrOpenStringsFound):
		return ExitFindings
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
