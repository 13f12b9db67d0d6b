package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/pylex/internal/logging"
	"github.com/yaklabco/pylex/pkg/analysis"
)

// Processor analyzes a single file.
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*analysis.FileResult, error)
}

// Runner scans many files with a Processor.
type Runner struct {
	Processor Processor
}

// New returns a Runner backed by processor.
func New(processor Processor) *Runner {
	return &Runner{Processor: processor}
}

// Run discovers the files selected by opts and hands each one to the
// Processor on a bounded pool of goroutines. Outcomes appear in discovery
// order whatever the pool size. Per-file failures are recorded in the
// Result; only discovery errors and cancellation are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Each slot is written by exactly one goroutine.
	outcomes := make([]*FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() == nil {
				outcomes[i] = r.process(ctx, path)
			}
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldOpenStrings, result.Stats.OpenStrings,
		logging.FieldJobs, jobs,
		logging.FieldDuration, time.Since(started),
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// process runs the Processor on one file and classifies the result.
func (r *Runner) process(ctx context.Context, path string) *FileOutcome {
	res, err := r.Processor.ProcessFile(ctx, path)
	switch {
	case errors.Is(err, analysis.ErrBinaryFile):
		return &FileOutcome{Path: path, Skipped: true}
	case err != nil:
		logging.FromContext(ctx).Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		return &FileOutcome{Path: path, Error: err}
	default:
		return &FileOutcome{Path: path, Result: res}
	}
}
