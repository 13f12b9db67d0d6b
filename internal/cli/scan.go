package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pylex/internal/logging"
	"github.com/yaklabco/pylex/pkg/analysis"
	"github.com/yaklabco/pylex/pkg/config"
	"github.com/yaklabco/pylex/pkg/reporter"
	"github.com/yaklabco/pylex/pkg/runner"
)

type scanFlags struct {
	format         string
	scheme         string
	ignore         []string
	include        []string
	noMarkdown     bool
	noHeuristic    bool
	scripts        bool
	skipVendored   bool
	followSymlinks bool
	source         bool
	noContext      bool
	noSummary      bool
	compact        bool
	width          int
}

func newScanCommand() *cobra.Command {
	var cfg config.Config
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Highlight Python sources and report unterminated strings",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, &cfg, flags)
		},
	}

	addScanFlags(cmd, &cfg, flags)

	return cmd
}

const scanLongDescription = `Scan Python files and the Python fences of Markdown files.

Every file is run through the line-incremental highlighter. Files that end
inside a string are reported, and --source prints every line highlighted
with its fold gutter.

By default, scans .py, .pyi and .pyw files plus .md and .markdown files in
the current directory and subdirectories.

Examples:
  pylex scan                       # Scan current directory
  pylex scan src/                  # Scan one directory
  pylex scan --source app.py       # Print highlighted source with folds
  pylex scan --format json         # Output as JSON for tooling
  pylex scan --format summary      # Per-file and per-category tables
  pylex scan --strict              # Exit 1 when a file ends inside a string`

func runScan(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *scanFlags) error {
	logger := logging.Default()
	started := time.Now()

	format, err := config.ParseOutputFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	cliCfg.Format = format
	cliCfg.ColorScheme = flags.scheme
	cliCfg.Ignore = flags.ignore
	if cmd.Flags().Changed("no-markdown") {
		enabled := !flags.noMarkdown
		cliCfg.Markdown = &enabled
	}
	if cmd.Flags().Changed("no-docstring-heuristic") {
		enabled := !flags.noHeuristic
		cliCfg.DocstringHeuristic = &enabled
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldScheme, cfg.ColorScheme,
		logging.FieldJobs, cfg.Jobs,
	)

	analyzer := analysis.NewAnalyzer(analysis.FileOptions{
		Document: cfg.DocumentOptions(),
		Markdown: cfg.MarkdownEnabled(),
	})

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		Markdown:       cfg.MarkdownEnabled(),
		Scripts:        flags.scripts,
		SkipVendored:   flags.skipVendored,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
	}

	logger.Debug("starting scan",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	ctx := logging.WithFields(logging.WithLogger(commandContext(cmd), logger), logging.FieldFormat, cfg.Format)
	result, err := runner.New(analyzer).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("scan run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       colorMode(cmd),
		ColorScheme: cfg.ColorScheme,
		ShowContext: !flags.noContext,
		ShowSource:  flags.source,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		Width:       flags.width,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	count, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("scan finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldOpenStrings, count,
		logging.FieldDuration, time.Since(started),
	)

	if ExitCodeFromResult(result, cfg.Strict) != ExitSuccess {
		return ErrOpenStringsFound
	}

	return nil
}

func addScanFlags(cmd *cobra.Command, cfg *config.Config, flags *scanFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "exit with status 1 when a file ends inside a string")
	cmd.Flags().StringVar(&flags.scheme, "scheme", "", "color scheme for --source (see: pylex schemes)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns a file must match")
	cmd.Flags().BoolVar(&flags.noMarkdown, "no-markdown", false, "skip Python fences in Markdown files")
	cmd.Flags().BoolVar(&flags.noHeuristic, "no-docstring-heuristic", false,
		"treat every leading triple-quoted string as a docstring")
	cmd.Flags().BoolVar(&flags.scripts, "scripts", false, "include extensionless files with a Python shebang")
	cmd.Flags().BoolVar(&flags.skipVendored, "skip-vendored", false, "skip vendor, site-packages and virtualenv directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	cmd.Flags().BoolVar(&flags.source, "source", false, "print every line with highlighting and fold gutter")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the closing summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().IntVar(&flags.width, "width", 0, "clip source lines to this width (0 = terminal, -1 = never)")
}
