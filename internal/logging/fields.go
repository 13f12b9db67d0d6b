// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldJobs   = "jobs"
	FieldFormat = "format"
	FieldScheme = "scheme"
	FieldWidth  = "width"

	// Analysis fields.
	FieldLines    = "lines"
	FieldLine     = "line"
	FieldColumn   = "column"
	FieldLanguage = "language"
	FieldBlocks   = "blocks"
	FieldMode     = "mode"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesSkipped    = "files_skipped"
	FieldOpenStrings     = "open_strings"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
