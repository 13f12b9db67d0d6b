// Package runner provides multi-file analysis orchestration.
package runner

// Options controls multi-file analysis behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Python. Defaults to DefaultExtensions().
	Extensions []string

	// Markdown adds DefaultMarkdownExtensions() to the discovered extensions.
	Markdown bool

	// Scripts includes extensionless files whose shebang runs Python.
	Scripts bool

	// SkipVendored skips files under third-party directories such as vendor/.
	SkipVendored bool

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// DefaultExtensions returns the default set of Python file extensions.
func DefaultExtensions() []string {
	return []string{".py", ".pyi", ".pyw"}
}

// DefaultMarkdownExtensions returns the Markdown extensions scanned for fences.
func DefaultMarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	if o.Markdown {
		exts = append(exts[:len(exts):len(exts)], DefaultMarkdownExtensions()...)
	}
	return exts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
