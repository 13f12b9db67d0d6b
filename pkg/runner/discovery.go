package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/pylex/pkg/langdetect"
)

// Discover finds the Python and Markdown files selected by opts.
// It returns absolute paths, sorted and free of duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:        ctx,
		opts:       opts,
		workDir:    workDir,
		extensions: make(map[string]bool),
		seen:       make(map[string]bool),
	}
	for _, ext := range opts.effectiveExtensions() {
		d.extensions[strings.ToLower(ext)] = true
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.addInput(input); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

// discoverer accumulates matching files across the input paths.
type discoverer struct {
	ctx        context.Context
	opts       Options
	workDir    string
	extensions map[string]bool
	seen       map[string]bool
	files      []string
}

// addInput adds one user-supplied path: a file is checked directly and a
// directory is walked.
func (d *discoverer) addInput(input string) error {
	abs := input
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(d.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	if !info.IsDir() {
		if d.accept(abs) {
			d.add(abs)
		}
		return nil
	}

	if err := d.walk(abs); err != nil {
		return fmt.Errorf("walk directory %s: %w", abs, err)
	}
	return nil
}

func (d *discoverer) add(path string) {
	if !d.seen[path] {
		d.seen[path] = true
		d.files = append(d.files, path)
	}
}

// walk visits every entry under root. Hidden entries, __pycache__,
// excluded directories and, when requested, vendored directories are pruned.
func (d *discoverer) walk(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if path == root {
			return nil
		}

		name := entry.Name()
		if entry.IsDir() {
			if d.pruneDir(path, name) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.visitSymlink(path)
		}

		if d.accept(path) {
			d.add(path)
		}
		return nil
	})
}

// pruneDir reports whether the directory at path is skipped entirely.
func (d *discoverer) pruneDir(path, name string) bool {
	if strings.HasPrefix(name, ".") || name == "__pycache__" {
		return true
	}
	rel := d.rel(path)
	if d.opts.SkipVendored && langdetect.IsVendored(filepath.ToSlash(rel)+"/") {
		return true
	}
	return matchesAnyPattern(rel, d.opts.ExcludeGlobs)
}

// visitSymlink handles a symlink found during a walk. File links are
// treated as files; directory links are walked through their target only
// with FollowSymlinks. Broken links are ignored.
func (d *discoverer) visitSymlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if !info.IsDir() {
		if d.accept(path) {
			d.add(path)
		}
		return nil
	}
	if !d.opts.FollowSymlinks {
		return nil
	}
	// Walking the resolved target keeps WalkDir from looping on the link itself.
	return d.walk(target)
}

// accept reports whether the file at path passes the extension, script,
// vendoring and glob filters.
func (d *discoverer) accept(path string) bool {
	if !d.extensions[strings.ToLower(filepath.Ext(path))] && !(d.opts.Scripts && isPythonScript(path)) {
		return false
	}

	rel := d.rel(path)
	switch {
	case d.opts.SkipVendored && langdetect.IsVendored(rel):
		return false
	case matchesAnyPattern(rel, d.opts.ExcludeGlobs):
		return false
	case len(d.opts.IncludeGlobs) > 0 && !matchesAnyPattern(rel, d.opts.IncludeGlobs):
		return false
	}
	return true
}

// rel returns path relative to the working directory, or path itself.
func (d *discoverer) rel(path string) string {
	if rel, err := filepath.Rel(d.workDir, path); err == nil {
		return rel
	}
	return path
}

// resolveWorkDir returns workDir as an absolute path, defaulting to os.Getwd.
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// isPythonScript reports whether an extensionless file has a Python shebang.
func isPythonScript(path string) bool {
	if filepath.Ext(path) != "" {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, langdetect.SniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false
	}
	return langdetect.IsScript(head[:n])
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(relPath, pattern)
	})
}

// matchGlob matches a path against a doublestar glob pattern such as
// "*.py", "build/**" or "**/__pycache__/**". Patterns without a slash
// also match the base name, so "*_pb2.py" matches at any depth.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if matched, err := doublestar.Match(pattern, path); err == nil && matched {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	matched, err := doublestar.Match(pattern, filepath.Base(path))
	return err == nil && matched
}
