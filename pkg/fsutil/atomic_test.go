package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pylex/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates new file with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".pylex.yml")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("indent:\n  width: 4\n"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "indent:\n  width: 4\n", string(got))

		if runtime.GOOS != "windows" {
			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
		}
	})

	t.Run("overwrites existing file with requested mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		if runtime.GOOS != "windows" {
			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "a.yml"), []byte("x"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.yml", entries[0].Name())
	})

	t.Run("fails for missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "a.yml")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "a.yml")
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.yml")
		written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("x"), 0)
		require.NoError(t, err)
		assert.True(t, written)
	})

	t.Run("skips identical content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.yml")
		require.NoError(t, os.WriteFile(path, []byte("same"), 0o644))

		written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("same"), 0)
		require.NoError(t, err)
		assert.False(t, written)
	})

	t.Run("rewrites changed content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.yml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("new"), 0)
		require.NoError(t, err)
		assert.True(t, written)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})
}
