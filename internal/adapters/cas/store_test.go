package cas_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/symcache/internal/adapters/cas"
	"go.trai.ch/symcache/internal/core/domain"
)

var header = domain.ModuleHeader{Platform: "mac", Arch: "x86_64", BuildID: "ABC123", Name: "Foo"}

func unix(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func writeCached(t *testing.T, path string, data []byte, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750)) //nolint:gosec // Test directory permissions
	require.NoError(t, os.WriteFile(path, data, 0o600))        //nolint:gosec // Test file permissions
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestStore_ResolvePath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()

	path, err := store.ResolvePath(root, header)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Foo", "ABC123", "Foo.sym"), path)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Existing directories are fine.
	again, err := store.ResolvePath(root, header)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestStore_ResolvePath_CreateFails(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// A file where the module directory should go.
	require.NoError(t, os.WriteFile(filepath.Join(root, "Foo"), []byte("x"), 0o600))

	_, err := cas.NewStore().ResolvePath(root, header)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheDirCreateFailed))
}

func TestStore_NeedsRebuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   []byte
		cached int64
		bundle int64
		force  bool
		absent bool
		want   bool
	}{
		{name: "missing", absent: true, bundle: 1000, want: true},
		{name: "zero bytes", data: []byte{}, cached: 5000, bundle: 1000, want: true},
		{name: "older than bundle", data: []byte("x"), cached: 999, bundle: 1000, want: true},
		{name: "same mtime is fresh", data: []byte("x"), cached: 1000, bundle: 1000, want: false},
		{name: "newer than bundle", data: []byte("x"), cached: 2000, bundle: 1000, want: false},
		{name: "force overrides fresh", data: []byte("x"), cached: 2000, bundle: 1000, force: true, want: true},
		{name: "force with missing file", absent: true, bundle: 1000, force: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "Foo", "ABC123", "Foo.sym")
			if !tt.absent {
				writeCached(t, path, tt.data, unix(tt.cached))
			}

			got, err := cas.NewStore().NeedsRebuild(domain.Bundle{Path: "Foo.dSYM", ModTime: unix(tt.bundle)}, path, tt.force)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_NeedsRebuild_StatError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// Parent component is a regular file, so stat fails with ENOTDIR.
	require.NoError(t, os.WriteFile(filepath.Join(root, "Foo"), []byte("x"), 0o600))

	_, err := cas.NewStore().NeedsRebuild(domain.Bundle{ModTime: unix(1000)}, filepath.Join(root, "Foo", "Foo.sym"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheStatFailed))
}

func TestStore_Persist(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()
	path, err := store.ResolvePath(root, header)
	require.NoError(t, err)

	data := []byte("MODULE mac x86_64 ABC123 Foo\nFILE 0 foo.c\n")
	entry, err := store.Persist(path, data, unix(1000))
	require.NoError(t, err)

	assert.Equal(t, path, entry.Path)
	assert.Equal(t, int64(len(data)), entry.Size)
	assert.Len(t, entry.Digest, 16)
	assert.False(t, entry.Unchanged)

	got, err := os.ReadFile(path) //nolint:gosec // Test path
	require.NoError(t, err)
	assert.Equal(t, data, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(unix(1000)))

	fresh, err := store.NeedsRebuild(domain.Bundle{ModTime: unix(1000)}, path, false)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestStore_Persist_BinarySafe(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Foo.sym")
	data := []byte{0x00, 0xff, '\r', '\n', 0x7f}

	_, err := cas.NewStore().Persist(path, data, unix(1000))
	require.NoError(t, err)

	got, err := os.ReadFile(path) //nolint:gosec // Test path
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStore_Persist_ReplacesStaleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Foo.sym")
	writeCached(t, path, []byte("old symbols"), unix(500))

	entry, err := cas.NewStore().Persist(path, []byte("new symbols"), unix(2000))
	require.NoError(t, err)
	assert.False(t, entry.Unchanged)

	got, err := os.ReadFile(path) //nolint:gosec // Test path
	require.NoError(t, err)
	assert.Equal(t, "new symbols", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(unix(2000)))
}

func TestStore_Persist_UnchangedContentIsOnlyRestamped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Foo.sym")
	data := []byte("same symbols")
	writeCached(t, path, data, unix(500))

	before, err := os.Stat(path)
	require.NoError(t, err)

	entry, err := cas.NewStore().Persist(path, data, unix(2000))
	require.NoError(t, err)
	assert.True(t, entry.Unchanged)
	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64(data)), entry.Digest)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, after.ModTime().Equal(unix(2000)))
	assert.True(t, os.SameFile(before, after), "file must not be replaced")
}

func TestStore_Persist_RecoversZeroByteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Foo.sym")
	writeCached(t, path, []byte{}, unix(5000))

	store := cas.NewStore()
	stale, err := store.NeedsRebuild(domain.Bundle{ModTime: unix(1000)}, path, false)
	require.NoError(t, err)
	require.True(t, stale)

	_, err = store.Persist(path, []byte("symbols"), unix(1000))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.True(t, info.ModTime().Equal(unix(1000)))
}

func TestStore_Persist_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.sym")

	_, err := cas.NewStore().Persist(path, []byte("symbols"), unix(1000))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Foo.sym", entries[0].Name())
}

func TestStore_Persist_FailureLeavesFinalPathUntouched(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := filepath.Join(t.TempDir(), "Foo", "ABC123")
	path := filepath.Join(dir, "Foo.sym")
	writeCached(t, path, []byte("old"), unix(500))

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o750) }) //nolint:gosec // Restore so TempDir cleanup succeeds

	_, err := cas.NewStore().Persist(path, []byte("new"), unix(1000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPartialWrite))

	got, err := os.ReadFile(path) //nolint:gosec // Test path
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Persist_SameTargetLastWriterWins(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Foo.sym")
	store := cas.NewStore()

	_, err := store.Persist(path, []byte("first"), unix(1000))
	require.NoError(t, err)
	_, err = store.Persist(path, []byte("second"), unix(1000))
	require.NoError(t, err)

	got, err := os.ReadFile(path) //nolint:gosec // Test path
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}
