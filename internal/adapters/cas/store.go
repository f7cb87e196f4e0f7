// Package cas implements the on-disk symbol file cache.
package cas

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/symcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SymbolStore = (*Store)(nil)

const tempPattern = ".symcache-*.tmp"

// Store implements ports.SymbolStore using a <name>/<build-id>/<name>.sym tree.
// Freshness is judged by size and modification time only.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// ResolvePath returns the cache path for header below root, creating the
// module and build-id directories as needed.
func (s *Store) ResolvePath(root string, header domain.ModuleHeader) (string, error) {
	path := filepath.Join(root, domain.SymbolRelPath(header))

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrCacheDirCreateFailed, err.Error()), "path", dir)
	}

	return path, nil
}

// NeedsRebuild reports whether the symbol file at path must be regenerated
// for bundle. A file that is non-empty and at least as new as the bundle is fresh.
func (s *Store) NeedsRebuild(bundle domain.Bundle, path string, force bool) (bool, error) {
	if force {
		return true, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, zerr.With(zerr.Wrap(domain.ErrCacheStatFailed, err.Error()), "path", path)
	}

	if info.Size() == 0 {
		return true, nil
	}

	return info.ModTime().Before(bundle.ModTime), nil
}

// Persist atomically replaces the file at path with data and stamps it with
// modTime. If the file already holds identical bytes only the stamp is refreshed.
func (s *Store) Persist(path string, data []byte, modTime time.Time) (domain.CacheEntry, error) {
	sum := xxhash.Sum64(data)
	entry := domain.CacheEntry{
		Path:    path,
		Size:    int64(len(data)),
		ModTime: modTime,
		Digest:  formatDigest(sum),
	}

	if holdsContent(path, int64(len(data)), sum) {
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			return domain.CacheEntry{}, zerr.With(zerr.Wrap(domain.ErrStampFailed, err.Error()), "path", path)
		}
		entry.Unchanged = true
		return entry, nil
	}

	if err := writeAtomic(path, data, modTime); err != nil {
		return domain.CacheEntry{}, err
	}

	return entry, nil
}

// writeAtomic writes data to a temp file next to path, stamps it and renames
// it into place, so path never holds a partial or unstamped file.
func writeAtomic(path string, data []byte, modTime time.Time) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPartialWrite, err.Error()), "path", path)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPartialWrite, err.Error()), "path", path)
	}
	if err = tmp.Sync(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPartialWrite, err.Error()), "path", path)
	}
	if err = tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPartialWrite, err.Error()), "path", path)
	}
	if err = os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPartialWrite, err.Error()), "path", path)
	}
	if err = os.Chtimes(tmpName, modTime, modTime); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStampFailed, err.Error()), "path", path)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPartialWrite, err.Error()), "path", path)
	}

	return nil
}

// holdsContent reports whether the file at path has the given size and digest.
// Any error reading the file is treated as a mismatch.
func holdsContent(path string, size int64, sum uint64) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != size || size == 0 {
		return false
	}

	f, err := os.Open(path) //nolint:gosec // Path is derived from the cache root
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return false
	}

	return h.Sum64() == sum
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
