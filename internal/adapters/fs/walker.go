// Package fs provides the file system adapter that discovers debug-info bundles.
package fs

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/symcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BundleLocator = (*Walker)(nil)

// Walker implements ports.BundleLocator using filepath.WalkDir.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Locate validates root and returns a lazy sequence of the bundles below it.
//
// An entry is a bundle when its name ends in opts.Suffix. Matching is case
// sensitive. Bundle directories are yielded and not descended into; every
// other directory is traversed. Entries matching an ignore pattern are pruned.
func (w *Walker) Locate(root string, opts domain.ScanOptions) (iter.Seq2[domain.Bundle, error], error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve bundle root"), "root", root)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrRootNotFound, err.Error()), "root", abs)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrWalkFailed, err.Error()), "root", abs)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrRootNotDirectory, "bundle root is a file"), "root", abs)
	}

	ignores, err := compileIgnores(opts.Ignore)
	if err != nil {
		return nil, err
	}

	suffix := opts.Suffix
	if suffix == "" {
		suffix = domain.DefaultBundleSuffix
	}

	return func(yield func(domain.Bundle, error) bool) {
		_ = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are reported and skipped; the walk goes on.
				if !yield(domain.Bundle{}, zerr.With(zerr.Wrap(domain.ErrWalkFailed, err.Error()), "path", path)) {
					return filepath.SkipAll
				}
				return nil
			}

			if path == abs {
				return nil
			}

			if ignores.match(abs, path, d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !strings.HasSuffix(d.Name(), suffix) {
				return nil
			}

			return w.yieldBundle(path, d, yield)
		})
	}, nil
}

func (w *Walker) yieldBundle(path string, d fs.DirEntry, yield func(domain.Bundle, error) bool) error {
	info, err := d.Info()
	if err != nil {
		if !yield(domain.Bundle{}, zerr.With(zerr.Wrap(domain.ErrWalkFailed, err.Error()), "path", path)) {
			return filepath.SkipAll
		}
		return nil
	}

	if !yield(domain.Bundle{Path: path, ModTime: info.ModTime()}, nil) {
		return filepath.SkipAll
	}

	if d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}
