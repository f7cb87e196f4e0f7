package fs

import (
	"path/filepath"

	"github.com/gobwas/glob"
	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/zerr"
)

type ignorePattern struct {
	pattern string
	glob    glob.Glob
}

type ignoreSet []ignorePattern

func compileIgnores(patterns []string) (ignoreSet, error) {
	set := make(ignoreSet, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidIgnorePattern, err.Error()), "pattern", pattern)
		}
		set = append(set, ignorePattern{pattern: pattern, glob: g})
	}
	return set, nil
}

// match reports whether an entry is ignored. Patterns are tried against the
// entry's base name and against its slash separated path relative to root.
func (s ignoreSet) match(root, path, name string) bool {
	if len(s) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, p := range s {
		if p.glob.Match(name) || p.glob.Match(rel) {
			return true
		}
	}
	return false
}
