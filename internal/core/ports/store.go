package ports

import (
	"time"

	"go.trai.ch/symcache/internal/core/domain"
)

// SymbolStore maps module identities to symbol files and decides staleness.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SymbolStore interface {
	// ResolvePath returns <root>/<name>/<build-id>/<name>.sym and creates its
	// parent directories.
	ResolvePath(root string, header domain.ModuleHeader) (string, error)

	// NeedsRebuild reports whether the symbol file at path must be regenerated
	// from bundle.
	NeedsRebuild(bundle domain.Bundle, path string, force bool) (bool, error)

	// Persist atomically replaces the file at path with data and stamps its
	// modification time with modTime.
	Persist(path string, data []byte, modTime time.Time) (domain.CacheEntry, error)
}
