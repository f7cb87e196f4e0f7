package domain

import "time"

// Bundle is a debug-info container discovered under the bundle root.
// Bundles are discovered fresh on every run and never persisted.
type Bundle struct {
	Path    string
	ModTime time.Time
}

// CacheEntry describes a symbol file materialised in the cache.
type CacheEntry struct {
	Path    string
	Size    int64
	ModTime time.Time
	// Digest is the xxhash64 of the file content, hex encoded.
	Digest string
	// Unchanged is set when the file already held identical content and was only re-stamped.
	Unchanged bool
}

// Tool describes how to invoke the symbol dumper.
type Tool struct {
	Path       string
	HeaderFlag string
}

// ScanOptions controls which entries the bundle locator yields.
type ScanOptions struct {
	Suffix string
	Ignore []string
}
