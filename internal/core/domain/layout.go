package domain

import "path/filepath"

const (
	// DefaultBundleSuffix is the directory suffix of Apple debug-info bundles.
	DefaultBundleSuffix = ".dSYM"

	// SymbolFileExt is the extension of cached symbol files.
	SymbolFileExt = ".sym"

	// DefaultToolPath is the symbol dumper, resolved relative to the working directory.
	DefaultToolPath = "./dump_syms"

	// DefaultHeaderFlag makes the dumper print only the MODULE line.
	DefaultHeaderFlag = "-i"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "symcache.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// SymbolRelPath returns the cache-relative location of a module's symbol file:
// <name>/<build-id>/<name>.sym.
func SymbolRelPath(h ModuleHeader) string {
	return filepath.Join(h.Name, h.BuildID, h.Name+SymbolFileExt)
}
