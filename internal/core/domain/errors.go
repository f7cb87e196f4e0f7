package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidArguments is returned when the command line cannot be parsed.
	ErrInvalidArguments = zerr.New("invalid arguments")

	// ErrRootNotFound is returned when the bundle root directory does not exist.
	ErrRootNotFound = zerr.New("bundle root not found")

	// ErrRootNotDirectory is returned when the bundle root exists but is not a directory.
	ErrRootNotDirectory = zerr.New("bundle root is not a directory")

	// ErrInvalidIgnorePattern is returned when an ignore glob cannot be compiled.
	ErrInvalidIgnorePattern = zerr.New("invalid ignore pattern")

	// ErrWalkFailed is returned when a directory below the bundle root cannot be read.
	ErrWalkFailed = zerr.New("failed to walk bundle root")

	// ErrToolUnavailable is returned when the symbol dumper cannot be launched.
	ErrToolUnavailable = zerr.New("symbol dump tool unavailable")

	// ErrMalformedHeader is returned when the dumper's module line does not have exactly five fields.
	ErrMalformedHeader = zerr.New("malformed module header")

	// ErrEmptySymbols is returned when the dumper produced no symbol text for a bundle.
	ErrEmptySymbols = zerr.New("symbol dump produced no output")

	// ErrCacheDirCreateFailed is returned when the module/build-id directory cannot be created.
	ErrCacheDirCreateFailed = zerr.New("failed to create symbol cache directory")

	// ErrCacheStatFailed is returned when a cached symbol file cannot be inspected.
	ErrCacheStatFailed = zerr.New("failed to stat symbol file")

	// ErrPartialWrite is returned when a symbol file could not be fully written and renamed into place.
	ErrPartialWrite = zerr.New("failed to write symbol file")

	// ErrStampFailed is returned when the symbol file modification time cannot be set.
	ErrStampFailed = zerr.New("failed to stamp symbol file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidJobs is returned when the worker count is negative.
	ErrInvalidJobs = zerr.New("jobs must not be negative")
)
