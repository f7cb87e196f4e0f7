package ports

import (
	"context"

	"go.trai.ch/symcache/internal/core/domain"
)

// SymbolExtractor runs the external symbol dumper against a bundle.
//
// The dumper is treated as an opaque oracle: only the shape of its standard
// output matters. Its exit code and standard error are not interpreted.
//
//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type SymbolExtractor interface {
	// ExtractHeader returns the first non-empty line printed in header mode.
	// It returns domain.ErrToolUnavailable if the dumper cannot be launched.
	ExtractHeader(ctx context.Context, tool domain.Tool, bundlePath string) (string, error)

	// ExtractFull returns the complete symbol table text.
	// It returns domain.ErrToolUnavailable if the dumper cannot be launched.
	ExtractFull(ctx context.Context, tool domain.Tool, bundlePath string) ([]byte, error)
}
