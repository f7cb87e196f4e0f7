// Package ports defines the core interfaces for the application.
package ports

import (
	"iter"

	"go.trai.ch/symcache/internal/core/domain"
)

// BundleLocator discovers debug-info bundles below a root directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type BundleLocator interface {
	// Locate validates root and returns a lazy sequence of bundles below it.
	//
	// A missing root returns domain.ErrRootNotFound. Errors met while walking
	// are yielded alongside a zero Bundle and the walk continues with the next
	// entry. Ranging over the sequence again restarts the walk.
	Locate(root string, opts domain.ScanOptions) (iter.Seq2[domain.Bundle, error], error)
}
