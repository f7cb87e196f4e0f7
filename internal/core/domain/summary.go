package domain

import "fmt"

// BundleState is the lifecycle state of a bundle within one run.
type BundleState string

const (
	// StateDiscovered indicates the locator yielded the bundle.
	StateDiscovered BundleState = "discovered"
	// StateHeaderChecked indicates the module line was read and parsed.
	StateHeaderChecked BundleState = "header-checked"
	// StateSkippedCached indicates the cached symbol file is fresh.
	StateSkippedCached BundleState = "cached"
	// StateSkippedMalformed indicates the dumper's module line was unusable.
	StateSkippedMalformed BundleState = "malformed"
	// StateRebuilt indicates the symbol file was regenerated.
	StateRebuilt BundleState = "rebuilt"
	// StateFailed indicates a per-bundle I/O failure; the run continues.
	StateFailed BundleState = "failed"
)

// IsTerminal reports whether the bundle has finished processing.
func (s BundleState) IsTerminal() bool {
	switch s {
	case StateSkippedCached, StateSkippedMalformed, StateRebuilt, StateFailed:
		return true
	default:
		return false
	}
}

// Outcome is the terminal result of processing a single bundle.
type Outcome struct {
	Bundle Bundle
	State  BundleState
	Header ModuleHeader
	Entry  CacheEntry
	Err    error
}

// RunSummary counts what one invocation did. It is never persisted.
type RunSummary struct {
	Visited   int
	Rebuilt   int
	Cached    int
	Malformed int
	Failed    int
}

// Record accounts for a bundle that reached the given state.
// Non-terminal states are ignored.
func (s *RunSummary) Record(state BundleState) {
	if !state.IsTerminal() {
		return
	}

	s.Visited++
	switch state {
	case StateRebuilt:
		s.Rebuilt++
	case StateSkippedCached:
		s.Cached++
	case StateSkippedMalformed:
		s.Malformed++
	case StateFailed:
		s.Failed++
	}
}

// String renders the one-line run summary.
func (s RunSummary) String() string {
	return fmt.Sprintf("rebuilt %d out of %d symbol files", s.Rebuilt, s.Visited)
}
