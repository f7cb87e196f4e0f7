package ports

import "go.trai.ch/symcache/internal/core/domain"

// Reporter presents per-bundle progress to the user.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Report is called once for every bundle that reached a terminal state.
	// Calls are serialised by the caller.
	Report(outcome domain.Outcome)
	// Finish is called once after the last Report.
	Finish()
}
