// Package report prints per-bundle progress lines and an optional progress bar.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/symcache/internal/core/ports"
)

var _ ports.Reporter = (*Reporter)(nil)

const barThrottle = 65 * time.Millisecond

// Reporter implements ports.Reporter. Rebuilt files are announced on stdout;
// skips go to the logger at debug level and failures at warn level.
// When enabled, a spinner on stderr counts visited bundles.
type Reporter struct {
	stdout io.Writer
	logger ports.Logger
	bar    *progressbar.ProgressBar
}

// NewReporter creates a new Reporter. The progress bar is drawn on stderr
// only when progress is true.
func NewReporter(stdout, stderr io.Writer, logger ports.Logger, progress bool) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r := &Reporter{
		stdout: stdout,
		logger: logger,
	}

	if progress {
		r.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("scanning bundles"),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionThrottle(barThrottle),
			progressbar.OptionClearOnFinish(),
		)
	}

	return r
}

// Report handles one terminal outcome.
func (r *Reporter) Report(outcome domain.Outcome) {
	if r.bar != nil {
		_ = r.bar.Clear()
	}

	name := outcome.Bundle.Path
	switch outcome.State {
	case domain.StateRebuilt:
		_, _ = fmt.Fprintf(r.stdout, "wrote %s\n", outcome.Entry.Path)
		r.logger.Debug(fmt.Sprintf("%s: rebuilt from %s", outcome.Entry.Path, outcome.Header))
		if outcome.Entry.Unchanged {
			r.logger.Debug(fmt.Sprintf("%s: content unchanged, restamped", outcome.Entry.Path))
		}
	case domain.StateSkippedCached:
		r.logger.Debug(fmt.Sprintf("skipped %s: %s is up to date (%s)", name, outcome.Entry.Path, outcome.Header))
	case domain.StateSkippedMalformed:
		r.logger.Debug(fmt.Sprintf("skipped %s: %v", name, outcome.Err))
	case domain.StateFailed:
		r.logger.Warn(fmt.Sprintf("failed %s: %v", name, outcome.Err))
	default:
	}

	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

// Finish removes the progress bar.
func (r *Reporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
