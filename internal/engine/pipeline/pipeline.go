// Package pipeline drives one incremental symbol run over a bundle root.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/symcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures a single run.
type Options struct {
	BundleRoot string
	SymbolRoot string
	Tool       domain.Tool
	Scan       domain.ScanOptions
	Force      bool
	// Jobs bounds the number of bundles processed at once. Zero means one per CPU.
	Jobs int
}

// Pipeline processes every bundle under a root into the symbol cache.
type Pipeline struct {
	locator   ports.BundleLocator
	extractor ports.SymbolExtractor
	store     ports.SymbolStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewPipeline creates a new Pipeline.
func NewPipeline(
	locator ports.BundleLocator,
	extractor ports.SymbolExtractor,
	store ports.SymbolStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		locator:   locator,
		extractor: extractor,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Run locates the bundles under opts.BundleRoot and brings the symbol cache
// under opts.SymbolRoot up to date. Every outcome is handed to reporter from a
// single goroutine. Per-bundle problems are counted in the summary; only a
// missing root, an unlaunchable tool or cancellation abort the run.
func (p *Pipeline) Run(ctx context.Context, opts Options, reporter ports.Reporter) (domain.RunSummary, error) {
	var summary domain.RunSummary

	jobs := opts.Jobs
	if jobs < 0 {
		return summary, zerr.With(zerr.Wrap(domain.ErrInvalidJobs, "invalid worker count"), "jobs", jobs)
	}
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	bundles, err := p.locator.Locate(opts.BundleRoot, opts.Scan)
	if err != nil {
		return summary, err
	}

	results := make(chan domain.Outcome)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for outcome := range results {
			summary.Record(outcome.State)
			reporter.Report(outcome)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for bundle, walkErr := range bundles {
		if gctx.Err() != nil {
			break
		}
		if walkErr != nil {
			p.logger.Warn(walkErr.Error())
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := p.processBundle(gctx, opts, bundle)
			if err != nil {
				return err
			}
			results <- outcome
			return nil
		})
	}

	err = g.Wait()
	close(results)
	<-collected
	reporter.Finish()

	if err != nil {
		return summary, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return summary, ctxErr
	}

	return summary, nil
}

// processBundle walks one bundle through header check, freshness check and
// rebuild. A returned error aborts the whole run.
func (p *Pipeline) processBundle(ctx context.Context, opts Options, bundle domain.Bundle) (outcome domain.Outcome, err error) {
	ctx, vertex := p.telemetry.Record(ctx, filepath.Base(bundle.Path))
	defer func() {
		switch {
		case err != nil:
			vertex.Complete(err)
		case outcome.State == domain.StateSkippedCached:
			vertex.Cached()
			vertex.Complete(nil)
		default:
			vertex.Complete(outcome.Err)
		}
	}()

	outcome = domain.Outcome{Bundle: bundle, State: domain.StateDiscovered}

	line, err := p.extractor.ExtractHeader(ctx, opts.Tool, bundle.Path)
	if err != nil {
		if fatal(ctx, err) {
			return outcome, err
		}
		return skipMalformed(outcome, err), nil
	}

	header, err := domain.ParseModuleHeader(line)
	if err != nil {
		return skipMalformed(outcome, err), nil
	}
	outcome.State = domain.StateHeaderChecked
	outcome.Header = header

	path, err := p.store.ResolvePath(opts.SymbolRoot, header)
	if err != nil {
		return fail(outcome, err), nil
	}
	outcome.Entry.Path = path

	stale, err := p.store.NeedsRebuild(bundle, path, opts.Force)
	if err != nil {
		return fail(outcome, err), nil
	}
	if !stale {
		outcome.State = domain.StateSkippedCached
		return outcome, nil
	}

	data, err := p.extractor.ExtractFull(ctx, opts.Tool, bundle.Path)
	if err != nil {
		if fatal(ctx, err) {
			return outcome, err
		}
		return fail(outcome, err), nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fail(outcome, zerr.Wrap(domain.ErrEmptySymbols, fmt.Sprintf("no symbols for %s", header.Name))), nil
	}

	entry, err := p.store.Persist(path, data, bundle.ModTime)
	if err != nil {
		return fail(outcome, err), nil
	}

	outcome.State = domain.StateRebuilt
	outcome.Entry = entry
	return outcome, nil
}

// fatal reports whether err must stop the whole run.
func fatal(ctx context.Context, err error) bool {
	return errors.Is(err, domain.ErrToolUnavailable) || ctx.Err() != nil
}

func skipMalformed(outcome domain.Outcome, err error) domain.Outcome {
	outcome.State = domain.StateSkippedMalformed
	outcome.Err = err
	return outcome
}

func fail(outcome domain.Outcome, err error) domain.Outcome {
	outcome.State = domain.StateFailed
	outcome.Err = err
	return outcome
}
