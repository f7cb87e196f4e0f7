// Package app implements the application layer for symcache.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.trai.ch/symcache/internal/adapters/report" //nolint:depguard // Presentation is chosen in the app layer
	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/symcache/internal/core/ports"
	"go.trai.ch/symcache/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	telemetry    ports.Telemetry
	logger       ports.Logger
	stdout       io.Writer
	stderr       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	pipe *pipeline.Pipeline,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipe,
		telemetry:    telemetry,
		logger:       log,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects progress lines and the summary to stdout and the
// progress bar to stderr.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Force   bool
	Verbose bool
	Quiet   bool
	// JSON switches log output to JSON lines.
	JSON bool
	// Jobs overrides the configured worker count when positive.
	Jobs int
	// ConfigPath names the config file; empty means symcache.yaml if present.
	ConfigPath string
	// Tool overrides the configured dump_syms path when set.
	Tool string
}

// Run brings the symbol cache under symDir up to date with the bundles under
// binDir and prints the one-line summary.
func (a *App) Run(ctx context.Context, binDir, symDir string, opts RunOptions) error {
	if v, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(opts.Verbose)
	}
	if j, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		j.SetJSON(opts.JSON)
	}

	if opts.Jobs < 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidJobs, "invalid --jobs"), "jobs", opts.Jobs)
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Tool != "" {
		cfg.Tool = opts.Tool
	}
	if opts.Jobs > 0 {
		cfg.Jobs = opts.Jobs
	}

	defer func() {
		if err := a.telemetry.Close(); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to close telemetry: %v", err))
		}
		if !opts.Verbose {
			return
		}
		if err := a.telemetry.Render(a.stderr); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to render telemetry: %v", err))
		}
	}()

	reporter := report.NewReporter(a.stdout, a.stderr, a.logger, !opts.Quiet && a.interactive())

	summary, err := a.pipeline.Run(ctx, pipeline.Options{
		BundleRoot: binDir,
		SymbolRoot: symDir,
		Tool:       cfg.DumpTool(),
		Scan:       cfg.ScanOptions(),
		Force:      opts.Force,
		Jobs:       cfg.Jobs,
	}, reporter)
	if err != nil {
		return zerr.Wrap(err, "symbol run aborted")
	}

	if summary.Failed > 0 {
		a.logger.Warn(fmt.Sprintf("%d of %d bundles could not be cached", summary.Failed, summary.Visited))
	}
	_, _ = fmt.Fprintln(a.stdout, summary.String())

	return nil
}

func (a *App) interactive() bool {
	f, ok := a.stderr.(*os.File)
	return ok && report.Interactive(f)
}
