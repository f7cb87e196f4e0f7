// Package commands implements the CLI for symcache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/symcache/internal/app"
	"go.trai.ch/symcache/internal/build"
	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for symcache.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.RunOptions
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, binDir, symDir string, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "symcache [--force|-f] <binDirectory> <symbolDirectory>",
		Short: "Incrementally cache debug symbols for every .dSYM bundle under a directory",
		Long: "symcache finds every debug-info bundle under binDirectory, asks dump_syms for its\n" +
			"module line and writes <name>/<build-id>/<name>.sym under symbolDirectory.\n" +
			"Symbol files that are at least as new as their bundle are left alone.",
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Run(cmd.Context(), args[0], args[1], c.opts)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.Flags()
	flags.BoolVarP(&c.opts.Force, "force", "f", false, "Rebuild every symbol file regardless of timestamps")
	flags.IntVarP(&c.opts.Jobs, "jobs", "j", 0, "Number of bundles to process in parallel (default: config or one per CPU)")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "Log skipped bundles and dump_syms diagnostics")
	flags.BoolVarP(&c.opts.Quiet, "quiet", "q", false, "Disable the progress bar")
	flags.BoolVar(&c.opts.JSON, "json", false, "Write log output as JSON lines")
	flags.StringVarP(&c.opts.ConfigPath, "config", "c", "", "Path to the config file (default: ./"+domain.ConfigFileName+" if present)")
	flags.StringVar(&c.opts.Tool, "tool", "", "Path to the dump_syms executable (default: "+domain.DefaultToolPath+")")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return zerr.Wrap(domain.ErrInvalidArguments, err.Error())
	})

	c.rootCmd = rootCmd
	return c
}

func validateArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return zerr.With(
			zerr.Wrap(domain.ErrInvalidArguments, fmt.Sprintf("expected <binDirectory> <symbolDirectory>, got %d argument(s)", len(args))),
			"args", len(args),
		)
	}
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// PrintUsage writes the usage text to the error stream.
func (c *CLI) PrintUsage() {
	_, _ = fmt.Fprint(c.rootCmd.ErrOrStderr(), c.rootCmd.UsageString())
}
