// Package commands implements the CLI commands for the relpack release packager.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/relpack/relpack/internal/adapters/config"
	"github.com/relpack/relpack/internal/app"
	"github.com/relpack/relpack/internal/core/ports"
)

// CLI represents the command line interface for relpack.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app. The logger is silenced
// when --quiet is set; it may be nil.
func New(a *app.App, logger ports.Logger) *CLI {
	var quiet bool

	rootCmd := &cobra.Command{
		Use:           "relpack",
		Short:         "Build and package multi-target release archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("manifest", "m", config.DefaultFilename, "Path to the build manifest")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress log output")

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if !quiet {
			return
		}
		if s, ok := c.logger.(interface{ SetOutput(io.Writer) }); ok {
			s.SetOutput(io.Discard)
		}
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

// SetInput redirects command input. Used for testing.
func (c *CLI) SetInput(r io.Reader) {
	c.rootCmd.SetIn(r)
}
