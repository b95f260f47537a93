package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/relpack/relpack/internal/adapters/telemetry"
	"github.com/relpack/relpack/internal/app"
	"github.com/relpack/relpack/internal/tui"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var (
		outPath string
		jobs    int
		timeout time.Duration
		ui      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build all targets, validate artifacts and publish the release archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, err := cmd.Flags().GetString("manifest")
			if err != nil {
				return err
			}

			opts := app.RunOptions{
				ManifestPath: manifestPath,
				OutPath:      outPath,
				Jobs:         jobs,
				BuildTimeout: timeout,
			}

			if ui {
				return c.runWithUI(cmd, opts)
			}

			result, err := c.app.Run(cmd.Context(), opts)
			c.finishTelemetry(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.ArchivePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Archive output path (overrides the manifest)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Concurrent per-target builds (0 = number of CPUs)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-build timeout (0 = default, negative = none)")
	cmd.Flags().BoolVar(&ui, "ui", false, "Render live per-target progress")

	return cmd
}

// finishTelemetry renders the recorded run summary when the telemetry sink
// supports it, then closes the session.
func (c *CLI) finishTelemetry(cmd *cobra.Command) {
	tel := c.app.Pipeline().Telemetry()
	if d, ok := tel.(interface{ Display(io.Writer) error }); ok {
		_ = d.Display(cmd.OutOrStderr())
	}
	_ = tel.Close()
}

// runWithUI attaches a live terminal view to the pipeline, then runs it in
// the background while the view owns the terminal. Quitting the view cancels
// a still-running pipeline.
func (c *CLI) runWithUI(cmd *cobra.Command, opts app.RunOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	program := tea.NewProgram(tui.NewModel(),
		tea.WithOutput(cmd.OutOrStderr()),
		tea.WithInput(cmd.InOrStdin()),
	)
	c.app.Pipeline().SetTelemetry(telemetry.NewTUIBridge(program))

	type outcome struct {
		path string
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := c.app.Run(ctx, opts)
		var path string
		if result != nil {
			path = result.ArchivePath
		}
		program.Send(tui.MsgPipelineDone{Err: err})
		done <- outcome{path: path, err: err}
	}()

	_, runErr := program.Run()
	cancel()

	out := <-done
	c.finishTelemetry(cmd)
	if runErr != nil {
		return runErr
	}
	if out.err != nil {
		return out.err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.path)
	return nil
}
