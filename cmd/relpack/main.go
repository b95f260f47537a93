// Package main is the entry point for the relpack CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/relpack/relpack/cmd/relpack/commands"
	"github.com/relpack/relpack/internal/app"
	"github.com/relpack/relpack/internal/core/domain"
	_ "github.com/relpack/relpack/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App, components.Logger)
	if args != nil {
		cli.SetArgs(args)
	}

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a report with stack trace and metadata under %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps a failed run to the stage-specific exit code contract:
// 2 build failed, 3 validation failed, 4 package failed, 1 anything else.
func exitCode(err error) int {
	var stageErr *domain.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage.ExitCode()
	}
	return 1
}
