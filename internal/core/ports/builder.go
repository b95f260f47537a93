package ports

import (
	"context"
	"io"

	"github.com/relpack/relpack/internal/core/domain"
)

// BuildRunner defines the interface for invoking the external build toolchain.
//
// The toolchain is a pre-existing collaborator; the runner only observes its
// exit status and captures its diagnostic output, it never parses or alters
// build outputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type BuildRunner interface {
	// Run executes one build step.
	//
	// Diagnostic output is streamed to stdout and stderr as it is produced so
	// a failing build surfaces its full output to the caller. A non-zero exit
	// status is returned as an error carrying the exit code.
	Run(ctx context.Context, step *domain.BuildStep, stdout, stderr io.Writer) error
}
