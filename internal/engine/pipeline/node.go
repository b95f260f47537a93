package pipeline

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/relpack/relpack/internal/adapters/archive"           //nolint:depguard // Wired in engine wiring
	"github.com/relpack/relpack/internal/adapters/fs"                //nolint:depguard // Wired in engine wiring
	"github.com/relpack/relpack/internal/adapters/logger"            //nolint:depguard // Wired in engine wiring
	"github.com/relpack/relpack/internal/adapters/shell"             //nolint:depguard // Wired in engine wiring
	"github.com/relpack/relpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"github.com/relpack/relpack/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.VerifierNodeID,
			archive.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			runner, err := graft.Dep[ports.BuildRunner](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.ArtifactVerifier](ctx)
			if err != nil {
				return nil, err
			}

			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(runner, verifier, archiver, log, telemetry), nil
		},
	})
}
