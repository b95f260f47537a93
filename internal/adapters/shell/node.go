package shell

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/relpack/relpack/internal/adapters/logger"
	"github.com/relpack/relpack/internal/core/ports"
)

// NodeID is the unique identifier for the build runner Graft node.
const NodeID graft.ID = "adapter.build_runner"

func init() {
	graft.Register(graft.Node[ports.BuildRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
