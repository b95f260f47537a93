package archive

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/relpack/relpack/internal/adapters/fs"
	"github.com/relpack/relpack/internal/adapters/logger"
	"github.com/relpack/relpack/internal/core/ports"
)

// NodeID is the unique identifier for the archiver Graft node.
const NodeID graft.ID = "adapter.archiver"

func init() {
	graft.Register(graft.Node[ports.Archiver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Archiver, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPackager(hasher, log), nil
		},
	})
}
