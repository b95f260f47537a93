package fs

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/relpack/relpack/internal/core/ports"
)

const (
	// VerifierNodeID is the unique identifier for the artifact verifier node.
	VerifierNodeID graft.ID = "adapter.artifact_verifier"
	// HasherNodeID is the unique identifier for the hasher node.
	HasherNodeID graft.ID = "adapter.hasher"
)

func init() {
	graft.Register(graft.Node[ports.ArtifactVerifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactVerifier, error) {
			return NewVerifier(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
