package ports

import "github.com/relpack/relpack/internal/core/domain"

// ArtifactVerifier defines the interface for resolving declared artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type ArtifactVerifier interface {
	// Verify resolves the target's artifact path against root and reports
	// whether the artifact is present, missing, or empty.
	Verify(root string, target domain.TargetSpec) (domain.ArtifactStatus, error)
}
