// Package ports defines the core interfaces for the application.
package ports

import "github.com/relpack/relpack/internal/core/domain"

// ManifestLoader defines the interface for loading the build manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest from the given path and returns the validated
	// target list.
	Load(path string) (*domain.Manifest, error)
}
