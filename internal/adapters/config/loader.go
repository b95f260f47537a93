// Package config provides the manifest loader for relpack.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/relpack/relpack/internal/core/domain"
	"github.com/relpack/relpack/internal/core/ports"
)

const (
	// DefaultFilename is the manifest filename looked up when none is given.
	DefaultFilename = "relpack.yaml"

	// DefaultOutput is the archive path used when the manifest names none.
	DefaultOutput = "build.zip"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads a manifest file from the given path and returns a validated
// domain.Manifest. Target declaration order is preserved; it fixes the
// archive entry order.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest file")
	}

	var packfile Packfile
	if err := yaml.Unmarshal(data, &packfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest file")
	}

	m := domain.NewManifest()
	m.Version = packfile.Version
	m.Root = packfile.Root
	if m.Root == "" {
		m.Root = filepath.Dir(path)
	}
	m.Output = packfile.Output
	if m.Output == "" {
		m.Output = DefaultOutput
	}
	m.Build = toBuildStep(packfile.Build)

	for _, dto := range packfile.Targets {
		target, err := toTarget(dto)
		if err != nil {
			return nil, err
		}
		if err := m.AddTarget(target); err != nil {
			return nil, err
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

func toTarget(dto TargetDTO) (domain.TargetSpec, error) {
	if dto.Triple == "" {
		return domain.TargetSpec{}, zerr.New("target declares no triple")
	}
	if dto.Artifact == "" {
		return domain.TargetSpec{}, zerr.With(zerr.New("target declares no artifact"), "triple", dto.Triple)
	}

	// Archive name defaults to the artifact's basename, matching the layout
	// a plain zip of the build tree would have produced.
	name := dto.Name
	if name == "" {
		name = filepath.Base(filepath.ToSlash(dto.Artifact))
	}

	return domain.TargetSpec{
		Triple:       domain.NewInternedString(dto.Triple),
		ArtifactPath: domain.NewInternedString(dto.Artifact),
		ArchiveName:  domain.NewInternedString(name),
		Build:        toBuildStep(dto.Build),
	}, nil
}

func toBuildStep(dto *BuildStepDTO) *domain.BuildStep {
	if dto == nil {
		return nil
	}
	return &domain.BuildStep{
		Command:     dto.Cmd,
		Environment: dto.Environment,
		WorkingDir:  dto.WorkingDir,
	}
}
