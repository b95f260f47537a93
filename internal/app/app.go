// Package app implements the application layer for relpack.
package app

import (
	"context"
	"time"

	"go.trai.ch/zerr"

	"github.com/relpack/relpack/internal/core/domain"
	"github.com/relpack/relpack/internal/core/ports"
	"github.com/relpack/relpack/internal/engine/pipeline"
)

// RunOptions carries the CLI-level knobs for one pipeline run.
type RunOptions struct {
	// ManifestPath is the manifest file to load.
	ManifestPath string

	// OutPath overrides the manifest's archive output path when non-empty.
	OutPath string

	// Jobs bounds concurrent per-target builds.
	Jobs int

	// BuildTimeout bounds each external build invocation.
	BuildTimeout time.Duration
}

// App represents the main application logic.
type App struct {
	loader   ports.ManifestLoader
	pipeline *pipeline.Pipeline
	logger   ports.Logger
}

// New creates a new App instance.
func New(loader ports.ManifestLoader, p *pipeline.Pipeline, logger ports.Logger) *App {
	return &App{
		loader:   loader,
		pipeline: p,
		logger:   logger,
	}
}

// Pipeline returns the underlying pipeline. The CLI uses it to attach a live
// telemetry view before running.
func (a *App) Pipeline() *pipeline.Pipeline {
	return a.pipeline
}

// Run loads the manifest and drives it through the full pipeline.
// The result always names the terminal stage, which the caller maps to the
// process exit code.
func (a *App) Run(ctx context.Context, opts RunOptions) (*domain.PackagingResult, error) {
	manifest, err := a.loader.Load(opts.ManifestPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}

	result, err := a.pipeline.Run(ctx, manifest, pipeline.Options{
		OutPath:      opts.OutPath,
		Jobs:         opts.Jobs,
		BuildTimeout: opts.BuildTimeout,
	})
	if err != nil {
		return result, err
	}

	a.logger.Info("packaged " + result.ArchivePath)
	return result, nil
}

// Verify loads the manifest and reports the status of every declared
// artifact without building or packaging anything.
// Returns ErrValidationFailed when any artifact is missing or empty.
func (a *App) Verify(_ context.Context, manifestPath string) ([]domain.ArtifactReport, error) {
	manifest, err := a.loader.Load(manifestPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}

	reports := a.pipeline.Reports(manifest)

	var failed error
	for _, report := range reports {
		if report.Status != domain.StatusPresent {
			if failed == nil {
				failed = domain.ErrValidationFailed
			}
			failed = zerr.With(failed, report.Triple.String(), string(report.Status))
		}
	}
	if failed != nil {
		return reports, &domain.StageError{Stage: domain.StageValidationFailed, Err: failed}
	}
	return reports, nil
}
