// Package pipeline implements the build, validate, package state machine.
package pipeline

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/relpack/relpack/internal/core/domain"
	"github.com/relpack/relpack/internal/core/ports"
)

// DefaultBuildTimeout bounds a single external build invocation.
const DefaultBuildTimeout = 30 * time.Minute

// Options configures one pipeline run.
type Options struct {
	// OutPath overrides the manifest's archive output path when non-empty.
	OutPath string

	// Jobs bounds concurrent per-target builds. Defaults to NumCPU.
	Jobs int

	// BuildTimeout bounds each external build invocation. Zero means
	// DefaultBuildTimeout; negative disables the bound.
	BuildTimeout time.Duration
}

// Pipeline drives one manifest through the three stages in strict order:
// building, then validating, then packaging. Packaging never observes
// artifacts from an in-progress build and never runs on a partial target set.
type Pipeline struct {
	runner    ports.BuildRunner
	verifier  ports.ArtifactVerifier
	archiver  ports.Archiver
	logger    ports.Logger
	telemetry ports.Telemetry

	mu    sync.RWMutex
	stage domain.Stage
}

// New creates a new Pipeline.
func New(
	runner ports.BuildRunner,
	verifier ports.ArtifactVerifier,
	archiver ports.Archiver,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Pipeline {
	return &Pipeline{
		runner:    runner,
		verifier:  verifier,
		archiver:  archiver,
		logger:    logger,
		telemetry: telemetry,
		stage:     domain.StagePending,
	}
}

// SetTelemetry replaces the telemetry sink. Used by the CLI to attach a live
// view before the run starts.
func (p *Pipeline) SetTelemetry(t ports.Telemetry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.telemetry = t
}

// Telemetry returns the current telemetry sink. The CLI uses it to surface
// the recorded run and close the session once the run has finished.
func (p *Pipeline) Telemetry() ports.Telemetry {
	return p.getTelemetry()
}

// Stage returns the stage the pipeline is currently in.
func (p *Pipeline) Stage() domain.Stage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stage
}

func (p *Pipeline) setStage(s domain.Stage) {
	p.mu.Lock()
	p.stage = s
	p.mu.Unlock()
}

func (p *Pipeline) getTelemetry() ports.Telemetry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.telemetry
}

// Run executes the full pipeline for one manifest.
//
// The returned result always carries the terminal stage. On failure the
// error wraps the stage's sentinel (ErrBuildFailed, ErrValidationFailed or
// ErrPackagingFailed) and the result lists the failing triples.
func (p *Pipeline) Run(ctx context.Context, manifest *domain.Manifest, opts Options) (*domain.PackagingResult, error) {
	if err := manifest.Validate(); err != nil {
		return &domain.PackagingResult{Stage: domain.StagePending}, err
	}

	p.setStage(domain.StageBuilding)
	if failures, err := p.build(ctx, manifest, opts); err != nil {
		p.setStage(domain.StageBuildFailed)
		return &domain.PackagingResult{
				Stage:    domain.StageBuildFailed,
				Failures: failures,
			}, &domain.StageError{
				Stage: domain.StageBuildFailed,
				Err:   err,
			}
	}

	p.setStage(domain.StageValidating)
	if failures := p.validate(manifest); len(failures) > 0 {
		p.setStage(domain.StageValidationFailed)
		err := domain.ErrValidationFailed
		for _, f := range failures {
			err = zerr.With(err, f.Triple.String(), f.Reason)
		}
		return &domain.PackagingResult{
				Stage:    domain.StageValidationFailed,
				Failures: failures,
			}, &domain.StageError{
				Stage: domain.StageValidationFailed,
				Err:   err,
			}
	}

	p.setStage(domain.StagePackaging)
	archivePath, sumPath, err := p.pack(ctx, manifest, opts.OutPath)
	if err != nil {
		p.setStage(domain.StagePackageFailed)
		return &domain.PackagingResult{Stage: domain.StagePackageFailed},
			&domain.StageError{
				Stage: domain.StagePackageFailed,
				Err:   zerr.Wrap(err, domain.ErrPackagingFailed.Error()),
			}
	}

	p.setStage(domain.StageDone)
	return &domain.PackagingResult{
		Stage:        domain.StageDone,
		ArchivePath:  archivePath,
		ChecksumPath: sumPath,
	}, nil
}

// build runs the external toolchain. The global step, when declared, runs
// first and exactly once; targets carrying their own step override it and run
// afterwards. Per-target builds are independent, so they run concurrently
// bounded by opts.Jobs; the first failure cancels the rest, and validation
// starts only after all have returned.
func (p *Pipeline) build(ctx context.Context, manifest *domain.Manifest, opts Options) ([]domain.TargetFailure, error) {
	if manifest.Build != nil {
		if err := p.runStep(ctx, "build", manifest.Build, opts.BuildTimeout); err != nil {
			return nil, err
		}
	}

	var targets []domain.TargetSpec
	for target := range manifest.Targets() {
		if target.Build != nil {
			targets = append(targets, target)
		}
	}
	if len(targets) == 0 {
		if manifest.Build == nil {
			// Unreachable after Validate, kept as a guard.
			return nil, domain.ErrNoBuildStep
		}
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var (
		failMu   sync.Mutex
		failures []domain.TargetFailure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, target := range targets {
		g.Go(func() error {
			runErr := p.runStep(gctx, "build "+target.Triple.String(), target.Build, opts.BuildTimeout)
			if runErr != nil {
				failMu.Lock()
				failures = append(failures, domain.TargetFailure{
					Triple: target.Triple,
					Reason: runErr.Error(),
				})
				failMu.Unlock()
				return zerr.With(runErr, "triple", target.Triple.String())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return failures, err
	}
	return nil, nil
}

// runStep invokes one build step under its own telemetry vertex, bounding it
// with the configured timeout.
func (p *Pipeline) runStep(ctx context.Context, name string, step *domain.BuildStep, timeout time.Duration) error {
	if timeout == 0 {
		timeout = DefaultBuildTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	vctx, vertex := p.getTelemetry().Record(ctx, name)
	err := p.runner.Run(vctx, step, vertex.Stdout(), vertex.Stderr())
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = zerr.Wrap(err, "build timed out")
	}
	vertex.Complete(err)
	return err
}

// validate resolves every declared artifact and collects all failing targets
// rather than stopping at the first, so a single run reports the full set of
// missing or empty artifacts.
func (p *Pipeline) validate(manifest *domain.Manifest) []domain.TargetFailure {
	var failures []domain.TargetFailure

	for _, report := range p.Reports(manifest) {
		switch report.Status {
		case domain.StatusPresent:
			continue
		case domain.StatusMissing:
			failures = append(failures, domain.TargetFailure{
				Triple: report.Triple,
				Reason: domain.ErrMissingArtifact.Error(),
			})
		case domain.StatusEmpty:
			failures = append(failures, domain.TargetFailure{
				Triple: report.Triple,
				Reason: domain.ErrEmptyArtifact.Error(),
			})
		}
	}
	return failures
}

// Reports resolves every declared artifact and returns one report per target
// in manifest order. Used by the validation stage and by verify-only runs.
func (p *Pipeline) Reports(manifest *domain.Manifest) []domain.ArtifactReport {
	reports := make([]domain.ArtifactReport, 0, manifest.TargetCount())

	for target := range manifest.Targets() {
		status, err := p.verifier.Verify(manifest.Root, target)
		if err != nil {
			p.logger.Error(err)
			status = domain.StatusMissing
		}
		reports = append(reports, domain.ArtifactReport{
			Triple: target.Triple,
			Path:   target.ArtifactPath,
			Status: status,
		})
	}
	return reports
}

func (p *Pipeline) pack(ctx context.Context, manifest *domain.Manifest, outPath string) (string, string, error) {
	_, vertex := p.getTelemetry().Record(ctx, "package")
	archivePath, sumPath, err := p.archiver.Pack(ctx, manifest, outPath)
	vertex.Complete(err)
	return archivePath, sumPath, err
}
