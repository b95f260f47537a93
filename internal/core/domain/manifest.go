// Package domain contains the core domain model for the release pipeline.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Manifest is the declarative list of targets for one pipeline run.
// It is built once from configuration and immutable afterwards; iteration
// order is declaration order, which also fixes the archive entry order.
type Manifest struct {
	// Version is the manifest schema version string.
	Version string

	// Root is the directory artifact paths are resolved against.
	Root string

	// Output is the default archive output path.
	Output string

	// Build is the global build step, invoked once for all targets.
	// May be nil when every target carries its own step.
	Build *BuildStep

	targets []TargetSpec
	index   map[InternedString]int
}

// NewManifest creates a new empty Manifest.
func NewManifest() *Manifest {
	return &Manifest{
		index: make(map[InternedString]int),
	}
}

// AddTarget appends a target to the manifest.
// It returns ErrDuplicateTriple if the triple is already declared.
func (m *Manifest) AddTarget(t TargetSpec) error {
	if _, exists := m.index[t.Triple]; exists {
		return zerr.With(ErrDuplicateTriple, "triple", t.Triple.String())
	}
	m.index[t.Triple] = len(m.targets)
	m.targets = append(m.targets, t)
	return nil
}

// Target returns the target with the given triple.
func (m *Manifest) Target(triple InternedString) (TargetSpec, error) {
	i, exists := m.index[triple]
	if !exists {
		return TargetSpec{}, zerr.With(ErrTargetNotFound, "triple", triple.String())
	}
	return m.targets[i], nil
}

// TargetCount returns the number of declared targets.
func (m *Manifest) TargetCount() int {
	return len(m.targets)
}

// Targets returns an iterator over targets in declaration order.
func (m *Manifest) Targets() iter.Seq[TargetSpec] {
	return func(yield func(TargetSpec) bool) {
		for _, t := range m.targets {
			if !yield(t) {
				return
			}
		}
	}
}

// StepFor returns the build step covering the given target: the target's own
// step when present, otherwise the global one.
// Returns ErrNoBuildStep when neither exists.
func (m *Manifest) StepFor(t TargetSpec) (*BuildStep, error) {
	if t.Build != nil {
		return t.Build, nil
	}
	if m.Build != nil {
		return m.Build, nil
	}
	return nil, zerr.With(ErrNoBuildStep, "triple", t.Triple.String())
}

// PerTargetBuilds reports whether targets are built solely by their own
// steps, with no global step declared. Individual targets may still override
// a declared global step with their own.
func (m *Manifest) PerTargetBuilds() bool {
	return m.Build == nil
}

// Validate checks the manifest invariants: at least one target, and a build
// step covering every target.
func (m *Manifest) Validate() error {
	if len(m.targets) == 0 {
		return ErrEmptyManifest
	}
	for _, t := range m.targets {
		if _, err := m.StepFor(t); err != nil {
			return err
		}
	}
	return nil
}
