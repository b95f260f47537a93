package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyManifest is returned when a manifest declares no targets.
	ErrEmptyManifest = zerr.New("manifest declares no targets")

	// ErrDuplicateTriple is returned when two targets share a target triple.
	ErrDuplicateTriple = zerr.New("duplicate target triple")

	// ErrTargetNotFound is returned when a requested triple is not in the manifest.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrNoBuildStep is returned when a target has neither its own build step
	// nor a global one covering it.
	ErrNoBuildStep = zerr.New("no build step for target")

	// ErrBuildFailed is returned when the external build invocation fails.
	ErrBuildFailed = zerr.New("build failed")

	// ErrMissingArtifact is returned when a declared artifact does not exist
	// after a successful build.
	ErrMissingArtifact = zerr.New("artifact missing")

	// ErrEmptyArtifact is returned when a declared artifact exists but is
	// zero-length, which usually means a silently failed build.
	ErrEmptyArtifact = zerr.New("artifact is empty")

	// ErrValidationFailed is returned when one or more artifacts are missing
	// or empty and packaging must not proceed.
	ErrValidationFailed = zerr.New("artifact validation failed")

	// ErrArchiveWrite is returned when writing the output archive fails.
	ErrArchiveWrite = zerr.New("archive write failed")

	// ErrPackagingFailed is returned when the packaging stage fails.
	ErrPackagingFailed = zerr.New("packaging failed")
)
