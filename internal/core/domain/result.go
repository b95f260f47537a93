package domain

// Stage identifies where a pipeline run currently is, or where it stopped.
type Stage string

const (
	// StagePending indicates the run has not started yet.
	StagePending Stage = "pending"
	// StageBuilding indicates the external build toolchain is running.
	StageBuilding Stage = "building"
	// StageValidating indicates artifacts are being checked for presence.
	StageValidating Stage = "validating"
	// StagePackaging indicates the archive is being written.
	StagePackaging Stage = "packaging"
	// StageDone is the successful terminal stage.
	StageDone Stage = "done"
	// StageBuildFailed is the terminal stage for a failed build invocation.
	StageBuildFailed Stage = "build_failed"
	// StageValidationFailed is the terminal stage for missing or empty artifacts.
	StageValidationFailed Stage = "validation_failed"
	// StagePackageFailed is the terminal stage for a failed archive write.
	StagePackageFailed Stage = "package_failed"
)

// Terminal reports whether a run in this stage has finished.
func (s Stage) Terminal() bool {
	switch s {
	case StageDone, StageBuildFailed, StageValidationFailed, StagePackageFailed:
		return true
	}
	return false
}

// ExitCode maps a terminal stage to the process exit code contract:
// 0 done, 2 build failed, 3 validation failed, 4 package failed.
// Non-terminal stages map to 1, the generic failure code.
func (s Stage) ExitCode() int {
	switch s {
	case StageDone:
		return 0
	case StageBuildFailed:
		return 2
	case StageValidationFailed:
		return 3
	case StagePackageFailed:
		return 4
	}
	return 1
}

// ArtifactStatus is the resolver's verdict on one declared artifact.
type ArtifactStatus string

const (
	// StatusPresent indicates the artifact exists and is non-empty.
	StatusPresent ArtifactStatus = "present"
	// StatusMissing indicates the artifact does not exist.
	StatusMissing ArtifactStatus = "missing"
	// StatusEmpty indicates the artifact exists but is zero-length.
	StatusEmpty ArtifactStatus = "empty"
)

// ArtifactReport is the validation outcome for one target.
type ArtifactReport struct {
	Triple InternedString
	Path   InternedString
	Status ArtifactStatus
}

// TargetFailure records why one target failed the run.
type TargetFailure struct {
	Triple InternedString
	Reason string
}

// PackagingResult is the outcome record of one pipeline run.
// On success Stage is StageDone and ArchivePath points at the published
// archive; on failure Stage names the failed stage and Failures lists the
// targets responsible, one reason per triple.
type PackagingResult struct {
	Stage        Stage
	ArchivePath  string
	ChecksumPath string
	Failures     []TargetFailure
}

// Success reports whether the run published an archive.
func (r *PackagingResult) Success() bool {
	return r.Stage == StageDone
}

// StageError is a pipeline failure tagged with the terminal stage it stopped
// in. The CLI maps it to the stage's exit code.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
