package domain

// TargetSpec describes one cross-compilation target: where its build output
// lands on disk and what the file is called inside the release archive.
type TargetSpec struct {
	// Triple identifies the compilation target, e.g. "x86_64-pc-windows-gnu".
	// Triples are unique within a manifest.
	Triple InternedString

	// ArtifactPath is the expected build output, relative to the manifest root.
	ArtifactPath InternedString

	// ArchiveName is the filename used inside the archive.
	ArchiveName InternedString

	// Build is an optional per-target build step. When nil the manifest's
	// global build step covers this target.
	Build *BuildStep
}

// EntryPath returns the archive entry path for this target.
// Entry paths always use forward slashes, regardless of host OS.
func (t TargetSpec) EntryPath() string {
	return t.Triple.String() + "/" + t.ArchiveName.String()
}

// BuildStep is one invocation of the external build toolchain.
type BuildStep struct {
	Command     []string
	Environment map[string]string
	WorkingDir  string
}
