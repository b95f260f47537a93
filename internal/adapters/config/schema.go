package config

// Packfile represents the structure of the relpack.yaml manifest file.
type Packfile struct {
	Version string        `yaml:"version"`
	Root    string        `yaml:"root"`
	Output  string        `yaml:"output"`
	Build   *BuildStepDTO `yaml:"build"`
	Targets []TargetDTO   `yaml:"targets"`
}

// TargetDTO represents one target declaration in the manifest.
type TargetDTO struct {
	Triple   string        `yaml:"triple"`
	Artifact string        `yaml:"artifact"`
	Name     string        `yaml:"name"`
	Build    *BuildStepDTO `yaml:"build"`
}

// BuildStepDTO represents an external build invocation in the manifest.
type BuildStepDTO struct {
	Cmd         []string          `yaml:"cmd"`
	Environment map[string]string `yaml:"environment"`
	WorkingDir  string            `yaml:"workingDir"`
}
