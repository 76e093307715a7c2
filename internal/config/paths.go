package config

// ProjectConfigFile is the project-level config file name.
const ProjectConfigFile = ".changelog-check.yml"

// ProjectConfigPath returns the path to the project-level config file.
// This is always .changelog-check.yml relative to the current directory.
func ProjectConfigPath() string {
	return ProjectConfigFile
}
