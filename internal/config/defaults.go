package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# changelog-check configuration
# Every key can be overridden with a CHANGELOG_CHECK_<KEY> environment variable.

repo: core                            # core (changelog.d fragments) | anything else (single changelog file)
root: .                               # Repository root
private: false                        # Private repos must not link PRs in changelog entries

# Core repositories
fragments_dir: changelog.d            # Per-package fragments directory
fragment_types: []                    # Accepted fragment types (<PR number>.<type>); empty accepts any
                                      # e.g. [added, changed, deprecated, removed, fixed, security]
manifest: pyproject.toml              # File marking a directory as a package
required_paths:                       # Package paths that need an entry ("dir/" or glob)
  - datadog_checks/
  - pyproject.toml
exempt_packages: []                   # Packages that never need an entry

# Non-core repositories
changelog_file: CHANGELOG.md          # Consolidated changelog file name
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"repo":            RepoCore,
		"root":            ".",
		"private":         false,
		"fragments_dir":   "changelog.d",
		"fragment_types":  []string{},
		"changelog_file":  "CHANGELOG.md",
		"manifest":        "pyproject.toml",
		"required_paths":  []string{"datadog_checks/", "pyproject.toml"},
		"exempt_packages": []string{},
	}
}
