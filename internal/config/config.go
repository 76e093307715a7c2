// Package config provides layered configuration for changelog-check using koanf.
// Configuration is loaded with priority: environment variables (CHANGELOG_CHECK_*)
// > project config (.changelog-check.yml, or an explicit path) > defaults.
// Command-line flags are applied on top by the cli package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CHANGELOG_CHECK_"

// RepoCore selects the fragment-file policy. Any other repo value selects the
// consolidated changelog policy.
const RepoCore = "core"

// Configuration represents the changelog-check tool configuration
type Configuration struct {
	// Repo selects the policy: "core" for changelog.d fragments,
	// anything else for a single consolidated changelog file.
	Repo string `koanf:"repo" yaml:"repo" validate:"required"`

	// Root is the repository root used to read package manifests and to
	// build the diff from a ref.
	Root string `koanf:"root" yaml:"root" validate:"required"`

	// Private suppresses PR links in non-core changelog entries.
	Private bool `koanf:"private" yaml:"private"`

	FragmentsDir  string   `koanf:"fragments_dir" yaml:"fragments_dir" validate:"required,excludesall=/\\"`
	FragmentTypes []string `koanf:"fragment_types" yaml:"fragment_types" validate:"dive,required"`
	ChangelogFile string   `koanf:"changelog_file" yaml:"changelog_file" validate:"required,excludesall=/\\"`

	// Manifest is the per-package metadata file marking a directory as a
	// package that can require changelog entries.
	Manifest string `koanf:"manifest" yaml:"manifest" validate:"required"`

	// RequiredPaths are package-relative paths whose changes need an entry.
	// Entries ending in "/" match directories, others are glob patterns.
	RequiredPaths []string `koanf:"required_paths" yaml:"required_paths" validate:"dive,required"`

	// ExemptPackages never require an entry.
	ExemptPackages []string `koanf:"exempt_packages" yaml:"exempt_packages"`
}

// IsCore reports whether the core fragment policy applies.
func (c *Configuration) IsCore() bool {
	return c.Repo == RepoCore
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath overrides the project config path (default: .changelog-check.yml).
	// An explicit path must exist.
	ConfigPath string
}

// Load loads configuration from the project file and environment.
// Priority: Environment variables > Project config > Defaults
func Load(configPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	path, err := resolveConfigPath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadYAMLConfig(k, path); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, path)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// resolveConfigPath returns the config file to load, or "" when the default
// project file does not exist.
func resolveConfigPath(customPath string) (string, error) {
	if customPath != "" {
		if !fileExists(customPath) {
			return "", fmt.Errorf("config file %s not found", customPath)
		}
		return customPath, nil
	}
	if path := ProjectConfigPath(); fileExists(path) {
		return path, nil
	}
	return "", nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf, path string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	source := path
	if source == "" {
		source = "config"
	}
	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Root = expandHomePath(cfg.Root)

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHANGELOG_CHECK_FRAGMENTS_DIR -> fragments_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
