// Package config provides hierarchical configuration management for relnotes using koanf.
// Configuration is loaded with priority: environment variables > project config (.relnotes.yml)
// > user config (~/.config/relnotes/config.yml) > defaults. A legacy .relnotes.json project
// config is still read, with a warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/duux-ha/relnotes/internal/commitlint"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
// Nested keys use a double underscore: RELNOTES_LINT__HEADER_MAX_LENGTH.
const EnvPrefix = "RELNOTES_"

// Configuration represents the relnotes CLI tool configuration
type Configuration struct {
	// ChangelogPath is the changelog file updated by 'relnotes update'.
	// Can be set via RELNOTES_CHANGELOG_PATH env var.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path" validate:"required"`

	// Color controls colored output: auto (TTY detection), always, never.
	Color string `koanf:"color" yaml:"color" validate:"oneof=auto always never"`

	// Lint configures the conventional commit rules used by 'relnotes lint'.
	Lint LintConfig `koanf:"lint" yaml:"lint"`
}

// LintConfig tunes the commit lint rule set.
type LintConfig struct {
	Types               []string `koanf:"types" yaml:"types" validate:"dive,required"`
	HeaderMaxLength     int      `koanf:"header_max_length" yaml:"header_max_length" validate:"min=0"`
	BodyMaxLineLength   int      `koanf:"body_max_line_length" yaml:"body_max_line_length" validate:"min=0"`
	FooterMaxLineLength int      `koanf:"footer_max_line_length" yaml:"footer_max_line_length" validate:"min=0"`
	// Ignores are extra regular expressions for messages that should not be linted.
	Ignores []string `koanf:"ignores" yaml:"ignores" validate:"dive,regexp"`
	// DefaultIgnores exempts merge, revert and fixup commits.
	DefaultIgnores bool `koanf:"default_ignores" yaml:"default_ignores"`
}

// Options converts the lint configuration to linter options.
func (l LintConfig) Options() commitlint.Options {
	return commitlint.Options{
		Types:               l.Types,
		HeaderMaxLength:     l.HeaderMaxLength,
		BodyMaxLineLength:   l.BodyMaxLineLength,
		FooterMaxLineLength: l.FooterMaxLineLength,
		Ignores:             l.Ignores,
		DefaultIgnores:      l.DefaultIgnores,
	}
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnotes.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: XDG config dir)
	UserConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// LoadWithOptions loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Warns if both exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyProjectPath := LegacyProjectConfigPath()

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if legacyProjectExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n\n", legacyProjectPath, projectYAMLPath)
		}
	} else if legacyProjectExists {
		if err := k.Load(file.Provider(legacyProjectPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyProjectPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyProjectPath)
			fmt.Fprintf(warningWriter, "  Move its settings to %s.\n\n", ProjectConfigPath())
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

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

// listKeys are split on commas when set from the environment.
var listKeys = map[string]bool{
	"lint.types":   true,
	"lint.ignores": true,
}

// envTransform converts environment variable names to config keys
// Example: RELNOTES_LINT__HEADER_MAX_LENGTH -> lint.header_max_length
func envTransform(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if listKeys[key] {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return key, items
	}
	return key, value
}
