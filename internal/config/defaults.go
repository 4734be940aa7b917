package config

import (
	"github.com/duux-ha/relnotes/internal/changelog"
	"github.com/duux-ha/relnotes/internal/commitlint"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# See 'relnotes config -h' for commands

changelog_path: CHANGELOG.md          # Changelog updated by 'relnotes update'
color: auto                           # auto | always | never

# Conventional commit lint settings
lint:
  types:                              # Allowed commit types (type-enum)
    - build
    - chore
    - ci
    - docs
    - feat
    - fix
    - perf
    - refactor
    - revert
    - style
    - test
  header_max_length: 100              # 0 disables header-max-length
  body_max_line_length: 100           # 0 disables body-max-line-length
  footer_max_line_length: 100         # 0 disables footer-max-line-length
  default_ignores: true               # Skip merge, revert and fixup commits
  ignores: []                         # Extra regexes for messages to skip
`
}

// GetDefaults returns the default configuration values keyed by koanf path.
// Commits marked [ci skip] or [skip ci] are always exempt from linting and
// need no setting here.
func GetDefaults() map[string]interface{} {
	defaults := commitlint.DefaultOptions()
	return map[string]interface{}{
		"changelog_path":              changelog.DefaultPath,
		"color":                       "auto",
		"lint.types":                  defaults.Types,
		"lint.header_max_length":      defaults.HeaderMaxLength,
		"lint.body_max_line_length":   defaults.BodyMaxLineLength,
		"lint.footer_max_line_length": defaults.FooterMaxLineLength,
		"lint.ignores":                []string{},
		"lint.default_ignores":        defaults.DefaultIgnores,
	}
}
