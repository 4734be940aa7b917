package errors

import (
	"fmt"

	"github.com/duux-ha/relnotes/internal/changelog"
)

// Common error messages for the relnotes CLI.
// These templates ensure consistent, actionable error messages.

// HeaderMismatch creates an error for a changelog whose header was edited.
func HeaderMismatch(path string, err error) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  fmt.Sprintf("%s header was modified or missing", path),
		Remediation: []string{
			"Restore the first lines of the file to exactly:",
			fmt.Sprintf("%q", changelog.Header),
			"Then run the update again; the file was not changed",
		},
		Err: err,
	}
}

// MissingNotes creates an error when no release notes source was given.
func MissingNotes() *CLIError {
	return NewArgumentErrorWithUsage(
		"release notes are required",
		"relnotes update \"<notes>\"",
		"Pass the notes as a single quoted argument",
		"Or read them from a file: relnotes update --file NOTES.md",
		"Or render structured notes: relnotes update --from-yaml release.yaml",
	)
}

// ConflictingNotesSources creates an error when more than one notes source was given.
func ConflictingNotesSources() *CLIError {
	return NewArgumentErrorWithUsage(
		"release notes were given more than once",
		"relnotes update \"<notes>\" | --file PATH | --from-yaml PATH",
		"Use exactly one of: an argument, --file, or --from-yaml",
	)
}

// InvalidReleaseNotes creates an error for a release notes YAML file that failed validation.
func InvalidReleaseNotes(path string, err error) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  fmt.Sprintf("invalid release notes in %s: %v", path, err),
		Remediation: []string{
			"version must be X.Y.Z (or 'unreleased'), date must be YYYY-MM-DD",
			"List at least one entry under changes: added, changed, deprecated, removed, fixed, security",
		},
		Err: err,
	}
}

// NotARepository creates an error when commit history is needed outside a repository.
func NotARepository(err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  "not inside a git repository",
		Remediation: []string{
			"Run the command from within the repository",
			"Or lint a message directly: relnotes lint \"feat: ...\"",
		},
		Err: err,
	}
}

// ConflictingLintSources creates an error when lint is given more than one message source.
func ConflictingLintSources() *CLIError {
	return NewArgumentErrorWithUsage(
		"commit messages were given more than once",
		"relnotes lint \"<message>\" | --edit PATH | --from REV [--to REV] | --last",
		"Use exactly one message source",
	)
}

// LintFailed creates an error when one or more commit messages have lint errors.
func LintFailed(failed, total int) *CLIError {
	return NewValidationError(
		fmt.Sprintf("%d of %d commit messages failed lint", failed, total),
		"Use the form: type(scope): subject, e.g. \"fix(fan): clamp speed to range\"",
		"Add [skip ci] to messages that should not be linted",
	)
}

// ConfigLoadFailed creates an error when configuration could not be loaded.
func ConfigLoadFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"loading configuration",
		"Check .relnotes.yml for syntax errors",
		"Print the defaults with: relnotes config init --stdout",
	)
}
