package cli

import clierrors "github.com/duux-ha/relnotes/internal/errors"

// Exit codes for the relnotes CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates a changelog header mismatch, failed
	// commit lint, or any other failure without a more specific code
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates a required file or repository is missing
	ExitMissingDependencies = 4

	// ExitConfigInvalid indicates configuration could not be loaded
	ExitConfigInvalid = 5
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitValidationFailed
	}

	switch cliErr.Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Prerequisite:
		return ExitMissingDependencies
	case clierrors.Configuration:
		return ExitConfigInvalid
	default:
		return ExitValidationFailed
	}
}
