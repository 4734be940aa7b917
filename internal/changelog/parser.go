package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError represents a release notes validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// LoadRelease reads and validates a release notes YAML file from the given path.
func LoadRelease(path string) (*Release, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening release notes file: %w", err)
	}
	defer f.Close()

	return LoadReleaseFromReader(f)
}

// LoadReleaseFromReader reads and validates release notes YAML from an io.Reader.
// The version is normalized so "v1.2.0" and "1.2.0" render identically.
func LoadReleaseFromReader(r io.Reader) (*Release, error) {
	var release Release

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&release); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Message: "release notes file is empty"}
		}
		return nil, fmt.Errorf("parsing release notes YAML: %w", err)
	}

	release.Version = NormalizeVersion(strings.TrimSpace(release.Version))

	if err := ValidateRelease(&release); err != nil {
		return nil, err
	}

	return &release, nil
}

// ValidateRelease checks that a Release satisfies all schema constraints.
// Returns nil if valid, or a ValidationError with details if invalid.
func ValidateRelease(r *Release) error {
	if r.Version == "" {
		return &ValidationError{Field: "version", Message: "required field is empty"}
	}

	if !r.IsUnreleased() {
		if !semverPattern.MatchString(NormalizeVersion(r.Version)) {
			return &ValidationError{
				Field:   "version",
				Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", r.Version),
			}
		}
		if r.Date == "" {
			return &ValidationError{Field: "date", Message: "date is required for released versions"}
		}
	}

	if r.Date != "" && !datePattern.MatchString(r.Date) {
		return &ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", r.Date),
		}
	}

	if r.Changes.IsEmpty() {
		return &ValidationError{Field: "changes", Message: "at least one change entry is required"}
	}

	for _, cat := range r.Changes.categories() {
		for i, entry := range cat.entries {
			if strings.TrimSpace(entry) == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("changes.%s[%d]", cat.name, i),
					Message: "change entry cannot be empty",
				}
			}
		}
	}

	return nil
}

// NormalizeVersion removes a leading "v" or "V" so "v1.2.0" and "1.2.0"
// render identically. Pre-release and build identifiers keep their case.
func NormalizeVersion(version string) string {
	if len(version) > 1 && (version[0] == 'v' || version[0] == 'V') && version[1] >= '0' && version[1] <= '9' {
		return version[1:]
	}
	return version
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
