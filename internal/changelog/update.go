package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

// Header is the fixed preamble every CHANGELOG.md must start with.
// Tooling that reads the changelog depends on it being reproduced exactly.
const Header = `# Changelog

All notable changes to this project will be documented in this file.
`

// DefaultPath is the changelog location relative to the working directory.
const DefaultPath = "CHANGELOG.md"

// ErrHeaderMismatch is matched by every HeaderMismatchError via errors.Is.
var ErrHeaderMismatch = errors.New("changelog header was modified or missing")

// HeaderMismatchError is returned when existing changelog content does not
// begin with Header. Nothing is written when it occurs.
type HeaderMismatchError struct {
	Path string
}

func (e *HeaderMismatchError) Error() string {
	if e.Path == "" {
		return ErrHeaderMismatch.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, ErrHeaderMismatch)
}

// Is reports whether target is ErrHeaderMismatch.
func (e *HeaderMismatchError) Is(target error) bool {
	return target == ErrHeaderMismatch
}

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for changelog operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Body returns everything after Header with leading whitespace stripped.
// Returns a HeaderMismatchError if content does not start with Header.
func Body(content string) (string, error) {
	if !strings.HasPrefix(content, Header) {
		return "", &HeaderMismatchError{}
	}
	return strings.TrimLeftFunc(content[len(Header):], unicode.IsSpace), nil
}

// Prepend inserts notes directly beneath Header, ahead of every existing entry.
//
// The layout is Header, a blank line, the trimmed notes, a blank line, then the
// previous body prefixed with a newline when it is non-empty, and a final
// newline. The spacing is part of the file format and must not be normalized.
func Prepend(existing, notes string) (string, error) {
	rest, err := Body(existing)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(Header) + len(notes) + len(rest) + 6)
	b.WriteString(Header)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(notes))
	b.WriteString("\n\n")
	if rest != "" {
		b.WriteString("\n")
		b.WriteString(rest)
	}
	b.WriteString("\n")

	return b.String(), nil
}

// Read returns the changelog content at path.
// A missing file reads as Header alone, i.e. an empty changelog.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logDebug("[changelog] %s does not exist, starting from header", path)
		return Header, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	logDebug("[changelog] read %d bytes from %s", len(data), path)
	return string(data), nil
}

// UpdateFile prepends notes to the changelog at path and overwrites it in a
// single write. If the existing header does not match, the file is left
// untouched and a HeaderMismatchError is returned.
func UpdateFile(path, notes string) error {
	existing, err := Read(path)
	if err != nil {
		return err
	}

	updated, err := Prepend(existing, notes)
	if err != nil {
		if errors.Is(err, ErrHeaderMismatch) {
			return &HeaderMismatchError{Path: path}
		}
		return err
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logDebug("[changelog] wrote %d bytes to %s", len(updated), path)
	return nil
}

// Check validates the header of the changelog at path without writing.
// A missing file is valid.
func Check(path string) error {
	existing, err := Read(path)
	if err != nil {
		return err
	}
	if _, err := Body(existing); err != nil {
		return &HeaderMismatchError{Path: path}
	}
	return nil
}

// Init creates a header-only changelog at path if none exists.
// Returns true if the file was created. An existing file is validated instead.
func Init(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return false, Check(path)
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.WriteString(Header); err != nil {
		f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}

	logDebug("[changelog] created %s", path)
	return true, nil
}
