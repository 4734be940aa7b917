package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/duux-ha/relnotes/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[ErrorCategory]string{
		Argument:          "Argument Error",
		Configuration:     "Configuration Error",
		Prerequisite:      "Prerequisite Error",
		Validation:        "Validation Error",
		Runtime:           "Runtime Error",
		ErrorCategory(99): "Error",
	}

	for category, want := range tests {
		assert.Equal(t, want, category.String())
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))

	base := stderrors.New("boom")
	wrapped := WrapWithMessage(base, Runtime, "writing file", "check permissions")
	assert.Equal(t, "writing file: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, []string{"check permissions"}, wrapped.Remediation)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := NewValidationError("bad")
	assert.Same(t, cliErr, AsCLIError(fmt.Errorf("outer: %w", cliErr)))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
}

func TestHeaderMismatch(t *testing.T) {
	t.Parallel()

	err := HeaderMismatch("CHANGELOG.md", &changelog.HeaderMismatchError{Path: "CHANGELOG.md"})
	assert.Equal(t, Validation, err.Category)
	assert.ErrorIs(t, err, changelog.ErrHeaderMismatch)
	assert.Contains(t, err.Message, "CHANGELOG.md")
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	out := FormatErrorPlain(MissingNotes())
	assert.Contains(t, out, "Error [Argument Error]: release notes are required\n")
	assert.Contains(t, out, "Usage: relnotes update \"<notes>\"\n")
	assert.Contains(t, out, "To fix this:\n")
	assert.Contains(t, out, "  • Pass the notes as a single quoted argument\n")

	assert.Empty(t, FormatErrorPlain(nil))
}

func TestFprintError_PlainError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, stderrors.New("disk full"))
	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "disk full")

	buf.Reset()
	FprintError(&buf, nil)
	assert.Empty(t, buf.String())
}
