package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderRelease writes a Keep a Changelog formatted block for a single release.
// The block is what UpdateFile prepends beneath Header.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderRelease(r *Release, w io.Writer) error {
	if _, err := io.WriteString(w, formatReleaseHeader(r)+"\n"); err != nil {
		return fmt.Errorf("rendering release header: %w", err)
	}

	for _, cat := range r.Changes.categories() {
		if len(cat.entries) == 0 {
			continue
		}
		if err := renderCategory(capitalizeFirst(cat.name), cat.entries, w); err != nil {
			return fmt.Errorf("rendering %s: %w", cat.name, err)
		}
	}

	return nil
}

// RenderReleaseString is a convenience function that renders to a string.
func RenderReleaseString(r *Release) (string, error) {
	var b strings.Builder
	if err := RenderRelease(r, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// formatReleaseHeader formats the release header line.
func formatReleaseHeader(r *Release) string {
	if r.IsUnreleased() {
		return "## [Unreleased]"
	}
	return fmt.Sprintf("## [%s] - %s", NormalizeVersion(r.Version), r.Date)
}

// renderCategory writes a single category section with its entries.
func renderCategory(name string, entries []string, w io.Writer) error {
	if _, err := io.WriteString(w, "\n### "+name+"\n"); err != nil {
		return err
	}

	for _, entry := range entries {
		if _, err := io.WriteString(w, "- "+strings.TrimSpace(entry)+"\n"); err != nil {
			return err
		}
	}

	return nil
}
