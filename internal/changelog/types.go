package changelog

import "strings"

// Release represents a structured release notes file.
// The Version field should be a bare semantic version (e.g., "1.2.0") or
// the special identifier "unreleased". A leading "v" is accepted and stripped.
// The Date field is required for released versions (format: YYYY-MM-DD)
// but should be empty for unreleased.
type Release struct {
	Version string  `yaml:"version"`
	Date    string  `yaml:"date,omitempty"`
	Changes Changes `yaml:"changes"`
}

// Changes groups change entries by Keep a Changelog category.
// All fields are optional; empty categories are omitted when rendering.
// Categories follow the Keep a Changelog specification:
// https://keepachangelog.com/en/1.1.0/
type Changes struct {
	Added      []string `yaml:"added,omitempty"`
	Changed    []string `yaml:"changed,omitempty"`
	Deprecated []string `yaml:"deprecated,omitempty"`
	Removed    []string `yaml:"removed,omitempty"`
	Fixed      []string `yaml:"fixed,omitempty"`
	Security   []string `yaml:"security,omitempty"`
}

// category pairs a category name with its entries.
type category struct {
	name    string
	entries []string
}

// IsEmpty returns true if the Changes struct has no entries in any category.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	n := 0
	for _, cat := range c.categories() {
		n += len(cat.entries)
	}
	return n
}

// categories returns every category in standard rendering order.
func (c Changes) categories() []category {
	return []category{
		{"added", c.Added},
		{"changed", c.Changed},
		{"deprecated", c.Deprecated},
		{"removed", c.Removed},
		{"fixed", c.Fixed},
		{"security", c.Security},
	}
}

// IsUnreleased returns true if this release represents unreleased changes.
func (r Release) IsUnreleased() bool {
	return strings.EqualFold(strings.TrimSpace(r.Version), "unreleased")
}
