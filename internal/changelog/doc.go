// Package changelog maintains CHANGELOG.md for relnotes.
//
// This package implements:
//   - Header validation and release-note prepending (Prepend, UpdateFile)
//   - Structured release notes parsing and validation (release YAML files)
//   - Keep a Changelog markdown rendering for a single release
//   - Terminal display of the changelog body
//
// Every CHANGELOG.md starts with Header, byte for byte. New notes go directly
// beneath it, so the file reads newest first and older entries are never
// rewritten.
package changelog
