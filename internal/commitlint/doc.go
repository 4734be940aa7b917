// Package commitlint checks commit messages against the conventional commit
// rule set.
//
// Messages carrying a skip-CI marker ("[ci skip]" or "[skip ci]", any case)
// are exempt, as are merge, revert and fixup commits produced by tooling.
// Everything else is parsed into header, body and footer and run through the
// rules in rules.go. Errors fail the lint; warnings are reported only.
package commitlint
