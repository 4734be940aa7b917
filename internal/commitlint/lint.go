package commitlint

import "strings"

// DefaultTypes are the commit types allowed by the conventional preset.
var DefaultTypes = []string{
	"build", "chore", "ci", "docs", "feat", "fix", "perf", "refactor", "revert", "style", "test",
}

// Options tunes the conventional rule set.
type Options struct {
	// Types allowed by type-enum. Empty disables the rule.
	Types []string
	// HeaderMaxLength caps the header length. Zero disables the rule.
	HeaderMaxLength int
	// BodyMaxLineLength caps every body line. Zero disables the rule.
	BodyMaxLineLength int
	// FooterMaxLineLength caps every footer line. Zero disables the rule.
	FooterMaxLineLength int
	// Ignores are extra regular expressions; a matching message is not linted.
	Ignores []string
	// DefaultIgnores exempts merge, revert and fixup commits.
	DefaultIgnores bool
}

// DefaultOptions returns the conventional preset settings.
func DefaultOptions() Options {
	return Options{
		Types:               append([]string(nil), DefaultTypes...),
		HeaderMaxLength:     100,
		BodyMaxLineLength:   100,
		FooterMaxLineLength: 100,
		DefaultIgnores:      true,
	}
}

// Report is the outcome of linting one message.
type Report struct {
	// Input is the message header, used when printing the report.
	Input string
	// Valid is true when there are no errors.
	Valid bool
	// Ignored is true when the message was exempt from the rules.
	Ignored bool
	// IgnoreReason explains why an ignored message was skipped.
	IgnoreReason string
	Errors       []Problem
	Warnings     []Problem
}

// Linter applies the conventional rule set to commit messages.
type Linter struct {
	opts    Options
	ignores *ignoreMatcher
}

// New creates a Linter. It fails only if an ignore pattern does not compile.
func New(opts Options) (*Linter, error) {
	ignores, err := newIgnoreMatcher(opts.DefaultIgnores, opts.Ignores)
	if err != nil {
		return nil, err
	}
	return &Linter{opts: opts, ignores: ignores}, nil
}

// Lint checks a single commit message.
func (l *Linter) Lint(message string) Report {
	header, _, _ := strings.Cut(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	report := Report{Input: header, Valid: true}

	if reason := l.ignores.match(message); reason != "" {
		report.Ignored = true
		report.IgnoreReason = reason
		return report
	}

	if strings.TrimSpace(message) == "" {
		report.Valid = false
		report.Errors = append(report.Errors,
			Problem{Level: LevelError, Rule: "empty-message", Message: "commit message may not be empty"})
		return report
	}

	commit := Parse(message)
	for _, r := range conventionalRules {
		msg := r.check(commit, l.opts)
		if msg == "" {
			continue
		}
		p := Problem{Level: r.level, Rule: r.name, Message: msg}
		if r.level == LevelError {
			report.Errors = append(report.Errors, p)
		} else {
			report.Warnings = append(report.Warnings, p)
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

// LintAll checks every message and reports whether all of them are valid.
func (l *Linter) LintAll(messages []string) ([]Report, bool) {
	reports := make([]Report, 0, len(messages))
	ok := true
	for _, m := range messages {
		r := l.Lint(m)
		if !r.Valid {
			ok = false
		}
		reports = append(reports, r)
	}
	return reports, ok
}
