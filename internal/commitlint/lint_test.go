package commitlint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLinter(t *testing.T) *Linter {
	t.Helper()
	l, err := New(DefaultOptions())
	require.NoError(t, err)
	return l
}

func ruleNames(problems []Problem) []string {
	names := make([]string, 0, len(problems))
	for _, p := range problems {
		names = append(names, p.Rule)
	}
	return names
}

func TestLint_Rules(t *testing.T) {
	t.Parallel()

	l := newTestLinter(t)

	tests := map[string]struct {
		message      string
		wantValid    bool
		wantErrors   []string
		wantWarnings []string
	}{
		"valid header": {
			message:   "feat: add night mode",
			wantValid: true,
		},
		"valid with scope body and footer": {
			message:   "fix(api): retry token refresh\n\nThe cloud API drops the first request.\n\nCloses #12",
			wantValid: true,
		},
		"not conventional": {
			message:    "update stuff",
			wantErrors: []string{"subject-empty", "type-empty"},
		},
		"upper-case type": {
			message:    "Feat: add night mode",
			wantErrors: []string{"type-case", "type-enum"},
		},
		"unknown type": {
			message:    "feature: add night mode",
			wantErrors: []string{"type-enum"},
		},
		"sentence-case subject": {
			message:    "fix: Add retry",
			wantErrors: []string{"subject-case"},
		},
		"quoted proper name is fine": {
			message:   "fix: bump `Duux` client",
			wantValid: true,
		},
		"subject starting with digit is fine": {
			message:   "chore: 2 fixes for sensors",
			wantValid: true,
		},
		"full stop": {
			message:    "docs: explain setup.",
			wantErrors: []string{"subject-full-stop"},
		},
		"ellipsis is not a full stop": {
			message:   "docs: explain setup...",
			wantValid: true,
		},
		"header too long": {
			message:    "feat: " + strings.Repeat("a", 95),
			wantErrors: []string{"header-max-length"},
		},
		"header with trailing space": {
			message:    "feat: add mode ",
			wantErrors: []string{"header-trim"},
		},
		"body without blank line warns": {
			message:      "fix: x\nbody right after header",
			wantValid:    true,
			wantWarnings: []string{"body-leading-blank"},
		},
		"footer without blank line warns": {
			message:      "fix: x\n\nbody\nBREAKING CHANGE: y",
			wantValid:    true,
			wantWarnings: []string{"footer-leading-blank"},
		},
		"issue reference inside body paragraph": {
			message:   "fix: clamp speed\n\nThe slider overflowed and this\nfixes #7 for good.",
			wantValid: true,
		},
		"long body line": {
			message:    "fix: x\n\n" + strings.Repeat("b", 101),
			wantErrors: []string{"body-max-line-length"},
		},
		"long url in body is allowed": {
			message:   "fix: x\n\nhttps://example.com/" + strings.Repeat("p", 120),
			wantValid: true,
		},
		"long footer line": {
			message:    "fix: x\n\nbody\n\nRefs: " + strings.Repeat("f", 100),
			wantErrors: []string{"footer-max-line-length"},
		},
		"empty message": {
			message:    "  \n",
			wantErrors: []string{"empty-message"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := l.Lint(tt.message)
			assert.Equal(t, tt.wantValid, r.Valid)
			assert.False(t, r.Ignored)
			assert.ElementsMatch(t, tt.wantErrors, ruleNames(r.Errors))
			assert.ElementsMatch(t, tt.wantWarnings, ruleNames(r.Warnings))
		})
	}
}

func TestLint_Ignores(t *testing.T) {
	t.Parallel()

	l := newTestLinter(t)

	tests := map[string]struct {
		message string
		ignored bool
	}{
		"ci skip marker":               {message: "chore(release): 1.2.0 [ci skip]", ignored: true},
		"skip ci marker":               {message: "chore(release): 1.2.0 [skip ci]", ignored: true},
		"marker is case-insensitive":   {message: "Release 1.2.0 [SKIP CI]", ignored: true},
		"marker in body":               {message: "Release 1.2.0\n\n[Ci Skip]", ignored: true},
		"merge branch":                 {message: "Merge branch 'main' into feature", ignored: true},
		"merge pull request":           {message: "Merge pull request #12 from org/branch\n\nfeat: x", ignored: true},
		"revert":                       {message: "Revert \"feat: add night mode\"", ignored: true},
		"fixup":                        {message: "fixup! feat: add night mode", ignored: true},
		"letters of marker are not it": {message: "Chore bump deps", ignored: false},
		"marker without brackets":      {message: "Release 1.2.0 skip ci", ignored: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := l.Lint(tt.message)
			assert.Equal(t, tt.ignored, r.Ignored)
			if tt.ignored {
				assert.True(t, r.Valid)
				assert.NotEmpty(t, r.IgnoreReason)
				assert.Empty(t, r.Errors)
			}
		})
	}
}

func TestLint_Options(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Types = []string{"feat", "fix", "release"}
	opts.HeaderMaxLength = 20
	opts.Ignores = []string{`^WIP\b`}
	opts.DefaultIgnores = false

	l, err := New(opts)
	require.NoError(t, err)

	assert.True(t, l.Lint("release: 1.0.0").Valid)
	assert.False(t, l.Lint("chore: bump deps").Valid)
	assert.Contains(t, ruleNames(l.Lint("feat: a rather long subject line").Errors), "header-max-length")
	assert.True(t, l.Lint("WIP something").Ignored)
	assert.False(t, l.Lint("Merge branch 'main' into feature").Ignored)
	assert.True(t, l.Lint("chore: bump [skip ci]").Ignored, "skip ci applies regardless of default ignores")
}

func TestNew_InvalidIgnorePattern(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Ignores = []string{"("}

	_, err := New(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling ignore pattern")
}

func TestLintAll(t *testing.T) {
	t.Parallel()

	l := newTestLinter(t)

	reports, ok := l.LintAll([]string{"feat: a", "chore: b [ci skip]"})
	assert.True(t, ok)
	assert.Len(t, reports, 2)

	reports, ok = l.LintAll([]string{"feat: a", "nope"})
	assert.False(t, ok)
	assert.False(t, reports[1].Valid)
}

func TestIsSkipCI(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSkipCI("docs: x [ci skip]"))
	assert.True(t, IsSkipCI("docs: x [SKIP CI]"))
	assert.False(t, IsSkipCI("docs: x"))
	assert.False(t, IsSkipCI("ci: skip flaky job"))
}
