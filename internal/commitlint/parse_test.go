package commitlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message string
		want    Commit
	}{
		"header only": {
			message: "feat: add night mode",
			want:    Commit{Header: "feat: add night mode", Type: "feat", Subject: "add night mode"},
		},
		"scope and bang": {
			message: "feat(fan)!: drop legacy speeds",
			want: Commit{
				Header: "feat(fan)!: drop legacy speeds", Type: "feat", Scope: "fan",
				Breaking: true, Subject: "drop legacy speeds",
			},
		},
		"body and reference footer": {
			message: "fix(api): retry token refresh\n\nThe cloud API drops the first request.\n\nCloses #12",
			want: Commit{
				Header: "fix(api): retry token refresh", Type: "fix", Scope: "api",
				Subject: "retry token refresh",
				Body:    "The cloud API drops the first request.",
				Footer:  "Closes #12",
			},
		},
		"breaking change footer": {
			message: "refactor: rename entities\n\nBREAKING CHANGE: entity ids changed",
			want: Commit{
				Header: "refactor: rename entities", Type: "refactor", Subject: "rename entities",
				Breaking: true, Footer: "BREAKING CHANGE: entity ids changed",
			},
		},
		"reference inside body paragraph stays in body": {
			message: "fix: clamp speed\n\nThe slider overflowed and this\nfixes #7 for good.",
			want: Commit{
				Header: "fix: clamp speed", Type: "fix", Subject: "clamp speed",
				Body: "The slider overflowed and this\nfixes #7 for good.",
			},
		},
		"reference paragraph after body is footer": {
			message: "fix: clamp speed\n\nThe slider overflowed.\n\nFixes #7\nRefs: #9",
			want: Commit{
				Header: "fix: clamp speed", Type: "fix", Subject: "clamp speed",
				Body: "The slider overflowed.", Footer: "Fixes #7\nRefs: #9",
			},
		},
		"not conventional": {
			message: "update stuff",
			want:    Commit{Header: "update stuff"},
		},
		"crlf endings": {
			message: "docs: readme\r\n\r\nbody",
			want:    Commit{Header: "docs: readme", Type: "docs", Subject: "readme", Body: "body"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := Parse(tt.message)
			assert.Equal(t, tt.want.Header, got.Header)
			assert.Equal(t, tt.want.Type, got.Type)
			assert.Equal(t, tt.want.Scope, got.Scope)
			assert.Equal(t, tt.want.Breaking, got.Breaking)
			assert.Equal(t, tt.want.Subject, got.Subject)
			assert.Equal(t, tt.want.Body, got.Body)
			assert.Equal(t, tt.want.Footer, got.Footer)
		})
	}
}

func TestParse_LeadingBlankTracking(t *testing.T) {
	t.Parallel()

	c := Parse("fix: x\nbody right after header")
	assert.False(t, c.bodyLeadingBlank)

	c = Parse("fix: x\n\nbody\nBREAKING CHANGE: y")
	assert.True(t, c.bodyLeadingBlank)
	assert.False(t, c.footerLeadingBlank)
	assert.Equal(t, "body", c.Body)

	c = Parse("fix: x\n\nbody\n\nRefs: #123")
	assert.True(t, c.footerLeadingBlank)
	assert.Equal(t, "Refs: #123", c.Footer)
}

func TestCleanMessage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw  string
		want string
	}{
		"comments stripped": {
			raw:  "feat: x\n# Please enter the commit message\n#\n",
			want: "feat: x",
		},
		"scissors cuts diff": {
			raw:  "feat: x\n\nbody\n" + scissors + "\ndiff --git a/f b/f\n",
			want: "feat: x\n\nbody",
		},
		"trailing blank lines": {
			raw:  "fix: y\n\n\n",
			want: "fix: y",
		},
		"crlf": {
			raw:  "fix: y\r\n\r\nbody\r\n",
			want: "fix: y\n\nbody",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CleanMessage(tt.raw))
		})
	}
}
