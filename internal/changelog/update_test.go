package changelog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepend(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		existing string
		notes    string
		want     string
	}{
		"header only": {
			existing: Header,
			notes:    "v1.0.0 release",
			want:     Header + "\n\nv1.0.0 release\n\n\n",
		},
		"notes are trimmed": {
			existing: Header,
			notes:    "  \n\tv1.0.0 release \n\n",
			want:     Header + "\n\nv1.0.0 release\n\n\n",
		},
		"existing entries follow new notes": {
			existing: Header + "\n\n## [0.1.0] - 2026-01-02\n- first\n",
			notes:    "## [0.2.0] - 2026-02-03\n- second",
			want: Header + "\n\n## [0.2.0] - 2026-02-03\n- second\n\n" +
				"\n## [0.1.0] - 2026-01-02\n- first\n\n",
		},
		"leading whitespace of body is dropped": {
			existing: Header + "\n \t\n\nold\n",
			notes:    "new",
			want:     Header + "\n\nnew\n\n\nold\n\n",
		},
		"whitespace-only body counts as empty": {
			existing: Header + "\n\n\n   \n",
			notes:    "new",
			want:     Header + "\n\nnew\n\n\n",
		},
		"empty notes are not rejected": {
			existing: Header,
			notes:    "   ",
			want:     Header + "\n\n\n\n\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Prepend(tt.existing, tt.notes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrepend_HeaderMismatch(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty content":         "",
		"one character changed": strings.Replace(Header, "notable", "notabel", 1),
		"title changed":         "# CHANGELOG\n\nAll notable changes to this project will be documented in this file.\n",
		"leading blank line":    "\n" + Header,
		"crlf line endings":     strings.ReplaceAll(Header, "\n", "\r\n"),
		"missing final newline": strings.TrimSuffix(Header, "\n"),
		"other document":        "# Release notes\n\n- something\n",
	}

	for name, content := range tests {
		content := content
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Prepend(content, "notes")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrHeaderMismatch)

			var hm *HeaderMismatchError
			assert.True(t, errors.As(err, &hm))
		})
	}
}

func TestBody(t *testing.T) {
	t.Parallel()

	body, err := Body(Header + "\n\n\nnotes\n\n")
	require.NoError(t, err)
	assert.Equal(t, "notes\n\n", body)

	body, err = Body(Header)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestUpdateFile_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	require.NoError(t, UpdateFile(path, "v1.0.0 release"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"# Changelog\n\nAll notable changes to this project will be documented in this file.\n\n\nv1.0.0 release\n\n\n",
		string(data))
}

func TestUpdateFile_HeaderMismatchLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	original := strings.Replace(Header, "project", "projekt", 1) + "\n\nold notes\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	err := UpdateFile(path, "new notes")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHeaderMismatch)
	assert.Contains(t, err.Error(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestUpdateFile_Ordering(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\n\npre-existing entry\n"), 0644))

	require.NoError(t, UpdateFile(path, "first release"))
	require.NoError(t, UpdateFile(path, "second release"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	second := strings.Index(content, "second release")
	first := strings.Index(content, "first release")
	prior := strings.Index(content, "pre-existing entry")

	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, prior)
	assert.Less(t, second, first)
	assert.Less(t, first, prior)
}

func TestUpdateFile_HeaderAppearsOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	for i := 0; i < 5; i++ {
		require.NoError(t, UpdateFile(path, "release notes"))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, Header))
	assert.Equal(t, 1, strings.Count(content, Header))
	assert.Equal(t, 5, strings.Count(content, "release notes"))
}

func TestUpdateFile_MatchesPrependOfPriorContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	prior := Header + "\n\n## [1.0.0] - 2026-03-04\n\n### Fixed\n- crash on startup\n"
	require.NoError(t, os.WriteFile(path, []byte(prior), 0644))

	require.NoError(t, UpdateFile(path, "## [1.1.0] - 2026-04-05\n\n### Added\n- fan modes"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	oldRest := strings.TrimLeft(strings.TrimPrefix(prior, Header), " \t\r\n")
	want := Header + "\n\n## [1.1.0] - 2026-04-05\n\n### Added\n- fan modes\n\n" + "\n" + oldRest + "\n"
	assert.Equal(t, want, string(data))
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := map[string]struct {
		content *string
		wantErr bool
	}{
		"missing file is valid": {
			content: nil,
		},
		"header only": {
			content: ptr(Header),
		},
		"header with entries": {
			content: ptr(Header + "\n\nnotes\n"),
		},
		"modified header": {
			content: ptr("# Changes\n"),
			wantErr: true,
		},
	}

	for name, tt := range tests {
		name := name
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "-")+".md")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			err := Check(path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrHeaderMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	created, err := Init(path)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header, string(data))

	created, err = Init(path)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestInit_ExistingInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte("not a changelog\n"), 0644))

	created, err := Init(path)
	assert.False(t, created)
	assert.ErrorIs(t, err, ErrHeaderMismatch)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not a changelog\n", string(data))
}

func TestHeaderMismatchError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "changelog header was modified or missing", (&HeaderMismatchError{}).Error())
	assert.Equal(t, "CHANGELOG.md: changelog header was modified or missing",
		(&HeaderMismatchError{Path: "CHANGELOG.md"}).Error())
}

func ptr(s string) *string {
	return &s
}
