package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/duux-ha/relnotes/internal/changelog"
	"github.com/duux-ha/relnotes/internal/config"
	clierrors "github.com/duux-ha/relnotes/internal/errors"
	"github.com/spf13/cobra"
)

// stdinPath selects standard input wherever a path or notes are accepted.
const stdinPath = "-"

type updateOptions struct {
	file     string
	fromYAML string
}

func newUpdateCmd(a *app) *cobra.Command {
	var opts updateOptions

	cmd := &cobra.Command{
		Use:   "update [notes]",
		Short: "Prepend release notes beneath the changelog header",
		Long: `Insert release notes directly beneath the CHANGELOG.md header, ahead of
all earlier entries.

The changelog must start with this exact header:

  # Changelog

  All notable changes to this project will be documented in this file.

If the header was modified the command fails and the file is not touched.
A missing changelog is created. Notes are trimmed of surrounding whitespace.`,
		Example: `  relnotes update "## [1.2.0] - 2026-10-19"
  relnotes update --file NOTES.md
  git log --format=%s v1.1.0..HEAD | relnotes update -
  relnotes update --from-yaml release.yaml`,
		GroupID: GroupChangelog,
		Args:    maxArgs(1, `relnotes update "<notes>"`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, a.cfg, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read release notes from a file ('-' for stdin)")
	cmd.Flags().StringVar(&opts.fromYAML, "from-yaml", "", "Render release notes from a structured YAML file")

	return cmd
}

func runUpdate(cmd *cobra.Command, cfg *config.Configuration, args []string, opts updateOptions) error {
	notes, err := resolveNotes(cmd.InOrStdin(), args, opts)
	if err != nil {
		return err
	}

	path := cfg.ChangelogPath
	if err := changelog.UpdateFile(path, notes); err != nil {
		if errors.Is(err, changelog.ErrHeaderMismatch) {
			return clierrors.HeaderMismatch(path, err)
		}
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "updating changelog")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added release notes to %s\n", path)
	return nil
}

// resolveNotes returns the release notes from exactly one source.
func resolveNotes(stdin io.Reader, args []string, opts updateOptions) (string, error) {
	sources := len(args)
	if opts.file != "" {
		sources++
	}
	if opts.fromYAML != "" {
		sources++
	}

	switch {
	case sources == 0:
		return "", clierrors.MissingNotes()
	case sources > 1:
		return "", clierrors.ConflictingNotesSources()
	}

	switch {
	case len(args) == 1 && args[0] == stdinPath:
		return readSource(stdin, stdinPath)
	case len(args) == 1:
		return args[0], nil
	case opts.file != "":
		return readSource(stdin, opts.file)
	default:
		return renderReleaseNotes(stdin, opts.fromYAML)
	}
}

// renderReleaseNotes loads a release notes YAML file and renders it as markdown.
func renderReleaseNotes(stdin io.Reader, path string) (string, error) {
	var (
		release *changelog.Release
		err     error
	)
	if path == stdinPath {
		release, err = changelog.LoadReleaseFromReader(stdin)
	} else {
		release, err = changelog.LoadRelease(path)
	}
	if err != nil {
		if changelog.IsValidationError(err) {
			return "", clierrors.InvalidReleaseNotes(path, err)
		}
		return "", clierrors.WrapWithMessage(err, clierrors.Prerequisite, "reading release notes")
	}

	notes, err := changelog.RenderReleaseString(release)
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering release notes")
	}
	return notes, nil
}

// readSource reads a whole file, or stdin when path is "-".
func readSource(stdin io.Reader, path string) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "reading stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Prerequisite, "reading "+path)
	}
	return string(data), nil
}
