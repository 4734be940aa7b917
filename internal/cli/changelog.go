package cli

import (
	"errors"
	"fmt"

	"github.com/duux-ha/relnotes/internal/changelog"
	"github.com/duux-ha/relnotes/internal/config"
	clierrors "github.com/duux-ha/relnotes/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newChangelogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Inspect and initialize the changelog",
		Long: `Inspect and initialize CHANGELOG.md.

The changelog starts with a fixed header. Release notes added with
'relnotes update' are placed directly beneath it, newest first.`,
		Example: `  # Verify the header before a release
  relnotes changelog check

  # Create a header-only changelog
  relnotes changelog init

  # Print every release entry
  relnotes changelog show`,
		GroupID: GroupChangelog,
	}

	cmd.AddCommand(
		newChangelogCheckCmd(a),
		newChangelogInitCmd(a),
		newChangelogShowCmd(a),
	)

	return cmd
}

func newChangelogCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the changelog header without writing",
		Long: `Verify that the changelog starts with the exact header.

A missing changelog passes: 'relnotes update' would create it.`,
		Example: `  relnotes changelog check
  relnotes changelog check --changelog docs/CHANGELOG.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangelogCheck(cmd, a.cfg)
		},
	}
}

func runChangelogCheck(cmd *cobra.Command, cfg *config.Configuration) error {
	path := cfg.ChangelogPath
	if err := changelog.Check(path); err != nil {
		return changelogError(path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s header is intact\n", path)
	return nil
}

func newChangelogInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a header-only changelog",
		Long: `Create a changelog that contains only the header.

An existing changelog is never overwritten; its header is checked instead.`,
		Example: `  relnotes changelog init`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangelogInit(cmd, a.cfg)
		},
	}
}

func runChangelogInit(cmd *cobra.Command, cfg *config.Configuration) error {
	path := cfg.ChangelogPath
	created, err := changelog.Init(path)
	if err != nil {
		return changelogError(path, err)
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
	}
	return nil
}

type changelogShowOptions struct {
	plain bool
	width int
}

func newChangelogShowCmd(a *app) *cobra.Command {
	var opts changelogShowOptions

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the release entries below the header",
		Long: `Print every release entry below the changelog header, newest first.

Release and category headings are styled when stdout is a terminal.
Use --plain for the raw markdown.`,
		Example: `  relnotes changelog show
  relnotes changelog show --plain | head -20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangelogShow(cmd, a.cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print raw markdown without colors")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Wrap entries at this width (0 = terminal width)")

	return cmd
}

func runChangelogShow(cmd *cobra.Command, cfg *config.Configuration, opts changelogShowOptions) error {
	path := cfg.ChangelogPath
	content, err := changelog.Read(path)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading changelog")
	}

	body, err := changelog.Body(content)
	if err != nil {
		return changelogError(path, err)
	}

	out := cmd.OutOrStdout()
	if body == "" {
		fmt.Fprintf(out, "No release notes in %s yet\n", path)
		return nil
	}

	plain := opts.plain || !changelog.IsTerminal() || color.NoColor
	return changelog.FormatBody(body, out, changelog.FormatOptions{Plain: plain, MaxWidth: opts.width})
}

// changelogError maps changelog package errors to CLI errors.
func changelogError(path string, err error) error {
	if errors.Is(err, changelog.ErrHeaderMismatch) {
		return clierrors.HeaderMismatch(path, err)
	}
	return clierrors.WrapWithMessage(err, clierrors.Runtime, path)
}
