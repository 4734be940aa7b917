// Package cli implements the relnotes command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/duux-ha/relnotes/internal/changelog"
	"github.com/duux-ha/relnotes/internal/config"
	clierrors "github.com/duux-ha/relnotes/internal/errors"
	"github.com/duux-ha/relnotes/internal/git"
	"github.com/duux-ha/relnotes/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupCommits   = "commits"
	GroupSetup     = "setup"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath    string
	changelogPath string
	debug         bool
	noColor       bool
}

// app is the state resolved in PersistentPreRunE and shared by subcommands.
type app struct {
	opts   rootOptions
	cfg    *config.Configuration
	logger *zap.Logger
}

// NewRootCmd builds the relnotes command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "relnotes",
		Short: "Prepend release notes to CHANGELOG.md and lint commit messages",
		Long: `relnotes keeps CHANGELOG.md newest-first under a fixed header and checks
commit messages against the conventional commit rules.

Commits containing [ci skip] or [skip ci] are never linted.`,
		Example: `  # Add release notes beneath the changelog header
  relnotes update "## [1.2.0] - 2026-10-19"

  # Render structured notes and add them
  relnotes update --from-yaml release.yaml

  # Lint every commit since the last release tag
  relnotes lint --from v1.1.0`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.opts.configPath, "config", "c", "", "Project config file (default: .relnotes.yml)")
	pf.StringVar(&a.opts.changelogPath, "changelog", "", "Changelog file (default: CHANGELOG.md)")
	pf.BoolVarP(&a.opts.debug, "debug", "d", false, "Print debug logs to stderr")
	pf.BoolVar(&a.opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog:"},
		&cobra.Group{ID: GroupCommits, Title: "Commits:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup:"},
	)

	cmd.AddCommand(
		newUpdateCmd(a),
		newChangelogCmd(a),
		newLintCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		clierrors.FprintError(cmd.ErrOrStderr(), err)
	}
	return err
}

// setup wires logging, loads configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = logging.New(cmd.ErrOrStderr(), a.opts.debug)
	if a.opts.debug {
		debugf := logging.DebugFunc(a.logger)
		changelog.SetDebugLogger(debugf)
		git.SetDebugLogger(debugf)
	} else {
		changelog.SetDebugLogger(nil)
		git.SetDebugLogger(nil)
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: a.opts.configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.ConfigLoadFailed(err)
	}

	if a.opts.changelogPath != "" {
		cfg.ChangelogPath = a.opts.changelogPath
	}
	if a.opts.noColor {
		cfg.Color = "never"
	}
	applyColor(cfg.Color)

	a.cfg = cfg
	a.logger.Debug("configuration loaded",
		zap.String("changelog_path", cfg.ChangelogPath),
		zap.String("color", cfg.Color),
		zap.Strings("lint_types", cfg.Lint.Types))
	return nil
}

// applyColor overrides fatih/color's TTY detection when asked to.
func applyColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// maxArgs is cobra.MaximumNArgs with an argument error carrying usage.
func maxArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("accepts at most %d arg(s), received %d", n, len(args)),
				usage,
				"Quote text that contains spaces",
			)
		}
		return nil
	}
}
