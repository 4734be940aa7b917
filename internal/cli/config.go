package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/duux-ha/relnotes/internal/config"
	clierrors "github.com/duux-ha/relnotes/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create relnotes configuration",
		Long: `Show or create relnotes configuration.

Configuration precedence (highest to lowest):
  1. Command-line flags (--changelog, --no-color)
  2. Environment variables (RELNOTES_*, nested keys use __)
  3. Project config (.relnotes.yml)
  4. User config (~/.config/relnotes/config.yml)
  5. Built-in defaults`,
		GroupID: GroupSetup,
	}

	cmd.AddCommand(newConfigShowCmd(a), newConfigInitCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Example: `  relnotes config show
  RELNOTES_LINT__HEADER_MAX_LENGTH=72 relnotes config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, a.cfg)
		},
	}
}

func runConfigShow(cmd *cobra.Command, cfg *config.Configuration) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "encoding configuration")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

type configInitOptions struct {
	stdout bool
	force  bool
	user   bool
}

func newConfigInitCmd(a *app) *cobra.Command {
	var opts configInitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file with the defaults",
		Long: `Write a commented config file containing every option and its default.

By default the project config (.relnotes.yml, or --config) is created.
Use --user for the user config. Existing files are kept unless --force is set.`,
		Example: `  relnotes config init
  relnotes config init --user
  relnotes config init --stdout > .relnotes.yml`,
		Args: cobra.NoArgs,
		// A broken config file must not stop init from rewriting it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, a.opts.configPath, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Print the template instead of writing a file")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&opts.user, "user", false, "Write the user config instead of the project config")

	return cmd
}

func runConfigInit(cmd *cobra.Command, projectPath string, opts configInitOptions) error {
	template := config.GetDefaultConfigTemplate()
	out := cmd.OutOrStdout()

	if opts.stdout {
		_, err := fmt.Fprint(out, template)
		return err
	}

	path, err := configInitPath(projectPath, opts.user)
	if err != nil {
		return err
	}

	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "%s already exists (use --force to overwrite)\n", path)
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "checking "+path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "creating config directory")
	}
	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+path)
	}

	fmt.Fprintf(out, "✓ Created %s\n", path)
	return nil
}

func configInitPath(projectPath string, user bool) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Prerequisite, "locating user config directory",
				"Set XDG_CONFIG_HOME or HOME")
		}
		return path, nil
	}
	if projectPath != "" {
		return projectPath, nil
	}
	return config.ProjectConfigPath(), nil
}
