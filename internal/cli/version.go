package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/duux-ha/relnotes/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for relnotes",
		Example: `  # Show version info
  relnotes version

  # Plain output (for scripts)
  relnotes version --plain`,
		GroupID: GroupSetup,
		Args:    cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			if plain || color.NoColor {
				printPlainVersion(cmd.OutOrStdout())
			} else {
				printPrettyVersion(cmd.OutOrStdout())
			}
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "relnotes %s\n", version.Version)
	fmt.Fprintf(w, "commit: %s\n", version.Commit)
	fmt.Fprintf(w, "built: %s\n", version.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printPrettyVersion(w io.Writer) {
	label := color.New(color.FgYellow).SprintfFunc()
	value := color.New(color.FgWhite, color.Bold).SprintFunc()

	name := color.New(color.FgCyan, color.Bold).Sprint("relnotes")
	if version.IsDevBuild() {
		fmt.Fprintf(w, "%s %s %s\n", name, value(version.Version), color.New(color.Faint).Sprint("(development build)"))
	} else {
		fmt.Fprintf(w, "%s %s\n", name, value(version.Version))
	}
	rows := []struct{ name, val string }{
		{"Commit", truncateCommit(version.Commit)},
		{"Built", version.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s  %s\n", label("%-8s", r.name), value(r.val))
	}
}

// truncateCommit shortens a commit hash to 8 characters
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
