package cli

import (
	"errors"
	"fmt"

	"github.com/duux-ha/relnotes/internal/commitlint"
	"github.com/duux-ha/relnotes/internal/config"
	clierrors "github.com/duux-ha/relnotes/internal/errors"
	"github.com/duux-ha/relnotes/internal/git"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type lintOptions struct {
	edit    string
	from    string
	to      string
	last    bool
	repo    string
	verbose bool
	plain   bool
}

// lintInput is one message to lint and where it came from.
type lintInput struct {
	source  string
	message string
}

func newLintCmd(a *app) *cobra.Command {
	var opts lintOptions

	cmd := &cobra.Command{
		Use:   "lint [message]",
		Short: "Check commit messages against the conventional commit rules",
		Long: `Check commit messages against the conventional commit rules.

Messages are read from exactly one source: the argument, a commit message
file (--edit), a revision range (--from/--to), the last commit (--last),
or stdin when nothing else is given.

Messages containing [ci skip] or [skip ci] are exempt, as are merge, revert
and fixup commits unless lint.default_ignores is false.`,
		Example: `  # Lint a message directly
  relnotes lint "feat(api): add pagination"

  # As a commit-msg hook
  relnotes lint --edit "$1"

  # Every commit since the last release
  relnotes lint --from v1.1.0

  # The commit that was just made
  relnotes lint --last`,
		GroupID: GroupCommits,
		Args:    maxArgs(1, `relnotes lint "<message>"`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, a.cfg, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.edit, "edit", "e", "", "Read the message from a commit message file (e.g. .git/COMMIT_EDITMSG)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Lint commits after this revision")
	cmd.Flags().StringVar(&opts.to, "to", "", "Lint commits up to this revision (default: HEAD)")
	cmd.Flags().BoolVarP(&opts.last, "last", "l", false, "Lint the last commit")
	cmd.Flags().StringVar(&opts.repo, "repo", ".", "Repository path for --from, --to and --last")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "V", false, "Also report valid and ignored messages")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Disable colors")

	return cmd
}

func runLint(cmd *cobra.Command, cfg *config.Configuration, args []string, opts lintOptions) error {
	linter, err := commitlint.New(cfg.Lint.Options())
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "compiling lint.ignores",
			"Check the regular expressions under lint.ignores")
	}

	inputs, err := collectLintInputs(cmd, args, opts)
	if err != nil {
		return err
	}

	messages := make([]string, len(inputs))
	for i, in := range inputs {
		messages[i] = in.message
	}
	reports, ok := linter.LintAll(messages)

	out := cmd.OutOrStdout()
	formatOpts := commitlint.FormatOptions{Plain: opts.plain || color.NoColor, Verbose: opts.verbose}
	failed, ignored := 0, 0
	for i, r := range reports {
		if r.Ignored {
			ignored++
		}
		if !r.Valid {
			failed++
		}
		if opts.verbose && inputs[i].source != "" {
			fmt.Fprintf(out, "%s\n", inputs[i].source)
		}
		if err := commitlint.FormatReport(r, out, formatOpts); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing lint report")
		}
	}

	if !ok {
		return clierrors.LintFailed(failed, len(reports))
	}

	if len(reports) > 1 || opts.verbose {
		fmt.Fprintf(out, "✓ %d commit message(s) passed lint (%d ignored)\n", len(reports), ignored)
	}
	return nil
}

// collectLintInputs reads the messages from the single selected source.
func collectLintInputs(cmd *cobra.Command, args []string, opts lintOptions) ([]lintInput, error) {
	sources := len(args)
	if opts.edit != "" {
		sources++
	}
	if opts.from != "" || opts.to != "" {
		sources++
	}
	if opts.last {
		sources++
	}
	if sources > 1 {
		return nil, clierrors.ConflictingLintSources()
	}

	switch {
	case len(args) == 1 && args[0] != stdinPath:
		return []lintInput{{message: args[0]}}, nil
	case opts.edit != "":
		raw, err := readSource(cmd.InOrStdin(), opts.edit)
		if err != nil {
			return nil, err
		}
		return []lintInput{{source: opts.edit, message: commitlint.CleanMessage(raw)}}, nil
	case opts.from != "" || opts.to != "":
		root, err := git.GetRepositoryRoot(opts.repo)
		if err != nil {
			return nil, gitError(err)
		}
		commits, err := git.CommitMessages(commandContext(cmd), root, opts.from, opts.to)
		if err != nil {
			return nil, gitError(err)
		}
		return commitInputs(commits), nil
	case opts.last:
		root, err := git.GetRepositoryRoot(opts.repo)
		if err != nil {
			return nil, gitError(err)
		}
		commit, err := git.LastCommit(commandContext(cmd), root)
		if err != nil {
			return nil, gitError(err)
		}
		return commitInputs([]git.Commit{commit}), nil
	default:
		msg, err := readSource(cmd.InOrStdin(), stdinPath)
		if err != nil {
			return nil, err
		}
		return []lintInput{{message: msg}}, nil
	}
}

func commitInputs(commits []git.Commit) []lintInput {
	inputs := make([]lintInput, len(commits))
	for i, c := range commits {
		inputs[i] = lintInput{source: "commit " + c.Hash, message: c.Message}
	}
	return inputs
}

// gitError maps git package errors to CLI errors.
func gitError(err error) error {
	if errors.Is(err, git.ErrNotRepository) {
		return clierrors.NotARepository(err)
	}
	return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading commits",
		"Check that the revisions exist: git rev-parse <rev>")
}
