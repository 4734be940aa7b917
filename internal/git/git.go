// Package git reads commit messages for relnotes using the go-git library,
// so linting a range of commits does not require the git CLI.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ErrNotRepository is returned when no repository is found at or above the path.
var ErrNotRepository = errors.New("not a git repository")

// Commit is a single commit message with its abbreviated hash.
type Commit struct {
	Hash    string
	Message string
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
	}
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// GetRepositoryRoot returns the absolute path to the repository root.
func GetRepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] GetRepositoryRoot: %s", root)
	return root, nil
}

// resolveCommit resolves a revision (branch, tag, hash, HEAD~2...) to a commit.
func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return commit, nil
}

// CommitMessages returns the messages of commits reachable from to but not
// from from, newest first, like "git log from..to".
// An empty to means HEAD. An empty from returns only the to commit.
func CommitMessages(ctx context.Context, repoPath, from, to string) ([]Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}

	if to == "" {
		to = "HEAD"
	}

	head, err := resolveCommit(repo, to)
	if err != nil {
		return nil, err
	}

	if from == "" {
		logDebug("[git] CommitMessages: single commit %s", head.Hash)
		return []Commit{newCommit(head)}, nil
	}

	base, err := resolveCommit(repo, from)
	if err != nil {
		return nil, err
	}

	excluded, err := ancestors(ctx, base)
	if err != nil {
		return nil, err
	}

	var commits []Commit
	iter := object.NewCommitPreorderIter(head, excluded, nil)
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, newCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commits %s..%s: %w", from, to, err)
	}

	logDebug("[git] CommitMessages: %d commits in %s..%s", len(commits), from, to)
	return commits, nil
}

// ancestors returns the set of commits reachable from c, c included.
func ancestors(ctx context.Context, c *object.Commit) (map[plumbing.Hash]bool, error) {
	seen := make(map[plumbing.Hash]bool)

	iter := object.NewCommitPreorderIter(c, nil, nil)
	defer iter.Close()

	err := iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("walking ancestors of %s: %w", c.Hash, err)
	}
	return seen, nil
}

// LastCommit returns the commit HEAD points at.
func LastCommit(ctx context.Context, repoPath string) (Commit, error) {
	commits, err := CommitMessages(ctx, repoPath, "", "HEAD")
	if err != nil {
		return Commit{}, err
	}
	return commits[0], nil
}

func newCommit(c *object.Commit) Commit {
	return Commit{
		Hash:    c.Hash.String()[:7],
		Message: strings.TrimRight(c.Message, "\n"),
	}
}
