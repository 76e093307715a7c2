// Package git builds the unified diff of a pull request from a local
// repository. It uses the go-git library so the git CLI is not required.
package git

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
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
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// resolveCommit resolves a revision (branch, tag, hash, HEAD~1, ...) to a commit.
func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return commit, nil
}

// Diff returns the unified diff of HEAD against its merge base with ref, the
// same changes "git diff ref...HEAD" shows for a pull request branch.
// When ref and HEAD share no history, ref itself is used as the base.
func Diff(ctx context.Context, repoPath, ref string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	head, err := resolveCommit(repo, "HEAD")
	if err != nil {
		return "", err
	}
	base, err := resolveCommit(repo, ref)
	if err != nil {
		return "", err
	}

	bases, err := base.MergeBase(head)
	if err != nil {
		return "", fmt.Errorf("finding merge base of %s and HEAD: %w", ref, err)
	}
	if len(bases) > 0 {
		base = bases[0]
	}
	logDebug("[git] diffing %s..%s", base.Hash, head.Hash)

	patch, err := base.PatchContext(ctx, head)
	if err != nil {
		return "", fmt.Errorf("computing diff: %w", err)
	}
	return patch.String(), nil
}
