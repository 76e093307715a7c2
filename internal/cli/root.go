// Package cli implements the changelog-check command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	clierrors "github.com/ariel-frischer/changelog-check/internal/errors"
	"github.com/ariel-frischer/changelog-check/internal/git"
	"github.com/ariel-frischer/changelog-check/internal/output"
	"github.com/spf13/cobra"
)

// Command groups
const (
	GroupCheck   = "check"
	GroupInspect = "inspect"
)

// rootOptions holds the flag values shared by every command.
type rootOptions struct {
	configPath string
	debug      bool

	ref      string
	diffFile string

	prFile   string
	prNumber int
	prURL    string

	repo    string
	root    string
	private bool
	ci      bool
}

// newRootCmd builds the command tree. Each call returns an independent tree
// with its own flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "changelog-check",
		Short: "Check that a pull request carries the changelog entries it needs",
		Long: `changelog-check validates the changelog changes of a pull request diff.

In the core repository every package that requires a changelog must add a
fragment file named <PR number>.<type> under its changelog.d directory.
Other repositories keep a single CHANGELOG.md whose added entries must start
with "* [Category] " and, for public repositories, end with a link to the PR.

The diff is read from --diff-file, or built from --ref against HEAD in the
local repository. Pull request details come from flags, --pr-file, or the
GitHub Actions event payload.`,
		Example: `  # Check the current branch against main
  changelog-check --ref main --pr-number 1234

  # Check a saved diff for a non-core repository
  git diff main...HEAD > pr.diff
  changelog-check --repo extras --diff-file pr.diff \
    --pr-number 42 --pr-url https://github.com/org/extras/pull/42

  # In GitHub Actions
  git diff origin/master...HEAD | changelog-check --diff-file - --ci`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if logf := opts.logger(cmd); logf != nil {
				git.SetDebugLogger(logf)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.AddGroup(
		&cobra.Group{ID: GroupCheck, Title: "Checks:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection:"},
	)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to config file (default: .changelog-check.yml)")
	pf.BoolVar(&opts.debug, "debug", false, "Write debug logging to stderr")
	pf.StringVar(&opts.ref, "ref", "", "Base ref to diff HEAD against (uses the merge base)")
	pf.StringVar(&opts.diffFile, "diff-file", "", "Read the diff from a file ('-' for stdin)")
	pf.StringVar(&opts.repo, "repo", "", "Repository name; 'core' selects the fragment policy")
	pf.StringVar(&opts.root, "root", "", "Repository root (default: config 'root')")
	pf.BoolVar(&opts.private, "private", false, "The repository is private: entries must not link to pull requests")

	f := cmd.Flags()
	f.StringVar(&opts.prFile, "pr-file", "", "JSON file with the pull request (GitHub event payload or gh pr view output)")
	f.IntVar(&opts.prNumber, "pr-number", 0, "Pull request number")
	f.StringVar(&opts.prURL, "pr-url", "", "Pull request URL")
	f.BoolVar(&opts.ci, "ci", false, "Emit GitHub Actions annotations (default: on when GITHUB_ACTIONS=true)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierrors.Wrap(err, clierrors.Argument, "Run 'changelog-check --help' for usage")
	})

	cmd.AddCommand(
		newExtractCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the command line and prints any error to stderr.
// Use ExitCode on the result to pick the process exit code.
func Execute() error {
	return execute(context.Background(), newRootCmd(), os.Args[1:])
}

func execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil && !isExitError(err) {
		clierrors.FprintError(cmd.ErrOrStderr(), err, !output.StderrCapabilities().SupportsColor)
	}
	return err
}

func isExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// logger returns the debug logger for cmd, or nil when --debug is off.
func (o *rootOptions) logger(cmd *cobra.Command) func(format string, args ...any) {
	if !o.debug {
		return nil
	}
	return newDebugLogger(cmd.ErrOrStderr())
}

// newDebugLogger returns a printf-style logger writing "[debug]" lines to w.
func newDebugLogger(w io.Writer) func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(w, "[debug] "+format+"\n", args...)
	}
}
