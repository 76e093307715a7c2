package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/changelog-check/internal/config"
	clierrors "github.com/ariel-frischer/changelog-check/internal/errors"
	"github.com/ariel-frischer/changelog-check/internal/git"
	"github.com/ariel-frischer/changelog-check/internal/output"
	"github.com/ariel-frischer/changelog-check/internal/progress"
	"github.com/spf13/cobra"
)

// stdinPath selects standard input for --diff-file.
const stdinPath = "-"

// loadDiff returns the pull request diff from --diff-file, or builds it from
// --ref in the repository at the configured root.
func loadDiff(cmd *cobra.Command, opts *rootOptions, cfg *config.Configuration) (string, error) {
	switch {
	case opts.diffFile == stdinPath:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Input, "reading diff from stdin")
		}
		return string(data), nil

	case opts.diffFile != "":
		data, err := os.ReadFile(opts.diffFile)
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Input, "reading diff file",
				"Check that --diff-file points at a readable file",
			)
		}
		return string(data), nil

	case opts.ref != "":
		stop := progress.StartSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Building diff against %s", opts.ref), output.StderrCapabilities())
		text, err := git.Diff(cmd.Context(), cfg.Root, opts.ref)
		stop()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "building diff",
				"Check that --root is inside a git repository and --ref names a commit, branch or tag",
			)
		}
		return text, nil
	}

	return "", clierrors.MissingDiffSource()
}
