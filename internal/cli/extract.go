package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelog-check/internal/diff"
	clierrors "github.com/ariel-frischer/changelog-check/internal/errors"
	"github.com/spf13/cobra"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "List the files changed by a diff",
		Long: `List the files a diff touches, one path per line, in diff order.

With --group, files are grouped by their top-level package instead; files at
the repository root are left out, as they never require a changelog entry.`,
		Example: `  # Files changed on this branch
  changelog-check extract --ref main

  # Files per package from a saved diff
  changelog-check extract --diff-file pr.diff --group`,
		Args:    cobra.NoArgs,
		GroupID: GroupInspect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			text, err := loadDiff(cmd, opts, cfg)
			if err != nil {
				return err
			}
			if group {
				return printGrouped(cmd, text)
			}
			return printFilenames(cmd, text)
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "Group files by top-level package")
	return cmd
}

func printFilenames(cmd *cobra.Command, text string) error {
	out := cmd.OutOrStdout()
	for name, err := range diff.Filenames(text) {
		if err != nil {
			return clierrors.MalformedDiff(err)
		}
		fmt.Fprintln(out, name)
	}
	return nil
}

func printGrouped(cmd *cobra.Command, text string) error {
	pkgs, err := diff.GroupByPackage(diff.Filenames(text))
	if err != nil {
		return clierrors.MalformedDiff(err)
	}

	out := cmd.OutOrStdout()
	for _, name := range pkgs.Names() {
		fmt.Fprintf(out, "%s:\n", name)
		for _, f := range pkgs[name] {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
	return nil
}
