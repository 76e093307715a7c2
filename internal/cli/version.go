package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelog-check/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for changelog-check",
		Args:    cobra.NoArgs,
		GroupID: GroupInspect,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, line := range version.Info() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}
}
