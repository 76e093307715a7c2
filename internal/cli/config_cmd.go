package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelog-check/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Inspect changelog-check configuration",
		Args:    cobra.NoArgs,
		GroupID: GroupInspect,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Long: `Print the configuration after applying defaults, the project config file,
CHANGELOG_CHECK_* environment variables and command-line flags.`,
		Example: `  changelog-check config show
  CHANGELOG_CHECK_REPO=extras changelog-check config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			text, err := config.Render(cfg)
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "template",
		Short:   "Print a commented default config file",
		Example: `  changelog-check config template > .changelog-check.yml`,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
		},
	})

	return cmd
}
