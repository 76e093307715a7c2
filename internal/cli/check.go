package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/changelog-check/internal/check"
	"github.com/ariel-frischer/changelog-check/internal/config"
	"github.com/ariel-frischer/changelog-check/internal/diff"
	clierrors "github.com/ariel-frischer/changelog-check/internal/errors"
	"github.com/ariel-frischer/changelog-check/internal/event"
	"github.com/ariel-frischer/changelog-check/internal/output"
	"github.com/ariel-frischer/changelog-check/internal/packages"
	"github.com/spf13/cobra"
)

// githubActionsEnv is set to "true" by GitHub Actions runners.
const githubActionsEnv = "GITHUB_ACTIONS"

func runCheck(cmd *cobra.Command, opts *rootOptions) error {
	logf := opts.logger(cmd)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	pr, err := resolvePullRequest(cmd, opts)
	if err != nil {
		return err
	}
	if pr.Number <= 0 {
		return clierrors.MissingPRNumber()
	}
	if !cfg.IsCore() && !cfg.Private && pr.URL == "" {
		return clierrors.MissingPRURL()
	}

	gitDiff, err := loadDiff(cmd, opts, cfg)
	if err != nil {
		return err
	}

	onCI := opts.ci
	if !cmd.Flags().Changed("ci") {
		onCI = os.Getenv(githubActionsEnv) == "true"
	}

	resolver := packages.NewResolver(cfg.Root, packages.Options{
		Manifest:      cfg.Manifest,
		RequiredPaths: cfg.RequiredPaths,
		Exempt:        cfg.ExemptPackages,
		Logf:          logf,
	})

	if cfg.IsCore() {
		if err := preloadManifests(cmd, resolver, gitDiff); err != nil {
			return err
		}
	}

	runner := check.NewRunner(check.Settings{
		Core:          cfg.IsCore(),
		PRNumber:      pr.Number,
		PRURL:         pr.URL,
		Private:       cfg.Private,
		OnCI:          onCI,
		FragmentsDir:  cfg.FragmentsDir,
		FragmentTypes: cfg.FragmentTypes,
		ChangelogFile: cfg.ChangelogFile,
		Requires:      resolver.Requires,
	}, logf)

	result, err := runner.Run(gitDiff)
	if err != nil {
		return err
	}

	if err := result.Write(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if !onCI {
		output.PrintSummary(cmd.ErrOrStderr(), result.Problems, output.StderrCapabilities())
	}

	if !result.Passed() {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// loadConfig loads the layered configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Configuration, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		path := opts.configPath
		if path == "" {
			path = config.ProjectConfigPath()
		}
		return nil, clierrors.InvalidConfig(err, path)
	}

	flags := cmd.Flags()
	if flags.Changed("repo") {
		cfg.Repo = opts.repo
	}
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("private") {
		cfg.Private = opts.private
	}
	return cfg, nil
}

// resolvePullRequest combines the PR file with the --pr-number and --pr-url
// flags. Flags win. Without --pr-file or --pr-number the GitHub Actions event
// payload is used when present.
func resolvePullRequest(cmd *cobra.Command, opts *rootOptions) (*event.PullRequest, error) {
	var (
		pr  *event.PullRequest
		err error
	)
	flags := cmd.Flags()
	switch {
	case opts.prFile != "":
		pr, err = event.Load(opts.prFile)
	case !flags.Changed("pr-number"):
		pr, err = event.FromEnvironment()
	}
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Input,
			"Pass a GitHub pull request event payload or the output of 'gh pr view --json number,url'",
		)
	}
	if pr == nil {
		pr = &event.PullRequest{}
	}

	if flags.Changed("pr-number") {
		pr.Number = opts.prNumber
	}
	if flags.Changed("pr-url") {
		pr.URL = opts.prURL
	}
	return pr, nil
}

// preloadManifests reads the manifests of every changed package up front.
// Diff errors are left for the check to report.
func preloadManifests(cmd *cobra.Command, resolver *packages.Resolver, gitDiff string) error {
	pkgs, err := diff.GroupByPackage(diff.Filenames(gitDiff))
	if err != nil {
		return nil
	}
	if err := resolver.Preload(cmd.Context(), pkgs.Names()); err != nil {
		return fmt.Errorf("reading package manifests: %w", err)
	}
	return nil
}
