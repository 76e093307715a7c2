package errors

import "fmt"

// Common error messages for the changelog-check CLI.
// These templates ensure consistent, actionable error messages.

// MissingPRNumber creates an error for a check run without a PR number.
func MissingPRNumber() *CLIError {
	return NewArgumentErrorWithUsage(
		"pull request number is required",
		"changelog-check --pr-number <n> [--pr-url <url>]",
		"Pass --pr-number, or --pr-file pointing at the pull request event payload",
		"On GitHub Actions the event payload is read from $GITHUB_EVENT_PATH",
	)
}

// MissingPRURL creates an error for a non-core check without a PR URL.
func MissingPRURL() *CLIError {
	return NewArgumentErrorWithUsage(
		"pull request URL is required for non-core repositories",
		"changelog-check --repo extras --pr-number <n> --pr-url <url>",
		"Pass --pr-url, or --pr-file pointing at the pull request event payload",
		"Private repositories do not need a URL: add --private",
	)
}

// MissingDiffSource creates an error when neither a diff file nor a ref is given.
func MissingDiffSource() *CLIError {
	return NewArgumentError(
		"no diff to check",
		"Pass --diff-file <path> (or '-' for stdin)",
		"Or pass --ref <base> to diff the base against HEAD in the local repository",
	)
}

// MalformedDiff creates an error for diff text that cannot be parsed.
func MalformedDiff(err error) *CLIError {
	return WrapWithMessage(err, Input, "cannot parse diff",
		"Generate the diff with 'git diff <base>...HEAD' without color or external diff tools",
	)
}

// InvalidFragmentName creates an error for a fragment file without a numeric prefix.
func InvalidFragmentName(err error, fragmentsDir string) *CLIError {
	return WrapWithMessage(err, Input, "cannot read changelog entry file name",
		fmt.Sprintf("Files in %s must be named <PR number>.<type>, e.g. 1234.fixed", fragmentsDir),
	)
}

// InvalidConfig creates an error for configuration that fails to load.
func InvalidConfig(err error, path string) *CLIError {
	return WrapWithMessage(err, Configuration, "invalid configuration",
		fmt.Sprintf("Check %s for syntax errors", path),
		"Run 'changelog-check config show' to see the resolved configuration",
	)
}
