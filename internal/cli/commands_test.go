package cli

import (
	"errors"
	"fmt"
	"testing"

	clierrors "github.com/ariel-frischer/changelog-check/internal/errors"
	"github.com/ariel-frischer/changelog-check/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":               {err: nil, want: ExitSuccess},
		"exit error":        {err: NewExitError(ExitValidationFailed), want: 1},
		"wrapped exit":      {err: fmt.Errorf("run: %w", NewExitError(7)), want: 7},
		"argument error":    {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"config error":      {err: clierrors.InvalidConfig(errors.New("bad"), "x.yml"), want: ExitInvalidArguments},
		"input error":       {err: clierrors.MalformedDiff(errors.New("bad")), want: ExitInvalidInput},
		"runtime error":     {err: clierrors.Wrap(errors.New("bad"), clierrors.Runtime), want: ExitValidationFailed},
		"plain error":       {err: errors.New("boom"), want: ExitValidationFailed},
		"wrapped cli error": {err: fmt.Errorf("ctx: %w", clierrors.MalformedDiff(errors.New("bad"))), want: ExitInvalidInput},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exit code 6", NewExitError(6).Error())
}

func TestExtractCmd(t *testing.T) {
	setupWorkspace(t)
	diffPath := writeFile(t, "pr.diff", changelogEntry+sourceChange+fragmentAdded)

	tests := map[string]struct {
		args []string
		want string
	}{
		"flat list in diff order": {
			args: []string{"extract", "--diff-file", diffPath},
			want: "CHANGELOG.md\nfoo/datadog_checks/foo/check.py\nfoo/changelog.d/12.fixed\n",
		},
		"grouped by package": {
			args: []string{"extract", "--diff-file", diffPath, "--group"},
			want: "foo:\n  datadog_checks/foo/check.py\n  changelog.d/12.fixed\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := runCLI(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestExtractCmd_Malformed(t *testing.T) {
	setupWorkspace(t)

	_, stderr, err := runCLI(t, "diff --git garbage\n", "extract", "--diff-file", "-")
	assert.Equal(t, ExitInvalidInput, ExitCode(err))
	assert.Contains(t, stderr, "cannot parse diff")
}

func TestConfigShowCmd(t *testing.T) {
	setupWorkspace(t)
	t.Setenv("CHANGELOG_CHECK_FRAGMENTS_DIR", "news")

	stdout, _, err := runCLI(t, "", "config", "show", "--repo", "extras", "--private")
	require.NoError(t, err)
	assert.Contains(t, stdout, "repo: extras")
	assert.Contains(t, stdout, "private: true")
	assert.Contains(t, stdout, "fragments_dir: news")
}

func TestConfigTemplateCmd(t *testing.T) {
	setupWorkspace(t)

	stdout, _, err := runCLI(t, "", "config", "template")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fragments_dir:")
}

func TestVersionCmd(t *testing.T) {
	setupWorkspace(t)

	stdout, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "changelog-check "+version.Version)
	assert.Contains(t, stdout, "platform: ")
}
