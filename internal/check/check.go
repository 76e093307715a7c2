// Package check runs the changelog policy that applies to a repository
// against a pull request diff and renders the result.
package check

import (
	"errors"
	"fmt"
	"io"

	"github.com/ariel-frischer/changelog-check/internal/changelog"
	"github.com/ariel-frischer/changelog-check/internal/diff"
	clierrors "github.com/ariel-frischer/changelog-check/internal/errors"
	"github.com/ariel-frischer/changelog-check/internal/output"
)

// Settings describes one check invocation.
type Settings struct {
	// Core selects the fragment-file policy instead of the consolidated
	// changelog policy.
	Core bool

	PRNumber int
	PRURL    string

	// Private repositories must not link to pull requests in entries.
	Private bool

	// OnCI renders results as GitHub Actions workflow commands.
	OnCI bool

	FragmentsDir  string
	FragmentTypes []string
	ChangelogFile string

	// Requires decides which packages need an entry (core only).
	Requires changelog.RequiresFunc

	// Suffix derives the required entry ending (non-core, public only).
	// Defaults to changelog.EntrySuffix.
	Suffix changelog.SuffixFunc
}

// Result is the rendered outcome of a check.
type Result struct {
	// Lines are the rendered problems, one per output line.
	Lines []string
	// Problems is the number of policy violations found.
	Problems int
}

// Passed reports whether the diff satisfies the policy.
func (r *Result) Passed() bool {
	return r.Problems == 0
}

// Runner checks diffs against the policy selected by its settings.
type Runner struct {
	settings Settings
	logf     func(format string, args ...any)
}

// NewRunner creates a Runner. logf may be nil.
func NewRunner(s Settings, logf func(format string, args ...any)) *Runner {
	if s.Suffix == nil {
		s.Suffix = changelog.EntrySuffix
	}
	return &Runner{settings: s, logf: logf}
}

// Run checks gitDiff and returns the rendered result.
// Policy violations are part of the result; parse failures are returned as
// Input errors.
func (r *Runner) Run(gitDiff string) (*Result, error) {
	if r.settings.Core {
		return r.runCore(gitDiff)
	}
	return r.runNonCore(gitDiff)
}

func (r *Runner) runCore(gitDiff string) (*Result, error) {
	s := r.settings
	r.debug("[check] core policy, PR #%d, fragments dir %q", s.PRNumber, s.FragmentsDir)

	msgs, err := changelog.CoreErrors(gitDiff, s.PRNumber, changelog.CoreOptions{
		FragmentsDir:  s.FragmentsDir,
		FragmentTypes: s.FragmentTypes,
		Requires:      s.Requires,
	})
	if err != nil {
		return nil, r.inputError(err)
	}

	return &Result{
		Lines:    output.FormatMessages(msgs, s.OnCI),
		Problems: len(msgs),
	}, nil
}

func (r *Runner) runNonCore(gitDiff string) (*Result, error) {
	s := r.settings
	suffix := ""
	if !s.Private {
		suffix = s.Suffix(s.PRNumber, s.PRURL)
	}
	r.debug("[check] non-core policy, private=%t, suffix %q", s.Private, suffix)

	violations, err := changelog.NonCoreErrors(gitDiff, suffix, s.Private, changelog.NonCoreOptions{
		ChangelogFile: s.ChangelogFile,
	})
	if err != nil {
		return nil, r.inputError(err)
	}

	return &Result{
		Lines:    output.Annotate(violations, s.OnCI),
		Problems: len(violations),
	}, nil
}

func (r *Runner) inputError(err error) error {
	switch {
	case errors.Is(err, diff.ErrMalformedDiff):
		return clierrors.MalformedDiff(err)
	case errors.Is(err, changelog.ErrInvalidFragmentName):
		dir := r.settings.FragmentsDir
		if dir == "" {
			dir = changelog.DefaultFragmentsDir
		}
		return clierrors.InvalidFragmentName(err, dir)
	default:
		return fmt.Errorf("checking changelog: %w", err)
	}
}

func (r *Runner) debug(format string, args ...any) {
	if r.logf != nil {
		r.logf(format, args...)
	}
}

// Write prints the result lines to out.
func (res *Result) Write(out io.Writer) error {
	return output.Print(out, res.Lines)
}
