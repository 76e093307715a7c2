package changelog

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/ariel-frischer/changelog-check/internal/diff"
)

// DefaultFragmentsDir is the per-package directory holding fragment files.
const DefaultFragmentsDir = "changelog.d"

// CoreOptions configures the core repository policy.
type CoreOptions struct {
	// FragmentsDir is the directory, relative to a package, that holds
	// fragment files. Defaults to DefaultFragmentsDir.
	FragmentsDir string
	// FragmentTypes lists the accepted fragment types. Empty disables the
	// type check.
	FragmentTypes []string
	// Requires decides which packages need an entry. Nil means every package
	// with changes does.
	Requires RequiresFunc
}

// CoreErrors checks a pull request diff against the core repository policy:
// every package that requires a changelog must add a fragment file named
// <prNumber>.<type> under its fragments directory.
//
// Packages are checked in sorted order. A malformed diff or a fragment whose
// name does not start with a number is returned as an error.
func CoreErrors(gitDiff string, prNumber int, opts CoreOptions) ([]string, error) {
	pkgs, err := diff.GroupByPackage(diff.Filenames(gitDiff))
	if err != nil {
		return nil, err
	}

	dir := opts.FragmentsDir
	if dir == "" {
		dir = DefaultFragmentsDir
	}

	var errs []string
	for _, pkg := range pkgs.Names() {
		files := pkgs[pkg]
		if opts.Requires != nil && !opts.Requires(pkg, files) {
			continue
		}

		fragments := fragmentsIn(files, dir)
		if len(fragments) == 0 {
			errs = append(errs, missingEntryMessage(pkg, files, dir, prNumber))
			continue
		}

		for _, fragment := range fragments {
			msgs, err := checkFragment(pkg, fragment, prNumber, opts.FragmentTypes)
			if err != nil {
				return nil, err
			}
			errs = append(errs, msgs...)
		}
	}

	return errs, nil
}

// fragmentsIn returns the files located under the fragments directory.
func fragmentsIn(files []string, dir string) []string {
	var fragments []string
	for _, f := range files {
		if strings.HasPrefix(f, dir+"/") {
			fragments = append(fragments, f)
		}
	}
	return fragments
}

// checkFragment validates one fragment path of the form <dir>/<pr>.<rest>.
func checkFragment(pkg, fragment string, prNumber int, types []string) ([]string, error) {
	parent, name := path.Split(fragment)
	prefix, rest, _ := strings.Cut(name, ".")

	entryPR, err := strconv.Atoi(prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFragmentName, pkg+"/"+fragment, err)
	}

	var msgs []string
	if entryPR != prNumber {
		correct := path.Join(pkg, parent, fmt.Sprintf("%d.%s", prNumber, rest))
		msgs = append(msgs, fmt.Sprintf(
			"Please rename changelog entry file %q to %q. This way your changelog entry matches the PR number.",
			pkg+"/"+fragment, correct,
		))
	}

	if len(types) > 0 {
		fragmentType, _, _ := strings.Cut(rest, ".")
		if !slices.Contains(types, fragmentType) {
			msgs = append(msgs, fmt.Sprintf(
				"Changelog entry file %q has unknown type %q. Use one of: %s.",
				pkg+"/"+fragment, fragmentType, strings.Join(types, ", "),
			))
		}
	}

	return msgs, nil
}

func missingEntryMessage(pkg string, files []string, dir string, prNumber int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Package %q is missing a changelog entry for the following changes:\n", pkg)
	for _, f := range files {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	fmt.Fprintf(&sb, "Please add an entry file named %q.", path.Join(pkg, dir, fmt.Sprintf("%d.<type>", prNumber)))
	return sb.String()
}
