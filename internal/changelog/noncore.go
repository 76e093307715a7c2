package changelog

import (
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/ariel-frischer/changelog-check/internal/diff"
)

// DefaultChangelogFile is the consolidated changelog of non-core repositories.
const DefaultChangelogFile = "CHANGELOG.md"

const entryDelimiter = "* "

// listMarkers start a markdown list item. Any of them without the exact
// delimiter is a malformed entry.
const listMarkers = "*-+"

var (
	categoryTagPattern  = regexp.MustCompile(`^\[([^\]]*)\] `)
	markdownLinkPattern = regexp.MustCompile(`\]\([^)]*\)`)
)

// NonCoreOptions configures the non-core repository policy.
type NonCoreOptions struct {
	// ChangelogFile is the base name of the consolidated changelog.
	// Defaults to DefaultChangelogFile.
	ChangelogFile string
}

// NonCoreErrors checks the lines a pull request adds to the consolidated
// changelog. Every added entry must use the "* " delimiter and start with a
// category tag. Public repositories require each entry to end with suffix;
// private repositories must not link to the pull request at all.
func NonCoreErrors(gitDiff, suffix string, private bool, opts NonCoreOptions) ([]Violation, error) {
	name := opts.ChangelogFile
	if name == "" {
		name = DefaultChangelogFile
	}

	var violations []Violation
	for file, err := range diff.Files(gitDiff) {
		if err != nil {
			return nil, err
		}
		if file.IsDeleted() || path.Base(file.NewPath) != name {
			continue
		}

		for _, hunk := range file.Hunks {
			for _, line := range hunk.AddedLines() {
				for _, msg := range checkEntry(line.Text, suffix, private) {
					violations = append(violations, Violation{
						Path:    file.NewPath,
						Line:    line.Number,
						Message: msg,
					})
				}
			}
		}
	}

	return violations, nil
}

// checkEntry returns the problems with a single added changelog line.
// Lines that are not list items are ignored.
func checkEntry(line, suffix string, private bool) []string {
	if !strings.HasPrefix(line, entryDelimiter) {
		if line != "" && strings.ContainsRune(listMarkers, rune(line[0])) {
			found := line[:min(len(line), len(entryDelimiter))]
			return []string{fmt.Sprintf("Changelog entries must start with %q, found %q.", entryDelimiter, found)}
		}
		return nil
	}

	var msgs []string
	body := strings.TrimPrefix(line, entryDelimiter)

	if m := categoryTagPattern.FindStringSubmatch(body); m == nil {
		msgs = append(msgs, "Changelog entries must start with a category tag, one of: "+strings.Join(categoryTags(), ", ")+".")
	} else if !slices.Contains(categoryTags(), "["+m[1]+"]") {
		msgs = append(msgs, fmt.Sprintf("Unknown category tag [%s]. Use one of: %s.", m[1], strings.Join(categoryTags(), ", ")))
	}

	switch {
	case private:
		if markdownLinkPattern.MatchString(body) || strings.Contains(body, "/pull/") {
			msgs = append(msgs, "Entries for private repositories must not link to pull requests.")
		}
	case suffix != "" && !strings.HasSuffix(line, suffix):
		msgs = append(msgs, fmt.Sprintf("Please end the entry with the PR reference:\n%s", strings.TrimSpace(suffix)))
	}

	return msgs
}

func categoryTags() []string {
	tags := make([]string, 0, len(ValidCategories()))
	for _, c := range ValidCategories() {
		tags = append(tags, categoryTag(c))
	}
	return tags
}
