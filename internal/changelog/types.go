package changelog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFragmentName is returned when a changelog fragment file name does
// not start with a numeric PR number.
var ErrInvalidFragmentName = errors.New("invalid changelog fragment name")

// RequiresFunc reports whether a package needs a changelog entry for the
// given changed files (paths relative to the package).
type RequiresFunc func(pkg string, files []string) bool

// SuffixFunc derives the text every non-core changelog entry must end with.
type SuffixFunc func(prNumber int, prURL string) string

// Violation is a non-core policy violation pinned to a line of a file.
// Line is 1-based and refers to the new version of the file.
type Violation struct {
	Path    string
	Line    int
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d: %s", v.Path, v.Line, v.Message)
}

// ValidCategories returns the Keep a Changelog categories in their standard
// order. They name core fragment types and non-core entry tags.
func ValidCategories() []string {
	return []string{"added", "changed", "deprecated", "removed", "fixed", "security"}
}

// categoryTag renders a category as a non-core entry tag, e.g. "[Added]".
func categoryTag(category string) string {
	return "[" + capitalizeFirst(category) + "]"
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
