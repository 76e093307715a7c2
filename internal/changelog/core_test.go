package changelog

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addedFiles builds a diff that adds an empty-bodied line to each path.
func addedFiles(paths ...string) string {
	var sb strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&sb, "diff --git a/%[1]s b/%[1]s\nnew file mode 100644\n--- /dev/null\n+++ b/%[1]s\n@@ -0,0 +1 @@\n+content\n", p)
	}
	return sb.String()
}

func TestCoreErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		diff      string
		prNumber  int
		wantCount int
		contains  []string
	}{
		"missing fragment": {
			diff:      addedFiles("foo/foo.py"),
			prNumber:  123,
			wantCount: 1,
			contains:  []string{"foo.py", `Package "foo"`, "foo/changelog.d/123.<type>"},
		},
		"fragment with wrong PR number": {
			diff:      addedFiles("foo/foo.py", "foo/changelog.d/999.added"),
			prNumber:  123,
			wantCount: 1,
			contains:  []string{"foo/changelog.d/999.added", "changelog.d/123.added"},
		},
		"fragment with correct PR number": {
			diff:      addedFiles("foo/foo.py", "foo/changelog.d/123.added"),
			prNumber:  123,
			wantCount: 0,
		},
		"fragment only change": {
			diff:      addedFiles("foo/changelog.d/123.fixed"),
			prNumber:  123,
			wantCount: 0,
		},
		"rest of fragment name is kept": {
			diff:      addedFiles("foo/changelog.d/7.fixed.1"),
			prNumber:  8,
			wantCount: 1,
			contains:  []string{"foo/changelog.d/8.fixed.1"},
		},
		"root files never require an entry": {
			diff:      addedFiles("README.md", "tox.ini"),
			prNumber:  1,
			wantCount: 0,
		},
		"one error per package in sorted order": {
			diff:      addedFiles("zeta/z.py", "alpha/a.py"),
			prNumber:  1,
			wantCount: 2,
		},
		"lookalike directory is not a fragments dir": {
			diff:      addedFiles("foo/changelog.dx/1.added"),
			prNumber:  1,
			wantCount: 1,
			contains:  []string{"missing a changelog entry"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			errs, err := CoreErrors(tt.diff, tt.prNumber, CoreOptions{})
			require.NoError(t, err)
			require.Len(t, errs, tt.wantCount)
			for _, want := range tt.contains {
				assert.Contains(t, errs[0], want)
			}
		})
	}
}

func TestCoreErrors_SortedPackages(t *testing.T) {
	t.Parallel()

	errs, err := CoreErrors(addedFiles("zeta/z.py", "alpha/a.py"), 1, CoreOptions{})
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], `"alpha"`)
	assert.Contains(t, errs[1], `"zeta"`)
}

func TestCoreErrors_MissingMessageListsEveryFile(t *testing.T) {
	t.Parallel()

	errs, err := CoreErrors(addedFiles("foo/a.py", "foo/tests/test_a.py"), 5, CoreOptions{})
	require.NoError(t, err)
	require.Len(t, errs, 1)

	want := "Package \"foo\" is missing a changelog entry for the following changes:\n" +
		"- a.py\n" +
		"- tests/test_a.py\n" +
		"Please add an entry file named \"foo/changelog.d/5.<type>\"."
	assert.Equal(t, want, errs[0])
}

func TestCoreErrors_RenameMessage(t *testing.T) {
	t.Parallel()

	errs, err := CoreErrors(addedFiles("foo/changelog.d/999.added"), 123, CoreOptions{})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t,
		`Please rename changelog entry file "foo/changelog.d/999.added" to "foo/changelog.d/123.added". `+
			`This way your changelog entry matches the PR number.`,
		errs[0])
}

func TestCoreErrors_Requires(t *testing.T) {
	t.Parallel()

	var seen []string
	requires := func(pkg string, files []string) bool {
		seen = append(seen, pkg)
		return pkg != "docs"
	}

	errs, err := CoreErrors(addedFiles("docs/index.md", "foo/a.py"), 1, CoreOptions{Requires: requires})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `"foo"`)
	assert.Equal(t, []string{"docs", "foo"}, seen)
}

func TestCoreErrors_FragmentTypes(t *testing.T) {
	t.Parallel()

	opts := CoreOptions{FragmentTypes: ValidCategories()}

	errs, err := CoreErrors(addedFiles("foo/changelog.d/1.improved"), 1, opts)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `unknown type "improved"`)

	errs, err = CoreErrors(addedFiles("foo/changelog.d/1.security"), 1, opts)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestCoreErrors_CustomFragmentsDir(t *testing.T) {
	t.Parallel()

	errs, err := CoreErrors(addedFiles("foo/a.py", "foo/news/1.added"), 1, CoreOptions{FragmentsDir: "news"})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestCoreErrors_NonNumericPrefix(t *testing.T) {
	t.Parallel()

	_, err := CoreErrors(addedFiles("foo/changelog.d/abc.added"), 1, CoreOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFragmentName))
	assert.Contains(t, err.Error(), "foo/changelog.d/abc.added")
}

func TestCoreErrors_MalformedDiff(t *testing.T) {
	t.Parallel()

	errs, err := CoreErrors("diff --git garbage\n", 1, CoreOptions{})
	require.Error(t, err)
	assert.Nil(t, errs)
}
