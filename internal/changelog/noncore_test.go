package changelog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ariel-frischer/changelog-check/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prURL = "https://github.com/org/extras/pull/42"

func changelogDiff(path string, added ...string) string {
	text := "diff --git a/" + path + " b/" + path + "\n" +
		"index 1111111..2222222 100644\n" +
		"--- a/" + path + "\n" +
		"+++ b/" + path + "\n" +
		fmt.Sprintf("@@ -1,2 +1,%d @@\n", 2+len(added)) +
		" # CHANGELOG - extras\n" +
		" \n"
	for _, line := range added {
		text += "+" + line + "\n"
	}
	return text
}

func TestEntrySuffix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " See [#42](https://github.com/org/extras/pull/42).", EntrySuffix(42, prURL))
}

func TestNonCoreErrors_Public(t *testing.T) {
	t.Parallel()

	suffix := EntrySuffix(42, prURL)

	tests := map[string]struct {
		line     string
		wantMsgs []string
	}{
		"valid entry": {
			line: "* [Added] Add a metric." + suffix,
		},
		"heading is ignored": {
			line: "## 1.2.0 / 2024-01-01",
		},
		"blank line is ignored": {
			line: "",
		},
		"dash delimiter": {
			line:     "- [Added] Add a metric." + suffix,
			wantMsgs: []string{`Changelog entries must start with "* ", found "- ".`},
		},
		"plus delimiter": {
			line:     "+ [Added] Add a metric." + suffix,
			wantMsgs: []string{`Changelog entries must start with "* ", found "+ ".`},
		},
		"star without space": {
			line:     "*[Added] Add a metric." + suffix,
			wantMsgs: []string{`Changelog entries must start with "* ", found "*[".`},
		},
		"bare star": {
			line:     "*",
			wantMsgs: []string{`Changelog entries must start with "* ", found "*".`},
		},
		"missing category": {
			line: "* Add a metric." + suffix,
			wantMsgs: []string{
				"Changelog entries must start with a category tag, one of: [Added], [Changed], [Deprecated], [Removed], [Fixed], [Security].",
			},
		},
		"unknown category": {
			line: "* [Improved] Add a metric." + suffix,
			wantMsgs: []string{
				"Unknown category tag [Improved]. Use one of: [Added], [Changed], [Deprecated], [Removed], [Fixed], [Security].",
			},
		},
		"lowercase category": {
			line: "* [fixed] Fix a crash." + suffix,
			wantMsgs: []string{
				"Unknown category tag [fixed]. Use one of: [Added], [Changed], [Deprecated], [Removed], [Fixed], [Security].",
			},
		},
		"missing suffix": {
			line:     "* [Fixed] Fix a crash.",
			wantMsgs: []string{"Please end the entry with the PR reference:\nSee [#42](https://github.com/org/extras/pull/42)."},
		},
		"suffix for another PR": {
			line:     "* [Fixed] Fix a crash. See [#41](https://github.com/org/extras/pull/41).",
			wantMsgs: []string{"Please end the entry with the PR reference:\nSee [#42](https://github.com/org/extras/pull/42)."},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			violations, err := NonCoreErrors(changelogDiff("foo/CHANGELOG.md", tt.line), suffix, false, NonCoreOptions{})
			require.NoError(t, err)

			var msgs []string
			for _, v := range violations {
				assert.Equal(t, "foo/CHANGELOG.md", v.Path)
				assert.Equal(t, 3, v.Line)
				msgs = append(msgs, v.Message)
			}
			assert.Equal(t, tt.wantMsgs, msgs)
		})
	}
}

func TestNonCoreErrors_Private(t *testing.T) {
	t.Parallel()

	suffix := EntrySuffix(42, prURL)

	tests := map[string]struct {
		line      string
		wantCount int
	}{
		"entry without link": {
			line:      "* [Fixed] Fix a crash.",
			wantCount: 0,
		},
		"entry with PR link": {
			line:      "* [Fixed] Fix a crash." + suffix,
			wantCount: 1,
		},
		"entry with bare PR URL": {
			line:      "* [Fixed] Fix a crash, see " + prURL,
			wantCount: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			violations, err := NonCoreErrors(changelogDiff("CHANGELOG.md", tt.line), suffix, true, NonCoreOptions{})
			require.NoError(t, err)
			require.Len(t, violations, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, "Entries for private repositories must not link to pull requests.", violations[0].Message)
			}
		})
	}
}

func TestNonCoreErrors_LineNumbers(t *testing.T) {
	t.Parallel()

	suffix := EntrySuffix(42, prURL)
	text := changelogDiff("foo/CHANGELOG.md",
		"## 1.1.0",
		"",
		"* [Added] Good entry."+suffix,
		"* Bad entry."+suffix,
		"- [Fixed] Wrong delimiter."+suffix,
	)

	violations, err := NonCoreErrors(text, suffix, false, NonCoreOptions{})
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, 6, violations[0].Line)
	assert.Equal(t, 7, violations[1].Line)
}

func TestNonCoreErrors_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	text := changelogDiff("foo/README.md", "- not an entry") +
		changelogDiff("foo/CHANGELOG.md.bak", "- not an entry")

	violations, err := NonCoreErrors(text, EntrySuffix(1, prURL), false, NonCoreOptions{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestNonCoreErrors_CustomFileName(t *testing.T) {
	t.Parallel()

	text := changelogDiff("foo/HISTORY.md", "- [Added] x")

	violations, err := NonCoreErrors(text, "", false, NonCoreOptions{ChangelogFile: "HISTORY.md"})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "foo/HISTORY.md", violations[0].Path)
}

func TestNonCoreErrors_SkipsDeletedChangelog(t *testing.T) {
	t.Parallel()

	text := "diff --git a/CHANGELOG.md b/CHANGELOG.md\n" +
		"deleted file mode 100644\n" +
		"--- a/CHANGELOG.md\n" +
		"+++ /dev/null\n" +
		"@@ -1 +0,0 @@\n" +
		"-* entry\n"

	violations, err := NonCoreErrors(text, " See.", false, NonCoreOptions{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestNonCoreErrors_MalformedDiff(t *testing.T) {
	t.Parallel()

	_, err := NonCoreErrors("diff --git nothing\n", "", false, NonCoreOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diff.ErrMalformedDiff))
}

func TestViolation_String(t *testing.T) {
	t.Parallel()

	v := Violation{Path: "CHANGELOG.md", Line: 4, Message: "bad"}
	assert.Equal(t, "CHANGELOG.md:4: bad", v.String())
}
