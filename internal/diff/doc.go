// Package diff recovers the files touched by a change from unified diff text.
//
// The package understands the subset of git's unified diff format needed for
// changelog validation:
//   - per-file blocks introduced by "diff --git " headers
//   - the "--- a/..." / "+++ b/..." path lines, including /dev/null sides
//   - "Binary files X and Y differ" lines for binary changes
//   - "@@ -a,b +c,d @@" hunks with added, removed and context lines
//
// Diff text is trusted as given. A block that does not have the expected shape
// aborts the parse with ErrMalformedDiff rather than producing partial results.
package diff
