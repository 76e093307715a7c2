// Package changelog validates that a pull request carries changelog entries
// that follow repository policy.
//
// Two policies are supported:
//   - Core repositories keep one fragment file per change under each package's
//     changelog.d directory, named <PR number>.<type>. CoreErrors reports
//     packages with missing fragments and fragments named for another PR.
//   - Non-core repositories keep a single consolidated CHANGELOG.md.
//     NonCoreErrors reports added entry lines that break the formatting
//     conventions, addressed by file and line.
//
// Policy violations are returned as data. Only malformed input produces a Go
// error.
package changelog
