package changelog

import "fmt"

// EntrySuffix returns the PR reference that closes every non-core changelog
// entry, e.g. " See [#123](https://github.com/org/repo/pull/123).".
// It satisfies SuffixFunc.
func EntrySuffix(prNumber int, prURL string) string {
	return fmt.Sprintf(" See [#%d](%s).", prNumber, prURL)
}
