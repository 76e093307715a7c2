// Package event reads pull request details from a JSON payload, either a
// GitHub Actions event file or a bare pull request object such as the output
// of "gh pr view --json number,url".
package event

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// GitHubEventPathEnv names the variable GitHub Actions sets to the event
// payload path.
const GitHubEventPathEnv = "GITHUB_EVENT_PATH"

// PullRequest holds the pull request identifiers the checks need.
type PullRequest struct {
	Number int
	URL    string
}

// Load reads a pull request from a JSON file.
// Keys are looked up under "pull_request" first (event payloads), then at the
// top level (bare objects). The URL comes from "html_url" or "url".
func Load(path string) (*PullRequest, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("loading pull request file %s: %w", path, err)
	}

	prefix := ""
	if k.Exists("pull_request.number") {
		prefix = "pull_request."
	}

	pr := &PullRequest{Number: k.Int(prefix + "number")}
	for _, key := range []string{"html_url", "url"} {
		if url := k.String(prefix + key); url != "" {
			pr.URL = url
			break
		}
	}

	if pr.Number <= 0 {
		return nil, fmt.Errorf("pull request file %s has no pull request number", path)
	}
	return pr, nil
}

// FromEnvironment loads the pull request from $GITHUB_EVENT_PATH.
// It returns nil without error when the variable is unset.
func FromEnvironment() (*PullRequest, error) {
	path := os.Getenv(GitHubEventPathEnv)
	if path == "" {
		return nil, nil
	}
	return Load(path)
}
