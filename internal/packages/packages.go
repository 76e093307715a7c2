// Package packages decides which top-level packages of a repository need a
// changelog entry for a set of changes.
//
// A directory is a package when it holds a manifest (pyproject.toml by
// default). A package opts out with:
//
//	[tool.changelog-check]
//	skip = true
//
// Otherwise it needs an entry when any changed file matches one of the
// required paths.
package packages

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
)

// DefaultPreloadParallelism bounds concurrent manifest reads in Preload.
const DefaultPreloadParallelism = 8

// manifest is the subset of pyproject.toml the resolver reads.
type manifest struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		ChangelogCheck struct {
			Skip bool `toml:"skip"`
		} `toml:"changelog-check"`
	} `toml:"tool"`
}

// Options configures a Resolver.
type Options struct {
	// Manifest is the file name marking a package directory.
	Manifest string
	// RequiredPaths are package-relative paths whose changes need an entry.
	// A trailing "/" matches everything under a directory; other entries are
	// path.Match patterns.
	RequiredPaths []string
	// Exempt packages never need an entry.
	Exempt []string
	// Logf receives debug output. May be nil.
	Logf func(format string, args ...any)
}

// Resolver answers whether a package requires a changelog entry by reading
// package manifests under a repository root.
type Resolver struct {
	root string
	opts Options

	mu        sync.Mutex
	manifests map[string]manifestResult
}

type manifestResult struct {
	m   *manifest
	err error
}

// NewResolver creates a Resolver for the repository at root.
func NewResolver(root string, opts Options) *Resolver {
	if opts.Manifest == "" {
		opts.Manifest = "pyproject.toml"
	}
	return &Resolver{root: root, opts: opts, manifests: make(map[string]manifestResult)}
}

// Requires reports whether pkg needs a changelog entry for files.
// Its signature matches changelog.RequiresFunc.
func (r *Resolver) Requires(pkg string, files []string) bool {
	if slices.Contains(r.opts.Exempt, pkg) {
		r.logf("[packages] %s: exempt", pkg)
		return false
	}

	m, err := r.loadManifest(pkg)
	if errors.Is(err, fs.ErrNotExist) {
		r.logf("[packages] %s: no %s, not a package", pkg, r.opts.Manifest)
		return false
	}
	if err != nil {
		// An unreadable manifest is still a package; check its files.
		r.logf("[packages] %s: %v", pkg, err)
	} else if m.Tool.ChangelogCheck.Skip {
		r.logf("[packages] %s: skipped by manifest", pkg)
		return false
	}

	for _, f := range files {
		if r.matchesRequired(f) {
			r.logf("[packages] %s: %s requires an entry", pkg, f)
			return true
		}
	}
	return false
}

// Preload reads the manifests of pkgs concurrently so later Requires calls
// are served from memory. Read failures are kept and reported by Requires.
func (r *Resolver) Preload(ctx context.Context, pkgs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultPreloadParallelism)

	for _, pkg := range pkgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.loadManifest(pkg)
			return nil
		})
	}

	return g.Wait()
}

// loadManifest returns the cached manifest of pkg, reading it on first use.
func (r *Resolver) loadManifest(pkg string) (*manifest, error) {
	r.mu.Lock()
	res, ok := r.manifests[pkg]
	r.mu.Unlock()
	if ok {
		return res.m, res.err
	}

	m, err := r.readManifest(pkg)

	r.mu.Lock()
	r.manifests[pkg] = manifestResult{m: m, err: err}
	r.mu.Unlock()
	return m, err
}

func (r *Resolver) readManifest(pkg string) (*manifest, error) {
	var m manifest
	p := filepath.Join(r.root, pkg, r.opts.Manifest)
	if _, err := os.Stat(p); err != nil {
		return nil, err
	}
	if _, err := toml.DecodeFile(p, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// matchesRequired reports whether a package-relative file matches any
// required path.
func (r *Resolver) matchesRequired(file string) bool {
	for _, pattern := range r.opts.RequiredPaths {
		if strings.HasSuffix(pattern, "/") {
			if strings.HasPrefix(file, pattern) {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pattern, file); ok {
			return true
		}
	}
	return false
}

func (r *Resolver) logf(format string, args ...any) {
	if r.opts.Logf != nil {
		r.opts.Logf(format, args...)
	}
}
