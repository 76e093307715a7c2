package diff

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Packages maps a top-level path segment to the paths changed beneath it,
// relative to that segment and in diff order.
type Packages map[string][]string

// GroupByPackage partitions filenames by their first path segment.
// Files at the repository root have no package and are left out.
// A malformed diff error from the sequence is returned as-is.
func GroupByPackage(filenames iter.Seq2[string, error]) (Packages, error) {
	pkgs := make(Packages)
	for name, err := range filenames {
		if err != nil {
			return nil, err
		}
		pkg, rest, _ := strings.Cut(name, "/")
		if rest == "" {
			continue
		}
		pkgs[pkg] = append(pkgs[pkg], rest)
	}
	return pkgs, nil
}

// Names returns the package names in sorted order.
func (p Packages) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Paths returns every grouped file as a repository-relative path, packages
// in sorted order and files in diff order within each package.
func (p Packages) Paths() []string {
	var paths []string
	for _, name := range p.Names() {
		for _, f := range p[name] {
			paths = append(paths, name+"/"+f)
		}
	}
	return paths
}
