package utils

import (
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// GetGlobMatches returns the regular files matching the glob pattern.
// The pattern is split into its base directory and the glob proper, and the
// matches are returned joined back onto the base. No matches is not an error.
func GetGlobMatches(pattern string) ([]string, error) {
	base, cleanPattern := doublestar.SplitPattern(pattern)
	f := os.DirFS(base)

	matches, err := doublestar.Glob(f, cleanPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	var fullMatches []string
	for _, match := range matches {
		fullMatches = append(fullMatches, path.Join(base, match))
	}

	return fullMatches, nil
}

// PathMatch reports whether the path matches the doublestar pattern.
// The whole path must match, not just a substring.
func PathMatch(pattern, path string) (bool, error) {
	return doublestar.PathMatch(pattern, path)
}
