// Package discovery locates BOM and placement exports inside a project directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles returns the files under dir matching any of the patterns,
// sorted and without duplicates. Patterns support "**".
func FindFiles(dir string, patterns []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	fsys := os.DirFS(dir)
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		for _, match := range matches {
			path := filepath.Join(dir, filepath.FromSlash(match))
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// FindOne returns the single file matching the patterns. It fails when
// nothing matches or when the match is ambiguous.
func FindOne(dir, kind string, patterns []string) (string, error) {
	files, err := FindFiles(dir, patterns)
	if err != nil {
		return "", err
	}

	switch len(files) {
	case 0:
		return "", fmt.Errorf("no %s file in %s matches %v", kind, dir, patterns)
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("found %d %s files in %s, pass one explicitly: %v", len(files), kind, dir, files)
	}
}
