// Package finder expands target glob patterns into the list of files to rewrite.
package finder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Globber resolves newline-separated glob patterns against the filesystem.
// Lines starting with '!' exclude previously matched paths; blank lines and
// lines starting with '#' are ignored.
type Globber struct{}

// New returns a Globber.
func New() *Globber {
	return &Globber{}
}

// Find returns the regular files matched by patterns, in discovery order and
// without duplicates. Directories are never returned.
func (g *Globber) Find(patterns string, followSymlinks bool) ([]string, error) {
	includes, excludes := splitPatterns(patterns)

	opts := []doublestar.GlobOption{doublestar.WithFilesOnly()}
	if !followSymlinks {
		opts = append(opts, doublestar.WithNoFollow())
	}

	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range includes {
		matches, err := doublestar.FilepathGlob(pattern, opts...)
		if err != nil {
			return nil, fmt.Errorf("expanding pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if _, dup := seen[match]; dup {
				continue
			}
			excluded, err := isExcluded(match, excludes)
			if err != nil {
				return nil, err
			}
			if excluded {
				continue
			}
			// WithNoFollow reports symlinks to directories as files.
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	return files, nil
}

func splitPatterns(raw string) (includes, excludes []string) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "!"):
			if p := strings.TrimSpace(line[1:]); p != "" {
				excludes = append(excludes, filepath.Clean(p))
			}
		default:
			includes = append(includes, line)
		}
	}
	return includes, excludes
}

func isExcluded(path string, excludes []string) (bool, error) {
	for _, pattern := range excludes {
		ok, err := doublestar.PathMatch(pattern, filepath.Clean(path))
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
