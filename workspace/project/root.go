// Package project locates the Go module a command runs in, so settings and
// fixtures can be resolved against the module root regardless of the
// working directory.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Marker is the file identifying a module root.
const Marker = "go.mod"

// FindRoot ascends from path until it finds a directory containing go.mod
// and returns that directory as an absolute path.
func FindRoot(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}

	curr := absPath
	for {
		info, err := os.Stat(filepath.Join(curr, Marker))
		if err == nil && !info.IsDir() {
			return curr, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to inspect %s: %w", curr, err)
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			break
		}
		curr = parent
	}
	return "", fmt.Errorf("given path %s is not within a Go module", path)
}
