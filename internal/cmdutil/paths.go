// Package cmdutil holds helpers shared by the CLI commands.
package cmdutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leefowlercu/unibundle/internal/fsutil"
)

// ErrNotDirectory is returned by ExistingDir for paths that are not directories.
var ErrNotDirectory = errors.New("not a directory")

// ResolvePath expands "~" and returns an absolute, cleaned path.
// Empty input returns an empty string.
func ResolvePath(path string) (string, error) {
	expanded := fsutil.ExpandHome(path)
	if expanded == "" {
		return "", nil
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(absPath), nil
}

// ExistingPath resolves path and requires that it exists.
func ExistingPath(path string) (string, os.FileInfo, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve path %q; %w", path, err)
	}
	if resolved == "" {
		return "", nil, fmt.Errorf("path must not be empty")
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("path does not exist: %s", resolved)
		}
		return "", nil, fmt.Errorf("failed to stat %s; %w", resolved, err)
	}
	return resolved, info, nil
}

// ExistingDir resolves path and requires that it is an existing directory.
func ExistingDir(path string) (string, error) {
	resolved, info, err := ExistingPath(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, resolved)
	}
	return resolved, nil
}
