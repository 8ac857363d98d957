package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/leefowlercu/unibundle/internal/fsutil"
)

// ErrConfigExists is returned by Write when the target exists and overwrite is not requested.
var ErrConfigExists = errors.New("config file already exists")

// Write writes the configuration to the specified path.
// Creates the directory with 0700 permissions if it doesn't exist.
// Writes the file with 0600 permissions. An existing file is only replaced
// when overwrite is set.
func Write(cfg *Config, path string, overwrite bool) error {
	path = fsutil.ExpandHome(path)

	if !overwrite && fsutil.Exists(path) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory %s; %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config; %w", err)
	}

	header := fmt.Sprintf("# unibundle configuration\n# Generated: %s\n\n", time.Now().Format(time.RFC3339))

	err = fsutil.WriteAtomic(path, 0600, func(w io.Writer) error {
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to write config file %s; %w", path, err)
	}

	return nil
}
