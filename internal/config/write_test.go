package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewDefaultConfig()
	cfg.Parser.Command = "/usr/local/bin/dumper"
	cfg.Extract.Types = []string{"Mesh"}

	if err := Write(&cfg, path, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}

	content, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(content), "# unibundle configuration") {
		t.Errorf("missing header, got: %s", content)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Parser.Command != "/usr/local/bin/dumper" {
		t.Errorf("Parser.Command = %q", loaded.Parser.Command)
	}
	if len(loaded.Extract.Types) != 1 || loaded.Extract.Types[0] != "Mesh" {
		t.Errorf("Extract.Types = %v", loaded.Extract.Types)
	}
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg := NewDefaultConfig()
	if err := Write(&cfg, path, false); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("Write() error = %v, want ErrConfigExists", err)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "log_level: debug\n" {
		t.Error("existing config was modified")
	}

	if err := Write(&cfg, path, true); err != nil {
		t.Fatalf("Write(overwrite) error = %v", err)
	}
}
