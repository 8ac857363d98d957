package cmdutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/unity/execparser"
)

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cwd, _ := os.Getwd()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~/bundles", filepath.Join(home, "bundles")},
		{"rel/../dir", filepath.Join(cwd, "dir")},
		{"/abs//path/", "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolvePath(tt.input)
			if err != nil {
				t.Fatalf("ResolvePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExistingDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.bundle")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if got, err := ExistingDir(dir); err != nil || got != dir {
		t.Errorf("ExistingDir(dir) = %q, %v", got, err)
	}

	if _, err := ExistingDir(file); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("ExistingDir(file) error = %v, want ErrNotDirectory", err)
	}

	_, err := ExistingDir(filepath.Join(dir, "missing"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("ExistingDir(missing) error = %v", err)
	}

	if _, err := ExistingDir(""); err == nil {
		t.Error("ExistingDir(\"\") should fail")
	}
}

func TestNewParser(t *testing.T) {
	p := NewParser(config.ParserConfig{Command: "dumper", Args: []string{"-x"}, Timeout: 5})
	if _, ok := p.(*execparser.Parser); !ok {
		t.Fatalf("NewParser() = %T, want *execparser.Parser", p)
	}
}

func TestDiscoveryOptions(t *testing.T) {
	opts := DiscoveryOptions(config.DiscoveryConfig{Extensions: []string{".ab"}, MinSize: 0, SkipHidden: true}, nil)
	if len(opts) != 5 {
		t.Errorf("DiscoveryOptions() returned %d options, want 5", len(opts))
	}
}
