package walker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("x", size)), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDiscover_ExtensionMatchIgnoresEmptyExtensionless(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "characters.bundle"), 10)
	writeFile(t, filepath.Join(root, "marker"), 0)

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("Discover() returned %d files, want 1: %v", len(files), paths(files))
	}
	if filepath.Base(files[0].Path) != "characters.bundle" {
		t.Errorf("Discover() = %s, want characters.bundle", files[0].Path)
	}
}

func TestDiscover_ExtensionlessAboveThreshold(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bundle"), 1)
	writeFile(t, filepath.Join(root, "cab-1234"), 101)
	writeFile(t, filepath.Join(root, "cab-small"), 100)
	writeFile(t, filepath.Join(root, "notes.txt"), 500)

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	got := make([]string, len(files))
	for i, f := range files {
		got[i] = filepath.Base(f.Path)
	}
	want := []string{"a.bundle", "cab-1234"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_CaseInsensitiveExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Level1.UNITY3D"), 1)
	writeFile(t, filepath.Join(root, "sharedassets0.Assets"), 1)

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Discover() returned %d files, want 2", len(files))
	}
}

func TestDiscover_FallbackToAllFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "data", "blob.dat"), 200)
	writeFile(t, filepath.Join(root, "data", "tiny.dat"), 50)
	writeFile(t, filepath.Join(root, "index.json"), 150)

	w := New()
	files, err := w.Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if !w.Stats().UsedFallback {
		t.Error("Stats().UsedFallback = false, want true")
	}
	if len(files) != 2 {
		t.Fatalf("Discover() returned %d files, want 2: %v", len(files), paths(files))
	}
	if filepath.Base(files[0].Path) != "blob.dat" || filepath.Base(files[1].Path) != "index.json" {
		t.Errorf("Discover() = %v, want blob.dat then index.json", paths(files))
	}
}

func TestDiscover_SortedAcrossDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z", "b.bundle"), 1)
	writeFile(t, filepath.Join(root, "a", "c.bundle"), 1)
	writeFile(t, filepath.Join(root, "m.bundle"), 1)

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	paths := paths(files)
	for i := 1; i < len(paths); i++ {
		if paths[i-1] > paths[i] {
			t.Fatalf("Discover() not sorted: %v", paths)
		}
	}
	if len(paths) != 3 {
		t.Errorf("Discover() returned %d files, want 3", len(paths))
	}
}

func TestDiscover_Options(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ab"), 1)
	writeFile(t, filepath.Join(root, "b.bundle"), 1)
	writeFile(t, filepath.Join(root, ".cache", "c.ab"), 1)
	writeFile(t, filepath.Join(root, "empty"), 0)

	tests := []struct {
		name string
		opts []Option
		want int
	}{
		{"custom extensions", []Option{WithExtensions([]string{"ab"})}, 2},
		{"custom extensions skip hidden", []Option{WithExtensions([]string{"ab"}), WithSkipHidden(true)}, 1},
		{"extensionless any size", []Option{WithMinSize(-1)}, 2},
		{"extensionless disabled", []Option{WithMinSize(-1), WithExtensionless(false)}, 1},
		{"skip file pattern", []Option{WithSkipFiles([]string{"b.*"}), WithExtensions([]string{".bundle", ".ab"})}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Discover(context.Background(), root, tt.opts...)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if len(files) != tt.want {
				t.Errorf("Discover() returned %d files, want %d: %v", len(files), tt.want, paths(files))
			}
		})
	}
}

func TestDiscover_FollowsFileSymlinks(t *testing.T) {
	store := t.TempDir()
	target := filepath.Join(store, "real.bundle")
	writeFile(t, target, 200)
	writeFile(t, filepath.Join(store, "dir", "inner.bundle"), 200)

	root := t.TempDir()
	if err := os.Symlink(target, filepath.Join(root, "linked.bundle")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(store, "missing.bundle"), filepath.Join(root, "dangling.bundle")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(store, "dir"), filepath.Join(root, "linkdir")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Discover() returned %d files, want 1: %v", len(files), paths(files))
	}
	if filepath.Base(files[0].Path) != "linked.bundle" {
		t.Errorf("Discover() = %s, want linked.bundle", files[0].Path)
	}
	if files[0].Size != 200 {
		t.Errorf("Size = %d, want target size 200", files[0].Size)
	}
}

func TestDiscover_Errors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.bundle")
	writeFile(t, file, 1)

	if _, err := Discover(context.Background(), filepath.Join(root, "missing")); err == nil {
		t.Error("Discover() on missing root should error")
	}
	if _, err := Discover(context.Background(), file); err == nil {
		t.Error("Discover() on a file should error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Discover(ctx, root); err == nil {
		t.Error("Discover() with cancelled context should error")
	}
}

func paths(files []BundleFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
