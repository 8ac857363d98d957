package fsutil

import (
	"crypto/sha1"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	first := UniquePath(dir, "icon_32x32", ".png", 42)
	if first != filepath.Join(dir, "icon_32x32.png") {
		t.Fatalf("UniquePath() = %q, want unsuffixed path", first)
	}

	if err := os.WriteFile(first, []byte("a"), 0644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}

	second := UniquePath(dir, "icon_32x32", ".png", 42)
	if second != filepath.Join(dir, "icon_32x32_42.png") {
		t.Errorf("UniquePath() = %q, want path suffixed with id", second)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.bin")

	if err := WriteFileAtomic(path, []byte("payload"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file failed: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("content = %q, want %q", got, "payload")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temp file leaked)", len(entries))
	}
}

func TestWriteFileAtomic_EmptyRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")

	err := WriteFileAtomic(path, nil, 0644)
	if !errors.Is(err, ErrEmptyWrite) {
		t.Fatalf("WriteFileAtomic(nil) error = %v, want ErrEmptyWrite", err)
	}
	if Exists(path) {
		t.Error("empty write left a file behind")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory has %d entries, want 0", len(entries))
	}
}

func TestWriteAtomic_WriterFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.bin")

	boom := errors.New("encoder exploded")
	err := WriteAtomic(path, 0644, func(w io.Writer) error {
		_, _ = w.Write([]byte("half a file"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WriteAtomic() error = %v, want wrapped writer error", err)
	}
	if Exists(path) {
		t.Error("failed write left a partial file at the destination")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory has %d entries, want 0", len(entries))
	}
}

func TestWriteAtomic_PanicLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panicked.bin")

	func() {
		defer func() { _ = recover() }()
		_ = WriteAtomic(path, 0644, func(w io.Writer) error {
			_, _ = w.Write([]byte("some bytes"))
			panic("decoder bug")
		})
	}()

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory has %d entries after panic, want 0", len(entries))
	}
}

func TestSHA1(t *testing.T) {
	data := []byte("UnityFS payload")
	if SHA1(data) != sha1.Sum(data) {
		t.Error("SHA1() does not match crypto/sha1")
	}
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bundle")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}

	if !SamePath(path, filepath.Join(dir, ".", "a.bundle")) {
		t.Error("SamePath() = false for equivalent paths")
	}
	if SamePath(path, filepath.Join(dir, "b.bundle")) {
		t.Error("SamePath() = true for different paths")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"~", home},
		{"~/logs/unibundle.log", filepath.Join(home, "logs", "unibundle.log")},
		{"~other/x", "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandHome(tt.input); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
