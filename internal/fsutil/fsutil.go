// Package fsutil provides filesystem helpers shared by the normalizer and the exporters.
package fsutil

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Exists reports whether something exists at path.
// Errors other than "not exist" are treated as existing so callers never overwrite blindly.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// UniquePath returns filepath.Join(dir, base+ext) unless that path already exists,
// in which case it returns filepath.Join(dir, base+"_"+id+ext).
// The check is performed once; the suffixed path is not re-checked.
func UniquePath(dir, base, ext string, id int64) string {
	path := filepath.Join(dir, base+ext)
	if !Exists(path) {
		return path
	}
	return filepath.Join(dir, base+"_"+strconv.FormatInt(id, 10)+ext)
}

// WriteFileAtomic writes data to path via a temporary file in the same directory
// followed by a rename. Parent directories are created as needed.
// On failure no file is left at path and the temporary file is removed.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return WriteAtomic(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteAtomic streams content produced by write into path atomically.
// Zero-length output is rejected with ErrEmptyWrite so callers never publish empty files.
func WriteAtomic(path string, perm os.FileMode, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q; %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %q; %w", dir, err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	counter := &countingWriter{w: tmp}
	if err := write(counter); err != nil {
		return fmt.Errorf("failed to write %q; %w", path, err)
	}
	if counter.n == 0 {
		return ErrEmptyWrite
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %q; %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %q; %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %q; %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename into %q; %w", path, err)
	}
	committed = true
	return nil
}

// ErrEmptyWrite is returned by WriteAtomic when the writer produced no bytes.
var ErrEmptyWrite = errors.New("refusing to write empty file")

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// SHA1 returns the SHA-1 digest of data.
func SHA1(data []byte) [sha1.Size]byte {
	return sha1.Sum(data)
}

// SamePath reports whether a and b refer to the same file.
// Falls back to comparing cleaned absolute paths when either side does not exist.
func SamePath(a, b string) bool {
	ai, errA := os.Stat(a)
	bi, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(ai, bi)
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// ExpandHome expands a leading "~" or "~/" to the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, strings.TrimPrefix(path[2:], "/"))
}
