package walker

import (
	"path/filepath"
	"strings"
)

// DefaultBundleExtensions are the extensions Unity tooling conventionally gives bundle files.
var DefaultBundleExtensions = []string{".bundle", ".unity3d", ".assets", ".resource"}

// DefaultMinSize is the size in bytes an extensionless file must exceed to qualify.
// Keeps empty marker files and tiny manifests out of the candidate list.
const DefaultMinSize int64 = 100

// Filter decides whether a file is a bundle candidate.
type Filter struct {
	extensions    map[string]bool
	extensionless bool
	minSize       int64
	skipHidden    bool
	skipFiles     []string
}

// NewFilter creates a Filter for the given extensions.
// Extensions are matched case-insensitively and may be given with or without a leading dot.
func NewFilter(extensions []string, minSize int64) *Filter {
	f := &Filter{
		extensions:    make(map[string]bool, len(extensions)),
		extensionless: true,
		minSize:       minSize,
	}
	for _, ext := range extensions {
		f.extensions[normalizeExt(ext)] = true
	}
	return f
}

// MatchesExtension reports whether the file qualifies by name and size:
// a known extension, or no extension and a size above the threshold.
func (f *Filter) MatchesExtension(path string, size int64) bool {
	name := filepath.Base(path)
	if f.isFileSkipped(name) {
		return false
	}

	ext := fileExt(name)
	if ext == "" {
		return f.extensionless && size > f.minSize
	}
	return f.extensions[ext]
}

// MatchesFallback reports whether the file qualifies under the all-files fallback.
func (f *Filter) MatchesFallback(path string, size int64) bool {
	if f.isFileSkipped(filepath.Base(path)) {
		return false
	}
	return size > f.minSize
}

// ShouldProcessDir returns true if the directory should be traversed.
func (f *Filter) ShouldProcessDir(path string) bool {
	return !(f.skipHidden && strings.HasPrefix(filepath.Base(path), "."))
}

func (f *Filter) isFileSkipped(name string) bool {
	if f.skipHidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, pattern := range f.skipFiles {
		if matchPattern(pattern, name) {
			return true
		}
	}
	return false
}

// normalizeExt ensures extension has leading dot and is lowercase.
func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// matchPattern matches a pattern against a name.
// Supports simple glob patterns with * wildcard.
func matchPattern(pattern, name string) bool {
	if pattern == name {
		return true
	}

	if strings.Contains(pattern, "*") {
		matched, err := filepath.Match(pattern, name)
		if err == nil && matched {
			return true
		}
	}

	return false
}

// fileExt returns the lowercased extension of name. A leading dot marks a
// hidden file, not an extension, so ".bundle" has none.
func fileExt(name string) string {
	if strings.HasPrefix(name, ".") && !strings.Contains(name[1:], ".") {
		return ""
	}
	return strings.ToLower(filepath.Ext(name))
}
