// Package walker discovers candidate bundle files beneath a directory tree.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// BundleFile is a discovered candidate bundle.
type BundleFile struct {
	Path string
	Size int64
}

// Stats contains statistics about the last discovery pass.
type Stats struct {
	FilesSeen     int64
	FilesMatched  int64
	DirsTraversed int64
	DirsSkipped   int64
	UsedFallback  bool
}

// Option configures a Walker.
type Option func(*Walker)

// WithExtensions replaces the recognized bundle extensions.
func WithExtensions(exts []string) Option {
	return func(w *Walker) {
		w.extensions = exts
	}
}

// WithMinSize sets the byte threshold extensionless and fallback candidates must exceed.
func WithMinSize(size int64) Option {
	return func(w *Walker) {
		w.minSize = size
	}
}

// WithExtensionless controls whether extensionless files above the size threshold qualify.
func WithExtensionless(enabled bool) Option {
	return func(w *Walker) {
		w.extensionless = enabled
	}
}

// WithSkipHidden skips dot-files and dot-directories.
func WithSkipHidden(skip bool) Option {
	return func(w *Walker) {
		w.skipHidden = skip
	}
}

// WithSkipFiles skips files whose base name matches any of the glob patterns.
func WithSkipFiles(patterns []string) Option {
	return func(w *Walker) {
		w.skipFiles = patterns
	}
}

// WithLogger sets the logger used for unreadable directory warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// Walker scans a directory tree for bundle candidates.
type Walker struct {
	extensions    []string
	minSize       int64
	extensionless bool
	skipHidden    bool
	skipFiles     []string
	logger        *slog.Logger

	stats Stats
}

// New creates a Walker with the default bundle heuristics.
func New(opts ...Option) *Walker {
	w := &Walker{
		extensions:    DefaultBundleExtensions,
		minSize:       DefaultMinSize,
		extensionless: true,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Discover walks root with default options. See Walker.Discover.
func Discover(ctx context.Context, root string, opts ...Option) ([]BundleFile, error) {
	return New(opts...).Discover(ctx, root)
}

// Stats returns statistics from the last Discover call.
func (w *Walker) Stats() Stats {
	return w.stats
}

// Discover recursively collects candidate bundle files under root.
// Files qualify by extension, or when extensionless and larger than the size threshold.
// If nothing qualifies, every regular file larger than the threshold is returned instead.
// The result is sorted by path.
func (w *Walker) Discover(ctx context.Context, root string) ([]BundleFile, error) {
	w.stats = Stats{}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path; %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path; %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absRoot)
	}

	filter := NewFilter(w.extensions, w.minSize)
	filter.extensionless = w.extensionless
	filter.skipHidden = w.skipHidden
	filter.skipFiles = w.skipFiles

	var all, matched []BundleFile

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() && path != absRoot {
				w.logger.Warn("skipping unreadable directory", "path", path, "error", walkErr)
				w.stats.DirsSkipped++
				return fs.SkipDir
			}
			return walkErr
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != absRoot && !filter.ShouldProcessDir(path) {
				w.stats.DirsSkipped++
				return fs.SkipDir
			}
			w.stats.DirsTraversed++
			return nil
		}

		info, ok := regularFileInfo(path, d)
		if !ok {
			return nil
		}

		w.stats.FilesSeen++
		file := BundleFile{Path: path, Size: info.Size()}
		all = append(all, file)
		if filter.MatchesExtension(path, file.Size) {
			matched = append(matched, file)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s; %w", absRoot, err)
	}

	if len(matched) == 0 {
		w.stats.UsedFallback = true
		for _, file := range all {
			if filter.MatchesFallback(file.Path, file.Size) {
				matched = append(matched, file)
			}
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Path < matched[j].Path
	})
	w.stats.FilesMatched = int64(len(matched))

	return matched, nil
}

// regularFileInfo returns file info for regular files and for symlinks that
// resolve to regular files. Directory symlinks are not followed.
func regularFileInfo(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	switch {
	case d.Type().IsRegular():
		info, err := d.Info()
		return info, err == nil
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		return info, true
	default:
		return nil, false
	}
}
