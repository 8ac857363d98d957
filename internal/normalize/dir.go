package normalize

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/leefowlercu/unibundle/internal/walker"
)

// DirStats summarizes a directory normalization pass.
type DirStats struct {
	Total           int
	Stripped        int
	AlreadyStandard int
	Errors          int
}

// candidateOptions selects files for batch normalization: known bundle
// extensions plus every extensionless file regardless of size, falling back
// to all files when nothing matches.
func candidateOptions() []walker.Option {
	return []walker.Option{
		walker.WithExtensions(walker.DefaultBundleExtensions),
		walker.WithMinSize(-1),
	}
}

// NormalizeDir normalizes every candidate file under inDir into outDir,
// preserving relative paths. A failure on one file is logged and counted;
// the remaining files are still processed. The returned error is non-nil
// only when inDir cannot be walked or ctx is cancelled.
func (n *Normalizer) NormalizeDir(ctx context.Context, inDir, outDir string) (DirStats, error) {
	var stats DirStats

	absIn, err := filepath.Abs(inDir)
	if err != nil {
		return stats, fmt.Errorf("failed to resolve path; %w", err)
	}

	opts := append(candidateOptions(), walker.WithLogger(n.logger))
	files, err := walker.Discover(ctx, absIn, opts...)
	if err != nil {
		return stats, fmt.Errorf("failed to discover files; %w", err)
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Total++

		rel, err := filepath.Rel(absIn, file.Path)
		if err != nil {
			stats.Errors++
			n.logger.Error("failed to compute relative path", "path", file.Path, "error", err)
			continue
		}
		out := filepath.Join(outDir, rel)

		stripped, err := n.Normalize(file.Path, out)
		if err != nil {
			stats.Errors++
			n.logger.Error("failed to normalize file", "path", rel, "error", err)
			continue
		}

		if stripped {
			stats.Stripped++
			n.logger.Info("stripped alternate header", "path", rel)
		} else {
			stats.AlreadyStandard++
		}
	}

	return stats, nil
}
