package exporters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"

	"github.com/leefowlercu/unibundle/internal/filetype"
	"github.com/leefowlercu/unibundle/internal/fsutil"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// AudioExporter writes each decoded sample of an AudioClip as its own file,
// named after the sample with an extension sniffed from its bytes.
type AudioExporter struct{}

// NewAudioExporter creates a new AudioExporter.
func NewAudioExporter() *AudioExporter {
	return &AudioExporter{}
}

// Type returns the handled Unity type.
func (e *AudioExporter) Type() string {
	return unity.TypeAudioClip
}

// Export writes every sample in name order. If any sample fails, files
// already written by this call are removed.
func (e *AudioExporter) Export(ctx context.Context, obj unity.Object, dir string) (res Result, err error) {
	clip, err := readAsset[*unity.AudioClip](obj)
	if err != nil {
		return Result{}, err
	}
	if len(clip.Samples) == 0 {
		return Result{}, fmt.Errorf("%w; audio clip %d has no samples", ErrEmptyPayload, obj.PathID())
	}

	names := make([]string, 0, len(clip.Samples))
	for name := range clip.Samples {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	defer func() {
		if err != nil {
			for _, path := range written {
				_ = os.Remove(path)
			}
		}
	}()

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		data := clip.Samples[name]
		if len(data) == 0 {
			return Result{}, fmt.Errorf("%w; sample %q is empty", ErrEmptyPayload, name)
		}

		path := samplePath(dir, BaseName(name, prefixAudio, obj.PathID()), filetype.AudioExtension(data), obj.PathID(), written)
		if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
			return Result{}, fmt.Errorf("failed to write %s; %w", path, err)
		}
		written = append(written, path)
	}

	return Result{Files: written}, nil
}

// samplePath resolves the output path for one sample. Samples whose names
// sanitize to the same base get an extra counter so none overwrite each other.
func samplePath(dir, base, ext string, pathID int64, written []string) string {
	path := fsutil.UniquePath(dir, base, ext, pathID)
	if !slices.Contains(written, path) {
		return path
	}
	for n := 2; ; n++ {
		path = filepath.Join(dir, base+"_"+strconv.FormatInt(pathID, 10)+"_"+strconv.Itoa(n)+ext)
		if !slices.Contains(written, path) && !fsutil.Exists(path) {
			return path
		}
	}
}
