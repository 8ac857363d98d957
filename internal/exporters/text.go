package exporters

import (
	"context"
	"fmt"

	"github.com/leefowlercu/unibundle/internal/filetype"
	"github.com/leefowlercu/unibundle/internal/fsutil"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// TextExporter writes TextAsset objects: text payloads as <name>.txt, binary
// payloads as <name>.bytes.
type TextExporter struct{}

// NewTextExporter creates a new TextExporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Type returns the handled Unity type.
func (e *TextExporter) Type() string {
	return unity.TypeTextAsset
}

// Export writes the script payload.
func (e *TextExporter) Export(ctx context.Context, obj unity.Object, dir string) (Result, error) {
	asset, err := readAsset[*unity.TextAsset](obj)
	if err != nil {
		return Result{}, err
	}

	data := asset.Script.Bytes()
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w; text asset %d has no script", ErrEmptyPayload, obj.PathID())
	}

	ext := ".bytes"
	if asset.Script.IsText {
		ext = ".txt"
	}

	path := fsutil.UniquePath(dir, BaseName(asset.Name, prefixText, obj.PathID()), ext, obj.PathID())
	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write %s; %w", path, err)
	}
	return Result{Files: []string{path}}, nil
}

// FontExporter writes Font objects as .otf when the data carries the OTTO
// signature and .ttf otherwise.
type FontExporter struct{}

// NewFontExporter creates a new FontExporter.
func NewFontExporter() *FontExporter {
	return &FontExporter{}
}

// Type returns the handled Unity type.
func (e *FontExporter) Type() string {
	return unity.TypeFont
}

// Export writes the raw font bytes.
func (e *FontExporter) Export(ctx context.Context, obj unity.Object, dir string) (Result, error) {
	font, err := readAsset[*unity.Font](obj)
	if err != nil {
		return Result{}, err
	}
	if len(font.FontData) == 0 {
		return Result{}, fmt.Errorf("%w; font %d has no data", ErrEmptyPayload, obj.PathID())
	}

	ext := filetype.FontExtension(font.FontData)
	path := fsutil.UniquePath(dir, BaseName(font.Name, prefixFont, obj.PathID()), ext, obj.PathID())
	if err := fsutil.WriteFileAtomic(path, font.FontData, 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write %s; %w", path, err)
	}
	return Result{Files: []string{path}}, nil
}
