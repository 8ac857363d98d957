package exporters

import (
	"context"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/leefowlercu/unibundle/internal/codec"
	"github.com/leefowlercu/unibundle/internal/fsutil"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// TextureExporter writes Texture2D objects as <name>_<W>x<H>.png.
type TextureExporter struct {
	minSize int
}

// TextureOption configures the TextureExporter.
type TextureOption func(*TextureExporter)

// WithMinSize skips textures whose width and height are both below size.
func WithMinSize(size int) TextureOption {
	return func(e *TextureExporter) {
		e.minSize = size
	}
}

// NewTextureExporter creates a new TextureExporter with the given options.
func NewTextureExporter(opts ...TextureOption) *TextureExporter {
	e := &TextureExporter{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Type returns the handled Unity type.
func (e *TextureExporter) Type() string {
	return unity.TypeTexture2D
}

// MinSize returns the configured minimum texture size.
func (e *TextureExporter) MinSize() int {
	return e.minSize
}

// Export decodes the texture and writes it as PNG.
func (e *TextureExporter) Export(ctx context.Context, obj unity.Object, dir string) (Result, error) {
	tex, err := readAsset[*unity.Texture2D](obj)
	if err != nil {
		return Result{}, err
	}

	width, height := tex.Width, tex.Height
	declared := width > 0 && height > 0
	if declared {
		if err := e.checkMinSize(width, height); err != nil {
			return Result{}, err
		}
	}

	img, err := assetImage(tex.Width, tex.Height, tex.ImageData, tex.RGBA, tex.BottomUp)
	if err != nil {
		return Result{}, err
	}

	if !declared {
		width, height = img.Bounds().Dx(), img.Bounds().Dy()
		if err := e.checkMinSize(width, height); err != nil {
			return Result{}, err
		}
	}

	base := BaseName(tex.Name, prefixTexture, obj.PathID()) + "_" + strconv.Itoa(width) + "x" + strconv.Itoa(height)
	path := fsutil.UniquePath(dir, base, ".png", obj.PathID())

	if err := writePNG(path, img); err != nil {
		return Result{}, err
	}
	return Result{Files: []string{path}}, nil
}

func (e *TextureExporter) checkMinSize(width, height int) error {
	if e.minSize > 0 && width < e.minSize && height < e.minSize {
		return fmt.Errorf("%w; %dx%d < %d", ErrBelowMinSize, width, height, e.minSize)
	}
	return nil
}

// SpriteExporter writes Sprite objects as <name>.png.
type SpriteExporter struct{}

// NewSpriteExporter creates a new SpriteExporter.
func NewSpriteExporter() *SpriteExporter {
	return &SpriteExporter{}
}

// Type returns the handled Unity type.
func (e *SpriteExporter) Type() string {
	return unity.TypeSprite
}

// Export decodes the sprite image and writes it as PNG.
func (e *SpriteExporter) Export(ctx context.Context, obj unity.Object, dir string) (Result, error) {
	sprite, err := readAsset[*unity.Sprite](obj)
	if err != nil {
		return Result{}, err
	}

	img, err := assetImage(sprite.Width, sprite.Height, sprite.ImageData, sprite.RGBA, sprite.BottomUp)
	if err != nil {
		return Result{}, err
	}

	path := fsutil.UniquePath(dir, BaseName(sprite.Name, prefixSprite, obj.PathID()), ".png", obj.PathID())
	if err := writePNG(path, img); err != nil {
		return Result{}, err
	}
	return Result{Files: []string{path}}, nil
}

// assetImage builds an image from either encoded image data or raw RGBA pixels.
func assetImage(width, height int, encoded, rgba []byte, bottomUp bool) (image.Image, error) {
	switch {
	case len(encoded) > 0:
		img, err := codec.DecodeImage(encoded)
		if err != nil {
			return nil, err
		}
		return codec.Orient(img, bottomUp), nil
	case len(rgba) > 0:
		return codec.PixelImage(width, height, rgba, bottomUp)
	case width <= 0 || height <= 0:
		return nil, ErrZeroDimension
	default:
		return nil, fmt.Errorf("%w; no pixel data for %dx%d image", ErrEmptyPayload, width, height)
	}
}

func writePNG(path string, img image.Image) error {
	err := fsutil.WriteAtomic(path, 0644, func(w io.Writer) error {
		return codec.EncodePNG(w, img)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s; %w", path, err)
	}
	return nil
}
