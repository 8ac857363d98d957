// Package codec converts decoded asset payloads into portable file formats.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrZeroDimension is returned for images with a zero width or height.
	ErrZeroDimension = errors.New("image has zero dimension")

	// ErrPixelCount is returned when a raw pixel buffer does not match its dimensions.
	ErrPixelCount = errors.New("pixel buffer size does not match dimensions")
)

// PixelImage wraps raw 8-bit RGBA pixels (width*height*4 bytes, non-premultiplied)
// in an image. Rows stored bottom-up are reordered top-down.
func PixelImage(width, height int, rgba []byte, bottomUp bool) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroDimension
	}
	stride := width * 4
	if len(rgba) != stride*height {
		return nil, fmt.Errorf("%w; got %d bytes for %dx%d", ErrPixelCount, len(rgba), width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := y
		if bottomUp {
			src = height - 1 - y
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], rgba[src*stride:(src+1)*stride])
	}
	return img, nil
}

// DecodeImage decodes an encoded image in any registered format
// (PNG, JPEG, GIF, BMP, TIFF, WebP).
func DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image; %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%s image; %w", format, ErrZeroDimension)
	}
	return img, nil
}

// Orient flips an already decoded image vertically when its rows are bottom-up.
func Orient(img image.Image, bottomUp bool) image.Image {
	if !bottomUp {
		return img
	}
	return transform.FlipV(img)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imgio.PNGEncoder()(w, img); err != nil {
		return fmt.Errorf("failed to encode png; %w", err)
	}
	return nil
}
