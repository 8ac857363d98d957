package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/leefowlercu/unibundle/internal/unity"
)

func TestPixelImage(t *testing.T) {
	// 1x2: top row red, bottom row blue (as stored top-down).
	pix := []byte{
		255, 0, 0, 255,
		0, 0, 255, 128,
	}

	tests := []struct {
		name     string
		bottomUp bool
		top      color.NRGBA
	}{
		{"top-down", false, color.NRGBA{R: 255, A: 255}},
		{"bottom-up", true, color.NRGBA{B: 255, A: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := PixelImage(1, 2, pix, tt.bottomUp)
			if err != nil {
				t.Fatalf("PixelImage() error = %v", err)
			}
			if got := img.NRGBAAt(0, 0); got != tt.top {
				t.Errorf("top pixel = %v, want %v", got, tt.top)
			}
		})
	}
}

func TestPixelImage_Errors(t *testing.T) {
	if _, err := PixelImage(0, 4, nil, false); !errors.Is(err, ErrZeroDimension) {
		t.Errorf("PixelImage(0x4) error = %v, want ErrZeroDimension", err)
	}
	if _, err := PixelImage(2, 2, make([]byte, 15), false); !errors.Is(err, ErrPixelCount) {
		t.Errorf("PixelImage(short buffer) error = %v, want ErrPixelCount", err)
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	img, err := PixelImage(2, 1, []byte{10, 20, 30, 255, 40, 50, 60, 255}, false)
	if err != nil {
		t.Fatalf("PixelImage() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 1 {
		t.Errorf("decoded bounds = %v, want 2x1", decoded.Bounds())
	}
	r, g, b, _ := decoded.At(1, 0).RGBA()
	if r>>8 != 40 || g>>8 != 50 || b>>8 != 60 {
		t.Errorf("pixel (1,0) = %d,%d,%d, want 40,50,60", r>>8, g>>8, b>>8)
	}
}

func TestDecodeImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 255})

	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatalf("bmp.Encode() error = %v", err)
	}

	for name, data := range map[string][]byte{"png": pngBuf.Bytes(), "bmp": bmpBuf.Bytes()} {
		t.Run(name, func(t *testing.T) {
			img, err := DecodeImage(data)
			if err != nil {
				t.Fatalf("DecodeImage() error = %v", err)
			}
			if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
				t.Errorf("bounds = %v, want 3x2", img.Bounds())
			}
		})
	}

	if _, err := DecodeImage(nil); err == nil {
		t.Error("DecodeImage(nil) should error")
	}
	if _, err := DecodeImage([]byte("definitely not an image")); err == nil {
		t.Error("DecodeImage(garbage) should error")
	}
}

func TestOrient(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.SetNRGBA(0, 1, color.NRGBA{G: 255, A: 255})

	if got := Orient(src, false); got != image.Image(src) {
		t.Error("Orient(false) should return the input unchanged")
	}

	flipped := Orient(src, true)
	_, g, _, _ := flipped.At(0, 0).RGBA()
	if g>>8 != 255 {
		t.Errorf("flipped top pixel green = %d, want 255", g>>8)
	}
}

func TestEncodeOBJ(t *testing.T) {
	mesh := &unity.Mesh{
		Name:     "quad",
		Vertices: []float32{1, 0, 0, 0, 1, 0, 0, 0, 1},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		UV:       []float32{0, 0, 1, 0, 0.5, 1},
		SubMeshes: []unity.SubMesh{
			{Indices: []uint32{0, 1, 2}},
		},
	}

	got := EncodeOBJ(mesh)

	for _, want := range []string{
		"g quad\n",
		"v -1 0 0\n",
		"v 0 1 0\n",
		"vt 0.5 1\n",
		"vn 0 0 1\n",
		"g quad_0\n",
		"f 3/3/3 2/2/2 1/1/1\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("EncodeOBJ() missing %q in:\n%s", want, got)
		}
	}
}

func TestEncodeOBJ_FaceFormats(t *testing.T) {
	tests := []struct {
		name string
		mesh *unity.Mesh
		face string
	}{
		{
			name: "positions only",
			mesh: &unity.Mesh{Vertices: make([]float32, 9), SubMeshes: []unity.SubMesh{{Indices: []uint32{0, 1, 2}}}},
			face: "f 3 2 1\n",
		},
		{
			name: "normals without uv",
			mesh: &unity.Mesh{Vertices: make([]float32, 9), Normals: make([]float32, 9), SubMeshes: []unity.SubMesh{{Indices: []uint32{0, 1, 2}}}},
			face: "f 3//3 2//2 1//1\n",
		},
		{
			name: "out of range triangle dropped",
			mesh: &unity.Mesh{Vertices: make([]float32, 9), SubMeshes: []unity.SubMesh{{Indices: []uint32{0, 1, 2, 0, 1, 9}}}},
			face: "f 3 2 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeOBJ(tt.mesh)
			if strings.Count(got, "f ") != 1 || !strings.Contains(got, tt.face) {
				t.Errorf("EncodeOBJ() faces wrong, want single %q in:\n%s", tt.face, got)
			}
			if !strings.HasPrefix(got, "g mesh\n") {
				t.Errorf("unnamed mesh should use default group, got:\n%s", got)
			}
		})
	}
}

func TestEncodeOBJ_Empty(t *testing.T) {
	if got := EncodeOBJ(&unity.Mesh{Name: "empty"}); got != "" {
		t.Errorf("EncodeOBJ(empty) = %q, want empty string", got)
	}
}
