package convert

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/figprep/figprep/internal/imaging"
)

func writeTranslucentPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 128})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestFile_PNGToJPG(t *testing.T) {
	src := writeTranslucentPNG(t, t.TempDir(), "figure.png")

	out, err := File(src, "jpg", Options{})
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if filepath.Ext(out) != ".jpg" {
		t.Errorf("output path %s, want .jpg extension", out)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	decoded, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("output is not a decodable JPEG: %v", err)
	}
	if decoded.Bounds().Dx() != 20 || decoded.Bounds().Dy() != 20 {
		t.Errorf("output size %v, want 20x20", decoded.Bounds())
	}

	// Half-transparent red flattened over white lands near (255, 127, 127);
	// JPEG quantization justifies a loose tolerance.
	r, g, b, _ := decoded.At(10, 10).RGBA()
	if r>>8 < 240 || g>>8 < 100 || g>>8 > 150 || b>>8 < 100 || b>>8 > 150 {
		t.Errorf("flattened pixel = (%d, %d, %d)", r>>8, g>>8, b>>8)
	}

	// Without RemoveOriginal the source survives.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("original missing: %v", err)
	}
}

func TestFile_RemoveOriginal(t *testing.T) {
	src := writeTranslucentPNG(t, t.TempDir(), "figure.png")

	if _, err := File(src, "jpg", Options{RemoveOriginal: true}); err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("original should be removed, stat err = %v", err)
	}
}

func TestFile_SameFormatKeepsSource(t *testing.T) {
	src := writeTranslucentPNG(t, t.TempDir(), "figure.png")

	out, err := File(src, "png", Options{RemoveOriginal: true})
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if out != src {
		t.Errorf("output %s, want in-place %s", out, src)
	}
	// Target equals source, so RemoveOriginal must not delete the result.
	if _, err := os.Stat(out); err != nil {
		t.Errorf("converted file missing: %v", err)
	}
}

func TestFile_UnsupportedFormat(t *testing.T) {
	src := writeTranslucentPNG(t, t.TempDir(), "figure.png")

	if _, err := File(src, "webp", Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestFile_MissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.png")
	if _, err := File(missing, "jpg", Options{}); !errors.Is(err, imaging.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestFile_ExtensionWithDot(t *testing.T) {
	src := writeTranslucentPNG(t, t.TempDir(), "figure.png")

	out, err := File(src, ".jpg", Options{})
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if filepath.Ext(out) != ".jpg" {
		t.Errorf("output path %s, want .jpg extension", out)
	}
}
