package compose

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/figprep/figprep/internal/colors"
	"github.com/figprep/figprep/internal/geometry"
	"github.com/figprep/figprep/internal/imaging"
)

func solidImage(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func newCompositor() *Compositor {
	return New(imaging.NewNormalizer(nil))
}

func TestMakeHexicon_NoBorder(t *testing.T) {
	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	req := CropRequest{
		Source:       imaging.FromImage(solidImage(200, 200, gray)),
		CanvasWidth:  200,
		CanvasHeight: 200,
	}

	out, err := newCompositor().MakeHexicon(context.Background(), req)
	if err != nil {
		t.Fatalf("MakeHexicon failed: %v", err)
	}
	if out.Width() != 200 || out.Height() != 200 {
		t.Fatalf("output size %dx%d, want 200x200", out.Width(), out.Height())
	}

	// Canvas corners fall outside the hexagon and must be fully
	// transparent.
	for _, p := range []image.Point{{0, 0}, {199, 0}, {0, 199}, {199, 199}} {
		if got := out.At(p.X, p.Y); got.A != 0 {
			t.Errorf("corner %v alpha = %d, want 0", p, got.A)
		}
	}
	// The center keeps the source pixel at full opacity.
	center := out.At(100, 100)
	if center != (color.NRGBA{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("center pixel = %+v, want opaque gray", center)
	}
}

func TestCrop_FixedBorder(t *testing.T) {
	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	red, err := colors.Parse("#FF0000")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	req := CropRequest{
		Source:       imaging.FromImage(solidImage(200, 200, gray)),
		CanvasWidth:  200,
		CanvasHeight: 200,
		Sides:        6,
		Border:       BorderSpec{Width: 10, Color: FixedColor(red)},
	}

	out, err := newCompositor().Crop(context.Background(), req)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	// The outer hexagon's top vertex is at (100, 0) and the inner one at
	// (100, 10); a pixel directly below the outer vertex sits on the ring.
	if got := out.At(100, 5); got != red.NRGBA() {
		t.Errorf("ring pixel = %+v, want %+v", got, red.NRGBA())
	}
	// The center shows the source through the inner mask.
	if got := out.At(100, 100); got != (color.NRGBA{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("center pixel = %+v, want opaque gray", got)
	}
	// Outside the polygon stays transparent even with a border.
	if got := out.At(0, 0); got.A != 0 {
		t.Errorf("corner alpha = %d, want 0", got.A)
	}
}

func TestCrop_AutoBorderContrastsDominant(t *testing.T) {
	// A dark blue image has low luminance, so the automatic border must
	// come out white.
	blue := color.NRGBA{R: 0, G: 0, B: 200, A: 255}
	req := CropRequest{
		Source:       imaging.FromImage(solidImage(200, 200, blue)),
		CanvasWidth:  200,
		CanvasHeight: 200,
		Sides:        6,
		Border:       BorderSpec{Width: 12, Color: AutoColor()},
	}

	out, err := newCompositor().Crop(context.Background(), req)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if got := out.At(100, 5); got != colors.White.NRGBA() {
		t.Errorf("ring pixel = %+v, want white", got)
	}
}

func TestCrop_PaddingShrinksPolygon(t *testing.T) {
	gray := color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	req := CropRequest{
		Source:       imaging.FromImage(solidImage(100, 100, gray)),
		CanvasWidth:  100,
		CanvasHeight: 100,
		Sides:        6,
		Padding:      20,
	}

	out, err := newCompositor().Crop(context.Background(), req)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	// Radius is 50-20=30, so the top vertex is at y=20; y=10 is outside.
	if got := out.At(50, 10); got.A != 0 {
		t.Errorf("padded region alpha = %d, want 0", got.A)
	}
	if got := out.At(50, 50); got.A != 255 {
		t.Errorf("center alpha = %d, want 255", got.A)
	}
}

func TestCrop_DefaultCanvasIsSquare(t *testing.T) {
	gray := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	req := CropRequest{
		Source: imaging.FromImage(solidImage(300, 120, gray)),
		Sides:  5,
	}

	out, err := newCompositor().Crop(context.Background(), req)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if out.Width() != 120 || out.Height() != 120 {
		t.Errorf("output size %dx%d, want 120x120", out.Width(), out.Height())
	}
}

func TestCrop_TransparentAreaMatchesGeometry(t *testing.T) {
	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	req := CropRequest{
		Source:       imaging.FromImage(solidImage(200, 200, gray)),
		CanvasWidth:  200,
		CanvasHeight: 200,
		Sides:        6,
	}

	out, err := newCompositor().Crop(context.Background(), req)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	transparent := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			if out.At(x, y).A == 0 {
				transparent++
			}
		}
	}
	// Canvas area minus the hexagon area (3*sqrt(3)/2 * 100^2 ~= 25981),
	// give or take the antialiased boundary ring.
	want := 200*200 - 25981
	if transparent < want-1200 || transparent > want+1200 {
		t.Errorf("transparent pixels = %d, want ~%d", transparent, want)
	}
}

func TestCrop_ValidationErrors(t *testing.T) {
	src := imaging.FromImage(solidImage(50, 50, color.NRGBA{A: 255}))

	tests := []struct {
		name string
		req  CropRequest
		want error
	}{
		{"nil source", CropRequest{Sides: 6}, ErrInvalidParameter},
		{"two sides", CropRequest{Source: src, Sides: 2}, geometry.ErrInvalidGeometry},
		{"negative canvas", CropRequest{Source: src, Sides: 6, CanvasWidth: -1, CanvasHeight: 10}, ErrInvalidParameter},
		{"half-set canvas", CropRequest{Source: src, Sides: 6, CanvasWidth: 100}, ErrInvalidParameter},
		{"negative border", CropRequest{Source: src, Sides: 6, Border: BorderSpec{Width: -2}}, ErrInvalidParameter},
		{"negative padding", CropRequest{Source: src, Sides: 6, Padding: -1}, ErrInvalidParameter},
		{"padding eats radius", CropRequest{Source: src, Sides: 6, Padding: 40}, geometry.ErrInvalidGeometry},
		{"border eats radius", CropRequest{Source: src, Sides: 6, Border: BorderSpec{Width: 30}}, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCompositor().Crop(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCrop_UndecodableSource(t *testing.T) {
	req := CropRequest{
		Source: imaging.FromBytes([]byte("definitely not an image")),
		Sides:  6,
	}
	_, err := newCompositor().Crop(context.Background(), req)
	if !errors.Is(err, imaging.ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestParseBorderColor(t *testing.T) {
	if bc, err := ParseBorderColor("auto"); err != nil || !bc.Auto() {
		t.Errorf("auto: got (%v, %v), want automatic choice", bc, err)
	}
	if bc, err := ParseBorderColor(""); err != nil || !bc.Auto() {
		t.Errorf("empty: got (%v, %v), want automatic choice", bc, err)
	}
	bc, err := ParseBorderColor("#00FF00")
	if err != nil {
		t.Fatalf("hex parse failed: %v", err)
	}
	if bc.Auto() || bc.Fixed() != (colors.Color{G: 255, A: 255}) {
		t.Errorf("hex: got %+v, want fixed green", bc.Fixed())
	}
	if _, err := ParseBorderColor("not-a-color"); !errors.Is(err, colors.ErrUnknownColor) {
		t.Errorf("got %v, want ErrUnknownColor", err)
	}
}
