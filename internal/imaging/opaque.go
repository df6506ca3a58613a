package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
)

// White is the default background for MakeOpaque.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// MakeOpaque flattens a bitmap's transparency by compositing it over a
// solid background, per-pixel out = src*srcA + bg*(1-srcA). The result is
// fully opaque. Applying it to an already-opaque bitmap is a no-op copy,
// so the operation is idempotent.
func MakeOpaque(bmp *Bitmap, bg color.Color) *Bitmap {
	if bmp.opaque {
		return bmp.Clone()
	}

	background := image.NewNRGBA(bmp.pix.Rect)
	draw.Draw(background, background.Rect, image.NewUniform(bg), image.Point{}, draw.Src)

	flattened := blend.Normal(background, bmp.pix)

	out := image.NewNRGBA(flattened.Rect)
	draw.Draw(out, out.Rect, flattened, image.Point{}, draw.Src)
	// Blending over an opaque background leaves alpha at 255 everywhere;
	// force it anyway so rounding in the blend cannot leak through.
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return &Bitmap{pix: out, opaque: true}
}
