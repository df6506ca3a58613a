package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// Bitmap is the canonical in-memory image flowing through the pipeline:
// an RGBA pixel grid with explicit dimensions. The alpha channel is always
// present; sources without transparency get a fully opaque one.
//
// The backing buffer is non-alpha-premultiplied, anchored at (0,0), with
// stride equal to 4*width, so the buffer length is exactly
// width*height*4. A Bitmap never aliases caller-owned memory.
type Bitmap struct {
	pix *image.NRGBA

	// opaque records whether the source carried no alpha channel.
	// Downstream stages treat both modes uniformly; the flag only lets
	// MakeOpaque skip a no-op blend.
	opaque bool
}

// NewBitmap allocates a fully transparent bitmap of the given size.
// Width and height must be positive.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{pix: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// BitmapFromImage copies an arbitrary image.Image into a canonical Bitmap.
// The pixel data is duplicated; the caller keeps ownership of img.
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Bitmap{pix: dst, opaque: imageIsOpaque(img)}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.pix.Rect.Dx() }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.pix.Rect.Dy() }

// Opaque reports whether the original source had no alpha channel.
func (b *Bitmap) Opaque() bool { return b.opaque }

// NRGBA exposes the backing image for drawing and encoding. Callers must
// not retain the returned value past the Bitmap's lifetime; use Clone when
// an independent copy is needed.
func (b *Bitmap) NRGBA() *image.NRGBA { return b.pix }

// At returns the non-premultiplied color at (x, y).
func (b *Bitmap) At(x, y int) color.NRGBA { return b.pix.NRGBAAt(x, y) }

// Set writes the non-premultiplied color at (x, y).
func (b *Bitmap) Set(x, y int, c color.NRGBA) { b.pix.SetNRGBA(x, y, c) }

// Clone returns a deep copy with an independent pixel buffer.
func (b *Bitmap) Clone() *Bitmap {
	dst := image.NewNRGBA(b.pix.Rect)
	copy(dst.Pix, b.pix.Pix)
	return &Bitmap{pix: dst, opaque: b.opaque}
}

// imageIsOpaque reports whether img carries no transparency. Known opaque
// color models short-circuit; otherwise the decoded image's own Opaque
// check runs in O(pixels).
func imageIsOpaque(img image.Image) bool {
	switch v := img.(type) {
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return true
	case *image.NRGBA:
		return v.Opaque()
	case *image.RGBA:
		return v.Opaque()
	default:
		type opaquer interface{ Opaque() bool }
		if o, ok := img.(opaquer); ok {
			return o.Opaque()
		}
		return false
	}
}
