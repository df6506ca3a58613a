// Package raster converts polygon vertex sets into antialiased alpha
// masks sized to the output canvas.
package raster

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/vector"

	"github.com/figprep/figprep/internal/geometry"
)

// ErrInvalidCanvas indicates non-positive mask dimensions or a vertex set
// that cannot form an area.
var ErrInvalidCanvas = errors.New("invalid mask canvas")

// Mask rasterizes the polygon described by vertices into a single-channel
// alpha mask of the given canvas size. The fill is antialiased: pixels
// outside the polygon are exactly 0, pixels strictly inside are 255, and
// boundary pixels hold coverage-proportional intermediate values.
//
// The rasterizer accumulates signed area per scanline, which resolves to
// the nonzero winding rule for the simple, consistently wound polygons
// the geometry package produces. Cost is O(width*height).
func Mask(vertices []geometry.Point, width, height int) (*image.Alpha, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("mask canvas %dx%d: %w", width, height, ErrInvalidCanvas)
	}
	if len(vertices) < 3 {
		return nil, fmt.Errorf("mask polygon with %d vertices: %w", len(vertices), ErrInvalidCanvas)
	}

	r := vector.NewRasterizer(width, height)
	r.MoveTo(float32(vertices[0].X), float32(vertices[0].Y))
	for _, v := range vertices[1:] {
		r.LineTo(float32(v.X), float32(v.Y))
	}
	r.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, nil
}

// Subtract returns outer minus inner, clamped at zero: the coverage of the
// ring between two nested masks. Both masks must have identical bounds.
func Subtract(outer, inner *image.Alpha) (*image.Alpha, error) {
	if outer.Rect != inner.Rect {
		return nil, fmt.Errorf("mask bounds differ: %v vs %v: %w", outer.Rect, inner.Rect, ErrInvalidCanvas)
	}
	ring := image.NewAlpha(outer.Rect)
	for i := range outer.Pix {
		if outer.Pix[i] > inner.Pix[i] {
			ring.Pix[i] = outer.Pix[i] - inner.Pix[i]
		}
	}
	return ring, nil
}
