// Package geometry computes regular polygon vertex sets for the mask
// rasterizer and compositor.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry indicates a degenerate polygon request: fewer than 3
// sides or a non-positive radius.
var ErrInvalidGeometry = errors.New("invalid polygon geometry")

// Point is a 2D point in image coordinates (origin top-left, y down).
type Point struct {
	X float64
	Y float64
}

// Vertices computes the corners of a regular polygon with the given number
// of sides, inscribed in the circle of the given radius around (cx, cy).
//
// Convention: with zero rotation the first vertex sits straight up from
// the center (12 o'clock), and vertices proceed clockwise on screen.
// Rotation is in degrees, taken modulo 360, positive rotating clockwise.
//
// Exactly `sides` vertices are returned; consecutive vertices never
// coincide for a positive radius. sides < 3 or radius <= 0 fail with
// ErrInvalidGeometry.
func Vertices(sides int, cx, cy, radius, rotationDeg float64) ([]Point, error) {
	if sides < 3 {
		return nil, fmt.Errorf("polygon with %d sides: %w", sides, ErrInvalidGeometry)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("polygon with radius %.2f: %w", radius, ErrInvalidGeometry)
	}

	rotation := math.Mod(rotationDeg, 360)
	step := 360.0 / float64(sides)

	vertices := make([]Point, sides)
	for i := 0; i < sides; i++ {
		// -90° puts vertex 0 at the top; adding the per-vertex step in
		// screen coordinates (y down) walks the ring clockwise.
		angle := (rotation - 90 + float64(i)*step) * math.Pi / 180
		vertices[i] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return vertices, nil
}
