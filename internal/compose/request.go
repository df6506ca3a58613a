package compose

import (
	"errors"
	"fmt"

	"github.com/figprep/figprep/internal/colors"
	"github.com/figprep/figprep/internal/geometry"
	"github.com/figprep/figprep/internal/imaging"
)

// ErrInvalidParameter indicates a malformed crop request: negative canvas
// dimensions, border width, or padding. Geometry degeneracies (sides < 3,
// radius <= 0) surface as geometry.ErrInvalidGeometry instead.
var ErrInvalidParameter = errors.New("invalid crop parameter")

// BorderColor is the discriminated border color choice: either a fixed
// color or automatic selection from the source image. The zero value is
// automatic.
type BorderColor struct {
	fixed colors.Color
	isSet bool
}

// AutoColor selects the border color automatically: the dominant color of
// the source is extracted and the contrasting extreme (black or white) is
// used, so the ring stays visible against the cropped content.
func AutoColor() BorderColor { return BorderColor{} }

// FixedColor uses the given color for the border ring.
func FixedColor(c colors.Color) BorderColor {
	return BorderColor{fixed: c, isSet: true}
}

// Auto reports whether the color should be resolved from the source.
func (b BorderColor) Auto() bool { return !b.isSet }

// Fixed returns the fixed color; only meaningful when Auto is false.
func (b BorderColor) Fixed() colors.Color { return b.fixed }

// ParseBorderColor converts a user-facing border color string into the
// discriminated choice: "auto" (or empty) selects automatic contrast,
// anything else must parse as a hex color or recognized name.
func ParseBorderColor(s string) (BorderColor, error) {
	if s == "" || s == "auto" {
		return AutoColor(), nil
	}
	c, err := colors.Parse(s)
	if err != nil {
		return BorderColor{}, err
	}
	return FixedColor(c), nil
}

// BorderSpec describes the border ring. A zero Width means no border is
// drawn regardless of the color choice.
type BorderSpec struct {
	Width int
	Color BorderColor
}

// CropRequest aggregates everything one polygon crop needs. A request is
// built per call and consumed once; the pipeline never retains it.
type CropRequest struct {
	// Source is the image input in any supported representation.
	Source imaging.Source

	// CanvasWidth and CanvasHeight set the output size. When both are
	// zero the output is a square sized to the source's smaller
	// dimension.
	CanvasWidth  int
	CanvasHeight int

	// Sides is the polygon's side count, 3 or more.
	Sides int

	// RotationDeg rotates the polygon clockwise, in degrees. With zero
	// rotation the first vertex points straight up.
	RotationDeg float64

	// ShiftX and ShiftY move the polygon center off the canvas center,
	// in pixels. Positive values shift right and down.
	ShiftX int
	ShiftY int

	// Border configures the ring drawn inside the polygon boundary.
	Border BorderSpec

	// Padding shrinks the polygon radius relative to the canvas, in
	// pixels, leaving breathing room. It never crops source content.
	Padding int

	// PreferDark breaks exact contrast ties toward black when the
	// border color is automatic.
	PreferDark bool
}

// validate fails fast on malformed numeric parameters, before any pixel
// work. Geometry errors keep their own sentinel so callers can tell a
// degenerate polygon from a bad size.
func (r *CropRequest) validate() error {
	if r.Source == nil {
		return fmt.Errorf("crop: missing source: %w", ErrInvalidParameter)
	}
	if r.Sides < 3 {
		return fmt.Errorf("crop with %d sides: %w", r.Sides, geometry.ErrInvalidGeometry)
	}
	if r.CanvasWidth < 0 || r.CanvasHeight < 0 {
		return fmt.Errorf("crop canvas %dx%d: %w", r.CanvasWidth, r.CanvasHeight, ErrInvalidParameter)
	}
	if (r.CanvasWidth == 0) != (r.CanvasHeight == 0) {
		return fmt.Errorf("crop canvas %dx%d: width and height must be set together: %w",
			r.CanvasWidth, r.CanvasHeight, ErrInvalidParameter)
	}
	if r.Border.Width < 0 {
		return fmt.Errorf("crop border width %d: %w", r.Border.Width, ErrInvalidParameter)
	}
	if r.Padding < 0 {
		return fmt.Errorf("crop padding %d: %w", r.Padding, ErrInvalidParameter)
	}
	return nil
}
