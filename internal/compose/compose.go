package compose

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	dimaging "github.com/disintegration/imaging"

	"github.com/figprep/figprep/internal/colors"
	"github.com/figprep/figprep/internal/geometry"
	"github.com/figprep/figprep/internal/imaging"
	"github.com/figprep/figprep/internal/raster"
)

// Compositor runs polygon crop requests. It holds the ingestion
// normalizer; everything else is per-request state, so one Compositor is
// safe to share across goroutines.
type Compositor struct {
	normalizer *imaging.Normalizer
}

// New creates a Compositor that ingests sources through n.
func New(n *imaging.Normalizer) *Compositor {
	return &Compositor{normalizer: n}
}

// MakeHexicon is Crop with the side count fixed to 6.
func (c *Compositor) MakeHexicon(ctx context.Context, req CropRequest) (*imaging.Bitmap, error) {
	req.Sides = 6
	return c.Crop(ctx, req)
}

// Crop produces the bordered polygon crop described by req. The returned
// bitmap is RGBA with alpha exactly 0 outside the (bordered) polygon,
// full opacity inside, and coverage-proportional values only along the
// antialiased boundary. Upstream failures (ingestion, color analysis,
// geometry) propagate unchanged; there is no partial result.
func (c *Compositor) Crop(ctx context.Context, req CropRequest) (*imaging.Bitmap, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	src, err := c.normalizer.Normalize(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	canvasW, canvasH := req.CanvasWidth, req.CanvasHeight
	if canvasW == 0 {
		side := src.Width()
		if src.Height() < side {
			side = src.Height()
		}
		canvasW, canvasH = side, side
	}

	radius := float64(minInt(canvasW, canvasH))/2 - float64(req.Padding)
	if radius <= 0 {
		return nil, fmt.Errorf("crop padding %d leaves radius %.1f on %dx%d canvas: %w",
			req.Padding, radius, canvasW, canvasH, geometry.ErrInvalidGeometry)
	}
	innerRadius := radius
	if req.Border.Width > 0 {
		innerRadius = radius - float64(req.Border.Width)
		if innerRadius <= 0 {
			return nil, fmt.Errorf("crop border width %d consumes the whole radius %.1f: %w",
				req.Border.Width, radius, ErrInvalidParameter)
		}
	}

	// Border color resolution reads the source image and has no data
	// dependency on the geometry branch, so when it is needed it runs
	// alongside vertex and mask computation.
	type colorResult struct {
		color colors.Color
		err   error
	}
	var colorCh chan colorResult
	if req.Border.Width > 0 && req.Border.Color.Auto() {
		colorCh = make(chan colorResult, 1)
		go func(bmp *imaging.Bitmap, preferDark bool) {
			dominant, err := colors.ExtractDominantColor(bmp)
			if err != nil {
				colorCh <- colorResult{err: err}
				return
			}
			colorCh <- colorResult{color: colors.ContrastingColor(dominant, preferDark)}
		}(src, req.PreferDark)
	}

	cx := float64(canvasW)/2 + float64(req.ShiftX)
	cy := float64(canvasH)/2 + float64(req.ShiftY)

	outerVertices, err := geometry.Vertices(req.Sides, cx, cy, radius, req.RotationDeg)
	if err != nil {
		return nil, err
	}
	outerMask, err := raster.Mask(outerVertices, canvasW, canvasH)
	if err != nil {
		return nil, err
	}

	fitted := dimaging.Fill(src.NRGBA(), canvasW, canvasH, dimaging.Center, dimaging.Lanczos)

	out := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))

	if req.Border.Width > 0 {
		innerVertices, err := geometry.Vertices(req.Sides, cx, cy, innerRadius, req.RotationDeg)
		if err != nil {
			return nil, err
		}
		innerMask, err := raster.Mask(innerVertices, canvasW, canvasH)
		if err != nil {
			return nil, err
		}

		borderColor := req.Border.Color.Fixed()
		if colorCh != nil {
			res := <-colorCh
			if res.err != nil {
				return nil, res.err
			}
			borderColor = res.color
		}

		// Fill the whole outer polygon with the border color, then lay
		// the source over it through the inner mask; the exposed ring
		// between the two boundaries stays border-colored.
		draw.DrawMask(out, out.Bounds(), image.NewUniform(borderColor.NRGBA()), image.Point{},
			outerMask, image.Point{}, draw.Src)
		draw.DrawMask(out, out.Bounds(), fitted, image.Point{},
			innerMask, image.Point{}, draw.Over)
	} else {
		draw.DrawMask(out, out.Bounds(), fitted, image.Point{},
			outerMask, image.Point{}, draw.Src)
	}

	return imaging.BitmapFromImage(out), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
