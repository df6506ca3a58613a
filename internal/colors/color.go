package colors

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Sentinel errors for color parsing and analysis.
var (
	// ErrUnknownColor indicates a string that is neither a hex color nor
	// a recognized color name.
	ErrUnknownColor = errors.New("unknown color")

	// ErrRange indicates a channel tuple with values outside [0, 255]
	// or the wrong number of channels.
	ErrRange = errors.New("channel value out of range")

	// ErrNoOpaquePixels indicates a fully transparent image, which has
	// no dominant color to extract.
	ErrNoOpaquePixels = errors.New("image has no opaque pixels")
)

// Color is an 8-bit RGBA color. Alpha defaults to 255 for values parsed
// from opaque representations (hex strings, names, 3-tuples).
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Pure extremes used by the contrast policy.
var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// RGBA implements image/color.Color, so a Color can be handed directly to
// stdlib drawing primitives.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA converts to the stdlib non-premultiplied representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex formats the color as "#RRGGBB". Alpha is excluded.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// named is the fixed table of recognized color names (CSS basic palette
// plus a few common extras). Read-only after init.
var named = map[string]Color{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"aqua":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"fuchsia": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"silver":  {192, 192, 192, 255},
	"maroon":  {128, 0, 0, 255},
	"olive":   {128, 128, 0, 255},
	"navy":    {0, 0, 128, 255},
	"purple":  {128, 0, 128, 255},
	"teal":    {0, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
	"pink":    {255, 192, 203, 255},
	"brown":   {165, 42, 42, 255},
}

// Parse converts a color string to a Color. Accepted forms are hex
// ("#RRGGBB" or the short "#RGB") and the names in the recognized table,
// matched case-insensitively. Anything else fails with ErrUnknownColor.
func Parse(s string) (Color, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "#") {
		return parseHex(trimmed)
	}
	if c, ok := named[strings.ToLower(trimmed)]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("parse %q: %w", s, ErrUnknownColor)
}

// FromValues converts a channel tuple to a Color. The tuple must have 3
// (RGB) or 4 (RGBA) entries, each in [0, 255]; otherwise ErrRange.
func FromValues(values []int) (Color, error) {
	if len(values) != 3 && len(values) != 4 {
		return Color{}, fmt.Errorf("tuple has %d channels, want 3 or 4: %w", len(values), ErrRange)
	}
	for i, v := range values {
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("channel %d is %d: %w", i, v, ErrRange)
		}
	}
	c := Color{R: uint8(values[0]), G: uint8(values[1]), B: uint8(values[2]), A: 255}
	if len(values) == 4 {
		c.A = uint8(values[3])
	}
	return c, nil
}

// ParseValue parses the loosely typed color values arriving from JSON
// tool arguments: a string is parsed as hex or name, a numeric slice as a
// channel tuple.
func ParseValue(v interface{}) (Color, error) {
	switch value := v.(type) {
	case string:
		return Parse(value)
	case []int:
		return FromValues(value)
	case []interface{}:
		values := make([]int, 0, len(value))
		for _, entry := range value {
			num, ok := entry.(float64)
			if !ok || num != float64(int(num)) {
				return Color{}, fmt.Errorf("non-integer channel %v: %w", entry, ErrRange)
			}
			values = append(values, int(num))
		}
		return FromValues(values)
	default:
		return Color{}, fmt.Errorf("unsupported color value %T: %w", v, ErrUnknownColor)
	}
}

func parseHex(s string) (Color, error) {
	digits := s[1:]
	var r, g, b uint8
	switch len(digits) {
	case 6:
		if _, err := fmt.Sscanf(strings.ToUpper(digits), "%02X%02X%02X", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("parse %q: %w", s, ErrUnknownColor)
		}
	case 3:
		var rn, gn, bn uint8
		if _, err := fmt.Sscanf(strings.ToUpper(digits), "%1X%1X%1X", &rn, &gn, &bn); err != nil {
			return Color{}, fmt.Errorf("parse %q: %w", s, ErrUnknownColor)
		}
		r, g, b = rn*17, gn*17, bn*17
	default:
		return Color{}, fmt.Errorf("parse %q: %w", s, ErrUnknownColor)
	}
	return Color{R: r, G: g, B: b, A: 255}, nil
}
