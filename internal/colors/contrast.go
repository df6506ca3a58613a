package colors

import colorful "github.com/lucasb-eyer/go-colorful"

// RelativeLuminance computes the WCAG relative luminance of a color:
// 0.2126 R + 0.7152 G + 0.0722 B over linearized sRGB channels.
// 0 is pure black, 1 is pure white.
func RelativeLuminance(c Color) float64 {
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	r, g, b := cf.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio computes the WCAG contrast ratio between two colors,
// (L1+0.05)/(L2+0.05) with L1 the lighter luminance. The result ranges
// from 1 (identical) to 21 (black on white).
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ContrastingColor returns pure black or pure white, whichever has the
// higher contrast ratio against the reference. When the ratios tie
// exactly, preferDark picks black. Pure function: same inputs, same
// output, no I/O.
func ContrastingColor(reference Color, preferDark bool) Color {
	blackRatio := ContrastRatio(reference, Black)
	whiteRatio := ContrastRatio(reference, White)

	switch {
	case blackRatio > whiteRatio:
		return Black
	case whiteRatio > blackRatio:
		return White
	case preferDark:
		return Black
	default:
		return White
	}
}
