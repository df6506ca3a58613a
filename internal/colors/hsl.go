package colors

// HSL is a color in hue/saturation/lightness space, used by the tool
// surface where HSL reads better than raw channels.
type HSL struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ToHSL converts the color to HSL. Alpha is ignored.
func (c Color) ToHSL() HSL {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}

	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	l := (max + min) / 2.0

	if max == min {
		return HSL{H: 0, S: 0, L: int(l * 100)}
	}

	var s float64
	if l < 0.5 {
		s = (max - min) / (max + min)
	} else {
		s = (max - min) / (2.0 - max - min)
	}

	var h float64
	switch max {
	case rf:
		h = (gf - bf) / (max - min)
		if gf < bf {
			h += 6
		}
	case gf:
		h = 2.0 + (bf-rf)/(max-min)
	case bf:
		h = 4.0 + (rf-gf)/(max-min)
	}
	h *= 60

	return HSL{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
