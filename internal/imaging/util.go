package imaging

import "image/color"

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// grayOf rounds and clamps a float intensity into an 8-bit gray pixel.
func grayOf(v float64) color.Gray {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return color.Gray{Y: uint8(v + 0.5)}
}
