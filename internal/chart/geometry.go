package chart

import "math"

// Width returns the half-width, in columns, of the circle on scanline y.
// The row spans the columns -Width..Width.
func Width(radius, y, aspectRatio int) int {
	val := radius*radius - y*y
	width := int(math.Round(math.Sqrt(float64(val * aspectRatio))))
	if width == 0 {
		return capWidth(radius, aspectRatio)
	}
	return width
}

// capWidth is the width used for the top and bottom rows when the exact
// value rounds to zero. Without it stretched circles end in a single dot.
// The divisors were tuned by eye for the aspect ratios 1 to 5 and do not
// follow from the geometry.
func capWidth(radius, aspectRatio int) int {
	switch {
	case aspectRatio <= 1:
		return 0
	case aspectRatio == 2:
		return radius / (aspectRatio * 2)
	default:
		return radius / aspectRatio
	}
}

// CenterX returns the column of the circle's vertical axis, counted from the
// left edge of the output. It is also where the legend gutter starts from.
func CenterX(radius, aspectRatio int) int {
	return int(math.Round(float64(radius) * math.Sqrt(float64(aspectRatio))))
}
