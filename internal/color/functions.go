package color

// Brighten returns a brighter version of the given color by raising its HSL
// lightness by percentage (a fraction, e.g. 0.1). Negative values darken.
func Brighten(color Color, percentage float64) Color {
	h, s, l := color.HSL()
	return FromHSL(h, s, clamp01(l+percentage)).Sanitized()
}

// Darken returns a darker version of the given color by lowering its HSL
// lightness by percentage (a fraction, e.g. 0.1).
func Darken(color Color, percentage float64) Color {
	return Brighten(color, -percentage)
}
