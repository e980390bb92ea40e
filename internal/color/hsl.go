package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// whiteEpsilon absorbs the float residue HSL→RGB leaves at full lightness.
const whiteEpsilon = 1e-9

// FromHSL converts HSL components to a Color. Hue is in degrees, saturation
// and lightness in [0, 1]. No rounding or gamut clamping is applied.
func FromHSL(h, s, l float64) Color {
	return FromColorful(colorful.Hsl(NormalizeHue(h), s, l))
}

// HSL returns the hue in degrees [0, 360) and saturation and lightness in [0, 1].
// Achromatic colors report hue 0.
func (c Color) HSL() (h, s, l float64) {
	h, s, l = c.Sanitized().Colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	if math.IsNaN(s) {
		s = 0
	}
	return NormalizeHue(h), s, l
}

// HSLString formats the color as "hsl(H,S%,L%)" with every component rounded
// to an integer. Pure white is canonicalized to hsl(60,100%,100%), which is how
// the HSL conversion reports white reached through full-lightness HSL input.
func (c Color) HSLString() string {
	c = c.Sanitized()
	if c.isWhite() {
		return "hsl(60,100%,100%)"
	}
	h, s, l := c.HSL()
	hue := math.Round(h)
	if hue >= 360 {
		hue -= 360
	}
	return fmt.Sprintf("hsl(%d,%d%%,%d%%)", int(hue), int(math.Round(s*100)), int(math.Round(l*100)))
}

func (c Color) isWhite() bool {
	return c.R >= 1-whiteEpsilon && c.G >= 1-whiteEpsilon && c.B >= 1-whiteEpsilon
}

// NormalizeHue wraps a hue in degrees into [0, 360). NaN maps to 0.
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
