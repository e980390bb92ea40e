package color

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// MaxChroma bounds OKLCH chroma; sRGB never needs more than ~0.37.
	MaxChroma = 0.4

	gamutEpsilon    = 1e-6
	achromaticLimit = 1e-4
)

// ToOKLCH converts a Color to OKLCH components.
// L is lightness [0, 1], chroma is colorfulness [0, ~0.37], hue is in degrees [0, 360).
func (c Color) ToOKLCH() (l, chroma, hue float64) {
	l, chroma, hue = c.Sanitized().Colorful().OkLch()
	if chroma < achromaticLimit {
		return l, 0, 0
	}
	return l, chroma, NormalizeHue(hue)
}

// FromOKLCH converts OKLCH components to a Color inside the sRGB gamut.
// Out-of-gamut input is mapped by lowering chroma at constant lightness and hue;
// whatever residue remains after the search is clamped.
func FromOKLCH(l, chroma, hue float64) Color {
	l = clamp01(zeroNaN(l))
	chroma = math.Max(0, zeroNaN(chroma))
	hue = NormalizeHue(hue)

	c := oklchToRGB(l, chroma, hue)
	if c.inGamut() {
		return c.Sanitized()
	}

	lo, hi := 0.0, chroma
	for hi-lo > gamutEpsilon {
		mid := (lo + hi) / 2
		if oklchToRGB(l, mid, hue).inGamut() {
			lo = mid
		} else {
			hi = mid
		}
	}
	return oklchToRGB(l, lo, hue).Sanitized()
}

// OKLCHString formats the color as "oklch(L C H)" with lightness and chroma
// to three decimals and hue to one.
func (c Color) OKLCHString() string {
	l, ch, h := c.ToOKLCH()
	return FormatOKLCHComponents(l, ch, h)
}

// FormatOKLCHComponents formats raw OKLCH components without conversion.
func FormatOKLCHComponents(l, chroma, hue float64) string {
	return fmt.Sprintf("oklch(%s %s %s)", trimFloat(l, 3), trimFloat(chroma, 3), trimFloat(hue, 1))
}

// StepLightness returns a new Color with the given absolute OKLCH lightness,
// preserving the original color's hue and chroma. Lightness should be in [0, 1].
func StepLightness(c Color, lightness float64) Color {
	_, chroma, hue := c.ToOKLCH()
	return FromOKLCH(lightness, chroma, hue)
}

func (c Color) inGamut() bool {
	for _, v := range [...]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || v < -gamutEpsilon || v > 1+gamutEpsilon {
			return false
		}
	}
	return true
}

// oklchToRGB leaves components unclamped so the gamut search can see them.
func oklchToRGB(l, chroma, hue float64) Color {
	return FromColorful(colorful.OkLch(l, chroma, hue))
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// trimFloat rounds v to the given number of decimals and drops trailing zeros.
func trimFloat(v float64, decimals int) string {
	p := math.Pow(10, float64(decimals))
	r := math.Round(zeroNaN(v)*p) / p
	if r == 0 {
		r = 0 // normalizes -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
