// Package blend composites a tint over a ramp color using the CSS
// mix-blend-mode formulas from W3C Compositing and Blending Level 1:
// https://www.w3.org/TR/compositing-1/
//
// The ramp color is the backdrop (Cb) and the tint is the source (Cs). All
// arithmetic is done on full-precision sRGB components in [0, 1].
package blend

import (
	"strings"

	"github.com/jsvensson/paletteramp/internal/color"
)

// Mode names a blend mode.
type Mode string

const (
	Normal      Mode = "normal"
	Darken      Mode = "darken"
	Multiply    Mode = "multiply"
	PlusDarker  Mode = "plus-darker"
	ColorBurn   Mode = "color-burn"
	Lighten     Mode = "lighten"
	Screen      Mode = "screen"
	PlusLighter Mode = "plus-lighter"
	ColorDodge  Mode = "color-dodge"
	Overlay     Mode = "overlay"
	SoftLight   Mode = "soft-light"
	HardLight   Mode = "hard-light"
	Difference  Mode = "difference"
	Exclusion   Mode = "exclusion"
	Hue         Mode = "hue"
	Saturation  Mode = "saturation"
	Color       Mode = "color"
	Luminosity  Mode = "luminosity"
)

// Modes lists all eighteen modes in their conventional menu order.
var Modes = []Mode{
	Normal,
	Darken, Multiply, PlusDarker, ColorBurn,
	Lighten, Screen, PlusLighter, ColorDodge,
	Overlay, SoftLight, HardLight,
	Difference, Exclusion,
	Hue, Saturation, Color, Luminosity,
}

// separable modes map each channel independently.
var separable = map[Mode]func(cb, cs float64) float64{
	Normal:      func(_, cs float64) float64 { return cs },
	Darken:      darken,
	Multiply:    multiply,
	PlusDarker:  plusDarker,
	ColorBurn:   colorBurn,
	Lighten:     lighten,
	Screen:      screen,
	PlusLighter: plusLighter,
	ColorDodge:  colorDodge,
	Overlay:     overlay,
	SoftLight:   softLight,
	HardLight:   hardLight,
	Difference:  difference,
	Exclusion:   exclusion,
}

// nonSeparable modes operate on the whole RGB triple.
var nonSeparable = map[Mode]func(cb, cs rgb) rgb{
	Hue:        hue,
	Saturation: saturation,
	Color:      colorMode,
	Luminosity: luminosity,
}

// ParseMode resolves a mode name case-insensitively. Unknown names return
// Normal and false.
func ParseMode(name string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(name)))
	if m.Valid() {
		return m, true
	}
	return Normal, false
}

// Valid reports whether m is one of the eighteen known modes.
func (m Mode) Valid() bool {
	_, sep := separable[m]
	_, nonSep := nonSeparable[m]
	return sep || nonSep
}

// Blend returns B(Cb, Cs) for the mode at full strength. Unknown modes blend
// as Normal.
func Blend(mode Mode, backdrop, source color.Color) color.Color {
	cb, cs := fromColor(backdrop), fromColor(source)
	if fn, ok := nonSeparable[mode]; ok {
		return fn(cb, cs).toColor()
	}
	fn, ok := separable[mode]
	if !ok {
		fn = separable[Normal]
	}
	return color.Color{
		R: fn(cb.r, cs.r),
		G: fn(cb.g, cs.g),
		B: fn(cb.b, cs.b),
	}
}

// Composite blends tint over base and mixes the result back with base by
// opacity (0–100): result = base*(1-o) + blended*o. With Normal this is a
// plain alpha mix of base and tint.
func Composite(base, tint color.Color, opacity float64, mode Mode) color.Color {
	o := clampOpacity(opacity)
	if o == 0 {
		return base
	}
	blended := Blend(mode, base, tint)
	return color.Color{
		R: base.R*(1-o) + blended.R*o,
		G: base.G*(1-o) + blended.G*o,
		B: base.B*(1-o) + blended.B*o,
	}
}

func clampOpacity(opacity float64) float64 {
	switch {
	case opacity != opacity: // NaN
		return 0
	case opacity <= 0:
		return 0
	case opacity >= 100:
		return 1
	}
	return opacity / 100
}
