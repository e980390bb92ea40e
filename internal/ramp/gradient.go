package ramp

import (
	"github.com/jsvensson/paletteramp/internal/color"
)

// HueTrack sweeps the full hue wheel at the base color's saturation and
// lightness.
func (e *Engine) HueTrack(base color.Color, stops int) []color.Color {
	_, s, l := base.HSL()
	return e.track("hue", stops, func(t float64) color.Color {
		return color.FromHSL(t*360, s, l)
	}, l)
}

// LightnessTrack runs from black through the base color to white, keeping
// the base's OKLCH hue and chroma where the gamut allows.
func (e *Engine) LightnessTrack(base color.Color, stops int) []color.Color {
	_, _, l := base.HSL()
	return e.track("lightness", stops, func(t float64) color.Color {
		return color.StepLightness(base, t)
	}, l)
}

// SaturationTrack runs from the fully desaturated base color to the base.
func (e *Engine) SaturationTrack(base color.Color, stops int) []color.Color {
	h, s, l := base.HSL()
	return e.track("saturation", stops, func(t float64) color.Color {
		return color.FromHSL(h, t*s, l)
	}, l)
}

// track samples at at stops evenly spaced positions in [0, 1]. Samples that
// come out invalid are replaced with a gray of the given HSL lightness.
func (e *Engine) track(name string, stops int, at func(t float64) color.Color, lightness float64) []color.Color {
	if stops <= 0 {
		return nil
	}
	out := make([]color.Color, stops)
	for i := range out {
		c := at(position(i, stops))
		if !c.IsValid() {
			fb := &FallbackError{Step: i, Lightness: lightness * 100, Reason: "invalid " + name + " track color"}
			e.log.Warningf("%s, using gray", fb)
			c = fb.Gray()
		}
		out[i] = c
	}
	return out
}
