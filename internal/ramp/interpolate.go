package ramp

import (
	"math"

	"github.com/jsvensson/paletteramp/internal/color"
)

// ValueAt returns the channel's value at step of a total-step ramp.
//
// Advanced channels interpolate linearly from Start to End. Simple channels
// return the signed offset of step from anchor, scaled so the whole ramp
// spans Range.
func (ch Channel) ValueAt(step, total, anchor int) float64 {
	if ch.Advanced {
		return ch.Start + position(step, total)*(ch.End-ch.Start)
	}
	if total <= 1 {
		return 0
	}
	return float64(step-anchor) * ch.Range / float64(total-1)
}

// position is t in [0, 1] for step of total. A single-step ramp sits at 0.
func position(step, total int) float64 {
	if total <= 1 {
		return 0
	}
	return float64(step) / float64(total-1)
}

// AnchorStep is the step where a base color of the given HSL lightness
// (0–1) sits in a simple-mode ramp.
func AnchorStep(lightness float64, total int) int {
	if total <= 1 || math.IsNaN(lightness) {
		return 0
	}
	a := int(math.Round(lightness * float64(total-1)))
	return min(max(a, 0), total-1)
}

// Interpolator resolves the HSL components of every step of one ramp.
type Interpolator struct {
	cfg    Config
	h      float64 // degrees
	s, l   float64 // percent
	anchor int
}

// NewInterpolator prepares the base color's HSL components and anchor step.
func NewInterpolator(cfg Config) Interpolator {
	h, s, l := cfg.BaseColor.HSL()
	return Interpolator{
		cfg:    cfg,
		h:      h,
		s:      s * 100,
		l:      l * 100,
		anchor: AnchorStep(l, cfg.TotalSteps),
	}
}

// At returns the raw hue (degrees), saturation and lightness (percent) of
// step. Values are unclamped; non-finite channel parameters surface here as
// NaN or infinities.
func (ip Interpolator) At(step int) (h, s, l float64) {
	n := ip.cfg.TotalSteps

	lv := ip.cfg.Lightness.ValueAt(step, n, ip.anchor)
	if ip.cfg.Lightness.Advanced {
		l = lv
	} else {
		l = ip.l + lv
	}

	// The chroma channel shifts hue in both modes.
	h = ip.h + ip.cfg.Chroma.ValueAt(step, n, ip.anchor)

	sv := ip.cfg.Saturation.ValueAt(step, n, ip.anchor)
	if ip.cfg.Saturation.Advanced {
		s = 100 - sv
	} else {
		s = ip.s - math.Abs(sv)
	}
	return h, s, l
}

// Color resolves step to a color, clamping saturation and lightness to
// [0, 100] and wrapping hue.
func (ip Interpolator) Color(step int) (color.Color, error) {
	h, s, l := ip.At(step)
	if !finite(h) || !finite(s) || !finite(l) {
		return color.Color{}, &FallbackError{Step: step, Lightness: l, Reason: "channel value is not a number"}
	}
	return color.FromHSL(h, color.ClampPercent(s)/100, color.ClampPercent(l)/100), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
