package blend

import "math"

func darken(cb, cs float64) float64 { return math.Min(cb, cs) }

func lighten(cb, cs float64) float64 { return math.Max(cb, cs) }

func multiply(cb, cs float64) float64 { return cb * cs }

func screen(cb, cs float64) float64 { return cb + cs - cb*cs }

func plusDarker(cb, cs float64) float64 { return math.Max(0, cb+cs-1) }

func plusLighter(cb, cs float64) float64 { return math.Min(1, cb+cs) }

func difference(cb, cs float64) float64 { return math.Abs(cb - cs) }

func exclusion(cb, cs float64) float64 { return cb + cs - 2*cb*cs }

func overlay(cb, cs float64) float64 { return hardLight(cs, cb) }

// colorBurn tests a black source before a white backdrop, so a white step
// under a channel-less tint still burns to black.
func colorBurn(cb, cs float64) float64 {
	switch {
	case cs == 0:
		return 0
	case cb == 1:
		return 1
	}
	return 1 - math.Min(1, (1-cb)/cs)
}

func colorDodge(cb, cs float64) float64 {
	switch {
	case cb == 0:
		return 0
	case cs == 1:
		return 1
	}
	return math.Min(1, cb/(1-cs))
}

func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return multiply(cb, 2*cs)
	}
	return screen(cb, 2*cs-1)
}

func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}
