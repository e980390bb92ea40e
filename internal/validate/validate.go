// Package validate turns user-entered color text into canonical color
// strings. It never panics and never returns an error value: failures are
// reported through Result so callers can decide whether to fall back or
// reject the edit.
package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/paletteramp/internal/color"
)

// Result is the outcome of validating one color input.
type Result struct {
	IsValid        bool
	FormattedColor string
	Error          string
}

func invalid(msg string) Result {
	return Result{Error: msg}
}

func valid(formatted string) Result {
	return Result{IsValid: true, FormattedColor: formatted}
}

// Color parses the formatted color of a valid result.
func (r Result) Color() (color.Color, error) {
	if !r.IsValid {
		return color.Color{}, errors.New(r.Error)
	}
	return color.Parse(r.FormattedColor)
}

// ValidateHexValue accepts 3, 6 or 8 hex digits with or without a leading #
// and normalizes to lowercase #rrggbb. Alpha is dropped.
func ValidateHexValue(text string) Result {
	s := strings.TrimSpace(text)
	if s == "" {
		return invalid("hex color is empty")
	}
	c, err := color.ParseHex(s)
	if err != nil {
		return invalid("invalid hex color " + strconv.Quote(text) + ": expected #rgb, #rrggbb or #rrggbbaa")
	}
	return valid(c.Hex())
}

// ValidateHSLValues validates hue, saturation and lightness given as text.
// Unit suffixes (deg, °, %) are allowed. Hue wraps into [0, 360);
// saturation and lightness clamp to [0, 100].
func ValidateHSLValues(h, s, l string) Result {
	hv, msg := component("hue", h)
	if msg != "" {
		return invalid(msg)
	}
	sv, msg := component("saturation", s)
	if msg != "" {
		return invalid(msg)
	}
	lv, msg := component("lightness", l)
	if msg != "" {
		return invalid(msg)
	}
	return valid(FormatHSL(color.NormalizeHue(hv), color.ClampPercent(sv), color.ClampPercent(lv)))
}

// ValidateOKLCHValues validates OKLCH lightness, chroma and hue given as text.
// Lightness clamps to [0, 1] (a percentage is divided by 100), chroma to
// [0, color.MaxChroma] and hue wraps into [0, 360). Colors outside sRGB are
// gamut-mapped, not rejected.
func ValidateOKLCHValues(l, c, h string) Result {
	lv, lu, err := color.ParseComponent(l)
	if err != nil {
		return invalid("lightness: " + reason(l))
	}
	cv, cu, err := color.ParseComponent(c)
	if err != nil {
		return invalid("chroma: " + reason(c))
	}
	hv, msg := component("hue", h)
	if msg != "" {
		return invalid(msg)
	}
	lv, cv = color.OKLCHComponents(lv, lu, cv, cu)
	mapped := color.FromOKLCH(lv, cv, hv)
	return valid(mapped.OKLCHString())
}

// ValidateColor validates a complete color literal of any supported syntax
// and returns it in its own notation: hex as #rrggbb, hsl() and oklch() in
// canonical form, rgb() as rgb(r, g, b).
func ValidateColor(text string) Result {
	s := strings.ToLower(strings.TrimSpace(text))
	switch {
	case s == "":
		return invalid("color is empty")
	case strings.HasPrefix(s, "hsl"), strings.HasPrefix(s, "oklch"), strings.HasPrefix(s, "rgb"):
		c, err := color.Parse(s)
		if err != nil {
			return invalid(err.Error())
		}
		switch {
		case strings.HasPrefix(s, "hsl"):
			h, sat, l := c.HSL()
			return valid(FormatHSL(h, sat*100, l*100))
		case strings.HasPrefix(s, "oklch"):
			return valid(c.OKLCHString())
		default:
			return valid(c.RGB())
		}
	default:
		return ValidateHexValue(s)
	}
}

// FormatHSL formats already-clamped HSL values with at most one decimal,
// e.g. hsl(217.5,36%,4.2%).
func FormatHSL(h, s, l float64) string {
	hue := round1(h)
	if hue >= 360 {
		hue = 0
	}
	return "hsl(" + trim(hue) + "," + trim(round1(s)) + "%," + trim(round1(l)) + "%)"
}

func component(name, text string) (float64, string) {
	v, _, err := color.ParseComponent(text)
	if err != nil {
		return 0, name + ": " + reason(text)
	}
	return v, ""
}

func reason(text string) string {
	if strings.TrimSpace(text) == "" {
		return "value is empty"
	}
	return strconv.Quote(text) + " is not a number"
}

func round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}

func trim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
