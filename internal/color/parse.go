package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the suffix attached to a numeric color component.
type Unit int

const (
	UnitNone Unit = iota
	UnitPercent
	UnitDegrees
)

// ParseComponent parses a numeric color component such as "91%", "217deg",
// "217°" or "0.62". Surrounding whitespace is ignored.
func ParseComponent(s string) (float64, Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	unit := UnitNone
	switch {
	case strings.HasSuffix(s, "%"):
		unit, s = UnitPercent, strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "deg"):
		unit, s = UnitDegrees, strings.TrimSuffix(s, "deg")
	case strings.HasSuffix(s, "°"):
		unit, s = UnitDegrees, strings.TrimSuffix(s, "°")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, unit, fmt.Errorf("%w: empty component", ErrInvalid)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, unit, fmt.Errorf("%w: %q is not a number", ErrInvalid, s)
	}
	return v, unit, nil
}

// Parse parses any supported color literal: hex (#rgb, #rrggbb, #rrggbbaa),
// hsl(h, s%, l%), oklch(l c h) and rgb(r, g, b).
func Parse(text string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch {
	case s == "":
		return Color{}, fmt.Errorf("%w: empty color", ErrInvalid)
	case strings.HasPrefix(s, "hsl"):
		args, err := functionArgs(s, "hsl", "hsla")
		if err != nil {
			return Color{}, err
		}
		return parseHSLArgs(args)
	case strings.HasPrefix(s, "oklch"):
		args, err := functionArgs(s, "oklch")
		if err != nil {
			return Color{}, err
		}
		return parseOKLCHArgs(args)
	case strings.HasPrefix(s, "rgb"):
		args, err := functionArgs(s, "rgb", "rgba")
		if err != nil {
			return Color{}, err
		}
		return parseRGBArgs(args)
	default:
		return ParseHex(s)
	}
}

// functionArgs splits "name(a, b, c / alpha)" into its first three arguments.
// Commas and whitespace both separate arguments; a trailing alpha is dropped.
func functionArgs(s string, names ...string) ([]string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("%w: %q is missing parentheses", ErrInvalid, s)
	}
	name := strings.TrimSpace(s[:open])
	known := false
	for _, n := range names {
		if name == n {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: unknown color function %q", ErrInvalid, name)
	}

	inner := s[open+1 : len(s)-1]
	if slash := strings.IndexByte(inner, '/'); slash >= 0 {
		inner = inner[:slash]
	}
	args := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	switch len(args) {
	case 3:
		return args, nil
	case 4:
		return args[:3], nil
	default:
		return nil, fmt.Errorf("%w: %s() takes 3 components, got %d", ErrInvalid, name, len(args))
	}
}

func parseHSLArgs(args []string) (Color, error) {
	h, _, err := ParseComponent(args[0])
	if err != nil {
		return Color{}, fmt.Errorf("hue: %w", err)
	}
	s, _, err := ParseComponent(args[1])
	if err != nil {
		return Color{}, fmt.Errorf("saturation: %w", err)
	}
	l, _, err := ParseComponent(args[2])
	if err != nil {
		return Color{}, fmt.Errorf("lightness: %w", err)
	}
	return FromHSL(h, ClampPercent(s)/100, ClampPercent(l)/100), nil
}

func parseOKLCHArgs(args []string) (Color, error) {
	l, lu, err := ParseComponent(args[0])
	if err != nil {
		return Color{}, fmt.Errorf("lightness: %w", err)
	}
	c, cu, err := ParseComponent(args[1])
	if err != nil {
		return Color{}, fmt.Errorf("chroma: %w", err)
	}
	h, _, err := ParseComponent(args[2])
	if err != nil {
		return Color{}, fmt.Errorf("hue: %w", err)
	}
	l, c = OKLCHComponents(l, lu, c, cu)
	return FromOKLCH(l, c, h), nil
}

// OKLCHComponents resolves raw OKLCH lightness and chroma into their
// canonical ranges: lightness [0, 1] (a percentage is divided by 100) and
// chroma [0, MaxChroma] (100% is MaxChroma).
func OKLCHComponents(l float64, lu Unit, c float64, cu Unit) (float64, float64) {
	if lu == UnitPercent {
		l /= 100
	}
	if cu == UnitPercent {
		c = c / 100 * MaxChroma
	}
	return clamp01(l), math.Min(MaxChroma, math.Max(0, c))
}

func parseRGBArgs(args []string) (Color, error) {
	var ch [3]float64
	for i, a := range args {
		v, u, err := ParseComponent(a)
		if err != nil {
			return Color{}, fmt.Errorf("channel %d: %w", i, err)
		}
		if u == UnitPercent {
			v = v / 100 * 255
		}
		ch[i] = math.Min(255, math.Max(0, v)) / 255
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ClampPercent clamps v to [0, 100]. NaN maps to 0.
func ClampPercent(v float64) float64 {
	return clamp01(zeroNaN(v)/100) * 100
}
