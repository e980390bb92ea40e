package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalid is wrapped by every parse failure in this package.
var ErrInvalid = errors.New("invalid color")

// Color is a full-precision sRGB color with components nominally in [0, 1].
// Components are never rounded while a color is being computed; rounding
// happens once, when the color is formatted.
type Color struct {
	R, G, B float64
}

// Node represents a palette entry that can be both a color and a namespace.
// Color is nil for namespace-only nodes (groups without a color attribute).
// Children is nil for leaf nodes (flat color attributes).
type Node struct {
	Color    *Color
	Children map[string]*Node
}

// Lookup resolves a dot-path (as segments) to a Color.
// Returns an error if the path is not found or the target node has no color.
func (n *Node) Lookup(path []string) (Color, error) {
	current := n
	for _, part := range path {
		if current.Children == nil {
			return Color{}, fmt.Errorf("path not found: %s is a leaf, cannot traverse further", part)
		}
		child, ok := current.Children[part]
		if !ok {
			return Color{}, fmt.Errorf("path not found: %q does not exist", part)
		}
		current = child
	}
	if current.Color == nil {
		return Color{}, fmt.Errorf("path is a group, not a color; add a color attribute or reference a specific child")
	}
	return *current.Color, nil
}

// RGB8 builds a Color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// FromColorful converts a go-colorful color.
func FromColorful(c colorful.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

// Colorful returns the color as a go-colorful value.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// IsValid reports whether every component is a finite number.
func (c Color) IsValid() bool {
	for _, v := range [...]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sanitized returns the color with NaN components replaced by 0 and every
// component clamped to [0, 1].
func (c Color) Sanitized() Color {
	return Color{R: sanitize(c.R), G: sanitize(c.G), B: sanitize(c.B)}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp01(v)
}

// RGB255 returns the color rounded to 8-bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return c.Sanitized().Colorful().RGB255()
}

// ParseHex parses a hex color such as "#eb6f92". The leading # is optional and
// 3, 6 and 8 digit forms are accepted; an alpha channel is discarded.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	case 8:
		s = s[:6]
	default:
		return Color{}, fmt.Errorf("%w: hex %q must have 3, 6 or 8 digits", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: hex %q contains non-hex characters", ErrInvalid, s)
	}
	return RGB8(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// MustParseHex is like ParseHex but panics on error. Intended for constants.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

// Hex returns the color as a lowercase hex string with leading #, e.g. "#eb6f92".
func (c Color) Hex() string {
	return c.Sanitized().Colorful().Hex()
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
