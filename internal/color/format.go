package color

import (
	"fmt"
	"strings"
)

// Format names a textual color representation.
type Format string

const (
	FormatHex   Format = "hex"
	FormatHSL   Format = "hsl"
	FormatRGB   Format = "rgb"
	FormatOKLCH Format = "oklch"
)

// Formats lists every supported output format.
var Formats = []Format{FormatHex, FormatHSL, FormatRGB, FormatOKLCH}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown color format %q (valid: hex, hsl, rgb, oklch)", s)
}

// Render formats c in this format. Unknown formats render as hex.
func (f Format) Render(c Color) string {
	switch f {
	case FormatHSL:
		return c.HSLString()
	case FormatRGB:
		return c.RGB()
	case FormatOKLCH:
		return c.OKLCHString()
	default:
		return c.Hex()
	}
}
