// Package theme exposes palette colors and color functions to HCL
// expressions in ramp files.
package theme

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/paletteramp/internal/blend"
	"github.com/jsvensson/paletteramp/internal/color"
	"github.com/jsvensson/paletteramp/internal/validate"
)

// ResolveColor extracts a color string from a cty.Value.
// If the value is a string, return it directly.
// If the value is an object, extract the "color" key.
func ResolveColor(val cty.Value) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", errors.New("color is null or unknown")
	}
	if val.Type() == cty.String {
		return val.AsString(), nil
	}
	if val.Type().IsObjectType() {
		if val.Type().HasAttribute("color") {
			colorVal := val.GetAttr("color")
			if colorVal.Type() == cty.String {
				return colorVal.AsString(), nil
			}
		}
		return "", fmt.Errorf("object has no 'color' attribute; reference a specific child or add a color attribute")
	}
	return "", fmt.Errorf("expected string or object with color attribute, got %s", val.Type().FriendlyName())
}

// ParseColor validates a color literal of any supported notation.
func ParseColor(s string) (color.Color, error) {
	res := validate.ValidateColor(s)
	if !res.IsValid {
		return color.Color{}, fmt.Errorf("%w: %s", color.ErrInvalid, res.Error)
	}
	return res.Color()
}

// NodeToCty converts a color.Node to a cty.Value for HCL evaluation context.
// Leaf nodes (no children) become cty.StringVal.
// Nodes with children become cty.ObjectVal, with "color" as a sibling key if the node has its own color.
func NodeToCty(node *color.Node) cty.Value {
	if node == nil {
		return cty.EmptyObjectVal
	}
	if node.Children == nil {
		if node.Color != nil {
			return cty.StringVal(node.Color.Hex())
		}
		return cty.EmptyObjectVal
	}

	vals := make(map[string]cty.Value, len(node.Children)+1)

	if node.Color != nil {
		vals["color"] = cty.StringVal(node.Color.Hex())
	}

	keys := make([]string, 0, len(node.Children))
	for k := range node.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		vals[k] = NodeToCty(node.Children[k])
	}

	return cty.ObjectVal(vals)
}

func number(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

// adjustFunc builds a (color, percentage) -> hex function.
func adjustFunc(description string, adjust func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: description,
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
			{
				Name: "percentage",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := ParseColor(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(adjust(c, number(args[1])).Hex()), nil
		},
	})
}

// MakeBrightenFunc creates an HCL function that brightens a color.
// Usage: brighten("#hex", 0.1) or brighten(palette.color, 0.1)
func MakeBrightenFunc() function.Function {
	return adjustFunc("Brightens a color by the given percentage (-1.0 to 1.0)", color.Brighten)
}

// MakeDarkenFunc creates an HCL function that darkens a color.
// Usage: darken("#hex", 0.1) or darken(palette.color, 0.1)
func MakeDarkenFunc() function.Function {
	return adjustFunc("Darkens a color by the given percentage (0.0 to 1.0)", color.Darken)
}

// MakeHSLFunc creates an HCL function building a color from HSL components.
// Usage: hsl(217, 91, 60). Hue wraps, saturation and lightness clamp to 0-100.
func MakeHSLFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a color from hue (degrees), saturation and lightness (0-100)",
		Params: []function.Parameter{
			{Name: "hue", Type: cty.Number},
			{Name: "saturation", Type: cty.Number},
			{Name: "lightness", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c := color.FromHSL(number(args[0]), color.ClampPercent(number(args[1]))/100, color.ClampPercent(number(args[2]))/100)
			return cty.StringVal(c.Hex()), nil
		},
	})
}

// MakeOKLCHFunc creates an HCL function building a color from OKLCH
// components. Usage: oklch(0.62, 0.19, 260). Out-of-gamut input is mapped
// into sRGB.
func MakeOKLCHFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a color from OKLCH lightness (0-1), chroma and hue (degrees)",
		Params: []function.Parameter{
			{Name: "lightness", Type: cty.Number},
			{Name: "chroma", Type: cty.Number},
			{Name: "hue", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			l, c := color.OKLCHComponents(number(args[0]), color.UnitNone, number(args[1]), color.UnitNone)
			return cty.StringVal(color.FromOKLCH(l, c, number(args[2])).Hex()), nil
		},
	})
}

// MakeBlendFunc creates an HCL function compositing one color over another.
// Usage: blend(palette.base, "#fe0000", 40, "color-burn")
func MakeBlendFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Blends a tint over a base color with an opacity (0-100) and blend mode",
		Params: []function.Parameter{
			{Name: "base", Type: cty.String},
			{Name: "tint", Type: cty.String},
			{Name: "opacity", Type: cty.Number},
			{Name: "mode", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			base, err := ParseColor(args[0].AsString())
			if err != nil {
				return cty.NilVal, fmt.Errorf("base: %w", err)
			}
			tint, err := ParseColor(args[1].AsString())
			if err != nil {
				return cty.NilVal, fmt.Errorf("tint: %w", err)
			}
			mode, ok := blend.ParseMode(args[3].AsString())
			if !ok {
				return cty.NilVal, fmt.Errorf("unknown blend mode %q", args[3].AsString())
			}
			return cty.StringVal(blend.Composite(base, tint, number(args[2]), mode).Hex()), nil
		},
	})
}

// Functions returns every color function available in ramp files.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"brighten": MakeBrightenFunc(),
		"darken":   MakeDarkenFunc(),
		"hsl":      MakeHSLFunc(),
		"oklch":    MakeOKLCHFunc(),
		"blend":    MakeBlendFunc(),
	}
}

// BuildEvalContext creates an HCL evaluation context with palette variables
// and the color functions.
func BuildEvalContext(palette *color.Node) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": NodeToCty(palette),
		},
		Functions: Functions(),
	}
}
