package format

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/jsvensson/paletteramp/internal/color"
	"github.com/jsvensson/paletteramp/internal/ramp"
)

// Scaffold returns a starter ramp file: a palette holding base and one ramp
// named name with the default channels.
func Scaffold(name string, base color.Color) []byte {
	cfg := ramp.NewConfig()
	cfg.Name = name
	cfg.BaseColor = base

	f := hclwrite.NewEmptyFile()
	body := f.Body()

	palette := body.AppendNewBlock("palette", nil).Body()
	palette.SetAttributeValue("base", cty.StringVal(base.Hex()))
	body.AppendNewline()

	AppendRamp(body, cfg, hcl.Traversal{
		hcl.TraverseRoot{Name: "palette"},
		hcl.TraverseAttr{Name: "base"},
	})
	return hclwrite.Format(f.Bytes())
}

// AppendRamp writes cfg as a ramp block. When baseRef is non-nil the base
// attribute references it instead of holding a literal.
func AppendRamp(body *hclwrite.Body, cfg ramp.Config, baseRef hcl.Traversal) {
	r := body.AppendNewBlock("ramp", []string{cfg.Name}).Body()
	if baseRef != nil {
		r.SetAttributeTraversal("base", baseRef)
	} else {
		r.SetAttributeValue("base", cty.StringVal(cfg.BaseColor.Hex()))
	}
	r.SetAttributeValue("steps", cty.NumberIntVal(int64(cfg.TotalSteps)))
	format := cfg.Format
	if format == "" {
		format = color.FormatHex
	}
	r.SetAttributeValue("format", cty.StringVal(string(format)))
	r.AppendNewline()

	appendChannel(r, "lightness", cfg.Lightness)
	appendChannel(r, "chroma", cfg.Chroma)
	appendChannel(r, "saturation", cfg.Saturation)

	if cfg.Tint != nil {
		t := r.AppendNewBlock("tint", nil).Body()
		t.SetAttributeValue("color", cty.StringVal(cfg.Tint.Color.Hex()))
		t.SetAttributeValue("opacity", cty.NumberFloatVal(cfg.Tint.Opacity))
		if cfg.Tint.Mode != "" {
			t.SetAttributeValue("mode", cty.StringVal(string(cfg.Tint.Mode)))
		}
	}

	for _, s := range cfg.Swatches {
		if !s.Locked || s.Color == "" {
			continue
		}
		l := r.AppendNewBlock("lock", nil).Body()
		l.SetAttributeValue("index", cty.NumberIntVal(int64(s.Index)))
		l.SetAttributeValue("color", cty.StringVal(s.Color))
	}
}

func appendChannel(body *hclwrite.Body, name string, ch ramp.Channel) {
	b := body.AppendNewBlock(name, nil).Body()
	if ch.Advanced {
		b.SetAttributeValue("start", cty.NumberFloatVal(ch.Start))
		b.SetAttributeValue("end", cty.NumberFloatVal(ch.End))
		return
	}
	b.SetAttributeValue("range", cty.NumberFloatVal(ch.Range))
}
