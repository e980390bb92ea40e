package theme

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/jsvensson/paletteramp/internal/color"
)

func TestNodeToCty_Leaf(t *testing.T) {
	c, _ := color.ParseHex("#ff0000")
	node := &color.Node{Color: &c}
	val := NodeToCty(node)
	if val.Type() != cty.String {
		t.Fatalf("expected string, got %s", val.Type().FriendlyName())
	}
	if val.AsString() != "#ff0000" {
		t.Errorf("got %q, want %q", val.AsString(), "#ff0000")
	}
}

func TestNodeToCty_NamespaceOnly(t *testing.T) {
	low, _ := color.ParseHex("#21202e")
	node := &color.Node{
		Children: map[string]*color.Node{
			"low": {Color: &low},
		},
	}
	val := NodeToCty(node)
	if !val.Type().IsObjectType() {
		t.Fatalf("expected object, got %s", val.Type().FriendlyName())
	}
	if val.GetAttr("low").AsString() != "#21202e" {
		t.Errorf("low = %q, want %q", val.GetAttr("low").AsString(), "#21202e")
	}
}

func TestNodeToCty_ColorAndChildren(t *testing.T) {
	gray, _ := color.ParseHex("#c0c0c0")
	low, _ := color.ParseHex("#21202e")
	node := &color.Node{
		Color: &gray,
		Children: map[string]*color.Node{
			"low": {Color: &low},
		},
	}
	val := NodeToCty(node)
	if !val.Type().IsObjectType() {
		t.Fatalf("expected object, got %s", val.Type().FriendlyName())
	}
	if val.GetAttr("color").AsString() != "#c0c0c0" {
		t.Errorf("color = %q, want %q", val.GetAttr("color").AsString(), "#c0c0c0")
	}
	if val.GetAttr("low").AsString() != "#21202e" {
		t.Errorf("low = %q, want %q", val.GetAttr("low").AsString(), "#21202e")
	}
}

func TestNodeToCty_Nil(t *testing.T) {
	if val := NodeToCty(nil); !val.RawEquals(cty.EmptyObjectVal) {
		t.Errorf("NodeToCty(nil) = %#v, want empty object", val)
	}
}

func TestResolveColor_String(t *testing.T) {
	val := cty.StringVal("#ff0000")
	got, err := ResolveColor(val)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "#ff0000" {
		t.Errorf("got %q, want %q", got, "#ff0000")
	}
}

func TestResolveColor_ObjectWithColor(t *testing.T) {
	val := cty.ObjectVal(map[string]cty.Value{
		"color": cty.StringVal("#c0c0c0"),
		"low":   cty.StringVal("#21202e"),
	})
	got, err := ResolveColor(val)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "#c0c0c0" {
		t.Errorf("got %q, want %q", got, "#c0c0c0")
	}
}

func TestResolveColor_ObjectWithoutColor(t *testing.T) {
	val := cty.ObjectVal(map[string]cty.Value{
		"low": cty.StringVal("#21202e"),
	})
	_, err := ResolveColor(val)
	if err == nil {
		t.Fatal("expected error for object without color key")
	}
}

func TestResolveColor_Null(t *testing.T) {
	if _, err := ResolveColor(cty.NullVal(cty.String)); err == nil {
		t.Fatal("expected error for null value")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("hsl(0, 100%, 50%)")
	if err != nil {
		t.Fatalf("ParseColor() error: %v", err)
	}
	if c.Hex() != "#ff0000" {
		t.Errorf("ParseColor() = %s, want #ff0000", c.Hex())
	}

	_, err = ParseColor("#zzz")
	if !errors.Is(err, color.ErrInvalid) {
		t.Errorf("ParseColor(#zzz) error = %v, want color.ErrInvalid", err)
	}
}

func eval(t *testing.T, src string, ctx *hcl.EvalContext) (cty.Value, hcl.Diagnostics) {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		t.Fatalf("parsing %q: %s", src, diags.Error())
	}
	return expr.Value(ctx)
}

func TestFunctions(t *testing.T) {
	red := color.MustParseHex("#ff0000")
	palette := &color.Node{
		Children: map[string]*color.Node{
			"red": {Color: &red},
		},
	}
	ctx := BuildEvalContext(palette)

	tests := []struct {
		expr string
		want string
	}{
		{`palette.red`, "#ff0000"},
		{`brighten(palette.red, 0.1)`, "#ff3333"},
		{`darken(palette.red, 0.1)`, "#cc0000"},
		{`darken("hsl(0, 100%, 50%)", 0.1)`, "#cc0000"},
		{`hsl(0, 100, 50)`, "#ff0000"},
		{`hsl(480, 150, 50)`, "#00ff00"},
		{`oklch(1, 0, 0)`, "#ffffff"},
		{`oklch(0, 0, 0)`, "#000000"},
		{`blend("#ffffff", "#fe0000", 40, "color-burn")`, "#ff9999"},
		{`blend(palette.red, "#0000ff", 0, "multiply")`, "#ff0000"},
		{`blend("#000000", "#ffffff", 100, "Normal")`, "#ffffff"},
		{`blend("#000000", "bad", 100, "normal")`, "#bbaadd"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			val, diags := eval(t, tt.expr, ctx)
			if diags.HasErrors() {
				t.Fatalf("evaluating: %s", diags.Error())
			}
			if got := val.AsString(); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestFunctionErrors(t *testing.T) {
	ctx := BuildEvalContext(&color.Node{})

	tests := []struct {
		expr    string
		wantErr string
	}{
		{`brighten("nope", 0.1)`, "invalid color"},
		{`blend("#000000", "#ffffff", 50, "sparkle")`, "unknown blend mode"},
		{`blend("#000000", "nope", 50, "normal")`, "tint"},
		{`blend("#000000", "#12", 50, "normal")`, "tint"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, diags := eval(t, tt.expr, ctx)
			if !diags.HasErrors() {
				t.Fatal("expected an error")
			}
			if !strings.Contains(diags.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", diags.Error(), tt.wantErr)
			}
		})
	}
}
