package blend

import (
	"math"
	"testing"

	"github.com/jsvensson/paletteramp/internal/color"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearColor(a, b color.Color) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B)
}

func TestSeparableFormulas(t *testing.T) {
	tests := []struct {
		mode   Mode
		cb, cs float64
		want   float64
	}{
		{Normal, 0.2, 0.7, 0.7},
		{Darken, 0.2, 0.7, 0.2},
		{Lighten, 0.2, 0.7, 0.7},
		{Multiply, 0.5, 0.5, 0.25},
		{Screen, 0.5, 0.5, 0.75},
		{PlusDarker, 0.3, 0.4, 0},
		{PlusDarker, 0.8, 0.7, 0.5},
		{PlusLighter, 0.8, 0.7, 1},
		{PlusLighter, 0.25, 0.5, 0.75},
		{ColorBurn, 1, 0, 0},
		{ColorBurn, 1, 0.5, 1},
		{ColorBurn, 0.5, 0.5, 0},
		{ColorBurn, 0.75, 0.5, 0.5},
		{ColorDodge, 0, 1, 0},
		{ColorDodge, 0.5, 1, 1},
		{ColorDodge, 0.25, 0.5, 0.5},
		{Overlay, 0.25, 0.5, 0.25},
		{Overlay, 0.75, 0.5, 0.75},
		{HardLight, 0.5, 0.25, 0.25},
		{HardLight, 0.5, 0.75, 0.75},
		{SoftLight, 0.5, 0.5, 0.5},
		{SoftLight, 0.25, 1, 0.5},
		{SoftLight, 0.5, 0, 0.25},
		{Difference, 0.2, 0.7, 0.5},
		{Exclusion, 0.5, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := Blend(tt.mode, color.Color{R: tt.cb, G: tt.cb, B: tt.cb}, color.Color{R: tt.cs, G: tt.cs, B: tt.cs})
			if !near(got.R, tt.want) || !near(got.G, tt.want) || !near(got.B, tt.want) {
				t.Errorf("%s(%v, %v) = %v, want %v", tt.mode, tt.cb, tt.cs, got.R, tt.want)
			}
		})
	}
}

func TestNonSeparableFormulas(t *testing.T) {
	red := color.Color{R: 1}
	blue := color.Color{B: 1}
	yellow := color.Color{R: 1, G: 1}
	white := color.Color{R: 1, G: 1, B: 1}
	gray := color.RGB8(128, 128, 128)

	tests := []struct {
		name   string
		mode   Mode
		cb, cs color.Color
		want   color.Color
	}{
		{"luminosity of white over red", Luminosity, red, white, white},
		{"hue of red over gray", Hue, gray, red, gray},
		{"saturation of gray over red", Saturation, red, gray, color.Color{R: 0.3, G: 0.3, B: 0.3}},
		{"color red over gray", Color, gray, red, color.Color{R: 1, G: 0.28851540616246496, B: 0.28851540616246496}},
		{"luminosity of yellow over blue", Luminosity, blue, yellow, color.Color{R: 0.8764044943820224, G: 0.8764044943820224, B: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blend(tt.mode, tt.cb, tt.cs)
			if !nearColor(got, tt.want) {
				t.Errorf("Blend(%s) = %+v, want %+v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestCompositeOpacity(t *testing.T) {
	black := color.Color{}
	white := color.Color{R: 1, G: 1, B: 1}

	if got := Composite(black, white, 0, Screen); got != black {
		t.Errorf("opacity 0 changed the base: %+v", got)
	}
	if got := Composite(black, white, -10, Screen); got != black {
		t.Errorf("negative opacity changed the base: %+v", got)
	}
	if got := Composite(black, white, math.NaN(), Screen); got != black {
		t.Errorf("NaN opacity changed the base: %+v", got)
	}
	if got := Composite(black, white, 50, Normal); !nearColor(got, color.Color{R: 0.5, G: 0.5, B: 0.5}) {
		t.Errorf("normal at 50%% = %+v, want mid gray", got)
	}
	if got := Composite(black, white, 100, Normal); !nearColor(got, white) {
		t.Errorf("normal at 100%% = %+v, want tint", got)
	}
	if got := Composite(black, white, 250, Normal); !nearColor(got, white) {
		t.Errorf("opacity above 100 = %+v, want tint", got)
	}
}

func TestCompositeColorBurnAtWhite(t *testing.T) {
	white := color.MustParseHex("#ffffff")
	tint := color.MustParseHex("#fe0000")

	got := Composite(white, tint, 40, ColorBurn)
	if got.Hex() != "#ff9999" {
		t.Errorf("Composite(white, #fe0000, 40, color-burn) = %s, want #ff9999", got.Hex())
	}
}

func TestUnknownModeBlendsAsNormal(t *testing.T) {
	base := color.MustParseHex("#3b82f6")
	tint := color.MustParseHex("#fe0000")

	got := Composite(base, tint, 40, Mode("sparkle"))
	want := Composite(base, tint, 40, Normal)
	if got != want {
		t.Errorf("unknown mode = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestAllModesStayInRange(t *testing.T) {
	levels := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	for _, mode := range Modes {
		for _, b := range levels {
			for _, s := range levels {
				base := color.Color{R: b, G: 1 - b, B: b / 2}
				tint := color.Color{R: s, G: s / 3, B: 1 - s}
				got := Composite(base, tint, 60, mode)
				for _, v := range []float64{got.R, got.G, got.B} {
					if math.IsNaN(v) || v < -eps || v > 1+eps {
						t.Fatalf("%s(%+v, %+v) produced %+v", mode, base, tint, got)
					}
				}
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	if len(Modes) != 18 {
		t.Fatalf("len(Modes) = %d, want 18", len(Modes))
	}
	for _, m := range Modes {
		if !m.Valid() {
			t.Errorf("%s not valid", m)
		}
	}

	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"color-burn", ColorBurn, true},
		{" Soft-Light ", SoftLight, true},
		{"LUMINOSITY", Luminosity, true},
		{"sparkle", Normal, false},
		{"", Normal, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
