package validate

import (
	"strings"
	"testing"

	"github.com/jsvensson/paletteramp/internal/color"
)

func TestValidateHexValue(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#3b82f6", "#3b82f6", false},
		{"3B82F6", "#3b82f6", false},
		{"#abc", "#aabbcc", false},
		{"  #FFF  ", "#ffffff", false},
		{"#3b82f680", "#3b82f6", false},
		{"", "", true},
		{"#12", "", true},
		{"#ggg", "", true},
		{"#12345", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ValidateHexValue(tt.in)
			if tt.wantErr {
				if got.IsValid {
					t.Fatalf("ValidateHexValue(%q) = %+v, want invalid", tt.in, got)
				}
				if got.Error == "" {
					t.Error("invalid result has no error message")
				}
				return
			}
			if !got.IsValid {
				t.Fatalf("ValidateHexValue(%q) invalid: %s", tt.in, got.Error)
			}
			if got.FormattedColor != tt.want {
				t.Errorf("ValidateHexValue(%q) = %q, want %q", tt.in, got.FormattedColor, tt.want)
			}
		})
	}
}

func TestValidateHSLValues(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l string
		want    string
		wantErr string
	}{
		{name: "plain", h: "217", s: "91", l: "60", want: "hsl(217,91%,60%)"},
		{name: "units", h: "217deg", s: "91.2%", l: "59.8%", want: "hsl(217,91.2%,59.8%)"},
		{name: "degree sign", h: "120°", s: "25%", l: "50%", want: "hsl(120,25%,50%)"},
		{name: "one decimal", h: "217.219", s: "91.219", l: "59.804", want: "hsl(217.2,91.2%,59.8%)"},
		{name: "hue wraps", h: "-30", s: "150", l: "-5", want: "hsl(330,100%,0%)"},
		{name: "full turn", h: "360", s: "50", l: "50", want: "hsl(0,50%,50%)"},
		{name: "rounds up to full turn", h: "359.97", s: "50", l: "50", want: "hsl(0,50%,50%)"},
		{name: "bad hue", h: "blue", s: "50", l: "50", wantErr: "hue"},
		{name: "bad saturation", h: "10", s: "", l: "50", wantErr: "saturation"},
		{name: "bad lightness", h: "10", s: "50", l: "NaN", wantErr: "lightness"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateHSLValues(tt.h, tt.s, tt.l)
			if tt.wantErr != "" {
				if got.IsValid {
					t.Fatalf("ValidateHSLValues() = %+v, want invalid", got)
				}
				if !strings.HasPrefix(got.Error, tt.wantErr) {
					t.Errorf("error = %q, want prefix %q", got.Error, tt.wantErr)
				}
				return
			}
			if !got.IsValid {
				t.Fatalf("ValidateHSLValues() invalid: %s", got.Error)
			}
			if got.FormattedColor != tt.want {
				t.Errorf("ValidateHSLValues(%q, %q, %q) = %q, want %q", tt.h, tt.s, tt.l, got.FormattedColor, tt.want)
			}
		})
	}
}

func TestValidateOKLCHValues(t *testing.T) {
	tests := []struct {
		name    string
		l, c, h string
		want    string
	}{
		{"black", "0", "0", "0", "oklch(0 0 0)"},
		{"white percent", "100%", "0", "0", "oklch(1 0 0)"},
		{"lightness clamps", "140%", "0", "90", "oklch(1 0 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateOKLCHValues(tt.l, tt.c, tt.h)
			if !got.IsValid {
				t.Fatalf("invalid: %s", got.Error)
			}
			if got.FormattedColor != tt.want {
				t.Errorf("ValidateOKLCHValues(%q, %q, %q) = %q, want %q", tt.l, tt.c, tt.h, got.FormattedColor, tt.want)
			}
		})
	}
}

func TestValidateOKLCHValuesGamutMaps(t *testing.T) {
	// Bright green at maximum chroma is far outside sRGB.
	got := ValidateOKLCHValues("0.8", "100%", "150deg")
	if !got.IsValid {
		t.Fatalf("invalid: %s", got.Error)
	}
	c, err := got.Color()
	if err != nil {
		t.Fatalf("Color(): %v", err)
	}
	_, chroma, _ := c.ToOKLCH()
	if chroma >= color.MaxChroma {
		t.Errorf("chroma %.3f was not reduced", chroma)
	}
	for _, v := range []float64{c.R, c.G, c.B} {
		if v < 0 || v > 1 {
			t.Errorf("gamut-mapped color %+v is outside sRGB", c)
		}
	}
}

func TestValidateOKLCHValuesRejects(t *testing.T) {
	for _, args := range [][3]string{
		{"x", "0.1", "10"},
		{"0.5", "", "10"},
		{"0.5", "0.1", "north"},
	} {
		got := ValidateOKLCHValues(args[0], args[1], args[2])
		if got.IsValid {
			t.Errorf("ValidateOKLCHValues(%q) = %+v, want invalid", args, got)
		}
		if got.Error == "" {
			t.Errorf("ValidateOKLCHValues(%q) has no error message", args)
		}
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#ABC", "#aabbcc", false},
		{"3b82f6", "#3b82f6", false},
		{"HSL(217, 91%, 60%)", "hsl(217,91%,60%)", false},
		{"hsl(120 25% 50%)", "hsl(120,25%,50%)", false},
		{"rgb(255, 0, 0)", "rgb(255, 0, 0)", false},
		{"oklch(1 0 0)", "oklch(1 0 0)", false},
		{"hsl(1, 2)", "", true},
		{"oklch(a b c)", "", true},
		{"rgb(1, 2, three)", "", true},
		{"   ", "", true},
		{"not-a-color", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ValidateColor(tt.in)
			if got.IsValid == tt.wantErr {
				t.Fatalf("ValidateColor(%q) = %+v, wantErr %v", tt.in, got, tt.wantErr)
			}
			if !tt.wantErr && got.FormattedColor != tt.want {
				t.Errorf("ValidateColor(%q) = %q, want %q", tt.in, got.FormattedColor, tt.want)
			}
		})
	}
}

func TestResultColor(t *testing.T) {
	r := ValidateHSLValues("217.2", "91.2", "59.8")
	c, err := r.Color()
	if err != nil {
		t.Fatalf("Color(): %v", err)
	}
	if got := c.Hex(); got != "#3b82f6" {
		t.Errorf("Color().Hex() = %s, want #3b82f6", got)
	}

	bad := ValidateHexValue("zzz")
	if _, err := bad.Color(); err == nil {
		t.Error("Color() on an invalid result returned no error")
	}
}

func TestValidatorsNeverPanic(t *testing.T) {
	inputs := []string{"", "#", "hsl(", "hsl()", "oklch(/)", "rgb(,,,)", "%", "deg", "°", "1e400", "-Inf", "\x00", "hsl(1,2,3,4,5)"}
	for _, in := range inputs {
		ValidateHexValue(in)
		ValidateColor(in)
		ValidateHSLValues(in, in, in)
		ValidateOKLCHValues(in, in, in)
	}
}
