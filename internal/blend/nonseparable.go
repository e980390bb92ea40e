package blend

import (
	"math"

	"github.com/jsvensson/paletteramp/internal/color"
)

type rgb struct {
	r, g, b float64
}

func fromColor(c color.Color) rgb {
	return rgb{r: c.R, g: c.G, b: c.B}
}

func (c rgb) toColor() color.Color {
	return color.Color{R: c.r, G: c.g, B: c.b}
}

func hue(cb, cs rgb) rgb {
	return setLum(setSat(cs, sat(cb)), lum(cb))
}

func saturation(cb, cs rgb) rgb {
	return setLum(setSat(cb, sat(cs)), lum(cb))
}

func colorMode(cb, cs rgb) rgb {
	return setLum(cs, lum(cb))
}

func luminosity(cb, cs rgb) rgb {
	return setLum(cb, lum(cs))
}

func lum(c rgb) float64 {
	return 0.3*c.r + 0.59*c.g + 0.11*c.b
}

func clipColor(c rgb) rgb {
	l := lum(c)
	n := math.Min(c.r, math.Min(c.g, c.b))
	x := math.Max(c.r, math.Max(c.g, c.b))
	if n < 0 {
		c = rgb{
			r: l + (c.r-l)*l/(l-n),
			g: l + (c.g-l)*l/(l-n),
			b: l + (c.b-l)*l/(l-n),
		}
	}
	if x > 1 {
		c = rgb{
			r: l + (c.r-l)*(1-l)/(x-l),
			g: l + (c.g-l)*(1-l)/(x-l),
			b: l + (c.b-l)*(1-l)/(x-l),
		}
	}
	return c
}

func setLum(c rgb, l float64) rgb {
	d := l - lum(c)
	return clipColor(rgb{r: c.r + d, g: c.g + d, b: c.b + d})
}

func sat(c rgb) float64 {
	return math.Max(c.r, math.Max(c.g, c.b)) - math.Min(c.r, math.Min(c.g, c.b))
}

// setSat rescales c so its max-min spread equals s, keeping the channel order.
func setSat(c rgb, s float64) rgb {
	ch := [3]*float64{&c.r, &c.g, &c.b}
	// sort pointers by value: ch[0] min, ch[1] mid, ch[2] max
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	if *ch[1] > *ch[2] {
		ch[1], ch[2] = ch[2], ch[1]
	}
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	lo, mid, hi := ch[0], ch[1], ch[2]

	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return c
}
