package ramp

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/jsvensson/paletteramp/internal/blend"
	"github.com/jsvensson/paletteramp/internal/color"
)

// FallbackError reports a step whose color could not be computed. Generate
// replaces such a step with a gray of the step's lightness.
type FallbackError struct {
	Step      int
	Lightness float64 // percent; non-finite values fall back to black
	Reason    string
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Reason)
}

// Gray returns the grayscale replacement color.
func (e *FallbackError) Gray() color.Color {
	l := e.Lightness
	if !finite(l) {
		l = 0
	}
	return color.FromHSL(0, 0, color.ClampPercent(l)/100)
}

// Engine generates ramps. It is stateless apart from its logger and safe
// for concurrent use.
type Engine struct {
	log commonlog.Logger
}

// NewEngine returns an Engine logging to "paletteramp.ramp".
func NewEngine() *Engine {
	return &Engine{log: commonlog.GetLogger("paletteramp.ramp")}
}

// Generate returns the formatted colors of cfg, one per step. Locked swatches
// are returned verbatim. Configuration problems are logged and never stop
// generation; a non-positive step count yields an empty ramp.
func (e *Engine) Generate(cfg Config) []string {
	if err := cfg.Check(); err != nil {
		e.log.Warningf("ramp %s: %s", label(cfg), err)
	}
	if cfg.TotalSteps <= 0 {
		return []string{}
	}

	colors := e.colors(cfg)
	locks := cfg.locks()
	out := make([]string, len(colors))
	for i, c := range colors {
		if locked, ok := locks[i]; ok {
			out[i] = locked
			continue
		}
		out[i] = cfg.Format.Render(c)
	}
	return out
}

func (e *Engine) colors(cfg Config) []color.Color {
	ip := NewInterpolator(cfg)
	mode := e.tintMode(cfg)

	out := make([]color.Color, cfg.TotalSteps)
	for i := range out {
		c, err := e.step(cfg, ip, mode, i)
		if err != nil {
			var fb *FallbackError
			if !errors.As(err, &fb) {
				fb = &FallbackError{Step: i, Reason: err.Error()}
			}
			e.log.Warningf("ramp %s: %s, using gray", label(cfg), fb)
			c = fb.Gray()
		}
		out[i] = c
	}
	return out
}

func (e *Engine) step(cfg Config, ip Interpolator, mode blend.Mode, i int) (color.Color, error) {
	c, err := ip.Color(i)
	if err != nil {
		return color.Color{}, err
	}
	if !cfg.tinted() {
		return c, nil
	}
	tinted := blend.Composite(c, cfg.Tint.Color, cfg.Tint.Opacity, mode)
	if !tinted.IsValid() {
		_, _, l := ip.At(i)
		return color.Color{}, &FallbackError{Step: i, Lightness: l, Reason: "tint produced an invalid color"}
	}
	return tinted, nil
}

// tintMode resolves the tint's blend mode once per ramp. Unknown modes blend
// as normal.
func (e *Engine) tintMode(cfg Config) blend.Mode {
	if !cfg.tinted() {
		return blend.Normal
	}
	mode, ok := blend.ParseMode(string(cfg.Tint.Mode))
	if !ok {
		e.log.Warningf("ramp %s: unknown blend mode %q, using normal", label(cfg), cfg.Tint.Mode)
	}
	return mode
}

// Materialize returns a copy of cfg whose swatches match TotalSteps. Locked
// swatches keep their color; every other slot holds the generated color.
func (e *Engine) Materialize(cfg Config) Config {
	out := cfg.Clone()
	colors := e.Generate(cfg)
	out.Swatches = resized(cfg.Swatches, len(colors), cfg.Format)
	for i := range out.Swatches {
		if out.Swatches[i].Locked && out.Swatches[i].Color != "" {
			continue
		}
		out.Swatches[i] = Swatch{Index: i, Color: colors[i], Format: cfg.Format}
	}
	return out
}

// GenerateAll generates independent ramps concurrently. Results follow the
// order of cfgs. It stops early with the context's error when ctx is done.
func (e *Engine) GenerateAll(ctx context.Context, cfgs []Config) ([][]string, error) {
	out := make([][]string, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = e.Generate(cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generating ramps: %w", err)
	}
	return out, nil
}

func label(cfg Config) string {
	switch {
	case cfg.Name != "":
		return fmt.Sprintf("%q", cfg.Name)
	case cfg.ID != "":
		return cfg.ID
	default:
		return "(unnamed)"
	}
}
