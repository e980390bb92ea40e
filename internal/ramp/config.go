// Package ramp generates color ramps: ordered sequences of colors derived
// from a base color and per-channel range parameters, optionally tinted and
// with user-locked steps.
package ramp

import (
	"errors"
	"fmt"

	"github.com/jsvensson/paletteramp/internal/blend"
	"github.com/jsvensson/paletteramp/internal/color"
)

const (
	// DefaultBaseColor is the base color of a new ramp.
	DefaultBaseColor = "#3b82f6"
	// DefaultSteps is the step count of a new ramp.
	DefaultSteps = 10
)

// ErrConfigMismatch is wrapped by every error Config.Check reports.
var ErrConfigMismatch = errors.New("configuration mismatch")

// Channel describes how one HSL channel varies across the ramp.
//
// In simple mode Range is spread across the ramp around the step holding the
// base color. In advanced mode the channel runs linearly from Start at the
// first step to End at the last.
type Channel struct {
	Range    float64
	Start    float64
	End      float64
	Advanced bool
}

// Tint is blended over every generated step.
type Tint struct {
	Color   color.Color
	Opacity float64 // 0–100
	Mode    blend.Mode
}

// Swatch is one step of a materialized ramp.
type Swatch struct {
	Index  int
	Color  string
	Format color.Format
	Locked bool
}

// Config fully describes a ramp. Configs are values: the engine and the
// collection never modify one in place.
type Config struct {
	ID         string
	Name       string
	BaseColor  color.Color
	TotalSteps int
	Lightness  Channel
	Chroma     Channel // hue shift in degrees
	Saturation Channel
	Tint       *Tint
	Format     color.Format
	Swatches   []Swatch
}

// NewConfig returns a config with the default base color and channels.
func NewConfig() Config {
	return Config{
		BaseColor:  color.MustParseHex(DefaultBaseColor),
		TotalSteps: DefaultSteps,
		Lightness:  Channel{Range: 100, Start: 0, End: 100},
		Chroma:     Channel{},
		Saturation: Channel{Range: 100, Start: 0, End: 100},
		Format:     color.FormatHex,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	if c.Tint != nil {
		t := *c.Tint
		c.Tint = &t
	}
	if c.Swatches != nil {
		c.Swatches = append([]Swatch(nil), c.Swatches...)
	}
	return c
}

// Check reports every structural inconsistency in c. Each reported error
// wraps ErrConfigMismatch. A config that fails Check still generates.
func (c Config) Check() error {
	var errs []error
	if c.TotalSteps <= 0 {
		errs = append(errs, fmt.Errorf("%w: total steps is %d, must be positive", ErrConfigMismatch, c.TotalSteps))
	}
	if len(c.Swatches) > 0 && len(c.Swatches) != c.TotalSteps {
		errs = append(errs, fmt.Errorf("%w: %d swatches for %d steps", ErrConfigMismatch, len(c.Swatches), c.TotalSteps))
	}
	for i, s := range c.Swatches {
		switch {
		case s.Index < 0 || s.Index >= c.TotalSteps:
			errs = append(errs, fmt.Errorf("%w: swatch %d has index %d outside the ramp", ErrConfigMismatch, i, s.Index))
		case s.Index != i:
			errs = append(errs, fmt.Errorf("%w: swatch %d is at position %d", ErrConfigMismatch, s.Index, i))
		}
		if s.Locked && s.Color == "" {
			errs = append(errs, fmt.Errorf("%w: swatch %d is locked without a color", ErrConfigMismatch, s.Index))
		}
	}
	return errors.Join(errs...)
}

// tinted reports whether the tint changes the output at all.
func (c Config) tinted() bool {
	return c.Tint != nil && c.Tint.Opacity > 0 && c.Tint.Mode != ""
}

// locks maps step index to locked color. Swatches are keyed by their Index,
// not their position; entries outside the ramp are ignored.
func (c Config) locks() map[int]string {
	var m map[int]string
	for _, s := range c.Swatches {
		if !s.Locked || s.Color == "" || s.Index < 0 || s.Index >= c.TotalSteps {
			continue
		}
		if m == nil {
			m = make(map[int]string)
		}
		m[s.Index] = s.Color
	}
	return m
}

// resized returns swatches for n steps in positional order. Locked entries
// that fit are kept, everything else is an empty unlocked slot.
func resized(swatches []Swatch, n int, format color.Format) []Swatch {
	if n <= 0 {
		return nil
	}
	out := make([]Swatch, n)
	for i := range out {
		out[i] = Swatch{Index: i, Format: format}
	}
	for _, s := range swatches {
		if s.Locked && s.Index >= 0 && s.Index < n {
			out[s.Index] = s
		}
	}
	return out
}
