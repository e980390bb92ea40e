package ramp

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jsvensson/paletteramp/internal/color"
)

// ErrRampNotFound is returned when a collection has no ramp with the given ID.
var ErrRampNotFound = errors.New("ramp not found")

// NewID returns a fresh ramp identifier.
func NewID() string {
	return uuid.NewString()
}

// Collection is an ordered, immutable set of ramps. Every method that
// changes the collection returns a new one and leaves the receiver intact.
type Collection struct {
	ramps []Config
}

// NewCollection returns a collection holding cfgs in order.
func NewCollection(cfgs ...Config) Collection {
	var c Collection
	for _, cfg := range cfgs {
		c = c.Add(cfg)
	}
	return c
}

// Len returns the number of ramps.
func (c Collection) Len() int {
	return len(c.ramps)
}

// Ramps returns copies of every ramp in order.
func (c Collection) Ramps() []Config {
	out := make([]Config, len(c.ramps))
	for i, r := range c.ramps {
		out[i] = r.Clone()
	}
	return out
}

// Add appends cfg. A config without an ID is given a new one.
func (c Collection) Add(cfg Config) Collection {
	cfg = cfg.Clone()
	if cfg.ID == "" {
		cfg.ID = NewID()
	}
	ramps := make([]Config, len(c.ramps), len(c.ramps)+1)
	copy(ramps, c.ramps)
	return Collection{ramps: append(ramps, cfg)}
}

// Get returns a copy of the ramp with the given ID.
func (c Collection) Get(id string) (Config, bool) {
	i := c.index(id)
	if i < 0 {
		return Config{}, false
	}
	return c.ramps[i].Clone(), true
}

// Update applies patches in order to the ramp with the given ID.
func (c Collection) Update(id string, patches ...Patch) (Collection, error) {
	i := c.index(id)
	if i < 0 {
		return c, fmt.Errorf("update %s: %w", id, ErrRampNotFound)
	}
	cfg := c.ramps[i].Clone()
	for _, p := range patches {
		cfg = p(cfg.Clone())
	}
	cfg.ID = id

	ramps := make([]Config, len(c.ramps))
	copy(ramps, c.ramps)
	ramps[i] = cfg
	return Collection{ramps: ramps}, nil
}

// Remove drops the ramp with the given ID. Removing an unknown ID returns
// an equivalent collection.
func (c Collection) Remove(id string) Collection {
	i := c.index(id)
	if i < 0 {
		return c
	}
	ramps := make([]Config, 0, len(c.ramps)-1)
	ramps = append(ramps, c.ramps[:i]...)
	ramps = append(ramps, c.ramps[i+1:]...)
	return Collection{ramps: ramps}
}

func (c Collection) index(id string) int {
	for i, r := range c.ramps {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Patch transforms a config. Patches receive a private copy.
type Patch func(Config) Config

// WithBase sets the base color.
func WithBase(base color.Color) Patch {
	return func(cfg Config) Config {
		cfg.BaseColor = base
		return cfg
	}
}

// WithSteps sets the step count. Locks beyond the new length are dropped.
func WithSteps(n int) Patch {
	return func(cfg Config) Config {
		cfg.TotalSteps = n
		if cfg.Swatches != nil {
			cfg.Swatches = resized(cfg.Swatches, n, cfg.Format)
		}
		return cfg
	}
}

// WithTint sets the tint.
func WithTint(t Tint) Patch {
	return func(cfg Config) Config {
		cfg.Tint = &t
		return cfg
	}
}

// WithoutTint removes the tint.
func WithoutTint() Patch {
	return func(cfg Config) Config {
		cfg.Tint = nil
		return cfg
	}
}

// WithFormat sets the output format.
func WithFormat(f color.Format) Patch {
	return func(cfg Config) Config {
		cfg.Format = f
		return cfg
	}
}

// Lock pins step index to a color string, returned verbatim on every
// regeneration. Out-of-range indexes leave the config unchanged.
func Lock(index int, value string) Patch {
	return func(cfg Config) Config {
		if index < 0 || index >= cfg.TotalSteps {
			return cfg
		}
		cfg.Swatches = resized(cfg.Swatches, cfg.TotalSteps, cfg.Format)
		cfg.Swatches[index] = Swatch{Index: index, Color: value, Format: formatOf(value), Locked: true}
		return cfg
	}
}

// Unlock releases step index.
func Unlock(index int) Patch {
	return func(cfg Config) Config {
		for i := range cfg.Swatches {
			if cfg.Swatches[i].Index == index {
				cfg.Swatches[i].Locked = false
			}
		}
		return cfg
	}
}

// formatOf guesses the notation of a color string from its prefix.
func formatOf(value string) color.Format {
	for _, f := range []color.Format{color.FormatHSL, color.FormatRGB, color.FormatOKLCH} {
		if len(value) >= len(f) && value[:len(f)] == string(f) {
			return f
		}
	}
	return color.FormatHex
}
