// Package paletteramp loads ramp files and generates their color ramps.
package paletteramp

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jsvensson/paletteramp/internal/color"
	"github.com/jsvensson/paletteramp/internal/parser"
	"github.com/jsvensson/paletteramp/internal/ramp"
)

// ErrUnknownRamp is returned when a requested ramp name is not in the document.
var ErrUnknownRamp = errors.New("unknown ramp")

// Document is a fully-resolved ramp file.
type Document struct {
	Palette *color.Node
	Ramps   ramp.Collection

	ids map[string]string // ramp name -> collection ID
}

// Options selects what Generate produces. Overrides apply to every selected
// ramp for this call only; the document is left as loaded.
type Options struct {
	// Ramps limits generation to the named ramps, in this order. Empty means
	// every ramp in file order.
	Ramps []string
	// Skip drops ramps from the selection.
	Skip []string

	Base   *color.Color // replaces the base color
	Format color.Format // overrides the output format when set
	Steps  int          // overrides the step count when positive
	Tint   *ramp.Tint   // replaces the tint
	NoTint bool         // removes the tint; wins over Tint
	Locks  map[int]string
	Unlock []int
}

func (o Options) patches() []ramp.Patch {
	var patches []ramp.Patch
	if o.Base != nil {
		patches = append(patches, ramp.WithBase(*o.Base))
	}
	if o.Format != "" {
		patches = append(patches, ramp.WithFormat(o.Format))
	}
	if o.Steps > 0 {
		patches = append(patches, ramp.WithSteps(o.Steps))
	}
	switch {
	case o.NoTint:
		patches = append(patches, ramp.WithoutTint())
	case o.Tint != nil:
		patches = append(patches, ramp.WithTint(*o.Tint))
	}
	for _, index := range o.Unlock {
		patches = append(patches, ramp.Unlock(index))
	}
	indexes := make([]int, 0, len(o.Locks))
	for index := range o.Locks {
		indexes = append(indexes, index)
	}
	slices.Sort(indexes)
	for _, index := range indexes {
		patches = append(patches, ramp.Lock(index, o.Locks[index]))
	}
	return patches
}

// Result is one generated ramp.
type Result struct {
	Name   string
	Config ramp.Config // with every override applied
	Colors []string
}

// Swatches returns the ramp as per-step swatches, locked steps flagged.
func (r Result) Swatches() []ramp.Swatch {
	return ramp.NewEngine().Materialize(r.Config).Swatches
}

// Load parses an HCL ramp file and returns a fully-resolved Document.
func Load(path string) (*Document, error) {
	raw, err := parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("loading ramps: %w", err)
	}
	return newDocument(raw), nil
}

// Parse is Load for source held in memory.
func Parse(src []byte, filename string) (*Document, error) {
	raw, err := parser.ParseSource(src, filename)
	if err != nil {
		return nil, fmt.Errorf("loading ramps: %w", err)
	}
	return newDocument(raw), nil
}

func newDocument(raw *parser.ParseResult) *Document {
	d := &Document{
		Palette: raw.Palette,
		ids:     make(map[string]string, len(raw.Ramps)),
	}
	cfgs := make([]ramp.Config, len(raw.Ramps))
	for i, cfg := range raw.Ramps {
		cfg.ID = ramp.NewID()
		d.ids[cfg.Name] = cfg.ID
		cfgs[i] = cfg
	}
	d.Ramps = ramp.NewCollection(cfgs...)
	return d
}

// Names returns the ramp names in file order.
func (d *Document) Names() []string {
	cfgs := d.Ramps.Ramps()
	names := make([]string, len(cfgs))
	for i, cfg := range cfgs {
		names[i] = cfg.Name
	}
	return names
}

// Ramp returns the named ramp.
func (d *Document) Ramp(name string) (ramp.Config, bool) {
	id, ok := d.ids[name]
	if !ok {
		return ramp.Config{}, false
	}
	return d.Ramps.Get(id)
}

// Generate generates the selected ramps concurrently. Results follow the
// requested order.
func (d *Document) Generate(ctx context.Context, opts Options) ([]Result, error) {
	names := opts.Ramps
	if len(names) == 0 {
		names = d.Names()
	}

	ramps := d.Ramps
	for _, name := range opts.Skip {
		id, ok := d.ids[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownRamp, name)
		}
		ramps = ramps.Remove(id)
	}

	patches := opts.patches()
	cfgs := make([]ramp.Config, 0, len(names))
	for _, name := range names {
		id, ok := d.ids[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownRamp, name)
		}
		if _, ok := ramps.Get(id); !ok {
			continue
		}
		var err error
		if ramps, err = ramps.Update(id, patches...); err != nil {
			return nil, fmt.Errorf("ramp %q: %w", name, err)
		}
		cfg, _ := ramps.Get(id)
		cfgs = append(cfgs, cfg)
	}

	colors, err := ramp.NewEngine().GenerateAll(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(cfgs))
	for i, cfg := range cfgs {
		results[i] = Result{Name: cfg.Name, Config: cfg, Colors: colors[i]}
	}
	return results, nil
}
