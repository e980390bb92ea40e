package parser

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/jsvensson/paletteramp/internal/blend"
	"github.com/jsvensson/paletteramp/internal/color"
	"github.com/jsvensson/paletteramp/internal/ramp"
	"github.com/jsvensson/paletteramp/internal/theme"
)

// ParseResult holds a fully-resolved ramp file.
type ParseResult struct {
	Palette *color.Node
	Ramps   []ramp.Config
}

// PaletteBlock wraps a single palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures the palette block first (no EvalContext needed).
type RawConfig struct {
	Palette *PaletteBlock `hcl:"palette,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// ChannelBlock is a lightness, chroma or saturation block. Setting start or
// end switches the channel to advanced mode unless advanced says otherwise.
type ChannelBlock struct {
	Range    *float64 `hcl:"range,optional"`
	Start    *float64 `hcl:"start,optional"`
	End      *float64 `hcl:"end,optional"`
	Advanced *bool    `hcl:"advanced,optional"`
}

// TintBlock is a ramp's tint.
type TintBlock struct {
	Color   hcl.Expression `hcl:"color"`
	Opacity float64        `hcl:"opacity"`
	Mode    string         `hcl:"mode,optional"`
}

// LockBlock pins one step of a ramp.
type LockBlock struct {
	Index int            `hcl:"index"`
	Color hcl.Expression `hcl:"color"`
}

// RampBlock is a single labelled ramp block.
type RampBlock struct {
	Name       string         `hcl:"name,label"`
	Base       hcl.Expression `hcl:"base"`
	Steps      *int           `hcl:"steps,optional"`
	Format     *string        `hcl:"format,optional"`
	Lightness  *ChannelBlock  `hcl:"lightness,block"`
	Chroma     *ChannelBlock  `hcl:"chroma,block"`
	Saturation *ChannelBlock  `hcl:"saturation,block"`
	Tint       *TintBlock     `hcl:"tint,block"`
	Locks      []LockBlock    `hcl:"lock,block"`
}

// ResolvedConfig decodes blocks that reference palette.
type ResolvedConfig struct {
	Ramps  []RampBlock `hcl:"ramp,block"`
	Remain hcl.Body    `hcl:",remain"` // palette, already handled
}

// Loader handles two-pass HCL decoding with palette resolution.
type Loader struct {
	body    hcl.Body
	ctx     *hcl.EvalContext
	palette *color.Node
}

// NewLoader parses an HCL file and builds the evaluation context from palette.
func NewLoader(path string) (*Loader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ramp file: %w", err)
	}
	return NewLoaderFromSource(src, path)
}

// NewLoaderFromSource is NewLoader for in-memory source. filename is only
// used in diagnostics.
func NewLoaderFromSource(src []byte, filename string) (*Loader, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// First pass: extract palette. Entries may reference earlier entries.
	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}

	palette := &color.Node{Children: make(map[string]*color.Node)}
	if raw.Palette != nil {
		paletteBody, ok := raw.Palette.Entries.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
		}
		if err := parsePaletteBody(paletteBody, palette, palette, "palette"); err != nil {
			return nil, fmt.Errorf("parsing palette: %w", err)
		}
	}

	return &Loader{
		body:    file.Body,
		ctx:     theme.BuildEvalContext(palette),
		palette: palette,
	}, nil
}

// Decode decodes a value using the palette context.
// Reusable for any blocks that reference palette values.
func (l *Loader) Decode(target any) error {
	if diags := gohcl.DecodeBody(l.body, l.ctx, target); diags.HasErrors() {
		return fmt.Errorf("decoding: %s", diags.Error())
	}
	return nil
}

// Palette returns the parsed palette colors.
func (l *Loader) Palette() *color.Node {
	return l.palette
}

// Context returns the EvalContext for manual parsing.
func (l *Loader) Context() *hcl.EvalContext {
	return l.ctx
}

// Parse parses an HCL ramp file and returns a fully-resolved ParseResult.
func Parse(path string) (*ParseResult, error) {
	loader, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	return loader.Resolve()
}

// ParseSource parses ramp file source held in memory.
func ParseSource(src []byte, filename string) (*ParseResult, error) {
	loader, err := NewLoaderFromSource(src, filename)
	if err != nil {
		return nil, err
	}
	return loader.Resolve()
}

// Resolve runs the second pass, decoding every ramp block against the
// palette context.
func (l *Loader) Resolve() (*ParseResult, error) {
	var resolved ResolvedConfig
	if err := l.Decode(&resolved); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(resolved.Ramps))
	ramps := make([]ramp.Config, 0, len(resolved.Ramps))
	for _, block := range resolved.Ramps {
		if seen[block.Name] {
			return nil, fmt.Errorf("ramp.%s: duplicate ramp name", block.Name)
		}
		seen[block.Name] = true

		cfg, err := l.rampConfig(block)
		if err != nil {
			return nil, fmt.Errorf("ramp.%s.%w", block.Name, err)
		}
		ramps = append(ramps, cfg)
	}

	return &ParseResult{
		Palette: l.palette,
		Ramps:   ramps,
	}, nil
}

// attrError prefixes an error with the attribute it came from. Callers wrap
// it as "ramp.<name>.<attr>: ...".
func attrError(attr string, err error) error {
	return fmt.Errorf("%s: %w", attr, err)
}

// evalColor evaluates a color-valued expression. Plain palette references
// are looked up in the palette tree, so groups resolve to their own color
// and a group without one is reported as such.
func (l *Loader) evalColor(expr hcl.Expression) (string, color.Color, error) {
	if path, ok := palettePath(expr); ok {
		c, err := l.palette.Lookup(path)
		if err != nil {
			return "", color.Color{}, fmt.Errorf("palette.%s: %w", strings.Join(path, "."), err)
		}
		return c.Hex(), c, nil
	}

	val, diags := expr.Value(l.ctx)
	if diags.HasErrors() {
		return "", color.Color{}, fmt.Errorf("%s", diags.Error())
	}
	s, err := theme.ResolveColor(val)
	if err != nil {
		return "", color.Color{}, err
	}
	c, err := theme.ParseColor(s)
	return s, c, err
}

// palettePath returns the segments of a palette.a.b reference.
func palettePath(expr hcl.Expression) ([]string, bool) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) < 2 || traversal.RootName() != "palette" {
		return nil, false
	}
	path := make([]string, 0, len(traversal)-1)
	for _, step := range traversal[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			return nil, false
		}
		path = append(path, attr.Name)
	}
	return path, true
}

func (l *Loader) rampConfig(b RampBlock) (ramp.Config, error) {
	cfg := ramp.NewConfig()
	cfg.Name = b.Name

	_, base, err := l.evalColor(b.Base)
	if err != nil {
		return cfg, attrError("base", err)
	}
	cfg.BaseColor = base

	if b.Steps != nil {
		if *b.Steps < 1 {
			return cfg, attrError("steps", fmt.Errorf("must be at least 1, got %d", *b.Steps))
		}
		cfg.TotalSteps = *b.Steps
	}

	if b.Format != nil {
		f, err := color.ParseFormat(*b.Format)
		if err != nil {
			return cfg, attrError("format", err)
		}
		cfg.Format = f
	}

	cfg.Lightness = b.Lightness.channel(cfg.Lightness)
	cfg.Chroma = b.Chroma.channel(cfg.Chroma)
	cfg.Saturation = b.Saturation.channel(cfg.Saturation)

	if b.Tint != nil {
		tint, err := b.Tint.tint(l)
		if err != nil {
			return cfg, err
		}
		cfg.Tint = tint
	}

	locked := make(map[int]bool, len(b.Locks))
	for _, lock := range b.Locks {
		if lock.Index < 0 || lock.Index >= cfg.TotalSteps {
			return cfg, attrError("lock", fmt.Errorf("index %d outside ramp of %d steps", lock.Index, cfg.TotalSteps))
		}
		if locked[lock.Index] {
			return cfg, attrError("lock", fmt.Errorf("index %d locked twice", lock.Index))
		}
		value, _, err := l.evalColor(lock.Color)
		if err != nil {
			return cfg, attrError(fmt.Sprintf("lock[%d].color", lock.Index), err)
		}
		locked[lock.Index] = true
		cfg = ramp.Lock(lock.Index, value)(cfg)
	}

	return cfg, nil
}

func (b *ChannelBlock) channel(def ramp.Channel) ramp.Channel {
	if b == nil {
		return def
	}
	ch := def
	if b.Range != nil {
		ch.Range = *b.Range
	}
	if b.Start != nil {
		ch.Start = *b.Start
		ch.Advanced = true
	}
	if b.End != nil {
		ch.End = *b.End
		ch.Advanced = true
	}
	if b.Advanced != nil {
		ch.Advanced = *b.Advanced
	}
	return ch
}

func (b *TintBlock) tint(l *Loader) (*ramp.Tint, error) {
	_, c, err := l.evalColor(b.Color)
	if err != nil {
		return nil, attrError("tint.color", err)
	}
	if b.Opacity < 0 || b.Opacity > 100 {
		return nil, attrError("tint.opacity", fmt.Errorf("must be between 0 and 100, got %v", b.Opacity))
	}
	t := &ramp.Tint{Color: c, Opacity: b.Opacity}
	if b.Mode != "" {
		mode, ok := blend.ParseMode(b.Mode)
		if !ok {
			return nil, attrError("tint.mode", fmt.Errorf("unknown blend mode %q", b.Mode))
		}
		t.Mode = mode
	}
	return t, nil
}

// paletteItem represents an attribute or block in source order.
type paletteItem struct {
	pos   hcl.Pos
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

// parsePaletteBody parses a palette block body with support for:
// - Direct color attributes: key = "#hex", hsl(...), oklch(...)
// - A "color" attribute giving the enclosing block its own color
// - Nested blocks: key { sub = ... }
// Items are processed in source order so later entries can reference
// earlier ones through palette.*.
func parsePaletteBody(body *hclsyntax.Body, root, node *color.Node, prefix string) error {
	var items []paletteItem
	for _, attr := range body.Attributes {
		items = append(items, paletteItem{pos: attr.SrcRange.Start, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, paletteItem{pos: block.DefRange().Start, block: block})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].pos.Byte < items[j].pos.Byte
	})

	for _, item := range items {
		if item.block != nil {
			if len(item.block.Labels) > 0 {
				return fmt.Errorf("%s.%s: palette blocks take no labels", prefix, item.block.Type)
			}
			if node.Children == nil {
				node.Children = make(map[string]*color.Node)
			}
			child := &color.Node{Children: make(map[string]*color.Node)}
			node.Children[item.block.Type] = child
			if err := parsePaletteBody(item.block.Body, root, child, prefix+"."+item.block.Type); err != nil {
				return err
			}
			continue
		}

		name := prefix + "." + item.attr.Name
		val, diags := item.attr.Expr.Value(theme.BuildEvalContext(root))
		if diags.HasErrors() {
			return fmt.Errorf("evaluating %s: %s", name, diags.Error())
		}
		s, err := theme.ResolveColor(val)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		c, err := theme.ParseColor(s)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if item.attr.Name == "color" {
			node.Color = &c
			continue
		}
		if node.Children == nil {
			node.Children = make(map[string]*color.Node)
		}
		node.Children[item.attr.Name] = &color.Node{Color: &c}
	}
	return nil
}
