// Package recipe turns a decoded crafting data packet into the recipe
// document: normalized items, inferred shapes for shaped recipes, and
// resolved potion and container mixes.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mj41/recipedump/protocol"
)

// Document is the exported form of one crafting data packet. List order
// is the packet's order.
type Document struct {
	Version        int32          `json:"version"`
	Recipes        []Recipe       `json:"recipes"`
	PotionMixes    []PotionMix    `json:"potionMixes"`
	ContainerMixes []ContainerMix `json:"containerMixes"`
}

// Encode writes d as JSON. An empty indent produces compact output.
func (d *Document) Encode(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(d)
}

// RecipeError reports the entry a recipe failed on.
type RecipeError struct {
	Index    int
	Kind     protocol.Kind
	RecipeID string
	Err      error
}

func (e *RecipeError) Error() string {
	if e.RecipeID != "" {
		return fmt.Sprintf("recipe %d (%s %q): %v", e.Index, e.Kind, e.RecipeID, e.Err)
	}
	return fmt.Sprintf("recipe %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *RecipeError) Unwrap() error { return e.Err }

// Exporter builds Documents. It holds no per-packet state and may be used
// from several goroutines at once as long as its lookups allow it.
type Exporter struct {
	ids  IdentifierLookup
	norm Normalizer
	log  *zap.Logger

	paletteReported bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPalette resolves item block states through p. Without it block
// states are left out of every item.
func WithPalette(p BlockPalette) Option {
	return func(e *Exporter) { e.norm.palette = p }
}

// WithPaletteReported marks a missing palette as already reported by the
// caller, so NewExporter does not warn about it again.
func WithPaletteReported() Option {
	return func(e *Exporter) { e.paletteReported = true }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// NewExporter returns an Exporter resolving item IDs through ids.
func NewExporter(ids IdentifierLookup, opts ...Option) *Exporter {
	e := &Exporter{
		ids:  ids,
		norm: NewNormalizer(ids, nil),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.norm.palette == nil && !e.paletteReported {
		e.log.Warn("no block palette, block states are left out of every item")
	}
	return e
}

// Build exports pk under the packet's own protocol version.
func (e *Exporter) Build(pk *protocol.CraftingData) (*Document, error) {
	return e.BuildVersion(pk.ProtocolVersion, pk)
}

// BuildVersion exports pk under the given protocol version. The first
// failing entry aborts the build.
func (e *Exporter) BuildVersion(version int32, pk *protocol.CraftingData) (*Document, error) {
	doc := &Document{
		Version:        version,
		Recipes:        make([]Recipe, 0, len(pk.Recipes)),
		PotionMixes:    make([]PotionMix, 0, len(pk.PotionMixes)),
		ContainerMixes: make([]ContainerMix, 0, len(pk.ContainerMixes)),
	}
	for i, rd := range pk.Recipes {
		r, err := e.Recipe(rd)
		if err != nil {
			return nil, &RecipeError{Index: i, Kind: rd.Type, RecipeID: rd.RecipeID, Err: err}
		}
		doc.Recipes = append(doc.Recipes, r)
	}
	for i, m := range pk.PotionMixes {
		pm, err := e.PotionMix(m)
		if err != nil {
			return nil, fmt.Errorf("potion mix %d: %w", i, err)
		}
		doc.PotionMixes = append(doc.PotionMixes, pm)
	}
	for i, m := range pk.ContainerMixes {
		cm, err := e.ContainerMix(m)
		if err != nil {
			return nil, fmt.Errorf("container mix %d: %w", i, err)
		}
		doc.ContainerMixes = append(doc.ContainerMixes, cm)
	}

	e.log.Debug("built recipe document",
		zap.Int32("version", version),
		zap.Int("recipes", len(doc.Recipes)),
		zap.Int("potionMixes", len(doc.PotionMixes)),
		zap.Int("containerMixes", len(doc.ContainerMixes)))
	return doc, nil
}

// Recipe exports a single entry.
func (e *Exporter) Recipe(rd protocol.RecipeData) (Recipe, error) {
	switch {
	case rd.Type == protocol.Multi:
		return MultiRecipe{UUID: rd.UUID}, nil

	case rd.Type.IsShaped():
		output, err := e.norm.Items(rd.Outputs, true)
		if err != nil {
			return nil, fmt.Errorf("output %w", err)
		}
		inputs := make([]Item, len(rd.Inputs))
		for i, raw := range rd.Inputs {
			if inputs[i], err = e.norm.Item(raw, false); err != nil {
				return nil, fmt.Errorf("input slot %d: %w", i, err)
			}
		}
		layout, err := InferShape(inputs, int(rd.Width), int(rd.Height))
		if err != nil {
			if errors.Is(err, ErrAlphabetExhausted) {
				e.log.Error("shaped recipe has too many distinct inputs",
					zap.String("recipe", rd.RecipeID), zap.Error(err))
			}
			return nil, err
		}
		return ShapedRecipe{
			Type:     rd.Type,
			Block:    rd.CraftingTag,
			ID:       rd.RecipeID,
			Priority: rd.Priority,
			Layout:   layout,
			Output:   output,
		}, nil

	case rd.Type.IsShapeless():
		output, err := e.norm.Items(rd.Outputs, true)
		if err != nil {
			return nil, fmt.Errorf("output %w", err)
		}
		input, err := e.norm.Items(rd.Inputs, false)
		if err != nil {
			return nil, fmt.Errorf("input %w", err)
		}
		return ShapelessRecipe{
			Type:     rd.Type,
			Block:    rd.CraftingTag,
			ID:       rd.RecipeID,
			Priority: rd.Priority,
			Input:    input,
			Output:   output,
		}, nil

	case rd.Type.IsFurnace():
		input, err := e.norm.furnaceInput(rd.InputID, rd.InputDamage)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		if len(rd.Outputs) == 0 {
			return nil, errors.New("furnace recipe without output")
		}
		output, err := e.norm.Item(rd.Outputs[0], true)
		if err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
		return FurnaceRecipe{
			Type:   rd.Type,
			Block:  rd.CraftingTag,
			Input:  input,
			Output: output,
		}, nil
	}
	return TagRecipe{Type: rd.Type, Block: rd.CraftingTag}, nil
}
