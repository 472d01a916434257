package recipe

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mj41/recipedump/protocol"
)

// Recipe is one exported crafting data entry. Each implementation carries
// only the fields its kinds use and marshals nothing else.
type Recipe interface {
	Kind() protocol.Kind
}

// ShapedRecipe is a Shaped or ShapedChemistry entry.
type ShapedRecipe struct {
	Type     protocol.Kind
	Block    string
	ID       string
	Priority int32
	Layout   ShapedLayout
	Output   []Item
}

func (r ShapedRecipe) Kind() protocol.Kind { return r.Type }

func (r ShapedRecipe) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		ID       string          `json:"id,omitempty"`
		Type     protocol.Kind   `json:"type"`
		Input    map[string]Item `json:"input"`
		Output   []Item          `json:"output"`
		Shape    []string        `json:"shape"`
		Block    string          `json:"block,omitempty"`
		Priority int32           `json:"priority"`
	}{r.ID, r.Type, r.Layout.inputMap(), nonNil(r.Output), nonNilStrings(r.Layout.Shape), r.Block, r.Priority})
}

// ShapelessRecipe is a Shapeless, ShapelessChemistry or ShulkerBox entry.
type ShapelessRecipe struct {
	Type     protocol.Kind
	Block    string
	ID       string
	Priority int32
	Input    []Item
	Output   []Item
}

func (r ShapelessRecipe) Kind() protocol.Kind { return r.Type }

func (r ShapelessRecipe) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		ID       string        `json:"id,omitempty"`
		Type     protocol.Kind `json:"type"`
		Input    []Item        `json:"input"`
		Output   []Item        `json:"output"`
		Block    string        `json:"block,omitempty"`
		Priority int32         `json:"priority"`
	}{r.ID, r.Type, nonNil(r.Input), nonNil(r.Output), r.Block, r.Priority})
}

// FurnaceRecipe is a Furnace or FurnaceData entry.
type FurnaceRecipe struct {
	Type   protocol.Kind
	Block  string
	Input  Item
	Output Item
}

func (r FurnaceRecipe) Kind() protocol.Kind { return r.Type }

func (r FurnaceRecipe) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type   protocol.Kind `json:"type"`
		Input  Item          `json:"input"`
		Output Item          `json:"output"`
		Block  string        `json:"block,omitempty"`
	}{r.Type, r.Input, r.Output, r.Block})
}

// MultiRecipe is a Multi entry, identified by UUID only.
type MultiRecipe struct {
	UUID uuid.UUID
}

func (r MultiRecipe) Kind() protocol.Kind { return protocol.Multi }

func (r MultiRecipe) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type protocol.Kind `json:"type"`
		UUID uuid.UUID     `json:"uuid"`
	}{protocol.Multi, r.UUID})
}

// TagRecipe is any other kind. Only its crafting tag is exported.
type TagRecipe struct {
	Type  protocol.Kind
	Block string
}

func (r TagRecipe) Kind() protocol.Kind { return r.Type }

func (r TagRecipe) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type  protocol.Kind `json:"type"`
		Block string        `json:"block,omitempty"`
	}{r.Type, r.Block})
}

// marshalJSON is json.Marshal without HTML escaping. Marshaler output is
// only compacted by the calling encoder, so escaping has to be off here too.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func nonNil(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
