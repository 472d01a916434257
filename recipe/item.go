package recipe

import (
	"fmt"

	"github.com/mj41/recipedump/nbt"
	"github.com/mj41/recipedump/protocol"
)

// Optional is an int32 that may be absent. Absent values are left out of
// the exported document.
type Optional struct {
	Value int32
	Valid bool
}

// Some returns a present Optional.
func Some(v int32) Optional {
	return Optional{Value: v, Valid: true}
}

func (o Optional) ptr() *int32 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// Item is a normalized item stack. Items are comparable: two stacks that
// normalize to the same fields are equal with ==.
type Item struct {
	LegacyID   int32
	Identifier string
	Damage     Optional
	Count      Optional
	// NBT is the base64 little-endian encoding of the item's user data.
	NBT string
	// BlockState is the base64 little-endian encoding of the block state.
	BlockState string
}

// Empty stands for "no item". Array contexts drop it.
var Empty = Item{LegacyID: 0, Identifier: "minecraft:air"}

// IsEmpty reports whether it is the Empty item.
func (it Item) IsEmpty() bool {
	return it == Empty
}

type itemJSON struct {
	LegacyID   int32  `json:"legacyId"`
	ID         string `json:"id"`
	Damage     *int32 `json:"damage,omitempty"`
	Count      *int32 `json:"count,omitempty"`
	NBT        string `json:"nbt_b64,omitempty"`
	BlockState string `json:"block_state_b64,omitempty"`
}

func (it Item) MarshalJSON() ([]byte, error) {
	return marshalJSON(itemJSON{
		LegacyID:   it.LegacyID,
		ID:         it.Identifier,
		Damage:     it.Damage.ptr(),
		Count:      it.Count.ptr(),
		NBT:        it.NBT,
		BlockState: it.BlockState,
	})
}

// IdentifierLookup resolves legacy numeric item IDs. *legacyid.Table
// implements it.
type IdentifierLookup interface {
	Lookup(id int32) (string, error)
}

// BlockPalette resolves block runtime IDs. *palette.Palette implements it.
type BlockPalette interface {
	Block(runtimeID int32) (nbt.Compound, error)
}

// Normalizer turns wire item stacks into Items.
type Normalizer struct {
	ids IdentifierLookup
	// palette is nil when no palette could be loaded; block states are
	// then left out.
	palette BlockPalette
}

// NewNormalizer returns a Normalizer. palette may be nil.
func NewNormalizer(ids IdentifierLookup, palette BlockPalette) Normalizer {
	return Normalizer{ids: ids, palette: palette}
}

// Item normalizes one stack. Defaults are dropped: damage 0, count 1 and,
// on outputs only, the any-damage value -1.
func (n Normalizer) Item(raw protocol.ItemStack, isOutput bool) (Item, error) {
	if raw.ID == 0 {
		return Empty, nil
	}
	name, err := n.ids.Lookup(raw.ID)
	if err != nil {
		return Item{}, err
	}
	it := Item{LegacyID: raw.ID, Identifier: name}

	if damage := int32(raw.Damage); damage != 0 && !(damage == -1 && isOutput) {
		it.Damage = Some(damage)
	}
	if raw.Count != 1 {
		it.Count = Some(raw.Count)
	}
	if raw.NBT != nil {
		if it.NBT, err = nbt.EncodeBase64(raw.NBT); err != nil {
			return Item{}, fmt.Errorf("item %d: user data: %w", raw.ID, err)
		}
	}
	if raw.BlockRuntimeID != 0 && n.palette != nil {
		state, err := n.palette.Block(raw.BlockRuntimeID)
		if err != nil {
			return Item{}, fmt.Errorf("item %d: %w", raw.ID, err)
		}
		if it.BlockState, err = nbt.EncodeBase64(state); err != nil {
			return Item{}, fmt.Errorf("item %d: block state %d: %w", raw.ID, raw.BlockRuntimeID, err)
		}
	}
	return it, nil
}

// Items normalizes stacks in order and drops Empty results. The returned
// slice is never nil.
func (n Normalizer) Items(raws []protocol.ItemStack, isOutput bool) ([]Item, error) {
	items := make([]Item, 0, len(raws))
	for i, raw := range raws {
		it, err := n.Item(raw, isOutput)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		if it.IsEmpty() {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// furnaceInput builds a furnace input from its id and damage pair. The
// wildcard damage 0x7fff and the values -1 and 0 are all dropped.
func (n Normalizer) furnaceInput(id, damage int32) (Item, error) {
	if id == 0 {
		return Empty, nil
	}
	name, err := n.ids.Lookup(id)
	if err != nil {
		return Item{}, err
	}
	if damage == 0x7fff {
		damage = -1
	}
	it := Item{LegacyID: id, Identifier: name}
	if damage != -1 && damage != 0 {
		it.Damage = Some(damage)
	}
	return it, nil
}
