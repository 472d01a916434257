// Package protocol holds the decoded form of the crafting data packet, as
// handed over by a protocol decoder, and a reader for JSON packet dumps.
package protocol

import (
	"github.com/google/uuid"

	"github.com/mj41/recipedump/nbt"
)

// ItemStack is an item as it appears on the wire.
type ItemStack struct {
	ID     int32
	Damage int16
	Count  int32
	// NBT is the item's user data, nil when the stack carries none.
	NBT nbt.Compound
	// BlockRuntimeID indexes the block palette. Zero means no block state.
	BlockRuntimeID int32
}

// RecipeData is one crafting data entry. Which fields are meaningful
// depends on Type.
type RecipeData struct {
	Type        Kind
	CraftingTag string
	UUID        uuid.UUID
	RecipeID    string
	Priority    int32

	// Shaped kinds only.
	Width, Height int32

	Inputs  []ItemStack
	Outputs []ItemStack

	// Furnace kinds only.
	InputID     int32
	InputDamage int32
}

// PotionMix is a brewing stand recipe.
type PotionMix struct {
	InputID     int32
	InputMeta   int32
	ReagentID   int32
	ReagentMeta int32
	OutputID    int32
	OutputMeta  int32
}

// ContainerMix is a brewing recipe that changes the potion container.
type ContainerMix struct {
	InputID   int32
	ReagentID int32
	OutputID  int32
}

// CraftingData is the decoded crafting data packet.
type CraftingData struct {
	// ProtocolVersion of the codec that decoded the packet.
	ProtocolVersion int32
	Recipes         []RecipeData
	PotionMixes     []PotionMix
	ContainerMixes  []ContainerMix
}
