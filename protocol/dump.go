package protocol

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	bedrocknbt "github.com/sandertv/gophertunnel/minecraft/nbt"

	"github.com/mj41/recipedump/nbt"
)

// A dump is the JSON form of a CraftingData packet written by a proxy
// session. Item user data travels as base64 of little-endian NBT.

type dumpItem struct {
	ID             int32  `json:"id"`
	Damage         int16  `json:"damage"`
	Count          int32  `json:"count"`
	NBT            string `json:"nbt,omitempty"`
	BlockRuntimeID int32  `json:"blockRuntimeId,omitempty"`
}

type dumpRecipe struct {
	Type        Kind       `json:"type"`
	CraftingTag string     `json:"craftingTag,omitempty"`
	UUID        uuid.UUID  `json:"uuid"`
	RecipeID    string     `json:"recipeId,omitempty"`
	Priority    int32      `json:"priority,omitempty"`
	Width       int32      `json:"width,omitempty"`
	Height      int32      `json:"height,omitempty"`
	Inputs      []dumpItem `json:"inputs,omitempty"`
	Outputs     []dumpItem `json:"outputs,omitempty"`
	InputID     int32      `json:"inputId,omitempty"`
	InputDamage int32      `json:"inputDamage,omitempty"`
}

type dumpPotionMix struct {
	InputID     int32 `json:"inputId"`
	InputMeta   int32 `json:"inputMeta"`
	ReagentID   int32 `json:"reagentId"`
	ReagentMeta int32 `json:"reagentMeta"`
	OutputID    int32 `json:"outputId"`
	OutputMeta  int32 `json:"outputMeta"`
}

type dumpContainerMix struct {
	InputID   int32 `json:"inputId"`
	ReagentID int32 `json:"reagentId"`
	OutputID  int32 `json:"outputId"`
}

type dump struct {
	ProtocolVersion int32              `json:"protocolVersion"`
	Recipes         []dumpRecipe       `json:"recipes"`
	PotionMixes     []dumpPotionMix    `json:"potionMixes"`
	ContainerMixes  []dumpContainerMix `json:"containerMixes"`
}

// ReadCraftingData decodes a JSON packet dump.
func ReadCraftingData(r io.Reader) (*CraftingData, error) {
	var d dump
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("protocol: decoding dump: %w", err)
	}

	pk := &CraftingData{
		ProtocolVersion: d.ProtocolVersion,
		Recipes:         make([]RecipeData, len(d.Recipes)),
		PotionMixes:     make([]PotionMix, len(d.PotionMixes)),
		ContainerMixes:  make([]ContainerMix, len(d.ContainerMixes)),
	}
	for i, dr := range d.Recipes {
		inputs, err := decodeItems(dr.Inputs)
		if err != nil {
			return nil, fmt.Errorf("protocol: recipe %d input %w", i, err)
		}
		outputs, err := decodeItems(dr.Outputs)
		if err != nil {
			return nil, fmt.Errorf("protocol: recipe %d output %w", i, err)
		}
		pk.Recipes[i] = RecipeData{
			Type:        dr.Type,
			CraftingTag: dr.CraftingTag,
			UUID:        dr.UUID,
			RecipeID:    dr.RecipeID,
			Priority:    dr.Priority,
			Width:       dr.Width,
			Height:      dr.Height,
			Inputs:      inputs,
			Outputs:     outputs,
			InputID:     dr.InputID,
			InputDamage: dr.InputDamage,
		}
	}
	for i, m := range d.PotionMixes {
		pk.PotionMixes[i] = PotionMix(m)
	}
	for i, m := range d.ContainerMixes {
		pk.ContainerMixes[i] = ContainerMix(m)
	}
	return pk, nil
}

// OpenCraftingData reads the dump file at path.
func OpenCraftingData(path string) (*CraftingData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pk, err := ReadCraftingData(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pk, nil
}

func decodeItems(items []dumpItem) ([]ItemStack, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]ItemStack, len(items))
	for i, it := range items {
		tag, err := decodeItemNBT(it.NBT)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}
		out[i] = ItemStack{
			ID:             it.ID,
			Damage:         it.Damage,
			Count:          it.Count,
			NBT:            tag,
			BlockRuntimeID: it.BlockRuntimeID,
		}
	}
	return out, nil
}

func decodeItemNBT(s string) (nbt.Compound, error) {
	if s == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("nbt: %w", err)
	}
	var m map[string]any
	if err := bedrocknbt.UnmarshalEncoding(data, &m, bedrocknbt.LittleEndian); err != nil {
		return nil, fmt.Errorf("nbt: %w", err)
	}
	return nbt.CompoundFrom(m)
}
