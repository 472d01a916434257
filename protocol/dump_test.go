package protocol

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj41/recipedump/nbt"
)

func TestReadCraftingData(t *testing.T) {
	tag, err := nbt.EncodeBase64(nbt.Compound{
		{Name: "display", Value: nbt.Compound{{Name: "Name", Value: "Sharp"}}},
		{Name: "Damage", Value: int32(3)},
	})
	require.NoError(t, err)

	in := `{
		"protocolVersion": 407,
		"recipes": [
			{"type": 1, "craftingTag": "crafting_table", "recipeId": "minecraft:stick", "priority": 2,
			 "width": 1, "height": 2,
			 "inputs": [{"id": 5, "damage": 0, "count": 1}, {"id": 5, "damage": 0, "count": 1}],
			 "outputs": [{"id": 280, "damage": 0, "count": 4, "nbt": "` + tag + `", "blockRuntimeId": 7}]},
			{"type": 4, "uuid": "d81aaeaf-e172-4440-9225-868df030d27b"},
			{"type": 3, "craftingTag": "furnace", "inputId": 17, "inputDamage": 32767,
			 "outputs": [{"id": 263, "damage": 1, "count": 1}]}
		],
		"potionMixes": [{"inputId": 373, "inputMeta": 0, "reagentId": 372, "reagentMeta": 0, "outputId": 373, "outputMeta": 4}],
		"containerMixes": [{"inputId": 373, "reagentId": 289, "outputId": 438}]
	}`

	pk, err := ReadCraftingData(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, int32(407), pk.ProtocolVersion)
	require.Len(t, pk.Recipes, 3)

	shaped := pk.Recipes[0]
	assert.Equal(t, Shaped, shaped.Type)
	assert.Equal(t, "crafting_table", shaped.CraftingTag)
	assert.Equal(t, "minecraft:stick", shaped.RecipeID)
	assert.Equal(t, int32(2), shaped.Priority)
	assert.Equal(t, int32(1), shaped.Width)
	assert.Equal(t, int32(2), shaped.Height)
	require.Len(t, shaped.Inputs, 2)
	assert.Nil(t, shaped.Inputs[0].NBT)
	require.Len(t, shaped.Outputs, 1)
	out := shaped.Outputs[0]
	assert.Equal(t, int32(280), out.ID)
	assert.Equal(t, int32(4), out.Count)
	assert.Equal(t, int32(7), out.BlockRuntimeID)
	assert.Equal(t, nbt.Compound{
		{Name: "Damage", Value: int32(3)},
		{Name: "display", Value: nbt.Compound{{Name: "Name", Value: "Sharp"}}},
	}, out.NBT)

	multi := pk.Recipes[1]
	assert.Equal(t, Multi, multi.Type)
	assert.Equal(t, uuid.MustParse("d81aaeaf-e172-4440-9225-868df030d27b"), multi.UUID)

	furnace := pk.Recipes[2]
	assert.Equal(t, FurnaceData, furnace.Type)
	assert.Equal(t, int32(17), furnace.InputID)
	assert.Equal(t, int32(0x7fff), furnace.InputDamage)

	assert.Equal(t, []PotionMix{{373, 0, 372, 0, 373, 4}}, pk.PotionMixes)
	assert.Equal(t, []ContainerMix{{373, 289, 438}}, pk.ContainerMixes)
}

func TestReadCraftingDataErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", `{"recipes": [`},
		{"unknown field", `{"recipez": []}`},
		{"bad base64", `{"recipes": [{"type": 0, "inputs": [{"id": 1, "nbt": "***"}]}]}`},
		{"bad nbt", `{"recipes": [{"type": 0, "outputs": [{"id": 1, "nbt": "AQID"}]}]}`},
		{"bad uuid", `{"recipes": [{"type": 4, "uuid": "nope"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCraftingData(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestOpenCraftingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crafting_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"protocolVersion": 390}`), 0o644))

	pk, err := OpenCraftingData(path)
	require.NoError(t, err)
	assert.Equal(t, int32(390), pk.ProtocolVersion)
	assert.Empty(t, pk.Recipes)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ShapedChemistry", ShapedChemistry.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())

	assert.True(t, Shaped.IsShaped())
	assert.True(t, ShulkerBox.IsShapeless())
	assert.True(t, FurnaceData.IsFurnace())
	assert.False(t, Multi.IsShaped() || Multi.IsShapeless() || Multi.IsFurnace())
	assert.False(t, SmithingTrim.IsShaped() || SmithingTrim.IsShapeless() || SmithingTrim.IsFurnace())
}
