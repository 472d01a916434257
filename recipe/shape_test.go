package recipe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stick  = Item{LegacyID: idStick, Identifier: "minecraft:stick"}
	planks = Item{LegacyID: idPlanks, Identifier: "minecraft:planks"}
)

func TestInferShapeSticks(t *testing.T) {
	layout, err := InferShape([]Item{stick, stick, Empty, Empty}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "  "}, layout.Shape)
	assert.Equal(t, []Symbol{{Char: 'A', Item: stick}}, layout.Symbols)
	assert.Equal(t, map[string]Item{"A": stick}, layout.inputMap())

	got, ok := layout.Item('A')
	assert.True(t, ok)
	assert.Equal(t, stick, got)
	_, ok = layout.Item('B')
	assert.False(t, ok)
}

func TestInferShapeFirstSeenOrder(t *testing.T) {
	// Planks first in row-major order, so planks is A even though stick
	// appears more often.
	items := []Item{
		planks, Empty, planks,
		stick, stick, stick,
		Empty, stick, Empty,
	}
	layout, err := InferShape(items, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A A", "BBB", " B "}, layout.Shape)
	assert.Equal(t, []Symbol{{'A', planks}, {'B', stick}}, layout.Symbols)
}

func TestInferShapeDeterministic(t *testing.T) {
	items := make([]Item, 9)
	for i := range items {
		items[i] = Item{LegacyID: idPlanks, Identifier: "minecraft:planks", Damage: Some(int32(i % 4))}
	}
	first, err := InferShape(items, 3, 3)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := InferShape(items, 3, 3)
		require.NoError(t, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestInferShapeFullEquality(t *testing.T) {
	withDamage := stick
	withDamage.Damage = Some(1)
	withTag := stick
	withTag.NBT = "CgAAAA=="

	layout, err := InferShape([]Item{stick, withDamage, withTag, stick}, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABCA"}, layout.Shape)
	assert.Len(t, layout.Symbols, 3, spew.Sdump(layout))
}

func TestInferShapeDimensions(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {1, 3}, {3, 1}, {2, 3}, {3, 3}, {0, 0}} {
		w, h := dim[0], dim[1]
		t.Run(fmt.Sprintf("%dx%d", w, h), func(t *testing.T) {
			items := make([]Item, w*h)
			for i := range items {
				if i%2 == 0 {
					items[i] = stick
				} else {
					items[i] = Empty
				}
			}
			layout, err := InferShape(items, w, h)
			require.NoError(t, err)
			require.Len(t, layout.Shape, h)
			for _, row := range layout.Shape {
				assert.Len(t, row, w)
			}
		})
	}
}

func distinctItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{LegacyID: idPlanks, Identifier: "minecraft:planks", Damage: Some(int32(i + 1))}
	}
	return items
}

func TestInferShapeAlphabetBound(t *testing.T) {
	items := append(distinctItems(10), Empty, Empty)
	layout, err := InferShape(items, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABCD", "EFGH", "IJ  "}, layout.Shape)
	assert.Len(t, layout.Symbols, 10)

	items = append(distinctItems(11), Empty)
	_, err = InferShape(items, 4, 3)
	assert.True(t, errors.Is(err, ErrAlphabetExhausted), "got %v", err)
}

func TestInferShapeBadInput(t *testing.T) {
	_, err := InferShape([]Item{stick}, 2, 2)
	assert.Error(t, err)

	_, err = InferShape(nil, -1, 0)
	assert.Error(t, err)
}
