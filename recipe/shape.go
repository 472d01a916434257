package recipe

import (
	"errors"
	"fmt"
)

// shapeSymbols are handed out in order to the distinct items of a shaped
// recipe.
const shapeSymbols = "ABCDEFGHIJ"

// ErrAlphabetExhausted is returned when a shaped recipe has more distinct
// input items than there are shape symbols.
var ErrAlphabetExhausted = errors.New("recipe: more distinct shaped inputs than shape symbols")

// Symbol binds a shape character to the item it stands for.
type Symbol struct {
	Char byte
	Item Item
}

// ShapedLayout is the compact form of a shaped recipe grid. Shape has one
// string per row; a space is an empty slot.
type ShapedLayout struct {
	Shape []string
	// Symbols is in assignment order, which is also alphabetical.
	Symbols []Symbol
}

// Item returns the item bound to c.
func (l ShapedLayout) Item(c byte) (Item, bool) {
	for _, s := range l.Symbols {
		if s.Char == c {
			return s.Item, true
		}
	}
	return Item{}, false
}

// InferShape lays out a row-major grid of width*height items. Each
// distinct non-empty item gets the next symbol the first time it is met.
func InferShape(items []Item, width, height int) (ShapedLayout, error) {
	if width < 0 || height < 0 {
		return ShapedLayout{}, fmt.Errorf("recipe: invalid shape %dx%d", width, height)
	}
	if len(items) != width*height {
		return ShapedLayout{}, fmt.Errorf("recipe: %d inputs for a %dx%d shape", len(items), width, height)
	}

	layout := ShapedLayout{Shape: make([]string, height)}
	symbolOf := make(map[Item]byte)
	row := make([]byte, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			it := items[y*width+x]
			if it.IsEmpty() {
				row[x] = ' '
				continue
			}
			c, ok := symbolOf[it]
			if !ok {
				if len(layout.Symbols) == len(shapeSymbols) {
					return ShapedLayout{}, fmt.Errorf("%w: %d available", ErrAlphabetExhausted, len(shapeSymbols))
				}
				c = shapeSymbols[len(layout.Symbols)]
				symbolOf[it] = c
				layout.Symbols = append(layout.Symbols, Symbol{Char: c, Item: it})
			}
			row[x] = c
		}
		layout.Shape[y] = string(row)
	}
	return layout, nil
}

// inputMap is the JSON form of Symbols.
func (l ShapedLayout) inputMap() map[string]Item {
	m := make(map[string]Item, len(l.Symbols))
	for _, s := range l.Symbols {
		m[string(s.Char)] = s.Item
	}
	return m
}
