// Package legacyid maps legacy numeric item IDs to string identifiers.
package legacyid

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tidwall/gjson"
)

// ErrUnknownID is returned by Lookup for an ID without an identifier.
var ErrUnknownID = errors.New("legacyid: unknown item id")

// Table is a read-only numeric ID to identifier mapping.
type Table struct {
	names      map[int32]string
	duplicates int
}

// New returns a Table over m. The map is not copied.
func New(m map[int32]string) *Table {
	return &Table{names: m}
}

// Lookup returns the identifier registered for id.
func (t *Table) Lookup(id int32) (string, error) {
	name, ok := t.names[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	return name, nil
}

// Len returns the number of mapped IDs.
func (t *Table) Len() int {
	return len(t.names)
}

// Duplicates returns how many entries Load skipped because their numeric
// ID was already taken by an earlier identifier.
func (t *Table) Duplicates() int {
	return t.duplicates
}

// Load reads a JSON object of identifier to numeric ID, the layout of
// legacy_item_ids.json:
//
//	{"minecraft:stone": 1, "minecraft:grass": 2}
//
// When two identifiers share an ID the first one in the document wins.
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("legacyid: reading: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("legacyid: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("legacyid: top-level value is not an object")
	}

	t := &Table{names: make(map[int32]string)}
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number || value.Num != math.Trunc(value.Num) ||
			value.Num < 0 || value.Num > math.MaxInt32 {
			err = fmt.Errorf("legacyid: %q: id %s is not a non-negative 32-bit integer", key.String(), value.Raw)
			return false
		}
		id := int32(value.Int())
		if _, taken := t.names[id]; taken {
			t.duplicates++
			return true
		}
		t.names[id] = key.String()
		return true
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Open loads the table file at path.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
