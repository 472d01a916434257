// Package nbt writes the little-endian named binary tag format used by
// Bedrock Edition for item and block-state metadata.
//
// Only the encoding direction is implemented. Values are plain Go values
// (see Marshal for the accepted set) plus the two container types of this
// package: Compound, which keeps entry order, and List, which carries an
// explicit element type so that empty lists round-trip.
package nbt

import "errors"

// Tag type IDs.
const (
	TagEnd byte = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// ErrUnsupported is returned when a value has no tag representation.
var ErrUnsupported = errors.New("nbt: unsupported value")

// Compound is a compound tag. Entries are written in slice order.
type Compound []Entry

// Entry is a single named tag inside a Compound.
type Entry struct {
	Name  string
	Value any
}

// Get returns the value of the first entry named name.
func (c Compound) Get(name string) (any, bool) {
	for _, e := range c {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of the entry named name, or appends a new entry.
func (c *Compound) Set(name string, v any) {
	for i := range *c {
		if (*c)[i].Name == name {
			(*c)[i].Value = v
			return
		}
	}
	*c = append(*c, Entry{Name: name, Value: v})
}

// List is a list tag. All values must encode to Type.
type List struct {
	Type   byte
	Values []any
}

func typeName(t byte) string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	}
	return "Unknown"
}
