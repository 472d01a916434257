// Package palette resolves block runtime IDs to block-state tags.
//
// A palette file is a gzip-compressed, big-endian NBT compound holding a
// "blocks" list. The list index of a block state is its runtime ID.
package palette

import (
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	javanbt "github.com/Tnze/go-mc/nbt"

	"github.com/mj41/recipedump/nbt"
)

// ErrIndexOutOfRange is returned for a runtime ID outside the palette.
var ErrIndexOutOfRange = errors.New("palette: runtime id out of range")

// Palette is an ordered list of block-state compounds. It is read-only
// after Load and safe for concurrent use.
type Palette struct {
	blocks []nbt.Compound
}

// New returns a Palette over blocks. The slice is not copied.
func New(blocks []nbt.Compound) *Palette {
	return &Palette{blocks: blocks}
}

// Len returns the number of block states.
func (p *Palette) Len() int {
	return len(p.blocks)
}

// Block returns the block-state tag for a runtime ID.
func (p *Palette) Block(runtimeID int32) (nbt.Compound, error) {
	if runtimeID < 0 || int(runtimeID) >= len(p.blocks) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, runtimeID, len(p.blocks))
	}
	return p.blocks[runtimeID], nil
}

type paletteFile struct {
	Blocks []map[string]any `nbt:"blocks"`
}

// Load reads a gzip-compressed palette from r.
//
// Decoded compounds have no inherent order, so entries are sorted by name;
// the encoded form of a block state is therefore stable across runs.
func Load(r io.Reader) (*Palette, error) {
	z, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("palette: opening gzip stream: %w", err)
	}
	defer z.Close()

	var f paletteFile
	if _, err := javanbt.NewDecoder(z).Decode(&f); err != nil {
		return nil, fmt.Errorf("palette: decoding NBT: %w", err)
	}
	if f.Blocks == nil {
		return nil, errors.New(`palette: no "blocks" list in root compound`)
	}

	blocks := make([]nbt.Compound, len(f.Blocks))
	for i, b := range f.Blocks {
		c, err := nbt.CompoundFrom(b)
		if err != nil {
			return nil, fmt.Errorf("palette: block %d: %w", i, err)
		}
		blocks[i] = c
	}
	return New(blocks), nil
}

// Open loads the palette file at path.
func Open(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// rootTag frames the palette as a root compound. Compound entries keep
// their order, which go-mc's encoder cannot do for maps, so the payload
// is written by the nbt package in big-endian order.
type rootTag []nbt.Compound

func (r rootTag) TagType() byte { return javanbt.TagCompound }

func (r rootTag) MarshalNBT(w io.Writer) error {
	values := make([]any, len(r))
	for i, b := range r {
		values[i] = b
	}
	root := nbt.Compound{{Name: "blocks", Value: nbt.List{Type: nbt.TagCompound, Values: values}}}
	return nbt.NewEncoderWithOrder(w, binary.BigEndian).EncodePayload(root)
}

// Write writes p to w in the format read by Load.
func (p *Palette) Write(w io.Writer) error {
	z := gzip.NewWriter(w)
	if err := javanbt.NewEncoder(z).Encode(rootTag(p.blocks), ""); err != nil {
		return fmt.Errorf("palette: encoding NBT: %w", err)
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("palette: closing gzip writer: %w", err)
	}
	return nil
}

// Save writes p to the file at path, creating or truncating it.
func (p *Palette) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return p.Write(f)
}
