package protocol

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the crafting data entry type. Values are the protocol's own
// ordinals and appear verbatim in exported documents.
type Kind int32

const (
	Shapeless Kind = iota
	Shaped
	Furnace
	FurnaceData
	Multi
	ShulkerBox
	ShapelessChemistry
	ShapedChemistry
	SmithingTransform
	SmithingTrim
)

// IsShaped reports whether recipes of this kind use a shaped grid.
func (k Kind) IsShaped() bool {
	return k == Shaped || k == ShapedChemistry
}

// IsShapeless reports whether recipes of this kind list inputs unordered.
func (k Kind) IsShapeless() bool {
	return k == Shapeless || k == ShapelessChemistry || k == ShulkerBox
}

// IsFurnace reports whether recipes of this kind have one input and output.
func (k Kind) IsFurnace() bool {
	return k == Furnace || k == FurnaceData
}
