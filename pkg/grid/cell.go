package grid

// Cell packs one simulation cell into 16 bits: the low byte is the material
// ID (0 = empty), the high byte is a flags bitmask. Material and flags stay
// independently maskable; what a material physically is (powder, fluid, gas)
// lives in external lookup tables, never in the cell itself.
type Cell uint16

// Flag bits stored in the high byte of a Cell.
const (
	// FlagMirrored biases lateral movement to the left instead of the right.
	FlagMirrored uint8 = 1 << iota
	// FlagWet marks powder that has absorbed fluid.
	FlagWet
	// FlagSettled marks a cell that failed to move on its last visit.
	FlagSettled
)

// Make builds a cell from a material ID and a flags bitmask.
func Make(material, flags uint8) Cell {
	return Cell(uint16(flags)<<8 | uint16(material))
}

// MakeMaterial builds a cell carrying only a material, with no flags set.
func MakeMaterial(material uint8) Cell {
	return Cell(material)
}

// Material returns the cell's material ID.
func (c Cell) Material() uint8 { return uint8(c & 0xff) }

// Flags returns the cell's flags byte.
func (c Cell) Flags() uint8 { return uint8(c >> 8) }

// WithFlags returns a copy of the cell with its flags byte replaced.
func (c Cell) WithFlags(flags uint8) Cell {
	return Make(c.Material(), flags)
}

// HasFlags reports whether every bit in mask is set on the cell.
func (c Cell) HasFlags(mask uint8) bool {
	return c.Flags()&mask == mask
}

// Empty reports whether the cell holds no material.
func (c Cell) Empty() bool { return c.Material() == 0 }
