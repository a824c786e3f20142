// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

// Field describes where a PC-relative displacement lives in a word.
type Field struct {
	Offset uint  // Bit position of the (high part of the) field.
	Width  uint  // Total field width in bits.
	Units  int64 // Bytes per field unit.
	Signed bool
	Split  bool // Low two bits live at 29..30, as in adr.
}

var (
	fieldBranch26 = Field{Offset: 0, Width: 26, Units: 4, Signed: true}
	fieldBranch19 = Field{Offset: 5, Width: 19, Units: 4, Signed: true}
	fieldBranch14 = Field{Offset: 5, Width: 14, Units: 4, Signed: true}
	fieldAdr      = Field{Offset: 5, Width: 21, Units: 1, Signed: true, Split: true}
	fieldAdrp     = Field{Offset: 5, Width: 21, Units: 1 << 12, Signed: true, Split: true}
)

// Limits returns the range of field values, in units.
func (field Field) Limits() (min, max int64) {
	if field.Signed {
		min = -(int64(1) << (field.Width - 1))
		max = int64(1)<<(field.Width-1) - 1
	} else {
		max = int64(1)<<field.Width - 1
	}
	return
}

// Mask is the set of word bits the field occupies.
func (field Field) Mask() uint32 {
	if field.Split {
		return 3<<29 | (uint32(1)<<(field.Width-2)-1)<<field.Offset
	}
	return (uint32(1)<<field.Width - 1) << field.Offset
}

// Encode converts a byte displacement into the field bits.
func (field Field) Encode(disp int64) (bits uint32, err error) {
	units := field.Units
	if units <= 0 {
		units = 1
	}
	if disp%units != 0 {
		err = ErrAlign{Value: disp, Units: units}
		return
	}
	value := disp / units
	min, max := field.Limits()
	if value < min || value > max {
		err = ErrRange{Value: value, Min: min, Max: max}
		return
	}

	raw := uint32(value) & (uint32(1)<<field.Width - 1)
	if field.Split {
		bits = (raw&3)<<29 | (raw>>2)<<field.Offset
	} else {
		bits = raw << field.Offset
	}
	return
}

// Decode extracts the byte displacement from a word.
func (field Field) Decode(word uint32) (disp int64) {
	var raw uint32
	if field.Split {
		raw = (word>>29)&3 | ((word>>field.Offset)&(uint32(1)<<(field.Width-2)-1))<<2
	} else {
		raw = (word >> field.Offset) & (uint32(1)<<field.Width - 1)
	}
	value := int64(raw)
	if field.Signed && raw&(uint32(1)<<(field.Width-1)) != 0 {
		value -= int64(1) << field.Width
	}
	units := field.Units
	if units <= 0 {
		units = 1
	}
	disp = value * units
	return
}

// Relocation is a pending patch of a PC-relative field that refers to a
// label not yet bound when the instruction was encoded.
type Relocation struct {
	Offset int    // Byte offset of the instruction.
	Label  Label  // Referenced label.
	Addend int64  // Added to the label offset.
	Word   uint32 // Instruction with the field zeroed.
	Field  Field
}

// Patch returns the instruction word with the field set for a label
// bound at target.
func (rel Relocation) Patch(target int) (word uint32, err error) {
	disp := int64(target) + rel.Addend - int64(rel.Offset)
	bits, err := rel.Field.Encode(disp)
	if err != nil {
		return
	}

	word = rel.Word&^rel.Field.Mask() | bits
	return
}
