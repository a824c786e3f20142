// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"math/bits"
)

// Site is where an instruction being encoded will live.
type Site struct {
	Offset   int       // Byte offset in the code buffer.
	Origin   uint64    // Absolute address of buffer offset 0.
	Resolver *Resolver // Label table, nil if labels are not used.
}

// Encoding is one encoded instruction.
type Encoding struct {
	Word       uint32
	Relocation *Relocation // Set when a referenced label is still unbound.
}

// Encode builds the instruction word for desc at site from ops.
// Fixed bits come only from desc.Opcode; fields fully covered by
// desc.Mask do not consume an operand.
func Encode(desc Descriptor, site Site, ops ...Operand) (result Encoding, err error) {
	defer func() {
		if err != nil {
			err = ErrEncode{Instruction: desc.Instruction, Err: err}
			result = Encoding{}
		}
	}()

	err = desc.Verify()
	if err != nil {
		return
	}

	if desc.Group <= GROUP_NONE || desc.Group >= GROUP_COUNT || groupEncoders[desc.Group] == nil {
		err = ErrGroup
		return
	}

	if rewrite, ok := aliasRewrites[desc.Instruction]; ok {
		ops, err = rewrite(ops)
		if err != nil {
			return
		}
	}

	enc := &encoding{desc: desc, site: site, ops: ops, word: desc.Opcode}
	err = groupEncoders[desc.Group](enc)
	if err != nil {
		return
	}

	if enc.pos != len(ops) {
		err = ErrOperand{Index: enc.pos, Err: ErrOperandTypeMismatch}
		return
	}

	if (enc.word^desc.Opcode)&desc.Mask != 0 {
		err = ErrOpcodeMask
		return
	}

	result.Word = enc.word
	if enc.reloc != nil {
		enc.reloc.Word = enc.word
		result.Relocation = enc.reloc
	}

	return
}

// encoding is the state of one Encode call.
type encoding struct {
	desc  Descriptor
	site  Site
	ops   []Operand
	pos   int
	word  uint32
	reloc *Relocation
}

// more reports if operands remain.
func (enc *encoding) more() bool {
	return enc.pos < len(enc.ops)
}

// peek returns the next operand without consuming it.
func (enc *encoding) peek() Operand {
	if !enc.more() {
		return nil
	}
	return enc.ops[enc.pos]
}

// next consumes an operand.
func (enc *encoding) next() (op Operand, err error) {
	if !enc.more() {
		err = ErrOperand{Index: enc.pos, Err: ErrOperandTypeMismatch}
		return
	}

	op = enc.ops[enc.pos]
	enc.pos++
	return
}

// fail locates err at the last consumed operand.
func (enc *encoding) fail(err error) error {
	index := enc.pos - 1
	if index < 0 {
		index = 0
	}
	return ErrOperand{Index: index, Err: err}
}

func (enc *encoding) mismatch() error {
	return enc.fail(ErrOperandTypeMismatch)
}

// fixed reports if every bit of the field is fixed by the mask.
func (enc *encoding) fixed(lsb, width uint) bool {
	mask := (uint32(1)<<width - 1) << lsb
	return enc.desc.Mask&mask == mask
}

// put sets a field of the word.
func (enc *encoding) put(lsb, width uint, value uint32) {
	enc.word |= (value & (uint32(1)<<width - 1)) << lsb
}

// bit returns a single bit of the descriptor opcode.
func (enc *encoding) bit(n uint) bool {
	return enc.desc.Opcode&(uint32(1)<<n) != 0
}

// sizeBit sets bit n for a 64 bit operation, or checks it when fixed.
func (enc *encoding) sizeBit(n uint, is64 bool) error {
	if enc.fixed(n, 1) {
		if enc.bit(n) != is64 {
			return ErrOperand{Index: 0, Err: ErrOperandTypeMismatch}
		}
		return nil
	}
	if is64 {
		enc.put(n, 1, 1)
	}
	return nil
}

type regKind int

const (
	regZR regKind = iota // index 31 is the zero register
	regSP                // index 31 is the stack pointer
)

// register consumes a register operand of the given kind.
func (enc *encoding) register(kind regKind) (reg Register, err error) {
	op, err := enc.next()
	if err != nil {
		return
	}

	reg, ok := op.(Register)
	if !ok || reg.IsNone() || !reg.valid() {
		err = enc.mismatch()
		return
	}

	switch kind {
	case regZR:
		if reg.Class == CLASS_SP {
			err = enc.mismatch()
		}
	case regSP:
		if reg.IsZero() {
			err = enc.mismatch()
		}
	}

	return
}

// regField is a register field of an instruction.
type regField struct {
	lsb   uint
	kind  regKind
	width int // Exact width required, or 0 for the operation width.
}

// registers consumes the register fields not fixed by the mask. The
// operation width is set by the first field with no explicit width, and
// all other such fields must agree with it.
func (enc *encoding) registers(fields ...regField) (width int, err error) {
	for _, field := range fields {
		if enc.fixed(field.lsb, 5) {
			continue
		}

		var reg Register
		reg, err = enc.register(field.kind)
		if err != nil {
			return
		}

		switch {
		case field.width != 0:
			if reg.Width != field.width {
				err = enc.mismatch()
				return
			}
		case width == 0:
			width = reg.Width
		case reg.Width != width:
			err = enc.mismatch()
			return
		}

		enc.put(field.lsb, 5, uint32(reg.Index))
	}

	return
}

// immediate consumes an immediate operand.
func (enc *encoding) immediate() (value int64, err error) {
	op, err := enc.next()
	if err != nil {
		return
	}

	imm, ok := op.(Immediate)
	if !ok {
		err = enc.mismatch()
		return
	}

	value = int64(imm)
	return
}

// checkRange validates value against [min, max].
func (enc *encoding) checkRange(value, min, max int64) error {
	if value < min || value > max {
		return enc.fail(ErrRange{Value: value, Min: min, Max: max})
	}
	return nil
}

// uimm consumes an immediate in [0, max] into a field.
func (enc *encoding) uimm(lsb, width uint, max int64) (value int64, err error) {
	value, err = enc.immediate()
	if err != nil {
		return
	}

	err = enc.checkRange(value, 0, max)
	if err != nil {
		return
	}

	enc.put(lsb, width, uint32(value))
	return
}

// condition consumes a condition operand.
func (enc *encoding) condition() (cond Condition, err error) {
	op, err := enc.next()
	if err != nil {
		return
	}

	cond, ok := op.(Condition)
	if !ok || cond < COND_EQ || cond > COND_NV {
		err = enc.mismatch()
	}
	return
}

// memory consumes a memory operand.
func (enc *encoding) memory() (mem Memory, err error) {
	op, err := enc.next()
	if err != nil {
		return
	}

	mem, ok := op.(Memory)
	if !ok || mem.Anchor() == ANCHOR_NONE {
		err = enc.mismatch()
	}
	return
}

// baseMemory consumes a base register memory operand, with or without
// an index, and sets the base register field at bit 5.
func (enc *encoding) baseMemory(indexed bool) (mem Memory, err error) {
	mem, err = enc.memory()
	if err != nil {
		return
	}

	if mem.Anchor() != ANCHOR_BASE || mem.HasIndex() != indexed {
		err = enc.mismatch()
		return
	}

	enc.put(5, 5, uint32(mem.Base().Index))
	return
}

// target consumes a PC-relative operand into field: a label, a label or
// absolute memory operand, or an immediate byte displacement.
func (enc *encoding) target(field Field) (err error) {
	op, err := enc.next()
	if err != nil {
		return
	}

	var disp int64
	switch op := op.(type) {
	case Label:
		return enc.labelTarget(field, op, 0)
	case Memory:
		if op.HasIndex() {
			return enc.mismatch()
		}
		switch op.Anchor() {
		case ANCHOR_LABEL:
			return enc.labelTarget(field, op.Label(), op.Disp())
		case ANCHOR_ABSOLUTE:
			here := enc.site.Origin + uint64(enc.site.Offset)
			disp = int64(op.Target()-here) + op.Disp()
		default:
			return enc.mismatch()
		}
	case Immediate:
		disp = int64(op)
	default:
		return enc.mismatch()
	}

	patch, err := field.Encode(disp)
	if err != nil {
		return enc.fail(err)
	}

	enc.word |= patch
	return
}

// labelTarget encodes a label reference, or records a relocation when
// the label is not bound yet.
func (enc *encoding) labelTarget(field Field, label Label, addend int64) (err error) {
	resolver := enc.site.Resolver
	if resolver == nil {
		return enc.fail(ErrLabelInvalid)
	}

	offset, bound, err := resolver.Offset(label)
	if err != nil {
		return enc.fail(err)
	}

	if !bound {
		enc.reloc = &Relocation{
			Offset: enc.site.Offset,
			Label:  label,
			Addend: addend,
			Field:  field,
		}
		return
	}

	patch, err := field.Encode(int64(offset) + addend - int64(enc.site.Offset))
	if err != nil {
		return enc.fail(err)
	}

	enc.word |= patch
	return
}

// encodeBitmask finds the N:immr:imms encoding of a logical immediate.
// value must already be replicated to 64 bits for 32 bit operations.
func encodeBitmask(value uint64) (n, immr, imms uint32, ok bool) {
	if value == 0 || value == ^uint64(0) {
		return
	}

	// Smallest repeating element.
	size := uint(64)
	for size > 2 {
		half := size / 2
		mask := uint64(1)<<half - 1
		if value&mask != (value>>half)&mask {
			break
		}
		size = half
	}

	mask := ^uint64(0) >> (64 - size)
	elem := value & mask
	ones := bits.OnesCount64(elem)
	run := uint64(1)<<ones - 1

	for rot := uint(0); rot < size; rot++ {
		rotated := (elem>>rot | elem<<(size-rot)) & mask
		if rotated != run {
			continue
		}
		immr = uint32((size - rot) % size)
		imms = uint32((^(size-1)<<1)&0x3f) | uint32(ones-1)
		if size == 64 {
			n = 1
		}
		ok = true
		return
	}

	return
}

// decodeBitmask expands N:immr:imms back to a 64 bit value.
func decodeBitmask(n, immr, imms uint32) (value uint64, ok bool) {
	combined := n<<6 | (^imms & 0x3f)
	if combined == 0 {
		return
	}
	length := bits.Len32(combined) - 1
	size := uint(1) << length
	levels := uint32(size - 1)
	s := imms & levels
	r := immr & levels
	if s == levels {
		return
	}

	mask := ^uint64(0) >> (64 - size)
	elem := uint64(1)<<(s+1) - 1
	elem = (elem>>r | elem<<(size-uint(r))) & mask

	for width := size; width < 64; width *= 2 {
		elem |= elem << width
	}

	value = elem
	ok = true
	return
}
