// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"fmt"
	"strings"
)

// Operand is one argument of an instruction: Register, Immediate,
// Condition, Shift, Extend, Memory or Label.
type Operand interface {
	isOperand()
}

// Immediate is a numeric operand. Its width and signedness are decided by
// the field that consumes it.
type Immediate int64

func (Immediate) isOperand() {}

// Imm makes an immediate operand.
func Imm(value int64) Immediate {
	return Immediate(value)
}

// Condition is an architectural condition code.
type Condition int

const (
	COND_EQ = Condition(0x0) // eq
	COND_NE = Condition(0x1) // ne
	COND_CS = Condition(0x2) // cs
	COND_CC = Condition(0x3) // cc
	COND_MI = Condition(0x4) // mi
	COND_PL = Condition(0x5) // pl
	COND_VS = Condition(0x6) // vs
	COND_VC = Condition(0x7) // vc
	COND_HI = Condition(0x8) // hi
	COND_LS = Condition(0x9) // ls
	COND_GE = Condition(0xa) // ge
	COND_LT = Condition(0xb) // lt
	COND_GT = Condition(0xc) // gt
	COND_LE = Condition(0xd) // le
	COND_AL = Condition(0xe) // al
	COND_NV = Condition(0xf) // nv

	COND_HS = COND_CS
	COND_LO = COND_CC
)

var conditionNames = [16]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "al", "nv",
}

// ConditionByName looks up a condition mnemonic, including hs and lo.
func ConditionByName(name string) (cond Condition, err error) {
	name = strings.ToLower(name)
	switch name {
	case "hs":
		return COND_HS, nil
	case "lo":
		return COND_LO, nil
	}
	for n, str := range conditionNames {
		if str == name {
			cond = Condition(n)
			return
		}
	}
	err = ErrInvalidOperand
	return
}

// Invert returns the opposite condition.
func (cond Condition) Invert() Condition {
	return cond ^ 1
}

func (cond Condition) String() string {
	if cond < 0 || cond > COND_NV {
		return fmt.Sprintf("Condition(%d)", int(cond))
	}
	return conditionNames[cond]
}

func (Condition) isOperand() {}

// ShiftType selects the shift applied to a register operand.
type ShiftType int

const (
	SHIFT_LSL = ShiftType(0) // lsl
	SHIFT_LSR = ShiftType(1) // lsr
	SHIFT_ASR = ShiftType(2) // asr
	SHIFT_ROR = ShiftType(3) // ror
)

var shiftNames = [4]string{"lsl", "lsr", "asr", "ror"}

func (st ShiftType) String() string {
	if st < 0 || st > SHIFT_ROR {
		return fmt.Sprintf("ShiftType(%d)", int(st))
	}
	return shiftNames[st]
}

// Shift is a shifted-register modifier, e.g. "lsl #3".
type Shift struct {
	Type   ShiftType
	Amount int
}

func (Shift) isOperand() {}

// LSL is a logical shift left by amount.
func LSL(amount int) Shift { return Shift{SHIFT_LSL, amount} }

// LSR is a logical shift right by amount.
func LSR(amount int) Shift { return Shift{SHIFT_LSR, amount} }

// ASR is an arithmetic shift right by amount.
func ASR(amount int) Shift { return Shift{SHIFT_ASR, amount} }

// ROR is a rotate right by amount.
func ROR(amount int) Shift { return Shift{SHIFT_ROR, amount} }

// ExtendType selects the extension applied to a register operand.
type ExtendType int

const (
	EXTEND_UXTB = ExtendType(0) // uxtb
	EXTEND_UXTH = ExtendType(1) // uxth
	EXTEND_UXTW = ExtendType(2) // uxtw
	EXTEND_UXTX = ExtendType(3) // uxtx
	EXTEND_SXTB = ExtendType(4) // sxtb
	EXTEND_SXTH = ExtendType(5) // sxth
	EXTEND_SXTW = ExtendType(6) // sxtw
	EXTEND_SXTX = ExtendType(7) // sxtx
)

var extendNames = [8]string{"uxtb", "uxth", "uxtw", "uxtx", "sxtb", "sxth", "sxtw", "sxtx"}

func (et ExtendType) String() string {
	if et < 0 || et > EXTEND_SXTX {
		return fmt.Sprintf("ExtendType(%d)", int(et))
	}
	return extendNames[et]
}

// Extend is an extended-register modifier, e.g. "uxtw #2".
type Extend struct {
	Type   ExtendType
	Amount int
}

func (Extend) isOperand() {}

// Label is a handle on a code position owned by a Resolver.
// The zero Label is not a label.
type Label int

func (Label) isOperand() {}

// Size is the access-size tag of a memory operand.
type Size int

const (
	SIZE_NONE       = Size(0) // unspecified
	SIZE_HALFWORD   = Size(2) // 2 bytes
	SIZE_WORD       = Size(4) // 4 bytes
	SIZE_DOUBLEWORD = Size(8) // 8 bytes
)

// Bytes is the access size in bytes, 0 when unspecified.
func (size Size) Bytes() int64 {
	return int64(size)
}

func (size Size) valid() bool {
	switch size {
	case SIZE_NONE, SIZE_HALFWORD, SIZE_WORD, SIZE_DOUBLEWORD:
		return true
	}
	return false
}

//go:generate go tool stringer -linecomment -type=Anchor

// Anchor identifies which of the memory operand shapes is in use. The zero
// Memory has ANCHOR_NONE and is never valid.
type Anchor int

const (
	ANCHOR_NONE     = Anchor(0) // none
	ANCHOR_BASE     = Anchor(1) // base
	ANCHOR_ABSOLUTE = Anchor(2) // absolute
	ANCHOR_LABEL    = Anchor(3) // label
)

// Memory is a memory operand anchored on exactly one of a base register,
// an absolute address or a label. Build it with the Size constructors or
// NewMemory; the zero Memory is rejected by every encoder.
type Memory struct {
	anchor Anchor
	base   Register
	target uint64
	label  Label
	index  Register
	shift  int
	disp   int64
	size   Size
}

func (Memory) isOperand() {}

// Anchor is the operand shape in use.
func (mem Memory) Anchor() Anchor { return mem.anchor }

// Base is the base register of an ANCHOR_BASE operand.
func (mem Memory) Base() Register { return mem.base }

// Target is the address of an ANCHOR_ABSOLUTE operand.
func (mem Memory) Target() uint64 { return mem.target }

// Label is the label of an ANCHOR_LABEL operand.
func (mem Memory) Label() Label { return mem.label }

// Index is the index register, NoReg if there is none.
func (mem Memory) Index() Register { return mem.index }

// Shift is the left shift applied to the index.
func (mem Memory) Shift() int { return mem.shift }

// Disp is the signed byte displacement.
func (mem Memory) Disp() int64 { return mem.disp }

// Size is the access size tag.
func (mem Memory) Size() Size { return mem.size }

// HasIndex reports if an index register is present.
func (mem Memory) HasIndex() bool { return !mem.index.IsNone() }

// WithSize returns a copy of mem with the access size tag s.
func (mem Memory) WithSize(s Size) Memory {
	mem.size = s
	return mem
}

// MemorySpec is the all-optional description accepted by NewMemory.
// Exactly one of Base, Target and Label must be set.
type MemorySpec struct {
	Base   *Register
	Target *uint64
	Label  *Label
	Index  Register // NoReg for none.
	Shift  int      // Index scale, 0..3.
	Disp   int64
	Size   Size
}

// NewMemory validates a MemorySpec into a Memory operand.
func NewMemory(spec MemorySpec) (mem Memory, err error) {
	anchors := 0
	if spec.Base != nil {
		anchors++
		mem.anchor = ANCHOR_BASE
		mem.base = *spec.Base
	}
	if spec.Target != nil {
		anchors++
		mem.anchor = ANCHOR_ABSOLUTE
		mem.target = *spec.Target
	}
	if spec.Label != nil {
		anchors++
		mem.anchor = ANCHOR_LABEL
		mem.label = *spec.Label
	}
	if anchors != 1 {
		err = ErrInvalidOperand
		mem = Memory{}
		return
	}

	if mem.anchor == ANCHOR_BASE {
		base := mem.base
		if !base.valid() || base.IsNone() || base.IsZero() || !base.Is64() {
			err = ErrInvalidOperand
			mem = Memory{}
			return
		}
	}

	if mem.anchor == ANCHOR_LABEL && mem.label <= 0 {
		err = ErrInvalidOperand
		mem = Memory{}
		return
	}

	index := spec.Index
	if !index.valid() || index.Class == CLASS_SP {
		err = ErrInvalidOperand
		mem = Memory{}
		return
	}

	if spec.Shift < 0 || spec.Shift > 3 || (index.IsNone() && spec.Shift != 0) {
		err = ErrInvalidOperand
		mem = Memory{}
		return
	}

	if !spec.Size.valid() {
		err = ErrInvalidOperand
		mem = Memory{}
		return
	}

	mem.index = index
	mem.shift = spec.Shift
	mem.disp = spec.Disp
	mem.size = spec.Size
	return
}

// MustMemory panics if err is not nil.
func MustMemory(mem Memory, err error) Memory {
	if err != nil {
		panic(err)
	}
	return mem
}

// Ptr is [base, #disp] with the access size given by s.
func (s Size) Ptr(base Register, disp int64) (Memory, error) {
	return NewMemory(MemorySpec{Base: &base, Disp: disp, Size: s})
}

// PtrIndex is [base, index, lsl #shift] plus disp.
func (s Size) PtrIndex(base Register, index Register, shift int, disp int64) (Memory, error) {
	return NewMemory(MemorySpec{Base: &base, Index: index, Shift: shift, Disp: disp, Size: s})
}

// PtrAbs is the absolute address target + disp.
func (s Size) PtrAbs(target uint64, disp int64) (Memory, error) {
	return NewMemory(MemorySpec{Target: &target, Disp: disp, Size: s})
}

// PtrAbsIndex is target + index<<shift + disp.
func (s Size) PtrAbsIndex(target uint64, index Register, shift int, disp int64) (Memory, error) {
	return NewMemory(MemorySpec{Target: &target, Index: index, Shift: shift, Disp: disp, Size: s})
}

// PtrLabel is label + disp.
func (s Size) PtrLabel(label Label, disp int64) (Memory, error) {
	return NewMemory(MemorySpec{Label: &label, Disp: disp, Size: s})
}

// PtrLabelIndex is label + index<<shift + disp.
func (s Size) PtrLabelIndex(label Label, index Register, shift int, disp int64) (Memory, error) {
	return NewMemory(MemorySpec{Label: &label, Index: index, Shift: shift, Disp: disp, Size: s})
}

// Ptr is a base + disp operand of unspecified size.
func Ptr(base Register, disp int64) (Memory, error) {
	return SIZE_NONE.Ptr(base, disp)
}

// HalfwordPtr is a base + disp operand of a 2 byte access.
func HalfwordPtr(base Register, disp int64) (Memory, error) {
	return SIZE_HALFWORD.Ptr(base, disp)
}

// WordPtr is a base + disp operand of a 4 byte access.
func WordPtr(base Register, disp int64) (Memory, error) {
	return SIZE_WORD.Ptr(base, disp)
}

// DoublewordPtr is a base + disp operand of an 8 byte access.
func DoublewordPtr(base Register, disp int64) (Memory, error) {
	return SIZE_DOUBLEWORD.Ptr(base, disp)
}

func (mem Memory) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	switch mem.anchor {
	case ANCHOR_BASE:
		sb.WriteString(mem.base.String())
	case ANCHOR_ABSOLUTE:
		fmt.Fprintf(&sb, "%#x", mem.target)
	case ANCHOR_LABEL:
		fmt.Fprintf(&sb, "L%d", int(mem.label))
	default:
		sb.WriteString("?")
	}
	if mem.HasIndex() {
		fmt.Fprintf(&sb, ", %v", mem.index)
		if mem.shift != 0 {
			fmt.Fprintf(&sb, ", lsl #%d", mem.shift)
		}
	}
	if mem.disp != 0 {
		fmt.Fprintf(&sb, ", #%d", mem.disp)
	}
	sb.WriteString("]")
	return sb.String()
}
