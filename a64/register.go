// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"fmt"
	"strings"
)

// RegClass is the architectural role of a register.
type RegClass int

const (
	CLASS_NONE = RegClass(0) // none
	CLASS_GPR  = RegClass(1) // general purpose (index 31 is the zero register)
	CLASS_SP   = RegClass(2) // stack pointer
	CLASS_FP   = RegClass(3) // frame pointer
	CLASS_LR   = RegClass(4) // link register
)

func (rc RegClass) String() string {
	switch rc {
	case CLASS_NONE:
		return "none"
	case CLASS_GPR:
		return "gpr"
	case CLASS_SP:
		return "sp"
	case CLASS_FP:
		return "fp"
	case CLASS_LR:
		return "lr"
	}
	return fmt.Sprintf("RegClass(%d)", int(rc))
}

// Register is an immutable register operand.
type Register struct {
	Class RegClass
	Width int // 32 or 64, 0 for CLASS_NONE.
	Index int // 0..31
}

// NoReg marks an absent base or index in a memory operand.
var NoReg = Register{}

var (
	X0  = Register{CLASS_GPR, 64, 0}
	X1  = Register{CLASS_GPR, 64, 1}
	X2  = Register{CLASS_GPR, 64, 2}
	X3  = Register{CLASS_GPR, 64, 3}
	X4  = Register{CLASS_GPR, 64, 4}
	X5  = Register{CLASS_GPR, 64, 5}
	X6  = Register{CLASS_GPR, 64, 6}
	X7  = Register{CLASS_GPR, 64, 7}
	X8  = Register{CLASS_GPR, 64, 8}
	X9  = Register{CLASS_GPR, 64, 9}
	X10 = Register{CLASS_GPR, 64, 10}
	X11 = Register{CLASS_GPR, 64, 11}
	X12 = Register{CLASS_GPR, 64, 12}
	X13 = Register{CLASS_GPR, 64, 13}
	X14 = Register{CLASS_GPR, 64, 14}
	X15 = Register{CLASS_GPR, 64, 15}
	X16 = Register{CLASS_GPR, 64, 16}
	X17 = Register{CLASS_GPR, 64, 17}
	X18 = Register{CLASS_GPR, 64, 18}
	X19 = Register{CLASS_GPR, 64, 19}
	X20 = Register{CLASS_GPR, 64, 20}
	X21 = Register{CLASS_GPR, 64, 21}
	X22 = Register{CLASS_GPR, 64, 22}
	X23 = Register{CLASS_GPR, 64, 23}
	X24 = Register{CLASS_GPR, 64, 24}
	X25 = Register{CLASS_GPR, 64, 25}
	X26 = Register{CLASS_GPR, 64, 26}
	X27 = Register{CLASS_GPR, 64, 27}
	X28 = Register{CLASS_GPR, 64, 28}
	X29 = Register{CLASS_GPR, 64, 29}
	X30 = Register{CLASS_GPR, 64, 30}

	W0  = Register{CLASS_GPR, 32, 0}
	W1  = Register{CLASS_GPR, 32, 1}
	W2  = Register{CLASS_GPR, 32, 2}
	W3  = Register{CLASS_GPR, 32, 3}
	W4  = Register{CLASS_GPR, 32, 4}
	W5  = Register{CLASS_GPR, 32, 5}
	W6  = Register{CLASS_GPR, 32, 6}
	W7  = Register{CLASS_GPR, 32, 7}
	W8  = Register{CLASS_GPR, 32, 8}
	W9  = Register{CLASS_GPR, 32, 9}
	W10 = Register{CLASS_GPR, 32, 10}
	W11 = Register{CLASS_GPR, 32, 11}
	W12 = Register{CLASS_GPR, 32, 12}
	W13 = Register{CLASS_GPR, 32, 13}
	W14 = Register{CLASS_GPR, 32, 14}
	W15 = Register{CLASS_GPR, 32, 15}
	W16 = Register{CLASS_GPR, 32, 16}
	W17 = Register{CLASS_GPR, 32, 17}
	W18 = Register{CLASS_GPR, 32, 18}
	W19 = Register{CLASS_GPR, 32, 19}
	W20 = Register{CLASS_GPR, 32, 20}
	W21 = Register{CLASS_GPR, 32, 21}
	W22 = Register{CLASS_GPR, 32, 22}
	W23 = Register{CLASS_GPR, 32, 23}
	W24 = Register{CLASS_GPR, 32, 24}
	W25 = Register{CLASS_GPR, 32, 25}
	W26 = Register{CLASS_GPR, 32, 26}
	W27 = Register{CLASS_GPR, 32, 27}
	W28 = Register{CLASS_GPR, 32, 28}
	W29 = Register{CLASS_GPR, 32, 29}
	W30 = Register{CLASS_GPR, 32, 30}

	XZR = Register{CLASS_GPR, 64, 31}
	WZR = Register{CLASS_GPR, 32, 31}
	SP  = Register{CLASS_SP, 64, 31}
	WSP = Register{CLASS_SP, 32, 31}
	FP  = Register{CLASS_FP, 64, 29}
	LR  = Register{CLASS_LR, 64, 30}
)

var registerNames map[string]Register

func init() {
	registerNames = map[string]Register{
		"xzr": XZR,
		"wzr": WZR,
		"sp":  SP,
		"wsp": WSP,
		"fp":  FP,
		"lr":  LR,
	}
	for n := range 31 {
		registerNames[fmt.Sprintf("x%d", n)] = Register{CLASS_GPR, 64, n}
		registerNames[fmt.Sprintf("w%d", n)] = Register{CLASS_GPR, 32, n}
	}
}

// NewRegister validates and builds a register.
func NewRegister(class RegClass, width int, index int) (reg Register, err error) {
	if width != 32 && width != 64 {
		if class == CLASS_NONE && width == 0 && index == 0 {
			return
		}
		err = ErrInvalidOperand
		return
	}

	switch class {
	case CLASS_GPR:
		if index < 0 || index > 31 {
			err = ErrInvalidOperand
			return
		}
	case CLASS_SP:
		if index != 31 {
			err = ErrInvalidOperand
			return
		}
	case CLASS_FP:
		if index != 29 || width != 64 {
			err = ErrInvalidOperand
			return
		}
	case CLASS_LR:
		if index != 30 || width != 64 {
			err = ErrInvalidOperand
			return
		}
	default:
		err = ErrInvalidOperand
		return
	}

	reg = Register{Class: class, Width: width, Index: index}
	return
}

// RegisterByName looks up an architectural register name.
func RegisterByName(name string) (reg Register, err error) {
	reg, ok := registerNames[strings.ToLower(name)]
	if !ok {
		err = ErrInvalidOperand
	}
	return
}

// Is64 is true for the 64-bit view of a register.
func (reg Register) Is64() bool {
	return reg.Width == 64
}

// IsNone is true for the NoReg placeholder.
func (reg Register) IsNone() bool {
	return reg.Class == CLASS_NONE
}

// valid is true for a register NewRegister would build, NoReg included.
func (reg Register) valid() bool {
	_, err := NewRegister(reg.Class, reg.Width, reg.Index)
	return err == nil
}

// IsZero is true for xzr and wzr.
func (reg Register) IsZero() bool {
	return reg.Class == CLASS_GPR && reg.Index == 31
}

func (reg Register) String() string {
	switch reg.Class {
	case CLASS_NONE:
		return "none"
	case CLASS_SP:
		if reg.Width == 32 {
			return "wsp"
		}
		return "sp"
	case CLASS_FP:
		return "fp"
	case CLASS_LR:
		return "lr"
	}

	prefix := "x"
	if reg.Width == 32 {
		prefix = "w"
	}
	if reg.Index == 31 {
		return prefix + "zr"
	}
	return fmt.Sprintf("%s%d", prefix, reg.Index)
}

func (Register) isOperand() {}
