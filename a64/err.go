// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"errors"

	"github.com/ezrec/a64asm/translate"
)

var f = translate.From

var (
	// Construction errors
	ErrInvalidOperand = errors.New(f("invalid operand"))

	// Lookup errors
	ErrUnknownInstruction = errors.New(f("unknown instruction"))

	// Encoding errors
	ErrOperandTypeMismatch    = errors.New(f("operand type mismatch"))
	ErrImmediateOutOfRange    = errors.New(f("immediate out of range"))
	ErrMisalignedDisplacement = errors.New(f("misaligned displacement"))

	// Relocation errors
	ErrDoubleBind   = errors.New(f("label already bound"))
	ErrUnboundLabel = errors.New(f("label unbound"))
	ErrLabelInvalid = errors.New(f("label invalid"))

	// Internal consistency
	ErrOpcodeMask = errors.New(f("opcode bits outside mask"))
	ErrGroup      = errors.New(f("no encoder for group"))

	// Text front-end errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrMacroArguments  = errors.New(f("macro argument count"))
	ErrDirective       = errors.New(f("directive invalid"))
	ErrMnemonic        = errors.New(f("mnemonic unknown"))
	ErrAddressing      = errors.New(f("addressing mode invalid"))
)

// ErrRange reports a numeric operand that does not fit its field.
type ErrRange struct {
	Value int64
	Min   int64
	Max   int64
}

func (err ErrRange) Error() string {
	return f("immediate %d not in [%d, %d]", err.Value, err.Min, err.Max)
}

func (err ErrRange) Unwrap() error {
	return ErrImmediateOutOfRange
}

// ErrAlign reports a displacement that is not a multiple of its unit.
type ErrAlign struct {
	Value int64
	Units int64
}

func (err ErrAlign) Error() string {
	return f("displacement %d is not a multiple of %d", err.Value, err.Units)
}

func (err ErrAlign) Unwrap() error {
	return ErrMisalignedDisplacement
}

// ErrOperand locates an encoding failure at an operand position.
type ErrOperand struct {
	Index int
	Err   error
}

func (err ErrOperand) Error() string {
	return f("operand %d: %v", err.Index+1, err.Err)
}

func (err ErrOperand) Unwrap() error {
	return err.Err
}

// ErrEncode names the instruction that failed to encode.
type ErrEncode struct {
	Instruction Instruction
	Err         error
}

func (err ErrEncode) Error() string {
	return f("%v: %v", err.Instruction, err.Err)
}

func (err ErrEncode) Unwrap() error {
	return err.Err
}

// ErrLabelUnbound names a label still unbound at finalization.
type ErrLabelUnbound struct {
	Label  Label
	Name   string
	Offset int // Offset of the referencing instruction.
}

func (err ErrLabelUnbound) Error() string {
	name := err.Name
	if len(name) == 0 {
		name = f("L%d", int(err.Label))
	}
	return f("label %v unbound, referenced at offset %d", name, err.Offset)
}

func (err ErrLabelUnbound) Unwrap() error {
	return ErrUnboundLabel
}

// ErrSyntax locates a text front-end error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseNumber reports a word that is not a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseOperand reports a word that is not an operand.
type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("'%v' is not an operand", string(err))
}

// ErrParseExpression reports a bad $(...) expression.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrMacro locates an error inside a macro expansion.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
