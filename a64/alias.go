// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

// aliasRewrite turns the operands of an alias into the operands of the
// instruction whose encoding it shares.
type aliasRewrite func(ops []Operand) ([]Operand, error)

var aliasRewrites = map[Instruction]aliasRewrite{
	INST_BIC_IMM:  rewriteBic,
	INST_LSL_IMM:  rewriteLsl,
	INST_LSR_IMM:  rewriteShiftRight,
	INST_ASR_IMM:  rewriteShiftRight,
	INST_UBFIZ:    rewriteInsert,
	INST_SBFIZ:    rewriteInsert,
	INST_BFI:      rewriteInsert,
	INST_UBFX:     rewriteExtract,
	INST_SBFX:     rewriteExtract,
	INST_BFXIL:    rewriteExtract,
	INST_ROR_IMM:  rewriteRor,
	INST_CINC:     rewriteCondInc,
	INST_CINV:     rewriteCondInc,
	INST_CNEG:     rewriteCondInc,
	INST_MOV_INV:  rewriteMovInverted,
	INST_MOV_WIDE: rewriteMovWide,
}

// aliasShape checks the operand count and returns the width of the
// destination register.
func aliasShape(ops []Operand, count int) (width int, err error) {
	if len(ops) != count {
		index := min(len(ops), count)
		err = ErrOperand{Index: index, Err: ErrOperandTypeMismatch}
		return
	}

	reg, ok := ops[0].(Register)
	if !ok || reg.IsNone() || !reg.valid() {
		err = ErrOperand{Index: 0, Err: ErrOperandTypeMismatch}
		return
	}

	width = reg.Width
	return
}

// aliasImm returns operand n as an immediate in [min, max].
func aliasImm(ops []Operand, n int, min, max int64) (value int64, err error) {
	imm, ok := ops[n].(Immediate)
	if !ok {
		err = ErrOperand{Index: n, Err: ErrOperandTypeMismatch}
		return
	}

	value = int64(imm)
	if value < min || value > max {
		err = ErrOperand{Index: n, Err: ErrRange{Value: value, Min: min, Max: max}}
	}
	return
}

// bic rd, rn, #imm is and rd, rn, #~imm.
func rewriteBic(ops []Operand) (out []Operand, err error) {
	width, err := aliasShape(ops, 3)
	if err != nil {
		return
	}

	if width == 32 {
		var imm int64
		imm, err = aliasImm(ops, 2, -(1 << 31), 1<<32-1)
		if err != nil {
			return
		}
		out = []Operand{ops[0], ops[1], Imm(int64(^uint32(imm)))}
		return
	}

	imm, ok := ops[2].(Immediate)
	if !ok {
		err = ErrOperand{Index: 2, Err: ErrOperandTypeMismatch}
		return
	}

	out = []Operand{ops[0], ops[1], ^imm}
	return
}

// lsl rd, rn, #s is ubfm rd, rn, #(-s mod w), #(w-1-s).
func rewriteLsl(ops []Operand) (out []Operand, err error) {
	width, err := aliasShape(ops, 3)
	if err != nil {
		return
	}

	w := int64(width)
	s, err := aliasImm(ops, 2, 0, w-1)
	if err != nil {
		return
	}

	out = []Operand{ops[0], ops[1], Imm((w - s) % w), Imm(w - 1 - s)}
	return
}

// lsr and asr rd, rn, #s are ubfm and sbfm rd, rn, #s, #(w-1).
func rewriteShiftRight(ops []Operand) (out []Operand, err error) {
	width, err := aliasShape(ops, 3)
	if err != nil {
		return
	}

	w := int64(width)
	s, err := aliasImm(ops, 2, 0, w-1)
	if err != nil {
		return
	}

	out = []Operand{ops[0], ops[1], Imm(s), Imm(w - 1)}
	return
}

// bitRange returns the lsb and width operands of a bitfield alias.
func bitRange(ops []Operand, width int) (lsb, bits int64, err error) {
	w := int64(width)
	lsb, err = aliasImm(ops, 2, 0, w-1)
	if err != nil {
		return
	}

	bits, err = aliasImm(ops, 3, 1, w-lsb)
	return
}

// ubfiz, sbfiz and bfi rd, rn, #lsb, #width place the low bits of rn at lsb.
func rewriteInsert(ops []Operand) (out []Operand, err error) {
	width, err := aliasShape(ops, 4)
	if err != nil {
		return
	}

	lsb, bits, err := bitRange(ops, width)
	if err != nil {
		return
	}

	w := int64(width)
	out = []Operand{ops[0], ops[1], Imm((w - lsb) % w), Imm(bits - 1)}
	return
}

// ubfx, sbfx and bfxil rd, rn, #lsb, #width take the bits of rn at lsb.
func rewriteExtract(ops []Operand) (out []Operand, err error) {
	width, err := aliasShape(ops, 4)
	if err != nil {
		return
	}

	lsb, bits, err := bitRange(ops, width)
	if err != nil {
		return
	}

	out = []Operand{ops[0], ops[1], Imm(lsb), Imm(lsb + bits - 1)}
	return
}

// ror rd, rs, #s is extr rd, rs, rs, #s.
func rewriteRor(ops []Operand) (out []Operand, err error) {
	_, err = aliasShape(ops, 3)
	if err != nil {
		return
	}

	out = []Operand{ops[0], ops[1], ops[1], ops[2]}
	return
}

// cinc, cinv and cneg rd, rn, cond are csinc, csinv and csneg
// rd, rn, rn, !cond.
func rewriteCondInc(ops []Operand) (out []Operand, err error) {
	_, err = aliasShape(ops, 3)
	if err != nil {
		return
	}

	cond, ok := ops[2].(Condition)
	if !ok || cond < COND_EQ || cond >= COND_AL {
		err = ErrOperand{Index: 2, Err: ErrOperandTypeMismatch}
		return
	}

	out = []Operand{ops[0], ops[1], ops[1], cond.Invert()}
	return
}

// wideChunk finds the 16 bit chunk holding every set bit of value.
func wideChunk(value uint64, width int) (chunk int64, shift int, ok bool) {
	for shift = 0; shift < width; shift += 16 {
		if value&^(uint64(0xffff)<<shift) == 0 {
			chunk = int64(value >> shift)
			ok = true
			return
		}
	}
	return
}

// wideImm returns the immediate of a mov as an unsigned value of the
// operation width.
func wideImm(ops []Operand, width int) (value uint64, err error) {
	if width == 32 {
		var imm int64
		imm, err = aliasImm(ops, 1, -(1 << 31), 1<<32-1)
		value = uint64(uint32(imm))
		return
	}

	imm, ok := ops[1].(Immediate)
	if !ok {
		err = ErrOperand{Index: 1, Err: ErrOperandTypeMismatch}
		return
	}

	value = uint64(imm)
	return
}

// mov rd, #imm is movn rd, #chunk, lsl #shift when ~imm fits one chunk.
func rewriteMovInverted(ops []Operand) (out []Operand, err error) {
	width, err := aliasShape(ops, 2)
	if err != nil {
		return
	}

	value, err := wideImm(ops, width)
	if err != nil {
		return
	}

	inverted := ^value
	if width == 32 {
		inverted &= 0xffffffff
	}

	chunk, shift, ok := wideChunk(inverted, width)
	if !ok {
		err = ErrOperand{Index: 1, Err: ErrImmediateOutOfRange}
		return
	}

	out = []Operand{ops[0], Imm(chunk), LSL(shift)}
	return
}

// mov rd, #imm is movz rd, #chunk, lsl #shift when imm fits one chunk. An
// explicit shift is passed through to movz.
func rewriteMovWide(ops []Operand) (out []Operand, err error) {
	if len(ops) == 3 {
		out = ops
		return
	}

	width, err := aliasShape(ops, 2)
	if err != nil {
		return
	}

	value, err := wideImm(ops, width)
	if err != nil {
		return
	}

	chunk, shift, ok := wideChunk(value, width)
	if !ok {
		err = ErrOperand{Index: 1, Err: ErrImmediateOutOfRange}
		return
	}

	out = []Operand{ops[0], Imm(chunk), LSL(shift)}
	return
}
