// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

// Register fields.
const (
	fieldRd  = 0
	fieldRn  = 5
	fieldRa  = 10
	fieldRt2 = 10
	fieldRm  = 16
	fieldRs  = 16
)

// flagSetting reports an S=1 arithmetic or logical form, whose Rd 31 is
// the zero register.
func (enc *encoding) flagSetting() bool {
	return enc.bit(29)
}

// optionalShift consumes a trailing Shift operand, if any.
func (enc *encoding) optionalShift() (shift Shift, present bool, err error) {
	if _, ok := enc.peek().(Shift); !ok {
		return
	}

	op, err := enc.next()
	if err != nil {
		return
	}

	shift = op.(Shift)
	present = true
	return
}

func encodeAddSubImm(enc *encoding) (err error) {
	rd := regSP
	if enc.flagSetting() {
		rd = regZR
	}

	width, err := enc.registers(regField{lsb: fieldRd, kind: rd}, regField{lsb: fieldRn, kind: regSP})
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	// mov to or from sp
	if enc.fixed(10, 12) {
		return
	}

	_, err = enc.uimm(10, 12, 4095)
	if err != nil {
		return
	}

	if !enc.more() {
		return
	}

	var amount int64
	switch op := enc.peek().(type) {
	case Shift:
		if op.Type != SHIFT_LSL {
			enc.pos++
			return enc.mismatch()
		}
		amount = int64(op.Amount)
		enc.pos++
	case Immediate:
		amount = int64(op)
		enc.pos++
	default:
		return
	}

	switch amount {
	case 0:
	case 12:
		enc.put(22, 1, 1)
	default:
		return enc.fail(ErrRange{Value: amount, Min: 0, Max: 12})
	}

	return
}

// shiftedRegister encodes an optional shift of the Rm operand.
func (enc *encoding) shiftedRegister(width int, allowRor bool) (err error) {
	shift, present, err := enc.optionalShift()
	if err != nil || !present {
		return
	}

	if shift.Type < SHIFT_LSL || shift.Type > SHIFT_ROR || (shift.Type == SHIFT_ROR && !allowRor) {
		return enc.mismatch()
	}

	err = enc.checkRange(int64(shift.Amount), 0, int64(width-1))
	if err != nil {
		return
	}

	enc.put(22, 2, uint32(shift.Type))
	enc.put(10, 6, uint32(shift.Amount))
	return
}

func encodeAddSubShift(enc *encoding) (err error) {
	width, err := enc.registers(
		regField{lsb: fieldRd, kind: regZR},
		regField{lsb: fieldRn, kind: regZR},
		regField{lsb: fieldRm, kind: regZR},
	)
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	return enc.shiftedRegister(width, false)
}

func encodeAddSubExt(enc *encoding) (err error) {
	rd := regSP
	if enc.flagSetting() {
		rd = regZR
	}

	width, err := enc.registers(regField{lsb: fieldRd, kind: rd}, regField{lsb: fieldRn, kind: regSP})
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	rm, err := enc.register(regZR)
	if err != nil {
		return
	}

	ext := Extend{Type: EXTEND_UXTW}
	if width == 64 && rm.Is64() {
		ext.Type = EXTEND_UXTX
	}

	switch op := enc.peek().(type) {
	case Extend:
		ext = op
		enc.pos++
	case Shift:
		if op.Type != SHIFT_LSL {
			enc.pos++
			return enc.mismatch()
		}
		ext.Amount = op.Amount
		enc.pos++
	}

	if ext.Type < EXTEND_UXTB || ext.Type > EXTEND_SXTX {
		return enc.mismatch()
	}

	wantRm64 := width == 64 && (ext.Type == EXTEND_UXTX || ext.Type == EXTEND_SXTX)
	if rm.Is64() != wantRm64 {
		return enc.mismatch()
	}

	err = enc.checkRange(int64(ext.Amount), 0, 4)
	if err != nil {
		return
	}

	enc.put(fieldRm, 5, uint32(rm.Index))
	enc.put(13, 3, uint32(ext.Type))
	enc.put(10, 3, uint32(ext.Amount))
	return
}

func encodeAddSubCarry(enc *encoding) (err error) {
	width, err := enc.registers(
		regField{lsb: fieldRd, kind: regZR},
		regField{lsb: fieldRn, kind: regZR},
		regField{lsb: fieldRm, kind: regZR},
	)
	if err != nil {
		return
	}

	return enc.sizeBit(31, width == 64)
}

func encodePcRelAddr(enc *encoding) (err error) {
	_, err = enc.registers(regField{lsb: fieldRd, kind: regZR, width: 64})
	if err != nil {
		return
	}

	if !enc.bit(31) {
		return enc.target(fieldAdr)
	}

	// adrp: page displacement from an immediate or an absolute address.
	op, err := enc.next()
	if err != nil {
		return
	}

	var disp int64
	switch op := op.(type) {
	case Immediate:
		disp = int64(op)
	case Memory:
		if op.Anchor() != ANCHOR_ABSOLUTE || op.HasIndex() {
			return enc.mismatch()
		}
		page := (op.Target() + uint64(op.Disp())) &^ 0xfff
		here := (enc.site.Origin + uint64(enc.site.Offset)) &^ 0xfff
		disp = int64(page - here)
	default:
		return enc.mismatch()
	}

	bits, err := fieldAdrp.Encode(disp)
	if err != nil {
		return enc.fail(err)
	}

	enc.word |= bits
	return
}

func encodeLogImm(enc *encoding) (err error) {
	rd := regSP
	if enc.bit(30) && enc.bit(29) {
		rd = regZR
	}

	width, err := enc.registers(regField{lsb: fieldRd, kind: rd}, regField{lsb: fieldRn, kind: regZR})
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	imm, err := enc.immediate()
	if err != nil {
		return
	}

	value := uint64(imm)
	if width == 32 {
		err = enc.checkRange(imm, -(1 << 31), 1<<32-1)
		if err != nil {
			return
		}
		value = value&0xffffffff | value<<32
	}

	n, immr, imms, ok := encodeBitmask(value)
	if !ok {
		return enc.fail(ErrImmediateOutOfRange)
	}

	enc.put(22, 1, n)
	enc.put(16, 6, immr)
	enc.put(10, 6, imms)
	return
}

func encodeLogShift(enc *encoding) (err error) {
	width, err := enc.registers(
		regField{lsb: fieldRd, kind: regZR},
		regField{lsb: fieldRn, kind: regZR},
		regField{lsb: fieldRm, kind: regZR},
	)
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	return enc.shiftedRegister(width, true)
}

// setN sets the N bit at 22 for a 64 bit operation when it is not fixed.
func (enc *encoding) setN(width int) {
	if width == 64 && !enc.fixed(22, 1) {
		enc.put(22, 1, 1)
	}
}

func encodeBitfield(enc *encoding) (err error) {
	// sxtb and friends fix immr and imms, and take a 32 bit source.
	extend := enc.fixed(10, 6)
	rn := regField{lsb: fieldRn, kind: regZR}
	if extend {
		rn.width = 32
	}

	width, err := enc.registers(regField{lsb: fieldRd, kind: regZR}, rn)
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	enc.setN(width)
	if extend {
		return
	}

	_, err = enc.uimm(16, 6, int64(width-1))
	if err != nil {
		return
	}

	_, err = enc.uimm(10, 6, int64(width-1))
	return
}

func encodeExtract(enc *encoding) (err error) {
	width, err := enc.registers(
		regField{lsb: fieldRd, kind: regZR},
		regField{lsb: fieldRn, kind: regZR},
		regField{lsb: fieldRm, kind: regZR},
	)
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	enc.setN(width)
	_, err = enc.uimm(10, 6, int64(width-1))
	return
}

func encodeDp1Src(enc *encoding) (err error) {
	width, err := enc.registers(regField{lsb: fieldRd, kind: regZR}, regField{lsb: fieldRn, kind: regZR})
	if err != nil {
		return
	}

	return enc.sizeBit(31, width == 64)
}

func encodeDp2Src(enc *encoding) (err error) {
	width, err := enc.registers(
		regField{lsb: fieldRd, kind: regZR},
		regField{lsb: fieldRn, kind: regZR},
		regField{lsb: fieldRm, kind: regZR},
	)
	if err != nil {
		return
	}

	return enc.sizeBit(31, width == 64)
}

func encodeDp3Src(enc *encoding) (err error) {
	// The long multiplies take 32 bit sources.
	var source int
	switch (enc.desc.Opcode >> 21) & 7 {
	case 1, 5:
		source = 32
	}

	width, err := enc.registers(
		regField{lsb: fieldRd, kind: regZR},
		regField{lsb: fieldRn, kind: regZR, width: source},
		regField{lsb: fieldRm, kind: regZR, width: source},
		regField{lsb: fieldRa, kind: regZR},
	)
	if err != nil {
		return
	}

	return enc.sizeBit(31, width == 64)
}

func encodeCondBranch(enc *encoding) (err error) {
	if !enc.fixed(0, 4) {
		var cond Condition
		cond, err = enc.condition()
		if err != nil {
			return
		}
		enc.put(0, 4, uint32(cond))
	}

	return enc.target(fieldBranch19)
}

func encodeBranchImm(enc *encoding) (err error) {
	return enc.target(fieldBranch26)
}

func encodeBranchReg(enc *encoding) (err error) {
	if enc.fixed(fieldRn, 5) {
		return
	}

	// ret defaults to the link register.
	if !enc.more() && (enc.desc.Opcode>>21)&0xf == 2 {
		enc.put(fieldRn, 5, 30)
		return
	}

	_, err = enc.registers(regField{lsb: fieldRn, kind: regZR, width: 64})
	return
}

func encodeCompBranch(enc *encoding) (err error) {
	width, err := enc.registers(regField{lsb: fieldRd, kind: regZR})
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	return enc.target(fieldBranch19)
}

func encodeTestBranch(enc *encoding) (err error) {
	width, err := enc.registers(regField{lsb: fieldRd, kind: regZR})
	if err != nil {
		return
	}

	bit, err := enc.immediate()
	if err != nil {
		return
	}

	err = enc.checkRange(bit, 0, int64(width-1))
	if err != nil {
		return
	}

	enc.put(31, 1, uint32(bit>>5))
	enc.put(19, 5, uint32(bit))

	return enc.target(fieldBranch14)
}

// condCmp encodes the trailing nzcv and condition of ccmp and ccmn.
func (enc *encoding) condCmp() (err error) {
	_, err = enc.uimm(0, 4, 15)
	if err != nil {
		return
	}

	cond, err := enc.condition()
	if err != nil {
		return
	}

	enc.put(12, 4, uint32(cond))
	return
}

func encodeCondCmpImm(enc *encoding) (err error) {
	width, err := enc.registers(regField{lsb: fieldRn, kind: regZR})
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	_, err = enc.uimm(16, 5, 31)
	if err != nil {
		return
	}

	return enc.condCmp()
}

func encodeCondCmpReg(enc *encoding) (err error) {
	width, err := enc.registers(regField{lsb: fieldRn, kind: regZR}, regField{lsb: fieldRm, kind: regZR})
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	return enc.condCmp()
}

func encodeCondSel(enc *encoding) (err error) {
	width, err := enc.registers(
		regField{lsb: fieldRd, kind: regZR},
		regField{lsb: fieldRn, kind: regZR},
		regField{lsb: fieldRm, kind: regZR},
	)
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	cond, err := enc.condition()
	if err != nil {
		return
	}

	// cset and csetm encode the inverse of their condition.
	if enc.fixed(fieldRn, 5) && enc.fixed(fieldRm, 5) {
		if cond >= COND_AL {
			return enc.mismatch()
		}
		cond = cond.Invert()
	}

	enc.put(12, 4, uint32(cond))
	return
}

func encodeException(enc *encoding) (err error) {
	// dcps1..3 may omit the immediate.
	if !enc.more() && (enc.desc.Opcode>>21)&7 == 5 {
		return
	}

	_, err = enc.uimm(5, 16, 0xffff)
	return
}

// System instruction layouts, by mask.
const (
	systemMaskHint    = 0xfffff01f
	systemMaskBarrier = 0xfffff0ff
	systemMaskSys     = 0xfff80000
	systemMaskMove    = 0xfff00000
	systemMaskPstate  = 0xfff8f01f
)

// sysOperands encodes op1, CRn, CRm and op2 of sys and sysl.
func (enc *encoding) sysOperands() (err error) {
	for _, field := range []struct {
		lsb, width uint
	}{{16, 3}, {12, 4}, {8, 4}, {5, 3}} {
		_, err = enc.uimm(field.lsb, field.width, 1<<field.width-1)
		if err != nil {
			return
		}
	}
	return
}

func encodeSystem(enc *encoding) (err error) {
	switch enc.desc.Mask {
	case 0xffffffff:
		return
	case systemMaskHint:
		_, err = enc.uimm(5, 7, 127)
	case systemMaskBarrier:
		if !enc.more() {
			enc.put(8, 4, 15)
			return
		}
		_, err = enc.uimm(8, 4, 15)
	case systemMaskSys:
		if enc.bit(21) {
			// sysl xt, #op1, Cn, Cm, #op2
			_, err = enc.registers(regField{lsb: fieldRd, kind: regZR, width: 64})
			if err != nil {
				return
			}
			return enc.sysOperands()
		}
		err = enc.sysOperands()
		if err != nil {
			return
		}
		if !enc.more() {
			enc.put(fieldRd, 5, 31)
			return
		}
		_, err = enc.registers(regField{lsb: fieldRd, kind: regZR, width: 64})
	case systemMaskMove:
		if enc.bit(21) {
			// mrs xt, sysreg
			_, err = enc.registers(regField{lsb: fieldRd, kind: regZR, width: 64})
			if err != nil {
				return
			}
			_, err = enc.uimm(5, 15, 0x7fff)
			return
		}
		// msr sysreg, xt
		_, err = enc.uimm(5, 15, 0x7fff)
		if err != nil {
			return
		}
		_, err = enc.registers(regField{lsb: fieldRd, kind: regZR, width: 64})
	case systemMaskPstate:
		// msr pstatefield, #imm with pstatefield as op1:op2
		var field int64
		field, err = enc.immediate()
		if err != nil {
			return
		}
		err = enc.checkRange(field, 0, 63)
		if err != nil {
			return
		}
		enc.put(16, 3, uint32(field>>3))
		enc.put(5, 3, uint32(field))
		_, err = enc.uimm(8, 4, 15)
	default:
		err = ErrGroup
	}

	return
}

func encodeLdStExcl(enc *encoding) (err error) {
	width, err := enc.registers(
		regField{lsb: fieldRs, kind: regZR, width: 32},
		regField{lsb: fieldRd, kind: regZR},
		regField{lsb: fieldRt2, kind: regZR},
	)
	if err != nil {
		return
	}

	if enc.fixed(30, 1) {
		// byte and halfword forms
		if width != 32 {
			return ErrOperand{Index: 0, Err: ErrOperandTypeMismatch}
		}
	} else {
		err = enc.sizeBit(30, width == 64)
		if err != nil {
			return
		}
	}

	mem, err := enc.baseMemory(false)
	if err != nil {
		return
	}

	if mem.Disp() != 0 {
		return enc.fail(ErrRange{Value: mem.Disp(), Min: 0, Max: 0})
	}

	return
}

// checkSize validates a memory operand size tag against the access size.
func (enc *encoding) checkSize(mem Memory, access int64) error {
	if mem.Size() != SIZE_NONE && mem.Size().Bytes() != access {
		return enc.mismatch()
	}
	return nil
}

// scaled validates and scales a displacement into a field.
func (enc *encoding) scaled(lsb, width uint, disp, scale int64, signed bool) error {
	if disp%scale != 0 {
		return enc.fail(ErrAlign{Value: disp, Units: scale})
	}

	field := Field{Offset: lsb, Width: width, Units: scale, Signed: signed}
	min, max := field.Limits()
	value := disp / scale
	if value < min || value > max {
		return enc.fail(ErrRange{Value: value, Min: min, Max: max})
	}

	enc.put(lsb, width, uint32(value))
	return nil
}

func encodeLdStPair(enc *encoding) (err error) {
	width, err := enc.registers(regField{lsb: fieldRd, kind: regZR}, regField{lsb: fieldRt2, kind: regZR})
	if err != nil {
		return
	}

	scale := int64(width / 8)
	if enc.bit(30) {
		// ldpsw
		if width != 64 {
			return ErrOperand{Index: 0, Err: ErrOperandTypeMismatch}
		}
		scale = 4
	} else {
		err = enc.sizeBit(31, width == 64)
		if err != nil {
			return
		}
	}

	mem, err := enc.baseMemory(false)
	if err != nil {
		return
	}

	err = enc.checkSize(mem, scale)
	if err != nil {
		return
	}

	return enc.scaled(15, 7, mem.Disp(), scale, true)
}

// prefetch reports a prfm or prfum descriptor.
func (enc *encoding) prefetch() bool {
	return enc.desc.Opcode>>30 == 3 && (enc.desc.Opcode>>22)&3 == 2
}

// transfer consumes the Rt operand of a single register load or store,
// or the prfop of a prefetch, and returns the access size in bytes.
func (enc *encoding) transfer() (access int64, err error) {
	if enc.prefetch() {
		_, err = enc.uimm(fieldRd, 5, 31)
		access = 8
		return
	}

	width, err := enc.registers(regField{lsb: fieldRd, kind: regZR})
	if err != nil {
		return
	}

	is64 := width == 64
	switch {
	case enc.bit(23):
		// sign-extending loads
		if enc.fixed(22, 1) {
			if enc.bit(22) == is64 {
				err = ErrOperand{Index: 0, Err: ErrOperandTypeMismatch}
				return
			}
		} else if !is64 {
			enc.put(22, 1, 1)
		}
	case !enc.fixed(30, 1):
		err = enc.sizeBit(30, is64)
		if err != nil {
			return
		}
	case is64:
		err = ErrOperand{Index: 0, Err: ErrOperandTypeMismatch}
		return
	}

	access = int64(1) << (enc.word >> 30)
	return
}

func encodeLdStImm9(enc *encoding) (err error) {
	access, err := enc.transfer()
	if err != nil {
		return
	}

	mem, err := enc.baseMemory(false)
	if err != nil {
		return
	}

	err = enc.checkSize(mem, access)
	if err != nil {
		return
	}

	return enc.scaled(12, 9, mem.Disp(), 1, true)
}

func encodeLdStPos(enc *encoding) (err error) {
	access, err := enc.transfer()
	if err != nil {
		return
	}

	mem, err := enc.baseMemory(false)
	if err != nil {
		return
	}

	err = enc.checkSize(mem, access)
	if err != nil {
		return
	}

	return enc.scaled(10, 12, mem.Disp(), access, false)
}

func encodeLdStRegOff(enc *encoding) (err error) {
	access, err := enc.transfer()
	if err != nil {
		return
	}

	mem, err := enc.baseMemory(true)
	if err != nil {
		return
	}

	err = enc.checkSize(mem, access)
	if err != nil {
		return
	}

	if mem.Disp() != 0 {
		return enc.fail(ErrRange{Value: mem.Disp(), Min: 0, Max: 0})
	}

	index := mem.Index()
	option := uint32(EXTEND_UXTW)
	if index.Is64() {
		option = uint32(EXTEND_UXTX)
	}

	scale := int64(0)
	for int64(1)<<scale < access {
		scale++
	}

	switch int64(mem.Shift()) {
	case 0:
	case scale:
		enc.put(12, 1, 1)
	default:
		return enc.fail(ErrRange{Value: int64(mem.Shift()), Min: 0, Max: scale})
	}

	enc.put(fieldRm, 5, uint32(index.Index))
	enc.put(13, 3, option)
	return
}

func encodeLoadLit(enc *encoding) (err error) {
	switch enc.desc.Opcode >> 30 {
	case 3:
		// prfm
		_, err = enc.uimm(fieldRd, 5, 31)
	case 2:
		// ldrsw
		_, err = enc.registers(regField{lsb: fieldRd, kind: regZR, width: 64})
	default:
		var width int
		width, err = enc.registers(regField{lsb: fieldRd, kind: regZR})
		if err != nil {
			return
		}
		err = enc.sizeBit(30, width == 64)
	}
	if err != nil {
		return
	}

	return enc.target(fieldBranch19)
}

func encodeMoveWide(enc *encoding) (err error) {
	width, err := enc.registers(regField{lsb: fieldRd, kind: regZR})
	if err != nil {
		return
	}

	err = enc.sizeBit(31, width == 64)
	if err != nil {
		return
	}

	_, err = enc.uimm(5, 16, 0xffff)
	if err != nil {
		return
	}

	shift, present, err := enc.optionalShift()
	if err != nil || !present {
		return
	}

	if shift.Type != SHIFT_LSL || shift.Amount%16 != 0 {
		return enc.mismatch()
	}

	err = enc.checkRange(int64(shift.Amount), 0, int64(width-16))
	if err != nil {
		return
	}

	enc.put(21, 2, uint32(shift.Amount/16))
	return
}
