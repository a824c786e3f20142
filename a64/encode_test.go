package a64

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodeWord(inst Instruction, ops ...Operand) (word uint32, err error) {
	desc, err := Find(inst)
	if err != nil {
		return
	}
	enc, err := Encode(desc, Site{}, ops...)
	word = enc.Word
	return
}

func TestEncode(t *testing.T) {
	table := [...]struct {
		name string
		inst Instruction
		ops  []Operand
		word uint32
	}{
		{"add x0, x1, #16", INST_ADD_IMM, []Operand{X0, X1, Imm(16)}, 0x91004020},
		{"add x0, x1, #1, lsl #12", INST_ADD_IMM, []Operand{X0, X1, Imm(1), LSL(12)}, 0x91400420},
		{"sub sp, sp, #32", INST_SUB_IMM, []Operand{SP, SP, Imm(32)}, 0xd10083ff},
		{"cmp x0, #0", INST_CMP_IMM, []Operand{X0, Imm(0)}, 0xf100001f},
		{"mov x29, sp", INST_MOV_SP, []Operand{X29, SP}, 0x910003fd},
		{"mov fp, sp", INST_MOV_SP, []Operand{FP, SP}, 0x910003fd},
		{"add x0, x1, x2", INST_ADD_SHIFT, []Operand{X0, X1, X2}, 0x8b020020},
		{"sub w0, w1, w2, lsl #3", INST_SUB_SHIFT, []Operand{W0, W1, W2, LSL(3)}, 0x4b020c20},
		{"cmp x0, x1", INST_CMP_SHIFT, []Operand{X0, X1}, 0xeb01001f},
		{"neg x0, x1", INST_NEG, []Operand{X0, X1}, 0xcb0103e0},
		{"add x0, sp, w1, uxtw #2", INST_ADD_EXT, []Operand{X0, SP, W1, Extend{EXTEND_UXTW, 2}}, 0x8b214be0},
		{"adc x0, x1, x2", INST_ADC, []Operand{X0, X1, X2}, 0x9a020020},
		{"adr x0, #8", INST_ADR, []Operand{X0, Imm(8)}, 0x10000040},
		{"and x0, x1, #0xff", INST_AND_IMM, []Operand{X0, X1, Imm(0xff)}, 0x92401c20},
		{"orr w0, wzr, #1", INST_ORR_IMM, []Operand{W0, WZR, Imm(1)}, 0x320003e0},
		{"mov w0, #1", INST_MOV_BITMASK, []Operand{W0, Imm(1)}, 0x320003e0},
		{"tst x0, #1", INST_TST_IMM, []Operand{X0, Imm(1)}, 0xf240001f},
		{"mov x0, x1", INST_MOV_REG, []Operand{X0, X1}, 0xaa0103e0},
		{"ubfm x0, x1, #4, #7", INST_UBFM, []Operand{X0, X1, Imm(4), Imm(7)}, 0xd3441c20},
		{"sxtw x0, w1", INST_SXTW, []Operand{X0, W1}, 0x93407c20},
		{"extr x0, x1, x2, #8", INST_EXTR, []Operand{X0, X1, X2, Imm(8)}, 0x93c22020},
		{"rev w0, w1", INST_REV, []Operand{W0, W1}, 0x5ac00820},
		{"rev x0, x1", INST_REV_X, []Operand{X0, X1}, 0xdac00c20},
		{"udiv w0, w1, w2", INST_UDIV, []Operand{W0, W1, W2}, 0x1ac20820},
		{"lsl x0, x1, x2", INST_LSL_REG, []Operand{X0, X1, X2}, 0x9ac22020},
		{"mul x0, x1, x2", INST_MUL, []Operand{X0, X1, X2}, 0x9b027c20},
		{"smull x0, w1, w2", INST_SMULL, []Operand{X0, W1, W2}, 0x9b227c20},
		{"b.eq #16", INST_BEQ, []Operand{Imm(16)}, 0x54000080},
		{"b.cond eq, #16", INST_B_COND, []Operand{COND_EQ, Imm(16)}, 0x54000080},
		{"bl #-4", INST_BL, []Operand{Imm(-4)}, 0x97ffffff},
		{"ret", INST_RET, nil, 0xd65f03c0},
		{"ret x30", INST_RET, []Operand{X30}, 0xd65f03c0},
		{"blr x16", INST_BLR, []Operand{X16}, 0xd63f0200},
		{"br x16", INST_BR, []Operand{X16}, 0xd61f0200},
		{"cbz x0, #8", INST_CBZ, []Operand{X0, Imm(8)}, 0xb4000040},
		{"cbnz w1, #-8", INST_CBNZ, []Operand{W1, Imm(-8)}, 0x35ffffc1},
		{"tbz w0, #3, #8", INST_TBZ, []Operand{W0, Imm(3), Imm(8)}, 0x36180040},
		{"tbnz x0, #63, #4", INST_TBNZ, []Operand{X0, Imm(63), Imm(4)}, 0xb7f80020},
		{"ccmp x0, #1, #0, ne", INST_CCMP_IMM, []Operand{X0, Imm(1), Imm(0), COND_NE}, 0xfa411800},
		{"csel x0, x1, x2, eq", INST_CSEL, []Operand{X0, X1, X2, COND_EQ}, 0x9a820020},
		{"cset w0, eq", INST_CSET, []Operand{W0, COND_EQ}, 0x1a9f17e0},
		{"svc #0", INST_SVC, []Operand{Imm(0)}, 0xd4000001},
		{"brk #1", INST_BRK, []Operand{Imm(1)}, 0xd4200020},
		{"nop", INST_NOP, nil, 0xd503201f},
		{"hint #34", INST_HINT, []Operand{Imm(34)}, 0xd503245f},
		{"dmb sy", INST_DMB, []Operand{Imm(15)}, 0xd5033fbf},
		{"isb", INST_ISB, nil, 0xd5033fdf},
		{"ic iallu", INST_SYS, []Operand{Imm(0), Imm(7), Imm(5), Imm(0)}, 0xd508751f},
		{"msr daifset, #2", INST_MSR_IMM, []Operand{Imm(3<<3 | 6), Imm(2)}, 0xd50342df},
		{"mrs x0, nzcv", INST_MRS, []Operand{X0, Imm(0x5a10)}, 0xd53b4200},
		{"ldxr x0, [x1]", INST_LDXR, []Operand{X0, MustMemory(Ptr(X1, 0))}, 0xc85f7c20},
		{"stxr w2, x0, [x1]", INST_STXR, []Operand{W2, X0, MustMemory(Ptr(X1, 0))}, 0xc8027c20},
		{"ldar w0, [x1]", INST_LDAR, []Operand{W0, MustMemory(Ptr(X1, 0))}, 0x88dffc20},
		{"stp x29, x30, [sp, #-16]!", INST_STP_PRE, []Operand{X29, X30, MustMemory(Ptr(SP, -16))}, 0xa9bf7bfd},
		{"ldp x29, x30, [sp], #16", INST_LDP_POST, []Operand{X29, X30, MustMemory(Ptr(SP, 16))}, 0xa8c17bfd},
		{"ldp w0, w1, [x2, #8]", INST_LDP_OFF, []Operand{W0, W1, MustMemory(Ptr(X2, 8))}, 0x29410440},
		{"ldpsw x0, x1, [x2, #8]", INST_LDPSW_OFF, []Operand{X0, X1, MustMemory(Ptr(X2, 8))}, 0x69410440},
		{"ldr x0, [x1, #8]", INST_LDR_OFF, []Operand{X0, MustMemory(Ptr(X1, 8))}, 0xf9400420},
		{"ldr w0, [x1, #4]", INST_LDR_OFF, []Operand{W0, MustMemory(WordPtr(X1, 4))}, 0xb9400420},
		{"strb w0, [x1]", INST_STRB_OFF, []Operand{W0, MustMemory(Ptr(X1, 0))}, 0x39000020},
		{"ldrsw x0, [x1, #4]", INST_LDRSW_OFF, []Operand{X0, MustMemory(Ptr(X1, 4))}, 0xb9800420},
		{"ldrsb w0, [x1]", INST_LDRSB_OFF, []Operand{W0, MustMemory(Ptr(X1, 0))}, 0x39c00020},
		{"ldr x0, [x1, x2, lsl #3]", INST_LDR_REG, []Operand{X0, MustMemory(SIZE_NONE.PtrIndex(X1, X2, 3, 0))}, 0xf8627820},
		{"ldur x0, [x1, #-8]", INST_LDUR, []Operand{X0, MustMemory(Ptr(X1, -8))}, 0xf85f8020},
		{"str x0, [sp, #-16]!", INST_STR_PRE, []Operand{X0, MustMemory(Ptr(SP, -16))}, 0xf81f0fe0},
		{"prfm pldl1keep, [x0]", INST_PRFM_OFF, []Operand{Imm(0), MustMemory(Ptr(X0, 0))}, 0xf9800000},
		{"movz x0, #0x1234", INST_MOVZ, []Operand{X0, Imm(0x1234)}, 0xd2824680},
		{"movk x0, #0xbeef, lsl #16", INST_MOVK, []Operand{X0, Imm(0xbeef), LSL(16)}, 0xf2b7dde0},
		{"movn w0, #0", INST_MOVN, []Operand{W0, Imm(0)}, 0x12800000},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			word, err := encodeWord(entry.inst, entry.ops...)
			assert.NoError(err)
			assert.Equal(entry.word, word, "%#08x != %#08x", entry.word, word)

			desc, _ := Find(entry.inst)
			assert.True(desc.Match(word))
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	table := [...]struct {
		name string
		inst Instruction
		ops  []Operand
		err  error
	}{
		{"add x0, x1, w2", INST_ADD_SHIFT, []Operand{X0, X1, W2}, ErrOperandTypeMismatch},
		{"add x0, x1, #4096", INST_ADD_IMM, []Operand{X0, X1, Imm(4096)}, ErrImmediateOutOfRange},
		{"add x0, x1, #-1", INST_ADD_IMM, []Operand{X0, X1, Imm(-1)}, ErrImmediateOutOfRange},
		{"add x0, xzr, #1", INST_ADD_IMM, []Operand{X0, XZR, Imm(1)}, ErrOperandTypeMismatch},
		{"add x0, x1, #1, lsl #3", INST_ADD_IMM, []Operand{X0, X1, Imm(1), LSL(3)}, ErrImmediateOutOfRange},
		{"add sp, x1, x2", INST_ADD_SHIFT, []Operand{SP, X1, X2}, ErrOperandTypeMismatch},
		{"add x0, x1", INST_ADD_SHIFT, []Operand{X0, X1}, ErrOperandTypeMismatch},
		{"ret x30, x1", INST_RET, []Operand{X30, X1}, ErrOperandTypeMismatch},
		{"and x0, x1, #0", INST_AND_IMM, []Operand{X0, X1, Imm(0)}, ErrImmediateOutOfRange},
		{"and x0, x1, #5", INST_AND_IMM, []Operand{X0, X1, Imm(5)}, ErrImmediateOutOfRange},
		{"cset x0, al", INST_CSET, []Operand{X0, COND_AL}, ErrOperandTypeMismatch},
		{"movz x0, #1, lsl #8", INST_MOVZ, []Operand{X0, Imm(1), LSL(8)}, ErrOperandTypeMismatch},
		{"movz w0, #1, lsl #32", INST_MOVZ, []Operand{W0, Imm(1), LSL(32)}, ErrImmediateOutOfRange},
		{"movz x0, #0x10000", INST_MOVZ, []Operand{X0, Imm(0x10000)}, ErrImmediateOutOfRange},
		{"rev w0, x1", INST_REV, []Operand{W0, X1}, ErrOperandTypeMismatch},
		{"rev x0, x1", INST_REV, []Operand{X0, X1}, ErrOperandTypeMismatch},
		{"tbz w0, #32, #8", INST_TBZ, []Operand{W0, Imm(32), Imm(8)}, ErrImmediateOutOfRange},
		{"b #2", INST_B, []Operand{Imm(2)}, ErrMisalignedDisplacement},
		{"b.eq #1M", INST_BEQ, []Operand{Imm(1 << 20)}, ErrImmediateOutOfRange},
		{"strb x0, [x1]", INST_STRB_OFF, []Operand{X0, MustMemory(Ptr(X1, 0))}, ErrOperandTypeMismatch},
		{"ldrsw w0, [x1]", INST_LDRSW_OFF, []Operand{W0, MustMemory(Ptr(X1, 0))}, ErrOperandTypeMismatch},
		{"ldr x0, [x1, #-8]", INST_LDR_OFF, []Operand{X0, MustMemory(Ptr(X1, -8))}, ErrImmediateOutOfRange},
		{"ldr x0, [x1, #32768]", INST_LDR_OFF, []Operand{X0, MustMemory(Ptr(X1, 32768))}, ErrImmediateOutOfRange},
		{"ldr x0, [x1, x2, lsl #2]", INST_LDR_REG, []Operand{X0, MustMemory(SIZE_NONE.PtrIndex(X1, X2, 2, 0))}, ErrImmediateOutOfRange},
		{"ldr x0, [x1, x2]", INST_LDR_OFF, []Operand{X0, MustMemory(SIZE_NONE.PtrIndex(X1, X2, 0, 0))}, ErrOperandTypeMismatch},
		{"ldxr x0, [x1, #8]", INST_LDXR, []Operand{X0, MustMemory(Ptr(X1, 8))}, ErrImmediateOutOfRange},
		{"ldxrb x0, [x1]", INST_LDXRB, []Operand{X0, MustMemory(Ptr(X1, 0))}, ErrOperandTypeMismatch},
		{"stp x0, w1, [sp]", INST_STP_OFF, []Operand{X0, W1, MustMemory(Ptr(SP, 0))}, ErrOperandTypeMismatch},
		{"stp x0, x1, [sp, #4]", INST_STP_OFF, []Operand{X0, X1, MustMemory(Ptr(SP, 4))}, ErrMisalignedDisplacement},
		{"stp x0, x1, [sp, #512]", INST_STP_OFF, []Operand{X0, X1, MustMemory(Ptr(SP, 512))}, ErrImmediateOutOfRange},
		{"b L1", INST_B, []Operand{Label(1)}, ErrLabelInvalid},
		{"b [#0x1000, x1]", INST_B, []Operand{MustMemory(SIZE_NONE.PtrAbsIndex(0x1000, X1, 0, 0))}, ErrOperandTypeMismatch},
		{"adrp x0, L1", INST_ADRP, []Operand{Label(1)}, ErrOperandTypeMismatch},
		{"svc", INST_SVC, nil, ErrOperandTypeMismatch},
		{"add x0, x1, x40", INST_ADD_SHIFT, []Operand{X0, X1, Register{CLASS_GPR, 64, 40}}, ErrOperandTypeMismatch},
		{"add x0, x1, x-1", INST_ADD_SHIFT, []Operand{X0, X1, Register{CLASS_GPR, 64, -1}}, ErrOperandTypeMismatch},
		{"add x0, x1, #1 with a 16 bit x0", INST_ADD_IMM, []Operand{Register{CLASS_GPR, 16, 0}, X1, Imm(1)}, ErrOperandTypeMismatch},
		{"cbz sp at index 3, #8", INST_CBZ, []Operand{Register{CLASS_SP, 64, 3}, Imm(8)}, ErrOperandTypeMismatch},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			word, err := encodeWord(entry.inst, entry.ops...)
			assert.ErrorIs(err, entry.err)
			assert.Equal(uint32(0), word)

			var encErr ErrEncode
			assert.True(errors.As(err, &encErr))
			assert.Equal(entry.inst, encErr.Instruction)
		})
	}
}

func TestEncodeImm9Range(t *testing.T) {
	assert := assert.New(t)

	for disp := int64(-300); disp <= 300; disp++ {
		word, err := encodeWord(INST_LDUR, X0, MustMemory(Ptr(X1, disp)))
		if disp < -256 || disp > 255 {
			assert.ErrorIs(err, ErrImmediateOutOfRange, "disp %d", disp)
			continue
		}
		assert.NoError(err, "disp %d", disp)
		assert.Equal(uint32(disp)&0x1ff, (word>>12)&0x1ff, "disp %d", disp)
	}
}

func TestEncodeScaledWordPointer(t *testing.T) {
	assert := assert.New(t)

	_, err := encodeWord(INST_LDR_OFF, W0, MustMemory(WordPtr(X1, 7)))
	assert.ErrorIs(err, ErrMisalignedDisplacement)

	var align ErrAlign
	assert.True(errors.As(err, &align))
	assert.Equal(ErrAlign{Value: 7, Units: 4}, align)

	word, err := encodeWord(INST_LDR_OFF, W0, MustMemory(WordPtr(X1, 8)))
	assert.NoError(err)
	assert.Equal(uint32(2), (word>>10)&0xfff)

	// The size tag must agree with the access size.
	_, err = encodeWord(INST_LDR_OFF, W0, MustMemory(DoublewordPtr(X1, 8)))
	assert.ErrorIs(err, ErrOperandTypeMismatch)
}

func TestEncodeAliases(t *testing.T) {
	table := [...]struct {
		name         string
		alias        Instruction
		aliasOps     []Operand
		canonical    Instruction
		canonicalOps []Operand
		word         uint32
	}{
		{"lsl x0, x1, #3", INST_LSL_IMM, []Operand{X0, X1, Imm(3)}, INST_UBFM, []Operand{X0, X1, Imm(61), Imm(60)}, 0xd37df020},
		{"lsl w0, w1, #31", INST_LSL_IMM, []Operand{W0, W1, Imm(31)}, INST_UBFM, []Operand{W0, W1, Imm(1), Imm(0)}, 0x53010020},
		{"lsr x0, x1, #4", INST_LSR_IMM, []Operand{X0, X1, Imm(4)}, INST_UBFM, []Operand{X0, X1, Imm(4), Imm(63)}, 0xd344fc20},
		{"asr w0, w1, #2", INST_ASR_IMM, []Operand{W0, W1, Imm(2)}, INST_SBFM, []Operand{W0, W1, Imm(2), Imm(31)}, 0x13027c20},
		{"ubfx x0, x1, #4, #8", INST_UBFX, []Operand{X0, X1, Imm(4), Imm(8)}, INST_UBFM, []Operand{X0, X1, Imm(4), Imm(11)}, 0xd3442c20},
		{"sbfx w0, w1, #8, #8", INST_SBFX, []Operand{W0, W1, Imm(8), Imm(8)}, INST_SBFM, []Operand{W0, W1, Imm(8), Imm(15)}, 0x13083c20},
		{"bfxil x0, x1, #16, #16", INST_BFXIL, []Operand{X0, X1, Imm(16), Imm(16)}, INST_BFM, []Operand{X0, X1, Imm(16), Imm(31)}, 0xb3507c20},
		{"bfi w0, w1, #4, #4", INST_BFI, []Operand{W0, W1, Imm(4), Imm(4)}, INST_BFM, []Operand{W0, W1, Imm(28), Imm(3)}, 0x331c0c20},
		{"ubfiz x0, x1, #0, #8", INST_UBFIZ, []Operand{X0, X1, Imm(0), Imm(8)}, INST_UBFM, []Operand{X0, X1, Imm(0), Imm(7)}, 0xd3401c20},
		{"sbfiz x0, x1, #3, #5", INST_SBFIZ, []Operand{X0, X1, Imm(3), Imm(5)}, INST_SBFM, []Operand{X0, X1, Imm(61), Imm(4)}, 0x937d1020},
		{"ror x0, x1, #7", INST_ROR_IMM, []Operand{X0, X1, Imm(7)}, INST_EXTR, []Operand{X0, X1, X1, Imm(7)}, 0x93c11c20},
		{"cinc x0, x1, ne", INST_CINC, []Operand{X0, X1, COND_NE}, INST_CSINC, []Operand{X0, X1, X1, COND_EQ}, 0x9a810420},
		{"cinv x2, x3, lt", INST_CINV, []Operand{X2, X3, COND_LT}, INST_CSINV, []Operand{X2, X3, X3, COND_GE}, 0xda83a062},
		{"cneg w0, w1, mi", INST_CNEG, []Operand{W0, W1, COND_MI}, INST_CSNEG, []Operand{W0, W1, W1, COND_PL}, 0x5a815420},
		{"bic x0, x1, #0xfff0", INST_BIC_IMM, []Operand{X0, X1, Imm(0xfff0)}, INST_AND_IMM, []Operand{X0, X1, Imm(-0xfff1)}, 0x9270cc20},
		{"bic w0, w1, #0xff", INST_BIC_IMM, []Operand{W0, W1, Imm(0xff)}, INST_AND_IMM, []Operand{W0, W1, Imm(0xffffff00)}, 0x12185c20},
		{"mov x0, #-1", INST_MOV_INV, []Operand{X0, Imm(-1)}, INST_MOVN, []Operand{X0, Imm(0)}, 0x92800000},
		{"mov w0, #-2", INST_MOV_INV, []Operand{W0, Imm(-2)}, INST_MOVN, []Operand{W0, Imm(1)}, 0x12800020},
		{"mov x0, #-0x10001", INST_MOV_INV, []Operand{X0, Imm(-0x10001)}, INST_MOVN, []Operand{X0, Imm(1), LSL(16)}, 0x92a00020},
		{"mov x0, #0x12340000", INST_MOV_WIDE, []Operand{X0, Imm(0x12340000)}, INST_MOVZ, []Operand{X0, Imm(0x1234), LSL(16)}, 0xd2a24680},
		{"mov x0, #7, lsl #32", INST_MOV_WIDE, []Operand{X0, Imm(7), LSL(32)}, INST_MOVZ, []Operand{X0, Imm(7), LSL(32)}, 0xd2c000e0},
		{"lsr x0, x1, x2", INST_LSR_REG, []Operand{X0, X1, X2}, INST_LSRV, []Operand{X0, X1, X2}, 0x9ac22420},
		{"b.hs #64", INST_BHS, []Operand{Imm(64)}, INST_BCS, []Operand{Imm(64)}, 0x54000202},
		{"b.lo #-64", INST_BLO, []Operand{Imm(-64)}, INST_BCC, []Operand{Imm(-64)}, 0x54fffe03},
		{"tlbi", INST_TLBI, []Operand{Imm(0), Imm(8), Imm(7), Imm(0)}, INST_SYS, []Operand{Imm(0), Imm(8), Imm(7), Imm(0)}, 0xd508871f},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			alias, err := encodeWord(entry.alias, entry.aliasOps...)
			assert.NoError(err)
			canonical, err := encodeWord(entry.canonical, entry.canonicalOps...)
			assert.NoError(err)
			assert.Equal(entry.word, canonical)
			assert.Equal(canonical, alias)
		})
	}
}

func TestEncodeAliasErrors(t *testing.T) {
	table := [...]struct {
		name string
		inst Instruction
		ops  []Operand
		err  error
	}{
		{"lsl x0, x1, #64", INST_LSL_IMM, []Operand{X0, X1, Imm(64)}, ErrImmediateOutOfRange},
		{"lsl x0, x1, x2", INST_LSL_IMM, []Operand{X0, X1, X2}, ErrOperandTypeMismatch},
		{"lsr w0, w1, #32", INST_LSR_IMM, []Operand{W0, W1, Imm(32)}, ErrImmediateOutOfRange},
		{"ubfx w0, w1, #28, #8", INST_UBFX, []Operand{W0, W1, Imm(28), Imm(8)}, ErrImmediateOutOfRange},
		{"bfi x0, x1, #4, #0", INST_BFI, []Operand{X0, X1, Imm(4), Imm(0)}, ErrImmediateOutOfRange},
		{"ubfx x0, x1, #4", INST_UBFX, []Operand{X0, X1, Imm(4)}, ErrOperandTypeMismatch},
		{"ror x0, x1, #64", INST_ROR_IMM, []Operand{X0, X1, Imm(64)}, ErrImmediateOutOfRange},
		{"cinc x0, x1, al", INST_CINC, []Operand{X0, X1, COND_AL}, ErrOperandTypeMismatch},
		{"cinc x0, x1, x2, eq", INST_CINC, []Operand{X0, X1, X2, COND_EQ}, ErrOperandTypeMismatch},
		{"bic w0, w1, #0x100000000", INST_BIC_IMM, []Operand{W0, W1, Imm(0x100000000)}, ErrImmediateOutOfRange},
		{"bic x0, x1, #-1", INST_BIC_IMM, []Operand{X0, X1, Imm(-1)}, ErrImmediateOutOfRange},
		{"mov x0, #0x12345 inverted", INST_MOV_INV, []Operand{X0, Imm(0x12345)}, ErrImmediateOutOfRange},
		{"mov x0, #0x12345", INST_MOV_WIDE, []Operand{X0, Imm(0x12345)}, ErrImmediateOutOfRange},
		{"mov x0, #-1 wide", INST_MOV_WIDE, []Operand{X0, Imm(-1)}, ErrImmediateOutOfRange},
		{"mov x40, #1", INST_MOV_WIDE, []Operand{Register{CLASS_GPR, 64, 40}, Imm(1)}, ErrOperandTypeMismatch},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			word, err := encodeWord(entry.inst, entry.ops...)
			assert.ErrorIs(err, entry.err)
			assert.Equal(uint32(0), word)

			var encErr ErrEncode
			assert.True(errors.As(err, &encErr))
			assert.Equal(entry.inst, encErr.Instruction)
		})
	}
}

func TestEncodeFixedFields(t *testing.T) {
	assert := assert.New(t)

	desc := Descriptor{Instruction: INST_NONE, Opcode: 0xd503201f, Mask: 0x0000ffff, Group: GROUP_SYSTEM}
	_, err := Encode(desc, Site{})
	assert.ErrorIs(err, ErrOpcodeMask)

	desc = Descriptor{Instruction: INST_NONE, Opcode: 0, Mask: 0, Group: GROUP_NONE}
	_, err = Encode(desc, Site{})
	assert.ErrorIs(err, ErrGroup)

	desc = Descriptor{Instruction: INST_NONE, Opcode: 0, Mask: 0, Group: GROUP_COUNT}
	_, err = Encode(desc, Site{})
	assert.ErrorIs(err, ErrGroup)
}

func TestEncodeAbsoluteTarget(t *testing.T) {
	assert := assert.New(t)

	desc, err := Find(INST_B)
	assert.NoError(err)

	site := Site{Offset: 0x10, Origin: 0x40000}
	enc, err := Encode(desc, site, MustMemory(SIZE_NONE.PtrAbs(0x40100, 0)))
	assert.NoError(err)
	assert.Nil(enc.Relocation)
	assert.Equal(int64(0xf0), fieldBranch26.Decode(enc.Word))

	desc, err = Find(INST_ADRP)
	assert.NoError(err)

	enc, err = Encode(desc, site, X0, MustMemory(SIZE_NONE.PtrAbs(0x43010, 0)))
	assert.NoError(err)
	assert.Equal(int64(0x3000), fieldAdrp.Decode(enc.Word))
	assert.Equal(uint32(0), enc.Word&0x1f)
}

func TestEncodeLabelTarget(t *testing.T) {
	assert := assert.New(t)

	var resolver Resolver
	back := resolver.NewLabel("back")
	forward := resolver.NewLabel("forward")
	assert.NoError(resolver.Bind(back, 0))

	desc, err := Find(INST_CBZ)
	assert.NoError(err)

	site := Site{Offset: 8, Resolver: &resolver}
	enc, err := Encode(desc, site, X3, back)
	assert.NoError(err)
	assert.Nil(enc.Relocation)
	assert.Equal(int64(-8), fieldBranch19.Decode(enc.Word))

	enc, err = Encode(desc, site, X3, MustMemory(SIZE_NONE.PtrLabel(forward, 4)))
	assert.NoError(err)
	if assert.NotNil(enc.Relocation) {
		assert.Equal(Relocation{
			Offset: 8,
			Label:  forward,
			Addend: 4,
			Word:   0xb4000003,
			Field:  fieldBranch19,
		}, *enc.Relocation)
	}
}

func TestBitmask(t *testing.T) {
	table := [...]struct {
		value uint64
		n     uint32
		immr  uint32
		imms  uint32
	}{
		{0xff, 1, 0, 7},
		{0x0000000100000001, 0, 0, 0},
		{0x5555555555555555, 0, 0, 0x3c},
		{0x8000000000000000, 1, 1, 0},
		{0xfffffffffffffffe, 1, 63, 62},
		{0x00ff00ff00ff00ff, 0, 0, 0x27},
	}

	for _, entry := range table {
		assert := assert.New(t)

		n, immr, imms, ok := encodeBitmask(entry.value)
		assert.True(ok, "%#x", entry.value)
		assert.Equal(entry.n, n, "%#x", entry.value)
		assert.Equal(entry.immr, immr, "%#x", entry.value)
		assert.Equal(entry.imms, imms, "%#x", entry.value)

		value, ok := decodeBitmask(n, immr, imms)
		assert.True(ok)
		assert.Equal(entry.value, value)
	}

	for _, value := range []uint64{0, ^uint64(0), 5, 0x1234} {
		_, _, _, ok := encodeBitmask(value)
		assert.False(t, ok, "%#x", value)
	}
}
