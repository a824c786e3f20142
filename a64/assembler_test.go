package a64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemblerForwardBranch(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	target := asm.NewLabel("target")

	offset, err := asm.Emit(INST_BEQ, target)
	assert.NoError(err)
	assert.Equal(0, offset)
	assert.Len(asm.Resolver.Pending(), 1)

	for range 3 {
		_, err = asm.Emit(INST_NOP)
		assert.NoError(err)
	}

	assert.NoError(asm.Bind(target))
	assert.NoError(asm.Finalize())

	buf := asm.Buffer.(*CodeBuffer)
	assert.Equal([]uint32{0x54000080, 0xd503201f, 0xd503201f, 0xd503201f}, buf.Words())
	assert.Equal(int64(16), fieldBranch19.Decode(buf.Word(0)))
	assert.Empty(asm.Resolver.Pending())
}

func TestAssemblerBackwardBranch(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	loop := asm.NewLabel("loop")

	assert.NoError(asm.Bind(loop))
	_, err := asm.Emit(INST_SUBS_IMM, X0, X0, Imm(1))
	assert.NoError(err)
	_, err = asm.Emit(INST_CBNZ, X0, loop)
	assert.NoError(err)
	_, err = asm.Emit(INST_RET)
	assert.NoError(err)

	// Bound labels are resolved at emit time.
	assert.Empty(asm.Resolver.Pending())
	assert.NoError(asm.Finalize())

	buf := asm.Buffer.(*CodeBuffer)
	assert.Equal([]uint32{0xf1000400, 0xb5ffffe0, 0xd65f03c0}, buf.Words())
}

func TestAssemblerFunction(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()

	emit := func(inst Instruction, ops ...Operand) {
		_, err := asm.Emit(inst, ops...)
		assert.NoError(err, "%v", inst)
	}

	emit(INST_STP_PRE, FP, LR, MustMemory(Ptr(SP, -16)))
	emit(INST_MOV_SP, FP, SP)
	emit(INST_MOVZ, X0, Imm(0x1234))
	emit(INST_LDP_POST, FP, LR, MustMemory(Ptr(SP, 16)))
	emit(INST_RET)

	assert.NoError(asm.Finalize())
	assert.Equal(20, asm.Offset())

	buf := asm.Buffer.(*CodeBuffer)
	assert.Equal([]uint32{
		0xa9bf7bfd,
		0x910003fd,
		0xd2824680,
		0xa8c17bfd,
		0xd65f03c0,
	}, buf.Words())
	assert.Equal([]byte{0xfd, 0x7b, 0xbf, 0xa9}, buf.Bytes()[:4])
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()

	_, err := asm.Emit(INST_NONE)
	assert.ErrorIs(err, ErrUnknownInstruction)

	// Nothing is written when encoding fails.
	_, err = asm.Emit(INST_ADD_IMM, X0, X1, Imm(4096))
	assert.ErrorIs(err, ErrImmediateOutOfRange)
	assert.Equal(0, asm.Offset())

	label := asm.NewLabel("twice")
	assert.NoError(asm.Bind(label))
	assert.ErrorIs(asm.BindAt(label, 4), ErrDoubleBind)

	missing := asm.NewLabel("missing")
	_, err = asm.Emit(INST_B, missing)
	assert.NoError(err)
	assert.ErrorIs(asm.Finalize(), ErrUnboundLabel)
	assert.Len(asm.Resolver.Pending(), 1)
}

func TestAssemblerOrigin(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	asm.Origin = 0x400000

	asm.Word(0xdeadbeef)
	target := MustMemory(SIZE_NONE.PtrAbs(0x400000, 0))
	_, err := asm.Emit(INST_B, target)
	assert.NoError(err)

	buf := asm.Buffer.(*CodeBuffer)
	assert.Equal(uint32(0xdeadbeef), buf.Word(0))
	assert.Equal(int64(-4), fieldBranch26.Decode(buf.Word(4)))
}
