package a64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorTable(t *testing.T) {
	assert := assert.New(t)

	descs := Descriptors()
	assert.Equal(len(instructionNames)-1, len(descs))

	for n, desc := range descs {
		assert.Equal(Instruction(n+1), desc.Instruction)
		assert.NoError(desc.Verify(), "%v", desc)
		assert.True(desc.Match(desc.Opcode), "%v", desc)
		assert.NotEmpty(desc.Mnemonic, "%v", desc)
		assert.NotEqual(GROUP_NONE, desc.Group, "%v", desc)
		assert.NotNil(groupEncoders[desc.Group], "%v", desc)

		found, err := Find(desc.Instruction)
		assert.NoError(err)
		assert.Equal(desc, found)
	}

	// The copy is not the table.
	descs[0].Opcode = 0xffffffff
	desc, err := Find(INST_ADC)
	assert.NoError(err)
	assert.Equal(uint32(0x1a000000), desc.Opcode)
}

func TestDescriptorFind(t *testing.T) {
	assert := assert.New(t)

	_, err := Find(INST_NONE)
	assert.ErrorIs(err, ErrUnknownInstruction)

	_, err = Find(Instruction(len(descriptors) + 1))
	assert.ErrorIs(err, ErrUnknownInstruction)

	desc, err := Find(INST_NOP)
	assert.NoError(err)
	assert.Equal(Descriptor{INST_NOP, "nop", 0xd503201f, 0xffffffff, GROUP_SYSTEM}, desc)
	assert.Equal("nop (0xd503201f/0xffffffff)", desc.String())
}

func TestDescriptorLookup(t *testing.T) {
	assert := assert.New(t)

	var insts []Instruction
	for _, desc := range Lookup("LDR") {
		insts = append(insts, desc.Instruction)
	}
	assert.Equal([]Instruction{
		INST_LDR_POST,
		INST_LDR_PRE,
		INST_LDR_OFF,
		INST_LDR_REG,
		INST_LDR_LIT,
	}, insts)

	assert.Len(Lookup("cmp"), 3)
	assert.Len(Lookup("b.eq"), 1)
	assert.Empty(Lookup("frobnicate"))
}

func TestDescriptorAliases(t *testing.T) {
	assert := assert.New(t)

	// Aliases keep their own mnemonic and share the canonical encoding.
	for alias, canonical := range map[Instruction]Instruction{
		INST_LSL_IMM:  INST_UBFM,
		INST_LSR_IMM:  INST_UBFM,
		INST_UBFIZ:    INST_UBFM,
		INST_UBFX:     INST_UBFM,
		INST_ASR_IMM:  INST_SBFM,
		INST_SBFIZ:    INST_SBFM,
		INST_SBFX:     INST_SBFM,
		INST_BFI:      INST_BFM,
		INST_BFXIL:    INST_BFM,
		INST_ROR_IMM:  INST_EXTR,
		INST_CINC:     INST_CSINC,
		INST_CINV:     INST_CSINV,
		INST_CNEG:     INST_CSNEG,
		INST_BIC_IMM:  INST_AND_IMM,
		INST_MOV_INV:  INST_MOVN,
		INST_MOV_WIDE: INST_MOVZ,
		INST_AT:       INST_SYS,
		INST_DC:       INST_SYS,
		INST_IC:       INST_SYS,
		INST_TLBI:     INST_SYS,
	} {
		a, err := Find(alias)
		assert.NoError(err)
		c, err := Find(canonical)
		assert.NoError(err)
		assert.Equal(c.Opcode, a.Opcode, "%v", alias)
		assert.Equal(c.Mask, a.Mask, "%v", alias)
		assert.Equal(c.Group, a.Group, "%v", alias)
	}
}

func TestGroup(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(groupEncoders[GROUP_NONE])
	for group := GROUP_NONE + 1; group < GROUP_COUNT; group++ {
		assert.NotNil(groupEncoders[group], "%v", group)
		assert.NotEmpty(group.String())
	}

	assert.Equal("Group(99)", Group(99).String())
	assert.Equal(WRITEBACK_PRE, GROUP_LDSTPAIR_PRE.Writeback())
	assert.Equal(WRITEBACK_POST, GROUP_LDST_POST.Writeback())
	assert.Equal(WRITEBACK_NONE, GROUP_LDST_UNSCALED.Writeback())
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add_imm", INST_ADD_IMM.String())
	assert.Equal("mov_wide", INST_MOV_WIDE.String())
	assert.Equal("Instruction(-1)", Instruction(-1).String())
}
