// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"fmt"
	"slices"
	"strings"
)

// Instruction is the identity of one descriptor table row.
type Instruction int

const (
	INST_NONE = Instruction(iota)

	// Add/subtract with carry
	INST_ADC
	INST_ADCS
	INST_SBC
	INST_SBCS
	INST_NGC
	INST_NGCS

	// Add/subtract immediate
	INST_ADD_IMM
	INST_ADDS_IMM
	INST_SUB_IMM
	INST_SUBS_IMM
	INST_CMP_IMM
	INST_CMN_IMM

	// Add/subtract shifted register
	INST_ADD_SHIFT
	INST_ADDS_SHIFT
	INST_SUB_SHIFT
	INST_SUBS_SHIFT
	INST_CMP_SHIFT
	INST_CMN_SHIFT
	INST_NEG
	INST_NEGS

	// Add/subtract extended register
	INST_ADD_EXT
	INST_ADDS_EXT
	INST_SUB_EXT
	INST_SUBS_EXT
	INST_CMP_EXT
	INST_CMN_EXT

	// PC-relative addressing
	INST_ADR
	INST_ADRP

	// Logical immediate
	INST_AND_IMM
	INST_ORR_IMM
	INST_EOR_IMM
	INST_ANDS_IMM
	INST_BIC_IMM
	INST_MOV_BITMASK
	INST_TST_IMM

	// Logical shifted register
	INST_AND_SHIFT
	INST_BIC_SHIFT
	INST_ORR_SHIFT
	INST_ORN_SHIFT
	INST_EOR_SHIFT
	INST_EON_SHIFT
	INST_ANDS_SHIFT
	INST_BICS_SHIFT
	INST_MOV_REG
	INST_MVN
	INST_TST_SHIFT
	INST_MOV_SP

	// Bitfield
	INST_SBFM
	INST_BFM
	INST_UBFM
	INST_ASR_IMM
	INST_SBFIZ
	INST_SBFX
	INST_BFI
	INST_BFXIL
	INST_LSL_IMM
	INST_LSR_IMM
	INST_UBFIZ
	INST_UBFX
	INST_SXTB
	INST_SXTH
	INST_SXTW
	INST_UXTB
	INST_UXTH
	INST_UXTW

	// Extract
	INST_EXTR
	INST_ROR_IMM

	// Data processing, one source
	INST_RBIT
	INST_REV16
	INST_REV
	INST_REV_X
	INST_REV32
	INST_CLZ
	INST_CLS

	// Data processing, two sources
	INST_UDIV
	INST_SDIV
	INST_LSLV
	INST_LSRV
	INST_ASRV
	INST_RORV
	INST_LSL_REG
	INST_LSR_REG
	INST_ASR_REG
	INST_ROR_REG

	// Data processing, three sources
	INST_MADD
	INST_MSUB
	INST_MUL
	INST_MNEG
	INST_SMADDL
	INST_SMSUBL
	INST_SMULL
	INST_SMNEGL
	INST_UMADDL
	INST_UMSUBL
	INST_UMULL
	INST_UMNEGL
	INST_SMULH
	INST_UMULH

	// Conditional branch
	INST_B_COND
	INST_BEQ
	INST_BNE
	INST_BCS
	INST_BHS
	INST_BCC
	INST_BLO
	INST_BMI
	INST_BPL
	INST_BVS
	INST_BVC
	INST_BHI
	INST_BLS
	INST_BGE
	INST_BLT
	INST_BGT
	INST_BLE

	// Unconditional branch
	INST_B
	INST_BL
	INST_BR
	INST_BLR
	INST_RET
	INST_ERET
	INST_DRPS

	// Compare and branch
	INST_CBZ
	INST_CBNZ

	// Test and branch
	INST_TBZ
	INST_TBNZ

	// Conditional compare
	INST_CCMN_IMM
	INST_CCMP_IMM
	INST_CCMN_REG
	INST_CCMP_REG

	// Conditional select
	INST_CSEL
	INST_CSINC
	INST_CSINV
	INST_CSNEG
	INST_CINC
	INST_CINV
	INST_CNEG
	INST_CSET
	INST_CSETM

	// Exception generation
	INST_SVC
	INST_HVC
	INST_SMC
	INST_BRK
	INST_HLT
	INST_DCPS1
	INST_DCPS2
	INST_DCPS3

	// System
	INST_NOP
	INST_YIELD
	INST_WFE
	INST_WFI
	INST_SEV
	INST_SEVL
	INST_HINT
	INST_CLREX
	INST_DSB
	INST_DMB
	INST_ISB
	INST_SYS
	INST_SYSL
	INST_AT
	INST_DC
	INST_IC
	INST_TLBI
	INST_MSR_IMM
	INST_MSR_REG
	INST_MRS

	// Load/store exclusive
	INST_STXRB
	INST_STLXRB
	INST_STXRH
	INST_STLXRH
	INST_STXR
	INST_STLXR
	INST_LDXRB
	INST_LDAXRB
	INST_LDXRH
	INST_LDAXRH
	INST_LDXR
	INST_LDAXR
	INST_STLRB
	INST_STLRH
	INST_STLR
	INST_LDARB
	INST_LDARH
	INST_LDAR
	INST_STXP
	INST_STLXP
	INST_LDXP
	INST_LDAXP

	// Load/store pair
	INST_STP_POST
	INST_STP_PRE
	INST_STP_OFF
	INST_LDP_POST
	INST_LDP_PRE
	INST_LDP_OFF
	INST_LDPSW_POST
	INST_LDPSW_PRE
	INST_LDPSW_OFF
	INST_STNP
	INST_LDNP

	// Load/store register
	INST_STRB_POST
	INST_STRB_PRE
	INST_STRB_OFF
	INST_STRB_REG
	INST_LDRB_POST
	INST_LDRB_PRE
	INST_LDRB_OFF
	INST_LDRB_REG
	INST_LDRSB_POST
	INST_LDRSB_PRE
	INST_LDRSB_OFF
	INST_LDRSB_REG
	INST_STRH_POST
	INST_STRH_PRE
	INST_STRH_OFF
	INST_STRH_REG
	INST_LDRH_POST
	INST_LDRH_PRE
	INST_LDRH_OFF
	INST_LDRH_REG
	INST_LDRSH_POST
	INST_LDRSH_PRE
	INST_LDRSH_OFF
	INST_LDRSH_REG
	INST_STR_POST
	INST_STR_PRE
	INST_STR_OFF
	INST_STR_REG
	INST_LDR_POST
	INST_LDR_PRE
	INST_LDR_OFF
	INST_LDR_REG
	INST_LDRSW_POST
	INST_LDRSW_PRE
	INST_LDRSW_OFF
	INST_LDRSW_REG

	// Load/store register, unscaled
	INST_STURB
	INST_LDURB
	INST_LDURSB
	INST_STURH
	INST_LDURH
	INST_LDURSH
	INST_STUR
	INST_LDUR
	INST_LDURSW

	// Load/store register, unprivileged
	INST_STTRB
	INST_LDTRB
	INST_LDTRSB
	INST_STTRH
	INST_LDTRH
	INST_LDTRSH
	INST_STTR
	INST_LDTR
	INST_LDTRSW

	// Prefetch
	INST_PRFM_OFF
	INST_PRFM_REG
	INST_PRFUM

	// Load literal
	INST_LDR_LIT
	INST_LDRSW_LIT
	INST_PRFM_LIT

	// Move wide
	INST_MOVN
	INST_MOVZ
	INST_MOVK
	INST_MOV_WIDE
	INST_MOV_INV
)

// Descriptor is one row of the instruction table.
type Descriptor struct {
	Instruction Instruction
	Mnemonic    string // Assembler syntax name.
	Opcode      uint32 // Fixed bits.
	Mask        uint32 // Which bits of Opcode are fixed.
	Group       Group
}

var descriptors = [...]Descriptor{
	// Add/subtract with carry
	{INST_ADC, "adc", 0x1a000000, 0x7fe0fc00, GROUP_ADDSUB_CARRY},
	{INST_ADCS, "adcs", 0x3a000000, 0x7fe0fc00, GROUP_ADDSUB_CARRY},
	{INST_SBC, "sbc", 0x5a000000, 0x7fe0fc00, GROUP_ADDSUB_CARRY},
	{INST_SBCS, "sbcs", 0x7a000000, 0x7fe0fc00, GROUP_ADDSUB_CARRY},
	{INST_NGC, "ngc", 0x5a0003e0, 0x7fe0ffe0, GROUP_ADDSUB_CARRY},
	{INST_NGCS, "ngcs", 0x7a0003e0, 0x7fe0ffe0, GROUP_ADDSUB_CARRY},

	// Add/subtract immediate
	{INST_ADD_IMM, "add", 0x11000000, 0x7f800000, GROUP_ADDSUB_IMM},
	{INST_ADDS_IMM, "adds", 0x31000000, 0x7f800000, GROUP_ADDSUB_IMM},
	{INST_SUB_IMM, "sub", 0x51000000, 0x7f800000, GROUP_ADDSUB_IMM},
	{INST_SUBS_IMM, "subs", 0x71000000, 0x7f800000, GROUP_ADDSUB_IMM},
	{INST_CMP_IMM, "cmp", 0x7100001f, 0x7f80001f, GROUP_ADDSUB_IMM},
	{INST_CMN_IMM, "cmn", 0x3100001f, 0x7f80001f, GROUP_ADDSUB_IMM},

	// Add/subtract shifted register
	{INST_ADD_SHIFT, "add", 0x0b000000, 0x7f200000, GROUP_ADDSUB_SHIFT},
	{INST_ADDS_SHIFT, "adds", 0x2b000000, 0x7f200000, GROUP_ADDSUB_SHIFT},
	{INST_SUB_SHIFT, "sub", 0x4b000000, 0x7f200000, GROUP_ADDSUB_SHIFT},
	{INST_SUBS_SHIFT, "subs", 0x6b000000, 0x7f200000, GROUP_ADDSUB_SHIFT},
	{INST_CMP_SHIFT, "cmp", 0x6b00001f, 0x7f20001f, GROUP_ADDSUB_SHIFT},
	{INST_CMN_SHIFT, "cmn", 0x2b00001f, 0x7f20001f, GROUP_ADDSUB_SHIFT},
	{INST_NEG, "neg", 0x4b0003e0, 0x7f2003e0, GROUP_ADDSUB_SHIFT},
	{INST_NEGS, "negs", 0x6b0003e0, 0x7f2003e0, GROUP_ADDSUB_SHIFT},

	// Add/subtract extended register
	{INST_ADD_EXT, "add", 0x0b200000, 0x7fe00000, GROUP_ADDSUB_EXT},
	{INST_ADDS_EXT, "adds", 0x2b200000, 0x7fe00000, GROUP_ADDSUB_EXT},
	{INST_SUB_EXT, "sub", 0x4b200000, 0x7fe00000, GROUP_ADDSUB_EXT},
	{INST_SUBS_EXT, "subs", 0x6b200000, 0x7fe00000, GROUP_ADDSUB_EXT},
	{INST_CMP_EXT, "cmp", 0x6b20001f, 0x7fe0001f, GROUP_ADDSUB_EXT},
	{INST_CMN_EXT, "cmn", 0x2b20001f, 0x7fe0001f, GROUP_ADDSUB_EXT},

	// PC-relative addressing
	{INST_ADR, "adr", 0x10000000, 0x9f000000, GROUP_PCRELADDR},
	{INST_ADRP, "adrp", 0x90000000, 0x9f000000, GROUP_PCRELADDR},

	// Logical immediate
	{INST_AND_IMM, "and", 0x12000000, 0x7f800000, GROUP_LOG_IMM},
	{INST_ORR_IMM, "orr", 0x32000000, 0x7f800000, GROUP_LOG_IMM},
	{INST_EOR_IMM, "eor", 0x52000000, 0x7f800000, GROUP_LOG_IMM},
	{INST_ANDS_IMM, "ands", 0x72000000, 0x7f800000, GROUP_LOG_IMM},
	{INST_BIC_IMM, "bic", 0x12000000, 0x7f800000, GROUP_LOG_IMM},
	{INST_MOV_BITMASK, "mov", 0x320003e0, 0x7f8003e0, GROUP_LOG_IMM},
	{INST_TST_IMM, "tst", 0x7200001f, 0x7f80001f, GROUP_LOG_IMM},

	// Logical shifted register
	{INST_AND_SHIFT, "and", 0x0a000000, 0x7f200000, GROUP_LOG_SHIFT},
	{INST_BIC_SHIFT, "bic", 0x0a200000, 0x7f200000, GROUP_LOG_SHIFT},
	{INST_ORR_SHIFT, "orr", 0x2a000000, 0x7f200000, GROUP_LOG_SHIFT},
	{INST_ORN_SHIFT, "orn", 0x2a200000, 0x7f200000, GROUP_LOG_SHIFT},
	{INST_EOR_SHIFT, "eor", 0x4a000000, 0x7f200000, GROUP_LOG_SHIFT},
	{INST_EON_SHIFT, "eon", 0x4a200000, 0x7f200000, GROUP_LOG_SHIFT},
	{INST_ANDS_SHIFT, "ands", 0x6a000000, 0x7f200000, GROUP_LOG_SHIFT},
	{INST_BICS_SHIFT, "bics", 0x6a200000, 0x7f200000, GROUP_LOG_SHIFT},
	{INST_MOV_REG, "mov", 0x2a0003e0, 0x7f2003e0, GROUP_LOG_SHIFT},
	{INST_MVN, "mvn", 0x2a2003e0, 0x7f2003e0, GROUP_LOG_SHIFT},
	{INST_TST_SHIFT, "tst", 0x6a00001f, 0x7f20001f, GROUP_LOG_SHIFT},
	{INST_MOV_SP, "mov", 0x11000000, 0x7ffffc00, GROUP_ADDSUB_IMM},

	// Bitfield
	{INST_SBFM, "sbfm", 0x13000000, 0x7f800000, GROUP_BITFIELD},
	{INST_BFM, "bfm", 0x33000000, 0x7f800000, GROUP_BITFIELD},
	{INST_UBFM, "ubfm", 0x53000000, 0x7f800000, GROUP_BITFIELD},
	{INST_ASR_IMM, "asr", 0x13000000, 0x7f800000, GROUP_BITFIELD},
	{INST_SBFIZ, "sbfiz", 0x13000000, 0x7f800000, GROUP_BITFIELD},
	{INST_SBFX, "sbfx", 0x13000000, 0x7f800000, GROUP_BITFIELD},
	{INST_BFI, "bfi", 0x33000000, 0x7f800000, GROUP_BITFIELD},
	{INST_BFXIL, "bfxil", 0x33000000, 0x7f800000, GROUP_BITFIELD},
	{INST_LSL_IMM, "lsl", 0x53000000, 0x7f800000, GROUP_BITFIELD},
	{INST_LSR_IMM, "lsr", 0x53000000, 0x7f800000, GROUP_BITFIELD},
	{INST_UBFIZ, "ubfiz", 0x53000000, 0x7f800000, GROUP_BITFIELD},
	{INST_UBFX, "ubfx", 0x53000000, 0x7f800000, GROUP_BITFIELD},
	{INST_SXTB, "sxtb", 0x13001c00, 0x7fbffc00, GROUP_BITFIELD},
	{INST_SXTH, "sxth", 0x13003c00, 0x7fbffc00, GROUP_BITFIELD},
	{INST_SXTW, "sxtw", 0x93407c00, 0xfffffc00, GROUP_BITFIELD},
	{INST_UXTB, "uxtb", 0x53001c00, 0xfffffc00, GROUP_BITFIELD},
	{INST_UXTH, "uxth", 0x53003c00, 0xfffffc00, GROUP_BITFIELD},
	{INST_UXTW, "uxtw", 0xd3407c00, 0xfffffc00, GROUP_BITFIELD},

	// Extract
	{INST_EXTR, "extr", 0x13800000, 0x7fa00000, GROUP_EXTRACT},
	{INST_ROR_IMM, "ror", 0x13800000, 0x7fa00000, GROUP_EXTRACT},

	// Data processing, one source
	{INST_RBIT, "rbit", 0x5ac00000, 0x7ffffc00, GROUP_DP_1SRC},
	{INST_REV16, "rev16", 0x5ac00400, 0x7ffffc00, GROUP_DP_1SRC},
	{INST_REV, "rev", 0x5ac00800, 0xfffffc00, GROUP_DP_1SRC},
	{INST_REV_X, "rev", 0xdac00c00, 0xfffffc00, GROUP_DP_1SRC},
	{INST_REV32, "rev32", 0xdac00800, 0xfffffc00, GROUP_DP_1SRC},
	{INST_CLZ, "clz", 0x5ac01000, 0x7ffffc00, GROUP_DP_1SRC},
	{INST_CLS, "cls", 0x5ac01400, 0x7ffffc00, GROUP_DP_1SRC},

	// Data processing, two sources
	{INST_UDIV, "udiv", 0x1ac00800, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_SDIV, "sdiv", 0x1ac00c00, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_LSLV, "lslv", 0x1ac02000, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_LSRV, "lsrv", 0x1ac02400, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_ASRV, "asrv", 0x1ac02800, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_RORV, "rorv", 0x1ac02c00, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_LSL_REG, "lsl", 0x1ac02000, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_LSR_REG, "lsr", 0x1ac02400, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_ASR_REG, "asr", 0x1ac02800, 0x7fe0fc00, GROUP_DP_2SRC},
	{INST_ROR_REG, "ror", 0x1ac02c00, 0x7fe0fc00, GROUP_DP_2SRC},

	// Data processing, three sources
	{INST_MADD, "madd", 0x1b000000, 0x7fe08000, GROUP_DP_3SRC},
	{INST_MSUB, "msub", 0x1b008000, 0x7fe08000, GROUP_DP_3SRC},
	{INST_MUL, "mul", 0x1b007c00, 0x7fe0fc00, GROUP_DP_3SRC},
	{INST_MNEG, "mneg", 0x1b00fc00, 0x7fe0fc00, GROUP_DP_3SRC},
	{INST_SMADDL, "smaddl", 0x9b200000, 0xffe08000, GROUP_DP_3SRC},
	{INST_SMSUBL, "smsubl", 0x9b208000, 0xffe08000, GROUP_DP_3SRC},
	{INST_SMULL, "smull", 0x9b207c00, 0xffe0fc00, GROUP_DP_3SRC},
	{INST_SMNEGL, "smnegl", 0x9b20fc00, 0xffe0fc00, GROUP_DP_3SRC},
	{INST_UMADDL, "umaddl", 0x9ba00000, 0xffe08000, GROUP_DP_3SRC},
	{INST_UMSUBL, "umsubl", 0x9ba08000, 0xffe08000, GROUP_DP_3SRC},
	{INST_UMULL, "umull", 0x9ba07c00, 0xffe0fc00, GROUP_DP_3SRC},
	{INST_UMNEGL, "umnegl", 0x9ba0fc00, 0xffe0fc00, GROUP_DP_3SRC},
	{INST_SMULH, "smulh", 0x9b407c00, 0xffe0fc00, GROUP_DP_3SRC},
	{INST_UMULH, "umulh", 0x9bc07c00, 0xffe0fc00, GROUP_DP_3SRC},

	// Conditional branch
	{INST_B_COND, "b.cond", 0x54000000, 0xff000010, GROUP_CONDBRANCH},
	{INST_BEQ, "b.eq", 0x54000000, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BNE, "b.ne", 0x54000001, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BCS, "b.cs", 0x54000002, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BHS, "b.hs", 0x54000002, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BCC, "b.cc", 0x54000003, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BLO, "b.lo", 0x54000003, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BMI, "b.mi", 0x54000004, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BPL, "b.pl", 0x54000005, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BVS, "b.vs", 0x54000006, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BVC, "b.vc", 0x54000007, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BHI, "b.hi", 0x54000008, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BLS, "b.ls", 0x54000009, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BGE, "b.ge", 0x5400000a, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BLT, "b.lt", 0x5400000b, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BGT, "b.gt", 0x5400000c, 0xff00001f, GROUP_CONDBRANCH},
	{INST_BLE, "b.le", 0x5400000d, 0xff00001f, GROUP_CONDBRANCH},

	// Unconditional branch
	{INST_B, "b", 0x14000000, 0xfc000000, GROUP_BRANCH_IMM},
	{INST_BL, "bl", 0x94000000, 0xfc000000, GROUP_BRANCH_IMM},
	{INST_BR, "br", 0xd61f0000, 0xfffffc1f, GROUP_BRANCH_REG},
	{INST_BLR, "blr", 0xd63f0000, 0xfffffc1f, GROUP_BRANCH_REG},
	{INST_RET, "ret", 0xd65f0000, 0xfffffc1f, GROUP_BRANCH_REG},
	{INST_ERET, "eret", 0xd69f03e0, 0xffffffff, GROUP_BRANCH_REG},
	{INST_DRPS, "drps", 0xd6bf03e0, 0xffffffff, GROUP_BRANCH_REG},

	// Compare and branch
	{INST_CBZ, "cbz", 0x34000000, 0x7f000000, GROUP_COMPBRANCH},
	{INST_CBNZ, "cbnz", 0x35000000, 0x7f000000, GROUP_COMPBRANCH},

	// Test and branch
	{INST_TBZ, "tbz", 0x36000000, 0x7f000000, GROUP_TESTBRANCH},
	{INST_TBNZ, "tbnz", 0x37000000, 0x7f000000, GROUP_TESTBRANCH},

	// Conditional compare
	{INST_CCMN_IMM, "ccmn", 0x3a400800, 0x7fe00c10, GROUP_CONDCMP_IMM},
	{INST_CCMP_IMM, "ccmp", 0x7a400800, 0x7fe00c10, GROUP_CONDCMP_IMM},
	{INST_CCMN_REG, "ccmn", 0x3a400000, 0x7fe00c10, GROUP_CONDCMP_REG},
	{INST_CCMP_REG, "ccmp", 0x7a400000, 0x7fe00c10, GROUP_CONDCMP_REG},

	// Conditional select
	{INST_CSEL, "csel", 0x1a800000, 0x7fe00c00, GROUP_CONDSEL},
	{INST_CSINC, "csinc", 0x1a800400, 0x7fe00c00, GROUP_CONDSEL},
	{INST_CSINV, "csinv", 0x5a800000, 0x7fe00c00, GROUP_CONDSEL},
	{INST_CSNEG, "csneg", 0x5a800400, 0x7fe00c00, GROUP_CONDSEL},
	{INST_CINC, "cinc", 0x1a800400, 0x7fe00c00, GROUP_CONDSEL},
	{INST_CINV, "cinv", 0x5a800000, 0x7fe00c00, GROUP_CONDSEL},
	{INST_CNEG, "cneg", 0x5a800400, 0x7fe00c00, GROUP_CONDSEL},
	{INST_CSET, "cset", 0x1a9f07e0, 0x7fff0fe0, GROUP_CONDSEL},
	{INST_CSETM, "csetm", 0x5a9f03e0, 0x7fff0fe0, GROUP_CONDSEL},

	// Exception generation
	{INST_SVC, "svc", 0xd4000001, 0xffe0001f, GROUP_EXCEPTION},
	{INST_HVC, "hvc", 0xd4000002, 0xffe0001f, GROUP_EXCEPTION},
	{INST_SMC, "smc", 0xd4000003, 0xffe0001f, GROUP_EXCEPTION},
	{INST_BRK, "brk", 0xd4200000, 0xffe0001f, GROUP_EXCEPTION},
	{INST_HLT, "hlt", 0xd4400000, 0xffe0001f, GROUP_EXCEPTION},
	{INST_DCPS1, "dcps1", 0xd4a00001, 0xffe0001f, GROUP_EXCEPTION},
	{INST_DCPS2, "dcps2", 0xd4a00002, 0xffe0001f, GROUP_EXCEPTION},
	{INST_DCPS3, "dcps3", 0xd4a00003, 0xffe0001f, GROUP_EXCEPTION},

	// System
	{INST_NOP, "nop", 0xd503201f, 0xffffffff, GROUP_SYSTEM},
	{INST_YIELD, "yield", 0xd503203f, 0xffffffff, GROUP_SYSTEM},
	{INST_WFE, "wfe", 0xd503205f, 0xffffffff, GROUP_SYSTEM},
	{INST_WFI, "wfi", 0xd503207f, 0xffffffff, GROUP_SYSTEM},
	{INST_SEV, "sev", 0xd503209f, 0xffffffff, GROUP_SYSTEM},
	{INST_SEVL, "sevl", 0xd50320bf, 0xffffffff, GROUP_SYSTEM},
	{INST_HINT, "hint", 0xd503201f, 0xfffff01f, GROUP_SYSTEM},
	{INST_CLREX, "clrex", 0xd503305f, 0xfffff0ff, GROUP_SYSTEM},
	{INST_DSB, "dsb", 0xd503309f, 0xfffff0ff, GROUP_SYSTEM},
	{INST_DMB, "dmb", 0xd50330bf, 0xfffff0ff, GROUP_SYSTEM},
	{INST_ISB, "isb", 0xd50330df, 0xfffff0ff, GROUP_SYSTEM},
	{INST_SYS, "sys", 0xd5080000, 0xfff80000, GROUP_SYSTEM},
	{INST_SYSL, "sysl", 0xd5280000, 0xfff80000, GROUP_SYSTEM},
	{INST_AT, "sys", 0xd5080000, 0xfff80000, GROUP_SYSTEM},
	{INST_DC, "sys", 0xd5080000, 0xfff80000, GROUP_SYSTEM},
	{INST_IC, "sys", 0xd5080000, 0xfff80000, GROUP_SYSTEM},
	{INST_TLBI, "sys", 0xd5080000, 0xfff80000, GROUP_SYSTEM},
	{INST_MSR_IMM, "msr", 0xd500401f, 0xfff8f01f, GROUP_SYSTEM},
	{INST_MSR_REG, "msr", 0xd5100000, 0xfff00000, GROUP_SYSTEM},
	{INST_MRS, "mrs", 0xd5300000, 0xfff00000, GROUP_SYSTEM},

	// Load/store exclusive
	{INST_STXRB, "stxrb", 0x08007c00, 0xffe0fc00, GROUP_LDSTEXCL},
	{INST_STLXRB, "stlxrb", 0x0800fc00, 0xffe0fc00, GROUP_LDSTEXCL},
	{INST_STXRH, "stxrh", 0x48007c00, 0xffe0fc00, GROUP_LDSTEXCL},
	{INST_STLXRH, "stlxrh", 0x4800fc00, 0xffe0fc00, GROUP_LDSTEXCL},
	{INST_STXR, "stxr", 0x88007c00, 0xbfe0fc00, GROUP_LDSTEXCL},
	{INST_STLXR, "stlxr", 0x8800fc00, 0xbfe0fc00, GROUP_LDSTEXCL},
	{INST_LDXRB, "ldxrb", 0x085f7c00, 0xfffffc00, GROUP_LDSTEXCL},
	{INST_LDAXRB, "ldaxrb", 0x085ffc00, 0xfffffc00, GROUP_LDSTEXCL},
	{INST_LDXRH, "ldxrh", 0x485f7c00, 0xfffffc00, GROUP_LDSTEXCL},
	{INST_LDAXRH, "ldaxrh", 0x485ffc00, 0xfffffc00, GROUP_LDSTEXCL},
	{INST_LDXR, "ldxr", 0x885f7c00, 0xbffffc00, GROUP_LDSTEXCL},
	{INST_LDAXR, "ldaxr", 0x885ffc00, 0xbffffc00, GROUP_LDSTEXCL},
	{INST_STLRB, "stlrb", 0x089ffc00, 0xfffffc00, GROUP_LDSTEXCL},
	{INST_STLRH, "stlrh", 0x489ffc00, 0xfffffc00, GROUP_LDSTEXCL},
	{INST_STLR, "stlr", 0x889ffc00, 0xbffffc00, GROUP_LDSTEXCL},
	{INST_LDARB, "ldarb", 0x08dffc00, 0xfffffc00, GROUP_LDSTEXCL},
	{INST_LDARH, "ldarh", 0x48dffc00, 0xfffffc00, GROUP_LDSTEXCL},
	{INST_LDAR, "ldar", 0x88dffc00, 0xbffffc00, GROUP_LDSTEXCL},
	{INST_STXP, "stxp", 0x88200000, 0xbfe08000, GROUP_LDSTEXCL},
	{INST_STLXP, "stlxp", 0x88208000, 0xbfe08000, GROUP_LDSTEXCL},
	{INST_LDXP, "ldxp", 0x887f0000, 0xbfff8000, GROUP_LDSTEXCL},
	{INST_LDAXP, "ldaxp", 0x887f8000, 0xbfff8000, GROUP_LDSTEXCL},

	// Load/store pair
	{INST_STP_POST, "stp", 0x28800000, 0x7fc00000, GROUP_LDSTPAIR_POST},
	{INST_STP_PRE, "stp", 0x29800000, 0x7fc00000, GROUP_LDSTPAIR_PRE},
	{INST_STP_OFF, "stp", 0x29000000, 0x7fc00000, GROUP_LDSTPAIR_OFF},
	{INST_LDP_POST, "ldp", 0x28c00000, 0x7fc00000, GROUP_LDSTPAIR_POST},
	{INST_LDP_PRE, "ldp", 0x29c00000, 0x7fc00000, GROUP_LDSTPAIR_PRE},
	{INST_LDP_OFF, "ldp", 0x29400000, 0x7fc00000, GROUP_LDSTPAIR_OFF},
	{INST_LDPSW_POST, "ldpsw", 0x68c00000, 0xffc00000, GROUP_LDSTPAIR_POST},
	{INST_LDPSW_PRE, "ldpsw", 0x69c00000, 0xffc00000, GROUP_LDSTPAIR_PRE},
	{INST_LDPSW_OFF, "ldpsw", 0x69400000, 0xffc00000, GROUP_LDSTPAIR_OFF},
	{INST_STNP, "stnp", 0x28000000, 0x7fc00000, GROUP_LDSTNAPAIR},
	{INST_LDNP, "ldnp", 0x28400000, 0x7fc00000, GROUP_LDSTNAPAIR},

	// Load/store register
	{INST_STRB_POST, "strb", 0x38000400, 0xffe00c00, GROUP_LDST_POST},
	{INST_STRB_PRE, "strb", 0x38000c00, 0xffe00c00, GROUP_LDST_PRE},
	{INST_STRB_OFF, "strb", 0x39000000, 0xffc00000, GROUP_LDST_POS},
	{INST_STRB_REG, "strb", 0x38200800, 0xffe00c00, GROUP_LDST_REGOFF},
	{INST_LDRB_POST, "ldrb", 0x38400400, 0xffe00c00, GROUP_LDST_POST},
	{INST_LDRB_PRE, "ldrb", 0x38400c00, 0xffe00c00, GROUP_LDST_PRE},
	{INST_LDRB_OFF, "ldrb", 0x39400000, 0xffc00000, GROUP_LDST_POS},
	{INST_LDRB_REG, "ldrb", 0x38600800, 0xffe00c00, GROUP_LDST_REGOFF},
	{INST_LDRSB_POST, "ldrsb", 0x38800400, 0xffa00c00, GROUP_LDST_POST},
	{INST_LDRSB_PRE, "ldrsb", 0x38800c00, 0xffa00c00, GROUP_LDST_PRE},
	{INST_LDRSB_OFF, "ldrsb", 0x39800000, 0xff800000, GROUP_LDST_POS},
	{INST_LDRSB_REG, "ldrsb", 0x38a00800, 0xffa00c00, GROUP_LDST_REGOFF},
	{INST_STRH_POST, "strh", 0x78000400, 0xffe00c00, GROUP_LDST_POST},
	{INST_STRH_PRE, "strh", 0x78000c00, 0xffe00c00, GROUP_LDST_PRE},
	{INST_STRH_OFF, "strh", 0x79000000, 0xffc00000, GROUP_LDST_POS},
	{INST_STRH_REG, "strh", 0x78200800, 0xffe00c00, GROUP_LDST_REGOFF},
	{INST_LDRH_POST, "ldrh", 0x78400400, 0xffe00c00, GROUP_LDST_POST},
	{INST_LDRH_PRE, "ldrh", 0x78400c00, 0xffe00c00, GROUP_LDST_PRE},
	{INST_LDRH_OFF, "ldrh", 0x79400000, 0xffc00000, GROUP_LDST_POS},
	{INST_LDRH_REG, "ldrh", 0x78600800, 0xffe00c00, GROUP_LDST_REGOFF},
	{INST_LDRSH_POST, "ldrsh", 0x78800400, 0xffa00c00, GROUP_LDST_POST},
	{INST_LDRSH_PRE, "ldrsh", 0x78800c00, 0xffa00c00, GROUP_LDST_PRE},
	{INST_LDRSH_OFF, "ldrsh", 0x79800000, 0xff800000, GROUP_LDST_POS},
	{INST_LDRSH_REG, "ldrsh", 0x78a00800, 0xffa00c00, GROUP_LDST_REGOFF},
	{INST_STR_POST, "str", 0xb8000400, 0xbfe00c00, GROUP_LDST_POST},
	{INST_STR_PRE, "str", 0xb8000c00, 0xbfe00c00, GROUP_LDST_PRE},
	{INST_STR_OFF, "str", 0xb9000000, 0xbfc00000, GROUP_LDST_POS},
	{INST_STR_REG, "str", 0xb8200800, 0xbfe00c00, GROUP_LDST_REGOFF},
	{INST_LDR_POST, "ldr", 0xb8400400, 0xbfe00c00, GROUP_LDST_POST},
	{INST_LDR_PRE, "ldr", 0xb8400c00, 0xbfe00c00, GROUP_LDST_PRE},
	{INST_LDR_OFF, "ldr", 0xb9400000, 0xbfc00000, GROUP_LDST_POS},
	{INST_LDR_REG, "ldr", 0xb8600800, 0xbfe00c00, GROUP_LDST_REGOFF},
	{INST_LDRSW_POST, "ldrsw", 0xb8800400, 0xffe00c00, GROUP_LDST_POST},
	{INST_LDRSW_PRE, "ldrsw", 0xb8800c00, 0xffe00c00, GROUP_LDST_PRE},
	{INST_LDRSW_OFF, "ldrsw", 0xb9800000, 0xffc00000, GROUP_LDST_POS},
	{INST_LDRSW_REG, "ldrsw", 0xb8a00800, 0xffe00c00, GROUP_LDST_REGOFF},

	// Load/store register, unscaled
	{INST_STURB, "sturb", 0x38000000, 0xffe00c00, GROUP_LDST_UNSCALED},
	{INST_LDURB, "ldurb", 0x38400000, 0xffe00c00, GROUP_LDST_UNSCALED},
	{INST_LDURSB, "ldursb", 0x38800000, 0xffa00c00, GROUP_LDST_UNSCALED},
	{INST_STURH, "sturh", 0x78000000, 0xffe00c00, GROUP_LDST_UNSCALED},
	{INST_LDURH, "ldurh", 0x78400000, 0xffe00c00, GROUP_LDST_UNSCALED},
	{INST_LDURSH, "ldursh", 0x78800000, 0xffa00c00, GROUP_LDST_UNSCALED},
	{INST_STUR, "stur", 0xb8000000, 0xbfe00c00, GROUP_LDST_UNSCALED},
	{INST_LDUR, "ldur", 0xb8400000, 0xbfe00c00, GROUP_LDST_UNSCALED},
	{INST_LDURSW, "ldursw", 0xb8800000, 0xffe00c00, GROUP_LDST_UNSCALED},

	// Load/store register, unprivileged
	{INST_STTRB, "sttrb", 0x38000800, 0xffe00c00, GROUP_LDST_UNPRIV},
	{INST_LDTRB, "ldtrb", 0x38400800, 0xffe00c00, GROUP_LDST_UNPRIV},
	{INST_LDTRSB, "ldtrsb", 0x38800800, 0xffa00c00, GROUP_LDST_UNPRIV},
	{INST_STTRH, "sttrh", 0x78000800, 0xffe00c00, GROUP_LDST_UNPRIV},
	{INST_LDTRH, "ldtrh", 0x78400800, 0xffe00c00, GROUP_LDST_UNPRIV},
	{INST_LDTRSH, "ldtrsh", 0x78800800, 0xffa00c00, GROUP_LDST_UNPRIV},
	{INST_STTR, "sttr", 0xb8000800, 0xbfe00c00, GROUP_LDST_UNPRIV},
	{INST_LDTR, "ldtr", 0xb8400800, 0xbfe00c00, GROUP_LDST_UNPRIV},
	{INST_LDTRSW, "ldtrsw", 0xb8800800, 0xffe00c00, GROUP_LDST_UNPRIV},

	// Prefetch
	{INST_PRFM_OFF, "prfm", 0xf9800000, 0xffc00000, GROUP_LDST_POS},
	{INST_PRFM_REG, "prfm", 0xf8a00800, 0xffe00c00, GROUP_LDST_REGOFF},
	{INST_PRFUM, "prfum", 0xf8800000, 0xffe00c00, GROUP_LDST_UNSCALED},

	// Load literal
	{INST_LDR_LIT, "ldr", 0x18000000, 0xbf000000, GROUP_LOADLIT},
	{INST_LDRSW_LIT, "ldrsw", 0x98000000, 0xff000000, GROUP_LOADLIT},
	{INST_PRFM_LIT, "prfm", 0xd8000000, 0xff000000, GROUP_LOADLIT},

	// Move wide
	{INST_MOVN, "movn", 0x12800000, 0x7f800000, GROUP_MOVEWIDE},
	{INST_MOVZ, "movz", 0x52800000, 0x7f800000, GROUP_MOVEWIDE},
	{INST_MOVK, "movk", 0x72800000, 0x7f800000, GROUP_MOVEWIDE},
	{INST_MOV_WIDE, "mov", 0x52800000, 0x7f800000, GROUP_MOVEWIDE},
	{INST_MOV_INV, "mov", 0x12800000, 0x7f800000, GROUP_MOVEWIDE},
}

var instructionNames = [...]string{
	INST_NONE:        "none",
	INST_ADC:         "adc",
	INST_ADCS:        "adcs",
	INST_SBC:         "sbc",
	INST_SBCS:        "sbcs",
	INST_NGC:         "ngc",
	INST_NGCS:        "ngcs",
	INST_ADD_IMM:     "add_imm",
	INST_ADDS_IMM:    "adds_imm",
	INST_SUB_IMM:     "sub_imm",
	INST_SUBS_IMM:    "subs_imm",
	INST_CMP_IMM:     "cmp_imm",
	INST_CMN_IMM:     "cmn_imm",
	INST_ADD_SHIFT:   "add_shift",
	INST_ADDS_SHIFT:  "adds_shift",
	INST_SUB_SHIFT:   "sub_shift",
	INST_SUBS_SHIFT:  "subs_shift",
	INST_CMP_SHIFT:   "cmp_shift",
	INST_CMN_SHIFT:   "cmn_shift",
	INST_NEG:         "neg",
	INST_NEGS:        "negs",
	INST_ADD_EXT:     "add_ext",
	INST_ADDS_EXT:    "adds_ext",
	INST_SUB_EXT:     "sub_ext",
	INST_SUBS_EXT:    "subs_ext",
	INST_CMP_EXT:     "cmp_ext",
	INST_CMN_EXT:     "cmn_ext",
	INST_ADR:         "adr",
	INST_ADRP:        "adrp",
	INST_AND_IMM:     "and_imm",
	INST_ORR_IMM:     "orr_imm",
	INST_EOR_IMM:     "eor_imm",
	INST_ANDS_IMM:    "ands_imm",
	INST_BIC_IMM:     "bic_imm",
	INST_MOV_BITMASK: "mov_bitmask",
	INST_TST_IMM:     "tst_imm",
	INST_AND_SHIFT:   "and_shift",
	INST_BIC_SHIFT:   "bic_shift",
	INST_ORR_SHIFT:   "orr_shift",
	INST_ORN_SHIFT:   "orn_shift",
	INST_EOR_SHIFT:   "eor_shift",
	INST_EON_SHIFT:   "eon_shift",
	INST_ANDS_SHIFT:  "ands_shift",
	INST_BICS_SHIFT:  "bics_shift",
	INST_MOV_REG:     "mov_reg",
	INST_MVN:         "mvn",
	INST_TST_SHIFT:   "tst_shift",
	INST_MOV_SP:      "mov_sp",
	INST_SBFM:        "sbfm",
	INST_BFM:         "bfm",
	INST_UBFM:        "ubfm",
	INST_ASR_IMM:     "asr_imm",
	INST_SBFIZ:       "sbfiz",
	INST_SBFX:        "sbfx",
	INST_BFI:         "bfi",
	INST_BFXIL:       "bfxil",
	INST_LSL_IMM:     "lsl_imm",
	INST_LSR_IMM:     "lsr_imm",
	INST_UBFIZ:       "ubfiz",
	INST_UBFX:        "ubfx",
	INST_SXTB:        "sxtb",
	INST_SXTH:        "sxth",
	INST_SXTW:        "sxtw",
	INST_UXTB:        "uxtb",
	INST_UXTH:        "uxth",
	INST_UXTW:        "uxtw",
	INST_EXTR:        "extr",
	INST_ROR_IMM:     "ror_imm",
	INST_RBIT:        "rbit",
	INST_REV16:       "rev16",
	INST_REV:         "rev",
	INST_REV_X:       "rev_x",
	INST_REV32:       "rev32",
	INST_CLZ:         "clz",
	INST_CLS:         "cls",
	INST_UDIV:        "udiv",
	INST_SDIV:        "sdiv",
	INST_LSLV:        "lslv",
	INST_LSRV:        "lsrv",
	INST_ASRV:        "asrv",
	INST_RORV:        "rorv",
	INST_LSL_REG:     "lsl_reg",
	INST_LSR_REG:     "lsr_reg",
	INST_ASR_REG:     "asr_reg",
	INST_ROR_REG:     "ror_reg",
	INST_MADD:        "madd",
	INST_MSUB:        "msub",
	INST_MUL:         "mul",
	INST_MNEG:        "mneg",
	INST_SMADDL:      "smaddl",
	INST_SMSUBL:      "smsubl",
	INST_SMULL:       "smull",
	INST_SMNEGL:      "smnegl",
	INST_UMADDL:      "umaddl",
	INST_UMSUBL:      "umsubl",
	INST_UMULL:       "umull",
	INST_UMNEGL:      "umnegl",
	INST_SMULH:       "smulh",
	INST_UMULH:       "umulh",
	INST_B_COND:      "b_cond",
	INST_BEQ:         "beq",
	INST_BNE:         "bne",
	INST_BCS:         "bcs",
	INST_BHS:         "bhs",
	INST_BCC:         "bcc",
	INST_BLO:         "blo",
	INST_BMI:         "bmi",
	INST_BPL:         "bpl",
	INST_BVS:         "bvs",
	INST_BVC:         "bvc",
	INST_BHI:         "bhi",
	INST_BLS:         "bls",
	INST_BGE:         "bge",
	INST_BLT:         "blt",
	INST_BGT:         "bgt",
	INST_BLE:         "ble",
	INST_B:           "b",
	INST_BL:          "bl",
	INST_BR:          "br",
	INST_BLR:         "blr",
	INST_RET:         "ret",
	INST_ERET:        "eret",
	INST_DRPS:        "drps",
	INST_CBZ:         "cbz",
	INST_CBNZ:        "cbnz",
	INST_TBZ:         "tbz",
	INST_TBNZ:        "tbnz",
	INST_CCMN_IMM:    "ccmn_imm",
	INST_CCMP_IMM:    "ccmp_imm",
	INST_CCMN_REG:    "ccmn_reg",
	INST_CCMP_REG:    "ccmp_reg",
	INST_CSEL:        "csel",
	INST_CSINC:       "csinc",
	INST_CSINV:       "csinv",
	INST_CSNEG:       "csneg",
	INST_CINC:        "cinc",
	INST_CINV:        "cinv",
	INST_CNEG:        "cneg",
	INST_CSET:        "cset",
	INST_CSETM:       "csetm",
	INST_SVC:         "svc",
	INST_HVC:         "hvc",
	INST_SMC:         "smc",
	INST_BRK:         "brk",
	INST_HLT:         "hlt",
	INST_DCPS1:       "dcps1",
	INST_DCPS2:       "dcps2",
	INST_DCPS3:       "dcps3",
	INST_NOP:         "nop",
	INST_YIELD:       "yield",
	INST_WFE:         "wfe",
	INST_WFI:         "wfi",
	INST_SEV:         "sev",
	INST_SEVL:        "sevl",
	INST_HINT:        "hint",
	INST_CLREX:       "clrex",
	INST_DSB:         "dsb",
	INST_DMB:         "dmb",
	INST_ISB:         "isb",
	INST_SYS:         "sys",
	INST_SYSL:        "sysl",
	INST_AT:          "at",
	INST_DC:          "dc",
	INST_IC:          "ic",
	INST_TLBI:        "tlbi",
	INST_MSR_IMM:     "msr_imm",
	INST_MSR_REG:     "msr_reg",
	INST_MRS:         "mrs",
	INST_STXRB:       "stxrb",
	INST_STLXRB:      "stlxrb",
	INST_STXRH:       "stxrh",
	INST_STLXRH:      "stlxrh",
	INST_STXR:        "stxr",
	INST_STLXR:       "stlxr",
	INST_LDXRB:       "ldxrb",
	INST_LDAXRB:      "ldaxrb",
	INST_LDXRH:       "ldxrh",
	INST_LDAXRH:      "ldaxrh",
	INST_LDXR:        "ldxr",
	INST_LDAXR:       "ldaxr",
	INST_STLRB:       "stlrb",
	INST_STLRH:       "stlrh",
	INST_STLR:        "stlr",
	INST_LDARB:       "ldarb",
	INST_LDARH:       "ldarh",
	INST_LDAR:        "ldar",
	INST_STXP:        "stxp",
	INST_STLXP:       "stlxp",
	INST_LDXP:        "ldxp",
	INST_LDAXP:       "ldaxp",
	INST_STP_POST:    "stp_post",
	INST_STP_PRE:     "stp_pre",
	INST_STP_OFF:     "stp_off",
	INST_LDP_POST:    "ldp_post",
	INST_LDP_PRE:     "ldp_pre",
	INST_LDP_OFF:     "ldp_off",
	INST_LDPSW_POST:  "ldpsw_post",
	INST_LDPSW_PRE:   "ldpsw_pre",
	INST_LDPSW_OFF:   "ldpsw_off",
	INST_STNP:        "stnp",
	INST_LDNP:        "ldnp",
	INST_STRB_POST:   "strb_post",
	INST_STRB_PRE:    "strb_pre",
	INST_STRB_OFF:    "strb_off",
	INST_STRB_REG:    "strb_reg",
	INST_LDRB_POST:   "ldrb_post",
	INST_LDRB_PRE:    "ldrb_pre",
	INST_LDRB_OFF:    "ldrb_off",
	INST_LDRB_REG:    "ldrb_reg",
	INST_LDRSB_POST:  "ldrsb_post",
	INST_LDRSB_PRE:   "ldrsb_pre",
	INST_LDRSB_OFF:   "ldrsb_off",
	INST_LDRSB_REG:   "ldrsb_reg",
	INST_STRH_POST:   "strh_post",
	INST_STRH_PRE:    "strh_pre",
	INST_STRH_OFF:    "strh_off",
	INST_STRH_REG:    "strh_reg",
	INST_LDRH_POST:   "ldrh_post",
	INST_LDRH_PRE:    "ldrh_pre",
	INST_LDRH_OFF:    "ldrh_off",
	INST_LDRH_REG:    "ldrh_reg",
	INST_LDRSH_POST:  "ldrsh_post",
	INST_LDRSH_PRE:   "ldrsh_pre",
	INST_LDRSH_OFF:   "ldrsh_off",
	INST_LDRSH_REG:   "ldrsh_reg",
	INST_STR_POST:    "str_post",
	INST_STR_PRE:     "str_pre",
	INST_STR_OFF:     "str_off",
	INST_STR_REG:     "str_reg",
	INST_LDR_POST:    "ldr_post",
	INST_LDR_PRE:     "ldr_pre",
	INST_LDR_OFF:     "ldr_off",
	INST_LDR_REG:     "ldr_reg",
	INST_LDRSW_POST:  "ldrsw_post",
	INST_LDRSW_PRE:   "ldrsw_pre",
	INST_LDRSW_OFF:   "ldrsw_off",
	INST_LDRSW_REG:   "ldrsw_reg",
	INST_STURB:       "sturb",
	INST_LDURB:       "ldurb",
	INST_LDURSB:      "ldursb",
	INST_STURH:       "sturh",
	INST_LDURH:       "ldurh",
	INST_LDURSH:      "ldursh",
	INST_STUR:        "stur",
	INST_LDUR:        "ldur",
	INST_LDURSW:      "ldursw",
	INST_STTRB:       "sttrb",
	INST_LDTRB:       "ldtrb",
	INST_LDTRSB:      "ldtrsb",
	INST_STTRH:       "sttrh",
	INST_LDTRH:       "ldtrh",
	INST_LDTRSH:      "ldtrsh",
	INST_STTR:        "sttr",
	INST_LDTR:        "ldtr",
	INST_LDTRSW:      "ldtrsw",
	INST_PRFM_OFF:    "prfm_off",
	INST_PRFM_REG:    "prfm_reg",
	INST_PRFUM:       "prfum",
	INST_LDR_LIT:     "ldr_lit",
	INST_LDRSW_LIT:   "ldrsw_lit",
	INST_PRFM_LIT:    "prfm_lit",
	INST_MOVN:        "movn",
	INST_MOVZ:        "movz",
	INST_MOVK:        "movk",
	INST_MOV_WIDE:    "mov_wide",
	INST_MOV_INV:     "mov_inv",
}

var mnemonicIndex map[string][]Instruction

func init() {
	mnemonicIndex = make(map[string][]Instruction, len(descriptors))
	for n, desc := range descriptors {
		if desc.Instruction != Instruction(n+1) {
			panic(fmt.Sprintf("a64: descriptor %v out of order", desc.Instruction))
		}
		mnemonicIndex[desc.Mnemonic] = append(mnemonicIndex[desc.Mnemonic], desc.Instruction)
	}
}

func (inst Instruction) String() string {
	if inst < 0 || int(inst) >= len(instructionNames) {
		return fmt.Sprintf("Instruction(%d)", int(inst))
	}
	return instructionNames[inst]
}

// Find returns the descriptor of an instruction identity.
func Find(inst Instruction) (desc Descriptor, err error) {
	if inst <= INST_NONE || int(inst) > len(descriptors) {
		err = ErrUnknownInstruction
		return
	}

	desc = descriptors[inst-1]
	return
}

// Lookup returns every descriptor spelled as mnemonic, in table order.
func Lookup(mnemonic string) (descs []Descriptor) {
	for _, inst := range mnemonicIndex[strings.ToLower(mnemonic)] {
		descs = append(descs, descriptors[inst-1])
	}
	return
}

// Descriptors returns a copy of the whole table.
func Descriptors() []Descriptor {
	return slices.Clone(descriptors[:])
}

// Verify checks that the opcode has no bits outside of the mask.
func (desc Descriptor) Verify() error {
	if desc.Opcode&^desc.Mask != 0 {
		return ErrOpcodeMask
	}
	return nil
}

// Match reports if the fixed bits of word are those of the descriptor.
func (desc Descriptor) Match(word uint32) bool {
	return word&desc.Mask == desc.Opcode
}

func (desc Descriptor) String() string {
	return fmt.Sprintf("%v (%#08x/%#08x)", desc.Instruction, desc.Opcode, desc.Mask)
}
