// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"fmt"
)

// Group is an encoding group: the family of instructions sharing one
// operand layout.
type Group int

const (
	GROUP_NONE          = Group(iota) // not a group
	GROUP_ADDSUB_IMM                  // add/sub immediate
	GROUP_ADDSUB_SHIFT                // add/sub shifted register
	GROUP_ADDSUB_EXT                  // add/sub extended register
	GROUP_ADDSUB_CARRY                // add/sub with carry
	GROUP_PCRELADDR                   // adr, adrp
	GROUP_LOG_IMM                     // logical bitmask immediate
	GROUP_LOG_SHIFT                   // logical shifted register
	GROUP_BITFIELD                    // sbfm, bfm, ubfm
	GROUP_EXTRACT                     // extr
	GROUP_DP_1SRC                     // one source data processing
	GROUP_DP_2SRC                     // two source data processing
	GROUP_DP_3SRC                     // multiply-add family
	GROUP_CONDBRANCH                  // b.cond
	GROUP_BRANCH_IMM                  // b, bl
	GROUP_BRANCH_REG                  // br, blr, ret
	GROUP_COMPBRANCH                  // cbz, cbnz
	GROUP_TESTBRANCH                  // tbz, tbnz
	GROUP_CONDCMP_IMM                 // ccmp/ccmn immediate
	GROUP_CONDCMP_REG                 // ccmp/ccmn register
	GROUP_CONDSEL                     // csel family
	GROUP_EXCEPTION                   // svc, brk, ...
	GROUP_SYSTEM                      // hints, barriers, sys, msr, mrs
	GROUP_LDSTEXCL                    // exclusive and ordered access
	GROUP_LDSTPAIR_POST               // pair, post-index
	GROUP_LDSTPAIR_PRE                // pair, pre-index
	GROUP_LDSTPAIR_OFF                // pair, signed offset
	GROUP_LDSTNAPAIR                  // pair, non-temporal
	GROUP_LDST_POST                   // register, post-index
	GROUP_LDST_PRE                    // register, pre-index
	GROUP_LDST_POS                    // register, unsigned scaled offset
	GROUP_LDST_UNSCALED               // register, unscaled offset
	GROUP_LDST_UNPRIV                 // register, unprivileged
	GROUP_LDST_REGOFF                 // register, register offset
	GROUP_LOADLIT                     // load literal
	GROUP_MOVEWIDE                    // movn, movz, movk
	GROUP_COUNT                       // number of groups
)

var groupNames = [GROUP_COUNT]string{
	GROUP_NONE:          "none",
	GROUP_ADDSUB_IMM:    "addsub_imm",
	GROUP_ADDSUB_SHIFT:  "addsub_shift",
	GROUP_ADDSUB_EXT:    "addsub_ext",
	GROUP_ADDSUB_CARRY:  "addsub_carry",
	GROUP_PCRELADDR:     "pcreladdr",
	GROUP_LOG_IMM:       "log_imm",
	GROUP_LOG_SHIFT:     "log_shift",
	GROUP_BITFIELD:      "bitfield",
	GROUP_EXTRACT:       "extract",
	GROUP_DP_1SRC:       "dp_1src",
	GROUP_DP_2SRC:       "dp_2src",
	GROUP_DP_3SRC:       "dp_3src",
	GROUP_CONDBRANCH:    "condbranch",
	GROUP_BRANCH_IMM:    "branch_imm",
	GROUP_BRANCH_REG:    "branch_reg",
	GROUP_COMPBRANCH:    "compbranch",
	GROUP_TESTBRANCH:    "testbranch",
	GROUP_CONDCMP_IMM:   "condcmp_imm",
	GROUP_CONDCMP_REG:   "condcmp_reg",
	GROUP_CONDSEL:       "condsel",
	GROUP_EXCEPTION:     "exception",
	GROUP_SYSTEM:        "system",
	GROUP_LDSTEXCL:      "ldstexcl",
	GROUP_LDSTPAIR_POST: "ldstpair_post",
	GROUP_LDSTPAIR_PRE:  "ldstpair_pre",
	GROUP_LDSTPAIR_OFF:  "ldstpair_off",
	GROUP_LDSTNAPAIR:    "ldstnapair",
	GROUP_LDST_POST:     "ldst_post",
	GROUP_LDST_PRE:      "ldst_pre",
	GROUP_LDST_POS:      "ldst_pos",
	GROUP_LDST_UNSCALED: "ldst_unscaled",
	GROUP_LDST_UNPRIV:   "ldst_unpriv",
	GROUP_LDST_REGOFF:   "ldst_regoff",
	GROUP_LOADLIT:       "loadlit",
	GROUP_MOVEWIDE:      "movewide",
}

func (group Group) String() string {
	if group < 0 || group >= GROUP_COUNT {
		return fmt.Sprintf("Group(%d)", int(group))
	}
	return groupNames[group]
}

// groupEncoder fills the operand fields of enc.word.
type groupEncoder func(enc *encoding) error

// groupEncoders is indexed by Group; every group but GROUP_NONE has one.
var groupEncoders = [GROUP_COUNT]groupEncoder{
	GROUP_ADDSUB_IMM:    encodeAddSubImm,
	GROUP_ADDSUB_SHIFT:  encodeAddSubShift,
	GROUP_ADDSUB_EXT:    encodeAddSubExt,
	GROUP_ADDSUB_CARRY:  encodeAddSubCarry,
	GROUP_PCRELADDR:     encodePcRelAddr,
	GROUP_LOG_IMM:       encodeLogImm,
	GROUP_LOG_SHIFT:     encodeLogShift,
	GROUP_BITFIELD:      encodeBitfield,
	GROUP_EXTRACT:       encodeExtract,
	GROUP_DP_1SRC:       encodeDp1Src,
	GROUP_DP_2SRC:       encodeDp2Src,
	GROUP_DP_3SRC:       encodeDp3Src,
	GROUP_CONDBRANCH:    encodeCondBranch,
	GROUP_BRANCH_IMM:    encodeBranchImm,
	GROUP_BRANCH_REG:    encodeBranchReg,
	GROUP_COMPBRANCH:    encodeCompBranch,
	GROUP_TESTBRANCH:    encodeTestBranch,
	GROUP_CONDCMP_IMM:   encodeCondCmpImm,
	GROUP_CONDCMP_REG:   encodeCondCmpReg,
	GROUP_CONDSEL:       encodeCondSel,
	GROUP_EXCEPTION:     encodeException,
	GROUP_SYSTEM:        encodeSystem,
	GROUP_LDSTEXCL:      encodeLdStExcl,
	GROUP_LDSTPAIR_POST: encodeLdStPair,
	GROUP_LDSTPAIR_PRE:  encodeLdStPair,
	GROUP_LDSTPAIR_OFF:  encodeLdStPair,
	GROUP_LDSTNAPAIR:    encodeLdStPair,
	GROUP_LDST_POST:     encodeLdStImm9,
	GROUP_LDST_PRE:      encodeLdStImm9,
	GROUP_LDST_POS:      encodeLdStPos,
	GROUP_LDST_UNSCALED: encodeLdStImm9,
	GROUP_LDST_UNPRIV:   encodeLdStImm9,
	GROUP_LDST_REGOFF:   encodeLdStRegOff,
	GROUP_LOADLIT:       encodeLoadLit,
	GROUP_MOVEWIDE:      encodeMoveWide,
}

//go:generate go tool stringer -linecomment -type=Writeback

// Writeback is the address update mode of a load/store group.
type Writeback int

const (
	WRITEBACK_NONE = Writeback(iota) // [base, #disp]
	WRITEBACK_PRE                    // [base, #disp]!
	WRITEBACK_POST                   // [base], #disp
)

// Writeback reports the address update mode the group encodes.
func (group Group) Writeback() Writeback {
	switch group {
	case GROUP_LDSTPAIR_PRE, GROUP_LDST_PRE:
		return WRITEBACK_PRE
	case GROUP_LDSTPAIR_POST, GROUP_LDST_POST:
		return WRITEBACK_POST
	}
	return WRITEBACK_NONE
}
