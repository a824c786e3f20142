package a64

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, program ...string) (prog *Program) {
	p := &Parser{}
	prog, err := p.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestParserEmpty(t *testing.T) {
	assert := assert.New(t)

	p := &Parser{}
	prog, err := p.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))
	assert.Empty(prog.Words())
	assert.Equal("0", p.Equate["LINENO"])
}

func TestParserInstructions(t *testing.T) {
	table := map[string]uint32{
		"add x0, x1, #16":           0x91004020,
		"ADD X0, X1, #16":           0x91004020,
		"add\tx0,x1,#0x10":          0x91004020,
		"add x0, x1, x2":            0x8b020020,
		"add x0, sp, w1, uxtw #2":   0x8b214be0,
		"sub w0, w1, w2, lsl #3":    0x4b020c20,
		"sub sp, sp, #32":           0xd10083ff,
		"cmp x0, #0":                0xf100001f,
		"cmp x0, x1":                0xeb01001f,
		"cmp w0, #'a'":              0x7101841f,
		"mov x29, sp":               0x910003fd,
		"mov x0, x1":                0xaa0103e0,
		"mov x0, #0x1234":           0xd2824680,
		"mov w0, 'A'":               0x52800820,
		"movk x0, #0xbeef, lsl #16": 0xf2b7dde0,
		"and x0, x1, #0xff":         0x92401c20,
		"ubfm x0, x1, #4, #7":       0xd3441c20,
		"lsl x0, x1, x2":            0x9ac22020,
		"csel x0, x1, x2, ne":       0x9a821020,
		"cset w0, eq":               0x1a9f17e0,
		"tbnz x0, #63, #4":          0xb7f80020,
		"ret":                       0xd65f03c0,
		"svc #0":                    0xd4000001,
		"dmb ish":                   0xd5033bbf,
		"dsb sy":                    0xd5033f9f,
		"isb":                       0xd5033fdf,
		"mrs x0, nzcv":              0xd53b4200,
		"mrs x1, s3_3_c13_c0_2":     0xd53bd041,
		"msr tpidr_el0, x1":         0xd51bd041,
		"msr daifset, #2":           0xd50342df,
		"sys #0, c7, c5, #0":        0xd508751f,
		"prfm pldl1keep, [x0]":      0xf9800000,
		"prfm pstl2strm, [x1, #8]":  0xf9800433,
		"ldr x0, [x1, #8]":          0xf9400420,
		"ldr x0, [x1, #-8]":         0xf85f8020,
		"ldr w0, [x1, #3]":          0xb8403020,
		"ldr x0, [x1], #8":          0xf8408420,
		"ldr x0, [x1, x2, lsl #3]":  0xf8627820,
		"ldr w0, [x1, w2, uxtw #2]": 0xb8625820,
		"str x0, [sp, #-16]!":       0xf81f0fe0,
		"stp x29, x30, [sp, #-16]!": 0xa9bf7bfd,
		"ldp x29, x30, [sp], #16":   0xa8c17bfd,
		"ldxr x0, [x1]":             0xc85f7c20,
		"stxr w2, x0, [x1]":         0xc8027c20,
		"lsl x0, x1, #3":            0xd37df020,
		"asr w0, w1, #2":            0x13027c20,
		"ror x0, x1, #7":            0x93c11c20,
		"ubfx x0, x1, #4, #8":       0xd3442c20,
		"bfi w0, w1, #4, #4":        0x331c0c20,
		"cinc x0, x1, ne":           0x9a810420,
		"bic x0, x1, #0xfff0":       0x9270cc20,
		"bic x0, x1, x2":            0x8a220020,
		"mov x0, #-1":               0x92800000,
		"mov x0, #0x12340000":       0xd2a24680,
		"mov w0, #';'":              0x52800760,
		"cmp w0, #'/' // slash":     0x7100bc1f,
	}

	for line, word := range table {
		t.Run(line, func(t *testing.T) {
			assert := assert.New(t)

			prog := parse(t, line)
			assert.Equal([]uint32{word}, prog.Words())
		})
	}
}

func TestParserLabels(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; function prologue",
		".equ FRAME, 16",
		"start:",
		"	stp x29, x30, [sp, #-FRAME]!",
		"	mov x29, sp",
		"	mov x0, #0x1234",
		"loop:	subs x0, x0, #1",
		"	b.ne loop // back",
		"	cbz x0, done",
		"	nop",
		"done:",
		"	ldp x29, x30, [sp], #FRAME",
		"	ret",
	}

	prog := parse(t, program...)

	assert.Equal([]uint32{
		0xa9bf7bfd,
		0x910003fd,
		0xd2824680,
		0xf1000400,
		0x54ffffe1,
		0xb4000040,
		0xd503201f,
		0xa8c17bfd,
		0xd65f03c0,
	}, prog.Words())

	assert.Equal(map[string]int{"start": 0, "loop": 12, "done": 28}, prog.Labels)

	assert.Equal(9, len(prog.Statements))
	st := prog.Statements[0]
	assert.Equal(4, st.LineNo)
	assert.Equal(0, st.Offset)
	assert.Equal([]string{"stp", "x29", "x30", "[sp, #-16]!"}, st.Words)
	assert.Equal(INST_STP_PRE, st.Instruction)

	st = prog.Statements[4]
	assert.Equal(8, st.LineNo)
	assert.Equal(INST_BNE, st.Instruction)
	assert.Equal([]uint32{0x54ffffe1}, st.Codes)

	st = prog.Statements[7]
	assert.Equal([]string{"ldp", "x29", "x30", "[sp]", "#16"}, st.Words)
	assert.Equal(INST_LDP_POST, st.Instruction)
}

func TestParserData(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ BASE, 0x100",
		".word $(BASE + 4), 'A'",
		".quad 0x1122334455667788",
		".align 5",
		"add x0, x1, #$(BASE >> 4)",
	}

	prog := parse(t, program...)

	assert.Equal([]uint32{
		0x104, 0x41,
		0x55667788, 0x11223344,
		0xd503201f, 0xd503201f, 0xd503201f, 0xd503201f,
		0x91004020,
	}, prog.Words())

	assert.Equal(4, len(prog.Statements))
	assert.Equal(INST_NONE, prog.Statements[0].Instruction)
	assert.Equal(4, len(prog.Statements[2].Codes))
	assert.Equal(32, prog.Statements[3].Offset)
}

func TestParserOrigin(t *testing.T) {
	assert := assert.New(t)

	p := &Parser{Origin: 0x1000}
	p.Predefine("COUNT", "3")

	program := []string{
		"start:",
		"	nop",
		"	.word $(start + 8), $(PC)",
		"	adr x0, start",
		"	add x0, x0, #COUNT",
	}

	prog, err := p.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(uint64(0x1000), prog.Origin)
	assert.Equal([]uint32{0xd503201f, 0x1008, 0x1004, 0x10ffffa0, 0x91000c00}, prog.Words())
}

func TestParserMacro(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".macro inc reg, amount",
		"	add reg, reg, #amount",
		".endm",
		".macro spin reg",
		"@wait:",
		"	cbnz reg, @wait",
		".endm",
		"	inc x3, 4",
		"	inc w1, 1",
		"	spin x0",
		"	spin w1",
	}

	prog := parse(t, program...)

	assert.Equal([]uint32{0x91001063, 0x11000421, 0xb5000000, 0x35000001}, prog.Words())
	assert.Equal(map[string]int{"spin_3_wait": 8, "spin_4_wait": 12}, prog.Labels)
	assert.Equal(2, prog.Statements[0].LineNo)
	assert.Equal(6, prog.Statements[3].LineNo)
}

func TestParserErrors(t *testing.T) {
	table := [...]struct {
		program string
		err     error
		lineno  int
	}{
		{"foo x0", ErrMnemonic, 1},
		{"nop\nadd x0, x1, #4096", ErrImmediateOutOfRange, 2},
		{"ret x1, x2", ErrOperandTypeMismatch, 1},
		{"stp x0, x1, [sp, #-4]!", ErrMisalignedDisplacement, 1},
		{"ldr x0, [x1, x2, lsl #2]", ErrImmediateOutOfRange, 1},
		{"ldr x0, [x1, x2, uxtw #3]", ErrAddressing, 1},
		{"nop\nb nowhere", ErrUnboundLabel, 2},
		{"x:\nx:", ErrLabelDuplicate, 2},
		{".equ A 1\n.equ A 2", ErrEquateDuplicate, 2},
		{".equ A", ErrEquateSyntax, 1},
		{".macro m", ErrMacroLonely, 1},
		{".endm", ErrMacroLonelyEndm, 1},
		{".macro a\n.macro b", ErrMacroNesting, 2},
		{".macro a\n.endm\n.macro a\n.endm", ErrMacroDuplicate, 3},
		{".macro a x\n.endm\na", ErrMacroArguments, 3},
		{".macro a\nfoo\n.endm\na", ErrMnemonic, 4},
		{".byte 1", ErrDirective, 1},
		{".align 1", ErrImmediateOutOfRange, 1},
		{".word 0x100000000", ErrImmediateOutOfRange, 1},
	}

	for _, entry := range table {
		t.Run(entry.program, func(t *testing.T) {
			assert := assert.New(t)

			p := &Parser{}
			_, err := p.Parse(strings.NewReader(entry.program))
			assert.ErrorIs(err, entry.err)

			var syntax ErrSyntax
			assert.True(errors.As(err, &syntax))
			assert.Equal(entry.lineno, syntax.LineNo)
		})
	}
}

func TestParserOperandErrors(t *testing.T) {
	assert := assert.New(t)

	p := &Parser{}

	_, err := p.Parse(strings.NewReader("ldr x0, [x1"))
	var operand ErrParseOperand
	assert.True(errors.As(err, &operand))

	_, err = p.Parse(strings.NewReader("add x0, x1, x2, foo bar"))
	assert.True(errors.As(err, &operand))

	_, err = p.Parse(strings.NewReader(".word 12z"))
	var number ErrParseNumber
	assert.True(errors.As(err, &number))

	_, err = p.Parse(strings.NewReader(`.word $("a")`))
	var expr ErrParseExpression
	assert.True(errors.As(err, &expr))

	var macro ErrMacro
	_, err = p.Parse(strings.NewReader(".macro a\nfoo\n.endm\na"))
	assert.True(errors.As(err, &macro))
	assert.Equal("a", macro.Macro)
}

func TestStripComment(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("ret ", stripComment("ret ; done"))
	assert.Equal("ret ", stripComment("ret // done"))
	assert.Equal("mov w0, #';' ", stripComment("mov w0, #';' ; semicolon"))
	assert.Equal("mov w0, #'/'", stripComment("mov w0, #'/'"))
	assert.Equal("mov w0, #'\\;'", stripComment("mov w0, #'\\;'"))
	assert.Equal("", stripComment("; only a comment"))
}

func TestSplitWords(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"ret"}, splitWords("ret"))
	assert.Equal([]string{"add", "x0", "x1", "#1"}, splitWords("add x0,x1, #1"))
	assert.Equal([]string{"ldr", "x0", "[x1, x2, lsl #3]"}, splitWords("ldr\tx0, [x1, x2, lsl #3]"))
	assert.Equal([]string{"ldp", "x0", "x1", "[sp]", "#16"}, splitWords("ldp x0, x1, [sp], #16"))
}
