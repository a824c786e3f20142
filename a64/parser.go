// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Parser is a single pass macro assembler for A64 assembly text.
type Parser struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Origin  uint64 // Absolute address of the first word.

	predefine map[string]string
	Label     map[string]Label    // Map of label names to labels.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	asm        *Assembler
	statements []Statement
	expansions int
}

// Predefine defines a new equate or redefines an existing equate.
func (p *Parser) Predefine(equ string, value string) {
	if p.predefine == nil {
		p.predefine = map[string]string{equ: value}
	} else {
		p.predefine[equ] = value
	}
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabelDef   = regexp.MustCompile(`^\s*([A-Za-z_.][A-Za-z0-9_.]*):`)
	reIdentifier = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)
	reLabelRef   = regexp.MustCompile(`^([A-Za-z_.][A-Za-z0-9_.]*)\s*(?:([+-])\s*(\S+))?$`)
	reControl    = regexp.MustCompile(`^c([0-9]+)$`)
	reSysReg     = regexp.MustCompile(`^s([23])_([0-7])_c([0-9]+)_c([0-9]+)_([0-7])$`)
)

// number returns the value of a numeric word, with an optional '#'.
func (p *Parser) number(word string) (value int64, err error) {
	word = strings.TrimPrefix(strings.TrimSpace(word), "#")
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		var u64 uint64
		u64, err = strconv.ParseUint(word, 0, 64)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		value = int64(u64)
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (p *Parser) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range p.Equate {
		var v64 int64
		v64, err = p.number(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for name, label := range p.Label {
		offset, bound, _ := p.asm.Resolver.Offset(label)
		if bound {
			pred[name] = starlark.MakeUint64(p.Origin + uint64(offset))
		}
	}
	pred["PC"] = starlark.MakeUint64(p.Origin + uint64(p.asm.Offset()))

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// splitWords splits a line into the mnemonic and its comma separated
// operands. Commas inside brackets do not split.
func splitWords(line string) (words []string) {
	line = strings.ReplaceAll(line, "\t", " ")
	head, rest, _ := strings.Cut(line, " ")
	words = append(words, head)

	depth := 0
	start := 0
	for n, ch := range rest {
		switch ch {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				words = append(words, strings.TrimSpace(rest[start:n]))
				start = n + 1
			}
		}
	}
	words = append(words, strings.TrimSpace(rest[start:]))

	return slices.DeleteFunc(words, func(a string) bool { return len(a) == 0 })
}

// substitute replaces equate names in a word.
func (p *Parser) substitute(word string) string {
	if equate, ok := p.Equate[word]; ok {
		return equate
	}
	return reIdentifier.ReplaceAllStringFunc(word, func(name string) string {
		if equate, ok := p.Equate[name]; ok {
			return equate
		}
		return name
	})
}

// label returns the label of a name, allocating it when first seen.
func (p *Parser) label(name string) Label {
	label, ok := p.Label[name]
	if !ok {
		label = p.asm.NewLabel(name)
		p.Label[name] = label
	}
	return label
}

// bindLabel binds a named label at the current offset.
func (p *Parser) bindLabel(name string) (err error) {
	label := p.label(name)
	_, bound, err := p.asm.Resolver.Offset(label)
	if err != nil {
		return
	}
	if bound {
		err = ErrLabelDuplicate
		return
	}

	return p.asm.Bind(label)
}

// stripComment removes a ';' or '//' comment, skipping character
// literals such as ';'.
func stripComment(text string) string {
	for n := 0; n < len(text); n++ {
		switch {
		case text[n] == '\'':
			if loc := reCharacter.FindStringIndex(text[n:]); loc != nil && loc[0] == 0 {
				n += loc[1] - 1
			}
		case text[n] == ';', strings.HasPrefix(text[n:], "//"):
			return text[:n]
		}
	}
	return text
}

// parseLine parses a single line into words, after handling labels,
// equates and macros.
func (p *Parser) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	p.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := p.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	for {
		match := reLabelDef.FindStringSubmatch(line)
		if match == nil {
			break
		}
		err = p.bindLabel(match[1])
		if err != nil {
			return
		}
		line = line[len(match[0]):]
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	words = splitWords(line)

	// .equ CONST, VALUE
	if words[0] == ".equ" {
		if len(words) == 2 {
			words = append(words[:1], strings.Fields(words[1])...)
		}
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := p.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		p.Equate[words[1]] = p.substitute(words[2])
		words = words[:0]
		return
	}

	for n, word := range words {
		words[n] = p.substitute(word)
	}

	// .macro processing
	macro, ok := p.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroArguments
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(p.Equate)
		for n, arg := range macro.Args {
			p.Equate[arg] = args[n]
		}
		defer func() { p.Equate = old_equate }()

		// @ labels are local to one expansion.
		p.expansions++
		local := fmt.Sprintf("%v_%v_", name, p.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = p.parseLine(line, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = p.parseWords(words, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// parseWords assembles the words of one line.
func (p *Parser) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	start := p.asm.Offset()
	inst := INST_NONE

	defer func() {
		count := (p.asm.Offset() - start) / 4
		if err != nil || count == 0 {
			return
		}
		p.statements = append(p.statements, Statement{
			LineNo:      lineno,
			Offset:      start,
			Words:       slices.Clone(words),
			Instruction: inst,
			Codes:       make([]uint32, count),
		})
	}()

	switch words[0] {
	case ".word":
		for _, word := range words[1:] {
			var value int64
			value, err = p.number(word)
			if err != nil {
				return
			}
			if value < -(1<<31) || value > 1<<32-1 {
				err = ErrRange{Value: value, Min: -(1 << 31), Max: 1<<32 - 1}
				return
			}
			p.asm.Word(uint32(value))
		}
	case ".quad":
		for _, word := range words[1:] {
			var value int64
			value, err = p.number(word)
			if err != nil {
				return
			}
			p.asm.Word(uint32(value))
			p.asm.Word(uint32(uint64(value) >> 32))
		}
	case ".align":
		if len(words) != 2 {
			err = ErrDirective
			return
		}
		var value int64
		value, err = p.number(words[1])
		if err != nil {
			return
		}
		if value < 2 || value > 16 {
			err = ErrRange{Value: value, Min: 2, Max: 16}
			return
		}
		nop, _ := Find(INST_NOP)
		for p.asm.Offset()%(1<<value) != 0 {
			p.asm.Word(nop.Opcode)
		}
	default:
		if strings.HasPrefix(words[0], ".") {
			err = ErrDirective
			return
		}
		inst, err = p.instruction(words)
	}

	return
}

var unscaledMnemonics = map[string]string{
	"ldr":   "ldur",
	"ldrb":  "ldurb",
	"ldrh":  "ldurh",
	"ldrsb": "ldursb",
	"ldrsh": "ldursh",
	"ldrsw": "ldursw",
	"str":   "stur",
	"strb":  "sturb",
	"strh":  "sturh",
	"prfm":  "prfum",
}

// instruction encodes the first descriptor of the mnemonic that accepts
// the operands.
func (p *Parser) instruction(words []string) (inst Instruction, err error) {
	mnemonic := strings.ToLower(words[0])
	descs := Lookup(mnemonic)
	if len(descs) == 0 {
		err = ErrMnemonic
		return
	}

	// Displacements the scaled forms cannot encode fall back to ldur and
	// friends.
	if unscaled, ok := unscaledMnemonics[mnemonic]; ok {
		descs = append(descs, Lookup(unscaled)...)
	}

	ops, mode, err := p.operands(mnemonic, words[1:])
	if err != nil {
		return
	}

	var first error
	for _, desc := range descs {
		if desc.Group.Writeback() != mode {
			continue
		}

		_, err = p.asm.EmitDescriptor(desc, ops...)
		if err == nil {
			inst = desc.Instruction
			return
		}

		// Prefer a range or alignment error to an operand mismatch.
		if first == nil || (errors.Is(first, ErrOperandTypeMismatch) && !errors.Is(err, ErrOperandTypeMismatch)) {
			first = err
		}
	}

	err = first
	if err == nil {
		err = ErrAddressing
	}

	return
}

// operands parses the operand words of an instruction.
func (p *Parser) operands(mnemonic string, words []string) (ops []Operand, mode Writeback, err error) {
	for n := 0; n < len(words); n++ {
		word := words[n]
		if !strings.HasPrefix(word, "[") {
			var op Operand
			op, err = p.operand(mnemonic, word)
			if err != nil {
				return
			}
			ops = append(ops, op)
			continue
		}

		pre := strings.HasSuffix(word, "!")
		if pre {
			word = strings.TrimSpace(strings.TrimSuffix(word, "!"))
			mode = WRITEBACK_PRE
		}
		if !strings.HasSuffix(word, "]") {
			err = ErrParseOperand(word)
			return
		}

		var mem Memory
		mem, err = p.memory(word[1 : len(word)-1])
		if err != nil {
			return
		}

		// [xn], #imm is post-indexed.
		if !pre && n == len(words)-2 && mem.Anchor() == ANCHOR_BASE && !mem.HasIndex() && mem.Disp() == 0 {
			disp, nerr := p.number(words[n+1])
			if nerr == nil {
				base := mem.Base()
				mem, err = NewMemory(MemorySpec{Base: &base, Disp: disp})
				if err != nil {
					return
				}
				mode = WRITEBACK_POST
				n++
			}
		}

		ops = append(ops, mem)
	}

	return
}

// memory parses the inside of a [...] memory operand.
func (p *Parser) memory(inner string) (mem Memory, err error) {
	parts := strings.Split(inner, ",")
	for n := range parts {
		parts[n] = strings.TrimSpace(parts[n])
	}

	var spec MemorySpec
	first := parts[0]
	if reg, rerr := RegisterByName(first); rerr == nil {
		spec.Base = &reg
	} else if target, nerr := p.number(first); nerr == nil {
		address := uint64(target)
		spec.Target = &address
	} else if reLabelRef.MatchString(first) && !strings.ContainsAny(first, "+- ") {
		label := p.label(first)
		spec.Label = &label
	} else {
		err = ErrAddressing
		return
	}

	rest := parts[1:]
	if len(rest) > 0 {
		if index, rerr := RegisterByName(rest[0]); rerr == nil {
			spec.Index = index
			rest = rest[1:]
			if len(rest) > 0 {
				fields := strings.Fields(strings.ToLower(rest[0]))
				switch {
				case len(fields) == 0:
					err = ErrAddressing
					return
				case fields[0] == "lsl" && index.Is64():
				case fields[0] == "uxtw" && !index.Is64():
				default:
					err = ErrAddressing
					return
				}
				if len(fields) > 1 {
					var shift int64
					shift, err = p.number(fields[1])
					if err != nil {
						return
					}
					spec.Shift = int(shift)
				}
				rest = rest[1:]
			}
		} else {
			spec.Disp, err = p.number(rest[0])
			if err != nil {
				return
			}
			rest = rest[1:]
		}
	}

	if len(rest) != 0 {
		err = ErrAddressing
		return
	}

	return NewMemory(spec)
}

// operand parses a single non-memory operand.
func (p *Parser) operand(mnemonic string, word string) (op Operand, err error) {
	lower := strings.ToLower(word)

	if reg, rerr := RegisterByName(lower); rerr == nil {
		op = reg
		return
	}

	switch lower[0] {
	case '#', '-', '~', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var value int64
		value, err = p.number(lower)
		op = Immediate(value)
		return
	}

	fields := strings.Fields(lower)
	shift := slices.Index(shiftNames[:], fields[0])
	extend := slices.Index(extendNames[:], fields[0])
	if (shift >= 0 && len(fields) == 2) || (extend >= 0 && len(fields) <= 2) {
		var amount int64
		if len(fields) == 2 {
			amount, err = p.number(fields[1])
			if err != nil {
				return
			}
		}
		if shift >= 0 {
			op = Shift{Type: ShiftType(shift), Amount: int(amount)}
		} else {
			op = Extend{Type: ExtendType(extend), Amount: int(amount)}
		}
		return
	}

	if cond, cerr := ConditionByName(lower); cerr == nil {
		op = cond
		return
	}

	if value, ok := namedImmediate(mnemonic, lower); ok {
		op = Immediate(value)
		return
	}

	match := reLabelRef.FindStringSubmatch(word)
	if match == nil {
		err = ErrParseOperand(word)
		return
	}

	label := p.label(match[1])
	if len(match[2]) == 0 {
		op = label
		return
	}

	disp, err := p.number(match[3])
	if err != nil {
		return
	}
	if match[2] == "-" {
		disp = -disp
	}

	return SIZE_NONE.PtrLabel(label, disp)
}

// Barrier option names of dmb, dsb and isb.
var barrierOptions = map[string]int64{
	"oshld": 1,
	"oshst": 2,
	"osh":   3,
	"nshld": 5,
	"nshst": 6,
	"nsh":   7,
	"ishld": 9,
	"ishst": 10,
	"ish":   11,
	"ld":    13,
	"st":    14,
	"sy":    15,
}

// sysReg packs an op0:op1:CRn:CRm:op2 system register selector.
func sysReg(op0, op1, crn, crm, op2 int64) int64 {
	return (op0&1)<<14 | op1<<11 | crn<<7 | crm<<3 | op2
}

// Named system registers of mrs and msr.
var systemRegisters = map[string]int64{
	"nzcv":        sysReg(3, 3, 4, 2, 0),
	"daif":        sysReg(3, 3, 4, 2, 1),
	"fpcr":        sysReg(3, 3, 4, 4, 0),
	"fpsr":        sysReg(3, 3, 4, 4, 1),
	"ctr_el0":     sysReg(3, 3, 0, 0, 1),
	"dczid_el0":   sysReg(3, 3, 0, 0, 7),
	"tpidr_el0":   sysReg(3, 3, 13, 0, 2),
	"tpidrro_el0": sysReg(3, 3, 13, 0, 3),
	"cntfrq_el0":  sysReg(3, 3, 14, 0, 0),
	"cntvct_el0":  sysReg(3, 3, 14, 0, 2),
	"midr_el1":    sysReg(3, 0, 0, 0, 0),
	"mpidr_el1":   sysReg(3, 0, 0, 0, 5),
}

// Processor state fields of msr (immediate), as op1:op2.
var pstateFields = map[string]int64{
	"uao":     0<<3 | 3,
	"pan":     0<<3 | 4,
	"spsel":   0<<3 | 5,
	"daifset": 3<<3 | 6,
	"daifclr": 3<<3 | 7,
}

// prefetchOps maps prfm operation names, like pldl1keep, to prfop.
var prefetchOps = map[string]int64{}

func init() {
	for kind, name := range []string{"pld", "pli", "pst"} {
		for level := 1; level <= 3; level++ {
			for policy, suffix := range []string{"keep", "strm"} {
				op := fmt.Sprintf("%sl%d%s", name, level, suffix)
				prefetchOps[op] = int64(kind<<3 | (level-1)<<1 | policy)
			}
		}
	}
}

// namedImmediate resolves the symbolic immediates some mnemonics take.
func namedImmediate(mnemonic string, word string) (value int64, ok bool) {
	switch mnemonic {
	case "dmb", "dsb", "isb":
		value, ok = barrierOptions[word]
	case "prfm", "prfum":
		value, ok = prefetchOps[word]
	case "mrs", "msr":
		value, ok = systemRegisters[word]
		if !ok {
			value, ok = pstateFields[word]
		}
		if match := reSysReg.FindStringSubmatch(word); !ok && match != nil {
			var fields [5]int64
			for n := range fields {
				fields[n], _ = strconv.ParseInt(match[n+1], 10, 64)
			}
			if fields[2] < 16 && fields[3] < 16 {
				value, ok = sysReg(fields[0], fields[1], fields[2], fields[3], fields[4]), true
			}
		}
	case "sys", "sysl", "at", "dc", "ic", "tlbi":
		if match := reControl.FindStringSubmatch(word); match != nil {
			value, _ = strconv.ParseInt(match[1], 10, 64)
			ok = value < 16
		}
	}
	return
}

// Parse parses an input stream into a Program.
func (p *Parser) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	p.asm = NewAssembler()
	p.asm.Origin = p.Origin
	p.asm.Verbose = p.Verbose
	p.statements = nil
	p.expansions = 0
	p.Label = make(map[string]Label, 16)
	p.Macro = make(map[string](*Macro))
	p.Equate = maps.Clone(sysEquate)
	for attr, val := range p.predefine {
		p.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if p.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		words := strings.Fields(strings.ReplaceAll(line, ",", " "))

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := p.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			p.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		var parsed []string
		parsed, err = p.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = p.parseWords(parsed, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of label references.
	err = p.asm.Finalize()
	if err != nil {
		return
	}

	prog = &Program{
		Origin:     p.Origin,
		Statements: p.statements,
		Labels:     make(map[string]int, len(p.Label)),
	}

	buf := p.asm.Buffer.(*CodeBuffer)
	for n := range prog.Statements {
		st := &prog.Statements[n]
		for index := range st.Codes {
			st.Codes[index] = buf.Word(st.Offset + 4*index)
		}
	}

	for name, label := range p.Label {
		offset, bound, _ := p.asm.Resolver.Offset(label)
		if bound {
			prog.Labels[name] = offset
		}
	}

	return
}
