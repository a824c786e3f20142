// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"encoding/binary"
	"iter"

	"github.com/ezrec/a64asm/internal"
)

// Statement is one source line that produced code.
type Statement struct {
	LineNo      int         // Source line number.
	Offset      int         // Byte offset of the first word.
	Words       []string    // Source words, mnemonic first.
	Instruction Instruction // INST_NONE for data directives.
	Codes       []uint32    // Final, patched, words.
}

// Program is the output of the text assembler.
type Program struct {
	Origin     uint64
	Statements []Statement
	Labels     map[string]int // Label name to byte offset.
}

// Debug locates the statement that produced the word at a byte offset.
type Debug struct {
	*Statement
	Index int // Word index inside the statement.
}

// Debug returns the statement that produced the word at offset, or a
// Debug with a nil Statement if no statement covers it.
func (prog *Program) Debug(offset int) (dbg Debug) {
	for n, st := range prog.Statements {
		if offset >= st.Offset && offset < st.Offset+4*len(st.Codes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     (offset - st.Offset) / 4,
			}
			break
		}
	}

	return
}

// Codes iterates over byte offsets and words, in program order.
func (prog *Program) Codes() iter.Seq2[int, uint32] {
	seqs := make([]iter.Seq2[int, uint32], 0, len(prog.Statements))
	for _, st := range prog.Statements {
		seqs = append(seqs, internal.IterWords(st.Offset, st.Codes))
	}
	return internal.IterSeq2Concat(seqs...)
}

// Words returns every word of the program.
func (prog *Program) Words() (words []uint32) {
	for _, code := range prog.Codes() {
		words = append(words, code)
	}
	return
}

// Binary returns the program image in little-endian order.
func (prog *Program) Binary() (data []byte) {
	for _, code := range prog.Codes() {
		data = binary.LittleEndian.AppendUint32(data, code)
	}
	return
}
