// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"log"
)

// Assembler emits encoded instructions into a Buffer and resolves label
// references when finalized.
//
// An Assembler is not safe for concurrent use; independent Assemblers
// may run in parallel since the descriptor table is read-only.
type Assembler struct {
	Verbose  bool   // If set, logs every emitted word.
	Origin   uint64 // Absolute address of buffer offset 0.
	Buffer   Buffer
	Resolver Resolver
}

// NewAssembler returns an Assembler writing into a fresh CodeBuffer.
func NewAssembler() *Assembler {
	return &Assembler{Buffer: &CodeBuffer{}}
}

// Offset is the byte offset of the next emitted word.
func (asm *Assembler) Offset() int {
	return asm.Buffer.Len()
}

// Emit encodes an instruction by identity at the current offset.
func (asm *Assembler) Emit(inst Instruction, ops ...Operand) (offset int, err error) {
	desc, err := Find(inst)
	if err != nil {
		return
	}

	return asm.EmitDescriptor(desc, ops...)
}

// EmitDescriptor encodes an instruction at the current offset. Nothing is
// written when encoding fails.
func (asm *Assembler) EmitDescriptor(desc Descriptor, ops ...Operand) (offset int, err error) {
	site := Site{
		Offset:   asm.Offset(),
		Origin:   asm.Origin,
		Resolver: &asm.Resolver,
	}

	enc, err := Encode(desc, site, ops...)
	if err != nil {
		return
	}

	offset = asm.Buffer.Append(enc.Word)
	if enc.Relocation != nil {
		err = asm.Resolver.Add(*enc.Relocation)
		if err != nil {
			return
		}
	}

	if asm.Verbose {
		log.Printf("%06x: %08x %v %v", uint64(offset)+asm.Origin, enc.Word, desc.Instruction, ops)
	}

	return
}

// Word emits a raw data word.
func (asm *Assembler) Word(word uint32) (offset int) {
	offset = asm.Buffer.Append(word)
	if asm.Verbose {
		log.Printf("%06x: %08x .word", uint64(offset)+asm.Origin, word)
	}
	return
}

// NewLabel allocates an unbound label.
func (asm *Assembler) NewLabel(name string) Label {
	return asm.Resolver.NewLabel(name)
}

// Bind binds a label at the current offset.
func (asm *Assembler) Bind(label Label) error {
	return asm.BindAt(label, asm.Offset())
}

// BindAt binds a label at a byte offset.
func (asm *Assembler) BindAt(label Label, offset int) (err error) {
	err = asm.Resolver.Bind(label, offset)
	if err == nil && asm.Verbose {
		log.Printf("%06x: %v:", uint64(offset)+asm.Origin, asm.Resolver.Name(label))
	}
	return
}

// Finalize patches all pending label references into the buffer.
func (asm *Assembler) Finalize() error {
	return asm.Resolver.Finalize(asm.Buffer)
}
