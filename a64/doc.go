// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package a64 implements a runtime assembler for the A64 instruction set.
//
// Instructions are described by a read-only table of descriptors, each
// naming a fixed opcode, the mask of its fixed bits and an encoding group.
// Encode fills the variable fields of a descriptor's opcode from typed
// operands: registers, immediates, conditions, shifts, extends, memory
// references and labels.
//
// References to labels not yet bound are recorded as relocations by a
// Resolver, and patched into the code Buffer when the Assembler is
// finalized.
//
// The Parser is a single pass macro assembler for A64 text, supporting
// labels, equates, macros, and compile-time $(...) expression evaluation.
package a64
