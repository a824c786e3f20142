// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package a64

import (
	"encoding/binary"
	"slices"
)

// Buffer is the code sink the assembler writes into. Offsets are in
// bytes, and every word is four bytes.
type Buffer interface {
	Append(word uint32) (offset int)
	Set(offset int, word uint32)
	Len() int
}

// CodeBuffer is an in-memory Buffer.
type CodeBuffer struct {
	words []uint32
}

var _ Buffer = (*CodeBuffer)(nil)

// Append adds a word at the end and returns its byte offset.
func (cb *CodeBuffer) Append(word uint32) (offset int) {
	offset = len(cb.words) * 4
	cb.words = append(cb.words, word)
	return
}

// Set overwrites the word at a byte offset.
func (cb *CodeBuffer) Set(offset int, word uint32) {
	cb.words[offset/4] = word
}

// Len is the buffer size in bytes.
func (cb *CodeBuffer) Len() int {
	return len(cb.words) * 4
}

// Word returns the word at a byte offset.
func (cb *CodeBuffer) Word(offset int) uint32 {
	return cb.words[offset/4]
}

// Words returns a copy of the buffer contents.
func (cb *CodeBuffer) Words() []uint32 {
	return slices.Clone(cb.words)
}

// Bytes returns the buffer contents in little-endian order.
func (cb *CodeBuffer) Bytes() (data []byte) {
	data = make([]byte, 0, len(cb.words)*4)
	for _, word := range cb.words {
		data = binary.LittleEndian.AppendUint32(data, word)
	}
	return
}
