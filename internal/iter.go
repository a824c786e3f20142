// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package internal

import (
	"iter"
)

// IterSeq2Concat yields the pairs of each sequence in turn.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// IterWords yields the byte offset and value of 32 bit words laid out
// from base.
func IterWords(base int, words []uint32) iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		for n, word := range words {
			if !yield(base+4*n, word) {
				return
			}
		}
	}
}
