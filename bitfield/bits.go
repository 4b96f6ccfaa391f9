// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package bitfield implements the connectivity pruning pass: for every entry
of a population table it classifies the synaptic row of each source neuron
as empty or non-empty and records the result as a packed bit field, one bit
per neuron. A set bit means the row has targets and must be fetched; a
clear bit means the row can be skipped.

The package also holds the packed bit field type itself, the key to
neuron-count map the pass is driven by, the output region codec, and a
Filter that answers row-fetch decisions from a decoded output region.
*/
package bitfield

import "math/bits"

// Bits is a packed bit field. Bit j is bit j%32 of word j/32.
type Bits []uint32

// Words returns the number of words needed to hold n bits
func Words(n int) int {
	return (n + 31) >> 5
}

// New returns a cleared bit field that holds n bits
func New(n int) Bits {
	return make(Bits, Words(n))
}

// Set sets bit j
func (bf Bits) Set(j int) {
	bf[j>>5] |= 1 << (j & 31)
}

// Clear clears bit j
func (bf Bits) Clear(j int) {
	bf[j>>5] &^= 1 << (j & 31)
}

// Test returns true if bit j is set
func (bf Bits) Test(j int) bool {
	return bf[j>>5]&(1<<(j&31)) != 0
}

// Fill sets every bit, including the unused tail of the last word
func (bf Bits) Fill() {
	for i := range bf {
		bf[i] = 0xffffffff
	}
}

// Reset clears every bit
func (bf Bits) Reset() {
	for i := range bf {
		bf[i] = 0
	}
}

// Count returns the number of set bits
func (bf Bits) Count() int {
	n := 0
	for _, w := range bf {
		n += bits.OnesCount32(w)
	}
	return n
}
