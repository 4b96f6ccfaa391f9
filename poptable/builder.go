// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poptable

import (
	"github.com/emer/spikecore/region"
	"github.com/emer/spikecore/sdram"
	"github.com/emer/spikecore/synrow"
)

// Builder assembles a population table together with the synaptic matrix
// and direct matrix it points into.
type Builder struct {

	// synaptic matrix image
	Matrix *sdram.Builder

	entries []Entry
	addrs   []AddrWord
	direct  []uint32
}

// NewBuilder returns an empty Builder
func NewBuilder() *Builder {
	return &Builder{Matrix: sdram.NewBuilder()}
}

func (bl *Builder) addEntry(key, mask uint32, aw AddrWord) {
	bl.entries = append(bl.entries, Entry{Key: key, Mask: mask, Start: uint16(len(bl.addrs)), Count: 1})
	bl.addrs = append(bl.addrs, aw)
}

// AddDirect adds a population whose neuron i has the single synapse words[i]
func (bl *Builder) AddDirect(key, mask uint32, words []uint32) {
	off := uint32(len(bl.direct) * region.WordBytes)
	bl.direct = append(bl.direct, words...)
	bl.addEntry(key, mask, NewAddrWord(off, 0, true))
}

// AddRows adds a population whose neuron i has row rows[i]. Rows are
// padded to the longest row of the population.
func (bl *Builder) AddRows(key, mask uint32, rows []synrow.Row) {
	rowLen := 0
	for _, rw := range rows {
		if n := len(rw) - synrow.HeaderWords; n > rowLen {
			rowLen = n
		}
	}
	bl.Matrix.AlignTo(1 << BlockShift)
	addr := bl.Matrix.Addr() >> BlockShift
	for _, rw := range rows {
		bl.Matrix.Put(rw...)
		for i := len(rw); i < rowLen+synrow.HeaderWords; i++ {
			bl.Matrix.Put(0)
		}
	}
	bl.addEntry(key, mask, NewAddrWord(addr, uint32(rowLen), false))
}

// Regions returns the population table region, the direct matrix region
// and the synaptic matrix.
func (bl *Builder) Regions() (table, direct []byte, matrix *sdram.Memory) {
	return Encode(bl.entries, bl.addrs), EncodeDirect(bl.direct), bl.Matrix.Memory()
}
