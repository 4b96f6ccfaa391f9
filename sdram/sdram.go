// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sdram models the bulk memory holding synaptic matrices and the
blocking transfer used to bring a row into local working memory.
*/
package sdram

import (
	"fmt"

	"github.com/c2h5oh/datasize"
	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/region"
)

// Fetcher brings rows from bulk memory into local memory. Fetch blocks
// until all nBytes have been copied into dst, which must hold at least
// nBytes / 4 words. Any failure is a fatal TransferFailure fault.
type Fetcher interface {
	Fetch(dst []uint32, addr, nBytes uint32) error
}

// Stats are transfer statistics
type Stats struct {
	Transfers int64
	Bytes     int64
}

func (st *Stats) String() string {
	return fmt.Sprintf("transfers: %d\t bytes: %s", st.Transfers, datasize.ByteSize(st.Bytes).HumanReadable())
}

// Memory is a bulk memory image addressed by byte offset
type Memory struct {
	Data  []byte
	Stats Stats
}

// NewMemory returns a Memory over data
func NewMemory(data []byte) *Memory {
	return &Memory{Data: data}
}

// Fetch copies nBytes at addr into dst as little-endian words
func (mm *Memory) Fetch(dst []uint32, addr, nBytes uint32) error {
	end := uint64(addr) + uint64(nBytes)
	switch {
	case nBytes%region.WordBytes != 0:
		return fault.New(fault.TransferFailure, "sdram.Fetch", "%d bytes at %#x is not whole words", nBytes, addr)
	case end > uint64(len(mm.Data)):
		return fault.New(fault.TransferFailure, "sdram.Fetch", "%d bytes at %#x exceeds memory of %d bytes", nBytes, addr, len(mm.Data))
	case int(nBytes/region.WordBytes) > len(dst):
		return fault.New(fault.TransferFailure, "sdram.Fetch", "%d bytes at %#x exceeds row buffer of %d words", nBytes, addr, len(dst))
	}
	r := region.NewReader(mm.Data[addr:end])
	for i := 0; i < int(nBytes/region.WordBytes); i++ {
		dst[i] = r.Uint32()
	}
	mm.Stats.Transfers++
	mm.Stats.Bytes += int64(nBytes)
	return nil
}

// Builder lays out a bulk memory image word by word
type Builder struct {
	w *region.Writer
}

// NewBuilder returns an empty Builder
func NewBuilder() *Builder {
	return &Builder{w: region.NewWriter(1024)}
}

// Addr returns the byte address of the next word
func (bl *Builder) Addr() uint32 { return uint32(bl.w.Len()) }

// AlignTo pads with zero words until Addr is a multiple of n bytes
func (bl *Builder) AlignTo(n int) {
	for bl.w.Len()%n != 0 {
		bl.w.PutUint32(0)
	}
}

// Put appends words and returns the address of the first
func (bl *Builder) Put(ws ...uint32) uint32 {
	a := bl.Addr()
	bl.w.PutWords(ws)
	return a
}

// Memory returns the image built so far
func (bl *Builder) Memory() *Memory {
	return NewMemory(bl.w.Bytes())
}
