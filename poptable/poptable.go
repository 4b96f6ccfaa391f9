// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package poptable implements the population (master) table: a sorted table
mapping the routing key of an incoming spike to the location of the
synaptic rows of the sending neuron, either in the bulk synaptic matrix or,
for rows of exactly one synapse, in the direct matrix held in local memory.

The table is loaded once and is read-only afterwards.
*/
package poptable

import (
	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/region"
	"github.com/emer/spikecore/synrow"
	"github.com/goki/ki/ints"
	"github.com/pkg/errors"
)

// BlockShift converts a bulk address field to a byte offset: bulk row
// blocks are aligned to 16 bytes.
const BlockShift = 4

// Entry is one table entry: spikes whose key matches Key under Mask are
// sent by neuron spike & ^Mask of the population, whose rows are described
// by Count address words starting at Start.
type Entry struct {
	Key   uint32
	Mask  uint32
	Start uint16
	Count uint16
}

// EntryBytes is the wire size of an Entry
const EntryBytes = 12

// AddrWord packs the location of a block of rows: row length in the low 8
// bits, address in the next 23 bits, and the single (direct) flag in the
// top bit.
type AddrWord uint32

const (
	rowLengthMask = 0xff
	addressMask   = 0x7fffff00
	singleBit     = 0x80000000
)

// NewAddrWord packs an address word
func NewAddrWord(addr, rowLength uint32, single bool) AddrWord {
	aw := AddrWord(rowLength&rowLengthMask | (addr<<8)&addressMask)
	if single {
		aw |= singleBit
	}
	return aw
}

// RowLength is the number of synapse words per row
func (aw AddrWord) RowLength() uint32 { return uint32(aw) & rowLengthMask }

// Address is the address field
func (aw AddrWord) Address() uint32 { return (uint32(aw) & addressMask) >> 8 }

// Single is true for direct rows
func (aw AddrWord) Single() bool { return uint32(aw)&singleBit != 0 }

// Address is a resolved row location
type Address struct {

	// row is a single synapse in the direct matrix
	Direct bool

	// byte offset into the direct matrix if Direct, else the synaptic matrix
	Offset uint32

	// number of bytes to transfer; 0 if Direct
	Bytes uint32
}

// Table is a loaded population table
type Table struct {
	Entries []Entry
	Addrs   []AddrWord

	// direct matrix, copied into local memory
	Direct []byte

	// largest bulk row in words, including the header
	RowMaxWords int
}

// Load reads a population table region, charging it to pool. The direct
// matrix is the one returned by LoadDirect.
func Load(data []byte, direct []byte, pool *dtcm.Pool) (*Table, error) {
	r := region.NewReader(data)
	nEntries := int(r.Uint32())
	nAddrs := int(r.Uint32())
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "poptable.Load: header")
	}
	if err := pool.Charge("population table", nEntries*EntryBytes+nAddrs*region.WordBytes); err != nil {
		return nil, errors.Wrap(err, "poptable.Load")
	}
	pt := &Table{Entries: make([]Entry, nEntries), Addrs: make([]AddrWord, nAddrs), Direct: direct}
	for i := range pt.Entries {
		e := &pt.Entries[i]
		e.Key = r.Uint32()
		e.Mask = r.Uint32()
		e.Start = r.Uint16()
		e.Count = r.Uint16()
	}
	for i := range pt.Addrs {
		pt.Addrs[i] = AddrWord(r.Uint32())
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrapf(err, "poptable.Load: %d entries, %d addresses", nEntries, nAddrs)
	}
	for i, e := range pt.Entries {
		if int(e.Start)+int(e.Count) > nAddrs {
			return nil, fault.New(fault.ConfigInconsistency, "poptable.Load", "entry %d addresses [%d, %d) beyond %d", i, e.Start, int(e.Start)+int(e.Count), nAddrs)
		}
		for _, aw := range pt.Addrs[int(e.Start) : int(e.Start)+int(e.Count)] {
			if !aw.Single() {
				pt.RowMaxWords = ints.MaxInt(pt.RowMaxWords, int(aw.RowLength())+synrow.HeaderWords)
			}
		}
	}
	return pt, nil
}

// Len returns the number of entries
func (pt *Table) Len() int { return len(pt.Entries) }

// KeyAt returns the key of entry i
func (pt *Table) KeyAt(i int) uint32 { return pt.Entries[i].Key }

// MaskAt returns the mask of entry i
func (pt *Table) MaskAt(i int) uint32 { return pt.Entries[i].Mask }

// Find returns the index of the entry matching spike
func (pt *Table) Find(spike uint32) (int, bool) {
	imin, imax := 0, len(pt.Entries)
	for imin < imax {
		imid := (imin + imax) >> 1
		e := &pt.Entries[imid]
		switch {
		case spike&e.Mask == e.Key:
			return imid, true
		case e.Key < spike:
			imin = imid + 1
		default:
			imax = imid
		}
	}
	return -1, false
}

// locate returns the row of neuron id within the block described by aw
func locate(aw AddrWord, id uint32) Address {
	if aw.Single() {
		return Address{Direct: true, Offset: aw.Address() + id*region.WordBytes}
	}
	stride := aw.RowLength() + synrow.HeaderWords
	return Address{
		Offset: aw.Address()<<BlockShift + id*stride*region.WordBytes,
		Bytes:  stride * region.WordBytes,
	}
}

// find returns the entry matching spike, which must have at least one row
func (pt *Table) find(spike uint32) (*Entry, error) {
	i, ok := pt.Find(spike)
	if !ok {
		return nil, fault.New(fault.ConfigInconsistency, "poptable.Resolve", "no entry for key %#08x", spike)
	}
	e := &pt.Entries[i]
	if e.Count == 0 {
		return nil, fault.New(fault.ConfigInconsistency, "poptable.Resolve", "entry for key %#08x has no rows", spike)
	}
	return e, nil
}

// Resolve returns the location of the first row of the neuron that sent
// spike. A spike with no matching entry, or an entry with no rows, is a
// fatal ConfigInconsistency fault.
func (pt *Table) Resolve(spike uint32) (Address, error) {
	e, err := pt.find(spike)
	if err != nil {
		return Address{}, err
	}
	return locate(pt.Addrs[e.Start], spike&^e.Mask), nil
}

// ResolveAll returns the locations of every row of the neuron that sent
// spike. It faults on the same keys as Resolve.
func (pt *Table) ResolveAll(spike uint32) ([]Address, error) {
	e, err := pt.find(spike)
	if err != nil {
		return nil, err
	}
	id := spike &^ e.Mask
	as := make([]Address, e.Count)
	for i := range as {
		as[i] = locate(pt.Addrs[int(e.Start)+i], id)
	}
	return as, nil
}

// DirectRow materializes the direct row at byte offset off of the direct matrix
func (pt *Table) DirectRow(off uint32) (synrow.Row, error) {
	if uint64(off)+region.WordBytes > uint64(len(pt.Direct)) {
		return nil, fault.New(fault.ConfigInconsistency, "poptable.DirectRow", "offset %d beyond direct matrix of %d bytes", off, len(pt.Direct))
	}
	r := region.NewReader(pt.Direct[off:])
	return synrow.Direct(r.Uint32()), nil
}

// LoadDirect copies the direct matrix region (a byte count followed by
// that many bytes) into local memory charged to pool.
func LoadDirect(data []byte, pool *dtcm.Pool) ([]byte, error) {
	r := region.NewReader(data)
	size := int(r.Uint32())
	src := r.Bytes(size)
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "poptable.LoadDirect")
	}
	if size == 0 {
		return nil, nil
	}
	dm, err := pool.Bytes("direct matrix", size)
	if err != nil {
		return nil, errors.Wrap(err, "poptable.LoadDirect")
	}
	copy(dm, src)
	return dm, nil
}
