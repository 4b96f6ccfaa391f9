// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package synrow decodes synaptic rows: the per-presynaptic-neuron lists of
synapses stored in bulk memory.

A row is laid out in 32-bit words as

	[plastic size N] [N plastic words] [n fixed] [n plastic controls] [fixed words...]

Each fixed word packs, from the most significant bit, a 16-bit weight, a
delay, a synapse type and a postsynaptic neuron index.
*/
package synrow

// HeaderWords is the number of non-synapse words in a row
const HeaderWords = 3

// Bit widths of the fields of a fixed synapse word
const (
	WeightBits = 16
	DelayBits  = 4
	TypeBits   = 3
	IndexBits  = 8
)

const (
	delayMask = 1<<DelayBits - 1
	typeMask  = 1<<TypeBits - 1
	indexMask = 1<<IndexBits - 1
)

// Row is a synaptic row
type Row []uint32

// PlasticSize returns the number of words in the plastic region
func (rw Row) PlasticSize() uint32 {
	if len(rw) == 0 {
		return 0
	}
	return rw[0]
}

// Plastic returns the plastic region
func (rw Row) Plastic() []uint32 {
	n := int(rw.PlasticSize())
	if n+1 > len(rw) {
		return nil
	}
	return rw[1 : 1+n]
}

// FixedRegion returns the fixed region, starting at its n fixed word
func (rw Row) FixedRegion() []uint32 {
	off := 1 + int(rw.PlasticSize())
	if off > len(rw) {
		return nil
	}
	return rw[off:]
}

// NumFixed returns the number of fixed synapses
func (rw Row) NumFixed() uint32 {
	fr := rw.FixedRegion()
	if len(fr) == 0 {
		return 0
	}
	return fr[0]
}

// NumPlasticControls returns the number of plastic control words
func (rw Row) NumPlasticControls() uint32 {
	fr := rw.FixedRegion()
	if len(fr) < 2 {
		return 0
	}
	return fr[1]
}

// Fixed returns the fixed synapse words
func (rw Row) Fixed() []uint32 {
	fr := rw.FixedRegion()
	n := int(rw.NumFixed())
	if len(fr) < 2+n {
		return nil
	}
	return fr[2 : 2+n]
}

// HasTargets returns true if the row has any plastic entries or any fixed
// synapses: a row without either cannot affect any neuron and can be pruned.
func (rw Row) HasTargets() bool {
	return rw.PlasticSize() > 0 || rw.NumFixed() > 0
}

// Words returns the number of words in a row with nPlastic plastic words
// and nFixed fixed synapses
func Words(nPlastic, nFixed int) int {
	return HeaderWords + nPlastic + nFixed
}

// New returns a row holding the given plastic words and fixed synapses
func New(plastic []uint32, fixed []uint32) Row {
	rw := make(Row, 0, Words(len(plastic), len(fixed)))
	rw = append(rw, uint32(len(plastic)))
	rw = append(rw, plastic...)
	rw = append(rw, uint32(len(fixed)), 0)
	rw = append(rw, fixed...)
	return rw
}

// Direct returns the row of a single fixed synapse word
func Direct(word uint32) Row {
	return Row{0, 1, 0, word}
}

// Synapse is a decoded fixed synapse word
type Synapse struct {
	Weight uint16
	Delay  uint32
	Type   uint32
	Index  uint32
}

// Decode unpacks a fixed synapse word
func Decode(w uint32) Synapse {
	return Synapse{
		Weight: uint16(w >> (32 - WeightBits)),
		Delay:  (w >> (TypeBits + IndexBits)) & delayMask,
		Type:   (w >> IndexBits) & typeMask,
		Index:  w & indexMask,
	}
}

// Encode packs a fixed synapse word
func (sy Synapse) Encode() uint32 {
	return uint32(sy.Weight)<<(32-WeightBits) |
		(sy.Delay&delayMask)<<(TypeBits+IndexBits) |
		(sy.Type&typeMask)<<IndexBits |
		sy.Index&indexMask
}
