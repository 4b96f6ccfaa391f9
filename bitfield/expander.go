// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitfield

import (
	"log"

	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/poptable"
	"github.com/emer/spikecore/region"
	"github.com/emer/spikecore/sdram"
	"github.com/emer/spikecore/synrow"
	"github.com/pkg/errors"
)

// Expander runs the pruning pass over a population table
type Expander struct {

	// population table to prune
	Table *poptable.Table

	// number of neurons behind each key
	Atoms *KeyAtoms

	// source of bulk rows
	Fetch sdram.Fetcher

	// working memory for the row buffer and the bit fields
	Pool *dtcm.Pool

	row []uint32
}

// NewExpander returns an Expander over the given table
func NewExpander(pt *poptable.Table, ka *KeyAtoms, fetch sdram.Fetcher, pool *dtcm.Pool) *Expander {
	return &Expander{Table: pt, Atoms: ka, Fetch: fetch, Pool: pool}
}

// alloc reserves the row buffer and the bit field words of every entry,
// so that the pass cannot run out of memory part way through.
func (ex *Expander) alloc() error {
	nw := 0
	for i := 0; i < ex.Table.Len(); i++ {
		n, err := ex.Atoms.Atoms(ex.Table.KeyAt(i))
		if err != nil {
			return err
		}
		nw += Words(int(n))
	}
	if err := ex.Pool.Charge("bit fields", nw*region.WordBytes); err != nil {
		return err
	}
	var err error
	ex.row, err = ex.Pool.Words("row buffer", ex.Table.RowMaxWords)
	return err
}

// HasTargets reports whether any row of the neuron that sends spike has
// targets. Direct rows always do, and are never fetched.
func (ex *Expander) HasTargets(spike uint32) (bool, error) {
	as, err := ex.Table.ResolveAll(spike)
	if err != nil {
		return false, err
	}
	for _, a := range as {
		if a.Direct {
			return true, nil
		}
		if err := ex.Fetch.Fetch(ex.row, a.Offset, a.Bytes); err != nil {
			return false, errors.Wrapf(err, "key %#08x", spike)
		}
		if synrow.Row(ex.row[:a.Bytes/region.WordBytes]).HasTargets() {
			return true, nil
		}
	}
	return false, nil
}

// Run performs the pass, returning one bit field per table entry in
// table order.
func (ex *Expander) Run() (*Output, error) {
	if err := ex.alloc(); err != nil {
		return nil, errors.Wrap(err, "bitfield.Run")
	}
	out := &Output{Fields: make([]Field, ex.Table.Len())}
	for i := range out.Fields {
		key := ex.Table.KeyAt(i)
		n, _ := ex.Atoms.Atoms(key)
		bf := New(int(n))
		for j := 0; j < int(n); j++ {
			has, err := ex.HasTargets(key + uint32(j))
			if err != nil {
				return nil, errors.Wrapf(err, "bitfield.Run: entry %d neuron %d", i, j)
			}
			if has {
				bf.Set(j)
			}
		}
		if Debug {
			log.Printf("bitfield: key %#08x: %d of %d rows have targets\n", key, bf.Count(), n)
		}
		out.Fields[i] = Field{Key: key, Bits: bf}
	}
	return out, nil
}
