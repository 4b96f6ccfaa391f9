// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/emer/spikecore/bitfield"
	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/poptable"
	"github.com/emer/spikecore/sdram"
	"github.com/emer/spikecore/synapse"
	"github.com/emer/spikecore/synrow"
	"github.com/goki/ki/ints"
	"github.com/pkg/errors"
)

// Population routing keys of the demo network
const (
	DirectKey = 0x00000000
	BulkKey   = 0x00010000
)

// Network is the connectivity of the demo network in region form
type Network struct {
	Table  []byte
	Direct []byte
	Matrix *sdram.Memory
	Atoms  []byte

	// routing key of every source neuron, and its firing period in steps
	Sources []uint32
	Period  []int
}

// keyMask returns the mask of a population of n neurons
func keyMask(n int) uint32 {
	bits := 0
	for (1 << bits) < n {
		bits++
	}
	return ^uint32((1 << bits) - 1)
}

// BuildNetwork lays out the demo network: direct sources each excite one
// neuron, bulk source j excites neurons j and j+1 with delays 1 and 2 and
// inhibits neuron j+2, except every EmptyEvery'th source, which has no
// targets.
func BuildNetwork(nc *NetConfig) *Network {
	n := ints.MaxInt(nc.Neurons, 1)
	bl := poptable.NewBuilder()
	dws := make([]uint32, nc.DirectSources)
	for j := range dws {
		dws[j] = synrow.Synapse{Weight: nc.Weight, Type: uint32(synapse.Exc), Index: uint32(j % n)}.Encode()
	}
	if nc.DirectSources > 0 {
		bl.AddDirect(DirectKey, keyMask(nc.DirectSources), dws)
	}
	rows := make([]synrow.Row, nc.BulkSources)
	for j := range rows {
		if nc.EmptyEvery > 0 && j%nc.EmptyEvery == nc.EmptyEvery-1 {
			rows[j] = synrow.New(nil, nil)
			continue
		}
		rows[j] = synrow.New(nil, []uint32{
			synrow.Synapse{Weight: nc.Weight, Delay: 1, Type: uint32(synapse.Exc), Index: uint32(j % n)}.Encode(),
			synrow.Synapse{Weight: nc.Weight, Delay: 2, Type: uint32(synapse.Exc), Index: uint32((j + 1) % n)}.Encode(),
			synrow.Synapse{Weight: nc.Weight / 2, Delay: 1, Type: uint32(synapse.Inh), Index: uint32((j + 2) % n)}.Encode(),
		})
	}
	if nc.BulkSources > 0 {
		bl.AddRows(BulkKey, keyMask(nc.BulkSources), rows)
	}
	nw := &Network{}
	nw.Table, nw.Direct, nw.Matrix = bl.Regions()

	ka := bitfield.NewKeyAtoms()
	if nc.DirectSources > 0 {
		ka.Add(DirectKey, uint32(nc.DirectSources))
	}
	if nc.BulkSources > 0 {
		ka.Add(BulkKey, uint32(nc.BulkSources))
	}
	nw.Atoms = ka.Encode()

	for j := 0; j < nc.DirectSources; j++ {
		nw.Sources = append(nw.Sources, DirectKey+uint32(j))
		nw.Period = append(nw.Period, nc.Period+j)
	}
	for j := 0; j < nc.BulkSources; j++ {
		nw.Sources = append(nw.Sources, BulkKey+uint32(j))
		nw.Period = append(nw.Period, nc.Period+j)
	}
	return nw
}

// Spikes returns the source spikes of step
func (nw *Network) Spikes(step int) []uint32 {
	var sp []uint32
	for i, k := range nw.Sources {
		if nw.Period[i] > 0 && step%nw.Period[i] == 0 {
			sp = append(sp, k)
		}
	}
	return sp
}

// Load loads the population table and key to atoms map into pool
func (nw *Network) Load(pool *dtcm.Pool) (*poptable.Table, *bitfield.KeyAtoms, error) {
	direct, err := poptable.LoadDirect(nw.Direct, pool)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Network.Load")
	}
	pt, err := poptable.Load(nw.Table, direct, pool)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Network.Load")
	}
	ka, err := bitfield.LoadKeyAtoms(nw.Atoms, pool)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Network.Load")
	}
	return pt, ka, nil
}
