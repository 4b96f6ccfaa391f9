// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package plasticity implements the additive dv/dt weight dependence rule:
the change in a plastic synaptic weight is proportional to the
postsynaptic low-pass filtered voltage derivative accumulated over a
spike event, bounded by per-synapse-type weight limits.

A weight update is a pure pipeline: Initial seeds a State from the stored
weight, Apply accumulates trace contributions, and Final collapses the
State to a bounded weight.
*/
package plasticity

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
	"github.com/pkg/errors"
)

// TraceShift is the right shift converting an s16.15 trace to STDP fixed point
const TraceShift = 4

// Region holds the weight update constants of one synapse type, in
// weight units.
type Region struct {
	MinWeight   int32
	MaxWeight   int32
	Scale       int32
	Boost       int32
	BoostThresh int32
	Causal      int32
}

// RegionBytes is the wire size of a Region
const RegionBytes = 6 * region.WordBytes

func (wr *Region) Size() int { return RegionBytes }

func (wr *Region) Decode(r *region.Reader) {
	wr.MinWeight = r.Int32()
	wr.MaxWeight = r.Int32()
	wr.Scale = r.Int32()
	wr.Boost = r.Int32()
	wr.BoostThresh = r.Int32()
	wr.Causal = r.Int32()
}

func (wr *Region) Encode(w *region.Writer) {
	w.PutInt32(wr.MinWeight)
	w.PutInt32(wr.MaxWeight)
	w.PutInt32(wr.Scale)
	w.PutInt32(wr.Boost)
	w.PutInt32(wr.BoostThresh)
	w.PutInt32(wr.Causal)
}

// Clamp bounds w to [MinWeight, MaxWeight]
func (wr *Region) Clamp(w int32) int32 {
	if w < wr.MinWeight {
		w = wr.MinWeight
	}
	if w > wr.MaxWeight {
		w = wr.MaxWeight
	}
	return w
}

// LoadRegions reads one Region per synapse type
func LoadRegions(r *region.Reader, nTypes int) ([]Region, error) {
	rs := make([]Region, nTypes)
	for i := range rs {
		rs[i].Decode(r)
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrapf(err, "plasticity.LoadRegions: %d synapse types", nTypes)
	}
	return rs, nil
}

// StoreRegions writes rs in the layout read by LoadRegions
func StoreRegions(rs []Region) []byte {
	w := region.NewWriter(len(rs) * RegionBytes)
	for i := range rs {
		rs[i].Encode(w)
	}
	return w.Bytes()
}

// State accumulates the trace contributions of one weight update
type State struct {
	Initial int32
	DvSlow  int32
	NMDA    int32
	Region  *Region
}

// Initial returns the State for stored weight w governed by wr
func Initial(w uint16, wr *Region) State {
	return State{Initial: int32(w), Region: wr}
}

// Apply adds a trace delta and an auxiliary signal, both raw s16.15
func (ws State) Apply(dvSlow, nmda int32) State {
	ws.DvSlow += dvSlow
	ws.NMDA += nmda
	return ws
}

// ApplyAccum is Apply for fixed-point signals
func (ws State) ApplyAccum(dvSlow, nmda fixpt.Accum) State {
	return ws.Apply(dvSlow.Raw(), nmda.Raw())
}

// Delta returns the scaled weight change of the accumulated trace
func (ws State) Delta() int32 {
	return fixpt.STDPMul(ws.DvSlow>>TraceShift, ws.Region.Scale)
}

// Final returns the initial weight plus the scaled trace, clamped to the
// region's weight bounds.
func (ws State) Final() uint16 {
	return uint16(ws.Region.Clamp(ws.Initial + ws.Delta()))
}
