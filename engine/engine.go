// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package engine runs the per-timestep simulation of one core: incoming
spikes are resolved through the population table, their synaptic rows are
fetched from bulk memory and their weights are queued into delay ring
buffers; each timestep the due weights are moved into the synaptic
accumulators, every neuron is updated in a fixed order, and plastic
synapses onto neurons that fired are updated.
*/
package engine

import (
	"fmt"
	"log"

	"github.com/emer/spikecore/bitfield"
	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/neuron"
	"github.com/emer/spikecore/plasticity"
	"github.com/emer/spikecore/poptable"
	"github.com/emer/spikecore/record"
	"github.com/emer/spikecore/region"
	"github.com/emer/spikecore/sdram"
	"github.com/emer/spikecore/synapse"
	"github.com/emer/spikecore/synrow"
	"github.com/pkg/errors"
)

// RingSlots is the number of delay slots of the input ring buffers.
// Synaptic delays are taken modulo RingSlots.
const RingSlots = 16

const ringMask = RingSlots - 1

// Debug turns on logging of spike delivery
var Debug = false

// PlasticSynapse is a plastic connection from a source spike key onto a
// neuron of this core, whose weight is updated each time the target fires.
type PlasticSynapse struct {

	// routing key of the source neuron
	Key uint32

	// target neuron
	Target int

	// synapse type (receptor channel)
	Type synapse.Channel

	// delay in timesteps
	Delay uint32

	// current weight
	Weight uint16
}

// Engine is the simulation context of one core
type Engine struct {
	Impl  *neuron.Impl
	Table *poptable.Table
	Fetch sdram.Fetcher

	// optional row filter from a pruning pass; nil fetches every row
	Filter *bitfield.Filter

	// weight update constants per synapse type
	Regions []plasticity.Region

	// plastic synapses onto neurons of this core
	Plastic []PlasticSynapse

	// left shift per synapse type converting ring weights to accumulator input
	LeftShifts []uint

	// delay ring buffers: RingSlots x types x neurons saturating weight sums
	Ring []uint32

	Time Time

	// optional per-step recording
	Recorder *record.Recorder

	// spike raster of the last Run, one slice of neuron indexes per step
	Raster [][]int

	nTypes int
	row    []uint32
	rec    neuron.Recorded
}

// New returns an Engine over im and pt, charging the ring buffers and
// the row buffer to pool.
func New(im *neuron.Impl, pt *poptable.Table, fetch sdram.Fetcher, pool *dtcm.Pool) (*Engine, error) {
	en := &Engine{Impl: im, Table: pt, Fetch: fetch}
	en.Time.Defaults()
	en.nTypes = synapse.NumTypes(im.Config.Synapse)
	en.LeftShifts = make([]uint, en.nTypes)
	var err error
	en.Ring, err = pool.Words("ring buffers", RingSlots*en.nTypes*im.N())
	if err != nil {
		return nil, errors.Wrap(err, "engine.New")
	}
	if pt != nil && pt.RowMaxWords > 0 {
		en.row, err = pool.Words("row buffer", pt.RowMaxWords)
		if err != nil {
			return nil, errors.Wrap(err, "engine.New")
		}
	}
	return en, nil
}

// LoadPlasticity reads the weight update region: one plasticity.Region
// per synapse type, charged to pool.
func (en *Engine) LoadPlasticity(data []byte, pool *dtcm.Pool) error {
	if err := pool.Charge("plasticity regions", en.nTypes*plasticity.RegionBytes); err != nil {
		return errors.Wrap(err, "engine.LoadPlasticity")
	}
	rs, err := plasticity.LoadRegions(region.NewReader(data), en.nTypes)
	if err != nil {
		return errors.Wrap(err, "engine.LoadPlasticity")
	}
	en.Regions = rs
	return nil
}

// NumTypes returns the number of synapse types
func (en *Engine) NumTypes() int { return en.nTypes }

func (en *Engine) ringIdx(slot uint32, typ, n int) int {
	return (int(slot&ringMask)*en.nTypes+typ)*en.Impl.N() + n
}

// queue adds weight w to the ring of neuron n, type typ, due in delay steps
func (en *Engine) queue(typ, n int, delay uint32, w uint16) {
	ri := en.ringIdx(uint32(en.Time.Step)+delay, typ, n)
	s := uint64(en.Ring[ri]) + uint64(w)
	if s > 0xffffffff {
		s = 0xffffffff
	}
	en.Ring[ri] = uint32(s)
}

// deliver queues every fixed synapse of rw
func (en *Engine) deliver(rw synrow.Row) error {
	for _, w := range rw.Fixed() {
		sy := synrow.Decode(w)
		if int(sy.Type) >= en.nTypes || int(sy.Index) >= en.Impl.N() {
			return fault.New(fault.ConfigInconsistency, "engine.deliver", "synapse %+v beyond %d types, %d neurons", sy, en.nTypes, en.Impl.N())
		}
		en.queue(int(sy.Type), int(sy.Index), sy.Delay, sy.Weight)
	}
	return nil
}

// ReceiveSpike delivers an incoming spike with routing key spike. Rows
// known to be empty from the filter are not fetched.
func (en *Engine) ReceiveSpike(spike uint32) error {
	for i := range en.Plastic {
		ps := &en.Plastic[i]
		if ps.Key != spike {
			continue
		}
		if int(ps.Type) < 0 || int(ps.Type) >= en.nTypes || ps.Target < 0 || ps.Target >= en.Impl.N() {
			return fault.New(fault.ConfigInconsistency, "engine.ReceiveSpike", "plastic synapse %+v beyond %d types, %d neurons", *ps, en.nTypes, en.Impl.N())
		}
		en.queue(int(ps.Type), ps.Target, ps.Delay, ps.Weight)
	}
	if en.Table == nil {
		return nil
	}
	if !en.Filter.Has(spike) {
		if Debug {
			log.Printf("engine: step %d: spike %#08x filtered\n", en.Time.Step, spike)
		}
		return nil
	}
	as, err := en.Table.ResolveAll(spike)
	if err != nil {
		return errors.Wrap(err, "engine.ReceiveSpike")
	}
	for _, a := range as {
		var rw synrow.Row
		if a.Direct {
			rw, err = en.Table.DirectRow(a.Offset)
		} else {
			err = en.Fetch.Fetch(en.row, a.Offset, a.Bytes)
			rw = synrow.Row(en.row[:a.Bytes/region.WordBytes])
		}
		if err != nil {
			return errors.Wrapf(err, "engine.ReceiveSpike: key %#08x", spike)
		}
		if err := en.deliver(rw); err != nil {
			return errors.Wrapf(err, "engine.ReceiveSpike: key %#08x", spike)
		}
	}
	return nil
}

// transfer moves the ring sums due this step into the synaptic accumulators
func (en *Engine) transfer() {
	n := en.Impl.N()
	for typ := 0; typ < en.nTypes; typ++ {
		base := en.ringIdx(uint32(en.Time.Step), typ, 0)
		for ni := 0; ni < n; ni++ {
			w := en.Ring[base+ni]
			if w == 0 {
				continue
			}
			en.Ring[base+ni] = 0
			en.Impl.AddInput(synapse.Channel(typ), ni, fixpt.WeightToInput(w, en.LeftShifts[typ]))
		}
	}
}

// learn updates the plastic synapses onto neuron n after it fired
func (en *Engine) learn(n int) {
	tm, ok := en.Impl.Models[n].(neuron.Traced)
	if !ok {
		return
	}
	for i := range en.Plastic {
		ps := &en.Plastic[i]
		if ps.Target != n || int(ps.Type) >= len(en.Regions) {
			continue
		}
		st := plasticity.Initial(ps.Weight, &en.Regions[ps.Type])
		st = st.ApplyAccum(tm.Trace(), tm.Aux())
		ps.Weight = st.Final()
	}
}

// Step advances every neuron by one timestep with the given bias current
// (nil for none) and returns the neurons that fired.
func (en *Engine) Step(bias []fixpt.Accum) []int {
	en.transfer()
	var spikes []int
	for n := 0; n < en.Impl.N(); n++ {
		var b fixpt.Accum
		if n < len(bias) {
			b = bias[n]
		}
		spiked := en.Impl.DoTimestepUpdate(n, b, &en.rec)
		if spiked {
			spikes = append(spikes, n)
			en.learn(n)
		}
		if en.Recorder != nil && en.Recorder.Wants(n) {
			en.Recorder.Record(en.Time.Step, n, &en.rec, spiked)
		}
	}
	en.Time.StepInc()
	return spikes
}

// Input supplies the spikes arriving at a timestep
type Input func(step int) []uint32

// Run runs steps timesteps, delivering the spikes from in (may be nil)
// at the start of each, and returns the spike raster. A nonzero
// Time.Steps stops the run once that many steps have elapsed.
func (en *Engine) Run(steps int, bias []fixpt.Accum, in Input) ([][]int, error) {
	en.Raster = make([][]int, 0, steps)
	for s := 0; s < steps && !en.Time.Done(); s++ {
		if in != nil {
			for _, sp := range in(en.Time.Step) {
				if err := en.ReceiveSpike(sp); err != nil {
					return en.Raster, errors.Wrapf(err, "engine.Run: step %d", en.Time.Step)
				}
			}
		}
		en.Raster = append(en.Raster, en.Step(bias))
	}
	return en.Raster, nil
}

// SpikeCounts returns the number of spikes of each neuron in the raster
func (en *Engine) SpikeCounts() []int {
	cnt := make([]int, en.Impl.N())
	for _, sp := range en.Raster {
		for _, n := range sp {
			cnt[n]++
		}
	}
	return cnt
}

// String returns a summary of the run
func (en *Engine) String() string {
	tot := 0
	for _, c := range en.SpikeCounts() {
		tot += c
	}
	return fmt.Sprintf("steps: %d\t time: %g ms\t neurons: %d\t spikes: %d", en.Time.Step, en.Time.Time, en.Impl.N(), tot)
}
