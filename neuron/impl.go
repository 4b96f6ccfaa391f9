// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"fmt"
	"log"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
	"github.com/emer/spikecore/synapse"
	"github.com/pkg/errors"
)

// Recorded are the per-neuron values recorded each timestep
type Recorded struct {

	// membrane voltage at the start of the step
	V fixpt.Accum

	// sum of excitatory channel values before conversion
	GsynExc fixpt.Accum

	// sum of inhibitory channel values before conversion
	GsynInh fixpt.Accum
}

// Impl holds the per-neuron state of all neurons on a core, one array per
// strategy, and the shared context. Index n addresses the same neuron in
// every array.
type Impl struct {
	Config Config
	Ctx    Context

	Models      []Model
	Inputs      []Input
	Thresholds  []Threshold
	Synapses    []synapse.Shaping
	Additionals []AdditionalInput

	// spike variable of each neuron: One if it fired on the previous step
	Z []fixpt.Accum

	exc []fixpt.Accum
	inh []fixpt.Accum
}

// NewImpl allocates an Impl for n neurons, charging every array to pool.
// Allocation beyond the pool budget is a fatal ResourceExhaustion fault.
func NewImpl(cfg Config, n int, pool *dtcm.Pool) (*Impl, error) {
	im := &Impl{Config: cfg}
	im.Ctx.V2Hold = cfg.V2Hold
	charges := []struct {
		what string
		size int
	}{
		{"global params", im.Ctx.GlobalParams.Size()},
		{"neurons", n * cfg.NewModel().Size()},
		{"input types", n * cfg.NewInput().Size()},
		{"thresholds", n * cfg.NewThreshold().Size()},
		{"synapse params", n * synapse.New(cfg.Synapse).Size()},
		{"additional inputs", n * cfg.NewAdditional().Size()},
		{"spike vars", n * region.WordBytes},
	}
	for _, c := range charges {
		if err := pool.Charge(c.what, c.size); err != nil {
			return nil, errors.Wrapf(err, "neuron.NewImpl: %d neurons", n)
		}
	}
	im.Models = make([]Model, n)
	im.Inputs = make([]Input, n)
	im.Thresholds = make([]Threshold, n)
	im.Synapses = make([]synapse.Shaping, n)
	im.Additionals = make([]AdditionalInput, n)
	im.Z = make([]fixpt.Accum, n)
	for i := 0; i < n; i++ {
		im.Models[i] = cfg.NewModel()
		im.Inputs[i] = cfg.NewInput()
		im.Thresholds[i] = cfg.NewThreshold()
		im.Synapses[i] = synapse.New(cfg.Synapse)
		im.Additionals[i] = cfg.NewAdditional()
	}
	return im, nil
}

// N returns the number of neurons
func (im *Impl) N() int { return len(im.Models) }

// blocks returns the per-neuron arrays in region order
func (im *Impl) blocks() [][]region.Codec {
	n := im.N()
	bs := make([][]region.Codec, 5)
	for b := range bs {
		bs[b] = make([]region.Codec, n)
	}
	for i := 0; i < n; i++ {
		bs[0][i] = im.Models[i]
		bs[1][i] = im.Inputs[i]
		bs[2][i] = im.Thresholds[i]
		bs[3][i] = im.Synapses[i]
		bs[4][i] = im.Additionals[i]
	}
	return bs
}

var blockNames = []string{"neuron", "input type", "threshold type", "synapse", "additional input"}

// ParamsSize returns the size in bytes of the neuron parameter region
func (im *Impl) ParamsSize() int {
	sz := region.PaddedBytes(im.Ctx.GlobalParams.Size())
	for _, b := range im.blocks() {
		if len(b) > 0 {
			sz += region.PaddedBytes(len(b) * b[0].Size())
		}
	}
	return sz
}

// LoadParams reads the neuron parameter region: the global params followed
// by the neuron, input type, threshold type, synapse and additional input
// arrays, each padded to a whole number of words.
func (im *Impl) LoadParams(data []byte) error {
	r := region.NewReader(data)
	im.Ctx.GlobalParams.Decode(r)
	r.Align()
	for bi, b := range im.blocks() {
		if Debug {
			log.Printf("reading %s parameters at byte %d\n", blockNames[bi], r.Pos())
		}
		for _, c := range b {
			c.Decode(r)
		}
		r.Align()
	}
	if err := r.Err(); err != nil {
		return errors.Wrapf(err, "neuron.LoadParams: %d neurons", im.N())
	}
	if Debug {
		for i, m := range im.Models {
			log.Printf("neuron %d: %+v\n", i, m)
		}
	}
	return nil
}

// StoreParams writes the neuron parameter region, in the same layout
// read by LoadParams.
func (im *Impl) StoreParams() []byte {
	w := region.NewWriter(im.ParamsSize())
	im.Ctx.GlobalParams.Encode(w)
	w.Align()
	for _, b := range im.blocks() {
		for _, c := range b {
			c.Encode(w)
		}
		w.Align()
	}
	return w.Bytes()
}

// AddInput adds a weighted input to channel ch of neuron n
func (im *Impl) AddInput(ch synapse.Channel, n int, in fixpt.Accum) {
	im.Synapses[n].Add(ch, in)
}

// DoTimestepUpdate advances neuron n by one timestep with external bias
// current, and returns true if it fired. If rec is non-nil the recorded
// variables are written to it.
func (im *Impl) DoTimestepUpdate(n int, bias fixpt.Accum, rec *Recorded) bool {
	nm := im.Models[n]
	it := im.Inputs[n]
	th := im.Thresholds[n]
	sh := im.Synapses[n]
	ai := im.Additionals[n]

	v := nm.Voltage()
	im.exc = sh.Excitatory(im.exc[:0])
	im.inh = sh.Inhibitory(im.inh[:0])

	var totExc, totInh fixpt.Accum
	for _, e := range im.exc {
		totExc = fixpt.Add(totExc, e)
	}
	for _, i := range im.inh {
		totInh = fixpt.Add(totInh, i)
	}

	it.Convert(im.exc, im.inh, v)
	bias = fixpt.Add(bias, ai.Current(v))
	th.Update(im.Z[n])

	nv := nm.Update(&im.Ctx, im.exc, im.inh, bias)
	spike := th.Above(nv)
	if spike {
		nm.Spiked(&im.Ctx)
		ai.Spiked()
		im.Z[n] = fixpt.One
	} else {
		im.Z[n] = 0
	}
	sh.Shape()

	if rec != nil {
		rec.V = v
		rec.GsynExc = totExc
		rec.GsynInh = totInh
	}
	return spike
}

// Voltage returns the membrane voltage of neuron n
func (im *Impl) Voltage(n int) fixpt.Accum { return im.Models[n].Voltage() }

// SizeReport returns a string reporting the size of each per-neuron array
func (im *Impl) SizeReport() string {
	var b strings.Builder
	tot := 0
	for bi, bl := range im.blocks() {
		sz := 0
		if len(bl) > 0 {
			sz = len(bl) * bl[0].Size()
		}
		tot += sz
		fmt.Fprintf(&b, "%18s:\t %v\n", blockNames[bi], datasize.ByteSize(sz).HumanReadable())
	}
	fmt.Fprintf(&b, "\n%18s:\t Neurons: %d\t Mem: %v\n", "total", im.N(), datasize.ByteSize(tot).HumanReadable())
	return b.String()
}
