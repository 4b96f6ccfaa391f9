// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neuron implements the per-timestep neuron state update of a core.

Each neuron is composed of swappable strategies: a Model (membrane
dynamics), an Input type (how synaptic values become currents), a Threshold
type, an AdditionalInput (intrinsic currents), and a synapse.Shaping record.
The variants in use are chosen by Config and fixed for the lifetime of an
Impl, which owns the per-neuron arrays, loads and stores them from the
neuron parameter region, and steps each neuron through one timestep.
*/
package neuron

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
)

// Debug enables logging of loaded parameters
var Debug = false

// Model is the membrane dynamics of one neuron
type Model interface {
	region.Codec

	// Update integrates one timestep given converted excitatory and
	// inhibitory currents per channel, and returns the membrane voltage.
	Update(ctx *Context, exc, inh []fixpt.Accum, bias fixpt.Accum) fixpt.Accum

	// Spiked applies the post-spike reset
	Spiked(ctx *Context)

	// Voltage returns the membrane voltage
	Voltage() fixpt.Accum
}

// Traced is a Model that exposes the signals used by the weight update rule
type Traced interface {
	Model

	// Trace is the trace delta applied to plastic weights
	Trace() fixpt.Accum

	// Aux is the auxiliary signal applied to plastic weights
	Aux() fixpt.Accum
}

// Input converts per-channel synaptic values into currents
type Input interface {
	region.Codec

	// Convert converts exc and inh in place at membrane voltage v
	Convert(exc, inh []fixpt.Accum, v fixpt.Accum)
}

// Threshold decides whether a neuron fires
type Threshold interface {
	region.Codec

	// Update adapts the threshold given the neuron's spike variable z,
	// before the model is integrated
	Update(z fixpt.Accum)

	// Above returns true if v fires
	Above(v fixpt.Accum) bool

	// Value is the current threshold
	Value() fixpt.Accum
}

// AdditionalInput is an intrinsic current added to the bias
type AdditionalInput interface {
	region.Codec

	// Current returns the current at membrane voltage v, advancing its state one step
	Current(v fixpt.Accum) fixpt.Accum

	// Spiked updates state after the neuron fires
	Spiked()
}

// GlobalParams are shared by all neurons of a core
type GlobalParams struct {

	// simulation timestep in msec
	TimestepMs fixpt.Accum
}

func (gp *GlobalParams) Size() int               { return region.WordBytes }
func (gp *GlobalParams) Decode(r *region.Reader) { gp.TimestepMs = r.Accum() }
func (gp *GlobalParams) Encode(w *region.Writer) { w.PutAccum(gp.TimestepMs) }

// Context is the read-only state passed to every model update
type Context struct {
	GlobalParams

	// number of steps V2 stays injected after V falls below V2Thresh
	V2Hold int32
}
