// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
)

// CurInput treats synaptic values as currents. It has no state.
type CurInput struct{}

func (it *CurInput) Size() int                                    { return 0 }
func (it *CurInput) Decode(r *region.Reader)                      {}
func (it *CurInput) Encode(w *region.Writer)                      {}
func (it *CurInput) Convert(exc, inh []fixpt.Accum, v fixpt.Accum) {}

// CondInput treats synaptic values as conductances, multiplied by the
// driving force of their reversal potential.
type CondInput struct {

	// excitatory reversal potential
	ERevE fixpt.Accum `def:"0"`

	// inhibitory reversal potential
	ERevI fixpt.Accum `def:"-70"`
}

func (it *CondInput) Size() int { return 2 * region.WordBytes }

func (it *CondInput) Decode(r *region.Reader) {
	it.ERevE = r.Accum()
	it.ERevI = r.Accum()
}

func (it *CondInput) Encode(w *region.Writer) {
	w.PutAccum(it.ERevE)
	w.PutAccum(it.ERevI)
}

// Convert computes exc*(ERevE - v) and inh*(v - ERevI), so that
// inhibition is positive when v is above ERevI.
func (it *CondInput) Convert(exc, inh []fixpt.Accum, v fixpt.Accum) {
	de := fixpt.Sub(it.ERevE, v)
	for i := range exc {
		exc[i] = fixpt.Mul(exc[i], de)
	}
	di := fixpt.Sub(v, it.ERevI)
	for i := range inh {
		inh[i] = fixpt.Mul(inh[i], di)
	}
}
