// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
)

// NoAdd contributes no current
type NoAdd struct{}

func (ai *NoAdd) Size() int                          { return 0 }
func (ai *NoAdd) Decode(r *region.Reader)            {}
func (ai *NoAdd) Encode(w *region.Writer)            {}
func (ai *NoAdd) Current(v fixpt.Accum) fixpt.Accum { return 0 }
func (ai *NoAdd) Spiked()                            {}

// CaAdapt is a calcium-activated hyperpolarizing current: each spike adds
// Alpha to ICa, which decays every step, and -ICa is added to the bias.
type CaAdapt struct {

	// per-step retention of ICa: exp(-dt / tau_ca)
	Decay fixpt.Decay

	// calcium current
	ICa fixpt.Accum

	// increment of ICa per spike
	Alpha fixpt.Accum
}

func (ai *CaAdapt) Size() int { return 3 * region.WordBytes }

func (ai *CaAdapt) Decode(r *region.Reader) {
	ai.Decay = r.Decay()
	ai.ICa = r.Accum()
	ai.Alpha = r.Accum()
}

func (ai *CaAdapt) Encode(w *region.Writer) {
	w.PutDecay(ai.Decay)
	w.PutAccum(ai.ICa)
	w.PutAccum(ai.Alpha)
}

func (ai *CaAdapt) Current(v fixpt.Accum) fixpt.Accum {
	ai.ICa = fixpt.DecayAccum(ai.ICa, ai.Decay)
	return fixpt.Neg(ai.ICa)
}

func (ai *CaAdapt) Spiked() {
	ai.ICa = fixpt.Add(ai.ICa, ai.Alpha)
}
