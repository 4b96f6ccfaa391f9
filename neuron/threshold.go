// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
)

// StaticThr fires at or above a fixed value
type StaticThr struct {
	Thr fixpt.Accum `def:"30"`
}

func (th *StaticThr) Size() int                { return region.WordBytes }
func (th *StaticThr) Decode(r *region.Reader)  { th.Thr = r.Accum() }
func (th *StaticThr) Encode(w *region.Writer)  { w.PutAccum(th.Thr) }
func (th *StaticThr) Update(z fixpt.Accum)     {}
func (th *StaticThr) Above(v fixpt.Accum) bool { return v >= th.Thr }
func (th *StaticThr) Value() fixpt.Accum       { return th.Thr }

// AdaptThr is an adaptive threshold: each spike (z = 1) raises the
// adaptation variable Adapt, which decays back toward zero, and the
// threshold is Base + Beta * Adapt.
type AdaptThr struct {

	// current threshold
	Thr fixpt.Accum

	// adaptation variable
	Adapt fixpt.Accum

	// baseline threshold
	Base fixpt.Accum

	// adaptation strength
	Beta fixpt.Accum

	// per-step retention of Adapt: exp(-dt / tau)
	Decay fixpt.Decay

	// 1 - Decay
	DecayComp fixpt.Decay
}

func (th *AdaptThr) Size() int { return 6 * region.WordBytes }

func (th *AdaptThr) Decode(r *region.Reader) {
	th.Thr = r.Accum()
	th.Adapt = r.Accum()
	th.Base = r.Accum()
	th.Beta = r.Accum()
	th.Decay = r.Decay()
	th.DecayComp = r.Decay()
}

func (th *AdaptThr) Encode(w *region.Writer) {
	w.PutAccum(th.Thr)
	w.PutAccum(th.Adapt)
	w.PutAccum(th.Base)
	w.PutAccum(th.Beta)
	w.PutDecay(th.Decay)
	w.PutDecay(th.DecayComp)
}

func (th *AdaptThr) Update(z fixpt.Accum) {
	th.Adapt = fixpt.Add(fixpt.DecayAccum(th.Adapt, th.Decay), fixpt.DecayAccum(z, th.DecayComp))
	th.Thr = fixpt.Add(th.Base, fixpt.Mul(th.Beta, th.Adapt))
}

func (th *AdaptThr) Above(v fixpt.Accum) bool { return v > th.Thr }
func (th *AdaptThr) Value() fixpt.Accum       { return th.Thr }
