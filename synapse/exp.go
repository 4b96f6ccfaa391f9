// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
	"github.com/goki/mat32"
)

// ExpChan is a first-order exponential channel
type ExpChan struct {
	Decay fixpt.Decay
	Init  fixpt.Decay
	Value fixpt.Accum
}

// Exp is a single-exponential record with one excitatory and one
// inhibitory channel.
type Exp struct {
	Exc ExpChan
	Inh ExpChan
}

func (ex *Exp) Size() int   { return 6 * region.WordBytes }
func (ex *Exp) NumExc() int { return 1 }
func (ex *Exp) NumInh() int { return 1 }

func (ex *Exp) Decode(r *region.Reader) {
	for _, c := range []*ExpChan{&ex.Exc, &ex.Inh} {
		c.Decay = r.Decay()
		c.Init = r.Decay()
		c.Value = r.Accum()
	}
}

func (ex *Exp) Encode(w *region.Writer) {
	for _, c := range []*ExpChan{&ex.Exc, &ex.Inh} {
		w.PutDecay(c.Decay)
		w.PutDecay(c.Init)
		w.PutAccum(c.Value)
	}
}

func (ex *Exp) Add(ch Channel, in fixpt.Accum) {
	var c *ExpChan
	switch ch {
	case 0:
		c = &ex.Exc
	case 1:
		c = &ex.Inh
	default:
		return
	}
	c.Value = fixpt.Add(c.Value, fixpt.DecayAccum(in, c.Init))
}

func (ex *Exp) Shape() {
	ex.Exc.Value = fixpt.DecayAccum(ex.Exc.Value, ex.Exc.Decay)
	ex.Inh.Value = fixpt.DecayAccum(ex.Inh.Value, ex.Inh.Decay)
}

func (ex *Exp) Excitatory(dst []fixpt.Accum) []fixpt.Accum { return append(dst, ex.Exc.Value) }
func (ex *Exp) Inhibitory(dst []fixpt.Accum) []fixpt.Accum { return append(dst, ex.Inh.Value) }

// ExpParams are host-side exponential time constants in msec
type ExpParams struct {
	ExcTau float32 `def:"5"`
	InhTau float32 `def:"5"`
}

func (ep *ExpParams) Defaults() {
	ep.ExcTau = 5
	ep.InhTau = 5
}

func expChan(tau, dt float32) ExpChan {
	dc := mat32.Exp(-dt / tau)
	return ExpChan{
		Decay: fixpt.DecayFromFloat(dc),
		Init:  fixpt.DecayFromFloat((tau / dt) * (1 - dc)),
	}
}

// Compile returns the fixed-point record for timestep dt in msec
func (ep *ExpParams) Compile(dt float32) *Exp {
	return &Exp{Exc: expChan(ep.ExcTau, dt), Inh: expChan(ep.InhTau, dt)}
}
