// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
)

var (
	izh140  = fixpt.FromInt(140)
	izh5    = fixpt.FromInt(5)
	izh0_04 = fixpt.FromFloat(0.04)

	// TQOffset scales the step taken right after a spike, correcting the
	// spike time for the reset happening at the end of a step.
	TQOffset = fixpt.FromFloat(1.85)
)

// izhMidpoint advances v and u by one midpoint (second order Runge-Kutta)
// step of size h:
//
//	dv/dt = 0.04 v^2 + 5 v + 140 - u + I
//	du/dt = a (b v - u)
func izhMidpoint(h fixpt.Accum, v, u *fixpt.Accum, a, b, input fixpt.Accum) {
	lv, lu := *v, *u
	preAlph := fixpt.Sub(fixpt.Add(izh140, input), lu)
	alpha := fixpt.Add(preAlph, fixpt.Mul(fixpt.Add(izh5, fixpt.Mul(izh0_04, lv)), lv))
	eta := fixpt.Add(lv, fixpt.Half(fixpt.Mul(h, alpha)))
	beta := fixpt.Half(fixpt.Mul(fixpt.Mul(h, fixpt.Sub(fixpt.Mul(b, lv), lu)), a))
	dv := fixpt.Add(fixpt.Sub(preAlph, beta), fixpt.Mul(fixpt.Add(izh5, fixpt.Mul(izh0_04, eta)), eta))
	*v = fixpt.Add(lv, fixpt.Mul(h, dv))
	du := fixpt.Add(fixpt.Sub(fixpt.Neg(lu), beta), fixpt.Mul(b, eta))
	*u = fixpt.Add(lu, fixpt.Mul(fixpt.Mul(a, h), du))
}

// Izh is the plain Izhikevich neuron, integrated with the midpoint method
type Izh struct {
	A       fixpt.Accum
	B       fixpt.Accum
	C       fixpt.Accum
	D       fixpt.Accum
	V       fixpt.Accum
	U       fixpt.Accum
	IOffset fixpt.Accum

	// step size of the next update; longer than the timestep for one step
	// after a spike
	ThisH fixpt.Accum
}

func (nm *Izh) Size() int { return 8 * region.WordBytes }

func (nm *Izh) Decode(r *region.Reader) {
	for _, f := range nm.fields() {
		*f = r.Accum()
	}
}

func (nm *Izh) Encode(w *region.Writer) {
	for _, f := range nm.fields() {
		w.PutAccum(*f)
	}
}

func (nm *Izh) fields() []*fixpt.Accum {
	return []*fixpt.Accum{&nm.A, &nm.B, &nm.C, &nm.D, &nm.V, &nm.U, &nm.IOffset, &nm.ThisH}
}

func (nm *Izh) Voltage() fixpt.Accum { return nm.V }

func (nm *Izh) Update(ctx *Context, exc, inh []fixpt.Accum, bias fixpt.Accum) fixpt.Accum {
	input := fixpt.Add(fixpt.Add(fixpt.Sub(exc[0], inh[0]), bias), nm.IOffset)
	izhMidpoint(nm.ThisH, &nm.V, &nm.U, nm.A, nm.B, input)
	nm.ThisH = ctx.TimestepMs
	return nm.V
}

func (nm *Izh) Spiked(ctx *Context) {
	nm.V = nm.C
	nm.U = fixpt.Add(nm.U, nm.D)
	nm.ThisH = fixpt.Mul(ctx.TimestepMs, TQOffset)
}

// IzhDV2C is the two-compartment Izhikevich neuron. The second excitatory
// and inhibitory channels drive a slower compartment (V2) whose current is
// injected while V is above V2Thresh and for a hold period afterwards. A
// low-pass filtered copy of V (VSlow) and its per-step change (DvDtSlow)
// are maintained for the weight update rule.
type IzhDV2C struct {
	Izh

	// previous VSlow
	VPrev fixpt.Accum

	// low-pass filtered membrane potential
	VSlow fixpt.Accum

	// change in VSlow over the last step
	DvDtSlow fixpt.Accum

	// filter retention of VSlow per step
	Gamma fixpt.Accum

	// 1 - Gamma
	GammaComp fixpt.Accum

	// current of the second compartment: exc[1] - inh[1]
	V2 fixpt.Accum

	// membrane potential ceiling
	VMax fixpt.Accum

	// V at or above which V2 is injected
	V2Thresh fixpt.Accum

	// remaining steps of V2 injection
	V2Count int32
}

func (nm *IzhDV2C) Size() int { return 17 * region.WordBytes }

func (nm *IzhDV2C) Decode(r *region.Reader) {
	nm.Izh.Decode(r)
	for _, f := range nm.fields() {
		*f = r.Accum()
	}
	nm.V2Count = r.Int32()
}

func (nm *IzhDV2C) Encode(w *region.Writer) {
	nm.Izh.Encode(w)
	for _, f := range nm.fields() {
		w.PutAccum(*f)
	}
	w.PutInt32(nm.V2Count)
}

func (nm *IzhDV2C) fields() []*fixpt.Accum {
	return []*fixpt.Accum{&nm.VPrev, &nm.VSlow, &nm.DvDtSlow, &nm.Gamma, &nm.GammaComp, &nm.V2, &nm.VMax, &nm.V2Thresh}
}

// V2Gate advances the V2 hold countdown by one step and reports whether
// V2 is injected this step. The countdown decrements by one per step down
// to zero and is reset to hold whenever V is at or above V2Thresh.
func (nm *IzhDV2C) V2Gate(hold int32) bool {
	if nm.V2Count > 0 {
		nm.V2Count--
	}
	if nm.V >= nm.V2Thresh {
		nm.V2Count = hold
		return true
	}
	return nm.V2Count > 0
}

func (nm *IzhDV2C) Update(ctx *Context, exc, inh []fixpt.Accum, bias fixpt.Accum) fixpt.Accum {
	input := fixpt.Add(fixpt.Add(fixpt.Sub(exc[0], inh[0]), bias), nm.IOffset)
	nm.V2 = 0
	if len(exc) > 1 && len(inh) > 1 {
		nm.V2 = fixpt.Sub(exc[1], inh[1])
	}
	if nm.V2Gate(ctx.V2Hold) {
		input = fixpt.Add(input, nm.V2)
	}
	izhMidpoint(nm.ThisH, &nm.V, &nm.U, nm.A, nm.B, input)
	nm.ThisH = ctx.TimestepMs
	nm.V = fixpt.Min(nm.V, nm.VMax)
	nm.updtSlow()
	return nm.V
}

// updtSlow updates the filtered voltage trace and its rate of change
func (nm *IzhDV2C) updtSlow() {
	nm.VSlow = fixpt.Add(fixpt.Mul(nm.VSlow, nm.Gamma), fixpt.Mul(nm.V, nm.GammaComp))
	nm.DvDtSlow = fixpt.Sub(nm.VSlow, nm.VPrev)
	nm.VPrev = nm.VSlow
}

// Trace is the value accumulated by the weight update rule
func (nm *IzhDV2C) Trace() fixpt.Accum { return nm.DvDtSlow }

// Aux is the auxiliary plasticity signal
func (nm *IzhDV2C) Aux() fixpt.Accum { return nm.V2 }
