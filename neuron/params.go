// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/synapse"
	"github.com/goki/mat32"
)

// IzhParams are the host-side Izhikevich parameters, in mV and msec
type IzhParams struct {

	// recovery rate
	A float32 `def:"0.02"`

	// recovery sensitivity to v
	B float32 `def:"0.2"`

	// reset voltage
	C float32 `def:"-65"`

	// recovery increment on spike
	D float32 `def:"2"`

	// initial voltage
	V float32 `def:"-70"`

	// initial recovery
	U float32 `def:"-14"`

	// constant input current
	IOffset float32 `def:"0"`

	// retention of the low-pass filtered voltage per step
	Gamma float32 `def:"0.9"`

	// ceiling on membrane voltage
	VMax float32 `def:"30"`

	// voltage at which the second compartment is injected
	V2Thresh float32 `def:"-50"`
}

func (ip *IzhParams) Defaults() {
	ip.A = 0.02
	ip.B = 0.2
	ip.C = -65
	ip.D = 2
	ip.V = -70
	ip.U = -14
	ip.IOffset = 0
	ip.Gamma = 0.9
	ip.VMax = 30
	ip.V2Thresh = -50
}

// Izh returns the fixed-point plain model for timestep dt
func (ip *IzhParams) Izh(dt float32) Izh {
	return Izh{
		A:       fixpt.FromFloat(ip.A),
		B:       fixpt.FromFloat(ip.B),
		C:       fixpt.FromFloat(ip.C),
		D:       fixpt.FromFloat(ip.D),
		V:       fixpt.FromFloat(ip.V),
		U:       fixpt.FromFloat(ip.U),
		IOffset: fixpt.FromFloat(ip.IOffset),
		ThisH:   fixpt.FromFloat(dt),
	}
}

// IzhDV2C returns the fixed-point two-compartment model for timestep dt.
// The voltage trace starts at V.
func (ip *IzhParams) IzhDV2C(dt float32) IzhDV2C {
	v := fixpt.FromFloat(ip.V)
	return IzhDV2C{
		Izh:       ip.Izh(dt),
		VPrev:     v,
		VSlow:     v,
		Gamma:     fixpt.FromFloat(ip.Gamma),
		GammaComp: fixpt.FromFloat(1 - ip.Gamma),
		VMax:      fixpt.FromFloat(ip.VMax),
		V2Thresh:  fixpt.FromFloat(ip.V2Thresh),
	}
}

// AdaptThrParams are the host-side adaptive threshold parameters
type AdaptThrParams struct {

	// baseline threshold, mV
	Base float32 `def:"30"`

	// adaptation strength, mV
	Beta float32 `def:"1.7"`

	// adaptation time constant, msec
	Tau float32 `def:"700"`
}

func (ap *AdaptThrParams) Defaults() {
	ap.Base = 30
	ap.Beta = 1.7
	ap.Tau = 700
}

// Compile returns the fixed-point threshold for timestep dt
func (ap *AdaptThrParams) Compile(dt float32) AdaptThr {
	dc := mat32.Exp(-dt / ap.Tau)
	return AdaptThr{
		Thr:       fixpt.FromFloat(ap.Base),
		Base:      fixpt.FromFloat(ap.Base),
		Beta:      fixpt.FromFloat(ap.Beta),
		Decay:     fixpt.DecayFromFloat(dc),
		DecayComp: fixpt.DecayFromFloat(1 - dc),
	}
}

// CaAdaptParams are the host-side calcium adaptation parameters
type CaAdaptParams struct {

	// decay time constant of the calcium current, msec
	Tau float32 `def:"50"`

	// current increment per spike
	Alpha float32 `def:"0.5"`
}

func (cp *CaAdaptParams) Defaults() {
	cp.Tau = 50
	cp.Alpha = 0.5
}

// Compile returns the fixed-point additional input for timestep dt
func (cp *CaAdaptParams) Compile(dt float32) CaAdapt {
	return CaAdapt{
		Decay: fixpt.DecayFromFloat(mat32.Exp(-dt / cp.Tau)),
		Alpha: fixpt.FromFloat(cp.Alpha),
	}
}

// Params are the host-side parameters applied to every neuron of an Impl
type Params struct {

	// simulation timestep, msec
	Dt float32 `def:"1"`

	Izh IzhParams

	// static threshold, mV
	Thr float32 `def:"30"`

	Adapt AdaptThrParams

	// reversal potentials for conductance input
	ERev Chans

	Ca    CaAdaptParams
	BiExp synapse.BiExp4E4IParams
	Exp   synapse.ExpParams
}

func (pr *Params) Defaults() {
	pr.Dt = 1
	pr.Izh.Defaults()
	pr.Thr = 30
	pr.Adapt.Defaults()
	pr.ERev.Defaults()
	pr.Ca.Defaults()
	pr.BiExp.Defaults()
	pr.Exp.Defaults()
}

// Init sets the global params and every neuron of im from these params
func (pr *Params) Init(im *Impl) {
	im.Ctx.TimestepMs = fixpt.FromFloat(pr.Dt)
	for n := 0; n < im.N(); n++ {
		pr.InitNeuron(im, n)
	}
}

// InitNeuron sets the state of neuron n of im from these params
func (pr *Params) InitNeuron(im *Impl, n int) {
	switch nm := im.Models[n].(type) {
	case *IzhDV2C:
		*nm = pr.Izh.IzhDV2C(pr.Dt)
	case *Izh:
		*nm = pr.Izh.Izh(pr.Dt)
	}
	if it, ok := im.Inputs[n].(*CondInput); ok {
		*it = pr.ERev.CondInput()
	}
	switch th := im.Thresholds[n].(type) {
	case *StaticThr:
		th.Thr = fixpt.FromFloat(pr.Thr)
	case *AdaptThr:
		*th = pr.Adapt.Compile(pr.Dt)
	}
	switch sh := im.Synapses[n].(type) {
	case *synapse.BiExp4E4I:
		*sh = *pr.BiExp.Compile(pr.Dt)
	case *synapse.Exp:
		*sh = *pr.Exp.Compile(pr.Dt)
	}
	if ai, ok := im.Additionals[n].(*CaAdapt); ok {
		*ai = pr.Ca.Compile(pr.Dt)
	}
	im.Z[n] = 0
}
