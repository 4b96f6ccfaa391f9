// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
	"github.com/goki/mat32"
)

// BiExp is one bi-exponential channel: the difference of a slow and a fast
// exponential response to the same input, scaled so the peak is 1.
type BiExp struct {

	// response of the a (typically slow) exponential
	AResp fixpt.Accum

	// gain applied to AResp
	A fixpt.Accum

	// per-step decay of AResp
	ADecay fixpt.Decay

	// response of the b (typically fast) exponential
	BResp fixpt.Accum

	// gain applied to BResp, normally -A
	B fixpt.Accum

	// per-step decay of BResp
	BDecay fixpt.Decay
}

// BiExpBytes is the wire size of a BiExp
const BiExpBytes = 6 * region.WordBytes

// Add adds in to both responses
func (be *BiExp) Add(in fixpt.Accum) {
	be.AResp = fixpt.Add(be.AResp, in)
	be.BResp = fixpt.Add(be.BResp, in)
}

// Shape decays both responses by one step
func (be *BiExp) Shape() {
	be.AResp = fixpt.DecayAccum(be.AResp, be.ADecay)
	be.BResp = fixpt.DecayAccum(be.BResp, be.BDecay)
}

// Current returns A*AResp + B*BResp, clamped to fixpt.ChannelMax when the
// sum overflows or goes negative.
func (be *BiExp) Current() fixpt.Accum {
	cur, _ := fixpt.MulAcc(be.A, be.AResp, be.B, be.BResp)
	return cur
}

func (be *BiExp) decode(r *region.Reader) {
	be.AResp = r.Accum()
	be.A = r.Accum()
	be.ADecay = r.Decay()
	be.BResp = r.Accum()
	be.B = r.Accum()
	be.BDecay = r.Decay()
}

func (be *BiExp) encode(w *region.Writer) {
	w.PutAccum(be.AResp)
	w.PutAccum(be.A)
	w.PutDecay(be.ADecay)
	w.PutAccum(be.BResp)
	w.PutAccum(be.B)
	w.PutDecay(be.BDecay)
}

// BiExp4E4I is the per-neuron record of four excitatory then four
// inhibitory bi-exponential channels.
type BiExp4E4I struct {
	Chans [8]BiExp
}

func (sp *BiExp4E4I) Size() int   { return len(sp.Chans) * BiExpBytes }
func (sp *BiExp4E4I) NumExc() int { return 4 }
func (sp *BiExp4E4I) NumInh() int { return 4 }

func (sp *BiExp4E4I) Decode(r *region.Reader) {
	for i := range sp.Chans {
		sp.Chans[i].decode(r)
	}
}

func (sp *BiExp4E4I) Encode(w *region.Writer) {
	for i := range sp.Chans {
		sp.Chans[i].encode(w)
	}
}

func (sp *BiExp4E4I) Add(ch Channel, in fixpt.Accum) {
	if ch < 0 || int(ch) >= len(sp.Chans) {
		return
	}
	sp.Chans[ch].Add(in)
}

func (sp *BiExp4E4I) Shape() {
	for i := range sp.Chans {
		sp.Chans[i].Shape()
	}
}

func (sp *BiExp4E4I) Excitatory(dst []fixpt.Accum) []fixpt.Accum {
	for i := Exc; i <= Exc4; i++ {
		dst = append(dst, sp.Chans[i].Current())
	}
	return dst
}

func (sp *BiExp4E4I) Inhibitory(dst []fixpt.Accum) []fixpt.Accum {
	for i := Inh; i <= Inh4; i++ {
		dst = append(dst, sp.Chans[i].Current())
	}
	return dst
}

// BiExpParams are the host-side time constants of one bi-exponential channel
type BiExpParams struct {

	// time constant of the a response, in msec
	ATau float32 `def:"50"`

	// time constant of the b response, in msec
	BTau float32 `def:"1"`

	// initial a response
	AResp float32 `def:"0"`

	// initial b response
	BResp float32 `def:"0"`
}

// Defaults sets the excitatory default time constants
func (bp *BiExpParams) Defaults() {
	bp.ATau = 50
	bp.BTau = 1
}

// InhDefaults sets the inhibitory default time constants
func (bp *BiExpParams) InhDefaults() {
	bp.ATau = 5
	bp.BTau = 10
}

// RiseTime returns the time of peak response for gains A = 1, B = -1
func (bp *BiExpParams) RiseTime() float32 {
	return mat32.Log(bp.BTau/bp.ATau) * (bp.ATau * bp.BTau) / (bp.BTau - bp.ATau)
}

// ScalarFactor returns the gain that normalises the peak response to 1.
// Equal time constants have no peak and return 1.
func (bp *BiExpParams) ScalarFactor() float32 {
	if bp.ATau == bp.BTau {
		return 1
	}
	tr := bp.RiseTime()
	return 1 / (mat32.Exp(-tr/bp.ATau) - mat32.Exp(-tr/bp.BTau))
}

// Compile returns the fixed-point channel for timestep dt in msec
func (bp *BiExpParams) Compile(dt float32) BiExp {
	sf := bp.ScalarFactor()
	return BiExp{
		AResp:  fixpt.FromFloat(bp.AResp),
		A:      fixpt.FromFloat(sf),
		ADecay: fixpt.DecayFromFloat(mat32.Exp(-dt / bp.ATau)),
		BResp:  fixpt.FromFloat(bp.BResp),
		B:      fixpt.FromFloat(-sf),
		BDecay: fixpt.DecayFromFloat(mat32.Exp(-dt / bp.BTau)),
	}
}

// BiExp4E4IParams are the host-side parameters of all eight channels
type BiExp4E4IParams struct {
	Exc [4]BiExpParams
	Inh [4]BiExpParams
}

func (sp *BiExp4E4IParams) Defaults() {
	for i := range sp.Exc {
		sp.Exc[i].Defaults()
	}
	for i := range sp.Inh {
		sp.Inh[i].InhDefaults()
	}
}

// Compile returns the fixed-point record for timestep dt in msec
func (sp *BiExp4E4IParams) Compile(dt float32) *BiExp4E4I {
	be := &BiExp4E4I{}
	for i := range sp.Exc {
		be.Chans[int(Exc)+i] = sp.Exc[i].Compile(dt)
	}
	for i := range sp.Inh {
		be.Chans[int(Inh)+i] = sp.Inh[i].Compile(dt)
	}
	return be
}
