// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
	"github.com/emer/spikecore/synapse"
)

func newTestImpl(t *testing.T, cfg Config, n int) (*Impl, *Params) {
	t.Helper()
	im, err := NewImpl(cfg, n, dtcm.NewPool(dtcm.DefaultBudget))
	if err != nil {
		t.Fatal(err)
	}
	pr := &Params{}
	pr.Defaults()
	pr.Init(im)
	return im, pr
}

func allConfigs() []Config {
	var cfgs []Config
	for m := ModelKinds(0); m < ModelKindsN; m++ {
		for i := InputKinds(0); i < InputKindsN; i++ {
			for th := ThresholdKinds(0); th < ThresholdKindsN; th++ {
				for a := AdditionalKinds(0); a < AdditionalKindsN; a++ {
					for s := synapse.Kinds(0); s < synapse.KindsN; s++ {
						cfg := Config{}
						cfg.Defaults()
						cfg.Model, cfg.Input, cfg.Threshold, cfg.Additional, cfg.Synapse = m, i, th, a, s
						cfgs = append(cfgs, cfg)
					}
				}
			}
		}
	}
	return cfgs
}

func TestParamsRoundTrip(t *testing.T) {
	for _, cfg := range allConfigs() {
		im, _ := newTestImpl(t, cfg, 3)
		for n := 0; n < 3; n++ {
			im.AddInput(synapse.Exc, n, fixpt.FromFloat(float32(n)+0.5))
			im.DoTimestepUpdate(n, fixpt.FromInt(int32(n*4)), nil)
		}
		data := im.StoreParams()
		if len(data) != im.ParamsSize() {
			t.Errorf("%+v: stored %d bytes, ParamsSize %d", cfg, len(data), im.ParamsSize())
		}
		im2, _ := newTestImpl(t, cfg, 3)
		if err := im2.LoadParams(data); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(im.Models, im2.Models) || !reflect.DeepEqual(im.Synapses, im2.Synapses) ||
			!reflect.DeepEqual(im.Thresholds, im2.Thresholds) || !reflect.DeepEqual(im.Inputs, im2.Inputs) ||
			!reflect.DeepEqual(im.Additionals, im2.Additionals) || im.Ctx.GlobalParams != im2.Ctx.GlobalParams {
			t.Errorf("%+v: round trip changed state", cfg)
		}
		if !bytes.Equal(data, im2.StoreParams()) {
			t.Errorf("%+v: second store differs", cfg)
		}
	}
}

func TestParamsOffsets(t *testing.T) {
	cfg := Config{}
	cfg.Defaults()
	im, _ := newTestImpl(t, cfg, 3)
	ws := region.Words(im.StoreParams())
	// global: 1 word, neurons: 3 * 17 words, inputs: none, thresholds: 3 words,
	// synapses: 3 * 48 words, additional inputs: none
	if len(ws) != 1+51+3+144 {
		t.Fatalf("region length: %d words", len(ws))
	}
	if fixpt.Accum(ws[0]) != fixpt.FromInt(1) {
		t.Errorf("timestep word: %v", ws[0])
	}
	if fixpt.Accum(ws[1+4]) != fixpt.FromInt(-70) {
		t.Errorf("neuron 0 V at word 5: %v", fixpt.Accum(ws[5]).Float())
	}
	if fixpt.Accum(ws[1+17+4]) != fixpt.FromInt(-70) {
		t.Errorf("neuron 1 V at word 22: %v", fixpt.Accum(ws[22]).Float())
	}
	if fixpt.Accum(ws[52]) != fixpt.FromInt(30) || fixpt.Accum(ws[54]) != fixpt.FromInt(30) {
		t.Errorf("threshold block should start at word 52")
	}
	if fixpt.Decay(ws[55+2]) != im.Synapses[0].(*synapse.BiExp4E4I).Chans[0].ADecay {
		t.Errorf("synapse block should start at word 55")
	}

	short := im.StoreParams()[:100]
	if err := im.LoadParams(short); !fault.Is(err, fault.Corrupt) {
		t.Errorf("short region: expected Corrupt, got %v", err)
	}
}

func TestQuiescent(t *testing.T) {
	cfg := Config{}
	cfg.Defaults()
	im, _ := newTestImpl(t, cfg, 1)
	var rec Recorded
	for i := 0; i < 2000; i++ {
		if im.DoTimestepUpdate(0, 0, &rec) {
			t.Fatalf("quiescent neuron spiked at step %d, V: %v", i, rec.V.Float())
		}
		v := im.Voltage(0).Float()
		if v < -71 || v > -69 {
			t.Fatalf("quiescent neuron drifted at step %d: %v", i, v)
		}
		if rec.GsynExc != 0 || rec.GsynInh != 0 {
			t.Fatalf("input appeared from nowhere: %v %v", rec.GsynExc, rec.GsynInh)
		}
	}
}

func TestV2Gate(t *testing.T) {
	nm := &IzhDV2C{V2Thresh: 0}
	nm.V = fixpt.FromInt(10)
	if !nm.V2Gate(5) || nm.V2Count != 5 {
		t.Fatalf("trigger: count %d", nm.V2Count)
	}
	nm.V = fixpt.FromInt(-10)
	cors := []int32{4, 3, 2, 1, 0, 0, 0}
	for i, c := range cors {
		on := nm.V2Gate(5)
		if nm.V2Count != c || on != (c > 0) {
			t.Errorf("step %d: count %d on %v, want count %d", i, nm.V2Count, on, c)
		}
	}
	nm.V = fixpt.FromInt(10)
	nm.V2Gate(5)
	nm.V = fixpt.FromInt(-10)
	nm.V2Gate(5)
	nm.V2Gate(5)
	if nm.V2Count != 3 {
		t.Errorf("countdown after retrigger: %d", nm.V2Count)
	}
	nm.V = fixpt.FromInt(10)
	if !nm.V2Gate(5) || nm.V2Count != 5 {
		t.Errorf("retrigger mid countdown should reset to hold: %d", nm.V2Count)
	}
}

func TestV2Injection(t *testing.T) {
	cfg := Config{}
	cfg.Defaults()
	cfg.V2Hold = 3
	im, _ := newTestImpl(t, cfg, 1)
	nm := im.Models[0].(*IzhDV2C)
	nm.V2Thresh = fixpt.FromInt(-80)
	im.AddInput(synapse.Exc2, 0, fixpt.FromInt(2))
	for i := 0; i < 5; i++ {
		im.DoTimestepUpdate(0, 0, nil)
		if nm.V2Count != 3 {
			t.Errorf("step %d: count %d", i, nm.V2Count)
		}
		if i > 0 && nm.V2 <= 0 {
			t.Errorf("step %d: second compartment current should be positive: %v", i, nm.V2.Float())
		}
	}
}

func TestSpikeReset(t *testing.T) {
	cfg := Config{}
	cfg.Defaults()
	im, pr := newTestImpl(t, cfg, 1)
	nm := im.Models[0].(*IzhDV2C)
	spiked := false
	for i := 0; i < 100; i++ {
		if im.DoTimestepUpdate(0, fixpt.FromInt(20), nil) {
			spiked = true
			break
		}
	}
	if !spiked {
		t.Fatalf("driven neuron never spiked")
	}
	if nm.V != fixpt.FromFloat(pr.Izh.C) {
		t.Errorf("reset V: %v", nm.V.Float())
	}
	if nm.ThisH != fixpt.Mul(fixpt.FromInt(1), TQOffset) {
		t.Errorf("post-spike step: %v", nm.ThisH.Float())
	}
	if im.Z[0] != fixpt.One {
		t.Errorf("spike variable not set")
	}
	im.DoTimestepUpdate(0, 0, nil)
	if nm.ThisH != fixpt.FromInt(1) {
		t.Errorf("post-spike step should last one step: %v", nm.ThisH.Float())
	}
}

func countSpikes(t *testing.T, cfg Config, ca float32, steps int) int {
	im, pr := newTestImpl(t, cfg, 1)
	pr.Ca.Alpha = ca
	pr.Init(im)
	ns := 0
	for i := 0; i < steps; i++ {
		if im.DoTimestepUpdate(0, fixpt.FromInt(10), nil) {
			ns++
		}
	}
	return ns
}

func TestCaAdapt(t *testing.T) {
	cfg := Config{}
	cfg.Defaults()
	none := countSpikes(t, cfg, 5, 1000)
	cfg.Additional = AddCaAdaptive
	ca := countSpikes(t, cfg, 5, 1000)
	if none == 0 || ca >= none {
		t.Errorf("calcium adaptation should reduce firing: none: %d ca: %d", none, ca)
	}
}

func TestAdaptThr(t *testing.T) {
	ap := AdaptThrParams{}
	ap.Defaults()
	th := ap.Compile(1)
	th.Update(0)
	if th.Value() != fixpt.FromInt(30) {
		t.Errorf("no spikes should stay at baseline: %v", th.Value().Float())
	}
	th.Update(fixpt.One)
	raised := th.Value()
	if raised <= fixpt.FromInt(30) {
		t.Errorf("spike should raise threshold: %v", raised.Float())
	}
	th.Update(0)
	if th.Value() > raised {
		t.Errorf("threshold should decay after spike")
	}
	if th.Above(th.Value()) {
		t.Errorf("adaptive threshold fires strictly above")
	}
}

func TestCondInput(t *testing.T) {
	ch := Chans{}
	ch.Defaults()
	ci := ch.CondInput()
	it := &ci
	if it.ERevE != 0 || it.ERevI != fixpt.FromInt(-70) {
		t.Errorf("reversal potentials: %v %v", it.ERevE.Float(), it.ERevI.Float())
	}
	exc := []fixpt.Accum{fixpt.FromFloat(0.5)}
	inh := []fixpt.Accum{fixpt.FromFloat(0.25)}
	it.Convert(exc, inh, fixpt.FromInt(-50))
	if exc[0] != fixpt.FromInt(25) || inh[0] != fixpt.FromInt(5) {
		t.Errorf("conductance conversion: %v %v", exc[0].Float(), inh[0].Float())
	}
}

func TestResourceExhaustion(t *testing.T) {
	cfg := Config{}
	cfg.Defaults()
	_, err := NewImpl(cfg, 1000, dtcm.NewPool(16*datasize.KB))
	if !fault.Is(err, fault.ResourceExhaustion) {
		t.Errorf("expected ResourceExhaustion, got %v", err)
	}
}

func TestKinds(t *testing.T) {
	var mk ModelKinds
	if err := mk.FromString("ModelIzh"); err != nil || mk != ModelIzh {
		t.Errorf("FromString: %v %v", mk, err)
	}
	if AddCaAdaptive.String() != "AddCaAdaptive" || ThresholdAdaptive.String() != "ThresholdAdaptive" || InputConductance.String() != "InputConductance" {
		t.Errorf("String")
	}
}
