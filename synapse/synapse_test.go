// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
)

func TestScalarFactor(t *testing.T) {
	bp := BiExpParams{}
	bp.Defaults()
	if sf := bp.ScalarFactor(); math32.Abs(sf-1.1051) > 1.0e-3 {
		t.Errorf("exc scalar factor: %v", sf)
	}
	bp.InhDefaults()
	if sf := bp.ScalarFactor(); math32.Abs(sf+4) > 1.0e-3 {
		t.Errorf("inh scalar factor: %v", sf)
	}
}

func TestBiExpPeak(t *testing.T) {
	sp := BiExp4E4IParams{}
	sp.Defaults()
	be := sp.Compile(1)
	be.Add(Exc, fixpt.FromInt(1))
	if cur := be.Chans[Exc].Current(); cur != 0 {
		t.Errorf("current at input time should be 0: %v", cur.Float())
	}
	var peak, prev fixpt.Accum
	for i := 0; i < 200; i++ {
		be.Shape()
		cur := be.Chans[Exc].Current()
		peak = fixpt.Max(peak, cur)
		if i > 10 && cur > prev {
			t.Errorf("current should decline after the peak: step %d: %v > %v", i, cur.Float(), prev.Float())
		}
		prev = cur
	}
	if dif := math32.Abs(peak.Float() - 1); dif > 0.01 {
		t.Errorf("normalised peak: %v", peak.Float())
	}
	exc := be.Excitatory(nil)
	inh := be.Inhibitory(nil)
	if len(exc) != 4 || len(inh) != 4 {
		t.Errorf("channel counts: %d %d", len(exc), len(inh))
	}
	for i := 1; i < 4; i++ {
		if exc[i] != 0 || inh[i] != 0 {
			t.Errorf("input leaked into channel %d", i)
		}
	}
}

func TestBiExpOverflow(t *testing.T) {
	be := BiExp{A: fixpt.FromInt(2), AResp: fixpt.FromInt(40000)}
	if cur := be.Current(); cur != fixpt.ChannelMax {
		t.Errorf("overflow should clamp: %v", cur.Float())
	}
	be = BiExp{A: fixpt.FromInt(-1), AResp: fixpt.FromInt(1)}
	if cur := be.Current(); cur != fixpt.ChannelMax {
		t.Errorf("negative sum should clamp: %v", cur.Float())
	}
	sp := &BiExp4E4I{}
	sp.Add(Channel(12), fixpt.FromInt(1))
	sp.Add(Channel(-1), fixpt.FromInt(1))
	for i := range sp.Chans {
		if sp.Chans[i].AResp != 0 {
			t.Errorf("unknown channel changed channel %d", i)
		}
	}
}

func TestCodec(t *testing.T) {
	for k := Kinds(0); k < KindsN; k++ {
		var sh Shaping
		switch k {
		case BiExpKind:
			sp := BiExp4E4IParams{}
			sp.Defaults()
			sh = sp.Compile(1)
		case Exponential:
			ep := ExpParams{}
			ep.Defaults()
			sh = ep.Compile(1)
		}
		sh.Add(Exc, fixpt.FromFloat(0.75))
		w := region.NewWriter(sh.Size())
		sh.Encode(w)
		if w.Len() != sh.Size() {
			t.Errorf("%v: encoded %d bytes, Size %d", k, w.Len(), sh.Size())
		}
		rd := New(k)
		r := region.NewReader(w.Bytes())
		rd.Decode(r)
		if r.Err() != nil {
			t.Fatal(r.Err())
		}
		if got, want := rd.Excitatory(nil), sh.Excitatory(nil); got[0] != want[0] {
			t.Errorf("%v: decoded current %v want %v", k, got[0].Float(), want[0].Float())
		}
	}
	if NumTypes(BiExpKind) != 8 || NumTypes(Exponential) != 2 {
		t.Errorf("NumTypes")
	}
}

func TestKindNames(t *testing.T) {
	if BiExpKind.String() != "BiExp4E4I" || Exponential.String() != "Exponential" {
		t.Errorf("names: %v %v", BiExpKind, Exponential)
	}
	var k Kinds
	if err := k.FromString("BiExp4E4I"); err != nil || k != BiExpKind {
		t.Errorf("FromString: %v %v", k, err)
	}
	if _, ok := New(BiExpKind).(*BiExp4E4I); !ok {
		t.Errorf("New(BiExpKind): %T", New(BiExpKind))
	}
	if err := k.FromString("BiExpKind"); err == nil {
		t.Errorf("FromString accepted the constant name")
	}
}

func TestExpDecay(t *testing.T) {
	ep := ExpParams{}
	ep.Defaults()
	ex := ep.Compile(1)
	ex.Add(Inh, fixpt.FromInt(1))
	if ex.Inh.Value != 0 {
		t.Errorf("channel 4 is not a channel of Exp")
	}
	ex.Add(1, fixpt.FromInt(1))
	prev := ex.Inh.Value
	if prev <= 0 || prev > fixpt.FromInt(1) {
		t.Errorf("init scaling: %v", prev.Float())
	}
	for i := 0; i < 50; i++ {
		ex.Shape()
		if ex.Inh.Value > prev {
			t.Errorf("exp channel grew")
		}
		prev = ex.Inh.Value
	}
}
