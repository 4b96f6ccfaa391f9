// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plasticity

import (
	"testing"

	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
)

func TestFinal(t *testing.T) {
	wr := &Region{MinWeight: 100, MaxWeight: 3000, Scale: 2048}
	dvs := []fixpt.Accum{0, fixpt.FromInt(1), fixpt.FromInt(-1), fixpt.FromFloat(0.5), fixpt.FromInt(15)}
	// dv >> 4 is 11 fractional bits, times scale 1.0 in STDP fixed point
	cors := []uint16{500, 2548, 100, 1524, 3000}
	for i, dv := range dvs {
		ws := Initial(500, wr).ApplyAccum(dv, fixpt.FromInt(3))
		if got := ws.Final(); got != cors[i] {
			t.Errorf("dv %v: got %d want %d", dv.Float(), got, cors[i])
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	wr := &Region{MinWeight: 10, MaxWeight: 200, Scale: 300}
	for w := 0; w < 400; w += 7 {
		for dv := int32(-40000); dv <= 40000; dv += 4999 {
			f := Initial(uint16(w), wr).Apply(dv, 0).Final()
			if int32(f) < wr.MinWeight || int32(f) > wr.MaxWeight {
				t.Fatalf("w %d dv %d: final %d out of bounds", w, dv, f)
			}
			if again := Initial(f, wr).Final(); again != f {
				t.Errorf("finalize not idempotent: %d -> %d", f, again)
			}
		}
	}
}

func TestApplyAccumulates(t *testing.T) {
	wr := &Region{MinWeight: 0, MaxWeight: 60000, Scale: 2048}
	ws := Initial(1000, wr)
	for i := 0; i < 4; i++ {
		ws = ws.Apply(fixpt.One/4, 1)
	}
	if ws.DvSlow != fixpt.One || ws.NMDA != 4 {
		t.Errorf("accumulators: %d %d", ws.DvSlow, ws.NMDA)
	}
	if ws.Final() != 1000+2048 {
		t.Errorf("final: %d", ws.Final())
	}
}

func TestRegions(t *testing.T) {
	dp := DvNMDAParams{}
	dp.Defaults()
	wr := dp.Region(1000)
	if wr.MinWeight != 0 || wr.MaxWeight != 1000 || wr.Scale != 100 || wr.Causal != 1 || wr.BoostThresh != 1000<<15 {
		t.Errorf("region: %+v", wr)
	}
	rs := []Region{wr, {MinWeight: -5, MaxWeight: 7, Scale: 1, Boost: 2, BoostThresh: 3, Causal: 0}}
	got, err := LoadRegions(region.NewReader(StoreRegions(rs)), 2)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != rs[0] || got[1] != rs[1] {
		t.Errorf("round trip: %+v", got)
	}
	if _, err := LoadRegions(region.NewReader(StoreRegions(rs)), 3); err == nil {
		t.Errorf("expected error for short region")
	}
}
