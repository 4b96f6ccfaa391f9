// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixpt

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-4)

func TestFromFloat(t *testing.T) {
	vals := []float32{0.04, 1.85, -65, 140, 0.5, -0.25, 30}
	raws := []int32{1311, 60621, -65 * One, 140 * One, One / 2, -One / 4, 30 * One}
	for i, v := range vals {
		a := FromFloat(v)
		if a.Raw() != raws[i] {
			t.Errorf("FromFloat(%v): got raw %v, want %v\n", v, a.Raw(), raws[i])
		}
		if dif := math32.Abs(a.Float() - v); dif > difTol {
			t.Errorf("Float round trip: %v -> %v, dif: %v\n", v, a.Float(), dif)
		}
	}
	if FromFloat(1e6) != MaxAccum {
		t.Errorf("FromFloat did not saturate high")
	}
	if FromFloat(-1e6) != MinAccum {
		t.Errorf("FromFloat did not saturate low")
	}
}

func TestArith(t *testing.T) {
	if got := Mul(FromInt(2), FromInt(3)); got != FromInt(6) {
		t.Errorf("Mul 2*3: got %v", got.Float())
	}
	if got := Mul(FromInt(-2), FromFloat(0.5)); got != FromInt(-1) {
		t.Errorf("Mul -2*0.5: got %v", got.Float())
	}
	if got := Mul(FromInt(30000), FromInt(30000)); got != MaxAccum {
		t.Errorf("Mul did not saturate: %v", got.Float())
	}
	if got := Add(MaxAccum, FromInt(1)); got != MaxAccum {
		t.Errorf("Add did not saturate: %v", got.Float())
	}
	if got := Sub(MinAccum, FromInt(1)); got != MinAccum {
		t.Errorf("Sub did not saturate: %v", got.Float())
	}
	if got := Half(Accum(-3)); got != Accum(-2) {
		t.Errorf("Half is not an arithmetic shift: %v", got)
	}
	if got := Neg(MinAccum); got != MaxAccum {
		t.Errorf("Neg(MinAccum): %v", got)
	}
}

func TestDecayMonotone(t *testing.T) {
	xs := []Accum{MinAccum, FromInt(-100), Accum(-1), 0, Accum(1), FromFloat(0.3), FromInt(1000), MaxAccum}
	ds := []Decay{0, 1, DecayFromFloat(0.1), DecayFromFloat(0.5), DecayFromFloat(0.98), MaxDecay}
	abs := func(a Accum) int64 { return int64(math.Abs(float64(a))) }
	for _, x := range xs {
		for _, d := range ds {
			y := DecayAccum(x, d)
			if abs(y) > abs(x) {
				t.Errorf("decay grew magnitude: x: %v d: %v y: %v", x, d, y)
			}
		}
	}
	if got := DecayAccum(FromInt(1), DecayFromFloat(0.5)); got != FromFloat(0.5) {
		t.Errorf("decay 1 * 0.5: got %v", got.Float())
	}
	if DecayFromFloat(1) != MaxDecay {
		t.Errorf("DecayFromFloat(1) should clamp to MaxDecay")
	}
}

func TestMulAccSaturation(t *testing.T) {
	big := FromInt(30000)
	vals := [][4]Accum{
		{big, big, big, big},
		{FromInt(1), FromInt(-5), 0, 0},
		{MaxAccum, MaxAccum, MaxAccum, MaxAccum},
		{MinAccum, MaxAccum, 0, 0},
	}
	for i, v := range vals {
		got, over := MulAcc(v[0], v[1], v[2], v[3])
		if !over || got != ChannelMax {
			t.Errorf("idx %d: expected overflow clamp, got %v over: %v", i, got.Float(), over)
		}
	}
	got, over := MulAcc(FromInt(2), FromInt(3), FromInt(-1), FromInt(4))
	if over || got != FromInt(2) {
		t.Errorf("MulAcc 2*3 - 1*4: got %v over: %v", got.Float(), over)
	}
	if ChannelMax.Float() != 65535 {
		t.Errorf("ChannelMax: %v", ChannelMax.Float())
	}
}

func TestSTDPMul(t *testing.T) {
	if got := STDPMul(STDPOne, STDPOne); got != STDPOne {
		t.Errorf("1*1: got %v", got)
	}
	if got := STDPMul(0x1ffff, STDPOne); got != -1 {
		t.Errorf("only low 16 bits should be used: got %v", got)
	}
	if got := STDPMul(-4096, 1024); got != -2048 {
		t.Errorf("-2*0.5: got %v", got)
	}
	if got := WeightToInput(3, 4); got != Accum(48) {
		t.Errorf("WeightToInput: got %v", got)
	}
}
