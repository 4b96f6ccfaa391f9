// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import (
	"testing"

	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/fixpt"
)

func TestPadding(t *testing.T) {
	ns := []int{0, 1, 3, 4, 5, 68, 70, 192}
	cor := []int{0, 1, 1, 1, 2, 17, 18, 48}
	for i, n := range ns {
		if got := PaddedWords(n); got != cor[i] {
			t.Errorf("PaddedWords(%d): got %d want %d", n, got, cor[i])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	w := NewWriter(64)
	w.PutUint32(0xdeadbeef)
	w.PutAccum(fixpt.FromFloat(-65))
	w.PutUint16(7)
	w.Align()
	w.PutDecay(fixpt.DecayFromFloat(0.5))
	w.PutWords([]uint32{1, 2, 3})
	if w.Len() != 28 {
		t.Fatalf("writer length: %d", w.Len())
	}

	r := NewReader(w.Bytes())
	if v := r.Uint32(); v != 0xdeadbeef {
		t.Errorf("Uint32: %#x", v)
	}
	if v := r.Accum(); v != fixpt.FromFloat(-65) {
		t.Errorf("Accum: %v", v.Float())
	}
	if v := r.Uint16(); v != 7 {
		t.Errorf("Uint16: %v", v)
	}
	r.Align()
	if r.Pos() != 12 {
		t.Errorf("Align: pos %d", r.Pos())
	}
	if v := r.Decay(); v != fixpt.DecayFromFloat(0.5) {
		t.Errorf("Decay: %v", v)
	}
	ws := r.Words(3)
	if len(ws) != 3 || ws[2] != 3 {
		t.Errorf("Words: %v", ws)
	}
	if r.Err() != nil || r.Len() != 0 {
		t.Errorf("unexpected state: err %v len %d", r.Err(), r.Len())
	}
}

func TestShortRead(t *testing.T) {
	r := NewReader([]byte{1, 0, 0, 0, 2, 0})
	if v := r.Uint32(); v != 1 {
		t.Errorf("first word: %v", v)
	}
	if v := r.Uint32(); v != 0 {
		t.Errorf("short read should return zero: %v", v)
	}
	if !fault.Is(r.Err(), fault.Corrupt) {
		t.Errorf("expected Corrupt fault, got %v", r.Err())
	}
	if v := r.Uint16(); v != 0 {
		t.Errorf("reads after error should return zero: %v", v)
	}
}
