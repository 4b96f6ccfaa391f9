// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poptable

import (
	"testing"

	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/synrow"
)

func buildTable(t *testing.T) (*Table, *Builder) {
	t.Helper()
	bl := NewBuilder()
	bl.AddRows(0x100, 0xfffffffe, []synrow.Row{
		synrow.New(nil, []uint32{synrow.Synapse{Weight: 3, Index: 1}.Encode()}),
		synrow.New(nil, nil),
	})
	bl.AddDirect(0x0, 0xfffffffc, []uint32{10, 11, 12, 13})
	tb, dr, _ := bl.Regions()
	pool := dtcm.NewPool(dtcm.DefaultBudget)
	direct, err := LoadDirect(dr, pool)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := Load(tb, direct, pool)
	if err != nil {
		t.Fatal(err)
	}
	return pt, bl
}

func TestAddrWord(t *testing.T) {
	aw := NewAddrWord(0x123456, 200, true)
	if aw.Address() != 0x123456 || aw.RowLength() != 200 || !aw.Single() {
		t.Errorf("pack: %#x %d %v", aw.Address(), aw.RowLength(), aw.Single())
	}
	if NewAddrWord(1, 1, false).Single() {
		t.Errorf("single flag set")
	}
}

func TestLoadSorted(t *testing.T) {
	pt, _ := buildTable(t)
	if pt.Len() != 2 || pt.KeyAt(0) != 0x0 || pt.KeyAt(1) != 0x100 || pt.MaskAt(1) != 0xfffffffe {
		t.Errorf("entries: %+v", pt.Entries)
	}
	if pt.RowMaxWords != 4 {
		t.Errorf("RowMaxWords: %d", pt.RowMaxWords)
	}
	if len(pt.Direct) != 16 {
		t.Errorf("direct matrix: %d bytes", len(pt.Direct))
	}
}

func TestResolve(t *testing.T) {
	pt, _ := buildTable(t)
	for j := uint32(0); j < 4; j++ {
		a, err := pt.Resolve(j)
		if err != nil {
			t.Fatal(err)
		}
		if !a.Direct || a.Offset != j*4 || a.Bytes != 0 {
			t.Errorf("direct %d: %+v", j, a)
		}
		rw, err := pt.DirectRow(a.Offset)
		if err != nil {
			t.Fatal(err)
		}
		if rw.Fixed()[0] != 10+j {
			t.Errorf("direct row %d: %v", j, rw)
		}
	}
	for j := uint32(0); j < 2; j++ {
		a, err := pt.Resolve(0x100 + j)
		if err != nil {
			t.Fatal(err)
		}
		if a.Direct || a.Offset != j*16 || a.Bytes != 16 {
			t.Errorf("bulk %d: %+v", j, a)
		}
	}
	as, err := pt.ResolveAll(0x101)
	if err != nil || len(as) != 1 || as[0].Offset != 16 {
		t.Errorf("ResolveAll: %+v %v", as, err)
	}
	for _, k := range []uint32{0x4, 0x102, 0xffff} {
		if _, err := pt.Resolve(k); !fault.Is(err, fault.ConfigInconsistency) {
			t.Errorf("key %#x: expected ConfigInconsistency, got %v", k, err)
		}
	}
	if _, err := pt.DirectRow(16); !fault.Is(err, fault.ConfigInconsistency) {
		t.Errorf("direct row past end: %v", err)
	}
	pt.Entries = append(pt.Entries, Entry{Key: 0x200, Mask: 0xffffffff})
	if _, err := pt.Resolve(0x200); !fault.Is(err, fault.ConfigInconsistency) {
		t.Errorf("Resolve without rows: %v", err)
	}
	if as, err := pt.ResolveAll(0x200); !fault.Is(err, fault.ConfigInconsistency) {
		t.Errorf("ResolveAll without rows: %+v %v", as, err)
	}
}

func TestLoadErrors(t *testing.T) {
	_, bl := buildTable(t)
	tb, _, _ := bl.Regions()
	if _, err := Load(tb[:20], nil, dtcm.NewPool(dtcm.DefaultBudget)); !fault.Is(err, fault.Corrupt) {
		t.Errorf("short table: %v", err)
	}
	if _, err := Load(tb, nil, dtcm.NewPool(8)); !fault.Is(err, fault.ResourceExhaustion) {
		t.Errorf("tiny pool: %v", err)
	}
	bad := Encode([]Entry{{Key: 0, Mask: 0xffffffff, Start: 0, Count: 2}}, []AddrWord{0})
	if _, err := Load(bad, nil, dtcm.NewPool(dtcm.DefaultBudget)); !fault.Is(err, fault.ConfigInconsistency) {
		t.Errorf("entry beyond addresses: %v", err)
	}
}
