// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitfield

import "github.com/emer/spikecore/poptable"

// Filter answers whether the rows of a source neuron need fetching, using
// the bit fields of a pruning pass. Spikes with no field are passed.
type Filter struct {
	Table *poptable.Table

	fields map[uint32]Bits
}

// NewFilter returns a Filter over out, using pt to find the entry of a spike
func NewFilter(out *Output, pt *poptable.Table) *Filter {
	ft := &Filter{Table: pt, fields: make(map[uint32]Bits, len(out.Fields))}
	for _, f := range out.Fields {
		ft.fields[f.Key] = f.Bits
	}
	return ft
}

// Has returns false only if spike is known to reach empty rows
func (ft *Filter) Has(spike uint32) bool {
	if ft == nil {
		return true
	}
	i, ok := ft.Table.Find(spike)
	if !ok {
		return true
	}
	bf, ok := ft.fields[ft.Table.KeyAt(i)]
	if !ok {
		return true
	}
	j := int(spike &^ ft.Table.MaskAt(i))
	if j >= len(bf)*32 {
		return true
	}
	return bf.Test(j)
}
