// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dtcm accounts for the fixed working memory of a core. All per-core
arrays (neuron state, synapse shaping, bit fields, row buffers) are charged
against a Pool; exceeding its budget is a fatal ResourceExhaustion fault.
*/
package dtcm

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/spikecore/fault"
)

// DefaultBudget is the working memory of one core
const DefaultBudget = 64 * datasize.KB

// Alloc is a named allocation
type Alloc struct {
	What string
	Size datasize.ByteSize
}

// Pool is a fixed-budget working memory pool
type Pool struct {

	// total bytes available
	Budget datasize.ByteSize

	// bytes currently allocated
	Used datasize.ByteSize

	// high-water mark of Used
	Peak datasize.ByteSize

	// allocations in order made
	Allocs []Alloc
}

// NewPool returns a pool with the given budget
func NewPool(budget datasize.ByteSize) *Pool {
	return &Pool{Budget: budget}
}

// Free returns the bytes still available
func (pl *Pool) Free() datasize.ByteSize {
	return pl.Budget - pl.Used
}

// Charge reserves n bytes for what, or returns a ResourceExhaustion fault
func (pl *Pool) Charge(what string, n int) error {
	sz := datasize.ByteSize(n)
	if n < 0 || sz > pl.Free() {
		return fault.New(fault.ResourceExhaustion, "dtcm.Charge", "%s needs %s, only %s of %s free", what, sz.HumanReadable(), pl.Free().HumanReadable(), pl.Budget.HumanReadable())
	}
	pl.Used += sz
	if pl.Used > pl.Peak {
		pl.Peak = pl.Used
	}
	pl.Allocs = append(pl.Allocs, Alloc{What: what, Size: sz})
	return nil
}

// Release returns the most recent allocation named what to the pool
func (pl *Pool) Release(what string) {
	for i := len(pl.Allocs) - 1; i >= 0; i-- {
		if pl.Allocs[i].What == what {
			pl.Used -= pl.Allocs[i].Size
			pl.Allocs = append(pl.Allocs[:i], pl.Allocs[i+1:]...)
			return
		}
	}
}

// Words allocates a zeroed word slice of length n
func (pl *Pool) Words(what string, n int) ([]uint32, error) {
	if err := pl.Charge(what, n*4); err != nil {
		return nil, err
	}
	return make([]uint32, n), nil
}

// Bytes allocates a zeroed byte slice of length n
func (pl *Pool) Bytes(what string, n int) ([]byte, error) {
	if err := pl.Charge(what, n); err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}

// SizeReport returns a string reporting the size of each allocation
func (pl *Pool) SizeReport() string {
	var b strings.Builder
	for _, a := range pl.Allocs {
		fmt.Fprintf(&b, "%14s:\t %s\n", a.What, a.Size.HumanReadable())
	}
	fmt.Fprintf(&b, "\n%14s:\t %s of %s (peak %s)\n", "used", pl.Used.HumanReadable(), pl.Budget.HumanReadable(), pl.Peak.HumanReadable())
	return b.String()
}
