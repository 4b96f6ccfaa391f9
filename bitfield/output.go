// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitfield

import (
	"fmt"
	"strings"

	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/region"
	"github.com/pkg/errors"
)

// Field is the bit field of one population table entry
type Field struct {

	// routing key of the entry
	Key uint32

	// one bit per source neuron, set if its row has targets
	Bits Bits
}

// Output is the result of a pruning pass, one Field per table entry in
// table order.
type Output struct {
	Fields []Field
}

// NumWords returns the size of the output region in words
func (out *Output) NumWords() int {
	n := 1
	for i := range out.Fields {
		n += 2 + len(out.Fields[i].Bits)
	}
	return n
}

// Words returns the output region as words: the number of fields, then for
// each field its key, word count and bit words.
func (out *Output) Words() []uint32 {
	ws := make([]uint32, 0, out.NumWords())
	ws = append(ws, uint32(len(out.Fields)))
	for i := range out.Fields {
		f := &out.Fields[i]
		ws = append(ws, f.Key, uint32(len(f.Bits)))
		ws = append(ws, f.Bits...)
	}
	return ws
}

// Encode returns the output region bytes
func (out *Output) Encode() []byte {
	return region.FromWords(out.Words())
}

// DecodeOutput reads an output region
func DecodeOutput(data []byte) (*Output, error) {
	r := region.NewReader(data)
	n := int(r.Uint32())
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "bitfield.DecodeOutput")
	}
	out := &Output{}
	for i := 0; i < n; i++ {
		key := r.Uint32()
		nw := int(r.Uint32())
		ws := r.Words(nw)
		if err := r.Err(); err != nil {
			return nil, errors.Wrapf(err, "bitfield.DecodeOutput: field %d of %d", i, n)
		}
		out.Fields = append(out.Fields, Field{Key: key, Bits: Bits(ws)})
	}
	if r.Len() != 0 {
		return nil, fault.New(fault.Corrupt, "bitfield.DecodeOutput", "%d trailing bytes after %d fields", r.Len(), n)
	}
	return out, nil
}

// String returns a per-field summary
func (out *Output) String() string {
	var b strings.Builder
	for _, f := range out.Fields {
		fmt.Fprintf(&b, "key: %#08x\t words: %d\t set: %d\n", f.Key, len(f.Bits), f.Bits.Count())
	}
	return b.String()
}
