// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poptable

import (
	"sort"

	"github.com/emer/spikecore/region"
)

// Encode writes a population table region. Entries are sorted by key.
func Encode(entries []Entry, addrs []AddrWord) []byte {
	es := make([]Entry, len(entries))
	copy(es, entries)
	sort.Slice(es, func(i, j int) bool { return es[i].Key < es[j].Key })
	w := region.NewWriter(8 + len(es)*EntryBytes + len(addrs)*region.WordBytes)
	w.PutUint32(uint32(len(es)))
	w.PutUint32(uint32(len(addrs)))
	for _, e := range es {
		w.PutUint32(e.Key)
		w.PutUint32(e.Mask)
		w.PutUint16(e.Start)
		w.PutUint16(e.Count)
	}
	for _, aw := range addrs {
		w.PutUint32(uint32(aw))
	}
	return w.Bytes()
}

// EncodeDirect writes a direct matrix region holding words
func EncodeDirect(words []uint32) []byte {
	w := region.NewWriter(4 + len(words)*region.WordBytes)
	w.PutUint32(uint32(len(words) * region.WordBytes))
	w.PutWords(words)
	return w.Bytes()
}
