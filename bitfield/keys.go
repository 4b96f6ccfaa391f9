// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitfield

import (
	"log"

	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/region"
	"github.com/goki/kigen/ordmap"
	"github.com/pkg/errors"
)

// Debug turns on per-entry logging of the pruning pass
var Debug = false

// KeyAtoms maps the routing key of a source population to its number of
// neurons (atoms), in region order.
type KeyAtoms struct {
	*ordmap.Map[uint32, uint32]
}

// NewKeyAtoms returns an empty map
func NewKeyAtoms() *KeyAtoms {
	return &KeyAtoms{ordmap.New[uint32, uint32]()}
}

// Add records the atom count of key. A key that is already present keeps
// its first count.
func (ka *KeyAtoms) Add(key, atoms uint32) {
	if _, has := ka.ValByKey(key); has {
		if Debug {
			log.Printf("bitfield: duplicate key %#08x ignored\n", key)
		}
		return
	}
	ka.Map.Add(key, atoms)
}

// Atoms returns the atom count of key. A missing key is a fatal
// ConfigInconsistency fault.
func (ka *KeyAtoms) Atoms(key uint32) (uint32, error) {
	n, has := ka.ValByKey(key)
	if !has {
		return 0, fault.New(fault.ConfigInconsistency, "bitfield.Atoms", "no atom count for key %#08x", key)
	}
	return n, nil
}

// LoadKeyAtoms reads a key to atoms region: a count followed by that many
// (key, atoms) word pairs. The pairs are charged to pool.
func LoadKeyAtoms(data []byte, pool *dtcm.Pool) (*KeyAtoms, error) {
	r := region.NewReader(data)
	n := int(r.Uint32())
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "bitfield.LoadKeyAtoms")
	}
	if err := pool.Charge("key atoms", n*2*region.WordBytes); err != nil {
		return nil, errors.Wrap(err, "bitfield.LoadKeyAtoms")
	}
	ka := NewKeyAtoms()
	for i := 0; i < n; i++ {
		key := r.Uint32()
		atoms := r.Uint32()
		if r.Err() != nil {
			break
		}
		ka.Add(key, atoms)
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrapf(err, "bitfield.LoadKeyAtoms: %d pairs", n)
	}
	return ka, nil
}

// Encode returns the region form of the map
func (ka *KeyAtoms) Encode() []byte {
	w := region.NewWriter(region.WordBytes * (1 + 2*ka.Len()))
	w.PutUint32(uint32(ka.Len()))
	for _, kv := range ka.Order {
		w.PutUint32(kv.Key)
		w.PutUint32(kv.Val)
	}
	return w.Bytes()
}
