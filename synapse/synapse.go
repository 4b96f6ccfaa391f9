// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package synapse implements the per-neuron synaptic input accumulators: the
shaping records that integrate incoming weighted spikes into excitatory and
inhibitory channel currents and decay them each timestep.

BiExp4E4I is the bi-exponential record with four excitatory and four
inhibitory channels; Exp is a single-exponential record with one of each.
Both implement Shaping. Host-side Params types compile millisecond time
constants into the fixed-point decays stored in the parameter region.
*/
package synapse

import (
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/region"
	"github.com/goki/ki/kit"
)

// Channel indexes a receptor channel of a shaping record. Excitatory
// channels come first.
type Channel int32

// The 4E4I channels
const (
	Exc Channel = iota
	Exc2
	Exc3
	Exc4
	Inh
	Inh2
	Inh3
	Inh4
)

// Shaping is a per-neuron synaptic input accumulator
type Shaping interface {
	region.Codec

	// Add accumulates a weighted input on channel ch.
	// Unknown channels are ignored.
	Add(ch Channel, in fixpt.Accum)

	// Shape decays every channel by one timestep
	Shape()

	// Excitatory appends the current of each excitatory channel to dst
	Excitatory(dst []fixpt.Accum) []fixpt.Accum

	// Inhibitory appends the current of each inhibitory channel to dst
	Inhibitory(dst []fixpt.Accum) []fixpt.Accum

	// NumExc is the number of excitatory channels
	NumExc() int

	// NumInh is the number of inhibitory channels
	NumInh() int
}

// Kinds are the available shaping records
type Kinds int32

//go:generate stringer -type=Kinds -linecomment

var KiT_Kinds = kit.Enums.AddEnum(KindsN, kit.NotBitFlag, nil)

func (ev Kinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// BiExpKind is four excitatory and four inhibitory bi-exponential channels
	BiExpKind Kinds = iota // BiExp4E4I

	// Exponential is one excitatory and one inhibitory first-order channel
	Exponential // Exponential

	KindsN // KindsN
)

// New returns a zero shaping record of the given kind
func New(kind Kinds) Shaping {
	switch kind {
	case Exponential:
		return &Exp{}
	default:
		return &BiExp4E4I{}
	}
}

// NumTypes returns the number of channels of the given kind
func NumTypes(kind Kinds) int {
	s := New(kind)
	return s.NumExc() + s.NumInh()
}
