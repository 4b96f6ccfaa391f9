// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import "github.com/emer/spikecore/fixpt"

// Chans are the reversal potentials of the synaptic conductance channels, in mV
type Chans struct {

	// excitatory sodium (Na) AMPA channels activated by synaptic glutamate
	E float32 `def:"0"`

	// inhibitory chloride (Cl-) channels activated by synaptic GABA
	I float32 `def:"-70"`
}

func (ch *Chans) Defaults() {
	ch.SetAll(0, -70)
}

// SetAll sets all the values
func (ch *Chans) SetAll(e, i float32) {
	ch.E, ch.I = e, i
}

// CondInput returns the fixed-point conductance input type
func (ch *Chans) CondInput() CondInput {
	return CondInput{ERevE: fixpt.FromFloat(ch.E), ERevI: fixpt.FromFloat(ch.I)}
}
