// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spikecore/synapse"
	"github.com/goki/ki/kit"
)

// ModelKinds are the neuron model variants
type ModelKinds int32

//go:generate stringer -type=ModelKinds,InputKinds,ThresholdKinds,AdditionalKinds

var KiT_ModelKinds = kit.Enums.AddEnum(ModelKindsN, kit.NotBitFlag, nil)

func (ev ModelKinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ModelKinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// ModelIzhDV2C is the two-compartment Izhikevich model with dv/dt trace
	ModelIzhDV2C ModelKinds = iota

	// ModelIzh is the plain Izhikevich model
	ModelIzh

	ModelKindsN
)

// InputKinds are the input type variants
type InputKinds int32

var KiT_InputKinds = kit.Enums.AddEnum(InputKindsN, kit.NotBitFlag, nil)

func (ev InputKinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *InputKinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// InputCurrent passes synaptic values through as currents
	InputCurrent InputKinds = iota

	// InputConductance scales synaptic values by the reversal potential driving force
	InputConductance

	InputKindsN
)

// ThresholdKinds are the threshold type variants
type ThresholdKinds int32

var KiT_ThresholdKinds = kit.Enums.AddEnum(ThresholdKindsN, kit.NotBitFlag, nil)

func (ev ThresholdKinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ThresholdKinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// ThresholdStatic is a fixed threshold
	ThresholdStatic ThresholdKinds = iota

	// ThresholdAdaptive rises with each spike and decays back to baseline
	ThresholdAdaptive

	ThresholdKindsN
)

// AdditionalKinds are the additional input variants
type AdditionalKinds int32

var KiT_AdditionalKinds = kit.Enums.AddEnum(AdditionalKindsN, kit.NotBitFlag, nil)

func (ev AdditionalKinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *AdditionalKinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// AddNone has no additional input
	AddNone AdditionalKinds = iota

	// AddCaAdaptive is a calcium-activated adaptation current
	AddCaAdaptive

	AdditionalKindsN
)

// Config selects the strategies used by every neuron of a core
type Config struct {
	Model      ModelKinds
	Input      InputKinds
	Threshold  ThresholdKinds
	Additional AdditionalKinds
	Synapse    synapse.Kinds

	// number of steps the second compartment stays injected after V falls
	// below its threshold
	V2Hold int32 `def:"5"`
}

func (cf *Config) Defaults() {
	cf.Model = ModelIzhDV2C
	cf.Input = InputCurrent
	cf.Threshold = ThresholdStatic
	cf.Additional = AddNone
	cf.Synapse = synapse.BiExpKind
	cf.V2Hold = 5
}

// NewModel returns a zero Model of the configured kind
func (cf *Config) NewModel() Model {
	if cf.Model == ModelIzh {
		return &Izh{}
	}
	return &IzhDV2C{}
}

// NewInput returns a zero Input of the configured kind
func (cf *Config) NewInput() Input {
	if cf.Input == InputConductance {
		return &CondInput{}
	}
	return &CurInput{}
}

// NewThreshold returns a zero Threshold of the configured kind
func (cf *Config) NewThreshold() Threshold {
	if cf.Threshold == ThresholdAdaptive {
		return &AdaptThr{}
	}
	return &StaticThr{}
}

// NewAdditional returns a zero AdditionalInput of the configured kind
func (cf *Config) NewAdditional() AdditionalInput {
	if cf.Additional == AddCaAdaptive {
		return &CaAdapt{}
	}
	return &NoAdd{}
}
