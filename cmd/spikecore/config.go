// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/BurntSushi/toml"
	"github.com/c2h5oh/datasize"
	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/neuron"
	"github.com/emer/spikecore/synapse"
	"github.com/pkg/errors"
)

// NetConfig describes the demo network built for a run
type NetConfig struct {

	// number of neurons simulated on the core
	Neurons int `toml:"neurons"`

	// number of neurons in the source population with direct rows
	DirectSources int `toml:"direct_sources"`

	// number of neurons in the source population with bulk rows
	BulkSources int `toml:"bulk_sources"`

	// every Nth bulk source has an empty row
	EmptyEvery int `toml:"empty_every"`

	// synaptic weight, in ring units
	Weight uint16 `toml:"weight"`

	// left shift converting ring weights to accumulator input
	WeightShift uint `toml:"weight_shift"`

	// source j fires every Period + j steps
	Period int `toml:"period"`
}

// Config is the configuration of the spikecore command, read from a TOML file
type Config struct {

	// working memory of the core, e.g. "64KB"
	Budget datasize.ByteSize `toml:"budget"`

	// neuron model: ModelIzhDV2C or ModelIzh
	Model string `toml:"model"`

	// input type: InputCurrent or InputConductance
	Input string `toml:"input"`

	// threshold type: ThresholdStatic or ThresholdAdaptive
	Threshold string `toml:"threshold"`

	// additional input: AddNone or AddCaAdaptive
	Additional string `toml:"additional"`

	// synapse shaping: BiExp4E4I or Exponential
	Synapse string `toml:"synapse"`

	// steps the second compartment stays injected
	V2Hold int32 `toml:"v2_hold"`

	// timestep in msec
	Dt float32 `toml:"dt"`

	// number of timesteps to run
	Steps int `toml:"steps"`

	// constant bias current applied to every neuron
	Bias float32 `toml:"bias"`

	// apply the pruning pass before running
	Prune bool `toml:"prune"`

	// neurons to record; empty records all
	Record []int `toml:"record"`

	// CSV file for recorded values; empty for none
	RecordFile string `toml:"record_file"`

	// verbose logging
	Debug bool `toml:"debug"`

	Net NetConfig `toml:"net"`
}

// Defaults sets default values
func (cf *Config) Defaults() {
	cf.Budget = dtcm.DefaultBudget
	cf.Model = neuron.ModelIzhDV2C.String()
	cf.Input = neuron.InputCurrent.String()
	cf.Threshold = neuron.ThresholdStatic.String()
	cf.Additional = neuron.AddNone.String()
	cf.Synapse = synapse.BiExpKind.String()
	cf.V2Hold = 5
	cf.Dt = 1
	cf.Steps = 1000
	cf.Bias = 0
	cf.Net.Neurons = 16
	cf.Net.DirectSources = 16
	cf.Net.BulkSources = 32
	cf.Net.EmptyEvery = 4
	cf.Net.Weight = 400
	cf.Net.WeightShift = 10
	cf.Net.Period = 5
}

// LoadConfig returns the defaults overridden by the TOML file fnm, if given
func LoadConfig(fnm string) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	if fnm == "" {
		return cf, nil
	}
	if _, err := toml.DecodeFile(fnm, cf); err != nil {
		return nil, fault.Wrap(fault.ConfigInconsistency, "LoadConfig", errors.Wrap(err, fnm))
	}
	return cf, nil
}

// NeuronConfig returns the neuron strategies named in the config
func (cf *Config) NeuronConfig() (neuron.Config, error) {
	nc := neuron.Config{}
	nc.Defaults()
	nc.V2Hold = cf.V2Hold
	parse := []struct {
		name string
		from func(string) error
	}{
		{cf.Model, nc.Model.FromString},
		{cf.Input, nc.Input.FromString},
		{cf.Threshold, nc.Threshold.FromString},
		{cf.Additional, nc.Additional.FromString},
		{cf.Synapse, nc.Synapse.FromString},
	}
	for _, p := range parse {
		if err := p.from(p.name); err != nil {
			return nc, fault.Wrap(fault.ConfigInconsistency, "NeuronConfig", err)
		}
	}
	return nc, nil
}
