// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikecore is the overall repository for the per-core simulation kernel
of a spiking neural network, in fixed-point arithmetic, implemented in the Go
language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* fixpt: the s16.15 accumulator, u0.32 decay and 16x16 STDP fixed-point types,
with saturating arithmetic that is bit-exact across platforms.

* neuron: the swappable neuron strategies (Izhikevich models, input types,
thresholds, additional inputs) and the per-core Impl that owns every neuron's
state, loads its parameter region, and updates each neuron once per timestep.

* synapse: the bi-exponential (4 excitatory, 4 inhibitory) and exponential
synaptic input accumulators.

* plasticity: the additive dv/dt weight dependence rule.

* synrow, sdram, poptable: synaptic rows, the bulk memory they live in, and the
population table that maps an incoming spike key to its rows.

* bitfield: the offline pruning pass that marks which source neurons have
non-empty rows, and the filter that uses its output.

* engine: the timestep loop, delay ring buffers and spike delivery of one core.

* cmd/spikecore: the command that builds, prunes, runs and inspects a core.
*/
package spikecore
