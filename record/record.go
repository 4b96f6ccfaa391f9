// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package record logs the per-timestep state of recorded neurons into an
etable.Table: membrane voltage, total excitatory and inhibitory synaptic
input, and spikes.
*/
package record

import (
	"io"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/spikecore/neuron"
	"github.com/pkg/errors"
)

// Recorder appends one row per recorded neuron per timestep
type Recorder struct {

	// recorded rows
	Table *etable.Table

	// recorded neurons; nil records all
	Neurons []int

	// number of spikes recorded
	Spikes int
}

// NewRecorder returns a Recorder for the given neurons, or all if nil
func NewRecorder(name string, neurons []int) *Recorder {
	rc := &Recorder{Table: &etable.Table{}, Neurons: neurons}
	rc.ConfigTable(name)
	return rc
}

// ConfigTable sets up the columns of the table
func (rc *Recorder) ConfigTable(name string) {
	dt := rc.Table
	dt.SetMetaData("name", name)
	dt.SetMetaData("desc", "per-timestep neuron state")
	dt.SetMetaData("read-only", "true")

	sch := etable.Schema{
		{"Time", etensor.INT64, nil, nil},
		{"Neuron", etensor.INT64, nil, nil},
		{"V", etensor.FLOAT64, nil, nil},
		{"GsynExc", etensor.FLOAT64, nil, nil},
		{"GsynInh", etensor.FLOAT64, nil, nil},
		{"Spike", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

// Wants returns true if neuron n is recorded
func (rc *Recorder) Wants(n int) bool {
	if rc.Neurons == nil {
		return true
	}
	for _, rn := range rc.Neurons {
		if rn == n {
			return true
		}
	}
	return false
}

// Record appends the values of neuron n at timestep t
func (rc *Recorder) Record(t, n int, rv *neuron.Recorded, spiked bool) {
	dt := rc.Table
	row := dt.Rows
	dt.SetNumRows(row + 1)
	sp := 0.0
	if spiked {
		sp = 1
		rc.Spikes++
	}
	dt.SetCellFloat("Time", row, float64(t))
	dt.SetCellFloat("Neuron", row, float64(n))
	dt.SetCellFloat("V", row, float64(rv.V.Float()))
	dt.SetCellFloat("GsynExc", row, float64(rv.GsynExc.Float()))
	dt.SetCellFloat("GsynInh", row, float64(rv.GsynInh.Float()))
	dt.SetCellFloat("Spike", row, sp)
}

// Reset removes all rows
func (rc *Recorder) Reset() {
	rc.Table.SetNumRows(0)
	rc.Spikes = 0
}

// WriteCSV writes the table with headers as comma-separated values
func (rc *Recorder) WriteCSV(w io.Writer) error {
	return errors.Wrap(rc.Table.WriteCSV(w, etable.Comma, etable.Headers), "record.WriteCSV")
}
