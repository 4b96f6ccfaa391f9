// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// Time contains the timing state and parameters of a simulation run
type Time struct {

	// accumulated simulation time in msec
	Time float32

	// timestep counter since the last Reset
	Step int

	// amount of time to increment per step, msec
	TimePerStep float32 `def:"1"`

	// number of steps to run, 0 for no limit
	Steps int
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.TimePerStep = 1
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Step = 0
	if tm.TimePerStep == 0 {
		tm.Defaults()
	}
}

// StepInc increments at the timestep level
func (tm *Time) StepInc() {
	tm.Step++
	tm.Time += tm.TimePerStep
}

// Done returns true if Steps have been run
func (tm *Time) Done() bool {
	return tm.Steps > 0 && tm.Step >= tm.Steps
}
