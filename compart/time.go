// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

// compart.Time contains the timing state of a neuron being simulated
type Time struct {

	// accumulated amount of simulation time, in msec.
	Time float64

	// step counter: number of integration steps taken since the last Reset.
	Step int

	// size of the last integration step, in msec.
	Dt float64
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Step = 0
	tm.Dt = 0
}

// StepInc increments at the step level
func (tm *Time) StepInc(dt float64) {
	tm.Step++
	tm.Dt = dt
	tm.Time += dt
}
