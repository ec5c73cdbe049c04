// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"math"

	"github.com/emer/cmneuron/compart"
)

// StepCurrent is a DC current injected into one compartment over [Start, Stop[.
type StepCurrent struct {
	Comp  int     `desc:"index of the compartment (current port) receiving the current"`
	Amp   float64 `desc:"amplitude, in nA"`
	Start float64 `desc:"onset time, in msec"`
	Stop  float64 `desc:"offset time, in msec -- 0 = never stops"`
}

// Current returns the current of the step that starts at time t
func (sc *StepCurrent) Current(t float64) float64 {
	if t < sc.Start || (sc.Stop > 0 && t >= sc.Stop) {
		return 0
	}
	return sc.Amp
}

// SpikeTrain is a sequence of spikes onto one receptor port: the given Times,
// plus a regular train with given Period over [Start, Stop[ if Period > 0.
// Unlike StepCurrent, a regular train must have Stop > Start.
type SpikeTrain struct {
	Port   int       `desc:"spike receptor port"`
	Weight float64   `desc:"weight of each spike"`
	Times  []float64 `desc:"explicit spike times, in msec"`
	Start  float64   `desc:"start of the regular train, in msec"`
	Stop   float64   `desc:"end of the regular train, in msec -- must be > Start when Period > 0"`
	Period float64   `desc:"interval of the regular train, in msec -- 0 = no regular train"`
}

// Events pushes the spikes of the train onto qu.
func (st *SpikeTrain) Events(qu *Queue) error {
	if st.Period < 0 || math.IsNaN(st.Period) {
		return fmt.Errorf("sim.SpikeTrain: port %d: period %v must be >= 0: %w", st.Port, st.Period, compart.ErrInvalidParam)
	}
	if st.Period > 0 && !(st.Stop > st.Start) {
		return fmt.Errorf("sim.SpikeTrain: port %d: regular train stop %v must be > start %v: %w", st.Port, st.Stop, st.Start, compart.ErrInvalidParam)
	}
	for _, t := range st.Times {
		qu.Push(Event{Time: t, Port: st.Port, Weight: st.Weight})
	}
	if st.Period == 0 {
		return nil
	}
	n := int(math.Ceil((st.Stop - st.Start) / st.Period))
	for i := 0; i < n; i++ {
		qu.Push(Event{Time: st.Start + float64(i)*st.Period, Port: st.Port, Weight: st.Weight})
	}
	return nil
}
