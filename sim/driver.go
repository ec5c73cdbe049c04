// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/emer/cmneuron/compart"
	"github.com/emer/emergent/v2/timer"
)

// Driver advances one neuron in time with a fixed step, injecting step
// currents and queued spikes, and recording after every step.
type Driver struct {
	Neuron   *compart.Neuron
	Dt       float64       `desc:"integration step, in msec"`
	Currents []StepCurrent `desc:"DC current sources"`
	Queue    Queue         `desc:"pending spike events"`
	Rec      *Recorder     `desc:"optional recorder, called after every step"`
	Log      *slog.Logger  `view:"-" desc:"logger, slog.Default() if nil"`
	Time     timer.Time    `view:"-" desc:"wall clock time spent in Run"`

	cur    []float64
	spikes []compart.Spike
}

// NewDriver returns a driver for nr with step size dt
func NewDriver(nr *compart.Neuron, dt float64) *Driver {
	return &Driver{Neuron: nr, Dt: dt}
}

func (dr *Driver) logger() *slog.Logger {
	if dr.Log != nil {
		return dr.Log
	}
	return slog.Default()
}

// AddSpikes pushes the spikes of train onto the queue, after checking its port
func (dr *Driver) AddSpikes(train *SpikeTrain) error {
	if err := dr.Neuron.CheckSpikePort(train.Port); err != nil {
		return fmt.Errorf("sim.Driver AddSpikes: %w", err)
	}
	return train.Events(&dr.Queue)
}

// Validate checks the step size and that all inputs are connected to valid ports.
func (dr *Driver) Validate() error {
	if dr.Neuron == nil {
		return fmt.Errorf("sim.Driver: no neuron: %w", compart.ErrUnconfigured)
	}
	if !(dr.Dt > 0) || math.IsInf(dr.Dt, 0) {
		return fmt.Errorf("sim.Driver: dt = %v must be > 0: %w", dr.Dt, compart.ErrInvalidParam)
	}
	for _, sc := range dr.Currents {
		if err := dr.Neuron.CheckCurrentPort(sc.Comp); err != nil {
			return fmt.Errorf("sim.Driver: %w", err)
		}
	}
	for _, p := range dr.Queue.Ports() {
		if err := dr.Neuron.CheckSpikePort(p); err != nil {
			return fmt.Errorf("sim.Driver: %w", err)
		}
	}
	return nil
}

// Step advances the neuron by one step of Dt
func (dr *Driver) Step() error {
	nr := dr.Neuron
	n := nr.NComps()
	tleft := float64(nr.Time.Step) * dr.Dt
	var cur []float64
	if len(dr.Currents) > 0 {
		if len(dr.cur) != n {
			dr.cur = make([]float64, n)
		}
		cur = dr.cur
		for ci := range cur {
			cur[ci] = 0
		}
		for si := range dr.Currents {
			sc := &dr.Currents[si]
			if err := nr.CheckCurrentPort(sc.Comp); err != nil {
				return fmt.Errorf("sim.Driver Step: %w", err)
			}
			cur[sc.Comp] += sc.Current(tleft)
		}
	}
	dr.spikes = dr.spikes[:0]
	tpop := tleft + 1e-9*dr.Dt
	if nx, ok := dr.Queue.Next(); ok && nx <= tpop {
		dr.spikes = dr.Queue.PopUntil(tpop, dr.spikes)
	}
	if err := nr.Advance(dr.Dt, cur, dr.spikes); err != nil {
		return err
	}
	if dr.Rec != nil {
		return dr.Rec.Record(nr)
	}
	return nil
}

// Run advances the neuron until time tmax, in steps of Dt.
// It stops early, returning the context error, if ctx is done.
func (dr *Driver) Run(ctx context.Context, tmax float64) error {
	if err := dr.Validate(); err != nil {
		return err
	}
	nsteps := int(math.Round(tmax/dr.Dt)) - dr.Neuron.Time.Step
	log := dr.logger()
	log.Debug("driver run", "tmax", tmax, "dt", dr.Dt, "steps", nsteps, "comps", dr.Neuron.NComps(), "receptors", dr.Neuron.NReceptors())
	dr.Time.Start()
	defer dr.Time.Stop()
	for i := 0; i < nsteps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := dr.Step(); err != nil {
			return fmt.Errorf("sim.Driver: step %d at %v msec: %w", dr.Neuron.Time.Step, dr.Neuron.Time.Time, err)
		}
	}
	log.Debug("driver done", "time", dr.Neuron.Time.Time, "pending", dr.Queue.Len())
	return nil
}
