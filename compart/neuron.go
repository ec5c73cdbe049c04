// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/cmneuron/chans"
	"github.com/emer/cmneuron/receptor"
)

// Spike is a spike event delivered to a receptor port at the start of a step.
type Spike struct {
	Port   int
	Weight float64
}

// Neuron is a multi-compartment neuron: a compartment tree with synaptic
// receptors, advanced in time by a Crank-Nicolson voltage update.
// A Neuron must only be advanced by one goroutine at a time, and its state
// may only be read between steps.  Distinct Neurons share no state.
type Neuron struct {
	Tree       Tree         `desc:"compartment tree"`
	Recs       receptor.Set `desc:"synaptic receptors, indexed by spike port"`
	Time       Time         `desc:"timing state"`
	SolverType SolverTypes  `desc:"type of solver to use, fixed at the first step"`

	configured bool
	solver     Solver
	sys        System
	gx         []float64
	ix         []float64
	vnew       []float64
}

// NewNeuron returns a new empty neuron using the tree solver
func NewNeuron() *Neuron {
	return &Neuron{}
}

// NComps returns the number of compartments, which is also the number of current ports
func (nr *Neuron) NComps() int {
	return nr.Tree.Len()
}

// NReceptors returns the number of receptors, which is also the number of spike ports
func (nr *Neuron) NReceptors() int {
	return nr.Recs.Len()
}

// AddCompartment adds a compartment with given parent, see Tree.AddCompartment
func (nr *Neuron) AddCompartment(parent int, p CompParams) (int, error) {
	return nr.Tree.AddCompartment(parent, p)
}

// AddReceptor adds a receptor of given kind with default params onto
// compartment comp, returning its spike port.
func (nr *Neuron) AddReceptor(comp int, kind receptor.Kinds) (int, error) {
	return nr.AddReceptorParams(comp, receptor.KindParams(kind))
}

// AddReceptorParams adds a receptor with given params onto compartment comp,
// returning its spike port.
func (nr *Neuron) AddReceptorParams(comp int, p receptor.Params) (int, error) {
	if nr.Tree.Frozen {
		return -1, fmt.Errorf("compart.AddReceptor: receptors are fixed after the first step: %w", ErrDuplicateConfig)
	}
	return nr.Recs.Add(&nr.Tree, comp, p)
}

// Configure builds the whole neuron from cfg.  It can only be done once, on a
// neuron without compartments, and leaves the neuron unchanged on error.
func (nr *Neuron) Configure(cfg *Config) error {
	if nr.configured || nr.Tree.Len() > 0 || nr.Recs.Len() > 0 {
		return fmt.Errorf("compart.Configure: %w", ErrDuplicateConfig)
	}
	var tr Tree
	for _, cc := range cfg.Comps {
		if _, err := tr.AddCompartment(cc.Parent, cc.Params); err != nil {
			return err
		}
	}
	var rs receptor.Set
	for _, rc := range cfg.Recs {
		if _, err := rs.Add(&tr, rc.Comp, rc.Params); err != nil {
			return err
		}
	}
	nr.Tree = tr
	nr.Recs = rs
	nr.SolverType = cfg.Solver
	nr.configured = true
	return nil
}

// CheckCurrentPort returns a *receptor.PortError unless port is a valid
// current port, i.e., a compartment index.
func (nr *Neuron) CheckCurrentPort(port int) error {
	if !nr.Tree.HasComp(port) {
		return &receptor.PortError{Kind: "current", Port: port, N: nr.Tree.Len()}
	}
	return nil
}

// CheckSpikePort returns a *receptor.PortError unless port is a valid spike port.
func (nr *Neuron) CheckSpikePort(port int) error {
	return nr.Recs.CheckPort(port)
}

// Advance integrates the neuron over one step of size dt.  currents holds
// the injected current per compartment for this step (nil for none), and
// spikes are delivered to their receptors before the update.
// The first call freezes the structure.  On error no state is changed.
func (nr *Neuron) Advance(dt float64, currents []float64, spikes []Spike) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("compart.Advance: dt = %v must be > 0: %w", dt, ErrInvalidParam)
	}
	if err := nr.Tree.Finalize(); err != nil {
		return fmt.Errorf("compart.Advance: %w", err)
	}
	n := nr.Tree.Len()
	if currents != nil && len(currents) != n {
		return fmt.Errorf("compart.Advance: %d currents given, valid current ports are [0, %d[: %w", len(currents), n, ErrUnknownPort)
	}
	for _, sp := range spikes {
		if err := nr.Recs.CheckPort(sp.Port); err != nil {
			return fmt.Errorf("compart.Advance: %w", err)
		}
	}
	if !nr.Tree.Frozen {
		nr.Tree.Frozen = true
		nr.solver = NewSolver(nr.SolverType)
		nr.gx = make([]float64, n)
		nr.ix = make([]float64, n)
		nr.vnew = make([]float64, n)
	}

	for _, sp := range spikes {
		if err := nr.Recs.Deliver(sp.Port, sp.Weight); err != nil {
			return fmt.Errorf("compart.Advance: %w", err)
		}
	}
	if err := nr.linearize(dt); err != nil {
		return fmt.Errorf("compart.Advance: %w", err)
	}
	if err := nr.Tree.Assemble(&nr.sys, dt, currents, nr.gx, nr.ix); err != nil {
		return err
	}
	if err := nr.solver.Solve(&nr.sys, nr.vnew); err != nil {
		return err
	}
	for ci := range nr.Tree.Comps {
		nr.Tree.Comps[ci].V = nr.vnew[ci]
	}
	nr.Recs.Decay(dt)
	nr.Time.StepInc(dt)
	return nil
}

// linearize advances the active channel gates over dt and accumulates the
// linearized channel and receptor terms of each compartment into gx, ix.
func (nr *Neuron) linearize(dt float64) error {
	for ci := range nr.gx {
		nr.gx[ci] = 0
		nr.ix[ci] = 0
	}
	for ci := range nr.Tree.Comps {
		cm := &nr.Tree.Comps[ci]
		if !cm.HasActive() {
			continue
		}
		if cm.Na.On() {
			cm.Na.Step(&cm.Gates, cm.V, dt)
			i, di := cm.Na.Current(&cm.Gates, cm.V)
			g, iv := chans.Linear(i, di, cm.V)
			nr.gx[ci] += g
			nr.ix[ci] += iv
		}
		if cm.K.On() {
			cm.K.Step(&cm.Gates, cm.V, dt)
			i, di := cm.K.Current(&cm.Gates, cm.V)
			g, iv := chans.Linear(i, di, cm.V)
			nr.gx[ci] += g
			nr.ix[ci] += iv
		}
	}
	for port := 0; port < nr.Recs.Len(); port++ {
		rc, err := nr.Recs.Rec(port)
		if err != nil {
			return err
		}
		ci := rc.Comp
		g, i, err := nr.Recs.Linearize(port, nr.Tree.Comps[ci].V)
		if err != nil {
			return err
		}
		nr.gx[ci] += g
		nr.ix[ci] += i
	}
	return nil
}

// Reset reinitializes the membrane potentials, gates, receptor conductances
// and time, keeping the structure.
func (nr *Neuron) Reset() {
	nr.Tree.InitV()
	nr.Recs.Init()
	nr.Time.Reset()
}

// SizeReport returns a string reporting the size of the neuron.
func (nr *Neuron) SizeReport() string {
	var b strings.Builder
	b.WriteString(nr.Tree.SizeReport())
	nmem := nr.Recs.Len() * int(unsafe.Sizeof(receptor.Receptor{}))
	fmt.Fprintf(&b, "%14s:\t Recs: %d\t RecMem: %v\n", "Receptors", nr.Recs.Len(), (datasize.ByteSize)(nmem).HumanReadable())
	nsys := 4 * nr.Tree.Len() * int(unsafe.Sizeof(float64(0)))
	fmt.Fprintf(&b, "%14s:\t Solver: %v\t SysMem: %v\n", "System", nr.SolverType, (datasize.ByteSize)(nsys).HumanReadable())
	return b.String()
}
