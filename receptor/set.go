// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receptor

import (
	"fmt"
)

// CompChecker is implemented by the compartment tree that owns the receptors,
// to validate host compartment indexes.
type CompChecker interface {
	// HasComp returns true if a compartment with given index exists.
	HasComp(idx int) bool
}

// Set is the ordered collection of receptors of one neuron.
// Port indexes are assigned sequentially from 0 in order of addition.
type Set struct {
	Recs []Receptor
}

// Len returns the number of receptors (spike ports)
func (rs *Set) Len() int {
	return len(rs.Recs)
}

// Add adds a new receptor with given params onto compartment comp,
// returning its port index.  The set is unchanged on error.
func (rs *Set) Add(cc CompChecker, comp int, p Params) (int, error) {
	if cc == nil || !cc.HasComp(comp) {
		return -1, fmt.Errorf("receptor.Set Add: %v receptor on compartment %d: %w", p.Kind, comp, ErrUnknownCompartment)
	}
	p.Update()
	if err := p.Validate(); err != nil {
		return -1, fmt.Errorf("receptor.Set Add: compartment %d: %w", comp, err)
	}
	port := len(rs.Recs)
	rs.Recs = append(rs.Recs, Receptor{Params: p, Comp: comp, Port: port})
	return port, nil
}

// AddKind adds a new receptor of given kind with default params.
func (rs *Set) AddKind(cc CompChecker, comp int, kind Kinds) (int, error) {
	return rs.Add(cc, comp, KindParams(kind))
}

// CheckPort returns a *PortError if port is not a valid spike port.
func (rs *Set) CheckPort(port int) error {
	if port < 0 || port >= len(rs.Recs) {
		return &PortError{Kind: "spike", Port: port, N: len(rs.Recs)}
	}
	return nil
}

// Rec returns the receptor at given port
func (rs *Set) Rec(port int) (*Receptor, error) {
	if err := rs.CheckPort(port); err != nil {
		return nil, err
	}
	return &rs.Recs[port], nil
}

// Deliver delivers a spike of weight w to given port.
func (rs *Set) Deliver(port int, w float64) error {
	rc, err := rs.Rec(port)
	if err != nil {
		return err
	}
	rc.Spike(w)
	return nil
}

// Decay advances all receptor conductances by one step of size dt.
func (rs *Set) Decay(dt float64) {
	for ri := range rs.Recs {
		rs.Recs[ri].Decay(dt)
	}
}

// Conductance returns the instantaneous conductance of the receptor at port.
func (rs *Set) Conductance(port int) (float64, error) {
	rc, err := rs.Rec(port)
	if err != nil {
		return 0, err
	}
	return rc.G(), nil
}

// Init zeros the conductance state of all receptors.
func (rs *Set) Init() {
	for ri := range rs.Recs {
		rs.Recs[ri].Init()
	}
}

// NOnComp returns the number of receptors hosted by given compartment.
func (rs *Set) NOnComp(comp int) int {
	n := 0
	for ri := range rs.Recs {
		if rs.Recs[ri].Comp == comp {
			n++
		}
	}
	return n
}

// Linearize returns the linearized conductance and current terms of the
// receptor at port for its host compartment at voltage v, see Receptor.Linearize.
func (rs *Set) Linearize(port int, v float64) (gval, ival float64, err error) {
	rc, err := rs.Rec(port)
	if err != nil {
		return 0, 0, err
	}
	gval, ival = rc.Linearize(v)
	return
}
