// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"fmt"
	"strconv"
	"strings"
)

// CompVars are the per-compartment recordable variables, each followed by
// the compartment index in a recordable name.  Gate variables only exist
// on compartments where the corresponding channel is on.
var CompVars = []string{"v_comp", "m_Na", "h_Na", "n_K"}

// Recordables returns the names of all state variables that can be recorded,
// in compartment order followed by receptor port order.
func (nr *Neuron) Recordables() []string {
	var nms []string
	for ci := range nr.Tree.Comps {
		cm := &nr.Tree.Comps[ci]
		cs := strconv.Itoa(ci)
		nms = append(nms, "v_comp"+cs)
		if cm.Na.On() {
			nms = append(nms, "m_Na"+cs, "h_Na"+cs)
		}
		if cm.K.On() {
			nms = append(nms, "n_K"+cs)
		}
	}
	for ri := range nr.Recs.Recs {
		nms = append(nms, nr.Recs.Recs[ri].VarNames()...)
	}
	return nms
}

// Record returns the current value of the named state variable, or an error
// wrapping ErrUnknownRecordable.
func (nr *Neuron) Record(name string) (float64, error) {
	for _, vn := range CompVars {
		is, ok := strings.CutPrefix(name, vn)
		if !ok {
			continue
		}
		ci, err := strconv.Atoi(is)
		if err != nil || strconv.Itoa(ci) != is || !nr.Tree.HasComp(ci) {
			break
		}
		cm := &nr.Tree.Comps[ci]
		switch {
		case vn == "v_comp":
			return cm.V, nil
		case vn == "m_Na" && cm.Na.On():
			return cm.Gates.M, nil
		case vn == "h_Na" && cm.Na.On():
			return cm.Gates.H, nil
		case vn == "n_K" && cm.K.On():
			return cm.Gates.N, nil
		}
		break
	}
	for ri := range nr.Recs.Recs {
		if v, err := nr.Recs.Recs[ri].VarByName(name); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("compart.Record: %q on neuron with %d compartments and %d receptors: %w", name, nr.Tree.Len(), nr.Recs.Len(), ErrUnknownRecordable)
}

// ReadVoltage returns the membrane potential of compartment idx
func (nr *Neuron) ReadVoltage(idx int) (float64, error) {
	cm, err := nr.Tree.Comp(idx)
	if err != nil {
		return 0, err
	}
	return cm.V, nil
}

// ReadReceptorConductance returns the conductance of the receptor at given spike port
func (nr *Neuron) ReadReceptorConductance(port int) (float64, error) {
	return nr.Recs.Conductance(port)
}
