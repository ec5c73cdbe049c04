// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receptor

import (
	"fmt"
	"strconv"

	"github.com/emer/cmneuron/chans"
)

// Receptor is one synaptic receptor instance located on a host compartment.
// Incoming spikes increment its conductance state, which decays exactly
// (exponentially) every step.
type Receptor struct {
	Params

	Comp int `desc:"index of the host compartment in the owning tree"`
	Port int `desc:"spike receptor port index of this receptor (0-based, sequential per tree)"`

	State     BiExpState `desc:"conductance state of the primary (or AMPA) component"`
	NMDAState BiExpState `desc:"conductance state of the NMDA component of AMPA_NMDA"`

	dt       float64
	pr, pd   float64
	npr, npd float64
}

// Init zeros the conductance state
func (rc *Receptor) Init() {
	rc.State.Init()
	rc.NMDAState.Init()
}

// Spike delivers a spike of weight w
func (rc *Receptor) Spike(w float64) {
	rc.State.Spike(&rc.Syn, w)
	if rc.Kind == AMPANMDA {
		rc.NMDAState.Spike(&rc.NMDA, w)
	}
}

// Decay advances the conductance state by one exact exponential step of size dt.
func (rc *Receptor) Decay(dt float64) {
	if dt != rc.dt {
		rc.dt = dt
		rc.pr, rc.pd = rc.Syn.Props(dt)
		if rc.Kind == AMPANMDA {
			rc.npr, rc.npd = rc.NMDA.Props(dt)
		}
	}
	rc.State.Decay(rc.pr, rc.pd)
	if rc.Kind == AMPANMDA {
		rc.NMDAState.Decay(rc.npr, rc.npd)
	}
}

// G returns the instantaneous conductance, not including the voltage-dependent
// magnesium block of NMDA components.
func (rc *Receptor) G() float64 {
	g := rc.State.G()
	if rc.Kind == AMPANMDA {
		g += rc.NMDARatio * rc.NMDAState.G()
	}
	return g
}

// Current returns the synaptic current into the compartment at voltage v,
// and its derivative with respect to v.
func (rc *Receptor) Current(v float64) (i, di float64) {
	switch rc.Kind {
	case NMDA:
		g := rc.State.G()
		b, db := rc.Mg.Block(v)
		i = g * b * (rc.E - v)
		di = -g*b + g*db*(rc.E-v)
	case AMPANMDA:
		ga := rc.State.G()
		gn := rc.NMDARatio * rc.NMDAState.G()
		b, db := rc.Mg.Block(v)
		i = (ga + gn*b) * (rc.E - v)
		di = -ga - gn*b + gn*db*(rc.E-v)
	default:
		g := rc.State.G()
		i = g * (rc.E - v)
		di = -g
	}
	return
}

// Linearize returns the diagonal conductance and right-hand side current
// contributions of this receptor to its host compartment for the implicit step,
// linearized around the voltage v at the start of the step.
// NMDA receptors in their negative slope region can contribute a negative gval.
func (rc *Receptor) Linearize(v float64) (gval, ival float64) {
	i, di := rc.Current(v)
	return chans.Linear(i, di, v)
}

// VarNames returns the names of the recordable state variables of this receptor
func (rc *Receptor) VarNames() []string {
	ps := strconv.Itoa(rc.Port)
	if rc.Kind == AMPANMDA {
		return []string{"g_r_AN_AMPA" + ps, "g_d_AN_AMPA" + ps, "g_r_AN_NMDA" + ps, "g_d_AN_NMDA" + ps}
	}
	kn := rc.Kind.String()
	return []string{"g_r_" + kn + ps, "g_d_" + kn + ps}
}

// VarByIndex returns variable using index (0 = first variable in VarNames list)
func (rc *Receptor) VarByIndex(idx int) float64 {
	switch idx {
	case 0:
		return rc.State.Gr
	case 1:
		return rc.State.Gd
	case 2:
		return rc.NMDAState.Gr
	case 3:
		return rc.NMDAState.Gd
	}
	return 0
}

// VarByName returns variable by name, or error
func (rc *Receptor) VarByName(varNm string) (float64, error) {
	for i, nm := range rc.VarNames() {
		if nm == varNm {
			return rc.VarByIndex(i), nil
		}
	}
	return 0, fmt.Errorf("Receptor VarByName: variable name: %v not valid", varNm)
}
