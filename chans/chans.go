// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides voltage-gated ion channels for compartmental neurons,
based on the standard equivalent RC circuit model of a membrane patch
(i.e., basic Ohms law equations).
Includes the fast sodium (Na) and delayed rectifier potassium (K) channels
of the Hodgkin-Huxley type.

Gating variables are advanced explicitly with exact exponential relaxation at
fixed membrane potential, and the resulting channel currents are linearized
for the implicit (Crank-Nicolson) voltage update, via Linear.
*/
package chans

import "math"

// Linear converts a membrane current i(v) and its slope di/dv, both evaluated
// at the membrane potential v at the start of the step, into the diagonal
// conductance (gval) and right-hand side current (ival) terms of the
// Crank-Nicolson update of the host compartment.
// For an ohmic current g*(E - v) this gives gval = g/2 and ival = g*E - g*v/2.
func Linear(i, di, v float64) (gval, ival float64) {
	return -di / 2, i - di*v/2
}

// State holds the gating variables of the active channels of one compartment.
type State struct {
	M float64 `desc:"Na activation gate"`
	H float64 `desc:"Na inactivation gate"`
	N float64 `desc:"K activation gate"`
}

// Init sets all gates to their steady-state values at membrane potential v.
func (st *State) Init(na *NaParams, k *KParams, v float64) {
	st.M, _ = na.MRates(v)
	st.H, _ = na.HRates(v)
	st.N, _ = k.NRates(v)
}

// vtrap returns x / (1 - exp(-x/k)), with the removable singularity at x = 0.
func vtrap(x, k float64) float64 {
	if x == 0 {
		return k
	}
	return x / -math.Expm1(-x/k)
}

// relax advances gate x toward inf with time constant tau over dt.
func relax(x, inf, tau, dt float64) float64 {
	p := math.Exp(-dt / tau)
	return x*p + (1-p)*inf
}
