// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import "math"

// NaParams control the fast sodium channel, with m^3 h gating,
// based on Mainen & Sejnowski (1996).
type NaParams struct {
	Gbar float64 `def:"0" desc:"maximal conductance, in uS -- 0 = channel is off"`
	E    float64 `def:"50" desc:"reversal potential, in mV"`
	Qt   float64 `def:"3.21" desc:"temperature factor multiplying the gating rates"`
}

func (np *NaParams) Defaults() {
	np.Gbar = 0
	np.E = 50
	np.Qt = 3.21
}

// On returns true if the channel contributes any conductance
func (np *NaParams) On() bool {
	return np.Gbar > 0
}

// MRates returns the steady-state value and time constant (msec) of the
// activation gate m at membrane potential v.
func (np *NaParams) MRates(v float64) (inf, tau float64) {
	x := v + 35.013
	a := 0.182 * vtrap(x, 9)
	b := 0.124 * vtrap(-x, 9)
	return a / (a + b), 1 / (np.Qt * (a + b))
}

// HRates returns the steady-state value and time constant (msec) of the
// inactivation gate h at membrane potential v.
func (np *NaParams) HRates(v float64) (inf, tau float64) {
	xa := v + 50.013
	xb := v + 75.013
	a := 0.024 * vtrap(xa, 5)
	b := 0.0091 * vtrap(-xb, 5)
	return 1 / (1 + math.Exp((v+65)/6.2)), 1 / (np.Qt * (a + b))
}

// Step advances the gates in st over dt at fixed membrane potential v.
func (np *NaParams) Step(st *State, v, dt float64) {
	minf, mtau := np.MRates(v)
	hinf, htau := np.HRates(v)
	st.M = relax(st.M, minf, mtau, dt)
	st.H = relax(st.H, hinf, htau, dt)
}

// G returns the conductance for given gating state
func (np *NaParams) G(st *State) float64 {
	return np.Gbar * st.M * st.M * st.M * st.H
}

// Current returns the Na current and its slope at v, holding the gates fixed.
func (np *NaParams) Current(st *State, v float64) (i, di float64) {
	g := np.G(st)
	return g * (np.E - v), -g
}
