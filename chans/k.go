// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// KParams control the delayed rectifier potassium channel, with n gating.
type KParams struct {
	Gbar float64 `def:"0" desc:"maximal conductance, in uS -- 0 = channel is off"`
	E    float64 `def:"-85" desc:"reversal potential, in mV"`
	Qt   float64 `def:"3.21" desc:"temperature factor multiplying the gating rates"`
}

func (kp *KParams) Defaults() {
	kp.Gbar = 0
	kp.E = -85
	kp.Qt = 3.21
}

// On returns true if the channel contributes any conductance
func (kp *KParams) On() bool {
	return kp.Gbar > 0
}

// NRates returns the steady-state value and time constant (msec) of the
// activation gate n at membrane potential v.
func (kp *KParams) NRates(v float64) (inf, tau float64) {
	x := v - 25
	a := 0.02 * vtrap(x, 9)
	b := 0.002 * vtrap(-x, 9)
	return a / (a + b), 1 / (kp.Qt * (a + b))
}

// Step advances the gate in st over dt at fixed membrane potential v.
func (kp *KParams) Step(st *State, v, dt float64) {
	ninf, ntau := kp.NRates(v)
	st.N = relax(st.N, ninf, ntau, dt)
}

// G returns the conductance for given gating state
func (kp *KParams) G(st *State) float64 {
	return kp.Gbar * st.N
}

// Current returns the K current and its slope at v, holding the gate fixed.
func (kp *KParams) Current(st *State, v float64) (i, di float64) {
	g := kp.G(st)
	return g * (kp.E - v), -g
}
