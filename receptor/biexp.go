// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receptor

import (
	"fmt"
	"math"
)

// BiExp is a bi-exponential (difference of exponentials) conductance kernel,
// normalized so that a single spike of unit weight produces a peak conductance of 1.
//
//	g(t) = Norm * (exp(-t/TauD) - exp(-t/TauR))
type BiExp struct {
	TauR float64 `def:"0.2" desc:"rise time constant, in msec"`
	TauD float64 `def:"3" desc:"decay time constant, in msec -- must be > TauR"`

	TPeak float64 `inactive:"+" desc:"time of peak conductance after a spike, in msec, computed from TauR and TauD"`
	Norm  float64 `inactive:"+" view:"-" desc:"normalization factor giving unit peak conductance, computed from TauR and TauD"`
}

// Set sets the time constants and updates the derived values.
func (be *BiExp) Set(tauR, tauD float64) {
	be.TauR = tauR
	be.TauD = tauD
	be.Update()
}

// Update must be called after any changes to the time constants.
func (be *BiExp) Update() {
	if !(be.TauD > be.TauR) || !(be.TauR > 0) {
		be.TPeak = 0
		be.Norm = 0
		return
	}
	be.TPeak = (be.TauR * be.TauD) / (be.TauD - be.TauR) * math.Log(be.TauD/be.TauR)
	be.Norm = 1 / (math.Exp(-be.TPeak/be.TauD) - math.Exp(-be.TPeak/be.TauR))
}

// Validate returns an error if the time constants cannot define a kernel.
func (be *BiExp) Validate() error {
	switch {
	case !(be.TauR > 0) || math.IsInf(be.TauR, 0):
		return fmt.Errorf("rise time constant TauR = %v must be > 0: %w", be.TauR, ErrInvalidParam)
	case !(be.TauD > be.TauR) || math.IsInf(be.TauD, 0):
		return fmt.Errorf("decay time constant TauD = %v must be > TauR = %v: %w", be.TauD, be.TauR, ErrInvalidParam)
	}
	return nil
}

// Kernel returns the conductance at time t after a unit-weight spike.
func (be *BiExp) Kernel(t float64) float64 {
	if t < 0 {
		return 0
	}
	return be.Norm * (math.Exp(-t/be.TauD) - math.Exp(-t/be.TauR))
}

// Surf returns the area under the kernel for a unit-weight spike,
// i.e., the time-averaged conductance per spike per unit time.
func (be *BiExp) Surf() float64 {
	return be.Norm * (be.TauD - be.TauR)
}

// Props returns the exact one-step propagators exp(-dt/TauR), exp(-dt/TauD).
func (be *BiExp) Props(dt float64) (pr, pd float64) {
	return math.Exp(-dt / be.TauR), math.Exp(-dt / be.TauD)
}

// BiExpState holds the rise and decay conductance state of a BiExp kernel.
// Both are non-negative and the conductance is Gd - Gr.
type BiExpState struct {
	Gr float64 `desc:"rise conductance state"`
	Gd float64 `desc:"decay conductance state"`
}

// Init zeros the state
func (st *BiExpState) Init() {
	st.Gr = 0
	st.Gd = 0
}

// Spike adds a spike of weight w to the state.
func (st *BiExpState) Spike(be *BiExp, w float64) {
	s := w * be.Norm
	st.Gr += s
	st.Gd += s
}

// Decay advances the state by one step using the propagators from BiExp.Props.
func (st *BiExpState) Decay(pr, pd float64) {
	st.Gr *= pr
	st.Gd *= pd
}

// G returns the current conductance.
func (st *BiExpState) G() float64 {
	return st.Gd - st.Gr
}
