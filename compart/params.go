// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"fmt"
	"math"

	"github.com/emer/cmneuron/chans"
)

// CompParams are the electrical parameters of one compartment.
// Units are nF, uS, mV, msec and nA throughout.
type CompParams struct {
	Cm float64 `def:"1" min:"0" desc:"membrane capacitance -- must be > 0"`
	Gc float64 `def:"0.01" min:"0" desc:"coupling conductance to the parent compartment -- ignored for the root"`
	Gl float64 `def:"0.1" min:"0" desc:"leak conductance"`
	El float64 `def:"-70" desc:"leak reversal potential"`

	V0On bool    `desc:"use V0 as the initial membrane potential, instead of El"`
	V0   float64 `viewif:"V0On" desc:"initial membrane potential"`

	Na chans.NaParams `view:"inline" desc:"fast sodium channel"`
	K  chans.KParams  `view:"inline" desc:"delayed rectifier potassium channel"`
}

func (cp *CompParams) Defaults() {
	cp.Cm = 1
	cp.Gc = 0.01
	cp.Gl = 0.1
	cp.El = -70
	cp.V0On = false
	cp.V0 = -70
	cp.Na.Defaults()
	cp.K.Defaults()
}

// NewCompParams returns default params with the given passive values.
func NewCompParams(cm, gc, gl, el float64) CompParams {
	cp := CompParams{}
	cp.Defaults()
	cp.Cm, cp.Gc, cp.Gl, cp.El = cm, gc, gl, el
	return cp
}

// InitV returns the initial membrane potential.
func (cp *CompParams) InitV() float64 {
	if cp.V0On {
		return cp.V0
	}
	return cp.El
}

// HasActive returns true if any of the active channels are on.
func (cp *CompParams) HasActive() bool {
	return cp.Na.On() || cp.K.On()
}

// Validate returns an error wrapping ErrInvalidParam for unusable params.
func (cp *CompParams) Validate() error {
	switch {
	case !(cp.Cm > 0) || math.IsInf(cp.Cm, 0):
		return fmt.Errorf("Cm = %v must be > 0: %w", cp.Cm, ErrInvalidParam)
	case !(cp.Gc >= 0) || math.IsInf(cp.Gc, 0):
		return fmt.Errorf("Gc = %v must be >= 0: %w", cp.Gc, ErrInvalidParam)
	case !(cp.Gl >= 0) || math.IsInf(cp.Gl, 0):
		return fmt.Errorf("Gl = %v must be >= 0: %w", cp.Gl, ErrInvalidParam)
	case !finite(cp.El):
		return fmt.Errorf("El = %v: %w", cp.El, ErrInvalidParam)
	case cp.V0On && !finite(cp.V0):
		return fmt.Errorf("V0 = %v: %w", cp.V0, ErrInvalidParam)
	case !(cp.Na.Gbar >= 0) || (cp.Na.On() && !(cp.Na.Qt > 0)):
		return fmt.Errorf("Na Gbar = %v, Qt = %v: %w", cp.Na.Gbar, cp.Na.Qt, ErrInvalidParam)
	case !(cp.K.Gbar >= 0) || (cp.K.On() && !(cp.K.Qt > 0)):
		return fmt.Errorf("K Gbar = %v, Qt = %v: %w", cp.K.Gbar, cp.K.Qt, ErrInvalidParam)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
