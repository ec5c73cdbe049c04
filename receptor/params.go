// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receptor

import (
	"fmt"
	"math"
)

// MgParams control the voltage-dependent magnesium block of NMDA receptors:
//
//	B(v) = 1 / (1 + A * exp(-K * v))
type MgParams struct {
	A float64 `def:"0.3" desc:"magnitude of the block at v = 0 (reflects extracellular Mg concentration)"`
	K float64 `def:"0.1" desc:"voltage sensitivity of the block, in 1/mV"`
}

func (mp *MgParams) Defaults() {
	mp.A = 0.3
	mp.K = 0.1
}

// Block returns the fraction of unblocked channels at membrane potential v,
// along with its derivative with respect to v.
func (mp *MgParams) Block(v float64) (b, db float64) {
	ex := mp.A * math.Exp(-mp.K*v)
	d := 1 + ex
	return 1 / d, mp.K * ex / (d * d)
}

// Params are the parameters for one receptor.
// Use KindParams to get the defaults for a given Kind.
type Params struct {
	Kind      Kinds    `desc:"receptor kind -- determines default kinetics and which of the params below are used"`
	Syn       BiExp    `view:"inline" desc:"kinetics of the primary conductance (the AMPA component for AMPA_NMDA)"`
	NMDA      BiExp    `viewif:"Kind=AMPA_NMDA" desc:"kinetics of the NMDA component for AMPA_NMDA"`
	E         float64  `desc:"reversal potential, in mV"`
	NMDARatio float64  `def:"2" viewif:"Kind=AMPA_NMDA" desc:"ratio of NMDA to AMPA peak conductance for AMPA_NMDA"`
	Mg        MgParams `viewif:"Kind=NMDA,AMPA_NMDA" desc:"magnesium block of the NMDA component"`
}

// KindParams returns the default parameters for given receptor kind.
func KindParams(kind Kinds) Params {
	rp := Params{Kind: kind}
	rp.Defaults()
	return rp
}

// Defaults sets the default parameters for the current Kind.
func (rp *Params) Defaults() {
	switch rp.Kind {
	case AMPA:
		rp.Syn.Set(0.2, 3)
		rp.E = 0
	case GABA:
		rp.Syn.Set(0.2, 10)
		rp.E = -80
	case NMDA:
		rp.Syn.Set(0.2, 43)
		rp.E = 0
	case AMPANMDA:
		rp.Syn.Set(0.2, 3)
		rp.NMDA.Set(0.2, 43)
		rp.E = 0
	case GABAB:
		rp.Syn.Set(45, 50)
		rp.E = -90
	}
	rp.NMDARatio = 2
	rp.Mg.Defaults()
}

// Update must be called after any changes to parameters
func (rp *Params) Update() {
	rp.Syn.Update()
	if rp.Kind == AMPANMDA {
		rp.NMDA.Update()
	}
}

// Validate returns an error wrapping ErrInvalidParam if the params are unusable.
func (rp *Params) Validate() error {
	if rp.Kind < 0 || rp.Kind >= KindsN {
		return fmt.Errorf("receptor kind %v: %w", rp.Kind, ErrInvalidParam)
	}
	if err := rp.Syn.Validate(); err != nil {
		return fmt.Errorf("%v: %w", rp.Kind, err)
	}
	if math.IsNaN(rp.E) || math.IsInf(rp.E, 0) {
		return fmt.Errorf("%v: reversal potential E = %v: %w", rp.Kind, rp.E, ErrInvalidParam)
	}
	if rp.Kind == AMPANMDA {
		if err := rp.NMDA.Validate(); err != nil {
			return fmt.Errorf("%v NMDA: %w", rp.Kind, err)
		}
		if !(rp.NMDARatio >= 0) {
			return fmt.Errorf("%v: NMDARatio = %v must be >= 0: %w", rp.Kind, rp.NMDARatio, ErrInvalidParam)
		}
	}
	return nil
}
