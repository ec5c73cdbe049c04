// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System is the linear system A v = b of one implicit step, stored with the
// sparsity of the compartment tree: A has Diag on the diagonal and
// A[i][Par[i]] = A[Par[i]][i] = Off[i] for every non-root i.
type System struct {
	Diag []float64
	Off  []float64
	RHS  []float64
	Par  []int
}

// NewSystem returns a system sized for n compartments
func NewSystem(n int) *System {
	sys := &System{}
	sys.SetN(n)
	return sys
}

// SetN resizes the system for n compartments, reusing storage
func (sys *System) SetN(n int) {
	if cap(sys.Diag) >= n {
		sys.Diag = sys.Diag[:n]
		sys.Off = sys.Off[:n]
		sys.RHS = sys.RHS[:n]
		sys.Par = sys.Par[:n]
		return
	}
	sys.Diag = make([]float64, n)
	sys.Off = make([]float64, n)
	sys.RHS = make([]float64, n)
	sys.Par = make([]int, n)
}

// Len returns the number of rows
func (sys *System) Len() int {
	return len(sys.Diag)
}

// Zero sets all entries to zero
func (sys *System) Zero() {
	for i := range sys.Diag {
		sys.Diag[i] = 0
		sys.Off[i] = 0
		sys.RHS[i] = 0
	}
}

// Dense expands the system into a dense matrix and vector
func (sys *System) Dense() (*mat.Dense, *mat.VecDense) {
	n := sys.Len()
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, sys.Diag[i])
		b.SetVec(i, sys.RHS[i])
		if p := sys.Par[i]; p >= 0 {
			a.Set(i, p, sys.Off[i])
			a.Set(p, i, sys.Off[i])
		}
	}
	return a, b
}

// MulVec computes A x into y, allocating y if needed
func (sys *System) MulVec(x, y []float64) []float64 {
	n := sys.Len()
	if len(y) != n {
		y = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		y[i] = sys.Diag[i] * x[i]
	}
	for i := 0; i < n; i++ {
		if p := sys.Par[i]; p >= 0 {
			y[i] += sys.Off[i] * x[p]
			y[p] += sys.Off[i] * x[i]
		}
	}
	return y
}

// Assemble fills sys with the Crank-Nicolson (theta = 1/2) system of one step
// of size dt from the current membrane potentials.  inj holds the injected
// current per compartment, and gx, ix the linearized conductance and current
// terms of receptors and active channels per compartment (see chans.Linear).
// Any of inj, gx, ix may be nil.  The tree is not modified.
func (tr *Tree) Assemble(sys *System, dt float64, inj, gx, ix []float64) error {
	if err := tr.Finalize(); err != nil {
		return err
	}
	n := len(tr.Comps)
	for _, xs := range [][]float64{inj, gx, ix} {
		if xs != nil && len(xs) != n {
			return fmt.Errorf("compart.Assemble: input length %d does not match %d compartments", len(xs), n)
		}
	}
	sys.SetN(n)
	for i := range tr.Comps {
		cm := &tr.Comps[i]
		cdt := cm.Cm / dt
		gl2 := cm.Gl / 2
		sys.Par[i] = cm.Par
		sys.Diag[i] = cdt + gl2
		sys.Off[i] = 0
		sys.RHS[i] = (cdt-gl2)*cm.V + cm.Gl*cm.El
		if inj != nil {
			sys.RHS[i] += inj[i]
		}
		if gx != nil {
			sys.Diag[i] += gx[i]
		}
		if ix != nil {
			sys.RHS[i] += ix[i]
		}
	}
	for i := 1; i < n; i++ {
		cm := &tr.Comps[i]
		p := cm.Par
		gc2 := cm.Gc / 2
		dv := gc2 * (cm.V - tr.Comps[p].V)
		sys.Off[i] = -gc2
		sys.Diag[i] += gc2
		sys.Diag[p] += gc2
		sys.RHS[i] -= dv
		sys.RHS[p] += dv
	}
	return nil
}

// Conductance returns the continuous time conductance coupling matrix G,
// with -Gl and -Gc on the diagonal and Gc between parent and child,
// together with the vector Gl * El, so that dv/dt = 0 at G v = -Gl El.
func (tr *Tree) Conductance() (*mat.Dense, *mat.VecDense) {
	n := len(tr.Comps)
	g := mat.NewDense(n, n, nil)
	gle := mat.NewVecDense(n, nil)
	for i := range tr.Comps {
		cm := &tr.Comps[i]
		g.Set(i, i, g.At(i, i)-cm.Gl)
		gle.SetVec(i, cm.Gl*cm.El)
		if p := cm.Par; p >= 0 {
			g.Set(i, i, g.At(i, i)-cm.Gc)
			g.Set(p, p, g.At(p, p)-cm.Gc)
			g.Set(i, p, cm.Gc)
			g.Set(p, i, cm.Gc)
		}
	}
	return g, gle
}
