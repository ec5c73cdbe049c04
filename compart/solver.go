// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"fmt"

	"github.com/goki/ki/kit"
	"gonum.org/v1/gonum/mat"
)

// Solver solves an assembled System for the new membrane potentials.
type Solver interface {
	// Solve writes the solution of sys into v, which must have sys.Len() elements.
	Solve(sys *System, v []float64) error
}

// TreeSolver solves a tree-structured System in O(N) by eliminating each row
// into its parent row from the leaves up, followed by back substitution from
// the root down.  It relies on every parent index being smaller than the
// indexes of its children, which Tree.AddCompartment guarantees.
type TreeSolver struct {
	gg []float64
	ff []float64
}

func (ts *TreeSolver) Solve(sys *System, v []float64) error {
	n := sys.Len()
	if len(v) != n {
		return fmt.Errorf("compart.TreeSolver: solution length %d does not match system size %d", len(v), n)
	}
	if n == 0 {
		return ErrUnconfigured
	}
	if cap(ts.gg) < n {
		ts.gg = make([]float64, n)
		ts.ff = make([]float64, n)
	}
	gg := ts.gg[:n]
	ff := ts.ff[:n]
	copy(gg, sys.Diag)
	copy(ff, sys.RHS)
	for i := n - 1; i > 0; i-- {
		p := sys.Par[i]
		r := sys.Off[i] / gg[i]
		gg[p] -= r * sys.Off[i]
		ff[p] -= r * ff[i]
	}
	v[0] = ff[0] / gg[0]
	for i := 1; i < n; i++ {
		v[i] = (ff[i] - sys.Off[i]*v[sys.Par[i]]) / gg[i]
	}
	return nil
}

// DenseSolver expands the System into a dense matrix and solves it with
// gonum.  It is O(N^3) and serves as a reference for TreeSolver.
type DenseSolver struct {
	x mat.VecDense
}

func (ds *DenseSolver) Solve(sys *System, v []float64) error {
	n := sys.Len()
	if len(v) != n {
		return fmt.Errorf("compart.DenseSolver: solution length %d does not match system size %d", len(v), n)
	}
	if n == 0 {
		return ErrUnconfigured
	}
	a, b := sys.Dense()
	ds.x.Reset()
	if err := ds.x.SolveVec(a, b); err != nil {
		return fmt.Errorf("compart.DenseSolver: %w", err)
	}
	for i := range v {
		v[i] = ds.x.AtVec(i)
	}
	return nil
}

// SolverTypes select the Solver used by a Neuron
type SolverTypes int32

//go:generate stringer -type=SolverTypes

var KiT_SolverTypes = kit.Enums.AddEnum(SolverTypesN, kit.NotBitFlag, nil)

func (ev SolverTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SolverTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// MarshalText is used for yaml and other text encodings
func (ev SolverTypes) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// UnmarshalText is used for yaml and other text encodings
func (ev *SolverTypes) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The solver types
const (
	// TreeSolve uses the O(N) tree elimination solver
	TreeSolve SolverTypes = iota

	// DenseSolve uses a dense LU solve of the expanded matrix
	DenseSolve

	SolverTypesN
)

// NewSolver returns a new Solver of given type
func NewSolver(st SolverTypes) Solver {
	switch st {
	case DenseSolve:
		return &DenseSolver{}
	default:
		return &TreeSolver{}
	}
}
