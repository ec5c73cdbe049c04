// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// treeFixture is a tree topology given by the parent index of each compartment
type treeFixture struct {
	name string
	pars []int
}

var (
	singleDend = treeFixture{"single dendrite", []int{-1, 0}}
	twoDends   = treeFixture{"two dendrites", []int{-1, 0, 0}}
	dendTwo    = treeFixture{"one dendrite two compartments", []int{-1, 0, 1}}
	deepBranch = treeFixture{"deep branching", []int{-1, 0, 1, 1, 0, 4, 4, 5, 5, 2, 9}}
	chain      = treeFixture{"chain", []int{-1, 0, 1, 2, 3, 4}}
	twoBranch  = treeFixture{"2-branch", []int{-1, 0, 1, 0, 3}}
	fourBranch = treeFixture{"4-branch", []int{-1, 0, 1, 0, 3, 0, 5, 0, 7}}
	eightLeaf  = treeFixture{"8-leaf", []int{-1, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6}}
)

// fixtureParams returns varied but deterministic params for compartment ci.
// If sameEl, all leak reversal potentials are -75.
func fixtureParams(ci int, sameEl bool) CompParams {
	cp := NewCompParams(1, 0, 0.1, -75)
	if ci > 0 {
		cp.Cm = 0.1 + 0.05*float64(ci%4)
		cp.Gc = 0.1 + 0.03*float64(ci%5)
		cp.Gl = 0.01 * float64(1+ci%3)
	}
	if !sameEl {
		cp.El = -75 + 5*float64(ci%3)
	}
	return cp
}

func (tf *treeFixture) params(sameEl bool) []CompParams {
	ps := make([]CompParams, len(tf.pars))
	for ci := range ps {
		ps[ci] = fixtureParams(ci, sameEl)
	}
	return ps
}

func (tf *treeFixture) neuron(t *testing.T, ps []CompParams) *Neuron {
	t.Helper()
	nr := NewNeuron()
	for ci, par := range tf.pars {
		idx, err := nr.AddCompartment(par, ps[ci])
		if err != nil {
			t.Fatalf("%s: %v", tf.name, err)
		}
		if idx != ci {
			t.Fatalf("%s: index %d != %d", tf.name, idx, ci)
		}
	}
	return nr
}

// handSystem builds the dense Crank-Nicolson matrix and vector directly
// from the compartment equations, independently of System.
func handSystem(pars []int, ps []CompParams, v, inj []float64, dt float64) (*mat.Dense, *mat.VecDense) {
	n := len(pars)
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	add := func(i, j int, x float64) { a.Set(i, j, a.At(i, j)+x) }
	for i := 0; i < n; i++ {
		p := &ps[i]
		add(i, i, p.Cm/dt+p.Gl/2)
		bi := p.Cm/dt*v[i] - p.Gl*v[i]/2 + p.Gl*p.El
		if inj != nil {
			bi += inj[i]
		}
		b.SetVec(i, b.AtVec(i)+bi)
		j := pars[i]
		if j < 0 {
			continue
		}
		gc2 := p.Gc / 2
		add(i, i, gc2)
		add(j, j, gc2)
		add(i, j, -gc2)
		add(j, i, -gc2)
		b.SetVec(i, b.AtVec(i)-gc2*(v[i]-v[j]))
		b.SetVec(j, b.AtVec(j)-gc2*(v[j]-v[i]))
	}
	return a, b
}

func denseSolve(t *testing.T, a mat.Matrix, b mat.Vector) []float64 {
	t.Helper()
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		t.Fatal(err)
	}
	return mat.Col(nil, 0, &x)
}

// checkClose reports an error for every element where the values differ by
// more than atol + rtol * |want|, as numpy allclose.
func checkClose(t *testing.T, msg string, got, want []float64, rtol, atol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len %d != %d", msg, len(got), len(want))
	}
	for i := range got {
		dif := math.Abs(got[i] - want[i])
		if !(dif <= atol+rtol*math.Abs(want[i])) {
			t.Errorf("%s: err: idx: %v, got: %v, want: %v, dif: %v", msg, i, got[i], want[i], dif)
		}
	}
}

func voltages(nr *Neuron) []float64 {
	return nr.Tree.Voltages(nil)
}
