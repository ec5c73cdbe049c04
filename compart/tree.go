// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/cmneuron/chans"
)

// Compartment is one node of the compartment tree: a lumped patch of membrane
// with its own capacitance, leak and active channels, coupled to its parent.
type Compartment struct {
	CompParams

	Idx int `desc:"index of this compartment in the tree, assigned in order of addition"`
	Par int `desc:"index of the parent compartment, -1 for the root"`

	V     float64     `desc:"membrane potential -- updated once per step by the solver"`
	Gates chans.State `desc:"gating state of active channels"`

	Kids []int `view:"-" desc:"indexes of child compartments, derived by Tree.Finalize"`
}

// Init initializes the membrane potential and gating state
func (cm *Compartment) Init() {
	cm.V = cm.InitV()
	cm.Gates.Init(&cm.Na, &cm.K, cm.V)
}

// IsRoot returns true if this is the root compartment
func (cm *Compartment) IsRoot() bool {
	return cm.Par < 0
}

// Tree is an arena of compartments, indexed 0..N-1 in order of addition.
// The first compartment added is the root, and every other compartment refers
// to a parent that was added before it, so a parent index is always smaller
// than the index of its children.
type Tree struct {
	Comps []Compartment

	// Frozen is set by the first simulation step: the structure is immutable after that.
	Frozen bool

	final  bool
	leaves []int
}

// Len returns the number of compartments
func (tr *Tree) Len() int {
	return len(tr.Comps)
}

// HasComp returns true if a compartment with given index exists
func (tr *Tree) HasComp(idx int) bool {
	return idx >= 0 && idx < len(tr.Comps)
}

// AddCompartment appends a new compartment with given parent and params,
// returning its index.  The first compartment must have parent -1 (the root),
// and all subsequent ones must name an existing parent.
// On error the tree is unchanged, and the error is a *CompartmentError
// wrapping ErrDuplicateRoot, ErrUnknownParent, ErrInvalidParam or ErrDuplicateConfig.
func (tr *Tree) AddCompartment(parent int, p CompParams) (int, error) {
	idx := len(tr.Comps)
	fail := func(err error) (int, error) {
		return -1, &CompartmentError{Op: "AddCompartment", Idx: idx, Parent: parent, Err: err}
	}
	switch {
	case tr.Frozen:
		return fail(fmt.Errorf("structure is frozen after the first step: %w", ErrDuplicateConfig))
	case parent == -1 && idx > 0:
		return fail(ErrDuplicateRoot)
	case parent != -1 && (parent < 0 || parent >= idx):
		return fail(ErrUnknownParent)
	}
	if err := p.Validate(); err != nil {
		return fail(err)
	}
	tr.Comps = append(tr.Comps, Compartment{CompParams: p, Idx: idx, Par: parent})
	tr.Comps[idx].Init()
	tr.final = false
	return idx, nil
}

// Finalize derives the child lists and leaves.  It is called implicitly by
// the first simulation step, and returns ErrUnconfigured for an empty tree.
func (tr *Tree) Finalize() error {
	if len(tr.Comps) == 0 {
		return ErrUnconfigured
	}
	if tr.final {
		return nil
	}
	nk := make([]int, len(tr.Comps))
	for ci := 1; ci < len(tr.Comps); ci++ {
		nk[tr.Comps[ci].Par]++
	}
	tr.leaves = tr.leaves[:0]
	for ci := range tr.Comps {
		cm := &tr.Comps[ci]
		cm.Kids = make([]int, 0, nk[ci])
		if nk[ci] == 0 {
			tr.leaves = append(tr.leaves, ci)
		}
	}
	for ci := 1; ci < len(tr.Comps); ci++ {
		par := &tr.Comps[tr.Comps[ci].Par]
		par.Kids = append(par.Kids, ci)
	}
	tr.final = true
	return nil
}

// Comp returns the compartment at given index, or an error wrapping
// ErrUnknownCompartment.
func (tr *Tree) Comp(idx int) (*Compartment, error) {
	if !tr.HasComp(idx) {
		return nil, &CompartmentError{Op: "Comp", Idx: idx, Parent: -1, Err: fmt.Errorf("valid range is [0, %d[: %w", len(tr.Comps), ErrUnknownCompartment)}
	}
	return &tr.Comps[idx], nil
}

// Root returns the root compartment, nil if empty
func (tr *Tree) Root() *Compartment {
	if len(tr.Comps) == 0 {
		return nil
	}
	return &tr.Comps[0]
}

// Leaves returns the indexes of compartments without children.
func (tr *Tree) Leaves() []int {
	tr.Finalize()
	return tr.leaves
}

// NKids returns the number of children of given compartment.
func (tr *Tree) NKids(idx int) int {
	if !tr.HasComp(idx) {
		return 0
	}
	tr.Finalize()
	return len(tr.Comps[idx].Kids)
}

// InitV initializes the membrane potential and gates of all compartments.
func (tr *Tree) InitV() {
	for ci := range tr.Comps {
		tr.Comps[ci].Init()
	}
}

// Voltages copies the membrane potentials into vs, allocating if needed.
func (tr *Tree) Voltages(vs []float64) []float64 {
	if len(vs) != len(tr.Comps) {
		vs = make([]float64, len(tr.Comps))
	}
	for ci := range tr.Comps {
		vs[ci] = tr.Comps[ci].V
	}
	return vs
}

// SizeReport returns a string reporting the size of the tree.
func (tr *Tree) SizeReport() string {
	var b strings.Builder
	nmem := len(tr.Comps) * int(unsafe.Sizeof(Compartment{}))
	nk := 0
	for ci := range tr.Comps {
		nk += cap(tr.Comps[ci].Kids)
	}
	nmem += nk * int(unsafe.Sizeof(int(0)))
	fmt.Fprintf(&b, "%14s:\t Comps: %d\t Leaves: %d\t CompMem: %v\n", "Tree", len(tr.Comps), len(tr.Leaves()), (datasize.ByteSize)(nmem).HumanReadable())
	return b.String()
}
