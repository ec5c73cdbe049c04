// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package compart provides multi-compartment neurons: a tree of passive (and
optionally active) membrane compartments coupled by axial conductances, with
conductance-based synaptic receptors, integrated in time with an implicit
Crank-Nicolson (theta = 1/2) scheme.

The tree is an arena of Compartment values indexed 0..N-1 in order of
addition, with the root at index 0 and every parent index smaller than the
indexes of its children.  Each step the Tree assembles a System with tree
sparsity (Tree.Assemble), which the TreeSolver solves in O(N) by eliminating
rows from the leaves to the root, followed by back substitution from the root
to the leaves.  The DenseSolver solves the same System with a dense LU
factorization, as a reference.

The order of operations within Neuron.Advance is:

  - incoming spikes are added to their receptors
  - active channel gates are advanced explicitly at the current voltage
  - channel and receptor currents are linearized around the current voltage
  - the System is assembled and solved for the new voltages
  - receptor conductances decay by one exact exponential step
  - time advances by dt

Units are msec, mV, nF, uS and nA.
*/
package compart
