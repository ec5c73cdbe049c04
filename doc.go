// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cmneuron is the overall repository for multi-compartment neuron
simulation code.  This top-level of the repository has no functional code --
everything is organized into the following sub-packages:

* compart: the compartment tree, the Crank-Nicolson system assembly, the
O(N) tree solver (with a dense gonum solver as reference), and the Neuron
type that advances the voltages of all compartments by one step.

* receptor: bi-exponential synaptic receptors (AMPA, GABA, NMDA, AMPA_NMDA,
GABA_B) located on compartments and addressed by spike receptor ports.

* chans: Hodgkin-Huxley style sodium and potassium channels that can be
enabled per compartment.

* sim: step currents, spike trains, a time-ordered spike queue, etable-based
recording of state variables, YAML configuration, and a Population that runs
many neurons in parallel.

* cmd/cmsim: command-line front end that runs a YAML-described simulation and
writes the recorded traces as CSV.
*/
package cmneuron
