// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package receptor provides conductance-based synaptic receptors for
compartmental neurons: AMPA, GABA-A, NMDA (with magnesium block), a combined
AMPA+NMDA receptor, and GABA-B.

Each receptor uses a bi-exponential (difference of exponentials) kernel,
normalized to unit peak conductance per unit spike weight.  The rise and decay
states are advanced with exact exponential propagators every step, and the
resulting current is linearized around the current membrane potential for the
implicit (Crank-Nicolson) voltage update of the host compartment.
*/
package receptor
