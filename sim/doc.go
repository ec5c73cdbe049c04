// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sim drives compartmental neurons over time: step currents and spike
trains are resolved into per-step inputs, spikes being delivered at the start
of the first step whose left boundary is at or after the spike time.
A Recorder logs state variables into an etable.Table after every step, and a
Population runs many independent neurons in parallel.

Simulations can be described in YAML, for example:

	dt: 0.1
	tmax: 100
	compartments:
	  - {parent: -1, cm: 1, gc: 0, gl: 0.1, el: -70}
	  - {parent: 0, cm: 0.1, gc: 0.1, gl: 0.01, el: -70}
	receptors:
	  - {comp: 1, kind: AMPA}
	currents:
	  - {comp: 0, amp: 0.1, start: 10, stop: 60}
	spikes:
	  - {port: 0, weight: 0.01, start: 20, stop: 40, period: 2}
	record: [v_comp0, v_comp1, g_r_AMPA0]
*/
package sim
