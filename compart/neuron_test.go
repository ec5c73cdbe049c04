// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/emer/cmneuron/receptor"
)

func twoCompNeuron(t *testing.T) *Neuron {
	t.Helper()
	nr := NewNeuron()
	if _, err := nr.AddCompartment(-1, NewCompParams(1, 0, 0.1, -70)); err != nil {
		t.Fatal(err)
	}
	if _, err := nr.AddCompartment(0, NewCompParams(0.1, 0.1, 0.01, -70)); err != nil {
		t.Fatal(err)
	}
	if _, err := nr.AddReceptor(1, receptor.AMPA); err != nil {
		t.Fatal(err)
	}
	return nr
}

func TestAdvanceErrors(t *testing.T) {
	nr := NewNeuron()
	if err := nr.Advance(0.1, nil, nil); !errors.Is(err, ErrUnconfigured) {
		t.Errorf("empty neuron: expected ErrUnconfigured, got: %v", err)
	}

	nr = twoCompNeuron(t)
	if err := nr.Advance(0, nil, nil); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("zero dt: expected ErrInvalidParam, got: %v", err)
	}
	err := nr.Advance(0.1, nil, []Spike{{Port: 0, Weight: 1}, {Port: 1, Weight: 1}})
	var pe *receptor.PortError
	if !errors.As(err, &pe) || pe.Port != 1 || pe.N != 1 || !errors.Is(err, ErrUnknownPort) {
		t.Errorf("bad spike port: %v", err)
	}
	if !strings.Contains(err.Error(), "valid range is [0, 1[") {
		t.Errorf("bad spike port message: %v", err)
	}
	if err := nr.Advance(0.1, []float64{1, 2, 3}, nil); !errors.Is(err, ErrUnknownPort) {
		t.Errorf("too many currents: %v", err)
	}
	if nr.Time.Step != 0 || nr.Tree.Frozen {
		t.Errorf("failed Advance changed state: step %d frozen %v", nr.Time.Step, nr.Tree.Frozen)
	}
	if g, _ := nr.ReadReceptorConductance(0); g != 0 {
		t.Errorf("failed Advance delivered a spike: g = %v", g)
	}
}

func TestPortChecks(t *testing.T) {
	nr := twoCompNeuron(t)
	for p := -1; p < 4; p++ {
		err := nr.CheckCurrentPort(p)
		if (p >= 0 && p < 2) != (err == nil) {
			t.Errorf("current port %d: %v", p, err)
		}
		if err != nil && (!errors.Is(err, ErrUnknownPort) || !strings.Contains(err.Error(), "current port") || !strings.Contains(err.Error(), "[0, 2[")) {
			t.Errorf("current port %d message: %v", p, err)
		}
		err = nr.CheckSpikePort(p)
		if (p == 0) != (err == nil) {
			t.Errorf("spike port %d: %v", p, err)
		}
	}
	if _, err := nr.AddReceptor(2, receptor.GABA); !errors.Is(err, ErrUnknownCompartment) {
		t.Errorf("receptor on missing compartment: %v", err)
	}
}

func TestFrozenAfterStep(t *testing.T) {
	nr := twoCompNeuron(t)
	if err := nr.Advance(0.1, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := nr.AddCompartment(0, NewCompParams(0.1, 0.1, 0.01, -70)); !errors.Is(err, ErrDuplicateConfig) {
		t.Errorf("AddCompartment after step: %v", err)
	}
	if _, err := nr.AddReceptor(0, receptor.GABA); !errors.Is(err, ErrDuplicateConfig) {
		t.Errorf("AddReceptor after step: %v", err)
	}
	if nr.NComps() != 2 || nr.NReceptors() != 1 {
		t.Errorf("structure changed: %d comps %d receptors", nr.NComps(), nr.NReceptors())
	}
}

// Advance must match delivering, linearizing and decaying through the
// receptor Set, with the system assembled and solved separately.
func TestAdvanceReceptorSet(t *testing.T) {
	const dt = 0.1
	nr := twoCompNeuron(t)
	var rs receptor.Set
	if _, err := rs.AddKind(&nr.Tree, 1, receptor.AMPA); err != nil {
		t.Fatal(err)
	}
	weights := []float64{0.5, 0.25, 0, 0}
	var sys System
	var ds DenseSolver
	want := make([]float64, 2)
	for step, w := range weights {
		var spikes []Spike
		if w > 0 {
			spikes = []Spike{{Port: 0, Weight: w}}
			if err := rs.Deliver(0, w); err != nil {
				t.Fatal(err)
			}
		}
		g, i, err := rs.Linearize(0, nr.Tree.Comps[1].V)
		if err != nil {
			t.Fatal(err)
		}
		if err := nr.Tree.Assemble(&sys, dt, nil, []float64{0, g}, []float64{0, i}); err != nil {
			t.Fatal(err)
		}
		if err := ds.Solve(&sys, want); err != nil {
			t.Fatal(err)
		}
		rs.Decay(dt)

		if err := nr.Advance(dt, nil, spikes); err != nil {
			t.Fatal(err)
		}
		checkClose(t, "voltages", voltages(nr), want, 1e-12, 1e-12)
		gn, _ := nr.ReadReceptorConductance(0)
		gs, _ := rs.Conductance(0)
		if math.Abs(gn-gs) > 1e-12 {
			t.Errorf("step %d conductance: %v != %v", step, gn, gs)
		}
	}
	if !(voltages(nr)[1] > -70) {
		t.Errorf("excitatory input did not depolarize: %v", voltages(nr))
	}
}

func TestConfigure(t *testing.T) {
	var cfg Config
	root := cfg.AddComp(-1, NewCompParams(1, 0, 0.1, -70))
	dend := cfg.AddComp(root, NewCompParams(0.1, 0.1, 0.01, -70))
	cfg.AddRec(dend, receptor.AMPA)
	cfg.AddRec(root, receptor.GABAB)

	nr := NewNeuron()
	if err := nr.Configure(&cfg); err != nil {
		t.Fatal(err)
	}
	if nr.NComps() != 2 || nr.NReceptors() != 2 || nr.Recs.Recs[1].Kind != receptor.GABAB {
		t.Errorf("configured: %d comps %d receptors", nr.NComps(), nr.NReceptors())
	}
	if err := nr.Configure(&cfg); !errors.Is(err, ErrDuplicateConfig) {
		t.Errorf("second Configure: %v", err)
	}

	bad := cfg
	bad.Recs = append([]RecConfig{}, cfg.Recs...)
	bad.Recs = append(bad.Recs, RecConfig{Comp: 7, Params: receptor.KindParams(receptor.AMPA)})
	nb := NewNeuron()
	if err := nb.Configure(&bad); !errors.Is(err, ErrUnknownCompartment) {
		t.Errorf("bad receptor: %v", err)
	}
	if nb.NComps() != 0 || nb.NReceptors() != 0 {
		t.Errorf("failed Configure changed neuron: %d comps", nb.NComps())
	}
	if err := nb.Configure(&cfg); err != nil {
		t.Errorf("Configure after failed Configure: %v", err)
	}

	na := NewNeuron()
	na.AddCompartment(-1, NewCompParams(1, 0, 0.1, -70))
	if err := na.Configure(&cfg); !errors.Is(err, ErrDuplicateConfig) {
		t.Errorf("Configure after AddCompartment: %v", err)
	}
}

func TestRecord(t *testing.T) {
	nr := twoCompNeuron(t)
	cp := NewCompParams(0.1, 0.1, 0.01, -70)
	cp.Na.Gbar = 1
	if _, err := nr.AddCompartment(0, cp); err != nil {
		t.Fatal(err)
	}
	if _, err := nr.AddReceptor(2, receptor.AMPANMDA); err != nil {
		t.Fatal(err)
	}
	want := []string{"v_comp0", "v_comp1", "v_comp2", "m_Na2", "h_Na2",
		"g_r_AMPA0", "g_d_AMPA0",
		"g_r_AN_AMPA1", "g_d_AN_AMPA1", "g_r_AN_NMDA1", "g_d_AN_NMDA1"}
	got := nr.Recordables()
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("recordables:\n%v\n%v", got, want)
	}
	if err := nr.Advance(0.1, nil, []Spike{{Port: 0, Weight: 1}}); err != nil {
		t.Fatal(err)
	}
	for _, nm := range got {
		if _, err := nr.Record(nm); err != nil {
			t.Errorf("Record %s: %v", nm, err)
		}
	}
	v1, _ := nr.Record("v_comp1")
	rv, err := nr.ReadVoltage(1)
	if err != nil || rv != v1 {
		t.Errorf("ReadVoltage: %v %v != %v", err, rv, v1)
	}
	gr, _ := nr.Record("g_r_AMPA0")
	gd, _ := nr.Record("g_d_AMPA0")
	g, err := nr.ReadReceptorConductance(0)
	if err != nil || math.Abs(g-(gd-gr)) > 1e-15 || !(g > 0) {
		t.Errorf("conductance: %v, gd - gr: %v", g, gd-gr)
	}
	for _, nm := range []string{"v_comp3", "v_comp01", "v_comp", "m_Na0", "n_K2", "g_r_GABA0", "g_r_AMPA2", "foo"} {
		if _, err := nr.Record(nm); !errors.Is(err, ErrUnknownRecordable) {
			t.Errorf("Record %s: expected ErrUnknownRecordable, got: %v", nm, err)
		}
	}
	if _, err := nr.ReadVoltage(3); !errors.Is(err, ErrUnknownCompartment) {
		t.Errorf("ReadVoltage 3: %v", err)
	}
	if _, err := nr.ReadReceptorConductance(2); !errors.Is(err, ErrUnknownPort) {
		t.Errorf("ReadReceptorConductance 2: %v", err)
	}
}

func TestReset(t *testing.T) {
	nr := twoCompNeuron(t)
	for i := 0; i < 10; i++ {
		if err := nr.Advance(0.1, []float64{0, 0.5}, []Spike{{Port: 0, Weight: 0.1}}); err != nil {
			t.Fatal(err)
		}
	}
	if v, _ := nr.ReadVoltage(1); !(v > -70) {
		t.Errorf("inputs did not depolarize: %v", v)
	}
	nr.Reset()
	for ci := 0; ci < 2; ci++ {
		if v, _ := nr.ReadVoltage(ci); v != -70 {
			t.Errorf("reset voltage %d: %v", ci, v)
		}
	}
	if g, _ := nr.ReadReceptorConductance(0); g != 0 {
		t.Errorf("reset conductance: %v", g)
	}
	if nr.Time.Step != 0 || nr.Time.Time != 0 || nr.NComps() != 2 {
		t.Errorf("reset time: %#v", nr.Time)
	}
	if err := nr.Advance(0.1, nil, nil); err != nil {
		t.Errorf("Advance after Reset: %v", err)
	}
}

func TestActiveChannels(t *testing.T) {
	const dt = 0.025
	mk := func() *Neuron {
		nr := NewNeuron()
		cp := NewCompParams(1, 0, 0.3, -70)
		cp.Na.Gbar = 120
		cp.K.Gbar = 36
		if _, err := nr.AddCompartment(-1, cp); err != nil {
			t.Fatal(err)
		}
		return nr
	}
	run := func(nr *Neuron, amp float64) (vmax float64) {
		vmax = math.Inf(-1)
		for i := 0; i < 2000; i++ {
			if err := nr.Advance(dt, []float64{amp}, nil); err != nil {
				t.Fatal(err)
			}
			v, _ := nr.ReadVoltage(0)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite voltage at step %d", i)
			}
			g := nr.Tree.Comps[0].Gates
			if g.M < 0 || g.M > 1 || g.H < 0 || g.H > 1 || g.N < 0 || g.N > 1 {
				t.Fatalf("gates out of range at step %d: %#v", i, g)
			}
			vmax = math.Max(vmax, v)
		}
		return
	}
	if vmax := run(mk(), 0); vmax > -60 {
		t.Errorf("spontaneous activity without input: vmax = %v", vmax)
	}
	if vmax := run(mk(), 50); vmax < 0 {
		t.Errorf("no spike with strong input: vmax = %v", vmax)
	}
}

func TestSizeReport(t *testing.T) {
	nr := twoCompNeuron(t)
	rep := nr.SizeReport()
	if !strings.Contains(rep, "Comps: 2") || !strings.Contains(rep, "Recs: 1") || !strings.Contains(rep, "TreeSolve") {
		t.Errorf("size report: %v", rep)
	}
}
