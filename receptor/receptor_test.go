// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receptor

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// difTol is the numerical tolerance for difference
const difTol = 1.0e-10

type nComps int

func (nc nComps) HasComp(idx int) bool { return idx >= 0 && idx < int(nc) }

func TestBiExpPeak(t *testing.T) {
	for kind := AMPA; kind < KindsN; kind++ {
		rp := KindParams(kind)
		be := &rp.Syn
		pk := be.Kernel(be.TPeak)
		if math.Abs(pk-1) > difTol {
			t.Errorf("%v: kernel at peak: %v", kind, pk)
		}
		if be.Kernel(be.TPeak*0.9) >= pk || be.Kernel(be.TPeak*1.1) >= pk {
			t.Errorf("%v: kernel does not peak at TPeak = %v", kind, be.TPeak)
		}
		if be.Kernel(-1) != 0 || be.Kernel(0) != 0 {
			t.Errorf("%v: kernel before or at spike: %v %v", kind, be.Kernel(-1), be.Kernel(0))
		}
	}
}

// The discrete state after a spike follows the kernel exactly.
func TestBiExpSteps(t *testing.T) {
	const (
		dt = 0.1
		w  = 0.7
	)
	rc := Receptor{Params: KindParams(GABA)}
	rc.Spike(w)
	for i := 1; i <= 500; i++ {
		rc.Decay(dt)
		want := w * rc.Syn.Kernel(float64(i)*dt)
		if dif := math.Abs(rc.G() - want); dif > difTol {
			t.Errorf("err: step: %v, g: %v != %v, dif: %v", i, rc.G(), want, dif)
		}
	}
}

func TestBiExpSurf(t *testing.T) {
	var be BiExp
	be.Set(0.2, 3)
	const dt = 0.001
	sum := 0.0
	for i := 1; i < 100000; i++ {
		sum += be.Kernel(float64(i) * dt)
	}
	sum *= dt
	if dif := math.Abs(sum - be.Surf()); dif > 1e-5 {
		t.Errorf("surf: %v, integral: %v, dif: %v", be.Surf(), sum, dif)
	}
	tp := 0.2 * 3 / 2.8 * math.Log(3/0.2)
	surf := (3 - 0.2) / (-math.Exp(-tp/0.2) + math.Exp(-tp/3))
	if dif := math.Abs(surf - be.Surf()); dif > difTol {
		t.Errorf("surf: %v != %v", be.Surf(), surf)
	}
}

func TestKindDefaults(t *testing.T) {
	tests := []struct {
		kind       Kinds
		tr, td, e  float64
		str, gname string
	}{
		{AMPA, 0.2, 3, 0, "AMPA", "g_r_AMPA0"},
		{GABA, 0.2, 10, -80, "GABA", "g_r_GABA0"},
		{NMDA, 0.2, 43, 0, "NMDA", "g_r_NMDA0"},
		{AMPANMDA, 0.2, 3, 0, "AMPA_NMDA", "g_r_AN_AMPA0"},
		{GABAB, 45, 50, -90, "GABA_B", "g_r_GABA_B0"},
	}
	for _, tt := range tests {
		rp := KindParams(tt.kind)
		if rp.Syn.TauR != tt.tr || rp.Syn.TauD != tt.td || rp.E != tt.e {
			t.Errorf("%v: params: %+v", tt.kind, rp)
		}
		if err := rp.Validate(); err != nil {
			t.Errorf("%v: %v", tt.kind, err)
		}
		if tt.kind.String() != tt.str {
			t.Errorf("string: %v != %v", tt.kind.String(), tt.str)
		}
		var k Kinds
		if err := k.UnmarshalText([]byte(tt.str)); err != nil || k != tt.kind {
			t.Errorf("UnmarshalText %s: %v %v", tt.str, k, err)
		}
		rc := Receptor{Params: rp}
		if rc.VarNames()[0] != tt.gname {
			t.Errorf("var names: %v", rc.VarNames())
		}
	}
	var k Kinds
	if err := k.FromString("AMPA_GABA"); err == nil {
		t.Errorf("expected error for unknown kind")
	}
}

func TestSet(t *testing.T) {
	var rs Set
	cc := nComps(2)
	if _, err := rs.AddKind(cc, 2, AMPA); !errors.Is(err, ErrUnknownCompartment) {
		t.Errorf("add on missing compartment: %v", err)
	}
	bad := KindParams(AMPA)
	bad.Syn.TauD = 0.1
	if _, err := rs.Add(cc, 0, bad); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("add with TauD < TauR: %v", err)
	}
	if rs.Len() != 0 {
		t.Fatalf("failed adds changed the set: %d", rs.Len())
	}
	for i, kind := range []Kinds{AMPA, GABA, NMDA} {
		port, err := rs.AddKind(cc, i%2, kind)
		if err != nil || port != i {
			t.Errorf("add %v: port %v err %v", kind, port, err)
		}
	}
	if rs.NOnComp(0) != 2 || rs.NOnComp(1) != 1 {
		t.Errorf("NOnComp: %v %v", rs.NOnComp(0), rs.NOnComp(1))
	}
	err := rs.Deliver(3, 1)
	var pe *PortError
	if !errors.As(err, &pe) || pe.Port != 3 || pe.N != 3 || !errors.Is(err, ErrUnknownPort) {
		t.Errorf("deliver to bad port: %v", err)
	}
	if !strings.Contains(err.Error(), "spike port 3, valid range is [0, 3[") {
		t.Errorf("port error message: %v", err)
	}
	if err := rs.Deliver(1, 1); err != nil {
		t.Fatal(err)
	}
	rs.Decay(0.1)
	g, err := rs.Conductance(1)
	if err != nil || !(g > 0) {
		t.Errorf("conductance after spike: %v %v", g, err)
	}
	if g0, _ := rs.Conductance(0); g0 != 0 {
		t.Errorf("conductance without spike: %v", g0)
	}
	gv, iv, err := rs.Linearize(1, -70)
	if err != nil || math.Abs(gv-g/2) > difTol || math.Abs(iv-(g*-80-g*-70/2)) > difTol {
		t.Errorf("linearize: %v %v %v", gv, iv, err)
	}
	rs.Init()
	if g, _ := rs.Conductance(1); g != 0 {
		t.Errorf("conductance after Init: %v", g)
	}
}

// The current slope used for linearization matches finite differences,
// including the magnesium block of NMDA components.
func TestCurrentSlope(t *testing.T) {
	for _, kind := range []Kinds{AMPA, NMDA, AMPANMDA, GABAB} {
		rc := Receptor{Params: KindParams(kind)}
		rc.Spike(1)
		rc.Decay(1)
		for _, v := range []float64{-90, -65, -40, -10, 20} {
			_, di := rc.Current(v)
			const h = 1e-5
			ip, _ := rc.Current(v + h)
			im, _ := rc.Current(v - h)
			num := (ip - im) / (2 * h)
			if dif := math.Abs(di - num); dif > 1e-6 {
				t.Errorf("err: %v v: %v, slope: %v != %v, dif: %v", kind, v, di, num, dif)
			}
		}
	}
}

func TestMgBlock(t *testing.T) {
	var mg MgParams
	mg.Defaults()
	for _, v := range []float64{-80, -40, 0, 40} {
		b, _ := mg.Block(v)
		want := 1 / (1 + 0.3*math.Exp(-0.1*v))
		if math.Abs(b-want) > difTol {
			t.Errorf("block at %v: %v != %v", v, b, want)
		}
	}
	rc := Receptor{Params: KindParams(AMPANMDA)}
	rc.Spike(1)
	rc.Decay(0.5)
	want := rc.State.G() + 2*rc.NMDAState.G()
	if math.Abs(rc.G()-want) > difTol {
		t.Errorf("AMPA_NMDA conductance: %v != %v", rc.G(), want)
	}
	if vn := rc.VarNames(); len(vn) != 4 || vn[3] != "g_d_AN_NMDA0" {
		t.Errorf("var names: %v", vn)
	}
	if v, err := rc.VarByName("g_d_AN_NMDA0"); err != nil || v != rc.NMDAState.Gd {
		t.Errorf("VarByName: %v %v", v, err)
	}
	if _, err := rc.VarByName("g_d_NMDA0"); err == nil {
		t.Errorf("expected VarByName error")
	}
}
