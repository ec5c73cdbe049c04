// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"bytes"
	"fmt"
	"os"

	"github.com/emer/cmneuron/compart"
	"github.com/emer/cmneuron/receptor"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CompSpec describes one compartment in a config file
type CompSpec struct {
	Parent int      `yaml:"parent" validate:"gte=-1"`
	Cm     float64  `yaml:"cm" validate:"gt=0"`
	Gc     float64  `yaml:"gc" validate:"gte=0"`
	Gl     float64  `yaml:"gl" validate:"gte=0"`
	El     float64  `yaml:"el"`
	V0     *float64 `yaml:"v0,omitempty"`
	GbarNa float64  `yaml:"gbar_na" validate:"gte=0"`
	GbarK  float64  `yaml:"gbar_k" validate:"gte=0"`
}

// Params returns the compartment params
func (cs *CompSpec) Params() compart.CompParams {
	cp := compart.NewCompParams(cs.Cm, cs.Gc, cs.Gl, cs.El)
	if cs.V0 != nil {
		cp.V0On = true
		cp.V0 = *cs.V0
	}
	cp.Na.Gbar = cs.GbarNa
	cp.K.Gbar = cs.GbarK
	return cp
}

// RecSpec describes one receptor in a config file.
// Unset optional values take the defaults of the Kind.
type RecSpec struct {
	Comp      int            `yaml:"comp" validate:"gte=0"`
	Kind      receptor.Kinds `yaml:"kind"`
	TauR      *float64       `yaml:"tau_r,omitempty" validate:"omitempty,gt=0"`
	TauD      *float64       `yaml:"tau_d,omitempty" validate:"omitempty,gt=0"`
	ERev      *float64       `yaml:"e_rev,omitempty"`
	NMDARatio *float64       `yaml:"nmda_ratio,omitempty" validate:"omitempty,gte=0"`
}

// Params returns the receptor params
func (rs *RecSpec) Params() receptor.Params {
	rp := receptor.KindParams(rs.Kind)
	if rs.TauR != nil {
		rp.Syn.TauR = *rs.TauR
	}
	if rs.TauD != nil {
		rp.Syn.TauD = *rs.TauD
	}
	if rs.ERev != nil {
		rp.E = *rs.ERev
	}
	if rs.NMDARatio != nil {
		rp.NMDARatio = *rs.NMDARatio
	}
	rp.Update()
	return rp
}

// CurrentSpec describes a step current in a config file
type CurrentSpec struct {
	Comp  int     `yaml:"comp" validate:"gte=0"`
	Amp   float64 `yaml:"amp"`
	Start float64 `yaml:"start" validate:"gte=0"`
	Stop  float64 `yaml:"stop" validate:"gte=0"`
}

// SpikeSpec describes a spike train in a config file
type SpikeSpec struct {
	Port   int       `yaml:"port" validate:"gte=0"`
	Weight float64   `yaml:"weight"`
	Times  []float64 `yaml:"times" validate:"dive,gte=0"`
	Start  float64   `yaml:"start" validate:"gte=0"`
	Stop   float64   `yaml:"stop" validate:"gte=0"`
	Period float64   `yaml:"period" validate:"gte=0"`
}

// Config is a complete simulation of one neuron: its structure, inputs,
// run length and recorded variables.
type Config struct {
	Dt       float64             `yaml:"dt" validate:"gt=0"`
	TMax     float64             `yaml:"tmax" validate:"gt=0"`
	Solver   compart.SolverTypes `yaml:"solver"`
	Comps    []CompSpec          `yaml:"compartments" validate:"required,min=1,dive"`
	Recs     []RecSpec           `yaml:"receptors" validate:"dive"`
	Currents []CurrentSpec       `yaml:"currents" validate:"dive"`
	Spikes   []SpikeSpec         `yaml:"spikes" validate:"dive"`
	Record   []string            `yaml:"record"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(spikeSpecValidation, SpikeSpec{})
	return v
}

// spikeSpecValidation requires a regular train to end after it starts.
func spikeSpecValidation(sl validator.StructLevel) {
	ss := sl.Current().Interface().(SpikeSpec)
	if ss.Period > 0 && !(ss.Stop > ss.Start) {
		sl.ReportError(ss.Stop, "Stop", "stop", "gtstart", "")
	}
}

// ParseConfig parses and validates a YAML config.  Unknown fields are errors.
func ParseConfig(b []byte) (*Config, error) {
	cf := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cf); err != nil {
		return nil, fmt.Errorf("sim.ParseConfig: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

// LoadConfig reads and validates a YAML config file
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cf, err := ParseConfig(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

// Validate checks the field ranges of the config.  Structural errors,
// such as unknown parents or ports, are reported by Build and NewDriver.
func (cf *Config) Validate() error {
	if err := validate.Struct(cf); err != nil {
		return fmt.Errorf("sim.Config: %w", err)
	}
	if cf.Solver < 0 || cf.Solver >= compart.SolverTypesN {
		return fmt.Errorf("sim.Config: solver %v: %w", cf.Solver, compart.ErrInvalidParam)
	}
	if cf.TMax < cf.Dt {
		return fmt.Errorf("sim.Config: tmax = %v is less than one step of dt = %v: %w", cf.TMax, cf.Dt, compart.ErrInvalidParam)
	}
	return nil
}

// NeuronConfig returns the structure of the neuron, for compart.Neuron.Configure
func (cf *Config) NeuronConfig() *compart.Config {
	nc := &compart.Config{Solver: cf.Solver}
	for ci := range cf.Comps {
		nc.AddComp(cf.Comps[ci].Parent, cf.Comps[ci].Params())
	}
	for ri := range cf.Recs {
		nc.Recs = append(nc.Recs, compart.RecConfig{Comp: cf.Recs[ri].Comp, Params: cf.Recs[ri].Params()})
	}
	return nc
}

// Build returns a new neuron with the configured structure
func (cf *Config) Build() (*compart.Neuron, error) {
	nr := compart.NewNeuron()
	if err := nr.Configure(cf.NeuronConfig()); err != nil {
		return nil, err
	}
	return nr, nil
}

// NewDriver builds a new neuron and returns a driver for it with the
// configured inputs and recorder.
func (cf *Config) NewDriver() (*Driver, error) {
	nr, err := cf.Build()
	if err != nil {
		return nil, err
	}
	dr := NewDriver(nr, cf.Dt)
	for _, cs := range cf.Currents {
		dr.Currents = append(dr.Currents, StepCurrent{Comp: cs.Comp, Amp: cs.Amp, Start: cs.Start, Stop: cs.Stop})
	}
	for _, ss := range cf.Spikes {
		train := SpikeTrain{Port: ss.Port, Weight: ss.Weight, Times: ss.Times, Start: ss.Start, Stop: ss.Stop, Period: ss.Period}
		if err := dr.AddSpikes(&train); err != nil {
			return nil, err
		}
	}
	if err := dr.Validate(); err != nil {
		return nil, err
	}
	dr.Rec, err = NewRecorder(nr, cf.Record)
	if err != nil {
		return nil, err
	}
	return dr, nil
}
