// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import "github.com/emer/cmneuron/receptor"

// CompConfig configures one compartment
type CompConfig struct {
	Parent int        `desc:"index of the parent compartment, -1 for the root"`
	Params CompParams `view:"inline" desc:"electrical parameters"`
}

// RecConfig configures one receptor
type RecConfig struct {
	Comp   int             `desc:"index of the host compartment"`
	Params receptor.Params `view:"inline" desc:"receptor parameters"`
}

// Config is the complete structure of a neuron, for Neuron.Configure.
// Compartments and receptors are added in order, so their positions
// are the compartment indexes and spike ports.
type Config struct {
	Comps  []CompConfig
	Recs   []RecConfig
	Solver SolverTypes
}

// AddComp appends a compartment and returns its index
func (cf *Config) AddComp(parent int, p CompParams) int {
	cf.Comps = append(cf.Comps, CompConfig{Parent: parent, Params: p})
	return len(cf.Comps) - 1
}

// AddRec appends a receptor of given kind with default params and returns its port
func (cf *Config) AddRec(comp int, kind receptor.Kinds) int {
	cf.Recs = append(cf.Recs, RecConfig{Comp: comp, Params: receptor.KindParams(kind)})
	return len(cf.Recs) - 1
}
