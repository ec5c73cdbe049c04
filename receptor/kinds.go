// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receptor

import (
	"github.com/goki/ki/kit"
)

// Kinds are the synaptic receptor types that can be placed on a compartment.
type Kinds int32

//go:generate stringer -type=Kinds -linecomment

var KiT_Kinds = kit.Enums.AddEnum(KindsN, kit.NotBitFlag, nil)

func (ev Kinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// MarshalText is used for yaml and other text encodings
func (ev Kinds) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// UnmarshalText is used for yaml and other text encodings
func (ev *Kinds) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The receptor kinds
const (
	// AMPA is a fast glutamatergic excitatory receptor
	AMPA Kinds = iota // AMPA

	// GABA is a GABA-A inhibitory receptor with chloride reversal potential
	GABA // GABA

	// NMDA is a slow glutamatergic receptor with voltage-dependent magnesium block
	NMDA // NMDA

	// AMPANMDA combines AMPA and NMDA receptors on a single port, with the NMDA
	// component scaled by NMDARatio
	AMPANMDA // AMPA_NMDA

	// GABAB is a slow metabotropic GABA-B receptor opening GIRK potassium channels
	GABAB // GABA_B

	KindsN // KindsN
)

// HasNMDA returns true if the receptor kind includes an NMDA component
func (ev Kinds) HasNMDA() bool {
	return ev == NMDA || ev == AMPANMDA
}
