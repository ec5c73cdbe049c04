// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receptor

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCompartment is returned when a receptor names a host
	// compartment that is not present in the tree.
	ErrUnknownCompartment = errors.New("compartment does not exist in tree")

	// ErrUnknownPort is wrapped by PortError.
	ErrUnknownPort = errors.New("unknown receptor port")

	// ErrInvalidParam is returned for parameters outside their physical range.
	ErrInvalidParam = errors.New("invalid parameter")
)

// PortError reports a connection to a receptor port outside of the
// valid half-open range [0, N[.
type PortError struct {
	// Kind is the kind of port: "spike" or "current"
	Kind string

	// Port is the offending port index
	Port int

	// N is the number of valid ports
	N int
}

func (pe *PortError) Error() string {
	return fmt.Sprintf("%v: %s port %d, valid range is [0, %d[", ErrUnknownPort, pe.Kind, pe.Port, pe.N)
}

func (pe *PortError) Unwrap() error {
	return ErrUnknownPort
}
