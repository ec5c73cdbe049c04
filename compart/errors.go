// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compart

import (
	"errors"
	"fmt"

	"github.com/emer/cmneuron/receptor"
)

var (
	// ErrDuplicateRoot is returned by AddCompartment when a second compartment
	// is added with parent index -1.
	ErrDuplicateRoot = errors.New("root compartment already instantiated")

	// ErrUnknownParent is returned by AddCompartment when the parent index
	// does not match any previously added compartment.
	ErrUnknownParent = errors.New("parent compartment does not exist in tree")

	// ErrUnconfigured is returned when stepping a neuron without compartments.
	ErrUnconfigured = errors.New("no compartments configured")

	// ErrUnknownRecordable is returned for a record request naming a
	// state variable that does not exist on the neuron.
	ErrUnknownRecordable = errors.New("unknown recordable")

	// ErrDuplicateConfig is returned when configuring a neuron that has already
	// been configured, or changing the structure after the first step.
	ErrDuplicateConfig = errors.New("neuron is already configured")

	// ErrUnknownCompartment is returned for compartment indexes out of range.
	ErrUnknownCompartment = receptor.ErrUnknownCompartment

	// ErrUnknownPort is wrapped by *receptor.PortError for out of range ports.
	ErrUnknownPort = receptor.ErrUnknownPort

	// ErrInvalidParam is returned for parameters outside their physical range.
	ErrInvalidParam = receptor.ErrInvalidParam
)

// CompartmentError records a failed operation on the compartment tree.
type CompartmentError struct {
	Op     string
	Idx    int
	Parent int
	Err    error
}

func (ce *CompartmentError) Error() string {
	return fmt.Sprintf("compart.%s: compartment %d (parent index %d): %v", ce.Op, ce.Idx, ce.Parent, ce.Err)
}

func (ce *CompartmentError) Unwrap() error {
	return ce.Err
}
