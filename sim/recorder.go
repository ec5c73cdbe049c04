// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emer/cmneuron/compart"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 8

// Recorder records state variables of a neuron into a table, one row per
// recorded step, with a Time column followed by one column per variable.
type Recorder struct {
	Vars   []string      `desc:"names of the recorded variables, see compart.Neuron.Recordables"`
	Every  int           `desc:"record every this many steps -- 1 = every step"`
	Table  *etable.Table `desc:"the recorded values"`
	Ranges []minmax.F64  `desc:"range of values of each variable over all recorded rows"`
}

// NewRecorder returns a recorder for given variables of nr, all of its
// recordables if vars is empty.  Unknown variables give an error wrapping
// compart.ErrUnknownRecordable.
func NewRecorder(nr *compart.Neuron, vars []string) (*Recorder, error) {
	if len(vars) == 0 {
		vars = nr.Recordables()
	}
	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
	}
	for _, vn := range vars {
		if _, err := nr.Record(vn); err != nil {
			return nil, fmt.Errorf("sim.NewRecorder: %w", err)
		}
		sch = append(sch, etable.Column{vn, etensor.FLOAT64, nil, nil})
	}
	rc := &Recorder{Vars: vars, Every: 1}
	rc.Table = &etable.Table{}
	rc.Table.SetMetaData("name", "Traces")
	rc.Table.SetMetaData("read-only", "true")
	rc.Table.SetMetaData("precision", strconv.Itoa(LogPrec))
	rc.Table.SetFromSchema(sch, 0)
	rc.Ranges = make([]minmax.F64, len(vars))
	for i := range rc.Ranges {
		rc.Ranges[i].SetInfinity()
	}
	return rc, nil
}

// Record adds a row with the current values of the variables, if the
// current step is due.  It must only be called between steps.
func (rc *Recorder) Record(nr *compart.Neuron) error {
	if rc.Every > 1 && nr.Time.Step%rc.Every != 0 {
		return nil
	}
	row := rc.Table.Rows
	rc.Table.AddRows(1)
	rc.Table.SetCellFloat("Time", row, nr.Time.Time)
	for i, vn := range rc.Vars {
		v, err := nr.Record(vn)
		if err != nil {
			return err
		}
		rc.Table.SetCellFloat(vn, row, v)
		rc.Ranges[i].FitValInRange(v)
	}
	return nil
}

// Range returns the range of values recorded for given variable
func (rc *Recorder) Range(vn string) (minmax.F64, error) {
	for i, nm := range rc.Vars {
		if nm == vn {
			return rc.Ranges[i], nil
		}
	}
	return minmax.F64{}, fmt.Errorf("sim.Recorder Range: %q: %w", vn, compart.ErrUnknownRecordable)
}

// Value returns the recorded value of variable vn at given row
func (rc *Recorder) Value(vn string, row int) float64 {
	return rc.Table.CellFloat(vn, row)
}

// Reset removes all recorded rows
func (rc *Recorder) Reset() {
	rc.Table.SetNumRows(0)
	for i := range rc.Ranges {
		rc.Ranges[i].SetInfinity()
	}
}

// WriteCSV writes the recorded table as comma separated values with headers.
func (rc *Recorder) WriteCSV(w io.Writer) error {
	return rc.Table.WriteCSV(w, etable.Comma, etable.Headers)
}
