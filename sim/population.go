// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"

	"github.com/emer/emergent/v2/timer"
	"github.com/goki/ki/ints"
	"golang.org/x/sync/errgroup"
)

// Population runs a set of independent neurons, each with its own Driver,
// in parallel.  Neurons share no state, so each one is advanced by a single
// goroutine at a time.
type Population struct {
	Drivers  []*Driver              `desc:"one driver per neuron"`
	NThreads int                    `desc:"maximum number of neurons run concurrently -- 0 = GOMAXPROCS"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each major function"`
	Log      *slog.Logger           `view:"-" desc:"logger, slog.Default() if nil"`
}

// Add adds a driver and returns its index
func (pp *Population) Add(dr *Driver) int {
	pp.Drivers = append(pp.Drivers, dr)
	return len(pp.Drivers) - 1
}

// Threads returns the number of goroutines to use
func (pp *Population) Threads() int {
	nthr := pp.NThreads
	if nthr <= 0 {
		nthr = runtime.GOMAXPROCS(0)
	}
	return ints.MaxInt(1, ints.MinInt(nthr, len(pp.Drivers)))
}

// Run advances every neuron until time tmax.  The first error cancels the
// remaining neurons and is returned.
func (pp *Population) Run(ctx context.Context, tmax float64) error {
	log := pp.Log
	if log == nil {
		log = slog.Default()
	}
	nthr := pp.Threads()
	log.Debug("population run", "neurons", len(pp.Drivers), "threads", nthr, "tmax", tmax)
	pp.FunTimerStart("Run")
	defer pp.FunTimerStop("Run")

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(nthr)
	for di, dr := range pp.Drivers {
		eg.Go(func() error {
			if err := dr.Run(ctx, tmax); err != nil {
				return fmt.Errorf("neuron %d: %w", di, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (pp *Population) FunTimerStart(fun string) {
	if pp.FunTimes == nil {
		pp.FunTimes = make(map[string]*timer.Time)
	}
	ft, ok := pp.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		pp.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (pp *Population) FunTimerStop(fun string) {
	ft := pp.FunTimes[fun]
	ft.Stop()
}

// TimerReport reports the amount of time spent in each function, and in each neuron
func (pp *Population) TimerReport(w io.Writer) {
	fmt.Fprintf(w, "TimerReport: Neurons: %v, NThreads: %v\n", len(pp.Drivers), pp.Threads())
	fmt.Fprintf(w, "\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	fnms := make([]string, 0, len(pp.FunTimes))
	for k := range pp.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	tot := 0.0
	for _, fn := range fnms {
		tot += pp.FunTimes[fn].TotalSecs()
	}
	for _, fn := range fnms {
		secs := pp.FunTimes[fn].TotalSecs()
		fmt.Fprintf(w, "\t%13s \t%7.3f\t%7.1f\n", fn, secs, pct(secs, tot))
	}
	fmt.Fprintf(w, "\t%13s \t%7.3f\n", "Total", tot)

	if len(pp.Drivers) <= 1 {
		return
	}
	fmt.Fprintf(w, "\n\tNeuron\tSecs\tPct\n")
	ntot := 0.0
	for _, dr := range pp.Drivers {
		ntot += dr.Time.TotalSecs()
	}
	for di, dr := range pp.Drivers {
		secs := dr.Time.TotalSecs()
		fmt.Fprintf(w, "\t%v \t%7.3f\t%7.1f\n", di, secs, pct(secs, ntot))
	}
}

// pct returns secs as a percentage of tot, 0 if no time was recorded
func pct(secs, tot float64) float64 {
	if tot <= 0 {
		return 0
	}
	return 100 * secs / tot
}
