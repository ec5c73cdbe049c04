// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cmsim runs compartmental neuron simulations described in YAML files,
// writing the recorded traces as CSV.
//
// The etable recording stack imports goki/gi, so building cmsim requires cgo
// and the X11 / GL development headers.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/emer/cmneuron/sim"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "cmsim",
		Short:        "Multi-compartment neuron simulator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newRunCmd(), newDescribeCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		cfgPath string
		outPath string
		threads int
		copies  int
		timers  bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and write the recorded traces as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := sim.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if copies < 1 {
				return fmt.Errorf("--copies must be >= 1, got %d", copies)
			}
			pp := &sim.Population{NThreads: threads}
			for i := 0; i < copies; i++ {
				dr, err := cf.NewDriver()
				if err != nil {
					return err
				}
				pp.Add(dr)
			}
			slog.Info("running", "config", cfgPath, "tmax", cf.TMax, "dt", cf.Dt, "copies", copies, "threads", pp.Threads())
			if err := pp.Run(cmd.Context(), cf.TMax); err != nil {
				return err
			}
			if timers {
				pp.TimerReport(cmd.ErrOrStderr())
			}
			for i, dr := range pp.Drivers {
				if err := writeTraces(cmd.OutOrStdout(), outPath, i, copies, dr.Rec); err != nil {
					return err
				}
			}
			slog.Info("done", "rows", pp.Drivers[0].Rec.Table.Rows, "out", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "simulation config file (YAML)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output CSV file, - for stdout")
	cmd.Flags().IntVar(&threads, "threads", 0, "number of neurons simulated in parallel, 0 = GOMAXPROCS")
	cmd.Flags().IntVar(&copies, "copies", 1, "number of independent copies of the neuron to simulate")
	cmd.Flags().BoolVar(&timers, "timers", false, "print a timer report to stderr")
	cmd.MarkFlagRequired("config")
	return cmd
}

// writeTraces writes the traces of copy i.  With several copies written to
// files, the copy index is added to the file name.
func writeTraces(stdout io.Writer, outPath string, i, copies int, rec *sim.Recorder) error {
	if outPath == "-" {
		if copies > 1 {
			fmt.Fprintf(stdout, "# copy %d\n", i)
		}
		return rec.WriteCSV(stdout)
	}
	fn := outPath
	if copies > 1 {
		ext := filepath.Ext(outPath)
		fn = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(outPath, ext), i, ext)
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := rec.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	slog.Debug("wrote traces", "file", fn, "rows", rec.Table.Rows)
	return f.Close()
}

func newDescribeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the structure, recordables and memory use of a configured neuron",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := sim.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			nr, err := cf.Build()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Compartments: %d\n", nr.NComps())
			fmt.Fprintf(w, "\t%4s\t%6s\t%8s\t%8s\t%8s\t%8s\t%5s\n", "Idx", "Parent", "Cm", "Gc", "Gl", "El", "Kids")
			for ci := range nr.Tree.Comps {
				cm := &nr.Tree.Comps[ci]
				fmt.Fprintf(w, "\t%4d\t%6d\t%8g\t%8g\t%8g\t%8g\t%5d\n", cm.Idx, cm.Par, cm.Cm, cm.Gc, cm.Gl, cm.El, nr.Tree.NKids(ci))
			}
			fmt.Fprintf(w, "Receptors: %d\n", nr.NReceptors())
			for ri := range nr.Recs.Recs {
				rc := &nr.Recs.Recs[ri]
				fmt.Fprintf(w, "\t%4d\t%-10v\tcomp: %d\ttau_r: %g\ttau_d: %g\te_rev: %g\n", rc.Port, rc.Kind, rc.Comp, rc.Syn.TauR, rc.Syn.TauD, rc.E)
			}
			fmt.Fprintf(w, "Recordables: %s\n", strings.Join(nr.Recordables(), " "))
			fmt.Fprint(w, nr.SizeReport())
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "simulation config file (YAML)")
	cmd.MarkFlagRequired("config")
	return cmd
}
