// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// spikecore simulates the neurons of one core of a spiking network, and
// runs the connectivity pruning pass over its population table.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/emer/spikecore/bitfield"
	"github.com/emer/spikecore/dtcm"
	"github.com/emer/spikecore/engine"
	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/fixpt"
	"github.com/emer/spikecore/neuron"
	"github.com/emer/spikecore/record"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "spikecore",
	Short: "Fixed-point spiking neuron core simulator",
	Long: `spikecore simulates the neurons of one core of a spiking network in
fixed-point arithmetic, within a fixed working memory budget.

Commands:
  run      build the configured network and run it
  prune    run the connectivity pruning pass and write its bit fields
  inspect  report the memory used by the configured core`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var pruneOut string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured network",
	RunE: func(cmd *cobra.Command, args []string) error {
		cf, err := LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		return Run(cf)
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Run the pruning pass over the configured network",
	RunE: func(cmd *cobra.Command, args []string) error {
		cf, err := LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		out, err := Prune(cf, dtcm.NewPool(cf.Budget))
		if err != nil {
			return err
		}
		fmt.Print(out.String())
		if pruneOut == "" {
			return nil
		}
		return errors.Wrap(os.WriteFile(pruneOut, out.Encode(), 0644), "prune")
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report the memory used by the configured core",
	RunE: func(cmd *cobra.Command, args []string) error {
		cf, err := LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		return Inspect(cf)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "TOML config file")
	pruneCmd.Flags().StringVarP(&pruneOut, "out", "o", "", "file for the bit field region")
	rootCmd.AddCommand(runCmd, pruneCmd, inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fault.Halt(err)
	}
}

// Prune builds the network and runs the pruning pass over it
func Prune(cf *Config, pool *dtcm.Pool) (*bitfield.Output, error) {
	bitfield.Debug = cf.Debug
	nw := BuildNetwork(&cf.Net)
	pt, ka, err := nw.Load(pool)
	if err != nil {
		return nil, err
	}
	return bitfield.NewExpander(pt, ka, nw.Matrix, pool).Run()
}

// Core is a configured core ready to run
type Core struct {
	Pool    *dtcm.Pool
	Net     *Network
	Impl    *neuron.Impl
	Engine  *engine.Engine
	Pruning *bitfield.Output
}

// NewCore allocates and loads a core as configured
func NewCore(cf *Config) (*Core, error) {
	neuron.Debug = cf.Debug
	engine.Debug = cf.Debug
	nc, err := cf.NeuronConfig()
	if err != nil {
		return nil, err
	}
	cr := &Core{Pool: dtcm.NewPool(cf.Budget), Net: BuildNetwork(&cf.Net)}
	cr.Impl, err = neuron.NewImpl(nc, cf.Net.Neurons, cr.Pool)
	if err != nil {
		return nil, err
	}

	// parameters go through the region layout, as they would from the host
	pr := &neuron.Params{}
	pr.Defaults()
	pr.Dt = cf.Dt
	host, err := neuron.NewImpl(nc, cf.Net.Neurons, dtcm.NewPool(cf.Budget))
	if err != nil {
		return nil, err
	}
	pr.Init(host)
	if err := cr.Impl.LoadParams(host.StoreParams()); err != nil {
		return nil, err
	}

	pt, ka, err := cr.Net.Load(cr.Pool)
	if err != nil {
		return nil, err
	}
	cr.Engine, err = engine.New(cr.Impl, pt, cr.Net.Matrix, cr.Pool)
	if err != nil {
		return nil, err
	}
	for i := range cr.Engine.LeftShifts {
		cr.Engine.LeftShifts[i] = cf.Net.WeightShift
	}
	cr.Engine.Time.TimePerStep = cf.Dt
	if cf.Prune {
		cr.Pruning, err = bitfield.NewExpander(pt, ka, cr.Net.Matrix, cr.Pool).Run()
		if err != nil {
			return nil, err
		}
		cr.Engine.Filter = bitfield.NewFilter(cr.Pruning, pt)
	}
	return cr, nil
}

// Run runs the configured network and reports its activity
func Run(cf *Config) error {
	cr, err := NewCore(cf)
	if err != nil {
		return err
	}
	en := cr.Engine
	var rec []int
	if len(cf.Record) > 0 {
		rec = cf.Record
	}
	en.Recorder = record.NewRecorder("spikecore", rec)
	bias := make([]fixpt.Accum, cr.Impl.N())
	for i := range bias {
		bias[i] = fixpt.FromFloat(cf.Bias)
	}
	if _, err := en.Run(cf.Steps, bias, cr.Net.Spikes); err != nil {
		return err
	}
	fmt.Println(en.String())
	fmt.Printf("spike counts: %v\n", en.SpikeCounts())
	fmt.Printf("sdram %v\n", &cr.Net.Matrix.Stats)
	if cf.RecordFile != "" {
		f, err := os.Create(cf.RecordFile)
		if err != nil {
			return errors.Wrap(err, "Run")
		}
		defer f.Close()
		if err := en.Recorder.WriteCSV(f); err != nil {
			return err
		}
		log.Printf("recorded %d rows to %s\n", en.Recorder.Table.Rows, cf.RecordFile)
	}
	return nil
}

// Inspect reports the memory of a configured core
func Inspect(cf *Config) error {
	cr, err := NewCore(cf)
	if err != nil {
		return err
	}
	fmt.Print(cr.Impl.SizeReport())
	fmt.Println()
	fmt.Print(cr.Pool.SizeReport())
	pt := cr.Engine.Table
	fmt.Printf("\npopulation table: %d entries, max row %d words\n", pt.Len(), pt.RowMaxWords)
	for i := 0; i < pt.Len(); i++ {
		fmt.Printf("key: %#08x\t mask: %#08x\n", pt.KeyAt(i), pt.MaskAt(i))
	}
	return nil
}
