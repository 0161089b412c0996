package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/rw1nkler/vtr-verilog-to-routing/anneal"
	"github.com/rw1nkler/vtr-verilog-to-routing/config"
	"github.com/rw1nkler/vtr-verilog-to-routing/costmodel"
	"github.com/rw1nkler/vtr-verilog-to-routing/delaymodel"
	"github.com/rw1nkler/vtr-verilog-to-routing/demo"
	"github.com/rw1nkler/vtr-verilog-to-routing/monitoring"
	"github.com/rw1nkler/vtr-verilog-to-routing/move"
	"github.com/rw1nkler/vtr-verilog-to-routing/timinggraph"
	"github.com/rw1nkler/vtr-verilog-to-routing/tracing"
)

var placeFlags struct {
	numBlocks  int
	numNets    int
	gridWidth  int
	gridHeight int
	chanWidth  int
	seed       int64

	algorithm      string
	scheduleType   string
	initT          float64
	placeCostExp   float64
	timingTradeoff float64

	envFile string

	csvTrace    string
	sqliteTrace string
	monitorPort int
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Generate a scenario and run the annealing schedule.",
	RunE:  runPlace,
}

func init() {
	rootCmd.AddCommand(placeCmd)

	f := placeCmd.Flags()
	f.IntVar(&placeFlags.numBlocks, "blocks", 64, "number of blocks in the randomly generated netlist")
	f.IntVar(&placeFlags.numNets, "nets", 96, "number of nets in the randomly generated netlist")
	f.IntVar(&placeFlags.gridWidth, "width", 10, "device grid width")
	f.IntVar(&placeFlags.gridHeight, "height", 10, "device grid height")
	f.IntVar(&placeFlags.chanWidth, "chan-width", 4, "uniform routing channel width")
	f.Int64Var(&placeFlags.seed, "seed", 1, "scenario and annealing RNG seed")

	f.StringVar(&placeFlags.algorithm, "algorithm", "", "PLACE_ALGORITHM override: BOUNDING_BOX_PLACE or PATH_TIMING_DRIVEN_PLACE")
	f.StringVar(&placeFlags.scheduleType, "schedule", "", "SCHEDULE_TYPE override: USER, AUTO, or DUSTY")
	f.Float64Var(&placeFlags.initT, "init-t", 0, "initial temperature override (USER schedule only)")
	f.Float64Var(&placeFlags.placeCostExp, "place-cost-exp", 0, "place_cost_exp override (0 keeps the configured default)")
	f.Float64Var(&placeFlags.timingTradeoff, "timing-tradeoff", -1, "timing tradeoff override in [0,1] (negative keeps the configured default)")

	f.StringVar(&placeFlags.envFile, "env", "", "optional .env-style configuration overlay file")

	f.StringVar(&placeFlags.csvTrace, "csv-trace", "", "write per-trial move stats to this CSV file")
	f.StringVar(&placeFlags.sqliteTrace, "sqlite-trace", "", "write periodic status lines to this SQLite database")
	f.IntVar(&placeFlags.monitorPort, "monitor-port", 0, "serve the HTTP monitoring API on this port (0 disables it)")
}

func runPlace(cmd *cobra.Command, args []string) error {
	overrides := config.Overrides{}
	if placeFlags.algorithm != "" {
		overrides.Algorithm = &placeFlags.algorithm
	}
	if placeFlags.scheduleType != "" {
		overrides.ScheduleType = &placeFlags.scheduleType
	}
	if placeFlags.initT != 0 {
		overrides.InitT = &placeFlags.initT
	}
	if placeFlags.placeCostExp != 0 {
		overrides.PlaceCostExp = &placeFlags.placeCostExp
	}
	if placeFlags.timingTradeoff >= 0 {
		overrides.TimingTradeoff = &placeFlags.timingTradeoff
	}
	overrides.Seed = &placeFlags.seed

	opts, err := config.Load(placeFlags.envFile, overrides)
	if err != nil {
		return err
	}

	scenario := demo.Generate(demo.Options{
		NumBlocks:  placeFlags.numBlocks,
		NumNets:    placeFlags.numNets,
		MaxFanout:  4,
		GridWidth:  placeFlags.gridWidth,
		GridHeight: placeFlags.gridHeight,
		ChanWidth:  placeFlags.chanWidth,
		Seed:       placeFlags.seed,
	})

	factors, warnings := costmodel.NewChannelFactors(scenario.Grid, opts.PlaceCostExp)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: zero-width %s channel at %d..%d clamped to 1 track\n", w.Axis, w.Low, w.High)
	}

	dm, err := delaymodel.NewLinearDelta(1e-10, 1e-10, 1e-10, 1e-11)
	if err != nil {
		return err
	}

	timingEngine := timinggraph.NewEngine(scenario.Netlist, scenario.Placement, dm)

	rng := rand.New(rand.NewSource(opts.Seed))
	moveGen := move.NewUniformMoveGenerator(scenario.Netlist, scenario.Placement, rng)

	s := anneal.NewState(
		scenario.Netlist,
		scenario.Placement,
		factors,
		dm,
		timingEngine,
		timingEngine,
		timingEngine,
		moveGen,
		opts.Algorithm,
		opts.TimingTradeoff,
		opts.RlimEscapeFraction,
		rng,
	)

	controller := anneal.NewController(opts)

	statusWriter := tracing.NewStatusLineWriter(os.Stdout)
	controller.AcceptHook(statusWriter)

	if placeFlags.csvTrace != "" {
		csvTracer := tracing.NewCSVTrialTracer(placeFlags.csvTrace)
		if err := csvTracer.Init(); err != nil {
			return err
		}
		controller.AcceptHook(csvTracer)
	}

	if placeFlags.sqliteTrace != "" {
		recorder, err := tracing.NewSQLiteStatusRecorder(placeFlags.sqliteTrace)
		if err != nil {
			return err
		}
		defer recorder.Close()
		controller.AcceptHook(recorder)
	}

	if placeFlags.monitorPort > 0 {
		mon := monitoring.NewMonitor(controller).WithPortNumber(placeFlags.monitorPort)
		if _, err := mon.StartServer(); err != nil {
			return err
		}
	}

	deviceW, deviceH := scenario.Grid.Width(), scenario.Grid.Height()
	if err := controller.Run(context.Background(), s, len(scenario.Netlist.Blocks()), deviceW, deviceH, nil); err != nil {
		return err
	}

	fmt.Printf("final bb_cost=%g timing_cost=%g\n", s.BBCost, s.TimingCost)
	return nil
}
