// Package demo builds a randomly generated netlist, device grid, and
// initial legal placement, standing in for the out-of-scope netlist/device
// file loading (§11 of the project's design notes): enough to exercise the
// controller end to end from the CLI or from a test without parsing any
// real toolchain file format.
package demo

import (
	"math/rand"

	"github.com/rw1nkler/vtr-verilog-to-routing/device"
	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
)

// Options controls the shape of a generated scenario.
type Options struct {
	NumBlocks  int
	NumNets    int
	MaxFanout  int
	GridWidth  int
	GridHeight int
	ChanWidth  int
	Seed       int64
}

// DefaultOptions returns a small scenario sized for a quick demo run.
func DefaultOptions() Options {
	return Options{
		NumBlocks:  64,
		NumNets:    96,
		MaxFanout:  4,
		GridWidth:  10,
		GridHeight: 10,
		ChanWidth:  4,
		Seed:       1,
	}
}

// Scenario bundles a generated netlist with a device grid and a legal
// initial placement of every block.
type Scenario struct {
	Netlist   *netlist.Mem
	Grid      *device.Grid
	Placement *device.Placement
}

// blockTileType is the single logical/tile type every generated block and
// grid cell uses; capacity 1 keeps initial placement a simple one-block-
// per-cell assignment.
var blockTileType = &device.TileType{
	Name:            "CLB",
	Capacity:        1,
	Compatible:      []map[string]bool{{"CLB": true}},
	PinWidthOffset:  []int{0, 0},
	PinHeightOffset: []int{0, 0},
}

// Generate builds a random scenario per opts. NumBlocks must not exceed
// GridWidth*GridHeight, since every tile holds exactly one block here.
func Generate(opts Options) *Scenario {
	rng := rand.New(rand.NewSource(opts.Seed))

	b := netlist.NewBuilder()
	blocks := make([]netlist.BlockID, opts.NumBlocks)
	for i := range blocks {
		blocks[i] = b.AddBlock("CLB")
	}

	for i := 0; i < opts.NumNets; i++ {
		driver := blocks[rng.Intn(len(blocks))]
		net := b.AddNet(driver, 0, false)

		fanout := 1 + rng.Intn(opts.MaxFanout)
		for j := 0; j < fanout; j++ {
			sink := blocks[rng.Intn(len(blocks))]
			b.AddSink(net, sink, 1)
		}
	}

	nl := b.Build()

	grid := device.NewGrid(opts.GridWidth, opts.GridHeight, blockTileType, opts.ChanWidth, opts.ChanWidth)
	placement := device.NewPlacement(grid, nl)

	cells := make([][2]int, 0, opts.GridWidth*opts.GridHeight)
	for x := 0; x < opts.GridWidth; x++ {
		for y := 0; y < opts.GridHeight; y++ {
			cells = append(cells, [2]int{x, y})
		}
	}
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	for i, blk := range nl.Blocks() {
		c := cells[i]
		placement.PlaceInitial(blk, device.Location{X: c[0], Y: c[1], SubTile: 0})
	}

	return &Scenario{Netlist: nl, Grid: grid, Placement: placement}
}
