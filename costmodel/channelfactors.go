// Package costmodel implements the wirelength and timing cost engines: the
// grid-cost factor tables, the per-net bounding-box calculators (from
// scratch and incremental), and the per-connection timing cost caches,
// together with their from-scratch and incremental recompute paths.
package costmodel

import (
	"math"

	"github.com/rw1nkler/vtr-verilog-to-routing/device"
)

// ChannelFactors holds the precomputed grid-cost multiplier tables used by
// the bounding-box cost formula: Fx is indexed by the net bbox's
// (ymax, ymin-1) -- it is built from the horizontal (x-directed) channel
// widths, one per grid row -- and Fy is indexed by (xmax, xmin-1), built
// from the vertical channel widths, one per grid column. Both tables are
// lower-triangular: only low <= high is populated or queried.
type ChannelFactors struct {
	Fx [][]float64 // [high][low], dimension = grid height
	Fy [][]float64 // [high][low], dimension = grid width
}

// ZeroWidthWarning reports a channel that had zero width and was clamped to
// one track, for the caller to log via placererr's ChannelZeroWidth kind.
type ZeroWidthWarning struct {
	Axis     string // "x" or "y"
	High, Low int
}

// NewChannelFactors builds the Fx/Fy tables for grid at the given
// place-cost exponent. Any zero-width channel is clamped to 1 track and
// reported in the returned warning slice.
func NewChannelFactors(grid *device.Grid, placeCostExp float64) (*ChannelFactors, []ZeroWidthWarning) {
	cf := &ChannelFactors{}
	var warnings []ZeroWidthWarning

	h := grid.Height()
	cf.Fx = make([][]float64, h)
	cf.Fx[0] = []float64{float64(grid.ChanWidthX(0))}
	for high := 1; high < h; high++ {
		cf.Fx[high] = make([]float64, high+1)
		cf.Fx[high][high] = float64(grid.ChanWidthX(high))
		for low := 0; low < high; low++ {
			cf.Fx[high][low] = cf.Fx[high-1][low] + float64(grid.ChanWidthX(high))
		}
	}
	for high := 0; high < h; high++ {
		for low := 0; low <= high; low++ {
			if cf.Fx[high][low] == 0 {
				warnings = append(warnings, ZeroWidthWarning{Axis: "x", High: high, Low: low})
				cf.Fx[high][low] = 1
			}
			cf.Fx[high][low] = math.Pow(float64(high-low+1)/cf.Fx[high][low], placeCostExp)
		}
	}

	w := grid.Width()
	cf.Fy = make([][]float64, w)
	cf.Fy[0] = []float64{float64(grid.ChanWidthY(0))}
	for high := 1; high < w; high++ {
		cf.Fy[high] = make([]float64, high+1)
		cf.Fy[high][high] = float64(grid.ChanWidthY(high))
		for low := 0; low < high; low++ {
			cf.Fy[high][low] = cf.Fy[high-1][low] + float64(grid.ChanWidthY(high))
		}
	}
	for high := 0; high < w; high++ {
		for low := 0; low <= high; low++ {
			if cf.Fy[high][low] == 0 {
				warnings = append(warnings, ZeroWidthWarning{Axis: "y", High: high, Low: low})
				cf.Fy[high][low] = 1
			}
			cf.Fy[high][low] = math.Pow(float64(high-low+1)/cf.Fy[high][low], placeCostExp)
		}
	}

	return cf, warnings
}
