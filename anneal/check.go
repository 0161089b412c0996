package anneal

import (
	"fmt"
	"math"

	"github.com/rw1nkler/vtr-verilog-to-routing/costmodel"
	"github.com/rw1nkler/vtr-verilog-to-routing/device"
	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
	"github.com/rw1nkler/vtr-verilog-to-routing/placererr"
)

// CheckPlace recomputes bb_cost (and, for timing-driven runs, timing_cost)
// from scratch using the non-updateable bbox path for every net, verifies
// the grid<->block placement consistency, and verifies every placement
// macro's members sit at their head's location plus their prescribed
// offset, per §4.6. It is run once at the end of Run. The `check` CLI
// subcommand does not call it; it runs only the placement and macro
// consistency checks.
func (c *Controller) CheckPlace(s *State) error {
	if err := checkPlacementCosts(s); err != nil {
		return err
	}
	if err := CheckPlacementConsistency(s.NL, s.Placement); err != nil {
		return err
	}
	return CheckMacroConsistency(s.Placement, s.NL.Macros())
}

// checkPlacementCosts recomputes every non-ignored net's bbox with the
// independent non-updateable calculator and compares the resulting bb_cost
// (and, for timing-driven runs, timing_cost) against the incrementally
// maintained totals.
func checkPlacementCosts(s *State) error {
	var bbCheck float64
	for _, n := range s.NL.Nets() {
		if s.NL.NetIsIgnored(n) {
			continue
		}
		bb := costmodel.GetNonUpdateableBB(s.NL, s.Placement, n)
		bbCheck += s.Factors.GetNetCost(len(s.NL.NetPins(n)), bb)
	}
	if math.Abs(bbCheck-s.BBCost) > s.BBCost*ErrorTol {
		return placererr.New(placererr.CostDrift, fmt.Sprintf(
			"bb_cost_check: %g and bb_cost: %g differ in check_place", bbCheck, s.BBCost))
	}

	if s.Algorithm == PathTimingDrivenPlace {
		tdCheck := costmodel.CompTDCosts(s.NL, s.Placement, s.DelayModel, s.Crit, costmodel.NewTimingCosts(s.NL))
		if math.Abs(tdCheck-s.TimingCost) > s.TimingCost*ErrorTol {
			return placererr.New(placererr.CostDrift, fmt.Sprintf(
				"timing_cost_check: %g and timing_cost: %g differ in check_place", tdCheck, s.TimingCost))
		}
	}
	return nil
}

// CheckPlacementConsistency verifies that the grid->block and block->grid
// maps agree on every cell, that every block appears exactly once, and
// that every block's tile/sub-tile assignment is type-compatible.
func CheckPlacementConsistency(nl netlist.Netlist, placement *device.Placement) error {
	grid := placement.Grid()
	seen := make(map[netlist.BlockID]bool)

	for _, b := range nl.Blocks() {
		loc := placement.Loc(b)
		if loc.X < 0 || loc.X >= grid.Width() || loc.Y < 0 || loc.Y >= grid.Height() {
			return placererr.New(placererr.PlacementInconsistent, fmt.Sprintf(
				"block %d location (%d,%d) is outside the grid", b, loc.X, loc.Y))
		}

		tile := grid.TileAt(loc.X, loc.Y)
		if loc.SubTile < 0 || loc.SubTile >= tile.Capacity {
			return placererr.New(placererr.PlacementInconsistent, fmt.Sprintf(
				"block %d sub-tile %d out of range for tile capacity %d", b, loc.SubTile, tile.Capacity))
		}
		if !tile.IsSubTileCompatible(nl.BlockType(b), loc.SubTile) {
			return placererr.New(placererr.PlacementInconsistent, fmt.Sprintf(
				"block %d of type %q is not compatible with tile %q sub-tile %d", b, nl.BlockType(b), tile.Name, loc.SubTile))
		}

		occupant := placement.Occupant(loc.X, loc.Y, loc.SubTile)
		if occupant != b {
			return placererr.New(placererr.PlacementInconsistent, fmt.Sprintf(
				"block %d believes it is at (%d,%d,%d) but the grid's inverse map holds block %d there",
				b, loc.X, loc.Y, loc.SubTile, occupant))
		}

		if seen[b] {
			return placererr.New(placererr.PlacementInconsistent, fmt.Sprintf("block %d appears more than once", b))
		}
		seen[b] = true
	}

	return nil
}

// CheckMacroConsistency verifies that every member of every macro sits at
// its head's committed location plus its prescribed offset, in both the
// block->location map and the grid's inverse map.
func CheckMacroConsistency(placement *device.Placement, macros []netlist.Macro) error {
	for _, macro := range macros {
		headLoc := placement.Loc(macro.Head)
		for _, mem := range macro.Members {
			if mem.Block == macro.Head {
				continue
			}
			loc := placement.Loc(mem.Block)
			want := device.Location{X: headLoc.X + mem.DX, Y: headLoc.Y + mem.DY, SubTile: loc.SubTile}
			if loc.X != want.X || loc.Y != want.Y {
				return placererr.New(placererr.PlacementInconsistent, fmt.Sprintf(
					"macro member %d at (%d,%d) does not match head %d offset (+%d,+%d)",
					mem.Block, loc.X, loc.Y, macro.Head, mem.DX, mem.DY))
			}
			if placement.Occupant(loc.X, loc.Y, loc.SubTile) != mem.Block {
				return placererr.New(placererr.PlacementInconsistent, fmt.Sprintf(
					"macro member %d's grid-inverse entry does not match its own location", mem.Block))
			}
		}
	}
	return nil
}
