package costmodel

import (
	"github.com/rw1nkler/vtr-verilog-to-routing/device"
	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
)

// BB is a net's axis-aligned pin bounding box, clipped to
// [1, width-2] x [1, height-2].
type BB struct {
	XMin, XMax, YMin, YMax int
}

// EdgeCount is the number of pins currently sitting on each extreme of a
// net's bounding box -- only meaningful (and only maintained) for nets with
// fanout >= SmallNet.
type EdgeCount struct {
	XMin, XMax, YMin, YMax int
}

// UpdateState is the per-net, per-trial flag tracking which bounding-box
// path has been used so far this trial.
type UpdateState int

const (
	// NotUpdatedYet: the net has not been touched this trial.
	NotUpdatedYet UpdateState = iota
	// UpdatedOnce: the net's proposed bbox was updated incrementally at
	// least once, and may be updated incrementally again.
	UpdatedOnce
	// GotFromScratch: the net's proposed bbox was recomputed from scratch
	// this trial (because an incremental update lost the only pin at an
	// extreme); further incremental updates this trial are no-ops.
	GotFromScratch
)

func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func pinLoc(nl netlist.Netlist, placement *device.Placement, pin netlist.PinID) (x, y int) {
	blk := nl.PinBlock(pin)
	loc := placement.Loc(blk)
	tile := placement.Grid().TileAt(loc.X, loc.Y)
	tp := nl.TilePin(pin)
	return loc.X + tile.PinWidthOffset[tp], loc.Y + tile.PinHeightOffset[tp]
}

// GetBBFromScratch computes a net's bounding box and edge counts by walking
// every pin. Valid for any net; required (not just allowed) for nets with
// fanout below SmallNet, since their edge counts are otherwise never
// maintained.
func GetBBFromScratch(nl netlist.Netlist, placement *device.Placement, net netlist.NetID) (BB, EdgeCount) {
	grid := placement.Grid()
	maxX := grid.Width() - 2
	maxY := grid.Height() - 2

	pins := nl.NetPins(net)
	x, y := pinLoc(nl, placement, pins[0])
	x = clip(x, 1, maxX)
	y = clip(y, 1, maxY)

	bb := BB{XMin: x, XMax: x, YMin: y, YMax: y}
	ec := EdgeCount{XMin: 1, XMax: 1, YMin: 1, YMax: 1}

	for _, pin := range pins[1:] {
		px, py := pinLoc(nl, placement, pin)
		px = clip(px, 1, maxX)
		py = clip(py, 1, maxY)

		if px == bb.XMin {
			ec.XMin++
		}
		if px == bb.XMax {
			ec.XMax++
		} else if px < bb.XMin {
			bb.XMin = px
			ec.XMin = 1
		} else if px > bb.XMax {
			bb.XMax = px
			ec.XMax = 1
		}

		if py == bb.YMin {
			ec.YMin++
		}
		if py == bb.YMax {
			ec.YMax++
		} else if py < bb.YMin {
			bb.YMin = py
			ec.YMin = 1
		} else if py > bb.YMax {
			bb.YMax = py
			ec.YMax = 1
		}
	}

	return bb, ec
}

// GetNonUpdateableBB computes a net's bounding box without tracking edge
// counts. The end-of-run cost check uses it for every net; trials compute
// small nets' boxes with GetBBFromScratch instead.
func GetNonUpdateableBB(nl netlist.Netlist, placement *device.Placement, net netlist.NetID) BB {
	grid := placement.Grid()
	maxX := grid.Width() - 2
	maxY := grid.Height() - 2

	pins := nl.NetPins(net)
	x, y := pinLoc(nl, placement, pins[0])
	bb := BB{XMin: x, XMax: x, YMin: y, YMax: y}

	for _, pin := range pins[1:] {
		px, py := pinLoc(nl, placement, pin)
		if px < bb.XMin {
			bb.XMin = px
		} else if px > bb.XMax {
			bb.XMax = px
		}
		if py < bb.YMin {
			bb.YMin = py
		} else if py > bb.YMax {
			bb.YMax = py
		}
	}

	bb.XMin = clip(bb.XMin, 1, maxX)
	bb.XMax = clip(bb.XMax, 1, maxX)
	bb.YMin = clip(bb.YMin, 1, maxY)
	bb.YMax = clip(bb.YMax, 1, maxY)
	return bb
}

// UpdateBB incrementally updates a net's proposed bounding box and edge
// count given that a single pin moved from (xold, yold) to (xnew, ynew)
// (both in unclipped pin-adjusted coordinates). curr is the bbox/edge-count
// pair to update from: the committed pair on the net's first touch this
// trial, or the in-progress proposed pair on subsequent touches. It returns
// the new bbox, new edge count, and whether a from-scratch recompute was
// triggered (in which case both return values came from GetBBFromScratch
// instead of an incremental update).
func UpdateBB(nl netlist.Netlist, placement *device.Placement, net netlist.NetID, curr BB, currEdge EdgeCount, xold, yold, xnew, ynew int) (BB, EdgeCount, bool) {
	grid := placement.Grid()
	maxX := grid.Width() - 2
	maxY := grid.Height() - 2

	xnew = clip(xnew, 1, maxX)
	ynew = clip(ynew, 1, maxY)
	xold = clip(xold, 1, maxX)
	yold = clip(yold, 1, maxY)

	var bb BB
	var ec EdgeCount

	if xnew < xold {
		if xold == curr.XMax {
			if currEdge.XMax == 1 {
				scratchBB, scratchEC := GetBBFromScratch(nl, placement, net)
				return scratchBB, scratchEC, true
			}
			ec.XMax = currEdge.XMax - 1
			bb.XMax = curr.XMax
		} else {
			bb.XMax = curr.XMax
			ec.XMax = currEdge.XMax
		}

		if xnew < curr.XMin {
			bb.XMin = xnew
			ec.XMin = 1
		} else if xnew == curr.XMin {
			bb.XMin = xnew
			ec.XMin = currEdge.XMin + 1
		} else {
			bb.XMin = curr.XMin
			ec.XMin = currEdge.XMin
		}
	} else if xnew > xold {
		if xold == curr.XMin {
			if currEdge.XMin == 1 {
				scratchBB, scratchEC := GetBBFromScratch(nl, placement, net)
				return scratchBB, scratchEC, true
			}
			ec.XMin = currEdge.XMin - 1
			bb.XMin = curr.XMin
		} else {
			bb.XMin = curr.XMin
			ec.XMin = currEdge.XMin
		}

		if xnew > curr.XMax {
			bb.XMax = xnew
			ec.XMax = 1
		} else if xnew == curr.XMax {
			bb.XMax = xnew
			ec.XMax = currEdge.XMax + 1
		} else {
			bb.XMax = curr.XMax
			ec.XMax = currEdge.XMax
		}
	} else {
		bb.XMin, bb.XMax = curr.XMin, curr.XMax
		ec.XMin, ec.XMax = currEdge.XMin, currEdge.XMax
	}

	if ynew < yold {
		if yold == curr.YMax {
			if currEdge.YMax == 1 {
				scratchBB, scratchEC := GetBBFromScratch(nl, placement, net)
				return scratchBB, scratchEC, true
			}
			ec.YMax = currEdge.YMax - 1
			bb.YMax = curr.YMax
		} else {
			bb.YMax = curr.YMax
			ec.YMax = currEdge.YMax
		}

		if ynew < curr.YMin {
			bb.YMin = ynew
			ec.YMin = 1
		} else if ynew == curr.YMin {
			bb.YMin = ynew
			ec.YMin = currEdge.YMin + 1
		} else {
			bb.YMin = curr.YMin
			ec.YMin = currEdge.YMin
		}
	} else if ynew > yold {
		if yold == curr.YMin {
			if currEdge.YMin == 1 {
				scratchBB, scratchEC := GetBBFromScratch(nl, placement, net)
				return scratchBB, scratchEC, true
			}
			ec.YMin = currEdge.YMin - 1
			bb.YMin = curr.YMin
		} else {
			bb.YMin = curr.YMin
			ec.YMin = currEdge.YMin
		}

		if ynew > curr.YMax {
			bb.YMax = ynew
			ec.YMax = 1
		} else if ynew == curr.YMax {
			bb.YMax = ynew
			ec.YMax = currEdge.YMax + 1
		} else {
			bb.YMax = curr.YMax
			ec.YMax = currEdge.YMax
		}
	} else {
		bb.YMin, bb.YMax = curr.YMin, curr.YMax
		ec.YMin, ec.YMax = currEdge.YMin, currEdge.YMax
	}

	return bb, ec, false
}
