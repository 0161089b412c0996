package anneal

import (
	"math"

	"github.com/rw1nkler/vtr-verilog-to-routing/costmodel"
	"github.com/rw1nkler/vtr-verilog-to-routing/device"
	"github.com/rw1nkler/vtr-verilog-to-routing/move"
	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
)

// TrialDeltas reports the cost-delta quantities a single TrySwap call
// computed, for callers (status hooks, tracers) that need the raw numbers
// behind the accept/reject decision rather than just its outcome.
type TrialDeltas struct {
	DeltaCost   float64 // weighted delta_c actually used by the acceptance rule
	DeltaBBCost float64 // bb_delta
	DeltaTDCost float64 // timing_delta
}

// TrySwap proposes one move, tentatively applies it, computes the delta
// cost over every affected net and (if timing-driven) connection, applies
// the Metropolis acceptance rule at temperature t, and commits or reverts
// all shadow state accordingly. ba is trial-scoped scratch the caller
// reuses across trials; it is cleared on every non-error return. An error is
// returned only for a fatal NEGATIVE_DELAY condition, in which case the
// outcome and deltas are meaningless, ba is left populated with the move
// still applied to the placement, and the caller must stop.
func (s *State) TrySwap(t float64, ba *move.BlocksAffected) (move.TrialOutcome, TrialDeltas, error) {
	rlim := s.Rlim
	if s.rng.Float64() < s.RlimEscapeFraction {
		rlim = math.Inf(1)
	}

	if s.MoveGen.ProposeMove(ba, rlim) == move.Abort {
		move.ClearMoveBlocks(ba)
		return move.Aborted, TrialDeltas{}, nil
	}

	move.ApplyMoveBlocks(s.Placement, ba)

	bbDelta, timingDelta, err := s.collectDelta(ba)
	if err != nil {
		return move.Rejected, TrialDeltas{}, err
	}

	var deltaC float64
	if s.Algorithm == BoundingBoxPlace {
		deltaC = bbDelta
	} else {
		deltaC = (1-s.Lambda)*bbDelta*s.InvBB + s.Lambda*timingDelta*s.InvTiming
	}

	accept := deltaC <= 0
	if !accept && t > 0 {
		accept = math.Exp(-deltaC/t) > s.rng.Float64()
	}

	outcome := move.Rejected
	if accept {
		outcome = move.Accepted
		s.Cost += deltaC
		s.BBCost += bbDelta
		if s.Algorithm == PathTimingDrivenPlace {
			s.invalidateChangedEdges(ba)
			s.TimingCost += timingDelta
			s.commitTimingShadows(ba)
		}
		s.commitBB()
		for _, mb := range ba.MovedBlocks {
			s.Placement.CommitOccupancy(mb.Block, mb.OldLoc, mb.NewLoc)
		}
	} else {
		s.resetAffectedMarkers()
		move.RevertMoveBlocks(s.Placement, ba)
		s.revertTimingShadows(ba)
	}

	s.MoveGen.ProcessOutcome(move.OutcomeStats{
		Outcome:             outcome,
		DeltaCostNorm:       deltaC,
		DeltaBBCostNorm:     bbDelta * s.InvBB,
		DeltaTimingCostNorm: timingDelta * s.InvTiming,
		DeltaBBCostAbs:      bbDelta,
		DeltaTimingCostAbs:  timingDelta,
	})

	move.ClearMoveBlocks(ba)
	return outcome, TrialDeltas{DeltaCost: deltaC, DeltaBBCost: bbDelta, DeltaTDCost: timingDelta}, nil
}

// collectDelta walks every pin on every moved block, marks and
// incrementally updates the bbox of every affected net, and (for
// timing-driven runs) the proposed delay/cost of every affected
// connection, returning the aggregate bb and timing deltas.
func (s *State) collectDelta(ba *move.BlocksAffected) (bbDelta, timingDelta float64, err error) {
	s.affectedNets = s.affectedNets[:0]

	movedOld := make(map[netlist.BlockID]device.Location, len(ba.MovedBlocks))
	for _, mb := range ba.MovedBlocks {
		movedOld[mb.Block] = mb.OldLoc
	}

	for _, mb := range ba.MovedBlocks {
		for _, pin := range s.NL.BlockPins(mb.Block) {
			net := s.NL.PinNet(pin)
			if s.NL.NetIsIgnored(net) {
				continue
			}

			if s.proposedNetCost[net] < 0 {
				s.proposedNetCost[net] = 1
				s.affectedNets = append(s.affectedNets, net)
			}

			if len(s.NL.NetSinks(net)) >= costmodel.SmallNet {
				s.touchPinBB(net, pin, mb.OldLoc, mb.NewLoc)
			}

			if s.Algorithm == PathTimingDrivenPlace {
				d, derr := s.timingDeltaForPin(ba, movedOld, net, pin)
				if derr != nil {
					return 0, 0, derr
				}
				timingDelta += d
			}
		}
	}

	for _, net := range s.affectedNets {
		numPins := len(s.NL.NetPins(net))
		var bb costmodel.BB
		var ec costmodel.EdgeCount
		if len(s.NL.NetSinks(net)) < costmodel.SmallNet {
			bb, ec = costmodel.GetBBFromScratch(s.NL, s.Placement, net)
		} else {
			bb, ec = s.bb[net].proposed, s.bb[net].proposedEdge
		}
		s.bb[net].proposed = bb
		s.bb[net].proposedEdge = ec

		newCost := s.Factors.GetNetCost(numPins, bb)
		s.proposedNetCost[net] = newCost
		bbDelta += newCost - s.w[net]
	}

	return bbDelta, timingDelta, nil
}

// touchPinBB incrementally updates net's proposed bbox for a single moved
// pin, per the three-state flag machine: first touch reads the committed
// pair, subsequent touches read the in-progress proposed pair, and a
// GotFromScratch net is left untouched.
func (s *State) touchPinBB(net netlist.NetID, pin netlist.PinID, oldLoc, newLoc device.Location) {
	st := &s.bb[net]
	if st.flag == costmodel.GotFromScratch {
		return
	}

	var curr costmodel.BB
	var currEdge costmodel.EdgeCount
	if st.flag == costmodel.NotUpdatedYet {
		curr, currEdge = st.committed, st.committedEdge
		st.flag = costmodel.UpdatedOnce
	} else {
		curr, currEdge = st.proposed, st.proposedEdge
	}

	oldX, oldY := pinXYAt(s.Placement, s.NL, pin, oldLoc)
	newX, newY := pinXYAt(s.Placement, s.NL, pin, newLoc)

	bb, ec, gotScratch := costmodel.UpdateBB(s.NL, s.Placement, net, curr, currEdge, oldX, oldY, newX, newY)
	st.proposed, st.proposedEdge = bb, ec
	if gotScratch {
		st.flag = costmodel.GotFromScratch
	}
}

// pinXYAt returns a pin's physical coordinates if its block were at loc,
// using the tile type actually occupying loc (the block's old tile for
// oldLoc, the destination tile for newLoc).
func pinXYAt(placement *device.Placement, nl netlist.Netlist, pin netlist.PinID, loc device.Location) (int, int) {
	tile := placement.Grid().TileAt(loc.X, loc.Y)
	tp := nl.TilePin(pin)
	return loc.X + tile.PinWidthOffset[tp], loc.Y + tile.PinHeightOffset[tp]
}

// timingDeltaForPin classifies one touched pin per the driver/sink
// double-counting policy (§9 of the spec this engine implements: a moved
// driver covers all of its sinks; a moved sink only contributes if its
// driver did not also move) and accumulates the proposed delay/cost for
// every connection it covers.
func (s *State) timingDeltaForPin(ba *move.BlocksAffected, movedOld map[netlist.BlockID]device.Location, net netlist.NetID, pin netlist.PinID) (float64, error) {
	var delta float64

	switch s.NL.PinKind(pin) {
	case netlist.Driver:
		for _, sinkPin := range s.NL.NetSinks(net) {
			idx := s.NL.PinNetIndex(sinkPin)
			d, err := s.proposeConnection(ba, net, idx, sinkPin)
			if err != nil {
				return 0, err
			}
			delta += d
		}
	case netlist.Sink:
		driverBlock := s.NL.NetDriverBlock(net)
		if _, driverMoved := movedOld[driverBlock]; driverMoved {
			return 0, nil // covered by the driver's own pass
		}
		idx := s.NL.PinNetIndex(pin)
		d, err := s.proposeConnection(ba, net, idx, pin)
		if err != nil {
			return 0, err
		}
		delta += d
	}

	return delta, nil
}

// proposeConnection recomputes one connection's proposed delay/cost from
// current (post-move) block positions, records it in the shadow arrays,
// appends the pin to the trial's affected-pins list, and returns its
// contribution to the timing delta.
func (s *State) proposeConnection(ba *move.BlocksAffected, net netlist.NetID, sinkIdx int, sinkPin netlist.PinID) (float64, error) {
	d := costmodel.ConnectionDelay(s.NL, s.Placement, s.DelayModel, net, sinkIdx)
	if err := checkNegativeDelay(d); err != nil {
		return 0, err
	}
	c := s.Crit.Criticality(net, sinkIdx) * d

	s.TC.ProposedDelay[net][sinkIdx] = d
	s.TC.ProposedCost[net][sinkIdx] = c
	ba.AffectedPins = append(ba.AffectedPins, sinkPin)

	return c - s.TC.Cost[net][sinkIdx], nil
}

// invalidateChangedEdges notifies the timing-invalidation collaborator of
// every affected connection whose proposed delay actually differs from its
// committed delay, ahead of commit.
func (s *State) invalidateChangedEdges(ba *move.BlocksAffected) {
	for _, pin := range ba.AffectedPins {
		net := s.NL.PinNet(pin)
		idx := s.NL.PinNetIndex(pin)
		if s.TC.ProposedDelay[net][idx] != s.TC.Delay[net][idx] {
			s.Invalidate.InvalidateConnection(pin)
		}
	}
}

// commitTimingShadows copies every affected connection's proposed
// delay/cost into the committed arrays and resets the shadow entries to
// NaN.
func (s *State) commitTimingShadows(ba *move.BlocksAffected) {
	for _, pin := range ba.AffectedPins {
		net := s.NL.PinNet(pin)
		idx := s.NL.PinNetIndex(pin)
		s.TC.Delay[net][idx] = s.TC.ProposedDelay[net][idx]
		s.TC.Cost[net][idx] = s.TC.ProposedCost[net][idx]
		s.TC.ProposedDelay[net][idx] = math.NaN()
		s.TC.ProposedCost[net][idx] = math.NaN()
	}
}

// revertTimingShadows resets every affected connection's shadow entries to
// NaN without touching the committed arrays.
func (s *State) revertTimingShadows(ba *move.BlocksAffected) {
	for _, pin := range ba.AffectedPins {
		net := s.NL.PinNet(pin)
		idx := s.NL.PinNetIndex(pin)
		s.TC.ProposedDelay[net][idx] = math.NaN()
		s.TC.ProposedCost[net][idx] = math.NaN()
	}
}

// commitBB copies every affected net's proposed bbox into its committed
// slot, updates W[net] from the already-computed proposed cost, and resets
// the per-net marker and flag to their quiesced sentinels.
func (s *State) commitBB() {
	for _, net := range s.affectedNets {
		st := &s.bb[net]
		st.committed = st.proposed
		st.committedEdge = st.proposedEdge
		st.flag = costmodel.NotUpdatedYet
		s.w[net] = s.proposedNetCost[net]
		s.proposedNetCost[net] = -1
	}
	s.affectedNets = s.affectedNets[:0]
}

// resetAffectedMarkers quiesces the per-net marker and flag for every net
// touched by a rejected trial, without touching the committed bbox.
func (s *State) resetAffectedMarkers() {
	for _, net := range s.affectedNets {
		s.proposedNetCost[net] = -1
		s.bb[net].flag = costmodel.NotUpdatedYet
	}
	s.affectedNets = s.affectedNets[:0]
}
