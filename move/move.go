// Package move implements move proposal and the block-location
// apply/commit/revert/clear helpers a trial uses to tentatively perturb a
// placement without disturbing its grid-inverse map until the move is
// accepted.
package move

import (
	"github.com/rw1nkler/vtr-verilog-to-routing/device"
	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
)

// CreateOutcome is the result of asking a MoveGenerator to propose a move.
type CreateOutcome int

const (
	// Valid means BlocksAffected was populated with a legal tentative move.
	Valid CreateOutcome = iota
	// Abort means no legal move could be proposed; the caller should treat
	// this as a normal (non-error) outcome and try again next trial.
	Abort
)

// TrialOutcome is the result of evaluating a proposed move's cost delta.
type TrialOutcome int

const (
	Accepted TrialOutcome = iota
	Rejected
	Aborted
)

func (o TrialOutcome) String() string {
	switch o {
	case Accepted:
		return "ACCEPTED"
	case Rejected:
		return "REJECTED"
	default:
		return "ABORTED"
	}
}

// OutcomeStats summarizes one trial for MoveGenerator.ProcessOutcome,
// mirroring what a move generator might use to adapt its own proposal
// distribution (e.g. an adaptive generator biasing toward move kinds that
// tend to be accepted).
type OutcomeStats struct {
	Outcome             TrialOutcome
	DeltaCostNorm       float64
	DeltaBBCostNorm     float64
	DeltaTimingCostNorm float64
	DeltaBBCostAbs      float64
	DeltaTimingCostAbs  float64
}

// MovedBlock records one block's tentative relocation.
type MovedBlock struct {
	Block  netlist.BlockID
	OldLoc device.Location
	NewLoc device.Location
}

// BlocksAffected is the scratch structure a single trial uses: every block
// tentatively relocated, and every pin whose timing connection was
// evaluated (populated by the timing cost engine during delta computation,
// not by the move generator).
type BlocksAffected struct {
	MovedBlocks  []MovedBlock
	AffectedPins []netlist.PinID
}

// MoveGenerator proposes moves and is notified of their outcome.
type MoveGenerator interface {
	ProposeMove(ba *BlocksAffected, rlim float64) CreateOutcome
	ProcessOutcome(stats OutcomeStats)
}

// ApplyMoveBlocks writes every moved block's new location into placement,
// without touching the grid-inverse occupancy map.
func ApplyMoveBlocks(placement *device.Placement, ba *BlocksAffected) {
	for _, mb := range ba.MovedBlocks {
		placement.SetLoc(mb.Block, mb.NewLoc)
	}
}

// RevertMoveBlocks restores every moved block's pre-trial location.
func RevertMoveBlocks(placement *device.Placement, ba *BlocksAffected) {
	for _, mb := range ba.MovedBlocks {
		placement.SetLoc(mb.Block, mb.OldLoc)
	}
}

// CommitMoveBlocks updates the grid-inverse occupancy map to match the
// already-applied new locations. Call only after a trial is accepted.
func CommitMoveBlocks(placement *device.Placement, ba *BlocksAffected) {
	for _, mb := range ba.MovedBlocks {
		placement.CommitOccupancy(mb.Block, mb.OldLoc, mb.NewLoc)
	}
}

// ClearMoveBlocks resets the scratch structure for reuse by the next trial.
func ClearMoveBlocks(ba *BlocksAffected) {
	ba.MovedBlocks = ba.MovedBlocks[:0]
	ba.AffectedPins = ba.AffectedPins[:0]
}
