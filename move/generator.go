package move

import (
	"math"
	"math/rand"

	"github.com/rw1nkler/vtr-verilog-to-routing/device"
	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
)

// UniformMoveGenerator is the reference MoveGenerator: it picks a uniformly
// random movable block, then a uniformly random type-compatible destination
// within Chebyshev distance rlim, and proposes swapping the two blocks (or
// relocating to an empty sub-tile when the destination is unoccupied).
// Macros move as a rigid unit: every member is relocated by the same
// offset as the head, and the whole group is aborted if any member's
// destination would be illegal.
type UniformMoveGenerator struct {
	NL        netlist.Netlist
	Placement *device.Placement
	Rng       *rand.Rand

	// Macros maps a macro head's block id to the macro it heads; a block not
	// present as a key moves independently. Members of a macro never appear
	// as their own key.
	Macros map[netlist.BlockID]*netlist.Macro

	maxTries int
}

var _ MoveGenerator = (*UniformMoveGenerator)(nil)

// NewUniformMoveGenerator builds a generator over nl/placement seeded from
// rng. maxTries bounds how many destination candidates are tried before
// giving up and returning Abort (VPR's own uniform_move gives up quickly
// rather than scanning the whole device).
func NewUniformMoveGenerator(nl netlist.Netlist, placement *device.Placement, rng *rand.Rand) *UniformMoveGenerator {
	return &UniformMoveGenerator{
		NL:        nl,
		Placement: placement,
		Rng:       rng,
		Macros:    make(map[netlist.BlockID]*netlist.Macro),
		maxTries:  20,
	}
}

// ProcessOutcome is a no-op for the uniform generator: it does not adapt its
// proposal distribution based on trial outcomes.
func (g *UniformMoveGenerator) ProcessOutcome(OutcomeStats) {}

// ProposeMove implements MoveGenerator.
func (g *UniformMoveGenerator) ProposeMove(ba *BlocksAffected, rlim float64) CreateOutcome {
	blocks := g.NL.Blocks()
	if len(blocks) == 0 {
		return Abort
	}

	head := blocks[g.Rng.Intn(len(blocks))]
	members := g.macroMembers(head)

	for try := 0; try < g.maxTries; try++ {
		dx, dy := g.randomOffset(rlim)
		if g.tryProposeAt(ba, members, dx, dy) {
			return Valid
		}
		ClearMoveBlocks(ba)
	}

	return Abort
}

// macroMembers returns the (head, offset) pairs moving together for head:
// just the head itself if it belongs to no registered macro, or every
// member of its macro otherwise.
func (g *UniformMoveGenerator) macroMembers(head netlist.BlockID) []netlist.MacroMember {
	if macro, ok := g.Macros[head]; ok {
		return macro.Members
	}
	return []netlist.MacroMember{{Block: head, DX: 0, DY: 0}}
}

// randomOffset draws a uniform offset within Chebyshev distance rlim,
// excluding (0,0).
func (g *UniformMoveGenerator) randomOffset(rlim float64) (int, int) {
	r := int(math.Floor(rlim))
	if r < 1 {
		r = 1
	}
	if math.IsInf(rlim, 1) || r > 1<<20 {
		r = 1 << 20
	}
	for {
		dx := g.Rng.Intn(2*r+1) - r
		dy := g.Rng.Intn(2*r+1) - r
		if dx != 0 || dy != 0 {
			return dx, dy
		}
	}
}

// tryProposeAt attempts to move every macro member by (dx, dy), swapping
// with whatever occupies each destination sub-tile. It populates ba and
// returns true on a fully legal proposal, or leaves ba untouched and
// returns false if any member's destination is out of bounds or
// type-incompatible. A destination occupied by another macro's member is
// rejected rather than supported, keeping macro-vs-macro swaps out of this
// generator's scope.
func (g *UniformMoveGenerator) tryProposeAt(ba *BlocksAffected, members []netlist.MacroMember, dx, dy int) bool {
	grid := g.Placement.Grid()
	moving := make(map[netlist.BlockID]bool, len(members))
	for _, mem := range members {
		moving[mem.Block] = true
	}

	type pending struct {
		block         netlist.BlockID
		oldLoc, newLoc device.Location
	}
	var plan []pending
	displaced := make(map[netlist.BlockID]bool)

	for _, mem := range members {
		loc := g.Placement.Loc(mem.Block)
		nx, ny := loc.X+dx, loc.Y+dy
		if nx < 0 || nx >= grid.Width() || ny < 0 || ny >= grid.Height() {
			return false
		}
		tile := grid.TileAt(nx, ny)
		subTile := loc.SubTile
		if subTile >= tile.Capacity {
			subTile = 0
		}
		if !tile.IsSubTileCompatible(g.NL.BlockType(mem.Block), subTile) {
			return false
		}

		newLoc := device.Location{X: nx, Y: ny, SubTile: subTile}
		plan = append(plan, pending{block: mem.Block, oldLoc: loc, newLoc: newLoc})

		other := g.Placement.Occupant(nx, ny, subTile)
		if other == netlist.BlockID(netlist.Invalid) || moving[other] {
			continue
		}
		inOtherMacro := false
		for _, macro := range g.Macros {
			for _, mm := range macro.Members {
				if mm.Block == other {
					inOtherMacro = true
				}
			}
		}
		if _, isMacroHead := g.Macros[other]; isMacroHead || inOtherMacro || displaced[other] {
			return false
		}
		srcTile := grid.TileAt(loc.X, loc.Y)
		if !srcTile.IsSubTileCompatible(g.NL.BlockType(other), loc.SubTile) {
			return false
		}
		displaced[other] = true
		plan = append(plan, pending{block: other, oldLoc: newLoc, newLoc: loc})
	}

	for _, p := range plan {
		ba.MovedBlocks = append(ba.MovedBlocks, MovedBlock{
			Block:  p.block,
			OldLoc: p.oldLoc,
			NewLoc: p.newLoc,
		})
	}
	return true
}

// ManualMoveGenerator implements the "manual-move hook" design note: it lets
// a caller enqueue a specific forced move that the controller evaluates
// through the ordinary accept/reject path (not a veto-only hook). When no
// move is queued it delegates to an underlying generator, so a controller
// can be built once and switch between automated and manually-driven
// proposals at runtime.
type ManualMoveGenerator struct {
	Fallback MoveGenerator
	queue    []BlocksAffected
}

var _ MoveGenerator = (*ManualMoveGenerator)(nil)

// NewManualMoveGenerator wraps fallback, which supplies moves whenever the
// manual queue is empty.
func NewManualMoveGenerator(fallback MoveGenerator) *ManualMoveGenerator {
	return &ManualMoveGenerator{Fallback: fallback}
}

// Enqueue schedules a specific move to be proposed on a future ProposeMove
// call, ahead of any fallback-generated moves.
func (g *ManualMoveGenerator) Enqueue(ba BlocksAffected) {
	g.queue = append(g.queue, ba)
}

// ProposeMove implements MoveGenerator.
func (g *ManualMoveGenerator) ProposeMove(ba *BlocksAffected, rlim float64) CreateOutcome {
	if len(g.queue) == 0 {
		return g.Fallback.ProposeMove(ba, rlim)
	}
	next := g.queue[0]
	g.queue = g.queue[1:]
	ba.MovedBlocks = append(ba.MovedBlocks, next.MovedBlocks...)
	return Valid
}

// ProcessOutcome forwards to the fallback generator, so an adaptive
// fallback still learns from trials driven by manual moves.
func (g *ManualMoveGenerator) ProcessOutcome(stats OutcomeStats) {
	g.Fallback.ProcessOutcome(stats)
}
