// Package device models the FPGA device grid and the mutable block-location
// state the placement core perturbs: tile types and channel widths (read
// only after construction), and block locations plus their grid-inverse
// lookup (mutated once per accepted trial).
package device

import "github.com/rw1nkler/vtr-verilog-to-routing/netlist"

// Location is a block's position on the grid.
type Location struct {
	X, Y, SubTile int
}

// TileType describes one physical tile kind: how many logical blocks it can
// hold (sub-tile capacity), which logical block types are compatible with
// which sub-tile slot, and the per-pin physical offsets used by the
// bounding-box engine.
type TileType struct {
	Name     string
	Capacity int
	// Compatible[subTile] is the set of logical block type names that may
	// occupy that sub-tile slot.
	Compatible      []map[string]bool
	PinWidthOffset  []int
	PinHeightOffset []int
}

// IsSubTileCompatible reports whether a block of logicalType may be placed
// in sub-tile subTile of this tile type.
func (t *TileType) IsSubTileCompatible(logicalType string, subTile int) bool {
	if subTile < 0 || subTile >= len(t.Compatible) {
		return false
	}
	return t.Compatible[subTile][logicalType]
}

// Grid is the immutable device fabric: dimensions, channel widths, and the
// tile type occupying every (x, y) cell.
type Grid struct {
	width, height int
	chanWidthX    []int // indexed by row y, length height
	chanWidthY    []int // indexed by column x, length width
	tiles         [][]*TileType
}

// NewGrid builds a width x height grid uniformly populated with tileType,
// and uniform channel widths chanX/chanY along every row/column.
func NewGrid(width, height int, tileType *TileType, chanX, chanY int) *Grid {
	g := &Grid{width: width, height: height}
	g.chanWidthX = make([]int, height)
	g.chanWidthY = make([]int, width)
	for i := range g.chanWidthX {
		g.chanWidthX[i] = chanX
	}
	for i := range g.chanWidthY {
		g.chanWidthY[i] = chanY
	}
	g.tiles = make([][]*TileType, width)
	for x := range g.tiles {
		g.tiles[x] = make([]*TileType, height)
		for y := range g.tiles[x] {
			g.tiles[x][y] = tileType
		}
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// ChanWidthX returns the horizontal channel width at row y.
func (g *Grid) ChanWidthX(y int) int { return g.chanWidthX[y] }

// ChanWidthY returns the vertical channel width at column x.
func (g *Grid) ChanWidthY(x int) int { return g.chanWidthY[x] }

// TileAt returns the tile type occupying (x, y).
func (g *Grid) TileAt(x, y int) *TileType { return g.tiles[x][y] }

// SetChanWidthX overrides the channel width at row y (used to build
// non-uniform test fixtures).
func (g *Grid) SetChanWidthX(y, width int) { g.chanWidthX[y] = width }

// SetChanWidthY overrides the channel width at column x.
func (g *Grid) SetChanWidthY(x, width int) { g.chanWidthY[x] = width }

// SetTileAt overrides the tile type at (x, y) (used to build heterogeneous
// test fixtures).
func (g *Grid) SetTileAt(x, y int, t *TileType) { g.tiles[x][y] = t }

// Placement owns the mutable block-location state: block->location and its
// grid-cell inverse. It exposes the apply/commit/revert primitives a trial
// uses to tentatively move blocks without disturbing the inverse map until
// the move is accepted.
type Placement struct {
	grid      *Grid
	nl        netlist.Netlist
	locs      []Location
	occupants [][][]netlist.BlockID // [x][y][subTile]
}

const noBlock = netlist.BlockID(netlist.Invalid)

// NewPlacement allocates location storage for every block in nl against
// grid, with every cell initially empty. Callers populate initial legal
// locations with PlaceInitial before running any trials.
func NewPlacement(grid *Grid, nl netlist.Netlist) *Placement {
	p := &Placement{grid: grid, nl: nl}
	p.locs = make([]Location, len(nl.Blocks()))
	for i := range p.locs {
		p.locs[i] = Location{X: -1, Y: -1, SubTile: -1}
	}
	p.occupants = make([][][]netlist.BlockID, grid.width)
	for x := range p.occupants {
		p.occupants[x] = make([][]netlist.BlockID, grid.height)
		for y := range p.occupants[x] {
			cap := grid.TileAt(x, y).Capacity
			row := make([]netlist.BlockID, cap)
			for s := range row {
				row[s] = noBlock
			}
			p.occupants[x][y] = row
		}
	}
	return p
}

func (p *Placement) Grid() *Grid { return p.grid }

// Loc returns the current committed location of a block.
func (p *Placement) Loc(b netlist.BlockID) Location { return p.locs[b] }

// Occupant returns the block (or netlist.Invalid) occupying a grid cell.
func (p *Placement) Occupant(x, y, subTile int) netlist.BlockID {
	return p.occupants[x][y][subTile]
}

// PlaceInitial assigns a block's starting location and records it in the
// inverse map. Used only during initial legal-placement setup, never during
// a trial.
func (p *Placement) PlaceInitial(b netlist.BlockID, loc Location) {
	p.locs[b] = loc
	p.occupants[loc.X][loc.Y][loc.SubTile] = b
}

// SetLoc overwrites a block's location without touching the inverse map.
// This is the "apply"/"revert" primitive a trial uses: locations move
// tentatively, the inverse map is only updated on commit.
func (p *Placement) SetLoc(b netlist.BlockID, loc Location) { p.locs[b] = loc }

// PinXY returns a pin's current physical (x, y), i.e. its block's location
// offset by the tile's per-pin width/height offset. Used by the timing cost
// engine, which (unlike the bounding-box engine) does not clip to the
// interior of the grid.
func (p *Placement) PinXY(nl netlist.Netlist, pin netlist.PinID) (x, y int) {
	blk := nl.PinBlock(pin)
	loc := p.Loc(blk)
	tile := p.Grid().TileAt(loc.X, loc.Y)
	tp := nl.TilePin(pin)
	return loc.X + tile.PinWidthOffset[tp], loc.Y + tile.PinHeightOffset[tp]
}

// CommitOccupancy moves the inverse-map entry for block b from oldLoc to
// newLoc. Call once per moved block, after a trial is accepted.
func (p *Placement) CommitOccupancy(b netlist.BlockID, oldLoc, newLoc Location) {
	if p.occupants[oldLoc.X][oldLoc.Y][oldLoc.SubTile] == b {
		p.occupants[oldLoc.X][oldLoc.Y][oldLoc.SubTile] = noBlock
	}
	p.occupants[newLoc.X][newLoc.Y][newLoc.SubTile] = b
}
