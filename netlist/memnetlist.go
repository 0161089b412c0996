package netlist

// pinRecord is the internal storage for one pin instance.
type pinRecord struct {
	net     NetID
	block   BlockID
	kind    PinKind
	netIdx  int
	tilePin int
}

// netRecord is the internal storage for one net.
type netRecord struct {
	pins    []PinID // 0 is driver
	ignored bool
}

// blockRecord is the internal storage for one block.
type blockRecord struct {
	typeName string
	pins     []PinID
}

// Mem is an in-memory Netlist implementation. Construct one with
// NewBuilder, add blocks/nets/pins, then call Build.
type Mem struct {
	nets   []netRecord
	blocks []blockRecord
	pins   []pinRecord
	macros []Macro
}

var _ Netlist = (*Mem)(nil)

func (m *Mem) Nets() []NetID {
	ids := make([]NetID, len(m.nets))
	for i := range m.nets {
		ids[i] = NetID(i)
	}
	return ids
}

func (m *Mem) Blocks() []BlockID {
	ids := make([]BlockID, len(m.blocks))
	for i := range m.blocks {
		ids[i] = BlockID(i)
	}
	return ids
}

func (m *Mem) BlockPins(b BlockID) []PinID { return m.blocks[b].pins }
func (m *Mem) BlockType(b BlockID) string  { return m.blocks[b].typeName }

func (m *Mem) NetPins(n NetID) []PinID  { return m.nets[n].pins }
func (m *Mem) NetSinks(n NetID) []PinID { return m.nets[n].pins[1:] }
func (m *Mem) NetDriverBlock(n NetID) BlockID {
	return m.pins[m.nets[n].pins[0]].block
}
func (m *Mem) NetIsIgnored(n NetID) bool { return m.nets[n].ignored }

func (m *Mem) PinNet(p PinID) NetID      { return m.pins[p].net }
func (m *Mem) PinBlock(p PinID) BlockID  { return m.pins[p].block }
func (m *Mem) PinKind(p PinID) PinKind   { return m.pins[p].kind }
func (m *Mem) PinNetIndex(p PinID) int   { return m.pins[p].netIdx }
func (m *Mem) TilePin(p PinID) int       { return m.pins[p].tilePin }
func (m *Mem) Macros() []Macro           { return m.macros }

// Builder assembles a Mem netlist incrementally.
type Builder struct {
	m *Mem
}

// NewBuilder starts a new in-memory netlist.
func NewBuilder() *Builder {
	return &Builder{m: &Mem{}}
}

// AddBlock registers a block of the given logical type and returns its id.
func (b *Builder) AddBlock(typeName string) BlockID {
	b.m.blocks = append(b.m.blocks, blockRecord{typeName: typeName})
	return BlockID(len(b.m.blocks) - 1)
}

// AddNet starts a net with the given driver block/tile-pin and returns its
// id. Sinks are added afterwards with AddSink.
func (b *Builder) AddNet(driverBlock BlockID, driverTilePin int, ignored bool) NetID {
	netID := NetID(len(b.m.nets))
	driverPin := PinID(len(b.m.pins))
	b.m.pins = append(b.m.pins, pinRecord{
		net: netID, block: driverBlock, kind: Driver, netIdx: 0, tilePin: driverTilePin,
	})
	b.m.blocks[driverBlock].pins = append(b.m.blocks[driverBlock].pins, driverPin)
	b.m.nets = append(b.m.nets, netRecord{pins: []PinID{driverPin}, ignored: ignored})
	return netID
}

// AddSink adds one sink pin to net on the given block and returns the pin id.
func (b *Builder) AddSink(net NetID, block BlockID, tilePin int) PinID {
	idx := len(b.m.nets[net].pins)
	pin := PinID(len(b.m.pins))
	b.m.pins = append(b.m.pins, pinRecord{
		net: net, block: block, kind: Sink, netIdx: idx, tilePin: tilePin,
	})
	b.m.blocks[block].pins = append(b.m.blocks[block].pins, pin)
	b.m.nets[net].pins = append(b.m.nets[net].pins, pin)
	return pin
}

// AddMacro registers a rigid placement-macro group: head plus members,
// each located at head's location plus the member's offset. The head
// itself must be included in members with a (0,0) offset.
func (b *Builder) AddMacro(head BlockID, members []MacroMember) {
	b.m.macros = append(b.m.macros, Macro{Head: head, Members: members})
}

// Build finalizes and returns the assembled netlist.
func (b *Builder) Build() *Mem { return b.m }
