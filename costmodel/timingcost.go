package costmodel

import (
	"math"

	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
)

// DelayModel is the external collaborator that estimates source-to-sink
// delay from physical coordinates. A negative return is a fatal
// placererr.NegativeDelay condition, checked by the caller (the anneal
// package), not here.
type DelayModel interface {
	Delay(srcX, srcY, srcIPin, sinkX, sinkY, sinkIPin int) float64
}

// CriticalityProvider exposes the STA-derived per-connection criticality,
// frozen between refreshes.
type CriticalityProvider interface {
	Criticality(net netlist.NetID, sinkIdx int) float64
}

// TimingCosts holds the per-connection delay and timing-cost caches plus
// their proposed shadow counterparts, indexed [net][sinkIdx] (sinkIdx is
// 1-based to match the net's pin list; index 0, the driver, is unused).
type TimingCosts struct {
	Delay         [][]float64 // committed D[net][s]
	Cost          [][]float64 // committed C[net][s]
	ProposedDelay [][]float64 // D'[net][s], NaN when not pending
	ProposedCost  [][]float64 // C'[net][s], NaN when not pending
	NetTimingCost []float64   // T[net] = sum_s C[net][s]
}

// NewTimingCosts allocates caches sized to nl, with every shadow entry set
// to NaN ("not pending").
func NewTimingCosts(nl netlist.Netlist) *TimingCosts {
	nets := nl.Nets()
	tc := &TimingCosts{
		Delay:         make([][]float64, len(nets)),
		Cost:          make([][]float64, len(nets)),
		ProposedDelay: make([][]float64, len(nets)),
		ProposedCost:  make([][]float64, len(nets)),
		NetTimingCost: make([]float64, len(nets)),
	}
	for _, n := range nets {
		k := len(nl.NetPins(n))
		tc.Delay[n] = make([]float64, k)
		tc.Cost[n] = make([]float64, k)
		tc.ProposedDelay[n] = make([]float64, k)
		tc.ProposedCost[n] = make([]float64, k)
		for s := 0; s < k; s++ {
			tc.ProposedDelay[n][s] = math.NaN()
			tc.ProposedCost[n][s] = math.NaN()
		}
	}
	return tc
}

// ConnectionDelay computes the delay of one net/sink connection from
// current block positions, via the given delay model.
func ConnectionDelay(nl netlist.Netlist, placement pinLocator, dm DelayModel, net netlist.NetID, sinkIdx int) float64 {
	pins := nl.NetPins(net)
	srcPin := pins[0]
	sinkPin := pins[sinkIdx]

	srcX, srcY := placement.PinXY(nl, srcPin)
	sinkX, sinkY := placement.PinXY(nl, sinkPin)

	return dm.Delay(srcX, srcY, nl.TilePin(srcPin), sinkX, sinkY, nl.TilePin(sinkPin))
}

// pinLocator is the minimal placement surface the timing cost engine needs:
// a pin's current (x, y) as block position plus tile pin offset (timing
// delay uses these block-plus-tile-pin coordinates, not the bbox clipping
// rules).
type pinLocator interface {
	PinXY(nl netlist.Netlist, pin netlist.PinID) (x, y int)
}

// CompTDCosts recomputes every connection's delay and cost from scratch,
// and returns the total timing cost. Summation is hierarchical
// (connection -> net -> total) to match UpdateTDCosts bit-for-bit.
func CompTDCosts(nl netlist.Netlist, placement pinLocator, dm DelayModel, crit CriticalityProvider, tc *TimingCosts) float64 {
	var total float64
	for _, n := range nl.Nets() {
		if nl.NetIsIgnored(n) {
			continue
		}
		var netTotal float64
		k := len(nl.NetPins(n))
		for s := 1; s < k; s++ {
			d := ConnectionDelay(nl, placement, dm, n, s)
			tc.Delay[n][s] = d
			c := crit.Criticality(n, s) * d
			tc.Cost[n][s] = c
			netTotal += c
		}
		tc.NetTimingCost[n] = netTotal
		total += netTotal
	}
	return total
}

// UpdateTDCosts incrementally recomputes the total timing cost after a
// criticality refresh: only sink pins named in modified recompute their
// cost (delay does not change on criticality refresh, only on move), but
// the total is re-summed hierarchically over every net so floating-point
// order matches CompTDCosts exactly.
func UpdateTDCosts(nl netlist.Netlist, crit CriticalityProvider, tc *TimingCosts, modifiedPins []netlist.PinID) float64 {
	for _, pin := range modifiedPins {
		if nl.PinKind(pin) == netlist.Driver {
			continue
		}
		n := nl.PinNet(pin)
		if nl.NetIsIgnored(n) {
			continue
		}
		s := nl.PinNetIndex(pin)
		tc.Cost[n][s] = crit.Criticality(n, s) * tc.Delay[n][s]
	}

	var total float64
	for _, n := range nl.Nets() {
		if nl.NetIsIgnored(n) {
			continue
		}
		var netTotal float64
		for _, c := range tc.Cost[n][1:] {
			netTotal += c
		}
		tc.NetTimingCost[n] = netTotal
		total += netTotal
	}
	return total
}
