package timinggraph

import (
	"math"

	"github.com/rw1nkler/vtr-verilog-to-routing/costmodel"
	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
)

// connKey identifies a single net/sink connection.
type connKey struct {
	net netlist.NetID
	s   int
}

// PinLocator is the minimal placement surface this engine needs to ask a
// delay model for a connection's delay.
type PinLocator interface {
	PinXY(nl netlist.Netlist, pin netlist.PinID) (x, y int)
}

// Engine is a slack-based reference implementation of TimingEngine,
// CriticalityProvider, and PinTimingInvalidator: it treats every net as an
// independent single-stage path (driver -> sink), derives slack relative to
// the longest connection delay observed anywhere in the netlist, and
// criticality as a power-law function of normalized slack.
type Engine struct {
	nl        netlist.Netlist
	placement PinLocator
	dm        costmodel.DelayModel

	slack       map[connKey]float64
	maxDelay    float64
	criticality map[connKey]float64
	modified    []netlist.PinID
	invalidated map[netlist.PinID]bool
}

var (
	_ TimingEngine         = (*Engine)(nil)
	_ CriticalityProvider  = (*Engine)(nil)
	_ PinTimingInvalidator = (*Engine)(nil)
)

// NewEngine builds a timing engine over nl, reading pin positions from
// placement and connection delays from dm.
func NewEngine(nl netlist.Netlist, placement PinLocator, dm costmodel.DelayModel) *Engine {
	return &Engine{
		nl:          nl,
		placement:   placement,
		dm:          dm,
		slack:       make(map[connKey]float64),
		criticality: make(map[connKey]float64),
		invalidated: make(map[netlist.PinID]bool),
	}
}

// Update recomputes every connection's delay from current block positions
// and re-derives slack relative to the new critical path. This reference
// engine always does a full recompute; InvalidateConnection/Reset exist to
// satisfy the contract (and let a caller track what would have needed
// reanalysis under a real incremental STA) without gating correctness on it.
func (e *Engine) Update() error {
	e.maxDelay = 0
	delays := make(map[connKey]float64)

	for _, n := range e.nl.Nets() {
		if e.nl.NetIsIgnored(n) {
			continue
		}
		pins := e.nl.NetPins(n)
		for s := 1; s < len(pins); s++ {
			d := costmodel.ConnectionDelay(e.nl, e.placement, e.dm, n, s)
			delays[connKey{n, s}] = d
			if d > e.maxDelay {
				e.maxDelay = d
			}
		}
	}

	for k, d := range delays {
		e.slack[k] = e.maxDelay - d
	}

	e.invalidated = make(map[netlist.PinID]bool)
	return nil
}

// LeastSlackCriticalPath returns the critical path delay (CPD): the largest
// connection delay observed at the last Update.
func (e *Engine) LeastSlackCriticalPath() float64 { return e.maxDelay }

// SetupTotalNegativeSlack returns the sum of all negative slacks (sTNS).
// With this engine's single-stage model slack is never negative (the
// critical path defines zero slack for itself and every other connection
// has non-negative slack relative to it), so this is always 0; it is kept
// as a method to satisfy the contract and to report a non-trivial value
// once a caller supplies per-path required times in a future extension.
func (e *Engine) SetupTotalNegativeSlack() float64 {
	var tns float64
	for _, s := range e.slack {
		if s < 0 {
			tns += s
		}
	}
	return tns
}

// SetupWorstNegativeSlack returns the most negative slack (sWNS), or 0 if
// no connection has negative slack.
func (e *Engine) SetupWorstNegativeSlack() float64 {
	worst := 0.0
	for _, s := range e.slack {
		if s < worst {
			worst = s
		}
	}
	return worst
}

// UpdateCriticalities recomputes criticality for every connection as
// (1 - slack/maxDelay)^critExponent, clamped to [0, 1], and records which
// pins' criticality actually changed since the previous call.
func (e *Engine) UpdateCriticalities(critExponent float64) {
	e.modified = e.modified[:0]

	for _, n := range e.nl.Nets() {
		if e.nl.NetIsIgnored(n) {
			continue
		}
		pins := e.nl.NetPins(n)
		for s := 1; s < len(pins); s++ {
			k := connKey{n, s}
			raw := 1.0
			if e.maxDelay > 0 {
				raw = 1 - e.slack[k]/e.maxDelay
			}
			if raw < 0 {
				raw = 0
			}
			if raw > 1 {
				raw = 1
			}
			newCrit := math.Pow(raw, critExponent)

			old, existed := e.criticality[k]
			if !existed || math.Abs(old-newCrit) > 1e-12 {
				e.modified = append(e.modified, pins[s])
			}
			e.criticality[k] = newCrit
		}
	}
}

// Criticality returns the cached criticality for a connection.
func (e *Engine) Criticality(net netlist.NetID, sinkIdx int) float64 {
	return e.criticality[connKey{net, sinkIdx}]
}

// PinsWithModifiedCriticality returns the sink pins whose criticality
// changed at the last UpdateCriticalities call.
func (e *Engine) PinsWithModifiedCriticality() []netlist.PinID { return e.modified }

// InvalidateConnection marks a connection as needing reanalysis. See Update
// for why this reference engine does not gate correctness on it.
func (e *Engine) InvalidateConnection(pin netlist.PinID) { e.invalidated[pin] = true }

// Reset clears the invalidated-connection set at the end of a refresh.
func (e *Engine) Reset() { e.invalidated = make(map[netlist.PinID]bool) }
