// Package timinggraph implements a reference timing/criticality engine: a
// simplified static-timing-analysis stand-in good enough to drive the
// annealing controller's timing-driven mode, but deliberately not a full
// STA engine (no false paths, no multi-corner analysis, no sequential
// timing graph beyond per-net source-to-sink delay).
package timinggraph

import "github.com/rw1nkler/vtr-verilog-to-routing/netlist"

// TimingEngine is the STA collaborator contract: Update() refreshes
// per-connection delays and slacks from current block positions; the rest
// report summary timing metrics for status reporting.
type TimingEngine interface {
	Update() error
	LeastSlackCriticalPath() float64
	SetupTotalNegativeSlack() float64
	SetupWorstNegativeSlack() float64
}

// CriticalityProvider exposes read-only per-connection criticality, frozen
// between UpdateCriticalities calls, and the set of pins whose criticality
// changed at the last refresh.
type CriticalityProvider interface {
	UpdateCriticalities(critExponent float64)
	Criticality(net netlist.NetID, sinkIdx int) float64
	PinsWithModifiedCriticality() []netlist.PinID
}

// PinTimingInvalidator marks connections that must be reanalyzed on the next
// STA refresh because a move changed their delay.
type PinTimingInvalidator interface {
	InvalidateConnection(pin netlist.PinID)
	Reset()
}
