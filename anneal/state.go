package anneal

import (
	"math"

	"github.com/rw1nkler/vtr-verilog-to-routing/costmodel"
	"github.com/rw1nkler/vtr-verilog-to-routing/device"
	"github.com/rw1nkler/vtr-verilog-to-routing/move"
	"github.com/rw1nkler/vtr-verilog-to-routing/netlist"
	"github.com/rw1nkler/vtr-verilog-to-routing/placererr"
)

// ErrorTol is the relative tolerance between an incrementally maintained
// cost and its from-scratch recomputation.
const ErrorTol = 0.01

// MaxMovesBeforeRecompute is how often (in accepted+trialled moves) the
// controller re-anchors bb_cost/timing_cost from scratch to bound numeric
// drift.
const MaxMovesBeforeRecompute = 500_000

// CriticalityEngine is the union of costmodel.CriticalityProvider (read-only
// per-connection criticality) and the STA-refresh surface the controller
// drives directly: UpdateCriticalities and the set of pins whose
// criticality changed at the last refresh.
type CriticalityEngine interface {
	costmodel.CriticalityProvider
	UpdateCriticalities(critExponent float64)
	PinsWithModifiedCriticality() []netlist.PinID
}

// TimingEngine is the STA collaborator the controller calls to refresh
// delays/slacks before each criticality refresh.
type TimingEngine interface {
	Update() error
	LeastSlackCriticalPath() float64
	SetupTotalNegativeSlack() float64
	SetupWorstNegativeSlack() float64
}

// PinTimingInvalidator is notified of connections whose delay changed on an
// accepted move, so an incremental STA implementation knows what to
// reanalyze at the next refresh.
type PinTimingInvalidator interface {
	InvalidateConnection(pin netlist.PinID)
	Reset()
}

// netBBState is the per-net bookkeeping the bounding-box engine needs
// across a trial: the committed bbox/edge-count, the in-progress proposed
// pair, and the three-valued flag selecting which path is in use.
type netBBState struct {
	committed     costmodel.BB
	committedEdge costmodel.EdgeCount
	proposed      costmodel.BB
	proposedEdge  costmodel.EdgeCount
	flag          costmodel.UpdateState
}

// State owns every mutable array the placement core reads and writes: the
// current placement, the per-net bounding-box and timing-cost caches, and
// the trial-scoped scratch arrays (affected-net markers, affected-pin
// list). It is allocated once per Controller.Run and is never package-level
// state.
type State struct {
	NL        netlist.Netlist
	Placement *device.Placement
	Factors   *costmodel.ChannelFactors

	DelayModel costmodel.DelayModel
	Crit       CriticalityEngine
	Timing     TimingEngine
	Invalidate PinTimingInvalidator
	MoveGen    move.MoveGenerator

	Algorithm          Algorithm
	Lambda             float64
	RlimEscapeFraction float64

	Rlim    float64
	CritExp float64

	InvBB      float64
	InvTiming  float64
	Cost       float64 // running cost: normalized and reset to 1 each temperature step when timing-driven, bb_cost otherwise
	BBCost     float64
	TimingCost float64

	TC *costmodel.TimingCosts

	bb              []netBBState
	w               []float64 // committed per-net wirelength cost, W[net]
	proposedNetCost []float64 // sentinel < 0 means "not marked affected"
	affectedNets    []netlist.NetID

	rng randSource
}

// randSource is the minimal RNG surface State needs: a uniform float in
// [0,1). Satisfied by *rand.Rand.
type randSource interface {
	Float64() float64
}

// NewState allocates and initializes every cost array from the current
// placement. Call once at controller entry; costs are reset to their
// from-scratch values here and mutated only inside trials thereafter.
func NewState(
	nl netlist.Netlist,
	placement *device.Placement,
	factors *costmodel.ChannelFactors,
	dm costmodel.DelayModel,
	crit CriticalityEngine,
	timing TimingEngine,
	invalidate PinTimingInvalidator,
	moveGen move.MoveGenerator,
	algorithm Algorithm,
	lambda, rlimEscapeFraction float64,
	rng randSource,
) *State {
	nets := nl.Nets()
	s := &State{
		NL:                 nl,
		Placement:          placement,
		Factors:            factors,
		DelayModel:         dm,
		Crit:               crit,
		Timing:             timing,
		Invalidate:         invalidate,
		MoveGen:            moveGen,
		Algorithm:          algorithm,
		Lambda:             lambda,
		RlimEscapeFraction: rlimEscapeFraction,
		TC:                 costmodel.NewTimingCosts(nl),
		bb:                 make([]netBBState, len(nets)),
		w:                  make([]float64, len(nets)),
		proposedNetCost:    make([]float64, len(nets)),
		rng:                rng,
	}
	for i := range s.proposedNetCost {
		s.proposedNetCost[i] = -1
	}
	s.ResetBBCostFromScratch()
	s.Cost = s.BBCost
	if algorithm == PathTimingDrivenPlace {
		s.ResetTimingCostFromScratch()
		s.Cost = 1
	}
	return s
}

// ResetBBCostFromScratch recomputes every non-ignored net's bbox and
// wirelength cost from scratch and sets BBCost to their sum. Used at
// controller entry and by RecomputeCostsFromScratch.
func (s *State) ResetBBCostFromScratch() {
	var total float64
	for _, n := range s.NL.Nets() {
		if s.NL.NetIsIgnored(n) {
			s.w[n] = 0
			continue
		}
		bb, ec := costmodel.GetBBFromScratch(s.NL, s.Placement, n)
		s.bb[n].committed = bb
		s.bb[n].committedEdge = ec
		s.bb[n].flag = costmodel.NotUpdatedYet
		numPins := len(s.NL.NetPins(n))
		cost := s.Factors.GetNetCost(numPins, bb)
		s.w[n] = cost
		total += cost
	}
	s.BBCost = total
}

// ResetTimingCostFromScratch recomputes every connection's delay/cost from
// scratch via costmodel.CompTDCosts and sets TimingCost to the result.
func (s *State) ResetTimingCostFromScratch() {
	s.TimingCost = costmodel.CompTDCosts(s.NL, s.Placement, s.DelayModel, s.Crit, s.TC)
}

// RefreshCriticalities runs the STA collaborator, refreshes criticalities
// at the given exponent, incrementally recomputes TimingCost from the set
// of pins whose criticality changed, and resets the invalidation tracker.
func (s *State) RefreshCriticalities(critExponent float64) error {
	if err := s.Timing.Update(); err != nil {
		return err
	}
	s.Crit.UpdateCriticalities(critExponent)
	s.TimingCost = costmodel.UpdateTDCosts(s.NL, s.Crit, s.TC, s.Crit.PinsWithModifiedCriticality())
	s.Invalidate.Reset()
	return nil
}

// QuiescedMarkers reports whether every scratch array has been reset to its
// "not pending" sentinel: proposedNetCost[*] == -1, every net's bbox flag
// is NotUpdatedYet, and every timing shadow entry is NaN. This is the
// "markers quiesced" testable property, exposed for tests.
func (s *State) QuiescedMarkers() bool {
	for _, v := range s.proposedNetCost {
		if v >= 0 {
			return false
		}
	}
	for _, st := range s.bb {
		if st.flag != costmodel.NotUpdatedYet {
			return false
		}
	}
	for _, row := range s.TC.ProposedDelay {
		for _, d := range row {
			if !math.IsNaN(d) {
				return false
			}
		}
	}
	for _, row := range s.TC.ProposedCost {
		for _, c := range row {
			if !math.IsNaN(c) {
				return false
			}
		}
	}
	return true
}

// NetW returns the committed wirelength cost W[net].
func (s *State) NetW(n netlist.NetID) float64 { return s.w[n] }

// NetBB returns the committed bounding box for a net.
func (s *State) NetBB(n netlist.NetID) costmodel.BB { return s.bb[n].committed }

// checkNegativeDelay turns a negative delay-model return into a fatal
// typed error, per placererr.NegativeDelay.
func checkNegativeDelay(d float64) error {
	if d < 0 {
		return placererr.New(placererr.NegativeDelay, "delay model returned a negative delay")
	}
	return nil
}
