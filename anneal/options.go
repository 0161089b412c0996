// Package anneal implements the simulated-annealing placement engine: the
// move-trial loop (TrySwap), the annealing controller (starting
// temperature, inner loop, the three temperature schedules, range-limit and
// criticality-exponent updates), and the invariant checker. It owns no
// module-level state -- every mutable array lives on a *State value passed
// through the engine, per the "global mutable cost arrays" design note.
package anneal

import "github.com/rw1nkler/vtr-verilog-to-routing/placererr"

// Algorithm selects whether a trial's cost delta includes the timing term.
type Algorithm int

const (
	// BoundingBoxPlace drives the search on wirelength cost alone.
	BoundingBoxPlace Algorithm = iota
	// PathTimingDrivenPlace drives the search on a weighted combination of
	// wirelength and criticality-weighted timing cost.
	PathTimingDrivenPlace
)

func (a Algorithm) String() string {
	if a == PathTimingDrivenPlace {
		return "PATH_TIMING_DRIVEN_PLACE"
	}
	return "BOUNDING_BOX_PLACE"
}

// EffortScaling selects how the per-temperature move limit scales with
// circuit and device size.
type EffortScaling int

const (
	// Circuit scales the move limit with the block count alone.
	Circuit EffortScaling = iota
	// DeviceCircuit scales the move limit with both block count and device
	// area, for circuits that are sparse on a much larger device.
	DeviceCircuit
)

// ScheduleType selects which of the three temperature schedules governs the
// outer annealing loop.
type ScheduleType int

const (
	// User follows a fixed geometric cooling rate set by the caller.
	User ScheduleType = iota
	// Auto picks the cooling rate each step from the observed success rate.
	Auto
	// Dusty is a success-rate-responsive schedule that restarts from a
	// warmer temperature when progress stalls.
	Dusty
)

// Schedule holds the temperature-update parameters; only the fields
// relevant to Type are consulted.
type Schedule struct {
	Type ScheduleType

	InitT  float64
	AlphaT float64
	ExitT  float64

	AlphaMin float64
	AlphaMax float64

	AlphaDecay float64

	SuccessTarget float64
	SuccessMin    float64

	InnerNum float64
}

// Options configures a Controller. Zero-value Options is not valid; build
// one with Default and override fields, then call Validate before use.
type Options struct {
	Algorithm Algorithm

	PlaceCostExp       float64
	TimingTradeoff     float64 // lambda in [0,1]; ignored for BoundingBoxPlace
	RlimEscapeFraction float64 // p in [0,1]

	TDPlaceExpFirst float64
	TDPlaceExpLast  float64

	RecomputeCritIter         int
	InnerLoopRecomputeDivider int
	QuenchRecomputeDivider    int

	EffortScaling EffortScaling

	Schedule Schedule

	Seed int64
}

// Default returns an Options populated with the same defaults VPR ships
// with for a bounding-box-only anneal under the AUTO schedule.
func Default() Options {
	return Options{
		Algorithm:                 BoundingBoxPlace,
		PlaceCostExp:              1.0,
		TimingTradeoff:            0.5,
		RlimEscapeFraction:        0.01,
		TDPlaceExpFirst:           1.0,
		TDPlaceExpLast:            8.0,
		RecomputeCritIter:         1,
		InnerLoopRecomputeDivider: 4,
		QuenchRecomputeDivider:    8,
		EffortScaling:             Circuit,
		Schedule: Schedule{
			Type:          Auto,
			AlphaT:        0.8,
			ExitT:         0.0,
			AlphaMin:      0.3,
			AlphaMax:      0.9,
			AlphaDecay:    0.7,
			SuccessTarget: 0.44,
			SuccessMin:    0.1,
			InnerNum:      1.0,
		},
	}
}

// Validate checks for CONFIG_INVALID conditions: an unrecognized
// EffortScaling, Algorithm, or Schedule.Type. config.Load calls it after
// decoding a configuration, so a misconfiguration is reported before any
// work starts; NewController itself does not call it.
func (o Options) Validate() error {
	switch o.Algorithm {
	case BoundingBoxPlace, PathTimingDrivenPlace:
	default:
		return placererr.New(placererr.ConfigInvalid, "unrecognized place algorithm")
	}
	switch o.EffortScaling {
	case Circuit, DeviceCircuit:
	default:
		return placererr.New(placererr.ConfigInvalid, "unrecognized effort scaling")
	}
	switch o.Schedule.Type {
	case User, Auto, Dusty:
	default:
		return placererr.New(placererr.ConfigInvalid, "unrecognized annealing schedule type")
	}
	if o.TimingTradeoff < 0 || o.TimingTradeoff > 1 {
		return placererr.New(placererr.ConfigInvalid, "timing tradeoff must be in [0,1]")
	}
	if o.RlimEscapeFraction < 0 || o.RlimEscapeFraction > 1 {
		return placererr.New(placererr.ConfigInvalid, "rlim escape fraction must be in [0,1]")
	}
	return nil
}
