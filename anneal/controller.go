package anneal

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rw1nkler/vtr-verilog-to-routing/move"
	"github.com/rw1nkler/vtr-verilog-to-routing/placererr"
)

// finalRlim is the range limit floor the criticality-exponent interpolation
// treats as "fully converged" (VPR's FINAL_RLIM).
const finalRlim = 1.0

// maxInvTimingCost clamps the timing-cost normalizer so a trivially-small
// timing_cost cannot blow up the weighted delta.
const maxInvTimingCost = 1e9

// annealState is the mutable per-run schedule bookkeeping that persists
// across outer-loop iterations: current temperature, alpha, range limit,
// move limit, and (for DUSTY) the last restart temperature.
type annealState struct {
	t          float64
	alpha      float64
	rlim       float64
	critExp    float64
	moveLim    int
	moveLimMax int
	restartT   float64
	maxRlim    float64

	inverseDeltaRlim float64

	outerCritIter int
}

// Controller runs the annealing outer loop against a *State built by the
// caller. It owns no state of its own beyond the schedule bookkeeping and
// the hook registry; every cost array lives on the State.
type Controller struct {
	Hookable

	Opts Options

	numBlocks      int
	numNets        int
	numConnections int

	ba move.BlocksAffected

	totalMoves int
	numTemps   int

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	lastStatus StatusLine
	statusLock sync.RWMutex
}

// NewController builds a controller for opts, which must already have
// passed Validate.
func NewController(opts Options) *Controller {
	return &Controller{Opts: opts}
}

// Pause blocks the trial loop before its next trial, without losing any
// work already committed. Safe to call from a goroutine other than the one
// running Run, mirroring the grounding corpus's engine pause/continue gate.
func (c *Controller) Pause() {
	c.isPausedLock.Lock()
	defer c.isPausedLock.Unlock()

	if c.isPaused {
		return
	}
	c.pauseLock.Lock()
	c.isPaused = true
}

// Continue releases a pause started by Pause.
func (c *Controller) Continue() {
	c.isPausedLock.Lock()
	defer c.isPausedLock.Unlock()

	if !c.isPaused {
		return
	}
	c.pauseLock.Unlock()
	c.isPaused = false
}

// CurrentStatus returns the most recently completed status line, for a
// monitoring endpoint to poll without needing an onStatus callback.
func (c *Controller) CurrentStatus() StatusLine {
	c.statusLock.RLock()
	defer c.statusLock.RUnlock()
	return c.lastStatus
}

func (c *Controller) setCurrentStatus(line StatusLine) {
	c.statusLock.Lock()
	c.lastStatus = line
	c.statusLock.Unlock()
}

// Run drives the full annealing schedule against s: starting-temperature
// estimation, the outer loop (criticality refresh, inner loop, schedule
// update) until the active schedule signals termination, a final zero-
// temperature quench, and the closing invariant check. onStatus, if
// non-nil, is invoked with the same StatusLine content the corpus's own
// status logger would print, once per temperature step and once at quench
// end; the controller itself does no I/O. ctx is checked only at outer-loop
// (temperature-step) boundaries, never mid-trial or mid-inner-loop-batch, so
// a cancellation can never leave a trial half-applied; pass context.
// Background() for a run with no deadline.
func (c *Controller) Run(ctx context.Context, s *State, numBlocks int, deviceW, deviceH int, onStatus func(StatusLine)) error {
	c.numBlocks = numBlocks
	c.numNets = len(s.NL.Nets())
	c.numConnections = countConnections(s)

	moveLim := c.effortMoveLim(numBlocks, deviceW, deviceH)
	innerRecomputeLimit := recomputeLimit(moveLim, c.Opts.InnerLoopRecomputeDivider)
	quenchRecomputeLimit := recomputeLimit(moveLim, c.Opts.QuenchRecomputeDivider)

	firstRlim := float64(deviceW - 1)
	if float64(deviceH-1) > firstRlim {
		firstRlim = float64(deviceH - 1)
	}

	// Seed the bb/timing normalizers from the initial placement's
	// from-scratch costs before estimating the starting temperature, so
	// that starting-T's trial deltas are weighted the same way a real
	// trial's would be; the outer loop's own recompute below repeats the
	// criticality refresh on its first iteration regardless.
	if s.Algorithm == PathTimingDrivenPlace {
		if err := s.RefreshCriticalities(c.Opts.TDPlaceExpFirst); err != nil {
			return err
		}
		s.Cost = 1
	}
	s.InvBB = 1 / s.BBCost
	if s.Algorithm == PathTimingDrivenPlace {
		s.InvTiming = math.Min(1/s.TimingCost, maxInvTimingCost)
	}

	firstT, err := c.startingTemperature(s, moveLim, firstRlim)
	if err != nil {
		return err
	}

	as := &annealState{
		t:                firstT,
		rlim:             firstRlim,
		moveLim:          moveLim,
		moveLimMax:       moveLim,
		critExp:          c.Opts.TDPlaceExpFirst,
		maxRlim:          firstRlim,
		inverseDeltaRlim: 1 / (firstRlim - finalRlim),
	}
	if c.Opts.Schedule.Type == Dusty {
		as.alpha = c.Opts.Schedule.AlphaMin
		as.moveLim = maxInt(1, int(float64(as.moveLimMax)*c.Opts.Schedule.SuccessTarget))
	} else {
		as.moveLim = as.moveLimMax
	}
	as.restartT = as.t

	movesSinceRecompute := 0
	var stats innerLoopStats

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.Algorithm == PathTimingDrivenPlace {
			s.Cost = 1
		}

		if err := c.outerLoopRecomputeCriticalities(s, as); err != nil {
			return err
		}

		tempStart := time.Now()
		if err := c.innerLoop(s, as.t, as.rlim, as.moveLim, as.critExp, innerRecomputeLimit, &movesSinceRecompute, &stats); err != nil {
			return err
		}
		c.totalMoves += as.moveLim
		c.numTemps++

		successRat := stats.successRate()
		line := c.statusLine(s, as, stats, successRat)
		line.Elapsed = time.Since(tempStart).Seconds()
		if onStatus != nil {
			onStatus(line)
		}
		c.InvokeHook(HookCtx{Pos: HookPosStatusLine, Status: &line})
		c.setCurrentStatus(line)

		cont, err := c.updateAnnealingState(as, successRat, s.Cost)
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}

	// Quench: freeze at t=0 and accept only strictly downhill moves.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.outerLoopRecomputeCriticalities(s, as); err != nil {
		return err
	}
	as.t = 0
	quenchStart := time.Now()
	if err := c.innerLoop(s, as.t, as.rlim, moveLim, as.critExp, quenchRecomputeLimit, &movesSinceRecompute, &stats); err != nil {
		return err
	}
	c.totalMoves += moveLim
	c.numTemps++
	successRat := stats.successRate()
	line := c.statusLine(s, as, stats, successRat)
	line.Elapsed = time.Since(quenchStart).Seconds()
	if onStatus != nil {
		onStatus(line)
	}
	c.InvokeHook(HookCtx{Pos: HookPosStatusLine, Status: &line})
	c.setCurrentStatus(line)

	return c.CheckPlace(s)
}

// effortMoveLim computes the per-temperature move limit per Options.EffortScaling.
func (c *Controller) effortMoveLim(numBlocks, deviceW, deviceH int) int {
	innerNum := c.Opts.Schedule.InnerNum
	if innerNum == 0 {
		innerNum = 1
	}
	var lim int
	switch c.Opts.EffortScaling {
	case Circuit:
		lim = int(innerNum * math.Pow(float64(numBlocks), 4.0/3.0))
	case DeviceCircuit:
		deviceSize := float64(deviceW * deviceH)
		lim = int(innerNum * math.Pow(deviceSize, 2.0/3.0) * math.Pow(float64(numBlocks), 2.0/3.0))
	}
	if lim <= 0 {
		lim = 1
	}
	return lim
}

func recomputeLimit(moveLim, divider int) int {
	if divider == 0 {
		return moveLim + 1
	}
	return int(0.5 + float64(moveLim)/float64(divider))
}

func countConnections(s *State) int {
	count := 0
	for _, n := range s.NL.Nets() {
		if s.NL.NetIsIgnored(n) {
			continue
		}
		count += len(s.NL.NetSinks(n))
	}
	return count
}

// startingTemperature runs one trial per block at t=+Inf (always accept)
// and returns 20 times the standard deviation of the accepted costs, per
// §4.5. Under the USER schedule it returns the configured InitT directly.
func (c *Controller) startingTemperature(s *State, maxMoves int, rlim float64) (float64, error) {
	if c.Opts.Schedule.Type == User {
		return c.Opts.Schedule.InitT, nil
	}

	moveLim := maxMoves
	if c.numBlocks < moveLim {
		moveLim = c.numBlocks
	}

	s.Rlim = rlim
	var accepted []float64
	for i := 0; i < moveLim; i++ {
		outcome, _, err := s.TrySwap(math.Inf(1), &c.ba)
		if err != nil {
			return 0, err
		}
		if outcome == move.Accepted {
			accepted = append(accepted, s.Cost)
		}
	}

	if moveLim > 0 && float64(len(accepted)) < 0.01*float64(moveLim) {
		c.InvokeHook(HookCtx{Pos: HookPosWarning, Warning: fmt.Errorf(
			"only %d of %d starting-temperature trials were accepted", len(accepted), moveLim)})
	}

	return 20 * StdDev(accepted), nil
}

// outerLoopRecomputeCriticalities refreshes criticalities/timing_cost every
// RecomputeCritIter outer iterations (bounding-box-only runs are a no-op),
// then refreshes the bb/timing normalizers used by TrySwap's weighted
// delta.
func (c *Controller) outerLoopRecomputeCriticalities(s *State, as *annealState) error {
	if s.Algorithm == PathTimingDrivenPlace {
		if as.outerCritIter >= c.Opts.RecomputeCritIter || c.Opts.InnerLoopRecomputeDivider != 0 {
			if err := s.RefreshCriticalities(as.critExp); err != nil {
				return err
			}
			as.outerCritIter = 0
		}
		as.outerCritIter++
	}

	s.InvBB = 1 / s.BBCost
	if s.Algorithm == PathTimingDrivenPlace {
		s.InvTiming = math.Min(1/s.TimingCost, maxInvTimingCost)
	}
	return nil
}

// innerLoop runs moveLim trials at temperature t, periodically refreshing
// criticalities (every innerRecomputeLimit trials, timing-driven only) and
// periodically re-anchoring costs from scratch (every
// MaxMovesBeforeRecompute trials, any algorithm).
func (c *Controller) innerLoop(s *State, t, rlim float64, moveLim int, critExp float64, innerRecomputeLimit int, movesSinceRecompute *int, stats *innerLoopStats) error {
	s.Rlim = rlim
	stats.reset()

	innerCritIter := 1
	for i := 0; i < moveLim; i++ {
		c.pauseLock.Lock()
		c.pauseLock.Unlock() //nolint:staticcheck // gate: blocks here while paused

		outcome, deltas, err := s.TrySwap(t, &c.ba)
		if err != nil {
			return err
		}

		outcomeMark := 0
		if outcome == move.Accepted {
			outcomeMark = acceptedMark
		}
		stats.record(outcomeMark, s.Cost, s.BBCost, s.TimingCost)

		c.InvokeHook(HookCtx{Pos: HookPosTrial, TrialEvent: &TrialEvent{
			MoveNumber:  c.totalMoves + i,
			Outcome:     outcome,
			DeltaCost:   deltas.DeltaCost,
			DeltaBBCost: deltas.DeltaBBCost,
			DeltaTDCost: deltas.DeltaTDCost,
			Rlim:        rlim,
			Temperature: t,
		}})

		if s.Algorithm == PathTimingDrivenPlace {
			if innerCritIter >= innerRecomputeLimit && i != moveLim-1 {
				innerCritIter = 0
				if err := s.RefreshCriticalities(critExp); err != nil {
					return err
				}
			}
			innerCritIter++
		}

		*movesSinceRecompute++
		if *movesSinceRecompute > MaxMovesBeforeRecompute {
			if err := c.RecomputeCostsFromScratch(s); err != nil {
				return err
			}
			*movesSinceRecompute = 0
		}
	}
	return nil
}

// RecomputeCostsFromScratch re-anchors bb_cost (and, for timing-driven
// runs, timing_cost) from scratch, returning a fatal placererr.CostDrift if
// the from-scratch value disagrees with the incrementally maintained one
// beyond ErrorTol. This bounds the numeric drift the incremental update
// paths accumulate over many trials.
func (c *Controller) RecomputeCostsFromScratch(s *State) error {
	old := s.BBCost
	s.ResetBBCostFromScratch()
	if math.Abs(s.BBCost-old) > old*ErrorTol {
		return placererr.New(placererr.CostDrift, "bb_cost drifted beyond tolerance on from-scratch recompute")
	}

	if s.Algorithm == PathTimingDrivenPlace {
		oldTD := s.TimingCost
		s.ResetTimingCostFromScratch()
		if math.Abs(s.TimingCost-oldTD) > oldTD*ErrorTol {
			return placererr.New(placererr.CostDrift, "timing_cost drifted beyond tolerance on from-scratch recompute")
		}
	}
	return nil
}

// updateAnnealingState applies one of the three temperature schedules and
// reports whether the outer loop should continue.
func (c *Controller) updateAnnealingState(as *annealState, successRat, cost float64) (bool, error) {
	sched := c.Opts.Schedule

	switch sched.Type {
	case User:
		as.t *= sched.AlphaT
		return as.t >= sched.ExitT, nil

	case Dusty:
		return c.updateDusty(as, successRat, cost)

	case Auto:
		return c.updateAuto(as, successRat, cost)

	default:
		return false, placererr.New(placererr.ConfigInvalid, "unrecognized annealing schedule type")
	}
}

// tExitFor computes the AUTO/DUSTY exit temperature 0.005*cost/#nets from
// the last-observed normalized cost. cost is passed in explicitly (rather
// than read off State) so the schedule logic stays independent of State.
func tExitFor(cost float64, numNets int) float64 {
	n := numNets
	if n == 0 {
		n = 1
	}
	return 0.005 * cost / float64(n)
}

func (c *Controller) updateAuto(as *annealState, successRat, cost float64) (bool, error) {
	switch {
	case successRat > 0.96:
		as.alpha = 0.5
	case successRat > 0.80:
		as.alpha = 0.9
	case successRat > 0.15 || as.rlim > 1:
		as.alpha = 0.95
	default:
		as.alpha = 0.8
	}
	as.t *= as.alpha

	tExit := tExitFor(cost, c.numNets)
	if as.t < tExit || math.IsNaN(tExit) {
		return false, nil
	}

	c.updateRlimAndCritExp(as, successRat)
	return true, nil
}

func (c *Controller) updateDusty(as *annealState, successRat, cost float64) (bool, error) {
	sched := c.Opts.Schedule
	tExit := tExitFor(cost, c.numNets)
	restart := as.t < tExit || math.IsNaN(tExit)

	if successRat < sched.SuccessMin || restart {
		if as.alpha > sched.AlphaMax {
			return false, nil
		}
		as.t = as.restartT / math.Sqrt(as.alpha)
		as.alpha = 1 - (1-as.alpha)*sched.AlphaDecay
	} else {
		if successRat > sched.SuccessTarget {
			as.restartT = as.t
		}
		as.t *= as.alpha
	}

	denom := successRat
	if denom == 0 {
		denom = 1e-9
	}
	as.moveLim = maxInt(1, minInt(as.moveLimMax, int(float64(as.moveLimMax)*sched.SuccessTarget/denom)))

	c.updateRlimAndCritExp(as, successRat)
	return true, nil
}

// updateRlimAndCritExp applies §4.5's range-limit update for the AUTO and
// DUSTY schedules (USER leaves rlim and crit_exp unchanged), and
// (timing-driven only) the criticality-exponent interpolation.
func (c *Controller) updateRlimAndCritExp(as *annealState, successRat float64) {
	as.rlim = as.rlim * (0.56 + successRat)
	if as.rlim < 1 {
		as.rlim = 1
	}
	if as.maxRlim > 0 && as.rlim > as.maxRlim {
		as.rlim = as.maxRlim
	}

	if c.Opts.Algorithm == PathTimingDrivenPlace {
		as.critExp = (1-(as.rlim-finalRlim)*as.inverseDeltaRlim)*(c.Opts.TDPlaceExpLast-c.Opts.TDPlaceExpFirst) + c.Opts.TDPlaceExpFirst
	}
}

func (c *Controller) statusLine(s *State, as *annealState, stats innerLoopStats, successRat float64) StatusLine {
	line := StatusLine{
		TempNum:    c.numTemps,
		Temp:       as.t,
		AvgBBCost:  stats.avgBB(),
		AvgTDCost:  stats.avgTD(),
		AcceptRate: successRat,
		StdDev:     stats.stdDev(),
		Rlim:       as.rlim,
		CritExp:    as.critExp,
		TotalMoves: c.totalMoves,
		Alpha:      as.alpha,
	}
	if stats.accepted > 0 {
		var sum float64
		for _, v := range stats.acceptedCost {
			sum += v
		}
		line.AvgCost = sum / float64(stats.accepted)
	}
	if s.Algorithm == PathTimingDrivenPlace {
		line.CPD = s.Timing.LeastSlackCriticalPath()
		line.STNS = s.Timing.SetupTotalNegativeSlack()
		line.SWNS = s.Timing.SetupWorstNegativeSlack()
	}
	return line
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
