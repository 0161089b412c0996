package anneal

import "github.com/rw1nkler/vtr-verilog-to-routing/move"

// HookPos names a point in the controller's loop where hooks may observe an
// event, mirroring the grounding corpus's named hook-position idiom.
type HookPos struct {
	Name string
}

// HookPosTrial fires once per completed trial (accepted, rejected, or
// aborted), before the next trial begins.
var HookPosTrial = &HookPos{Name: "Trial"}

// HookPosStatusLine fires once per temperature step and once at quench end,
// after that step's status line has been assembled.
var HookPosStatusLine = &HookPos{Name: "StatusLine"}

// HookPosWarning fires whenever the controller logs a non-fatal warning.
var HookPosWarning = &HookPos{Name: "Warning"}

// HookCtx carries the data associated with one hook invocation. Exactly one
// of TrialEvent, Status, or Warning is populated, selected by Pos.
type HookCtx struct {
	Pos *HookPos

	TrialEvent *TrialEvent
	Status     *StatusLine
	Warning    error
}

// TrialEvent summarizes one completed trial for observers (the CSV move
// tracer, a test assertion, a live progress feed).
type TrialEvent struct {
	MoveNumber   int
	Outcome      move.TrialOutcome
	DeltaCost    float64
	DeltaBBCost  float64
	DeltaTDCost  float64
	Rlim         float64
	Temperature  float64
}

// StatusLine is one periodic report row, matching the external status-line
// column set: (temp#, time, T, avg_cost, avg_bb_cost, avg_td_cost, CPD,
// sTNS, sWNS, accept_rate, std_dev, rlim, crit_exp, total_moves, alpha).
type StatusLine struct {
	TempNum int
	Elapsed float64 // seconds spent on this temperature step (or on the quench)

	Temp float64

	AvgCost   float64
	AvgBBCost float64
	AvgTDCost float64

	CPD  float64
	STNS float64
	SWNS float64

	AcceptRate float64
	StdDev     float64

	Rlim    float64
	CritExp float64

	TotalMoves int
	Alpha      float64
}

// Hook is a short piece of program invoked by the controller at a HookPos.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func implements Hook.
func (f HookFunc) Func(ctx HookCtx) { f(ctx) }

// Hookable is embedded by the Controller to accept and invoke hooks without
// coupling the core to any particular logging/tracing/monitoring backend.
type Hookable struct {
	hooks []Hook
}

// AcceptHook registers a hook. Hooks are invoked in registration order.
func (h *Hookable) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// InvokeHook calls every registered hook with ctx.
func (h *Hookable) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
