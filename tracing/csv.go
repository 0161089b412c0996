// Package tracing provides Hook implementations that record annealing
// progress to external sinks: a CSV file of per-trial deltas, a SQLite
// database of per-temperature-step status lines, and a plain status-line
// writer. All three are plugged in via anneal.Hookable.AcceptHook rather
// than being wired into the controller itself.
package tracing

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/rw1nkler/vtr-verilog-to-routing/anneal"
)

// CSVTrialTracer records one row per completed trial to a CSV file:
// (move_number, outcome, delta_cost, delta_bb_cost, delta_td_cost, rlim,
// temperature). It buffers rows in memory and flushes in batches, with a
// final flush registered via atexit so a run that exits mid-temperature
// step does not lose its buffered rows.
type CSVTrialTracer struct {
	path string
	file *os.File

	rows       []anneal.TrialEvent
	bufferSize int
}

var _ anneal.Hook = (*CSVTrialTracer)(nil)

// NewCSVTrialTracer creates a tracer writing to path. Init must be called
// before the first trial.
func NewCSVTrialTracer(path string) *CSVTrialTracer {
	return &CSVTrialTracer{path: path, bufferSize: 1000}
}

// Init creates (overwriting) the CSV file and registers the atexit flush.
func (t *CSVTrialTracer) Init() error {
	file, err := os.Create(t.path)
	if err != nil {
		return err
	}
	t.file = file

	fmt.Fprintf(file, "move_number, outcome, delta_cost, delta_bb_cost, delta_td_cost, rlim, temperature\n")

	atexit.Register(func() {
		t.Flush()
		t.file.Close()
	})
	return nil
}

// Func implements anneal.Hook: it only reacts to HookPosTrial events.
func (t *CSVTrialTracer) Func(ctx anneal.HookCtx) {
	if ctx.Pos != anneal.HookPosTrial || ctx.TrialEvent == nil {
		return
	}
	t.rows = append(t.rows, *ctx.TrialEvent)
	if len(t.rows) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes every buffered row to the CSV file.
func (t *CSVTrialTracer) Flush() {
	for _, row := range t.rows {
		fmt.Fprintf(t.file, "%d, %s, %.10f, %.10f, %.10f, %.6f, %.6f\n",
			row.MoveNumber,
			row.Outcome,
			row.DeltaCost,
			row.DeltaBBCost,
			row.DeltaTDCost,
			row.Rlim,
			row.Temperature,
		)
	}
	t.rows = nil
}
