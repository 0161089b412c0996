package tracing

import (
	"fmt"
	"io"

	"github.com/rw1nkler/vtr-verilog-to-routing/anneal"
)

// StatusLineWriter prints each status line to w in the fixed-width column
// format the annealer's human-facing progress output uses.
type StatusLineWriter struct {
	w io.Writer

	header bool
}

var _ anneal.Hook = (*StatusLineWriter)(nil)

// NewStatusLineWriter builds a writer over w.
func NewStatusLineWriter(w io.Writer) *StatusLineWriter {
	return &StatusLineWriter{w: w}
}

// Func implements anneal.Hook.
func (s *StatusLineWriter) Func(ctx anneal.HookCtx) {
	switch ctx.Pos {
	case anneal.HookPosStatusLine:
		if ctx.Status == nil {
			return
		}
		if !s.header {
			fmt.Fprintf(s.w, "%6s %10s %10s %10s %10s %10s %8s %8s %8s %8s %8s %8s\n",
				"temp#", "elapsed", "T", "avg_cost", "avg_bb", "avg_td", "cpd", "accept%", "std_dev", "rlim", "crit_exp", "moves")
			s.header = true
		}
		st := ctx.Status
		fmt.Fprintf(s.w, "%6d %10.3f %10.4g %10.4g %10.4g %10.4g %8.4g %8.2f %8.4g %8.2f %8.3f %8d\n",
			st.TempNum, st.Elapsed, st.Temp, st.AvgCost, st.AvgBBCost, st.AvgTDCost,
			st.CPD, st.AcceptRate*100, st.StdDev, st.Rlim, st.CritExp, st.TotalMoves)
	case anneal.HookPosWarning:
		fmt.Fprintf(s.w, "warning: %v\n", ctx.Warning)
	}
}
