// Command fpgaplace provides the command-line interface for running and
// checking annealing-based FPGA placements.
package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd is the base command when fpgaplace is called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "fpgaplace",
	Short: "fpgaplace runs and inspects simulated-annealing FPGA placements.",
	Long: `fpgaplace runs and inspects simulated-annealing FPGA placements. ` +
		`It supports running a full annealing schedule against a netlist and ` +
		`device (real or randomly generated), and checking a finished ` +
		`placement's invariants independently of the annealer.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
