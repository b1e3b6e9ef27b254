package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mirdump/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mirdump",
	Short: "Borrow-fact visualizer for compiled-function control-flow graphs",
	Long:  `mirdump completes, solves and renders per-point borrow and lifetime facts over one function's MIR control-flow graph`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-function phase timings")
	rootCmd.PersistentFlags().String("trace", "", "trace output path (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|run|function|phase)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
