// Command nsfxsim drives scenario files through the simulation kernel
// and reports the resulting event statistics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nsfxsim",
	Short: "Discrete-event simulation kernel driver",
	Long: `nsfxsim loads a scenario file describing one-shot events and periodic
timers, runs it to completion against one of three interchangeable
schedulers, and reports the resulting event statistics.

Commands:
  run     Run a single scenario file
  batch   Run several scenario files concurrently
  version Print version information

Examples:
  nsfxsim run scenario.yaml --scheduler heap
  nsfxsim run scenario.yaml --format json --report out.json
  nsfxsim batch scenarios/*.yaml --scheduler set`,
	Version: Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
