package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/dram-sim/sim/sweep"
)

var (
	sweepConfigPath  string // Path to the sweep YAML
	sweepParallelism int    // Overrides parallelism from the file when > 0
	sweepLogLevel    string
)

// sweepCmd runs the configurations of a sweep file, one independent simulator per point
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run independent simulations across scrub intervals",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(sweepLogLevel)

		spec, err := loadSweepSpec(sweepConfigPath)
		if err != nil {
			logrus.Fatalf("Failed to load sweep: %v", err)
		}
		if sweepParallelism > 0 {
			spec.Parallelism = sweepParallelism
		}

		points, err := sweep.Run(cmd.Context(), spec)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		if err := sweep.Print(cmd.OutOrStdout(), points); err != nil {
			logrus.Fatalf("Failed to write report: %v", err)
		}
		logrus.Info("Sweep complete.")
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "examples/sweep.yaml", "Path to the sweep definition YAML")
	sweepCmd.Flags().IntVar(&sweepParallelism, "parallelism", 0, "Concurrent simulations (0 = use the file's value)")
	sweepCmd.Flags().StringVar(&sweepLogLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
