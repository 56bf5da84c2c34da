package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/dram-sim/sim"
	"github.com/inference-sim/dram-sim/sim/trace"
)

var (
	// CLI flags for a single run
	seed             int64   // Seed for event generation and injection placement
	logLevel         string  // Log verbosity level
	rows             int     // Grid rows
	cols             int     // Grid columns
	numErrors        int     // Number of InjectError events
	scrubInterval    float64 // Period between scrubs
	simTime          float64 // Simulation horizon
	accessRate       float64 // Accesses per unit time
	batches          int     // Generate/drain windows
	scrubGranularity string  // "grid" or "row"
	traceLevel       string  // "none" or "events"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dram-sim",
	Short: "Discrete-event simulator for DRAM error accumulation and scrubbing",
}

// setLogLevel parses and applies the --log flag.
func setLogLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(parsed)
}

// runConfig assembles a sim.Config from the run flags.
func runConfig() sim.Config {
	return sim.Config{
		Rows:             rows,
		Cols:             cols,
		Errors:           numErrors,
		ScrubInterval:    scrubInterval,
		SimTime:          simTime,
		AccessRate:       accessRate,
		Seed:             seed,
		Batches:          batches,
		ScrubGranularity: sim.ScrubGranularity(scrubGranularity),
		TraceLevel:       trace.TraceLevel(traceLevel),
	}
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single DRAM scrubbing simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		s, err := sim.NewSimulator(runConfig())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		result := s.Run()
		if err := result.Print(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Failed to write report: %v", err)
		}
		if s.Trace != nil {
			logTraceSummary(trace.Summarize(s.Trace))
		}

		logrus.Info("Simulation complete.")
	},
}

func logTraceSummary(ts *trace.TraceSummary) {
	logrus.Infof("Trace: %d events in [%v, %v], kinds=%v", ts.TotalEvents, ts.FirstTime, ts.LastTime, ts.KindDistribution)
	logrus.Infof("Trace: injected=%d masked=%d hits=%d misses=%d scrub-cleared=%d",
		ts.Injected, ts.Masked, ts.Hits, ts.Misses, ts.ScrubCleared)
}

// Execute runs the CLI root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for event generation and error placement")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Memory and workload
	runCmd.Flags().IntVar(&rows, "rows", 1024, "Number of DRAM rows")
	runCmd.Flags().IntVar(&cols, "cols", 1024, "Number of DRAM columns")
	runCmd.Flags().IntVar(&numErrors, "errors", 10, "Number of injected bit errors")
	runCmd.Flags().Float64Var(&scrubInterval, "scrub-interval", 5, "Time between scrub passes")
	runCmd.Flags().Float64Var(&simTime, "sim-time", 3600, "Simulation horizon")
	runCmd.Flags().Float64Var(&accessRate, "access-rate", 100000, "Memory accesses per unit time")

	// Engine
	runCmd.Flags().IntVar(&batches, "batches", 60, "Split the horizon into this many generate/drain windows (1 = single window)")
	runCmd.Flags().StringVar(&scrubGranularity, "scrub-granularity", string(sim.ScrubGrid), "Scrub event granularity (grid, row)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Event trace level (none, events)")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
