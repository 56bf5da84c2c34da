// Package sweep drives independent simulators over a set of scrub intervals.
// Every point owns its own grid, queue and random streams; points share nothing
// and may run in parallel.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/dram-sim/sim"
)

// ErrInvalidSpec is wrapped by every sweep validation failure.
var ErrInvalidSpec = errors.New("invalid sweep spec")

// Spec describes a sweep: one base configuration evaluated at several scrub intervals.
type Spec struct {
	Base           sim.Config `yaml:"base"`
	ScrubIntervals []float64  `yaml:"scrub_intervals"`
	Replicates     int        `yaml:"replicates"`  // runs per interval; 0 means 1
	Parallelism    int        `yaml:"parallelism"` // concurrent runs; 0 means GOMAXPROCS
	// CommonRandomNumbers gives replicate r the same seed at every interval, so
	// intervals are compared against identical injection and access streams.
	CommonRandomNumbers bool `yaml:"common_random_numbers"`
}

// Validate checks the sweep shape and every derived simulator configuration.
func (s Spec) Validate() error {
	if len(s.ScrubIntervals) == 0 {
		return fmt.Errorf("%w: no scrub intervals", ErrInvalidSpec)
	}
	if s.Replicates < 0 {
		return fmt.Errorf("%w: replicates must be nonnegative, got %d", ErrInvalidSpec, s.Replicates)
	}
	if s.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must be nonnegative, got %d", ErrInvalidSpec, s.Parallelism)
	}
	for _, interval := range s.ScrubIntervals {
		cfg := s.Base
		cfg.ScrubInterval = interval
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: scrub interval %v: %w", ErrInvalidSpec, interval, err)
		}
	}
	return nil
}

func (s Spec) replicates() int {
	return max(s.Replicates, 1)
}

func (s Spec) parallelism() int {
	if s.Parallelism == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return s.Parallelism
}

// configFor returns the simulator configuration of replicate rep at interval index idx.
func (s Spec) configFor(idx, rep int) sim.Config {
	seeds := sim.NewPartitionedRNG(sim.NewSimulationKey(s.Base.Seed))
	cfg := s.Base
	cfg.ScrubInterval = s.ScrubIntervals[idx]
	if s.CommonRandomNumbers {
		cfg.Seed = seeds.DeriveSeed(sim.SubsystemSweepPoint(0, rep))
	} else {
		cfg.Seed = seeds.DeriveSeed(sim.SubsystemSweepPoint(idx, rep))
	}
	return cfg
}

// Summary describes one counter across the replicates of a point.
type Summary struct {
	Mean, StdDev, Min, Max float64
}

func summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		std = 0
	}
	return Summary{Mean: mean, StdDev: std, Min: floats.Min(xs), Max: floats.Max(xs)}
}

// Point holds the results for one scrub interval.
type Point struct {
	ScrubInterval float64
	Results       []sim.Result // indexed by replicate
	Encountered   Summary
	Corrected     Summary
}

// Run executes every interval x replicate on its own Simulator and returns one
// Point per interval, in the order of spec.ScrubIntervals. Cancellation of ctx
// stops runs that have not started yet.
func Run(ctx context.Context, spec Spec) ([]Point, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	reps := spec.replicates()
	points := make([]Point, len(spec.ScrubIntervals))
	for i, interval := range spec.ScrubIntervals {
		points[i] = Point{ScrubInterval: interval, Results: make([]sim.Result, reps)}
	}

	logrus.Infof("Starting sweep: %d interval(s) x %d replicate(s), parallelism %d",
		len(spec.ScrubIntervals), reps, spec.parallelism())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(spec.parallelism())
	for i := range spec.ScrubIntervals {
		for rep := range reps {
			cfg := spec.configFor(i, rep)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				s, err := sim.NewSimulator(cfg)
				if err != nil {
					return err
				}
				// each goroutine writes a distinct slot
				points[i].Results[rep] = s.Run()
				logrus.Debugf("sweep point interval=%v rep=%d done", cfg.ScrubInterval, rep)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range points {
		enc := make([]float64, reps)
		cor := make([]float64, reps)
		for rep, r := range points[i].Results {
			enc[rep] = float64(r.ErrorsEncountered)
			cor[rep] = float64(r.ErrorsCorrected)
		}
		points[i].Encountered = summarize(enc)
		points[i].Corrected = summarize(cor)
	}
	return points, nil
}

// Print writes, per point, the scrub interval followed by the two-line report of
// the first replicate. Replicated sweeps add mean and standard deviation lines.
func Print(w io.Writer, points []Point) error {
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "Scrub Interval: %v\n", p.ScrubInterval); err != nil {
			return err
		}
		if len(p.Results) == 0 {
			continue
		}
		if err := p.Results[0].Print(w); err != nil {
			return err
		}
		if len(p.Results) > 1 {
			if _, err := fmt.Fprintf(w, "Mean Encountered: %.2f (sd %.2f)\nMean Corrected: %.2f (sd %.2f)\n",
				p.Encountered.Mean, p.Encountered.StdDev, p.Corrected.Mean, p.Corrected.StdDev); err != nil {
				return err
			}
		}
	}
	return nil
}
