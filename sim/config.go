package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/inference-sim/dram-sim/sim/trace"
)

// maxAccesses bounds the generated access count so it fits comfortably in an int64.
const maxAccesses = 1 << 40

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// ScrubGranularity selects how a scrub instant is expanded into events.
type ScrubGranularity string

const (
	// ScrubGrid schedules one Scrub event per instant, sweeping the whole grid.
	ScrubGrid ScrubGranularity = "grid"
	// ScrubRow schedules one ScrubRow event per row per instant, rows ascending.
	ScrubRow ScrubGranularity = "row"
)

// Config groups the construction parameters of one simulation run.
// The yaml tags are used by sweep definition files.
type Config struct {
	Rows          int     `yaml:"rows"`
	Cols          int     `yaml:"cols"`
	Errors        int     `yaml:"errors"`         // number of InjectError events
	ScrubInterval float64 `yaml:"scrub_interval"` // period between scrubs
	SimTime       float64 `yaml:"sim_time"`       // simulation horizon
	AccessRate    float64 `yaml:"access_rate"`    // accesses per unit time
	Seed          int64   `yaml:"seed"`

	// Batches splits the horizon into equal windows that are generated and drained
	// one at a time. 0 or 1 means a single window.
	Batches          int              `yaml:"batches"`
	ScrubGranularity ScrubGranularity `yaml:"scrub_granularity"`
	TraceLevel       trace.TraceLevel `yaml:"trace_level"`
}

// Validate checks every field and returns an error wrapping ErrInvalidConfig
// naming the first offending field.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfig, c.Rows)
	case c.Cols <= 0:
		return fmt.Errorf("%w: cols must be positive, got %d", ErrInvalidConfig, c.Cols)
	case c.Errors < 0:
		return fmt.Errorf("%w: errors must be nonnegative, got %d", ErrInvalidConfig, c.Errors)
	case !(c.ScrubInterval > 0) || math.IsInf(c.ScrubInterval, 0):
		return fmt.Errorf("%w: scrub interval must be positive and finite, got %v", ErrInvalidConfig, c.ScrubInterval)
	case !(c.SimTime > 0) || math.IsInf(c.SimTime, 0):
		return fmt.Errorf("%w: sim time must be positive and finite, got %v", ErrInvalidConfig, c.SimTime)
	case !(c.AccessRate >= 0) || math.IsInf(c.AccessRate, 0):
		return fmt.Errorf("%w: access rate must be nonnegative and finite, got %v", ErrInvalidConfig, c.AccessRate)
	case c.Batches < 0:
		return fmt.Errorf("%w: batches must be nonnegative, got %d", ErrInvalidConfig, c.Batches)
	}
	switch c.ScrubGranularity {
	case "", ScrubGrid, ScrubRow:
	default:
		return fmt.Errorf("%w: unknown scrub granularity %q", ErrInvalidConfig, c.ScrubGranularity)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	if c.AccessRate*c.SimTime > maxAccesses {
		return fmt.Errorf("%w: access rate %v over %v yields too many accesses", ErrInvalidConfig, c.AccessRate, c.SimTime)
	}
	return nil
}

// numAccesses is floor(AccessRate * SimTime).
func (c Config) numAccesses() int64 {
	return int64(math.Floor(c.AccessRate * c.SimTime))
}

func (c Config) numBatches() int {
	if c.Batches <= 1 {
		return 1
	}
	return c.Batches
}

func (c Config) granularity() ScrubGranularity {
	if c.ScrubGranularity == "" {
		return ScrubGrid
	}
	return c.ScrubGranularity
}
