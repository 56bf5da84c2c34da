package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/dram-sim/sim/sweep"
)

func TestLoadSweepSpec_ExampleFile(t *testing.T) {
	spec, err := loadSweepSpec(filepath.Join("..", "examples", "sweep.yaml"))

	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10, 20, 60, 120, 300}, spec.ScrubIntervals)
	assert.Equal(t, 1024, spec.Base.Rows)
	assert.Equal(t, 1024, spec.Base.Cols)
	assert.Equal(t, 10, spec.Base.Errors)
	assert.Equal(t, 3600.0, spec.Base.SimTime)
	assert.Equal(t, 100000.0, spec.Base.AccessRate)
	assert.Equal(t, 60, spec.Base.Batches)
}

func TestParseSweepSpec_UnknownField_Rejected(t *testing.T) {
	// A typo must fail instead of silently defaulting
	data := []byte(`
base:
  rows: 4
  cols: 4
  errors: 1
  scrub_interval: 1
  sim_time: 2
  acess_rate: 10
scrub_intervals: [1]
`)
	_, err := parseSweepSpec(data)
	assert.Error(t, err)
}

func TestParseSweepSpec_InvalidValues_Rejected(t *testing.T) {
	data := []byte(`
base:
  rows: 0
  cols: 4
  sim_time: 2
  scrub_interval: 1
scrub_intervals: [1, 2]
`)
	_, err := parseSweepSpec(data)
	assert.ErrorIs(t, err, sweep.ErrInvalidSpec)
}

func TestParseSweepSpec_AllFields(t *testing.T) {
	data := []byte(`
base:
  rows: 2
  cols: 3
  errors: 5
  scrub_interval: 1
  sim_time: 10
  access_rate: 0.5
  seed: -4
  batches: 2
  scrub_granularity: row
  trace_level: none
scrub_intervals: [0.5, 2]
replicates: 4
parallelism: 2
common_random_numbers: true
`)
	spec, err := parseSweepSpec(data)

	require.NoError(t, err)
	assert.Equal(t, int64(-4), spec.Base.Seed)
	assert.Equal(t, "row", string(spec.Base.ScrubGranularity))
	assert.Equal(t, 4, spec.Replicates)
	assert.Equal(t, 2, spec.Parallelism)
	assert.True(t, spec.CommonRandomNumbers)
}

func TestLoadSweepSpec_MissingFile(t *testing.T) {
	_, err := loadSweepSpec(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
