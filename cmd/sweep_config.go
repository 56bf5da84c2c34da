package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/dram-sim/sim/sweep"
)

// loadSweepSpec parses a sweep definition file.
// Uses strict field checking: typos must cause errors, not silently fall back to zero values.
func loadSweepSpec(path string) (sweep.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sweep.Spec{}, fmt.Errorf("reading sweep file: %w", err)
	}
	return parseSweepSpec(data)
}

func parseSweepSpec(data []byte) (sweep.Spec, error) {
	var spec sweep.Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return sweep.Spec{}, fmt.Errorf("parsing sweep YAML: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return sweep.Spec{}, err
	}
	return spec, nil
}
