// Package sim provides the discrete-event simulation engine for DRAM error
// accumulation and scrubbing.
//
// # Reading Guide
//
//   - grid.go: MemoryGrid, the per-cell error bits (set / clear / row sweep)
//   - event.go: the InjectError, Access, Scrub and ScrubRow events
//   - event_queue.go: the time-ordered heap; equal timestamps dispatch in insertion order
//   - simulator.go: event generation per window, the run loop, and the handlers
//   - metrics.go: Result counters and the two-line report
//
// # Determinism
//
// All randomness flows from Config.Seed through PartitionedRNG (rng.go).
// Event generation draws from the "schedule" stream; injected errors pick
// their cell at dispatch time from the separate "inject" stream. Identical
// seeds and configs give identical Results.
//
// # Sub-packages
//
//   - sim/sweep/: runs independent simulators over a set of scrub intervals
//   - sim/trace/: optional per-event recording and summaries
package sim
