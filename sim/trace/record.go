// Package trace provides per-event recording for post-run analysis of a simulation.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Outcome describes what a dispatched event did to the memory grid.
type Outcome string

const (
	OutcomeInjected Outcome = "injected" // error placed on a clean cell
	OutcomeMasked   Outcome = "masked"   // error landed on an already-errored cell
	OutcomeHit      Outcome = "hit"      // access consumed an error
	OutcomeMiss     Outcome = "miss"     // access found a clean cell
	OutcomeScrubbed Outcome = "scrubbed" // scrub pass, see Cleared
)

// EventRecord captures a single dispatched event.
type EventRecord struct {
	Seq     uint64
	Time    float64
	Kind    string
	Row     int // -1 when the event has no row
	Col     int // -1 when the event has no column
	Outcome Outcome
	Cleared int // cells cleared by a scrub; 0 otherwise
}
