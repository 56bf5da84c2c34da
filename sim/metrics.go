// Tracks the outcome counters of one simulation run.

package sim

import (
	"fmt"
	"io"
)

// Result aggregates the counters of a finished (or in-progress) run.
// ErrorsEncountered and ErrorsCorrected are the reported outcome; the remaining
// fields are diagnostics.
type Result struct {
	ErrorsEncountered int // errors consumed by an access
	ErrorsCorrected   int // errors cleared by a scrub

	ErrorsInjected   int // InjectError events dispatched
	InjectionsMasked int // injections that landed on an already-errored cell
	Accesses         int64
	Scrubs           int // scrub events dispatched (one per row under row granularity)
	EventsProcessed  int64
	ResidualErrors   int     // errored cells left when the queue drained
	SimEndedTime     float64 // timestamp of the last dispatched event
}

// Print writes the two-line report:
//
//	Errors Encountered: <n>
//	Errors Corrected: <n>
func (r Result) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Errors Encountered: %d\nErrors Corrected: %d\n", r.ErrorsEncountered, r.ErrorsCorrected)
	return err
}

// Conserved reports whether every dispatched injection that actually set a cell is
// accounted for exactly once: consumed by an access, cleared by a scrub, or still resident.
func (r Result) Conserved() bool {
	return r.ErrorsInjected-r.InjectionsMasked == r.ErrorsEncountered+r.ErrorsCorrected+r.ResidualErrors
}
