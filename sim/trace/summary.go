package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents      int
	KindDistribution map[string]int // event kind → count dispatched
	Injected         int
	Masked           int
	Hits             int
	Misses           int
	ScrubCleared     int
	FirstTime        float64
	LastTime         float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindDistribution: make(map[string]int),
	}
	if st == nil || len(st.Events) == 0 {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	summary.FirstTime = st.Events[0].Time
	summary.LastTime = st.Events[len(st.Events)-1].Time
	for _, e := range st.Events {
		summary.KindDistribution[e.Kind]++
		switch e.Outcome {
		case OutcomeInjected:
			summary.Injected++
		case OutcomeMasked:
			summary.Masked++
		case OutcomeHit:
			summary.Hits++
		case OutcomeMiss:
			summary.Misses++
		case OutcomeScrubbed:
			summary.ScrubCleared += e.Cleared
		}
	}
	return summary
}
