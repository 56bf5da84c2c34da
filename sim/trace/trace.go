package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents records one EventRecord per dispatched event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records events.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelEvents
}

// SimulationTrace collects event records during one simulation run.
type SimulationTrace struct {
	Level  TraceLevel
	Events []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	return &SimulationTrace{
		Level:  level,
		Events: make([]EventRecord, 0),
	}
}

// Record appends an event record.
func (st *SimulationTrace) Record(record EventRecord) {
	st.Events = append(st.Events, record)
}
