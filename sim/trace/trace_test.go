package trace

import (
	"testing"
)

func TestSimulationTrace_Record_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceLevelEvents)

	// WHEN an access record is recorded
	st.Record(EventRecord{Seq: 7, Time: 1.5, Kind: "Access", Row: 2, Col: 3, Outcome: OutcomeHit})

	// THEN the trace contains one record with correct data
	if len(st.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(st.Events))
	}
	if st.Events[0].Seq != 7 || st.Events[0].Row != 2 || st.Events[0].Col != 3 {
		t.Errorf("unexpected record %+v", st.Events[0])
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceLevelEvents)

	// WHEN multiple records are added
	st.Record(EventRecord{Seq: 1, Time: 0.1, Kind: "InjectError", Outcome: OutcomeInjected})
	st.Record(EventRecord{Seq: 3, Time: 0.2, Kind: "Access", Outcome: OutcomeMiss})
	st.Record(EventRecord{Seq: 2, Time: 0.3, Kind: "Scrub", Outcome: OutcomeScrubbed, Cleared: 1})

	// THEN insertion order is preserved
	want := []uint64{1, 3, 2}
	for i, seq := range want {
		if st.Events[i].Seq != seq {
			t.Errorf("event %d: expected seq %d, got %d", i, seq, st.Events[i].Seq)
		}
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"events", true},
		{"", true},
		{"decisions", false},
		{"EVENTS", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}

func TestTraceLevel_Enabled(t *testing.T) {
	if TraceLevelNone.Enabled() {
		t.Error("none must not record")
	}
	if TraceLevel("").Enabled() {
		t.Error("empty level must not record")
	}
	if !TraceLevelEvents.Enabled() {
		t.Error("events must record")
	}
}
