package sim

// EventKind identifies the handler an event dispatches to.
type EventKind int

const (
	KindInjectError EventKind = iota
	KindAccess
	KindScrub
	KindScrubRow
)

func (k EventKind) String() string {
	switch k {
	case KindInjectError:
		return "InjectError"
	case KindAccess:
		return "Access"
	case KindScrub:
		return "Scrub"
	case KindScrubRow:
		return "ScrubRow"
	default:
		return "Unknown"
	}
}

// Event defines the interface for all simulation events.
// Each event carries a logical Timestamp, the insertion sequence number used
// to break timestamp ties, and an Execute method that mutates simulation state.
// Events are immutable once scheduled.
type Event interface {
	Timestamp() float64
	Seq() uint64
	Kind() EventKind
	Execute(*Simulator)
}

// baseEvent provides the common event fields.
type baseEvent struct {
	time float64
	seq  uint64
}

func (e *baseEvent) Timestamp() float64 { return e.time }
func (e *baseEvent) Seq() uint64        { return e.seq }

// InjectErrorEvent flips one cell to errored. The cell is chosen when the event
// executes, not when it is scheduled.
type InjectErrorEvent struct {
	baseEvent
}

func NewInjectErrorEvent(time float64, seq uint64) *InjectErrorEvent {
	return &InjectErrorEvent{baseEvent{time: time, seq: seq}}
}

func (e *InjectErrorEvent) Kind() EventKind { return KindInjectError }

// Execute places an error at a uniformly random cell.
func (e *InjectErrorEvent) Execute(sim *Simulator) {
	sim.handleInjectError(e)
}

// AccessEvent reads the cell fixed at generation time, consuming any error there.
type AccessEvent struct {
	baseEvent
	Row, Col int
}

func NewAccessEvent(time float64, seq uint64, row, col int) *AccessEvent {
	return &AccessEvent{baseEvent: baseEvent{time: time, seq: seq}, Row: row, Col: col}
}

func (e *AccessEvent) Kind() EventKind { return KindAccess }

// Execute clears the target cell and counts an encountered error if it was set.
func (e *AccessEvent) Execute(sim *Simulator) {
	sim.handleAccess(e)
}

// ScrubEvent sweeps the whole grid.
type ScrubEvent struct {
	baseEvent
}

func NewScrubEvent(time float64, seq uint64) *ScrubEvent {
	return &ScrubEvent{baseEvent{time: time, seq: seq}}
}

func (e *ScrubEvent) Kind() EventKind { return KindScrub }

// Execute clears every errored cell, counting each as corrected.
func (e *ScrubEvent) Execute(sim *Simulator) {
	sim.handleScrub(e, 0, sim.Grid.Rows())
}

// ScrubRowEvent sweeps a single row. Scheduled instead of ScrubEvent under row granularity.
type ScrubRowEvent struct {
	baseEvent
	Row int
}

func NewScrubRowEvent(time float64, seq uint64, row int) *ScrubRowEvent {
	return &ScrubRowEvent{baseEvent: baseEvent{time: time, seq: seq}, Row: row}
}

func (e *ScrubRowEvent) Kind() EventKind { return KindScrubRow }

func (e *ScrubRowEvent) Execute(sim *Simulator) {
	sim.handleScrub(e, e.Row, e.Row+1)
}
