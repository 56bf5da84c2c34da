// sim/simulator.go
package sim

import (
	"math"
	randv2 "math/rand/v2"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inference-sim/dram-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the memory grid, and the event loop.
// One Simulator performs exactly one run; build a new one for every configuration.
type Simulator struct {
	Clock   float64
	Horizon float64
	Config  Config
	// EventQueue holds the pending InjectError, Access and Scrub events of the current window
	EventQueue *EventQueue
	Grid       *MemoryGrid
	Result     Result
	// Trace is nil unless Config.TraceLevel records events
	Trace *trace.SimulationTrace

	rng          *PartitionedRNG
	nextSeq      uint64
	window       int
	done         bool
	injectTimes  [][]float64 // per window, drawn by planWindows
	accessCounts []int64     // per window, drawn by planWindows
}

// NewSimulator validates cfg, builds a clean grid, and schedules the events of the
// first window (the whole horizon unless Batches > 1).
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ScrubInterval > cfg.SimTime {
		logrus.Warnf("scrub interval %v exceeds horizon %v; only the scrub at t=0 will fire", cfg.ScrubInterval, cfg.SimTime)
	}

	s := &Simulator{
		Clock:      0,
		Horizon:    cfg.SimTime,
		Config:     cfg,
		EventQueue: NewEventQueue(),
		Grid:       NewMemoryGrid(cfg.Rows, cfg.Cols),
		rng:        NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}
	if cfg.TraceLevel.Enabled() {
		s.Trace = trace.NewSimulationTrace(cfg.TraceLevel)
	}
	s.planWindows()
	s.generateWindow(0)
	return s, nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Schedule(ev)
}

func (sim *Simulator) seq() uint64 {
	sim.nextSeq++
	return sim.nextSeq
}

// Run drains the event queue window by window and returns the final counters.
// Calling Run again after it has finished returns the same Result.
func (sim *Simulator) Run() Result {
	if sim.done {
		logrus.Warnf("Run called on a finished simulator; returning previous result")
		return sim.Result
	}
	logrus.Infof("Starting simulation: %dx%d grid, %d errors, scrub every %v, horizon %v, %v accesses/unit, %d window(s)",
		sim.Config.Rows, sim.Config.Cols, sim.Config.Errors, sim.Config.ScrubInterval, sim.Horizon,
		sim.Config.AccessRate, sim.Config.numBatches())

	for {
		for sim.EventQueue.Len() > 0 {
			ev := sim.EventQueue.PopNext()
			sim.Clock = ev.Timestamp()
			if logrus.IsLevelEnabled(logrus.TraceLevel) {
				logrus.Tracef("[t=%.6f] Executing %s #%d", sim.Clock, ev.Kind(), ev.Seq())
			}
			ev.Execute(sim)
			sim.Result.EventsProcessed++
		}
		sim.window++
		if sim.window >= sim.Config.numBatches() {
			break
		}
		sim.generateWindow(sim.window)
	}

	sim.done = true
	sim.Result.ResidualErrors = sim.Grid.Errored()
	sim.Result.SimEndedTime = sim.Clock
	logrus.Infof("[t=%.6f] Simulation ended: encountered=%d corrected=%d injected=%d masked=%d residual=%d events=%d",
		sim.Clock, sim.Result.ErrorsEncountered, sim.Result.ErrorsCorrected, sim.Result.ErrorsInjected,
		sim.Result.InjectionsMasked, sim.Result.ResidualErrors, sim.Result.EventsProcessed)
	return sim.Result
}

// windowBounds returns [start, end) of window i. The last window ends exactly at the horizon.
func (sim *Simulator) windowBounds(i int) (float64, float64) {
	n := sim.Config.numBatches()
	start := sim.Horizon * float64(i) / float64(n)
	end := sim.Horizon
	if i < n-1 {
		end = sim.Horizon * float64(i+1) / float64(n)
	}
	return start, end
}

// windowOf returns the index of the window containing t, for t in [0, Horizon).
func (sim *Simulator) windowOf(t float64) int {
	n := sim.Config.numBatches()
	i := min(max(int(t*float64(n)/sim.Horizon), 0), n-1)
	for i > 0 {
		if start, _ := sim.windowBounds(i); t >= start {
			break
		}
		i--
	}
	for i < n-1 {
		if _, end := sim.windowBounds(i); t < end {
			break
		}
		i++
	}
	return i
}

// planWindows fixes, before any event is scheduled, which window every injection
// and access belongs to. Injection times are drawn uniformly over the whole horizon
// and bucketed by window. Access counts per window are multinomial over the equal-width
// windows, so uniform draws inside a window give uniform times over the horizon.
func (sim *Simulator) planWindows() {
	n := sim.Config.numBatches()
	rng := sim.rng.ForSubsystem(SubsystemSchedule)

	sim.injectTimes = make([][]float64, n)
	for range sim.Config.Errors {
		t := rng.Float64() * sim.Horizon
		if t >= sim.Horizon {
			t = math.Nextafter(sim.Horizon, 0)
		}
		w := sim.windowOf(t)
		sim.injectTimes[w] = append(sim.injectTimes[w], t)
	}

	total := sim.Config.numAccesses()
	if n == 1 {
		sim.accessCounts = []int64{total}
		return
	}
	src := randv2.NewPCG(uint64(rng.Int63()), uint64(rng.Int63()))
	sim.accessCounts = splitMultinomial(total, n, src)
}

// splitMultinomial distributes total items over n equally likely bins by drawing
// each bin's count from a binomial over the items not yet placed.
func splitMultinomial(total int64, n int, src randv2.Source) []int64 {
	counts := make([]int64, n)
	remaining := total
	for i := 0; i < n-1 && remaining > 0; i++ {
		b := distuv.Binomial{N: float64(remaining), P: 1 / float64(n-i), Src: src}
		c := min(int64(b.Rand()), remaining)
		counts[i] = c
		remaining -= c
	}
	counts[n-1] += remaining
	return counts
}

// generateWindow schedules every event whose timestamp falls in window i.
// Insertion order is scrubs, then injections, then accesses, which fixes the
// dispatch order of events sharing a timestamp: a scrub never sees an error
// injected at its own instant.
func (sim *Simulator) generateWindow(i int) {
	start, end := sim.windowBounds(i)
	rng := sim.rng.ForSubsystem(SubsystemSchedule)

	scrubs := 0
	interval := sim.Config.ScrubInterval
	for k := int64(math.Ceil(start / interval)) - 1; float64(k)*interval < end; k++ {
		t := float64(k) * interval
		if k < 0 || t < start {
			continue
		}
		if sim.Config.granularity() == ScrubRow {
			for row := 0; row < sim.Grid.Rows(); row++ {
				sim.Schedule(NewScrubRowEvent(t, sim.seq(), row))
			}
		} else {
			sim.Schedule(NewScrubEvent(t, sim.seq()))
		}
		scrubs++
	}

	for _, t := range sim.injectTimes[i] {
		sim.Schedule(NewInjectErrorEvent(t, sim.seq()))
	}
	errs := len(sim.injectTimes[i])
	sim.injectTimes[i] = nil

	accesses := sim.accessCounts[i]
	for range accesses {
		t := start + rng.Float64()*(end-start)
		if t >= end {
			t = math.Nextafter(end, start)
		}
		row := rng.Intn(sim.Grid.Rows())
		col := rng.Intn(sim.Grid.Cols())
		sim.Schedule(NewAccessEvent(t, sim.seq(), row, col))
	}

	logrus.Debugf("window %d [%v, %v): scheduled %d scrub instants, %d injections, %d accesses",
		i, start, end, scrubs, errs, accesses)
}

func (sim *Simulator) handleInjectError(e *InjectErrorEvent) {
	rng := sim.rng.ForSubsystem(SubsystemInject)
	row := rng.Intn(sim.Grid.Rows())
	col := rng.Intn(sim.Grid.Cols())
	sim.Result.ErrorsInjected++
	outcome := trace.OutcomeInjected
	if !sim.Grid.SetError(row, col) {
		sim.Result.InjectionsMasked++
		outcome = trace.OutcomeMasked
	}
	sim.record(e, row, col, outcome, 0)
}

func (sim *Simulator) handleAccess(e *AccessEvent) {
	sim.Result.Accesses++
	outcome := trace.OutcomeMiss
	if sim.Grid.Clear(e.Row, e.Col) {
		sim.Result.ErrorsEncountered++
		outcome = trace.OutcomeHit
		logrus.Debugf("[t=%.6f] access (%d, %d) encountered an error", e.time, e.Row, e.Col)
	}
	sim.record(e, e.Row, e.Col, outcome, 0)
}

func (sim *Simulator) handleScrub(e Event, fromRow, toRow int) {
	sim.Result.Scrubs++
	cleared := sim.Grid.ScrubRows(fromRow, toRow)
	sim.Result.ErrorsCorrected += cleared
	if cleared > 0 {
		logrus.Debugf("[t=%.6f] %s corrected %d error(s)", e.Timestamp(), e.Kind(), cleared)
	}
	row := -1
	if e.Kind() == KindScrubRow {
		row = fromRow
	}
	sim.record(e, row, -1, trace.OutcomeScrubbed, cleared)
}

func (sim *Simulator) record(e Event, row, col int, outcome trace.Outcome, cleared int) {
	if sim.Trace == nil {
		return
	}
	sim.Trace.Record(trace.EventRecord{
		Seq:     e.Seq(),
		Time:    e.Timestamp(),
		Kind:    e.Kind().String(),
		Row:     row,
		Col:     col,
		Outcome: outcome,
		Cleared: cleared,
	})
}
