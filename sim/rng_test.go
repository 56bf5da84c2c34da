package sim

import (
	"math"
	"math/rand"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemInject).Float64()
		v2 := rng2.ForSubsystem(SubsystemInject).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from the schedule stream doesn't move the inject stream
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemSchedule).Float64()
	}
	aInjectFirst := rngA.ForSubsystem(SubsystemInject).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expectedFirst := fresh.ForSubsystem(SubsystemInject).Float64()

	if aInjectFirst != expectedFirst {
		t.Errorf("inject first value = %v, want %v (isolation broken)", aInjectFirst, expectedFirst)
	}
}

func TestPartitionedRNG_ScheduleUsesMasterSeed(t *testing.T) {
	// BDD: "schedule" subsystem uses master seed directly
	seed := int64(42)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	scheduleRNG := rng.ForSubsystem(SubsystemSchedule)
	directRNG := newRandFromSeed(seed)

	for i := 0; i < 10; i++ {
		got := scheduleRNG.Float64()
		want := directRNG.Float64()
		if got != want {
			t.Errorf("Value %d: schedule RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	// BDD: Same name returns same *rand.Rand instance
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if rng.ForSubsystem(SubsystemInject) != rng.ForSubsystem(SubsystemInject) {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_DeriveSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7))

	if got := rng.DeriveSeed(SubsystemSchedule); got != 7 {
		t.Errorf("DeriveSeed(schedule) = %d, want master seed 7", got)
	}
	if got, want := rng.DeriveSeed(SubsystemInject), int64(7)^fnv1a64(SubsystemInject); got != want {
		t.Errorf("DeriveSeed(inject) = %d, want %d", got, want)
	}
	// ForSubsystem must be seeded with exactly DeriveSeed
	name := SubsystemSweepPoint(3, 1)
	direct := newRandFromSeed(rng.DeriveSeed(name))
	if rng.ForSubsystem(name).Int63() != direct.Int63() {
		t.Error("ForSubsystem not seeded from DeriveSeed")
	}
}

func TestPartitionedRNG_ZeroSeed(t *testing.T) {
	// BDD: Seed 0 works correctly
	rng := NewPartitionedRNG(NewSimulationKey(0))

	schedule := rng.ForSubsystem(SubsystemSchedule)
	inject := rng.ForSubsystem(SubsystemInject)

	if schedule == nil || inject == nil {
		t.Fatal("ForSubsystem returned nil with zero seed")
	}
	if schedule.Float64() != newRandFromSeed(0).Float64() {
		t.Error("schedule with seed 0 not matching direct RNG")
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	// BDD: Subsystems map is empty until ForSubsystem is called
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForSubsystem(SubsystemSchedule)

	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Collision(t *testing.T) {
	// Different subsystem names should produce different hashes (spot check)
	names := []string{
		SubsystemSchedule,
		SubsystemInject,
		SubsystemSweepPoint(0, 0),
		SubsystemSweepPoint(0, 1),
		SubsystemSweepPoint(1, 0),
		"",
	}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

func TestSubsystemSweepPoint(t *testing.T) {
	tests := []struct {
		idx, rep int
		want     string
	}{
		{0, 0, "sweep_0_0"},
		{2, 5, "sweep_2_5"},
		{10, 1, "sweep_10_1"},
	}

	for _, tt := range tests {
		if got := SubsystemSweepPoint(tt.idx, tt.rep); got != tt.want {
			t.Errorf("SubsystemSweepPoint(%d, %d) = %q, want %q", tt.idx, tt.rep, got, tt.want)
		}
	}
}

// === Benchmark ===

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForSubsystem(SubsystemInject)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForSubsystem(SubsystemInject)
	}
}

// === Helper ===

// newRandFromSeed creates a *rand.Rand with the given seed
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
