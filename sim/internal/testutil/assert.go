// Package testutil provides shared assertion helpers for the simulator's test packages.
// It deliberately does not import sim/ so that in-package sim tests can use it.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertInHalfOpen fails unless lo <= got < hi.
func AssertInHalfOpen(t *testing.T, name string, got, lo, hi float64) {
	t.Helper()
	if got < lo || got >= hi {
		t.Errorf("%s: got %v, want in [%v, %v)", name, got, lo, hi)
	}
}

// AssertCellInGrid fails unless (row, col) lies inside a rows x cols grid.
func AssertCellInGrid(t *testing.T, row, col, rows, cols int) {
	t.Helper()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		t.Errorf("cell (%d, %d) outside %dx%d grid", row, col, rows, cols)
	}
}
