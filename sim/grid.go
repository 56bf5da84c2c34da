// Implements the MemoryGrid, the per-cell bit-error state of the simulated DRAM array.

package sim

import (
	"fmt"
	"math/bits"
)

// MemoryGrid holds one error flag per (row, col) cell of a fixed rows x cols array.
// Cells are packed row-major into 64-bit words; each row starts on a word boundary
// so that a row sweep never touches a neighbouring row's bits.
//
// Thread-safety: NOT thread-safe. Owned by a single Simulator for one run.
type MemoryGrid struct {
	rows, cols  int
	wordsPerRow int
	words       []uint64
	errored     int // number of cells currently errored
}

// NewMemoryGrid creates a clean grid. Panics if either dimension is not positive;
// callers validate dimensions through Config.Validate first.
func NewMemoryGrid(rows, cols int) *MemoryGrid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("NewMemoryGrid: dimensions must be positive, got %dx%d", rows, cols))
	}
	wordsPerRow := (cols + 63) / 64
	return &MemoryGrid{
		rows:        rows,
		cols:        cols,
		wordsPerRow: wordsPerRow,
		words:       make([]uint64, rows*wordsPerRow),
	}
}

// Rows returns the number of rows in the grid.
func (g *MemoryGrid) Rows() int { return g.rows }

// Cols returns the number of columns in the grid.
func (g *MemoryGrid) Cols() int { return g.cols }

// Errored returns the number of cells currently holding an error.
func (g *MemoryGrid) Errored() int { return g.errored }

func (g *MemoryGrid) locate(row, col int) (int, uint64) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("MemoryGrid: cell (%d, %d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	return row*g.wordsPerRow + col/64, uint64(1) << (col % 64)
}

// SetError marks the cell errored. Setting an already-errored cell is a no-op;
// the return value reports whether the cell was newly errored.
func (g *MemoryGrid) SetError(row, col int) bool {
	w, mask := g.locate(row, col)
	if g.words[w]&mask != 0 {
		return false
	}
	g.words[w] |= mask
	g.errored++
	return true
}

// Clear resets the cell and reports whether it had been errored.
func (g *MemoryGrid) Clear(row, col int) bool {
	w, mask := g.locate(row, col)
	if g.words[w]&mask == 0 {
		return false
	}
	g.words[w] &^= mask
	g.errored--
	return true
}

// IsErrored reports whether the cell currently holds an error.
func (g *MemoryGrid) IsErrored(row, col int) bool {
	w, mask := g.locate(row, col)
	return g.words[w]&mask != 0
}

// ScrubRows clears every errored cell in rows [from, to) and returns how many were cleared.
func (g *MemoryGrid) ScrubRows(from, to int) int {
	if from < 0 || to > g.rows || from > to {
		panic(fmt.Sprintf("ScrubRows: row range [%d, %d) outside %d rows", from, to, g.rows))
	}
	if g.errored == 0 {
		return 0
	}
	cleared := 0
	for i := from * g.wordsPerRow; i < to*g.wordsPerRow; i++ {
		if g.words[i] != 0 {
			cleared += bits.OnesCount64(g.words[i])
			g.words[i] = 0
		}
	}
	g.errored -= cleared
	return cleared
}
