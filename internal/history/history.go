// Package history provides bounded undo/redo over grid snapshots.
// Entries are immutable and exclusively owned by the stacks: a pushed
// grid is never mutated, which is what allows the reference-based
// snapshot strategy on very large grids.
package history

import "github.com/talgya/mapforge/internal/grid"

// Capacity tiers: the bound shrinks as grids grow so worst-case held
// memory stays flat.
const (
	depthSmall  = 50 // up to grid.LargeCells cells
	depthMedium = 20 // up to grid.VeryLargeCells cells
	depthLarge  = 10 // above
)

// Log holds the undo and redo stacks for one editing session.
type Log struct {
	undo []grid.Grid
	redo []grid.Grid
}

// New creates an empty history.
func New() *Log {
	return &Log{}
}

// capacityFor returns the stack depth bound for a grid of the given
// cell count.
func capacityFor(cells int) int {
	switch {
	case cells <= grid.LargeCells:
		return depthSmall
	case cells <= grid.VeryLargeCells:
		return depthMedium
	default:
		return depthLarge
	}
}

// snapshot prepares a grid for the stack. Normal grids are row-copied
// so later misuse cannot reach stack entries; very large grids are
// stored by reference, which is safe because every mutating operation
// produces a new grid instead of writing in place.
func snapshot(g grid.Grid) grid.Grid {
	if g.CellCount() > grid.VeryLargeCells {
		return g
	}
	return g.Clone()
}

// Record pushes the pre-edit state onto the undo stack and discards
// any redo entries: editing after an undo abandons the redone branch.
// The oldest entries are evicted once the capacity tier for this grid
// size is exceeded.
func (l *Log) Record(pre grid.Grid) {
	l.undo = append(l.undo, snapshot(pre))
	if max := capacityFor(pre.CellCount()); len(l.undo) > max {
		over := len(l.undo) - max
		l.undo = append(l.undo[:0:0], l.undo[over:]...)
	}
	l.redo = nil
}

// Undo pops the most recent undo entry, pushing the current state onto
// the redo stack. Returns the restored state, or (nil, false) when
// there is nothing to undo.
func (l *Log) Undo(current grid.Grid) (grid.Grid, bool) {
	if len(l.undo) == 0 {
		return nil, false
	}
	top := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, snapshot(current))
	return top, true
}

// Redo mirrors Undo in the opposite direction.
func (l *Log) Redo(current grid.Grid) (grid.Grid, bool) {
	if len(l.redo) == 0 {
		return nil, false
	}
	top := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, snapshot(current))
	return top, true
}

// CanUndo reports whether an undo entry exists.
func (l *Log) CanUndo() bool { return len(l.undo) > 0 }

// CanRedo reports whether a redo entry exists.
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }

// Depth returns the current undo and redo stack depths.
func (l *Log) Depth() (undo, redo int) {
	return len(l.undo), len(l.redo)
}
