// Package editor ties the pieces together for a host UI: it owns the
// live grid, routes brush/fill/generate operations through the undo
// history, and notifies a render callback after every committed
// change. Mutations are synchronous and atomic: an operation either
// commits a complete new grid or fails leaving state untouched.
//
// Session is not safe for concurrent use; the host serializes
// mutations, the same as a single-threaded UI event loop would.
package editor

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mapforge/internal/brush"
	"github.com/talgya/mapforge/internal/gen"
	"github.com/talgya/mapforge/internal/grid"
	"github.com/talgya/mapforge/internal/history"
	"github.com/talgya/mapforge/internal/mapio"
)

// Session is one map editing session.
type Session struct {
	current grid.Grid
	log     *history.Log
	render  func(grid.Grid)
}

// New starts a session on an initial grid. The render callback may be
// nil; when set it receives every committed grid snapshot.
func New(g grid.Grid, render func(grid.Grid)) (*Session, error) {
	if g == nil {
		return nil, fmt.Errorf("editor: nil initial grid")
	}
	return &Session{current: g, log: history.New(), render: render}, nil
}

// Grid returns the current grid snapshot. Callers must treat it as
// immutable.
func (s *Session) Grid() grid.Grid { return s.current }

// History exposes the undo/redo log, mainly so hosts can enable or
// disable their undo buttons.
func (s *Session) History() *history.Log { return s.log }

// commit records the transition and publishes the new grid.
func (s *Session) commit(next grid.Grid) {
	if next == s.current {
		return // no-op edit, nothing to record
	}
	s.log.Record(s.current)
	s.current = next
	s.notify()
}

func (s *Session) notify() {
	if s.render != nil {
		s.render(s.current)
	}
}

// yieldIfLarge gives the host scheduler one chance to paint a working
// indicator before a long operation. Cooperative only; ordering and
// results are unaffected.
func (s *Session) yieldIfLarge() {
	if s.current.CellCount() > grid.LargeCells {
		runtime.Gosched()
	}
}

// ApplyBrush paints one brush stamp on a rectangular grid session.
func (s *Session) ApplyBrush(row, col int, cfg brush.Config) error {
	g, ok := s.current.(*grid.RectGrid)
	if !ok {
		return fmt.Errorf("editor: brush at (row,col) requires a rectangular grid")
	}
	next, err := brush.Apply(g, row, col, cfg)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// ApplyBrushHex paints one brush stamp on a hex grid session.
func (s *Session) ApplyBrushHex(center grid.Axial, cfg brush.Config) error {
	g, ok := s.current.(*grid.HexGrid)
	if !ok {
		return fmt.Errorf("editor: hex brush requires a hex grid")
	}
	next, err := brush.ApplyHex(g, center, cfg)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// Fill sets one attribute across every cell of the grid.
func (s *Session) Fill(tool grid.Tool, terrain grid.TerrainID, height int) error {
	switch tool {
	case grid.ToolTerrain, grid.ToolHeight:
	default:
		return fmt.Errorf("editor: unknown fill tool %q", tool)
	}
	s.yieldIfLarge()
	s.commit(s.current.Fill(tool, terrain, height))
	return nil
}

// Generate replaces the grid with a freshly synthesized one of the
// same dimensions.
func (s *Session) Generate(p gen.Params, mode gen.Mode) error {
	s.yieldIfLarge()
	var next grid.Grid
	switch g := s.current.(type) {
	case *grid.RectGrid:
		generated, err := gen.GenerateRect(g.Width(), g.Height(), p, mode)
		if err != nil {
			return err
		}
		next = generated
	case *grid.HexGrid:
		generated, err := gen.GenerateHex(g.Radius(), p, mode)
		if err != nil {
			return err
		}
		next = generated
	default:
		return fmt.Errorf("editor: unsupported grid type %T", s.current)
	}
	slog.Info("map generated",
		"mode", mode,
		"seed", p.Seed,
		"cells", humanize.Comma(int64(next.CellCount())),
	)
	s.commit(next)
	return nil
}

// Resize changes the dimensions of a rectangular grid session,
// preserving overlapping cells.
func (s *Session) Resize(width, height int) error {
	g, ok := s.current.(*grid.RectGrid)
	if !ok {
		return fmt.Errorf("editor: resize by width/height requires a rectangular grid")
	}
	next, err := g.Resize(width, height)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// ResizeHex changes the radius of a hex grid session. Radii above the
// hard cap are clamped, not rejected.
func (s *Session) ResizeHex(radius int) error {
	g, ok := s.current.(*grid.HexGrid)
	if !ok {
		return fmt.Errorf("editor: resize by radius requires a hex grid")
	}
	next, err := g.Resize(radius)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// Undo restores the previous grid state. Returns false when the undo
// stack is empty; the grid is unchanged in that case.
func (s *Session) Undo() bool {
	prev, ok := s.log.Undo(s.current)
	if !ok {
		return false
	}
	s.current = prev
	s.notify()
	return true
}

// Redo reverses the most recent Undo.
func (s *Session) Redo() bool {
	next, ok := s.log.Redo(s.current)
	if !ok {
		return false
	}
	s.current = next
	s.notify()
	return true
}

// Export serializes the current grid.
func (s *Session) Export(meta mapio.Meta) ([]byte, error) {
	return mapio.Export(s.current, meta)
}

// Import replaces the grid with a deserialized document. The existing
// grid stays current when parsing fails.
func (s *Session) Import(data []byte) (mapio.Meta, error) {
	g, meta, err := mapio.Import(data)
	if err != nil {
		return mapio.Meta{}, err
	}
	s.commit(g)
	return meta, nil
}
