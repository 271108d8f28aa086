package grid

import "fmt"

// RectGrid is a dense rectangular grid stored as row slices. Mutating
// operations return a new RectGrid that shares every untouched row
// with its parent, so an edit of k rows costs O(k·width), not
// O(width·height).
type RectGrid struct {
	width  int
	height int
	rows   [][]Cell
}

// CellChange is one pending cell write, produced by the brush engine
// and applied in a single batched pass.
type CellChange struct {
	Row, Col int
	Cell     Cell
}

// NewRect creates a width×height grid of default cells.
func NewRect(width, height int) (*RectGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	rows := make([][]Cell, height)
	def := DefaultCell()
	for r := range rows {
		row := make([]Cell, width)
		for c := range row {
			row[c] = def
		}
		rows[r] = row
	}
	return &RectGrid{width: width, height: height, rows: rows}, nil
}

// Width returns the number of columns.
func (g *RectGrid) Width() int { return g.width }

// Height returns the number of rows.
func (g *RectGrid) Height() int { return g.height }

// CellCount returns width × height.
func (g *RectGrid) CellCount() int { return g.width * g.height }

// InBounds reports whether (row, col) is inside the grid.
func (g *RectGrid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the cell at (row, col). Panics on out-of-range access,
// like a slice index.
func (g *RectGrid) At(row, col int) Cell {
	return g.rows[row][col]
}

// Clone returns a deep row-copy of the grid.
func (g *RectGrid) Clone() Grid {
	rows := make([][]Cell, g.height)
	for r := range rows {
		row := make([]Cell, g.width)
		copy(row, g.rows[r])
		rows[r] = row
	}
	return &RectGrid{width: g.width, height: g.height, rows: rows}
}

// Fill sets every cell's terrain or height to one value. Terrain fills
// on grids above VeryLargeCells build a single template row and copy
// it per row instead of constructing each cell individually.
func (g *RectGrid) Fill(tool Tool, terrain TerrainID, height int) Grid {
	rows := make([][]Cell, g.height)
	switch tool {
	case ToolTerrain:
		cell := Cell{Terrain: terrain, Height: BaseHeight(terrain)}
		if g.CellCount() > VeryLargeCells {
			template := make([]Cell, g.width)
			for c := range template {
				template[c] = cell
			}
			for r := range rows {
				row := make([]Cell, g.width)
				copy(row, template)
				rows[r] = row
			}
			break
		}
		for r := range rows {
			row := make([]Cell, g.width)
			for c := range row {
				row[c] = cell
			}
			rows[r] = row
		}
	default: // ToolHeight
		h := ClampHeight(height)
		for r := range rows {
			row := make([]Cell, g.width)
			copy(row, g.rows[r])
			for c := range row {
				row[c].Height = h
			}
			rows[r] = row
		}
	}
	return &RectGrid{width: g.width, height: g.height, rows: rows}
}

// Resize returns a grid of the new dimensions, preserving cells at
// coordinates present in both grids and defaulting the rest. Resizing
// to the current dimensions returns the receiver unchanged.
func (g *RectGrid) Resize(width, height int) (*RectGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	if width == g.width && height == g.height {
		return g, nil
	}
	rows := make([][]Cell, height)
	def := DefaultCell()
	for r := range rows {
		row := make([]Cell, width)
		for c := range row {
			if r < g.height && c < g.width {
				row[c] = g.rows[r][c]
			} else {
				row[c] = def
			}
		}
		rows[r] = row
	}
	return &RectGrid{width: width, height: height, rows: rows}, nil
}

// WithCells applies a batch of cell writes, copying only the rows that
// are actually touched; all other rows are shared with the receiver.
// An empty batch returns the receiver.
func (g *RectGrid) WithCells(changes []CellChange) *RectGrid {
	if len(changes) == 0 {
		return g
	}
	rows := make([][]Cell, g.height)
	copy(rows, g.rows)
	copied := make(map[int]bool, 8)
	for _, ch := range changes {
		if !g.InBounds(ch.Row, ch.Col) {
			continue
		}
		if !copied[ch.Row] {
			row := make([]Cell, g.width)
			copy(row, g.rows[ch.Row])
			rows[ch.Row] = row
			copied[ch.Row] = true
		}
		rows[ch.Row][ch.Col] = ch.Cell
	}
	return &RectGrid{width: g.width, height: g.height, rows: rows}
}

// Equal reports whether two grids have identical dimensions and cells.
func (g *RectGrid) Equal(o *RectGrid) bool {
	if o == nil || g.width != o.width || g.height != o.height {
		return false
	}
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			if !g.rows[r][c].Equal(o.rows[r][c]) {
				return false
			}
		}
	}
	return true
}
