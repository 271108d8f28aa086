package grid

import "fmt"

// RectFromRows builds a grid from prepared row data. The rows must be
// rectangular and non-empty; ownership transfers to the grid, so the
// caller must not write through the slices afterwards.
func RectFromRows(rows [][]Cell) (*RectGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid: empty row data")
	}
	width := len(rows[0])
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid: ragged row %d: %d cells, want %d", r, len(row), width)
		}
	}
	return &RectGrid{width: width, height: len(rows), rows: rows}, nil
}

// HexFromCells builds a hex grid from prepared cell data. Coordinates
// missing from cells are filled with Empty sentinels; coordinates
// outside the radius are rejected. Ownership of the map transfers to
// the grid.
func HexFromCells(radius int, cells map[Axial]Cell) (*HexGrid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("grid: invalid hex radius %d", radius)
	}
	radius = ClampHexRadius(radius)
	if cells == nil {
		cells = make(map[Axial]Cell, HexCellCount(radius))
	}
	for c := range cells {
		if HexDistance(c, Axial{}) > radius {
			return nil, fmt.Errorf("grid: coordinate %d,%d outside radius %d", c.Q, c.R, radius)
		}
	}
	forEachInRadius(radius, func(c Axial) {
		if _, ok := cells[c]; !ok {
			cells[c] = EmptyCell()
		}
	})
	return &HexGrid{radius: radius, cells: cells}, nil
}
