package grid

import (
	"fmt"
	"math"
)

// MaxHexRadius is the hard cap on hex grid radius. Larger requests are
// clamped, not rejected.
const MaxHexRadius = 15

// Axial is a hex coordinate in axial form. The third cube coordinate
// is derived: s = -q - r, so q + r + s == 0 always holds.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (a Axial) S() int { return -a.Q - a.R }

// hexDirections defines the six neighbor offsets in axial coordinates.
var hexDirections = [6]Axial{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (a Axial) Neighbors() [6]Axial {
	var out [6]Axial
	for i, d := range hexDirections {
		out[i] = Axial{Q: a.Q + d.Q, R: a.R + d.R}
	}
	return out
}

// HexDistance returns the hex distance between two coordinates: the
// max of the three absolute cube-coordinate differences.
func HexDistance(a, b Axial) int {
	dq := intAbs(a.Q - b.Q)
	dr := intAbs(a.R - b.R)
	ds := intAbs(a.S() - b.S())
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// ToPlane converts a hex coordinate to continuous cartesian space for
// noise sampling: x = q + r/2, y = r·√3/2.
func (a Axial) ToPlane() (x, y float64) {
	return float64(a.Q) + float64(a.R)*0.5, float64(a.R) * math.Sqrt(3) / 2
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// HexGrid is a sparse-keyed hex grid. It always holds exactly one cell
// for every coordinate with max(|q|,|r|,|s|) <= radius; tiles that were
// removed or never placed are Empty cells, never absent entries.
type HexGrid struct {
	radius int
	cells  map[Axial]Cell
}

// HexCellCount returns the number of coordinates within a radius:
// 3·r·(r+1) + 1.
func HexCellCount(radius int) int {
	return 3*radius*(radius+1) + 1
}

// ClampHexRadius applies the hard radius cap.
func ClampHexRadius(radius int) int {
	if radius > MaxHexRadius {
		return MaxHexRadius
	}
	return radius
}

// NewHex creates a hex grid of the given radius with default cells at
// every in-radius coordinate. The radius is capped at MaxHexRadius.
func NewHex(radius int) (*HexGrid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("grid: invalid hex radius %d", radius)
	}
	radius = ClampHexRadius(radius)
	cells := make(map[Axial]Cell, HexCellCount(radius))
	def := DefaultCell()
	forEachInRadius(radius, func(c Axial) {
		cells[c] = def
	})
	return &HexGrid{radius: radius, cells: cells}, nil
}

// forEachInRadius visits every axial coordinate within radius:
// iterate the bounding rhombus and skip coordinates whose max cube
// component exceeds the radius.
func forEachInRadius(radius int, fn func(Axial)) {
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := Axial{Q: q, R: r}
			if HexDistance(c, Axial{}) <= radius {
				fn(c)
			}
		}
	}
}

// Radius returns the configured grid radius.
func (g *HexGrid) Radius() int { return g.radius }

// CellCount returns the number of coordinates in the grid, Empty cells
// included.
func (g *HexGrid) CellCount() int { return len(g.cells) }

// InBounds reports whether the coordinate lies within the radius.
func (g *HexGrid) InBounds(c Axial) bool {
	return HexDistance(c, Axial{}) <= g.radius
}

// At returns the cell at the coordinate and whether it is in bounds.
func (g *HexGrid) At(c Axial) (Cell, bool) {
	cell, ok := g.cells[c]
	return cell, ok
}

// Coords visits every coordinate/cell pair. Iteration order is
// unspecified (map order).
func (g *HexGrid) Coords(fn func(Axial, Cell)) {
	for c, cell := range g.cells {
		fn(c, cell)
	}
}

// Clone returns a deep copy of the grid.
func (g *HexGrid) Clone() Grid {
	cells := make(map[Axial]Cell, len(g.cells))
	for c, cell := range g.cells {
		cells[c] = cell
	}
	return &HexGrid{radius: g.radius, cells: cells}
}

// Fill sets every non-Empty-relevant attribute across the grid. As on
// rectangular grids, terrain fills reset heights to the terrain's base
// height; height fills preserve terrain. Empty sentinel cells are
// filled like any other cell: fill is total over the coordinate set.
func (g *HexGrid) Fill(tool Tool, terrain TerrainID, height int) Grid {
	cells := make(map[Axial]Cell, len(g.cells))
	switch tool {
	case ToolTerrain:
		h := BaseHeight(terrain)
		for c, cell := range g.cells {
			cell.Terrain = terrain
			cell.Height = h
			cells[c] = cell
		}
	default: // ToolHeight
		h := ClampHeight(height)
		for c, cell := range g.cells {
			cell.Height = h
			cells[c] = cell
		}
	}
	return &HexGrid{radius: g.radius, cells: cells}
}

// Resize returns a grid with the new radius (capped at MaxHexRadius),
// preserving cells at coordinates present in both grids. New
// coordinates get default cells. Resizing to the current radius
// returns the receiver unchanged.
func (g *HexGrid) Resize(radius int) (*HexGrid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("grid: invalid hex radius %d", radius)
	}
	radius = ClampHexRadius(radius)
	if radius == g.radius {
		return g, nil
	}
	cells := make(map[Axial]Cell, HexCellCount(radius))
	def := DefaultCell()
	forEachInRadius(radius, func(c Axial) {
		if cell, ok := g.cells[c]; ok {
			cells[c] = cell
		} else {
			cells[c] = def
		}
	})
	return &HexGrid{radius: radius, cells: cells}, nil
}

// WithCells applies a batch of coordinate writes in one pass,
// returning a new grid. Out-of-bounds coordinates are skipped. An
// empty batch returns the receiver.
func (g *HexGrid) WithCells(changes map[Axial]Cell) *HexGrid {
	if len(changes) == 0 {
		return g
	}
	cells := make(map[Axial]Cell, len(g.cells))
	for c, cell := range g.cells {
		cells[c] = cell
	}
	for c, cell := range changes {
		if g.InBounds(c) {
			cells[c] = cell
		}
	}
	return &HexGrid{radius: g.radius, cells: cells}
}

// Equal reports whether two hex grids have the same radius and cells.
func (g *HexGrid) Equal(o *HexGrid) bool {
	if o == nil || g.radius != o.radius || len(g.cells) != len(o.cells) {
		return false
	}
	for c, cell := range g.cells {
		other, ok := o.cells[c]
		if !ok || !cell.Equal(other) {
			return false
		}
	}
	return true
}
