package gen

import (
	"math"
	"math/rand"

	"github.com/talgya/mapforge/internal/grid"
)

// Smooth softens height transitions on a rectangular grid: each
// interior cell that is neither water nor road takes the height
// floor((own + avg(eligible 8-neighbors)) / 2), where eligible
// neighbors are themselves non-water, non-road. Water keeps its sharp
// edges and roads stay flat. Single pass, pure: the input grid is not
// mutated and all averages read pre-pass heights.
func Smooth(g *grid.RectGrid) *grid.RectGrid {
	width, height := g.Width(), g.Height()
	rows := make([][]grid.Cell, height)
	for r := 0; r < height; r++ {
		rows[r] = make([]grid.Cell, width)
		for c := 0; c < width; c++ {
			rows[r][c] = g.At(r, c)
		}
	}

	for r := 1; r < height-1; r++ {
		for c := 1; c < width-1; c++ {
			cell := g.At(r, c)
			if cell.Terrain == grid.Water || cell.Terrain == grid.Road {
				continue
			}
			sum, n := 0, 0
			for _, d := range rect8 {
				nb := g.At(r+d[0], c+d[1])
				if nb.Terrain == grid.Water || nb.Terrain == grid.Road {
					continue
				}
				sum += nb.Height
				n++
			}
			if n == 0 {
				continue
			}
			avg := float64(sum) / float64(n)
			rows[r][c].Height = int(math.Floor((float64(cell.Height) + avg) / 2))
		}
	}

	out, _ := grid.RectFromRows(rows)
	return out
}

// SmoothHex is the hex variant of Smooth: interior cells are those
// with all six neighbors in bounds, and Empty cells are excluded both
// as targets and as neighbors.
func SmoothHex(g *grid.HexGrid) *grid.HexGrid {
	cells := make(map[grid.Axial]grid.Cell, g.CellCount())
	g.Coords(func(c grid.Axial, cell grid.Cell) {
		cells[c] = cell
	})

	g.Coords(func(c grid.Axial, cell grid.Cell) {
		if cell.Terrain == grid.Water || cell.Terrain == grid.Road || cell.Terrain == grid.Empty {
			return
		}
		sum, n := 0, 0
		for _, nc := range c.Neighbors() {
			nb, ok := g.At(nc)
			if !ok {
				return // edge cell, not interior
			}
			if nb.Terrain == grid.Water || nb.Terrain == grid.Road || nb.Terrain == grid.Empty {
				continue
			}
			sum += nb.Height
			n++
		}
		if n == 0 {
			return
		}
		avg := float64(sum) / float64(n)
		updated := cell
		updated.Height = int(math.Floor((float64(cell.Height) + avg) / 2))
		cells[c] = updated
	})

	out, _ := grid.HexFromCells(g.Radius(), cells)
	return out
}

// Shoreline/structure cleanup probabilities. Independent stochastic
// neighbor-count rules, applied once per generation in order; later
// rules see cells already modified by earlier ones.
const (
	bankChance        = 0.5  // ≥3 water neighbors → swamp bank
	skirtChance       = 0.25 // isolated mountain → hill skirt on neighbors
	swampForestChance = 0.15 // field beside ≥2 swamps → forest
)

func cleanupRect(rows [][]grid.Cell, rng *rand.Rand) {
	height := len(rows)
	if height == 0 {
		return
	}
	width := len(rows[0])

	count := func(r, c int, match func(grid.Cell) bool) int {
		n := 0
		for _, d := range rect8 {
			nr, nc := r+d[0], c+d[1]
			if nr < 0 || nr >= height || nc < 0 || nc >= width {
				continue
			}
			if match(rows[nr][nc]) {
				n++
			}
		}
		return n
	}

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			cell := &rows[r][c]
			switch {
			case cell.Terrain != grid.Water &&
				count(r, c, func(n grid.Cell) bool { return n.Terrain == grid.Water }) >= 3:
				if rng.Float64() < bankChance {
					cell.Terrain = grid.Swamp
					if cell.Height > 1 {
						cell.Height = 1
					}
				}
			case cell.Terrain == grid.Mountains &&
				count(r, c, func(n grid.Cell) bool { return n.Terrain != grid.Mountains }) >= 4:
				for _, d := range rect8 {
					nr, nc := r+d[0], c+d[1]
					if nr < 0 || nr >= height || nc < 0 || nc >= width {
						continue
					}
					n := &rows[nr][nc]
					if n.Terrain != grid.Mountains && n.Terrain != grid.Water && rng.Float64() < skirtChance {
						n.Terrain = grid.Hills
						if n.Height < 3 {
							n.Height = 3
						}
					}
				}
			case cell.Terrain == grid.Field &&
				count(r, c, func(n grid.Cell) bool { return n.Terrain == grid.Swamp }) >= 2:
				if rng.Float64() < swampForestChance {
					cell.Terrain = grid.Forest
				}
			}
		}
	}
}

func cleanupHex(cells map[grid.Axial]grid.Cell, rng *rand.Rand) {
	coords := sortedCoords(cells)

	count := func(at grid.Axial, match func(grid.Cell) bool) int {
		n := 0
		for _, nc := range at.Neighbors() {
			if nb, ok := cells[nc]; ok && match(nb) {
				n++
			}
		}
		return n
	}

	for _, c := range coords {
		cell := cells[c]
		if cell.Terrain == grid.Empty {
			continue
		}
		switch {
		case cell.Terrain != grid.Water &&
			count(c, func(n grid.Cell) bool { return n.Terrain == grid.Water }) >= 3:
			if rng.Float64() < bankChance {
				cell.Terrain = grid.Swamp
				if cell.Height > 1 {
					cell.Height = 1
				}
				cells[c] = cell
			}
		case cell.Terrain == grid.Mountains &&
			count(c, func(n grid.Cell) bool { return n.Terrain != grid.Mountains }) >= 4:
			for _, nc := range c.Neighbors() {
				n, ok := cells[nc]
				if !ok || n.Terrain == grid.Mountains || n.Terrain == grid.Water || n.Terrain == grid.Empty {
					continue
				}
				if rng.Float64() < skirtChance {
					n.Terrain = grid.Hills
					if n.Height < 3 {
						n.Height = 3
					}
					cells[nc] = n
				}
			}
		case cell.Terrain == grid.Field &&
			count(c, func(n grid.Cell) bool { return n.Terrain == grid.Swamp }) >= 2:
			if rng.Float64() < swampForestChance {
				cell.Terrain = grid.Forest
				cells[c] = cell
			}
		}
	}
}

// sortedCoords returns the map's coordinates in (q, r) order so that
// seeded passes visit cells deterministically.
func sortedCoords(cells map[grid.Axial]grid.Cell) []grid.Axial {
	coords := make([]grid.Axial, 0, len(cells))
	for c := range cells {
		coords = append(coords, c)
	}
	return sortAxials(coords)
}
