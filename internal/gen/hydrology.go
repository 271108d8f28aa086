package gen

import (
	"math/rand"

	"github.com/talgya/mapforge/internal/grid"
)

// Shoreline and lake tuning. Rivers carve water at minimum height and
// sprinkle swamp banks beside the channel; some rivers end in a lake.
const (
	swampBankChance = 0.35
	lakeChance      = 0.3
	lakeRadiusMin   = 2
	lakeRadiusMax   = 4
)

// rect8 is the 8-neighborhood used by rectangular walks and smoothing.
var rect8 = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// carveRiversRect traces numRivers downhill walks over the working
// cell rows, carving water and swamp shorelines. Sources are picked by
// approximate-max search: 100 random candidates, keep the highest.
// The walk is bounded by the grid width so flat terrain cannot produce
// runaway paths; a source that is already a local minimum yields a
// single-cell river, which is accepted behavior.
func carveRiversRect(rows [][]grid.Cell, elev [][]float64, rng *rand.Rand, numRivers int) {
	height := len(rows)
	if height == 0 {
		return
	}
	width := len(rows[0])

	for i := 0; i < numRivers; i++ {
		srcRow, srcCol := 0, 0
		best := -1.0
		for trial := 0; trial < 100; trial++ {
			r := rng.Intn(height)
			c := rng.Intn(width)
			if elev[r][c] > best {
				best = elev[r][c]
				srcRow, srcCol = r, c
			}
		}

		row, col := srcRow, srcCol
		maxSteps := width
		for step := 0; step < maxSteps; step++ {
			carveWaterRect(rows, row, col, rng)

			nextRow, nextCol := row, col
			lowest := elev[row][col]
			for _, d := range rect8 {
				nr, nc := row+d[0], col+d[1]
				if nr < 0 || nr >= height || nc < 0 || nc >= width {
					continue
				}
				if elev[nr][nc] < lowest {
					lowest = elev[nr][nc]
					nextRow, nextCol = nr, nc
				}
			}
			if nextRow == row && nextCol == col {
				break // local minimum
			}
			row, col = nextRow, nextCol
		}

		if rng.Float64() < lakeChance {
			growLakeRect(rows, row, col, lakeRadiusMin+rng.Intn(lakeRadiusMax-lakeRadiusMin+1))
		}
	}
}

// carveWaterRect sets one cell to water and probabilistically converts
// its dry neighbors to swamp banks.
func carveWaterRect(rows [][]grid.Cell, row, col int, rng *rand.Rand) {
	rows[row][col].Terrain = grid.Water
	rows[row][col].Height = grid.MinHeight
	for _, d := range rect8 {
		nr, nc := row+d[0], col+d[1]
		if nr < 0 || nr >= len(rows) || nc < 0 || nc >= len(rows[0]) {
			continue
		}
		n := &rows[nr][nc]
		if n.Terrain == grid.Water {
			continue
		}
		if rng.Float64() < swampBankChance {
			n.Terrain = grid.Swamp
			if n.Height > 1 {
				n.Height = 1
			}
		}
	}
}

// growLakeRect floods a disc of the given radius around the terminal
// cell and rings it with swamp.
func growLakeRect(rows [][]grid.Cell, row, col, radius int) {
	height := len(rows)
	width := len(rows[0])
	for r := row - radius - 1; r <= row+radius+1; r++ {
		for c := col - radius - 1; c <= col+radius+1; c++ {
			if r < 0 || r >= height || c < 0 || c >= width {
				continue
			}
			dr, dc := r-row, c-col
			d2 := dr*dr + dc*dc
			switch {
			case d2 <= radius*radius:
				rows[r][c].Terrain = grid.Water
				rows[r][c].Height = grid.MinHeight
			case d2 <= (radius+1)*(radius+1) && rows[r][c].Terrain != grid.Water:
				rows[r][c].Terrain = grid.Swamp
				if rows[r][c].Height > 1 {
					rows[r][c].Height = 1
				}
			}
		}
	}
}

// carveRiversHex is the hex variant: 6-neighbor walks over the cell
// map, path length bounded by the grid diameter.
func carveRiversHex(cells map[grid.Axial]grid.Cell, elev map[grid.Axial]float64, radius int, rng *rand.Rand, numRivers int) {
	// Stable candidate order keeps the run reproducible from the seed;
	// map iteration order would not be.
	coords := sortedCoords(cells)
	if len(coords) == 0 {
		return
	}

	for i := 0; i < numRivers; i++ {
		src := coords[0]
		best := -1.0
		for trial := 0; trial < 100; trial++ {
			c := coords[rng.Intn(len(coords))]
			if elev[c] > best {
				best = elev[c]
				src = c
			}
		}

		cur := src
		maxSteps := 2*radius + 1
		for step := 0; step < maxSteps; step++ {
			carveWaterHex(cells, cur, rng)

			next := cur
			lowest := elev[cur]
			for _, nc := range cur.Neighbors() {
				if _, ok := cells[nc]; !ok {
					continue
				}
				if elev[nc] < lowest {
					lowest = elev[nc]
					next = nc
				}
			}
			if next == cur {
				break // local minimum
			}
			cur = next
		}

		if rng.Float64() < lakeChance {
			growLakeHex(cells, cur, lakeRadiusMin+rng.Intn(lakeRadiusMax-lakeRadiusMin+1))
		}
	}
}

func carveWaterHex(cells map[grid.Axial]grid.Cell, at grid.Axial, rng *rand.Rand) {
	cell := cells[at]
	cell.Terrain = grid.Water
	cell.Height = grid.MinHeight
	cells[at] = cell
	for _, nc := range at.Neighbors() {
		n, ok := cells[nc]
		if !ok || n.Terrain == grid.Water || n.Terrain == grid.Empty {
			continue
		}
		if rng.Float64() < swampBankChance {
			n.Terrain = grid.Swamp
			if n.Height > 1 {
				n.Height = 1
			}
			cells[nc] = n
		}
	}
}

func growLakeHex(cells map[grid.Axial]grid.Cell, center grid.Axial, radius int) {
	for c, cell := range cells {
		if cell.Terrain == grid.Empty {
			continue
		}
		d := grid.HexDistance(c, center)
		switch {
		case d <= radius:
			cell.Terrain = grid.Water
			cell.Height = grid.MinHeight
			cells[c] = cell
		case d == radius+1 && cell.Terrain != grid.Water:
			cell.Terrain = grid.Swamp
			if cell.Height > 1 {
				cell.Height = 1
			}
			cells[c] = cell
		}
	}
}
