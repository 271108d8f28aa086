package gen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/talgya/mapforge/internal/grid"
	"github.com/talgya/mapforge/internal/noise"
)

// Field seeds are offset per channel so the four fields of one run are
// independent but all derive from the single map seed.
const (
	seedOffsetMoisture    = 1000
	seedOffsetTemperature = 2000
	seedOffsetRoads       = 3000
)

const baseNoiseScale = 12.0

// GenerateRect synthesizes a width×height rectangular grid. Pure with
// respect to external state: the only inputs are the dimensions,
// params, and mode, and identical inputs yield identical grids.
func GenerateRect(width, height int, p Params, mode Mode) (*grid.RectGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gen: invalid dimensions %dx%d", width, height)
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	p = p.Clamped()
	rng := p.rng()
	seed := p.SeedValue()
	cls := classifierFor(mode, p)

	var elev, moist, temp, roads [][]float64
	scale := baseNoiseScale * p.TerrainScale
	switch mode {
	case ModeRandom:
		// No spatial coherence: no fields, no rivers, no overlays.
	case ModeIsland, ModeBiomes:
		elev = noise.NewSimplex(seed).SampleField(width, height, scale, 4, 0.5)
		moist = noise.NewSimplex(seed + seedOffsetMoisture).SampleField(width, height, scale, 3, 0.5)
		temp = noise.NewSimplex(seed + seedOffsetTemperature).SampleField(width, height, scale, 3, 0.5)
		roads = noise.NewSimplex(seed + seedOffsetRoads).SampleField(width, height, scale*2, 2, 0.5)
	default:
		elev = noise.Sample(fieldParams(width, height, scale, 4, seed))
		moist = noise.Sample(fieldParams(width, height, scale, 3, seed+seedOffsetMoisture))
		temp = noise.Sample(fieldParams(width, height, scale, 3, seed+seedOffsetTemperature))
		roads = noise.Sample(fieldParams(width, height, scale*2, 2, seed+seedOffsetRoads))
	}

	if mode == ModeIsland {
		shapeIsland(elev)
	}

	rows := make([][]grid.Cell, height)
	for r := 0; r < height; r++ {
		rows[r] = make([]grid.Cell, width)
		for c := 0; c < width; c++ {
			var e, m, t float64
			if elev != nil {
				e, m, t = elev[r][c], moist[r][c], temp[r][c]
			}
			terrain, h := cls.classify(e, m, t, rng)
			cell := grid.Cell{Terrain: terrain, Height: h}
			if roads != nil {
				cell = overlayRoad(cell, roads[r][c])
			}
			rows[r][c] = cell
		}
	}

	if mode != ModeRandom {
		seedBuildingsRect(rows, rng, p.BuildingsDensity)
		carveRiversRect(rows, elev, rng, p.numRivers())
		cleanupRect(rows, rng)
	}

	g, err := grid.RectFromRows(rows)
	if err != nil {
		return nil, err
	}
	if mode == ModeRandom {
		return g, nil
	}
	return Smooth(g), nil
}

// GenerateHex synthesizes a hex grid of the given radius (capped at
// grid.MaxHexRadius). Cells are sampled at their cartesian projection
// so noise features cross hex rows naturally.
func GenerateHex(radius int, p Params, mode Mode) (*grid.HexGrid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("gen: invalid hex radius %d", radius)
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	radius = grid.ClampHexRadius(radius)
	p = p.Clamped()
	rng := p.rng()
	seed := p.SeedValue()
	cls := classifierFor(mode, p)

	blank, err := grid.NewHex(radius)
	if err != nil {
		return nil, err
	}
	coords := make([]grid.Axial, 0, blank.CellCount())
	blank.Coords(func(c grid.Axial, _ grid.Cell) {
		coords = append(coords, c)
	})
	coords = sortAxials(coords)

	freq := 0.08 / p.TerrainScale
	var simplexE, simplexM, simplexT, simplexR *noise.Simplex
	if mode == ModeIsland || mode == ModeBiomes {
		simplexE = noise.NewSimplex(seed)
		simplexM = noise.NewSimplex(seed + seedOffsetMoisture)
		simplexT = noise.NewSimplex(seed + seedOffsetTemperature)
		simplexR = noise.NewSimplex(seed + seedOffsetRoads)
	}

	sample := func(c grid.Axial, s *noise.Simplex, offset int64, octaves int) float64 {
		x, y := c.ToPlane()
		if s != nil {
			return s.At(x, y, octaves, freq, 0.5)
		}
		return noise.At(x*freq, y*freq, seed+offset, octaves, 0.5, 2.0)
	}

	elev := make(map[grid.Axial]float64, len(coords))
	moist := make(map[grid.Axial]float64, len(coords))
	temp := make(map[grid.Axial]float64, len(coords))
	roadCh := make(map[grid.Axial]float64, len(coords))
	if mode != ModeRandom {
		for _, c := range coords {
			elev[c] = sample(c, simplexE, 0, 4)
			moist[c] = sample(c, simplexM, seedOffsetMoisture, 3)
			temp[c] = sample(c, simplexT, seedOffsetTemperature, 3)
			roadCh[c] = sample(c, simplexR, seedOffsetRoads, 2)
		}
		normalizeHexField(elev, coords)
		normalizeHexField(moist, coords)
		normalizeHexField(temp, coords)

		if mode == ModeIsland {
			for _, c := range coords {
				x, y := c.ToPlane()
				dist := math.Sqrt(x*x+y*y) / (float64(radius) + 1)
				elev[c] = islandFalloff(elev[c], dist)
			}
		}
	}

	cells := make(map[grid.Axial]grid.Cell, len(coords))
	for _, c := range coords {
		terrain, h := cls.classify(elev[c], moist[c], temp[c], rng)
		cell := grid.Cell{Terrain: terrain, Height: h}
		if mode != ModeRandom {
			cell = overlayRoad(cell, roadCh[c])
		}
		cells[c] = cell
	}

	if mode != ModeRandom {
		seedBuildingsHex(cells, rng, p.BuildingsDensity)
		carveRiversHex(cells, elev, radius, rng, p.numRivers())
		cleanupHex(cells, rng)
	}

	g, err := grid.HexFromCells(radius, cells)
	if err != nil {
		return nil, err
	}
	if mode == ModeRandom {
		return g, nil
	}
	return SmoothHex(g), nil
}

func fieldParams(width, height int, scale float64, octaves int, seed int64) noise.Params {
	return noise.Params{
		Width:       width,
		Height:      height,
		Scale:       scale,
		Octaves:     octaves,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Seed:        seed,
	}
}

// shapeIsland pushes elevation down toward the field edges, leaving an
// ocean border around a central landmass.
func shapeIsland(elev [][]float64) {
	height := len(elev)
	if height == 0 {
		return
	}
	width := len(elev[0])
	cr := float64(height-1) / 2
	cc := float64(width-1) / 2
	half := math.Max(cr, cc)
	if half == 0 {
		half = 1
	}
	for r := range elev {
		for c := range elev[r] {
			dr := (float64(r) - cr) / half
			dc := (float64(c) - cc) / half
			elev[r][c] = islandFalloff(elev[r][c], math.Sqrt(dr*dr+dc*dc))
		}
	}
}

// buildingChance scales the configured density down to a per-cell
// seeding probability.
const buildingChanceScale = 0.1

// seedBuildingsRect converts qualifying field cells to buildings at a
// low seeded probability. A cell qualifies when none of its neighbors
// disqualify it (water, road, or an already placed building).
func seedBuildingsRect(rows [][]grid.Cell, rng *rand.Rand, density float64) {
	if density <= 0 {
		return
	}
	height := len(rows)
	width := len(rows[0])
	chance := density * buildingChanceScale
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			if rows[r][c].Terrain != grid.Field {
				continue
			}
			ok := true
			for _, d := range rect8 {
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= height || nc < 0 || nc >= width {
					continue
				}
				switch rows[nr][nc].Terrain {
				case grid.Water, grid.Road, grid.Buildings:
					ok = false
				}
			}
			if ok && rng.Float64() < chance {
				rows[r][c].Terrain = grid.Buildings
			}
		}
	}
}

func seedBuildingsHex(cells map[grid.Axial]grid.Cell, rng *rand.Rand, density float64) {
	if density <= 0 {
		return
	}
	chance := density * buildingChanceScale
	for _, c := range sortedCoords(cells) {
		cell := cells[c]
		if cell.Terrain != grid.Field {
			continue
		}
		ok := true
		for _, nc := range c.Neighbors() {
			if n, exists := cells[nc]; exists {
				switch n.Terrain {
				case grid.Water, grid.Road, grid.Buildings:
					ok = false
				}
			}
		}
		if ok && rng.Float64() < chance {
			cell.Terrain = grid.Buildings
			cells[c] = cell
		}
	}
}

// normalizeHexField min-max rescales a sampled hex field to [0, 1];
// a zero-variance field becomes constant 0.5, matching the dense-field
// normalization contract.
func normalizeHexField(field map[grid.Axial]float64, coords []grid.Axial) {
	if len(coords) == 0 {
		return
	}
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, c := range coords {
		v := field[c]
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	for _, c := range coords {
		if span == 0 {
			field[c] = 0.5
		} else {
			field[c] = (field[c] - min) / span
		}
	}
}

func sortAxials(coords []grid.Axial) []grid.Axial {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Q != coords[j].Q {
			return coords[i].Q < coords[j].Q
		}
		return coords[i].R < coords[j].R
	})
	return coords
}
