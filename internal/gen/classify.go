package gen

import (
	"math"
	"math/rand"

	"github.com/talgya/mapforge/internal/grid"
)

// classifier maps one cell's environmental scalars to a terrain type
// and height. Strategies are swappable per generator mode and never
// touch the grid directly; spatial shaping (island falloff) happens on
// the elevation field before classification.
type classifier interface {
	classify(elev, moist, temp float64, rng *rand.Rand) (grid.TerrainID, int)
}

func classifierFor(mode Mode, p Params) classifier {
	switch mode {
	case ModeBiomes:
		return &biomeMatrix{p: p}
	case ModeRandom:
		return &randomTable{p: p}
	default:
		// procedural and island share the ladder; island differs only
		// in field shaping.
		return &ladder{p: p}
	}
}

// bandHeight derives a cell height from elevation with a per-band
// multiplier and floor. Higher bands use larger multipliers and
// floors, so at equal elevation a higher band never produces a lower
// height than a lower band.
func bandHeight(elev, multiplier float64, floor int) int {
	h := int(math.Round(elev * multiplier))
	if h < floor {
		h = floor
	}
	return grid.ClampHeight(h)
}

// ladder is the ordered elevation/moisture decision ladder used by the
// procedural and island modes. First matching band wins.
type ladder struct {
	p Params
}

func (l *ladder) classify(elev, moist, _ float64, _ *rand.Rand) (grid.TerrainID, int) {
	p := l.p
	switch {
	case elev < p.WaterLevel:
		return grid.Water, grid.MinHeight
	case elev < p.WaterLevel+0.04:
		return grid.Sand, bandHeight(elev, 2, 1)
	case elev > p.MountainsLevel:
		return grid.Mountains, bandHeight(elev, 9, 5)
	case elev > p.MountainsLevel-0.08-0.15*p.HillsDensity:
		return grid.Hills, bandHeight(elev, 6, 3)
	case moist > 1-0.5*p.SwampDensity && elev < 0.45:
		return grid.Swamp, bandHeight(elev, 2, 1)
	case moist > 1-0.8*p.ForestDensity:
		return grid.Forest, bandHeight(elev, 4, 1)
	default:
		return grid.Field, bandHeight(elev, 3, 1)
	}
}

// biomeMatrix classifies through elevation bands first, then a
// temperature×moisture matrix inside the habitable band.
type biomeMatrix struct {
	p Params
}

func (b *biomeMatrix) classify(elev, moist, temp float64, _ *rand.Rand) (grid.TerrainID, int) {
	p := b.p
	switch {
	case elev < p.WaterLevel:
		return grid.Water, grid.MinHeight
	case elev > p.MountainsLevel:
		if temp < 0.3 {
			return grid.Snow, bandHeight(elev, 9, 5)
		}
		return grid.Mountains, bandHeight(elev, 9, 5)
	case temp < 0.25:
		return grid.Snow, bandHeight(elev, 4, 1)
	case temp > 0.7 && moist < 0.3:
		return grid.Sand, bandHeight(elev, 2, 1)
	case moist > 0.85-0.25*p.SwampDensity && temp > 0.45 && elev < 0.5:
		return grid.Swamp, bandHeight(elev, 2, 1)
	case moist > 0.75-0.4*p.ForestDensity:
		return grid.Forest, bandHeight(elev, 4, 1)
	case elev > p.MountainsLevel-0.08-0.15*p.HillsDensity:
		return grid.Hills, bandHeight(elev, 6, 3)
	default:
		return grid.Field, bandHeight(elev, 3, 1)
	}
}

// randomTable ignores the noise fields entirely: terrain per cell is
// drawn from a seeded weighted table biased by the level knobs.
type randomTable struct {
	p Params
}

func (r *randomTable) classify(_, _, _ float64, rng *rand.Rand) (grid.TerrainID, int) {
	p := r.p
	roll := rng.Float64()
	switch {
	case roll < p.WaterLevel*0.3:
		return grid.Water, grid.MinHeight
	case roll < p.WaterLevel*0.3+p.MountainsLevel*0.1:
		return grid.Mountains, 5 + rng.Intn(4)
	case roll < p.WaterLevel*0.3+p.MountainsLevel*0.1+p.HillsDensity*0.15:
		return grid.Hills, 3 + rng.Intn(3)
	case roll < p.WaterLevel*0.3+p.MountainsLevel*0.1+p.HillsDensity*0.15+p.ForestDensity*0.25:
		return grid.Forest, 1 + rng.Intn(3)
	case roll < p.WaterLevel*0.3+p.MountainsLevel*0.1+p.HillsDensity*0.15+p.ForestDensity*0.25+p.SwampDensity*0.1:
		return grid.Swamp, 1 + rng.Intn(2)
	default:
		return grid.Field, 1 + rng.Intn(2)
	}
}

// islandFalloff reshapes an elevation value by distance from the map
// center, pushing edges below sea level. dist is the normalized
// [0, ~1.4] distance from center.
func islandFalloff(elev, dist float64) float64 {
	falloff := 1 - math.Pow(dist, 3.5)
	if falloff < 0 {
		falloff = 0
	}
	return elev * falloff
}

// roadWindow is the half-width of the band around the road channel's
// midpoint that becomes road surface.
const roadWindow = 0.02

// roadHeightDelta recesses road cells below the surrounding terrain.
const roadHeightDelta = 1

// overlayRoad turns a classified cell into road when the road channel
// value sits inside the midpoint window. Water is left alone so roads
// never bridge rivers or lakes.
func overlayRoad(cell grid.Cell, channel float64) grid.Cell {
	if cell.Terrain == grid.Water || cell.Terrain == grid.Empty {
		return cell
	}
	if math.Abs(channel-0.5) >= roadWindow {
		return cell
	}
	cell.Terrain = grid.Road
	h := cell.Height - roadHeightDelta
	if h < grid.MinHeight {
		h = grid.MinHeight
	}
	cell.Height = h
	return cell
}
