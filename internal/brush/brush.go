// Package brush applies localized, shape-aware edits to a grid:
// circular hard brushes and soft brushes with configurable distance
// falloff. Changed cells are computed first and applied in one batched
// pass so only touched rows are copied, never the whole grid.
package brush

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/mapforge/internal/grid"
)

// Type selects hard or soft application.
type Type string

const (
	TypeNormal Type = "normal"
	TypeSoft   Type = "soft"
)

// Falloff names a soft-brush weight profile.
type Falloff string

const (
	FalloffLinear    Falloff = "linear"
	FalloffQuadratic Falloff = "quadratic"
	FalloffGaussian  Falloff = "gaussian"
	FalloffPlateau   Falloff = "plateau"
)

// Strength domain for soft brushes. Values outside are clamped, not
// rejected.
const (
	MinStrength = 0.1
	MaxStrength = 1.0
)

// weightEpsilon: cells whose falloff weight drops below this are
// skipped entirely rather than blended by a negligible amount.
const weightEpsilon = 0.01

// ErrBadSize reports an invalid brush size (must be an odd integer
// >= 1, the brush diameter).
var ErrBadSize = errors.New("brush: size must be an odd integer >= 1")

// SoftSettings configures a soft brush.
type SoftSettings struct {
	Falloff  Falloff
	Strength float64
}

// Config describes one brush application.
type Config struct {
	Tool    grid.Tool
	Terrain grid.TerrainID // terrain tool
	Height  int            // height tool target
	Size    int            // diameter, odd, >= 1
	Type    Type
	Soft    SoftSettings
}

func (c Config) validate() error {
	if c.Size < 1 || c.Size%2 == 0 {
		return fmt.Errorf("%w: got %d", ErrBadSize, c.Size)
	}
	switch c.Tool {
	case grid.ToolTerrain, grid.ToolHeight:
	default:
		return fmt.Errorf("brush: unknown tool %q", c.Tool)
	}
	if c.Type == TypeSoft {
		switch c.Soft.Falloff {
		case FalloffLinear, FalloffQuadratic, FalloffGaussian, FalloffPlateau:
		default:
			return fmt.Errorf("brush: unknown falloff %q", c.Soft.Falloff)
		}
	}
	return nil
}

// weight computes the soft-brush blend weight for a normalized
// distance d in [0, 1].
func weight(d float64, falloff Falloff, strength float64) float64 {
	s := strength
	if s < MinStrength {
		s = MinStrength
	}
	if s > MaxStrength {
		s = MaxStrength
	}
	switch falloff {
	case FalloffQuadratic:
		return math.Max(0, 1-d*d) * s
	case FalloffGaussian:
		return math.Exp(-4*d*d) * s
	case FalloffPlateau:
		if d < 0.5 {
			return s
		}
		return math.Max(0, 1-(d-0.5)*2) * s
	default: // linear
		return math.Max(0, 1-d) * s
	}
}

// Apply paints one brush stamp centered on (row, col) of a
// rectangular grid and returns the resulting grid. The input grid is
// never mutated; on validation failure it is returned untouched with
// the error.
func Apply(g *grid.RectGrid, row, col int, cfg Config) (*grid.RectGrid, error) {
	if err := cfg.validate(); err != nil {
		return g, err
	}
	if !g.InBounds(row, col) {
		return g, fmt.Errorf("brush: center (%d,%d) outside %dx%d grid", row, col, g.Width(), g.Height())
	}

	radius := cfg.Size / 2
	var changes []grid.CellChange
	for r := row - radius; r <= row+radius; r++ {
		for c := col - radius; c <= col+radius; c++ {
			if !g.InBounds(r, c) {
				continue
			}
			dr, dc := float64(r-row), float64(c-col)
			dist := math.Sqrt(dr*dr + dc*dc)
			// Circular stamp: size 1 hits only the center; larger
			// sizes hit cells whose rounded Euclidean distance is
			// within the radius, so a size-3 brush covers the full
			// 3x3 block (diagonals at sqrt(2) round to 1) while a
			// size-5 brush still excludes the bounding-square
			// corners.
			if cfg.Size > 1 && math.Round(dist) > float64(radius) {
				continue
			}
			cur := g.At(r, c)
			next, changed := paintCell(cur, dist, radius, cfg)
			if changed {
				changes = append(changes, grid.CellChange{Row: r, Col: c, Cell: next})
			}
		}
	}
	return g.WithCells(changes), nil
}

// ApplyHex paints a brush stamp on a hex grid using cube distance for
// containment. Height edits skip Empty cells (there is no tile to
// raise); terrain edits may paint over Empty, which is how tiles are
// added, and painting Empty itself erases tiles.
func ApplyHex(g *grid.HexGrid, center grid.Axial, cfg Config) (*grid.HexGrid, error) {
	if err := cfg.validate(); err != nil {
		return g, err
	}
	if !g.InBounds(center) {
		return g, fmt.Errorf("brush: center %d,%d outside radius %d", center.Q, center.R, g.Radius())
	}

	radius := cfg.Size / 2
	changes := make(map[grid.Axial]grid.Cell)
	g.Coords(func(c grid.Axial, cur grid.Cell) {
		d := grid.HexDistance(c, center)
		if d > radius {
			return
		}
		if cfg.Tool == grid.ToolHeight && cur.Terrain == grid.Empty {
			return
		}
		next, changed := paintCell(cur, float64(d), radius, cfg)
		if changed {
			changes[c] = next
		}
	})
	return g.WithCells(changes), nil
}

// paintCell computes the new value for one in-stamp cell. Terrain is a
// discrete label and is never blended: soft weighting applies to
// height painting only.
func paintCell(cur grid.Cell, dist float64, radius int, cfg Config) (grid.Cell, bool) {
	next := cur
	switch cfg.Tool {
	case grid.ToolTerrain:
		next.Terrain = cfg.Terrain
		next.Height = grid.BaseHeight(cfg.Terrain)
		if cfg.Terrain == grid.Empty {
			next.Unit = nil
		}
	default: // grid.ToolHeight
		target := grid.ClampHeight(cfg.Height)
		if cfg.Type == TypeSoft {
			d := 1.0
			if radius > 0 {
				d = math.Min(dist/float64(radius), 1)
			} else {
				d = 0
			}
			w := weight(d, cfg.Soft.Falloff, cfg.Soft.Strength)
			if w < weightEpsilon {
				return cur, false
			}
			blended := float64(cur.Height) + (float64(target)-float64(cur.Height))*w
			next.Height = grid.ClampHeight(int(math.Round(blended)))
		} else {
			next.Height = target
		}
	}
	if next.Equal(cur) {
		return cur, false
	}
	return next, true
}
