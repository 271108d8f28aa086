// Package gen synthesizes terrain grids: noise-driven classification
// strategies per generator mode, river carving, and post-processing
// smoothing. Every stochastic step draws from a single RNG derived
// from the seed, so a map regenerates exactly from (params, mode).
package gen

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Mode selects the classification strategy for a generation run.
type Mode string

const (
	// ModeProcedural is the canonical mode: value-noise fields through
	// the ordered elevation/moisture ladder.
	ModeProcedural Mode = "procedural"
	// ModeIsland applies a radial falloff to elevation so land sits in
	// an ocean border; simplex-backed fields.
	ModeIsland Mode = "island"
	// ModeBiomes classifies through a temperature×moisture matrix.
	ModeBiomes Mode = "biomes"
	// ModeRandom assigns terrain per cell by seeded probability alone,
	// with no spatial coherence.
	ModeRandom Mode = "random"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeProcedural, ModeIsland, ModeBiomes, ModeRandom:
		return Mode(s), nil
	}
	return "", fmt.Errorf("gen: unknown mode %q", s)
}

// Params holds the generation knobs. All numeric fields are clamped
// to their domain before use; out-of-range values are soft errors.
type Params struct {
	Seed             string  // hashed to the RNG seed; "" is a valid (fixed) seed
	TerrainScale     float64 // noise feature size multiplier, (0, 8]
	WaterLevel       float64 // elevation threshold for water, [0, 1]
	MountainsLevel   float64 // elevation threshold for mountains, [0, 1]
	ForestDensity    float64 // moisture bias toward forest, [0, 1]
	SwampDensity     float64 // moisture bias toward swamp, [0, 1]
	BuildingsDensity float64 // building seeding probability bias, [0, 1]
	HillsDensity     float64 // elevation bias toward hills, [0, 1]
}

// DefaultParams returns a balanced starting configuration.
func DefaultParams() Params {
	return Params{
		TerrainScale:     1.0,
		WaterLevel:       0.3,
		MountainsLevel:   0.75,
		ForestDensity:    0.5,
		SwampDensity:     0.3,
		BuildingsDensity: 0.1,
		HillsDensity:     0.4,
	}
}

// Clamped returns a copy with every field forced into its domain.
func (p Params) Clamped() Params {
	p.TerrainScale = clamp(p.TerrainScale, 0.05, 8)
	p.WaterLevel = clamp(p.WaterLevel, 0, 1)
	p.MountainsLevel = clamp(p.MountainsLevel, 0, 1)
	p.ForestDensity = clamp(p.ForestDensity, 0, 1)
	p.SwampDensity = clamp(p.SwampDensity, 0, 1)
	p.BuildingsDensity = clamp(p.BuildingsDensity, 0, 1)
	p.HillsDensity = clamp(p.HillsDensity, 0, 1)
	return p
}

// SeedValue hashes the seed string to a deterministic int64 (FNV-1a).
// The empty string is a valid, fixed seed; callers wanting a fresh map
// supply their own random string.
func (p Params) SeedValue() int64 {
	h := fnv.New64a()
	h.Write([]byte(p.Seed))
	return int64(h.Sum64())
}

// rng returns the single random source for a generation run.
func (p Params) rng() *rand.Rand {
	return rand.New(rand.NewSource(p.SeedValue()))
}

// numRivers derives the river count from the water level; always at
// least one.
func (p Params) numRivers() int {
	n := 1 + int(p.WaterLevel*4)
	if n < 1 {
		n = 1
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
