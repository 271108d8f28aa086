// Package noise generates seeded coherent 2D scalar fields for the
// terrain generator. The primary sampler is a value-noise field with
// smoothstep-eased bilinear interpolation; identical parameters always
// produce bit-identical output, so maps regenerate exactly from a
// shared seed.
package noise

import "math"

// Params configures one field sample.
type Params struct {
	Width, Height int
	Scale         float64 // feature size in cells; larger = smoother
	Octaves       int
	Persistence   float64 // amplitude falloff per octave
	Lacunarity    float64 // frequency growth per octave
	Seed          int64
}

// DefaultParams returns the octave settings the generator modes start
// from.
func DefaultParams(width, height int, seed int64) Params {
	return Params{
		Width:       width,
		Height:      height,
		Scale:       12,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Seed:        seed,
	}
}

// Sample produces a Height×Width field of values in [0, 1]. The raw
// octave sum is min-max normalized over the whole field, so every
// non-degenerate field contains an exact 0 and an exact 1. A field
// with zero variance normalizes to a constant 0.5.
func Sample(p Params) [][]float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return nil
	}
	if p.Scale <= 0 {
		p.Scale = 1
	}
	if p.Octaves < 1 {
		p.Octaves = 1
	}

	out := make([][]float64, p.Height)
	for r := range out {
		out[r] = make([]float64, p.Width)
	}

	min := math.Inf(1)
	max := math.Inf(-1)
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			var total float64
			for o := 0; o < p.Octaves; o++ {
				freq := math.Pow(p.Lacunarity, float64(o))
				amp := math.Pow(p.Persistence, float64(o))
				x := float64(col) / p.Scale * freq
				y := float64(row) / p.Scale * freq
				total += valueAt(x, y, p.Seed+int64(o)) * amp
			}
			out[row][col] = total
			if total < min {
				min = total
			}
			if total > max {
				max = total
			}
		}
	}

	span := max - min
	if span == 0 {
		for row := range out {
			for col := range out[row] {
				out[row][col] = 0.5
			}
		}
		return out
	}
	for row := range out {
		for col := range out[row] {
			out[row][col] = (out[row][col] - min) / span
		}
	}
	return out
}

// At samples a single continuous point without normalization. Used for
// hex grids, where cells are sampled at their cartesian projection
// rather than on an integer lattice.
func At(x, y float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	var total, maxAmp float64
	freq := 1.0
	amp := 1.0
	for o := 0; o < octaves; o++ {
		total += valueAt(x*freq, y*freq, seed+int64(o)) * amp
		maxAmp += amp
		freq *= lacunarity
		amp *= persistence
	}
	if maxAmp == 0 {
		return 0.5
	}
	return total / maxAmp
}

// valueAt evaluates one octave of value noise at a continuous point:
// hash the four surrounding lattice corners, then interpolate with a
// smoothstep-eased bilinear blend.
func valueAt(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0

	cx := int64(x0)
	cy := int64(y0)

	v00 := corner(cx, cy, seed)
	v10 := corner(cx+1, cy, seed)
	v01 := corner(cx, cy+1, seed)
	v11 := corner(cx+1, cy+1, seed)

	tx := smoothstep(fx)
	ty := smoothstep(fy)

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}

// corner returns a deterministic pseudo-random value in [0, 1) for a
// lattice corner. Seed-sensitive trig hash; uniform enough for terrain.
func corner(x, y, seed int64) float64 {
	n := math.Sin(float64(x)*127.1+float64(y)*311.7+float64(seed)*74.7) * 43758.5453123
	return n - math.Floor(n)
}

// smoothstep is the cubic ease t²(3 − 2t).
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
