package noise

import opensimplex "github.com/ojrac/opensimplex-go"

// Simplex wraps a normalized opensimplex generator behind the same
// octave interface as the value-noise field. The island and
// biome-matrix generator modes use it for a smoother, less blocky
// texture than value noise.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates a seeded simplex sampler.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// At samples multi-octave simplex noise at a continuous point,
// averaged to [0, 1].
func (s *Simplex) At(x, y float64, octaves int, frequency, persistence float64) float64 {
	var total, maxAmp float64
	amp := 1.0
	for o := 0; o < octaves; o++ {
		total += s.n.Eval2(x*frequency, y*frequency) * amp
		maxAmp += amp
		amp *= persistence
		frequency *= 2
	}
	if maxAmp == 0 {
		return 0.5
	}
	return total / maxAmp
}

// SampleField fills a Height×Width field from simplex octaves and
// min-max normalizes it, matching the value-noise Sample contract.
func (s *Simplex) SampleField(width, height int, scale float64, octaves int, persistence float64) [][]float64 {
	if width <= 0 || height <= 0 {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	out := make([][]float64, height)
	min := 1.0
	max := 0.0
	for r := range out {
		out[r] = make([]float64, width)
		for c := range out[r] {
			v := s.At(float64(c), float64(r), octaves, 1/scale, persistence)
			out[r][c] = v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	span := max - min
	if span == 0 {
		for r := range out {
			for c := range out[r] {
				out[r][c] = 0.5
			}
		}
		return out
	}
	for r := range out {
		for c := range out[r] {
			out[r][c] = (out[r][c] - min) / span
		}
	}
	return out
}
