package noise

import (
	"math"
	"testing"
)

func testParams(seed int64) Params {
	return Params{
		Width:       48,
		Height:      36,
		Scale:       10,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Seed:        seed,
	}
}

func TestSampleDeterminism(t *testing.T) {
	a := Sample(testParams(12345))
	b := Sample(testParams(12345))
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("field not bit-identical at (%d,%d): %v vs %v", r, c, a[r][c], b[r][c])
			}
		}
	}
}

func TestSampleNormalization(t *testing.T) {
	field := Sample(testParams(42))

	sawZero := false
	sawOne := false
	for r := range field {
		for c := range field[r] {
			v := field[r][c]
			if v < 0 || v > 1 {
				t.Fatalf("value %v at (%d,%d) outside [0,1]", v, r, c)
			}
			if v == 0 {
				sawZero = true
			}
			if v == 1 {
				sawOne = true
			}
		}
	}
	if !sawZero {
		t.Error("normalized field contains no exact 0")
	}
	if !sawOne {
		t.Error("normalized field contains no exact 1")
	}
}

func TestSampleDegenerateField(t *testing.T) {
	// A 1x1 field has zero variance; normalization must not divide by
	// zero and defines the output as constant 0.5.
	p := testParams(7)
	p.Width = 1
	p.Height = 1
	field := Sample(p)
	if field[0][0] != 0.5 {
		t.Errorf("degenerate field = %v, want 0.5", field[0][0])
	}
}

func TestSampleSeedDivergence(t *testing.T) {
	a := Sample(testParams(1))
	b := Sample(testParams(2))
	same := 0
	total := 0
	for r := range a {
		for c := range a[r] {
			total++
			if a[r][c] == b[r][c] {
				same++
			}
		}
	}
	if same > total/10 {
		t.Errorf("different seeds produced %d/%d identical values", same, total)
	}
}

func TestSampleSmoothness(t *testing.T) {
	field := Sample(testParams(77))
	maxDiff := 0.0
	for r := range field {
		for c := 1; c < len(field[r]); c++ {
			diff := math.Abs(field[r][c] - field[r][c-1])
			if diff > maxDiff {
				maxDiff = diff
			}
		}
	}
	if maxDiff > 0.5 {
		t.Errorf("max adjacent step = %v, expected smooth transitions", maxDiff)
	}
}

func TestAtDeterminism(t *testing.T) {
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.53
		a := At(x, y, 99, 4, 0.5, 2.0)
		b := At(x, y, 99, 4, 0.5, 2.0)
		if a != b {
			t.Fatalf("At not deterministic at (%v,%v)", x, y)
		}
		if a < 0 || a > 1 {
			t.Fatalf("At(%v,%v) = %v outside [0,1]", x, y, a)
		}
	}
}

func TestSimplexFieldContract(t *testing.T) {
	s1 := NewSimplex(5)
	s2 := NewSimplex(5)
	a := s1.SampleField(32, 24, 10, 4, 0.5)
	b := s2.SampleField(32, 24, 10, 4, 0.5)
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("simplex field not deterministic at (%d,%d)", r, c)
			}
			if a[r][c] < 0 || a[r][c] > 1 {
				t.Fatalf("simplex value %v outside [0,1]", a[r][c])
			}
		}
	}
}
